package config

const (
	defaultInputPath            = "~/.local/share/marquee/guide/input.xml"
	defaultOutputPath           = "~/.local/share/marquee/guide/guide.xml"
	defaultCacheDBPath          = "~/.cache/marquee/postercache.db"
	defaultLogDir               = "~/.local/share/marquee/logs"
	defaultAssetsDir            = "~/.local/share/marquee/assets"
	defaultTVMazeBaseURL        = "https://api.tvmaze.com"
	defaultTVMazeTimeoutSeconds = 10
	defaultTVMazeIntervalMillis = 200
	defaultTVMazeMaxRetries     = 3
	defaultJellyfinTimeout      = 10
	defaultBatchSize            = 25
	defaultUnknownPoster        = "generic_unknown.png"
	defaultNtfyRequestTimeout   = 10
	defaultWatchDebounceSeconds = 5
	defaultWatchSettleSeconds   = 2
	defaultLogFormat            = "console"
	defaultLogLevel             = "info"
	defaultLogMaxSizeMB         = 10
	defaultLogMaxBackups        = 3
	defaultLogMaxAgeDays        = 60
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			Input:     defaultInputPath,
			Output:    defaultOutputPath,
			CacheDB:   defaultCacheDBPath,
			LogDir:    defaultLogDir,
			AssetsDir: defaultAssetsDir,
		},
		TVMaze: TVMaze{
			Enabled:        true,
			BaseURL:        defaultTVMazeBaseURL,
			TimeoutSeconds: defaultTVMazeTimeoutSeconds,
			IntervalMillis: defaultTVMazeIntervalMillis,
			MaxRetries:     defaultTVMazeMaxRetries,
		},
		Jellyfin: Jellyfin{
			Enabled:        false,
			TimeoutSeconds: defaultJellyfinTimeout,
		},
		Behavior: Behavior{
			BatchSize:         defaultBatchSize,
			ShowProgressETA:   true,
			SkipExistingIcons: true,
		},
		Fallbacks: Fallbacks{
			Enabled:       true,
			UnknownPoster: defaultUnknownPoster,
		},
		Notifications: Notifications{
			RequestTimeout: defaultNtfyRequestTimeout,
			RunStarted:     true,
			RunCompleted:   true,
			Errors:         true,
		},
		Watch: Watch{
			DebounceSeconds: defaultWatchDebounceSeconds,
			SettleSeconds:   defaultWatchSettleSeconds,
		},
		Logging: Logging{
			Format:     defaultLogFormat,
			Level:      defaultLogLevel,
			MaxSizeMB:  defaultLogMaxSizeMB,
			MaxBackups: defaultLogMaxBackups,
			MaxAgeDays: defaultLogMaxAgeDays,
		},
	}
}
