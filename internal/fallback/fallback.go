package fallback

import (
	"path/filepath"
	"strings"
)

// defaultCategoryPosters maps lowercase guide categories to generic artwork
// file names. Config entries are merged over this table.
var defaultCategoryPosters = map[string]string{
	// News / info
	"news":           "generic_news.png",
	"newsmagazine":   "generic_news.png",
	"weather":        "generic_weather.png",
	"politics":       "generic_news.png",
	"public affairs": "generic_publicaccess.png",

	// Religion / spiritual
	"religious":             "generic_religious.png",
	"religion":              "generic_religious.png",
	"gospel":                "generic_religious.png",
	"astrological guidance": "generic_religious.png",

	// Infomercials / shopping
	"shopping":         "generic_infomercial.png",
	"infomercial":      "generic_infomercial.png",
	"consumer":         "generic_infomercial.png",
	"paid programming": "generic_paidprogramming.png",
	"auction":          "generic_infomercial.png",

	// Community / local
	"community":   "generic_publicaccess.png",
	"fundraiser":  "generic_publicaccess.png",
	"local event": "generic_publicaccess.png",
	"parade":      "generic_publicaccess.png",
	"town hall":   "generic_publicaccess.png",

	// Off-air / unknown
	"off air": "generic_unknown.png",
	"tba":     "generic_unknown.png",
	"special": "generic_unknown.png",
	"event":   "generic_unknown.png",
}

// Resolver picks generic posters by programme category.
type Resolver struct {
	assetsDir     string
	unknownPoster string
	categories    map[string]string
}

// NewResolver builds a resolver rooted at assetsDir. overrides are merged
// over the built-in category table; unknownPoster is the final fallback file
// name.
func NewResolver(assetsDir, unknownPoster string, overrides map[string]string) *Resolver {
	categories := make(map[string]string, len(defaultCategoryPosters)+len(overrides))
	for category, poster := range defaultCategoryPosters {
		categories[category] = poster
	}
	for category, poster := range overrides {
		category = strings.ToLower(strings.TrimSpace(category))
		poster = strings.TrimSpace(poster)
		if category == "" || poster == "" {
			continue
		}
		categories[category] = poster
	}
	if strings.TrimSpace(unknownPoster) == "" {
		unknownPoster = "generic_unknown.png"
	}
	return &Resolver{
		assetsDir:     assetsDir,
		unknownPoster: unknownPoster,
		categories:    categories,
	}
}

// Resolve returns the asset path for the first category with a mapping.
// Categories are expected lowercased; the empty string return means no match.
func (r *Resolver) Resolve(categories []string) string {
	for _, category := range categories {
		if poster, ok := r.categories[category]; ok {
			return r.assetPath(poster)
		}
	}
	return ""
}

// Unknown returns the asset path of the final fallback poster.
func (r *Resolver) Unknown() string {
	return r.assetPath(r.unknownPoster)
}

func (r *Resolver) assetPath(name string) string {
	if r.assetsDir == "" {
		return name
	}
	return filepath.Join(r.assetsDir, name)
}
