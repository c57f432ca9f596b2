// Package jellyfin triggers Live TV guide refreshes on a Jellyfin server.
//
// After the enriched guide is written, Jellyfin must re-read it before the
// new artwork shows up in its programme grid. The HTTP-backed service posts
// the refresh with the configured API token and gracefully degrades to a
// no-op when the integration is disabled or unconfigured, so callers never
// need to branch on configuration state.
package jellyfin
