// Command marquee enriches XMLTV guide data with poster artwork and keeps a
// Jellyfin Live TV guide refreshed. It wraps a single enrichment pipeline in
// one-shot, watch, and cache maintenance subcommands.
package main
