// Package postercache persists title-to-poster lookup results between runs.
//
// Guide files repeat the same shows day after day, so most TVMaze answers are
// reusable. The cache stores positive and negative results: a hit with an
// empty poster URL means the lookup already failed once and the API call is
// skipped, while generic fallback art is still applied downstream.
//
// # Storage
//
// Results live in a SQLite database (WAL mode) keyed by the normalized,
// case-folded title. The flat JSON dictionary format used by earlier tooling
// is supported through ImportLegacyJSON and ExportLegacyJSON, surfaced as the
// 'marquee cache import' and 'marquee cache export' commands.
package postercache
