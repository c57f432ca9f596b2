// Package fallback selects generic poster artwork for programmes TVMaze
// cannot identify.
//
// Local broadcast guides are full of entries no metadata API knows: paid
// programming, public access, off-air blocks. A category table maps those to
// themed placeholder images under the configured assets directory, with a
// final "unknown" poster guaranteeing every programme ends up with artwork.
package fallback
