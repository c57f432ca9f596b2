// Package enrich runs the poster enrichment pass over an XMLTV guide.
//
// The pass is a single linear walk: for every programme without artwork it
// consults the lookup cache, queries TVMaze on a miss, and falls back to
// generic category art so no programme leaves without an icon. The document
// is checkpointed to the output path at a configurable cadence, and the
// output file doubles as the input on later runs so previously added icons
// survive guide refreshes.
package enrich
