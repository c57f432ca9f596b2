// Package xmltv models the XMLTV guide documents marquee reads and writes.
//
// Only the elements the enricher inspects (programme titles, categories,
// icons) are fully typed. Everything else, channels included, round-trips
// verbatim through a generic element so guide data produced by grabbers such
// as Schedules Direct survives a rewrite untouched. Programme children are
// laid out in XMLTV DTD order so enriched output stays valid for strict
// consumers.
package xmltv
