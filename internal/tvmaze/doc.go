// Package tvmaze provides the minimal TVMaze API client used during poster
// lookup.
//
// It exposes the singlesearch endpoint, which returns TVMaze's best match for
// a show name. Responses are strongly typed so the enricher can pick the best
// available poster size. Options allow tests to supply custom HTTP clients or
// disable request pacing without modifying production code.
package tvmaze
