// Package titles normalizes programme titles so cache keys and API queries
// stay stable across guide refreshes.
//
// Guide providers decorate repeated titles with "new episode" markers, often
// using Unicode superscript letters, which would otherwise produce duplicate
// lookups for the same show.
package titles
