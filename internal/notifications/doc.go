// Package notifications delivers enrichment run events via ntfy.
//
// The default implementation publishes to the topic configured in the
// notifications section and gracefully degrades to a no-op when no topic is
// set, so the enricher can emit events unconditionally.
package notifications
