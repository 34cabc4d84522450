// Package beagle discovers repeating link patterns on web pages.
// Given a listing page it groups every matched link by its structural tag
// path, ranks the groups and returns the best guess at the page's content
// list along with a selector that can be replayed later to watch the page
// for new items.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, rod/, sqlite/).
package beagle
