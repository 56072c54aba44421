// Package domsift analyzes the structure of rendered web pages for an
// LLM-guided crawler. It normalizes raw HTML into filtered semantic trees,
// canonicalizes volatile leaf text (counters, timestamps) into templates,
// computes structural signatures for cross-page boilerplate detection, and
// finds repeated sibling structures both from markup similarity and from
// post-render element geometry.
//
// This package contains domain types, interfaces, and the dependency-free
// analysis algorithms, following Ben Johnson's Standard Package Layout.
// Implementations live in subdirectories named after their primary
// dependency (e.g., goquery/, xxhash/, rod/, sqlite/).
package domsift
