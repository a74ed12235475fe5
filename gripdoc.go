// Package gripdoc builds and serves a searchable corpus of Griptape
// documentation. It scrapes the Griptape Framework docs and the Griptape
// Nodes docs (with a GitHub markdown fallback), normalizes their content
// into a SQLite database with full-text search, and exposes query
// functions over that store.
//
// This package contains domain types and interfaces following Ben
// Johnson's Standard Package Layout. Implementations live in
// subdirectories named after their primary dependency (e.g., sqlite/,
// goquery/, http/).
package gripdoc
