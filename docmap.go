// Package docmap turns documentation websites (or local documents) into a
// structured outline of modules and submodules with generated descriptions.
// It crawls a site within depth and page budgets, normalizes HTML into
// structure-preserving plain text, and infers a module tree either through a
// hosted model or a deterministic heuristic fallback.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, gemini/, sqlite/) or their
// function (crawl/, infer/, extract/).
package docmap
