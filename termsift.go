// Package termsift turns crawled web pages into terminology-ready text.
// It parses HTML into emphasis-annotated word tokens, resolved links, and
// page metadata, crawls sites to collect pages, and stores the results in
// SQLite for downstream term analysis.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, sqlite/, rod/).
package termsift
