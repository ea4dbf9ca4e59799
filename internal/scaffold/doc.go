// Package scaffold builds structurally valid empty archive trees from the
// bootstrap templates.
//
// A scaffolded workspace contains the mimetype marker, META-INF/container.xml,
// OEBPS/content.opf, OEBPS/toc.ncx, and the configured content
// subdirectories. Scaffolding is atomic: a failure at any step removes the
// entire workspace. The manifest identifier comes from a pluggable
// IdentifierPolicy; production uses random UUIDs.
package scaffold
