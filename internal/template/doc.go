// Package template holds the declarative XML skeletons for the bootstrap
// files of an EPUB archive and the engine that renders them.
//
// Templates are immutable node trees with positional substitution slots.
// Slots are filled in document order, and that order is part of each
// template's contract: filling them out of order silently corrupts the
// generated document, so Render enforces the exact value count and each
// constructor documents its slot sequence.
package template
