// Package archive packs and unpacks EPUB container archives.
//
// The Facility interface is the compression mechanism: Builtin works
// in-process on archive/zip, Tool shells out to zip/unzip binaries with
// their output captured in the shared log sink. Both honour the OCF entry
// rules — mimetype first and stored uncompressed, standard compression for
// everything else, dotfiles excluded.
//
// Packager implements the two-phase repack: build the archive in the
// scratch root, then publish it to the destination with an atomic move, so
// a failed compression never corrupts an existing archive. The overwrite
// interview is delegated to an injected Prompter; the package has no UI
// dependency.
package archive
