package archive

import "errors"

var (
	// ErrInvalidExtension indicates a target path carries an extension other
	// than .epub. This is user input error; the caller may re-prompt.
	ErrInvalidExtension = errors.New("invalid archive extension")

	// ErrUnpack indicates the decompression facility failed. The session
	// setup must be aborted; there is no scaffolding fallback.
	ErrUnpack = errors.New("unpack failed")

	// ErrPack indicates the compression facility failed. The destination
	// file is untouched when this is returned.
	ErrPack = errors.New("packaging failed")
)
