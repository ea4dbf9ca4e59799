package scaffold

import "github.com/google/uuid"

// IdentifierPolicy produces the unique identifier embedded in a new
// archive's package manifest.
type IdentifierPolicy interface {
	NewIdentifier() string
}

// UUIDPolicy generates a fresh RFC 4122 identifier per archive. This is the
// production policy; every scaffolded archive gets a globally unique id.
type UUIDPolicy struct{}

func (UUIDPolicy) NewIdentifier() string {
	return "urn:uuid:" + uuid.NewString()
}

// StaticPolicy returns a fixed identifier. Useful for deterministic tests.
type StaticPolicy string

func (s StaticPolicy) NewIdentifier() string {
	return string(s)
}
