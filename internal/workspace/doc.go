// Package workspace manages the editable directory trees that represent an
// archive's contents during an editing session.
//
// Allocate creates uniquely named directories under the process-wide scratch
// root. Bind and Resolve persist and recover the session binding — the
// (workspace, target archive) pair — as a dotfile at the workspace root, so
// any tool opened on a file inside the tree can find both without global
// lookup. CleanStale reclaims abandoned workspaces.
package workspace
