// Package sessions keeps a SQLite registry of editing sessions for listing
// and cleanup.
//
// The registry is bookkeeping only: the binding file inside each workspace
// remains the authority for repack resolution, and losing the database never
// breaks an active session. Rows are inserted on create/open and pruned when
// their workspace directory disappears.
package sessions
