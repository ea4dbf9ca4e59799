// Package session orchestrates archive lifecycle operations. It composes the
// scaffold, workspace, archive, and sessions packages into the create, open,
// and repack flows the CLI exposes.
package session
