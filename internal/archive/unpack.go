package archive

import (
	"context"
	"fmt"
	"log/slog"

	"bookbind/internal/logging"
)

// Unpacker expands existing archives into editing workspaces.
type Unpacker struct {
	facility Facility
	sink     *logging.Sink
	logger   *slog.Logger
}

// NewUnpacker constructs an unpacker over the given facility.
func NewUnpacker(facility Facility, sink *logging.Sink, logger *slog.Logger) *Unpacker {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Unpacker{facility: facility, sink: sink, logger: logger}
}

// Unpack expands the archive at path into the workspace. The archive is not
// validated here; a malformed input surfaces as a facility failure, which
// the caller must treat as fatal for session setup.
func (u *Unpacker) Unpack(ctx context.Context, path, ws string) error {
	u.logger.Info("unpacking archive",
		logging.String("archive", path),
		logging.String("workspace", ws),
	)
	if err := u.facility.Unpack(ctx, path, ws); err != nil {
		if sinkPath := u.sink.Path(); sinkPath != "" {
			return fmt.Errorf("%w: %s (diagnostics in %s): %w", ErrUnpack, path, sinkPath, err)
		}
		return fmt.Errorf("%w: %s: %w", ErrUnpack, path, err)
	}
	return nil
}
