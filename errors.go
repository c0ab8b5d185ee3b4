package sqlmonitor

import (
	"errors"

	"go.opentelemetry.io/otel"
)

var (
	// ErrMetadataUnavailable indicates that the connection source metadata could not be resolved.
	ErrMetadataUnavailable = errors.New("connection metadata unavailable")
	// ErrInvalidDSN indicates that a dsn is not an url.
	ErrInvalidDSN = errors.New("dsn is not an url")
	// ErrConsoleCleanup indicates that the stale management handles could not be removed.
	ErrConsoleCleanup = errors.New("could not unregister stale management handles")
)

func handleErr(err error) {
	if err != nil {
		otel.Handle(err)
	}
}
