package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Sentinel errors classify every persistence failure the service surfaces to a
// user. Repositories wrap the driver error with exactly one of these so callers
// can pick the matching notification text without inspecting driver internals.
var (
	// ErrPermissionDenied signals the store rejected the operation for lack of rights.
	ErrPermissionDenied = errors.New("store: permission denied")
	// ErrUnavailable signals the store could not be reached or is shutting down.
	ErrUnavailable = errors.New("store: unavailable")
	// ErrNotFound signals the target record does not exist.
	ErrNotFound = errors.New("store: not found")
)

// Classify wraps err with the taxonomy sentinel it belongs to. The original
// driver error stays in the chain for logging. Unrecognized errors pass through
// unchanged and fall into the catch-all message.
func Classify(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case pgErr.Code == "42501": // insufficient_privilege
			return fmt.Errorf("%w: %w", ErrPermissionDenied, err)
		case strings.HasPrefix(pgErr.Code, "08"), // connection exception
			strings.HasPrefix(pgErr.Code, "57"): // operator intervention / shutdown
			return fmt.Errorf("%w: %w", ErrUnavailable, err)
		}
	}

	if errors.Is(err, context.DeadlineExceeded) || pgconn.Timeout(err) {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}

	return err
}

// UserMessage maps a classified error to the notification text shown to users.
func UserMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrPermissionDenied):
		return "Permission denied. Please check your access."
	case errors.Is(err, ErrUnavailable):
		return "The service is unavailable. Please try again later."
	case errors.Is(err, ErrNotFound):
		return "The requested record was not found."
	default:
		return "The operation failed. Please try again."
	}
}
