package repository

import (
	"context"
	"errors"

	"tip-advisor/domain"
)

var ErrSessionNotFound = errors.New("session not found")

// SessionRepository stores the loading flag and result slot of each session.
type SessionRepository interface {
	Create(ctx context.Context, id string) error
	Get(ctx context.Context, id string) (domain.SessionState, error)
	// TryBeginLoading sets the loading flag and reports false if it was already set.
	TryBeginLoading(ctx context.Context, id string) (bool, error)
	// Complete stores the outcome and clears the loading flag.
	Complete(ctx context.Context, id string, outcome domain.SuggestionOutcome) error
}
