package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"tip-advisor/domain"
	"tip-advisor/repository"
)

var ErrSuggestionInFlight = errors.New("a tip suggestion is already being generated")

// SessionService owns the loading flag and result slot of presentation
// sessions. A session runs at most one suggestion at a time.
type SessionService struct {
	sessions repository.SessionRepository
	client   *SuggestionClient
}

func NewSessionService(sessions repository.SessionRepository, client *SuggestionClient) *SessionService {
	return &SessionService{sessions: sessions, client: client}
}

func (s *SessionService) NewSession(ctx context.Context) (string, error) {
	id := uuid.NewString()
	if err := s.OpenSession(ctx, id); err != nil {
		return "", err
	}
	return id, nil
}

// OpenSession creates the session if it does not exist yet.
func (s *SessionService) OpenSession(ctx context.Context, id string) error {
	_, err := s.sessions.Get(ctx, id)
	if err == nil {
		return nil
	}
	if !errors.Is(err, repository.ErrSessionNotFound) {
		return err
	}
	if err := s.sessions.Create(ctx, id); err != nil {
		return fmt.Errorf("create session: %w", err)
	}
	return nil
}

func (s *SessionService) State(ctx context.Context, id string) (domain.SessionState, error) {
	return s.sessions.Get(ctx, id)
}

// RequestSuggestion marks the session as loading and starts one suggestion
// task. The returned channel receives the outcome once it has been stored
// and the loading flag cleared. While a task is outstanding further requests
// get ErrSuggestionInFlight.
func (s *SessionService) RequestSuggestion(
	ctx context.Context,
	id string,
	req domain.TipRequest,
) (<-chan domain.SuggestionOutcome, error) {
	ok, err := s.sessions.TryBeginLoading(ctx, id)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrSuggestionInFlight
	}

	// La tarea sobrevive a la petición que la inició
	taskCtx := context.WithoutCancel(ctx)
	done := make(chan domain.SuggestionOutcome, 1)

	go func() {
		defer close(done)
		outcome := <-s.client.SuggestTipAsync(taskCtx, req)
		if err := s.sessions.Complete(taskCtx, id, outcome); err != nil {
			slog.Error("failed to store tip suggestion", "session_id", id, "error", err)
		}
		done <- outcome
	}()

	return done, nil
}
