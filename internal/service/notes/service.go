package notes

import (
	"context"
	"log/slog"
	"time"

	"github.com/kotche/notes/infrastructure/tracing"
	"github.com/kotche/notes/internal/auth"
	"github.com/kotche/notes/internal/metrics"
	"github.com/kotche/notes/internal/model"
	"github.com/kotche/notes/internal/repository/notes"
	"github.com/kotche/notes/internal/service/events"
)

type DefaultService struct {
	repo      notes.Repository
	hasher    auth.Hasher
	publisher events.Publisher
	logger    *slog.Logger
}

func NewDefaultService(repo notes.Repository, hasher auth.Hasher, publisher events.Publisher, logger *slog.Logger) *DefaultService {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &DefaultService{
		repo:      repo,
		hasher:    hasher,
		publisher: publisher,
		logger:    logger,
	}
}

// start opens a span for the operation; the returned func records its outcome.
func (d *DefaultService) start(ctx context.Context, operation string) (context.Context, func(error)) {
	begin := time.Now()
	ctx, span := tracing.StartSpan(ctx, operation)
	return ctx, func(err error) {
		metrics.Observe(operation, begin, err)
		tracing.EndSpan(span, err)
	}
}

// publish never fails the operation that produced the event.
func (d *DefaultService) publish(ctx context.Context, event events.Event) {
	if err := d.publisher.Publish(ctx, event); err != nil {
		d.logger.Warn("failed to publish event", "type", event.Type, "user_id", event.UserID, "error", err)
	}
}

func errWrongCredentials() error {
	return model.Errorf(model.ErrUnauthorized, "wrong credentials")
}

func errEmailExists(email string) error {
	return model.Errorf(model.ErrConflict, "user with email %s already exists", email)
}

func errNoUser(userID model.UserID) error {
	return model.Errorf(model.ErrNotFound, "no user found with id %s", userID)
}

func errNoUserForCredentials(userID model.UserID) error {
	return model.Errorf(model.ErrUnauthorized, "no user found with id %s for given credentials", userID)
}

func errNoNote(noteID model.NoteID) error {
	return model.Errorf(model.ErrNotFound, "no note found with id %s", noteID)
}
