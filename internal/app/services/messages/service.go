// Package messages enforces message invariants and orchestrates store
// calls.
package messages

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/chirper-labs/postline/internal/app/domain/errs"
	"github.com/chirper-labs/postline/internal/app/domain/message"
	"github.com/chirper-labs/postline/internal/app/storage"
	"github.com/chirper-labs/postline/internal/logging"
)

// Service validates message mutations and delegates persistence.
type Service struct {
	store storage.MessageStore
	log   *logging.Logger
}

// New constructs a message service.
func New(store storage.MessageStore, log *logging.Logger) *Service {
	if log == nil {
		log = logging.NewDefault("messages")
	}
	return &Service{store: store, log: log}
}

// validateText applies the shared text rules for create and update. The
// trim is used only for the blank check; the stored value keeps its
// whitespace.
func validateText(text string) error {
	if strings.TrimSpace(text) == "" {
		return errs.Validation("blank text")
	}
	if utf8.RuneCountInString(text) > message.MaxTextLen {
		return errs.Validation("text too long")
	}
	return nil
}

// Create validates and persists a new message. The author must exist at
// creation time; later reads do not re-validate it.
func (s *Service) Create(ctx context.Context, msg message.Message) (message.Message, error) {
	if err := validateText(msg.Text); err != nil {
		return message.Message{}, err
	}

	exists, err := s.store.AccountExists(ctx, msg.PostedBy)
	if err != nil {
		return message.Message{}, err
	}
	if !exists {
		return message.Message{}, errs.Validation("unknown author")
	}

	if msg.PostedAtEpoch <= 0 {
		return message.Message{}, errs.Validation("bad timestamp")
	}

	created, err := s.store.InsertMessage(ctx, msg)
	if err != nil {
		return message.Message{}, err
	}
	s.log.Infof("message %d created by account %d", created.ID, created.PostedBy)
	return created, nil
}

// GetAll returns every message in storage order.
func (s *Service) GetAll(ctx context.Context) ([]message.Message, error) {
	return s.store.ListMessages(ctx)
}

// GetByID returns the message with the given id. Absence is a valid
// outcome, not an error.
func (s *Service) GetByID(ctx context.Context, id int64) (message.Message, bool, error) {
	return s.store.GetMessage(ctx, id)
}

// Delete removes the message and returns its pre-delete snapshot.
// Deleting a non-existent id is a no-op, not an error.
func (s *Service) Delete(ctx context.Context, id int64) (message.Message, bool, error) {
	deleted, found, err := s.store.DeleteMessage(ctx, id)
	if err != nil {
		return message.Message{}, false, err
	}
	if found {
		s.log.Infof("message %d deleted", id)
	}
	return deleted, found, nil
}

// UpdateText validates the replacement text and applies it. Unlike
// GetByID and Delete, a missing target here is reported as a
// ValidationError: the client asked to mutate something that is not
// there.
func (s *Service) UpdateText(ctx context.Context, id int64, text string) (message.Message, error) {
	if err := validateText(text); err != nil {
		return message.Message{}, err
	}

	updated, found, err := s.store.UpdateMessageText(ctx, id, text)
	if err != nil {
		return message.Message{}, err
	}
	if !found {
		return message.Message{}, errs.Validation("message not found")
	}
	return updated, nil
}

// GetByAuthor returns all messages posted by accountID. The author is
// not existence-checked: an account with no messages and an unknown
// account both yield an empty sequence.
func (s *Service) GetByAuthor(ctx context.Context, accountID int64) ([]message.Message, error) {
	return s.store.ListMessagesByAuthor(ctx, accountID)
}
