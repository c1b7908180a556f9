// Package memory provides an in-memory storage implementation.
package memory

import (
	"context"
	"sync"

	"github.com/chirper-labs/postline/internal/app/domain/account"
	"github.com/chirper-labs/postline/internal/app/domain/errs"
	"github.com/chirper-labs/postline/internal/app/domain/message"
	"github.com/chirper-labs/postline/internal/app/storage"
)

// Store is an in-memory implementation of the storage interfaces. It is
// safe for concurrent use and is primarily intended for tests and local
// development.
type Store struct {
	mu            sync.RWMutex
	nextAccountID int64
	nextMessageID int64

	accounts       map[int64]account.Account
	accountsByName map[string]int64
	messages       map[int64]message.Message
	messageOrder   []int64
}

var _ storage.AccountStore = (*Store)(nil)
var _ storage.MessageStore = (*Store)(nil)

// New creates an empty store.
func New() *Store {
	return &Store{
		nextAccountID:  1,
		nextMessageID:  1,
		accounts:       make(map[int64]account.Account),
		accountsByName: make(map[string]int64),
		messages:       make(map[int64]message.Message),
	}
}

// --- AccountStore -----------------------------------------------------------

func (s *Store) InsertAccount(ctx context.Context, username, password string) (account.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Mirrors the UNIQUE constraint of the postgres schema.
	if _, taken := s.accountsByName[username]; taken {
		return account.Account{}, errs.Validation("duplicate username")
	}

	acct := account.Account{ID: s.nextAccountID, Username: username, Password: password}
	s.nextAccountID++
	s.accounts[acct.ID] = acct
	s.accountsByName[acct.Username] = acct.ID
	return acct, nil
}

func (s *Store) UsernameExists(ctx context.Context, username string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.accountsByName[username]
	return ok, nil
}

func (s *Store) FindByCredentials(ctx context.Context, username, password string) (account.Account, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.accountsByName[username]
	if !ok {
		return account.Account{}, false, nil
	}
	acct := s.accounts[id]
	if acct.Password != password {
		return account.Account{}, false, nil
	}
	return acct, true, nil
}

// --- MessageStore -----------------------------------------------------------

func (s *Store) InsertMessage(ctx context.Context, msg message.Message) (message.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	msg.ID = s.nextMessageID
	s.nextMessageID++
	s.messages[msg.ID] = msg
	s.messageOrder = append(s.messageOrder, msg.ID)
	return msg, nil
}

func (s *Store) AccountExists(ctx context.Context, accountID int64) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.accounts[accountID]
	return ok, nil
}

func (s *Store) ListMessages(ctx context.Context) ([]message.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]message.Message, 0, len(s.messageOrder))
	for _, id := range s.messageOrder {
		result = append(result, s.messages[id])
	}
	return result, nil
}

func (s *Store) GetMessage(ctx context.Context, id int64) (message.Message, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	msg, ok := s.messages[id]
	return msg, ok, nil
}

func (s *Store) DeleteMessage(ctx context.Context, id int64) (message.Message, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	msg, ok := s.messages[id]
	if !ok {
		return message.Message{}, false, nil
	}
	delete(s.messages, id)
	for i, mid := range s.messageOrder {
		if mid == id {
			s.messageOrder = append(s.messageOrder[:i], s.messageOrder[i+1:]...)
			break
		}
	}
	return msg, true, nil
}

func (s *Store) UpdateMessageText(ctx context.Context, id int64, text string) (message.Message, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	msg, ok := s.messages[id]
	if !ok {
		return message.Message{}, false, nil
	}
	msg.Text = text
	s.messages[id] = msg
	return msg, true, nil
}

func (s *Store) ListMessagesByAuthor(ctx context.Context, accountID int64) ([]message.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]message.Message, 0)
	for _, id := range s.messageOrder {
		if msg := s.messages[id]; msg.PostedBy == accountID {
			result = append(result, msg)
		}
	}
	return result, nil
}
