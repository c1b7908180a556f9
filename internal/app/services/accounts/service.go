// Package accounts enforces registration and login invariants.
package accounts

import (
	"context"
	"strings"

	"github.com/chirper-labs/postline/internal/app/domain/account"
	"github.com/chirper-labs/postline/internal/app/domain/errs"
	"github.com/chirper-labs/postline/internal/app/storage"
	"github.com/chirper-labs/postline/internal/logging"
)

// minPasswordLen is the registration-time password floor. Login only
// checks for blank input.
const minPasswordLen = 4

// Service validates account mutations and delegates persistence.
type Service struct {
	store storage.AccountStore
	log   *logging.Logger
}

// New constructs an account service.
func New(store storage.AccountStore, log *logging.Logger) *Service {
	if log == nil {
		log = logging.NewDefault("accounts")
	}
	return &Service{store: store, log: log}
}

// Register validates and persists a new account. The duplicate check is
// a fresh read at call time and runs only after the shape checks pass;
// the store's unique constraint backstops the race with concurrent
// registrations.
func (s *Service) Register(ctx context.Context, username, password string) (account.Account, error) {
	if strings.TrimSpace(username) == "" {
		return account.Account{}, errs.Validation("empty username")
	}
	if len(password) < minPasswordLen {
		return account.Account{}, errs.Validation("weak password")
	}

	exists, err := s.store.UsernameExists(ctx, username)
	if err != nil {
		return account.Account{}, err
	}
	if exists {
		return account.Account{}, errs.Validation("duplicate username")
	}

	acct, err := s.store.InsertAccount(ctx, username, password)
	if err != nil {
		return account.Account{}, err
	}
	s.log.Infof("account %d registered", acct.ID)
	return acct, nil
}

// Login checks the supplied credentials against the store. A store miss
// is an AuthError, a distinct kind from input validation failures.
func (s *Service) Login(ctx context.Context, username, password string) (account.Account, error) {
	if strings.TrimSpace(username) == "" {
		return account.Account{}, errs.Validation("blank username")
	}
	if strings.TrimSpace(password) == "" {
		return account.Account{}, errs.Validation("blank password")
	}

	acct, found, err := s.store.FindByCredentials(ctx, username, password)
	if err != nil {
		return account.Account{}, err
	}
	if !found {
		return account.Account{}, errs.Auth("invalid credentials")
	}
	return acct, nil
}
