// Package app ties the postline services together.
package app

import (
	"github.com/chirper-labs/postline/internal/app/services/accounts"
	"github.com/chirper-labs/postline/internal/app/services/messages"
	"github.com/chirper-labs/postline/internal/app/storage"
	"github.com/chirper-labs/postline/internal/app/storage/memory"
	"github.com/chirper-labs/postline/internal/logging"
)

// Stores encapsulates persistence dependencies. Nil stores default to the
// in-memory implementation.
type Stores struct {
	Accounts storage.AccountStore
	Messages storage.MessageStore
}

// Application bundles the domain services behind a single construction
// point.
type Application struct {
	log *logging.Logger

	Accounts *accounts.Service
	Messages *messages.Service
}

// New builds a fully initialised application with the provided stores.
func New(stores Stores, log *logging.Logger) (*Application, error) {
	if log == nil {
		log = logging.NewDefault("app")
	}

	mem := memory.New()
	if stores.Accounts == nil {
		stores.Accounts = mem
	}
	if stores.Messages == nil {
		stores.Messages = mem
	}

	return &Application{
		log:      log,
		Accounts: accounts.New(stores.Accounts, log.Named("accounts")),
		Messages: messages.New(stores.Messages, log.Named("messages")),
	}, nil
}
