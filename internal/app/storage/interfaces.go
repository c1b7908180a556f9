// Package storage defines the persistence interfaces for the postline core.
//
// Absence of a requested row is a valid result, reported through the
// found return value; an error return always means the operation itself
// failed. Implementations perform exactly one round trip per call.
package storage

import (
	"context"

	"github.com/chirper-labs/postline/internal/app/domain/account"
	"github.com/chirper-labs/postline/internal/app/domain/message"
)

// AccountStore persists account records.
type AccountStore interface {
	// InsertAccount persists a new account and returns it with its
	// generated id.
	InsertAccount(ctx context.Context, username, password string) (account.Account, error)
	// UsernameExists reports whether an account with that exact username
	// exists.
	UsernameExists(ctx context.Context, username string) (bool, error)
	// FindByCredentials returns the account matching both fields exactly.
	FindByCredentials(ctx context.Context, username, password string) (account.Account, bool, error)
}

// MessageStore persists message records.
type MessageStore interface {
	// InsertMessage persists msg and returns it with its generated id;
	// all other fields echo the input.
	InsertMessage(ctx context.Context, msg message.Message) (message.Message, error)
	// AccountExists probes the account table for the given id. Message
	// creation relies on this cross-entity check.
	AccountExists(ctx context.Context, accountID int64) (bool, error)
	// ListMessages returns every message in storage order.
	ListMessages(ctx context.Context) ([]message.Message, error)
	// GetMessage returns the message with the given id, if any.
	GetMessage(ctx context.Context, id int64) (message.Message, bool, error)
	// DeleteMessage atomically removes the row and returns the pre-delete
	// snapshot. No side effects when the row is absent.
	DeleteMessage(ctx context.Context, id int64) (message.Message, bool, error)
	// UpdateMessageText atomically replaces the text and returns the
	// post-update snapshot; posted_by and the epoch are untouched. No
	// side effects when the row is absent.
	UpdateMessageText(ctx context.Context, id int64, text string) (message.Message, bool, error)
	// ListMessagesByAuthor returns all messages posted by accountID in
	// storage order.
	ListMessagesByAuthor(ctx context.Context, accountID int64) ([]message.Message, error)
}
