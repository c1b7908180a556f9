// Package postgres implements the storage interfaces backed by PostgreSQL.
package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"github.com/chirper-labs/postline/internal/app/domain/account"
	"github.com/chirper-labs/postline/internal/app/domain/errs"
	"github.com/chirper-labs/postline/internal/app/domain/message"
	"github.com/chirper-labs/postline/internal/app/storage"
)

// Store implements the storage interfaces using the provided database
// handle. Every operation is a single statement; durability and
// consistency are delegated to PostgreSQL.
type Store struct {
	db *sql.DB
}

var _ storage.AccountStore = (*Store)(nil)
var _ storage.MessageStore = (*Store)(nil)

// New creates a Store using the provided database handle.
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// uniqueViolation is the PostgreSQL error code for a unique constraint hit.
const uniqueViolation = "23505"

// --- AccountStore -----------------------------------------------------------

func (s *Store) InsertAccount(ctx context.Context, username, password string) (account.Account, error) {
	var acct account.Account
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO account (username, password)
		VALUES ($1, $2)
		RETURNING account_id, username, password
	`, username, password).Scan(&acct.ID, &acct.Username, &acct.Password)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			// A concurrent registration won the race; same taxonomy as
			// the service-level duplicate check.
			return account.Account{}, errs.Validation("duplicate username")
		}
		return account.Account{}, errs.Storage("insert account", err)
	}
	return acct, nil
}

func (s *Store) UsernameExists(ctx context.Context, username string) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx, `
		SELECT EXISTS (SELECT 1 FROM account WHERE username = $1)
	`, username).Scan(&exists)
	if err != nil {
		return false, errs.Storage("check username", err)
	}
	return exists, nil
}

func (s *Store) FindByCredentials(ctx context.Context, username, password string) (account.Account, bool, error) {
	var acct account.Account
	err := s.db.QueryRowContext(ctx, `
		SELECT account_id, username, password
		FROM account
		WHERE username = $1 AND password = $2
	`, username, password).Scan(&acct.ID, &acct.Username, &acct.Password)
	if errors.Is(err, sql.ErrNoRows) {
		return account.Account{}, false, nil
	}
	if err != nil {
		return account.Account{}, false, errs.Storage("find by credentials", err)
	}
	return acct, true, nil
}

// --- MessageStore -----------------------------------------------------------

func (s *Store) InsertMessage(ctx context.Context, msg message.Message) (message.Message, error) {
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO message (message_text, posted_by, time_posted_epoch)
		VALUES ($1, $2, $3)
		RETURNING message_id
	`, msg.Text, msg.PostedBy, msg.PostedAtEpoch).Scan(&msg.ID)
	if err != nil {
		return message.Message{}, errs.Storage("insert message", err)
	}
	return msg, nil
}

func (s *Store) AccountExists(ctx context.Context, accountID int64) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx, `
		SELECT EXISTS (SELECT 1 FROM account WHERE account_id = $1)
	`, accountID).Scan(&exists)
	if err != nil {
		return false, errs.Storage("check account", err)
	}
	return exists, nil
}

func (s *Store) ListMessages(ctx context.Context) ([]message.Message, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT message_id, posted_by, message_text, time_posted_epoch
		FROM message
		ORDER BY message_id
	`)
	if err != nil {
		return nil, errs.Storage("list messages", err)
	}
	return collectMessages(rows, "list messages")
}

func (s *Store) GetMessage(ctx context.Context, id int64) (message.Message, bool, error) {
	var msg message.Message
	err := s.db.QueryRowContext(ctx, `
		SELECT message_id, posted_by, message_text, time_posted_epoch
		FROM message
		WHERE message_id = $1
	`, id).Scan(&msg.ID, &msg.PostedBy, &msg.Text, &msg.PostedAtEpoch)
	if errors.Is(err, sql.ErrNoRows) {
		return message.Message{}, false, nil
	}
	if err != nil {
		return message.Message{}, false, errs.Storage("get message", err)
	}
	return msg, true, nil
}

func (s *Store) DeleteMessage(ctx context.Context, id int64) (message.Message, bool, error) {
	var msg message.Message
	err := s.db.QueryRowContext(ctx, `
		DELETE FROM message
		WHERE message_id = $1
		RETURNING message_id, posted_by, message_text, time_posted_epoch
	`, id).Scan(&msg.ID, &msg.PostedBy, &msg.Text, &msg.PostedAtEpoch)
	if errors.Is(err, sql.ErrNoRows) {
		return message.Message{}, false, nil
	}
	if err != nil {
		return message.Message{}, false, errs.Storage("delete message", err)
	}
	return msg, true, nil
}

func (s *Store) UpdateMessageText(ctx context.Context, id int64, text string) (message.Message, bool, error) {
	var msg message.Message
	err := s.db.QueryRowContext(ctx, `
		UPDATE message
		SET message_text = $2
		WHERE message_id = $1
		RETURNING message_id, posted_by, message_text, time_posted_epoch
	`, id, text).Scan(&msg.ID, &msg.PostedBy, &msg.Text, &msg.PostedAtEpoch)
	if errors.Is(err, sql.ErrNoRows) {
		return message.Message{}, false, nil
	}
	if err != nil {
		return message.Message{}, false, errs.Storage("update message text", err)
	}
	return msg, true, nil
}

func (s *Store) ListMessagesByAuthor(ctx context.Context, accountID int64) ([]message.Message, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT message_id, posted_by, message_text, time_posted_epoch
		FROM message
		WHERE posted_by = $1
		ORDER BY message_id
	`, accountID)
	if err != nil {
		return nil, errs.Storage("list messages by author", err)
	}
	return collectMessages(rows, "list messages by author")
}

func collectMessages(rows *sql.Rows, op string) ([]message.Message, error) {
	defer rows.Close()

	result := make([]message.Message, 0)
	for rows.Next() {
		var msg message.Message
		if err := rows.Scan(&msg.ID, &msg.PostedBy, &msg.Text, &msg.PostedAtEpoch); err != nil {
			return nil, errs.Storage(op, err)
		}
		result = append(result, msg)
	}
	if err := rows.Err(); err != nil {
		return nil, errs.Storage(op, err)
	}
	return result, nil
}
