package messages

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/chirper-labs/postline/internal/app/domain/errs"
	"github.com/chirper-labs/postline/internal/app/domain/message"
	"github.com/chirper-labs/postline/internal/app/storage/memory"
)

// newServiceWithAuthor seeds one account so message creation has a valid
// author.
func newServiceWithAuthor(t *testing.T) (*Service, int64) {
	t.Helper()
	store := memory.New()
	acct, err := store.InsertAccount(context.Background(), "alice", "secret")
	if err != nil {
		t.Fatalf("seed account: %v", err)
	}
	return New(store, nil), acct.ID
}

func wantValidation(t *testing.T, err error, reason string) {
	t.Helper()
	var ve *errs.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if ve.Reason != reason {
		t.Fatalf("expected reason %q, got %q", reason, ve.Reason)
	}
}

func TestCreateValidation(t *testing.T) {
	svc, author := newServiceWithAuthor(t)

	tests := []struct {
		name       string
		msg        message.Message
		wantReason string
	}{
		{
			name:       "blank text",
			msg:        message.Message{PostedBy: author, Text: "   ", PostedAtEpoch: 1000},
			wantReason: "blank text",
		},
		{
			name:       "text too long",
			msg:        message.Message{PostedBy: author, Text: strings.Repeat("a", 256), PostedAtEpoch: 1000},
			wantReason: "text too long",
		},
		{
			name:       "unknown author",
			msg:        message.Message{PostedBy: author + 99, Text: "hello", PostedAtEpoch: 1000},
			wantReason: "unknown author",
		},
		{
			name:       "zero timestamp",
			msg:        message.Message{PostedBy: author, Text: "hello", PostedAtEpoch: 0},
			wantReason: "bad timestamp",
		},
		{
			name:       "negative timestamp",
			msg:        message.Message{PostedBy: author, Text: "hello", PostedAtEpoch: -7},
			wantReason: "bad timestamp",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), tt.msg)
			wantValidation(t, err, tt.wantReason)
		})
	}
}

func TestCreateTextBoundary(t *testing.T) {
	svc, author := newServiceWithAuthor(t)

	created, err := svc.Create(context.Background(), message.Message{
		PostedBy:      author,
		Text:          strings.Repeat("a", 255),
		PostedAtEpoch: 1000,
	})
	if err != nil {
		t.Fatalf("create with 255 characters: %v", err)
	}
	if created.ID == 0 {
		t.Fatalf("expected id to be generated")
	}

	_, err = svc.Create(context.Background(), message.Message{
		PostedBy:      author,
		Text:          strings.Repeat("a", 256),
		PostedAtEpoch: 1000,
	})
	wantValidation(t, err, "text too long")
}

func TestCreateRoundTrip(t *testing.T) {
	svc, author := newServiceWithAuthor(t)

	created, err := svc.Create(context.Background(), message.Message{
		PostedBy:      author,
		Text:          "hello world ", // trailing whitespace is preserved
		PostedAtEpoch: 1690000000,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	got, found, err := svc.GetByID(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("get by id: %v", err)
	}
	if !found {
		t.Fatalf("expected message %d to exist", created.ID)
	}
	if !reflect.DeepEqual(created, got) {
		t.Fatalf("round trip mismatch: created %+v, got %+v", created, got)
	}
}

func TestUpdateText(t *testing.T) {
	svc, author := newServiceWithAuthor(t)

	created, err := svc.Create(context.Background(), message.Message{
		PostedBy:      author,
		Text:          "original",
		PostedAtEpoch: 1690000000,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	updated, err := svc.UpdateText(context.Background(), created.ID, "revised")
	if err != nil {
		t.Fatalf("update text: %v", err)
	}
	if updated.Text != "revised" {
		t.Fatalf("expected revised text, got %q", updated.Text)
	}
	if updated.PostedBy != created.PostedBy || updated.PostedAtEpoch != created.PostedAtEpoch {
		t.Fatalf("update must not touch author or timestamp: %+v", updated)
	}

	_, err = svc.UpdateText(context.Background(), created.ID, "  ")
	wantValidation(t, err, "blank text")

	_, err = svc.UpdateText(context.Background(), created.ID, strings.Repeat("a", 256))
	wantValidation(t, err, "text too long")
}

func TestUpdateTextAbsent(t *testing.T) {
	svc, _ := newServiceWithAuthor(t)

	// The store reports absence as a valid result; the service turns it
	// into a validation failure.
	_, err := svc.UpdateText(context.Background(), 404, "revised")
	wantValidation(t, err, "message not found")
}

func TestDeleteAbsentIsNoOp(t *testing.T) {
	svc, author := newServiceWithAuthor(t)

	created, err := svc.Create(context.Background(), message.Message{
		PostedBy:      author,
		Text:          "keep me",
		PostedAtEpoch: 1000,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	_, found, err := svc.Delete(context.Background(), created.ID+99)
	if err != nil {
		t.Fatalf("delete absent: %v", err)
	}
	if found {
		t.Fatalf("expected absent delete to report not found")
	}

	all, err := svc.GetAll(context.Background())
	if err != nil {
		t.Fatalf("get all: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("expected table unchanged, got %d messages", len(all))
	}
}

func TestDeleteReturnsSnapshot(t *testing.T) {
	svc, author := newServiceWithAuthor(t)

	created, err := svc.Create(context.Background(), message.Message{
		PostedBy:      author,
		Text:          "short lived",
		PostedAtEpoch: 1000,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	deleted, found, err := svc.Delete(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if !found {
		t.Fatalf("expected delete to find the message")
	}
	if !reflect.DeepEqual(created, deleted) {
		t.Fatalf("expected pre-delete snapshot %+v, got %+v", created, deleted)
	}

	_, found, err = svc.GetByID(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("get by id: %v", err)
	}
	if found {
		t.Fatalf("expected message to be gone")
	}
}

func TestGetByAuthor(t *testing.T) {
	store := memory.New()
	svc := New(store, nil)

	alice, err := store.InsertAccount(context.Background(), "alice", "secret")
	if err != nil {
		t.Fatalf("seed alice: %v", err)
	}
	bob, err := store.InsertAccount(context.Background(), "bob", "secret")
	if err != nil {
		t.Fatalf("seed bob: %v", err)
	}

	for _, text := range []string{"first", "second"} {
		if _, err := svc.Create(context.Background(), message.Message{
			PostedBy:      alice.ID,
			Text:          text,
			PostedAtEpoch: 1000,
		}); err != nil {
			t.Fatalf("create %q: %v", text, err)
		}
	}

	msgs, err := svc.GetByAuthor(context.Background(), alice.ID)
	if err != nil {
		t.Fatalf("get by author: %v", err)
	}
	if len(msgs) != 2 || msgs[0].Text != "first" || msgs[1].Text != "second" {
		t.Fatalf("expected alice's messages in storage order, got %+v", msgs)
	}

	// An author with no messages and a wholly unknown author are
	// indistinguishable: both yield an empty sequence.
	forBob, err := svc.GetByAuthor(context.Background(), bob.ID)
	if err != nil {
		t.Fatalf("get by author (bob): %v", err)
	}
	forUnknown, err := svc.GetByAuthor(context.Background(), 9999)
	if err != nil {
		t.Fatalf("get by author (unknown): %v", err)
	}
	if len(forBob) != 0 || len(forUnknown) != 0 {
		t.Fatalf("expected empty sequences, got %+v and %+v", forBob, forUnknown)
	}
	if !reflect.DeepEqual(forBob, forUnknown) {
		t.Fatalf("expected identical results for empty and unknown authors")
	}
}
