package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"testing"
	"time"

	_ "github.com/lib/pq"

	"github.com/chirper-labs/postline/internal/app/domain/message"
	"github.com/chirper-labs/postline/internal/platform/migrations"
)

func TestStoreIntegration(t *testing.T) {
	dsn := os.Getenv("TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("TEST_POSTGRES_DSN not set; skipping postgres integration test")
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer db.Close()

	ctx := context.Background()
	if err := migrations.Apply(ctx, db); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}

	store := New(db)
	username := fmt.Sprintf("alice-%d", time.Now().UnixNano())

	acct, err := store.InsertAccount(ctx, username, "secret")
	if err != nil {
		t.Fatalf("insert account: %v", err)
	}
	if acct.ID == 0 {
		t.Fatalf("expected generated account id")
	}

	if _, err := store.InsertAccount(ctx, username, "other"); err == nil {
		t.Fatalf("expected duplicate username to fail")
	}

	match, ok, err := store.FindByCredentials(ctx, username, "secret")
	if err != nil || !ok {
		t.Fatalf("find by credentials: ok=%v err=%v", ok, err)
	}
	if match.ID != acct.ID {
		t.Fatalf("expected account %d, got %d", acct.ID, match.ID)
	}

	msg, err := store.InsertMessage(ctx, message.Message{PostedBy: acct.ID, Text: "hello", PostedAtEpoch: 1690000000})
	if err != nil {
		t.Fatalf("insert message: %v", err)
	}

	got, ok, err := store.GetMessage(ctx, msg.ID)
	if err != nil || !ok {
		t.Fatalf("get message: ok=%v err=%v", ok, err)
	}
	if got != msg {
		t.Fatalf("round trip mismatch: %+v vs %+v", msg, got)
	}

	updated, ok, err := store.UpdateMessageText(ctx, msg.ID, "revised")
	if err != nil || !ok {
		t.Fatalf("update message: ok=%v err=%v", ok, err)
	}
	if updated.Text != "revised" || updated.PostedBy != msg.PostedBy || updated.PostedAtEpoch != msg.PostedAtEpoch {
		t.Fatalf("expected only text to change, got %+v", updated)
	}

	byAuthor, err := store.ListMessagesByAuthor(ctx, acct.ID)
	if err != nil {
		t.Fatalf("list by author: %v", err)
	}
	if len(byAuthor) != 1 {
		t.Fatalf("expected 1 message for author, got %d", len(byAuthor))
	}

	deleted, ok, err := store.DeleteMessage(ctx, msg.ID)
	if err != nil || !ok {
		t.Fatalf("delete message: ok=%v err=%v", ok, err)
	}
	if deleted != updated {
		t.Fatalf("expected pre-delete snapshot %+v, got %+v", updated, deleted)
	}

	if _, ok, err := store.DeleteMessage(ctx, msg.ID); err != nil || ok {
		t.Fatalf("expected second delete to find nothing: ok=%v err=%v", ok, err)
	}
}
