package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/atinyakov/receipts/internal/models"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type mockEventRepo struct {
	InsertEventFunc func(ctx context.Context, ev models.AuthEvent) error
}

func (m *mockEventRepo) InsertEvent(ctx context.Context, ev models.AuthEvent) error {
	return m.InsertEventFunc(ctx, ev)
}

func TestRecord_Success(t *testing.T) {
	var got models.AuthEvent
	called := false
	repo := &mockEventRepo{
		InsertEventFunc: func(ctx context.Context, ev models.AuthEvent) error {
			called = true
			got = ev
			return nil
		},
	}
	svc := NewJournalService(repo, nil)
	svc.now = func() time.Time { return time.Unix(1700000000, 0) }

	svc.Record(context.Background(), models.EventLogoutFailed, "/logout", "remote logout failed")

	if !called {
		t.Fatal("expected InsertEvent to be called on repo")
	}
	if _, err := uuid.Parse(got.ID); err != nil {
		t.Errorf("ID = %q; want a uuid: %v", got.ID, err)
	}
	if got.Kind != models.EventLogoutFailed || got.Path != "/logout" || got.Detail != "remote logout failed" {
		t.Errorf("event = %+v; unexpected fields", got)
	}
	if got.CreatedAt != 1700000000 {
		t.Errorf("CreatedAt = %d; want %d", got.CreatedAt, 1700000000)
	}
}

func TestRecord_ErrorIsLogged(t *testing.T) {
	repo := &mockEventRepo{
		InsertEventFunc: func(ctx context.Context, ev models.AuthEvent) error {
			return errors.New("insert failed")
		},
	}
	core, logs := observer.New(zapcore.ErrorLevel)
	svc := NewJournalService(repo, zap.New(core))

	svc.Record(context.Background(), models.EventLogout, "/logout", "")

	if n := logs.FilterMessage("failed to record auth event").Len(); n != 1 {
		t.Errorf("error logs = %d; want 1", n)
	}
}

func TestRecord_WithoutRepository(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	svc := NewJournalService(nil, zap.New(core))

	svc.Record(context.Background(), models.EventGateRedirect, "/landing", "missing session cookie")

	if n := logs.FilterMessage("auth event").Len(); n != 1 {
		t.Errorf("debug logs = %d; want 1", n)
	}
}
