package service_test

import (
	"context"
	"testing"

	"github.com/ana-coahuila/META-FIT-PROJECT/internal/service"
	"github.com/ana-coahuila/META-FIT-PROJECT/internal/session"
)

func TestTokenStoreRoundTrip(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := &service.TokenStore{DB: newTestDB(t)}

	if _, ok, err := store.LoadToken(ctx); err != nil || ok {
		t.Fatalf("expected no token, got ok=%v err=%v", ok, err)
	}
	if err := store.SaveToken(ctx, "first"); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := store.SaveToken(ctx, "second"); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	tok, ok, err := store.LoadToken(ctx)
	if err != nil || !ok || tok != "second" {
		t.Fatalf("unexpected token %q %v %v", tok, ok, err)
	}
	if err := store.DeleteToken(ctx); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, ok, _ := store.LoadToken(ctx); ok {
		t.Fatalf("expected token removed")
	}
}

func TestTokenStoreBacksGate(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	sqldb := newTestDB(t)

	g, err := session.Open(ctx, &service.TokenStore{DB: sqldb})
	if err != nil {
		t.Fatalf("open gate: %v", err)
	}
	if _, err := g.RequireToken(); err != session.ErrLoginRequired {
		t.Fatalf("expected login required, got %v", err)
	}
	if err := g.Set(ctx, "tok"); err != nil {
		t.Fatalf("set: %v", err)
	}

	reopened, err := session.Open(ctx, &service.TokenStore{DB: sqldb})
	if err != nil {
		t.Fatalf("reopen gate: %v", err)
	}
	if tok, err := reopened.RequireToken(); err != nil || tok != "tok" {
		t.Fatalf("expected persisted token, got %q %v", tok, err)
	}
}
