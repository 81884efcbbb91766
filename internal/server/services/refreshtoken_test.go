package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/gamecatalog/authservice/internal/common"
	"github.com/gamecatalog/authservice/internal/server/config"
	"github.com/gamecatalog/authservice/internal/server/models"
)

func newRefreshService(t *testing.T, rm *fakeRepoManager, validity time.Duration) *RefreshTokenService {
	t.Helper()
	db, _ := newSQLMockDB(t)
	t.Cleanup(func() { db.Close() })
	cfg := &config.Config{RefreshTokenValidityDuration: validity}
	return NewRefreshTokenService(db, rm, cfg)
}

func TestRefreshTokenCreate(t *testing.T) {
	rm := &fakeRepoManager{u: newFakeUsersRepo(existingUser()), r: newFakeRefreshRepo()}
	s := newRefreshService(t, rm, time.Hour)

	rt, err := s.Create(context.Background(), "john.doe@example.com")
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if rt.UserID != "u1" {
		t.Fatalf("token owner: got %q", rt.UserID)
	}
	// 32 random bytes hex-encoded
	if len(rt.Token) != 64 {
		t.Fatalf("token length: got %d", len(rt.Token))
	}
	if time.Until(rt.ExpiresAt) <= 0 {
		t.Fatalf("fresh token already expired: %v", rt.ExpiresAt)
	}
}

func TestRefreshTokenCreate_ReplacesExisting(t *testing.T) {
	prior := &models.RefreshToken{Token: "old", UserID: "u1", ExpiresAt: time.Now().Add(time.Hour)}
	rm := &fakeRepoManager{u: newFakeUsersRepo(existingUser()), r: newFakeRefreshRepo(prior)}
	s := newRefreshService(t, rm, time.Hour)

	rt, err := s.Create(context.Background(), "john.doe@example.com")
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if rt.Token == "old" {
		t.Fatal("expected a fresh token")
	}

	current, err := rm.r.FindByUser(context.Background(), "u1")
	if err != nil {
		t.Fatalf("FindByUser error: %v", err)
	}
	if current.Token != rt.Token {
		t.Fatalf("user must hold exactly the new token, got %q", current.Token)
	}
}

func TestRefreshTokenCreate_UnknownUser(t *testing.T) {
	rm := &fakeRepoManager{u: newFakeUsersRepo(), r: newFakeRefreshRepo()}
	s := newRefreshService(t, rm, time.Hour)

	_, err := s.Create(context.Background(), "ghost@example.com")
	if !errors.Is(err, common.ErrUserNotFound) {
		t.Fatalf("want ErrUserNotFound, got %v", err)
	}
}

func TestVerifyExpiration_Live(t *testing.T) {
	rm := &fakeRepoManager{u: newFakeUsersRepo(), r: newFakeRefreshRepo()}
	s := newRefreshService(t, rm, time.Hour)

	live := &models.RefreshToken{Token: "live", UserID: "u1", ExpiresAt: time.Now().Add(time.Minute)}
	got, err := s.VerifyExpiration(context.Background(), live)
	if err != nil {
		t.Fatalf("VerifyExpiration error: %v", err)
	}
	if got != live {
		t.Fatal("live token must be returned unchanged")
	}
	if len(rm.r.deleted) != 0 {
		t.Fatalf("live token must not be deleted, deleted=%v", rm.r.deleted)
	}
}

func TestVerifyExpiration_ExpiredDeletes(t *testing.T) {
	stale := &models.RefreshToken{Token: "stale", UserID: "u1", ExpiresAt: time.Now().Add(-time.Second)}
	rm := &fakeRepoManager{u: newFakeUsersRepo(), r: newFakeRefreshRepo(stale)}
	s := newRefreshService(t, rm, time.Hour)

	_, err := s.VerifyExpiration(context.Background(), stale)
	if !errors.Is(err, common.ErrRefreshTokenExpired) {
		t.Fatalf("want ErrRefreshTokenExpired, got %v", err)
	}
	if len(rm.r.deleted) != 1 || rm.r.deleted[0] != "stale" {
		t.Fatalf("expired row must be deleted, deleted=%v", rm.r.deleted)
	}
}
