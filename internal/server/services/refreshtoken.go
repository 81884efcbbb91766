package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/gamecatalog/authservice/internal/common"
	"github.com/gamecatalog/authservice/internal/dbx"
	"github.com/gamecatalog/authservice/internal/server/config"
	"github.com/gamecatalog/authservice/internal/server/models"
	"github.com/gamecatalog/authservice/internal/server/repositories/repomanager"
)

// RefreshTokenService owns the refresh-token lifecycle: minting opaque
// random tokens, lookups, and lazy expiry. Tokens are never rotated on use;
// the same string is returned until it expires, at which point the row is
// deleted and the client must re-authenticate.
type RefreshTokenService struct {
	db       *sql.DB
	repos    repomanager.RepositoryManager
	validity time.Duration
}

// NewRefreshTokenService constructs a RefreshTokenService using the
// configured refresh-token validity duration.
func NewRefreshTokenService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *RefreshTokenService {
	return &RefreshTokenService{db: db, repos: m, validity: cfg.RefreshTokenValidityDuration}
}

// Create mints a fresh refresh token for the user registered under email.
// Any prior token row for that user is replaced atomically.
func (s *RefreshTokenService) Create(ctx context.Context, email string) (*models.RefreshToken, error) {
	user, err := s.repos.Users(s.db).GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrUserNotFound
		}
		return nil, fmt.Errorf("error loading user: %v", err)
	}
	return s.create(ctx, s.db, user.ID)
}

// create is the transaction-aware variant used when minting must share a
// transaction with other writes.
func (s *RefreshTokenService) create(ctx context.Context, db dbx.DBTX, userID string) (*models.RefreshToken, error) {
	token, err := common.MakeRandHexString(32)
	if err != nil {
		return nil, common.ErrorInternal
	}
	rt, err := s.repos.RefreshTokens(db).Upsert(ctx, userID, token, s.validity)
	if err != nil {
		return nil, fmt.Errorf("error storing refresh token: %v", err)
	}
	return rt, nil
}

// FindByToken looks a refresh token up by its opaque string. Absent tokens
// yield common.ErrorNotFound.
func (s *RefreshTokenService) FindByToken(ctx context.Context, token string) (*models.RefreshToken, error) {
	return s.repos.RefreshTokens(s.db).Find(ctx, token)
}

// FindByUser returns the user's current refresh token row, if any.
func (s *RefreshTokenService) FindByUser(ctx context.Context, userID string) (*models.RefreshToken, error) {
	return s.repos.RefreshTokens(s.db).FindByUser(ctx, userID)
}

// VerifyExpiration returns the token unchanged while it is still live. An
// expired token is deleted and ErrRefreshTokenExpired returned; the caller
// must mint a new one or force re-authentication.
func (s *RefreshTokenService) VerifyExpiration(ctx context.Context, token *models.RefreshToken) (*models.RefreshToken, error) {
	if token.Expired(time.Now()) {
		if err := s.repos.RefreshTokens(s.db).Delete(ctx, token.Token); err != nil {
			return nil, fmt.Errorf("error deleting refresh token: %v", err)
		}
		return nil, common.ErrRefreshTokenExpired
	}
	return token, nil
}
