// Package services contains the server-side business logic. AuthService is
// the orchestrator for the register / authenticate / refresh flows;
// RefreshTokenService owns the refresh-token lifecycle.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/gamecatalog/authservice/internal/common"
	"github.com/gamecatalog/authservice/internal/dbx"
	"github.com/gamecatalog/authservice/internal/server/auth"
	"github.com/gamecatalog/authservice/internal/server/hash"
	"github.com/gamecatalog/authservice/internal/server/models"
	"github.com/gamecatalog/authservice/internal/server/repositories/repomanager"
)

// TokenPair bundles a short-lived signed access token and the opaque
// refresh token string returned to the caller.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// AuthService coordinates the credential store, password hasher, token
// signer, and refresh-token lifecycle.
type AuthService struct {
	db      *sql.DB
	repos   repomanager.RepositoryManager
	hasher  hash.Hasher
	signer  *auth.Signer
	refresh *RefreshTokenService
}

// NewAuthService constructs the orchestrator from its collaborators.
func NewAuthService(db *sql.DB, m repomanager.RepositoryManager, h hash.Hasher, signer *auth.Signer, refresh *RefreshTokenService) *AuthService {
	return &AuthService{db: db, repos: m, hasher: h, signer: signer, refresh: refresh}
}

// Register creates a new account with the default user role and returns its
// first token pair. A duplicate email fails with ErrEmailAlreadyInUse before
// any store mutation.
func (s *AuthService) Register(ctx context.Context, firstName, lastName, email, password string) (*TokenPair, error) {
	exists, err := s.repos.Users(s.db).ExistsByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("error checking email: %v", err)
	}
	if exists {
		return nil, common.ErrEmailAlreadyInUse
	}

	digest, err := s.hasher.Hash(password)
	if err != nil {
		return nil, common.ErrorInternal
	}

	user := &models.User{
		FirstName:    firstName,
		LastName:     lastName,
		Email:        email,
		PasswordHash: digest,
		Role:         models.RoleUser,
	}

	var refreshToken *models.RefreshToken
	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		created, err := s.repos.Users(tx).Create(ctx, user)
		if err != nil {
			return fmt.Errorf("error creating user: %v", err)
		}
		refreshToken, err = s.refresh.create(ctx, tx, created.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	accessToken, err := s.issueAccessToken(user)
	if err != nil {
		return nil, common.ErrorInternal
	}

	return &TokenPair{AccessToken: accessToken, RefreshToken: refreshToken.Token}, nil
}

// Authenticate verifies an email/password pair and returns a token pair.
// Unknown email and wrong password collapse into the same
// ErrInvalidCredentials so the caller cannot tell which part was wrong.
// A still-valid refresh token is reused; an absent or expired one is
// replaced.
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (*TokenPair, error) {
	user, err := s.repos.Users(s.db).GetByEmail(ctx, email)
	if err != nil {
		return nil, common.ErrInvalidCredentials
	}
	if !s.hasher.Verify(password, user.PasswordHash) {
		return nil, common.ErrInvalidCredentials
	}

	accessToken, err := s.issueAccessToken(user)
	if err != nil {
		return nil, common.ErrorInternal
	}

	refreshToken, err := s.resolveRefreshToken(ctx, user)
	if err != nil {
		return nil, err
	}

	return &TokenPair{AccessToken: accessToken, RefreshToken: refreshToken.Token}, nil
}

// Refresh mints a new access token against a live refresh token. The
// refresh token string itself is returned unchanged; it is never rotated by
// this flow. An expired token has already been deleted by the expiry check
// when the error returns.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	token, err := s.refresh.FindByToken(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrRefreshTokenInvalid
		}
		return nil, fmt.Errorf("error searching refresh token: %v", err)
	}

	token, err = s.refresh.VerifyExpiration(ctx, token)
	if err != nil {
		return nil, err
	}

	user, err := s.repos.Users(s.db).GetByID(ctx, token.UserID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrUserNotFound
		}
		return nil, fmt.Errorf("error loading user: %v", err)
	}

	accessToken, err := s.issueAccessToken(user)
	if err != nil {
		return nil, common.ErrorInternal
	}

	return &TokenPair{AccessToken: accessToken, RefreshToken: token.Token}, nil
}

// GetUser returns the account registered under email.
func (s *AuthService) GetUser(ctx context.Context, email string) (*models.User, error) {
	user, err := s.repos.Users(s.db).GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrUserNotFound
		}
		return nil, fmt.Errorf("error loading user: %v", err)
	}
	return user, nil
}

// issueAccessToken signs a token with the user's email as subject and the
// role as an extra claim.
func (s *AuthService) issueAccessToken(user *models.User) (string, error) {
	return s.signer.Issue(user.Email, map[string]any{"role": user.Role.String()})
}

// resolveRefreshToken reuses the user's live refresh token or mints a new
// one when none exists or the existing one has expired.
func (s *AuthService) resolveRefreshToken(ctx context.Context, user *models.User) (*models.RefreshToken, error) {
	existing, err := s.refresh.FindByUser(ctx, user.ID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return s.refresh.create(ctx, s.db, user.ID)
		}
		return nil, fmt.Errorf("error searching refresh token: %v", err)
	}

	verified, err := s.refresh.VerifyExpiration(ctx, existing)
	if err != nil {
		if errors.Is(err, common.ErrRefreshTokenExpired) {
			return s.refresh.create(ctx, s.db, user.ID)
		}
		return nil, err
	}
	return verified, nil
}
