// Package services contains the server-side business logic. This file
// implements SessionService, which orchestrates registration, login, and
// refresh-token rotation/revocation.
package services

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/lotfi029/FreelancerAssignment/internal/apperrors"
	"github.com/lotfi029/FreelancerAssignment/internal/dbx"
	"github.com/lotfi029/FreelancerAssignment/internal/logging"
	"github.com/lotfi029/FreelancerAssignment/internal/server/auth"
	"github.com/lotfi029/FreelancerAssignment/internal/server/models"
	"github.com/lotfi029/FreelancerAssignment/internal/server/repositories/repomanager"
)

// Credentials is the bundle returned by every successful session operation
// that issues tokens.
type Credentials struct {
	ID                     string    `json:"id"`
	Email                  string    `json:"email"`
	Username               string    `json:"username"`
	AccessToken            string    `json:"token"`
	ExpiresIn              int       `json:"expiresIn"`
	RefreshToken           string    `json:"refreshToken"`
	RefreshTokenExpiration time.Time `json:"refreshTokenExpiration"`
}

// SessionService handles the authentication lifecycle:
//   - Register: create users and issue the first token pair
//   - Login: verify credentials and mint tokens
//   - RefreshToken: rotate a consumed refresh token, single use
//   - RevokeRefreshToken: kill a refresh token without reissuing
//
// Domain-rule failures come back as coded apperrors values; anything
// unexpected is logged and converted to an operation-specific catch-all
// code, never surfaced raw.
type SessionService struct {
	db     *sql.DB
	repos  repomanager.RepositoryManager
	issuer *auth.Issuer
	logger logging.Logger
}

// NewSessionService constructs a SessionService from its collaborators.
func NewSessionService(db *sql.DB, repos repomanager.RepositoryManager, issuer *auth.Issuer, logger logging.Logger) *SessionService {
	return &SessionService{db: db, repos: repos, issuer: issuer, logger: logger}
}

// Login verifies usernameOrEmail+password and issues a fresh token pair.
// Unknown user and wrong password both yield InvalidCredentials: login
// failures must not reveal whether the account exists.
func (s *SessionService) Login(ctx context.Context, usernameOrEmail, password string) (*Credentials, error) {
	creds, err := s.login(ctx, usernameOrEmail, password)
	if err != nil {
		return nil, s.fail(ctx, "LoginUserError", "error logging in user", err)
	}
	return creds, nil
}

func (s *SessionService) login(ctx context.Context, usernameOrEmail, password string) (*Credentials, error) {
	user, err := s.repos.Users(s.db).FindByEmailOrUsername(ctx, usernameOrEmail)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, apperrors.ErrInvalidCredentials
	}

	var creds *Credentials
	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		now := time.Now()
		if err := s.repos.Users(tx).UpdateLastLogin(ctx, user.ID, now); err != nil {
			return err
		}
		var issueErr error
		creds, issueErr = s.issueCredentials(ctx, tx, user, now)
		return issueErr
	})
	if err != nil {
		return nil, err
	}
	return creds, nil
}

// Register creates a new account and issues its first token pair. The
// uniqueness checks are sequential: a username conflict is reported even
// when the email conflicts too.
func (s *SessionService) Register(ctx context.Context, username, password, email string) (*Credentials, error) {
	creds, err := s.register(ctx, username, password, email)
	if err != nil {
		return nil, s.fail(ctx, "RegisterUserError", "error registering user", err)
	}
	return creds, nil
}

func (s *SessionService) register(ctx context.Context, username, password, email string) (*Credentials, error) {
	repo := s.repos.Users(s.db)

	taken, err := repo.UsernameExists(ctx, username)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, apperrors.ErrUsernameNotUnique
	}

	taken, err = repo.EmailExists(ctx, email)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, apperrors.ErrEmailNotUnique
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	var creds *Credentials
	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		user, err := s.repos.Users(tx).Create(ctx, &models.User{
			Username:     username,
			Email:        email,
			PasswordHash: string(hash),
		})
		if err != nil {
			return err
		}
		creds, err = s.issueCredentials(ctx, tx, user, time.Now())
		return err
	})
	if err != nil {
		return nil, err
	}
	return creds, nil
}

// RefreshToken exchanges a valid access-token/refresh-token pair for a new
// one. The consumed refresh token is revoked in the same transaction that
// stores its replacement, so it is single use.
func (s *SessionService) RefreshToken(ctx context.Context, accessToken, refreshToken string) (*Credentials, error) {
	creds, err := s.refresh(ctx, accessToken, refreshToken, true)
	if err != nil {
		return nil, s.fail(ctx, "RefreshTokenError", "error refreshing token", err)
	}
	return creds, nil
}

// RevokeRefreshToken kills the given refresh token without issuing a
// replacement. Validation is identical to RefreshToken.
func (s *SessionService) RevokeRefreshToken(ctx context.Context, accessToken, refreshToken string) error {
	if _, err := s.refresh(ctx, accessToken, refreshToken, false); err != nil {
		return s.fail(ctx, "RevokeRefreshTokenError", "error revoking refresh token", err)
	}
	return nil
}

// refresh implements the shared validate-then-rotate flow. The access token
// only has to carry a valid signature; possession of a still-active refresh
// token is what proves the session (see auth.Issuer.Subject).
func (s *SessionService) refresh(ctx context.Context, accessToken, refreshToken string, reissue bool) (*Credentials, error) {
	userID, err := s.issuer.Subject(accessToken)
	if err != nil {
		return nil, apperrors.ErrInvalidToken
	}

	user, err := s.repos.Users(s.db).FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrInvalidUserID
		}
		return nil, err
	}

	user.RefreshTokens, err = s.repos.RefreshTokens(s.db).ListForUser(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	match := user.FindActiveRefreshToken(refreshToken, now)
	if match == nil {
		return nil, apperrors.ErrNoRefreshToken
	}

	var creds *Credentials
	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.repos.RefreshTokens(tx).Revoke(ctx, match.ID, now); err != nil {
			return err
		}
		if !reissue {
			return nil
		}
		var issueErr error
		creds, issueErr = s.issueCredentials(ctx, tx, user, now)
		return issueErr
	})
	if err != nil {
		return nil, err
	}
	match.Revoke(now)
	return creds, nil
}

// issueCredentials mints an access token and a refresh token for the user
// and stores the refresh token inside the caller's transaction.
func (s *SessionService) issueCredentials(ctx context.Context, tx dbx.DBTX, user *models.User, now time.Time) (*Credentials, error) {
	accessToken, expiresIn, err := s.issuer.GenerateAccessToken(user.ID, user.Email, user.Username)
	if err != nil {
		return nil, err
	}

	refreshValue, refreshExpires, err := auth.NewRefreshToken(now)
	if err != nil {
		return nil, err
	}

	token := &models.RefreshToken{UserID: user.ID, Token: refreshValue, ExpiresAt: refreshExpires}
	if err := s.repos.RefreshTokens(tx).Create(ctx, token); err != nil {
		return nil, err
	}
	user.RefreshTokens = append(user.RefreshTokens, token)

	return &Credentials{
		ID:                     user.ID,
		Email:                  user.Email,
		Username:               user.Username,
		AccessToken:            accessToken,
		ExpiresIn:              expiresIn,
		RefreshToken:           refreshValue,
		RefreshTokenExpiration: refreshExpires,
	}, nil
}

func (s *SessionService) fail(ctx context.Context, code, msg string, err error) error {
	return convertError(ctx, s.logger, code, msg, err)
}
