// Package session wraps the remote identity and teams services into the
// application's session store
package session

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/islamizindagi/backend/internal/models"
	"github.com/islamizindagi/backend/internal/remote"
	"go.uber.org/zap"
)

// Categorized identity failures, mapped from the identity service's
// numeric status codes
var (
	ErrDuplicateAccount     = errors.New("an account with this email already exists")
	ErrInvalidCredentials   = errors.New("invalid email or password")
	ErrRateLimited          = errors.New("too many attempts, please try again later")
	ErrServiceMisconfigured = errors.New("authentication service is not configured")
)

// AdminTeamName grants the admin role to members of a team with this
// literal name, in addition to the configured admin team id
const AdminTeamName = "admins"

// Accounts is the interface that wraps the identity service contract.
type Accounts interface {
	// CreateAccount registers a new account with the identity service.
	//
	// "email", "password" and "name" describe the new account.
	//
	// Returns the created identity and an error if any.
	CreateAccount(ctx context.Context, email, password, name string) (*remote.Identity, error)
	// CreateSession exchanges credentials for a new session.
	//
	// "email" and "password" are the user's credentials.
	//
	// Returns the session (including its secret) and an error if any.
	CreateSession(ctx context.Context, email, password string) (*remote.Session, error)
	// GetIdentity fetches the identity bound to the session in the context.
	//
	// Returns the identity and an error if any.
	GetIdentity(ctx context.Context) (*remote.Identity, error)
	// UpdateName changes the display name of the current identity.
	UpdateName(ctx context.Context, name string) error
	// UpdatePassword changes the password of the current identity.
	UpdatePassword(ctx context.Context, newPassword, oldPassword string) error
	// CreateVerification asks the identity service to send a verification email.
	CreateVerification(ctx context.Context, redirectURL string) error
	// ConfirmVerification confirms an email verification token.
	ConfirmVerification(ctx context.Context, userID, secret string) error
	// DeleteSession invalidates the current session.
	DeleteSession(ctx context.Context) error
}

// Teams is the interface that wraps the team membership contract.
type Teams interface {
	// ListTeams returns the teams the current session's identity belongs to.
	ListTeams(ctx context.Context) ([]remote.Team, error)
}

// sessionStore implements the session store over the remote identity service
type sessionStore struct {
	accounts        Accounts
	teams           Teams
	adminTeamID     string
	verificationURL string
	logger          *zap.Logger
}

// NewStore creates a new session store
func NewStore(accounts Accounts, teams Teams, adminTeamID, verificationURL string, logger *zap.Logger) *sessionStore {
	return &sessionStore{
		accounts:        accounts,
		teams:           teams,
		adminTeamID:     adminTeamID,
		verificationURL: verificationURL,
		logger:          logger,
	}
}

// Login exchanges credentials for a session and resolves the user's role.
// The returned secret authenticates follow-up remote calls for this user.
func (s *sessionStore) Login(ctx context.Context, email, password string) (*models.AuthUser, string, error) {
	sess, err := s.accounts.CreateSession(ctx, email, password)
	if err != nil {
		return nil, "", categorizeIdentityError(err)
	}

	user, err := s.Current(remote.WithSessionSecret(ctx, sess.Secret))
	if err != nil {
		return nil, "", fmt.Errorf("failed to resolve identity after login: %w", err)
	}
	return user, sess.Secret, nil
}

// Register creates an account, opens a session for it, and sends the
// verification email. A failed verification send does not fail
// registration; it is logged and the user can request a resend.
func (s *sessionStore) Register(ctx context.Context, email, password, name string) (*models.AuthUser, string, error) {
	if _, err := s.accounts.CreateAccount(ctx, email, password, name); err != nil {
		return nil, "", categorizeIdentityError(err)
	}

	sess, err := s.accounts.CreateSession(ctx, email, password)
	if err != nil {
		return nil, "", categorizeIdentityError(err)
	}

	authedCtx := remote.WithSessionSecret(ctx, sess.Secret)
	if err := s.accounts.CreateVerification(authedCtx, s.verificationURL); err != nil {
		s.logger.Warn("failed to send verification email after registration", zap.Error(err))
	}

	user, err := s.Current(authedCtx)
	if err != nil {
		return nil, "", fmt.Errorf("failed to resolve identity after registration: %w", err)
	}
	return user, sess.Secret, nil
}

// Logout invalidates the remote session. The local identity is cleared
// regardless of the remote outcome, so a remote failure is logged and
// swallowed rather than returned.
func (s *sessionStore) Logout(ctx context.Context) {
	if err := s.accounts.DeleteSession(ctx); err != nil {
		s.logger.Warn("failed to delete remote session on logout", zap.Error(err))
	}
}

// UpdateProfile applies name and/or password changes to the current identity
func (s *sessionStore) UpdateProfile(ctx context.Context, req *models.UpdateProfileRequest) error {
	if req.Name != "" {
		if err := s.accounts.UpdateName(ctx, req.Name); err != nil {
			return categorizeIdentityError(err)
		}
	}
	if req.Password != "" {
		if err := s.accounts.UpdatePassword(ctx, req.Password, req.OldPassword); err != nil {
			return categorizeIdentityError(err)
		}
	}
	return nil
}

// SendVerificationEmail asks the identity service to (re)send the
// verification email for the current identity
func (s *sessionStore) SendVerificationEmail(ctx context.Context) error {
	if err := s.accounts.CreateVerification(ctx, s.verificationURL); err != nil {
		return categorizeIdentityError(err)
	}
	return nil
}

// ConfirmVerification confirms an email verification token
func (s *sessionStore) ConfirmVerification(ctx context.Context, userID, secret string) error {
	if err := s.accounts.ConfirmVerification(ctx, userID, secret); err != nil {
		return categorizeIdentityError(err)
	}
	return nil
}

// Current resolves the identity and role for the session in the context.
// Role resolution always costs two remote round trips (identity + teams);
// nothing is cached between calls.
func (s *sessionStore) Current(ctx context.Context) (*models.AuthUser, error) {
	identity, err := s.accounts.GetIdentity(ctx)
	if err != nil {
		return nil, categorizeIdentityError(err)
	}

	role := models.RoleUser
	teams, err := s.teams.ListTeams(ctx)
	if err != nil {
		// A failed team lookup downgrades to the user role rather than
		// failing the whole identity check
		s.logger.Warn("failed to list teams for role resolution", zap.Error(err))
	} else {
		for _, team := range teams {
			if team.ID == s.adminTeamID || team.Name == AdminTeamName {
				role = models.RoleAdmin
				break
			}
		}
	}

	return &models.AuthUser{
		ID:            identity.ID,
		Name:          identity.Name,
		Email:         identity.Email,
		EmailVerified: identity.EmailVerified,
		Role:          role,
	}, nil
}

// categorizeIdentityError maps identity service status codes onto the
// user-facing error taxonomy; unrecognized failures pass through wrapped
func categorizeIdentityError(err error) error {
	switch remote.ErrorCode(err) {
	case http.StatusConflict:
		return ErrDuplicateAccount
	case http.StatusBadRequest, http.StatusUnauthorized:
		return ErrInvalidCredentials
	case http.StatusTooManyRequests:
		return ErrRateLimited
	case http.StatusNotImplemented:
		return ErrServiceMisconfigured
	default:
		return err
	}
}
