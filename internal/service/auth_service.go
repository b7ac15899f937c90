package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/campus-kit/society-events/internal/auth"
	"github.com/campus-kit/society-events/internal/config"
	"github.com/campus-kit/society-events/internal/domain"
	"github.com/campus-kit/society-events/internal/events"
	"github.com/campus-kit/society-events/internal/repository"
	apperrors "github.com/campus-kit/society-events/pkg/util"
)

// AuthService coordinates signup, login and credential recovery.
type AuthService struct {
	users         repository.UserRepository
	verifications repository.VerificationRepository
	dispatcher    events.Dispatcher
	tokenMgr      *auth.TokenManager
	bcryptCost    int
}

// AuthDependencies encapsulates repo requirements for auth service.
type AuthDependencies struct {
	UserRepo         repository.UserRepository
	VerificationRepo repository.VerificationRepository
	Dispatcher       events.Dispatcher
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, deps AuthDependencies) *AuthService {
	return &AuthService{
		users:         deps.UserRepo,
		verifications: deps.VerificationRepo,
		dispatcher:    deps.Dispatcher,
		tokenMgr:      auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLHour),
		bcryptCost:    cfg.Auth.BcryptCost,
	}
}

// Signup creates a new account, a newUser verification code, and emits
// the signed-up event so the verification email goes out.
func (s *AuthService) Signup(ctx context.Context, name, email, password string) (*domain.User, error) {
	if name == "" || email == "" || password == "" {
		return nil, apperrors.NewConflict("name, email and password cannot be empty", nil)
	}

	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, apperrors.NewConflict("user already exists", nil)
	} else if err != pgx.ErrNoRows {
		return nil, err
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         domain.UserRoleStandard,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	verification := &domain.Verification{
		UserID: user.ID,
		Code:   uuid.NewString(),
		Type:   domain.VerificationTypeNewUser,
	}
	if err := s.verifications.Create(ctx, verification); err != nil {
		return nil, err
	}

	s.publish(ctx, events.Event{
		Type:   events.EventUserSignedUp,
		UserID: user.ID,
		Payload: events.UserSignedUpPayload{
			Name:             user.Name,
			Email:            user.Email,
			VerificationCode: verification.Code,
		},
	})
	return user, nil
}

// Login authenticates a user and issues a token.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if err == pgx.ErrNoRows {
			return "", apperrors.NewNotFound("user", nil)
		}
		return "", err
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return "", apperrors.NewUnauthorized("invalid password")
	}
	token, _, err := s.tokenMgr.GenerateToken(user.ID, user.Role)
	if err != nil {
		return "", err
	}
	return token, nil
}

// ForgotPassword records a forgotPassword verification and emits the
// reset event. The code has no expiry; it dies when consumed.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if err == pgx.ErrNoRows {
			return apperrors.NewNotFound("user", nil)
		}
		return err
	}

	verification := &domain.Verification{
		UserID: user.ID,
		Code:   uuid.NewString(),
		Type:   domain.VerificationTypeForgotPassword,
	}
	if err := s.verifications.Create(ctx, verification); err != nil {
		return err
	}

	s.publish(ctx, events.Event{
		Type:   events.EventPasswordResetRequested,
		UserID: user.ID,
		Payload: events.PasswordResetRequestedPayload{
			Name:             user.Name,
			Email:            user.Email,
			VerificationCode: verification.Code,
		},
	})
	return nil
}

// ResetPassword consumes a forgotPassword verification, updates the hash
// and returns a fresh token.
func (s *AuthService) ResetPassword(ctx context.Context, code, userID, newPassword string) (string, error) {
	verification, err := s.verifications.GetByCode(ctx, code, userID, domain.VerificationTypeForgotPassword)
	if err != nil {
		if err == pgx.ErrNoRows {
			return "", apperrors.NewUnauthorized("invalid verification code")
		}
		return "", err
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return "", err
	}

	if newPassword == "" {
		return "", apperrors.NewConflict("new password cannot be empty", nil)
	}
	if len(newPassword) < 8 {
		return "", apperrors.NewConflict("new password must be at least 8 characters", nil)
	}
	if auth.ComparePassword(user.PasswordHash, newPassword) == nil {
		return "", apperrors.NewConflict("new password cannot be the same as the old password", nil)
	}

	hash, err := auth.HashPassword(newPassword, s.bcryptCost)
	if err != nil {
		return "", err
	}
	user.PasswordHash = hash
	if err := s.users.Update(ctx, user); err != nil {
		return "", err
	}

	if err := s.verifications.Delete(ctx, verification.ID); err != nil {
		return "", err
	}

	token, _, err := s.tokenMgr.GenerateToken(user.ID, user.Role)
	if err != nil {
		return "", err
	}
	return token, nil
}

// VerifyAccount consumes a newUser verification and marks the account
// verified.
func (s *AuthService) VerifyAccount(ctx context.Context, code, userID string) error {
	verification, err := s.verifications.GetByCode(ctx, code, userID, domain.VerificationTypeNewUser)
	if err != nil {
		if err == pgx.ErrNoRows {
			return apperrors.NewNotFound("verification code", nil)
		}
		return err
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if !user.Verified {
		user.Verified = true
		if err := s.users.Update(ctx, user); err != nil {
			return err
		}
	}

	return s.verifications.Delete(ctx, verification.ID)
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

func (s *AuthService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}
