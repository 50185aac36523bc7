package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/telemedika/teleconsult-api/internal/email"
	"github.com/telemedika/teleconsult-api/internal/model"
	"github.com/telemedika/teleconsult-api/internal/repository"
	"github.com/telemedika/teleconsult-api/internal/session"
	"github.com/telemedika/teleconsult-api/pkg/auth"
	apperrors "github.com/telemedika/teleconsult-api/pkg/errors"
	"github.com/telemedika/teleconsult-api/pkg/security"
)

const (
	tokenExpiry      = 24 * time.Hour
	resetTokenExpiry = 1 * time.Hour
)

type Service struct {
	userRepo  repository.UserRepository
	tokenRepo repository.TokenRepository
	jwtSvc    auth.JWTService
	hasher    security.PasswordHasher
	emailSvc  email.Service
	sessions  session.Store
}

func NewService(userRepo repository.UserRepository, tokenRepo repository.TokenRepository,
	jwtSvc auth.JWTService, hasher security.PasswordHasher, emailSvc email.Service,
	sessions session.Store) *Service {
	return &Service{
		userRepo:  userRepo,
		tokenRepo: tokenRepo,
		jwtSvc:    jwtSvc,
		hasher:    hasher,
		emailSvc:  emailSvc,
		sessions:  sessions,
	}
}

// RegisterPatient creates an identity flagged as patient together with its
// profile. The repository persists both in one transaction.
func (s *Service) RegisterPatient(ctx context.Context, req *model.RegisterPatientRequest) (*model.User, error) {
	if err := s.checkAvailability(ctx, req.Username, req.Email); err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, apperrors.Validation("invalid password", err)
	}

	user := &model.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
		IsPatient:    true,
	}
	profile := &model.PatientProfile{
		PhoneNumber: req.PhoneNumber,
		Address:     req.Address,
	}

	if err := s.userRepo.CreatePatient(ctx, user, profile); err != nil {
		return nil, fmt.Errorf("failed to register patient: %w", err)
	}
	return user, nil
}

// RegisterDoctor creates an identity flagged as doctor together with its
// profile.
func (s *Service) RegisterDoctor(ctx context.Context, req *model.RegisterDoctorRequest) (*model.User, error) {
	if err := s.checkAvailability(ctx, req.Username, req.Email); err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, apperrors.Validation("invalid password", err)
	}

	user := &model.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
		IsDoctor:     true,
	}
	profile := &model.DoctorProfile{
		Specialty:     req.Specialty,
		LicenseNumber: req.LicenseNumber,
	}

	if err := s.userRepo.CreateDoctor(ctx, user, profile); err != nil {
		return nil, fmt.Errorf("failed to register doctor: %w", err)
	}
	return user, nil
}

func (s *Service) checkAvailability(ctx context.Context, username, email string) error {
	if _, err := s.userRepo.GetByUsername(ctx, username); err == nil {
		return apperrors.Validation("username already taken", nil)
	} else if !apperrors.IsCode(err, apperrors.ErrNotFound) {
		return fmt.Errorf("failed to check username: %w", err)
	}

	if _, err := s.userRepo.GetByEmail(ctx, email); err == nil {
		return apperrors.Validation("email already registered", nil)
	} else if !apperrors.IsCode(err, apperrors.ErrNotFound) {
		return fmt.Errorf("failed to check email: %w", err)
	}
	return nil
}

// Login verifies credentials and issues a token pair. Failures are reported
// generically so callers cannot probe which usernames exist.
func (s *Service) Login(ctx context.Context, username, password string) (*model.TokenResponse, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		// Only a genuine unknown user takes the generic-credentials path;
		// a storage failure is fatal to the request.
		if apperrors.IsCode(err, apperrors.ErrNotFound) {
			return nil, apperrors.AuthFailure(err)
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	if err := s.hasher.Compare(user.PasswordHash, password); err != nil {
		return nil, apperrors.AuthFailure(err)
	}

	accessToken, err := s.jwtSvc.GenerateAccessToken(user)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}
	refreshToken, err := s.jwtSvc.GenerateRefreshToken(user)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	return &model.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(tokenExpiry.Seconds()),
		RedirectTo:   user.DashboardDestination(),
	}, nil
}

// ValidateAccess checks the token signature and that the session has not been
// revoked by logout.
func (s *Service) ValidateAccess(ctx context.Context, token string) (*auth.Claims, error) {
	claims, err := s.jwtSvc.ValidateToken(token)
	if err != nil {
		return nil, apperrors.AuthFailure(err)
	}

	revoked, err := s.sessions.IsRevoked(ctx, claims.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to check session: %w", err)
	}
	if revoked {
		return nil, apperrors.AuthFailure(fmt.Errorf("session revoked"))
	}
	return claims, nil
}

// Logout revokes the presented token for the remainder of its lifetime.
func (s *Service) Logout(ctx context.Context, claims *auth.Claims) error {
	ttl := time.Until(claims.ExpiresAt.Time)
	if err := s.sessions.Revoke(ctx, claims.ID, ttl); err != nil {
		return fmt.Errorf("failed to revoke session: %w", err)
	}
	return nil
}

// ForgotPassword stores a reset token and mails it. An unknown email is not
// an error: the caller learns nothing about which addresses are registered.
func (s *Service) ForgotPassword(ctx context.Context, emailAddr string) error {
	user, err := s.userRepo.GetByEmail(ctx, emailAddr)
	if err != nil {
		if apperrors.IsCode(err, apperrors.ErrNotFound) {
			log.Debug().Str("email", emailAddr).Msg("password reset requested for unknown email")
			return nil
		}
		return fmt.Errorf("failed to load user: %w", err)
	}

	token := uuid.New().String()
	if err := s.tokenRepo.StoreResetToken(ctx, user.ID, token, time.Now().Add(resetTokenExpiry)); err != nil {
		return fmt.Errorf("failed to store reset token: %w", err)
	}

	if err := s.emailSvc.SendPasswordReset(ctx, user.Email, token); err != nil {
		return fmt.Errorf("failed to send reset email: %w", err)
	}
	return nil
}

// ResetPassword consumes a reset token and rehashes the credential.
func (s *Service) ResetPassword(ctx context.Context, token, newPassword string) error {
	userID, err := s.tokenRepo.ConsumeResetToken(ctx, token)
	if err != nil {
		return err
	}

	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return apperrors.Validation("invalid password", err)
	}

	user, err := s.userRepo.Get(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to load user for reset: %w", err)
	}

	user.PasswordHash = hash
	if err := s.userRepo.Update(ctx, user); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	return nil
}
