package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/campusbites/campusbites-api/internal/dto"
	"github.com/campusbites/campusbites-api/internal/model"
	"github.com/campusbites/campusbites-api/internal/password"
	"github.com/campusbites/campusbites-api/internal/repository"
)

type AuthService struct {
	userRepo  *repository.UserRepository
	otpSvc    *OTPService
	jwtSecret []byte
	jwtTTL    time.Duration
}

func NewAuthService(userRepo *repository.UserRepository, otpSvc *OTPService, jwtSecret string, jwtTTL time.Duration) *AuthService {
	if jwtTTL <= 0 {
		jwtTTL = 24 * time.Hour
	}
	return &AuthService{
		userRepo:  userRepo,
		otpSvc:    otpSvc,
		jwtSecret: []byte(jwtSecret),
		jwtTTL:    jwtTTL,
	}
}

// Register creates an unverified account and mails a verification code.
func (s *AuthService) Register(ctx context.Context, req *dto.RegisterRequest) (*model.User, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	if score, label := password.Score(req.Password); score < password.Fair {
		return nil, fmt.Errorf("%w: strength %q, use a longer mix of letters and digits", ErrWeakPassword, label)
	}

	taken, err := s.userRepo.EmailExists(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if taken {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Name:         req.Name,
		Email:        email,
		PasswordHash: string(hash),
	}
	if err := s.userRepo.Insert(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	if err := s.otpSvc.Issue(ctx, email, user.Name, PurposeEmailVerification); err != nil {
		return nil, fmt.Errorf("issue verification code: %w", err)
	}

	return user, nil
}

// VerifyEmail consumes the OTP and flips the account to verified.
func (s *AuthService) VerifyEmail(ctx context.Context, email, code string) error {
	email = strings.ToLower(strings.TrimSpace(email))

	if err := s.otpSvc.Verify(ctx, email, PurposeEmailVerification, code); err != nil {
		return err
	}

	if err := s.userRepo.MarkVerified(ctx, email); err != nil {
		return fmt.Errorf("mark verified: %w", err)
	}
	return nil
}

// ResendOTP issues a fresh code for an existing unverified account.
func (s *AuthService) ResendOTP(ctx context.Context, email string) error {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Do not reveal whether the address is registered.
			return nil
		}
		return fmt.Errorf("look up user: %w", err)
	}
	if user.Verified {
		return nil
	}

	return s.otpSvc.Issue(ctx, email, user.Name, PurposeEmailVerification)
}

// Login checks credentials and returns a signed session token.
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*model.User, string, time.Time, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, "", time.Time{}, ErrInvalidCredentials
		}
		return nil, "", time.Time{}, fmt.Errorf("look up user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, "", time.Time{}, ErrInvalidCredentials
	}

	if !user.Verified {
		return nil, "", time.Time{}, ErrNotVerified
	}

	expiresAt := time.Now().Add(s.jwtTTL)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   user.ID,
		ExpiresAt: jwt.NewNumericDate(expiresAt),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	})
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return nil, "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}

	return user, signed, expiresAt, nil
}
