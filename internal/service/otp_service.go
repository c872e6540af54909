package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog/log"

	"github.com/campusbites/campusbites-api/internal/mailer"
	"github.com/campusbites/campusbites-api/internal/model"
	"github.com/campusbites/campusbites-api/internal/repository"
)

const PurposeEmailVerification = "email_verification"

type OTPService struct {
	repo   *repository.OTPRepository
	mailer *mailer.Mailer
	ttl    time.Duration
}

func NewOTPService(repo *repository.OTPRepository, m *mailer.Mailer, ttl time.Duration) *OTPService {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &OTPService{repo: repo, mailer: m, ttl: ttl}
}

// Issue creates a fresh 6-digit code for the email, invalidating any
// outstanding code first, and mails it to the recipient.
func (s *OTPService) Issue(ctx context.Context, email, name, purpose string) error {
	if err := s.repo.InvalidateActive(ctx, email, purpose); err != nil {
		return fmt.Errorf("invalidate previous codes: %w", err)
	}

	code, err := GenerateCode(6)
	if err != nil {
		return fmt.Errorf("generate code: %w", err)
	}

	otp := &model.OTP{
		Email:     email,
		Code:      code,
		Purpose:   purpose,
		ExpiresAt: time.Now().Add(s.ttl),
	}
	if err := s.repo.Insert(ctx, otp); err != nil {
		return fmt.Errorf("store code: %w", err)
	}

	minutes := int(s.ttl.Minutes())
	if err := s.mailer.Send(email, "Your CampusBites verification code", mailer.OTPBody(name, code, minutes)); err != nil {
		return fmt.Errorf("send code: %w", err)
	}

	log.Info().Str("email", email).Str("purpose", purpose).Msg("otp issued")
	return nil
}

// Verify consumes the active code for the email. A missing, expired or
// mismatched code all report ErrInvalidOTP; the caller cannot tell which.
func (s *OTPService) Verify(ctx context.Context, email, purpose, code string) error {
	otp, err := s.repo.FindActive(ctx, email, purpose)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrInvalidOTP
		}
		return fmt.Errorf("look up code: %w", err)
	}

	if otp.Code != code {
		return ErrInvalidOTP
	}

	if err := s.repo.MarkConsumed(ctx, otp.ID); err != nil {
		return fmt.Errorf("consume code: %w", err)
	}
	return nil
}

// PurgeExpired removes codes past their expiry. Meant for a periodic
// sweep; returns the number of rows removed.
func (s *OTPService) PurgeExpired(ctx context.Context) (int64, error) {
	return s.repo.DeleteExpiredBefore(ctx, time.Now())
}

// GenerateCode returns n decimal digits from crypto/rand.
func GenerateCode(n int) (string, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	digits := make([]byte, n)
	for i, b := range buf {
		digits[i] = '0' + b%10
	}
	return string(digits), nil
}
