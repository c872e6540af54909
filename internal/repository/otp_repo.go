package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/campusbites/campusbites-api/internal/model"
)

type OTPRepository struct {
	pool *pgxpool.Pool
}

func NewOTPRepository(pool *pgxpool.Pool) *OTPRepository {
	return &OTPRepository{pool: pool}
}

func (r *OTPRepository) Insert(ctx context.Context, otp *model.OTP) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO otps (email, code, purpose, expires_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`,
		otp.Email, otp.Code, otp.Purpose, otp.ExpiresAt,
	).Scan(&otp.ID, &otp.CreatedAt)
}

// FindActive returns the most recent unconsumed, unexpired code for the
// email and purpose.
func (r *OTPRepository) FindActive(ctx context.Context, email, purpose string) (*model.OTP, error) {
	otp := &model.OTP{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, email, code, purpose, expires_at, consumed_at, created_at
		FROM otps
		WHERE email = $1 AND purpose = $2 AND consumed_at IS NULL AND expires_at > now()
		ORDER BY created_at DESC
		LIMIT 1`, email, purpose).
		Scan(&otp.ID, &otp.Email, &otp.Code, &otp.Purpose, &otp.ExpiresAt, &otp.ConsumedAt, &otp.CreatedAt)
	if err != nil {
		return nil, err
	}
	return otp, nil
}

func (r *OTPRepository) MarkConsumed(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE otps SET consumed_at = now() WHERE id = $1`, id)
	return err
}

// InvalidateActive consumes any outstanding codes so that a resend leaves
// a single live code per email and purpose.
func (r *OTPRepository) InvalidateActive(ctx context.Context, email, purpose string) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE otps SET consumed_at = now()
		WHERE email = $1 AND purpose = $2 AND consumed_at IS NULL`, email, purpose)
	return err
}

func (r *OTPRepository) DeleteExpiredBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM otps WHERE expires_at < $1`, cutoff)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
