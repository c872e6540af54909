package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusbites/campusbites-api/internal/dto"
	"github.com/campusbites/campusbites-api/internal/payment"
)

func TestAuthHandler_Register(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	router, _ := setupApp(t, payment.Options{Rand: func() float64 { return 0.9 }})

	t.Run("happy: register sends verification code", func(t *testing.T) {
		w := doJSON(t, router, "POST", "/api/v1/auth/register", "", dto.RegisterRequest{
			Name: "Asha Nair", Email: "asha@student.edu", Password: "Str0ngPass!",
		})

		assert.Equal(t, http.StatusCreated, w.Code)

		var resp dto.RegisterResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.NotEmpty(t, resp.UserID)
		assert.Equal(t, "asha@student.edu", resp.Email)
	})

	t.Run("bad: duplicate email conflicts", func(t *testing.T) {
		w := doJSON(t, router, "POST", "/api/v1/auth/register", "", dto.RegisterRequest{
			Name: "Asha Again", Email: "asha@student.edu", Password: "Str0ngPass!",
		})
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("bad: weak password rejected", func(t *testing.T) {
		w := doJSON(t, router, "POST", "/api/v1/auth/register", "", dto.RegisterRequest{
			Name: "Weak Pass", Email: "weak@student.edu", Password: "aaaaaaaa",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "password too weak")
	})

	t.Run("bad: invalid email rejected by binding", func(t *testing.T) {
		w := doJSON(t, router, "POST", "/api/v1/auth/register", "", dto.RegisterRequest{
			Name: "No Email", Email: "not-an-email", Password: "Str0ngPass!",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestAuthHandler_VerifyAndLogin(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	router, pool := setupApp(t, payment.Options{Rand: func() float64 { return 0.9 }})

	email := "ravi@student.edu"
	w := doJSON(t, router, "POST", "/api/v1/auth/register", "", dto.RegisterRequest{
		Name: "Ravi Kumar", Email: email, Password: "Str0ngPass!",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	t.Run("bad: login before verification is forbidden", func(t *testing.T) {
		w := doJSON(t, router, "POST", "/api/v1/auth/login", "", dto.LoginRequest{
			Email: email, Password: "Str0ngPass!",
		})
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("bad: wrong code rejected", func(t *testing.T) {
		w := doJSON(t, router, "POST", "/api/v1/auth/verify-otp", "", dto.VerifyOTPRequest{
			Email: email, Code: "000000",
		})
		// A random code matches with probability 1e-6; treat a pass as flake-proof
		// by fetching the real code below instead.
		if w.Code == http.StatusOK {
			t.Skip("generated code happened to be 000000")
		}
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("happy: verify then login", func(t *testing.T) {
		var code string
		require.NoError(t, pool.QueryRow(context.Background(),
			`SELECT code FROM otps WHERE email = $1 AND consumed_at IS NULL ORDER BY created_at DESC LIMIT 1`,
			email).Scan(&code))

		w := doJSON(t, router, "POST", "/api/v1/auth/verify-otp", "", dto.VerifyOTPRequest{Email: email, Code: code})
		assert.Equal(t, http.StatusOK, w.Code)

		w = doJSON(t, router, "POST", "/api/v1/auth/login", "", dto.LoginRequest{Email: email, Password: "Str0ngPass!"})
		assert.Equal(t, http.StatusOK, w.Code)

		var resp dto.LoginResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.NotEmpty(t, resp.Token)
		assert.True(t, resp.User.Verified)
	})

	t.Run("bad: consumed code cannot be replayed", func(t *testing.T) {
		var code string
		err := pool.QueryRow(context.Background(),
			`SELECT code FROM otps WHERE email = $1 ORDER BY created_at DESC LIMIT 1`, email).Scan(&code)
		require.NoError(t, err)

		w := doJSON(t, router, "POST", "/api/v1/auth/verify-otp", "", dto.VerifyOTPRequest{Email: email, Code: code})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("bad: wrong password unauthorized", func(t *testing.T) {
		w := doJSON(t, router, "POST", "/api/v1/auth/login", "", dto.LoginRequest{
			Email: email, Password: "WrongPass1!",
		})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("happy: resend for unknown email does not leak", func(t *testing.T) {
		w := doJSON(t, router, "POST", "/api/v1/auth/resend-otp", "", dto.ResendOTPRequest{
			Email: "ghost@student.edu",
		})
		assert.Equal(t, http.StatusOK, w.Code)
	})
}
