package service

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/hostify/hostify-api/pkg/apperror"
	"github.com/hostify/hostify-api/pkg/email"
	"github.com/hostify/hostify-api/pkg/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthFixture() (*AuthService, *fakeUserRepo, *fakePasswordResetRepo) {
	userRepo := newFakeUserRepo()
	resetRepo := newFakePasswordResetRepo()
	jwtManager := utils.NewJWTManager("test-secret", time.Hour, 24*time.Hour)
	mailer := email.NewEmailService(email.EmailConfig{})
	svc := NewAuthService(userRepo, newFakeRoleRepo("customer"), resetRepo, jwtManager, mailer)
	return svc, userRepo, resetRepo
}

func registerInput(emailAddr string) *RegisterInput {
	return &RegisterInput{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     emailAddr,
		Password:  "correct-horse",
	}
}

func TestRegisterAssignsCustomerRole(t *testing.T) {
	svc, userRepo, _ := newAuthFixture()

	user, err := svc.Register(context.Background(), registerInput("ada@example.com"))
	require.NoError(t, err)
	assert.NotEqual(t, "correct-horse", user.Password)

	stored, err := userRepo.GetByID(context.Background(), user.ID)
	require.NoError(t, err)
	require.Len(t, stored.Roles, 1)
	assert.Equal(t, "customer", stored.Roles[0].Name)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _, _ := newAuthFixture()

	_, err := svc.Register(context.Background(), registerInput("ada@example.com"))
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), registerInput("ada@example.com"))
	require.Error(t, err)
	assert.Equal(t, http.StatusConflict, appErrorCode(t, err))
}

func TestLoginIssuesValidTokens(t *testing.T) {
	svc, _, _ := newAuthFixture()

	user, err := svc.Register(context.Background(), registerInput("ada@example.com"))
	require.NoError(t, err)

	out, err := svc.Login(context.Background(), &LoginInput{Email: "ada@example.com", Password: "correct-horse"})
	require.NoError(t, err)
	require.NotEmpty(t, out.AccessToken)
	require.NotEmpty(t, out.RefreshToken)

	claims, err := svc.jwtManager.ValidateAccessToken(out.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, "ada@example.com", claims.Email)
	assert.Contains(t, claims.Roles, "customer")
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _, _ := newAuthFixture()

	_, err := svc.Register(context.Background(), registerInput("ada@example.com"))
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), &LoginInput{Email: "ada@example.com", Password: "wrong"})
	require.ErrorIs(t, err, apperror.ErrInvalidCredentials)

	_, err = svc.Login(context.Background(), &LoginInput{Email: "nobody@example.com", Password: "wrong"})
	require.ErrorIs(t, err, apperror.ErrInvalidCredentials)
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	svc, _, _ := newAuthFixture()

	user, err := svc.Register(context.Background(), registerInput("ada@example.com"))
	require.NoError(t, err)

	out, err := svc.Login(context.Background(), &LoginInput{Email: "ada@example.com", Password: "correct-horse"})
	require.NoError(t, err)

	refreshed, err := svc.RefreshToken(context.Background(), out.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, refreshed.User.ID)
	assert.NotEmpty(t, refreshed.AccessToken)

	_, err = svc.RefreshToken(context.Background(), "not-a-token")
	require.ErrorIs(t, err, apperror.ErrInvalidToken)
}

func TestChangePasswordWrongCurrent(t *testing.T) {
	svc, _, _ := newAuthFixture()

	user, err := svc.Register(context.Background(), registerInput("ada@example.com"))
	require.NoError(t, err)

	err = svc.ChangePassword(context.Background(), &ChangePasswordInput{
		UserID:          user.ID,
		CurrentPassword: "wrong",
		NewPassword:     "battery-staple",
	})
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, appErrorCode(t, err))
}

func TestChangePasswordUpdatesCredentials(t *testing.T) {
	svc, _, _ := newAuthFixture()

	user, err := svc.Register(context.Background(), registerInput("ada@example.com"))
	require.NoError(t, err)

	err = svc.ChangePassword(context.Background(), &ChangePasswordInput{
		UserID:          user.ID,
		CurrentPassword: "correct-horse",
		NewPassword:     "battery-staple",
	})
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), &LoginInput{Email: "ada@example.com", Password: "correct-horse"})
	require.ErrorIs(t, err, apperror.ErrInvalidCredentials)

	_, err = svc.Login(context.Background(), &LoginInput{Email: "ada@example.com", Password: "battery-staple"})
	require.NoError(t, err)
}

func TestForgotPasswordUnknownEmail(t *testing.T) {
	svc, _, resetRepo := newAuthFixture()

	err := svc.ForgotPassword(context.Background(), "nobody@example.com")
	require.NoError(t, err)
	assert.Empty(t, resetRepo.tokens)
}

func TestPasswordResetFlow(t *testing.T) {
	svc, _, resetRepo := newAuthFixture()

	_, err := svc.Register(context.Background(), registerInput("ada@example.com"))
	require.NoError(t, err)

	require.NoError(t, svc.ForgotPassword(context.Background(), "ada@example.com"))
	require.Len(t, resetRepo.tokens, 1)

	var token string
	for tok := range resetRepo.tokens {
		token = tok
	}

	err = svc.ResetPassword(context.Background(), &ResetPasswordInput{Token: token, NewPassword: "battery-staple"})
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), &LoginInput{Email: "ada@example.com", Password: "battery-staple"})
	require.NoError(t, err)

	// A consumed token cannot be replayed
	err = svc.ResetPassword(context.Background(), &ResetPasswordInput{Token: token, NewPassword: "again"})
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, appErrorCode(t, err))
}

func TestResetPasswordExpiredToken(t *testing.T) {
	svc, _, resetRepo := newAuthFixture()

	_, err := svc.Register(context.Background(), registerInput("ada@example.com"))
	require.NoError(t, err)

	issued := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return issued }
	require.NoError(t, svc.ForgotPassword(context.Background(), "ada@example.com"))

	var token string
	for tok := range resetRepo.tokens {
		token = tok
	}

	svc.now = func() time.Time { return issued.Add(2 * time.Hour) }
	err = svc.ResetPassword(context.Background(), &ResetPasswordInput{Token: token, NewPassword: "battery-staple"})
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, appErrorCode(t, err))
}

func TestResetPasswordUnknownToken(t *testing.T) {
	svc, _, _ := newAuthFixture()

	err := svc.ResetPassword(context.Background(), &ResetPasswordInput{Token: "missing", NewPassword: "x"})
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, appErrorCode(t, err))
}
