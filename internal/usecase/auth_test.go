package usecase

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/brainbreak/brainbreak-api/internal/auth"
	"github.com/brainbreak/brainbreak-api/internal/model"
	"github.com/brainbreak/brainbreak-api/internal/security"
)

func newTestAuthUsecase(t *testing.T) (AuthUsecase, *AccountRepositoryMock) {
	t.Helper()
	repo := new(AccountRepositoryMock)
	jwtAuth := auth.NewJWTAuthenticator("test-secret", "brainbreak-test", time.Hour)
	logger := zerolog.Nop()
	return NewAuthUsecase(repo, jwtAuth, nil, &logger), repo
}

func verifiedAccount(t *testing.T, password string) *model.Account {
	t.Helper()
	hash, err := security.HashPassword(password)
	require.NoError(t, err)
	return &model.Account{
		ID:           bson.NewObjectID(),
		Email:        "player@example.com",
		Username:     "player",
		PasswordHash: hash,
		Verified:     true,
	}
}

func TestAuthUsecase_Signup_Defaults(t *testing.T) {
	uc, repo := newTestAuthUsecase(t)

	repo.On("Create", mock.Anything, mock.MatchedBy(func(a *model.Account) bool {
		if a.Verified {
			return false
		}
		code, err := strconv.Atoi(a.VerificationCode)
		if err != nil || len(a.VerificationCode) != 6 || code < 100000 {
			return false
		}
		// expiry roughly one TTL out
		left := time.Until(a.VerificationExpiry)
		return left > VerificationCodeTTL-time.Minute && left <= VerificationCodeTTL
	})).Return(&model.Account{Email: "new@example.com", Username: "newbie"}, nil)

	account, err := uc.Signup(context.Background(), SignupParams{
		Email:    "new@example.com",
		Username: "newbie",
		Password: "secret123",
	})
	require.NoError(t, err)
	assert.Equal(t, "new@example.com", account.Email)
	repo.AssertExpectations(t)
}

func TestAuthUsecase_Signup_DuplicateEmail(t *testing.T) {
	uc, repo := newTestAuthUsecase(t)

	dup := mongo.WriteException{WriteErrors: []mongo.WriteError{{Code: 11000}}}
	repo.On("Create", mock.Anything, mock.Anything).Return(nil, dup)

	_, err := uc.Signup(context.Background(), SignupParams{
		Email:    "taken@example.com",
		Username: "taken",
		Password: "secret123",
	})
	assert.ErrorIs(t, err, ErrAccountExists)
}

func TestAuthUsecase_Signin_Success(t *testing.T) {
	uc, repo := newTestAuthUsecase(t)
	account := verifiedAccount(t, "secret123")

	repo.On("GetByEmail", mock.Anything, account.Email).Return(account, nil)
	repo.On("RecordLogin", mock.Anything, account.Email, mock.AnythingOfType("time.Time")).Return(nil)

	session, err := uc.Signin(context.Background(), account.Email, "secret123")
	require.NoError(t, err)
	assert.NotEmpty(t, session.Token)
	assert.Equal(t, account, session.Account)
	repo.AssertExpectations(t)
}

func TestAuthUsecase_Signin_UnknownEmail(t *testing.T) {
	uc, repo := newTestAuthUsecase(t)

	repo.On("GetByEmail", mock.Anything, "ghost@example.com").Return(nil, mongo.ErrNoDocuments)

	_, err := uc.Signin(context.Background(), "ghost@example.com", "whatever")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthUsecase_Signin_WrongPassword(t *testing.T) {
	uc, repo := newTestAuthUsecase(t)
	account := verifiedAccount(t, "secret123")

	repo.On("GetByEmail", mock.Anything, account.Email).Return(account, nil)

	_, err := uc.Signin(context.Background(), account.Email, "not-the-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthUsecase_Signin_Unverified(t *testing.T) {
	uc, repo := newTestAuthUsecase(t)
	account := verifiedAccount(t, "secret123")
	account.Verified = false

	repo.On("GetByEmail", mock.Anything, account.Email).Return(account, nil)

	_, err := uc.Signin(context.Background(), account.Email, "secret123")
	assert.ErrorIs(t, err, ErrNotVerified)
}

func TestAuthUsecase_Verify_Success(t *testing.T) {
	uc, repo := newTestAuthUsecase(t)
	pending := &model.Account{
		ID:                 bson.NewObjectID(),
		Email:              "pending@example.com",
		Username:           "pending",
		VerificationCode:   "123456",
		VerificationExpiry: time.Now().Add(10 * time.Minute),
	}
	verified := &model.Account{ID: pending.ID, Email: pending.Email, Username: pending.Username, Verified: true}

	repo.On("GetByEmail", mock.Anything, pending.Email).Return(pending, nil)
	repo.On("MarkVerified", mock.Anything, pending.Email, mock.AnythingOfType("time.Time")).Return(verified, nil)

	session, err := uc.Verify(context.Background(), pending.Email, "123456")
	require.NoError(t, err)
	assert.NotEmpty(t, session.Token)
	assert.True(t, session.Account.Verified)
	repo.AssertExpectations(t)
}

// An already verified account wins over a wrong code: no code comparison
// should leak through.
func TestAuthUsecase_Verify_AlreadyVerified(t *testing.T) {
	uc, repo := newTestAuthUsecase(t)
	account := verifiedAccount(t, "secret123")

	repo.On("GetByEmail", mock.Anything, account.Email).Return(account, nil)

	_, err := uc.Verify(context.Background(), account.Email, "000000")
	assert.ErrorIs(t, err, ErrAlreadyVerified)
	repo.AssertNotCalled(t, "MarkVerified", mock.Anything, mock.Anything, mock.Anything)
}

func TestAuthUsecase_Verify_WrongCode(t *testing.T) {
	uc, repo := newTestAuthUsecase(t)
	pending := &model.Account{
		Email:              "pending@example.com",
		VerificationCode:   "123456",
		VerificationExpiry: time.Now().Add(10 * time.Minute),
	}

	repo.On("GetByEmail", mock.Anything, pending.Email).Return(pending, nil)

	_, err := uc.Verify(context.Background(), pending.Email, "654321")
	assert.ErrorIs(t, err, ErrInvalidCode)
}

func TestAuthUsecase_Verify_ExpiredCode(t *testing.T) {
	uc, repo := newTestAuthUsecase(t)
	pending := &model.Account{
		Email:              "pending@example.com",
		VerificationCode:   "123456",
		VerificationExpiry: time.Now().Add(-time.Minute),
	}

	repo.On("GetByEmail", mock.Anything, pending.Email).Return(pending, nil)

	_, err := uc.Verify(context.Background(), pending.Email, "123456")
	assert.ErrorIs(t, err, ErrCodeExpired)
	repo.AssertNotCalled(t, "MarkVerified", mock.Anything, mock.Anything, mock.Anything)
}

func TestAuthUsecase_ResendCode_ReplacesCode(t *testing.T) {
	uc, repo := newTestAuthUsecase(t)
	pending := &model.Account{
		Email:            "pending@example.com",
		VerificationCode: "123456",
	}

	repo.On("GetByEmail", mock.Anything, pending.Email).Return(pending, nil)
	repo.On("SetVerificationCode", mock.Anything, pending.Email,
		mock.MatchedBy(func(code string) bool { return len(code) == 6 }),
		mock.AnythingOfType("time.Time"),
	).Return(pending, nil)

	_, err := uc.ResendCode(context.Background(), pending.Email)
	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestAuthUsecase_ResendCode_AlreadyVerified(t *testing.T) {
	uc, repo := newTestAuthUsecase(t)
	account := verifiedAccount(t, "secret123")

	repo.On("GetByEmail", mock.Anything, account.Email).Return(account, nil)

	_, err := uc.ResendCode(context.Background(), account.Email)
	assert.ErrorIs(t, err, ErrAlreadyVerified)
}

func TestAuthUsecase_ResendCode_UnknownEmail(t *testing.T) {
	uc, repo := newTestAuthUsecase(t)

	repo.On("GetByEmail", mock.Anything, "ghost@example.com").Return(nil, mongo.ErrNoDocuments)

	_, err := uc.ResendCode(context.Background(), "ghost@example.com")
	assert.ErrorIs(t, err, ErrAccountNotFound)
}
