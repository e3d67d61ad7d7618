package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/brainbreak/brainbreak-api/internal/auth"
	"github.com/brainbreak/brainbreak-api/internal/mailer"
	"github.com/brainbreak/brainbreak-api/internal/model"
	"github.com/brainbreak/brainbreak-api/internal/repository"
	"github.com/brainbreak/brainbreak-api/internal/security"
)

// AuthUsecase defines the signup, signin and email-verification flows.
type AuthUsecase interface {
	Signup(ctx context.Context, params SignupParams) (*model.Account, error)
	Signin(ctx context.Context, email, password string) (*Session, error)
	Verify(ctx context.Context, email, code string) (*Session, error)
	ResendCode(ctx context.Context, email string) (*model.Account, error)
}

// SignupParams defines the parameters for account creation.
type SignupParams struct {
	Email    string
	Username string
	Password string
}

// Session is the result of a successful authentication: a bearer token plus
// the sanitized account it belongs to.
type Session struct {
	Token   string
	Account *model.Account
}

var (
	ErrAccountExists      = errors.New("email or username already exists")
	ErrAccountNotFound    = errors.New("account not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNotVerified        = errors.New("email not verified")
	ErrAlreadyVerified    = errors.New("email already verified")
	ErrInvalidCode        = errors.New("invalid verification code")
	ErrCodeExpired        = errors.New("verification code expired")
)

// VerificationCodeTTL is how long a verification code stays valid.
const VerificationCodeTTL = 15 * time.Minute

type authUsecase struct {
	accounts repository.AccountRepository
	jwtAuth  auth.JWTAuthenticator
	mailer   *mailer.Mailer
	logger   *zerolog.Logger
}

// NewAuthUsecase creates a new AuthUsecase instance.
func NewAuthUsecase(
	accounts repository.AccountRepository,
	jwtAuth auth.JWTAuthenticator,
	m *mailer.Mailer,
	logger *zerolog.Logger,
) AuthUsecase {
	return &authUsecase{
		accounts: accounts,
		jwtAuth:  jwtAuth,
		mailer:   m,
		logger:   logger,
	}
}

func (u *authUsecase) Signup(ctx context.Context, params SignupParams) (*model.Account, error) {
	passwordHash, err := security.HashPassword(params.Password)
	if err != nil {
		return nil, err
	}

	code, err := security.GenerateVerificationCode()
	if err != nil {
		return nil, err
	}

	account, err := u.accounts.Create(ctx, &model.Account{
		Email:              params.Email,
		Username:           params.Username,
		PasswordHash:       passwordHash,
		Verified:           false,
		VerificationCode:   code,
		VerificationExpiry: time.Now().Add(VerificationCodeTTL),
	})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrAccountExists
		}

		return nil, err
	}

	u.deliverCode(account)

	return account, nil
}

func (u *authUsecase) Signin(ctx context.Context, email, password string) (*Session, error) {
	account, err := u.accounts.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			// Indistinguishable from a wrong password on purpose.
			return nil, ErrInvalidCredentials
		}

		return nil, err
	}

	if ok, err := security.VerifyPassword(password, account.PasswordHash); err != nil {
		return nil, err
	} else if !ok {
		return nil, ErrInvalidCredentials
	}

	if !account.Verified {
		return nil, ErrNotVerified
	}

	if err := u.accounts.RecordLogin(ctx, email, time.Now()); err != nil {
		return nil, err
	}

	return u.createSession(account)
}

func (u *authUsecase) Verify(ctx context.Context, email, code string) (*Session, error) {
	account, err := u.accounts.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrAccountNotFound
		}

		return nil, err
	}

	if account.Verified {
		return nil, ErrAlreadyVerified
	}

	if account.VerificationCode != code {
		return nil, ErrInvalidCode
	}

	if time.Now().After(account.VerificationExpiry) {
		return nil, ErrCodeExpired
	}

	verified, err := u.accounts.MarkVerified(ctx, email, time.Now())
	if err != nil {
		return nil, err
	}

	return u.createSession(verified)
}

func (u *authUsecase) ResendCode(ctx context.Context, email string) (*model.Account, error) {
	account, err := u.accounts.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrAccountNotFound
		}

		return nil, err
	}

	if account.Verified {
		return nil, ErrAlreadyVerified
	}

	code, err := security.GenerateVerificationCode()
	if err != nil {
		return nil, err
	}

	account, err = u.accounts.SetVerificationCode(ctx, email, code, time.Now().Add(VerificationCodeTTL))
	if err != nil {
		return nil, err
	}

	u.deliverCode(account)

	return account, nil
}

func (u *authUsecase) createSession(account *model.Account) (*Session, error) {
	token, err := u.jwtAuth.IssueToken(account.ID.Hex(), account.Email)
	if err != nil {
		return nil, err
	}

	return &Session{Token: token, Account: account}, nil
}

// deliverCode hands the verification code to the mailer. Delivery failures
// are logged and dropped: the code is still retrievable through the
// non-production response body and the resend operation.
func (u *authUsecase) deliverCode(account *model.Account) {
	if u.mailer == nil {
		return
	}

	if err := u.mailer.SendVerificationCode(account.Email, account.Username, account.VerificationCode); err != nil {
		u.logger.Error().Err(err).Str("email", account.Email).Msg("failed to send verification code")
	}
}
