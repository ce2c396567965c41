package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/nikolayk812/storefront/internal/auth"
	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/port"
	"go.uber.org/zap"
)

var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrNotVerified        = errors.New("user is not verified")
	ErrInvalidCode        = errors.New("invalid verification code")
	ErrTooManyAttempts    = errors.New("too many verification attempts")
)

const (
	maxVerifyAttempts = 5
	verifyWindow      = 15 * time.Minute
)

// CodeSender delivers the sign-up verification code to the user.
type CodeSender interface {
	SendVerificationCode(ctx context.Context, email, code string) error
}

// LogCodeSender writes verification codes to the log, for deployments without a mailer.
type LogCodeSender struct {
	Logger *zap.Logger
}

func (s LogCodeSender) SendVerificationCode(_ context.Context, email, code string) error {
	s.Logger.Info("verification code", zap.String("email", email), zap.String("code", code))
	return nil
}

type UserService struct {
	users   port.UserRepository
	revoker port.TokenRevoker
	limiter port.AttemptLimiter
	issuer  *auth.Issuer
	sender  CodeSender
	logger  *zap.Logger
}

func NewUserService(
	users port.UserRepository,
	revoker port.TokenRevoker,
	limiter port.AttemptLimiter,
	issuer *auth.Issuer,
	sender CodeSender,
	logger *zap.Logger,
) *UserService {
	return &UserService{
		users:   users,
		revoker: revoker,
		limiter: limiter,
		issuer:  issuer,
		sender:  sender,
		logger:  logger,
	}
}

func (s *UserService) Register(ctx context.Context, username, email, password string) (domain.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return domain.User{}, fmt.Errorf("%w: username is empty", ErrInvalidInput)
	}

	email, err := normalizeEmail(email)
	if err != nil {
		return domain.User{}, err
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return domain.User{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	code, err := verificationCode()
	if err != nil {
		return domain.User{}, err
	}

	user := domain.User{
		ID:               uuid.NewString(),
		Username:         username,
		Email:            email,
		PasswordHash:     hash,
		VerificationCode: code,
	}

	if err := s.users.CreateUser(ctx, user); err != nil {
		return domain.User{}, fmt.Errorf("users.CreateUser: %w", err)
	}

	if err := s.sender.SendVerificationCode(ctx, email, code); err != nil {
		return domain.User{}, fmt.Errorf("sender.SendVerificationCode: %w", err)
	}

	s.logger.Info("user registered", zap.String("user_id", user.ID))

	return user, nil
}

func (s *UserService) Verify(ctx context.Context, email, code string) error {
	email, err := normalizeEmail(email)
	if err != nil {
		return err
	}
	if code == "" {
		return fmt.Errorf("%w: code is empty", ErrInvalidInput)
	}

	key := "verify:" + email

	failed, err := s.limiter.Failures(ctx, key)
	if err != nil {
		return fmt.Errorf("limiter.Failures: %w", err)
	}
	if failed >= maxVerifyAttempts {
		return ErrTooManyAttempts
	}

	verified, err := s.users.VerifyUser(ctx, email, code)
	if err != nil {
		return fmt.Errorf("users.VerifyUser: %w", err)
	}

	if !verified {
		if _, err := s.limiter.Fail(ctx, key, verifyWindow); err != nil {
			return fmt.Errorf("limiter.Fail: %w", err)
		}
		return ErrInvalidCode
	}

	if err := s.limiter.Reset(ctx, key); err != nil {
		s.logger.Warn("limiter.Reset", zap.String("email", email), zap.Error(err))
	}

	return nil
}

// Login checks the password and issues a credential token carrying the user's identity.
func (s *UserService) Login(ctx context.Context, email, password string) (string, auth.Claims, error) {
	email, err := normalizeEmail(email)
	if err != nil {
		return "", auth.Claims{}, err
	}

	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", auth.Claims{}, ErrInvalidCredentials
		}
		return "", auth.Claims{}, fmt.Errorf("users.GetUserByEmail: %w", err)
	}

	if err := auth.CheckPassword(user.PasswordHash, password); err != nil {
		if errors.Is(err, auth.ErrPasswordMismatch) {
			return "", auth.Claims{}, ErrInvalidCredentials
		}
		return "", auth.Claims{}, err
	}

	if !user.Verified {
		return "", auth.Claims{}, ErrNotVerified
	}

	token, claims, err := s.issuer.Issue(domain.Identity{
		UserID:   user.ID,
		Username: user.Username,
		Email:    user.Email,
	})
	if err != nil {
		return "", auth.Claims{}, fmt.Errorf("issuer.Issue: %w", err)
	}

	return token, claims, nil
}

func (s *UserService) Logout(ctx context.Context, claims auth.Claims) error {
	if claims.ExpiresAt == nil {
		return fmt.Errorf("%w: token has no expiry", ErrInvalidInput)
	}

	if err := s.revoker.Revoke(ctx, claims.ID, claims.ExpiresAt.Time); err != nil {
		return fmt.Errorf("revoker.Revoke: %w", err)
	}

	s.logger.Info("user logged out", zap.String("user_id", claims.UserID))

	return nil
}

func normalizeEmail(email string) (string, error) {
	addr, err := mail.ParseAddress(strings.TrimSpace(email))
	if err != nil {
		return "", fmt.Errorf("%w: email is not valid", ErrInvalidInput)
	}

	return strings.ToLower(addr.Address), nil
}

func verificationCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1_000_000))
	if err != nil {
		return "", fmt.Errorf("rand.Int: %w", err)
	}

	return fmt.Sprintf("%06d", n.Int64()), nil
}
