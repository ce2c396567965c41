package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/storefront/internal/db"
	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/port"
)

type userRepository struct {
	q *db.Queries
}

func NewUser(pool *pgxpool.Pool) port.UserRepository {
	return &userRepository{
		q: db.New(pool),
	}
}

func (r *userRepository) CreateUser(ctx context.Context, user domain.User) error {
	if user.ID == "" {
		return fmt.Errorf("userID is empty")
	}
	if user.Email == "" {
		return fmt.Errorf("email is empty")
	}

	err := r.q.CreateUser(ctx, db.CreateUserParams{
		ID:               user.ID,
		Username:         user.Username,
		Email:            user.Email,
		PasswordHash:     user.PasswordHash,
		VerificationCode: user.VerificationCode,
	})
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("user[%s]: %w", user.Email, domain.ErrConflict)
		}
		return fmt.Errorf("q.CreateUser: %w", err)
	}

	return nil
}

func (r *userRepository) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	if email == "" {
		return domain.User{}, fmt.Errorf("email is empty")
	}

	row, err := r.q.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.User{}, fmt.Errorf("user[%s]: %w", email, domain.ErrNotFound)
		}
		return domain.User{}, fmt.Errorf("q.GetUserByEmail: %w", err)
	}

	return domain.User{
		ID:               row.ID,
		Username:         row.Username,
		Email:            row.Email,
		PasswordHash:     row.PasswordHash,
		Verified:         row.Verified,
		VerificationCode: row.VerificationCode,
		CreatedAt:        row.CreatedAt,
	}, nil
}

func (r *userRepository) VerifyUser(ctx context.Context, email, code string) (bool, error) {
	rowsAffected, err := r.q.VerifyUser(ctx, db.VerifyUserParams{
		Email:            email,
		VerificationCode: code,
	})
	if err != nil {
		return false, fmt.Errorf("q.VerifyUser: %w", err)
	}

	return rowsAffected > 0, nil
}
