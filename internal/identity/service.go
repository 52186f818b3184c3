package identity

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/medrounds/sccprompts/internal/models"
)

type Service struct {
	db *pgxpool.Pool
}

func NewService(db *pgxpool.Pool) *Service {
	return &Service{db: db}
}

func (s *Service) GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var u models.User
	err := s.db.QueryRow(ctx,
		"SELECT id, role_id, email, full_name, created_at FROM users WHERE id = $1", id,
	).Scan(&u.ID, &u.RoleID, &u.Email, &u.FullName, &u.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &u, nil
}

func (s *Service) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	err := s.db.QueryRow(ctx,
		"SELECT id, role_id, email, full_name, created_at FROM users WHERE email = $1", email,
	).Scan(&u.ID, &u.RoleID, &u.Email, &u.FullName, &u.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("get user by email: %w", err)
	}
	return &u, nil
}

func (s *Service) CreateUser(ctx context.Context, email, fullName string) (*models.User, error) {
	var u models.User
	err := s.db.QueryRow(ctx,
		`INSERT INTO users (email, full_name) VALUES ($1, $2)
		 RETURNING id, role_id, email, full_name, created_at`,
		email, fullName,
	).Scan(&u.ID, &u.RoleID, &u.Email, &u.FullName, &u.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return &u, nil
}
