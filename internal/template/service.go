package template

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/medrounds/sccprompts/internal/cache"
	"github.com/medrounds/sccprompts/internal/models"
)

var ErrNotFound = errors.New("template not found")

const activeListCacheKey = "templates:active"

// Service serves the global template catalog. Reads return active rows only;
// writes are reserved for administrative callers and bust the list cache.
type Service struct {
	db       *pgxpool.Pool
	cache    *cache.Cache
	cacheTTL time.Duration
}

func NewService(db *pgxpool.Pool, c *cache.Cache, cacheTTL time.Duration) *Service {
	return &Service{db: db, cache: c, cacheTTL: cacheTTL}
}

func (s *Service) ListActive(ctx context.Context) ([]models.Template, error) {
	if s.cache != nil {
		var cached []models.Template
		if err := s.cache.Get(ctx, activeListCacheKey, &cached); err == nil {
			return cached, nil
		}
	}

	rows, err := s.db.Query(ctx,
		`SELECT id, name, description, template_text, is_active, created_at, updated_at
		 FROM prompt_templates WHERE is_active = true ORDER BY created_at DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("list templates: %w", err)
	}
	defer rows.Close()

	var templates []models.Template
	for rows.Next() {
		var t models.Template
		if err := rows.Scan(&t.ID, &t.Name, &t.Description, &t.TemplateText, &t.IsActive, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan template: %w", err)
		}
		t.Placeholders = Placeholders(t.TemplateText)
		templates = append(templates, t)
	}

	if s.cache != nil {
		_ = s.cache.Set(ctx, activeListCacheKey, templates, s.cacheTTL)
	}
	return templates, nil
}

func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*models.Template, error) {
	var t models.Template
	err := s.db.QueryRow(ctx,
		`SELECT id, name, description, template_text, is_active, created_at, updated_at
		 FROM prompt_templates WHERE id = $1 AND is_active = true`,
		id,
	).Scan(&t.ID, &t.Name, &t.Description, &t.TemplateText, &t.IsActive, &t.CreatedAt, &t.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get template: %w", err)
	}
	t.Placeholders = Placeholders(t.TemplateText)
	return &t, nil
}

type UpsertRequest struct {
	Name         string `json:"name"`
	Description  string `json:"description"`
	TemplateText string `json:"template_text"`
	IsActive     *bool  `json:"is_active,omitempty"`
}

func (s *Service) Create(ctx context.Context, req UpsertRequest) (*models.Template, error) {
	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}

	var t models.Template
	err := s.db.QueryRow(ctx,
		`INSERT INTO prompt_templates (name, description, template_text, is_active)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, name, description, template_text, is_active, created_at, updated_at`,
		req.Name, req.Description, req.TemplateText, active,
	).Scan(&t.ID, &t.Name, &t.Description, &t.TemplateText, &t.IsActive, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert template: %w", err)
	}

	t.Placeholders = Placeholders(t.TemplateText)
	s.invalidate(ctx)
	return &t, nil
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, req UpsertRequest) (*models.Template, error) {
	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}

	var t models.Template
	err := s.db.QueryRow(ctx,
		`UPDATE prompt_templates
		 SET name = $2, description = $3, template_text = $4, is_active = $5, updated_at = now()
		 WHERE id = $1
		 RETURNING id, name, description, template_text, is_active, created_at, updated_at`,
		id, req.Name, req.Description, req.TemplateText, active,
	).Scan(&t.ID, &t.Name, &t.Description, &t.TemplateText, &t.IsActive, &t.CreatedAt, &t.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update template: %w", err)
	}

	t.Placeholders = Placeholders(t.TemplateText)
	s.invalidate(ctx)
	return &t, nil
}

func (s *Service) invalidate(ctx context.Context) {
	if s.cache != nil {
		_ = s.cache.Delete(ctx, activeListCacheKey)
	}
}
