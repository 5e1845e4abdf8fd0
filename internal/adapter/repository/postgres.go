package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"

	"resume-builder/internal/domain"
	"resume-builder/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

// PostgresStore keeps resumes in the resumes table. The renderable content
// lives in a single JSONB column.
type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

func (s *PostgresStore) Backend() string { return BackendPostgres }

func (s *PostgresStore) Ping(ctx context.Context) error {
	if err := s.pool.Ping(ctx); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrStorageUnavailable, err)
	}
	return nil
}

func (s *PostgresStore) Close() {
	s.pool.Close()
}

func (s *PostgresStore) List(ctx context.Context, ownerID string) ([]domain.ResumeSummary, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, title, template, is_public, COALESCE(content->'personalInfo'->>'fullName', ''), created_at, updated_at
		FROM resumes
		WHERE owner_id = $1
		ORDER BY updated_at DESC, id`, ownerID)
	if err != nil {
		return nil, storageError("list resumes", err)
	}
	defer rows.Close()

	out := make([]domain.ResumeSummary, 0)
	for rows.Next() {
		var sum domain.ResumeSummary
		if err := rows.Scan(&sum.ID, &sum.Title, &sum.Template, &sum.IsPublic, &sum.FullName, &sum.CreatedAt, &sum.UpdatedAt); err != nil {
			return nil, storageError("scan resume summary", err)
		}
		out = append(out, sum)
	}
	if err := rows.Err(); err != nil {
		return nil, storageError("list resumes", err)
	}
	return out, nil
}

func (s *PostgresStore) Get(ctx context.Context, id uuid.UUID, ownerID string) (*domain.Resume, error) {
	var (
		r   domain.Resume
		raw []byte
	)
	err := s.pool.QueryRow(ctx, `
		SELECT id, owner_id, title, template, is_public, content, created_at, updated_at
		FROM resumes
		WHERE id = $1 AND owner_id = $2`, id, ownerID).
		Scan(&r.ID, &r.OwnerID, &r.Title, &r.Template, &r.IsPublic, &raw, &r.CreatedAt, &r.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, storageError("get resume", err)
	}

	var c model.Content
	if err := json.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("decode resume %s content: %w", id, err)
	}
	c.Normalize()
	r.Content = c
	return &r, nil
}

func (s *PostgresStore) Create(ctx context.Context, r *domain.Resume) error {
	content, err := json.Marshal(r.Content)
	if err != nil {
		return fmt.Errorf("encode resume content: %w", err)
	}
	_, err = s.pool.Exec(ctx, `
		INSERT INTO resumes (id, owner_id, title, template, is_public, content, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6::jsonb, $7, $8)`,
		r.ID, r.OwnerID, r.Title, r.Template, r.IsPublic, string(content), r.CreatedAt, r.UpdatedAt)
	if err != nil {
		return storageError("create resume", err)
	}
	return nil
}

// Update never writes owner_id or created_at.
func (s *PostgresStore) Update(ctx context.Context, r *domain.Resume) error {
	content, err := json.Marshal(r.Content)
	if err != nil {
		return fmt.Errorf("encode resume content: %w", err)
	}
	tag, err := s.pool.Exec(ctx, `
		UPDATE resumes
		SET title = $3, template = $4, is_public = $5, content = $6::jsonb, updated_at = $7
		WHERE id = $1 AND owner_id = $2`,
		r.ID, r.OwnerID, r.Title, r.Template, r.IsPublic, string(content), r.UpdatedAt)
	if err != nil {
		return storageError("update resume", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (s *PostgresStore) Delete(ctx context.Context, id uuid.UUID, ownerID string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM resumes WHERE id = $1 AND owner_id = $2`, id, ownerID)
	if err != nil {
		return storageError("delete resume", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// storageError marks connectivity failures as ErrStorageUnavailable and
// leaves query errors as they are.
func storageError(op string, err error) error {
	var netErr net.Error
	if errors.As(err, &netErr) || pgconn.Timeout(err) || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%s: %w: %w", op, domain.ErrStorageUnavailable, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}
