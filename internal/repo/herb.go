// Package repo contains all database access logic for the herbal catalog.
// Each resource has its own file with an interface and a Postgres implementation.
// No business logic lives here, only SQL and type mapping.
package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/ayush-assistant/herbcatalog/internal/domain"
)

// db is the minimal interface satisfied by *pgxpool.Pool, *pgx.Conn, and pgx.Tx.
// Accepting this interface instead of *pgxpool.Pool directly allows integration
// tests to pass a transaction that is rolled back after each test. Begin on a
// pgx.Tx opens a savepoint, so CreateBatch stays atomic inside a test tx too.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
}

// HerbRepo defines the persistence operations for catalog entries.
// The service layer depends on this interface, not the concrete Postgres
// implementation, which allows the service to be unit-tested with a mock.
type HerbRepo interface {
	// Create inserts one herb and returns the persisted record with the
	// store-assigned id and created_at populated.
	Create(ctx context.Context, herb domain.Herb) (domain.Herb, error)

	// CreateBatch inserts all herbs in a single transaction. Either every
	// herb is persisted or none is.
	CreateBatch(ctx context.Context, herbs []domain.Herb) error

	// GetByID retrieves a single herb by its UUID primary key.
	// Returns domain.ErrNotFound if no herb with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.Herb, error)

	// List returns every herb ordered by created_at descending.
	List(ctx context.Context) ([]domain.Herb, error)

	// Delete removes a herb by ID. Returns domain.ErrNotFound if it does not exist.
	Delete(ctx context.Context, id uuid.UUID) error
}

// pgHerbRepo is the Postgres implementation of HerbRepo.
type pgHerbRepo struct {
	db db
}

// NewHerbRepo constructs a HerbRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewHerbRepo(db db) HerbRepo {
	return &pgHerbRepo{db: db}
}

const herbColumns = `id, name, category, benefits, used_for, forms, image_url, dosage, precautions, created_at`

const insertHerb = `
	INSERT INTO herbs (name, category, benefits, used_for, forms, image_url, dosage, precautions)
	VALUES (@name, @category, @benefits, @used_for, @forms, @image_url, @dosage, @precautions)
	RETURNING ` + herbColumns

// Create inserts a herb row and returns the full persisted record.
func (r *pgHerbRepo) Create(ctx context.Context, herb domain.Herb) (domain.Herb, error) {
	row := r.db.QueryRow(ctx, insertHerb, herbArgs(herb))
	result, err := scanHerb(row)
	if err != nil {
		return domain.Herb{}, fmt.Errorf("repo.HerbRepo.Create: %w", err)
	}
	return result, nil
}

// CreateBatch queues one INSERT per herb on a pgx.Batch inside a transaction
// and commits only if every statement succeeded.
func (r *pgHerbRepo) CreateBatch(ctx context.Context, herbs []domain.Herb) (err error) {
	if len(herbs) == 0 {
		return nil
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("repo.HerbRepo.CreateBatch: begin: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	batch := &pgx.Batch{}
	for _, h := range herbs {
		batch.Queue(insertHerb, herbArgs(h))
	}

	br := tx.SendBatch(ctx, batch)
	for i := range herbs {
		if _, err = br.Exec(); err != nil {
			_ = br.Close()
			return fmt.Errorf("repo.HerbRepo.CreateBatch: row %d: %w", i, err)
		}
	}
	if err = br.Close(); err != nil {
		return fmt.Errorf("repo.HerbRepo.CreateBatch: close batch: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("repo.HerbRepo.CreateBatch: commit: %w", err)
	}
	return nil
}

// GetByID retrieves a herb by primary key.
func (r *pgHerbRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Herb, error) {
	const q = `SELECT ` + herbColumns + ` FROM herbs WHERE id = @id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id})
	result, err := scanHerb(row)
	if err != nil {
		return domain.Herb{}, fmt.Errorf("repo.HerbRepo.GetByID: %w", err)
	}
	return result, nil
}

// List returns all herbs, newest first.
func (r *pgHerbRepo) List(ctx context.Context) ([]domain.Herb, error) {
	const q = `SELECT ` + herbColumns + ` FROM herbs ORDER BY created_at DESC, id`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("repo.HerbRepo.List: %w", err)
	}
	defer rows.Close()

	herbs := []domain.Herb{}
	for rows.Next() {
		h, err := scanHerb(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.HerbRepo.List: scan: %w", err)
		}
		herbs = append(herbs, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.HerbRepo.List: rows: %w", err)
	}
	return herbs, nil
}

// Delete removes a herb by primary key.
func (r *pgHerbRepo) Delete(ctx context.Context, id uuid.UUID) error {
	const q = `DELETE FROM herbs WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("repo.HerbRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.HerbRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

// herbArgs maps a herb to named insert arguments.
// Nil tag slices become empty arrays; the columns are NOT NULL.
func herbArgs(h domain.Herb) pgx.NamedArgs {
	return pgx.NamedArgs{
		"name":        h.Name,
		"category":    h.Category,
		"benefits":    nonNil(h.Benefits),
		"used_for":    nonNil(h.UsedFor),
		"forms":       nonNil(h.Forms),
		"image_url":   h.ImageURL,
		"dosage":      h.Dosage,
		"precautions": nonNil(h.Precautions),
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

// scanner is satisfied by both pgx.Row and pgx.Rows, allowing scanHerb to be
// reused for both QueryRow and Query calls.
type scanner interface {
	Scan(dest ...any) error
}

// scanHerb maps a single database row into a domain.Herb.
func scanHerb(s scanner) (domain.Herb, error) {
	var (
		h  domain.Herb
		id pgtype.UUID
	)

	err := s.Scan(&id, &h.Name, &h.Category, &h.Benefits, &h.UsedFor, &h.Forms,
		&h.ImageURL, &h.Dosage, &h.Precautions, &h.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Herb{}, domain.ErrNotFound
		}
		return domain.Herb{}, err
	}

	h.ID = uuid.UUID(id.Bytes)
	return h, nil
}
