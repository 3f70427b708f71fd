package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/freshmanexams/fe_backend/internal/apperrors"
	"github.com/freshmanexams/fe_backend/internal/core/domain"
	portsrepo "github.com/freshmanexams/fe_backend/internal/core/ports/repositories"
	"github.com/freshmanexams/fe_backend/internal/models"
	"github.com/freshmanexams/fe_backend/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type PgxProgressRepository struct {
	BaseRepository
}

func newPgxProgressRepository(db *pgxpool.Pool) portsrepo.ProgressRepositoryFacade {
	return &PgxProgressRepository{BaseRepository: BaseRepository{Pool: db}}
}

var _ portsrepo.ProgressRepositoryFacade = (*PgxProgressRepository)(nil)

func (r *PgxProgressRepository) CreateProgress(ctx context.Context, record domain.ProgressRecord) error {
	query := `
        INSERT INTO progress_records (progress_id, user_name, created_at, updated_at)
        VALUES ($1, $2, $3, $4);
    `
	_, err := r.Pool.Exec(ctx, query, record.ID, record.UserName, record.CreatedAt, record.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("progress record for %s already exists: %w", record.UserName, apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to create progress record: %w", err)
	}
	return nil
}

func (r *PgxProgressRepository) FindProgressByUserName(ctx context.Context, userName string) (*domain.ProgressRecord, error) {
	var m models.ProgressRecord
	err := r.Pool.QueryRow(ctx, `
        SELECT progress_id, user_name, created_at, updated_at
        FROM progress_records
        WHERE user_name = $1;
    `, userName).Scan(&m.ProgressID, &m.UserName, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find progress record: %w", err)
	}

	entries, err := r.loadEntries(ctx, `WHERE progress_id = $1`, m.ProgressID)
	if err != nil {
		return nil, err
	}
	d := mapping.ToDomainProgress(m, entries)
	return &d, nil
}

// SaveProgress replaces the entry rows of the record inside one transaction.
func (r *PgxProgressRepository) SaveProgress(ctx context.Context, record domain.ProgressRecord) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx) //nolint:errcheck

	cmdTag, err := tx.Exec(ctx, `UPDATE progress_records SET updated_at = $1 WHERE progress_id = $2;`, record.UpdatedAt, record.ID)
	if err != nil {
		return fmt.Errorf("failed to update progress record: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("progress record not found: %w", apperrors.ErrNotFound)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM progress_entries WHERE progress_id = $1;`, record.ID); err != nil {
		return fmt.Errorf("failed to clear progress entries: %w", err)
	}

	rows := mapping.ToModelProgressEntries(record)
	if len(rows) > 0 {
		batch := &pgx.Batch{}
		for _, e := range rows {
			batch.Queue(`
                INSERT INTO progress_entries (progress_id, position, chapter_name, data)
                VALUES ($1, $2, $3, $4::numeric);
            `, e.ProgressID, e.Position, e.ChapterName, e.Data.String())
		}
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return fmt.Errorf("failed to insert progress entries: %w", err)
		}
	}

	return r.Commit(ctx, tx)
}

func (r *PgxProgressRepository) ListProgress(ctx context.Context) ([]domain.ProgressRecord, error) {
	rows, err := r.Pool.Query(ctx, `
        SELECT progress_id, user_name, created_at, updated_at
        FROM progress_records
        ORDER BY created_at;
    `)
	if err != nil {
		return nil, fmt.Errorf("failed to query progress records: %w", err)
	}
	defer rows.Close()

	records := []models.ProgressRecord{}
	for rows.Next() {
		var m models.ProgressRecord
		if err := rows.Scan(&m.ProgressID, &m.UserName, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan progress row: %w", err)
		}
		records = append(records, m)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating progress rows: %w", rows.Err())
	}

	entries, err := r.loadEntries(ctx, "")
	if err != nil {
		return nil, err
	}
	byRecord := make(map[string][]models.ProgressEntry)
	for _, e := range entries {
		byRecord[e.ProgressID] = append(byRecord[e.ProgressID], e)
	}

	out := make([]domain.ProgressRecord, len(records))
	for i, m := range records {
		out[i] = mapping.ToDomainProgress(m, byRecord[m.ProgressID])
	}
	return out, nil
}

func (r *PgxProgressRepository) DeleteProgressByUserName(ctx context.Context, userName string) error {
	if _, err := r.Pool.Exec(ctx, `DELETE FROM progress_records WHERE user_name = $1;`, userName); err != nil {
		return fmt.Errorf("failed to delete progress record: %w", err)
	}
	return nil
}

func (r *PgxProgressRepository) loadEntries(ctx context.Context, where string, args ...any) ([]models.ProgressEntry, error) {
	rows, err := r.Pool.Query(ctx, `
        SELECT progress_id, position, chapter_name, data::text
        FROM progress_entries `+where+`
        ORDER BY progress_id, position;
    `, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query progress entries: %w", err)
	}
	defer rows.Close()

	entries := []models.ProgressEntry{}
	for rows.Next() {
		var e models.ProgressEntry
		var data string
		if err := rows.Scan(&e.ProgressID, &e.Position, &e.ChapterName, &data); err != nil {
			return nil, fmt.Errorf("failed to scan progress entry: %w", err)
		}
		if e.Data, err = decimal.NewFromString(data); err != nil {
			return nil, fmt.Errorf("invalid progress value %q: %w", data, err)
		}
		entries = append(entries, e)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating progress entries: %w", rows.Err())
	}
	return entries, nil
}
