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
)

type PgxViewRepository struct {
	BaseRepository
}

func newPgxViewRepository(db *pgxpool.Pool) portsrepo.ViewRepositoryFacade {
	return &PgxViewRepository{BaseRepository: BaseRepository{Pool: db}}
}

var _ portsrepo.ViewRepositoryFacade = (*PgxViewRepository)(nil)

// querier is satisfied by both the pool and a transaction.
type querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

func (r *PgxViewRepository) GetViews(ctx context.Context) (*domain.SiteViews, error) {
	return loadSiteViews(ctx, r.Pool)
}

func (r *PgxViewRepository) AddCourse(ctx context.Context, course domain.CourseViews) (*domain.SiteViews, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx) //nolint:errcheck

	if _, err := tx.Exec(ctx, `INSERT INTO site_views (id) VALUES (1) ON CONFLICT (id) DO NOTHING;`); err != nil {
		return nil, fmt.Errorf("failed to initialise view counters: %w", err)
	}

	_, err = tx.Exec(ctx, `
        INSERT INTO course_views (course_code, total_course_view, total_question_view)
        VALUES ($1, $2, $3);
    `, course.CourseCode, course.TotalCourseView, course.TotalQuestionView)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("course %s already has view counters: %w", course.CourseCode, apperrors.ErrDuplicate)
		}
		return nil, fmt.Errorf("failed to add course view counters: %w", err)
	}

	if _, err := tx.Exec(ctx, `UPDATE site_views SET updated_at = NOW() WHERE id = 1;`); err != nil {
		return nil, fmt.Errorf("failed to touch view counters: %w", err)
	}

	views, err := loadSiteViews(ctx, tx)
	if err != nil {
		return nil, err
	}
	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return views, nil
}

// Increment bumps the flagged counters with in-place additions so concurrent
// requests never lose an update. An unknown course code leaves course counters untouched.
func (r *PgxViewRepository) Increment(ctx context.Context, inc domain.ViewIncrement) (*domain.SiteViews, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx) //nolint:errcheck

	cmdTag, err := tx.Exec(ctx, `
        UPDATE site_views
        SET total_view = total_view + $1,
            total_blog_view = total_blog_view + $2,
            total_blog_reader = total_blog_reader + $3,
            updated_at = NOW()
        WHERE id = 1;
    `, boolToInt(inc.TotalView), boolToInt(inc.TotalBlogView), boolToInt(inc.TotalBlogReader))
	if err != nil {
		return nil, fmt.Errorf("failed to increment view counters: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return nil, apperrors.ErrNotFound
	}

	if inc.TouchesCourse() {
		_, err = tx.Exec(ctx, `
            UPDATE course_views
            SET total_course_view = total_course_view + $1,
                total_question_view = total_question_view + $2
            WHERE course_code = $3;
        `, boolToInt(inc.TotalCourseView), boolToInt(inc.TotalQuestionView), inc.CourseCode)
		if err != nil {
			return nil, fmt.Errorf("failed to increment course view counters: %w", err)
		}
	}

	views, err := loadSiteViews(ctx, tx)
	if err != nil {
		return nil, err
	}
	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return views, nil
}

func loadSiteViews(ctx context.Context, q querier) (*domain.SiteViews, error) {
	var m models.SiteViews
	err := q.QueryRow(ctx, `
        SELECT total_view, total_blog_view, total_blog_reader, updated_at
        FROM site_views
        WHERE id = 1;
    `).Scan(&m.TotalView, &m.TotalBlogView, &m.TotalBlogReader, &m.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to load view counters: %w", err)
	}

	rows, err := q.Query(ctx, `
        SELECT course_code, total_course_view, total_question_view
        FROM course_views
        ORDER BY position;
    `)
	if err != nil {
		return nil, fmt.Errorf("failed to query course view counters: %w", err)
	}
	defer rows.Close()

	courses := []models.CourseViews{}
	for rows.Next() {
		var c models.CourseViews
		if err := rows.Scan(&c.CourseCode, &c.TotalCourseView, &c.TotalQuestionView); err != nil {
			return nil, fmt.Errorf("failed to scan course view row: %w", err)
		}
		courses = append(courses, c)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating course view rows: %w", rows.Err())
	}

	d := mapping.ToDomainSiteViews(m, courses)
	return &d, nil
}

func boolToInt(b bool) int64 {
	if b {
		return 1
	}
	return 0
}
