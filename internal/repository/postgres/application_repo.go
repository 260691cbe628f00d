package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go-applytrack-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type applicationRepo struct {
	db *pgxpool.Pool
}

func NewApplicationRepository(db *pgxpool.Pool) domain.ApplicationRepository {
	return &applicationRepo{db: db}
}

// Create inserts a new application. The (job_id, candidate_id) unique
// constraint is the authority on duplicates; a concurrent insert loses
// here and surfaces as ErrDuplicateApplication.
func (r *applicationRepo) Create(ctx context.Context, app *domain.Application) error {
	answers, err := json.Marshal(app.Answers)
	if err != nil {
		return fmt.Errorf("failed to encode answers: %w", err)
	}

	query := `
		INSERT INTO applications (job_id, candidate_id, status, resume_url,
		                          cover_letter, supplemental_answers,
		                          applied_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		RETURNING id, applied_at, updated_at`

	err = r.db.QueryRow(ctx, query,
		app.JobID, app.CandidateID, app.Status, nullIfEmpty(app.ResumeURL),
		app.CoverLetter, answers,
	).Scan(&app.ID, &app.AppliedAt, &app.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return domain.ErrDuplicateApplication
		}
		return err
	}
	return nil
}

func (r *applicationRepo) GetByID(ctx context.Context, id int64) (*domain.Application, error) {
	query := `
		SELECT a.id, a.job_id, a.candidate_id, a.status, COALESCE(a.resume_url, ''),
		       a.cover_letter, COALESCE(a.supplemental_answers, '{}'::jsonb),
		       a.applied_at, a.updated_at,
		       p.name, j.title, j.company
		FROM applications a
		LEFT JOIN candidate_profiles p ON p.user_id = a.candidate_id
		JOIN jobs j ON j.id = a.job_id
		WHERE a.id = $1`

	app, err := scanApplication(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return app, nil
}

func (r *applicationRepo) GetByJobID(ctx context.Context, jobID int64) ([]domain.Application, error) {
	query := `
		SELECT a.id, a.job_id, a.candidate_id, a.status, COALESCE(a.resume_url, ''),
		       a.cover_letter, COALESCE(a.supplemental_answers, '{}'::jsonb),
		       a.applied_at, a.updated_at,
		       p.name, j.title, j.company
		FROM applications a
		LEFT JOIN candidate_profiles p ON p.user_id = a.candidate_id
		JOIN jobs j ON j.id = a.job_id
		WHERE a.job_id = $1
		ORDER BY a.applied_at DESC`

	rows, err := r.db.Query(ctx, query, jobID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectApplications(rows)
}

func (r *applicationRepo) GetByCandidateID(ctx context.Context, candidateID string) ([]domain.Application, error) {
	query := `
		SELECT a.id, a.job_id, a.candidate_id, a.status, COALESCE(a.resume_url, ''),
		       a.cover_letter, COALESCE(a.supplemental_answers, '{}'::jsonb),
		       a.applied_at, a.updated_at,
		       p.name, j.title, j.company
		FROM applications a
		LEFT JOIN candidate_profiles p ON p.user_id = a.candidate_id
		JOIN jobs j ON j.id = a.job_id
		WHERE a.candidate_id = $1
		ORDER BY a.applied_at DESC`

	rows, err := r.db.Query(ctx, query, candidateID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectApplications(rows)
}

func (r *applicationRepo) CheckExists(ctx context.Context, jobID int64, candidateID string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM applications WHERE job_id = $1 AND candidate_id = $2)`,
		jobID, candidateID,
	).Scan(&exists)
	return exists, err
}

func (r *applicationRepo) UpdateStatus(ctx context.Context, id int64, status string) error {
	result, err := r.db.Exec(ctx,
		`UPDATE applications SET status = $2, updated_at = NOW() WHERE id = $1`, id, status)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanApplication(row pgx.Row) (*domain.Application, error) {
	var (
		app     domain.Application
		answers []byte
	)
	err := row.Scan(
		&app.ID, &app.JobID, &app.CandidateID, &app.Status, &app.ResumeURL,
		&app.CoverLetter, &answers,
		&app.AppliedAt, &app.UpdatedAt,
		&app.CandidateName, &app.JobTitle, &app.JobCompany,
	)
	if err != nil {
		return nil, err
	}
	if len(answers) > 0 {
		if err := json.Unmarshal(answers, &app.Answers); err != nil {
			return nil, fmt.Errorf("failed to decode answers for application %d: %w", app.ID, err)
		}
	}
	return &app, nil
}

func collectApplications(rows pgx.Rows) ([]domain.Application, error) {
	apps := []domain.Application{}
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		apps = append(apps, *app)
	}
	return apps, rows.Err()
}
