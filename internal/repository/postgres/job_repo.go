package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go-applytrack-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type jobRepo struct {
	db *pgxpool.Pool
}

func NewJobRepository(db *pgxpool.Pool) domain.JobRepository {
	return &jobRepo{db: db}
}

func (r *jobRepo) Create(ctx context.Context, job *domain.Job) error {
	requirements, err := json.Marshal(job.Requirements)
	if err != nil {
		return fmt.Errorf("failed to encode requirements: %w", err)
	}

	query := `
		INSERT INTO jobs (employer_id, title, company, location, description,
		                  salary_min, salary_max, requirements, status, deadline,
		                  created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW(), NOW())
		RETURNING id, created_at, updated_at`

	return r.db.QueryRow(ctx, query,
		job.EmployerID, job.Title, job.Company, job.Location, job.Description,
		job.SalaryMin, job.SalaryMax, requirements, job.Status, job.Deadline,
	).Scan(&job.ID, &job.CreatedAt, &job.UpdatedAt)
}

func (r *jobRepo) GetByID(ctx context.Context, id int64) (*domain.Job, error) {
	query := `
		SELECT id, employer_id, title, company, COALESCE(location, ''),
		       COALESCE(description, ''), COALESCE(salary_min, 0), COALESCE(salary_max, 0),
		       COALESCE(requirements, '{}'::jsonb), COALESCE(status, ''), deadline,
		       created_at, updated_at
		FROM jobs WHERE id = $1`

	job, err := scanJob(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return job, nil
}

// FetchOpen lists jobs accepting applications. Rows with a NULL or empty
// status are legacy postings and count as open.
func (r *jobRepo) FetchOpen(ctx context.Context, limit, offset int) ([]domain.Job, int64, error) {
	where := `WHERE COALESCE(status, '') IN ('', 'open')`

	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM jobs `+where).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `
		SELECT id, employer_id, title, company, COALESCE(location, ''),
		       COALESCE(description, ''), COALESCE(salary_min, 0), COALESCE(salary_max, 0),
		       COALESCE(requirements, '{}'::jsonb), COALESCE(status, ''), deadline,
		       created_at, updated_at
		FROM jobs ` + where + `
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`

	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	jobs, err := collectJobs(rows)
	if err != nil {
		return nil, 0, err
	}
	return jobs, total, nil
}

func (r *jobRepo) FetchByEmployer(ctx context.Context, employerID string, limit, offset int) ([]domain.Job, int64, error) {
	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM jobs WHERE employer_id = $1`, employerID).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `
		SELECT id, employer_id, title, company, COALESCE(location, ''),
		       COALESCE(description, ''), COALESCE(salary_min, 0), COALESCE(salary_max, 0),
		       COALESCE(requirements, '{}'::jsonb), COALESCE(status, ''), deadline,
		       created_at, updated_at
		FROM jobs WHERE employer_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`

	rows, err := r.db.Query(ctx, query, employerID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	jobs, err := collectJobs(rows)
	if err != nil {
		return nil, 0, err
	}
	return jobs, total, nil
}

func (r *jobRepo) Update(ctx context.Context, job *domain.Job) error {
	requirements, err := json.Marshal(job.Requirements)
	if err != nil {
		return fmt.Errorf("failed to encode requirements: %w", err)
	}

	query := `
		UPDATE jobs
		SET title = $2, company = $3, location = $4, description = $5,
		    salary_min = $6, salary_max = $7, requirements = $8, status = $9,
		    deadline = $10, updated_at = NOW()
		WHERE id = $1`

	result, err := r.db.Exec(ctx, query,
		job.ID, job.Title, job.Company, job.Location, job.Description,
		job.SalaryMin, job.SalaryMax, requirements, job.Status, job.Deadline,
	)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *jobRepo) UpdateStatus(ctx context.Context, id int64, status string) error {
	result, err := r.db.Exec(ctx,
		`UPDATE jobs SET status = $2, updated_at = NOW() WHERE id = $1`, id, status)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanJob(row pgx.Row) (*domain.Job, error) {
	var (
		job          domain.Job
		requirements []byte
	)
	err := row.Scan(
		&job.ID, &job.EmployerID, &job.Title, &job.Company, &job.Location,
		&job.Description, &job.SalaryMin, &job.SalaryMax,
		&requirements, &job.Status, &job.Deadline,
		&job.CreatedAt, &job.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if len(requirements) > 0 {
		if err := json.Unmarshal(requirements, &job.Requirements); err != nil {
			return nil, fmt.Errorf("failed to decode requirements for job %d: %w", job.ID, err)
		}
	}
	return &job, nil
}

func collectJobs(rows pgx.Rows) ([]domain.Job, error) {
	jobs := []domain.Job{}
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, *job)
	}
	return jobs, rows.Err()
}
