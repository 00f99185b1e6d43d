package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/siddharth180703/NextHire/pkg/model"
)

const jobSelect = `
SELECT j.job_id, j.title, j.description, j.requirements, j.salary, j.location, j.job_type,
       j.experience_level, j.position, j.company_id, j.created_by, j.quiz, j.created_at, j.updated_at,
       c.company_id, c.name, c.description, c.website, c.location, c.user_id, c.created_at, c.updated_at
FROM jobs j
JOIN companies c ON c.company_id = j.company_id
`

func (r *Repository) CreateJob(ctx context.Context, job *model.Job) error {
	requirements, quiz, err := marshalJobDocs(job)
	if err != nil {
		return err
	}

	const q = `
INSERT INTO jobs (
	title, description, requirements, salary, location, job_type,
	experience_level, position, company_id, created_by, quiz
) VALUES ($1, $2, $3::jsonb, $4, $5, $6, $7, $8, $9, $10, $11::jsonb)
RETURNING job_id, created_at, updated_at
`
	row := r.db.QueryRow(ctx, q,
		job.Title, job.Description, requirements, job.Salary, job.Location, job.JobType,
		job.ExperienceLevel, job.Position, job.CompanyID, job.CreatedBy, quiz,
	)
	if err := row.Scan(&job.JobID, &job.CreatedAt, &job.UpdatedAt); err != nil {
		return classify("insert job", err)
	}
	return nil
}

// UpdateJob overwrites every mutable column of a job owned by job.CreatedBy.
func (r *Repository) UpdateJob(ctx context.Context, job *model.Job) error {
	requirements, quiz, err := marshalJobDocs(job)
	if err != nil {
		return err
	}

	const q = `
UPDATE jobs
SET title = $1, description = $2, requirements = $3::jsonb, salary = $4, location = $5,
    job_type = $6, experience_level = $7, position = $8, company_id = $9, quiz = $10::jsonb,
    updated_at = now()
WHERE job_id = $11 AND created_by = $12
RETURNING updated_at
`
	row := r.db.QueryRow(ctx, q,
		job.Title, job.Description, requirements, job.Salary, job.Location,
		job.JobType, job.ExperienceLevel, job.Position, job.CompanyID, quiz,
		job.JobID, job.CreatedBy,
	)
	if err := row.Scan(&job.UpdatedAt); err != nil {
		return classify("update job", err)
	}
	return nil
}

// GetJobByID returns the job with its company and applications expanded.
func (r *Repository) GetJobByID(ctx context.Context, jobID uuid.UUID) (*model.Job, error) {
	job, err := scanJob(r.db.QueryRow(ctx, jobSelect+` WHERE j.job_id = $1`, jobID))
	if err != nil {
		return nil, classify("get job", err)
	}

	apps, err := r.applicationsForJobs(ctx, []uuid.UUID{job.JobID})
	if err != nil {
		return nil, err
	}
	job.Applications = apps[job.JobID]
	if job.Applications == nil {
		job.Applications = []model.Application{}
	}
	return job, nil
}

// ListJobs returns jobs whose title or description contains keyword,
// ignoring case, newest first. The keyword is matched literally.
func (r *Repository) ListJobs(ctx context.Context, keyword string) ([]model.Job, error) {
	q := jobSelect + `
WHERE strpos(lower(j.title), lower($1)) > 0 OR strpos(lower(j.description), lower($1)) > 0
ORDER BY j.created_at DESC
`
	return r.listJobs(ctx, "list jobs", q, keyword)
}

// ListJobsByCreator returns the jobs a recruiter posted, newest first.
func (r *Repository) ListJobsByCreator(ctx context.Context, userID uuid.UUID) ([]model.Job, error) {
	q := jobSelect + ` WHERE j.created_by = $1 ORDER BY j.created_at DESC`
	return r.listJobs(ctx, "list admin jobs", q, userID)
}

func (r *Repository) listJobs(ctx context.Context, op, q string, args ...any) ([]model.Job, error) {
	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, classify(op, err)
	}
	defer rows.Close()

	jobs := make([]model.Job, 0)
	ids := make([]uuid.UUID, 0)
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, classify(op, err)
		}
		jobs = append(jobs, *job)
		ids = append(ids, job.JobID)
	}
	if err := rows.Err(); err != nil {
		return nil, classify(op, err)
	}

	apps, err := r.applicationsForJobs(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range jobs {
		jobs[i].Applications = apps[jobs[i].JobID]
		if jobs[i].Applications == nil {
			jobs[i].Applications = []model.Application{}
		}
	}
	return jobs, nil
}

func scanJob(row pgx.Row) (*model.Job, error) {
	var (
		j            model.Job
		c            model.Company
		requirements []byte
		quiz         []byte
	)
	err := row.Scan(
		&j.JobID, &j.Title, &j.Description, &requirements, &j.Salary, &j.Location, &j.JobType,
		&j.ExperienceLevel, &j.Position, &j.CompanyID, &j.CreatedBy, &quiz, &j.CreatedAt, &j.UpdatedAt,
		&c.CompanyID, &c.Name, &c.Description, &c.Website, &c.Location, &c.UserID, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(requirements, &j.Requirements); err != nil {
		return nil, fmt.Errorf("unmarshal requirements: %w", err)
	}
	if err := json.Unmarshal(quiz, &j.Quiz); err != nil {
		return nil, fmt.Errorf("unmarshal quiz: %w", err)
	}
	j.Company = &c
	return &j, nil
}

func marshalJobDocs(job *model.Job) ([]byte, []byte, error) {
	requirements := job.Requirements
	if requirements == nil {
		requirements = []string{}
	}
	reqBytes, err := json.Marshal(requirements)
	if err != nil {
		return nil, nil, fmt.Errorf("marshal requirements: %w", err)
	}
	quizBytes, err := json.Marshal(job.Quiz)
	if err != nil {
		return nil, nil, fmt.Errorf("marshal quiz: %w", err)
	}
	return reqBytes, quizBytes, nil
}
