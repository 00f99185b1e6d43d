package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/siddharth180703/NextHire/pkg/model"
)

const applicationColumns = `a.application_id, a.job_id, a.applicant_id, a.quiz_passed, a.status, a.created_at, a.updated_at`

// CreateApplication records an application. The job row is share-locked so
// a concurrent delete cannot orphan it; a second application by the same
// student returns ErrDuplicate.
func (r *Repository) CreateApplication(ctx context.Context, app *model.Application) error {
	return r.execTx(ctx, func(tx pgx.Tx) error {
		var exists int
		err := tx.QueryRow(ctx, `SELECT 1 FROM jobs WHERE job_id = $1 FOR SHARE`, app.JobID).Scan(&exists)
		if err != nil {
			return classify("lock job", err)
		}

		const q = `
INSERT INTO applications (job_id, applicant_id, quiz_passed, status)
VALUES ($1, $2, $3, $4)
RETURNING application_id, created_at, updated_at
`
		row := tx.QueryRow(ctx, q, app.JobID, app.ApplicantID, app.QuizPassed, app.Status)
		if err := row.Scan(&app.ApplicationID, &app.CreatedAt, &app.UpdatedAt); err != nil {
			return classify("insert application", err)
		}
		return nil
	})
}

// ListApplicationsByApplicant returns a student's applications with the job
// and its company expanded, newest first.
func (r *Repository) ListApplicationsByApplicant(ctx context.Context, userID uuid.UUID) ([]model.Application, error) {
	q := `
SELECT ` + applicationColumns + `,
       j.job_id, j.title, j.description, j.salary, j.location, j.job_type, j.experience_level,
       j.position, j.company_id, j.created_by, j.created_at, j.updated_at,
       c.company_id, c.name, c.description, c.website, c.location, c.user_id, c.created_at, c.updated_at
FROM applications a
JOIN jobs j ON j.job_id = a.job_id
JOIN companies c ON c.company_id = j.company_id
WHERE a.applicant_id = $1
ORDER BY a.created_at DESC
`
	rows, err := r.db.Query(ctx, q, userID)
	if err != nil {
		return nil, classify("list applications", err)
	}
	defer rows.Close()

	out := make([]model.Application, 0)
	for rows.Next() {
		var (
			a model.Application
			j model.Job
			c model.Company
		)
		err := rows.Scan(
			&a.ApplicationID, &a.JobID, &a.ApplicantID, &a.QuizPassed, &a.Status, &a.CreatedAt, &a.UpdatedAt,
			&j.JobID, &j.Title, &j.Description, &j.Salary, &j.Location, &j.JobType, &j.ExperienceLevel,
			&j.Position, &j.CompanyID, &j.CreatedBy, &j.CreatedAt, &j.UpdatedAt,
			&c.CompanyID, &c.Name, &c.Description, &c.Website, &c.Location, &c.UserID, &c.CreatedAt, &c.UpdatedAt,
		)
		if err != nil {
			return nil, classify("scan application", err)
		}
		j.Company = &c
		a.Job = &j
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, classify("list applications", err)
	}
	return out, nil
}

// ListApplicantsByJob returns the applications of one job with the
// applicant profile expanded.
func (r *Repository) ListApplicantsByJob(ctx context.Context, jobID uuid.UUID) ([]model.Application, error) {
	q := `
SELECT ` + applicationColumns + `,
       u.user_id, u.fullname, u.email, u.phone_number, u.role, u.profile
FROM applications a
JOIN users u ON u.user_id = a.applicant_id
WHERE a.job_id = $1
ORDER BY a.created_at DESC
`
	rows, err := r.db.Query(ctx, q, jobID)
	if err != nil {
		return nil, classify("list applicants", err)
	}
	defer rows.Close()

	out := make([]model.Application, 0)
	for rows.Next() {
		var (
			a     model.Application
			u     model.UserRes
			phone string
		)
		err := rows.Scan(
			&a.ApplicationID, &a.JobID, &a.ApplicantID, &a.QuizPassed, &a.Status, &a.CreatedAt, &a.UpdatedAt,
			&u.UserID, &u.Fullname, &u.Email, &phone, &u.Role, &u.Profile,
		)
		if err != nil {
			return nil, classify("scan applicant", err)
		}
		if u.PhoneNumber, err = r.crypto.Decrypt(phone); err != nil {
			return nil, fmt.Errorf("list applicants: decrypt phone: %w", err)
		}
		a.Applicant = &u
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, classify("list applicants", err)
	}
	return out, nil
}

// UpdateApplicationStatus changes the status of an application on a job
// owned by recruiterID.
func (r *Repository) UpdateApplicationStatus(ctx context.Context, appID, recruiterID uuid.UUID, status model.ApplicationStatus) (*model.Application, error) {
	q := `
UPDATE applications a
SET status = $1, updated_at = now()
FROM jobs j
WHERE a.application_id = $2 AND j.job_id = a.job_id AND j.created_by = $3
RETURNING ` + applicationColumns
	var a model.Application
	err := r.db.QueryRow(ctx, q, status, appID, recruiterID).Scan(
		&a.ApplicationID, &a.JobID, &a.ApplicantID, &a.QuizPassed, &a.Status, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return nil, classify("update application status", err)
	}
	return &a, nil
}

func (r *Repository) applicationsForJobs(ctx context.Context, jobIDs []uuid.UUID) (map[uuid.UUID][]model.Application, error) {
	out := make(map[uuid.UUID][]model.Application, len(jobIDs))
	if len(jobIDs) == 0 {
		return out, nil
	}

	q := `SELECT ` + applicationColumns + ` FROM applications a WHERE a.job_id = ANY($1) ORDER BY a.created_at ASC`
	rows, err := r.db.Query(ctx, q, jobIDs)
	if err != nil {
		return nil, classify("list job applications", err)
	}
	defer rows.Close()

	for rows.Next() {
		var a model.Application
		if err := rows.Scan(&a.ApplicationID, &a.JobID, &a.ApplicantID, &a.QuizPassed, &a.Status, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, classify("scan job application", err)
		}
		out[a.JobID] = append(out[a.JobID], a)
	}
	if err := rows.Err(); err != nil {
		return nil, classify("list job applications", err)
	}
	return out, nil
}
