package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/siddharth180703/NextHire/pkg/model"
)

const companyColumns = `company_id, name, description, website, location, user_id, created_at, updated_at`

func (r *Repository) CreateCompany(ctx context.Context, company *model.Company) error {
	const q = `INSERT INTO companies (name, user_id) VALUES ($1, $2) RETURNING company_id, created_at, updated_at`
	row := r.db.QueryRow(ctx, q, company.Name, company.UserID)
	if err := row.Scan(&company.CompanyID, &company.CreatedAt, &company.UpdatedAt); err != nil {
		return classify("create company", err)
	}
	return nil
}

func (r *Repository) GetCompanyByID(ctx context.Context, companyID uuid.UUID) (*model.Company, error) {
	q := `SELECT ` + companyColumns + ` FROM companies WHERE company_id = $1`
	var c model.Company
	err := r.db.QueryRow(ctx, q, companyID).Scan(
		&c.CompanyID, &c.Name, &c.Description, &c.Website, &c.Location, &c.UserID, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, classify("get company", err)
	}
	return &c, nil
}

func (r *Repository) ListCompaniesByUser(ctx context.Context, userID uuid.UUID) ([]model.Company, error) {
	q := `SELECT ` + companyColumns + ` FROM companies WHERE user_id = $1 ORDER BY created_at DESC`
	rows, err := r.db.Query(ctx, q, userID)
	if err != nil {
		return nil, classify("list companies", err)
	}
	defer rows.Close()

	out := make([]model.Company, 0)
	for rows.Next() {
		var c model.Company
		if err := rows.Scan(&c.CompanyID, &c.Name, &c.Description, &c.Website, &c.Location, &c.UserID, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, classify("scan company", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, classify("list companies", err)
	}
	return out, nil
}

func (r *Repository) UpdateCompany(ctx context.Context, company *model.Company) error {
	const q = `
UPDATE companies
SET name = $1, description = $2, website = $3, location = $4, updated_at = now()
WHERE company_id = $5
RETURNING updated_at
`
	row := r.db.QueryRow(ctx, q, company.Name, company.Description, company.Website, company.Location, company.CompanyID)
	if err := row.Scan(&company.UpdatedAt); err != nil {
		return classify("update company", err)
	}
	return nil
}
