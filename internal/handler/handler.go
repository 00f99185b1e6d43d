package handler

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/siddharth180703/NextHire/internal/auth"
	"github.com/siddharth180703/NextHire/pkg/model"
	"go.uber.org/zap"
)

type UserStore interface {
	CreateUser(ctx context.Context, user *model.User) error
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	GetUserByID(ctx context.Context, userID uuid.UUID) (*model.User, error)
	UpdateUser(ctx context.Context, user *model.User) error
}

type CompanyStore interface {
	CreateCompany(ctx context.Context, company *model.Company) error
	GetCompanyByID(ctx context.Context, companyID uuid.UUID) (*model.Company, error)
	ListCompaniesByUser(ctx context.Context, userID uuid.UUID) ([]model.Company, error)
	UpdateCompany(ctx context.Context, company *model.Company) error
}

type JobStore interface {
	CreateJob(ctx context.Context, job *model.Job) error
	UpdateJob(ctx context.Context, job *model.Job) error
	GetJobByID(ctx context.Context, jobID uuid.UUID) (*model.Job, error)
	ListJobs(ctx context.Context, keyword string) ([]model.Job, error)
	ListJobsByCreator(ctx context.Context, userID uuid.UUID) ([]model.Job, error)
}

type ApplicationStore interface {
	CreateApplication(ctx context.Context, app *model.Application) error
	ListApplicationsByApplicant(ctx context.Context, userID uuid.UUID) ([]model.Application, error)
	ListApplicantsByJob(ctx context.Context, jobID uuid.UUID) ([]model.Application, error)
	UpdateApplicationStatus(ctx context.Context, appID, recruiterID uuid.UUID, status model.ApplicationStatus) (*model.Application, error)
}

// Store is everything the handlers need from persistence.
// *repository.Repository satisfies it.
type Store interface {
	UserStore
	CompanyStore
	JobStore
	ApplicationStore
}

type TokenRevoker interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
}

type EventPublisher interface {
	Publish(ctx context.Context, channel string, event any) error
}

type Handler struct {
	Logger       *zap.Logger
	Repository   Store
	TokenMaker   *auth.JWTMaker
	TokenTTL     time.Duration
	Revoker      TokenRevoker
	Events       EventPublisher
	SecureCookie bool
}

// GetClaimsFromContext returns the claims set by the auth middleware, or nil.
func (h *Handler) GetClaimsFromContext(c *gin.Context) *auth.UserClaims {
	v, exists := c.Get(auth.ClaimsKey)
	if !exists {
		return nil
	}
	claims, ok := v.(*auth.UserClaims)
	if !ok {
		return nil
	}
	return claims
}

func parseID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}
