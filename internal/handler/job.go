package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/siddharth180703/NextHire/internal/repository"
	"github.com/siddharth180703/NextHire/pkg/model"
	"github.com/siddharth180703/NextHire/pkg/response"
	"go.uber.org/zap"
)

const (
	msgCompanyNotFound = "Company not found."
	msgJobNotFound     = "Job not found"
	msgJobsNotFound    = "Jobs not found."
)

// PostJob creates a job with its screening quiz.
func (h *Handler) PostJob(c *gin.Context) {
	claims := h.GetClaimsFromContext(c)
	if claims == nil {
		response.Unauthorized(c, "")
		return
	}

	req, ok := h.bindJobReq(c, model.ModeCreate)
	if !ok {
		return
	}
	company, ok := h.ownedCompany(c, req.CompanyID, claims.UserID)
	if !ok {
		return
	}

	job := &model.Job{CreatedBy: claims.UserID}
	req.ApplyTo(job, company.CompanyID)

	if err := h.Repository.CreateJob(c.Request.Context(), job); err != nil {
		h.Logger.Error("post job: create", zap.String("title", job.Title), zap.Error(err))
		response.InternalError(c, "")
		return
	}

	job.Company = company
	job.Applications = []model.Application{}
	response.Created(c, "New job created successfully.", gin.H{"job": job})
}

// UpdateJob replaces a job the caller owns. Fields the update mode treats
// as optional keep their stored values when omitted.
func (h *Handler) UpdateJob(c *gin.Context) {
	claims := h.GetClaimsFromContext(c)
	if claims == nil {
		response.Unauthorized(c, "")
		return
	}

	jobID, ok := parseID(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid job id.")
		return
	}

	req, ok := h.bindJobReq(c, model.ModeUpdate)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	job, err := h.Repository.GetJobByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			response.NotFound(c, msgJobNotFound)
			return
		}
		h.Logger.Error("update job: fetch", zap.String("job_id", jobID.String()), zap.Error(err))
		response.InternalError(c, "")
		return
	}
	if job.CreatedBy != claims.UserID {
		response.NotFound(c, msgJobNotFound)
		return
	}

	company, ok := h.ownedCompany(c, req.CompanyID, claims.UserID)
	if !ok {
		return
	}

	req.ApplyTo(job, company.CompanyID)
	if err := h.Repository.UpdateJob(ctx, job); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			response.NotFound(c, msgJobNotFound)
			return
		}
		h.Logger.Error("update job: update", zap.String("job_id", jobID.String()), zap.Error(err))
		response.InternalError(c, "")
		return
	}

	job.Company = company
	response.OK(c, "Job updated successfully", gin.H{"job": job})
}

// GetJobByID returns one job with company and applications expanded.
func (h *Handler) GetJobByID(c *gin.Context) {
	jobID, ok := parseID(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid job id.")
		return
	}

	job, err := h.Repository.GetJobByID(c.Request.Context(), jobID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			response.NotFound(c, msgJobsNotFound)
			return
		}
		h.Logger.Error("get job: fetch", zap.String("job_id", jobID.String()), zap.Error(err))
		response.InternalError(c, "")
		return
	}

	response.OK(c, "", gin.H{"job": job})
}

// GetAllJobs searches title and description for ?keyword=.
func (h *Handler) GetAllJobs(c *gin.Context) {
	var q model.ListJobsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, "Invalid query.")
		return
	}

	jobs, err := h.Repository.ListJobs(c.Request.Context(), q.Keyword)
	if err != nil {
		h.Logger.Error("get all jobs: list", zap.String("keyword", q.Keyword), zap.Error(err))
		response.InternalError(c, "")
		return
	}

	response.OK(c, "", gin.H{"jobs": jobs})
}

// GetAdminJobs lists the jobs the calling recruiter posted.
func (h *Handler) GetAdminJobs(c *gin.Context) {
	claims := h.GetClaimsFromContext(c)
	if claims == nil {
		response.Unauthorized(c, "")
		return
	}

	jobs, err := h.Repository.ListJobsByCreator(c.Request.Context(), claims.UserID)
	if err != nil {
		h.Logger.Error("get admin jobs: list", zap.String("user_id", claims.UserID.String()), zap.Error(err))
		response.InternalError(c, "")
		return
	}

	response.OK(c, "", gin.H{"jobs": jobs})
}

func (h *Handler) bindJobReq(c *gin.Context, mode model.ValidationMode) (*model.JobReq, bool) {
	var req model.JobReq
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Logger.Debug("job: bad request body", zap.Error(err))
		response.BadRequest(c, model.MsgJobFieldsMissing)
		return nil, false
	}

	if err := req.Validate(mode); err != nil {
		var ve *model.ValidationError
		if errors.As(err, &ve) {
			response.BadRequest(c, ve.Msg)
			return nil, false
		}
		h.Logger.Error("job: validate", zap.Error(err))
		response.InternalError(c, "")
		return nil, false
	}
	return &req, true
}

// ownedCompany resolves companyID and checks the caller registered it.
func (h *Handler) ownedCompany(c *gin.Context, companyID string, userID uuid.UUID) (*model.Company, bool) {
	id, err := uuid.Parse(companyID)
	if err != nil {
		response.BadRequest(c, msgCompanyNotFound)
		return nil, false
	}

	company, err := h.Repository.GetCompanyByID(c.Request.Context(), id)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		h.Logger.Error("job: fetch company", zap.String("company_id", companyID), zap.Error(err))
		response.InternalError(c, "")
		return nil, false
	}
	if err != nil || company.UserID != userID {
		response.BadRequest(c, msgCompanyNotFound)
		return nil, false
	}
	return company, true
}
