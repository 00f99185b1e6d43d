package handler

import (
	"context"
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/siddharth180703/NextHire/internal/cache"
	"github.com/siddharth180703/NextHire/internal/repository"
	"github.com/siddharth180703/NextHire/pkg/model"
	"github.com/siddharth180703/NextHire/pkg/response"
	"go.uber.org/zap"
)

const (
	msgQuizNotPassed    = "You must pass the quiz to apply."
	msgAlreadyApplied   = "You have already applied for this job"
	msgAppNotFound      = "Application not found."
	msgApplicationSaved = "Job applied successfully."
)

// Apply records the caller's application to a job. The client scores the
// quiz; a request without quizPassed=true is refused.
func (h *Handler) Apply(c *gin.Context) {
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

	var req model.ApplyReq
	if err := c.ShouldBindJSON(&req); err != nil || req.QuizPassed == nil || !*req.QuizPassed {
		response.BadRequest(c, msgQuizNotPassed)
		return
	}

	app := &model.Application{
		JobID:       jobID,
		ApplicantID: claims.UserID,
		QuizPassed:  true,
		Status:      model.ApplicationStatusPending,
	}
	ctx := c.Request.Context()
	if err := h.Repository.CreateApplication(ctx, app); err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicate):
			response.BadRequest(c, msgAlreadyApplied)
		case errors.Is(err, repository.ErrNotFound):
			response.NotFound(c, msgJobNotFound)
		default:
			h.Logger.Error("apply: create application",
				zap.String("job_id", jobID.String()), zap.String("user_id", claims.UserID.String()), zap.Error(err))
			response.InternalError(c, "")
		}
		return
	}

	h.publish(ctx, cache.ChannelApplicationSubmitted, app)
	response.Created(c, msgApplicationSaved, gin.H{"application": app})
}

// GetAppliedJobs lists the caller's applications with job and company.
func (h *Handler) GetAppliedJobs(c *gin.Context) {
	claims := h.GetClaimsFromContext(c)
	if claims == nil {
		response.Unauthorized(c, "")
		return
	}

	apps, err := h.Repository.ListApplicationsByApplicant(c.Request.Context(), claims.UserID)
	if err != nil {
		h.Logger.Error("get applied jobs: list", zap.String("user_id", claims.UserID.String()), zap.Error(err))
		response.InternalError(c, "")
		return
	}

	response.OK(c, "", gin.H{"applications": apps})
}

// GetApplicants returns a job the caller owns with its applicants expanded.
func (h *Handler) GetApplicants(c *gin.Context) {
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

	ctx := c.Request.Context()
	job, err := h.Repository.GetJobByID(ctx, jobID)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		h.Logger.Error("get applicants: fetch job", zap.String("job_id", jobID.String()), zap.Error(err))
		response.InternalError(c, "")
		return
	}
	if err != nil || job.CreatedBy != claims.UserID {
		response.NotFound(c, msgJobNotFound)
		return
	}

	apps, err := h.Repository.ListApplicantsByJob(ctx, jobID)
	if err != nil {
		h.Logger.Error("get applicants: list", zap.String("job_id", jobID.String()), zap.Error(err))
		response.InternalError(c, "")
		return
	}
	job.Applications = apps

	response.OK(c, "", gin.H{"job": job})
}

// UpdateStatus lets the job owner accept or reject an application.
func (h *Handler) UpdateStatus(c *gin.Context) {
	claims := h.GetClaimsFromContext(c)
	if claims == nil {
		response.Unauthorized(c, "")
		return
	}

	appID, ok := parseID(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid application id.")
		return
	}

	var req model.UpdateStatusReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Status is required.")
		return
	}
	status, err := model.ParseApplicationStatus(req.Status)
	if err != nil {
		response.BadRequest(c, "Invalid status.")
		return
	}

	ctx := c.Request.Context()
	app, err := h.Repository.UpdateApplicationStatus(ctx, appID, claims.UserID, status)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			response.NotFound(c, msgAppNotFound)
			return
		}
		h.Logger.Error("update status: update", zap.String("application_id", appID.String()), zap.Error(err))
		response.InternalError(c, "")
		return
	}

	h.publish(ctx, cache.ChannelApplicationStatus, app)
	response.OK(c, "Status updated successfully.", gin.H{"application": app})
}

// publish is best effort; a lost event never fails the request.
func (h *Handler) publish(ctx context.Context, channel string, app *model.Application) {
	if h.Events == nil {
		return
	}
	if err := h.Events.Publish(ctx, channel, app.Event()); err != nil {
		h.Logger.Warn("publish application event",
			zap.String("channel", channel), zap.String("application_id", app.ApplicationID.String()), zap.Error(err))
	}
}
