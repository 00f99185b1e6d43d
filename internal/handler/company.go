package handler

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/siddharth180703/NextHire/internal/repository"
	"github.com/siddharth180703/NextHire/pkg/model"
	"github.com/siddharth180703/NextHire/pkg/response"
	"go.uber.org/zap"
)

func (h *Handler) RegisterCompany(c *gin.Context) {
	claims := h.GetClaimsFromContext(c)
	if claims == nil {
		response.Unauthorized(c, "")
		return
	}

	var req model.RegisterCompanyReq
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.CompanyName) == "" {
		response.BadRequest(c, "Company name is required.")
		return
	}

	company := &model.Company{Name: strings.TrimSpace(req.CompanyName), UserID: claims.UserID}
	if err := h.Repository.CreateCompany(c.Request.Context(), company); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			response.BadRequest(c, "You can't register same company.")
			return
		}
		h.Logger.Error("register company: create", zap.String("name", company.Name), zap.Error(err))
		response.InternalError(c, "")
		return
	}

	response.Created(c, "Company registered successfully.", gin.H{"company": company})
}

// GetCompanies lists the companies the caller registered.
func (h *Handler) GetCompanies(c *gin.Context) {
	claims := h.GetClaimsFromContext(c)
	if claims == nil {
		response.Unauthorized(c, "")
		return
	}

	companies, err := h.Repository.ListCompaniesByUser(c.Request.Context(), claims.UserID)
	if err != nil {
		h.Logger.Error("get companies: list", zap.Error(err))
		response.InternalError(c, "")
		return
	}

	response.OK(c, "", gin.H{"companies": companies})
}

func (h *Handler) GetCompanyByID(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid company id.")
		return
	}

	company, err := h.Repository.GetCompanyByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			response.NotFound(c, "Company not found.")
			return
		}
		h.Logger.Error("get company: fetch", zap.String("company_id", id.String()), zap.Error(err))
		response.InternalError(c, "")
		return
	}

	response.OK(c, "", gin.H{"company": company})
}

// UpdateCompany edits a company owned by the caller. Companies owned by
// someone else are reported as missing.
func (h *Handler) UpdateCompany(c *gin.Context) {
	claims := h.GetClaimsFromContext(c)
	if claims == nil {
		response.Unauthorized(c, "")
		return
	}

	id, ok := parseID(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid company id.")
		return
	}

	var req model.UpdateCompanyReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid company data.")
		return
	}

	ctx := c.Request.Context()
	company, err := h.Repository.GetCompanyByID(ctx, id)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		h.Logger.Error("update company: fetch", zap.String("company_id", id.String()), zap.Error(err))
		response.InternalError(c, "")
		return
	}
	if err != nil || company.UserID != claims.UserID {
		response.NotFound(c, "Company not found.")
		return
	}

	if req.Name != nil && strings.TrimSpace(*req.Name) != "" {
		company.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		company.Description = strings.TrimSpace(*req.Description)
	}
	if req.Website != nil {
		company.Website = strings.TrimSpace(*req.Website)
	}
	if req.Location != nil {
		company.Location = strings.TrimSpace(*req.Location)
	}

	if err := h.Repository.UpdateCompany(ctx, company); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			response.BadRequest(c, "You can't register same company.")
			return
		}
		h.Logger.Error("update company: update", zap.String("company_id", id.String()), zap.Error(err))
		response.InternalError(c, "")
		return
	}

	response.OK(c, "Company information updated.", gin.H{"company": company})
}
