package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/siddharth180703/NextHire/internal/repository"
	"github.com/siddharth180703/NextHire/pkg"
	"github.com/siddharth180703/NextHire/pkg/model"
	"github.com/siddharth180703/NextHire/pkg/response"
	"go.uber.org/zap"
)

const TokenCookie = "token"

// Register creates a student or recruiter account.
func (h *Handler) Register(c *gin.Context) {
	var req model.RegisterReq
	if err := c.ShouldBind(&req); err != nil {
		h.Logger.Warn("register: bad request", zap.Error(err))
		response.BadRequest(c, "Something is missing")
		return
	}

	pwHash, err := pkg.HashPassword(req.Password)
	if errors.Is(err, pkg.ErrPasswordTooLong) {
		response.BadRequest(c, "Password must be at most 72 bytes.")
		return
	}
	if err != nil {
		h.Logger.Error("register: hash password", zap.Error(err))
		response.InternalError(c, "")
		return
	}

	user := &model.User{
		Fullname:     strings.TrimSpace(req.Fullname),
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		PhoneNumber:  strings.TrimSpace(req.PhoneNumber),
		PasswordHash: pwHash,
		Role:         req.Role,
		Profile:      model.Profile{Skills: []string{}},
	}
	if err := h.Repository.CreateUser(c.Request.Context(), user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			response.BadRequest(c, "User already exist with this email.")
			return
		}
		h.Logger.Error("register: create user", zap.String("email", user.Email), zap.Error(err))
		response.InternalError(c, "")
		return
	}

	response.Created(c, "Account created successfully.", nil)
}

// Login checks credentials and role, then issues a token in both the body
// and an HttpOnly cookie.
func (h *Handler) Login(c *gin.Context) {
	var req model.LoginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Logger.Warn("login: bad request", zap.Error(err))
		response.BadRequest(c, "Something is missing")
		return
	}

	ctx := c.Request.Context()
	user, err := h.Repository.GetUserByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			h.Logger.Error("login: get user", zap.Error(err))
			response.InternalError(c, "")
			return
		}
		response.BadRequest(c, "Incorrect email or password.")
		return
	}
	if err := pkg.ComparePassword(user.PasswordHash, req.Password); err != nil {
		response.BadRequest(c, "Incorrect email or password.")
		return
	}
	if user.Role != req.Role {
		response.BadRequest(c, "Account doesn't exist with current role.")
		return
	}

	token, claims, err := h.TokenMaker.GenerateToken(user.UserID, user.Email, user.Role, h.TokenTTL)
	if err != nil {
		h.Logger.Error("login: generate token", zap.Error(err))
		response.InternalError(c, "")
		return
	}

	h.setTokenCookie(c, token, int(h.TokenTTL/time.Second))
	response.OK(c, "Welcome back "+user.Fullname, gin.H{
		"user":      user.Response(),
		"token":     token,
		"expiresAt": claims.ExpiresAt.Time,
	})
}

// Logout denylists the caller's token for the rest of its lifetime.
func (h *Handler) Logout(c *gin.Context) {
	claims := h.GetClaimsFromContext(c)
	if claims == nil {
		response.Unauthorized(c, "")
		return
	}

	ttl := time.Until(claims.ExpiresAt.Time)
	if err := h.Revoker.Revoke(c.Request.Context(), claims.ID, ttl); err != nil {
		h.Logger.Error("logout: revoke token", zap.String("jti", claims.ID), zap.Error(err))
		response.InternalError(c, "")
		return
	}

	h.setTokenCookie(c, "", -1)
	response.Message(c, "Logged out successfully.")
}

func (h *Handler) Me(c *gin.Context) {
	claims := h.GetClaimsFromContext(c)
	if claims == nil {
		response.Unauthorized(c, "")
		return
	}

	user, err := h.Repository.GetUserByID(c.Request.Context(), claims.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			response.NotFound(c, "User not found.")
			return
		}
		h.Logger.Error("me: get user", zap.Error(err))
		response.InternalError(c, "")
		return
	}

	response.OK(c, "", gin.H{"user": user.Response()})
}

func (h *Handler) UpdateProfile(c *gin.Context) {
	claims := h.GetClaimsFromContext(c)
	if claims == nil {
		response.Unauthorized(c, "")
		return
	}

	var req model.UpdateProfileReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid profile data.")
		return
	}

	ctx := c.Request.Context()
	user, err := h.Repository.GetUserByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			response.NotFound(c, "User not found.")
			return
		}
		h.Logger.Error("update profile: get user", zap.Error(err))
		response.InternalError(c, "")
		return
	}

	if req.Fullname != nil {
		user.Fullname = strings.TrimSpace(*req.Fullname)
	}
	if req.Email != nil {
		user.Email = strings.ToLower(strings.TrimSpace(*req.Email))
	}
	if req.PhoneNumber != nil {
		user.PhoneNumber = strings.TrimSpace(*req.PhoneNumber)
	}
	if req.Bio != nil {
		user.Profile.Bio = strings.TrimSpace(*req.Bio)
	}
	if req.Skills != nil {
		user.Profile.Skills = []string(*req.Skills)
	}

	if err := h.Repository.UpdateUser(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			response.BadRequest(c, "User already exist with this email.")
			return
		}
		h.Logger.Error("update profile: update user", zap.String("user_id", user.UserID.String()), zap.Error(err))
		response.InternalError(c, "")
		return
	}

	response.OK(c, "Profile updated successfully.", gin.H{"user": user.Response()})
}

func (h *Handler) setTokenCookie(c *gin.Context, value string, maxAge int) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(TokenCookie, value, maxAge, "/", "", h.SecureCookie, true)
}
