package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"vaccination-schedule-api/internal/auth"
	"vaccination-schedule-api/internal/middleware"
	"vaccination-schedule-api/internal/model"
	"vaccination-schedule-api/internal/store"
)

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// Register creates a credential row and hands back the opaque uid plus a
// token pair. The schedule profile is created separately through /users.
func (h *Handler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid json")
		return
	}
	if req.Email == "" || req.Password == "" {
		badRequest(c, "email and password required")
		return
	}
	if len(req.Password) < 8 {
		badRequest(c, "password too short")
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		h.log.Errorf("hash password: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	a := &model.Account{
		ID:           uuid.New().String(),
		Email:        req.Email,
		PasswordHash: hash,
	}
	if err := h.store.CreateAccount(c.Request.Context(), a); err != nil {
		// dup email, but don't reveal that
		if errors.Is(err, store.ErrDuplicate) {
			c.JSON(http.StatusConflict, gin.H{"error": "registration failed"})
			return
		}
		h.storeError(c, err)
		return
	}

	h.issueTokens(c, a.ID, http.StatusCreated)
}

func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid json")
		return
	}
	if req.Email == "" || req.Password == "" {
		badRequest(c, "email and password required")
		return
	}

	a, err := h.store.AccountByEmail(c.Request.Context(), req.Email)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}
	if !auth.CheckPassword(a.PasswordHash, req.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}

	h.issueTokens(c, a.ID, http.StatusOK)
}

// Refresh rotates a live refresh token for a fresh pair.
func (h *Handler) Refresh(c *gin.Context) {
	var req refreshRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.RefreshToken == "" {
		badRequest(c, "refresh_token required")
		return
	}

	ctx := c.Request.Context()
	rt, err := h.store.GetRefreshTokenByHash(ctx, auth.HashRefreshToken(req.RefreshToken))
	if err != nil || rt.Revoked || time.Now().After(rt.ExpiresAt) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid refresh token"})
		return
	}

	raw, hash, err := auth.GenerateRefreshToken()
	if err != nil {
		h.log.Errorf("generate refresh token: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	newID := uuid.New().String()
	if err := h.store.RotateRefreshToken(ctx, rt.ID, newID, rt.UserID, hash, time.Now().Add(auth.RefreshTokenTTL)); err != nil {
		h.storeError(c, err)
		return
	}

	tok, err := auth.MakeToken(rt.UserID, h.secret)
	if err != nil {
		h.log.Errorf("make token: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"user_id":       rt.UserID,
		"token":         tok,
		"refresh_token": raw,
	})
}

// Logout revokes every refresh token the caller holds.
func (h *Handler) Logout(c *gin.Context) {
	uid := middleware.UserID(c)
	if err := h.store.RevokeAllRefreshTokens(c.Request.Context(), uid); err != nil {
		h.storeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) issueTokens(c *gin.Context, uid string, code int) {
	tok, err := auth.MakeToken(uid, h.secret)
	if err != nil {
		h.log.Errorf("make token: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	raw, hash, err := auth.GenerateRefreshToken()
	if err != nil {
		h.log.Errorf("generate refresh token: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	if _, err := h.store.CreateRefreshToken(c.Request.Context(), uid, hash, time.Now().Add(auth.RefreshTokenTTL)); err != nil {
		h.storeError(c, err)
		return
	}
	c.JSON(code, gin.H{
		"user_id":       uid,
		"token":         tok,
		"refresh_token": raw,
	})
}
