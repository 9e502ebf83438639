package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"vaccination-schedule-api/internal/middleware"
	"vaccination-schedule-api/internal/model"
)

type userRequest struct {
	UserID      string  `json:"user_id"`
	FirstName   *string `json:"first_name"`
	LastName    *string `json:"last_name"`
	DateOfBirth string  `json:"date_of_birth"`
	Sex         *string `json:"sex"`
}

func (r *userRequest) toModel() (*model.User, error) {
	dob, err := parseDate(r.DateOfBirth)
	if err != nil {
		return nil, err
	}
	return &model.User{
		UserID:      r.UserID,
		FirstName:   r.FirstName,
		LastName:    r.LastName,
		DateOfBirth: dob,
		Sex:         r.Sex,
	}, nil
}

func userJSON(u *model.User) gin.H {
	return gin.H{
		"user_id":       u.UserID,
		"first_name":    u.FirstName,
		"last_name":     u.LastName,
		"date_of_birth": fmtDate(u.DateOfBirth),
		"sex":           u.Sex,
	}
}

// CreateUser stores the caller's profile. The row is keyed by the opaque uid
// from the token unless an explicit user_id is supplied.
func (h *Handler) CreateUser(c *gin.Context) {
	var req userRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid json")
		return
	}
	if req.DateOfBirth == "" {
		badRequest(c, "date_of_birth required")
		return
	}
	if req.UserID == "" {
		req.UserID = middleware.UserID(c)
	}

	u, err := req.toModel()
	if err != nil {
		badRequest(c, "date_of_birth must be YYYY-MM-DD")
		return
	}
	if err := u.Validate(); err != nil {
		badRequest(c, err.Error())
		return
	}

	if err := h.store.CreateUser(c.Request.Context(), u); err != nil {
		h.storeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, userJSON(u))
}

func (h *Handler) GetUser(c *gin.Context) {
	u, err := h.store.GetUser(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, userJSON(u))
}

func (h *Handler) ListUsers(c *gin.Context) {
	users, err := h.store.ListUsers(c.Request.Context())
	if err != nil {
		h.storeError(c, err)
		return
	}
	out := make([]gin.H, len(users))
	for i := range users {
		out[i] = userJSON(&users[i])
	}
	c.JSON(http.StatusOK, gin.H{"users": out})
}

// UpdateUser overwrites the whole profile row.
func (h *Handler) UpdateUser(c *gin.Context) {
	var req userRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid json")
		return
	}
	req.UserID = c.Param("id")
	if req.DateOfBirth == "" {
		badRequest(c, "date_of_birth required")
		return
	}

	u, err := req.toModel()
	if err != nil {
		badRequest(c, "date_of_birth must be YYYY-MM-DD")
		return
	}
	if err := u.Validate(); err != nil {
		badRequest(c, err.Error())
		return
	}

	ok, err := h.store.UpdateUser(c.Request.Context(), u.UserID, u)
	if err != nil {
		h.storeError(c, err)
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	c.JSON(http.StatusOK, userJSON(u))
}

func (h *Handler) DeleteUser(c *gin.Context) {
	ok, err := h.store.DeleteUser(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.storeError(c, err)
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	c.Status(http.StatusNoContent)
}
