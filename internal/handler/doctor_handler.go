package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"vaccination-schedule-api/internal/model"
)

type doctorRequest struct {
	Name    string `json:"name"`
	Surname string `json:"surname"`
}

func doctorJSON(d *model.Doctor) gin.H {
	return gin.H{"id": d.ID, "name": d.Name, "surname": d.Surname}
}

func (h *Handler) CreateDoctor(c *gin.Context) {
	var req doctorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid json")
		return
	}
	d := &model.Doctor{Name: req.Name, Surname: req.Surname}
	if err := d.Validate(); err != nil {
		badRequest(c, err.Error())
		return
	}

	id, err := h.store.CreateDoctor(c.Request.Context(), d)
	if err != nil {
		h.storeError(c, err)
		return
	}
	d.ID = id
	c.JSON(http.StatusCreated, doctorJSON(d))
}

func (h *Handler) GetDoctor(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	d, err := h.store.GetDoctor(c.Request.Context(), id)
	if err != nil {
		h.storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, doctorJSON(d))
}

// LookupDoctor resolves a doctor id from name and surname, used by clients
// before writing a schedule entry.
func (h *Handler) LookupDoctor(c *gin.Context) {
	name := c.Query("name")
	surname := c.Query("surname")
	if name == "" || surname == "" {
		badRequest(c, "name and surname required")
		return
	}
	id, err := h.store.FindDoctorID(c.Request.Context(), name, surname)
	if err != nil {
		h.storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id})
}

func (h *Handler) ListDoctors(c *gin.Context) {
	doctors, err := h.store.ListDoctors(c.Request.Context())
	if err != nil {
		h.storeError(c, err)
		return
	}
	out := make([]gin.H, len(doctors))
	for i := range doctors {
		out[i] = doctorJSON(&doctors[i])
	}
	c.JSON(http.StatusOK, gin.H{"doctors": out})
}

func (h *Handler) UpdateDoctor(c *gin.Context) {
	id, okID := pathID(c)
	if !okID {
		return
	}
	var req doctorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid json")
		return
	}
	d := &model.Doctor{ID: id, Name: req.Name, Surname: req.Surname}
	if err := d.Validate(); err != nil {
		badRequest(c, err.Error())
		return
	}

	ok, err := h.store.UpdateDoctor(c.Request.Context(), id, d)
	if err != nil {
		h.storeError(c, err)
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	c.JSON(http.StatusOK, doctorJSON(d))
}

func (h *Handler) DeleteDoctor(c *gin.Context) {
	id, okID := pathID(c)
	if !okID {
		return
	}
	ok, err := h.store.DeleteDoctor(c.Request.Context(), id)
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
