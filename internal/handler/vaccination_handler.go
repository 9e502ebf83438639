package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"vaccination-schedule-api/internal/model"
)

type vaccinationRequest struct {
	VaccineName      string  `json:"vaccine_name"`
	DateAdministered string  `json:"date_administered"`
	DueDate          string  `json:"due_date"`
	NextDoseDate     *string `json:"next_dose_date"`
}

func (r *vaccinationRequest) toModel() (*model.Vaccination, error) {
	administered, err := parseDate(r.DateAdministered)
	if err != nil {
		return nil, err
	}
	due, err := parseDate(r.DueDate)
	if err != nil {
		return nil, err
	}
	var next *time.Time
	if r.NextDoseDate != nil {
		d, err := parseDate(*r.NextDoseDate)
		if err != nil {
			return nil, err
		}
		next = &d
	}
	return &model.Vaccination{
		VaccineName:      r.VaccineName,
		DateAdministered: administered,
		DueDate:          due,
		NextDoseDate:     next,
	}, nil
}

func vaccinationJSON(v *model.Vaccination) gin.H {
	return gin.H{
		"id":                v.ID,
		"vaccine_name":      v.VaccineName,
		"date_administered": fmtDate(v.DateAdministered),
		"due_date":          fmtDate(v.DueDate),
		"next_dose_date":    fmtDatePtr(v.NextDoseDate),
	}
}

func (h *Handler) CreateVaccination(c *gin.Context) {
	var req vaccinationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid json")
		return
	}
	if req.DateAdministered == "" || req.DueDate == "" {
		badRequest(c, "date_administered and due_date required")
		return
	}
	v, err := req.toModel()
	if err != nil {
		badRequest(c, "dates must be YYYY-MM-DD")
		return
	}
	if err := v.Validate(); err != nil {
		badRequest(c, err.Error())
		return
	}

	id, err := h.store.CreateVaccination(c.Request.Context(), v)
	if err != nil {
		h.storeError(c, err)
		return
	}
	v.ID = id
	c.JSON(http.StatusCreated, vaccinationJSON(v))
}

func (h *Handler) GetVaccination(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	v, err := h.store.GetVaccination(c.Request.Context(), id)
	if err != nil {
		h.storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, vaccinationJSON(v))
}

// LookupVaccination resolves either the full record or just the id for a
// vaccine name. An unknown name is a plain 404, never a zero id.
func (h *Handler) LookupVaccination(c *gin.Context) {
	name := c.Query("name")
	if name == "" {
		badRequest(c, "name required")
		return
	}
	if c.Query("id_only") == "true" {
		id, err := h.store.FindVaccinationID(c.Request.Context(), name)
		if err != nil {
			h.storeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"id": id})
		return
	}
	v, err := h.store.GetVaccinationByName(c.Request.Context(), name)
	if err != nil {
		h.storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, vaccinationJSON(v))
}

// VaccinationStats reports the server-side aggregates for one vaccine:
// administered doses and total scheduled appointments.
func (h *Handler) VaccinationStats(c *gin.Context) {
	name := c.Query("name")
	if name == "" {
		badRequest(c, "name required")
		return
	}
	ctx := c.Request.Context()
	doses, err := h.store.CountDoses(ctx, name)
	if err != nil {
		h.storeError(c, err)
		return
	}
	appointments, err := h.store.CountAppointments(ctx, name)
	if err != nil {
		h.storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"vaccine_name": name,
		"doses":        doses,
		"appointments": appointments,
	})
}

func (h *Handler) ListVaccinations(c *gin.Context) {
	vaccinations, err := h.store.ListVaccinations(c.Request.Context())
	if err != nil {
		h.storeError(c, err)
		return
	}
	out := make([]gin.H, len(vaccinations))
	for i := range vaccinations {
		out[i] = vaccinationJSON(&vaccinations[i])
	}
	c.JSON(http.StatusOK, gin.H{"vaccinations": out})
}

func (h *Handler) UpdateVaccination(c *gin.Context) {
	id, okID := pathID(c)
	if !okID {
		return
	}
	var req vaccinationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid json")
		return
	}
	if req.DateAdministered == "" || req.DueDate == "" {
		badRequest(c, "date_administered and due_date required")
		return
	}
	v, err := req.toModel()
	if err != nil {
		badRequest(c, "dates must be YYYY-MM-DD")
		return
	}
	if err := v.Validate(); err != nil {
		badRequest(c, err.Error())
		return
	}

	ok, err := h.store.UpdateVaccination(c.Request.Context(), id, v)
	if err != nil {
		h.storeError(c, err)
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	v.ID = id
	c.JSON(http.StatusOK, vaccinationJSON(v))
}

func (h *Handler) DeleteVaccination(c *gin.Context) {
	id, okID := pathID(c)
	if !okID {
		return
	}
	ok, err := h.store.DeleteVaccination(c.Request.Context(), id)
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
