package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"vaccination-schedule-api/internal/middleware"
	"vaccination-schedule-api/internal/model"
	"vaccination-schedule-api/internal/schedule"
)

type appointmentRequest struct {
	VaccineID     int64  `json:"vaccine_id"`
	DoctorID      *int64 `json:"doctor_id"`
	ScheduledDate string `json:"scheduled_date"`
	ScheduledTime string `json:"scheduled_time"`
	Status        string `json:"status"`
	Dose          int    `json:"dose"`
	IntervalDays  int    `json:"interval_days"`
}

func (r *appointmentRequest) toModel(userID string) (*model.Appointment, error) {
	date, err := parseDate(r.ScheduledDate)
	if err != nil {
		return nil, err
	}
	return &model.Appointment{
		VaccineID:     r.VaccineID,
		UserID:        userID,
		DoctorID:      r.DoctorID,
		ScheduledDate: date,
		ScheduledTime: r.ScheduledTime,
		Status:        r.Status,
		Dose:          r.Dose,
		IntervalDays:  r.IntervalDays,
	}, nil
}

func appointmentJSON(a *model.Appointment) gin.H {
	out := gin.H{
		"id":             a.ID,
		"vaccine_id":     a.VaccineID,
		"user_id":        a.UserID,
		"doctor_id":      a.DoctorID,
		"scheduled_date": fmtDate(a.ScheduledDate),
		"scheduled_time": a.ScheduledTime,
		"status":         a.Status,
		"dose":           a.Dose,
		"interval_days":  a.IntervalDays,
	}
	if next, ok := schedule.NextDoseAfter(a.ScheduledDate, a.IntervalDays); ok {
		out["next_dose_date"] = fmtDate(next)
	}
	return out
}

// CreateAppointment books a schedule entry for the caller. The user id comes
// from the token, never from the body.
func (h *Handler) CreateAppointment(c *gin.Context) {
	var req appointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid json")
		return
	}
	if req.ScheduledDate == "" {
		badRequest(c, "scheduled_date required")
		return
	}

	a, err := req.toModel(middleware.UserID(c))
	if err != nil {
		badRequest(c, "scheduled_date must be YYYY-MM-DD")
		return
	}
	if err := a.Validate(); err != nil {
		badRequest(c, err.Error())
		return
	}

	id, err := h.store.CreateAppointment(c.Request.Context(), a)
	if err != nil {
		h.storeError(c, err)
		return
	}
	a.ID = id
	c.JSON(http.StatusCreated, appointmentJSON(a))
}

func (h *Handler) GetAppointment(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	a, err := h.store.GetAppointment(c.Request.Context(), id)
	if err != nil {
		h.storeError(c, err)
		return
	}
	// someone else's entry reads as missing, not forbidden
	if a.UserID != middleware.UserID(c) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	c.JSON(http.StatusOK, appointmentJSON(a))
}

// ListMyAppointments returns the caller's schedule history.
func (h *Handler) ListMyAppointments(c *gin.Context) {
	appts, err := h.store.ListAppointmentsForUser(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		h.storeError(c, err)
		return
	}
	out := make([]gin.H, len(appts))
	for i := range appts {
		out[i] = appointmentJSON(&appts[i])
	}
	c.JSON(http.StatusOK, gin.H{"schedules": out})
}

// UpdateAppointment replaces every field of an entry the caller owns.
func (h *Handler) UpdateAppointment(c *gin.Context) {
	id, okID := pathID(c)
	if !okID {
		return
	}
	var req appointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid json")
		return
	}
	if req.ScheduledDate == "" {
		badRequest(c, "scheduled_date required")
		return
	}

	uid := middleware.UserID(c)
	existing, err := h.store.GetAppointment(c.Request.Context(), id)
	if err != nil {
		h.storeError(c, err)
		return
	}
	if existing.UserID != uid {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}

	a, err := req.toModel(uid)
	if err != nil {
		badRequest(c, "scheduled_date must be YYYY-MM-DD")
		return
	}
	if err := a.Validate(); err != nil {
		badRequest(c, err.Error())
		return
	}

	ok, err := h.store.UpdateAppointment(c.Request.Context(), id, a)
	if err != nil {
		h.storeError(c, err)
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	a.ID = id
	c.JSON(http.StatusOK, appointmentJSON(a))
}

func (h *Handler) DeleteAppointment(c *gin.Context) {
	id, okID := pathID(c)
	if !okID {
		return
	}

	existing, err := h.store.GetAppointment(c.Request.Context(), id)
	if err != nil {
		h.storeError(c, err)
		return
	}
	if existing.UserID != middleware.UserID(c) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}

	ok, err := h.store.DeleteAppointment(c.Request.Context(), id)
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

// NextDose previews the follow-up date for a base date and interval without
// touching storage. The interval falls back to the 30-day default.
func (h *Handler) NextDose(c *gin.Context) {
	base, err := parseDate(c.Query("date"))
	if err != nil {
		badRequest(c, "date must be YYYY-MM-DD")
		return
	}
	interval := schedule.DefaultIntervalDays
	if raw := c.Query("interval_days"); raw != "" {
		interval, err = strconv.Atoi(raw)
		if err != nil || interval <= 0 {
			badRequest(c, "interval_days must be a positive integer")
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{
		"base_date":      fmtDate(base),
		"interval_days":  interval,
		"next_dose_date": fmtDate(schedule.NextDoseDate(base, interval)),
	})
}
