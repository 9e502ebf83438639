package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"vaccination-schedule-api/internal/logger"
	"vaccination-schedule-api/internal/middleware"
	"vaccination-schedule-api/internal/model"
	"vaccination-schedule-api/internal/store"
)

// Store is everything the handlers need from persistence. *store.Store
// satisfies it; tests plug in a fake.
type Store interface {
	CreateAccount(ctx context.Context, a *model.Account) error
	AccountByEmail(ctx context.Context, email string) (*model.Account, error)
	CreateRefreshToken(ctx context.Context, userID, tokenHash string, expiresAt time.Time) (string, error)
	GetRefreshTokenByHash(ctx context.Context, tokenHash string) (*store.RefreshToken, error)
	RotateRefreshToken(ctx context.Context, oldID, newID, userID, newHash string, newExpiry time.Time) error
	RevokeAllRefreshTokens(ctx context.Context, userID string) error

	CreateUser(ctx context.Context, u *model.User) error
	GetUser(ctx context.Context, userID string) (*model.User, error)
	ListUsers(ctx context.Context) ([]model.User, error)
	UpdateUser(ctx context.Context, userID string, u *model.User) (bool, error)
	DeleteUser(ctx context.Context, userID string) (bool, error)

	CreateDoctor(ctx context.Context, d *model.Doctor) (int64, error)
	GetDoctor(ctx context.Context, id int64) (*model.Doctor, error)
	FindDoctorID(ctx context.Context, name, surname string) (int64, error)
	ListDoctors(ctx context.Context) ([]model.Doctor, error)
	UpdateDoctor(ctx context.Context, id int64, d *model.Doctor) (bool, error)
	DeleteDoctor(ctx context.Context, id int64) (bool, error)

	CreateVaccination(ctx context.Context, v *model.Vaccination) (int64, error)
	GetVaccination(ctx context.Context, id int64) (*model.Vaccination, error)
	GetVaccinationByName(ctx context.Context, name string) (*model.Vaccination, error)
	FindVaccinationID(ctx context.Context, name string) (int64, error)
	ListVaccinations(ctx context.Context) ([]model.Vaccination, error)
	UpdateVaccination(ctx context.Context, id int64, v *model.Vaccination) (bool, error)
	DeleteVaccination(ctx context.Context, id int64) (bool, error)
	CountDoses(ctx context.Context, vaccineName string) (int, error)
	CountAppointments(ctx context.Context, vaccineName string) (int, error)

	CreateAppointment(ctx context.Context, a *model.Appointment) (int64, error)
	GetAppointment(ctx context.Context, id int64) (*model.Appointment, error)
	ListAppointmentsForUser(ctx context.Context, userID string) ([]model.Appointment, error)
	UpdateAppointment(ctx context.Context, id int64, a *model.Appointment) (bool, error)
	DeleteAppointment(ctx context.Context, id int64) (bool, error)
}

type Handler struct {
	store  Store
	log    logger.Logger
	secret string
}

func New(st Store, log logger.Logger, secret string) *Handler {
	return &Handler{store: st, log: log, secret: secret}
}

// Router wires every route. Auth endpoints sit behind the rate limiter;
// everything else requires a Bearer token.
func (h *Handler) Router(rl *middleware.RateLimiter) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	pub := r.Group("/api/auth", middleware.RateLimit(rl))
	pub.POST("/register", h.Register)
	pub.POST("/login", h.Login)
	pub.POST("/refresh", h.Refresh)

	api := r.Group("/api", middleware.Auth(h.secret))
	api.POST("/auth/logout", h.Logout)

	api.POST("/users", h.CreateUser)
	api.GET("/users", h.ListUsers)
	api.GET("/users/:id", h.GetUser)
	api.PUT("/users/:id", h.UpdateUser)
	api.DELETE("/users/:id", h.DeleteUser)

	api.POST("/doctors", h.CreateDoctor)
	api.GET("/doctors", h.ListDoctors)
	api.GET("/doctors/:id", h.GetDoctor)
	api.PUT("/doctors/:id", h.UpdateDoctor)
	api.DELETE("/doctors/:id", h.DeleteDoctor)

	api.POST("/vaccinations", h.CreateVaccination)
	api.GET("/vaccinations", h.ListVaccinations)
	api.GET("/vaccinations/:id", h.GetVaccination)
	api.PUT("/vaccinations/:id", h.UpdateVaccination)
	api.DELETE("/vaccinations/:id", h.DeleteVaccination)

	api.POST("/schedules", h.CreateAppointment)
	api.GET("/schedules", h.ListMyAppointments)
	api.GET("/schedules/:id", h.GetAppointment)
	api.PUT("/schedules/:id", h.UpdateAppointment)
	api.DELETE("/schedules/:id", h.DeleteAppointment)

	// lookups and aggregates live outside the entity collections so the
	// id params above stay unambiguous
	api.GET("/lookup/doctor", h.LookupDoctor)
	api.GET("/lookup/vaccination", h.LookupVaccination)
	api.GET("/stats/vaccination", h.VaccinationStats)
	api.GET("/next-dose", h.NextDose)

	return r
}

// storeError translates repository failures into responses. Unexpected
// causes are logged and hidden behind a generic body.
func (h *Handler) storeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, store.ErrDuplicate):
		c.JSON(http.StatusConflict, gin.H{"error": "already exists"})
	case errors.Is(err, store.ErrForeignKey):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "referenced record does not exist"})
	case errors.Is(err, store.ErrConnection):
		h.log.Errorf("store: %v", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "storage unavailable"})
	default:
		h.log.Errorf("store: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": msg})
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		badRequest(c, "invalid id")
		return 0, false
	}
	return id, true
}

func parseDate(s string) (time.Time, error) {
	return time.Parse(model.DateLayout, s)
}

func fmtDate(t time.Time) string {
	return t.Format(model.DateLayout)
}

func fmtDatePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := fmtDate(*t)
	return &s
}
