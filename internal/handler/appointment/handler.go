package appointment

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/gb4everrr/fettlemed-backend/internal/handler"
	"github.com/gb4everrr/fettlemed-backend/internal/middleware"
	"github.com/gb4everrr/fettlemed-backend/internal/model"
	"github.com/gb4everrr/fettlemed-backend/internal/rbac"
	"github.com/gb4everrr/fettlemed-backend/internal/service/scheduling"
)

type Handler struct {
	bookings *scheduling.BookingService
	engine   *scheduling.Engine
}

func NewHandler(bookings *scheduling.BookingService, engine *scheduling.Engine) *Handler {
	return &Handler{bookings: bookings, engine: engine}
}

func (h *Handler) Create(c *gin.Context) {
	var req model.CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	appt, err := h.bookings.Create(c.Request.Context(), &req)
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, handler.NewSuccessResponse(appt))
}

func (h *Handler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid appointment ID"))
		return
	}
	clinicID, err := uuid.Parse(c.GetString(middleware.ContextClinicID))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid clinic ID"))
		return
	}

	appt, err := h.bookings.Get(c.Request.Context(), id, clinicID)
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(appt))
}

func (h *Handler) List(c *gin.Context) {
	clinicID, err := uuid.Parse(c.Query("clinic_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid clinic ID"))
		return
	}

	filters := &model.AppointmentFilters{ClinicID: clinicID}

	if raw := c.Query("clinic_doctor_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid doctor ID"))
			return
		}
		filters.ClinicDoctorID = &id
	}
	if raw := c.Query("clinic_patient_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid patient ID"))
			return
		}
		filters.ClinicPatientID = &id
	}
	if raw := c.Query("startDate"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid startDate"))
			return
		}
		filters.StartDate = &t
	}
	if raw := c.Query("endDate"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid endDate"))
			return
		}
		filters.EndDate = &t
	}

	appts, err := h.bookings.List(c.Request.Context(), filters)
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(appts))
}

// Slots returns the availability engine's computed bookable windows for one
// doctor on one clinic-local date.
func (h *Handler) Slots(c *gin.Context) {
	clinicID, err := uuid.Parse(c.Query("clinic_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid clinic ID"))
		return
	}
	doctorID, err := uuid.Parse(c.Query("clinic_doctor_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid doctor ID"))
		return
	}
	date := c.Query("date")
	if date == "" {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("date is required"))
		return
	}

	windows, err := h.engine.ComputeAvailableWindows(c.Request.Context(), doctorID, clinicID, date)
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(windows))
}

func (h *Handler) Reschedule(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid appointment ID"))
		return
	}

	var req model.RescheduleAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}
	clinicID, _ := uuid.Parse(req.ClinicID)
	slotID, err := uuid.Parse(req.NewSlotID)
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid slot ID"))
		return
	}

	appt, err := h.bookings.Reschedule(c.Request.Context(), id, clinicID, slotID)
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(appt))
}

func (h *Handler) Cancel(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid appointment ID"))
		return
	}
	clinicID, err := uuid.Parse(c.GetString(middleware.ContextClinicID))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid clinic ID"))
		return
	}

	if err := h.bookings.Cancel(c.Request.Context(), id, clinicID); err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(nil))
}

func (h *Handler) CheckIn(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid appointment ID"))
		return
	}
	clinicID, err := uuid.Parse(c.GetString(middleware.ContextClinicID))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid clinic ID"))
		return
	}

	appt, err := h.bookings.CheckIn(c.Request.Context(), id, clinicID)
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(appt))
}

func (h *Handler) ToggleConfirmation(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid appointment ID"))
		return
	}
	clinicID, err := uuid.Parse(c.GetString(middleware.ContextClinicID))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid clinic ID"))
		return
	}

	appt, err := h.bookings.ToggleConfirmation(c.Request.Context(), id, clinicID)
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(appt))
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup, gate *middleware.RBACMiddleware) {
	appointments := r.Group("/appointments")
	{
		appointments.POST("", gate.RequirePermission(rbac.PermManageAppointments), h.Create)
		appointments.GET("", gate.RequirePermission(rbac.PermViewAllSchedule), h.List)
		appointments.GET("/slots", gate.RequirePermission(rbac.PermManageAppointments), h.Slots)
		appointments.GET("/:id", gate.RequirePermission(rbac.PermViewAllSchedule), h.Get)
		appointments.PUT("/:id/reschedule", gate.RequirePermission(rbac.PermManageAppointments), h.Reschedule)
		appointments.POST("/:id/cancel", gate.RequirePermission(rbac.PermManageAppointments), h.Cancel)
		appointments.POST("/:id/checkin", gate.RequirePermission(rbac.PermManageAppointments), h.CheckIn)
		appointments.POST("/:id/toggle-status", gate.RequirePermission(rbac.PermManageAppointments), h.ToggleConfirmation)
	}
}
