package availability

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/gb4everrr/fettlemed-backend/internal/handler"
	"github.com/gb4everrr/fettlemed-backend/internal/middleware"
	"github.com/gb4everrr/fettlemed-backend/internal/model"
	"github.com/gb4everrr/fettlemed-backend/internal/rbac"
	"github.com/gb4everrr/fettlemed-backend/internal/service/availability"
)

type Handler struct {
	service *availability.Service
}

func NewHandler(service *availability.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) AddShift(c *gin.Context) {
	var req model.AddAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	shift, err := h.service.AddShift(c.Request.Context(), &req)
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, handler.NewSuccessResponse(shift))
}

func (h *Handler) UpdateShift(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid availability ID"))
		return
	}
	var req model.UpdateAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	shift, err := h.service.UpdateShift(c.Request.Context(), id, &req)
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(shift))
}

func (h *Handler) DeleteShift(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid availability ID"))
		return
	}
	clinicID, err := uuid.Parse(c.GetString(middleware.ContextClinicID))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid clinic ID"))
		return
	}

	if err := h.service.DeleteShift(c.Request.Context(), id, clinicID); err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(nil))
}

func (h *Handler) ListShifts(c *gin.Context) {
	clinicID, err := uuid.Parse(c.Query("clinic_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid clinic ID"))
		return
	}

	shifts, err := h.service.ListForClinic(c.Request.Context(), clinicID)
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(shifts))
}

func (h *Handler) UpsertException(c *gin.Context) {
	var req model.AddExceptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	exc, err := h.service.UpsertException(c.Request.Context(), &req)
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, handler.NewSuccessResponse(exc))
}

func (h *Handler) DeleteException(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid exception ID"))
		return
	}
	clinicID, err := uuid.Parse(c.GetString(middleware.ContextClinicID))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid clinic ID"))
		return
	}

	if err := h.service.DeleteException(c.Request.Context(), id, clinicID); err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(nil))
}

func (h *Handler) ListExceptions(c *gin.Context) {
	clinicID, err := uuid.Parse(c.Query("clinic_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid clinic ID"))
		return
	}

	exceptions, err := h.service.ListExceptions(c.Request.Context(), clinicID)
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(exceptions))
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup, gate *middleware.RBACMiddleware) {
	manage := gate.RequirePermission(rbac.PermManageAvailability)

	r.POST("/availability", manage, h.AddShift)
	r.GET("/availability", manage, h.ListShifts)
	r.PUT("/availability/:id", manage, h.UpdateShift)
	r.DELETE("/availability/:id", manage, h.DeleteShift)
	r.POST("/exception", manage, h.UpsertException)
	r.GET("/exceptions", manage, h.ListExceptions)
	r.DELETE("/exception/:id", manage, h.DeleteException)
}
