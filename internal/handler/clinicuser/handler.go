package clinicuser

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/gb4everrr/fettlemed-backend/internal/handler"
	"github.com/gb4everrr/fettlemed-backend/internal/middleware"
	"github.com/gb4everrr/fettlemed-backend/internal/model"
	"github.com/gb4everrr/fettlemed-backend/internal/rbac"
	"github.com/gb4everrr/fettlemed-backend/internal/service/staff"
)

type Handler struct {
	service *staff.Service
}

func NewHandler(service *staff.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) AddDoctor(c *gin.Context) {
	var req model.AddClinicDoctorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	doctor, err := h.service.AddDoctor(c.Request.Context(), &req)
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, handler.NewSuccessResponse(doctor))
}

func (h *Handler) GetDoctor(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid doctor ID"))
		return
	}
	clinicID, err := uuid.Parse(c.GetString(middleware.ContextClinicID))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid clinic ID"))
		return
	}

	doctor, err := h.service.GetDoctor(c.Request.Context(), id, clinicID)
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(doctor))
}

func (h *Handler) ListDoctors(c *gin.Context) {
	clinicID, err := uuid.Parse(c.Query("clinic_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid clinic ID"))
		return
	}

	doctors, err := h.service.ListDoctors(c.Request.Context(), clinicID)
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(doctors))
}

func (h *Handler) UpdateDoctor(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid doctor ID"))
		return
	}
	var req model.UpdateClinicDoctorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	doctor, err := h.service.UpdateDoctor(c.Request.Context(), id, &req)
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(doctor))
}

func (h *Handler) DeactivateDoctor(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid doctor ID"))
		return
	}
	clinicID, err := uuid.Parse(c.GetString(middleware.ContextClinicID))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid clinic ID"))
		return
	}

	if err := h.service.DeactivateDoctor(c.Request.Context(), id, clinicID); err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(nil))
}

func (h *Handler) ListStaff(c *gin.Context) {
	clinicID, err := uuid.Parse(c.Query("clinic_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid clinic ID"))
		return
	}

	assignments, err := h.service.ListStaff(c.Request.Context(), clinicID)
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(assignments))
}

func (h *Handler) UpdateStaffPermissions(c *gin.Context) {
	var req model.UpdateStaffPermissionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	assignment, err := h.service.UpdatePermissions(c.Request.Context(), &req)
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(assignment))
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup, gate *middleware.RBACMiddleware) {
	group := r.Group("/clinic-user")
	{
		group.POST("/doctor", gate.RequirePermission(rbac.PermManageStaff), h.AddDoctor)
		group.GET("/doctors", gate.RequirePermission(rbac.PermViewClinicDetails), h.ListDoctors)
		group.GET("/doctor/:id", gate.RequirePermission(rbac.PermViewClinicDetails), h.GetDoctor)
		group.PUT("/doctor/:id", gate.RequirePermission(rbac.PermManageStaff), h.UpdateDoctor)
		group.POST("/doctor/:id/deactivate", gate.RequirePermission(rbac.PermManageStaff), h.DeactivateDoctor)
		group.GET("/staff", gate.RequirePermission(rbac.PermManageStaff), h.ListStaff)
		group.PUT("/staff-permissions", gate.RequirePermission(rbac.PermManageRoles), h.UpdateStaffPermissions)
	}
}
