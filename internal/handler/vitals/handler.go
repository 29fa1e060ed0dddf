package vitals

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/gb4everrr/fettlemed-backend/internal/handler"
	"github.com/gb4everrr/fettlemed-backend/internal/middleware"
	"github.com/gb4everrr/fettlemed-backend/internal/model"
	"github.com/gb4everrr/fettlemed-backend/internal/rbac"
	"github.com/gb4everrr/fettlemed-backend/internal/service/vitals"
)

type Handler struct {
	service *vitals.Service
}

func NewHandler(service *vitals.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) CreateConfig(c *gin.Context) {
	var req model.CreateVitalConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	cfg, err := h.service.CreateConfig(c.Request.Context(), &req)
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, handler.NewSuccessResponse(cfg))
}

func (h *Handler) ListConfigs(c *gin.Context) {
	clinicID, err := uuid.Parse(c.Query("clinic_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid clinic ID"))
		return
	}

	configs, err := h.service.ListConfigs(c.Request.Context(), clinicID)
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(configs))
}

func (h *Handler) UpdateConfig(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid config ID"))
		return
	}
	var req model.UpdateVitalConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	cfg, err := h.service.UpdateConfig(c.Request.Context(), id, &req)
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(cfg))
}

func (h *Handler) Submit(c *gin.Context) {
	recordedBy, err := uuid.Parse(c.GetString(middleware.ContextUserID))
	if err != nil {
		c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("invalid user identity"))
		return
	}

	var req model.SubmitVitalsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	entry, err := h.service.Submit(c.Request.Context(), recordedBy, &req)
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, handler.NewSuccessResponse(entry))
}

func (h *Handler) PatientHistory(c *gin.Context) {
	patientID, err := uuid.Parse(c.Param("patient_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid patient ID"))
		return
	}
	clinicID, err := uuid.Parse(c.GetString(middleware.ContextClinicID))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid clinic ID"))
		return
	}

	entries, err := h.service.HistoryForPatient(c.Request.Context(), patientID, clinicID)
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(entries))
}

func (h *Handler) EntryValues(c *gin.Context) {
	entryID, err := uuid.Parse(c.Param("entry_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid entry ID"))
		return
	}

	values, err := h.service.ValuesForEntry(c.Request.Context(), entryID)
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(values))
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup, gate *middleware.RBACMiddleware) {
	group := r.Group("/vitals")
	{
		group.POST("/configs", gate.RequirePermission(rbac.PermManageVitalsLibrary), h.CreateConfig)
		group.GET("/configs", gate.RequirePermission(rbac.PermManageVitalsEntry), h.ListConfigs)
		group.PUT("/configs/:id", gate.RequirePermission(rbac.PermManageVitalsLibrary), h.UpdateConfig)
		group.POST("/entries", gate.RequirePermission(rbac.PermManageVitalsEntry), h.Submit)
		group.GET("/patients/:patient_id", gate.RequirePermission(rbac.PermViewPatientHistory), h.PatientHistory)
		group.GET("/entries/:entry_id/values", gate.RequirePermission(rbac.PermViewPatientHistory), h.EntryValues)
	}
}
