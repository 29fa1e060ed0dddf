package medical

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/gb4everrr/fettlemed-backend/internal/handler"
	"github.com/gb4everrr/fettlemed-backend/internal/middleware"
	"github.com/gb4everrr/fettlemed-backend/internal/model"
	"github.com/gb4everrr/fettlemed-backend/internal/rbac"
	"github.com/gb4everrr/fettlemed-backend/internal/service/medical"
)

type Handler struct {
	service *medical.Service
}

func NewHandler(service *medical.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) SavePrescription(c *gin.Context) {
	var req model.SavePrescriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	p, err := h.service.SavePrescription(c.Request.Context(), &req)
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(p))
}

func (h *Handler) GetPrescription(c *gin.Context) {
	apptID, err := uuid.Parse(c.Param("appointment_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid appointment ID"))
		return
	}
	clinicID, err := uuid.Parse(c.GetString(middleware.ContextClinicID))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid clinic ID"))
		return
	}

	p, err := h.service.GetPrescription(c.Request.Context(), apptID, clinicID)
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(p))
}

func (h *Handler) SaveNote(c *gin.Context) {
	var req model.SaveConsultationNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	n, err := h.service.SaveConsultationNote(c.Request.Context(), &req)
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(n))
}

func (h *Handler) Encounter(c *gin.Context) {
	apptID, err := uuid.Parse(c.Param("appointment_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid appointment ID"))
		return
	}
	clinicID, err := uuid.Parse(c.GetString(middleware.ContextClinicID))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid clinic ID"))
		return
	}

	details, err := h.service.Encounter(c.Request.Context(), apptID, clinicID)
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(details))
}

func (h *Handler) AddDiagnosis(c *gin.Context) {
	var req struct {
		ClinicID      string `json:"clinic_id" binding:"required,uuid"`
		AppointmentID string `json:"appointment_id" binding:"required,uuid"`
		CatalogID     string `json:"catalog_id" binding:"required,uuid"`
		Notes         string `json:"notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	d := &model.AppointmentDiagnosis{
		ClinicID:      uuid.MustParse(req.ClinicID),
		AppointmentID: uuid.MustParse(req.AppointmentID),
		CatalogID:     uuid.MustParse(req.CatalogID),
		Notes:         req.Notes,
	}
	if err := h.service.AddDiagnosis(c.Request.Context(), d); err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, handler.NewSuccessResponse(d))
}

func (h *Handler) RemoveDiagnosis(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid diagnosis ID"))
		return
	}
	if err := h.service.RemoveDiagnosis(c.Request.Context(), id); err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(nil))
}

func (h *Handler) AddLabOrder(c *gin.Context) {
	var req struct {
		ClinicID      string `json:"clinic_id" binding:"required,uuid"`
		AppointmentID string `json:"appointment_id" binding:"required,uuid"`
		CatalogID     string `json:"catalog_id" binding:"required,uuid"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	o := &model.LabOrder{
		ClinicID:      uuid.MustParse(req.ClinicID),
		AppointmentID: uuid.MustParse(req.AppointmentID),
		CatalogID:     uuid.MustParse(req.CatalogID),
		Status:        "ORDERED",
	}
	if err := h.service.AddLabOrder(c.Request.Context(), o); err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, handler.NewSuccessResponse(o))
}

func (h *Handler) RemoveLabOrder(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid lab order ID"))
		return
	}
	if err := h.service.RemoveLabOrder(c.Request.Context(), id); err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(nil))
}

func (h *Handler) SearchDrugs(c *gin.Context) {
	entries, err := h.service.SearchDrugs(c.Request.Context(), c.Query("q"))
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(entries))
}

func (h *Handler) SearchDiagnoses(c *gin.Context) {
	entries, err := h.service.SearchDiagnoses(c.Request.Context(), c.Query("q"))
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(entries))
}

func (h *Handler) SearchLabs(c *gin.Context) {
	entries, err := h.service.SearchLabs(c.Request.Context(), c.Query("q"))
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(entries))
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup, gate *middleware.RBACMiddleware) {
	r.POST("/prescriptions", gate.RequirePermission(rbac.PermCreatePrescription), h.SavePrescription)
	r.GET("/prescriptions/:appointment_id", gate.RequirePermission(rbac.PermViewPrescription), h.GetPrescription)
	r.POST("/consultation-notes", gate.RequirePermission(rbac.PermManageMedicalRecords), h.SaveNote)
	r.GET("/encounters/:appointment_id", gate.RequirePermission(rbac.PermViewPatientHistory), h.Encounter)

	r.POST("/diagnoses", gate.RequirePermission(rbac.PermManageMedicalRecords), h.AddDiagnosis)
	r.DELETE("/diagnoses/:id", gate.RequirePermission(rbac.PermManageMedicalRecords), h.RemoveDiagnosis)
	r.POST("/lab-orders", gate.RequirePermission(rbac.PermManageMedicalRecords), h.AddLabOrder)
	r.DELETE("/lab-orders/:id", gate.RequirePermission(rbac.PermManageMedicalRecords), h.RemoveLabOrder)

	catalog := r.Group("/catalog")
	{
		catalog.GET("/drugs", gate.RequirePermission(rbac.PermCreatePrescription), h.SearchDrugs)
		catalog.GET("/diagnoses", gate.RequirePermission(rbac.PermManageMedicalRecords), h.SearchDiagnoses)
		catalog.GET("/labs", gate.RequirePermission(rbac.PermManageMedicalRecords), h.SearchLabs)
	}
}
