package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"

	"github.com/gb4everrr/fettlemed-backend/internal/handler"
	"github.com/gb4everrr/fettlemed-backend/internal/model"
	"github.com/gb4everrr/fettlemed-backend/internal/rbac"
	"github.com/gb4everrr/fettlemed-backend/internal/repository"
)

const (
	ContextStaffAssignment = "staffAssignment"
	ContextClinicID        = "clinicID"

	assignmentCacheTTL     = 5 * time.Minute
	assignmentCacheCleanup = 10 * time.Minute
)

// RBACMiddleware is the authorization gate: it resolves the target clinic,
// loads the caller's staff assignment there and checks the required
// permission before any handler logic runs.
type RBACMiddleware struct {
	staffRepo repository.StaffAssignmentRepository
	cache     *gocache.Cache
}

func NewRBACMiddleware(staffRepo repository.StaffAssignmentRepository) *RBACMiddleware {
	return &RBACMiddleware{
		staffRepo: staffRepo,
		cache:     gocache.New(assignmentCacheTTL, assignmentCacheCleanup),
	}
}

// Invalidate drops a cached assignment after a permission change so the next
// request sees the update.
func (m *RBACMiddleware) Invalidate(userID, clinicID uuid.UUID) {
	m.cache.Delete(cacheKey(userID, clinicID))
}

func cacheKey(userID, clinicID uuid.UUID) string {
	return userID.String() + ":" + clinicID.String()
}

// RequirePermission authorizes the request against the target clinic.
// Custom per-user grants are consulted before the role graph.
func (m *RBACMiddleware) RequirePermission(permission string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := uuid.Parse(c.GetString(ContextUserID))
		if err != nil {
			c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("invalid user identity"))
			c.Abort()
			return
		}

		clinicID, ok := resolveClinicID(c)
		if !ok {
			c.JSON(http.StatusBadRequest, handler.NewErrorResponse("clinic_id is required"))
			c.Abort()
			return
		}

		assignment, err := m.getAssignment(c, userID, clinicID)
		if err != nil || !assignment.Active {
			c.JSON(http.StatusForbidden, handler.NewErrorResponse("no active role in this clinic"))
			c.Abort()
			return
		}

		if !rbac.HasPermission(assignment.Role, assignment.CustomPermissions, permission) {
			c.JSON(http.StatusForbidden, handler.NewErrorResponse("insufficient permissions"))
			c.Abort()
			return
		}

		c.Set(ContextStaffAssignment, assignment)
		c.Set(ContextClinicID, clinicID.String())
		c.Next()
	}
}

func (m *RBACMiddleware) getAssignment(c *gin.Context, userID, clinicID uuid.UUID) (*model.ClinicStaffAssignment, error) {
	key := cacheKey(userID, clinicID)
	if cached, found := m.cache.Get(key); found {
		return cached.(*model.ClinicStaffAssignment), nil
	}

	assignment, err := m.staffRepo.Get(c.Request.Context(), userID, clinicID)
	if err != nil {
		return nil, err
	}
	m.cache.Set(key, assignment, gocache.DefaultExpiration)
	return assignment, nil
}

// resolveClinicID finds the clinic the request targets. Precedence is body,
// then query string, then path parameter; first present wins. The body is
// restored after peeking so handlers can still bind it.
func resolveClinicID(c *gin.Context) (uuid.UUID, bool) {
	if id, ok := clinicIDFromBody(c); ok {
		return id, true
	}
	if raw := c.Query("clinic_id"); raw != "" {
		if id, err := uuid.Parse(raw); err == nil {
			return id, true
		}
	}
	if raw := c.Param("clinic_id"); raw != "" {
		if id, err := uuid.Parse(raw); err == nil {
			return id, true
		}
	}
	return uuid.Nil, false
}

func clinicIDFromBody(c *gin.Context) (uuid.UUID, bool) {
	if c.Request.Body == nil || c.Request.Method == http.MethodGet {
		return uuid.Nil, false
	}

	raw, err := io.ReadAll(c.Request.Body)
	c.Request.Body = io.NopCloser(bytes.NewBuffer(raw))
	if err != nil || len(raw) == 0 {
		return uuid.Nil, false
	}

	var probe struct {
		ClinicID string `json:"clinic_id"`
	}
	if err := json.Unmarshal(raw, &probe); err != nil || probe.ClinicID == "" {
		return uuid.Nil, false
	}

	id, err := uuid.Parse(probe.ClinicID)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

// AssignmentFromContext retrieves the assignment the gate stored for the
// current request.
func AssignmentFromContext(c *gin.Context) (*model.ClinicStaffAssignment, bool) {
	v, ok := c.Get(ContextStaffAssignment)
	if !ok {
		return nil, false
	}
	assignment, ok := v.(*model.ClinicStaffAssignment)
	return assignment, ok
}
