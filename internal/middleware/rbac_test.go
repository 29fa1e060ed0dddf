package middleware

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/gb4everrr/fettlemed-backend/internal/model"
	"github.com/gb4everrr/fettlemed-backend/internal/rbac"
	apperrors "github.com/gb4everrr/fettlemed-backend/pkg/errors"
)

type mockStaffRepo struct {
	mock.Mock
}

func (m *mockStaffRepo) Get(ctx context.Context, userID, clinicID uuid.UUID) (*model.ClinicStaffAssignment, error) {
	args := m.Called(ctx, userID, clinicID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ClinicStaffAssignment), args.Error(1)
}

func (m *mockStaffRepo) Create(ctx context.Context, sa *model.ClinicStaffAssignment) error {
	args := m.Called(ctx, sa)
	return args.Error(0)
}

func (m *mockStaffRepo) Update(ctx context.Context, sa *model.ClinicStaffAssignment) error {
	args := m.Called(ctx, sa)
	return args.Error(0)
}

func (m *mockStaffRepo) ListForClinic(ctx context.Context, clinicID uuid.UUID) ([]*model.ClinicStaffAssignment, error) {
	args := m.Called(ctx, clinicID)
	return args.Get(0).([]*model.ClinicStaffAssignment), args.Error(1)
}

func gateRouter(repo *mockStaffRepo, userID uuid.UUID, permission string) (*gin.Engine, *RBACMiddleware) {
	gin.SetMode(gin.TestMode)
	m := NewRBACMiddleware(repo)

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(ContextUserID, userID.String())
	})
	handlerFn := func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"clinic_id": c.GetString(ContextClinicID)})
	}
	r.POST("/guarded", m.RequirePermission(permission), handlerFn)
	r.GET("/guarded", m.RequirePermission(permission), handlerFn)
	r.GET("/clinics/:clinic_id/guarded", m.RequirePermission(permission), handlerFn)
	return r, m
}

func assignment(userID, clinicID uuid.UUID, role string, custom []string, active bool) *model.ClinicStaffAssignment {
	return &model.ClinicStaffAssignment{
		UserID:            userID,
		ClinicID:          clinicID,
		Role:              role,
		CustomPermissions: custom,
		Active:            active,
	}
}

func TestRequirePermission_BodyClinicIDWins(t *testing.T) {
	userID := uuid.New()
	bodyClinic := uuid.New()
	queryClinic := uuid.New()

	repo := new(mockStaffRepo)
	repo.On("Get", mock.Anything, userID, bodyClinic).
		Return(assignment(userID, bodyClinic, rbac.RoleOwner, nil, true), nil)

	r, _ := gateRouter(repo, userID, rbac.PermManageAppointments)

	body := []byte(`{"clinic_id":"` + bodyClinic.String() + `"}`)
	req := httptest.NewRequest(http.MethodPost, "/guarded?clinic_id="+queryClinic.String(), bytes.NewReader(body))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	repo.AssertCalled(t, "Get", mock.Anything, userID, bodyClinic)
	repo.AssertNotCalled(t, "Get", mock.Anything, userID, queryClinic)
}

func TestRequirePermission_QueryFallback(t *testing.T) {
	userID := uuid.New()
	clinicID := uuid.New()

	repo := new(mockStaffRepo)
	repo.On("Get", mock.Anything, userID, clinicID).
		Return(assignment(userID, clinicID, rbac.RoleClinicAdmin, nil, true), nil)

	r, _ := gateRouter(repo, userID, rbac.PermManageAppointments)

	req := httptest.NewRequest(http.MethodGet, "/guarded?clinic_id="+clinicID.String(), nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequirePermission_PathParamFallback(t *testing.T) {
	userID := uuid.New()
	clinicID := uuid.New()

	repo := new(mockStaffRepo)
	repo.On("Get", mock.Anything, userID, clinicID).
		Return(assignment(userID, clinicID, rbac.RoleClinicAdmin, nil, true), nil)

	r, _ := gateRouter(repo, userID, rbac.PermManageAppointments)

	req := httptest.NewRequest(http.MethodGet, "/clinics/"+clinicID.String()+"/guarded", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequirePermission_MissingClinicID(t *testing.T) {
	userID := uuid.New()
	repo := new(mockStaffRepo)
	r, _ := gateRouter(repo, userID, rbac.PermManageAppointments)

	req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	repo.AssertNotCalled(t, "Get", mock.Anything, mock.Anything, mock.Anything)
}

func TestRequirePermission_NoAssignment(t *testing.T) {
	userID := uuid.New()
	clinicID := uuid.New()

	repo := new(mockStaffRepo)
	repo.On("Get", mock.Anything, userID, clinicID).
		Return(nil, apperrors.NotFound("staff assignment", nil))

	r, _ := gateRouter(repo, userID, rbac.PermManageAppointments)

	req := httptest.NewRequest(http.MethodGet, "/guarded?clinic_id="+clinicID.String(), nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRequirePermission_InactiveAssignment(t *testing.T) {
	userID := uuid.New()
	clinicID := uuid.New()

	repo := new(mockStaffRepo)
	repo.On("Get", mock.Anything, userID, clinicID).
		Return(assignment(userID, clinicID, rbac.RoleOwner, nil, false), nil)

	r, _ := gateRouter(repo, userID, rbac.PermManageAppointments)

	req := httptest.NewRequest(http.MethodGet, "/guarded?clinic_id="+clinicID.String(), nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRequirePermission_RoleLacksPermission(t *testing.T) {
	userID := uuid.New()
	clinicID := uuid.New()

	repo := new(mockStaffRepo)
	repo.On("Get", mock.Anything, userID, clinicID).
		Return(assignment(userID, clinicID, rbac.RoleNurse, nil, true), nil)

	r, _ := gateRouter(repo, userID, rbac.PermManageRoles)

	req := httptest.NewRequest(http.MethodGet, "/guarded?clinic_id="+clinicID.String(), nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRequirePermission_CustomGrantOverridesRole(t *testing.T) {
	userID := uuid.New()
	clinicID := uuid.New()

	repo := new(mockStaffRepo)
	repo.On("Get", mock.Anything, userID, clinicID).
		Return(assignment(userID, clinicID, rbac.RoleNurse, []string{rbac.PermManageRoles}, true), nil)

	r, _ := gateRouter(repo, userID, rbac.PermManageRoles)

	req := httptest.NewRequest(http.MethodGet, "/guarded?clinic_id="+clinicID.String(), nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequirePermission_CachesAssignment(t *testing.T) {
	userID := uuid.New()
	clinicID := uuid.New()

	repo := new(mockStaffRepo)
	repo.On("Get", mock.Anything, userID, clinicID).
		Return(assignment(userID, clinicID, rbac.RoleOwner, nil, true), nil).Once()

	r, _ := gateRouter(repo, userID, rbac.PermManageAppointments)

	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/guarded?clinic_id="+clinicID.String(), nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	}
	repo.AssertNumberOfCalls(t, "Get", 1)
}

func TestInvalidate_ForcesReload(t *testing.T) {
	userID := uuid.New()
	clinicID := uuid.New()

	repo := new(mockStaffRepo)
	repo.On("Get", mock.Anything, userID, clinicID).
		Return(assignment(userID, clinicID, rbac.RoleOwner, nil, true), nil).Once()
	repo.On("Get", mock.Anything, userID, clinicID).
		Return(assignment(userID, clinicID, rbac.RoleNurse, nil, true), nil).Once()

	r, m := gateRouter(repo, userID, rbac.PermManageRoles)

	req := httptest.NewRequest(http.MethodGet, "/guarded?clinic_id="+clinicID.String(), nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	m.Invalidate(userID, clinicID)

	req = httptest.NewRequest(http.MethodGet, "/guarded?clinic_id="+clinicID.String(), nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
	repo.AssertNumberOfCalls(t, "Get", 2)
}

func TestRequirePermission_BodyRestoredForHandler(t *testing.T) {
	userID := uuid.New()
	clinicID := uuid.New()

	repo := new(mockStaffRepo)
	repo.On("Get", mock.Anything, userID, clinicID).
		Return(assignment(userID, clinicID, rbac.RoleOwner, nil, true), nil)

	gin.SetMode(gin.TestMode)
	m := NewRBACMiddleware(repo)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(ContextUserID, userID.String())
	})
	r.POST("/echo", m.RequirePermission(rbac.PermManageAppointments), func(c *gin.Context) {
		var body struct {
			ClinicID string `json:"clinic_id"`
			Note     string `json:"note"`
		}
		require.NoError(t, c.ShouldBindJSON(&body))
		c.JSON(http.StatusOK, body)
	})

	body := []byte(`{"clinic_id":"` + clinicID.String() + `","note":"hello"}`)
	req := httptest.NewRequest(http.MethodPost, "/echo", bytes.NewReader(body))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "hello")
}
