package rbac

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveInheritanceIsMonotonic(t *testing.T) {
	for role, def := range catalog {
		resolved := Resolve(role)
		for _, parent := range def.inherits {
			for perm := range Resolve(parent) {
				assert.Contains(t, resolved, perm,
					"role %s must include %s inherited from %s", role, perm, parent)
			}
		}
	}
}

func TestResolveTransitive(t *testing.T) {
	// OWNER -> DOCTOR_OWNER -> DOCTOR_PARTNER -> DOCTOR_VISITING
	resolved := Resolve(RoleOwner)
	assert.Contains(t, resolved, PermViewOwnSchedule)
	assert.Contains(t, resolved, PermCreatePrescription)
	// and via CLINIC_ADMIN -> RECEPTIONIST
	assert.Contains(t, resolved, PermManageInvoices)
	// own direct permissions
	assert.Contains(t, resolved, PermManageBranches)
}

func TestResolveUnknownRoleFailsClosed(t *testing.T) {
	assert.Empty(t, Resolve("JANITOR"))
	assert.False(t, HasPermission("JANITOR", nil, PermManageAppointments))
}

func TestHasPermissionCustomOverrideWins(t *testing.T) {
	assert.False(t, HasPermission(RoleNurse, nil, PermManageBranches))
	assert.True(t, HasPermission(RoleNurse, []string{PermManageBranches}, PermManageBranches))
	// even for unknown roles
	assert.True(t, HasPermission("JANITOR", []string{PermViewServices}, PermViewServices))
}

func TestLeafRolesDoNotGainAdminPermissions(t *testing.T) {
	assert.False(t, HasPermission(RoleReceptionist, nil, PermManageStaff))
	assert.False(t, HasPermission(RoleDoctorVisiting, nil, PermViewFinancials))
	assert.True(t, HasPermission(RoleDoctorPartner, nil, PermViewFinancials))
}

func TestResolveToleratesCycles(t *testing.T) {
	catalog["CYCLE_A"] = roleDef{inherits: []string{"CYCLE_B"}, permissions: []string{"perm_a"}}
	catalog["CYCLE_B"] = roleDef{inherits: []string{"CYCLE_A"}, permissions: []string{"perm_b"}}
	defer func() {
		delete(catalog, "CYCLE_A")
		delete(catalog, "CYCLE_B")
	}()

	resolved := Resolve("CYCLE_A")
	assert.Contains(t, resolved, "perm_a")
	assert.Contains(t, resolved, "perm_b")
}
