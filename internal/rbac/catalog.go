// Package rbac holds the static role catalog and the permission resolver.
// The catalog is plain data loaded once at process start; roles inherit from
// other roles through a DAG, not through type hierarchies.
package rbac

// Permission strings consumed by the authorization gate.
const (
	PermManageBranches     = "manage_branches"
	PermManageRoles        = "manage_roles"
	PermManageStaff        = "manage_staff"
	PermManageClinicProfile = "manage_clinic_profile"
	PermManageServices     = "manage_services"
	PermManageTemplates    = "manage_templates"
	PermViewFinancials     = "view_financials"
	PermViewAnalyticsOps   = "view_analytics_ops"
	PermViewAnalyticsDoc   = "view_analytics_doc"
	PermDeletePatient      = "delete_patient"
	PermManageVitalsLibrary = "manage_vitals_library"
	PermViewClinicDetails  = "view_clinic_details"
	PermManageAvailability = "manage_availability"
	PermViewAllSchedule    = "view_all_schedule"
	PermManageAppointments = "manage_appointments"
	PermManagePatients     = "manage_patients"
	PermViewOwnSchedule    = "view_own_schedule"
	PermViewAssignedPatients = "view_assigned_patients"
	PermCreatePrescription = "create_prescription"
	PermViewPrescription   = "view_prescription"
	PermManageMedicalRecords = "manage_medical_records"
	PermViewPatientHistory = "view_patient_history"
	PermManageInvoices     = "manage_invoices"
	PermViewServices       = "view_services"
	PermManageVitalsEntry  = "manage_vitals_entry"
)

// Role names as stored on ClinicStaffAssignment rows.
const (
	RoleOwner          = "OWNER"
	RoleClinicAdmin    = "CLINIC_ADMIN"
	RoleDoctorOwner    = "DOCTOR_OWNER"
	RoleDoctorPartner  = "DOCTOR_PARTNER"
	RoleDoctorVisiting = "DOCTOR_VISITING"
	RoleReceptionist   = "RECEPTIONIST"
	RoleNurse          = "NURSE"
)

type roleDef struct {
	inherits    []string
	permissions []string
}

// catalog is the process-wide role table. It is never mutated after init, so
// no synchronization is needed around it. The inheritance graph must stay a
// DAG; the resolver tolerates cycles but a cycle here is an authoring bug.
var catalog = map[string]roleDef{
	RoleOwner: {
		inherits: []string{RoleClinicAdmin, RoleDoctorOwner},
		permissions: []string{
			PermManageBranches,
			PermManageRoles,
		},
	},
	RoleClinicAdmin: {
		inherits: []string{RoleReceptionist, RoleNurse},
		permissions: []string{
			PermManageStaff,
			PermManageRoles,
			PermManageClinicProfile,
			PermManageServices,
			PermManageTemplates,
			PermViewFinancials,
			PermViewAnalyticsOps,
			PermDeletePatient,
			PermManageVitalsLibrary,
			PermViewClinicDetails,
			PermManageAvailability,
		},
	},
	RoleDoctorOwner: {
		inherits:    []string{RoleClinicAdmin, RoleDoctorPartner},
		permissions: []string{},
	},
	RoleDoctorPartner: {
		inherits: []string{RoleDoctorVisiting},
		permissions: []string{
			PermViewFinancials,
			PermViewAnalyticsDoc,
			PermViewAllSchedule,
			PermManageAppointments,
			PermViewClinicDetails,
		},
	},
	RoleDoctorVisiting: {
		inherits: nil,
		permissions: []string{
			PermManageAppointments,
			PermManagePatients,
			PermViewOwnSchedule,
			PermViewAssignedPatients,
			PermCreatePrescription,
			PermViewPrescription,
			PermManageMedicalRecords,
			PermManageAvailability,
			PermViewPatientHistory,
		},
	},
	RoleReceptionist: {
		inherits: nil,
		permissions: []string{
			PermManagePatients,
			PermManageAppointments,
			PermViewAllSchedule,
			PermManageInvoices,
			PermViewServices,
			PermManageVitalsEntry,
		},
	},
	RoleNurse: {
		inherits: nil,
		permissions: []string{
			PermManageVitalsEntry,
			PermViewPatientHistory,
			PermManageMedicalRecords,
			PermViewAllSchedule,
		},
	},
}

// Roles returns the known role names.
func Roles() []string {
	names := make([]string, 0, len(catalog))
	for name := range catalog {
		names = append(names, name)
	}
	return names
}

// IsKnownRole reports whether name exists in the catalog.
func IsKnownRole(name string) bool {
	_, ok := catalog[name]
	return ok
}
