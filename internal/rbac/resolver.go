package rbac

// Resolve returns the full permission set of a role, including everything
// inherited transitively. Unknown roles resolve to the empty set. The
// visited set guards against cycles: a cyclic catalog resolves to the union
// collected so far instead of recursing forever.
func Resolve(role string) map[string]struct{} {
	perms := make(map[string]struct{})
	resolveInto(role, perms, make(map[string]struct{}))
	return perms
}

func resolveInto(role string, perms, visited map[string]struct{}) {
	if _, seen := visited[role]; seen {
		return
	}
	visited[role] = struct{}{}

	def, ok := catalog[role]
	if !ok {
		return
	}
	for _, p := range def.permissions {
		perms[p] = struct{}{}
	}
	for _, parent := range def.inherits {
		resolveInto(parent, perms, visited)
	}
}

// HasPermission decides whether a staff member with the given role and
// per-user overrides holds the required permission. An explicit custom grant
// wins regardless of role, so individual users can be given exceptions
// without redefining roles.
func HasPermission(role string, customPermissions []string, required string) bool {
	for _, p := range customPermissions {
		if p == required {
			return true
		}
	}
	_, ok := Resolve(role)[required]
	return ok
}
