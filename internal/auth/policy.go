package auth

import "github.com/GoWarehouse-Admin/GoWarehouse-Admin/internal/db/models"

// Capability names an implicit power a role slug carries outside the
// fine-grained permission system.
type Capability string

const (
	// CapManageUserRoles allows replacing another user's role assignment.
	CapManageUserRoles Capability = "manage-user-roles"
	// CapBypassPermissions marks the holder as an implicit super-user for
	// operations that historically checked the role slug directly.
	CapBypassPermissions Capability = "bypass-permissions"
)

// implicitCapabilities maps role slugs to the capabilities they carry
// implicitly. Only super-admin carries any; the mapping exists so the slug
// comparison lives in one place instead of being scattered across call sites.
var implicitCapabilities = map[string][]Capability{ //nolint:gochecknoglobals
	models.RoleSuperAdmin: {CapManageUserRoles, CapBypassPermissions},
}

// ImplicitCapabilities returns the capabilities the given role slug carries.
func ImplicitCapabilities(roleSlug string) []Capability {
	return implicitCapabilities[roleSlug]
}

// HasCapability checks whether any role held by the user carries the given
// implicit capability. This is the canonical super-admin check.
func (s *Service) HasCapability(userID uint64, capability Capability) (bool, error) {
	roles, err := s.RolesOf(userID)
	if err != nil {
		return false, err
	}

	for _, role := range roles {
		if !role.Active {
			continue
		}

		for _, c := range implicitCapabilities[role.Slug] {
			if c == capability {
				return true, nil
			}
		}
	}

	return false, nil
}
