// Package auth provides the authorization core of the application.
//
// This package implements a Role-Based Access Control (RBAC) system:
//   - The permission catalog enumerates every capability as a dotted slug
//     in module.action form (e.g., "products.create")
//   - Roles bundle permissions and are assigned to users
//   - A user's effective permission set is the union across all held roles
//
// # Permission Checking
//
// The Service type provides methods for checking user capabilities:
//   - HasPermission: Check if user has a specific permission (single join query)
//   - HasAnyPermission: Check if user has at least one permission from a list
//   - HasAllPermissions: Check if user has all permissions from a list
//   - ResolvePermissions: Retrieve the deduplicated effective permission set
//   - HasRole: Check role membership by slug, independent of permissions
//
// Both gating paths coexist deliberately: most routes gate on a permission
// slug, while a few operations gate on a named role. The role slug
// "super-admin" carries implicit capabilities (see ImplicitCapabilities)
// that bypass fine-grained permission checks for those operations.
//
// A user without any role assignment resolves to an empty permission set and
// is denied everywhere; resolving permissions for an unknown user is not an
// error.
//
// # Assignment Operations
//
// Role and user assignments use replace-not-patch semantics:
//   - ReplaceRolePermissions: Replace a role's whole permission set in one transaction
//   - ReplaceUserRole: Replace all of a user's role assignments with at most one
//
// Both operations are transactional: a failure mid-sequence rolls back to
// the prior state, never leaving a role or user half-assigned.
//
// # Middleware
//
// Fiber middleware functions are provided for route protection:
//   - RequirePermission: Protect routes requiring a specific permission
//   - RequireAnyPermission: Protect routes requiring any of several permissions
//   - RequireRole: Protect routes requiring a named role
//   - RequireAuthenticated: Protect routes requiring only a valid identity
//
// Example usage:
//
//	// Initialize auth service
//	authService := auth.NewService(db)
//
//	// Check permission in handler
//	hasPermission, err := authService.HasPermission(userID, auth.PermProductsCreate)
//
//	// Protect route with middleware
//	app.Get("/api/v1/users",
//	    auth.RequirePermission(authService, auth.PermUsersView),
//	    handler,
//	)
package auth
