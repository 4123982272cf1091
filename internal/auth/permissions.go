package auth

// Permission constants define the available permissions in the system.
// These are used for role-based access control (RBAC) to restrict access
// to specific resources and actions. The slug strings are a wire format:
// existing role assignments reference them, so they must never change.
const (
	// PermUsersView allows viewing user accounts.
	PermUsersView = "users.view"
	// PermUsersCreate allows creating user accounts.
	PermUsersCreate = "users.create"
	// PermUsersUpdate allows editing user accounts.
	PermUsersUpdate = "users.update"
	// PermUsersDelete allows deleting user accounts.
	PermUsersDelete = "users.delete"

	// PermRolesView allows viewing roles and their permissions.
	PermRolesView = "roles.view"
	// PermRolesCreate allows creating roles.
	PermRolesCreate = "roles.create"
	// PermRolesUpdate allows editing roles and replacing their permission sets.
	PermRolesUpdate = "roles.update"
	// PermRolesDelete allows deleting roles.
	PermRolesDelete = "roles.delete"

	// PermProductsView allows viewing products and their attribute values.
	PermProductsView = "products.view"
	// PermProductsCreate allows creating products.
	PermProductsCreate = "products.create"
	// PermProductsUpdate allows editing products, categories, attributes and attribute values.
	PermProductsUpdate = "products.update"
	// PermProductsDelete allows deleting products.
	PermProductsDelete = "products.delete"

	// PermWarehousesView allows viewing warehouses and inventory movements.
	PermWarehousesView = "warehouses.view"
	// PermWarehousesCreate allows creating warehouses and recording movements.
	PermWarehousesCreate = "warehouses.create"
	// PermWarehousesUpdate allows editing warehouses.
	PermWarehousesUpdate = "warehouses.update"
	// PermWarehousesDelete allows deleting warehouses.
	PermWarehousesDelete = "warehouses.delete"

	// PermSystemLogsView allows viewing system logs.
	PermSystemLogsView = "system.logs.view"
	// PermSystemSettingsManage allows managing application-wide settings.
	PermSystemSettingsManage = "system.settings.manage"

	// PermNotificationsSend allows sending notifications to users.
	PermNotificationsSend = "notifications.send"
	// PermNotificationsViewAll allows viewing every user's notifications.
	PermNotificationsViewAll = "notifications.view.all"
)

// Module tags group permissions for display in the role editor.
const (
	ModuleUsers         = "users"
	ModuleRoles         = "roles"
	ModuleProducts      = "products"
	ModuleWarehouses    = "warehouses"
	ModuleSystem        = "system"
	ModuleNotifications = "notifications"
)

// CatalogEntry describes one seedable permission.
type CatalogEntry struct {
	Slug   string
	Name   string
	Module string
}

// Catalog returns the full permission catalog in seed order.
func Catalog() []CatalogEntry {
	return []CatalogEntry{
		{PermUsersView, "View users", ModuleUsers},
		{PermUsersCreate, "Create users", ModuleUsers},
		{PermUsersUpdate, "Update users", ModuleUsers},
		{PermUsersDelete, "Delete users", ModuleUsers},
		{PermRolesView, "View roles", ModuleRoles},
		{PermRolesCreate, "Create roles", ModuleRoles},
		{PermRolesUpdate, "Update roles", ModuleRoles},
		{PermRolesDelete, "Delete roles", ModuleRoles},
		{PermProductsView, "View products", ModuleProducts},
		{PermProductsCreate, "Create products", ModuleProducts},
		{PermProductsUpdate, "Update products", ModuleProducts},
		{PermProductsDelete, "Delete products", ModuleProducts},
		{PermWarehousesView, "View warehouses", ModuleWarehouses},
		{PermWarehousesCreate, "Create warehouses", ModuleWarehouses},
		{PermWarehousesUpdate, "Update warehouses", ModuleWarehouses},
		{PermWarehousesDelete, "Delete warehouses", ModuleWarehouses},
		{PermSystemLogsView, "View system logs", ModuleSystem},
		{PermSystemSettingsManage, "Manage system settings", ModuleSystem},
		{PermNotificationsSend, "Send notifications", ModuleNotifications},
		{PermNotificationsViewAll, "View all notifications", ModuleNotifications},
	}
}
