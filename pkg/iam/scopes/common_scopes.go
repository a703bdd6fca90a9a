package scopes

// ============================================================================
// COMMON SCOPES
// ============================================================================

const (
	// Super scope - full access to everything
	ScopeAll = "*"

	ScopeAdminAll = "admin:*"

	// User management scopes
	ScopeUsersAll    = "users:*"
	ScopeUsersRead   = "users:read"
	ScopeUsersWrite  = "users:write"
	ScopeUsersDelete = "users:delete"

	// Notification scopes
	ScopeNotificationsAll    = "notifications:*"
	ScopeNotificationsConfig = "notifications:config"
)

// CommonScopeCategories organizes common scopes by domain
var CommonScopeCategories = map[string][]string{
	"Administration": {
		ScopeAll,
		ScopeAdminAll,
	},
	"Users": {
		ScopeUsersAll,
		ScopeUsersRead,
		ScopeUsersWrite,
		ScopeUsersDelete,
	},
	"Notifications": {
		ScopeNotificationsAll,
		ScopeNotificationsConfig,
	},
}

var CommonScopeDescriptions = map[string]string{
	ScopeAll:      "Full access to all system resources",
	ScopeAdminAll: "Full administrative access",

	ScopeUsersAll:    "Full access to staff user management",
	ScopeUsersRead:   "View staff users",
	ScopeUsersWrite:  "Create and edit staff users",
	ScopeUsersDelete: "Delete staff users",

	ScopeNotificationsAll:    "Full access to notifications",
	ScopeNotificationsConfig: "Reload notification settings",
}
