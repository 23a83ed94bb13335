package auth

import "github.com/dmitrijs2005/joggingtracker/internal/server/models"

// Operation names a gated core operation.
type Operation int

const (
	OpListUsers Operation = iota + 1
	OpGetUser
	OpCreateRegularUser
	OpCreateUserManager
	OpUpdateUser
	OpDeleteUser
	OpListUsersByRole
	OpManageRoles
	OpRecords
	OpLogout
)

var operationNames = map[Operation]string{
	OpListUsers:         "list_users",
	OpGetUser:           "get_user",
	OpCreateRegularUser: "create_regular_user",
	OpCreateUserManager: "create_user_manager",
	OpUpdateUser:        "update_user",
	OpDeleteUser:        "delete_user",
	OpListUsersByRole:   "list_users_by_role",
	OpManageRoles:       "manage_roles",
	OpRecords:           "records",
	OpLogout:            "logout",
}

func (op Operation) String() string {
	if n, ok := operationNames[op]; ok {
		return n
	}
	return "unknown"
}

// requiredRoles is the static role matrix. An empty set means any
// authenticated caller. Operations missing from the map are denied.
var requiredRoles = map[Operation][]models.Role{
	OpListUsers:         {models.RoleAdmin},
	OpGetUser:           {models.RoleAdmin, models.RoleUserManager},
	OpCreateRegularUser: {models.RoleAdmin, models.RoleUserManager},
	OpCreateUserManager: {models.RoleAdmin},
	OpUpdateUser:        {models.RoleAdmin, models.RoleUserManager},
	OpDeleteUser:        {models.RoleAdmin, models.RoleUserManager},
	OpListUsersByRole:   {models.RoleAdmin},
	OpManageRoles:       {models.RoleAdmin},
	OpRecords:           {models.RoleAdmin, models.RoleRegularUser},
	OpLogout:            {},
}

// RequiredRoles returns the roles of which the caller needs at least one,
// and false for operations that are not in the matrix.
func (op Operation) RequiredRoles() ([]models.Role, bool) {
	roles, ok := requiredRoles[op]
	return roles, ok
}
