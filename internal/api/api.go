// Package api defines the wire contract of the jogging service: the gRPC
// service and method names and the JSON messages exchanged over them. Both
// the server and the client build on it instead of generated stubs.
package api

import "github.com/dmitrijs2005/joggingtracker/internal/timex"

const ServiceName = "jogging.v1.JoggingService"

// Method names, as used in grpc.MethodDesc.
const (
	MethodLogin             = "Login"
	MethodLogout            = "Logout"
	MethodAddRecord         = "AddRecord"
	MethodGetRecord         = "GetRecord"
	MethodListRecords       = "ListRecords"
	MethodFilterRecords     = "FilterRecords"
	MethodUpdateRecord      = "UpdateRecord"
	MethodDeleteRecord      = "DeleteRecord"
	MethodWeeklyStats       = "WeeklyStats"
	MethodListUsers         = "ListUsers"
	MethodGetUser           = "GetUser"
	MethodCreateRegularUser = "CreateRegularUser"
	MethodCreateUserManager = "CreateUserManager"
	MethodUpdateUser        = "UpdateUser"
	MethodDeleteUser        = "DeleteUser"
	MethodListUsersByRole   = "ListUsersByRole"
	MethodAddUserRole       = "AddUserRole"
	MethodRemoveUserRole    = "RemoveUserRole"
)

// FullMethod returns the "/service/method" path gRPC routes on.
func FullMethod(method string) string {
	return "/" + ServiceName + "/" + method
}

// DateLayout is the wire format of calendar dates.
const DateLayout = "2006-01-02"

type Empty struct{}

type LoginRequest struct {
	UserName string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token     string `json:"token"`
	ExpiresIn int64  `json:"expires_in"`
}

// RecordInput holds the client-writable fields of a record. The owner is
// always taken from the caller's token.
type RecordInput struct {
	Date           string         `json:"date"`
	DistanceMeters float64        `json:"distance_meters"`
	Duration       timex.Duration `json:"duration"`
}

// Record is a stored record as returned to clients. Speed is meters per
// hour, derived on read.
type Record struct {
	ID             int64          `json:"id"`
	UserID         string         `json:"user_id"`
	Date           string         `json:"date"`
	DistanceMeters float64        `json:"distance_meters"`
	Duration       timex.Duration `json:"duration"`
	Speed          float64        `json:"speed"`
}

type RecordID struct {
	ID int64 `json:"id"`
}

type UpdateRecordRequest struct {
	ID int64 `json:"id"`
	RecordInput
}

// UserScope selects whose records to read. Empty means the caller; only
// admins may name someone else.
type UserScope struct {
	UserID string `json:"user_id,omitempty"`
}

type FilterRecordsRequest struct {
	UserID string `json:"user_id,omitempty"`
	From   string `json:"from,omitempty"`
	To     string `json:"to,omitempty"`
}

type RecordList struct {
	Records []Record `json:"records"`
}

type WeeklyStat struct {
	Week            int     `json:"week"`
	AverageSpeed    float64 `json:"average_speed"`
	AverageDistance float64 `json:"average_distance"`
}

type WeeklyStats struct {
	Weeks []WeeklyStat `json:"weeks"`
}

type User struct {
	ID        string   `json:"id"`
	UserName  string   `json:"username"`
	Email     string   `json:"email"`
	FirstName string   `json:"first_name"`
	LastName  string   `json:"last_name"`
	Roles     []string `json:"roles"`
	CreatedAt string   `json:"created_at,omitempty"`
}

type UserList struct {
	Users []User `json:"users"`
}

type UserID struct {
	ID string `json:"id"`
}

type CreateUserRequest struct {
	UserName  string `json:"username"`
	Password  string `json:"password"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type UpdateUserRequest struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type RoleRequest struct {
	Role string `json:"role"`
}

// UserRoleRequest grants or revokes one role of one user.
type UserRoleRequest struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
}
