package directory

// Account is one row of the user directory. Passkeys are stored and compared
// as plain strings; the source system this replaces has no stronger
// guarantee, and the admin passcode is a fixed literal checked by equality.
type Account struct {
	Username string `json:"username"`
	Passkey  string `json:"passkey"`
}

// Role tags how a logged-in account is routed by the shell.
type Role string

const (
	RoleStandard Role = "standard"
	RoleAdmin    Role = "admin"
)

// AdminUsername is the reserved directory name that carries RoleAdmin.
const AdminUsername = "admin"

// RoleOf maps a username to its role.
func RoleOf(username string) Role {
	if username == AdminUsername {
		return RoleAdmin
	}
	return RoleStandard
}
