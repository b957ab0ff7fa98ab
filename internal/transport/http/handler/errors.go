package handler

const (
	errInternalServer     = "Internal server error"
	errTaskNotFound       = "Task not found"
	errUserNotFound       = "User not found"
	errEmailTaken         = "Email already exists"
	errInvalidCredentials = "Invalid credentials"
	errNotAuthorized      = "Not authorized"
)
