// File: internal/common/context_keys.go
package common

const (
	// UserIDKey is the context key for storing the authenticated user's ID
	UserIDKey = "userID"
	// CurrentUserKey holds the loaded user record for the request
	CurrentUserKey = "currentUser"
	// SessionTokenIDKey holds the jti of the session token that authenticated the request
	SessionTokenIDKey = "sessionTokenID"
)
