// File: internal/auth/model.go
package auth

const (
	actionLogin    = "login"
	actionRegister = "register"
)

// LoginForm is the body of POST /login.
type LoginForm struct {
	Action     string `form:"_action"`
	Email      string `form:"email"`
	Password   string `form:"password"`
	FirstName  string `form:"firstName"`
	LastName   string `form:"lastName"`
	RedirectTo string `form:"redirectTo"`
}

// loginFields are echoed back into the form on a failed submission. The password never is.
type loginFields struct {
	Email     string
	FirstName string
	LastName  string
}
