package apperrors

// User and session error values. Login failures deliberately share a single
// InvalidCredentials value for both "no such user" and "wrong password" so
// account existence cannot be enumerated.
var (
	ErrUsernameNotUnique  = BadRequest("UsernameNotUnique", "The username is already in use. Please choose a unique username.")
	ErrEmailNotUnique     = BadRequest("EmailNotUnique", "The email is already in use. Please choose a unique email.")
	ErrUserNotFound       = NotFound("UserNotFound", "The user was not found.")
	ErrInvalidCredentials = BadRequest("InvalidCredentials", "The provided credentials are invalid.")

	ErrInvalidToken   = BadRequest("Token.InvalidToken", "This Token Is Expires")
	ErrInvalidUserID  = BadRequest("Token.InvalidUserId", "there is no user with this id")
	ErrNoRefreshToken = BadRequest("Token.NoRefreshToken", "there is no refresh tokens")
)
