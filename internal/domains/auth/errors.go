package auth

// BasicChallenge is the WWW-Authenticate value set on every login failure.
const BasicChallenge = `Basic realm="Festivals API"`

// Error is an authentication failure. The message is what reaches the
// client; credential failures collapse to a single message so a caller
// cannot tell an unknown user from a wrong password.
type Error struct {
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

var (
	errMissingHeader   = &Error{Message: "Authorization header is required"}
	errWrongScheme     = &Error{Message: "Authorization must be Basic authentication"}
	errMalformedHeader = &Error{Message: "Invalid Authorization header format"}
	errBadCredentials  = &Error{Message: "Invalid username or password"}
)
