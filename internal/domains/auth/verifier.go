package auth

import (
	"crypto/subtle"
	"encoding/base64"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"festivals-backend/internal/config"
	"festivals-backend/pkg/jwt"
)

// TokenResponse is the login success body.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

// Verifier checks a Basic credential pair against the configured values
// and issues a signed, time-limited access token. It holds no state
// beyond its configuration; signing is safe under concurrent use.
type Verifier struct {
	username string
	password string
	tokens   *jwt.Manager
}

func NewVerifier(cfg config.AuthConfig, tokens *jwt.Manager) *Verifier {
	return &Verifier{
		username: cfg.Username,
		password: cfg.Password,
		tokens:   tokens,
	}
}

// VerifyBasic validates an Authorization header carrying Basic
// credentials. All authentication failures come back as *Error.
func (v *Verifier) VerifyBasic(header string) (*TokenResponse, error) {
	if header == "" {
		return nil, errMissingHeader
	}

	if !strings.HasPrefix(header, "Basic ") {
		return nil, errWrongScheme
	}

	payload, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(header, "Basic "))
	if err != nil {
		return nil, errMalformedHeader
	}

	username, password, ok := strings.Cut(string(payload), ":")
	if !ok {
		return nil, errMalformedHeader
	}

	// Evaluate both comparisons before deciding so the failure mode
	// does not reveal which part was wrong.
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(v.username)) == 1
	passOK := v.passwordMatches(password)
	if !userOK || !passOK {
		return nil, errBadCredentials
	}

	token, err := v.tokens.Generate(username)
	if err != nil {
		return nil, err
	}

	return &TokenResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int(v.tokens.TTL().Seconds()),
	}, nil
}

// passwordMatches supports both a bcrypt-hashed configured password and
// a plain one; the plain path still compares in constant time.
func (v *Verifier) passwordMatches(password string) bool {
	if strings.HasPrefix(v.password, "$2a$") ||
		strings.HasPrefix(v.password, "$2b$") ||
		strings.HasPrefix(v.password, "$2y$") {
		return bcrypt.CompareHashAndPassword([]byte(v.password), []byte(password)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(password), []byte(v.password)) == 1
}
