package models

// UserSession is the authenticated principal attached to request context by
// the session middleware. Core operations receive the acting user explicitly;
// there is no ambient current-user state.
type UserSession struct {
	UserID    int64    `json:"userId"`
	Email     string   `json:"email"`
	Name      string   `json:"name"`
	Role      UserRole `json:"role"`
	IssuedAt  int64    `json:"issuedAt"`
	ExpiresAt int64    `json:"expiresAt"`
}

// Token verification outcome reasons
const (
	TokenMissing = "TOKEN_MISSING"
	TokenInvalid = "TOKEN_INVALID"
	TokenExpired = "TOKEN_EXPIRED"
	TokenValid   = "TOKEN_VALID"
)

// TokenClaims is the decoded content of a verified bearer token
type TokenClaims struct {
	UserID int64  `json:"userId"`
	Email  string `json:"email"`
	Expiry int64  `json:"exp"`
}

// VerifyTokenRequest is the payload for token verification
type VerifyTokenRequest struct {
	Token string `json:"token" binding:"required"`
}

// VerifyTokenResponse reports whether a presented token is valid and why not
// when it is not
type VerifyTokenResponse struct {
	IsAuthenticated bool         `json:"isAuthenticated"`
	Claims          *TokenClaims `json:"claims,omitempty"`
	Reason          string       `json:"reason"`
}
