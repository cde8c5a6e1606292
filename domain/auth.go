package domain

import "github.com/golang-jwt/jwt/v4"

// Claims carried by staff tokens. Token issuance is handled by the identity
// provider; this service only verifies.
type Claims struct {
	UserID   int    `json:"user_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}
