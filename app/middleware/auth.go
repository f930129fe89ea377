package appMiddleware

import (
	"os"

	"github.com/golang-jwt/jwt/v5"
)

type contextKey string

const UserIDKey contextKey = "userID"
const UserRoleKey contextKey = "userRole"

// Claims carried by access tokens issued by the auth collaborator. The
// engine only consumes UserID as the itinerary owner reference.
type Claims struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// jwtSecretKey verifies tokens minted by the auth service. Resolved on each
// call so a secret loaded from .env after package init is still picked up;
// the fallback only exists for local development.
func jwtSecretKey() []byte {
	if s := os.Getenv("JWT_SECRET_KEY"); s != "" {
		return []byte(s)
	}
	return []byte("dev-only-secret")
}
