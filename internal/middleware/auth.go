package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/mindhaven/backend/pkg/utils"
)

type contextKey string

// userIDKey carries the authenticated user through the request context.
const userIDKey contextKey = "userID"

// UserID extracts the authenticated user from the request context. The empty
// string means the request never passed through Auth.
func UserID(ctx context.Context) string {
	id, _ := ctx.Value(userIDKey).(string)
	return id
}

// WithUserID returns a context carrying the given user, for tests and
// internal callers.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// Auth authenticates every request on the wrapped routes. With a secret
// configured it expects an HS256 bearer token and takes the user from the
// subject claim. Without one it falls back to the X-User-ID header, which
// keeps local development working without an identity provider.
func Auth(jwtSecret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, err := authenticate(r, jwtSecret)
			if err != nil {
				utils.RespondError(w, http.StatusUnauthorized, err.Error())
				return
			}
			next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), userID)))
		})
	}
}

func authenticate(r *http.Request, jwtSecret string) (string, error) {
	if jwtSecret == "" {
		userID := strings.TrimSpace(r.Header.Get("X-User-ID"))
		if userID == "" {
			return "", errAuthRequired
		}
		return userID, nil
	}

	header := r.Header.Get("Authorization")
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || token == "" {
		return "", errAuthRequired
	}

	claims := &jwt.RegisteredClaims{}
	parser := jwt.NewParser(jwt.WithValidMethods([]string{"HS256"}))
	parsed, err := parser.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return []byte(jwtSecret), nil
	})
	if err != nil || !parsed.Valid {
		return "", errInvalidToken
	}
	if claims.Subject == "" {
		return "", errInvalidToken
	}
	return claims.Subject, nil
}

var (
	errAuthRequired = authError("authentication required")
	errInvalidToken = authError("invalid token")
)

type authError string

func (e authError) Error() string { return string(e) }
