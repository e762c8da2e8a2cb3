package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/AlenaMolokova/gamehub/internal/utils"
	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
)

const RoleAdmin = "admin"

type adminKey struct{}

// IssueAdminToken signs an HS256 token carrying admin_id and role=admin.
func IssueAdminToken(secret string, adminID int64, ttl time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"admin_id": adminID,
		"role":     RoleAdmin,
		"exp":      time.Now().Add(ttl).Unix(),
	})
	return token.SignedString([]byte(secret))
}

func AdminAuth(secret string, log logrus.FieldLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
				log.WithField("path", r.URL.Path).Debug("missing or invalid Authorization header")
				utils.WriteJSONError(w, http.StatusUnauthorized, "Missing or invalid Authorization header")
				return
			}

			adminID, err := parseAdminToken(strings.TrimPrefix(authHeader, "Bearer "), secret)
			if err != nil {
				log.WithError(err).WithField("path", r.URL.Path).Info("admin token rejected")
				utils.WriteJSONError(w, http.StatusUnauthorized, "Invalid token")
				return
			}

			ctx := context.WithValue(r.Context(), adminKey{}, adminID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func parseAdminToken(tokenString, secret string) (int64, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secret), nil
	}, jwt.WithExpirationRequired())
	if err != nil {
		return 0, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, errors.New("invalid token claims")
	}
	if role, _ := claims["role"].(string); role != RoleAdmin {
		return 0, errors.New("token is not an admin token")
	}
	adminID, ok := claims["admin_id"].(float64)
	if !ok || adminID <= 0 {
		return 0, errors.New("admin_id not found in claims")
	}
	return int64(adminID), nil
}

func GetAdminID(r *http.Request) (int64, bool) {
	adminID, ok := r.Context().Value(adminKey{}).(int64)
	return adminID, ok
}

// WithAdminID puts adminID into ctx the way AdminAuth does.
func WithAdminID(ctx context.Context, adminID int64) context.Context {
	return context.WithValue(ctx, adminKey{}, adminID)
}
