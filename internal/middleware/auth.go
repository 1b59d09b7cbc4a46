// Package middleware provides HTTP middleware for the API server.
package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/inmobot-ai/realty-platform/internal/model"
)

// ContextKey is a type for context keys.
type ContextKey string

const (
	// AgentIDKey is the context key for the authenticated agent id.
	AgentIDKey ContextKey = "agent_id"
	// RoleKey is the context key for the agent role.
	RoleKey ContextKey = "role"
	// AgentKey is the context key for the loaded agent record.
	AgentKey ContextKey = "agent"
)

// Claims represents JWT claims for a dashboard session.
type Claims struct {
	jwt.RegisteredClaims
	AgentID int64           `json:"agent_id"`
	Role    model.AgentRole `json:"role"`
}

// NewToken issues a signed session token for an agent.
func NewToken(jwtSecret string, agent *model.Agent, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   agent.Username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		AgentID: agent.ID,
		Role:    agent.Role,
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(jwtSecret))
}

// Auth creates JWT authentication middleware.
func Auth(jwtSecret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				http.Error(w, `{"error":"missing authorization header"}`, http.StatusUnauthorized)
				return
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				http.Error(w, `{"error":"invalid authorization header format"}`, http.StatusUnauthorized)
				return
			}

			claims := &Claims{}
			token, err := jwt.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (interface{}, error) {
				if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, jwt.ErrSignatureInvalid
				}
				return []byte(jwtSecret), nil
			})

			if err != nil || !token.Valid {
				http.Error(w, `{"error":"invalid token"}`, http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), AgentIDKey, claims.AgentID)
			ctx = context.WithValue(ctx, RoleKey, claims.Role)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetAgentID gets the authenticated agent id from context.
func GetAgentID(ctx context.Context) int64 {
	if v := ctx.Value(AgentIDKey); v != nil {
		return v.(int64)
	}
	return 0
}

// GetRole gets the agent role from context.
func GetRole(ctx context.Context) model.AgentRole {
	if v := ctx.Value(RoleKey); v != nil {
		return v.(model.AgentRole)
	}
	return ""
}

// GetAgent gets the loaded agent record from context, if the subscription
// gate has run.
func GetAgent(ctx context.Context) *model.Agent {
	if v := ctx.Value(AgentKey); v != nil {
		return v.(*model.Agent)
	}
	return nil
}

// RequireAdmin creates middleware that restricts a route to admin accounts.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if GetRole(r.Context()) != model.RoleAdmin {
			http.Error(w, `{"error":"insufficient permissions"}`, http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}
