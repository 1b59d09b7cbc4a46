package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/inmobot-ai/realty-platform/internal/model"
	"github.com/inmobot-ai/realty-platform/internal/store"
)

// Subscription loads the authenticated agent and blocks inventory actions
// when the subscription end date has passed. Admin accounts bypass the gate.
// The loaded agent record is placed in the request context for handlers.
func Subscription(st store.Store) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			agentID := GetAgentID(r.Context())
			if agentID == 0 {
				http.Error(w, `{"error":"invalid session"}`, http.StatusUnauthorized)
				return
			}

			agent, err := st.GetAgent(r.Context(), agentID)
			if err != nil {
				http.Error(w, `{"error":"invalid session"}`, http.StatusUnauthorized)
				return
			}

			if agent.Role != model.RoleAdmin && !agent.SubscriptionActive(time.Now()) {
				http.Error(w, `{"error":"suscripción vencida, renueva para continuar"}`, http.StatusForbidden)
				return
			}

			ctx := context.WithValue(r.Context(), AgentKey, agent)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
