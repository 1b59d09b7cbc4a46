// Package model defines data structures for the realty platform.
package model

import (
	"time"
)

// AgentRole is the dashboard role of an agent account.
type AgentRole string

const (
	RoleAdmin AgentRole = "admin"
	RoleAgent AgentRole = "agent"
)

// SubscriptionStatus is the stored subscription state of an agent.
type SubscriptionStatus string

const (
	SubscriptionActive  SubscriptionStatus = "active"
	SubscriptionExpired SubscriptionStatus = "expired"
	SubscriptionUnset   SubscriptionStatus = "unset"
)

// Agent is a tenant: a real-estate professional with their own catalog,
// leads and calendar. Column names follow the managed `agentes` table.
type Agent struct {
	ID           int64  `db:"id" json:"id"`
	Name         string `db:"nombre" json:"nombre"`
	Username     string `db:"usuario" json:"usuario"`
	PasswordHash string `db:"password_hash" json:"-"`
	Email        string `db:"email" json:"email"`
	Phone        string `db:"telefono" json:"telefono"`

	// CalendarID is the Google calendar identifier (an email). Empty means
	// no calendar is connected, which is a valid state, not an error.
	CalendarID string `db:"calendar_email" json:"calendar_email,omitempty"`

	SubscriptionStatus SubscriptionStatus `db:"suscripcion_estado" json:"suscripcion_estado"`
	SubscriptionUntil  *time.Time         `db:"suscripcion_hasta" json:"suscripcion_hasta,omitempty"`

	Role      AgentRole `db:"rol" json:"rol"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// HasCalendar reports whether a calendar is connected.
func (a *Agent) HasCalendar() bool {
	return a.CalendarID != ""
}

// SubscriptionActive reports whether the agent's subscription covers now.
// The stored status string is advisory; the end date is authoritative.
func (a *Agent) SubscriptionActive(now time.Time) bool {
	if a.SubscriptionUntil == nil {
		return false
	}
	return !now.After(*a.SubscriptionUntil)
}

// LoginRequest is the dashboard login payload.
type LoginRequest struct {
	Username string `json:"usuario"`
	Password string `json:"password"`
}

// LoginResponse is returned after a successful login.
type LoginResponse struct {
	Token string `json:"token"`
	Agent *Agent `json:"agente"`
}

// CreateAgentRequest is the admin payload to provision a new agent account.
type CreateAgentRequest struct {
	Name       string    `json:"nombre"`
	Username   string    `json:"usuario"`
	Password   string    `json:"password"`
	Email      string    `json:"email"`
	Phone      string    `json:"telefono"`
	CalendarID string    `json:"calendar_email,omitempty"`
	Role       AgentRole `json:"rol,omitempty"`
}

// RenewSubscriptionRequest renews an agent's subscription through a given date.
type RenewSubscriptionRequest struct {
	Until string `json:"hasta"` // YYYY-MM-DD
}

// AdminMetrics is the aggregate view for the admin dashboard.
type AdminMetrics struct {
	Agents         int     `json:"agentes"`
	Properties     int     `json:"propiedades"`
	ActiveAgents   int     `json:"agentes_activos"`
	MonthlyRevenue float64 `json:"ingresos_mensuales"`
}
