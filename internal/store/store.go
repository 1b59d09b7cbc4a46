// Package store provides persistence for agents, properties and leads.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/inmobot-ai/realty-platform/internal/model"
)

// ErrNotFound is returned when a requested row does not exist or is not
// visible to the requesting agent.
var ErrNotFound = errors.New("not found")

// Store defines the persistence operations of the platform. Every property
// and lead operation is scoped to a single agent id; cross-tenant visibility
// is prevented by query construction.
type Store interface {
	// GetAgent retrieves an agent by id.
	GetAgent(ctx context.Context, id int64) (*model.Agent, error)

	// GetAgentByUsername retrieves an agent by login username.
	GetAgentByUsername(ctx context.Context, username string) (*model.Agent, error)

	// GetAgentByPhone retrieves the agent owning an inbound number.
	GetAgentByPhone(ctx context.Context, phone string) (*model.Agent, error)

	// ListAgents returns all agent accounts (admin view).
	ListAgents(ctx context.Context) ([]model.Agent, error)

	// CreateAgent provisions a new agent account and returns its id.
	CreateAgent(ctx context.Context, agent *model.Agent) (int64, error)

	// UpdateSubscription renews an agent's subscription through a date.
	UpdateSubscription(ctx context.Context, agentID int64, status model.SubscriptionStatus, until time.Time) error

	// ListProperties returns the agent's listings, newest first.
	ListProperties(ctx context.Context, agentID int64) ([]model.Property, error)

	// InsertProperty saves a new listing and returns its id.
	InsertProperty(ctx context.Context, p *model.Property) (int64, error)

	// DeleteProperty removes a listing owned by the agent.
	DeleteProperty(ctx context.Context, agentID, propertyID int64) error

	// InsertLead saves a captured prospect and returns its id.
	InsertLead(ctx context.Context, lead *model.Lead) (int64, error)

	// CountAgents returns the total number of agent accounts.
	CountAgents(ctx context.Context) (int, error)

	// CountActiveAgents returns agents whose subscription covers now.
	CountActiveAgents(ctx context.Context, now time.Time) (int, error)

	// CountProperties returns the total number of listings.
	CountProperties(ctx context.Context) (int, error)

	// Ping verifies database connectivity.
	Ping(ctx context.Context) error

	// Close closes the database connection.
	Close() error
}
