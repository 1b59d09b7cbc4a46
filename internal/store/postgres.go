package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"

	"github.com/inmobot-ai/realty-platform/internal/model"
)

// agentColumns is the shared select list for the agentes table. Optional
// columns are coalesced so rows scan into plain strings.
const agentColumns = `id, nombre, usuario, password_hash,
	COALESCE(email, '') AS email,
	COALESCE(telefono, '') AS telefono,
	COALESCE(calendar_email, '') AS calendar_email,
	COALESCE(suscripcion_estado, 'unset') AS suscripcion_estado,
	suscripcion_hasta, rol, created_at`

const propertyColumns = `id, agente_id, titulo,
	COALESCE(precio, '') AS precio,
	COALESCE(ubicacion, '') AS ubicacion,
	COALESCE(foto_url, '') AS foto_url,
	COALESCE(descripcion, '') AS descripcion,
	COALESCE(ficha_texto, '') AS ficha_texto,
	created_at`

// Postgres implements Store on the managed Postgres database.
type Postgres struct {
	db *sqlx.DB
}

// NewPostgres opens a connection pool against the configured database URL.
func NewPostgres(databaseURL string) (*Postgres, error) {
	db, err := sqlx.Open("pgx", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return &Postgres{db: db}, nil
}

// NewPostgresWithDB wraps an existing connection. Used by tests.
func NewPostgresWithDB(db *sqlx.DB) *Postgres {
	return &Postgres{db: db}
}

// GetAgent retrieves an agent by id.
func (s *Postgres) GetAgent(ctx context.Context, id int64) (*model.Agent, error) {
	var a model.Agent
	err := s.db.GetContext(ctx, &a,
		`SELECT `+agentColumns+` FROM agentes WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get agent %d: %w", id, err)
	}
	return &a, nil
}

// GetAgentByUsername retrieves an agent by login username.
func (s *Postgres) GetAgentByUsername(ctx context.Context, username string) (*model.Agent, error) {
	var a model.Agent
	err := s.db.GetContext(ctx, &a,
		`SELECT `+agentColumns+` FROM agentes WHERE usuario = $1`, username)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get agent by username: %w", err)
	}
	return &a, nil
}

// GetAgentByPhone retrieves the agent owning an inbound number.
func (s *Postgres) GetAgentByPhone(ctx context.Context, phone string) (*model.Agent, error) {
	var a model.Agent
	err := s.db.GetContext(ctx, &a,
		`SELECT `+agentColumns+` FROM agentes WHERE telefono = $1`, phone)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get agent by phone: %w", err)
	}
	return &a, nil
}

// ListAgents returns all agent accounts ordered by id.
func (s *Postgres) ListAgents(ctx context.Context) ([]model.Agent, error) {
	var agents []model.Agent
	err := s.db.SelectContext(ctx, &agents,
		`SELECT `+agentColumns+` FROM agentes ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list agents: %w", err)
	}
	return agents, nil
}

// CreateAgent provisions a new agent account and returns its id.
func (s *Postgres) CreateAgent(ctx context.Context, agent *model.Agent) (int64, error) {
	var id int64
	err := s.db.QueryRowContext(ctx,
		`INSERT INTO agentes (nombre, usuario, password_hash, email, telefono, calendar_email, suscripcion_estado, suscripcion_hasta, rol)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 RETURNING id`,
		agent.Name, agent.Username, agent.PasswordHash, agent.Email, agent.Phone,
		agent.CalendarID, agent.SubscriptionStatus, agent.SubscriptionUntil, agent.Role,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("create agent: %w", err)
	}
	return id, nil
}

// UpdateSubscription renews an agent's subscription through a date.
func (s *Postgres) UpdateSubscription(ctx context.Context, agentID int64, status model.SubscriptionStatus, until time.Time) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE agentes SET suscripcion_estado = $1, suscripcion_hasta = $2 WHERE id = $3`,
		status, until, agentID)
	if err != nil {
		return fmt.Errorf("update subscription: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

// ListProperties returns the agent's listings, newest first.
func (s *Postgres) ListProperties(ctx context.Context, agentID int64) ([]model.Property, error) {
	var props []model.Property
	err := s.db.SelectContext(ctx, &props,
		`SELECT `+propertyColumns+` FROM propiedades WHERE agente_id = $1 ORDER BY id DESC`,
		agentID)
	if err != nil {
		return nil, fmt.Errorf("list properties for agent %d: %w", agentID, err)
	}
	return props, nil
}

// InsertProperty saves a new listing and returns its id.
func (s *Postgres) InsertProperty(ctx context.Context, p *model.Property) (int64, error) {
	var id int64
	err := s.db.QueryRowContext(ctx,
		`INSERT INTO propiedades (agente_id, titulo, precio, ubicacion, descripcion, foto_url, ficha_texto)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id`,
		p.AgentID, p.Title, p.Price, p.Location, p.Description, p.PhotoURL, p.SheetText,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert property: %w", err)
	}
	return id, nil
}

// DeleteProperty removes a listing owned by the agent. Scoping the delete by
// agent id upholds the tenant invariant.
func (s *Postgres) DeleteProperty(ctx context.Context, agentID, propertyID int64) error {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM propiedades WHERE id = $1 AND agente_id = $2`,
		propertyID, agentID)
	if err != nil {
		return fmt.Errorf("delete property %d: %w", propertyID, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

// InsertLead saves a captured prospect and returns its id.
func (s *Postgres) InsertLead(ctx context.Context, lead *model.Lead) (int64, error) {
	var id int64
	err := s.db.QueryRowContext(ctx,
		`INSERT INTO clientes (agente_id, nombre, telefono, edad, perfil_vida, interes_principal)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id`,
		lead.AgentID, lead.Name, lead.Phone, lead.Age, lead.LifeProfile, lead.Interest,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert lead: %w", err)
	}
	return id, nil
}

// CountAgents returns the total number of agent accounts.
func (s *Postgres) CountAgents(ctx context.Context) (int, error) {
	var n int
	if err := s.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM agentes`); err != nil {
		return 0, fmt.Errorf("count agents: %w", err)
	}
	return n, nil
}

// CountActiveAgents returns agents whose subscription covers now.
func (s *Postgres) CountActiveAgents(ctx context.Context, now time.Time) (int, error) {
	var n int
	err := s.db.GetContext(ctx, &n,
		`SELECT COUNT(*) FROM agentes WHERE suscripcion_hasta >= $1`, now)
	if err != nil {
		return 0, fmt.Errorf("count active agents: %w", err)
	}
	return n, nil
}

// CountProperties returns the total number of listings.
func (s *Postgres) CountProperties(ctx context.Context) (int, error) {
	var n int
	if err := s.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM propiedades`); err != nil {
		return 0, fmt.Errorf("count properties: %w", err)
	}
	return n, nil
}

// Ping verifies database connectivity.
func (s *Postgres) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close closes the database connection.
func (s *Postgres) Close() error {
	return s.db.Close()
}
