package store

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inmobot-ai/realty-platform/internal/model"
)

func newMockStore(t *testing.T) (*Postgres, sqlmock.Sqlmock) {
	t.Helper()
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })

	return NewPostgresWithDB(sqlx.NewDb(mockDB, "sqlmock")), mock
}

func agentRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "nombre", "usuario", "password_hash", "email", "telefono",
		"calendar_email", "suscripcion_estado", "suscripcion_hasta", "rol", "created_at",
	})
}

func TestGetAgent(t *testing.T) {
	s, mock := newMockStore(t)

	until := time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery("FROM agentes WHERE id =").
		WithArgs(int64(1)).
		WillReturnRows(agentRows().AddRow(
			1, "Laura", "laura", "hash", "laura@example.com", "+521555",
			"laura@example.com", "active", until, "agent", time.Now(),
		))

	agent, err := s.GetAgent(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, int64(1), agent.ID)
	assert.Equal(t, "Laura", agent.Name)
	assert.Equal(t, "laura@example.com", agent.CalendarID)
	require.NotNil(t, agent.SubscriptionUntil)
	assert.True(t, agent.SubscriptionActive(time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetAgentNotFound(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectQuery("FROM agentes WHERE id =").
		WithArgs(int64(42)).
		WillReturnRows(agentRows())

	_, err := s.GetAgent(context.Background(), 42)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetAgentByPhone(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectQuery("FROM agentes WHERE telefono =").
		WithArgs("+521555").
		WillReturnRows(agentRows().AddRow(
			2, "Marco", "marco", "hash", "", "+521555",
			"", "unset", nil, "agent", time.Now(),
		))

	agent, err := s.GetAgentByPhone(context.Background(), "+521555")
	require.NoError(t, err)
	assert.Equal(t, int64(2), agent.ID)
	assert.False(t, agent.HasCalendar())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateAgent(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectQuery("INSERT INTO agentes").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(5))

	id, err := s.CreateAgent(context.Background(), &model.Agent{
		Name:     "Nuevo",
		Username: "nuevo",
		Role:     model.RoleAgent,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(5), id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateSubscriptionNotFound(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectExec("UPDATE agentes SET suscripcion_estado").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := s.UpdateSubscription(context.Background(), 99, model.SubscriptionActive, time.Now())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListProperties(t *testing.T) {
	s, mock := newMockStore(t)

	rows := sqlmock.NewRows([]string{
		"id", "agente_id", "titulo", "precio", "ubicacion", "foto_url",
		"descripcion", "ficha_texto", "created_at",
	}).
		AddRow(2, 1, "Casa Moderna", "$2,500,000", "Zona Norte", "", "Amplia", "detalle", time.Now()).
		AddRow(1, 1, "Terreno", "$800,000", "", "", "", "", time.Now())

	mock.ExpectQuery("FROM propiedades WHERE agente_id =").
		WithArgs(int64(1)).
		WillReturnRows(rows)

	props, err := s.ListProperties(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, props, 2)
	assert.Equal(t, "Casa Moderna", props[0].Title)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInsertProperty(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectQuery("INSERT INTO propiedades").
		WithArgs(int64(1), "Casa", "$1", "Centro", "desc", "url", "ficha").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))

	id, err := s.InsertProperty(context.Background(), &model.Property{
		AgentID:     1,
		Title:       "Casa",
		Price:       "$1",
		Location:    "Centro",
		Description: "desc",
		PhotoURL:    "url",
		SheetText:   "ficha",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(7), id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeletePropertyScopedToAgent(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectExec("DELETE FROM propiedades WHERE id = (.+) AND agente_id =").
		WithArgs(int64(7), int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, s.DeleteProperty(context.Background(), 1, 7))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeletePropertyWrongAgent(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectExec("DELETE FROM propiedades").
		WithArgs(int64(7), int64(2)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := s.DeleteProperty(context.Background(), 2, 7)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestInsertLead(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectQuery("INSERT INTO clientes").
		WithArgs(int64(1), "Ana", "+521555", "34", "Familia", "Cita: 2026-09-02 16:00").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(3))

	id, err := s.InsertLead(context.Background(), &model.Lead{
		AgentID:     1,
		Name:        "Ana",
		Phone:       "+521555",
		Age:         "34",
		LifeProfile: "Familia",
		Interest:    "Cita: 2026-09-02 16:00",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(3), id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCounts(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM agentes WHERE suscripcion_hasta").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(4))

	n, err := s.CountActiveAgents(context.Background(), time.Now())
	require.NoError(t, err)
	assert.Equal(t, 4, n)
}
