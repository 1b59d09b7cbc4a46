package model

import (
	"time"
)

// Lead is a captured prospect tied to one agent. Column names follow the
// managed `clientes` table. Age and profile are free text from conversation.
type Lead struct {
	ID          int64     `db:"id" json:"id"`
	AgentID     int64     `db:"agente_id" json:"agente_id"`
	Name        string    `db:"nombre" json:"nombre"`
	Phone       string    `db:"telefono" json:"telefono"`
	Age         string    `db:"edad" json:"edad,omitempty"`
	LifeProfile string    `db:"perfil_vida" json:"perfil_vida,omitempty"`
	Interest    string    `db:"interes_principal" json:"interes_principal"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}
