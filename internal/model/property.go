package model

import (
	"time"
)

// Property is a listing owned by exactly one agent. Column names follow the
// managed `propiedades` table. Price is free text as captured from the sheet.
type Property struct {
	ID          int64     `db:"id" json:"id"`
	AgentID     int64     `db:"agente_id" json:"agente_id"`
	Title       string    `db:"titulo" json:"titulo"`
	Price       string    `db:"precio" json:"precio"`
	Location    string    `db:"ubicacion" json:"ubicacion"`
	PhotoURL    string    `db:"foto_url" json:"foto_url,omitempty"`
	Description string    `db:"descripcion" json:"descripcion"`
	SheetText   string    `db:"ficha_texto" json:"ficha_texto,omitempty"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

// ListingDraft is the structured data extracted from a property sheet,
// shown for review before the listing is saved.
type ListingDraft struct {
	Title    string `json:"titulo"`
	Price    string `json:"precio"`
	Location string `json:"ubicacion"`
	Summary  string `json:"resumen"`
}

// ExtractResponse is the extraction preview returned by the upload endpoint.
type ExtractResponse struct {
	Draft     *ListingDraft `json:"datos"`
	SheetText string        `json:"ficha_texto"`
}

// SaveListingRequest confirms a reviewed draft and saves it as a property.
type SaveListingRequest struct {
	Title     string `json:"titulo"`
	Price     string `json:"precio"`
	Location  string `json:"ubicacion"`
	Summary   string `json:"resumen"`
	PhotoURL  string `json:"foto_url,omitempty"`
	SheetText string `json:"ficha_texto,omitempty"`
}
