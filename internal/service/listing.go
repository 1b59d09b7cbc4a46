package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
	"go.uber.org/zap"

	"github.com/inmobot-ai/realty-platform/internal/llm"
	"github.com/inmobot-ai/realty-platform/internal/model"
	"github.com/inmobot-ai/realty-platform/internal/store"
	"github.com/inmobot-ai/realty-platform/pkg/logger"
	"github.com/inmobot-ai/realty-platform/pkg/metrics"
)

// ErrScannedDocument marks a PDF with no usable text layer, typically a
// scanned image.
var ErrScannedDocument = errors.New("document has no extractable text")

// minSheetChars is the threshold below which an extracted sheet is treated
// as a scanned image.
const minSheetChars = 50

const extractionInstruction = `Eres un experto inmobiliario. Analiza esta ficha técnica completa y extrae los datos clave.

TEXTO DEL DOCUMENTO:
%s

INSTRUCCIONES:
Responde SOLO un objeto JSON válido con esta estructura exacta:
{
    "titulo": "Un título corto y comercial (Ej: Casa Moderna en Zona Norte)",
    "precio": "El precio encontrado (Ej: $2,500,000)",
    "ubicacion": "La ubicación o zona aproximada",
    "resumen": "Redacta una descripción vendedora y atractiva de 3 líneas basada en las características reales."
}`

// ListingService handles the upload, extract, confirm and save workflow for
// property sheets.
type ListingService struct {
	store  store.Store
	llm    llm.Client
	model  string
	logger *logger.Logger
}

// NewListingService creates the listing service.
func NewListingService(st store.Store, llmClient llm.Client, llmModel string, log *logger.Logger) *ListingService {
	return &ListingService{store: st, llm: llmClient, model: llmModel, logger: log}
}

// Extract pulls the text out of an uploaded PDF and asks the model to
// structure it into a reviewable draft. Returns the draft and the cleaned
// full text so the caller can store it with the listing.
func (s *ListingService) Extract(ctx context.Context, data []byte) (*model.ListingDraft, string, error) {
	text, err := extractText(data)
	if err != nil {
		metrics.ExtractionsTotal.WithLabelValues("error").Inc()
		return nil, "", err
	}

	// NUL bytes break the database driver; scanned PDFs yield no text.
	text = strings.ReplaceAll(text, "\x00", "")
	if len(strings.TrimSpace(text)) < minSheetChars {
		metrics.ExtractionsTotal.WithLabelValues("scanned").Inc()
		return nil, "", ErrScannedDocument
	}

	resp, err := s.llm.Complete(ctx, &llm.CompletionRequest{
		Model:    s.model,
		JSONOnly: true,
		Messages: []llm.ChatMessage{
			{Role: string(model.RoleUser), Content: fmt.Sprintf(extractionInstruction, text)},
		},
	})
	if err != nil {
		metrics.ExtractionsTotal.WithLabelValues("error").Inc()
		return nil, "", fmt.Errorf("structure sheet: %w", err)
	}

	var draft model.ListingDraft
	if err := json.Unmarshal([]byte(resp.Content), &draft); err != nil {
		// The text itself is still usable: the caller can fill the
		// fields manually.
		s.logger.Warn("draft decode failed", zap.Error(err))
		metrics.ExtractionsTotal.WithLabelValues("unstructured").Inc()
		return nil, text, nil
	}

	metrics.ExtractionsTotal.WithLabelValues("success").Inc()
	return &draft, text, nil
}

// Save persists a confirmed draft as a property owned by the agent.
func (s *ListingService) Save(ctx context.Context, agentID int64, req *model.SaveListingRequest) (*model.Property, error) {
	p := &model.Property{
		AgentID:     agentID,
		Title:       req.Title,
		Price:       req.Price,
		Location:    req.Location,
		Description: req.Summary,
		PhotoURL:    req.PhotoURL,
		SheetText:   strings.ReplaceAll(req.SheetText, "\x00", ""),
	}

	id, err := s.store.InsertProperty(ctx, p)
	if err != nil {
		return nil, err
	}
	p.ID = id

	s.logger.Info("property saved", zap.Int64("agent_id", agentID), zap.Int64("property_id", id))
	return p, nil
}

// List returns the agent's inventory.
func (s *ListingService) List(ctx context.Context, agentID int64) ([]model.Property, error) {
	return s.store.ListProperties(ctx, agentID)
}

// Delete removes one listing owned by the agent.
func (s *ListingService) Delete(ctx context.Context, agentID, propertyID int64) error {
	return s.store.DeleteProperty(ctx, agentID, propertyID)
}

func extractText(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("read pdf: %w", err)
	}

	plain, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("extract text: %w", err)
	}

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(plain); err != nil {
		return "", fmt.Errorf("read text: %w", err)
	}
	return buf.String(), nil
}
