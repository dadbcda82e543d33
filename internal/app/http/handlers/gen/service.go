// Package gen talks to the generation model and turns its output into
// domain values. Transport and parsing failures are terminal for the
// operation at hand only; no document state is touched on failure.
package gen

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"bmbat/go_backend/internal/app/config"
	"bmbat/go_backend/internal/domain/document"
)

type Service struct {
	Cfg  config.Config
	HTTP *http.Client
}

func New(cfg config.Config, httpClient *http.Client) *Service {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 60 * time.Second}
	}
	return &Service{Cfg: cfg, HTTP: httpClient}
}

// Generate asks the model for a document of the given type and
// normalizes the response onto a fresh template. imageB64, when set, is
// a base64 JPEG the model should read alongside the instruction.
func (s *Service) Generate(ctx context.Context, instruction, imageB64 string, t document.Type) (document.Document, error) {
	prompt, ok := prompts[t]
	if !ok {
		prompt = prompts[document.TypeDevis]
	}
	if instruction == "" {
		instruction = "Génère le document complet."
	}

	parts := []geminiPart{{Text: prompt + " Instructions utilisateur: " + instruction}}
	if imageB64 != "" {
		parts = append(parts, geminiPart{InlineData: &inlineData{MimeType: "image/jpeg", Data: imageB64}})
	}

	text, err := s.callGemini(ctx, parts, true)
	if err != nil {
		return document.Document{}, err
	}
	return document.Normalize(text, t, document.New(t))
}

// Audit sends the document's sections for a profitability review.
func (s *Service) Audit(ctx context.Context, d document.Document) (AuditResult, error) {
	sections, err := json.Marshal(d.Sections)
	if err != nil {
		return AuditResult{}, err
	}

	text, err := s.callGemini(ctx, []geminiPart{{Text: auditPrompt + " Document: " + string(sections)}}, true)
	if err != nil {
		return AuditResult{}, err
	}

	var result AuditResult
	if err := json.Unmarshal([]byte(document.StripCodeFences(text)), &result); err != nil {
		return AuditResult{}, &document.MalformedResponseError{Err: err}
	}
	return result, nil
}

// DraftEmail writes a cover email for sending the document to its client.
func (s *Service) DraftEmail(ctx context.Context, d document.Document) (string, error) {
	totals := document.ComputeTotals(d)
	prompt := fmt.Sprintf(
		"Rédige un email professionnel pour envoyer ce %s à %s. Total: %.2f EUR.",
		d.Type, d.Client.Name, totals.TTC,
	)
	return s.callGemini(ctx, []geminiPart{{Text: prompt}}, false)
}
