package gen

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"bmbat/go_backend/internal/app/config"
	"bmbat/go_backend/internal/domain/document"
)

// fakeGemini answers generateContent calls with the given candidate text.
func fakeGemini(t *testing.T, candidateText string, status int) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.Contains(r.URL.Path, ":generateContent") {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.URL.Query().Get("key") == "" {
			t.Errorf("missing api key in query")
		}
		if status != http.StatusOK {
			http.Error(w, "upstream exploded", status)
			return
		}
		resp := map[string]interface{}{
			"candidates": []map[string]interface{}{
				{"content": map[string]interface{}{
					"parts": []map[string]string{{"text": candidateText}},
				}},
			},
		}
		_ = json.NewEncoder(w).Encode(resp)
	}))
}

func testService(srvURL string) *Service {
	return New(config.Config{
		GeminiBaseURL: srvURL,
		GeminiAPIKey:  "test-key",
		GeminiModel:   "gemini-1.5-flash-002",
	}, nil)
}

func TestGenerateNormalizesFencedResponse(t *testing.T) {
	payload := "```json\n" + `{"object": "Peinture façade", "sections": [{"title": "Façade", "items": [{"description": "Peinture", "qty": 50, "unit": "m²", "price": 12, "vat": 6}]}]}` + "\n```"
	srv := fakeGemini(t, payload, http.StatusOK)
	defer srv.Close()

	doc, err := testService(srv.URL).Generate(context.Background(), "Repeindre la façade", "", document.TypeDevis)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if doc.Object != "Peinture façade" {
		t.Fatalf("object = %q", doc.Object)
	}
	if doc.Type != document.TypeDevis || doc.Status != document.StatusDraft {
		t.Fatalf("identity = type %q status %q", doc.Type, doc.Status)
	}
	if len(doc.Sections) != 1 || len(doc.Sections[0].Items) != 1 {
		t.Fatalf("sections = %+v", doc.Sections)
	}
	if got := doc.Sections[0].Items[0]; got.Price != 12 || got.VAT != 6 {
		t.Fatalf("item = %+v", got)
	}
}

func TestGenerateMalformedResponse(t *testing.T) {
	srv := fakeGemini(t, "désolé, je ne peux pas générer de JSON", http.StatusOK)
	defer srv.Close()

	_, err := testService(srv.URL).Generate(context.Background(), "devis", "", document.TypeDevis)
	var malformed *document.MalformedResponseError
	if !errors.As(err, &malformed) {
		t.Fatalf("error = %v (%T), want *MalformedResponseError", err, err)
	}
}

func TestGenerateUpstreamFailureIsVerbatim(t *testing.T) {
	srv := fakeGemini(t, "", http.StatusInternalServerError)
	defer srv.Close()

	_, err := testService(srv.URL).Generate(context.Background(), "devis", "", document.TypeDevis)
	if err == nil {
		t.Fatalf("expected upstream error")
	}
	if !strings.Contains(err.Error(), "gemini status 500") || !strings.Contains(err.Error(), "upstream exploded") {
		t.Fatalf("error %q does not carry upstream detail", err)
	}
}

func TestGenerateWithoutAPIKey(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))
	defer srv.Close()

	s := New(config.Config{GeminiBaseURL: srv.URL}, nil)
	_, err := s.Generate(context.Background(), "devis", "", document.TypeDevis)
	if !errors.Is(err, ErrMissingAPIKey) {
		t.Fatalf("error = %v, want ErrMissingAPIKey", err)
	}
	if calls != 0 {
		t.Fatalf("network call made despite missing key")
	}
}

func TestAuditParsesResult(t *testing.T) {
	srv := fakeGemini(t, "```json\n"+`{"score": 72, "warnings": ["TVA 21% sur rénovation"], "opportunities": ["Proposer l'isolation"]}`+"\n```", http.StatusOK)
	defer srv.Close()

	d := document.New(document.TypeDevis)
	result, err := testService(srv.URL).Audit(context.Background(), d)
	if err != nil {
		t.Fatalf("audit: %v", err)
	}
	if result.Score != 72 || len(result.Warnings) != 1 || len(result.Opportunities) != 1 {
		t.Fatalf("result = %+v", result)
	}
}

func TestDraftEmailReturnsPlainText(t *testing.T) {
	srv := fakeGemini(t, "Bonjour Monsieur Dupont, veuillez trouver ci-joint votre devis.", http.StatusOK)
	defer srv.Close()

	d := document.New(document.TypeDevis)
	d.Client.Name = "Dupont"
	text, err := testService(srv.URL).DraftEmail(context.Background(), d)
	if err != nil {
		t.Fatalf("email: %v", err)
	}
	if !strings.Contains(text, "Dupont") {
		t.Fatalf("text = %q", text)
	}
}
