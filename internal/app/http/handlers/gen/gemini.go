package gen

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// ErrMissingAPIKey blocks a generation call before any network traffic
// when no credential is configured.
var ErrMissingAPIKey = errors.New("gemini api key is not configured")

func (s *Service) callGemini(ctx context.Context, parts []geminiPart, jsonMode bool) (string, error) {
	if strings.TrimSpace(s.Cfg.GeminiAPIKey) == "" {
		return "", ErrMissingAPIKey
	}

	payload := geminiRequest{
		Contents: []geminiContent{{Parts: parts}},
	}
	if jsonMode {
		payload.GenerationConfig = &generationConfig{ResponseMIMEType: "application/json"}
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	urlStr := strings.TrimRight(s.Cfg.GeminiBaseURL, "/") +
		"/v1beta/models/" + s.Cfg.GeminiModel + ":generateContent?key=" + s.Cfg.GeminiAPIKey
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, urlStr, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.HTTP.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return "", fmt.Errorf("gemini status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg)))
	}

	var out geminiResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", err
	}
	if out.Error != nil {
		return "", fmt.Errorf("gemini error: %s", out.Error.Message)
	}
	if len(out.Candidates) == 0 || len(out.Candidates[0].Content.Parts) == 0 {
		return "", errors.New("empty gemini response")
	}
	return strings.TrimSpace(out.Candidates[0].Content.Parts[0].Text), nil
}
