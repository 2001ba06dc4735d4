package tags

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/Muskan6505/Local-helpHub/internal/logger"
)

const defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

// Generator derives keyword tags for a help request from its title and
// description using the Gemini generateContent endpoint. It is best-effort:
// any failure is logged and an empty list returned, help-request creation
// never fails because of tagging.
type Generator struct {
	apiKey  string
	model   string
	baseURL string
	httpc   *http.Client
	log     *logger.Logger
}

func NewGenerator(apiKey, model string, log *logger.Logger) *Generator {
	return &Generator{
		apiKey:  apiKey,
		model:   model,
		baseURL: defaultBaseURL,
		httpc:   &http.Client{Timeout: 10 * time.Second},
		log:     log,
	}
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

func (g *Generator) Generate(ctx context.Context, title, description string) []string {
	if g.apiKey == "" {
		return nil
	}

	prompt := fmt.Sprintf(
		"Generate 3-6 relevant tags (as comma-separated keywords) based on the title and description below.\n"+
			"Title: %s\nDescription: %s\n"+
			"Only return the comma-separated tags, no extra text.",
		title, description,
	)

	body, err := json.Marshal(generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
	})
	if err != nil {
		g.log.Warn("tag generation failed", "error", err)
		return nil
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", g.baseURL, g.model, g.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		g.log.Warn("tag generation failed", "error", err)
		return nil
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.httpc.Do(req)
	if err != nil {
		g.log.Warn("tag generation failed", "error", err)
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		g.log.Warn("tag generation failed", "status", resp.StatusCode)
		return nil
	}

	var out generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		g.log.Warn("tag generation failed", "error", err)
		return nil
	}
	if len(out.Candidates) == 0 || len(out.Candidates[0].Content.Parts) == 0 {
		return nil
	}

	return SplitTags(out.Candidates[0].Content.Parts[0].Text)
}

// SplitTags parses the model's comma-separated reply into lowercase tags.
func SplitTags(text string) []string {
	var tags []string
	for _, raw := range strings.Split(text, ",") {
		tag := strings.ToLower(strings.TrimSpace(raw))
		if tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}
