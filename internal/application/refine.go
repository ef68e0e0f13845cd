package application

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/khyahahati/ai-doc-builder/internal/domain"
	"github.com/khyahahati/ai-doc-builder/internal/ports"
)

type refineRequest struct {
	Feedback       string `json:"feedback"`
	UserPrompt     string `json:"user_prompt"`
	Persist        *bool  `json:"persist,omitempty"`
	CurrentContent string `json:"current_content,omitempty"`
}

type refineResult struct {
	Content    string
	Version    int
	HasVersion bool
}

type refineResponse struct {
	Content string `json:"content"`
	Version *int   `json:"version"`
}

func postRefine(ctx context.Context, transport ports.Transport, sectionID domain.SectionID, body refineRequest, credential string) (refineResult, error) {
	raw, err := transport.PostJSON(ctx, fmt.Sprintf("/sections/%s/refine", sectionID), body, credential)
	if err != nil {
		return refineResult{}, fmt.Errorf("refine section %s: %w", sectionID, err)
	}
	return decodeRefineResponse(raw)
}

// decodeRefineResponse accepts both shapes the backend produces: an object
// carrying a content field (optionally a version), or a bare JSON string.
func decodeRefineResponse(raw json.RawMessage) (refineResult, error) {
	var plain string
	if err := json.Unmarshal(raw, &plain); err == nil {
		return refineResult{Content: plain}, nil
	}

	var payload refineResponse
	if err := json.Unmarshal(raw, &payload); err != nil {
		return refineResult{}, fmt.Errorf("decode refine response: %w", err)
	}

	result := refineResult{Content: payload.Content}
	if payload.Version != nil {
		result.Version = *payload.Version
		result.HasVersion = true
	}
	return result, nil
}

func boolPtr(v bool) *bool {
	return &v
}
