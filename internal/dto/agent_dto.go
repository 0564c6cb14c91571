package dto

import (
	"time"

	"algodraft-be/pkg/rag/format"
)

type QueryRequest struct {
	Prompt    string `json:"prompt" validate:"required"`
	TopK      int    `json:"top_k" validate:"omitempty,min=1,max=20"`
	SessionId string `json:"session_id"`
}

type ChatRequest struct {
	Prompt    string `json:"prompt" validate:"required"`
	SessionId string `json:"session_id"`
	// WithRetrieval asks the pipeline to ground the reply in paper
	// context; off by default for plain conversation.
	WithRetrieval bool `json:"with_retrieval"`
}

type GenerateRequest struct {
	Prompt    string `json:"prompt" validate:"required"`
	Language  string `json:"language"`
	SessionId string `json:"session_id"`
}

type AnalyzeRequest struct {
	SelectedCode string `json:"selected_code" validate:"required"`
	Context      string `json:"context"`
}

// AgentResponse is the structured form of one completion. Answer keeps
// the raw text for clients that render it wholesale; Sections and
// CodeBlocks carry the parsed decomposition.
type AgentResponse struct {
	Answer          string             `json:"answer"`
	Sections        []string           `json:"sections"`
	CodeBlocks      []format.CodeBlock `json:"code_blocks"`
	InlineCode      []string           `json:"inline_code,omitempty"`
	Sources         []string           `json:"sources,omitempty"`
	HasCode         bool               `json:"has_code"`
	SessionId       string             `json:"session_id,omitempty"`
	ModelUsed       string             `json:"model_used"`
	ProviderUsed    string             `json:"provider_used"`
	ContextDegraded bool               `json:"context_degraded,omitempty"`
}

type AnalyzeResponse struct {
	AgentResponse
	Analysis string `json:"analysis"`
}

type SessionTurn struct {
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

type GetSessionResponse struct {
	SessionId string        `json:"session_id"`
	Messages  []SessionTurn `json:"messages"`
}

type DeleteSessionResponse struct {
	Status    string `json:"status"`
	SessionId string `json:"session_id"`
}
