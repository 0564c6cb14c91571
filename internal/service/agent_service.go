package service

import (
	"context"
	"strings"
	"time"

	"algodraft-be/internal/constant"
	"algodraft-be/internal/dto"
	"algodraft-be/internal/entity"
	"algodraft-be/internal/pkg/apperror"
	"algodraft-be/internal/pkg/logger"
	"algodraft-be/internal/repository/memory"
	"algodraft-be/pkg/llm"
	"algodraft-be/pkg/rag/format"
	"algodraft-be/pkg/rag/prompt"
	"algodraft-be/pkg/retrieval"

	"github.com/google/uuid"
)

// historyWindow caps how many prior turns are replayed into a single
// model request. The session itself may hold more.
const historyWindow = 6

// chatRetrievalTopK is the lighter retrieval depth used for
// conversational grounding, as opposed to focused research queries.
const chatRetrievalTopK = 2

type IAgentService interface {
	Query(ctx context.Context, req dto.QueryRequest) (dto.AgentResponse, error)
	Chat(ctx context.Context, req dto.ChatRequest) (dto.AgentResponse, error)
	Generate(ctx context.Context, req dto.GenerateRequest) (dto.AgentResponse, error)
	Analyze(ctx context.Context, req dto.AnalyzeRequest) (dto.AnalyzeResponse, error)
	GetSessionHistory(sessionID string) dto.GetSessionResponse
	DeleteSession(sessionID string) dto.DeleteSessionResponse
}

type agentService struct {
	router         IProviderRouter
	sessions       *memory.SessionRepository
	retriever      retrieval.Retriever
	log            logger.ILogger
	requestTimeout time.Duration
}

func NewAgentService(
	router IProviderRouter,
	sessions *memory.SessionRepository,
	retriever retrieval.Retriever,
	log logger.ILogger,
	requestTimeout time.Duration,
) IAgentService {
	return &agentService{
		router:         router,
		sessions:       sessions,
		retriever:      retriever,
		log:            log,
		requestTimeout: requestTimeout,
	}
}

// Query answers a research question grounded in retrieved paper
// passages. Retrieval failure degrades to an uncontextualized answer
// rather than failing the request.
func (s *agentService) Query(ctx context.Context, req dto.QueryRequest) (dto.AgentResponse, error) {
	question, err := validatePrompt(req.Prompt)
	if err != nil {
		return dto.AgentResponse{}, err
	}

	topK := req.TopK
	if topK <= 0 {
		topK = constant.DefaultTopK
	}

	contexts, sources, degraded := s.retrieve(ctx, question, topK)

	messages := s.buildMessages(constant.SystemPromptResearchAssistant, req.SessionId,
		prompt.ForQuery(question, contexts))

	raw, selection, err := s.dispatch(ctx, messages, false)
	if err != nil {
		return dto.AgentResponse{}, err
	}

	s.remember(req.SessionId, question, raw)
	s.log.Info("agent", "query handled", map[string]interface{}{
		"provider": selection.Provider,
		"model":    selection.Model,
		"sources":  len(sources),
		"degraded": degraded,
	})
	return s.respond(raw, sources, req.SessionId, selection, degraded), nil
}

// Chat handles free-form conversation. Retrieval only runs when the
// caller opts in, and even then with a shallow depth.
func (s *agentService) Chat(ctx context.Context, req dto.ChatRequest) (dto.AgentResponse, error) {
	message, err := validatePrompt(req.Prompt)
	if err != nil {
		return dto.AgentResponse{}, err
	}

	sessionID := req.SessionId
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	var contexts, sources []string
	degraded := false
	if req.WithRetrieval {
		contexts, sources, degraded = s.retrieve(ctx, message, chatRetrievalTopK)
	}

	messages := s.buildMessages(constant.SystemPromptChat, sessionID,
		prompt.ForChat(message, contexts))

	raw, selection, err := s.dispatch(ctx, messages, false)
	if err != nil {
		return dto.AgentResponse{}, err
	}

	s.remember(sessionID, message, raw)
	s.log.Info("agent", "chat handled", map[string]interface{}{
		"provider": selection.Provider,
		"model":    selection.Model,
		"session":  sessionID,
	})
	return s.respond(raw, sources, sessionID, selection, degraded), nil
}

// Generate produces code in the requested language using the
// code-specialized model where one is configured.
func (s *agentService) Generate(ctx context.Context, req dto.GenerateRequest) (dto.AgentResponse, error) {
	description, err := validatePrompt(req.Prompt)
	if err != nil {
		return dto.AgentResponse{}, err
	}

	language := strings.TrimSpace(req.Language)
	if language == "" {
		language = "python"
	}

	messages := s.buildMessages(constant.SystemPromptCodeGenerator, req.SessionId,
		prompt.ForGenerate(description, language, nil))

	raw, selection, err := s.dispatch(ctx, messages, true)
	if err != nil {
		return dto.AgentResponse{}, err
	}

	s.remember(req.SessionId, description, raw)
	s.log.Info("agent", "generate handled", map[string]interface{}{
		"provider": selection.Provider,
		"model":    selection.Model,
		"language": language,
	})
	return s.respond(raw, nil, req.SessionId, selection, false), nil
}

// Analyze reviews a code selection. Caller-provided context wins;
// otherwise passages are retrieved using the code itself as the query.
func (s *agentService) Analyze(ctx context.Context, req dto.AnalyzeRequest) (dto.AnalyzeResponse, error) {
	code, err := validateCode(req.SelectedCode)
	if err != nil {
		return dto.AnalyzeResponse{}, err
	}

	var contexts, sources []string
	degraded := false
	if callerContext := sanitizeText(req.Context); callerContext != "" {
		contexts = []string{callerContext}
	} else {
		contexts, sources, degraded = s.retrieve(ctx, code, constant.DefaultTopK)
	}

	messages := []llm.Message{
		{Role: constant.ChatRoleSystem, Content: constant.SystemPromptCodeReviewer},
		{Role: constant.ChatRoleUser, Content: prompt.ForAnalyze(code, contexts)},
	}

	raw, selection, err := s.dispatch(ctx, messages, true)
	if err != nil {
		return dto.AnalyzeResponse{}, err
	}

	s.log.Info("agent", "analyze handled", map[string]interface{}{
		"provider": selection.Provider,
		"model":    selection.Model,
		"degraded": degraded,
	})
	return dto.AnalyzeResponse{
		AgentResponse: s.respond(raw, sources, "", selection, degraded),
		Analysis:      raw,
	}, nil
}

func (s *agentService) GetSessionHistory(sessionID string) dto.GetSessionResponse {
	turns := s.sessions.History(sessionID)
	messages := make([]dto.SessionTurn, 0, len(turns))
	for _, t := range turns {
		messages = append(messages, dto.SessionTurn{
			Role:      t.Role,
			Content:   t.Content,
			CreatedAt: t.CreatedAt,
		})
	}
	return dto.GetSessionResponse{SessionId: sessionID, Messages: messages}
}

// DeleteSession acknowledges success whether or not the session ever
// existed.
func (s *agentService) DeleteSession(sessionID string) dto.DeleteSessionResponse {
	s.sessions.Delete(sessionID)
	return dto.DeleteSessionResponse{Status: "ok", SessionId: sessionID}
}

// retrieve fetches grounding passages, degrading to an empty context on
// any retriever failure.
func (s *agentService) retrieve(ctx context.Context, query string, topK int) (contexts, sources []string, degraded bool) {
	passages, err := s.retriever.Search(ctx, query, topK)
	if err != nil {
		s.log.Warn("agent", "retrieval degraded, continuing without context", map[string]interface{}{
			"error": err.Error(),
		})
		return nil, nil, true
	}
	for _, p := range passages {
		contexts = append(contexts, p.Text)
		if p.SourceID != "" {
			sources = append(sources, p.SourceID)
		}
	}
	return contexts, sources, false
}

// buildMessages assembles system prompt, replayed session history and
// the new user message in chat order.
func (s *agentService) buildMessages(systemPrompt, sessionID, userMessage string) []llm.Message {
	messages := []llm.Message{{Role: constant.ChatRoleSystem, Content: systemPrompt}}
	if sessionID != "" {
		turns := s.sessions.History(sessionID)
		if len(turns) > historyWindow {
			turns = turns[len(turns)-historyWindow:]
		}
		for _, t := range turns {
			messages = append(messages, llm.Message{Role: t.Role, Content: t.Content})
		}
	}
	return append(messages, llm.Message{Role: constant.ChatRoleUser, Content: userMessage})
}

// dispatch routes to the configured backend and runs the completion
// under the request timeout. An empty completion is treated as a
// backend failure, never returned to the client.
func (s *agentService) dispatch(ctx context.Context, messages []llm.Message, forCode bool) (string, ProviderSelection, error) {
	provider, selection, err := s.router.Route(forCode)
	if err != nil {
		return "", ProviderSelection{}, err
	}

	cctx, cancel := context.WithTimeout(ctx, s.requestTimeout)
	defer cancel()

	raw, err := provider.Chat(cctx, messages)
	if err != nil {
		return "", selection, err
	}
	if strings.TrimSpace(raw) == "" {
		return "", selection, apperror.Newf(apperror.KindBackendRejected,
			"%s returned an empty completion", selection.Provider)
	}
	return raw, selection, nil
}

// remember records the exchange after a successful completion. Failed
// requests leave the session untouched.
func (s *agentService) remember(sessionID, userContent, assistantContent string) {
	if sessionID == "" {
		return
	}
	now := time.Now()
	s.sessions.AppendTurns(sessionID,
		entity.ChatTurn{Role: constant.ChatRoleUser, Content: userContent, CreatedAt: now},
		entity.ChatTurn{Role: constant.ChatRoleAssistant, Content: assistantContent, CreatedAt: now},
	)
}

func (s *agentService) respond(raw string, sources []string, sessionID string, selection ProviderSelection, degraded bool) dto.AgentResponse {
	structured := format.Parse(raw, sources)
	return dto.AgentResponse{
		Answer:          structured.Raw,
		Sections:        structured.Sections,
		CodeBlocks:      structured.CodeBlocks,
		InlineCode:      structured.InlineCode,
		Sources:         structured.Sources,
		HasCode:         structured.HasCode(),
		SessionId:       sessionID,
		ModelUsed:       selection.Model,
		ProviderUsed:    selection.Provider,
		ContextDegraded: degraded,
	}
}
