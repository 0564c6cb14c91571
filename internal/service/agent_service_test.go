package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"algodraft-be/internal/dto"
	"algodraft-be/internal/pkg/apperror"
	"algodraft-be/internal/repository/memory"
	"algodraft-be/pkg/llm"
	"algodraft-be/pkg/retrieval"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Debug(string, string, map[string]interface{}) {}
func (nopLogger) Info(string, string, map[string]interface{})  {}
func (nopLogger) Warn(string, string, map[string]interface{})  {}
func (nopLogger) Error(string, string, map[string]interface{}) {}
func (nopLogger) Sync() error                                  { return nil }

type fakeProvider struct {
	reply      string
	err        error
	gotHistory []llm.Message
	calls      int
}

func (p *fakeProvider) Chat(_ context.Context, history []llm.Message, _ ...llm.Option) (string, error) {
	p.calls++
	p.gotHistory = history
	return p.reply, p.err
}

func (p *fakeProvider) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	return p.Chat(ctx, []llm.Message{{Role: "user", Content: prompt}}, options...)
}

type fakeRouter struct {
	provider   *fakeProvider
	selection  ProviderSelection
	err        error
	gotForCode bool
}

func (r *fakeRouter) Route(forCode bool) (llm.LLMProvider, ProviderSelection, error) {
	r.gotForCode = forCode
	if r.err != nil {
		return nil, ProviderSelection{}, r.err
	}
	return r.provider, r.selection, nil
}

type fakeRetriever struct {
	passages []retrieval.Passage
	err      error
	gotQuery string
	gotTopK  int
	calls    int
}

func (r *fakeRetriever) Search(_ context.Context, query string, topK int) ([]retrieval.Passage, error) {
	r.calls++
	r.gotQuery = query
	r.gotTopK = topK
	return r.passages, r.err
}

type agentFixture struct {
	service   IAgentService
	router    *fakeRouter
	provider  *fakeProvider
	retriever *fakeRetriever
	sessions  *memory.SessionRepository
}

func newAgentFixture(reply string) *agentFixture {
	provider := &fakeProvider{reply: reply}
	router := &fakeRouter{
		provider:  provider,
		selection: ProviderSelection{Provider: "ollama", Model: "mistral"},
	}
	retriever := &fakeRetriever{}
	sessions := memory.NewSessionRepository(10, time.Hour, time.Hour)

	return &agentFixture{
		service:   NewAgentService(router, sessions, retriever, nopLogger{}, 30*time.Second),
		router:    router,
		provider:  provider,
		retriever: retriever,
		sessions:  sessions,
	}
}

func TestQueryGroundsAnswerInRetrievedPassages(t *testing.T) {
	f := newAgentFixture("Dijkstra relaxes edges greedily.")
	f.retriever.passages = []retrieval.Passage{
		{Text: "passage one", SourceID: "paper-a.pdf", Rank: 1},
		{Text: "passage two", SourceID: "paper-b.pdf", Rank: 2},
	}

	res, err := f.service.Query(context.Background(), dto.QueryRequest{Prompt: "How does Dijkstra work?"})
	require.NoError(t, err)

	assert.Equal(t, "Dijkstra relaxes edges greedily.", res.Answer)
	assert.Equal(t, []string{"paper-a.pdf", "paper-b.pdf"}, res.Sources)
	assert.Equal(t, "mistral", res.ModelUsed)
	assert.Equal(t, "ollama", res.ProviderUsed)
	assert.False(t, res.ContextDegraded)
	assert.Equal(t, 3, f.retriever.gotTopK)

	// Passages made it into the prompt, after the system message.
	require.NotEmpty(t, f.provider.gotHistory)
	userMsg := f.provider.gotHistory[len(f.provider.gotHistory)-1]
	assert.Equal(t, "user", userMsg.Role)
	assert.Contains(t, userMsg.Content, "passage one")
	assert.Contains(t, userMsg.Content, "How does Dijkstra work?")
	assert.Equal(t, "system", f.provider.gotHistory[0].Role)
}

func TestQueryHonorsCallerTopK(t *testing.T) {
	f := newAgentFixture("answer")

	_, err := f.service.Query(context.Background(), dto.QueryRequest{Prompt: "q", TopK: 7})
	require.NoError(t, err)
	assert.Equal(t, 7, f.retriever.gotTopK)
}

func TestQueryDegradesWhenRetrieverFails(t *testing.T) {
	f := newAgentFixture("best effort answer")
	f.retriever.err = errors.New("connection refused")

	res, err := f.service.Query(context.Background(), dto.QueryRequest{Prompt: "q"})
	require.NoError(t, err)

	assert.True(t, res.ContextDegraded)
	assert.Empty(t, res.Sources)
	assert.Equal(t, "best effort answer", res.Answer)
}

func TestQueryAppendsSessionOnlyOnSuccess(t *testing.T) {
	f := newAgentFixture("fine")

	_, err := f.service.Query(context.Background(), dto.QueryRequest{Prompt: "first", SessionId: "s1"})
	require.NoError(t, err)
	require.Len(t, f.sessions.History("s1"), 2)

	f.provider.err = apperror.New(apperror.KindBackendRejected, "model exploded")
	_, err = f.service.Query(context.Background(), dto.QueryRequest{Prompt: "second", SessionId: "s1"})
	require.Error(t, err)

	// The failed exchange leaves history untouched.
	assert.Len(t, f.sessions.History("s1"), 2)
}

func TestQueryPropagatesRouterFailure(t *testing.T) {
	f := newAgentFixture("unused")
	f.router.err = apperror.New(apperror.KindCredentialMissing, "no API key configured")

	_, err := f.service.Query(context.Background(), dto.QueryRequest{Prompt: "q"})
	require.Error(t, err)
	assert.Equal(t, apperror.KindCredentialMissing, apperror.KindOf(err))
	assert.Equal(t, 0, f.provider.calls)
}

func TestQueryRejectsOversizedPrompt(t *testing.T) {
	f := newAgentFixture("unused")

	_, err := f.service.Query(context.Background(), dto.QueryRequest{Prompt: strings.Repeat("a", 50001)})
	require.Error(t, err)
	assert.Equal(t, apperror.KindMalformedRequest, apperror.KindOf(err))

	_, err = f.service.Query(context.Background(), dto.QueryRequest{Prompt: "   \n\n  "})
	require.Error(t, err)
	assert.Equal(t, apperror.KindMalformedRequest, apperror.KindOf(err))
}

func TestQueryRejectsEmptyCompletion(t *testing.T) {
	f := newAgentFixture("   \n  ")

	_, err := f.service.Query(context.Background(), dto.QueryRequest{Prompt: "q", SessionId: "s1"})
	require.Error(t, err)
	assert.Equal(t, apperror.KindBackendRejected, apperror.KindOf(err))
	assert.Empty(t, f.sessions.History("s1"))
}

// stalledProvider simulates a backend that never answers before the
// pipeline's deadline expires.
type stalledProvider struct{}

func (stalledProvider) Chat(ctx context.Context, _ []llm.Message, _ ...llm.Option) (string, error) {
	<-ctx.Done()
	return "", llm.TransportError("ollama", ctx.Err())
}

func (p stalledProvider) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	return p.Chat(ctx, []llm.Message{{Role: "user", Content: prompt}}, options...)
}

type stalledRouter struct{}

func (stalledRouter) Route(bool) (llm.LLMProvider, ProviderSelection, error) {
	return stalledProvider{}, ProviderSelection{Provider: "ollama", Model: "mistral"}, nil
}

func TestQuerySurfacesBackendTimeout(t *testing.T) {
	sessions := memory.NewSessionRepository(10, time.Hour, time.Hour)
	svc := NewAgentService(stalledRouter{}, sessions, &fakeRetriever{}, nopLogger{}, 20*time.Millisecond)

	_, err := svc.Query(context.Background(), dto.QueryRequest{Prompt: "q", SessionId: "s1"})
	require.Error(t, err)
	assert.Equal(t, apperror.KindBackendTimeout, apperror.KindOf(err))

	// A timed-out exchange never reaches the session.
	assert.Empty(t, sessions.History("s1"))
}

func TestChatMintsSessionIdAndKeepsHistory(t *testing.T) {
	f := newAgentFixture("hello back")

	res, err := f.service.Chat(context.Background(), dto.ChatRequest{Prompt: "hello"})
	require.NoError(t, err)
	require.NotEmpty(t, res.SessionId)
	require.Len(t, f.sessions.History(res.SessionId), 2)

	// Second turn replays the stored exchange to the model.
	_, err = f.service.Chat(context.Background(), dto.ChatRequest{Prompt: "and again", SessionId: res.SessionId})
	require.NoError(t, err)

	require.Len(t, f.provider.gotHistory, 4) // system + prior user/assistant + new user
	assert.Equal(t, "hello", f.provider.gotHistory[1].Content)
	assert.Equal(t, "hello back", f.provider.gotHistory[2].Content)
	assert.Len(t, f.sessions.History(res.SessionId), 4)

	// Plain chat never touches the retriever.
	assert.Equal(t, 0, f.retriever.calls)
}

func TestChatWithRetrievalGroundsTheReply(t *testing.T) {
	f := newAgentFixture("grounded reply")
	f.retriever.passages = []retrieval.Passage{{Text: "ctx", SourceID: "paper.pdf"}}

	res, err := f.service.Chat(context.Background(), dto.ChatRequest{Prompt: "hi", WithRetrieval: true})
	require.NoError(t, err)

	assert.Equal(t, 2, f.retriever.gotTopK)
	assert.Equal(t, []string{"paper.pdf"}, res.Sources)
	userMsg := f.provider.gotHistory[len(f.provider.gotHistory)-1]
	assert.Contains(t, userMsg.Content, "ctx")
}

func TestGenerateUsesCodeModelAndLanguageDefault(t *testing.T) {
	f := newAgentFixture("```python\npass\n```")

	res, err := f.service.Generate(context.Background(), dto.GenerateRequest{Prompt: "binary search"})
	require.NoError(t, err)

	assert.True(t, f.router.gotForCode)
	assert.True(t, res.HasCode)
	userMsg := f.provider.gotHistory[len(f.provider.gotHistory)-1]
	assert.Contains(t, userMsg.Content, "Generate python code")

	_, err = f.service.Generate(context.Background(), dto.GenerateRequest{Prompt: "binary search", Language: "go"})
	require.NoError(t, err)
	userMsg = f.provider.gotHistory[len(f.provider.gotHistory)-1]
	assert.Contains(t, userMsg.Content, "Generate go code")
}

func TestAnalyzePrefersCallerContext(t *testing.T) {
	f := newAgentFixture("1. The loop never terminates.")

	res, err := f.service.Analyze(context.Background(), dto.AnalyzeRequest{
		SelectedCode: "while True: pass",
		Context:      "caller supplied context",
	})
	require.NoError(t, err)

	assert.Equal(t, "1. The loop never terminates.", res.Analysis)
	assert.True(t, f.router.gotForCode)
	assert.Equal(t, 0, f.retriever.calls)
	userMsg := f.provider.gotHistory[len(f.provider.gotHistory)-1]
	assert.Contains(t, userMsg.Content, "caller supplied context")
	assert.Contains(t, userMsg.Content, "while True: pass")
}

func TestAnalyzeRetrievesWhenNoContextGiven(t *testing.T) {
	f := newAgentFixture("looks fine")
	f.retriever.passages = []retrieval.Passage{{Text: "relevant", SourceID: "paper.pdf"}}

	res, err := f.service.Analyze(context.Background(), dto.AnalyzeRequest{SelectedCode: "def f(): pass"})
	require.NoError(t, err)

	assert.Equal(t, 1, f.retriever.calls)
	assert.Equal(t, []string{"paper.pdf"}, res.Sources)
}

func TestAnalyzeRejectsOversizedCode(t *testing.T) {
	f := newAgentFixture("unused")

	_, err := f.service.Analyze(context.Background(), dto.AnalyzeRequest{SelectedCode: strings.Repeat("x", 100001)})
	require.Error(t, err)
	assert.Equal(t, apperror.KindMalformedRequest, apperror.KindOf(err))
}

func TestSessionEndpoints(t *testing.T) {
	f := newAgentFixture("ok")

	_, err := f.service.Chat(context.Background(), dto.ChatRequest{Prompt: "hello", SessionId: "s9"})
	require.NoError(t, err)

	history := f.service.GetSessionHistory("s9")
	assert.Equal(t, "s9", history.SessionId)
	require.Len(t, history.Messages, 2)
	assert.Equal(t, "user", history.Messages[0].Role)

	res := f.service.DeleteSession("s9")
	assert.Equal(t, "ok", res.Status)
	assert.Empty(t, f.service.GetSessionHistory("s9").Messages)

	// Deleting again still acknowledges.
	assert.Equal(t, "ok", f.service.DeleteSession("s9").Status)
}
