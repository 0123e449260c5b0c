package service

import (
	"context"
	"time"

	"docuchat-be/internal/constant"
	"docuchat-be/internal/dto"
	"docuchat-be/internal/entity"
	"docuchat-be/internal/pkg/logger"
	"docuchat-be/internal/pkg/serverutils"
	"docuchat-be/internal/repository/specification"
	"docuchat-be/internal/repository/unitofwork"
	"docuchat-be/pkg/embedding"
	"docuchat-be/pkg/llm"
	"docuchat-be/pkg/rag/prompt"
	"docuchat-be/pkg/vectorstore"

	"github.com/google/uuid"
)

const (
	chatTemperature = 0.7
	chatMaxTokens   = 500
)

type IChatService interface {
	Chat(ctx context.Context, req *dto.ChatRequest) (*dto.ChatResponse, error)
	GetHistory(ctx context.Context, sessionId uuid.UUID) (*dto.ChatHistoryResponse, error)
}

type chatService struct {
	uowFactory  unitofwork.RepositoryFactory
	embedder    embedding.Provider
	vectorStore vectorstore.VectorStore
	llmProvider llm.LLMProvider
	log         logger.ILogger
	topK        int
	llmTimeout  time.Duration
}

func NewChatService(
	uowFactory unitofwork.RepositoryFactory,
	embedder embedding.Provider,
	vectorStore vectorstore.VectorStore,
	llmProvider llm.LLMProvider,
	log logger.ILogger,
	topK int,
	llmTimeout time.Duration,
) IChatService {
	if topK <= 0 {
		topK = 5
	}
	if llmTimeout <= 0 {
		llmTimeout = 60 * time.Second
	}
	return &chatService{
		uowFactory:  uowFactory,
		embedder:    embedder,
		vectorStore: vectorStore,
		llmProvider: llmProvider,
		log:         log,
		topK:        topK,
		llmTimeout:  llmTimeout,
	}
}

// Chat runs one conversational turn: resolve the session, gather context
// (retrieval or selected text), assemble the prompt with prior history,
// call the model and persist both sides of the exchange. Provider outages
// degrade to an apology answer that is still persisted, so the transcript
// never loses a turn.
func (s *chatService) Chat(ctx context.Context, req *dto.ChatRequest) (*dto.ChatResponse, error) {
	query := req.QueryText()
	if query == "" {
		return nil, serverutils.BadRequest("Query is required")
	}

	mode := req.Mode
	if mode == "" {
		mode = constant.ChatModeGlobal
	}
	if mode == constant.ChatModeSelectedText && req.SelectedText == "" {
		return nil, serverutils.BadRequest("selected_text is required for selected_text mode")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	session, err := s.resolveSession(ctx, uow, req, query, mode)
	if err != nil {
		return nil, err
	}

	contextEntries, retrievalFailed := s.acquireContext(ctx, query, mode, req.SelectedText)

	history, err := s.loadHistory(ctx, uow, session.Id)
	if err != nil {
		return nil, err
	}

	var answer string
	if retrievalFailed {
		answer = constant.FallbackApology
	} else {
		answer = s.generate(ctx, contextEntries, query, history)
	}

	if err := s.persistTurn(ctx, uow, session, query, answer, contextEntries); err != nil {
		return nil, err
	}

	return &dto.ChatResponse{
		Response:  answer,
		Context:   contextEntries,
		SessionId: session.Id.String(),
	}, nil
}

// resolveSession returns an existing session, or creates one. A client may
// supply its own session id ahead of the first turn; a well-formed unknown
// id is adopted as the new session's primary key so the client keeps a
// stable handle.
func (s *chatService) resolveSession(ctx context.Context, uow unitofwork.UnitOfWork, req *dto.ChatRequest, query, mode string) (*entity.ChatSession, error) {
	if req.SessionId != "" {
		sessionId, err := uuid.Parse(req.SessionId)
		if err != nil {
			return nil, serverutils.BadRequest("Invalid session ID format")
		}
		session, err := uow.ChatSessionRepository().FindOne(ctx, specification.ByID{ID: sessionId})
		if err != nil {
			return nil, err
		}
		if session != nil {
			return session, nil
		}
		return s.createSession(ctx, uow, sessionId, req.UserId, query, mode)
	}
	return s.createSession(ctx, uow, uuid.New(), req.UserId, query, mode)
}

func (s *chatService) createSession(ctx context.Context, uow unitofwork.UnitOfWork, id uuid.UUID, userId *int64, query, mode string) (*entity.ChatSession, error) {
	session := &entity.ChatSession{
		Id:     id,
		UserId: userId,
		Title:  sessionTitle(query, mode),
	}
	if err := uow.ChatSessionRepository().Create(ctx, session); err != nil {
		return nil, err
	}
	s.log.Info("chat_service", "Chat session created", map[string]interface{}{
		"session_id": session.Id.String(),
		"mode":       mode,
	})
	return session, nil
}

func sessionTitle(query, mode string) string {
	if mode == constant.ChatModeSelectedText {
		return "Focused: " + truncateRunes(query, constant.FocusedSessionTitleMaxLen) + "..."
	}
	return truncateRunes(query, constant.SessionTitleMaxLen)
}

func truncateRunes(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}

// acquireContext returns the context entries for this turn. In selected_text
// mode the user's selection is the sole context and retrieval is skipped
// entirely. A retrieval failure in global mode is recoverable: the turn
// proceeds to the apology answer instead of erroring out.
func (s *chatService) acquireContext(ctx context.Context, query, mode, selectedText string) ([]entity.ContextEntry, bool) {
	if mode == constant.ChatModeSelectedText {
		return []entity.ContextEntry{
			{
				Id:       constant.SelectedTextContextId,
				Text:     selectedText,
				Metadata: map[string]interface{}{"source": "user_selection"},
				Score:    1.0,
			},
		}, false
	}

	vector, err := s.embedder.Embed(ctx, query)
	if err != nil {
		s.log.Error("chat_service", "Query embedding failed", map[string]interface{}{"error": err.Error()})
		return nil, true
	}
	entries, err := s.vectorStore.Search(ctx, vector, s.topK)
	if err != nil {
		s.log.Error("chat_service", "Context retrieval failed", map[string]interface{}{"error": err.Error()})
		return nil, true
	}
	return entries, false
}

func (s *chatService) loadHistory(ctx context.Context, uow unitofwork.UnitOfWork, sessionId uuid.UUID) ([]llm.Message, error) {
	messages, err := uow.ChatMessageRepository().FindAll(ctx,
		specification.ByChatSessionID{ChatSessionID: sessionId},
		specification.OrderBy{Field: "created_at"},
	)
	if err != nil {
		return nil, err
	}
	history := make([]llm.Message, len(messages))
	for i, message := range messages {
		history[i] = llm.Message{Role: message.Role, Content: message.Content}
	}
	return history, nil
}

func (s *chatService) generate(ctx context.Context, contextEntries []entity.ContextEntry, query string, history []llm.Message) string {
	contextTexts := make([]string, len(contextEntries))
	for i, entry := range contextEntries {
		contextTexts[i] = entry.Text
	}

	builder := prompt.NewBuilder(contextTexts, query, history)

	llmCtx, cancel := context.WithTimeout(ctx, s.llmTimeout)
	defer cancel()

	answer, err := s.llmProvider.Generate(llmCtx, builder.Build(),
		llm.WithTemperature(chatTemperature),
		llm.WithMaxTokens(chatMaxTokens),
	)
	if err != nil {
		s.log.Error("chat_service", "LLM generation failed", map[string]interface{}{"error": err.Error()})
		return constant.FallbackApology
	}
	return answer
}

// persistTurn writes the user message followed by the assistant message,
// both tagged with the context entries this turn actually used. Timestamps
// are assigned here with a strict ordering so history replay never
// interleaves a turn.
func (s *chatService) persistTurn(ctx context.Context, uow unitofwork.UnitOfWork, session *entity.ChatSession, query, answer string, contextEntries []entity.ContextEntry) error {
	contextIds := make([]string, len(contextEntries))
	for i, entry := range contextEntries {
		contextIds[i] = entry.Id
	}

	now := time.Now().UTC()
	userMessage := &entity.ChatMessage{
		Id:            uuid.New(),
		ChatSessionId: session.Id,
		Role:          constant.ChatRoleUser,
		Content:       query,
		ContextUsed:   contextIds,
		CreatedAt:     now,
	}
	if err := uow.ChatMessageRepository().Create(ctx, userMessage); err != nil {
		return err
	}

	assistantMessage := &entity.ChatMessage{
		Id:            uuid.New(),
		ChatSessionId: session.Id,
		Role:          constant.ChatRoleAssistant,
		Content:       answer,
		ContextUsed:   contextIds,
		CreatedAt:     now.Add(time.Millisecond),
	}
	if err := uow.ChatMessageRepository().Create(ctx, assistantMessage); err != nil {
		return err
	}

	// Touch the session so recency ordering survives new turns. Losing the
	// touch is not worth losing the answer.
	if err := uow.ChatSessionRepository().Update(ctx, session); err != nil {
		s.log.Warn("chat_service", "Failed to touch chat session", map[string]interface{}{
			"session_id": session.Id.String(),
			"error":      err.Error(),
		})
	}
	return nil
}

// GetHistory returns a session's transcript oldest first. An unknown session
// yields an empty transcript rather than an error.
func (s *chatService) GetHistory(ctx context.Context, sessionId uuid.UUID) (*dto.ChatHistoryResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	messages, err := uow.ChatMessageRepository().FindAll(ctx,
		specification.ByChatSessionID{ChatSessionID: sessionId},
		specification.OrderBy{Field: "created_at"},
	)
	if err != nil {
		return nil, err
	}

	historyMessages := make([]dto.ChatHistoryMessage, len(messages))
	for i, message := range messages {
		historyMessages[i] = dto.ChatHistoryMessage{
			Role:      message.Role,
			Content:   message.Content,
			Timestamp: message.CreatedAt.Format(time.RFC3339),
		}
	}

	return &dto.ChatHistoryResponse{
		SessionId: sessionId.String(),
		Messages:  historyMessages,
	}, nil
}
