package service

import (
	"context"
	"errors"
	"sort"

	"docuchat-be/internal/entity"
	"docuchat-be/internal/repository/contract"
	"docuchat-be/internal/repository/specification"
	"docuchat-be/internal/repository/unitofwork"
	"docuchat-be/pkg/llm"

	"github.com/google/uuid"
)

// fakeStore is shared in-memory state behind the fake repositories. The unit
// of work snapshots row counts on Begin so Rollback can discard appended rows.
type fakeStore struct {
	documents []*entity.Document
	chunks    []*entity.DocumentChunk
	mappings  []*entity.ChunkMapping
	sessions  []*entity.ChatSession
	messages  []*entity.ChatMessage

	sessionTouches int
}

type fakeUnitOfWork struct {
	store *fakeStore

	inTx     bool
	baseline [5]int
	beginErr error

	docCreateErr     error
	chunkCreateErr   error
	mappingCreateErr error
}

func newFakeUnitOfWork() *fakeUnitOfWork {
	return &fakeUnitOfWork{store: &fakeStore{}}
}

func (u *fakeUnitOfWork) Begin(_ context.Context) error {
	if u.beginErr != nil {
		return u.beginErr
	}
	u.inTx = true
	u.baseline = [5]int{
		len(u.store.documents),
		len(u.store.chunks),
		len(u.store.mappings),
		len(u.store.sessions),
		len(u.store.messages),
	}
	return nil
}

func (u *fakeUnitOfWork) Commit() error {
	u.inTx = false
	return nil
}

func (u *fakeUnitOfWork) Rollback() error {
	if u.inTx {
		u.store.documents = u.store.documents[:u.baseline[0]]
		u.store.chunks = u.store.chunks[:u.baseline[1]]
		u.store.mappings = u.store.mappings[:u.baseline[2]]
		u.store.sessions = u.store.sessions[:u.baseline[3]]
		u.store.messages = u.store.messages[:u.baseline[4]]
		u.inTx = false
	}
	return nil
}

func (u *fakeUnitOfWork) DocumentRepository() contract.DocumentRepository {
	return &fakeDocumentRepo{store: u.store, createErr: u.docCreateErr}
}

func (u *fakeUnitOfWork) DocumentChunkRepository() contract.DocumentChunkRepository {
	return &fakeChunkRepo{store: u.store, createErr: u.chunkCreateErr}
}

func (u *fakeUnitOfWork) ChunkMappingRepository() contract.ChunkMappingRepository {
	return &fakeMappingRepo{store: u.store, createErr: u.mappingCreateErr}
}

func (u *fakeUnitOfWork) ChatSessionRepository() contract.ChatSessionRepository {
	return &fakeSessionRepo{store: u.store}
}

func (u *fakeUnitOfWork) ChatMessageRepository() contract.ChatMessageRepository {
	return &fakeMessageRepo{store: u.store}
}

type fakeUowFactory struct {
	uow *fakeUnitOfWork
}

func (f *fakeUowFactory) NewUnitOfWork(_ context.Context) unitofwork.UnitOfWork {
	return f.uow
}

type fakeDocumentRepo struct {
	store     *fakeStore
	createErr error
}

func (r *fakeDocumentRepo) Create(_ context.Context, document *entity.Document) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.store.documents = append(r.store.documents, document)
	return nil
}

func (r *fakeDocumentRepo) FindOne(_ context.Context, specs ...specification.Specification) (*entity.Document, error) {
	for _, doc := range r.store.documents {
		if matchDocument(doc, specs) {
			return doc, nil
		}
	}
	return nil, nil
}

func (r *fakeDocumentRepo) FindAll(_ context.Context, specs ...specification.Specification) ([]*entity.Document, error) {
	var out []*entity.Document
	for _, doc := range r.store.documents {
		if matchDocument(doc, specs) {
			out = append(out, doc)
		}
	}
	return out, nil
}

func (r *fakeDocumentRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	docs, _ := r.FindAll(ctx, specs...)
	return int64(len(docs)), nil
}

func matchDocument(doc *entity.Document, specs []specification.Specification) bool {
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.ByChecksum:
			if doc.Checksum != s.Checksum {
				return false
			}
		case specification.ByID:
			if doc.Id != s.ID {
				return false
			}
		}
	}
	return true
}

type fakeChunkRepo struct {
	store     *fakeStore
	createErr error
}

func (r *fakeChunkRepo) CreateAll(_ context.Context, chunks []*entity.DocumentChunk) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.store.chunks = append(r.store.chunks, chunks...)
	return nil
}

func (r *fakeChunkRepo) FindAll(_ context.Context, _ ...specification.Specification) ([]*entity.DocumentChunk, error) {
	return r.store.chunks, nil
}

func (r *fakeChunkRepo) Count(_ context.Context, _ ...specification.Specification) (int64, error) {
	return int64(len(r.store.chunks)), nil
}

type fakeMappingRepo struct {
	store     *fakeStore
	createErr error
}

func (r *fakeMappingRepo) CreateAll(_ context.Context, mappings []*entity.ChunkMapping) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.store.mappings = append(r.store.mappings, mappings...)
	return nil
}

func (r *fakeMappingRepo) FindAll(_ context.Context, _ ...specification.Specification) ([]*entity.ChunkMapping, error) {
	return r.store.mappings, nil
}

func (r *fakeMappingRepo) Count(_ context.Context, _ ...specification.Specification) (int64, error) {
	return int64(len(r.store.mappings)), nil
}

type fakeSessionRepo struct {
	store *fakeStore
}

func (r *fakeSessionRepo) Create(_ context.Context, session *entity.ChatSession) error {
	r.store.sessions = append(r.store.sessions, session)
	return nil
}

func (r *fakeSessionRepo) Update(_ context.Context, session *entity.ChatSession) error {
	for i, existing := range r.store.sessions {
		if existing.Id == session.Id {
			r.store.sessions[i] = session
			r.store.sessionTouches++
			return nil
		}
	}
	return errors.New("session not found")
}

func (r *fakeSessionRepo) FindOne(_ context.Context, specs ...specification.Specification) (*entity.ChatSession, error) {
	for _, session := range r.store.sessions {
		if matchSession(session, specs) {
			return session, nil
		}
	}
	return nil, nil
}

func (r *fakeSessionRepo) FindAll(_ context.Context, specs ...specification.Specification) ([]*entity.ChatSession, error) {
	var out []*entity.ChatSession
	for _, session := range r.store.sessions {
		if matchSession(session, specs) {
			out = append(out, session)
		}
	}
	return out, nil
}

func (r *fakeSessionRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	sessions, _ := r.FindAll(ctx, specs...)
	return int64(len(sessions)), nil
}

func matchSession(session *entity.ChatSession, specs []specification.Specification) bool {
	for _, spec := range specs {
		if s, ok := spec.(specification.ByID); ok && session.Id != s.ID {
			return false
		}
	}
	return true
}

type fakeMessageRepo struct {
	store *fakeStore
}

func (r *fakeMessageRepo) Create(_ context.Context, message *entity.ChatMessage) error {
	r.store.messages = append(r.store.messages, message)
	return nil
}

func (r *fakeMessageRepo) FindAll(_ context.Context, specs ...specification.Specification) ([]*entity.ChatMessage, error) {
	var out []*entity.ChatMessage
	for _, message := range r.store.messages {
		if matchMessage(message, specs) {
			out = append(out, message)
		}
	}
	for _, spec := range specs {
		if s, ok := spec.(specification.OrderBy); ok && s.Field == "created_at" {
			sort.SliceStable(out, func(i, j int) bool {
				if s.Desc {
					return out[i].CreatedAt.After(out[j].CreatedAt)
				}
				return out[i].CreatedAt.Before(out[j].CreatedAt)
			})
		}
	}
	return out, nil
}

func (r *fakeMessageRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	messages, _ := r.FindAll(ctx, specs...)
	return int64(len(messages)), nil
}

func matchMessage(message *entity.ChatMessage, specs []specification.Specification) bool {
	for _, spec := range specs {
		if s, ok := spec.(specification.ByChatSessionID); ok && message.ChatSessionId != s.ChatSessionID {
			return false
		}
	}
	return true
}

// fakeVectorStore records calls and can be primed with search results or
// failures.
type fakeVectorStore struct {
	upserted     [][]string // texts per Upsert call
	upsertedIds  []string
	deleted      []string
	searchResult []entity.ContextEntry
	searchCalls  int

	upsertErr error
	searchErr error
}

func (s *fakeVectorStore) EnsureCollection(_ context.Context, _ int) error { return nil }

func (s *fakeVectorStore) Upsert(_ context.Context, texts []string, _ [][]float32, _ []map[string]interface{}) ([]string, error) {
	if s.upsertErr != nil {
		return nil, s.upsertErr
	}
	ids := make([]string, len(texts))
	for i := range texts {
		ids[i] = uuid.NewString()
	}
	s.upserted = append(s.upserted, texts)
	s.upsertedIds = append(s.upsertedIds, ids...)
	return ids, nil
}

func (s *fakeVectorStore) Search(_ context.Context, _ []float32, _ int) ([]entity.ContextEntry, error) {
	s.searchCalls++
	if s.searchErr != nil {
		return nil, s.searchErr
	}
	return s.searchResult, nil
}

func (s *fakeVectorStore) Delete(_ context.Context, ids []string) error {
	s.deleted = append(s.deleted, ids...)
	return nil
}

type fakeLLM struct {
	answer      string
	err         error
	lastPrompt  string
	lastOptions llm.Options
	calls       int
}

func (p *fakeLLM) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	prompt := ""
	if len(history) > 0 {
		prompt = history[len(history)-1].Content
	}
	return p.Generate(ctx, prompt, options...)
}

func (p *fakeLLM) Generate(_ context.Context, prompt string, options ...llm.Option) (string, error) {
	p.calls++
	p.lastPrompt = prompt
	for _, opt := range options {
		opt(&p.lastOptions)
	}
	if p.err != nil {
		return "", p.err
	}
	return p.answer, nil
}

type nopLogger struct{}

func (nopLogger) Debug(string, string, map[string]interface{}) {}
func (nopLogger) Info(string, string, map[string]interface{})  {}
func (nopLogger) Warn(string, string, map[string]interface{})  {}
func (nopLogger) Error(string, string, map[string]interface{}) {}
func (nopLogger) Sync() error                                  { return nil }

type failingEmbedder struct {
	err error
}

func (e *failingEmbedder) Dimension() int { return 384 }

func (e *failingEmbedder) Embed(context.Context, string) ([]float32, error) {
	return nil, e.err
}

func (e *failingEmbedder) EmbedBatch(context.Context, []string) ([][]float32, error) {
	return nil, e.err
}
