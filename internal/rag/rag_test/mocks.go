package rag_test

import (
	"context"

	"github.com/communitydesk/helpdesk/internal/domain/catalog"
	"github.com/communitydesk/helpdesk/internal/rag/vectorDB"
)

// MockVectorDB implements vectorDB.DataProcessor
type MockVectorDB struct {
	// Control fields to simulate different behaviors
	OnSearchServices    func(ctx context.Context, vector []float32, filter vectorDB.SearchFilter, topK int) ([]catalog.Retrieved, []string, error)
	OnGetCachedAnswer   func(ctx context.Context, queryVector []float32) (string, bool, error)
	OnSaveToCache       func(ctx context.Context, id string, vector []float32, answer string) error
	OnEnsureCollections func(ctx context.Context) error
	OnUpsertServices    func(ctx context.Context, services []catalog.Service, vectors [][]float32) error
	OnUpsertChunks      func(ctx context.Context, chunks []catalog.DocChunk, vectors [][]float32) error
}

func (m *MockVectorDB) SearchServices(ctx context.Context, v []float32, f vectorDB.SearchFilter, topK int) ([]catalog.Retrieved, []string, error) {
	if m.OnSearchServices != nil {
		return m.OnSearchServices(ctx, v, f, topK)
	}
	return []catalog.Retrieved{
		{Service: catalog.Service{ID: "svc_001", ServiceName: "Default Clinic", Category: "Healthcare", Description: "default"}, Similarity: 0.8},
		{Service: catalog.Service{ID: "svc_002", ServiceName: "Default Office", Category: "Civic Services", Description: "default"}, Similarity: 0.75},
		{Service: catalog.Service{ID: "svc_003", ServiceName: "Default Market", Category: "Shopping", Description: "default"}, Similarity: 0.72},
	}, nil, nil
}

func (m *MockVectorDB) GetCachedAnswer(ctx context.Context, v []float32) (string, bool, error) {
	if m.OnGetCachedAnswer != nil {
		return m.OnGetCachedAnswer(ctx, v)
	}
	return "", false, nil
}

func (m *MockVectorDB) SaveToCache(ctx context.Context, id string, v []float32, a string) error {
	if m.OnSaveToCache != nil {
		return m.OnSaveToCache(ctx, id, v, a)
	}
	return nil
}

func (m *MockVectorDB) EnsureCollections(ctx context.Context) error {
	if m.OnEnsureCollections != nil {
		return m.OnEnsureCollections(ctx)
	}
	return nil
}

func (m *MockVectorDB) UpsertServices(ctx context.Context, services []catalog.Service, vectors [][]float32) error {
	if m.OnUpsertServices != nil {
		return m.OnUpsertServices(ctx, services, vectors)
	}
	return nil
}

func (m *MockVectorDB) UpsertChunks(ctx context.Context, chunks []catalog.DocChunk, vectors [][]float32) error {
	if m.OnUpsertChunks != nil {
		return m.OnUpsertChunks(ctx, chunks, vectors)
	}
	return nil
}

func (m *MockVectorDB) Count(ctx context.Context) (uint64, error) { return 0, nil }

func (m *MockVectorDB) CountByCategory(ctx context.Context, category string) (uint64, error) {
	return 0, nil
}

func (m *MockVectorDB) ServicesByCategory(ctx context.Context, category string, limit int) ([]catalog.Service, error) {
	return nil, nil
}

type MockEmbedder struct {
	OnGetEmbedding   func(ctx context.Context, text string) ([]float32, error)
	OnBatchEmbedding func(ctx context.Context, chunks []string, isHuge bool) ([][]float32, error)
}

func (m *MockEmbedder) BatchEmbedding(ctx context.Context, chunks []string, isHuge bool) ([][]float32, error) {
	if m.OnBatchEmbedding != nil {
		return m.OnBatchEmbedding(ctx, chunks, isHuge)
	}
	// Return dummy vectors matching chunk size
	return make([][]float32, len(chunks)), nil
}

func (m *MockEmbedder) GetEmbedding(ctx context.Context, query string) ([]float32, error) {
	if m.OnGetEmbedding != nil {
		return m.OnGetEmbedding(ctx, query)
	}
	return []float32{0.1}, nil
}

// MockLLM implements llm.Provider
type MockLLM struct {
	OnGenerate func(ctx context.Context, systemInstruction string, userPrompt string) (string, error)
}

func (m *MockLLM) Generate(ctx context.Context, systemInstruction string, userPrompt string) (string, error) {
	if m.OnGenerate != nil {
		return m.OnGenerate(ctx, systemInstruction, userPrompt)
	}
	return "mocked llm response", nil
}

func (m *MockLLM) CheckAvailability(ctx context.Context) bool { return true }
