package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hireflow/tracker/internal/models"
)

type fakeVectorStore struct {
	chunks  []VectorChunk
	deleted []string
	hits    []SearchResult
	limit   int
	docType string
}

func (f *fakeVectorStore) InitCollection(ctx context.Context) error { return nil }

func (f *fakeVectorStore) UpsertChunk(ctx context.Context, chunk VectorChunk) error {
	f.chunks = append(f.chunks, chunk)
	return nil
}

func (f *fakeVectorStore) SearchSimilar(ctx context.Context, q []float32, docType string, limit int) ([]SearchResult, error) {
	f.docType = docType
	f.limit = limit
	return f.hits, nil
}

func (f *fakeVectorStore) DeleteDocument(ctx context.Context, docID string) error {
	f.deleted = append(f.deleted, docID)
	return nil
}

type fakeEmbedder struct {
	err   error
	texts []string
}

func (f *fakeEmbedder) GenerateEmbedding(ctx context.Context, text string) ([]float32, error) {
	f.texts = append(f.texts, text)
	if f.err != nil {
		return nil, f.err
	}
	return []float32{float32(len(text)), 1}, nil
}

func TestResumeIndex_IndexResume(t *testing.T) {
	store := &fakeVectorStore{}
	embedder := &fakeEmbedder{}
	index := NewResumeIndex(store, embedder, NewTextChunker())

	resume := &models.Resume{
		ID:      uuid.New(),
		Content: strings.Repeat("Built Go services on Kubernetes.\n\n", 80),
	}
	require.NoError(t, index.IndexResume(context.Background(), resume))

	assert.Equal(t, []string{resume.ID.String()}, store.deleted)
	require.Greater(t, len(store.chunks), 1)
	for idx, chunk := range store.chunks {
		assert.Equal(t, resume.ID.String(), chunk.DocID)
		assert.Equal(t, docTypeResume, chunk.DocType)
		assert.Equal(t, idx, chunk.Index)
		assert.NotEmpty(t, chunk.Embedding)
	}
	assert.Len(t, embedder.texts, len(store.chunks))
}

func TestResumeIndex_IndexResumeEmbedFailure(t *testing.T) {
	store := &fakeVectorStore{}
	index := NewResumeIndex(store, &fakeEmbedder{err: errors.New("quota")}, NewTextChunker())

	err := index.IndexResume(context.Background(), &models.Resume{ID: uuid.New(), Content: "Go developer"})
	assert.ErrorContains(t, err, "quota")
	assert.Empty(t, store.chunks)
}

func TestResumeIndex_RecommendGroupsByResume(t *testing.T) {
	store := &fakeVectorStore{hits: []SearchResult{
		{DocID: "a", Score: 0.61},
		{DocID: "b", Score: 0.83},
		{DocID: "a", Score: 0.90},
		{DocID: "c", Score: 0.40},
		{DocID: "", Score: 0.99},
	}}
	index := NewResumeIndex(store, &fakeEmbedder{}, NewTextChunker())

	matches, err := index.Recommend(context.Background(), "Senior Go engineer", 2)
	require.NoError(t, err)

	assert.Equal(t, []ResumeMatch{
		{ResumeID: "a", Score: 0.90},
		{ResumeID: "b", Score: 0.83},
	}, matches)
	assert.Equal(t, docTypeResume, store.docType)
	assert.Equal(t, 10, store.limit)
}

func TestResumeIndex_RecommendDefaultLimit(t *testing.T) {
	store := &fakeVectorStore{}
	index := NewResumeIndex(store, &fakeEmbedder{}, NewTextChunker())

	matches, err := index.Recommend(context.Background(), "jd", 0)
	require.NoError(t, err)
	assert.Empty(t, matches)
	assert.Equal(t, 15, store.limit)
}

func TestResumeIndex_Remove(t *testing.T) {
	store := &fakeVectorStore{}
	index := NewResumeIndex(store, &fakeEmbedder{}, NewTextChunker())

	require.NoError(t, index.Remove(context.Background(), "r-1"))
	assert.Equal(t, []string{"r-1"}, store.deleted)
}
