package services

import (
	"context"
	"fmt"
	"sort"

	"github.com/sirupsen/logrus"

	"hireflow/tracker/internal/models"
)

const (
	docTypeResume = "resume"

	resumeChunkSize    = 1000
	resumeChunkOverlap = 150
)

// ResumeMatch is the best similarity any chunk of a resume reached.
type ResumeMatch struct {
	ResumeID string
	Score    float32
}

// ResumeIndex keeps resume embeddings in a vector store so the tracker can
// suggest which saved resume fits a job description best.
type ResumeIndex interface {
	IndexResume(ctx context.Context, resume *models.Resume) error
	Remove(ctx context.Context, resumeID string) error
	Recommend(ctx context.Context, jobDescription string, limit int) ([]ResumeMatch, error)
}

type resumeIndex struct {
	store    VectorStore
	embedder Embedder
	chunker  TextChunker
}

func NewResumeIndex(store VectorStore, embedder Embedder, chunker TextChunker) ResumeIndex {
	return &resumeIndex{
		store:    store,
		embedder: embedder,
		chunker:  chunker,
	}
}

// IndexResume replaces any existing chunks for the resume.
func (i *resumeIndex) IndexResume(ctx context.Context, resume *models.Resume) error {
	docID := resume.ID.String()
	if err := i.store.DeleteDocument(ctx, docID); err != nil {
		return err
	}

	chunks := i.chunker.ChunkText(resume.Content, resumeChunkSize, resumeChunkOverlap)
	for idx, chunk := range chunks {
		embedding, err := i.embedder.GenerateEmbedding(ctx, chunk)
		if err != nil {
			return fmt.Errorf("failed to embed chunk %d: %w", idx, err)
		}

		err = i.store.UpsertChunk(ctx, VectorChunk{
			DocID:     docID,
			DocType:   docTypeResume,
			Index:     idx,
			Text:      chunk,
			Embedding: embedding,
		})
		if err != nil {
			return fmt.Errorf("failed to store chunk %d: %w", idx, err)
		}
	}

	logrus.WithFields(logrus.Fields{
		"resume_id": docID,
		"chunks":    len(chunks),
	}).Info("📚 Resume indexed")
	return nil
}

func (i *resumeIndex) Remove(ctx context.Context, resumeID string) error {
	return i.store.DeleteDocument(ctx, resumeID)
}

// Recommend ranks resumes by their best-matching chunk.
func (i *resumeIndex) Recommend(ctx context.Context, jobDescription string, limit int) ([]ResumeMatch, error) {
	if limit <= 0 {
		limit = 3
	}

	embedding, err := i.embedder.GenerateEmbedding(ctx, jobDescription)
	if err != nil {
		return nil, fmt.Errorf("failed to embed job description: %w", err)
	}

	// Several chunks of one resume can match, so over-fetch before grouping.
	hits, err := i.store.SearchSimilar(ctx, embedding, docTypeResume, limit*5)
	if err != nil {
		return nil, err
	}

	best := make(map[string]float32)
	for _, hit := range hits {
		if hit.DocID == "" {
			continue
		}
		if score, ok := best[hit.DocID]; !ok || hit.Score > score {
			best[hit.DocID] = hit.Score
		}
	}

	matches := make([]ResumeMatch, 0, len(best))
	for id, score := range best {
		matches = append(matches, ResumeMatch{ResumeID: id, Score: score})
	}
	sort.Slice(matches, func(a, b int) bool {
		if matches[a].Score == matches[b].Score {
			return matches[a].ResumeID < matches[b].ResumeID
		}
		return matches[a].Score > matches[b].Score
	})

	if len(matches) > limit {
		matches = matches[:limit]
	}
	return matches, nil
}
