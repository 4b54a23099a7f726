package services

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChunkText_ShortTextIsOneChunk(t *testing.T) {
	chunks := NewTextChunker().ChunkText("Summary\n\nExperience\n\nSkills", 1000, 50)
	require.Len(t, chunks, 1)
	assert.Equal(t, "Summary\nExperience\nSkills", chunks[0])
}

func TestChunkText_RespectsLimit(t *testing.T) {
	section := strings.Repeat("Built React dashboards. ", 10)
	text := strings.Join([]string{section, section, section, section}, "\n\n")

	chunks := NewTextChunker().ChunkText(text, 300, 40)
	require.Greater(t, len(chunks), 1)
	for _, c := range chunks {
		assert.LessOrEqual(t, utf8.RuneCountInString(c), 300)
	}
}

func TestChunkText_Overlap(t *testing.T) {
	a := strings.Repeat("a", 80)
	b := strings.Repeat("b", 80)

	chunks := NewTextChunker().ChunkText(a+"\n\n"+b, 100, 10)
	require.Len(t, chunks, 2)
	assert.Equal(t, a, chunks[0])
	assert.True(t, strings.HasPrefix(chunks[1], strings.Repeat("a", 10)+"\n"+b))
}

func TestChunkText_HardWrapsLongLines(t *testing.T) {
	chunks := NewTextChunker().ChunkText(strings.Repeat("x", 250), 100, 0)
	require.Len(t, chunks, 3)
	assert.Equal(t, 100, utf8.RuneCountInString(chunks[0]))
	assert.Equal(t, 50, utf8.RuneCountInString(chunks[2]))
}

func TestChunkText_Empty(t *testing.T) {
	assert.Empty(t, NewTextChunker().ChunkText("  \n\n  ", 100, 10))
}
