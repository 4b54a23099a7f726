package services

import (
	"strings"
	"unicode/utf8"
)

type TextChunker interface {
	ChunkText(text string, maxChunkSize int, overlap int) []string
}

type textChunker struct{}

func NewTextChunker() TextChunker {
	return &textChunker{}
}

// ChunkText groups resume sections into chunks of at most maxChunkSize
// runes. Sections are split on blank lines; a section longer than the limit
// is split on line breaks and then hard-wrapped. The last overlap runes of a
// chunk are repeated at the start of the next one.
func (tc *textChunker) ChunkText(text string, maxChunkSize int, overlap int) []string {
	if maxChunkSize <= 0 {
		maxChunkSize = 1000
	}
	if overlap < 0 {
		overlap = 0
	}
	if overlap >= maxChunkSize {
		overlap = maxChunkSize / 4
	}

	var pieces []string
	for _, section := range strings.Split(text, "\n\n") {
		section = strings.TrimSpace(section)
		if section == "" {
			continue
		}
		if utf8.RuneCountInString(section) <= maxChunkSize {
			pieces = append(pieces, section)
			continue
		}
		for _, line := range strings.Split(section, "\n") {
			pieces = append(pieces, hardWrap(strings.TrimSpace(line), maxChunkSize)...)
		}
	}

	var chunks []string
	var current strings.Builder
	currentLen := 0

	flush := func() {
		if currentLen == 0 {
			return
		}
		chunk := current.String()
		chunks = append(chunks, chunk)
		current.Reset()
		currentLen = 0
		if tail := lastRunes(chunk, overlap); tail != "" {
			current.WriteString(tail)
			currentLen = utf8.RuneCountInString(tail)
		}
	}

	for _, piece := range pieces {
		if piece == "" {
			continue
		}
		pieceLen := utf8.RuneCountInString(piece)
		if currentLen > 0 && currentLen+1+pieceLen > maxChunkSize {
			flush()
			if currentLen+1+pieceLen > maxChunkSize {
				current.Reset()
				currentLen = 0
			}
		}
		if currentLen > 0 {
			current.WriteString("\n")
			currentLen++
		}
		current.WriteString(piece)
		currentLen += pieceLen
	}

	if currentLen > 0 {
		chunks = append(chunks, current.String())
	}

	return chunks
}

func hardWrap(line string, size int) []string {
	runes := []rune(line)
	var out []string
	for len(runes) > size {
		out = append(out, string(runes[:size]))
		runes = runes[size:]
	}
	if len(runes) > 0 {
		out = append(out, string(runes))
	}
	return out
}

func lastRunes(text string, n int) string {
	if n <= 0 {
		return ""
	}
	runes := []rune(text)
	if len(runes) <= n {
		return text
	}
	return string(runes[len(runes)-n:])
}
