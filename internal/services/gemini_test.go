package services

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordedCall struct {
	path string
	body string
}

func newFakeGemini(t *testing.T, replyText string) (*httptest.Server, func() []recordedCall) {
	t.Helper()
	return newFakeGeminiBody(t, `{"candidates":[{"content":{"role":"model","parts":[{"text":`+
		jsonString(replyText)+`}]},"finishReason":"STOP"}]}`)
}

// newFakeGeminiBody serves body verbatim for every generateContent call.
func newFakeGeminiBody(t *testing.T, body string) (*httptest.Server, func() []recordedCall) {
	t.Helper()
	var (
		mu    sync.Mutex
		calls []recordedCall
	)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqBody, _ := io.ReadAll(r.Body)
		mu.Lock()
		calls = append(calls, recordedCall{path: r.URL.Path, body: string(reqBody)})
		mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(server.Close)

	return server, func() []recordedCall {
		mu.Lock()
		defer mu.Unlock()
		return append([]recordedCall(nil), calls...)
	}
}

func jsonString(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\n`)
	return `"` + r.Replace(s) + `"`
}

func TestNewGeminiService_RequiresKey(t *testing.T) {
	_, err := NewGeminiService(context.Background(), GeminiOptions{})
	assert.Error(t, err)
}

func TestGeminiService_GenerateStructured(t *testing.T) {
	server, calls := newFakeGemini(t, `{"atsScore": 80}`)

	svc, err := NewGeminiService(context.Background(), GeminiOptions{
		APIKey:  "test-key",
		Model:   "gemini-test",
		BaseURL: server.URL,
	})
	require.NoError(t, err)

	text, err := svc.GenerateStructured(context.Background(), StructuredRequest{
		Op:     OpATSCheck,
		Prompt: "check this resume",
		Schema: atsCheckSchema(),
	})
	require.NoError(t, err)
	assert.Equal(t, `{"atsScore": 80}`, text)

	got := calls()
	require.Len(t, got, 1)
	assert.Contains(t, got[0].path, "gemini-test:generateContent")
	assert.Contains(t, got[0].body, "check this resume")
	assert.Contains(t, got[0].body, "application/json")
	assert.NotContains(t, got[0].body, "googleSearch")
}

func TestGeminiService_GenerateStructuredWithSearch(t *testing.T) {
	server, calls := newFakeGemini(t, `{}`)

	svc, err := NewGeminiService(context.Background(), GeminiOptions{
		APIKey:  "test-key",
		BaseURL: server.URL,
	})
	require.NoError(t, err)

	_, err = svc.GenerateStructured(context.Background(), StructuredRequest{
		Op:         OpExtractJob,
		Prompt:     "extract https://example.com/job",
		Schema:     jobExtractionSchema(),
		WithSearch: true,
	})
	require.NoError(t, err)

	got := calls()
	require.Len(t, got, 1)
	assert.Contains(t, got[0].body, "googleSearch")
}

func TestGeminiService_EmptyTextIsError(t *testing.T) {
	server, _ := newFakeGemini(t, "")

	svc, err := NewGeminiService(context.Background(), GeminiOptions{
		APIKey:  "test-key",
		BaseURL: server.URL,
	})
	require.NoError(t, err)

	_, err = svc.GenerateStructured(context.Background(), StructuredRequest{Op: OpATSCheck, Prompt: "p"})
	assert.ErrorIs(t, err, ErrEmptyCompletion)
}

func TestAIAdapter_BlockedCompletionIsMalformed(t *testing.T) {
	for _, reason := range []string{"SAFETY", "RECITATION"} {
		t.Run(reason, func(t *testing.T) {
			server, _ := newFakeGeminiBody(t, `{"candidates":[{"finishReason":"`+reason+`"}]}`)

			svc, err := NewGeminiService(context.Background(), GeminiOptions{
				APIKey:  "test-key",
				BaseURL: server.URL,
			})
			require.NoError(t, err)

			result, err := NewAIAdapter(svc, time.Second).PerformATSCheck(context.Background(), "resume")
			assert.Nil(t, result)
			failure := requireFailure(t, err, FailureMalformed)
			assert.True(t, failure.Retryable())
			assert.Equal(t, "Couldn't understand the AI response. Please try again.", failure.UserMessage())
			assert.Contains(t, failure.Error(), reason)
		})
	}
}

func TestTruncateUTF8(t *testing.T) {
	assert.Equal(t, "short", truncateUTF8("short", 10))
	assert.Equal(t, "abc", truncateUTF8("abcdef", 3))

	// "é" is two bytes; cutting inside it backs off to the rune start.
	s := "caf" + "é" + "s"
	assert.Equal(t, "caf", truncateUTF8(s, 4))
	assert.Equal(t, "café", truncateUTF8(s, 5))

	long := strings.Repeat("日本", maxEmbeddingChars)
	cut := truncateUTF8(long, maxEmbeddingChars)
	assert.LessOrEqual(t, len(cut), maxEmbeddingChars)
	assert.True(t, utf8.ValidString(cut))
}
