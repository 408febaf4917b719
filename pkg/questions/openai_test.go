package questions

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestGenerator points the client at a stub completions endpoint that
// always replies with the given message content.
func newTestGenerator(t *testing.T, status int, content string) *OpenAIGenerator {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		if status != http.StatusOK {
			w.Write([]byte(`{"error":{"message":"boom","type":"server_error"}}`))
			return
		}
		body := `{"choices":[{"message":{"role":"assistant","content":` + content + `}}]}`
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)

	cfg := openai.DefaultConfig("test-key")
	cfg.BaseURL = srv.URL
	return &OpenAIGenerator{
		client: openai.NewClientWithConfig(cfg),
		model:  DefaultModel,
	}
}

func TestOpenAIGeneratorQuestions(t *testing.T) {
	t.Run("Should parse a JSON array reply", func(t *testing.T) {
		gen := newTestGenerator(t, http.StatusOK, `"[\"Q1\",\"Q2\",\"Q3\"]"`)
		qs, err := gen.Questions(context.Background(), "Go", 3)
		require.NoError(t, err)
		assert.Equal(t, []string{"Q1", "Q2", "Q3"}, qs)
	})

	t.Run("Should split a plain-text reply on newlines", func(t *testing.T) {
		gen := newTestGenerator(t, http.StatusOK, `"Q1\n\nQ2\n  Q3  "`)
		qs, err := gen.Questions(context.Background(), "Go", 3)
		require.NoError(t, err)
		assert.Equal(t, []string{"Q1", "Q2", "Q3"}, qs)
	})

	t.Run("Should error on an upstream failure", func(t *testing.T) {
		gen := newTestGenerator(t, http.StatusInternalServerError, "")
		_, err := gen.Questions(context.Background(), "Go", 3)
		assert.Error(t, err)
	})

	t.Run("Should error on empty content", func(t *testing.T) {
		gen := newTestGenerator(t, http.StatusOK, `"  "`)
		_, err := gen.Questions(context.Background(), "Go", 3)
		assert.Error(t, err)
	})
}

func TestParseReply(t *testing.T) {
	t.Run("Should truncate to five questions", func(t *testing.T) {
		qs := parseReply(`["1","2","3","4","5","6","7"]`)
		assert.Len(t, qs, 5)
	})

	t.Run("Should drop blank lines in plain text", func(t *testing.T) {
		qs := parseReply("Q1\n\n\nQ2\n")
		assert.Equal(t, []string{"Q1", "Q2"}, qs)
	})

	t.Run("Should return nothing for whitespace-only text", func(t *testing.T) {
		assert.Empty(t, parseReply("   \n  "))
	})
}
