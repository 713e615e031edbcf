package gemini

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1beta/models/gemini-2.0-flash:generateContent", r.URL.Path)
		assert.Equal(t, "secret", r.URL.Query().Get("key"))

		var body generateRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Len(t, body.Contents, 1)
		assert.Equal(t, "What is anemia?", body.Contents[0].Parts[0].Text)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"Anemia is a lack of red blood cells."}]}}]}`))
	}))
	defer srv.Close()

	p := NewGeminiProvider(srv.URL, "secret", "", time.Second)
	got, err := p.Generate(context.Background(), "What is anemia?")

	require.NoError(t, err)
	assert.Equal(t, "Anemia is a lack of red blood cells.", got)
}

func TestGenerateServerErrorIsNotRetried(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":{"code":500,"message":"internal","status":"INTERNAL"}}`))
	}))
	defer srv.Close()

	p := NewGeminiProvider(srv.URL, "k", "gemini-2.0-flash", time.Second)
	_, err := p.Generate(context.Background(), "q")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "internal")
	assert.Equal(t, int32(1), atomic.LoadInt32(&hits))
}

func TestGenerateMalformedBody(t *testing.T) {
	bodies := map[string]string{
		"no candidates": `{"candidates":[]}`,
		"no parts":      `{"candidates":[{"content":{"parts":[]}}]}`,
		"no text field": `{"candidates":[{"content":{"parts":[{"inlineData":{"mimeType":"image/png"}}]}}]}`,
		"not json":      `<html>oops</html>`,
	}

	for name, body := range bodies {
		t.Run(name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte(body))
			}))
			defer srv.Close()

			_, err := NewGeminiProvider(srv.URL, "k", "", time.Second).Generate(context.Background(), "q")
			assert.Error(t, err)
		})
	}
}

func TestGenerateReturnsEmptyTextVerbatim(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":""}]}}]}`))
	}))
	defer srv.Close()

	text, err := NewGeminiProvider(srv.URL, "k", "", time.Second).Generate(context.Background(), "q")
	require.NoError(t, err)
	assert.Equal(t, "", text)
}

func TestGenerateTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	_, err := NewGeminiProvider(srv.URL, "k", "", 50*time.Millisecond).Generate(context.Background(), "q")
	assert.Error(t, err)
}
