package chatgpt

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func TestMessageMarshalParts(t *testing.T) {
	payload, err := json.Marshal(Message{
		Role:  "user",
		Parts: []ContentPart{TextPart("describe"), ImagePart("https://example.com/a.jpg")},
	})
	require.NoError(t, err)

	doc := gjson.ParseBytes(payload)
	require.Equal(t, "user", doc.Get("role").String())
	require.Equal(t, "text", doc.Get("content.0.type").String())
	require.Equal(t, "describe", doc.Get("content.0.text").String())
	require.Equal(t, "image_url", doc.Get("content.1.type").String())
	require.Equal(t, "https://example.com/a.jpg", doc.Get("content.1.image_url.url").String())
}

func TestMessageMarshalPlain(t *testing.T) {
	payload, err := json.Marshal(Message{Role: "system", Content: "be terse"})
	require.NoError(t, err)
	require.JSONEq(t, `{"role":"system","content":"be terse"}`, string(payload))
}

func TestCreateChatCompletion(t *testing.T) {
	var body []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/chat/completions", r.URL.Path)
		require.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		body, _ = io.ReadAll(r.Body)
		_, _ = w.Write([]byte(`{
			"choices": [{"message": {"role": "assistant", "content": "{\"ok\":true}"}}],
			"usage": {"prompt_tokens": 120, "completion_tokens": 30, "total_tokens": 150}
		}`))
	}))
	defer srv.Close()

	client, err := NewClient("test-key", srv.URL, time.Second)
	require.NoError(t, err)

	resp, err := client.CreateChatCompletion(context.Background(), ChatCompletionRequest{
		Model:          "gpt-4o",
		Messages:       []Message{{Role: "user", Content: "hi"}},
		ResponseFormat: JSONObjectFormat,
	})
	require.NoError(t, err)
	require.Len(t, resp.Choices, 1)
	require.Equal(t, `{"ok":true}`, resp.Choices[0].Message.Content)
	require.Equal(t, 150, resp.Usage.TokenUsage().TotalTokens)
	require.Equal(t, "json_object", gjson.GetBytes(body, "response_format.type").String())
}

func TestCreateChatCompletionErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":"rate limited"}`))
	}))
	defer srv.Close()

	client, err := NewClient("k", srv.URL, time.Second)
	require.NoError(t, err)
	_, err = client.CreateChatCompletion(context.Background(), ChatCompletionRequest{Model: "m"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "status=429")
}

func TestNewClientRequiresKey(t *testing.T) {
	_, err := NewClient(" ", "", 0)
	require.Error(t, err)
}
