package gemini

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testImagePNG は応答に埋め込むダミー画像データなのだ。
var testImagePNG = []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A, 0x00, 0x01}

func imageResponseBody(t *testing.T) []byte {
	t.Helper()
	body, err := json.Marshal(map[string]any{
		"candidates": []map[string]any{
			{
				"content": map[string]any{
					"parts": []map[string]any{
						{"text": "generated!"},
						{"inlineData": map[string]any{
							"mimeType": "image/png",
							"data":     base64.StdEncoding.EncodeToString(testImagePNG),
						}},
					},
				},
			},
		},
	})
	require.NoError(t, err)
	return body
}

func errorResponseBody(t *testing.T, code int, status, message string) []byte {
	t.Helper()
	body, err := json.Marshal(map[string]any{
		"error": map[string]any{"code": code, "status": status, "message": message},
	})
	require.NoError(t, err)
	return body
}

func newTestClient(t *testing.T, baseURL string) *Client {
	t.Helper()
	client, err := New(Options{
		APIKey:         "test-api-key",
		BaseURL:        baseURL,
		Model:          "test-model",
		InitialBackoff: time.Millisecond,
	})
	require.NoError(t, err)
	return client
}

func TestNew(t *testing.T) {
	t.Run("APIキーが空ならErrMissingAPIKeyになること", func(t *testing.T) {
		_, err := New(Options{})
		assert.ErrorIs(t, err, ErrMissingAPIKey)
	})

	t.Run("models/プレフィックスは剥がされること", func(t *testing.T) {
		client, err := New(Options{APIKey: "k", Model: "models/gemini-3-pro-image-preview"})
		require.NoError(t, err)
		assert.Equal(t, "gemini-3-pro-image-preview", client.model)
	})
}

func TestGenerateImageSuccess(t *testing.T) {
	var gotPath, gotKey string
	var gotBody generateContentRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("x-goog-api-key")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Header().Set("Content-Type", "application/json")
		w.Write(imageResponseBody(t))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	resp, err := client.GenerateImage(context.Background(), Request{
		Prompt:      "a lighthouse at dusk",
		AspectRatio: "16:9",
	})
	require.NoError(t, err)

	t.Run("画像バイト列が復元されること", func(t *testing.T) {
		require.Len(t, resp.Images, 1)
		assert.Equal(t, testImagePNG, resp.Images[0].Data)
		assert.Equal(t, "image/png", resp.Images[0].MimeType)
		assert.Equal(t, "generated!", resp.Text)
	})

	t.Run("エンドポイントと認証ヘッダーが正しいこと", func(t *testing.T) {
		assert.Equal(t, "/v1beta/models/test-model:generateContent", gotPath)
		assert.Equal(t, "test-api-key", gotKey)
	})

	t.Run("ペイロードにプロンプトと縦横比が載ること", func(t *testing.T) {
		require.Len(t, gotBody.Contents, 1)
		parts := gotBody.Contents[0].Parts
		require.NotEmpty(t, parts)
		assert.Equal(t, "a lighthouse at dusk", parts[len(parts)-1].Text)
		require.NotNil(t, gotBody.GenerationConfig)
		require.NotNil(t, gotBody.GenerationConfig.ImageConfig)
		assert.Equal(t, "16:9", gotBody.GenerationConfig.ImageConfig.AspectRatio)
		assert.Equal(t, []string{"TEXT", "IMAGE"}, gotBody.GenerationConfig.ResponseModalities)
	})
}

func TestGenerateImageReferences(t *testing.T) {
	var gotBody generateContentRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Write(imageResponseBody(t))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	_, err := client.GenerateImage(context.Background(), Request{
		Prompt: "cover",
		References: []Part{
			{Text: "Reference image 1:", Data: []byte{0x01, 0x02}, MimeType: "image/jpeg"},
		},
	})
	require.NoError(t, err)

	// 参照パーツ（ラベル + inlineData）がプロンプトより先に並ぶこと
	parts := gotBody.Contents[0].Parts
	require.Len(t, parts, 3)
	assert.Equal(t, "Reference image 1:", parts[0].Text)
	require.NotNil(t, parts[1].InlineData)
	assert.Equal(t, "image/jpeg", parts[1].InlineData.MimeType)
	assert.Equal(t, "cover", parts[2].Text)
}

func TestGenerateImageRateLimitRetry(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) <= 2 {
			w.WriteHeader(http.StatusTooManyRequests)
			w.Write(errorResponseBody(t, 429, "RESOURCE_EXHAUSTED", "quota exceeded"))
			return
		}
		w.Write(imageResponseBody(t))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	resp, err := client.GenerateImage(context.Background(), Request{Prompt: "x"})

	t.Run("429が続いても上限以内なら成功すること", func(t *testing.T) {
		require.NoError(t, err)
		require.Len(t, resp.Images, 1)
		assert.Equal(t, int32(3), calls.Load())
	})
}

func TestGenerateImageRateLimitExhausted(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write(errorResponseBody(t, 429, "RESOURCE_EXHAUSTED", "quota exceeded"))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	_, err := client.GenerateImage(context.Background(), Request{Prompt: "x"})

	t.Run("最大試行回数で打ち切られること", func(t *testing.T) {
		assert.ErrorIs(t, err, ErrServer)
		assert.Equal(t, int32(DefaultMaxAttempts), calls.Load())
	})
}

func TestGenerateImageClientError(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadRequest)
		w.Write(errorResponseBody(t, 400, "INVALID_ARGUMENT", "bad prompt"))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	_, err := client.GenerateImage(context.Background(), Request{Prompt: "x"})

	t.Run("4xxは再試行せず即時失敗すること", func(t *testing.T) {
		assert.ErrorIs(t, err, ErrClient)
		assert.Contains(t, err.Error(), "bad prompt")
		assert.Equal(t, int32(1), calls.Load())
	})
}

func TestGenerateImageServerErrorRetryOnce(t *testing.T) {
	t.Run("5xxは1回だけ再試行して成功できること", func(t *testing.T) {
		var calls atomic.Int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if calls.Add(1) == 1 {
				w.WriteHeader(http.StatusInternalServerError)
				fmt.Fprint(w, "oops")
				return
			}
			w.Write(imageResponseBody(t))
		}))
		defer server.Close()

		client := newTestClient(t, server.URL)
		resp, err := client.GenerateImage(context.Background(), Request{Prompt: "x"})
		require.NoError(t, err)
		require.Len(t, resp.Images, 1)
		assert.Equal(t, int32(2), calls.Load())
	})

	t.Run("5xxが続く場合は2回で打ち切ること", func(t *testing.T) {
		var calls atomic.Int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write(errorResponseBody(t, 503, "UNAVAILABLE", "overloaded"))
		}))
		defer server.Close()

		client := newTestClient(t, server.URL)
		_, err := client.GenerateImage(context.Background(), Request{Prompt: "x"})
		assert.ErrorIs(t, err, ErrServer)
		assert.Equal(t, int32(2), calls.Load())
	})
}

func TestGenerateImageNoImage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := json.Marshal(map[string]any{
			"candidates": []map[string]any{
				{"content": map[string]any{"parts": []map[string]any{
					{"text": "画像は生成できませんでした"},
				}}},
			},
		})
		require.NoError(t, err)
		w.Write(body)
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	_, err := client.GenerateImage(context.Background(), Request{Prompt: "x"})
	assert.ErrorIs(t, err, ErrNoImage)
}
