// Package gemini は Gemini 画像生成 API (Nano Banana) の REST クライアントを提供します。
// HTTPステータスに応じたリトライ制御（429は指数バックオフ、5xxは1回だけ再試行、
// それ以外の4xxは即時失敗）を行うため、SDKではなく素のRESTで通信します。
package gemini

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
)

const (
	// DefaultBaseURL は Gemini API の既定エンドポイントです。
	DefaultBaseURL = "https://generativelanguage.googleapis.com"
	// DefaultModel は既定の画像生成モデルです。
	DefaultModel = "gemini-3-pro-image-preview"
	// DefaultTimeout は1リクエストあたりの既定タイムアウトです。
	DefaultTimeout = 60 * time.Second
	// DefaultMaxAttempts は 429 に対する最大試行回数です（初回を含む）。
	DefaultMaxAttempts = 3
	// DefaultInitialBackoff は指数バックオフの初期待機時間です。
	DefaultInitialBackoff = 1 * time.Second
)

var (
	// ErrMissingAPIKey は API キー未設定を表します。リクエストは一切発行されません。
	ErrMissingAPIKey = errors.New("gemini: APIキーが設定されていません")
	// ErrClient はリトライ対象外の 4xx 応答を表します。
	ErrClient = errors.New("gemini: クライアントエラー")
	// ErrServer は再試行しても解消しなかった 5xx / 429 / 通信エラーを表します。
	ErrServer = errors.New("gemini: サーバーエラー")
	// ErrNoImage は応答に画像データが含まれなかったことを表します。
	ErrNoImage = errors.New("gemini: 応答に画像データが含まれていません")
)

// statusError は非2xx応答のステータスと本文を保持する内部エラーです。
type statusError struct {
	code    int
	status  string
	message string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("gemini: API error status=%d (%s): %s", e.code, e.status, e.message)
}

// Options は Client の生成パラメータです。ゼロ値のフィールドには既定値が入ります。
type Options struct {
	APIKey         string
	BaseURL        string
	Model          string
	HTTPClient     *http.Client
	MaxAttempts    int
	InitialBackoff time.Duration
}

// Client は Gemini 画像生成 API と通信するクライアントです。
// 1つの Client を複数回の生成呼び出しで使い回せます。
type Client struct {
	apiKey         string
	baseURL        string
	model          string
	httpClient     *http.Client
	maxAttempts    int
	initialBackoff time.Duration
}

// New は Options から Client を構築します。APIキーが空なら ErrMissingAPIKey を返します。
func New(opts Options) (*Client, error) {
	if strings.TrimSpace(opts.APIKey) == "" {
		return nil, fmt.Errorf("%w: 環境変数 GOOGLE_API_KEY を設定してください", ErrMissingAPIKey)
	}
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.Model == "" {
		opts.Model = DefaultModel
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = &http.Client{Timeout: DefaultTimeout}
	}
	if opts.MaxAttempts <= 0 {
		opts.MaxAttempts = DefaultMaxAttempts
	}
	if opts.InitialBackoff <= 0 {
		opts.InitialBackoff = DefaultInitialBackoff
	}

	return &Client{
		apiKey:         opts.APIKey,
		baseURL:        strings.TrimSuffix(opts.BaseURL, "/"),
		model:          strings.TrimPrefix(opts.Model, "models/"),
		httpClient:     opts.HTTPClient,
		maxAttempts:    opts.MaxAttempts,
		initialBackoff: opts.InitialBackoff,
	}, nil
}

// Part はプロンプトに先行して添付する参照データです。
type Part struct {
	Text     string
	Data     []byte
	MimeType string
}

// Request は1回の画像生成呼び出しの入力です。
type Request struct {
	Prompt      string
	AspectRatio string
	References  []Part
}

// Image は生成された画像1枚分のバイト列とMIMEタイプです。
type Image struct {
	Data     []byte
	MimeType string
}

// Response は生成呼び出しの結果です。Text にはモデルのテキスト応答が入ることがあります。
type Response struct {
	Images []Image
	Text   string
}

// GenerateImage はプロンプトを送信し、生成された画像を返します。
//
// リトライ方針:
//   - 429: 初期 InitialBackoff・倍率2の指数バックオフで MaxAttempts 回まで試行します。
//   - 5xx と通信エラー: 1回だけ再試行します。
//   - その他の 4xx: 再試行せず即時に ErrClient で失敗します。
func (c *Client) GenerateImage(ctx context.Context, req Request) (*Response, error) {
	payload := c.buildPayload(req)

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = c.initialBackoff
	bo.Multiplier = 2
	bo.RandomizationFactor = 0
	bo.Reset()

	attempt := 0
	serverRetried := false
	for {
		attempt++
		resp, err := c.invoke(ctx, payload)
		if err == nil {
			return resp, nil
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		var se *statusError
		if !errors.As(err, &se) {
			if errors.Is(err, ErrNoImage) || errors.Is(err, ErrClient) {
				return nil, err
			}
			// 通信レベルの失敗は一時障害とみなし、1回だけ再試行するのだ
			if serverRetried {
				return nil, fmt.Errorf("%w: 通信に失敗しました: %v", ErrServer, err)
			}
			serverRetried = true
			slog.WarnContext(ctx, "通信エラーのため再試行するのだ", "error", err)
			if err := sleepContext(ctx, c.initialBackoff); err != nil {
				return nil, err
			}
			continue
		}

		switch {
		case se.code == http.StatusTooManyRequests:
			if attempt >= c.maxAttempts {
				return nil, fmt.Errorf("%w: レート制限が解除されませんでした (attempts=%d): %s",
					ErrServer, attempt, se.message)
			}
			wait := bo.NextBackOff()
			slog.WarnContext(ctx, "レート制限を受けたので待機するのだ",
				"attempt", attempt, "wait", wait)
			if err := sleepContext(ctx, wait); err != nil {
				return nil, err
			}
		case se.code >= 500:
			if serverRetried {
				return nil, fmt.Errorf("%w: status=%d: %s", ErrServer, se.code, se.message)
			}
			serverRetried = true
			slog.WarnContext(ctx, "サーバーエラーのため再試行するのだ",
				"status", se.code, "message", se.message)
			if err := sleepContext(ctx, c.initialBackoff); err != nil {
				return nil, err
			}
		default:
			return nil, fmt.Errorf("%w: status=%d: %s", ErrClient, se.code, se.message)
		}
	}
}

// buildPayload は Request をワイヤ形式に変換します。参照パーツはプロンプトより先に並べます。
func (c *Client) buildPayload(req Request) generateContentRequest {
	parts := make([]part, 0, len(req.References)*2+1)
	for _, ref := range req.References {
		if ref.Text != "" {
			parts = append(parts, part{Text: ref.Text})
		}
		if len(ref.Data) > 0 {
			parts = append(parts, part{InlineData: &inlineData{
				MimeType: ref.MimeType,
				Data:     base64.StdEncoding.EncodeToString(ref.Data),
			}})
		}
	}
	parts = append(parts, part{Text: req.Prompt})

	cfg := &generationConfig{
		ResponseModalities: []string{"TEXT", "IMAGE"},
	}
	if req.AspectRatio != "" {
		cfg.ImageConfig = &imageConfig{AspectRatio: req.AspectRatio}
	}

	return generateContentRequest{
		Contents:         []content{{Role: "user", Parts: parts}},
		GenerationConfig: cfg,
	}
}

// invoke は1回だけ API を呼び出します。非2xxは *statusError として返します。
func (c *Client) invoke(ctx context.Context, payload generateContentRequest) (*Response, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("gemini: リクエストのエンコードに失敗しました: %w", err)
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent", c.baseURL, c.model)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("gemini: リクエストの構築に失敗しました: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-goog-api-key", c.apiKey)

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("gemini: リクエストの送信に失敗しました: %w", err)
	}
	defer httpResp.Body.Close()

	data, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("gemini: 応答の読み取りに失敗しました: %w", err)
	}

	if httpResp.StatusCode < 200 || httpResp.StatusCode >= 300 {
		se := &statusError{code: httpResp.StatusCode, message: strings.TrimSpace(string(data))}
		var apiErr errorResponse
		if json.Unmarshal(data, &apiErr) == nil && apiErr.Error.Message != "" {
			se.status = apiErr.Error.Status
			se.message = apiErr.Error.Message
		}
		return nil, se
	}

	var parsed generateContentResponse
	if err := json.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("gemini: 応答のデコードに失敗しました: %w", err)
	}
	return toResponse(parsed)
}

// toResponse は候補のパーツから画像とテキストを取り出します。
func toResponse(parsed generateContentResponse) (*Response, error) {
	resp := &Response{}
	for _, cand := range parsed.Candidates {
		for _, p := range cand.Content.Parts {
			if p.InlineData != nil && p.InlineData.Data != "" {
				raw, err := base64.StdEncoding.DecodeString(p.InlineData.Data)
				if err != nil {
					return nil, fmt.Errorf("gemini: 画像データのデコードに失敗しました: %w", err)
				}
				mime := p.InlineData.MimeType
				if mime == "" {
					mime = "image/png"
				}
				resp.Images = append(resp.Images, Image{Data: raw, MimeType: mime})
				continue
			}
			if p.Text != "" && resp.Text == "" {
				resp.Text = p.Text
			}
		}
	}
	if len(resp.Images) == 0 {
		if resp.Text != "" {
			return nil, fmt.Errorf("%w: モデル応答: %s", ErrNoImage, resp.Text)
		}
		return nil, ErrNoImage
	}
	return resp, nil
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
