package builder

import (
	"net/http"

	"github.com/shouni/go-nanobanana-kit/internal/config"
	"github.com/shouni/go-nanobanana-kit/internal/runner"
	"github.com/shouni/go-nanobanana-kit/pkg/gemini"
)

// InitializeImageClient は Gemini 画像生成クライアントを初期化します。
// APIキーが空の場合はここで弾かれ、リクエストは一切発行されません。
func InitializeImageClient(cfg *config.Config) (*gemini.Client, error) {
	return gemini.New(gemini.Options{
		APIKey:     cfg.APIKey,
		Model:      cfg.Model,
		HTTPClient: &http.Client{Timeout: cfg.HTTPTimeout},
	})
}

// BuildGenerateRunner は画像生成と保存を担当する Runner を構築します。
func BuildGenerateRunner(appCtx *AppContext) *runner.GenerateRunner {
	return runner.NewGenerateRunner(
		appCtx.ImageClient,
		appCtx.Writer,
		appCtx.Fetcher,
		config.DefaultRateInterval,
	)
}
