package builder

import (
	"github.com/shouni/go-nanobanana-kit/internal/config"
	"github.com/shouni/go-nanobanana-kit/pkg/assets"
	"github.com/shouni/go-nanobanana-kit/pkg/gemini"
	"github.com/shouni/go-nanobanana-kit/pkg/writer"

	"github.com/shouni/go-http-kit/httpkit"
)

// AppContext は、アプリケーション実行に必要な共通コンテキストを保持する
// これを各Build関数に渡すことで、依存関係の注入を簡素化します。
type AppContext struct {
	Config      *config.Config          // Configは、環境変数から読み込まれたグローバルな設定です（APIキー、モデル名など）。
	Options     config.GenerateOptions  // Optionsは、コマンドラインから渡された実行時の設定です。
	Writer      *writer.Writer          // Writerは、生成された画像を保存するための出力先です。
	Fetcher     *assets.Fetcher         // Fetcherは、カバー用参照画像の取得窓口です。
	ImageClient *gemini.Client          // ImageClient はGemini画像生成APIとの通信に使うクライアント
	httpClient  httpkit.HTTPClient // httpClient は外部リソース取得に使う共通クライアント
}

// NewAppContext は AppContext の新しいインスタンスを生成する
func NewAppContext(
	cfg *config.Config,
	httpClient httpkit.HTTPClient,
	imageClient *gemini.Client,
	w *writer.Writer,
	fetcher *assets.Fetcher,
) AppContext {
	return AppContext{
		Config:      cfg,
		Options:     cfg.Options,
		ImageClient: imageClient,
		httpClient:  httpClient,
		Writer:      w,
		Fetcher:     fetcher,
	}
}
