package config

import (
	"strconv"
	"time"

	"github.com/shouni/go-utils/envutil"
)

// 環境変数のキーなのだ
const (
	EnvAPIKey    = "GOOGLE_API_KEY"
	EnvOutputDir = "NANOBANANA_OUTPUT_DIR"
	EnvModel     = "NANOBANANA_MODEL"
	EnvTimeout   = "NANOBANANA_TIMEOUT"
)

// デフォルト値の定義なのだ
const (
	DefaultModel        = "gemini-3-pro-image-preview"
	DefaultOutputDir    = "./nanobanana-output"
	DefaultHTTPTimeout  = 60 * time.Second
	DefaultRateInterval = 10 * time.Second
	DefaultCount        = 1
)

// Config はアプリケーション全体の環境設定を保持する構造体なのだ。
// グローバル変数には置かず、必要な層へ明示的に渡して使うのだ。
type Config struct {
	APIKey      string
	Model       string
	OutputDir   string
	HTTPTimeout time.Duration

	Options GenerateOptions
}

// LoadConfig は環境変数から設定を読み込み、構造体を返すのだ！
func LoadConfig() *Config {
	return &Config{
		APIKey:      envutil.GetEnv(EnvAPIKey, ""),
		Model:       envutil.GetEnv(EnvModel, DefaultModel),
		OutputDir:   envutil.GetEnv(EnvOutputDir, DefaultOutputDir),
		HTTPTimeout: timeoutFromEnv(),
	}
}

// timeoutFromEnv は NANOBANANA_TIMEOUT（秒数）を解釈するのだ。
// 解釈できない値はデフォルトに倒すのだ。
func timeoutFromEnv() time.Duration {
	raw := envutil.GetEnv(EnvTimeout, "")
	if raw == "" {
		return DefaultHTTPTimeout
	}
	secs, err := strconv.Atoi(raw)
	if err != nil || secs <= 0 {
		return DefaultHTTPTimeout
	}
	return time.Duration(secs) * time.Second
}

// GenerateOptions は CLI フラグから渡される実行時のパラメータなのだ。
type GenerateOptions struct {
	// プロンプト内容関連
	AspectRatio string // --aspect-ratio
	Style       string // --style
	Subtitle    string // --subtitle
	Expression  string // --expression
	Platform    string // --platform

	// カバー用の参照画像
	IPImage  string // --ip-image
	StyleRef string // --style-ref

	// 出力関連
	OutputDir  string // --output-dir
	OutputPath string // --output: 先頭の1枚をこの正確なパスにもコピーする
	Count      int    // --count

	// AI挙動設定
	Model string // --model

	// 実行制御
	HTTPTimeout time.Duration // --http-timeout
}
