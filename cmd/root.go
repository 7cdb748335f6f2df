package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/shouni/go-nanobanana-kit/internal/config"
	"github.com/shouni/go-nanobanana-kit/internal/pipeline"
	"github.com/shouni/go-nanobanana-kit/pkg/domain"

	clibase "github.com/shouni/go-cli-base"
	"github.com/spf13/cobra"
)

// opts は全サブコマンド共通で使うフラグの受け皿なのだ。
var opts config.GenerateOptions

// addAppFlags は、アプリケーション全般に適用されるグローバルフラグを定義するのだ。
func addAppFlags(rootCmd *cobra.Command) {
	// --- 生成結果の出力設定 ---
	rootCmd.PersistentFlags().StringVarP(&opts.OutputDir, "output-dir", "d", config.DefaultOutputDir, "画像の保存先ディレクトリ（ローカル or gs://...）なのだ。")
	rootCmd.PersistentFlags().StringVarP(&opts.OutputPath, "output", "o", "", "先頭の1枚を追加でコピーする保存パスなのだ。")
	rootCmd.PersistentFlags().IntVarP(&opts.Count, "count", "n", config.DefaultCount, "生成する画像の枚数なのだ。")

	// --- AIモデル・挙動設定 ---
	rootCmd.PersistentFlags().StringVar(&opts.Model, "model", config.DefaultModel, "使用する Gemini 画像生成モデル名なのだ。")
	rootCmd.PersistentFlags().DurationVar(&opts.HTTPTimeout, "http-timeout", config.DefaultHTTPTimeout, "APIリクエストのタイムアウトなのだ。")
}

// preRunAppE は、コマンド実行前に環境変数などの必須チェックを行うのだ。
func preRunAppE(cmd *cobra.Command, args []string) error {
	// Gemini APIを利用するため、APIキーの存在チェックは欠かせないのだ！
	if os.Getenv(config.EnvAPIKey) == "" {
		return fmt.Errorf("エラー: 環境変数 %s が設定されていません。Gemini APIの利用には必須なのだ", config.EnvAPIKey)
	}

	return nil
}

// runGenerate は各サブコマンド共通の実行ロジック本体なのだ。
// 設定をロードしてフラグを重ね、pipeline.Execute で一連の処理をキックするのだ。
func runGenerate(cmd *cobra.Command, args []string, useCase domain.UseCase) error {
	ctx := cmd.Context()

	// 1. 環境変数から基本設定をロード
	cfg := config.LoadConfig()

	// 2. ユーザーが明示したフラグだけを環境変数より優先して反映するのだ
	if cmd.Flags().Changed("output-dir") {
		cfg.OutputDir = opts.OutputDir
	}
	if cmd.Flags().Changed("model") {
		cfg.Model = opts.Model
	}
	if cmd.Flags().Changed("http-timeout") {
		cfg.HTTPTimeout = opts.HTTPTimeout
	}
	cfg.Options = opts

	primaryText := strings.Join(args, " ")

	// 3. パイプライン実行
	result, err := pipeline.Execute(ctx, cfg, useCase, primaryText)
	if err != nil {
		return fmt.Errorf("画像生成に失敗したのだ: %w", err)
	}

	for _, path := range result.ImagePaths {
		fmt.Println(path)
	}
	return nil
}

// Execute は、アプリケーションのメインエントリポイントなのだ。
// main.go から呼び出されて、cobra のコマンドライン解析を開始するのだよ。
func Execute() {
	clibase.Execute(
		"nanobanana-kit",
		addAppFlags,
		preRunAppE,
		imageCmd,
		socialCmd,
		thumbnailCmd,
		coverCmd,
		iconCmd,
		bannerCmd,
	)
}
