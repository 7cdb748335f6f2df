package cmd

import (
	"log/slog"

	"github.com/shouni/go-nanobanana-kit/pkg/domain"

	"github.com/spf13/cobra"
)

// bannerCmd は、Webサイトのヒーロー領域などに使う横長バナーを生成するサブコマンドなのだ。
var bannerCmd = &cobra.Command{
	Use:   "banner [バナーの内容のテキスト]",
	Short: "Webサイト向けのバナー画像を生成して保存するのだ。",
	Long: `見出しテキストを載せる余白を意識した横長のバナー画像を生成するのだ。
デフォルトは16:9だけど、--aspect-ratio で 21:9 などにも変えられるのだ。`,
	Args: cobra.MinimumNArgs(1),
	RunE: bannerCommand,
}

func init() {
	bannerCmd.Flags().StringVarP(&opts.Style, "style", "s", "", "バナーのスタイルなのだ。")
	bannerCmd.Flags().StringVarP(&opts.AspectRatio, "aspect-ratio", "a", "", "縦横比（デフォルトは 16:9）なのだ。")
}

func bannerCommand(cmd *cobra.Command, args []string) error {
	slog.Info("バナー画像の生成を開始するのだ！", "style", opts.Style, "aspect_ratio", opts.AspectRatio)
	return runGenerate(cmd, args, domain.UseCaseBanner)
}
