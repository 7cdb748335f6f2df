package cmd

import (
	"log/slog"

	"github.com/shouni/go-nanobanana-kit/pkg/domain"

	"github.com/spf13/cobra"
)

// thumbnailCmd は、動画サムネイル向けの16:9画像を生成するサブコマンドなのだ。
var thumbnailCmd = &cobra.Command{
	Use:   "thumbnail [動画タイトルや内容のテキスト]",
	Short: "YouTube向けのサムネイル画像を生成して保存するのだ。",
	Long: `高コントラストで目を引く16:9のサムネイル画像を生成するのだ。
小さな表示サイズでもひと目で内容が伝わる構図に寄せるのだ。`,
	Args: cobra.MinimumNArgs(1),
	RunE: thumbnailCommand,
}

func init() {
	thumbnailCmd.Flags().StringVarP(&opts.Style, "style", "s", "", "画像のスタイル（デフォルトは cinematic）なのだ。")
}

func thumbnailCommand(cmd *cobra.Command, args []string) error {
	slog.Info("サムネイル画像の生成を開始するのだ！", "style", opts.Style)
	return runGenerate(cmd, args, domain.UseCaseThumbnail)
}
