package cmd

import (
	"log/slog"

	"github.com/shouni/go-nanobanana-kit/pkg/domain"

	"github.com/spf13/cobra"
)

// socialCmd は、SNS投稿向けの画像を生成するサブコマンドなのだ。
// プラットフォームに応じて縦横比とテンプレートが自動で切り替わるのだ。
var socialCmd = &cobra.Command{
	Use:   "social [投稿内容のテキスト]",
	Short: "SNS投稿向けの画像を生成して保存するのだ。",
	Long: `Instagram や Twitter などのプラットフォームに最適化した投稿画像を生成するのだ。
instagram/facebook はスクエア、twitter/linkedin/youtube は16:9、story/tiktok/reels は縦型になるのだ。`,
	Args: cobra.MinimumNArgs(1),
	RunE: socialCommand,
}

func init() {
	socialCmd.Flags().StringVarP(&opts.Platform, "platform", "p", "instagram", "配信先プラットフォーム（instagram, twitter, youtube, linkedin, story など）なのだ。")
	socialCmd.Flags().StringVarP(&opts.Style, "style", "s", "", "画像のスタイルなのだ。")
}

func socialCommand(cmd *cobra.Command, args []string) error {
	slog.Info("SNS投稿画像の生成を開始するのだ！", "platform", opts.Platform, "style", opts.Style)
	return runGenerate(cmd, args, domain.UseCaseSocial)
}
