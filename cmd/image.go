package cmd

import (
	"log/slog"

	"github.com/shouni/go-nanobanana-kit/pkg/domain"

	"github.com/spf13/cobra"
)

// imageCmd は、自由なテキストから汎用の画像を生成するサブコマンドなのだ。
var imageCmd = &cobra.Command{
	Use:   "image [生成したい内容のテキスト]",
	Short: "テキストから汎用の画像を生成して保存するのだ。",
	Long: `与えられたテキストをそのままプロンプトの中心に据えて、汎用の画像を生成するのだ。
縦横比やスタイルはフラグで自由に指定できるのだ。`,
	Args: cobra.MinimumNArgs(1),
	RunE: imageCommand,
}

// init は、image コマンドに必要なフラグを定義するための初期化関数なのだ。
func init() {
	imageCmd.Flags().StringVarP(&opts.AspectRatio, "aspect-ratio", "a", "", "縦横比（1:1, 16:9, 9:16, 4:3, 3:4, 21:9）なのだ。")
	imageCmd.Flags().StringVarP(&opts.Style, "style", "s", "", "画像のスタイル（modern, cinematic, anime など）なのだ。")
}

func imageCommand(cmd *cobra.Command, args []string) error {
	slog.Info("汎用画像の生成を開始するのだ！", "aspect_ratio", opts.AspectRatio, "style", opts.Style)
	return runGenerate(cmd, args, domain.UseCaseImage)
}
