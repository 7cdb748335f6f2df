package cmd

import (
	"log/slog"

	"github.com/shouni/go-nanobanana-kit/pkg/domain"

	"github.com/spf13/cobra"
)

// coverCmd は、ブログ記事向けのカバー画像を生成するサブコマンドなのだ。
// タイトル文字入りの16:9カバーで、参照画像でスタイルと人物を指定できるのだ。
var coverCmd = &cobra.Command{
	Use:   "cover [記事タイトル]",
	Short: "ブログ記事向けのカバー画像を生成して保存するのだ。",
	Long: `記事タイトルを大きく配した16:9のカバー画像を生成するのだ。
--ip-image で登場キャラクターの画像を、--style-ref でスタイルの参考画像を渡せるのだ。
表情タグは thinking / surprised / happy / chin-on-hand から選ぶのだ。`,
	Args: cobra.MinimumNArgs(1),
	RunE: coverCommand,
}

func init() {
	coverCmd.Flags().StringVarP(&opts.Subtitle, "subtitle", "s", "", "カバーに添える副題なのだ。")
	coverCmd.Flags().StringVarP(&opts.Expression, "expression", "e", "", "人物の表情タグ（thinking, surprised, happy, chin-on-hand）なのだ。")
	coverCmd.Flags().StringVar(&opts.IPImage, "ip-image", "", "登場キャラクターの参照画像（ローカル / http(s) / gs://）なのだ。")
	coverCmd.Flags().StringVar(&opts.StyleRef, "style-ref", "", "カバーのスタイル参考画像（ローカル / http(s) / gs://）なのだ。")
}

func coverCommand(cmd *cobra.Command, args []string) error {
	slog.Info("カバー画像の生成を開始するのだ！",
		"subtitle", opts.Subtitle, "expression", opts.Expression)
	return runGenerate(cmd, args, domain.UseCaseCover)
}
