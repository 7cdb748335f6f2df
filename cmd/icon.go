package cmd

import (
	"log/slog"

	"github.com/shouni/go-nanobanana-kit/pkg/domain"

	"github.com/spf13/cobra"
)

// iconCmd は、アプリアイコン向けのスクエア画像を生成するサブコマンドなのだ。
var iconCmd = &cobra.Command{
	Use:   "icon [アイコンのコンセプトのテキスト]",
	Short: "アプリアイコン向けの画像を生成して保存するのだ。",
	Long: `中央に単一のシンボルを据えた1:1のアプリアイコンを生成するのだ。
スタイルは modern / flat-design / 3d / minimal のいずれかに限定されるのだ。`,
	Args: cobra.MinimumNArgs(1),
	RunE: iconCommand,
}

func init() {
	iconCmd.Flags().StringVarP(&opts.Style, "style", "s", "", "アイコンのスタイル（modern, flat-design, 3d, minimal）なのだ。")
}

func iconCommand(cmd *cobra.Command, args []string) error {
	slog.Info("アイコン画像の生成を開始するのだ！", "style", opts.Style)
	return runGenerate(cmd, args, domain.UseCaseIcon)
}
