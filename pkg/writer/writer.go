// Package writer は生成画像の保存先解決と連番ファイル名の採番を担当します。
// 出力先はローカルディレクトリと gs:// の両方を受け付けます。
package writer

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/shouni/go-utils/urlpath"

	"github.com/shouni/go-nanobanana-kit/pkg/domain"
)

// ErrWrite は保存処理の失敗を表します。
var ErrWrite = errors.New("writer: 保存に失敗しました")

// OutputWriter は保存先への書き込みを抽象化するインターフェースです。
// remoteio.OutputWriter がそのまま満たします。
type OutputWriter interface {
	Write(ctx context.Context, path string, reader io.Reader, mimeType string) error
}

// Writer は画像バッファを `{用途}_{連番}.png` の形式で保存します。
// 既存ファイルと衝突しないように、ディレクトリ内の最大連番の次から採番します。
type Writer struct {
	out OutputWriter
}

// New は Writer を生成します。
func New(out OutputWriter) *Writer {
	return &Writer{out: out}
}

// Persist は画像群を outputDir に保存し、保存したパスの一覧を返します。
// ローカル出力の場合、ディレクトリは無ければ作成します（既にあっても成功します）。
func (w *Writer) Persist(ctx context.Context, images []domain.Image, baseName, outputDir string) ([]string, error) {
	next := 0
	if !isRemote(outputDir) {
		if err := os.MkdirAll(outputDir, 0o755); err != nil {
			return nil, fmt.Errorf("%w: 出力ディレクトリ '%s' を作成できません: %v", ErrWrite, outputDir, err)
		}
		var err error
		next, err = nextIndex(outputDir, baseName)
		if err != nil {
			return nil, err
		}
	}

	paths := make([]string, 0, len(images))
	for i, img := range images {
		name := fmt.Sprintf("%s_%d.png", baseName, next+i)
		path, err := urlpath.ResolvePath(outputDir, name)
		if err != nil {
			return nil, fmt.Errorf("%w: 保存パスを解決できません: %v", ErrWrite, err)
		}
		if err := w.out.Write(ctx, path, bytes.NewReader(img.Data), img.MimeType); err != nil {
			return nil, fmt.Errorf("%w: '%s' への書き込みに失敗: %v", ErrWrite, path, err)
		}
		slog.InfoContext(ctx, "画像を保存したのだ", "path", path, "bytes", len(img.Data))
		paths = append(paths, path)
	}
	return paths, nil
}

// WriteTo は1枚の画像を指定された正確なパスへ書き込みます。--output 用の追加コピーです。
func (w *Writer) WriteTo(ctx context.Context, path string, img domain.Image) error {
	if err := w.out.Write(ctx, path, bytes.NewReader(img.Data), img.MimeType); err != nil {
		return fmt.Errorf("%w: '%s' への書き込みに失敗: %v", ErrWrite, path, err)
	}
	return nil
}

// nextIndex は baseName_N.png 形式の既存ファイルを走査して次の連番を返します。
// 1つも無ければ 0 から始まります。
func nextIndex(dir, baseName string) (int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, fmt.Errorf("%w: 出力ディレクトリ '%s' を走査できません: %v", ErrWrite, dir, err)
	}

	re := indexedRegex(baseName)
	next := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		m := re.FindStringSubmatch(entry.Name())
		if m == nil {
			continue
		}
		n, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		if n+1 > next {
			next = n + 1
		}
	}
	return next, nil
}

// indexedRegex は baseName に対する連番ファイル名の正規表現を生成します。
// 例: "cover" -> ^cover_(\d+)\.png$
func indexedRegex(baseName string) *regexp.Regexp {
	return regexp.MustCompile(fmt.Sprintf(`^%s_(\d+)\.png$`, regexp.QuoteMeta(baseName)))
}

func isRemote(path string) bool {
	return strings.HasPrefix(path, "gs://")
}
