package runner

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shouni/go-nanobanana-kit/pkg/domain"
	"github.com/shouni/go-nanobanana-kit/pkg/gemini"

	"golang.org/x/time/rate"
)

// ImageGenerator は、画像生成AIへの呼び出しを抽象化するインターフェース。
type ImageGenerator interface {
	GenerateImage(ctx context.Context, req gemini.Request) (*gemini.Response, error)
}

// ResultWriter は、生成された画像の保存を抽象化するインターフェース。
type ResultWriter interface {
	Persist(ctx context.Context, images []domain.Image, baseName, outputDir string) ([]string, error)
	WriteTo(ctx context.Context, path string, img domain.Image) error
}

// ReferenceFetcher は、参照画像の取得を抽象化するインターフェース。
type ReferenceFetcher interface {
	Fetch(ctx context.Context, uri string) (domain.Image, error)
}

// GenerateRunner は、構築済みリクエストを実行して保存までを担う実体なのだ。
// API呼び出しは常に逐次で、count が複数のときはレートリミッターで間隔を空けるのだ。
type GenerateRunner struct {
	client       ImageGenerator
	writer       ResultWriter
	fetcher      ReferenceFetcher
	rateInterval time.Duration
}

// NewGenerateRunner は、GenerateRunnerの新しいインスタンスを生成して返す。
func NewGenerateRunner(client ImageGenerator, w ResultWriter, fetcher ReferenceFetcher, rateInterval time.Duration) *GenerateRunner {
	return &GenerateRunner{
		client:       client,
		writer:       w,
		fetcher:      fetcher,
		rateInterval: rateInterval,
	}
}

// Run はリクエストを count 回実行し、得られた画像をすべて保存するのだ。
// extraPath が空でなければ、先頭の1枚をその正確なパスへも書き込むのだ。
func (r *GenerateRunner) Run(ctx context.Context, req *domain.GenerationRequest, outputDir, extraPath string) (*domain.GenerationResult, error) {
	refs, err := r.prepareReferences(ctx, req.ReferenceURIs)
	if err != nil {
		return domain.NewFailureResult(err, req.Prompt), err
	}

	// 連続呼び出しの間隔を空けるのだ。Burst 1 なので最初の1回は待たずに通るのだ
	limiter := rate.NewLimiter(rate.Every(r.rateInterval), 1)

	var images []domain.Image
	for i := 0; i < req.Count; i++ {
		if err := limiter.Wait(ctx); err != nil {
			return domain.NewFailureResult(err, req.Prompt), err
		}

		slog.InfoContext(ctx, "画像を生成中なのだ...",
			"use_case", req.UseCase, "index", i+1, "count", req.Count, "aspect_ratio", req.AspectRatio)

		resp, err := r.client.GenerateImage(ctx, gemini.Request{
			Prompt:      req.Prompt,
			AspectRatio: string(req.AspectRatio),
			References:  refs,
		})
		if err != nil {
			slog.ErrorContext(ctx, "画像生成に失敗したのだ", "index", i+1, "error", err)
			return domain.NewFailureResult(err, req.Prompt), err
		}

		for _, img := range resp.Images {
			images = append(images, domain.Image{Data: img.Data, MimeType: img.MimeType})
		}
	}

	paths, err := r.writer.Persist(ctx, images, string(req.UseCase), outputDir)
	if err != nil {
		return domain.NewFailureResult(err, req.Prompt), err
	}

	if extraPath != "" && len(images) > 0 {
		if err := r.writer.WriteTo(ctx, extraPath, images[0]); err != nil {
			return domain.NewFailureResult(err, req.Prompt), err
		}
		slog.InfoContext(ctx, "指定パスにもコピーを保存したのだ", "path", extraPath)
	}

	slog.InfoContext(ctx, "すべての画像が正常に生成されたのだ", "total", len(paths))
	return domain.NewSuccessResult(paths, req.Prompt), nil
}

// prepareReferences は参照URIをインラインパーツへ変換するのだ。
// 取得は実行前に1度だけ行い、count 分の呼び出しで使い回すのだ。
func (r *GenerateRunner) prepareReferences(ctx context.Context, uris []string) ([]gemini.Part, error) {
	if len(uris) == 0 {
		return nil, nil
	}
	if r.fetcher == nil {
		return nil, fmt.Errorf("参照画像が指定されましたが、取得機構が設定されていないのだ")
	}

	refs := make([]gemini.Part, 0, len(uris))
	for i, uri := range uris {
		img, err := r.fetcher.Fetch(ctx, uri)
		if err != nil {
			return nil, err
		}
		refs = append(refs, gemini.Part{
			Text:     fmt.Sprintf("Reference image %d:", i+1),
			Data:     img.Data,
			MimeType: img.MimeType,
		})
		slog.InfoContext(ctx, "参照画像を準備したのだ", "uri", uri, "bytes", len(img.Data))
	}
	return refs, nil
}
