package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shouni/go-nanobanana-kit/internal/builder"
	"github.com/shouni/go-nanobanana-kit/internal/config"
	"github.com/shouni/go-nanobanana-kit/pkg/assets"
	"github.com/shouni/go-nanobanana-kit/pkg/domain"
	"github.com/shouni/go-nanobanana-kit/pkg/prompt"
	"github.com/shouni/go-nanobanana-kit/pkg/writer"

	"github.com/patrickmn/go-cache"
	"github.com/shouni/go-http-kit/httpkit"
	"github.com/shouni/go-remote-io/pkg/gcsfactory"
)

// Execute は1回の画像生成フローを最初から最後まで実行するのだ。
// リクエスト構築 → API呼び出し → 保存、の単一の同期フローなのだ。
func Execute(ctx context.Context, cfg *config.Config, useCase domain.UseCase, primaryText string) (*domain.GenerationResult, error) {
	appCtx, err := setupAppContext(ctx, cfg)
	if err != nil {
		return nil, err
	}

	req, err := buildRequest(useCase, primaryText, cfg.Options)
	if err != nil {
		return nil, fmt.Errorf("リクエストの構築に失敗したのだ: %w", err)
	}

	slog.InfoContext(ctx, "生成リクエストを構築したのだ",
		"use_case", req.UseCase,
		"aspect_ratio", req.AspectRatio,
		"style", req.Style,
		"count", req.Count)

	genRunner := builder.BuildGenerateRunner(appCtx)

	result, err := genRunner.Run(ctx, req, cfg.OutputDir, cfg.Options.OutputPath)
	if err != nil {
		return result, err
	}

	slog.InfoContext(ctx, "生成と保存が完了したのだ！", "paths", result.ImagePaths)
	return result, nil
}

// buildRequest は CLI オプションをビルダーの入力へ詰め替えるのだ。
// バリデーションはすべてビルダー側で行われるのだ。
func buildRequest(useCase domain.UseCase, primaryText string, opts config.GenerateOptions) (*domain.GenerationRequest, error) {
	fields := prompt.Fields{
		PrimaryText: primaryText,
		Subtitle:    opts.Subtitle,
		Expression:  opts.Expression,
		Platform:    opts.Platform,
	}

	overrides := prompt.Overrides{
		AspectRatio: opts.AspectRatio,
		Style:       opts.Style,
		Count:       opts.Count,
	}
	if opts.StyleRef != "" {
		overrides.ReferenceURIs = append(overrides.ReferenceURIs, opts.StyleRef)
	}
	if opts.IPImage != "" {
		overrides.ReferenceURIs = append(overrides.ReferenceURIs, opts.IPImage)
	}

	return prompt.NewBuilder().Build(useCase, fields, overrides)
}

// setupAppContext は、提供された設定と共有コンポーネントを使用して、アプリケーションコンテキストを初期化して返すのだ。
// 初期化中にエラーが発生した場合は、AppContext のポインタとエラーを返すのだ。
func setupAppContext(ctx context.Context, cfg *config.Config) (*builder.AppContext, error) {
	httpClient := httpkit.New(cfg.HTTPTimeout)

	imageClient, err := builder.InitializeImageClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create image client: %w", err)
	}

	gcsFactory, err := gcsfactory.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCS client factory: %w", err)
	}

	reader, err := gcsFactory.InputReader()
	if err != nil {
		return nil, err
	}
	outWriter, err := gcsFactory.OutputWriter()
	if err != nil {
		return nil, err
	}

	assetCache := cache.New(assets.DefaultCacheExpiration, assets.DefaultCacheExpiration)
	fetcher := assets.NewFetcher(httpClient, reader, assetCache, assets.DefaultCacheExpiration)

	appCtx := builder.NewAppContext(cfg, httpClient, imageClient, writer.New(outWriter), fetcher)
	return &appCtx, nil
}
