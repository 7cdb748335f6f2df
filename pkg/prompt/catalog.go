package prompt

import (
	_ "embed"

	"github.com/shouni/go-nanobanana-kit/pkg/domain"
)

//go:embed templates/image.md
var imageTemplate string

//go:embed templates/social_post.md
var socialPostTemplate string

//go:embed templates/story.md
var storyTemplate string

//go:embed templates/thumbnail.md
var thumbnailTemplate string

//go:embed templates/cover.md
var coverTemplate string

//go:embed templates/icon.md
var iconTemplate string

//go:embed templates/banner.md
var bannerTemplate string

// Preset は用途ごとのプロンプト素材一式なのだ。
// テンプレート本文、デフォルトのスタイルと縦横比、ネガティブ指示をまとめて持つのだ。
type Preset struct {
	UseCase       domain.UseCase
	Template      string
	DefaultStyle  string
	DefaultAspect domain.AspectRatio
	Negative      string
	AllowedStyles []string // nil なら任意のスタイルを受け付けるのだ
}

var presets = map[domain.UseCase]Preset{
	domain.UseCaseImage: {
		UseCase:       domain.UseCaseImage,
		Template:      imageTemplate,
		DefaultStyle:  "modern",
		DefaultAspect: domain.AspectSquare,
		Negative:      "low quality, blurry, distorted, watermark, amateur",
	},
	domain.UseCaseSocial: {
		UseCase:       domain.UseCaseSocial,
		Template:      socialPostTemplate,
		DefaultStyle:  "modern",
		DefaultAspect: domain.AspectSquare,
		Negative:      "boring, low quality, pixelated, dated aesthetic, muted colors",
	},
	domain.UseCaseThumbnail: {
		UseCase:       domain.UseCaseThumbnail,
		Template:      thumbnailTemplate,
		DefaultStyle:  "cinematic",
		DefaultAspect: domain.AspectLandscape16x9,
		Negative:      "boring, low contrast, unclear subject, muted colors, static pose, cluttered",
	},
	domain.UseCaseCover: {
		UseCase:       domain.UseCaseCover,
		Template:      coverTemplate,
		DefaultStyle:  "modern",
		DefaultAspect: domain.AspectLandscape16x9,
		Negative:      "cluttered, low contrast, illegible text, distorted characters",
	},
	domain.UseCaseIcon: {
		UseCase:       domain.UseCaseIcon,
		Template:      iconTemplate,
		DefaultStyle:  "modern",
		DefaultAspect: domain.AspectSquare,
		Negative:      "blurry, text, words, letters, typography, complex background, realistic photo, multiple objects, cluttered, low resolution, pixelated, busy design, 3D shadows, drop shadows, thin lines, intricate details",
		AllowedStyles: []string{"modern", "flat-design", "3d", "minimal"},
	},
	domain.UseCaseBanner: {
		UseCase:       domain.UseCaseBanner,
		Template:      bannerTemplate,
		DefaultStyle:  "modern",
		DefaultAspect: domain.AspectLandscape16x9,
		Negative:      "cluttered, centered subject blocking text space, low contrast, busy patterns",
	},
}

// storyPreset は縦型プラットフォーム（story/tiktok/reels）向けの social の変種なのだ。
var storyPreset = Preset{
	UseCase:       domain.UseCaseSocial,
	Template:      storyTemplate,
	DefaultStyle:  "modern",
	DefaultAspect: domain.AspectPortrait9x16,
	Negative:      "horizontal, desktop-oriented, important content at edges, static",
}

// GetPreset は、指定された用途に対応するプリセットを返すのだ。
// 未知の用途の場合は、サポート一覧つきの ErrUnknownUseCase を返すのだ。
func GetPreset(useCase domain.UseCase) (Preset, error) {
	preset, ok := presets[useCase]
	if !ok {
		_, err := domain.ParseUseCase(string(useCase))
		return Preset{}, err
	}
	return preset, nil
}
