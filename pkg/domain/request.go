package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// UseCase は画像生成の用途を表す識別子です。
// CLI のサブコマンド名と保存ファイル名のプレフィックスを兼ねます。
type UseCase string

const (
	UseCaseImage     UseCase = "image"
	UseCaseSocial    UseCase = "social"
	UseCaseThumbnail UseCase = "thumbnail"
	UseCaseCover     UseCase = "cover"
	UseCaseIcon      UseCase = "icon"
	UseCaseBanner    UseCase = "banner"
)

// AspectRatio は生成画像の縦横比です。値はAPIに渡す表記そのままです。
type AspectRatio string

const (
	AspectSquare        AspectRatio = "1:1"
	AspectLandscape16x9 AspectRatio = "16:9"
	AspectPortrait9x16  AspectRatio = "9:16"
	AspectLandscape4x3  AspectRatio = "4:3"
	AspectPortrait3x4   AspectRatio = "3:4"
	AspectUltraWide21x9 AspectRatio = "21:9"
)

// Expression はカバー画像の人物に取らせる表情・ポーズの種類です。
type Expression string

const (
	ExpressionThinking  Expression = "thinking"
	ExpressionSurprised Expression = "surprised"
	ExpressionHappy     Expression = "happy"
	ExpressionChinRest  Expression = "chin-on-hand"
)

// Platform はソーシャル投稿画像の配信先プラットフォームです。
type Platform string

const (
	PlatformInstagram Platform = "instagram"
	PlatformFacebook  Platform = "facebook"
	PlatformTwitter   Platform = "twitter"
	PlatformLinkedIn  Platform = "linkedin"
	PlatformYouTube   Platform = "youtube"
	PlatformStory     Platform = "story"
	PlatformTikTok    Platform = "tiktok"
	PlatformReels     Platform = "reels"
)

// バリデーション失敗を errors.Is で判別するための番兵エラーなのだ。
// ネットワークに触れる前に必ずこれらで弾くのが約束なのだ。
var (
	ErrUnknownUseCase     = errors.New("domain: unknown use case")
	ErrInvalidAspectRatio = errors.New("domain: invalid aspect ratio")
	ErrInvalidExpression  = errors.New("domain: invalid expression")
	ErrInvalidStyle       = errors.New("domain: invalid style")
	ErrInvalidPlatform    = errors.New("domain: invalid platform")
	ErrInvalidCount       = errors.New("domain: invalid count")
)

var useCases = map[UseCase]struct{}{
	UseCaseImage:     {},
	UseCaseSocial:    {},
	UseCaseThumbnail: {},
	UseCaseCover:     {},
	UseCaseIcon:      {},
	UseCaseBanner:    {},
}

var aspectRatios = map[AspectRatio]struct{}{
	AspectSquare:        {},
	AspectLandscape16x9: {},
	AspectPortrait9x16:  {},
	AspectLandscape4x3:  {},
	AspectPortrait3x4:   {},
	AspectUltraWide21x9: {},
}

var expressions = map[Expression]struct{}{
	ExpressionThinking:  {},
	ExpressionSurprised: {},
	ExpressionHappy:     {},
	ExpressionChinRest:  {},
}

var platforms = map[Platform]struct{}{
	PlatformInstagram: {},
	PlatformFacebook:  {},
	PlatformTwitter:   {},
	PlatformLinkedIn:  {},
	PlatformYouTube:   {},
	PlatformStory:     {},
	PlatformTikTok:    {},
	PlatformReels:     {},
}

// ParseUseCase は文字列を UseCase として検証します。
// 未知の値の場合は、サポート一覧を添えた ErrUnknownUseCase を返します。
func ParseUseCase(s string) (UseCase, error) {
	uc := UseCase(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := useCases[uc]; !ok {
		return "", fmt.Errorf("%w: '%s'。サポートされている用途は [%s] です",
			ErrUnknownUseCase, s, strings.Join(SupportedUseCases(), ", "))
	}
	return uc, nil
}

// SupportedUseCases はサポートしている用途名をソート済みで返します。
func SupportedUseCases() []string {
	names := make([]string, 0, len(useCases))
	for uc := range useCases {
		names = append(names, string(uc))
	}
	sort.Strings(names)
	return names
}

// ParseAspectRatio は文字列を AspectRatio として検証します。
func ParseAspectRatio(s string) (AspectRatio, error) {
	ar := AspectRatio(strings.TrimSpace(s))
	if _, ok := aspectRatios[ar]; !ok {
		return "", fmt.Errorf("%w: '%s'。指定できるのは [%s] です",
			ErrInvalidAspectRatio, s, strings.Join(supportedValues(aspectRatios), ", "))
	}
	return ar, nil
}

// ParseExpression は文字列を Expression として検証します。
func ParseExpression(s string) (Expression, error) {
	ex := Expression(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := expressions[ex]; !ok {
		return "", fmt.Errorf("%w: '%s'。指定できるのは [%s] です",
			ErrInvalidExpression, s, strings.Join(supportedValues(expressions), ", "))
	}
	return ex, nil
}

// ParsePlatform は文字列を Platform として検証します。
func ParsePlatform(s string) (Platform, error) {
	p := Platform(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := platforms[p]; !ok {
		return "", fmt.Errorf("%w: '%s'。指定できるのは [%s] です",
			ErrInvalidPlatform, s, strings.Join(supportedValues(platforms), ", "))
	}
	return p, nil
}

func supportedValues[K ~string](m map[K]struct{}) []string {
	values := make([]string, 0, len(m))
	for k := range m {
		values = append(values, string(k))
	}
	sort.Strings(values)
	return values
}

// GenerationRequest は1回の画像生成を完全に記述するリクエストです。
// Prompt には最終的に合成済みのプロンプト全文が入り、構築後は変更しません。
type GenerationRequest struct {
	UseCase        UseCase
	PrimaryText    string
	Subtitle       string
	Expression     Expression
	Platform       Platform
	AspectRatio    AspectRatio
	Style          string
	Prompt         string
	NegativePrompt string
	Count          int
	ReferenceURIs  []string
}

// Image は生成・取得した画像のバイト列とMIMEタイプの組です。
type Image struct {
	Data     []byte
	MimeType string
}
