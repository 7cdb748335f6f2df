package prompt

import (
	"fmt"
	"strings"

	"github.com/shouni/go-nanobanana-kit/pkg/domain"
)

// Fields は、ユーザーがコマンドラインから与えたテキスト入力の集まりなのだ。
type Fields struct {
	PrimaryText string
	Subtitle    string
	Expression  string
	Platform    string
}

// Overrides は、プリセットのデフォルトを上書きする明示的な指定なのだ。
// 空値はすべて「プリセットに任せる」の意味なのだ。
type Overrides struct {
	AspectRatio   string
	Style         string
	Count         int
	ReferenceURIs []string
}

// Builder は、プリセットとユーザー入力から GenerationRequest を組み立てるのだ。
// すべてのバリデーションはここで行われ、ネットワークには一切触れないのだ。
type Builder struct{}

// NewBuilder は Builder を生成するのだ。
func NewBuilder() *Builder {
	return &Builder{}
}

// Build は用途のプリセットに Fields と Overrides を重ねてリクエストを構築するのだ。
// 優先順位は「明示指定 > プリセットのデフォルト」なのだ。
func (b *Builder) Build(useCase domain.UseCase, fields Fields, ov Overrides) (*domain.GenerationRequest, error) {
	preset, err := GetPreset(useCase)
	if err != nil {
		return nil, err
	}

	req := &domain.GenerationRequest{
		UseCase:       useCase,
		PrimaryText:   fields.PrimaryText,
		Subtitle:      fields.Subtitle,
		ReferenceURIs: ov.ReferenceURIs,
	}

	// social はプラットフォームごとにテンプレートと縦横比が変わるのだ
	if useCase == domain.UseCaseSocial && fields.Platform != "" {
		platform, err := domain.ParsePlatform(fields.Platform)
		if err != nil {
			return nil, err
		}
		req.Platform = platform
		preset = presetForPlatform(platform, preset)
	}

	aspect := preset.DefaultAspect
	if ov.AspectRatio != "" {
		aspect, err = domain.ParseAspectRatio(ov.AspectRatio)
		if err != nil {
			return nil, err
		}
	}
	req.AspectRatio = aspect

	style := preset.DefaultStyle
	if ov.Style != "" {
		style = ov.Style
	}
	if err := validateStyle(preset, style); err != nil {
		return nil, err
	}
	req.Style = style

	if useCase == domain.UseCaseCover {
		expr := domain.ExpressionThinking
		if fields.Expression != "" {
			expr, err = domain.ParseExpression(fields.Expression)
			if err != nil {
				return nil, err
			}
		}
		req.Expression = expr
	}

	count := ov.Count
	if count == 0 {
		count = 1
	}
	if count < 1 {
		return nil, fmt.Errorf("%w: %d（1以上を指定してください）", domain.ErrInvalidCount, ov.Count)
	}
	req.Count = count

	req.NegativePrompt = preset.Negative
	req.Prompt = b.composePrompt(preset, req)
	return req, nil
}

// composePrompt は最終的なプロンプト全文を合成するのだ。
// 縦横比の指示文を先頭に置き、本文はピリオド区切りで連結するのだ。
func (b *Builder) composePrompt(preset Preset, req *domain.GenerationRequest) string {
	var body string
	if req.UseCase == domain.UseCaseCover {
		body = renderCover(preset.Template, req)
	} else {
		body = joinSentences(
			req.PrimaryText,
			subtitleSentence(req.Subtitle),
			renderTemplate(preset.Template, req.Style),
			StyleModifier(req.Style),
		)
	}

	parts := []string{}
	if hint := AspectHint(req.AspectRatio); hint != "" {
		parts = append(parts, hint)
	}
	parts = append(parts, body)
	if preset.Negative != "" {
		parts = append(parts, "Avoid: "+preset.Negative)
	}
	return strings.Join(parts, ". ")
}

// renderTemplate はテンプレート中の {style} を置換し、改行を1行に均すのだ。
func renderTemplate(template, style string) string {
	rendered := strings.ReplaceAll(template, "{style}", style)
	return flatten(rendered)
}

// renderCover はカバー専用テンプレートにタイトル・副題・表情を埋め込むのだ。
// カバーは文字レイアウトの指示が多いので、改行構造をそのまま残すのだ。
func renderCover(template string, req *domain.GenerationRequest) string {
	subtitleLine := ""
	if req.Subtitle != "" {
		subtitleLine = fmt.Sprintf("- Subtitle: %s\n", req.Subtitle)
	}
	replacer := strings.NewReplacer(
		"{title}", req.PrimaryText,
		"{subtitle_line}", subtitleLine,
		"{expression}", expressionPhrases[req.Expression],
	)
	return strings.TrimSpace(replacer.Replace(template))
}

func subtitleSentence(subtitle string) string {
	if subtitle == "" {
		return ""
	}
	return "Subtitle text: " + subtitle
}

// presetForPlatform はプラットフォームに応じて social の変種を選ぶのだ。
func presetForPlatform(platform domain.Platform, base Preset) Preset {
	switch platform {
	case domain.PlatformStory, domain.PlatformTikTok, domain.PlatformReels:
		return storyPreset
	case domain.PlatformTwitter, domain.PlatformLinkedIn, domain.PlatformYouTube:
		base.DefaultAspect = domain.AspectLandscape16x9
		return base
	default:
		// instagram / facebook はスクエア投稿のままなのだ
		return base
	}
}

func validateStyle(preset Preset, style string) error {
	if preset.AllowedStyles == nil {
		return nil
	}
	for _, allowed := range preset.AllowedStyles {
		if style == allowed {
			return nil
		}
	}
	return fmt.Errorf("%w: '%s'。%s で指定できるのは [%s] です",
		domain.ErrInvalidStyle, style, preset.UseCase, strings.Join(preset.AllowedStyles, ", "))
}

// flatten は複数行テキストを1行のセンテンス列に変換するのだ。
func flatten(s string) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(line), "."))
	}
	return strings.Join(lines, ". ")
}

func joinSentences(parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, ". ")
}
