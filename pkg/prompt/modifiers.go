package prompt

import "github.com/shouni/go-nanobanana-kit/pkg/domain"

// styleModifiers は、スタイル名を具体的な描写フレーズに展開するカタログなのだ。
// ここに無いスタイル名は、そのままテンプレートの {style} に埋め込まれるのだ。
var styleModifiers = map[string]string{
	"photorealistic": "photorealistic, ultra realistic, 8K UHD, professional DSLR quality, RAW photo, accurate colors, natural textures, physically accurate lighting",
	"studio":         "professional studio photography, three-point lighting, softbox diffusion, neutral background, commercial quality, rim lighting separation",
	"cinematic":      "cinematic film quality, dramatic theatrical lighting, widescreen composition, film color grading, anamorphic lens, epic scope",
	"modern":         "contemporary modern design, clean minimalist aesthetic, current trends, sleek styling, refined palette",
	"minimal":        "minimalist design, essential elements only, maximum negative space, intentional simplicity",
	"flat-design":    "flat design, 2D graphic style, no shadows, bold solid colors, geometric shapes, vector illustration",
	"3d":             "3D CGI render, photorealistic ray tracing, subsurface scattering, ambient occlusion, global illumination",
	"anime":          "anime style, Japanese animation aesthetic, cel-shaded, expressive features, vibrant colors, clean line art",
	"watercolor":     "traditional watercolor painting, soft bleeding edges, transparent washes, visible paper texture, organic blending",
	"digital-art":    "digital art, clean rendering, vibrant colors, professional illustration, modern digital painting",
	"vintage":        "vintage retro aesthetic, nostalgic color grading, film grain, faded tones, analog warmth",
	"cyberpunk":      "cyberpunk aesthetic, neon-lit dystopia, high-tech low-life, rain-slicked streets",
}

// aspectHints は、縦横比ごとにプロンプト先頭へ付ける指示文なのだ。
// モデルへの念押しとして、生成設定とは別にテキストでも伝えるのだ。
var aspectHints = map[domain.AspectRatio]string{
	domain.AspectSquare:        "IMPORTANT: Generate image in SQUARE format (1:1 aspect ratio)",
	domain.AspectLandscape16x9: "IMPORTANT: Generate image in WIDE LANDSCAPE format (16:9 aspect ratio)",
	domain.AspectPortrait9x16:  "IMPORTANT: Generate image in TALL PORTRAIT format (9:16 aspect ratio)",
	domain.AspectLandscape4x3:  "IMPORTANT: Generate image in LANDSCAPE format (4:3 aspect ratio)",
	domain.AspectPortrait3x4:   "IMPORTANT: Generate image in PORTRAIT format (3:4 aspect ratio)",
	domain.AspectUltraWide21x9: "IMPORTANT: Generate image in ULTRA-WIDE PANORAMIC format (21:9 aspect ratio)",
}

// expressionPhrases は、表情タグを英語の描写に展開するマップなのだ。
var expressionPhrases = map[domain.Expression]string{
	domain.ExpressionThinking:  "thoughtful, pondering",
	domain.ExpressionSurprised: "surprised, wide-eyed",
	domain.ExpressionHappy:     "cheerful, smiling",
	domain.ExpressionChinRest:  "resting chin on hand, contemplative",
}

// StyleModifier はスタイル名に対応する描写フレーズを返すのだ。未登録なら空文字なのだ。
func StyleModifier(style string) string {
	return styleModifiers[style]
}

// AspectHint は縦横比に対応する指示文を返すのだ。
func AspectHint(aspect domain.AspectRatio) string {
	return aspectHints[aspect]
}
