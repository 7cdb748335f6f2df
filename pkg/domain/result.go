package domain

// GenerationResult は1回の生成実行の最終的な結果です。
// 成功時は保存済みパスの一覧を、失敗時はユーザー向けのエラー文言を保持します。
type GenerationResult struct {
	Success    bool
	ImagePaths []string
	Err        string
	PromptUsed string
}

// NewSuccessResult は保存済みパスからの成功結果を組み立てます。
func NewSuccessResult(paths []string, prompt string) *GenerationResult {
	return &GenerationResult{
		Success:    true,
		ImagePaths: paths,
		PromptUsed: prompt,
	}
}

// NewFailureResult は失敗結果を組み立てます。err は nil でも構いません。
func NewFailureResult(err error, prompt string) *GenerationResult {
	r := &GenerationResult{
		Success:    false,
		PromptUsed: prompt,
	}
	if err != nil {
		r.Err = err.Error()
	}
	return r
}
