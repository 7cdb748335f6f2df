package runner

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/shouni/go-nanobanana-kit/pkg/domain"
	"github.com/shouni/go-nanobanana-kit/pkg/gemini"
)

// imageGeneratorMock は ImageGenerator のテスト用実装なのだ。
type imageGeneratorMock struct {
	generateFunc func(ctx context.Context, req gemini.Request) (*gemini.Response, error)
	requests     []gemini.Request
}

func (m *imageGeneratorMock) GenerateImage(ctx context.Context, req gemini.Request) (*gemini.Response, error) {
	m.requests = append(m.requests, req)
	return m.generateFunc(ctx, req)
}

// resultWriterMock は ResultWriter のテスト用実装なのだ。
type resultWriterMock struct {
	persistFunc  func(ctx context.Context, images []domain.Image, baseName, outputDir string) ([]string, error)
	writeToFunc  func(ctx context.Context, path string, img domain.Image) error
	persistCalls int
	extraPaths   []string
}

func (m *resultWriterMock) Persist(ctx context.Context, images []domain.Image, baseName, outputDir string) ([]string, error) {
	m.persistCalls++
	return m.persistFunc(ctx, images, baseName, outputDir)
}

func (m *resultWriterMock) WriteTo(ctx context.Context, path string, img domain.Image) error {
	m.extraPaths = append(m.extraPaths, path)
	if m.writeToFunc != nil {
		return m.writeToFunc(ctx, path, img)
	}
	return nil
}

// fetcherMock は ReferenceFetcher のテスト用実装なのだ。
type fetcherMock struct {
	fetchFunc func(ctx context.Context, uri string) (domain.Image, error)
	calls     int
}

func (m *fetcherMock) Fetch(ctx context.Context, uri string) (domain.Image, error) {
	m.calls++
	return m.fetchFunc(ctx, uri)
}

// localOutputWriter はエンドツーエンドテストでローカルFSに書き込むためのものなのだ。
type localOutputWriter struct{}

func (localOutputWriter) Write(ctx context.Context, path string, reader io.Reader, mimeType string) error {
	data, err := io.ReadAll(reader)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
