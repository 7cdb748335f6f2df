package assets

import (
	"context"
	"io"
	"time"
)

// httpClientMock は HTTPClient のテスト用実装なのだ。
type httpClientMock struct {
	fetchBytesFunc func(ctx context.Context, url string) ([]byte, error)
	calls          int
}

func (m *httpClientMock) FetchBytes(ctx context.Context, url string) ([]byte, error) {
	m.calls++
	return m.fetchBytesFunc(ctx, url)
}

// readerMock は InputReader のテスト用実装なのだ。
type readerMock struct {
	openFunc func(ctx context.Context, uri string) (io.ReadCloser, error)
	calls    int
}

func (m *readerMock) Open(ctx context.Context, uri string) (io.ReadCloser, error) {
	m.calls++
	return m.openFunc(ctx, uri)
}

// cacheMock は ImageCacher のテスト用実装なのだ。go-cache と同じ使い勝手なのだ。
type cacheMock struct {
	store map[string]any
}

func newCacheMock() *cacheMock {
	return &cacheMock{store: map[string]any{}}
}

func (m *cacheMock) Get(key string) (any, bool) {
	v, ok := m.store[key]
	return v, ok
}

func (m *cacheMock) Set(key string, value any, d time.Duration) {
	m.store[key] = value
}
