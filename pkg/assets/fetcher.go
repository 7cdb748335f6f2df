// Package assets はカバー生成などで使う参照画像の取得を担当します。
// http(s) URL・ローカルパス・gs:// のいずれも受け付け、取得結果をキャッシュします。
package assets

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/shouni/go-nanobanana-kit/pkg/domain"
)

// DefaultCacheExpiration は参照画像キャッシュの既定の有効期限です。
const DefaultCacheExpiration = 30 * time.Minute

const cacheKeyPrefix = "asset-bytes:"

// ImageCacher は、取得済みバイト列をキャッシュするためのインターフェースです。
// patrickmn/go-cache の *cache.Cache がそのまま満たします。
type ImageCacher interface {
	Get(key string) (any, bool)
	Set(key string, value any, d time.Duration)
}

// HTTPClient は、URLからデータを取得するためのインターフェースです。
// httpkit.ClientInterface がそのまま満たします。
type HTTPClient interface {
	FetchBytes(ctx context.Context, url string) ([]byte, error)
}

// InputReader はローカルパスや gs:// URI を開くためのインターフェースです。
// remoteio.InputReader がそのまま満たします。
type InputReader interface {
	Open(ctx context.Context, uri string) (io.ReadCloser, error)
}

// Fetcher は参照画像の取得窓口です。同一URIの再取得はキャッシュで吸収します。
type Fetcher struct {
	httpClient HTTPClient
	reader     InputReader
	cache      ImageCacher
	expiration time.Duration
}

// NewFetcher は Fetcher を生成します。cache は nil でも動作します。
func NewFetcher(httpClient HTTPClient, reader InputReader, cache ImageCacher, expiration time.Duration) *Fetcher {
	if expiration <= 0 {
		expiration = DefaultCacheExpiration
	}
	return &Fetcher{
		httpClient: httpClient,
		reader:     reader,
		cache:      cache,
		expiration: expiration,
	}
}

// Fetch は URI から画像を取得して返します。MIMEタイプは内容から判定します。
func (f *Fetcher) Fetch(ctx context.Context, uri string) (domain.Image, error) {
	if f.cache != nil {
		if val, ok := f.cache.Get(cacheKeyPrefix + uri); ok {
			if img, ok := val.(domain.Image); ok {
				return img, nil
			}
		}
	}

	data, err := f.fetchBytes(ctx, uri)
	if err != nil {
		return domain.Image{}, fmt.Errorf("参照画像 '%s' の取得に失敗しました: %w", uri, err)
	}

	mimeType := http.DetectContentType(data)
	if !strings.HasPrefix(mimeType, "image/") {
		return domain.Image{}, fmt.Errorf("参照画像 '%s' は画像ではありません (detected=%s)", uri, mimeType)
	}

	img := domain.Image{Data: data, MimeType: mimeType}
	if f.cache != nil {
		f.cache.Set(cacheKeyPrefix+uri, img, f.expiration)
	}
	return img, nil
}

func (f *Fetcher) fetchBytes(ctx context.Context, uri string) ([]byte, error) {
	if strings.HasPrefix(uri, "http://") || strings.HasPrefix(uri, "https://") {
		return f.httpClient.FetchBytes(ctx, uri)
	}

	rc, err := f.reader.Open(ctx, uri)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}
