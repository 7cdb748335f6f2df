package writer

import (
	"context"
	"io"
	"os"
	"path/filepath"
)

// localWriterMock は remoteio.OutputWriter の代わりにローカルFSへ書き込むモックなのだ。
type localWriterMock struct {
	writeFunc func(ctx context.Context, path string, reader io.Reader, mimeType string) error
}

func (m *localWriterMock) Write(ctx context.Context, path string, reader io.Reader, mimeType string) error {
	if m.writeFunc != nil {
		return m.writeFunc(ctx, path, reader, mimeType)
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
