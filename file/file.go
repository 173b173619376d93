// Package file stores FLG documents on disk and keeps a loaded document
// current while its file changes.
package file

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/KimNorgaard/go-flg"
	"github.com/KimNorgaard/go-flg/ast"
	"github.com/KimNorgaard/go-flg/codec"
)

// Load reads the file at path, reverses scheme and parses the result.
// Encoded schemes ignore whitespace surrounding the file content.
func Load(path string, scheme codec.Scheme, opts ...flg.Option) (*ast.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	var doc *ast.Document
	opts = append(opts[:len(opts):len(opts)], flg.WithScheme(scheme))
	if err := flg.Unmarshal(data, &doc, opts...); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return doc, nil
}

// Save serializes doc, applies scheme and writes the result to path. The
// file is replaced atomically so that readers never see a partial write.
func Save(path string, doc *ast.Document, scheme codec.Scheme, opts ...flg.Option) error {
	opts = append(opts[:len(opts):len(opts)], flg.WithScheme(scheme))
	data, err := flg.Marshal(doc, opts...)
	if err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return writeAtomic(path, data)
}

func writeAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name()) // no-op after a successful rename

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		return fmt.Errorf("chmod %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("rename %s: %w", path, err)
	}
	return nil
}
