package repository

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// FileSink writes output units under <root>/<timeframe>/<date>/. Every write
// goes to a temporary file in the destination directory first and is renamed
// into place, so downstream consumers never observe a partially written unit
// and a cancelled run cannot corrupt units that already finalized.
type FileSink struct {
	root string
}

func NewFileSink(root string) *FileSink {
	return &FileSink{root: root}
}

func (s *FileSink) WriteUnit(ctx context.Context, timeframe, date, name string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	dir := filepath.Join(s.root, timeframe, date)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+name+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp file: %w", err)
	}

	if err := os.Rename(tmpName, filepath.Join(dir, name)); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("finalize %s: %w", name, err)
	}
	return nil
}
