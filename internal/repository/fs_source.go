package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"BlueBatch/internal/domain/models"
	"BlueBatch/pkg/util"
)

// FileSource reads raw JSON units from <root>/<timeframe>/<date>/*.json.
// The symbol is taken from the filename (SYMBOL_<suffix>.json), matching how
// the upstream exporter names its drops.
type FileSource struct {
	root string
}

func NewFileSource(root string) *FileSource {
	return &FileSource{root: root}
}

// List enumerates the input units for one run. A missing batch directory is
// an empty set, not an error; the scheduler decides whether that fails the
// run. The listing is sorted so a rerun enumerates units identically.
func (s *FileSource) List(ctx context.Context, timeframe, date string) ([]models.UnitRef, error) {
	dir := filepath.Join(s.root, timeframe, date)
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, models.NewTransientIOError("list "+dir, err)
	}

	refs := make([]models.UnitRef, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".json" {
			continue
		}
		refs = append(refs, models.UnitRef{
			Symbol: util.SymbolFromFilename(e.Name()),
			Path:   filepath.Join(dir, e.Name()),
		})
	}
	sort.Slice(refs, func(i, j int) bool { return refs[i].Path < refs[j].Path })
	return refs, nil
}

// Load reads and decodes one unit. Read failures are transient (the storage
// layer may be flaky); a payload that is not valid JSON is a terminal schema
// failure, since retrying cannot fix the bytes.
func (s *FileSource) Load(ctx context.Context, ref models.UnitRef) (*models.RawRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	b, err := os.ReadFile(ref.Path)
	if err != nil {
		return nil, models.NewTransientIOError("read "+ref.Path, err)
	}

	var rec models.RawRecord
	if err := json.Unmarshal(b, &rec); err != nil {
		return nil, models.NewSchemaError([]models.ValidationIssue{{
			Code:    "ERR_MALFORMED_JSON",
			Message: fmt.Sprintf("payload is not valid JSON: %v", err),
		}})
	}
	rec.Symbol = ref.Symbol
	return &rec, nil
}
