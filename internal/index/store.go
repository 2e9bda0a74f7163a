package index

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"

	"github.com/gofrs/flock"
	"github.com/google/renameio"

	"github.com/knowgrep/knowgrep/internal/errors"
)

// Save persists idx to path atomically. A sibling lock file
// serializes concurrent builds targeting the same artifact; the write
// itself goes through a temp file and rename so readers never observe
// a partial index.
func Save(idx *Index, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.WriteFailure(path, err)
	}

	lock := flock.New(path + ".lock")
	if err := lock.Lock(); err != nil {
		return errors.WriteFailure(path, err)
	}
	defer func() { _ = lock.Unlock() }()

	data, err := json.MarshalIndent(idx, "", "  ")
	if err != nil {
		return errors.WriteFailure(path, err)
	}
	data = append(data, '\n')

	if err := renameio.WriteFile(path, data, 0o644); err != nil {
		return errors.WriteFailure(path, err)
	}
	return nil
}

// Load reads and validates a persisted index. A missing file maps to
// ERR_201 so callers can exit distinctly; anything unparseable or
// inconsistent maps to ERR_205 with rebuild as the remedy.
func Load(path string) (*Index, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.MissingIndex(path, err)
		}
		return nil, errors.CorruptIndex(path, err)
	}

	var idx Index
	if err := json.Unmarshal(data, &idx); err != nil {
		return nil, errors.CorruptIndex(path, err)
	}
	if err := idx.Validate(); err != nil {
		return nil, errors.CorruptIndex(path, err)
	}
	return &idx, nil
}

// Validate checks the structural invariants every well-formed index
// holds: a known schema version, pairwise-distinct chunk ids, sane
// line bounds, and non-empty token sets.
func (idx *Index) Validate() error {
	if idx.Version != SchemaVersion {
		return errors.ValidationError("unsupported index version", nil).
			WithDetail("version", strconv.Itoa(idx.Version)).
			WithDetail("supported", strconv.Itoa(SchemaVersion))
	}

	seen := make(map[string]struct{}, len(idx.Items))
	for i, item := range idx.Items {
		if item.ID == "" {
			return errors.ValidationError("chunk with empty id", nil).WithDetail("position", strconv.Itoa(i))
		}
		if _, dup := seen[item.ID]; dup {
			return errors.ValidationError("duplicate chunk id", nil).WithDetail("id", item.ID)
		}
		seen[item.ID] = struct{}{}

		if item.StartLine < 1 || item.EndLine < item.StartLine {
			return errors.ValidationError("chunk with invalid line bounds", nil).WithDetail("id", item.ID)
		}
		if len(item.Tokens) == 0 {
			return errors.ValidationError("chunk with empty token set", nil).WithDetail("id", item.ID)
		}
	}
	return nil
}
