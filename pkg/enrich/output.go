package enrich

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bestgames/bestgames/pkg/rankings"
)

// Output file names inside the data directory.
const (
	RawFile       = "raw_games.json"
	MergedFile    = "merged_games.json"
	UnmatchedFile = "unmatched_games.txt"
)

// WriteOutputs writes the raw entries, the merged catalog and, when
// there are any, the unmatched titles into dir. An unmatched file left by
// an earlier run is removed when every title matched.
func WriteOutputs(dir string, raw []rankings.Entry, res *Result) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	if raw == nil {
		raw = []rankings.Entry{}
	}
	if err := writeJSON(filepath.Join(dir, RawFile), raw); err != nil {
		return err
	}
	if err := writeJSON(filepath.Join(dir, MergedFile), res.Games); err != nil {
		return err
	}
	unmatchedPath := filepath.Join(dir, UnmatchedFile)
	if len(res.Unmatched) == 0 {
		if err := os.Remove(unmatchedPath); err != nil && !os.IsNotExist(err) {
			return err
		}
		return nil
	}
	body := strings.Join(res.Unmatched, "\n") + "\n"
	return writeFileAtomic(unmatchedPath, []byte(body))
}

func writeJSON(path string, v interface{}) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encoding %s: %w", filepath.Base(path), err)
	}
	return writeFileAtomic(path, buf.Bytes())
}

// writeFileAtomic writes a temp file and renames it over path.
func writeFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), path)
}
