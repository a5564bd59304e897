package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/bytedance/sonic"

	"github.com/weighworks/weighbridge-parser/internal/common"
)

// Reader loads raw OCR JSON documents from disk and resolves batch listings.
type Reader struct {
	logger *slog.Logger
}

func NewReader(logger *slog.Logger) *Reader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Reader{logger: logger}
}

// ReadPayload reads one OCR document. The bytes must at least be valid JSON;
// shape recognition happens downstream.
func (r *Reader) ReadPayload(ctx context.Context, path string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, common.WrapError(err, "read payload")
	}
	if !sonic.Valid(raw) {
		return nil, common.NewAppError("INVALID_JSON", fmt.Sprintf("invalid JSON in %s", path), common.ErrInvalidInput)
	}
	r.logger.Debug("ingest.read", "path", path, "bytes", len(raw))
	return raw, nil
}

// ListInputs expands each argument (a file path or a glob) and returns the
// deduplicated union, sorted for deterministic batch order.
func (r *Reader) ListInputs(args []string) ([]string, error) {
	seen := make(map[string]struct{})
	var paths []string

	for _, arg := range args {
		if info, err := os.Stat(arg); err == nil && !info.IsDir() {
			if _, ok := seen[arg]; !ok {
				seen[arg] = struct{}{}
				paths = append(paths, arg)
			}
			continue
		}
		matches, err := filepath.Glob(arg)
		if err != nil {
			return nil, common.WrapError(err, "bad input pattern")
		}
		if len(matches) == 0 {
			return nil, common.NewAppError("NO_INPUT", fmt.Sprintf("no files match %q", arg), common.ErrInvalidInput)
		}
		for _, m := range matches {
			if _, ok := seen[m]; !ok {
				seen[m] = struct{}{}
				paths = append(paths, m)
			}
		}
	}

	sort.Strings(paths)
	r.logger.Info("ingest.listed", "files", len(paths))
	return paths, nil
}
