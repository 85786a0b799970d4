package jobs

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"trustscope/internal/ingest"
	"trustscope/internal/logging"
	"trustscope/internal/model"
)

// ImportStore is the snapshot store plus the cursor table used to remember
// which export files were already imported.
type ImportStore interface {
	Put(ctx context.Context, s model.Snapshot) error
	LoadCursor(ctx context.Context, name string) (string, error)
	SaveCursor(ctx context.Context, name, value string) error
}

func cursorKey(name string) string { return "import:" + name }

// RunImportOnce imports every *.json / *.jsonl file in dir that changed
// since it was last imported. Returns the total imported records.
func RunImportOnce(ctx context.Context, st ImportStore, dir, platform string) (int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, err
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	total := 0
	for _, e := range entries {
		if e.IsDir() || !isExport(e.Name()) {
			continue
		}
		info, err := e.Info()
		if err != nil {
			return total, err
		}
		stamp := strconv.FormatInt(info.ModTime().UnixNano(), 10)
		if prev, err := st.LoadCursor(ctx, cursorKey(e.Name())); err == nil && prev == stamp {
			continue
		}
		res, err := ingest.ImportFile(ctx, st, filepath.Join(dir, e.Name()), platform)
		if err != nil {
			return total, err
		}
		total += res.Imported
		if err := st.SaveCursor(ctx, cursorKey(e.Name()), stamp); err != nil {
			return total, err
		}
	}
	return total, nil
}

func isExport(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	return ext == ".json" || ext == ".jsonl"
}

// RunImportLoop runs RunImportOnce on a ticker until ctx is cancelled.
func RunImportLoop(ctx context.Context, st ImportStore, dir, platform string, interval time.Duration) error {
	t := time.NewTicker(interval)
	defer t.Stop()
	if _, err := RunImportOnce(ctx, st, dir, platform); err != nil {
		logging.Error("import_once_error", map[string]any{"error": err.Error()})
	}
	for {
		select {
		case <-ctx.Done():
			logging.Info("import_loop_stop", nil)
			return ctx.Err()
		case <-t.C:
			if _, err := RunImportOnce(ctx, st, dir, platform); err != nil {
				logging.Error("import_once_error", map[string]any{"error": err.Error()})
			}
		}
	}
}
