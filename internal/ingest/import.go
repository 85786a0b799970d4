// Package ingest loads exported account snapshots into the snapshot store.
// Files hold a single JSON object, a JSON array, or one object per line.
// Each record is either a full snapshot ({"account": ..., "items": ...}) or
// a bare account record.
package ingest

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"trustscope/internal/logging"
	"trustscope/internal/model"
	"trustscope/internal/util"
)

// Store is where imported snapshots go.
type Store interface {
	Put(ctx context.Context, s model.Snapshot) error
}

// Result counts what an import did.
type Result struct {
	Imported int      `json:"imported"`
	Skipped  int      `json:"skipped"`
	Handles  []string `json:"handles"`
}

// Decode reads every record in r.
func Decode(r io.Reader) ([]model.Snapshot, error) {
	br := bufio.NewReader(r)
	first, err := peekNonSpace(br)
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var raws []json.RawMessage
	dec := json.NewDecoder(br)
	if first == '[' {
		if err := dec.Decode(&raws); err != nil {
			return nil, fmt.Errorf("decode array: %w", err)
		}
	} else {
		for dec.More() {
			var raw json.RawMessage
			if err := dec.Decode(&raw); err != nil {
				return nil, fmt.Errorf("decode record %d: %w", len(raws)+1, err)
			}
			raws = append(raws, raw)
		}
	}

	out := make([]model.Snapshot, 0, len(raws))
	for i, raw := range raws {
		s, err := decodeRecord(raw)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i+1, err)
		}
		out = append(out, s)
	}
	return out, nil
}

func decodeRecord(raw json.RawMessage) (model.Snapshot, error) {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(raw, &probe); err != nil {
		return model.Snapshot{}, err
	}
	var s model.Snapshot
	if _, ok := probe["account"]; ok {
		err := json.Unmarshal(raw, &s)
		return s, err
	}
	err := json.Unmarshal(raw, &s.Account)
	return s, err
}

func peekNonSpace(br *bufio.Reader) (byte, error) {
	for {
		b, err := br.ReadByte()
		if err != nil {
			return 0, err
		}
		switch b {
		case ' ', '\t', '\r', '\n':
			continue
		}
		return b, br.UnreadByte()
	}
}

// Import decodes r and stores each record. Records without a platform get
// platform. Invalid records are skipped and counted; decode and store
// failures abort.
func Import(ctx context.Context, st Store, r io.Reader, platform string) (Result, error) {
	var res Result
	snaps, err := Decode(r)
	if err != nil {
		return res, err
	}
	for _, s := range snaps {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		s.Account.Handle = "@" + util.NormalizeHandle(s.Account.Handle)
		s.Account.Name = util.NormalizeWhitespace(s.Account.Name)
		s.Account.Bio = util.NormalizeWhitespace(s.Account.Bio)
		if s.Account.Platform == "" {
			s.Account.Platform = platform
		}
		if s.Account.Provenance == "" {
			s.Account.Provenance = model.ProvenanceLive
		}
		if err := validate(s); err != nil {
			res.Skipped++
			logging.Warn("import_skip", map[string]any{"handle": s.Account.Handle, "error": err.Error()})
			continue
		}
		if err := st.Put(ctx, s); err != nil {
			return res, fmt.Errorf("store %s: %w", s.Account.Handle, err)
		}
		res.Imported++
		res.Handles = append(res.Handles, s.Account.Handle)
	}
	return res, nil
}

func validate(s model.Snapshot) error {
	if err := s.Account.Validate(); err != nil {
		return err
	}
	for _, it := range s.Items {
		if err := it.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// ImportFile imports the records in the file at path.
func ImportFile(ctx context.Context, st Store, path, platform string) (Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return Result{}, err
	}
	defer f.Close()
	res, err := Import(ctx, st, f, platform)
	if err != nil {
		return res, fmt.Errorf("%s: %w", path, err)
	}
	logging.Info("import_file", map[string]any{"path": path, "imported": res.Imported, "skipped": res.Skipped})
	return res, nil
}
