// Package seed loads nutrition records from a file and upserts them
package seed

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	perr "producescan/internal/platform/errors"
	"producescan/internal/platform/logger"
	"producescan/internal/platform/net/http/bind"
	"producescan/internal/services/nutrition/domain"
)

// Result counts what Apply did
type Result struct {
	Upserted int
	Skipped  int
}

// LoadFile reads records from a json array or a yaml sequence using the json field names
func LoadFile(path string) ([]domain.UpsertInput, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, perr.NotFoundf("seed file %s", path)
		}
		return nil, perr.Wrapf(err, perr.ErrorCodeUnknown, "read seed file %s", path)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return parseYAML(b)
	default:
		return parseJSON(b)
	}
}

func parseJSON(b []byte) ([]domain.UpsertInput, error) {
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.DisallowUnknownFields()
	var out []domain.UpsertInput
	if err := dec.Decode(&out); err != nil {
		return nil, perr.JSONErrf("seed records: %v", err)
	}
	return out, nil
}

// yaml goes through a generic tree so the json tags stay the single field naming
func parseYAML(b []byte) ([]domain.UpsertInput, error) {
	var tree []map[string]any
	if err := yaml.Unmarshal(b, &tree); err != nil {
		return nil, perr.Newf(perr.ErrorCodeValidation, "seed records: %v", err)
	}
	j, err := json.Marshal(tree)
	if err != nil {
		return nil, perr.Newf(perr.ErrorCodeValidation, "seed records: %v", err)
	}
	return parseJSON(j)
}

// Apply validates and upserts each record
// invalid records are skipped and logged, a store error stops the run
func Apply(ctx context.Context, w domain.WriterPort, recs []domain.UpsertInput) (Result, error) {
	log := logger.Named("seed")

	var res Result
	for i, rec := range recs {
		if err := bind.Validate(rec); err != nil {
			log.Warn().Err(err).Int("index", i).Str("name", rec.Name).Msg("invalid record skipped")
			res.Skipped++
			continue
		}
		id, err := w.Upsert(ctx, rec)
		if err != nil {
			return res, fmt.Errorf("record %d (%s): %w", i, rec.Name, err)
		}
		log.Debug().Int64("id", id).Str("name", rec.Name).Msg("upserted")
		res.Upserted++
	}
	return res, nil
}
