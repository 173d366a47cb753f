package vecsift

import (
	"context"
	"path/filepath"

	"github.com/vecsift/vecsift/codec"
	"github.com/vecsift/vecsift/curate"
	"github.com/vecsift/vecsift/export"
	"github.com/vecsift/vecsift/model"
	"github.com/vecsift/vecsift/profile"
)

// Artifact filenames written by WriteArtifacts.
const (
	ProfileFilename = "profile.json"
	ExportFilename  = "export_for_edge.json"
)

// Pipeline profiles a record batch and curates an export subset.
// The zero value is not usable; construct with New.
type Pipeline struct {
	logger          *Logger
	cdc             codec.Codec
	curateOpts      curate.Options
	requireDocument bool
}

// Result holds the outputs of a pipeline run.
type Result struct {
	// Profile describes the full input batch, before any filtering.
	Profile *profile.Profile

	// Rows are the augmented rows the profile was computed from,
	// in input order.
	Rows []model.AugmentedRow

	// Export is the curated, capped export subset.
	Export export.Set
}

// New creates a Pipeline with the given options.
func New(opts ...Option) *Pipeline {
	o := options{
		codec:           codec.Default,
		logger:          NoopLogger(),
		requireDocument: true,
	}
	o.curate.Cap = curate.DefaultCap
	for _, fn := range opts {
		fn(&o)
	}

	return &Pipeline{
		logger:          o.logger,
		cdc:             o.codec,
		curateOpts:      o.curate,
		requireDocument: o.requireDocument,
	}
}

// Run profiles the batch and curates the export subset.
//
// Profiling never fails on malformed data; ragged vectors, duplicate
// IDs, and missing fields are reported as findings in the profile.
// Curation fails only on an invalid cap.
func (p *Pipeline) Run(ctx context.Context, batch *model.Batch) (*Result, error) {
	prof, rows := profile.Run(batch)
	p.logger.LogProfile(ctx, prof.NumRecords, len(prof.DuplicateIDs), nil)

	candidates := rows
	if p.requireDocument {
		candidates = make([]model.AugmentedRow, 0, len(rows))
		for _, row := range rows {
			if row.HasDocument {
				candidates = append(candidates, row)
			}
		}
	}

	set, err := curate.Curate(candidates, p.curateOpts)
	if err != nil {
		p.logger.LogCurate(ctx, len(candidates), 0, p.curateOpts.Cap, err)
		return nil, err
	}
	p.logger.LogCurate(ctx, len(candidates), len(set), p.curateOpts.Cap, nil)

	return &Result{
		Profile: prof,
		Rows:    rows,
		Export:  set,
	}, nil
}

// WriteArtifacts writes the profile and export set as JSON files under dir.
func (p *Pipeline) WriteArtifacts(ctx context.Context, dir string, res *Result) error {
	w := export.NewWriter(export.WithCodec(p.cdc))

	profilePath := filepath.Join(dir, ProfileFilename)
	if err := w.WriteFile(ctx, profilePath, res.Profile); err != nil {
		p.logger.LogArtifact(ctx, profilePath, err)
		return err
	}
	p.logger.LogArtifact(ctx, profilePath, nil)

	exportPath := filepath.Join(dir, ExportFilename)
	if err := w.WriteFile(ctx, exportPath, res.Export); err != nil {
		p.logger.LogArtifact(ctx, exportPath, err)
		return err
	}
	p.logger.LogArtifact(ctx, exportPath, nil)

	return nil
}
