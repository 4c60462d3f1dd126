package layout

import (
	"context"
	"fmt"
	"path"

	"github.com/go-logr/logr"

	"github.com/sameerd/alphafold3/internal/alphafold"
	"github.com/sameerd/alphafold3/internal/sink"
)

// Summary counts what an Emit wrote.
type Summary struct {
	Jobs  int
	Files int
}

// Emitter writes batches as job directories into a Sink.
type Emitter struct {
	Sink sink.Sink
	Log  logr.Logger
}

// Emit creates each batch's job directory and writes one fold input per
// record, in batch then record order. The first failure stops the run and
// what was already written stays.
func (e *Emitter) Emit(ctx context.Context, batches []Batch, batched bool) (Summary, error) {
	var sum Summary

	for _, b := range batches {
		job := JobDir(b.Index)
		for _, sub := range []string{DataInputs, InferenceInputs} {
			dir := path.Join(job, sub)
			if err := e.Sink.MkdirAll(ctx, dir); err != nil {
				return sum, fmt.Errorf("failed to create %s in %s: %w", dir, e.Sink, err)
			}
		}
		sum.Jobs++

		for i, r := range b.Records {
			name := FilePath(b, i, batched)

			data, err := alphafold.NewInput(r.ID, r.Seq).Marshal()
			if err != nil {
				return sum, err
			}
			if err := e.Sink.WriteFile(ctx, name, data); err != nil {
				return sum, fmt.Errorf("failed to write %s in %s: %w", name, e.Sink, err)
			}
			sum.Files++

			e.Log.V(1).Info("wrote fold input", "record", r.ID, "file", name)
		}

		e.Log.V(1).Info("job ready", "job", job, "records", len(b.Records))
	}

	return sum, nil
}
