// Package layout splits FASTA records into jobs and writes each job's
// directory of fold inputs.
package layout

import (
	"errors"
	"fmt"
	"path"

	"github.com/sameerd/alphafold3/internal/fasta"
)

const (
	// DataInputs holds a job's fold input JSON files
	DataInputs = "data_inputs"

	// InferenceInputs is left empty for the data pipeline to fill
	InferenceInputs = "inference_inputs"
)

// ErrInvalidBatchSize is returned for a batch size below one.
var ErrInvalidBatchSize = errors.New("batch size must be a positive integer")

// Batch is a contiguous run of records written to the same job directory.
type Batch struct {
	// Index is 1-based, job1 is the first batch
	Index int

	// First is the 0-based position of Records[0] in the whole input
	First int

	// Records in input order
	Records []fasta.Record
}

// Partition splits records into batches. Unbatched, every record is its own
// job. Batched, jobs hold size records each and the last holds the remainder.
func Partition(records []fasta.Record, size int, batched bool) ([]Batch, error) {
	if !batched {
		size = 1
	} else if size < 1 {
		return nil, fmt.Errorf("%w, got %d", ErrInvalidBatchSize, size)
	}

	var batches []Batch
	for first := 0; first < len(records); first += size {
		end := first + size
		if end > len(records) {
			end = len(records)
		}

		batches = append(batches, Batch{
			Index:   len(batches) + 1,
			First:   first,
			Records: records[first:end],
		})
	}

	return batches, nil
}

// JobDir is the name of the directory for the batch with this index.
func JobDir(index int) string {
	return fmt.Sprintf("job%d", index)
}

// FileName is the fold input filename of the batch's i'th record. Batched
// names carry the record's 1-based position in the whole input.
func FileName(b Batch, i int, batched bool) string {
	if !batched {
		return "fold_input.json"
	}
	return fmt.Sprintf("fold_input_%d.json", b.First+i+1)
}

// FilePath is the path, relative to the output root, of the batch's i'th record.
func FilePath(b Batch, i int, batched bool) string {
	return path.Join(JobDir(b.Index), DataInputs, FileName(b, i, batched))
}
