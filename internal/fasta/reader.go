// Package fasta reads multi-FASTA files into ordered records.
package fasta

import (
	"errors"
	"fmt"
	"io"

	"github.com/biogo/biogo/alphabet"
	"github.com/biogo/biogo/io/seqio"
	biofasta "github.com/biogo/biogo/io/seqio/fasta"
	"github.com/biogo/biogo/seq/linear"
)

// Record is a single FASTA entry.
type Record struct {
	// ID is the first word of the header line, ">sp|P69905 hemoglobin" gives "sp|P69905"
	ID string

	// Seq is the residue text with line breaks removed, case as written
	Seq string
}

// ParseError is returned when the input is not FASTA.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse FASTA %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// ErrNoRecords is wrapped in a ParseError when a file holds no entries.
var ErrNoRecords = errors.New("no FASTA records found")

// ReadFile opens and parses the FASTA file at path.
func ReadFile(path string) ([]Record, error) {
	rc, err := Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open FASTA file: %w", err)
	}
	defer rc.Close()

	records, err := Read(rc)
	if err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	return records, nil
}

// Read parses every record from r, in file order.
func Read(r io.Reader) (records []Record, err error) {
	template := linear.NewSeq("", nil, alphabet.Protein)
	sc := seqio.NewScanner(biofasta.NewReader(r, template))

	for sc.Next() {
		s, ok := sc.Seq().(*linear.Seq)
		if !ok {
			return nil, fmt.Errorf("unexpected sequence type %T", sc.Seq())
		}
		records = append(records, Record{
			ID:  s.Name(),
			Seq: string(alphabet.LettersToBytes(s.Seq)),
		})
	}
	if err := sc.Error(); err != nil {
		return nil, err
	}

	if len(records) < 1 {
		return nil, ErrNoRecords
	}
	return records, nil
}
