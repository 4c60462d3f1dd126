// Package alphafold holds the AlphaFold3 fold input document written for every
// sequence of a job.
package alphafold

import (
	"encoding/json"
	"fmt"
)

const (
	// Dialect is the input dialect understood by the AlphaFold3 data pipeline
	Dialect = "alphafold3"

	// Version of the AlphaFold3 input format
	Version = 1

	// ChainID is the single chain every protein is assigned to
	ChainID = "A"
)

// ModelSeeds are the seeds every job is run with
var ModelSeeds = []int{1}

// Input is a single fold input. One is written per FASTA record.
type Input struct {
	Name       string     `json:"name"`
	Sequences  []Sequence `json:"sequences"`
	ModelSeeds []int      `json:"modelSeeds"`
	Dialect    string     `json:"dialect"`
	Version    int        `json:"version"`
}

// Sequence is one entity of the input. Only proteins are written.
type Sequence struct {
	Protein Protein `json:"protein"`
}

// Protein is a protein chain and its residues
type Protein struct {
	ID       []string `json:"id"`
	Sequence string   `json:"sequence"`
}

// NewInput returns the fold input for a single protein chain.
func NewInput(name, seq string) Input {
	return Input{
		Name: name,
		Sequences: []Sequence{
			{
				Protein: Protein{
					ID:       []string{ChainID},
					Sequence: seq,
				},
			},
		},
		ModelSeeds: append([]int(nil), ModelSeeds...),
		Dialect:    Dialect,
		Version:    Version,
	}
}

// Marshal serializes the input with two-space indentation.
func (in Input) Marshal() ([]byte, error) {
	b, err := json.MarshalIndent(in, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to serialize fold input %s: %w", in.Name, err)
	}
	return b, nil
}
