package layout

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// PlanFile is one fold input that would be written.
type PlanFile struct {
	File   string `yaml:"file"`
	Record string `yaml:"record"`
}

// PlanJob is one job directory that would be created.
type PlanJob struct {
	Dir   string     `yaml:"dir"`
	Files []PlanFile `yaml:"files"`
}

// Plan is the layout of a run, without writing anything.
type Plan struct {
	Batched bool      `yaml:"batched"`
	Records int       `yaml:"records"`
	Jobs    []PlanJob `yaml:"jobs"`
}

// NewPlan describes the job directories and files Emit would write.
func NewPlan(batches []Batch, batched bool) Plan {
	p := Plan{Batched: batched}
	for _, b := range batches {
		job := PlanJob{Dir: JobDir(b.Index)}
		for i, r := range b.Records {
			job.Files = append(job.Files, PlanFile{
				File:   FilePath(b, i, batched),
				Record: r.ID,
			})
		}
		p.Records += len(b.Records)
		p.Jobs = append(p.Jobs, job)
	}
	return p
}

// WriteYAML renders the plan to w.
func (p Plan) WriteYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(p); err != nil {
		return fmt.Errorf("failed to render plan: %w", err)
	}
	return enc.Close()
}
