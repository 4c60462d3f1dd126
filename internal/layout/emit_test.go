package layout

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"sort"
	"strings"
	"testing"

	"github.com/go-logr/logr"
	"gocloud.dev/blob/memblob"

	"github.com/sameerd/alphafold3/internal/alphafold"
	"github.com/sameerd/alphafold3/internal/fasta"
	"github.com/sameerd/alphafold3/internal/sink"
)

// emit partitions n records and writes them under a fresh temp dir
func emit(t *testing.T, root string, n, size int, batched bool) Summary {
	t.Helper()

	batches, err := Partition(records(n), size, batched)
	if err != nil {
		t.Fatal(err)
	}
	e := &Emitter{Sink: sink.NewDir(root), Log: logr.Discard()}
	sum, err := e.Emit(context.Background(), batches, batched)
	if err != nil {
		t.Fatal(err)
	}
	return sum
}

// tree lists the job directories under root and the files of each data_inputs
func tree(t *testing.T, root string) map[string][]string {
	t.Helper()

	jobs, err := os.ReadDir(root)
	if err != nil {
		t.Fatal(err)
	}

	out := map[string][]string{}
	for _, job := range jobs {
		inference, err := os.ReadDir(filepath.Join(root, job.Name(), InferenceInputs))
		if err != nil {
			t.Fatal(err)
		}
		if len(inference) != 0 {
			t.Errorf("%s/%s is not empty", job.Name(), InferenceInputs)
		}

		files, err := os.ReadDir(filepath.Join(root, job.Name(), DataInputs))
		if err != nil {
			t.Fatal(err)
		}
		names := []string{}
		for _, f := range files {
			names = append(names, f.Name())
		}
		sort.Strings(names)
		out[job.Name()] = names
	}
	return out
}

func TestEmitter_Emit(t *testing.T) {
	type args struct {
		n       int
		size    int
		batched bool
	}
	tests := []struct {
		name string
		args args
		want map[string][]string
	}{
		{
			"3 records unbatched",
			args{3, 0, false},
			map[string][]string{
				"job1": {"fold_input.json"},
				"job2": {"fold_input.json"},
				"job3": {"fold_input.json"},
			},
		},
		{
			"6 records in batches of 5",
			args{6, 5, true},
			map[string][]string{
				"job1": {"fold_input_1.json", "fold_input_2.json", "fold_input_3.json", "fold_input_4.json", "fold_input_5.json"},
				"job2": {"fold_input_6.json"},
			},
		},
		{
			"fewer records than batch size",
			args{3, 4, true},
			map[string][]string{
				"job1": {"fold_input_1.json", "fold_input_2.json", "fold_input_3.json"},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := t.TempDir()
			sum := emit(t, root, tt.args.n, tt.args.size, tt.args.batched)

			if sum.Jobs != len(tt.want) || sum.Files != tt.args.n {
				t.Errorf("Emit() summary = %+v, want %d jobs and %d files", sum, len(tt.want), tt.args.n)
			}
			if got := tree(t, root); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Emit() tree = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEmitter_Emit_roundTrip(t *testing.T) {
	root := t.TempDir()
	emit(t, root, 7, 3, true)

	for i, r := range records(7) {
		job := fmt.Sprintf("job%d", i/3+1)
		data, err := os.ReadFile(filepath.Join(root, job, DataInputs, fmt.Sprintf("fold_input_%d.json", i+1)))
		if err != nil {
			t.Fatal(err)
		}

		var in alphafold.Input
		if err := json.Unmarshal(data, &in); err != nil {
			t.Fatal(err)
		}
		if want := alphafold.NewInput(r.ID, r.Seq); !reflect.DeepEqual(in, want) {
			t.Errorf("%s: fold input = %+v, want %+v", job, in, want)
		}
	}
}

func TestEmitter_Emit_idempotent(t *testing.T) {
	root := t.TempDir()
	read := func() map[string][]byte {
		out := map[string][]byte{}
		filepath.Walk(root, func(p string, info os.FileInfo, err error) error {
			if err == nil && !info.IsDir() {
				out[p], _ = os.ReadFile(p)
			}
			return err
		})
		return out
	}

	emit(t, root, 6, 5, true)
	first := read()
	emit(t, root, 6, 5, true)
	second := read()

	if len(first) != 6 || !reflect.DeepEqual(first, second) {
		t.Errorf("second run changed the output: %d files then %d", len(first), len(second))
	}
}

func TestEmitter_Emit_bucket(t *testing.T) {
	ctx := context.Background()
	mem := memblob.OpenBucket(nil)
	s := sink.NewBucket(mem, "mem://")
	defer s.Close()

	batches, _ := Partition(records(2), 0, false)
	e := &Emitter{Sink: s, Log: logr.Discard()}
	if _, err := e.Emit(ctx, batches, false); err != nil {
		t.Fatal(err)
	}

	for _, key := range []string{"job1/inference_inputs/", "job2/inference_inputs/", "job2/data_inputs/fold_input.json"} {
		if ok, err := mem.Exists(ctx, key); err != nil || !ok {
			t.Errorf("bucket is missing %s (err=%v)", key, err)
		}
	}

	data, err := mem.ReadAll(ctx, "job2/data_inputs/fold_input.json")
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Contains(data, []byte(`"name": "seq2"`)) {
		t.Errorf("job2 holds the wrong record:\n%s", data)
	}
}

// failingSink fails every write after the first `ok`
type failingSink struct {
	sink.Sink
	ok      int
	written []string
}

var errDiskFull = errors.New("no space left on device")

func (f *failingSink) WriteFile(ctx context.Context, name string, data []byte) error {
	if len(f.written) == f.ok {
		return errDiskFull
	}
	f.written = append(f.written, name)
	return f.Sink.WriteFile(ctx, name, data)
}

func TestEmitter_Emit_stopsOnError(t *testing.T) {
	root := t.TempDir()
	fs := &failingSink{Sink: sink.NewDir(root), ok: 2}

	batches, _ := Partition(records(4), 0, false)
	e := &Emitter{Sink: fs, Log: logr.Discard()}
	sum, err := e.Emit(context.Background(), batches, false)

	if !errors.Is(err, errDiskFull) {
		t.Fatalf("Emit() error = %v, want %v", err, errDiskFull)
	}
	if !strings.Contains(err.Error(), "job3/data_inputs/fold_input.json") {
		t.Errorf("error does not name the failing file: %v", err)
	}
	if sum.Files != 2 || sum.Jobs != 3 {
		t.Errorf("Emit() summary = %+v, want 3 jobs and 2 files", sum)
	}

	// written files stay, later jobs are never created
	if _, err := os.Stat(filepath.Join(root, "job2", DataInputs, "fold_input.json")); err != nil {
		t.Errorf("partial output was removed: %v", err)
	}
	if _, err := os.Stat(filepath.Join(root, "job4")); !os.IsNotExist(err) {
		t.Errorf("job4 should not exist, stat err = %v", err)
	}
}

func TestPlan(t *testing.T) {
	batches, _ := Partition([]fasta.Record{{ID: "a", Seq: "M"}, {ID: "b", Seq: "K"}, {ID: "c", Seq: "V"}}, 2, true)

	var buf bytes.Buffer
	if err := NewPlan(batches, true).WriteYAML(&buf); err != nil {
		t.Fatal(err)
	}

	want := `batched: true
records: 3
jobs:
  - dir: job1
    files:
      - file: job1/data_inputs/fold_input_1.json
        record: a
      - file: job1/data_inputs/fold_input_2.json
        record: b
  - dir: job2
    files:
      - file: job2/data_inputs/fold_input_3.json
        record: c
`
	if got := buf.String(); got != want {
		t.Errorf("WriteYAML() =\n%s\nwant\n%s", got, want)
	}
}
