// Package cmd is for command line interactions with the foldprep application
package cmd

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/sameerd/alphafold3/config"
	"github.com/sameerd/alphafold3/internal/fasta"
	"github.com/sameerd/alphafold3/internal/layout"
	"github.com/sameerd/alphafold3/internal/logging"
	"github.com/sameerd/alphafold3/internal/sink"
)

var (
	// stderr is for logging to Stderr (without an annoying timestamp)
	stderr = log.New(os.Stderr, "", 0)
)

// RootCmd turns a multi-FASTA file into AlphaFold3 job directories.
var RootCmd = &cobra.Command{
	Use:   "foldprep <fasta_file> [batch_size]",
	Short: "Create AlphaFold3 job directories from a multi-FASTA file",
	Long: `Create AlphaFold3 job directories from a multi-FASTA file.

Every sequence gets a fold input JSON in a numbered job directory:

  job1
  ├── data_inputs
  │   └── fold_input.json
  └── inference_inputs

With a batch_size, sequences are grouped that many to a job and the fold
inputs are numbered by their position in the FASTA file:

  job1/data_inputs/fold_input_1.json ... fold_input_<batch_size>.json
  job2/data_inputs/fold_input_<batch_size+1>.json ...

inference_inputs is left empty for the data pipeline's output.`,
	Example: `  foldprep proteins.fa
  foldprep proteins.fa 5
  foldprep proteins.fa.gz 10 --out s3://af3-jobs?region=us-east-1`,
	Args:          cobra.RangeArgs(1, 2),
	RunE:          run,
	Version:       "0.1.0",
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the RootCmd.
func Execute() {
	if err := RootCmd.ExecuteContext(context.Background()); err != nil {
		stderr.Fatalf("error: %v", err)
	}
}

// run parses the FASTA, splits it into jobs and writes them to the output root.
func run(cmd *cobra.Command, args []string) error {
	// only the batch_size argument turns batching on
	batched := len(args) > 1

	var batchSize int
	if batched {
		var err error
		if batchSize, err = parseBatchSize(args[1]); err != nil {
			return err
		}
	}

	// arguments are fine, errors past here aren't usage errors
	cmd.SilenceUsage = true

	conf, err := config.New()
	if err != nil {
		return err
	}

	logger, err := logging.New(conf.Verbose)
	if err != nil {
		return err
	}

	records, err := fasta.ReadFile(args[0])
	if err != nil {
		return err
	}
	logger.V(1).Info("read FASTA", "path", args[0], "records", len(records))

	batches, err := layout.Partition(records, batchSize, batched)
	if err != nil {
		return err
	}

	if conf.DryRun {
		return layout.NewPlan(batches, batched).WriteYAML(cmd.OutOrStdout())
	}

	out, err := sink.Open(cmd.Context(), conf.Out)
	if err != nil {
		return err
	}

	emitter := &layout.Emitter{Sink: out, Log: logger}
	sum, err := emitter.Emit(cmd.Context(), batches, batched)
	if err != nil {
		out.Close()
		return err
	}
	logger.V(1).Info("jobs written", "jobs", sum.Jobs, "files", sum.Files, "root", out.String())

	where := out.String()
	if filepath.Clean(where) == config.DefaultOut {
		where = "the current directory"
	}
	fmt.Fprintf(cmd.OutOrStdout(), "JSON files saved under respective job folders in %s\n", where)

	return out.Close()
}

// parseBatchSize reads the batch_size argument, a positive integer.
func parseBatchSize(arg string) (int, error) {
	size, err := strconv.Atoi(arg)
	if err != nil || size < 1 {
		return 0, fmt.Errorf("invalid batch_size %q: %w", arg, layout.ErrInvalidBatchSize)
	}
	return size, nil
}

// bindFlags connects the persistent flags to their Viper settings.
func bindFlags(cmd *cobra.Command) {
	for _, name := range []string{"out", "settings", "verbose", "dry-run"} {
		viper.BindPFlag(name, cmd.PersistentFlags().Lookup(name))
	}
}

// set flags
func init() {
	RootCmd.PersistentFlags().StringP("out", "o", config.DefaultOut, "directory or bucket URL (s3://, gs://, mem://) to create the jobs in")
	RootCmd.PersistentFlags().StringP("settings", "s", "", "YAML settings file")
	RootCmd.PersistentFlags().BoolP("verbose", "v", false, "log every file written")
	RootCmd.PersistentFlags().BoolP("dry-run", "n", false, "print the job layout as YAML without writing it")

	bindFlags(RootCmd)
}
