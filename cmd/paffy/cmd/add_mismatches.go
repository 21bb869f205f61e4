package cmd

import (
	"context"

	"github.com/ComparativeGenomicsToolkit/paffy/biosimd"
	"github.com/ComparativeGenomicsToolkit/paffy/paf"
	"github.com/grailbio/base/cmdutil"
	"github.com/pkg/errors"
	"v.io/x/lib/cmdline"
)

func newCmdAddMismatches() *cmdline.Command {
	cmd := &cmdline.Command{
		Name:     "add_mismatches",
		Short:    "Add or remove explicit match/mismatch (=/X) encoding to a PAF's cigar strings",
		ArgsName: "fastaFile ...",
		ArgsLong: "FASTA files covering every query and target sequence name referenced by the input PAF",
	}
	input := cmd.Flags.String("i", "", "Input paf file. If not specified reads from stdin")
	output := cmd.Flags.String("o", "", "Output paf file. If not specified outputs to stdout")
	remove := cmd.Flags.Bool("a", false, "Remove mismatches, replacing = and X encoding with M")
	cmd.Runner = cmdutil.RunnerFunc(func(env *cmdline.Env, argv []string) error {
		if len(argv) == 0 {
			return errors.New("add_mismatches requires at least one fasta file argument")
		}
		return runAddMismatches(*input, *output, *remove, argv)
	})
	return cmd
}

func runAddMismatches(inputPath, outputPath string, remove bool, fastaPaths []string) error {
	ctx := context.Background()
	seqs, err := loadFastaFiles(ctx, fastaPaths)
	if err != nil {
		return err
	}

	in, err := openInput(ctx, inputPath)
	if err != nil {
		return err
	}
	defer in.Close()
	out, err := openOutput(ctx, outputPath)
	if err != nil {
		return err
	}
	defer out.Close()

	r := paf.NewReader(in, true)
	w := paf.NewWriter(out)
	for {
		rec, rerr := r.Read()
		if rerr != nil {
			break
		}
		if remove {
			paf.RemoveMismatches(rec)
		} else {
			querySeq, ok := seqs[rec.QueryName]
			if !ok {
				return errors.Errorf("no query sequence named %q found", rec.QueryName)
			}
			targetSeq, ok := seqs[rec.TargetName]
			if !ok {
				return errors.Errorf("no target sequence named %q found", rec.TargetName)
			}
			paf.EncodeMismatches(rec, []byte(querySeq), []byte(targetSeq), biosimd.ComplementByte)
		}
		if err := paf.Check(rec); err != nil {
			return err
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	return nil
}
