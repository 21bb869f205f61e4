package cmd

import (
	"context"

	"github.com/ComparativeGenomicsToolkit/paffy/paf"
	"github.com/grailbio/base/cmdutil"
	"v.io/x/lib/cmdline"
)

func newCmdTrim() *cmdline.Command {
	cmd := &cmdline.Command{
		Name:  "trim",
		Short: "Trim low-identity tails from PAF alignments",
	}
	input := cmd.Flags.String("i", "", "Input paf file. If not specified reads from stdin")
	output := cmd.Flags.String("o", "", "Output paf file. If not specified outputs to stdout")
	trimIdentity := cmd.Flags.Float64("r", 0.3, "Trim tails whose identity is lower than the overall alignment "+
		"identity reduced by this fraction of itself, i.e. below identity*(1-r) (from 0 to 1)")
	trimFraction := cmd.Flags.Float64("t", 1.0, "Fraction (from 0 to 1) of aligned bases to trim, split evenly between "+
		"the two ends of the alignment. If not -f, this is the max fraction of the alignment each identity-trimmed tail may remove")
	fixedTrim := cmd.Flags.Bool("f", false, "Trim a constant amount from each tail (set by -t) instead of trimming by identity")
	cmd.Runner = cmdutil.RunnerFunc(func(env *cmdline.Env, argv []string) error {
		return runTrim(*input, *output, *trimIdentity, *trimFraction, *fixedTrim)
	})
	return cmd
}

func runTrim(inputPath, outputPath string, trimIdentity, trimFraction float64, fixedTrim bool) error {
	ctx := context.Background()
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
		if fixedTrim {
			paf.TrimEndFraction(rec, trimFraction)
		} else {
			paf.TrimUnreliableTails(rec, trimIdentity, trimFraction)
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
