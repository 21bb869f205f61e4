package cmd

import (
	"context"

	"github.com/ComparativeGenomicsToolkit/paffy/paf"
	"github.com/grailbio/base/cmdutil"
	"v.io/x/lib/cmdline"
)

func newCmdInvert() *cmdline.Command {
	cmd := &cmdline.Command{
		Name:  "invert",
		Short: "Switch query and target coordinates",
	}
	input := cmd.Flags.String("i", "", "Input paf file. If not specified reads from stdin")
	output := cmd.Flags.String("o", "", "Output paf file. If not specified outputs to stdout")
	cmd.Runner = cmdutil.RunnerFunc(func(env *cmdline.Env, argv []string) error {
		return runInvert(*input, *output)
	})
	return cmd
}

func runInvert(inputPath, outputPath string) error {
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
		paf.Invert(rec)
		if err := paf.Check(rec); err != nil {
			return err
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	return nil
}
