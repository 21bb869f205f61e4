package cmd

import (
	"context"

	"github.com/ComparativeGenomicsToolkit/paffy/paf"
	"github.com/grailbio/base/cmdutil"
	"github.com/grailbio/base/log"
	"v.io/x/lib/cmdline"
)

type filterFlags struct {
	input               string
	output              string
	minChainScore       int64
	minAlignmentScore   int64
	minIdentity         float64
	minIdentityWithGaps float64
	maxTileLevel        int64
	invert              bool
}

func newCmdFilter() *cmdline.Command {
	cmd := &cmdline.Command{
		Name:  "filter",
		Short: "Filter alignments based upon alignment stats",
	}
	flags := filterFlags{}
	cmd.Flags.StringVar(&flags.input, "i", "", "Input paf file. If not specified reads from stdin")
	cmd.Flags.StringVar(&flags.output, "o", "", "Output paf file. If not specified outputs to stdout")
	cmd.Flags.Int64Var(&flags.minChainScore, "min-chain-score", -1, "Filter alignments with a chain score less than this")
	cmd.Flags.Int64Var(&flags.minAlignmentScore, "min-alignment-score", -1, "Filter alignments with an alignment score less than this")
	cmd.Flags.Float64Var(&flags.minIdentity, "min-identity", -1.0, "Filter alignments with an identity less than this, exclude indels")
	cmd.Flags.Float64Var(&flags.minIdentityWithGaps, "min-identity-with-gaps", -1.0, "Filter alignments with an identity less than this, including indels")
	cmd.Flags.Int64Var(&flags.maxTileLevel, "max-tile-level", -1, "Filter alignments with a tile level greater than this")
	cmd.Flags.BoolVar(&flags.invert, "x", false, "Only output alignments that don't pass filters")
	cmd.Runner = cmdutil.RunnerFunc(func(env *cmdline.Env, argv []string) error {
		return runFilter(flags)
	})
	return cmd
}

func passesFilter(r *paf.Record, s paf.Stats, f filterFlags) bool {
	identity := s.Identity()
	indelBases := s.QueryInsertBases + s.QueryDeleteBases
	identityWithGaps := 0.0
	if s.AlignedBases()+indelBases > 0 {
		identityWithGaps = float64(s.Matches) / float64(s.AlignedBases()+indelBases)
	}
	if r.Score != paf.NoScore && r.Score < f.minAlignmentScore {
		return false
	}
	if r.ChainScore < f.minChainScore {
		return false
	}
	if f.maxTileLevel != -1 && r.TileLevel != paf.NoTileLevel && r.TileLevel > f.maxTileLevel {
		return false
	}
	if identity < f.minIdentity {
		return false
	}
	if identityWithGaps < f.minIdentityWithGaps {
		return false
	}
	return true
}

func runFilter(f filterFlags) error {
	ctx := context.Background()
	in, err := openInput(ctx, f.input)
	if err != nil {
		return err
	}
	defer in.Close()
	out, err := openOutput(ctx, f.output)
	if err != nil {
		return err
	}
	defer out.Close()

	r := paf.NewReader(in, true)
	w := paf.NewWriter(out)
	var stats paf.Stats
	for {
		rec, rerr := r.Read()
		if rerr != nil {
			break
		}
		paf.StatsCalc(rec, &stats, true)
		pass := passesFilter(rec, stats, f)
		if pass != f.invert {
			if err := w.Write(rec); err != nil {
				return err
			}
		} else if log.At(log.Debug) {
			log.Debug.Printf("filtering alignment with matches:%d identity:%f score:%d chain-score:%d",
				stats.Matches, stats.Identity(), rec.Score, rec.ChainScore)
		}
	}
	return nil
}
