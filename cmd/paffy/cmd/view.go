package cmd

import (
	"bufio"
	"context"
	"fmt"

	"github.com/ComparativeGenomicsToolkit/paffy/biosimd"
	"github.com/ComparativeGenomicsToolkit/paffy/cigar"
	"github.com/ComparativeGenomicsToolkit/paffy/paf"
	"github.com/grailbio/base/cmdutil"
	"github.com/grailbio/base/log"
	"github.com/pkg/errors"
	"v.io/x/lib/cmdline"
)

type viewFlags struct {
	input               string
	output              string
	includeAlignment    bool
	printAggregateStats bool
	noPerAlignmentStats bool
	minIdentity         float64
	minAlignedBases     int64
}

func newCmdView() *cmdline.Command {
	cmd := &cmdline.Command{
		Name:     "view",
		Short:    "Pretty-print PAF alignments against their FASTA sequences",
		ArgsName: "fastaFile ...",
		ArgsLong: "FASTA files covering every query and target sequence name referenced by the input PAF",
	}
	flags := viewFlags{}
	cmd.Flags.StringVar(&flags.input, "i", "", "Input paf file. If not specified reads from stdin")
	cmd.Flags.StringVar(&flags.output, "o", "", "Output file. If not specified outputs to stdout")
	cmd.Flags.BoolVar(&flags.includeAlignment, "a", false, "Include a base-level alignment block in the output")
	cmd.Flags.BoolVar(&flags.printAggregateStats, "s", false, "Print an aggregate stats line at the end")
	cmd.Flags.BoolVar(&flags.noPerAlignmentStats, "t", false, "Do not print a stats line per alignment")
	cmd.Flags.Float64Var(&flags.minIdentity, "u", 0.0, "Assert aggregate identity is >= this fraction")
	cmd.Flags.Int64Var(&flags.minAlignedBases, "v", 0, "Assert total aligned bases is >= this")
	cmd.Runner = cmdutil.RunnerFunc(func(env *cmdline.Env, argv []string) error {
		if len(argv) == 0 {
			return errors.New("view requires at least one fasta file")
		}
		return runView(flags, argv)
	})
	return cmd
}

func runView(f viewFlags, fastaPaths []string) error {
	ctx := context.Background()
	seqs, err := loadFastaFiles(ctx, fastaPaths)
	if err != nil {
		return err
	}

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
	bw := bufio.NewWriter(out)

	r := paf.NewReader(in, true)
	var total paf.Stats
	var totalAlignments int64
	for {
		rec, rerr := r.Read()
		if rerr != nil {
			break
		}
		querySeq, ok := seqs[rec.QueryName]
		if !ok {
			return errors.Errorf("no query sequence named %q found", rec.QueryName)
		}
		targetSeq, ok := seqs[rec.TargetName]
		if !ok {
			return errors.Errorf("no target sequence named %q found", rec.TargetName)
		}

		paf.EncodeMismatches(rec, []byte(querySeq), []byte(targetSeq), biosimd.ComplementByte)

		if !f.noPerAlignmentStats {
			prettyPrint(bw, rec, querySeq, targetSeq, f.includeAlignment)
		}
		paf.StatsCalc(rec, &total, false)
		totalAlignments++
	}

	if f.printAggregateStats {
		indelBases := total.QueryInsertBases + total.QueryDeleteBases
		identityWithGaps := 0.0
		if total.AlignedBases()+indelBases > 0 {
			identityWithGaps = float64(total.Matches) / float64(total.AlignedBases()+indelBases)
		}
		fmt.Fprintf(bw, "Total-alignments:%d\tAvg-Identity:%f\tAvg-Identity-with-gaps:%f\tAligned-bases:%d\t"+
			"Aligned-bases-with-gaps:%d\tQuery-inserts:%d\tQuery-deletes:%d\n",
			totalAlignments, total.Identity(), identityWithGaps, total.AlignedBases(),
			total.AlignedBases()+indelBases, total.QueryInserts, total.QueryDeletes)
	}

	if err := bw.Flush(); err != nil {
		return err
	}

	if total.Identity() < f.minIdentity {
		log.Fatalf("aggregate identity %f is below the required threshold %f", total.Identity(), f.minIdentity)
	}
	if total.AlignedBases() < f.minAlignedBases {
		log.Fatalf("aggregate aligned bases %d is below the required threshold %d", total.AlignedBases(), f.minAlignedBases)
	}
	return nil
}

// prettyPrint writes a one-line summary of rec followed, if includeAlignment
// is set, by wrapped 150-column target/query/match-marker rows -- the Go
// equivalent of the original tool's three-line stacked alignment block.
func prettyPrint(w *bufio.Writer, rec *paf.Record, querySeq, targetSeq string, includeAlignment bool) {
	var s paf.Stats
	paf.StatsCalc(rec, &s, true)
	indelBases := s.QueryInsertBases + s.QueryDeleteBases
	identityWithGaps := 0.0
	if s.AlignedBases()+indelBases > 0 {
		identityWithGaps = float64(s.Matches) / float64(s.AlignedBases()+indelBases)
	}
	fmt.Fprintf(w, "Query:%s\tQ-start:%d\tQ-length:%d\tTarget:%s\tT-start:%d\tT-length:%d\tSame-strand:%v\t"+
		"Score:%d\tIdentity:%f\tIdentity-with-gaps:%f\tAligned-bases:%d\tQuery-inserts:%d\tQuery-deletes:%d\n",
		rec.QueryName, rec.QueryStart, rec.QuerySpan(), rec.TargetName, rec.TargetStart, rec.TargetSpan(),
		rec.SameStrand, rec.Score, s.Identity(), identityWithGaps, s.AlignedBases(), s.QueryInserts, s.QueryDeletes)

	if !includeAlignment || rec.Cigar == nil {
		return
	}
	targetAlign, queryAlign, markAlign := buildAlignmentRows(rec, []byte(querySeq), []byte(targetSeq))
	const window = 150
	for l := 0; l < len(targetAlign); l += window {
		h := l + window
		if h > len(targetAlign) {
			h = len(targetAlign)
		}
		w.Write(targetAlign[l:h])
		w.WriteByte('\n')
		w.Write(queryAlign[l:h])
		w.WriteByte('\n')
		w.Write(markAlign[l:h])
		w.WriteByte('\n')
	}
}

// buildAlignmentRows walks rec's operation string column by column,
// producing three parallel byte rows: the target base, the query base
// (reverse-complemented if rec is on the opposite strand), and a '*'/' '
// marker row, with '-' standing in for a gap on whichever side an indel
// consumes.
func buildAlignmentRows(rec *paf.Record, querySeq, targetSeq []byte) (targetAlign, queryAlign, markAlign []byte) {
	maxLen := rec.QuerySpan() + rec.TargetSpan()
	targetAlign = make([]byte, 0, maxLen)
	queryAlign = make([]byte, 0, maxLen)
	markAlign = make([]byte, 0, maxLen)

	tj := rec.TargetStart
	qi := int64(0)
	for ci := 0; ci < rec.Cigar.Len(); ci++ {
		op := rec.Cigar.At(ci)
		for l := int64(0); l < op.Length; l++ {
			m, n := byte('-'), byte('-')
			if op.Kind != cigar.QueryInsert {
				m = targetSeq[tj]
				tj++
			}
			if op.Kind != cigar.QueryDelete {
				if rec.SameStrand {
					n = querySeq[rec.QueryStart+qi]
				} else {
					n = biosimd.ComplementByte(querySeq[rec.QueryEnd-1-qi])
				}
				qi++
			}
			targetAlign = append(targetAlign, m)
			queryAlign = append(queryAlign, n)
			if upperByte(m) == upperByte(n) {
				markAlign = append(markAlign, '*')
			} else {
				markAlign = append(markAlign, ' ')
			}
		}
	}
	return targetAlign, queryAlign, markAlign
}

func upperByte(b byte) byte {
	if b >= 'a' && b <= 'z' {
		return b - ('a' - 'A')
	}
	return b
}
