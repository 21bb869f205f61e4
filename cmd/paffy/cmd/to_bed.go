package cmd

import (
	"bufio"
	"context"
	"strconv"

	"github.com/ComparativeGenomicsToolkit/paffy/paf"
	"github.com/grailbio/base/cmdutil"
	"github.com/pkg/errors"
	"v.io/x/lib/cmdline"
)

func newCmdToBed() *cmdline.Command {
	cmd := &cmdline.Command{
		Name:  "to_bed",
		Short: "Build a BED-format alignment-depth summary of one query sequence",
	}
	input := cmd.Flags.String("i", "", "Input paf file. If not specified reads from stdin")
	output := cmd.Flags.String("o", "", "Output BED file. If not specified outputs to stdout")
	name := cmd.Flags.String("name", "", "Query sequence name to summarize")
	length := cmd.Flags.Int64("length", -1, "Length of the query sequence named by -name")
	cmd.Runner = cmdutil.RunnerFunc(func(env *cmdline.Env, argv []string) error {
		if *name == "" {
			return errors.New("to_bed requires -name")
		}
		if *length < 0 {
			return errors.New("to_bed requires -length")
		}
		return runToBed(*input, *output, *name, *length)
	})
	return cmd
}

func runToBed(inputPath, outputPath, name string, length int64) error {
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

	cm := paf.NewCoverageMap(name, length)
	r := paf.NewReader(in, true)
	for {
		rec, rerr := r.Read()
		if rerr != nil {
			break
		}
		if rec.QueryName != name {
			continue
		}
		if err := paf.IncreaseAlignmentLevelCounts(cm, rec); err != nil {
			return err
		}
	}

	bw := bufio.NewWriter(out)
	if err := writeBedRuns(bw, cm); err != nil {
		return err
	}
	return bw.Flush()
}

// writeBedRuns emits maximal runs of positions with count > 0 as BED
// intervals, one per run, with the run's modal count (ties broken toward
// the lowest count) as the BED score column.
func writeBedRuns(w *bufio.Writer, cm *paf.CoverageMap) error {
	n := int64(len(cm.Counts))
	runStart := int64(-1)
	counts := make(map[uint16]int64)

	flush := func(end int64) error {
		if runStart < 0 {
			return nil
		}
		var modalCount uint16
		var modalFreq int64 = -1
		for c, freq := range counts {
			if freq > modalFreq || (freq == modalFreq && c < modalCount) {
				modalCount, modalFreq = c, freq
			}
		}
		_, err := w.WriteString(bedLine(cm.Name, runStart, end, modalCount))
		for k := range counts {
			delete(counts, k)
		}
		runStart = -1
		return err
	}

	for i := int64(0); i < n; i++ {
		if cm.Counts[i] == 0 {
			if err := flush(i); err != nil {
				return err
			}
			continue
		}
		if runStart < 0 {
			runStart = i
		}
		counts[cm.Counts[i]]++
	}
	return flush(n)
}

func bedLine(name string, start, end int64, count uint16) string {
	buf := make([]byte, 0, len(name)+32)
	buf = append(buf, name...)
	buf = append(buf, '\t')
	buf = strconv.AppendInt(buf, start, 10)
	buf = append(buf, '\t')
	buf = strconv.AppendInt(buf, end, 10)
	buf = append(buf, '\t')
	buf = strconv.AppendInt(buf, int64(count), 10)
	buf = append(buf, '\n')
	return string(buf)
}
