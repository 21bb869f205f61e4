package cmd

import (
	"context"

	"blainsmith.com/go/seahash"
	"github.com/ComparativeGenomicsToolkit/paffy/paf"
	"github.com/grailbio/base/cmdutil"
	"v.io/x/lib/cmdline"
)

func newCmdDedupe() *cmdline.Command {
	cmd := &cmdline.Command{
		Name:  "dedupe",
		Short: "Drop records that exactly duplicate the coordinates of an earlier record",
	}
	input := cmd.Flags.String("i", "", "Input paf file. If not specified reads from stdin")
	output := cmd.Flags.String("o", "", "Output paf file. If not specified outputs to stdout")
	cmd.Runner = cmdutil.RunnerFunc(func(env *cmdline.Env, argv []string) error {
		return runDedupe(*input, *output)
	})
	return cmd
}

// dedupeKey builds the byte string that identifies a record's alignment
// identity for deduplication purposes: the coordinate quadruple plus
// strand, not the score/tag fields, matches SPEC_FULL.md's definition of
// "exact duplicate".
func dedupeKey(r *paf.Record) []byte {
	buf := make([]byte, 0, len(r.QueryName)+len(r.TargetName)+40)
	buf = append(buf, r.QueryName...)
	buf = append(buf, 0)
	buf = appendInt(buf, r.QueryStart)
	buf = appendInt(buf, r.QueryEnd)
	buf = append(buf, r.TargetName...)
	buf = append(buf, 0)
	buf = appendInt(buf, r.TargetStart)
	buf = appendInt(buf, r.TargetEnd)
	if r.SameStrand {
		buf = append(buf, '+')
	} else {
		buf = append(buf, '-')
	}
	return buf
}

func appendInt(buf []byte, v int64) []byte {
	var tmp [8]byte
	for i := range tmp {
		tmp[i] = byte(v >> (8 * i))
	}
	return append(buf, tmp[:]...)
}

func sameAlignment(a, b *paf.Record) bool {
	return a.QueryName == b.QueryName && a.QueryStart == b.QueryStart && a.QueryEnd == b.QueryEnd &&
		a.TargetName == b.TargetName && a.TargetStart == b.TargetStart && a.TargetEnd == b.TargetEnd &&
		a.SameStrand == b.SameStrand
}

func runDedupe(inputPath, outputPath string) error {
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
	seen := make(map[uint64][]*paf.Record)
	for {
		rec, rerr := r.Read()
		if rerr != nil {
			break
		}
		h := seahash.Sum64(dedupeKey(rec))
		dup := false
		for _, prior := range seen[h] {
			if sameAlignment(prior, rec) {
				dup = true
				break
			}
		}
		if dup {
			continue
		}
		seen[h] = append(seen[h], rec)
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	return nil
}
