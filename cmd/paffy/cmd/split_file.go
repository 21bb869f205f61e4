package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/ComparativeGenomicsToolkit/paffy/paf"
	"github.com/grailbio/base/cmdutil"
	"github.com/grailbio/base/log"
	"github.com/pkg/errors"
	"v.io/x/lib/cmdline"
)

func newCmdSplitFile() *cmdline.Command {
	cmd := &cmdline.Command{
		Name:  "split_file",
		Short: "Split a PAF file into per-contig output files",
	}
	input := cmd.Flags.String("i", "", "Input paf file. If not specified reads from stdin")
	prefix := cmd.Flags.String("p", "split_", "Output file prefix (may include a directory path)")
	minLength := cmd.Flags.Int64("m", 0, "Contigs with length < m are co-located into rolling small_N.paf bins "+
		"instead of getting their own file. 0 disables binning")
	byQuery := cmd.Flags.Bool("q", false, "Demultiplex by query name instead of target name")
	cmd.Runner = cmdutil.RunnerFunc(func(env *cmdline.Env, argv []string) error {
		return runSplitFile(*input, *prefix, *minLength, *byQuery)
	})
	return cmd
}

// sanitizeFilename replaces '/' with '_' so a contig name can be used as a
// path component, matching the original tool's filename sanitization.
func sanitizeFilename(name string) string {
	return strings.ReplaceAll(name, "/", "_")
}

// smallContigBinner assigns short contigs to rolling small_N.paf bins such
// that the sum of distinct contig lengths placed in any one bin never
// exceeds the configured cap, and every record for a given contig lands in
// exactly one bin (the bin is chosen once, the first time that contig name
// is observed, then cached).
type smallContigBinner struct {
	cap        int64
	ctx        context.Context
	prefix     string
	binOf      map[string]int
	binSizes   []int64
	binWriters []*paf.Writer
	binClosers []func() error
}

func newSmallContigBinner(ctx context.Context, prefix string, cap int64) *smallContigBinner {
	return &smallContigBinner{ctx: ctx, prefix: prefix, cap: cap, binOf: make(map[string]int)}
}

// assignBin picks (and records) the bin index a not-yet-seen contig name
// belongs in, given its length: the current last bin if it still has room,
// otherwise a fresh bin. isNew reports whether a bin needs to be opened.
func (b *smallContigBinner) assignBin(name string, length int64) (idx int, isNew bool) {
	idx = len(b.binSizes) - 1
	isNew = idx < 0 || b.binSizes[idx]+length > b.cap
	if isNew {
		idx = len(b.binSizes)
		b.binSizes = append(b.binSizes, 0)
	}
	b.binOf[name] = idx
	b.binSizes[idx] += length
	return idx, isNew
}

func (b *smallContigBinner) writerFor(name string, length int64) (*paf.Writer, error) {
	if idx, ok := b.binOf[name]; ok {
		return b.binWriters[idx], nil
	}
	idx, isNew := b.assignBin(name, length)
	if isNew {
		path := fmt.Sprintf("%ssmall_%d.paf", b.prefix, idx)
		out, err := openOutput(b.ctx, path)
		if err != nil {
			return nil, err
		}
		log.Debug.Printf("opened small-contig bin: %s", path)
		b.binWriters = append(b.binWriters, paf.NewWriter(out))
		b.binClosers = append(b.binClosers, out.Close)
	}
	return b.binWriters[idx], nil
}

func (b *smallContigBinner) closeAll() error {
	for _, c := range b.binClosers {
		if err := c(); err != nil {
			return err
		}
	}
	return nil
}

func runSplitFile(inputPath, prefix string, minLength int64, byQuery bool) error {
	ctx := context.Background()
	in, err := openInput(ctx, inputPath)
	if err != nil {
		return err
	}
	defer in.Close()

	perContig := make(map[string]*paf.Writer)
	var closers []func() error
	defer func() {
		for _, c := range closers {
			c()
		}
	}()
	binner := newSmallContigBinner(ctx, prefix, minLength)

	r := paf.NewReader(in, false)
	var totalRecords int64
	for {
		rec, rerr := r.Read()
		if rerr != nil {
			break
		}
		name, length := rec.TargetName, rec.TargetLength
		if byQuery {
			name, length = rec.QueryName, rec.QueryLength
		}

		var w *paf.Writer
		if minLength > 0 && length < minLength {
			w, err = binner.writerFor(name, length)
			if err != nil {
				return err
			}
		} else {
			w = perContig[name]
			if w == nil {
				path := prefix + sanitizeFilename(name) + ".paf"
				out, oerr := openOutput(ctx, path)
				if oerr != nil {
					return errors.Wrapf(oerr, "opening per-contig output for %q", name)
				}
				log.Debug.Printf("opened output file: %s", path)
				w = paf.NewWriter(out)
				perContig[name] = w
				closers = append(closers, out.Close)
			}
		}
		if err := w.Write(rec); err != nil {
			return err
		}
		totalRecords++
	}
	closers = append(closers, binner.closeAll)
	log.Debug.Printf("split_file wrote %d records", totalRecords)
	return nil
}
