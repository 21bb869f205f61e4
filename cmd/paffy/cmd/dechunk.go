package cmd

import (
	"bufio"
	"context"
	"sort"
	"strconv"
	"strings"

	"github.com/ComparativeGenomicsToolkit/paffy/interval"
	"github.com/ComparativeGenomicsToolkit/paffy/paf"
	"github.com/grailbio/base/cmdutil"
	"github.com/pkg/errors"
	"v.io/x/lib/cmdline"
)

func newCmdDechunk() *cmdline.Command {
	cmd := &cmdline.Command{
		Name:  "dechunk",
		Short: "Rewrite coordinates of records aligned against chunked FASTA sequences back onto their parent sequence",
	}
	input := cmd.Flags.String("i", "", "Input paf file. If not specified reads from stdin")
	output := cmd.Flags.String("o", "", "Output paf file. If not specified outputs to stdout")
	dechunkQuery := cmd.Flags.Bool("q", false, "The query side is chunk-encoded (name|length|start headers)")
	dechunkTarget := cmd.Flags.Bool("t", false, "The target side is chunk-encoded (name|length|start headers)")
	parentLengths := cmd.Flags.String("parent-lengths", "", "Optional tab-separated \"name\\tlength\" file of parent "+
		"sequence lengths; when a dechunked name appears here, query/target length is rewritten to it")
	sortOutput := cmd.Flags.Bool("sort", false, "Sort output records into canonical (name, start) order after "+
		"dechunking, since chunked input commonly arrives in chunk rather than parent order")
	cmd.Runner = cmdutil.RunnerFunc(func(env *cmdline.Env, argv []string) error {
		if !*dechunkQuery && !*dechunkTarget {
			return errors.New("dechunk requires -q, -t, or both")
		}
		return runDechunk(*input, *output, *dechunkQuery, *dechunkTarget, *parentLengths, *sortOutput)
	})
	return cmd
}

func loadParentLengths(ctx context.Context, path string) (map[string]int64, error) {
	lengths := make(map[string]int64)
	if path == "" {
		return lengths, nil
	}
	in, err := openInput(ctx, path)
	if err != nil {
		return nil, err
	}
	defer in.Close()

	sc := bufio.NewScanner(in)
	for sc.Scan() {
		line := sc.Text()
		if line == "" {
			continue
		}
		fields := strings.SplitN(line, "\t", 2)
		if len(fields) != 2 {
			return nil, errors.Errorf("malformed parent-lengths line %q", line)
		}
		length, err := strconv.ParseInt(fields[1], 10, 64)
		if err != nil {
			return nil, errors.Wrapf(err, "parent-lengths line %q", line)
		}
		lengths[fields[0]] = length
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(err, "reading parent-lengths file")
	}
	return lengths, nil
}

// dechunkSide rewrites one side's name/start/end/length from its
// chunk-encoded header, using parentLengths[parentName] as the rewritten
// length when present.
func dechunkSide(name string, start, end *int64, length *int64, parentLengths map[string]int64) (string, error) {
	iv, err := interval.DecodeChunkHeader(name)
	if err != nil {
		return "", err
	}
	*start += iv.Start
	*end += iv.Start
	if parentLength, ok := parentLengths[iv.Name]; ok {
		*length = parentLength
	}
	return iv.Name, nil
}

func runDechunk(inputPath, outputPath string, dechunkQuery, dechunkTarget bool, parentLengthsPath string, sortOutput bool) error {
	ctx := context.Background()
	parentLengths, err := loadParentLengths(ctx, parentLengthsPath)
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
	var buffered []*paf.Record
	for {
		rec, rerr := r.Read()
		if rerr != nil {
			break
		}
		if dechunkQuery {
			name, derr := dechunkSide(rec.QueryName, &rec.QueryStart, &rec.QueryEnd, &rec.QueryLength, parentLengths)
			if derr != nil {
				return derr
			}
			rec.QueryName = name
		}
		if dechunkTarget {
			name, derr := dechunkSide(rec.TargetName, &rec.TargetStart, &rec.TargetEnd, &rec.TargetLength, parentLengths)
			if derr != nil {
				return derr
			}
			rec.TargetName = name
		}
		if err := paf.Check(rec); err != nil {
			return err
		}
		if sortOutput {
			buffered = append(buffered, rec)
			continue
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	if !sortOutput {
		return nil
	}

	sort.SliceStable(buffered, func(i, j int) bool {
		a := interval.Interval{Name: buffered[i].TargetName, Start: buffered[i].TargetStart}
		b := interval.Interval{Name: buffered[j].TargetName, Start: buffered[j].TargetStart}
		return interval.Compare(a, b) < 0
	})
	for _, rec := range buffered {
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	return nil
}
