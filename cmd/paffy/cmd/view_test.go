package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempFile(t *testing.T, dir, name, contents string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(contents), 0644))
	return p
}

// TestRunViewAccumulatesStatsWithoutAggregatePrinting exercises the -u
// threshold assertion with -s omitted: total must still reflect the real
// per-record stats rather than an unaccumulated zero Stats{}, so a -u
// threshold at or below the true identity must not fatally abort.
func TestRunViewAccumulatesStatsWithoutAggregatePrinting(t *testing.T) {
	dir := t.TempDir()
	pafPath := writeTempFile(t, dir, "in.paf", "q\t4\t0\t4\t+\tt\t4\t0\t4\t4\t4\t60\tcg:Z:4M\n")
	fastaPath := writeTempFile(t, dir, "seqs.fa", ">q\nAATT\n>t\nAATT\n")
	outPath := filepath.Join(dir, "out.txt")

	f := viewFlags{
		input:               pafPath,
		output:              outPath,
		noPerAlignmentStats: true,
		printAggregateStats: false,
		minIdentity:         0.5,
		minAlignedBases:     1,
	}
	err := runView(f, []string{fastaPath})
	assert.NoError(t, err)
}

// TestRunViewMismatchedIdentityStillAccumulates checks the mismatch case:
// with real mismatches present (true identity 0.5) and -s never passed, a
// -u threshold of 0.4 must not fatally abort, which holds only if the loop
// body -- not just the gate below it -- accumulates every record.
func TestRunViewMismatchedIdentityStillAccumulates(t *testing.T) {
	dir := t.TempDir()
	pafPath := writeTempFile(t, dir, "in.paf", "q\t4\t0\t4\t+\tt\t4\t0\t4\t2\t4\t60\tcg:Z:4M\n")
	fastaPath := writeTempFile(t, dir, "seqs.fa", ">q\nAATT\n>t\nAACC\n")
	outPath := filepath.Join(dir, "out.txt")

	f := viewFlags{
		input:               pafPath,
		output:              outPath,
		noPerAlignmentStats: true,
		printAggregateStats: false,
		minIdentity:         0.4,
		minAlignedBases:     1,
	}
	err := runView(f, []string{fastaPath})
	assert.NoError(t, err)
}
