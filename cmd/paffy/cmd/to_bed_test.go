package cmd

import (
	"bufio"
	"bytes"
	"testing"

	"github.com/ComparativeGenomicsToolkit/paffy/paf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteBedRunsMergesAdjacentEqualRuns(t *testing.T) {
	cm := paf.NewCoverageMap("chr1", 10)
	// counts: 0 0 1 1 1 0 2 2 0 0
	for _, i := range []int{2, 3, 4} {
		cm.Counts[i] = 1
	}
	for _, i := range []int{6, 7} {
		cm.Counts[i] = 2
	}

	var buf bytes.Buffer
	w := bufio.NewWriter(&buf)
	require.NoError(t, writeBedRuns(w, cm))
	require.NoError(t, w.Flush())

	assert.Equal(t, "chr1\t2\t5\t1\nchr1\t6\t8\t2\n", buf.String())
}

func TestWriteBedRunsNoCoverage(t *testing.T) {
	cm := paf.NewCoverageMap("chr1", 5)
	var buf bytes.Buffer
	w := bufio.NewWriter(&buf)
	require.NoError(t, writeBedRuns(w, cm))
	require.NoError(t, w.Flush())
	assert.Equal(t, "", buf.String())
}
