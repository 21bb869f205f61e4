package paf_test

import (
	"testing"

	"github.com/ComparativeGenomicsToolkit/paffy/biosimd"
	"github.com/ComparativeGenomicsToolkit/paffy/cigar"
	"github.com/ComparativeGenomicsToolkit/paffy/paf"
	"github.com/stretchr/testify/assert"
)

func mustParse(t *testing.T, line string) *paf.Record {
	t.Helper()
	r, err := paf.Parse([]byte(line), true)
	assert.NoError(t, err)
	return r
}

func TestInvertSameStrand(t *testing.T) {
	r := mustParse(t, "q\t8\t0\t8\t+\tt\t7\t0\t7\t5\t10\t60\tcg:Z:5M3I2D")
	paf.Invert(r)
	assert.Equal(t, "t", r.QueryName)
	assert.Equal(t, "q", r.TargetName)
	assert.True(t, r.SameStrand)
	assert.Equal(t, "5M3D2I", r.Cigar.String())
}

func TestInvertOppositeStrand(t *testing.T) {
	r := mustParse(t, "q\t8\t0\t8\t-\tt\t7\t0\t7\t5\t10\t60\tcg:Z:5M3I")
	paf.Invert(r)
	assert.Equal(t, "3D5M", r.Cigar.String())
}

func TestInvertInvolution(t *testing.T) {
	r := mustParse(t, "q\t8\t0\t8\t-\tt\t7\t0\t7\t5\t10\t60\tcg:Z:5M3I")
	orig := paf.Print(r)
	paf.Invert(r)
	paf.Invert(r)
	assert.Equal(t, orig, paf.Print(r))
}

func TestShatter(t *testing.T) {
	r := mustParse(t, "q\t7\t0\t7\t+\tt\t9\t0\t9\t7\t9\t60\tcg:Z:3M2D4M")
	shards := paf.Shatter(r)
	assert.Len(t, shards, 2)
	assert.Equal(t, int64(0), shards[0].QueryStart)
	assert.Equal(t, int64(3), shards[0].QueryEnd)
	assert.Equal(t, int64(0), shards[0].TargetStart)
	assert.Equal(t, int64(3), shards[0].TargetEnd)
	assert.Equal(t, int64(3), shards[1].QueryStart)
	assert.Equal(t, int64(7), shards[1].QueryEnd)
	assert.Equal(t, int64(5), shards[1].TargetStart)
	assert.Equal(t, int64(9), shards[1].TargetEnd)
}

func TestShatterConservation(t *testing.T) {
	r := mustParse(t, "q\t7\t0\t7\t+\tt\t9\t0\t9\t7\t9\t60\tcg:Z:3M2D4M")
	shards := paf.Shatter(r)
	var total int64
	for _, s := range shards {
		total += paf.AlignedBases(s)
	}
	assert.Equal(t, int64(7), total)
}

func TestTrimEnds(t *testing.T) {
	r := mustParse(t, "q\t10\t0\t10\t+\tt\t10\t0\t10\t10\t10\t60\tcg:Z:10M")
	paf.TrimEnds(r, 2)
	assert.Equal(t, "6M", r.Cigar.String())
	assert.Equal(t, int64(2), r.QueryStart)
	assert.Equal(t, int64(8), r.QueryEnd)
	assert.Equal(t, int64(2), r.TargetStart)
	assert.Equal(t, int64(8), r.TargetEnd)
}

func TestEncodeMismatches(t *testing.T) {
	r := mustParse(t, "q\t4\t0\t4\t+\tt\t4\t0\t4\t4\t4\t60\tcg:Z:4M")
	paf.EncodeMismatches(r, []byte("AATT"), []byte("AACC"), biosimd.ComplementByte)
	assert.Equal(t, "2=2X", r.Cigar.String())
}

func TestRemoveMismatches(t *testing.T) {
	s, err := cigar.Parse([]byte("3=2X1I"))
	assert.NoError(t, err)
	r := mustParse(t, "q\t6\t0\t6\t+\tt\t5\t0\t5\t5\t6\t60")
	r.Cigar = s
	paf.RemoveMismatches(r)
	assert.Equal(t, "5M1I", r.Cigar.String())
}

func TestRemoveThenEncodeRoundTrip(t *testing.T) {
	r := mustParse(t, "q\t4\t0\t4\t+\tt\t4\t0\t4\t4\t4\t60\tcg:Z:2=2X")
	paf.RemoveMismatches(r)
	assert.Equal(t, "4M", r.Cigar.String())
	paf.EncodeMismatches(r, []byte("AATT"), []byte("AACC"), biosimd.ComplementByte)
	assert.Equal(t, "2=2X", r.Cigar.String())
}

func TestStatsCalc(t *testing.T) {
	r := mustParse(t, "q\t10\t0\t10\t+\tt\t10\t0\t10\t7\t10\t60\tcg:Z:3M2=1X2I2D")
	var s paf.Stats
	paf.StatsCalc(r, &s, true)
	assert.Equal(t, int64(5), s.Matches)
	assert.Equal(t, int64(1), s.Mismatches)
	assert.Equal(t, int64(1), s.QueryInserts)
	assert.Equal(t, int64(2), s.QueryInsertBases)
	assert.Equal(t, int64(1), s.QueryDeletes)
	assert.Equal(t, int64(2), s.QueryDeleteBases)
}

func TestIncreaseAlignmentLevelCounts(t *testing.T) {
	r := mustParse(t, "q\t10\t2\t5\t+\tt\t10\t0\t3\t3\t3\t60\tcg:Z:3M")
	cm := paf.NewCoverageMap("q", 10)
	err := paf.IncreaseAlignmentLevelCounts(cm, r)
	assert.NoError(t, err)
	assert.Equal(t, []uint16{0, 0, 1, 1, 1, 0, 0, 0, 0, 0}, cm.Counts)
}

func TestSaturatingCounter(t *testing.T) {
	cm := paf.NewCoverageMap("q", 1)
	cm.Counts[0] = paf.SaturatingMax
	r := mustParse(t, "q\t1\t0\t1\t+\tt\t1\t0\t1\t1\t1\t60\tcg:Z:1M")
	err := paf.IncreaseAlignmentLevelCounts(cm, r)
	assert.NoError(t, err)
	assert.Equal(t, uint16(paf.SaturatingMax), cm.Counts[0])
}

func TestTrimUnreliableTailsMonotonic(t *testing.T) {
	r := mustParse(t, "q\t20\t0\t20\t+\tt\t20\t0\t20\t14\t20\t60\tcg:Z:1X1X1X5=1X1X1X10=")
	var before paf.Stats
	paf.StatsCalc(r, &before, true)
	identityBefore := before.Identity()

	paf.TrimUnreliableTails(r, 0.5, 0.3)

	var after paf.Stats
	paf.StatsCalc(r, &after, true)
	assert.GreaterOrEqual(t, after.Identity(), identityBefore)
}
