package paf_test

import (
	"strings"
	"testing"

	"github.com/ComparativeGenomicsToolkit/paffy/cigar"
	"github.com/ComparativeGenomicsToolkit/paffy/paf"
	"github.com/stretchr/testify/assert"
)

func TestParseNoCigar(t *testing.T) {
	r, err := paf.Parse([]byte("query1\t100\t0\t50\t+\ttarget1\t200\t10\t60\t50\t50\t255"), true)
	assert.NoError(t, err)
	assert.Equal(t, "query1", r.QueryName)
	assert.Equal(t, int64(100), r.QueryLength)
	assert.Equal(t, int64(0), r.QueryStart)
	assert.Equal(t, int64(50), r.QueryEnd)
	assert.True(t, r.SameStrand)
	assert.Equal(t, "target1", r.TargetName)
	assert.Equal(t, int64(10), r.TargetStart)
	assert.Equal(t, int64(60), r.TargetEnd)
	assert.Nil(t, r.Cigar)
	assert.Nil(t, r.CigarRaw)
}

func TestParseCigarTag(t *testing.T) {
	r, err := paf.Parse([]byte("q\t8\t0\t8\t+\tt\t7\t0\t7\t5\t10\t60\tcg:Z:5M3I2D"), true)
	assert.NoError(t, err)
	assert.Equal(t, 3, r.Cigar.Len())
	assert.Equal(t, cigar.Op{Kind: cigar.Match, Length: 5}, *r.Cigar.At(0))
	assert.Equal(t, cigar.Op{Kind: cigar.QueryInsert, Length: 3}, *r.Cigar.At(1))
	assert.Equal(t, cigar.Op{Kind: cigar.QueryDelete, Length: 2}, *r.Cigar.At(2))
}

func TestParseDeferredCigar(t *testing.T) {
	r, err := paf.Parse([]byte("q\t8\t0\t8\t+\tt\t7\t0\t7\t5\t10\t60\tcg:Z:5M3I2D"), false)
	assert.NoError(t, err)
	assert.Nil(t, r.Cigar)
	assert.Equal(t, "5M3I2D", string(r.CigarRaw))
}

func TestParseBadStrand(t *testing.T) {
	_, err := paf.Parse([]byte("q\t8\t0\t8\tz\tt\t7\t0\t7\t5\t10\t60"), true)
	assert.Error(t, err)
}

func TestParseTags(t *testing.T) {
	r, err := paf.Parse([]byte("q\t8\t0\t8\t+\tt\t7\t0\t7\t5\t10\t60\ttp:A:S\tAS:i:42\ttl:i:2\tcn:i:3\ts1:i:4"), true)
	assert.NoError(t, err)
	assert.Equal(t, byte('S'), r.Type)
	assert.Equal(t, int64(42), r.Score)
	assert.Equal(t, int64(2), r.TileLevel)
	assert.Equal(t, int64(3), r.ChainID)
	assert.Equal(t, int64(4), r.ChainScore)
}

func TestParseMalformedTagSkipped(t *testing.T) {
	r, err := paf.Parse([]byte("q\t8\t0\t8\t+\tt\t7\t0\t7\t5\t10\t60\tnotatag\tAS:i:1"), true)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), r.Score)
}

func TestPrintFixedPoint(t *testing.T) {
	line := "q\t8\t0\t8\t+\tt\t7\t0\t7\t5\t10\t60\ttp:A:P\tAS:i:42\tcg:Z:5M3I"
	r, err := paf.Parse([]byte(line), true)
	assert.NoError(t, err)
	printed := paf.Print(r)
	assert.Equal(t, line, printed)

	r2, err := paf.Parse([]byte(printed), true)
	assert.NoError(t, err)
	assert.Equal(t, paf.Print(r2), printed)
}

func TestPrintSynthesizesTpFromTileLevel(t *testing.T) {
	r, err := paf.Parse([]byte("q\t8\t0\t8\t+\tt\t7\t0\t7\t5\t10\t60\ttl:i:2"), true)
	assert.NoError(t, err)
	assert.Contains(t, paf.Print(r), "tp:A:S")

	r2, err := paf.Parse([]byte("q\t8\t0\t8\t+\tt\t7\t0\t7\t5\t10\t60\ttl:i:1"), true)
	assert.NoError(t, err)
	assert.Contains(t, paf.Print(r2), "tp:A:P")
}

func TestReaderWriter(t *testing.T) {
	in := "q1\t8\t0\t8\t+\tt1\t7\t0\t7\t5\t10\t60\tcg:Z:5M3I\nq2\t8\t0\t8\t-\tt2\t7\t0\t7\t5\t10\t60\n"
	rd := paf.NewReader(strings.NewReader(in), true)

	var out strings.Builder
	wr := paf.NewWriter(&out)
	for {
		r, err := rd.Read()
		if r == nil {
			break
		}
		assert.NoError(t, err)
		assert.NoError(t, wr.Write(r))
	}
	assert.Equal(t, in, out.String())
}
