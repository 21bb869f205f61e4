package interval_test

import (
	"testing"

	"github.com/ComparativeGenomicsToolkit/paffy/interval"
	"github.com/stretchr/testify/assert"
)

func TestDecodeChunkHeader(t *testing.T) {
	iv, err := interval.DecodeChunkHeader("contig1|1000000|500000")
	assert.NoError(t, err)
	assert.Equal(t, interval.Interval{Name: "contig1", Start: 500000, Length: 1000000, End: 1500000}, iv)
}

func TestDecodeChunkHeaderNameWithPipe(t *testing.T) {
	iv, err := interval.DecodeChunkHeader("chr1|extra|1000|500")
	assert.NoError(t, err)
	assert.Equal(t, "chr1|extra", iv.Name)
	assert.Equal(t, int64(500), iv.Start)
	assert.Equal(t, int64(1000), iv.Length)
	assert.Equal(t, int64(1500), iv.End)
}

func TestDecodeChunkHeaderMalformed(t *testing.T) {
	_, err := interval.DecodeChunkHeader("contig1|notanumber")
	assert.Error(t, err)

	_, err = interval.DecodeChunkHeader("contig1")
	assert.Error(t, err)
}

func TestCompare(t *testing.T) {
	a := interval.Interval{Name: "a", Start: 10}
	b := interval.Interval{Name: "a", Start: 20}
	c := interval.Interval{Name: "b", Start: 0}

	assert.Equal(t, -1, interval.Compare(a, b))
	assert.Equal(t, 1, interval.Compare(b, a))
	assert.Equal(t, 0, interval.Compare(a, a))
	assert.Equal(t, -1, interval.Compare(a, c))
}
