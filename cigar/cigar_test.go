package cigar_test

import (
	"testing"

	"github.com/ComparativeGenomicsToolkit/paffy/cigar"
	"github.com/stretchr/testify/assert"
)

func TestParseEmpty(t *testing.T) {
	s, err := cigar.Parse(nil)
	assert.NoError(t, err)
	assert.Nil(t, s)
}

func TestParseAndString(t *testing.T) {
	s, err := cigar.Parse([]byte("10M2I5M3D20="))
	assert.NoError(t, err)
	assert.Equal(t, 5, s.Len())
	assert.Equal(t, cigar.Op{Kind: cigar.Match, Length: 10}, *s.At(0))
	assert.Equal(t, cigar.Op{Kind: cigar.QueryInsert, Length: 2}, *s.At(1))
	assert.Equal(t, cigar.Op{Kind: cigar.QueryDelete, Length: 3}, *s.At(3))
	assert.Equal(t, cigar.Op{Kind: cigar.SeqMatch, Length: 20}, *s.At(4))
	assert.Equal(t, "10M2I5M3D20=", s.String())
}

func TestParseUnknownOp(t *testing.T) {
	_, err := cigar.Parse([]byte("10Q"))
	assert.Error(t, err)
}

func TestParseBareLength(t *testing.T) {
	_, err := cigar.Parse([]byte("10M5"))
	assert.Error(t, err)
}

func TestTrimFront(t *testing.T) {
	s, err := cigar.Parse([]byte("10M2I5M"))
	assert.NoError(t, err)
	s.TrimFront(1)
	assert.Equal(t, 2, s.Len())
	assert.Equal(t, "2I5M", s.String())
}

func TestReverse(t *testing.T) {
	s, err := cigar.Parse([]byte("10M2I5M"))
	assert.NoError(t, err)
	s.Reverse()
	assert.Equal(t, "5M2I10M", s.String())
	s.Reverse()
	assert.Equal(t, "10M2I5M", s.String())
}

func TestSingle(t *testing.T) {
	s := cigar.Single(cigar.Match, 42)
	assert.Equal(t, "42M", s.String())
}
