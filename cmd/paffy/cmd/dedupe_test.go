package cmd

import (
	"testing"

	"github.com/ComparativeGenomicsToolkit/paffy/paf"
	"github.com/stretchr/testify/assert"
)

func makeRecord(query string, qStart, qEnd int64, target string, tStart, tEnd int64, sameStrand bool) *paf.Record {
	r := paf.New()
	r.QueryName, r.QueryStart, r.QueryEnd = query, qStart, qEnd
	r.TargetName, r.TargetStart, r.TargetEnd = target, tStart, tEnd
	r.SameStrand = sameStrand
	return r
}

func TestSameAlignment(t *testing.T) {
	a := makeRecord("q1", 0, 10, "t1", 0, 10, true)
	b := makeRecord("q1", 0, 10, "t1", 0, 10, true)
	assert.True(t, sameAlignment(a, b))

	c := makeRecord("q1", 0, 10, "t1", 0, 11, true)
	assert.False(t, sameAlignment(a, c))

	d := makeRecord("q1", 0, 10, "t1", 0, 10, false)
	assert.False(t, sameAlignment(a, d))
}

func TestDedupeKeyDistinguishesCoordinates(t *testing.T) {
	a := makeRecord("q1", 0, 10, "t1", 0, 10, true)
	b := makeRecord("q1", 1, 10, "t1", 0, 10, true)
	assert.NotEqual(t, dedupeKey(a), dedupeKey(b))

	c := makeRecord("q1", 0, 10, "t1", 0, 10, true)
	assert.Equal(t, dedupeKey(a), dedupeKey(c))
}
