package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeFilename(t *testing.T) {
	assert.Equal(t, "chr1", sanitizeFilename("chr1"))
	assert.Equal(t, "scaffold_1_2", sanitizeFilename("scaffold/1/2"))
}

func TestSmallContigBinnerPacksUntilCap(t *testing.T) {
	b := newSmallContigBinner(nil, "small_", 100)

	idx0, isNew0 := b.assignBin("a", 60)
	assert.Equal(t, 0, idx0)
	assert.True(t, isNew0)

	idx1, isNew1 := b.assignBin("b", 30)
	assert.Equal(t, 0, idx1, "b fits in bin 0's remaining 40 bases")
	assert.False(t, isNew1)

	idx2, isNew2 := b.assignBin("c", 50)
	assert.Equal(t, 1, idx2, "c overflows bin 0 (60+30+50 > 100) and starts bin 1")
	assert.True(t, isNew2)

	assert.Equal(t, []int64{90, 50}, b.binSizes)
}
