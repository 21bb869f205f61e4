// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package biosimd_test

import (
	"testing"

	"github.com/ComparativeGenomicsToolkit/paffy/biosimd"
	"github.com/stretchr/testify/assert"
)

func TestCleanASCIISeqInplace(t *testing.T) {
	seq := []byte("acgtACGTnNrywsX")
	biosimd.CleanASCIISeqInplace(seq)
	assert.Equal(t, "ACGTACGTNNNNNNN", string(seq))
}

func TestComplementByte(t *testing.T) {
	cases := map[byte]byte{'A': 'T', 'a': 'T', 'C': 'G', 'c': 'G', 'G': 'C', 'T': 'A', 'N': 'N', 'X': 'N'}
	for in, want := range cases {
		assert.Equal(t, want, biosimd.ComplementByte(in), "input %q", in)
	}
}

func TestReverseComp8Inplace(t *testing.T) {
	seq := []byte("AACGT")
	biosimd.ReverseComp8Inplace(seq)
	assert.Equal(t, "ACGTT", string(seq))
}
