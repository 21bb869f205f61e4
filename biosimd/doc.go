// Copyright 2018 GRAIL, Inc.  All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Package biosimd provides table-driven byte-array operations on raw
// nucleotide sequence data: cleaning FASTA bases to a canonical alphabet and
// complementing individual bases for reverse-strand coordinate walks.
package biosimd
