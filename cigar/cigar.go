// Package cigar implements the operation string used to describe the
// base-level alignment between a query and a target sequence in a pairwise
// mapping record: a sequence of (length, operation) pairs such as
// "10M2I5M3D20M".
package cigar

import (
	"strconv"

	"github.com/pkg/errors"
)

// OpKind identifies what an Op consumes from the query and target
// sequences.
type OpKind byte

const (
	// Match is an alignment column whose base identity was not determined
	// (the 'M' operation).
	Match OpKind = iota
	// SeqMatch is an alignment column known to be a sequence match (the '='
	// operation).
	SeqMatch
	// SeqMismatch is an alignment column known to be a sequence mismatch
	// (the 'X' operation).
	SeqMismatch
	// QueryInsert consumes a query base with no corresponding target base
	// (the 'I' operation).
	QueryInsert
	// QueryDelete consumes a target base with no corresponding query base
	// (the 'D' operation).
	QueryDelete
)

// Byte returns the single-character operation code used in the text
// encoding.
func (k OpKind) Byte() byte {
	switch k {
	case Match:
		return 'M'
	case SeqMatch:
		return '='
	case SeqMismatch:
		return 'X'
	case QueryInsert:
		return 'I'
	case QueryDelete:
		return 'D'
	default:
		return 'N'
	}
}

// IsAligned reports whether ops of this kind consume one query and one
// target base (as opposed to an indel, which consumes only one side).
func (k OpKind) IsAligned() bool {
	return k == Match || k == SeqMatch || k == SeqMismatch
}

var opKindLookup [256]int8

func init() {
	for i := range opKindLookup {
		opKindLookup[i] = -1
	}
	opKindLookup['M'] = int8(Match)
	opKindLookup['='] = int8(SeqMatch)
	opKindLookup['X'] = int8(SeqMismatch)
	opKindLookup['I'] = int8(QueryInsert)
	opKindLookup['D'] = int8(QueryDelete)
}

// Op is a single run of length consecutive alignment columns of the same
// kind.
type Op struct {
	Kind   OpKind
	Length int64
}

// String is a deque-like sequence of Ops, backed by a single contiguous
// array. Trimming from the front advances a start offset in O(1) instead of
// reallocating or walking a linked list, and Reverse flips the active window
// in place.
type String struct {
	ops   []Op
	start int
}

// New builds a String from already-decoded ops.
func New(ops []Op) *String {
	return &String{ops: ops}
}

// Len returns the number of ops remaining in the active window.
func (s *String) Len() int {
	if s == nil {
		return 0
	}
	return len(s.ops) - s.start
}

// At returns the op at position i of the active window.
func (s *String) At(i int) *Op {
	return &s.ops[s.start+i]
}

// TrimFront removes the first n ops from the active window in O(1).
func (s *String) TrimFront(n int) {
	s.start += n
}

// Append adds op to the end of the active window.
func (s *String) Append(op Op) {
	s.ops = append(s.ops, op)
}

// Reverse flips the order of the active window in place.
func (s *String) Reverse() {
	if s == nil || s.Len() <= 1 {
		return
	}
	lo, hi := s.start, s.start+s.Len()-1
	for lo < hi {
		s.ops[lo], s.ops[hi] = s.ops[hi], s.ops[lo]
		lo++
		hi--
	}
}

// Single builds a String containing exactly one op.
func Single(kind OpKind, length int64) *String {
	return &String{ops: []Op{{Kind: kind, Length: length}}}
}

// Parse decodes a CIGAR-style operation string such as "10M2I5M". An empty
// string yields a nil String (no cigar present), matching the text format's
// convention that an absent cg:Z: tag means no recorded operations.
//
// Parsing is two-pass, as in the format this was adapted from: the first
// pass counts operations so the backing array can be allocated exactly
// once, and the second pass fills it.
func Parse(s []byte) (*String, error) {
	if len(s) == 0 {
		return nil, nil
	}
	count := 0
	for _, b := range s {
		if b < '0' || b > '9' {
			count++
		}
	}
	ops := make([]Op, count)
	idx := 0
	i := 0
	for i < len(s) {
		length := int64(0)
		start := i
		for i < len(s) && s[i] >= '0' && s[i] <= '9' {
			length = length*10 + int64(s[i]-'0')
			i++
		}
		if i >= len(s) {
			return nil, errors.Errorf("cigar string %q ends with a bare length %q", s, s[start:i])
		}
		kind := opKindLookup[s[i]]
		if kind < 0 {
			return nil, errors.Errorf("unexpected character %q in cigar string %q", s[i], s)
		}
		ops[idx] = Op{Kind: OpKind(kind), Length: length}
		idx++
		i++
	}
	if idx != count {
		return nil, errors.Errorf("internal error parsing cigar string %q: counted %d ops, filled %d", s, count, idx)
	}
	return &String{ops: ops}, nil
}

// AppendString appends the text encoding of s to buf and returns the
// extended buffer.
func AppendString(buf []byte, s *String) []byte {
	for i := 0; i < s.Len(); i++ {
		op := s.At(i)
		buf = strconv.AppendInt(buf, op.Length, 10)
		buf = append(buf, op.Kind.Byte())
	}
	return buf
}

// String renders the text encoding, e.g. "10M2I5M".
func (s *String) String() string {
	if s == nil {
		return ""
	}
	return string(AppendString(nil, s))
}
