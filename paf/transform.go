package paf

import (
	"github.com/ComparativeGenomicsToolkit/paffy/cigar"
)

// Invert swaps the query and target sides of r in place: names, lengths,
// coordinates, and every QueryInsert/QueryDelete operation. Match,
// SeqMatch, and SeqMismatch operations are unchanged. If r is on the
// opposite strand, the operation string is reversed so it still reads
// target-forward after the swap.
//
// Invert is its own inverse: Invert(Invert(r)) restores r.
func Invert(r *Record) {
	r.QueryName, r.TargetName = r.TargetName, r.QueryName
	r.QueryLength, r.TargetLength = r.TargetLength, r.QueryLength
	r.QueryStart, r.TargetStart = r.TargetStart, r.QueryStart
	r.QueryEnd, r.TargetEnd = r.TargetEnd, r.QueryEnd

	if r.Cigar != nil {
		for i := 0; i < r.Cigar.Len(); i++ {
			op := r.Cigar.At(i)
			switch op.Kind {
			case cigar.QueryInsert:
				op.Kind = cigar.QueryDelete
			case cigar.QueryDelete:
				op.Kind = cigar.QueryInsert
			}
		}
		if !r.SameStrand {
			r.Cigar.Reverse()
		}
	}
}

// shatterOne builds a single pure-match shard record covering
// [queryStart, queryStart+length) and [targetStart, targetStart+length),
// inheriting r's names, lengths, strand, score, and ranking fields.
func shatterOne(r *Record, queryStart, targetStart, length int64) *Record {
	s := New()
	s.QueryName = r.QueryName
	s.QueryLength = r.QueryLength
	s.QueryStart = queryStart
	s.QueryEnd = queryStart + length

	s.TargetName = r.TargetName
	s.TargetLength = r.TargetLength
	s.TargetStart = targetStart
	s.TargetEnd = targetStart + length

	s.SameStrand = r.SameStrand
	s.Cigar = cigar.Single(cigar.Match, length)

	s.Score = r.Score
	s.MappingQuality = r.MappingQuality
	s.NumMatches = length
	s.NumBases = length
	s.TileLevel = r.TileLevel
	s.Type = r.Type
	s.ChainID = r.ChainID

	return s
}

// Shatter produces one new record per Match run in r's operation string,
// each a pure <len>M alignment spanning exactly the bases that run
// aligned. SeqMatch/SeqMismatch runs are not shattered (see the open
// question recorded in DESIGN.md/SPEC_FULL.md: this mirrors the source
// algorithm's Match-only treatment exactly). QueryInsert/QueryDelete
// operations advance the coordinate walk but emit nothing.
func Shatter(r *Record) []*Record {
	if r.Cigar == nil {
		return nil
	}
	queryCoord := r.QueryStart
	if !r.SameStrand {
		queryCoord = r.QueryEnd
	}
	targetCoord := r.TargetStart

	var shards []*Record
	for i := 0; i < r.Cigar.Len(); i++ {
		op := r.Cigar.At(i)
		switch op.Kind {
		case cigar.Match:
			if r.SameStrand {
				shards = append(shards, shatterOne(r, queryCoord, targetCoord, op.Length))
				queryCoord += op.Length
			} else {
				queryCoord -= op.Length
				shards = append(shards, shatterOne(r, queryCoord, targetCoord, op.Length))
			}
			targetCoord += op.Length
		case cigar.QueryInsert:
			if r.SameStrand {
				queryCoord += op.Length
			} else {
				queryCoord -= op.Length
			}
		case cigar.QueryDelete:
			targetCoord += op.Length
		default:
			// SeqMatch/SeqMismatch still consume both coordinates, they
			// simply don't shatter.
			if r.SameStrand {
				queryCoord += op.Length
			} else {
				queryCoord -= op.Length
			}
			targetCoord += op.Length
		}
	}
	return shards
}

// cigarTrim drops whole operations from the front of c's active window
// until end_bases_to_trim aligned (Match/SeqMatch/SeqMismatch) bases have
// been consumed, splitting the final aligned op if it would overshoot.
// queryCoord/targetCoord are advanced by each dropped or shortened op's
// length times the given signs, following the coordinate sign convention.
func cigarTrim(queryCoord, targetCoord *int64, c *cigar.String, endBasesToTrim int64, qSign, tSign int64) {
	basesTrimmed := int64(0)
	for c.Len() > 0 {
		op := c.At(0)
		aligned := op.Kind.IsAligned()
		if aligned && basesTrimmed >= endBasesToTrim {
			break
		}
		if aligned {
			if basesTrimmed+op.Length > endBasesToTrim {
				i := endBasesToTrim - basesTrimmed
				op.Length -= i
				*queryCoord += qSign * i
				*targetCoord += tSign * i
				break
			}
			basesTrimmed += op.Length
			*queryCoord += qSign * op.Length
			*targetCoord += tSign * op.Length
		} else if op.Kind == cigar.QueryInsert {
			*queryCoord += qSign * op.Length
		} else {
			*targetCoord += tSign * op.Length
		}
		c.TrimFront(1)
	}
}

// TrimEnds trims endBasesToTrim aligned columns from each end of r's
// operation string, consuming any indel ops opportunistically encountered
// along the way, and adjusts the query/target start/end coordinates to
// match.
func TrimEnds(r *Record, endBasesToTrim int64) {
	if r.Cigar == nil {
		return
	}
	if r.SameStrand {
		cigarTrim(&r.QueryStart, &r.TargetStart, r.Cigar, endBasesToTrim, 1, 1)
		r.Cigar.Reverse()
		cigarTrim(&r.QueryEnd, &r.TargetEnd, r.Cigar, endBasesToTrim, -1, -1)
		r.Cigar.Reverse()
	} else {
		cigarTrim(&r.QueryEnd, &r.TargetStart, r.Cigar, endBasesToTrim, -1, 1)
		r.Cigar.Reverse()
		cigarTrim(&r.QueryStart, &r.TargetEnd, r.Cigar, endBasesToTrim, 1, -1)
		r.Cigar.Reverse()
	}
}

// TrimEndFraction trims a fraction f (0..1) of r's aligned bases, split
// evenly between the two ends.
func TrimEndFraction(r *Record, fraction float64) {
	alignedBases := AlignedBases(r)
	endBasesToTrim := int64(float64(alignedBases) * fraction / 2.0)
	TrimEnds(r, endBasesToTrim)
}

// EncodeMismatches rewrites every Match run in r's operation string as a
// run-length sequence of SeqMatch/SeqMismatch ops by comparing querySeq and
// targetSeq case-insensitively (reverse-complementing the query base when
// r.SameStrand is false). QueryInsert, QueryDelete, and already-explicit
// SeqMatch/SeqMismatch ops are preserved unchanged.
//
// complement is applied to a query base before comparison when
// r.SameStrand is false; callers supply the base-complement function
// (biosimd.ComplementByte) so this package does not need to depend on the
// sequence package directly.
func EncodeMismatches(r *Record, querySeq, targetSeq []byte, complement func(byte) byte) {
	if r.Cigar == nil {
		return
	}
	total := countMismatchOps(r, querySeq, targetSeq, complement)

	newOps := make([]cigar.Op, 0, total)
	qi := int64(0)
	tj := r.TargetStart
	for i := 0; i < r.Cigar.Len(); i++ {
		op := r.Cigar.At(i)
		if op.Kind == cigar.Match {
			queryOffset := r.QueryStart + qi
			if !r.SameStrand {
				queryOffset = r.QueryEnd - (qi + 1)
			}
			newOps = appendMismatchRuns(newOps, tj, targetSeq, queryOffset, querySeq, op.Length, r.SameStrand, complement)
			qi += op.Length
			tj += op.Length
		} else {
			newOps = append(newOps, *op)
			switch op.Kind {
			case cigar.QueryInsert:
				qi += op.Length
			case cigar.QueryDelete:
				tj += op.Length
			default:
				qi += op.Length
				tj += op.Length
			}
		}
	}
	r.Cigar = cigar.New(newOps)
}

func countMismatchOps(r *Record, querySeq, targetSeq []byte, complement func(byte) byte) int {
	total := 0
	qi := int64(0)
	tj := r.TargetStart
	for i := 0; i < r.Cigar.Len(); i++ {
		op := r.Cigar.At(i)
		if op.Kind == cigar.Match {
			queryOffset := r.QueryStart + qi
			if !r.SameStrand {
				queryOffset = r.QueryEnd - (qi + 1)
			}
			total += countMismatchRuns(tj, targetSeq, queryOffset, querySeq, op.Length, r.SameStrand, complement)
			qi += op.Length
			tj += op.Length
		} else {
			total++
			switch op.Kind {
			case cigar.QueryInsert:
				qi += op.Length
			case cigar.QueryDelete:
				tj += op.Length
			default:
				qi += op.Length
				tj += op.Length
			}
		}
	}
	return total
}

func matchBase(targetOffset int64, targetSeq []byte, queryOffset int64, querySeq []byte, i int64, sameStrand bool, complement func(byte) byte) bool {
	t := upper(targetSeq[targetOffset+i])
	var q byte
	if sameStrand {
		q = querySeq[queryOffset+i]
	} else {
		q = complement(querySeq[queryOffset-i])
	}
	return t == upper(q)
}

func upper(b byte) byte {
	if b >= 'a' && b <= 'z' {
		return b - ('a' - 'A')
	}
	return b
}

func countMismatchRuns(targetOffset int64, targetSeq []byte, queryOffset int64, querySeq []byte, length int64, sameStrand bool, complement func(byte) byte) int {
	count := 0
	prevMatch := false
	first := true
	for i := int64(0); i < length; i++ {
		isMatch := matchBase(targetOffset, targetSeq, queryOffset, querySeq, i, sameStrand, complement)
		if first || isMatch != prevMatch {
			count++
			first = false
		}
		prevMatch = isMatch
	}
	return count
}

func appendMismatchRuns(dest []cigar.Op, targetOffset int64, targetSeq []byte, queryOffset int64, querySeq []byte, length int64, sameStrand bool, complement func(byte) byte) []cigar.Op {
	prevMatch := false
	first := true
	for i := int64(0); i < length; i++ {
		isMatch := matchBase(targetOffset, targetSeq, queryOffset, querySeq, i, sameStrand, complement)
		if first || isMatch != prevMatch {
			kind := cigar.SeqMismatch
			if isMatch {
				kind = cigar.SeqMatch
			}
			dest = append(dest, cigar.Op{Kind: kind, Length: 1})
			first = false
		} else {
			dest[len(dest)-1].Length++
		}
		prevMatch = isMatch
	}
	return dest
}

// RemoveMismatches collapses every Match/SeqMatch/SeqMismatch run in r's
// operation string into Match, coalescing adjacent Match ops into one.
// QueryInsert/QueryDelete ops are preserved in place. This is a single
// linear compaction, the inverse companion to EncodeMismatches.
func RemoveMismatches(r *Record) {
	if r.Cigar == nil {
		return
	}
	n := r.Cigar.Len()
	ops := make([]cigar.Op, 0, n)
	for read := 0; read < n; read++ {
		op := r.Cigar.At(read)
		if op.Kind.IsAligned() {
			if len(ops) > 0 && ops[len(ops)-1].Kind == cigar.Match {
				ops[len(ops)-1].Length += op.Length
			} else {
				ops = append(ops, cigar.Op{Kind: cigar.Match, Length: op.Length})
			}
		} else {
			ops = append(ops, *op)
		}
	}
	r.Cigar = cigar.New(ops)
}
