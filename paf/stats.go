package paf

import (
	"math"

	"github.com/ComparativeGenomicsToolkit/paffy/cigar"
	"github.com/pkg/errors"
)

// Stats accumulates the per-operation counts StatsCalc reports.
type Stats struct {
	Matches          int64
	Mismatches       int64
	QueryInserts     int64
	QueryDeletes     int64
	QueryInsertBases int64
	QueryDeleteBases int64
}

// AlignedBases returns the number of operation-string columns considered
// aligned (Match or SeqMatch+SeqMismatch): matches + mismatches.
func (s Stats) AlignedBases() int64 { return s.Matches + s.Mismatches }

// Identity returns Matches / AlignedBases, or 0 if there are no aligned
// bases.
func (s Stats) Identity() float64 {
	if s.AlignedBases() == 0 {
		return 0
	}
	return float64(s.Matches) / float64(s.AlignedBases())
}

// StatsCalc walks r's operation string and accumulates counts into s. If
// zeroCounts is true, s is reset to zero before accumulating; otherwise
// counts add onto whatever s already held, letting callers accumulate
// across many records.
func StatsCalc(r *Record, s *Stats, zeroCounts bool) {
	if zeroCounts {
		*s = Stats{}
	}
	if r.Cigar == nil {
		return
	}
	for i := 0; i < r.Cigar.Len(); i++ {
		op := r.Cigar.At(i)
		switch op.Kind {
		case cigar.Match, cigar.SeqMatch:
			s.Matches += op.Length
		case cigar.SeqMismatch:
			s.Mismatches += op.Length
		case cigar.QueryInsert:
			s.QueryInserts++
			s.QueryInsertBases += op.Length
		case cigar.QueryDelete:
			s.QueryDeletes++
			s.QueryDeleteBases += op.Length
		}
	}
}

// AlignedBases returns the number of operation-string columns consuming
// both a query and a target base (Match, SeqMatch, SeqMismatch).
func AlignedBases(r *Record) int64 {
	if r.Cigar == nil {
		return 0
	}
	var n int64
	for i := 0; i < r.Cigar.Len(); i++ {
		op := r.Cigar.At(i)
		if op.Kind.IsAligned() {
			n += op.Length
		}
	}
	return n
}

// SaturatingMax is the saturation ceiling for per-base alignment-level
// counts: biological pileups rarely exceed a few hundred, but a u16 must
// not silently wrap on pathological inputs.
const SaturatingMax = math.MaxInt16 - 1

// CoverageMap is a per-query-base alignment-depth counter, one array per
// distinct query sequence name.
type CoverageMap struct {
	Name   string
	Length int64
	Counts []uint16
}

// NewCoverageMap allocates a zeroed coverage array of the given length.
func NewCoverageMap(name string, length int64) *CoverageMap {
	return &CoverageMap{Name: name, Length: length, Counts: make([]uint16, length)}
}

// IncreaseAlignmentLevelCounts walks r's operation string from QueryStart
// and increments cm.Counts at every position covered by a Match,
// SeqMatch, or SeqMismatch op, saturating at SaturatingMax. It returns an
// error if the walk does not end exactly at QueryEnd, which would indicate
// the record and coverage map have mismatched lengths.
func IncreaseAlignmentLevelCounts(cm *CoverageMap, r *Record) error {
	if cm.Length != r.QueryLength {
		return errors.Errorf("coverage map length %d does not match record query length %d", cm.Length, r.QueryLength)
	}
	i := r.QueryStart
	if r.Cigar != nil {
		for ci := 0; ci < r.Cigar.Len(); ci++ {
			op := r.Cigar.At(ci)
			if op.Kind == cigar.QueryDelete {
				continue
			}
			if op.Kind != cigar.QueryInsert {
				for j := int64(0); j < op.Length; j++ {
					pos := i + j
					if pos < 0 || pos >= r.QueryEnd || pos >= cm.Length {
						return errors.Errorf("coverage position %d out of bounds for record %s", pos, Print(r))
					}
					if cm.Counts[pos] < SaturatingMax {
						cm.Counts[pos]++
					}
				}
			}
			i += op.Length
		}
	}
	if i != r.QueryEnd {
		return errors.Errorf("alignment-level walk ended at %d, expected query_end %d: %s", i, r.QueryEnd, Print(r))
	}
	return nil
}
