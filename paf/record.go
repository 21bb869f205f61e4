// Package paf implements the Pairwise mApping Format record model: parsing,
// validating, serializing, and transforming (inverting, shattering,
// trimming, mismatch encoding) alignment records between a query and a
// target sequence.
package paf

import (
	"math"

	"github.com/ComparativeGenomicsToolkit/paffy/cigar"
)

// Sentinel values for optional integer fields, matching the convention the
// text codec uses to distinguish "not present" from a legitimate zero.
const (
	NoScore      = math.MaxInt64
	NoTileLevel  = -1
	NoChainID    = -1
	NoChainScore = -1
)

// Type letters for the optional tp:A: tag.
const (
	TypeNone      byte = 0
	TypePrimary   byte = 'P'
	TypeSecondary byte = 'S'
	TypeInversion byte = 'I'
)

// Record is a single pairwise alignment between a span of a query sequence
// and a span of a target sequence.
type Record struct {
	QueryName            string
	QueryLength          int64
	QueryStart, QueryEnd int64

	TargetName             string
	TargetLength           int64
	TargetStart, TargetEnd int64

	SameStrand bool

	NumMatches, NumBases, MappingQuality int64

	Type       byte
	Score      int64
	TileLevel  int64
	ChainID    int64
	ChainScore int64

	// Cigar holds the parsed operation string. CigarRaw holds a deferred,
	// unparsed cg:Z: value. At most one of the two is populated; both may
	// be nil/empty if no cg:Z: tag was present.
	Cigar    *cigar.String
	CigarRaw []byte
}

// New returns a Record with every optional field set to its "absent"
// sentinel.
func New() *Record {
	return &Record{
		Type:       TypeNone,
		Score:      NoScore,
		TileLevel:  NoTileLevel,
		ChainID:    NoChainID,
		ChainScore: NoChainScore,
	}
}

// QuerySpan returns query_end - query_start.
func (r *Record) QuerySpan() int64 { return r.QueryEnd - r.QueryStart }

// TargetSpan returns target_end - target_start.
func (r *Record) TargetSpan() int64 { return r.TargetEnd - r.TargetStart }

// querySign gives the coordinate-advance sign convention for the query
// side: same-strand walks the query coordinate forward, opposite-strand
// walks it backward. The target coordinate always advances forward.
// TrimEnds and trimUpto apply this convention inline and do not call
// querySign.
func (r *Record) querySign() int64 {
	if r.SameStrand {
		return 1
	}
	return -1
}
