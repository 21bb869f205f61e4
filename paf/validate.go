package paf

import (
	"github.com/ComparativeGenomicsToolkit/paffy/cigar"
	"github.com/pkg/errors"
)

// Check validates a Record's coordinate and operation-string invariants.
// Parse, Reader.Read and the transformations in this package do not call
// it; in cmd/paffy the invert, trim, add_mismatches and dechunk drivers run
// it after transforming each record. It returns an error rather than aborting the
// process so that callers (e.g. the CLI layer) choose how fatal conditions
// are reported.
func Check(r *Record) error {
	if r.QueryStart < 0 || r.QueryStart >= r.QueryLength {
		return errors.Errorf("invalid query start coordinates: %s", Print(r))
	}
	if r.QueryStart > r.QueryEnd || r.QueryEnd > r.QueryLength {
		return errors.Errorf("invalid query end coordinates: %s", Print(r))
	}
	if r.TargetStart < 0 || r.TargetStart >= r.TargetLength {
		return errors.Errorf("invalid target start coordinates: %s", Print(r))
	}
	if r.TargetStart > r.TargetEnd || r.TargetEnd > r.TargetLength {
		return errors.Errorf("invalid target end coordinates: %s", Print(r))
	}
	if r.Type == TypeSecondary && r.TileLevel == 1 {
		return errors.Errorf("record has explicit secondary type but tile_level 1 (primary): %s", Print(r))
	}

	if r.Cigar != nil {
		var queryBases, targetBases int64
		for i := 0; i < r.Cigar.Len(); i++ {
			op := r.Cigar.At(i)
			if op.Kind != cigar.QueryDelete {
				queryBases += op.Length
			}
			if op.Kind != cigar.QueryInsert {
				targetBases += op.Length
			}
		}
		if queryBases != r.QuerySpan() {
			return errors.Errorf("cigar alignment does not match query length: %d vs. %d: %s",
				queryBases, r.QuerySpan(), Print(r))
		}
		if targetBases != r.TargetSpan() {
			return errors.Errorf("cigar alignment does not match target length: %d vs. %d: %s",
				targetBases, r.TargetSpan(), Print(r))
		}
	}
	return nil
}
