package paf

import "github.com/ComparativeGenomicsToolkit/paffy/cigar"

// identityPrefix walks c's operations from the front, accumulating matches
// and mismatches (indels count as mismatches here, unlike Stats), and
// returns the index of the last operation in the longest prefix whose
// cumulative identity is below identityThreshold (or, if lessThan is
// false, at or above it) — or -1 if no such prefix exists. The search
// stops once the cumulative aligned length exceeds maxTrim, unless maxTrim
// is negative (no cap).
//
// The identity comparison casts through float32 at the same point the
// algorithm this was adapted from does, so that rounding — and therefore
// the exact trim boundary on ambiguous inputs — matches bit-for-bit; see
// SPEC_FULL.md's recorded Open Question decision on this.
func identityPrefix(c *cigar.String, identityThreshold float64, lessThan bool, maxTrim int64) (trimIdx int, matches, mismatches int64) {
	trimIdx = -1
	for idx := 0; idx < c.Len(); idx++ {
		op := c.At(idx)
		if op.Kind == cigar.SeqMatch || op.Kind == cigar.Match {
			matches += op.Length
		} else {
			mismatches += op.Length
		}
		if maxTrim >= 0 && matches+mismatches > maxTrim {
			break
		}
		prefixIdentity := float64(float32(matches) / float32(matches+mismatches))
		if (lessThan && prefixIdentity < identityThreshold) || (!lessThan && prefixIdentity >= identityThreshold) {
			trimIdx = idx
		}
	}
	return trimIdx, matches, mismatches
}

// trimUpto drops the first trimCount operations from r's operation string,
// adjusting the query/target coordinates the dropped operations covered.
func trimUpto(r *Record, trimCount int) {
	for i := 0; i < trimCount; i++ {
		op := r.Cigar.At(i)
		if op.Kind != cigar.QueryInsert {
			r.TargetStart += op.Length
		}
		if op.Kind != cigar.QueryDelete {
			if r.SameStrand {
				r.QueryStart += op.Length
			} else {
				r.QueryEnd -= op.Length
			}
		}
	}
	r.Cigar.TrimFront(trimCount)
}

// trimUnreliablePrefix trims a prefix of r's operation string whose
// identity is below identityThreshold, shortened so as not to discard a
// trailing run of the prefix that is already at or above the alignment's
// overall identity. At most maxTrim aligned columns are considered.
func trimUnreliablePrefix(r *Record, identityThreshold, identity float64, maxTrim int64) {
	if r.Cigar == nil {
		return
	}
	trimIdx, _, _ := identityPrefix(r.Cigar, identityThreshold, true, maxTrim)
	if trimIdx < 0 {
		return
	}

	var suffixMatches, suffixMismatches int64
	bestSuffixStart := -1
	for i := trimIdx; i >= 0; i-- {
		op := r.Cigar.At(i)
		if op.Kind == cigar.SeqMatch || op.Kind == cigar.Match {
			suffixMatches += op.Length
		} else {
			suffixMismatches += op.Length
		}
		suffixIdentity := float64(float32(suffixMatches) / float32(suffixMatches+suffixMismatches))
		if suffixIdentity >= identity {
			bestSuffixStart = i
		}
	}

	trimCount := trimIdx + 1
	if bestSuffixStart >= 0 {
		trimCount = bestSuffixStart
	}
	if trimCount > 0 {
		trimUpto(r, trimCount)
	}
}

// TrimUnreliableTails trims low-identity prefixes and suffixes from r's
// alignment, adapted from a proposal by Bob Harris: compute the average
// identity over the whole alignment, find the longest prefix whose
// identity is significantly below that (by scoreFraction), shorten it by
// re-including any trailing run that is already back up to the overall
// identity, trim it, then repeat on the reversed (suffix) side via Invert.
//
// Neither tail trimmed exceeds maxFractionToTrim of the original
// alignment's aligned+indel columns. Panics if the postcondition (final
// identity not below the original) is violated, since that would indicate
// a bug in the trim rather than a property of the input data.
func TrimUnreliableTails(r *Record, scoreFraction, maxFractionToTrim float64) {
	if r.Cigar == nil {
		return
	}
	_, matches, mismatches := identityPrefix(r.Cigar, 0, true, -1)
	identity := float64(float32(matches) / float32(matches+mismatches))
	identityThreshold := identity - identity*scoreFraction
	maxTrim := int64(float64(matches+mismatches) * maxFractionToTrim)

	trimUnreliablePrefix(r, identityThreshold, identity, maxTrim)
	Invert(r)
	trimUnreliablePrefix(r, identityThreshold, identity, maxTrim)
	Invert(r)

	_, trimmedMatches, trimmedMismatches := identityPrefix(r.Cigar, 0, true, -1)
	finalIdentity := float64(float32(trimmedMatches) / float32(trimmedMatches+trimmedMismatches))
	if finalIdentity < identity {
		panic("trim_unreliable_tails: final identity fell below the original identity")
	}
}
