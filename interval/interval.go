package interval

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Interval describes a chunk of a larger parent sequence: Name identifies
// the parent, and [Start, End) is the chunk's span within it.
type Interval struct {
	Name   string
	Start  int64
	Length int64
	End    int64
}

// splitPipeAttributes splits h on '|' by walking byte offsets rather than
// allocating through strings.Split, in the tokenizing style this package's
// BED-interval predecessor used for its own delimiter scanning.
func splitPipeAttributes(h string) []string {
	var attrs []string
	start := 0
	for i := 0; i < len(h); i++ {
		if h[i] == '|' {
			attrs = append(attrs, h[start:i])
			start = i + 1
		}
	}
	attrs = append(attrs, h[start:])
	return attrs
}

// DecodeChunkHeader parses a FASTA sequence header of the form
// "<name>|<length>|<start>" produced by a sequence-chunking step. The name
// attribute is reassembled from every pipe-separated field preceding the
// trailing length/start pair, so a name that itself contains '|' round
// trips correctly.
func DecodeChunkHeader(header string) (Interval, error) {
	attrs := splitPipeAttributes(header)
	if len(attrs) < 3 {
		return Interval{}, errors.Errorf("chunk header %q does not have a name|length|start form", header)
	}

	n := len(attrs)
	start, err := strconv.ParseInt(attrs[n-1], 10, 64)
	if err != nil {
		return Interval{}, errors.Wrapf(err, "chunk header %q has a non-numeric start attribute", header)
	}
	length, err := strconv.ParseInt(attrs[n-2], 10, 64)
	if err != nil {
		return Interval{}, errors.Wrapf(err, "chunk header %q has a non-numeric length attribute", header)
	}

	return Interval{
		Name:   strings.Join(attrs[:n-2], "|"),
		Start:  start,
		Length: length,
		End:    start + length,
	}, nil
}

// Compare orders intervals lexicographically by Name, then numerically by
// Start.
func Compare(a, b Interval) int {
	if a.Name != b.Name {
		if a.Name < b.Name {
			return -1
		}
		return 1
	}
	switch {
	case a.Start < b.Start:
		return -1
	case a.Start > b.Start:
		return 1
	default:
		return 0
	}
}
