package paf

import (
	"bufio"
	"io"
	"strconv"

	"github.com/ComparativeGenomicsToolkit/paffy/cigar"
	"github.com/pkg/errors"
)

// fieldScanner splits line on tabs without allocating, in the style of the
// teacher's interval tokenizer: walk byte offsets instead of calling
// strings.Split/bytes.Split.
type fieldScanner struct {
	line []byte
	pos  int
}

func newFieldScanner(line []byte) *fieldScanner {
	return &fieldScanner{line: line}
}

// next returns the next tab-delimited token, or nil at end of line.
func (f *fieldScanner) next() []byte {
	if f.pos > len(f.line) {
		return nil
	}
	start := f.pos
	for f.pos < len(f.line) && f.line[f.pos] != '\t' {
		f.pos++
	}
	tok := f.line[start:f.pos]
	if f.pos < len(f.line) {
		f.pos++ // skip the tab
	} else {
		f.pos++ // sentinel: one past len signals "no more tokens" on next call
	}
	return tok
}

func parseInt64(b []byte) (int64, error) {
	return strconv.ParseInt(string(b), 10, 64)
}

// Parse decodes a single tab-separated PAF line (without its trailing
// newline) into a Record. If parseCigar is true, a cg:Z: tag is fully
// parsed into a cigar.String; otherwise its raw bytes are retained
// unparsed in CigarRaw, deferring the cost to callers that need it.
//
// Parse does not mutate line and does not retain it: all fields it stores
// are copied, unlike the line-splitting C codec this was adapted from,
// since Go slices of line would otherwise alias a caller-reused read
// buffer.
func Parse(line []byte, parseCigar bool) (*Record, error) {
	s := newFieldScanner(line)
	r := New()

	if len(line) == 0 {
		return nil, errors.New("empty paf line")
	}
	r.QueryName = string(s.next())

	var err error
	if r.QueryLength, err = parseInt64(s.next()); err != nil {
		return nil, errors.Wrap(err, "query_length")
	}
	if r.QueryStart, err = parseInt64(s.next()); err != nil {
		return nil, errors.Wrap(err, "query_start")
	}
	if r.QueryEnd, err = parseInt64(s.next()); err != nil {
		return nil, errors.Wrap(err, "query_end")
	}

	strandTok := s.next()
	if len(strandTok) != 1 || (strandTok[0] != '+' && strandTok[0] != '-') {
		return nil, errors.Errorf("unexpected strand character %q", strandTok)
	}
	r.SameStrand = strandTok[0] == '+'

	r.TargetName = string(s.next())

	if r.TargetLength, err = parseInt64(s.next()); err != nil {
		return nil, errors.Wrap(err, "target_length")
	}
	if r.TargetStart, err = parseInt64(s.next()); err != nil {
		return nil, errors.Wrap(err, "target_start")
	}
	if r.TargetEnd, err = parseInt64(s.next()); err != nil {
		return nil, errors.Wrap(err, "target_end")
	}

	if r.NumMatches, err = parseInt64(s.next()); err != nil {
		return nil, errors.Wrap(err, "num_matches")
	}
	if r.NumBases, err = parseInt64(s.next()); err != nil {
		return nil, errors.Wrap(err, "num_bases")
	}
	if r.MappingQuality, err = parseInt64(s.next()); err != nil {
		return nil, errors.Wrap(err, "mapping_quality")
	}

	for tok := s.next(); tok != nil; tok = s.next() {
		if len(tok) < 5 || tok[2] != ':' || tok[4] != ':' {
			continue // malformed tag, silently skipped
		}
		tag0, tag1 := tok[0], tok[1]
		value := tok[5:]

		switch {
		case tag0 == 't' && tag1 == 'p':
			if len(value) != 1 || (value[0] != 'P' && value[0] != 'S' && value[0] != 'I') {
				return nil, errors.Errorf("unexpected tp type letter %q", value)
			}
			r.Type = value[0]
		case tag0 == 'A' && tag1 == 'S':
			if r.Score, err = parseInt64(value); err != nil {
				return nil, errors.Wrap(err, "AS tag")
			}
		case tag0 == 'c' && tag1 == 'g':
			if parseCigar {
				if r.Cigar, err = cigar.Parse(value); err != nil {
					return nil, errors.Wrap(err, "cg tag")
				}
			} else {
				raw := make([]byte, len(value))
				copy(raw, value)
				r.CigarRaw = raw
			}
		case tag0 == 't' && tag1 == 'l':
			if r.TileLevel, err = parseInt64(value); err != nil {
				return nil, errors.Wrap(err, "tl tag")
			}
		case tag0 == 'c' && tag1 == 'n':
			if r.ChainID, err = parseInt64(value); err != nil {
				return nil, errors.Wrap(err, "cn tag")
			}
		case tag0 == 's' && tag1 == '1':
			if r.ChainScore, err = parseInt64(value); err != nil {
				return nil, errors.Wrap(err, "s1 tag")
			}
		}
		// unknown well-formed tags are silently ignored
	}

	return r, nil
}

// AppendTo appends the text encoding of r (with a trailing newline) to buf
// and returns the extended buffer. This is the core of the printer
// contract: fixed fields in order, then optional tags, then cg:Z:.
func AppendTo(buf []byte, r *Record) []byte {
	buf = append(buf, r.QueryName...)
	buf = append(buf, '\t')
	buf = strconv.AppendInt(buf, r.QueryLength, 10)
	buf = append(buf, '\t')
	buf = strconv.AppendInt(buf, r.QueryStart, 10)
	buf = append(buf, '\t')
	buf = strconv.AppendInt(buf, r.QueryEnd, 10)
	buf = append(buf, '\t')
	if r.SameStrand {
		buf = append(buf, '+')
	} else {
		buf = append(buf, '-')
	}
	buf = append(buf, '\t')

	buf = append(buf, r.TargetName...)
	buf = append(buf, '\t')
	buf = strconv.AppendInt(buf, r.TargetLength, 10)
	buf = append(buf, '\t')
	buf = strconv.AppendInt(buf, r.TargetStart, 10)
	buf = append(buf, '\t')
	buf = strconv.AppendInt(buf, r.TargetEnd, 10)
	buf = append(buf, '\t')

	buf = strconv.AppendInt(buf, r.NumMatches, 10)
	buf = append(buf, '\t')
	buf = strconv.AppendInt(buf, r.NumBases, 10)
	buf = append(buf, '\t')
	buf = strconv.AppendInt(buf, r.MappingQuality, 10)

	if r.Type != TypeNone || r.TileLevel != NoTileLevel {
		t := r.Type
		if t == TypeNone {
			if r.TileLevel > 1 {
				t = TypeSecondary
			} else {
				t = TypePrimary
			}
		}
		buf = append(buf, "\ttp:A:"...)
		buf = append(buf, t)
	}
	if r.Score != NoScore {
		buf = append(buf, "\tAS:i:"...)
		buf = strconv.AppendInt(buf, r.Score, 10)
	}
	if r.TileLevel != NoTileLevel {
		buf = append(buf, "\ttl:i:"...)
		buf = strconv.AppendInt(buf, r.TileLevel, 10)
	}
	if r.ChainID != NoChainID {
		buf = append(buf, "\tcn:i:"...)
		buf = strconv.AppendInt(buf, r.ChainID, 10)
	}
	if r.ChainScore != NoChainScore {
		buf = append(buf, "\ts1:i:"...)
		buf = strconv.AppendInt(buf, r.ChainScore, 10)
	}

	if r.Cigar != nil {
		buf = append(buf, "\tcg:Z:"...)
		buf = cigar.AppendString(buf, r.Cigar)
	} else if r.CigarRaw != nil {
		buf = append(buf, "\tcg:Z:"...)
		buf = append(buf, r.CigarRaw...)
	}

	buf = append(buf, '\n')
	return buf
}

// Print renders r as a PAF line with no trailing newline, for use in error
// messages and debug output.
func Print(r *Record) string {
	buf := AppendTo(nil, r)
	return string(buf[:len(buf)-1])
}

// stackBufThreshold mirrors the C codec's fixed-size stack buffer. In Go
// there is no stack/heap distinction visible to callers, so it is only the
// initial capacity of the Writer's reused buffer; records larger than this
// grow that buffer through append.
const stackBufThreshold = 4096

// Reader streams Records from an underlying byte stream through a 64 KiB
// bufio.Reader. Each line is read with bufio.Reader.ReadBytes, which
// returns a freshly allocated slice per record; no line buffer is reused
// across calls.
type Reader struct {
	br         *bufio.Reader
	parseCigar bool
}

// NewReader wraps r. If parseCigar is false, cg:Z: tags are retained as raw
// bytes instead of being parsed into operation strings.
func NewReader(r io.Reader, parseCigar bool) *Reader {
	return &Reader{br: bufio.NewReaderSize(r, 64*1024), parseCigar: parseCigar}
}

// Read returns the next Record, or nil, io.EOF at end of stream.
func (rd *Reader) Read() (*Record, error) {
	line, err := rd.br.ReadBytes('\n')
	if len(line) == 0 {
		if err != nil {
			return nil, err
		}
		return nil, io.EOF
	}
	if line[len(line)-1] == '\n' {
		line = line[:len(line)-1]
	}
	if len(line) > 0 && line[len(line)-1] == '\r' {
		line = line[:len(line)-1]
	}
	rec, perr := Parse(line, rd.parseCigar)
	if perr != nil {
		return nil, perr
	}
	if err == io.EOF {
		return rec, nil
	}
	return rec, err
}

// Writer streams Records to an underlying byte stream through a single
// reused buffer, doubling its capacity as needed rather than allocating a
// fresh buffer per record.
type Writer struct {
	w   io.Writer
	buf []byte
}

// NewWriter wraps w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w, buf: make([]byte, 0, stackBufThreshold)}
}

// Write serializes r and writes it out, reusing and growing the Writer's
// scratch buffer as needed.
func (wr *Writer) Write(r *Record) error {
	wr.buf = wr.buf[:0]
	wr.buf = AppendTo(wr.buf, r)
	_, err := wr.w.Write(wr.buf)
	return err
}
