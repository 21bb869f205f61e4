package cmd

import (
	"context"
	"io"
	"os"

	"github.com/ComparativeGenomicsToolkit/paffy/encoding/fasta"
	"github.com/grailbio/base/file"
	"github.com/grailbio/base/fileio"
	"github.com/klauspost/compress/gzip"
	"github.com/pkg/errors"
)

// stdStream is the conventional path spelling for "read from stdin" /
// "write to stdout", mirroring the original C tools' "path flag omitted
// means use the standard stream" convention.
const stdStream = "-"

// nopReadCloser and nopWriteCloser adapt os.Stdin/os.Stdout, which callers must not close, to the
// io.ReadCloser/io.WriteCloser interfaces the rest of this package uses
// uniformly for every stream.
type nopReadCloser struct{ io.Reader }

func (nopReadCloser) Close() error { return nil }

type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }

// openInput opens path for reading, transparently gzip-decompressing it if
// fileio.DetermineType says it's compressed, the same pattern
// interval/bedunion.go's NewBEDUnionFromPath uses. An empty path or "-"
// reads from stdin uncompressed.
func openInput(ctx context.Context, path string) (io.ReadCloser, error) {
	if path == "" || path == stdStream {
		return nopReadCloser{os.Stdin}, nil
	}
	f, err := file.Open(ctx, path)
	if err != nil {
		return nil, errors.Wrapf(err, "opening input %q", path)
	}
	r := io.Reader(f.Reader(ctx))
	if fileio.DetermineType(path) == fileio.Gzip {
		gz, gerr := gzip.NewReader(r)
		if gerr != nil {
			return nil, errors.Wrapf(gerr, "opening gzip input %q", path)
		}
		return &gzipReadCloser{gz: gz, f: f, ctx: ctx}, nil
	}
	return &fileReadCloser{r: r, f: f, ctx: ctx}, nil
}

type fileReadCloser struct {
	r   io.Reader
	f   file.File
	ctx context.Context
}

func (f *fileReadCloser) Read(p []byte) (int, error) { return f.r.Read(p) }
func (f *fileReadCloser) Close() error               { return f.f.Close(f.ctx) }

type gzipReadCloser struct {
	gz  *gzip.Reader
	f   file.File
	ctx context.Context
}

func (g *gzipReadCloser) Read(p []byte) (int, error) { return g.gz.Read(p) }
func (g *gzipReadCloser) Close() error {
	if err := g.gz.Close(); err != nil {
		g.f.Close(g.ctx)
		return err
	}
	return g.f.Close(g.ctx)
}

// openOutput opens path for writing, gzip-compressing it if
// fileio.DetermineType says the path is a compressed extension. An empty
// path or "-" writes to stdout uncompressed.
func openOutput(ctx context.Context, path string) (io.WriteCloser, error) {
	if path == "" || path == stdStream {
		return nopWriteCloser{os.Stdout}, nil
	}
	f, err := file.Create(ctx, path)
	if err != nil {
		return nil, errors.Wrapf(err, "opening output %q", path)
	}
	w := f.Writer(ctx)
	if fileio.DetermineType(path) == fileio.Gzip {
		gz := gzip.NewWriter(w)
		return &gzipWriteCloser{gz: gz, f: f, ctx: ctx}, nil
	}
	return &fileWriteCloser{w: w, f: f, ctx: ctx}, nil
}

type fileWriteCloser struct {
	w   io.Writer
	f   file.File
	ctx context.Context
}

func (f *fileWriteCloser) Write(p []byte) (int, error) { return f.w.Write(p) }
func (f *fileWriteCloser) Close() error                { return f.f.Close(f.ctx) }

type gzipWriteCloser struct {
	gz  *gzip.Writer
	f   file.File
	ctx context.Context
}

func (g *gzipWriteCloser) Write(p []byte) (int, error) { return g.gz.Write(p) }
func (g *gzipWriteCloser) Close() error {
	if err := g.gz.Close(); err != nil {
		g.f.Close(g.ctx)
		return err
	}
	return g.f.Close(g.ctx)
}

// loadFastaFiles reads one or more FASTA files into a single name→sequence
// lookup used by add_mismatches/view, the same multi-file loading
// loop original_source/paf_add_mismatches.c runs over its positional
// arguments. Sequences are cleaned (non-ACGT bases folded to 'N') since the
// mismatch-encoding path needs a closed base alphabet to complement.
func loadFastaFiles(ctx context.Context, paths []string) (map[string]string, error) {
	seqs := make(map[string]string)
	for _, p := range paths {
		in, err := openInput(ctx, p)
		if err != nil {
			return nil, err
		}
		fa, ferr := fasta.New(in, fasta.OptClean)
		cerr := in.Close()
		if ferr != nil {
			return nil, errors.Wrapf(ferr, "parsing fasta file %q", p)
		}
		if cerr != nil {
			return nil, errors.Wrapf(cerr, "closing fasta file %q", p)
		}
		for _, name := range fa.SeqNames() {
			seqLen, _ := fa.Len(name)
			if seqLen == 0 {
				seqs[name] = ""
				continue
			}
			s, err := fa.Get(name, 0, seqLen)
			if err != nil {
				return nil, err
			}
			seqs[name] = s
		}
	}
	return seqs, nil
}
