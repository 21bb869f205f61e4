package fasta_test

import (
	"reflect"
	"sort"
	"strings"
	"testing"

	"github.com/ComparativeGenomicsToolkit/paffy/encoding/fasta"
	"github.com/grailbio/testutil/assert"
)

var fastaData string

func init() {
	fastaData = ">seq1\n" + "ACGTA\nCGTAC\nGT\n" + ">seq2 A viral sequence\n" + "ACGT\n" + "ACGT\n"
}

func TestGet(t *testing.T) {
	tests := []struct {
		seq   string
		start uint64
		end   uint64
		want  string
		err   bool
	}{
		{"seq1", 1, 2, "C", false},
		{"seq1", 1, 6, "CGTAC", false},
		{"seq1", 0, 12, "ACGTACGTACGT", false},
		{"seq1", 10, 12, "GT", false},
		{"seq2", 0, 8, "ACGTACGT", false},
		{"seq2", 2, 5, "GTA", false},
		{"seq0", 0, 1, "", true},
		{"seq1", 10, 13, "", true},
		{"seq1", 4, 3, "", true},
	}
	f, err := fasta.New(strings.NewReader(fastaData))
	assert.NoError(t, err)
	for _, tt := range tests {
		got, err := f.Get(tt.seq, tt.start, tt.end)
		if tt.err {
			assert.NotNil(t, err)
			continue
		}
		assert.NoError(t, err)
		assert.EQ(t, got, tt.want)
	}
}

func TestLength(t *testing.T) {
	tests := []struct {
		seq  string
		want uint64
		err  bool
	}{
		{"seq1", 12, false},
		{"seq2", 8, false},
		{"seq0", 0, true},
	}
	f, err := fasta.New(strings.NewReader(fastaData))
	assert.NoError(t, err)
	for _, tt := range tests {
		got, err := f.Len(tt.seq)
		if tt.err {
			assert.NotNil(t, err)
			continue
		}
		assert.NoError(t, err)
		assert.EQ(t, got, tt.want)
	}
}

func TestSeqNames(t *testing.T) {
	f, err := fasta.New(strings.NewReader(fastaData))
	assert.NoError(t, err)
	want := sort.StringSlice([]string{"seq1", "seq2"})
	want.Sort()
	got := sort.StringSlice(f.SeqNames())
	got.Sort()
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestOptClean(t *testing.T) {
	f, err := fasta.New(strings.NewReader(">seq1\nACgtNn\n"), fasta.OptClean)
	assert.NoError(t, err)
	got, err := f.Get("seq1", 0, 6)
	assert.NoError(t, err)
	assert.EQ(t, got, "ACGTNN")
}
