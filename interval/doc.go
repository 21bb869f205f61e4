/*
Package interval implements chunk-header decoding for FASTA sequences that
were split into pieces ("chunks") of a larger original sequence. A chunk's
header carries its parent coordinates as trailing pipe-separated
attributes, e.g. "contig1|1000000|500000" for a 1000000-base chunk starting
at offset 500000 of "contig1". This package decodes that convention and
orders the resulting intervals.
*/
package interval
