// Command paffy is a toolkit for manipulating PAF (Pairwise mApping Format)
// alignment files: filtering, shattering, trimming, splitting, deduplicating,
// mismatch-encoding, and pretty-printing.
package main

import "github.com/ComparativeGenomicsToolkit/paffy/cmd/paffy/cmd"

func main() {
	cmd.Run()
}
