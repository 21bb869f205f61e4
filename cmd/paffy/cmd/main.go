// Package cmd implements the paffy command line dispatcher: one
// v.io/x/lib/cmdline.Command per PAF subcommand, registered the same way
// github.com/grailbio/bio/cmd/bio-pamtool/cmd wires its own subcommands.
package cmd

import (
	"log"

	"v.io/x/lib/cmdline"
)

// Run parses argv and dispatches to the matching paffy subcommand.
func Run() {
	log.SetFlags(log.Ldate | log.Ltime | log.Lmicroseconds | log.Lshortfile)
	cmdline.HideGlobalFlagsExcept()
	cmdline.Main(&cmdline.Command{
		Name:  "paffy",
		Short: "Toolkit for working with PAF alignment files",
		Long: `paffy manipulates PAF (Pairwise mApping Format) alignment records: tab
separated records describing local alignments between a query and a target
sequence, each optionally carrying a CIGAR operation string.`,
		Children: []*cmdline.Command{
			newCmdAddMismatches(),
			newCmdDechunk(),
			newCmdDedupe(),
			newCmdFilter(),
			newCmdInvert(),
			newCmdShatter(),
			newCmdSplitFile(),
			newCmdToBed(),
			newCmdTrim(),
			newCmdView(),
		},
	})
}
