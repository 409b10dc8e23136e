// Command spacepacket is a small CLI wrapper around the library's stream
// splitter: given a file of concatenated CCSDS packets, it writes one
// output file per APID.
package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/pflag"

	spacepacket "github.com/CCSDSPy/ccsdspy"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "split":
		os.Exit(runSplit(os.Args[2:]))
	case "-h", "--help":
		usage()
		os.Exit(0)
	default:
		fmt.Fprintf(os.Stderr, "spacepacket: unknown subcommand %q\n", os.Args[1])
		usage()
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "Usage: spacepacket split <file> [--valid-apids=1,2,3]")
}

func runSplit(args []string) int {
	fs := pflag.NewFlagSet("split", pflag.ContinueOnError)
	validAPIDs := fs.String("valid-apids", "", "comma-separated list of APIDs considered known")

	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "spacepacket: %v\n", err)
		return 1
	}

	if fs.NArg() != 1 {
		usage()
		return 1
	}

	path := fs.Arg(0)
	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "spacepacket: reading %s: %v\n", path, err)
		return 1
	}

	var apids []int
	if *validAPIDs != "" {
		for _, s := range strings.Split(*validAPIDs, ",") {
			n, err := strconv.Atoi(strings.TrimSpace(s))
			if err != nil {
				fmt.Fprintf(os.Stderr, "spacepacket: invalid APID %q: %v\n", s, err)
				return 1
			}
			apids = append(apids, n)
		}
	}

	byAPID, warnings, err := spacepacket.SplitByAPID(data, apids)
	if err != nil {
		fmt.Fprintf(os.Stderr, "spacepacket: %v\n", err)
		return 1
	}

	for _, w := range warnings {
		fmt.Fprintf(os.Stderr, "spacepacket: warning: %s\n", w.Message)
	}

	for apid, buf := range byAPID {
		name := fmt.Sprintf("apid%05d.tlm", apid)
		if err := os.WriteFile(name, buf, 0o644); err != nil {
			fmt.Fprintf(os.Stderr, "spacepacket: writing %s: %v\n", name, err)
			return 1
		}
	}

	return 0
}
