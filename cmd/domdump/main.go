// Command domdump parses an HTML fragment and prints the resulting node
// tree. It is a debugging aid for inspecting how markup lands in the
// in-memory document.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"crisismap/dom"
)

func main() {
	htmlOut := flag.Bool("html", false, "Re-serialize the fragment instead of dumping the tree")
	flag.Parse()

	if flag.NArg() > 1 {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] [file]\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nReads the fragment from file, or stdin when no file is given.\n")
		fmt.Fprintf(os.Stderr, "\nOptions:\n")
		flag.PrintDefaults()
		os.Exit(1)
	}

	var (
		input []byte
		err   error
	)
	if flag.NArg() == 1 {
		input, err = os.ReadFile(flag.Arg(0))
	} else {
		input, err = io.ReadAll(os.Stdin)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading input: %v\n", err)
		os.Exit(1)
	}

	nodes, err := dom.ParseFragment(string(input))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing fragment: %v\n", err)
		os.Exit(1)
	}

	for _, n := range nodes {
		if *htmlOut {
			fmt.Println(n.OuterHTML())
		} else {
			fmt.Print(n.Render())
		}
	}
}
