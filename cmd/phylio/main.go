// Command phylio converts phylogenetic character data between tabular,
// NEXUS, and PHYLIP representations.
package main

import "github.com/phylio/phylio/internal/cli"

func main() {
	cli.Execute()
}
