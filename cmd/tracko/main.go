// Command tracko is the command-line tutee tracker.
//
// Configuration comes from the environment (see config.Load). Without
// DATABASE_URL tutees are kept in memory for the lifetime of the process.
package main

import "github.com/tracko-hub/tracko/internal/interface/cli"

func main() {
	cli.Execute()
}
