// Command atlaspacker packs directories of sprites into texture atlases.
package main

import (
	"fmt"
	"os"

	"github.com/larkspur/atlaspacker/internal/cli"
)

func main() {
	if err := cli.Run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
