// SPDX-License-Identifier: MIT

// Command pcawalk walks through a principal component analysis step by step.
package main

import (
	"os"

	"github.com/katalvlaran/lvpca/cmd/pcawalk/commands"
)

func main() {
	os.Exit(commands.Execute())
}
