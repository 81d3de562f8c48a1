// SPDX-License-Identifier: MPL-2.0

// Command docimport imports XML reference documentation into /// source
// comments.
package main

import cmd "github.com/docimport/docimport/cmd/docimport"

func main() {
	cmd.Execute()
}
