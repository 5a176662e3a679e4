// SPDX-License-Identifier: MIT

// Command dpchain checks and releases pipeline documents.
package main

import "github.com/katalvlaran/dpchain/internal/cli"

func main() {
	cli.Execute()
}
