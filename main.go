// SPDX-License-Identifier: MPL-2.0

package main

import "github.com/handlr-go/handlr/cmd/handlr"

func main() {
	cmd.Execute()
}
