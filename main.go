// SPDX-License-Identifier: MPL-2.0

package main

import "github.com/gamesync/gamesync/cmd/gamesync"

func main() {
	cmd.Execute()
}
