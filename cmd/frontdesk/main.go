// Command frontdesk manages the records behind the hotel operations console.
package main

import "github.com/mesh-intelligence/frontdesk/internal/cli"

func main() {
	cli.Execute()
}
