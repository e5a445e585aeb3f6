// Command zmux is the entry point for the zmux terminal multiplexer.
package main

import "github.com/zmux-dev/zmux/internal/cli"

func main() {
	cli.Execute()
}
