// Command caselookup serves and runs court case lookups.
// Usage: caselookup serve | lookup | batch <file> | tui
package main

import "github.com/raysh454/caselookup/internal/cli"

func main() {
	cli.Execute()
}
