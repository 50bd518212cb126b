// Package main provides the staticcompress CLI, which precompresses static
// asset directories for web servers.
package main

import (
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
