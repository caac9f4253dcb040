// Command registry assembles the provider catalog and inspects the result.
//
// Usage:
//
//	# Print the merged catalog as !provider documents
//	registry dump
//
//	# Use a custom catalog and a user override file
//	registry dump --catalog providers.yml --user-config ~/.config/registry/overrides.yml
//
//	# Override one field for this run
//	registry providers --set peps__priority=5
//
//	# Check that every layer applies cleanly
//	registry validate --config settings.yml
package main

import (
	"os"
)

func main() {
	err := newRootCmd(nil).Execute()
	if err != nil {
		os.Exit(1)
	}
}
