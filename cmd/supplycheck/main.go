// Command supplycheck verifies that master data cards map to their supply
// types through cardSupplies.json.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/ppiankov/supplycheck/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		// The report already says FAILED
		if errors.Is(err, cli.ErrVerificationFailed) {
			os.Exit(2)
		}
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}
