package main

import (
	"fmt"

	"github.com/gripdoc/gripdoc/scrape"
)

// Run executes the validate command.
func (c *ValidateCmd) Run(deps *Dependencies) error {
	checks, passed := scrape.Validate(deps.Ctx, deps.DB)

	for _, check := range checks {
		mark := "PASS"
		if !check.Passed {
			mark = "FAIL"
		}
		if check.Detail != "" {
			fmt.Fprintf(deps.Stdout, "[%s] %s (%s)\n", mark, check.Name, check.Detail)
		} else {
			fmt.Fprintf(deps.Stdout, "[%s] %s\n", mark, check.Name)
		}
	}

	if !passed {
		return fmt.Errorf("validation failed")
	}
	fmt.Fprintln(deps.Stdout, "All checks passed.")
	return nil
}
