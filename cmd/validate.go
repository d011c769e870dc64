package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/AnyUserName/swatchcard/internal/swatch"
)

var validateCmd = &cobra.Command{
	Use:   "validate <request.json>",
	Short: "Check a request file against the request schema",
	Long: `Validates the JSON shape of a request and that it carries at least one
swatch. Rows whose imageUrl cannot be fetched are listed as warnings; they
would render a "No Image" placeholder.`,
	Args: cobra.ExactArgs(1),
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(_ *cobra.Command, args []string) error {
	req, err := swatch.LoadFile(args[0])
	if err == nil {
		err = swatch.Validate(req)
	}
	if err != nil {
		fmt.Println("  ✗ Request is invalid")
		fmt.Printf("    • %v\n", err)
		return fmt.Errorf("validation failed")
	}

	warnings := swatch.Warnings(req)
	fmt.Println("  ✓ Request is valid")
	fmt.Printf("  ✓ %d swatches, reference %q\n", len(req.Swatches), req.Reference())

	if len(warnings) > 0 {
		fmt.Println()
		fmt.Printf("  Warnings (%d):\n", len(warnings))
		for _, w := range warnings {
			fmt.Printf("    ⚠ %s\n", w)
		}
	}
	return nil
}
