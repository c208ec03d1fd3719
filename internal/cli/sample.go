package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/marinetools/loadicator/pkg/hydro"
)

// defaultSamplePath is where the sample command writes its workbook.
const defaultSamplePath = "ship_data.xlsx"

// sampleCommand creates the sample command for generating test data.
func (c *CLI) sampleCommand() *cobra.Command {
	var (
		output string
		force  bool
	)

	cmd := &cobra.Command{
		Use:   "sample",
		Short: "Generate a sample ship data workbook",
		Long: `Write a workbook with plausible hydrostatic and KN cross-curve tables for
a fictional vessel, for trying out the calculator without real ship data.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !force {
				if _, err := os.Stat(output); err == nil {
					printWarning("%s already exists (use --force to overwrite)", output)
					return fmt.Errorf("refusing to overwrite %s", output)
				}
			}
			if err := hydro.WriteSampleWorkbook(output); err != nil {
				return fmt.Errorf("write sample workbook: %w", err)
			}
			printSuccess("Sample ship data written")
			printFile(output)
			printNextStep("Compute a curve", fmt.Sprintf("%s calc 5.5 --data %s", appName, output))
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", defaultSamplePath, "output file")
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")

	return cmd
}
