package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// version is set by the release build process; left as "dev" otherwise.
var version = "dev"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the zmux version",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println("zmux " + version)
		return nil
	},
}
