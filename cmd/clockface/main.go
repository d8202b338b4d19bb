// Command clockface renders analog clock instances headlessly: it loads a
// style sheet, drives the shared frame scheduler for a while and writes
// each instance's final dial as a PNG, along with frame timing stats.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "clockface",
	Short: "Analog clock widget animation engine",
	Long: `clockface drives one or more analog clock instances through the shared
frame scheduler and renders them with a resolved style.

Examples:
  # Render three impulse clocks for five seconds
  clockface run --styles ./styles --style station --count 3 --motion impulse --duration 5s

  # Defaults can also come from the environment
  CLOCKFACE_MOTION=jumping CLOCKFACE_FPS=30 clockface run --styles ./styles --style station`,
	Version: Version,
}

func init() {
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
