package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const banner = `
  ╔═╗┌─┐┬─┐┌┬┐┌─┐┌┐ ┬  ┌─┐
  ╚═╗│ │├┬┘ │ ├─┤├┴┐│  ├┤
  ╚═╝└─┘┴└─ ┴ ┴ ┴└─┘┴─┘└─┘
`

func main() {
	rootCmd := &cobra.Command{
		Use:   "sortable",
		Short: "Headless drag-to-reorder engine for Go",
		Long: `Sortable is a server-driven drag-to-reorder engine.

It runs the full drag lifecycle on the server against a headless
element tree: press arming, ghost tracking, midpoint insertion,
FLIP reflow animation, and a cancelable event protocol.

Commands:

  • demo   — run a scripted drag on an in-memory board
  • serve  — drive remote boards over WebSocket`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		demoCmd(),
		serveCmd(),
		versionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "\033[31mError:\033[0m %s\n", err)
		os.Exit(1)
	}
}

// printBanner prints the Sortable ASCII art banner.
func printBanner() {
	fmt.Print(banner)
}

// info prints an info message.
func info(format string, args ...any) {
	fmt.Printf("  %s\n", fmt.Sprintf(format, args...))
}

// success prints a success message.
func success(format string, args ...any) {
	fmt.Printf("\033[32m✓\033[0m %s\n", fmt.Sprintf(format, args...))
}
