package cmd

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/msto63/analiza/pkg/core/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Muestra la versión",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(version.String())
		fmt.Printf("  Lexer:      %s\n", version.ComponentVersion("lexer"))
		fmt.Printf("  Syntax:     %s\n", version.ComponentVersion("syntax"))
		fmt.Printf("  Reports:    %s\n", version.ComponentVersion("reports"))
		fmt.Printf("  History:    %s\n", version.ComponentVersion("history"))
		fmt.Printf("  Go Version: %s\n", runtime.Version())
		fmt.Printf("  OS/Arch:    %s/%s\n", runtime.GOOS, runtime.GOARCH)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
