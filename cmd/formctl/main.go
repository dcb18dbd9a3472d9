// Command formctl inspects and edits a file-backed form collection
// without going through the API server.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/formforge/formforge/internal/repository"
)

var dataFile string

var rootCmd = &cobra.Command{
	Use:           "formctl",
	Short:         "Manage saved form definitions from the command line",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dataFile, "data", defaultDataFile(),
		"Path of the form collection file")

	rootCmd.AddCommand(newFormsCommand())
	rootCmd.AddCommand(newEvalCommand())
}

func defaultDataFile() string {
	if v := os.Getenv("DATA_FILE"); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "forms.json"
	}
	return home + "/.formforge/forms.json"
}

func openRepos() *repository.Repos {
	return repository.NewFileRepositories(dataFile)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
