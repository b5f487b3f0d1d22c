// Package cli implements the colortool command line for colors.json.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"motoclub-theme/internal/colorfile"
	"motoclub-theme/internal/ui"
)

// NewRootCmd returns the colortool root command with all subcommands
// registered. Without a subcommand it validates and lists the file.
func NewRootCmd() *cobra.Command {
	var path string

	root := &cobra.Command{
		Use:           "colortool",
		Short:         "colortool - validate and edit the site colors.json",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := load(path)
			if err != nil {
				return err
			}
			validate(f)
			listProfiles(f)
			return nil
		},
	}
	root.PersistentFlags().StringVarP(&path, "file", "f", envOr("COLORS_FILE", "colors.json"), "path to colors.json")

	root.AddCommand(
		newValidateCmd(&path),
		newListCmd(&path),
		newExportCmd(&path, "export-css", "css"),
		newExportCmd(&path, "export-scss", "scss"),
		newCreateCmd(&path),
		newActivateCmd(&path),
		newGenerateCmd(&path),
	)
	return root
}

// Execute runs the root command and reports a failure on the terminal.
func Execute() int {
	if err := NewRootCmd().Execute(); err != nil {
		ui.LogStatus("error", err.Error())
		return 1
	}
	return 0
}

func load(path string) (*colorfile.File, error) {
	f, err := colorfile.Load(path)
	if err != nil {
		return nil, err
	}
	ui.LogStatus("success", "File caricato: "+path)
	return f, nil
}

// loadValid loads path and refuses to continue when it does not validate.
func loadValid(path string) (*colorfile.File, error) {
	f, err := load(path)
	if err != nil {
		return nil, err
	}
	if !validate(f) {
		return nil, fmt.Errorf("%s non valido", path)
	}
	return f, nil
}

func validate(f *colorfile.File) bool {
	if err := f.Validate(); err != nil {
		ui.LogStatus("error", err.Error())
		return false
	}
	profiles, _ := f.Profiles()
	ui.LogStatus("success", fmt.Sprintf("Validazione completata: %d profili validi", profiles.Len()))
	for _, w := range f.Lint() {
		ui.LogStatus("warning", w)
	}
	return true
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
