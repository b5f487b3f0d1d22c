package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"motoclub-theme/internal/colorfile"
	"motoclub-theme/internal/palette"
	"motoclub-theme/internal/ui"
)

func newValidateCmd(path *string) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "check the structure of colors.json",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := loadValid(*path)
			return err
		},
	}
}

func newListCmd(path *string) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "list the profiles with their main colors",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := loadValid(*path)
			if err != nil {
				return err
			}
			listProfiles(f)
			return nil
		},
	}
}

func listProfiles(f *colorfile.File) {
	profiles, err := f.Profiles()
	if err != nil {
		ui.LogStatus("error", err.Error())
		return
	}
	active := f.Active()

	ui.LogSection(fmt.Sprintf("Profili disponibili (%d)", profiles.Len()))
	columns := []ui.TableColumn{
		{Key: "active", Header: " "},
		{Key: "key", Header: "Profilo"},
		{Key: "name", Header: "Nome", MaxWidth: 28},
		{Key: "primary", Header: "Primary", Align: ui.AlignRight},
		{Key: "secondary", Header: "Secondary", Align: ui.AlignRight},
		{Key: "ui", Header: "UI", Align: ui.AlignRight},
		{Key: "swatches", Header: "Colori"},
	}

	var rows []map[string]string
	for _, key := range profiles.Keys() {
		counts, _, _ := f.CategoryCounts(key)
		marker := ""
		if key == active {
			marker = ui.Accent("→")
		}
		var swatches []string
		if vars, err := f.Flatten(key); err == nil {
			for i, v := range vars {
				if i == 6 {
					break
				}
				swatches = append(swatches, v.Value)
			}
		}
		rows = append(rows, map[string]string{
			"active":    marker,
			"key":       key,
			"name":      f.ProfileString(key, "name"),
			"primary":   strconv.Itoa(counts["primary"]),
			"secondary": strconv.Itoa(counts["secondary"]),
			"ui":        strconv.Itoa(counts["ui"]),
			"swatches":  ui.Swatches(swatches...),
		})
		if d := f.ProfileString(key, "description"); d != "" {
			ui.LogGroupItem(key, d)
		}
	}
	ui.Print(ui.RenderTable(columns, rows))
}

func newExportCmd(path *string, use, format string) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <profile> [output]",
		Short: "export a profile's colors as " + format + " variables",
		Long:  "Export a profile's hex colors as " + format + " variables. The output defaults to <profile>-variables." + format + "; use - for stdout.",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := loadValid(*path)
			if err != nil {
				return err
			}
			profile := args[0]
			out := profile + "-variables." + format
			if len(args) == 2 {
				out = args[1]
			}

			var text string
			if format == "css" {
				text, err = f.ExportCSS(profile)
			} else {
				text, err = f.ExportSCSS(profile)
			}
			if err != nil {
				return err
			}

			if out == "-" {
				_, err = fmt.Fprint(cmd.OutOrStdout(), text)
				return err
			}
			if err := os.WriteFile(out, []byte(text), 0o644); err != nil {
				return fmt.Errorf("write %s: %w", out, err)
			}
			ui.LogStatus("success", fmt.Sprintf("Variabili %s esportate in: %s", format, out))
			return nil
		},
	}
}

func newCreateCmd(path *string) *cobra.Command {
	return &cobra.Command{
		Use:   "create <name> [base]",
		Short: "create a profile, empty or copied from base",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := loadValid(*path)
			if err != nil {
				return err
			}
			base := ""
			if len(args) == 2 {
				base = args[1]
			}
			if err := f.Create(args[0], base); err != nil {
				return err
			}
			if base != "" {
				ui.LogStatus("success", fmt.Sprintf("Profilo '%s' creato da '%s'", args[0], base))
			} else {
				ui.LogStatus("success", fmt.Sprintf("Profilo vuoto '%s' creato", args[0]))
			}
			return save(f)
		},
	}
}

func newActivateCmd(path *string) *cobra.Command {
	return &cobra.Command{
		Use:   "activate <profile>",
		Short: "set the active profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := loadValid(*path)
			if err != nil {
				return err
			}
			if err := f.Activate(args[0]); err != nil {
				return err
			}
			ui.LogStatus("success", "Profilo attivo: "+args[0])
			return save(f)
		},
	}
}

func newGenerateCmd(path *string) *cobra.Command {
	var (
		base     string
		activate bool
		dryRun   bool
	)

	cmd := &cobra.Command{
		Use:   "generate <key>",
		Short: "derive a full profile from one gold color",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if base == "" {
				return errors.New("--base is required")
			}
			if !palette.ValidHex(base) {
				return fmt.Errorf("--base %q: %w", base, palette.ErrInvalidHex)
			}
			name := cmd.Flag("name").Value.String()
			if name == "" {
				name = args[0]
			}
			scheme, err := colorfile.Generate(name, base)
			if err != nil {
				return err
			}

			if dryRun {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(scheme)
			}

			f, err := loadValid(*path)
			if err != nil {
				return err
			}
			if err := f.AddScheme(args[0], scheme); err != nil {
				return err
			}
			ui.LogStatus("success", fmt.Sprintf("Profilo '%s' generato da %s", args[0], base))
			ui.LogGroupItem("primary", ui.Swatches(scheme.Colors.Primary.Gold, scheme.Colors.Primary.GoldDark, scheme.Colors.Primary.Bordeaux))
			ui.LogGroupItem("secondary", ui.Swatches(scheme.Colors.Secondary.Navy, scheme.Colors.Secondary.Amaranth, scheme.Colors.Secondary.Cream))
			if activate {
				if err := f.Activate(args[0]); err != nil {
					return err
				}
				ui.LogStatus("success", "Profilo attivo: "+args[0])
			}
			return save(f)
		},
	}

	cmd.Flags().StringVar(&base, "base", "", "base gold color as #RRGGBB")
	cmd.Flags().String("name", "", "display name (defaults to the key)")
	cmd.Flags().BoolVar(&activate, "activate", false, "make the generated profile active")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "print the profile instead of saving it")
	return cmd
}

func save(f *colorfile.File) error {
	if err := f.Save(""); err != nil {
		return err
	}
	ui.LogStatus("success", "File salvato: "+f.Path)
	return nil
}
