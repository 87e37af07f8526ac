package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/zapponejosh/panchang-api/internal/database"
)

// locationsFile is the YAML layout read by "locations import":
//
//	locations:
//	  - name: Chennai
//	    latitude: 13.0827
//	    longitude: 80.2707
//	    timezone: Asia/Kolkata
type locationsFile struct {
	Locations []database.Location `yaml:"locations"`
}

func newLocationsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "locations",
		Short: "Manage saved locations",
	}
	cmd.AddCommand(newLocationsListCmd(a), newLocationsImportCmd(a))
	return cmd
}

func newLocationsListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List saved locations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := a.openDB(cmd.Context())
			if err != nil {
				return err
			}
			defer db.Close()

			locations, err := db.ListLocations(cmd.Context())
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "SLUG\tNAME\tLATITUDE\tLONGITUDE\tTIMEZONE")
			for _, l := range locations {
				fmt.Fprintf(tw, "%s\t%s\t%.4f\t%.4f\t%s\n", l.Slug, l.Name, l.Latitude, l.Longitude, l.Timezone)
			}
			return tw.Flush()
		},
	}
}

func newLocationsImportCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file.yaml>",
		Short: "Create or update saved locations from a YAML file",
		Long:  "Import upserts every location in the file by slug. The import is all or nothing: one invalid entry rolls back the whole file.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			locations, err := readLocationsFile(args[0])
			if err != nil {
				return err
			}

			db, err := a.openDB(ctx)
			if err != nil {
				return err
			}
			defer db.Close()

			n, err := db.ImportLocations(ctx, locations)
			if err != nil {
				return fmt.Errorf("import %s: %w", args[0], err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "imported %d locations into %s\n", n, a.cfg.DatabasePath)
			return nil
		},
	}
}

func readLocationsFile(path string) ([]database.Location, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read locations file: %w", err)
	}

	var file locationsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if len(file.Locations) == 0 {
		return nil, fmt.Errorf("%s contains no locations", path)
	}
	return file.Locations, nil
}
