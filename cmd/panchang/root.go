package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/zapponejosh/panchang-api/internal/config"
	"github.com/zapponejosh/panchang-api/internal/database"
	"github.com/zapponejosh/panchang-api/internal/ephemeris"
	"github.com/zapponejosh/panchang-api/internal/logger"
	"github.com/zapponejosh/panchang-api/internal/panchang"
)

// app carries state shared by every subcommand once the root pre-run has
// loaded configuration.
type app struct {
	cfg     *config.Config
	log     *slog.Logger
	dbPath  string
	verbose bool
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "panchang",
		Short:         "Vedic calendar calculations",
		Long:          "panchang computes the five limbs of the Hindu almanac, choghadiya and muhurtas for a date and place.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd)
		},
	}

	root.PersistentFlags().StringVar(&a.dbPath, "db", "", "SQLite database path (default $DATABASE_PATH)")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "verbose output")

	root.AddCommand(newCalcCmd(a), newRangeCmd(a), newLocationsCmd(a))
	return root
}

func (a *app) init(cmd *cobra.Command) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if a.dbPath != "" {
		cfg.DatabasePath = a.dbPath
	}

	level := cfg.LogLevel
	if a.verbose {
		level = "debug"
	}

	a.cfg = cfg
	a.log = logger.New(cmd.ErrOrStderr(), level, cfg.LogFormat)
	return nil
}

// openDB opens and migrates the configured database.
func (a *app) openDB(ctx context.Context) (*database.DB, error) {
	db, err := database.Open(database.DefaultConfig(a.cfg.DatabasePath), a.log)
	if err != nil {
		return nil, err
	}
	if _, err := db.Migrate(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

func (a *app) calculator() *panchang.Calculator {
	opts := []panchang.Option{
		panchang.WithLogger(a.log),
		panchang.WithBoundarySearch(a.cfg.BoundarySearch),
	}
	if a.cfg.EphemerisURL != "" {
		opts = append(opts, panchang.WithEphemeris(ephemeris.NewClient(a.cfg.EphemerisURL, a.cfg.EphemerisTimeout)))
	}
	return panchang.NewCalculator(opts...)
}

// locationFlags selects a place either by saved slug or by coordinates.
type locationFlags struct {
	slug string
	name string
	lat  float64
	lon  float64
	tz   string
}

func (f *locationFlags) register(fs *pflag.FlagSet) {
	fs.StringVarP(&f.slug, "location", "l", "", "saved location slug (default $DEFAULT_LOCATION)")
	fs.StringVar(&f.name, "name", "", "display name for --lat/--lon")
	fs.Float64Var(&f.lat, "lat", 0, "latitude in decimal degrees")
	fs.Float64Var(&f.lon, "lon", 0, "longitude in decimal degrees, east positive")
	fs.StringVar(&f.tz, "tz", "", "IANA time zone for --lat/--lon")
}

// resolve returns the coordinates when --lat or --lon is set, otherwise the
// saved location named by --location or the configured default.
func (f *locationFlags) resolve(ctx context.Context, cmd *cobra.Command, a *app) (panchang.GeoLocation, error) {
	fs := cmd.Flags()
	if fs.Changed("lat") || fs.Changed("lon") {
		if !fs.Changed("lat") || !fs.Changed("lon") {
			return panchang.GeoLocation{}, errors.New("--lat and --lon must be given together")
		}
		if f.slug != "" {
			return panchang.GeoLocation{}, errors.New("--location cannot be combined with --lat/--lon")
		}
		if f.tz == "" {
			return panchang.GeoLocation{}, errors.New("--tz is required with --lat/--lon")
		}
		return panchang.GeoLocation{Name: f.name, Latitude: f.lat, Longitude: f.lon, Timezone: f.tz}, nil
	}

	slug := f.slug
	if slug == "" {
		slug = a.cfg.DefaultLocation
	}

	db, err := a.openDB(ctx)
	if err != nil {
		return panchang.GeoLocation{}, err
	}
	defer db.Close()

	loc, err := db.GetLocationBySlug(ctx, slug)
	if err != nil {
		if database.IsNotFound(err) {
			return panchang.GeoLocation{}, fmt.Errorf("location %q not found; see 'panchang locations list'", slug)
		}
		return panchang.GeoLocation{}, err
	}
	return loc.GeoLocation(), nil
}
