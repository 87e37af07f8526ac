package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/zapponejosh/panchang-api/internal/panchang"
)

const dateLayout = "2006-01-02"

func newCalcCmd(a *app) *cobra.Command {
	var (
		loc    locationFlags
		date   string
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "calc",
		Short: "Compute the almanac for one date",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			geo, err := loc.resolve(ctx, cmd, a)
			if err != nil {
				return err
			}

			if date == "" {
				tz, err := geo.Validate()
				if err != nil {
					return err
				}
				date = time.Now().In(tz).Format(dateLayout)
			}

			result, err := a.calculator().Calculate(ctx, date, geo)
			if err != nil {
				return err
			}

			if asJSON {
				return writeJSON(cmd.OutOrStdout(), result)
			}
			return writeResult(cmd.OutOrStdout(), result)
		},
	}

	loc.register(cmd.Flags())
	cmd.Flags().StringVarP(&date, "date", "d", "", "YYYY-MM-DD or RFC 3339 timestamp (default today at the location)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the full result as JSON")
	return cmd
}

func newRangeCmd(a *app) *cobra.Command {
	var (
		loc        locationFlags
		start, end string
		asJSON     bool
	)

	cmd := &cobra.Command{
		Use:   "range",
		Short: "Summarise the almanac for each day in a date range",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			startDate, err := time.Parse(dateLayout, start)
			if err != nil {
				return fmt.Errorf("invalid --start %q: use YYYY-MM-DD", start)
			}
			endDate, err := time.Parse(dateLayout, end)
			if err != nil {
				return fmt.Errorf("invalid --end %q: use YYYY-MM-DD", end)
			}
			if startDate.After(endDate) {
				return fmt.Errorf("--start %s is after --end %s", start, end)
			}
			if days := int(endDate.Sub(startDate).Hours()/24) + 1; days > a.cfg.MaxRangeDays {
				return fmt.Errorf("range of %d days exceeds the limit of %d", days, a.cfg.MaxRangeDays)
			}

			geo, err := loc.resolve(ctx, cmd, a)
			if err != nil {
				return err
			}

			calc := a.calculator()
			var results []*panchang.Result
			for d := startDate; !d.After(endDate); d = d.AddDate(0, 0, 1) {
				result, err := calc.Calculate(ctx, d.Format(dateLayout), geo)
				if err != nil {
					return fmt.Errorf("%s: %w", d.Format(dateLayout), err)
				}
				results = append(results, result)
			}

			if asJSON {
				return writeJSON(cmd.OutOrStdout(), results)
			}
			return writeRangeTable(cmd.OutOrStdout(), results)
		},
	}

	loc.register(cmd.Flags())
	cmd.Flags().StringVar(&start, "start", "", "first date, YYYY-MM-DD")
	cmd.Flags().StringVar(&end, "end", "", "last date, YYYY-MM-DD")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the full results as JSON")
	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("end")
	return cmd
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// writeResult prints a one-screen summary of r.
func writeResult(w io.Writer, r *panchang.Result) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	fmt.Fprintf(tw, "%s\t%s (%s)\n", r.Location, r.Date, r.Timezone)
	fmt.Fprintf(tw, "Sun\t%s - %s\n", r.Sunrise, r.Sunset)
	fmt.Fprintf(tw, "Moon\t%s - %s\n", r.Moonrise, r.Moonset)
	fmt.Fprintf(tw, "Vara\t%s (%s, %s)\n", r.Vara.Name, r.Vara.English, r.Vara.Lord)
	fmt.Fprintf(tw, "Tithi\t%s, %s paksha %s\n", r.Tithi.Name, r.Tithi.Paksha, until(r.Tithi.Element, r.Timezone))
	fmt.Fprintf(tw, "Nakshatra\t%s (%s) %s\n", r.Nakshatra.Name, r.Nakshatra.Lord, until(r.Nakshatra.Element, r.Timezone))
	fmt.Fprintf(tw, "Yoga\t%s %s\n", r.Yoga.Name, until(r.Yoga, r.Timezone))
	fmt.Fprintf(tw, "Karana\t%s %s\n", r.Karana.Name, until(r.Karana, r.Timezone))
	fmt.Fprintf(tw, "Signs\tsun %s, moon %s\n", r.SunSign, r.MoonSign)
	fmt.Fprintf(tw, "Samvat\tVikram %d, Shaka %d\n", r.VikramSamvat, r.ShakaSamvat)
	fmt.Fprintf(tw, "Month\t%s, %s, %s\n", r.LunarMonth, r.Ritu, r.Ayana)
	if len(r.Festivals) > 0 {
		fmt.Fprintf(tw, "Festivals\t%s\n", strings.Join(r.Festivals, ", "))
	}
	if r.Panchak || r.Bhadra {
		fmt.Fprintf(tw, "Cautions\t%s\n", cautions(r))
	}
	fmt.Fprintln(tw)

	for _, m := range r.Auspicious {
		fmt.Fprintf(tw, "+ %s\t%s - %s\n", m.Name, m.Start, m.End)
	}
	for _, m := range r.Inauspicious {
		fmt.Fprintf(tw, "- %s\t%s - %s\n", m.Name, m.Start, m.End)
	}
	fmt.Fprintln(tw)

	fmt.Fprintln(tw, "Day choghadiya\t\tNight choghadiya\t")
	for i := range r.DayChoghadiya {
		day := r.DayChoghadiya[i]
		line := fmt.Sprintf("%s - %s %s (%s)\t", day.Start, day.End, day.Name, day.Type)
		if i < len(r.NightChoghadiya) {
			night := r.NightChoghadiya[i]
			line += fmt.Sprintf("\t%s - %s %s (%s)\t", night.Start, night.End, night.Name, night.Type)
		}
		fmt.Fprintln(tw, line)
	}
	fmt.Fprintf(tw, "\nmethod %s, JD %.5f\n", r.Diagnostics.Method, r.Diagnostics.JulianDay)

	return tw.Flush()
}

// writeRangeTable prints one row per day.
func writeRangeTable(w io.Writer, results []*panchang.Result) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "DATE\tVARA\tTITHI\tNAKSHATRA\tSUNRISE\tSUNSET\tFESTIVALS")
	for _, r := range results {
		fmt.Fprintf(tw, "%s\t%s\t%s %s\t%s\t%s\t%s\t%s\n",
			r.Date, r.Vara.Name, r.Tithi.Paksha, r.Tithi.Name, r.Nakshatra.Name,
			r.Sunrise, r.Sunset, strings.Join(r.Festivals, ", "))
	}
	return tw.Flush()
}

func until(e panchang.Element, zone string) string {
	if e.End.IsZero() {
		return ""
	}
	end := e.End
	if tz, err := time.LoadLocation(zone); err == nil {
		end = end.In(tz)
	}
	return "until " + end.Format("Jan 2 15:04")
}

func cautions(r *panchang.Result) string {
	var parts []string
	if r.Panchak {
		parts = append(parts, "Panchak")
	}
	if r.Bhadra {
		parts = append(parts, "Bhadra")
	}
	return strings.Join(parts, ", ")
}
