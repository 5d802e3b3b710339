// energyreader prints what a previous run stored in its SQLite export.
package main

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	_ "modernc.org/sqlite"
)

func newRootCmd(stdout io.Writer) *cobra.Command {
	var dbPath, country string
	cmd := &cobra.Command{
		Use:           "energyreader",
		Short:         "Summarize the merged table of an energygdp SQLite export",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if country != "" {
				return printCountry(cmd.Context(), dbPath, country, stdout)
			}
			return printCounts(cmd.Context(), dbPath, stdout)
		},
	}
	cmd.Flags().StringVar(&dbPath, "db", "", "Path to the SQLite export (outputs.sqlite of the run)")
	cmd.Flags().StringVar(&country, "country", "", "Print the yearly rows of one country instead of row counts")
	_ = cmd.MarkFlagRequired("db")
	return cmd
}

func open(path string) (*sql.DB, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, err
	}
	return sql.Open("sqlite", path)
}

// printCounts lists how many merged rows and which year span each country has.
func printCounts(ctx context.Context, path string, w io.Writer) error {
	db, err := open(path)
	if err != nil {
		return err
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx, `SELECT "Country", COUNT(*), MIN("Year"), MAX("Year") FROM merged GROUP BY "Country" ORDER BY "Country"`)
	if err != nil {
		return fmt.Errorf("query merged: %w", err)
	}
	defer rows.Close()

	table := tablewriter.NewWriter(w)
	table.SetAutoFormatHeaders(false)
	table.SetHeader([]string{"Country", "Rows", "First year", "Last year"})
	total := 0
	for rows.Next() {
		var c string
		var n, lo, hi int
		if err := rows.Scan(&c, &n, &lo, &hi); err != nil {
			return err
		}
		total += n
		table.Append([]string{c, strconv.Itoa(n), strconv.Itoa(lo), strconv.Itoa(hi)})
	}
	if err := rows.Err(); err != nil {
		return err
	}
	fmt.Fprintf(w, "Total rows: %d\n", total)
	table.Render()
	return nil
}

// printCountry lists the ratios and elasticity of one country by year.
func printCountry(ctx context.Context, path, country string, w io.Writer) error {
	db, err := open(path)
	if err != nil {
		return err
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx, `SELECT "Year", "Energy_Intensity", "Energy_per_capita", "GDP_capita", "Elasticity"
		FROM variation WHERE "Country" = ? ORDER BY "Year"`, country)
	if err != nil {
		return fmt.Errorf("query variation: %w", err)
	}
	defer rows.Close()

	table := tablewriter.NewWriter(w)
	table.SetAutoFormatHeaders(false)
	table.SetHeader([]string{"Year", "Energy_Intensity", "Energy_per_capita", "GDP_capita", "Elasticity"})
	n := 0
	for rows.Next() {
		var year int
		var vals [4]sql.NullFloat64
		if err := rows.Scan(&year, &vals[0], &vals[1], &vals[2], &vals[3]); err != nil {
			return err
		}
		rec := []string{strconv.Itoa(year)}
		for _, v := range vals {
			rec = append(rec, nullable(v))
		}
		table.Append(rec)
		n++
	}
	if err := rows.Err(); err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("no rows for %q", country)
	}
	fmt.Fprintf(w, "%s: %d years\n", country, n)
	table.Render()
	return nil
}

func nullable(v sql.NullFloat64) string {
	if !v.Valid {
		return ""
	}
	return strconv.FormatFloat(v.Float64, 'g', 6, 64)
}

func main() {
	if err := newRootCmd(os.Stdout).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
