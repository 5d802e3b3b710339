package export

import (
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/olekukonko/tablewriter"

	"github.com/davideantoniazzi799/Energy-Intensity-Economic-Growth/src/analysis"
)

// WriteSummary prints the mean elasticity per country as a text table.
func WriteSummary(w io.Writer, title string, rows []analysis.CountryElasticity) {
	if title != "" {
		fmt.Fprintln(w, title)
	}
	table := tablewriter.NewWriter(w)
	table.SetAutoFormatHeaders(false)
	table.SetHeader([]string{"Country", "Mean elasticity", "Years", "Decoupling"})
	for _, r := range rows {
		mean := "n/a"
		if !math.IsNaN(r.Mean) {
			mean = strconv.FormatFloat(r.Mean, 'f', 3, 64)
		}
		table.Append([]string{r.Country, mean, strconv.Itoa(r.Years), r.Class.String()})
	}
	table.Render()
}
