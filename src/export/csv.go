package export

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// Frame converts t into a gota DataFrame of preformatted text columns.
func Frame(t Table) dataframe.DataFrame {
	cols := make([]series.Series, len(t.Columns))
	for j, c := range t.Columns {
		vals := make([]string, len(t.Rows))
		for i, row := range t.Rows {
			vals[i] = FormatCell(row[j])
		}
		cols[j] = series.New(vals, series.String, c.Name)
	}
	return dataframe.New(cols...)
}

// WriteCSV writes t with a header row to path, overwriting any previous file.
func WriteCSV(path string, t Table) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create out dir: %w", err)
	}
	df := Frame(t)
	if df.Err != nil {
		return fmt.Errorf("build %s frame: %w", t.Name, df.Err)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := df.WriteCSV(f); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}
