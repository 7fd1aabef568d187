package report

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/farxc/carteira-devedores/internal/portfolio"
	"github.com/go-gota/gota/dataframe"
)

// WriteCSV writes one line per client of the overview.
func WriteCSV(w io.Writer, o *portfolio.Overview) error {
	rows := ClientRows(o)
	if len(rows) == 0 {
		// dataframe cannot be built from an empty slice
		cw := csv.NewWriter(w)
		if err := cw.Write(clientColumns); err != nil {
			return err
		}
		cw.Flush()
		return cw.Error()
	}

	df := dataframe.LoadStructs(rows)
	if df.Err != nil {
		return fmt.Errorf("error building dataframe: %v", df.Err)
	}
	if err := df.WriteCSV(w); err != nil {
		return fmt.Errorf("error writing CSV: %v", err)
	}
	return nil
}
