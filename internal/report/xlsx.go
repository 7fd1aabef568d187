package report

import (
	"fmt"
	"io"

	"github.com/farxc/carteira-devedores/internal/portfolio"
	"github.com/xuri/excelize/v2"
)

const (
	SheetPortfolios = "Carteiras"
	SheetClients    = "Clientes"
)

// WriteXLSX writes a workbook with a per-employee totals sheet and a client sheet.
func WriteXLSX(w io.Writer, o *portfolio.Overview) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetPortfolios); err != nil {
		return err
	}
	if _, err := f.NewSheet(SheetClients); err != nil {
		return err
	}

	if err := setRow(f, SheetPortfolios, 1, []interface{}{"responsavel", "email", "clientes", "divida_selecionada"}); err != nil {
		return err
	}
	rowNo := 2
	for _, v := range o.Portfolios {
		if err := setRow(f, SheetPortfolios, rowNo, []interface{}{v.Employee.Name, v.Employee.Email, v.Count, v.Value.InexactFloat64()}); err != nil {
			return err
		}
		rowNo++
	}
	if err := setRow(f, SheetPortfolios, rowNo, []interface{}{unassignedLabel, "", len(o.Unassigned), o.UnassignedValue.InexactFloat64()}); err != nil {
		return err
	}

	header := make([]interface{}, len(clientColumns))
	for i, c := range clientColumns {
		header[i] = c
	}
	if err := setRow(f, SheetClients, 1, header); err != nil {
		return err
	}
	for i, r := range ClientRows(o) {
		if err := setRow(f, SheetClients, i+2, r.values()); err != nil {
			return err
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("error writing XLSX: %v", err)
	}
	return nil
}

func setRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	return f.SetSheetRow(sheet, cell, &values)
}
