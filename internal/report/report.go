// Package report renders portfolio overviews as spreadsheet downloads.
package report

import (
	"github.com/farxc/carteira-devedores/internal/portfolio"
	"github.com/farxc/carteira-devedores/internal/store"
	"github.com/farxc/carteira-devedores/internal/utils"
)

const (
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
)

const unassignedLabel = "(sem responsável)"

// ClientRow is one exported client line. Amounts use the same
// "1.234,56" notation as the import files.
type ClientRow struct {
	Employee       string `dataframe:"responsavel"`
	TaxID          string `dataframe:"cnpj_cpf"`
	LegalName      string `dataframe:"razao_social"`
	TradeName      string `dataframe:"nome_fantasia"`
	Region         string `dataframe:"uf"`
	DebtNature     string `dataframe:"natureza_divida"`
	Stage          string `dataframe:"etapa"`
	RegistryStatus string `dataframe:"situacao_cadastral"`
	TotalDebt      string `dataframe:"divida_total"`
	SelectedDebt   string `dataframe:"divida_selecionada"`
	Contracts      int    `dataframe:"contratos"`
}

var clientColumns = []string{
	"responsavel", "cnpj_cpf", "razao_social", "nome_fantasia", "uf",
	"natureza_divida", "etapa", "situacao_cadastral", "divida_total",
	"divida_selecionada", "contratos",
}

func (r ClientRow) values() []interface{} {
	return []interface{}{
		r.Employee, r.TaxID, r.LegalName, r.TradeName, r.Region,
		r.DebtNature, r.Stage, r.RegistryStatus, r.TotalDebt,
		r.SelectedDebt, r.Contracts,
	}
}

func newClientRow(owner string, c store.ClientCompany) ClientRow {
	return ClientRow{
		Employee:       owner,
		TaxID:          utils.FormatTaxID(c.TaxID),
		LegalName:      c.LegalName,
		TradeName:      c.TradeName,
		Region:         c.Region,
		DebtNature:     c.DebtNature,
		Stage:          string(c.NegotiationStage),
		RegistryStatus: c.RegistryStatus,
		TotalDebt:      utils.FormatAmount(c.TotalDebtAmount),
		SelectedDebt:   utils.FormatAmount(c.SelectedDebtAmount),
		Contracts:      len(c.Contracts),
	}
}

// ClientRows flattens an overview: every portfolio in order, then the
// unassigned clients.
func ClientRows(o *portfolio.Overview) []ClientRow {
	rows := []ClientRow{}
	for _, v := range o.Portfolios {
		for _, c := range v.Clients {
			rows = append(rows, newClientRow(v.Employee.Name, c))
		}
	}
	for _, c := range o.Unassigned {
		rows = append(rows, newClientRow(unassignedLabel, c))
	}
	return rows
}
