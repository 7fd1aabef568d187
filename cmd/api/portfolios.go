package main

import (
	"fmt"
	"net/http"
	"time"

	"github.com/farxc/carteira-devedores/internal/portfolio"
	"github.com/farxc/carteira-devedores/internal/report"
	"github.com/farxc/carteira-devedores/internal/response"
)

type GetPortfoliosResponse = response.APIResponse[*portfolio.Overview]

// @Summary		Portfolios
// @Description	One portfolio per employee plus the unassigned set, over clients matching the client filters.
// @Tags			Portfolios
// @Produce		json
// @Success		200	{object}	GetPortfoliosResponse
// @Failure		400	{object}	response.ErrorResponse
// @Router			/portfolios [get]
func (app *application) handleGetPortfolios(w http.ResponseWriter, r *http.Request) {
	f, err := filterFromQuery(r)
	if err != nil {
		app.writeServiceError(w, r, err)
		return
	}
	data, err := app.portfolio.Overview(r.Context(), f)
	if err != nil {
		app.writeServiceError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, "", data)
}

// @Summary		Export portfolios
// @Description	Downloads the portfolios as CSV or XLSX.
// @Tags			Portfolios
// @Produce		text/csv
// @Produce		application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param			format	query	string	false	"csv or xlsx"	default(csv)
// @Success		200
// @Failure		400	{object}	response.ErrorResponse
// @Router			/portfolios/export [get]
func (app *application) handleExportPortfolios(w http.ResponseWriter, r *http.Request) {
	const component = "Export"

	format := r.URL.Query().Get("format")
	if format == "" {
		format = report.FormatCSV
	}
	if format != report.FormatCSV && format != report.FormatXLSX {
		writeJSONError(w, http.StatusBadRequest, "format must be csv or xlsx")
		return
	}

	f, err := filterFromQuery(r)
	if err != nil {
		app.writeServiceError(w, r, err)
		return
	}
	overview, err := app.portfolio.Overview(r.Context(), f)
	if err != nil {
		app.writeServiceError(w, r, err)
		return
	}

	filename := fmt.Sprintf("carteiras-%s.%s", time.Now().Format("2006-01-02"), format)
	w.Header().Set("Content-Disposition", "attachment; filename="+filename)
	if format == report.FormatXLSX {
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		err = report.WriteXLSX(w, overview)
	} else {
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		err = report.WriteCSV(w, overview)
	}
	if err != nil {
		// headers are already out
		app.logger.Error(component, "Export failed: format=%s error=%v", format, err)
	}
}
