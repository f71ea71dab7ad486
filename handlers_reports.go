package main

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/mwangaza/board/internal/report"
	"github.com/mwangaza/board/internal/rolegate"
)

func renderReports(w http.ResponseWriter, r *http.Request) {
	stores.Donations.EnsureLoaded(r.Context())
	stores.Reports.EnsureLoaded(r.Context())
	donations := stores.Donations.Snapshot()
	reports := stores.Reports.Snapshot()

	data := baseData(r, rolegate.ModuleReports)
	data["ByStatus"] = report.GroupDonationsByStatus(donations.Records)
	data["Monthly"] = report.MonthlyTotals(donations.Records)
	data["TotalRaised"] = report.TotalRaised(donations.Records)
	data["Reports"] = reports.Records
	data["Err"] = firstError(donations.Err, reports.Err)
	renderTemplate(w, "reports.html", data)
}

func handleExportDonationsCSV(w http.ResponseWriter, r *http.Request) {
	if err := stores.Donations.EnsureLoaded(r.Context()); err != nil {
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}
	snap := stores.Donations.Snapshot()

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="donations.csv"`)
	if err := report.WriteDonationsCSV(w, snap.Records); err != nil {
		logger.Warn("csv export failed", zap.Error(err))
	}
}

func handleExportSummaryCSV(w http.ResponseWriter, r *http.Request) {
	if err := stores.Donations.EnsureLoaded(r.Context()); err != nil {
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}
	snap := stores.Donations.Snapshot()

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="summary.csv"`)
	if err := report.WriteSummaryCSV(w, snap.Records); err != nil {
		logger.Warn("csv export failed", zap.Error(err))
	}
}
