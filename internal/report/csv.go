package report

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/mwangaza/board/internal/gateway"
)

// WriteDonationsCSV writes one row per donation.
func WriteDonationsCSV(w io.Writer, donations []gateway.Donation) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"id", "campaign_id", "donor_email", "amount", "status", "payment_method", "created_at"}); err != nil {
		return err
	}
	for _, d := range donations {
		row := []string{
			d.ID,
			d.CampaignID,
			d.DonorEmail,
			formatCents(d.AmountCents),
			d.Status,
			d.PaymentMethod,
			d.CreatedAt,
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteSummaryCSV writes the status grouping plus a monthly series, the same
// projection the reports tab renders.
func WriteSummaryCSV(w io.Writer, donations []gateway.Donation) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"section", "label", "count", "amount"}); err != nil {
		return err
	}
	for _, sc := range GroupDonationsByStatus(donations) {
		if err := cw.Write([]string{"status", sc.Status, fmt.Sprint(sc.Count), formatCents(sc.Cents)}); err != nil {
			return err
		}
	}
	for _, mt := range MonthlyTotals(donations) {
		if err := cw.Write([]string{"month", mt.Month, fmt.Sprint(mt.Count), formatCents(mt.Cents)}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func formatCents(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d.%02d", sign, cents/100, cents%100)
}
