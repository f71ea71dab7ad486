// Package report derives the read-only projections the dashboard and the
// reports tab render: totals, donor tiers, status groupings, monthly series.
package report

import (
	"sort"
	"strings"
	"time"

	"github.com/mwangaza/board/internal/gateway"
)

// countedStatuses are the donation statuses that contribute to money totals.
var countedStatuses = map[string]bool{
	"COMPLETED": true,
	"VERIFIED":  true,
	"SUCCESS":   true,
}

// TotalRaised sums donation amounts for statuses that represent money in
// hand. PENDING, FAILED and REFUNDED are excluded.
func TotalRaised(donations []gateway.Donation) int64 {
	var total int64
	for _, d := range donations {
		if countedStatuses[d.Status] {
			total += d.AmountCents
		}
	}
	return total
}

// Impact tiers, lower edge inclusive.
const (
	TierBronze   = "Bronze Partner"
	TierSilver   = "Silver Partner"
	TierGold     = "Gold Partner"
	TierPlatinum = "Platinum Partner"
)

// ImpactRank buckets a donor's counted total into a named tier.
func ImpactRank(total int64) string {
	switch {
	case total >= 250_000:
		return TierPlatinum
	case total >= 50_000:
		return TierGold
	case total >= 10_000:
		return TierSilver
	default:
		return TierBronze
	}
}

// DonorTotal sums the counted donations belonging to one donor, matched by
// donor id or email.
func DonorTotal(donations []gateway.Donation, donorID, email string) int64 {
	var total int64
	for _, d := range donations {
		if !countedStatuses[d.Status] {
			continue
		}
		if (donorID != "" && d.DonorID == donorID) ||
			(email != "" && strings.EqualFold(d.DonorEmail, email)) {
			total += d.AmountCents
		}
	}
	return total
}

// StatusCount is one bar of a status grouping.
type StatusCount struct {
	Status string
	Count  int
	Cents  int64
}

// GroupDonationsByStatus buckets donations per status, ordered by status
// name for stable rendering.
func GroupDonationsByStatus(donations []gateway.Donation) []StatusCount {
	byStatus := map[string]*StatusCount{}
	for _, d := range donations {
		sc, ok := byStatus[d.Status]
		if !ok {
			sc = &StatusCount{Status: d.Status}
			byStatus[d.Status] = sc
		}
		sc.Count++
		sc.Cents += d.AmountCents
	}
	out := make([]StatusCount, 0, len(byStatus))
	for _, sc := range byStatus {
		out = append(out, *sc)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Status < out[j].Status })
	return out
}

// MonthTotal is one month of counted donations.
type MonthTotal struct {
	Month string // 2006-01
	Count int
	Cents int64
}

// MonthlyTotals groups counted donations by calendar month of created_at.
// Records with unparseable timestamps are skipped.
func MonthlyTotals(donations []gateway.Donation) []MonthTotal {
	byMonth := map[string]*MonthTotal{}
	for _, d := range donations {
		if !countedStatuses[d.Status] {
			continue
		}
		t, err := parseTime(d.CreatedAt)
		if err != nil {
			continue
		}
		key := t.Format("2006-01")
		mt, ok := byMonth[key]
		if !ok {
			mt = &MonthTotal{Month: key}
			byMonth[key] = mt
		}
		mt.Count++
		mt.Cents += d.AmountCents
	}
	out := make([]MonthTotal, 0, len(byMonth))
	for _, mt := range byMonth {
		out = append(out, *mt)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month < out[j].Month })
	return out
}

// CampaignProgress is percent funded, clamped to 100.
func CampaignProgress(c gateway.Campaign) int {
	if c.TargetCents <= 0 {
		return 0
	}
	pct := int(c.RaisedCents * 100 / c.TargetCents)
	if pct > 100 {
		pct = 100
	}
	return pct
}

func parseTime(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}
