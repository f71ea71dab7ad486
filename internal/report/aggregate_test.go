package report

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mwangaza/board/internal/gateway"
)

func TestTotalRaised(t *testing.T) {
	donations := []gateway.Donation{
		{AmountCents: 100, Status: "COMPLETED"},
		{AmountCents: 50, Status: "PENDING"},
		{AmountCents: 200, Status: "VERIFIED"},
	}
	assert.Equal(t, int64(300), TotalRaised(donations), "pending must be excluded")

	assert.Equal(t, int64(0), TotalRaised(nil))
	assert.Equal(t, int64(0), TotalRaised([]gateway.Donation{
		{AmountCents: 999, Status: "FAILED"},
		{AmountCents: 999, Status: "REFUNDED"},
	}))
}

func TestImpactRankBoundaries(t *testing.T) {
	cases := []struct {
		total int64
		want  string
	}{
		{0, TierBronze},
		{9_999, TierBronze},
		{10_000, TierSilver},
		{49_999, TierSilver},
		{50_000, TierGold},
		{249_999, TierGold},
		{250_000, TierPlatinum},
		{1_000_000, TierPlatinum},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, ImpactRank(tc.total), "total=%d", tc.total)
	}
}

func TestDonorTotal(t *testing.T) {
	donations := []gateway.Donation{
		{AmountCents: 100, Status: "COMPLETED", DonorEmail: "a@x.org"},
		{AmountCents: 40, Status: "PENDING", DonorEmail: "a@x.org"},
		{AmountCents: 60, Status: "VERIFIED", DonorEmail: "B@x.org"},
		{AmountCents: 25, Status: "COMPLETED", DonorID: "d1"},
	}
	assert.Equal(t, int64(100), DonorTotal(donations, "", "A@x.org"), "email match is case-insensitive")
	assert.Equal(t, int64(25), DonorTotal(donations, "d1", ""))
	assert.Equal(t, int64(0), DonorTotal(donations, "", ""))
}

func TestGroupDonationsByStatus(t *testing.T) {
	donations := []gateway.Donation{
		{AmountCents: 10, Status: "PENDING"},
		{AmountCents: 20, Status: "COMPLETED"},
		{AmountCents: 30, Status: "PENDING"},
	}
	groups := GroupDonationsByStatus(donations)
	require.Len(t, groups, 2)
	assert.Equal(t, "COMPLETED", groups[0].Status)
	assert.Equal(t, StatusCount{Status: "PENDING", Count: 2, Cents: 40}, groups[1])
}

func TestMonthlyTotals(t *testing.T) {
	donations := []gateway.Donation{
		{AmountCents: 10, Status: "COMPLETED", CreatedAt: "2026-01-10T12:00:00Z"},
		{AmountCents: 20, Status: "COMPLETED", CreatedAt: "2026-01-20T12:00:00Z"},
		{AmountCents: 40, Status: "VERIFIED", CreatedAt: "2026-02-01"},
		{AmountCents: 80, Status: "PENDING", CreatedAt: "2026-02-02T00:00:00Z"},
		{AmountCents: 5, Status: "COMPLETED", CreatedAt: "not a date"},
	}
	months := MonthlyTotals(donations)
	require.Len(t, months, 2)
	assert.Equal(t, MonthTotal{Month: "2026-01", Count: 2, Cents: 30}, months[0])
	assert.Equal(t, MonthTotal{Month: "2026-02", Count: 1, Cents: 40}, months[1])
}

func TestCampaignProgress(t *testing.T) {
	assert.Equal(t, 50, CampaignProgress(gateway.Campaign{TargetCents: 200, RaisedCents: 100}))
	assert.Equal(t, 100, CampaignProgress(gateway.Campaign{TargetCents: 100, RaisedCents: 250}), "clamped")
	assert.Equal(t, 0, CampaignProgress(gateway.Campaign{TargetCents: 0, RaisedCents: 50}))
}

func TestWriteDonationsCSV(t *testing.T) {
	var sb strings.Builder
	err := WriteDonationsCSV(&sb, []gateway.Donation{
		{ID: "d1", CampaignID: "c1", DonorEmail: "a@x.org", AmountCents: 12345, Status: "COMPLETED", PaymentMethod: "MPESA", CreatedAt: "2026-01-10T12:00:00Z"},
	})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(sb.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "id,campaign_id,donor_email,amount,status,payment_method,created_at", lines[0])
	assert.Contains(t, lines[1], "123.45")
}

func TestWriteDonationsCSVNegativeAmount(t *testing.T) {
	var sb strings.Builder
	err := WriteDonationsCSV(&sb, []gateway.Donation{
		{ID: "d2", AmountCents: -1234, Status: "REFUNDED"},
	})
	require.NoError(t, err)
	assert.Contains(t, sb.String(), "-12.34")
}

func TestWriteSummaryCSV(t *testing.T) {
	var sb strings.Builder
	err := WriteSummaryCSV(&sb, []gateway.Donation{
		{AmountCents: 100, Status: "COMPLETED", CreatedAt: "2026-01-10T12:00:00Z"},
		{AmountCents: 50, Status: "PENDING", CreatedAt: "2026-01-11T12:00:00Z"},
	})
	require.NoError(t, err)

	out := sb.String()
	assert.Contains(t, out, "status,COMPLETED,1,1.00")
	assert.Contains(t, out, "status,PENDING,1,0.50")
	assert.Contains(t, out, "month,2026-01,1,1.00")
}
