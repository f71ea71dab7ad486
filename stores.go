package main

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/mwangaza/board/internal/gateway"
	"github.com/mwangaza/board/internal/notify"
	"github.com/mwangaza/board/internal/rolegate"
	"github.com/mwangaza/board/internal/store"
)

// Stores is the set of per-resource caches the views render from.
type Stores struct {
	Campaigns *store.Store[gateway.Campaign]
	Donations *store.Store[gateway.Donation]
	Donors    *store.Store[gateway.Donor]
	Receipts  *store.Store[gateway.Receipt]
	Material  *store.Store[gateway.MaterialDonation]
	Shelters  *store.Store[gateway.Shelter]
	Staff     *store.Store[gateway.StaffCredential]
	Families  *store.Store[gateway.Family]
	Cases     *store.Store[gateway.Case]
	Events    *store.Store[gateway.Event]
	Reports   *store.Store[gateway.Report]
}

func newStores(gw *gateway.Client) *Stores {
	return &Stores{
		Campaigns: store.New(gateway.Campaigns, gateway.NewCollection[gateway.Campaign](gw, gateway.Campaigns), func(c gateway.Campaign) string { return c.ID }),
		Donations: store.New(gateway.Donations, gateway.NewCollection[gateway.Donation](gw, gateway.Donations), func(d gateway.Donation) string { return d.ID }),
		Donors:    store.New(gateway.Donors, gateway.NewCollection[gateway.Donor](gw, gateway.Donors), func(d gateway.Donor) string { return d.ID }),
		Receipts:  store.New(gateway.Receipts, gateway.NewCollection[gateway.Receipt](gw, gateway.Receipts), func(r gateway.Receipt) string { return r.ID }),
		Material:  store.New(gateway.MaterialDonations, gateway.NewCollection[gateway.MaterialDonation](gw, gateway.MaterialDonations), func(m gateway.MaterialDonation) string { return m.ID }),
		Shelters:  store.New(gateway.Shelters, gateway.NewCollection[gateway.Shelter](gw, gateway.Shelters), func(s gateway.Shelter) string { return s.ID }),
		Staff:     store.New(gateway.Staff, gateway.NewCollection[gateway.StaffCredential](gw, gateway.Staff), func(s gateway.StaffCredential) string { return s.ID }),
		Families:  store.New(gateway.Families, gateway.NewCollection[gateway.Family](gw, gateway.Families), func(f gateway.Family) string { return f.ID }),
		Cases:     store.New(gateway.Cases, gateway.NewCollection[gateway.Case](gw, gateway.Cases), func(c gateway.Case) string { return c.ID }),
		Events:    store.New(gateway.Events, gateway.NewCollection[gateway.Event](gw, gateway.Events), func(e gateway.Event) string { return e.ID }),
		Reports:   store.New(gateway.Reports, gateway.NewCollection[gateway.Report](gw, gateway.Reports), func(r gateway.Report) string { return r.ID }),
	}
}

// RefreshDashboard re-fetches the stores the overview aggregates read. It is
// the poller task, and the warm-up at startup.
func (s *Stores) RefreshDashboard(ctx context.Context) error {
	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() error { return s.Campaigns.Fetch(ctx) })
	eg.Go(func() error { return s.Donations.Fetch(ctx) })
	eg.Go(func() error { return s.Donors.Fetch(ctx) })
	eg.Go(func() error { return s.Shelters.Fetch(ctx) })
	return eg.Wait()
}

// RefreshModule re-fetches the stores backing one tab.
func (s *Stores) RefreshModule(ctx context.Context, module string) error {
	switch module {
	case rolegate.ModuleDashboard:
		return s.RefreshDashboard(ctx)
	case rolegate.ModuleCampaigns:
		return s.Campaigns.Fetch(ctx)
	case rolegate.ModuleDonations, rolegate.ModuleImpact:
		return s.Donations.Fetch(ctx)
	case rolegate.ModuleDonors:
		return s.Donors.Fetch(ctx)
	case rolegate.ModuleMaterial:
		return s.Material.Fetch(ctx)
	case rolegate.ModuleShelters:
		return s.Shelters.Fetch(ctx)
	case rolegate.ModuleStaff, rolegate.ModuleVolunteers:
		return s.Staff.Fetch(ctx)
	case rolegate.ModuleCases:
		return s.Cases.Fetch(ctx)
	case rolegate.ModuleFamilies:
		return s.Families.Fetch(ctx)
	case rolegate.ModuleEvents:
		return s.Events.Fetch(ctx)
	case rolegate.ModuleReports:
		return s.Reports.Fetch(ctx)
	}
	return nil
}

// processPayment posts the payment action for a donation, patches the cache
// with the result, broadcasts a notification so unread badges refresh, and
// re-fetches the four collections the payment touches.
func processPayment(ctx context.Context, donationID, method string) (gateway.Donation, error) {
	txRef := "sim-" + uuid.NewString()
	updated, err := gateway.Action[gateway.Donation](ctx, gw, gateway.Donations, donationID, "process", map[string]string{
		"payment_method": method,
		"gateway_tx_ref": txRef,
	})
	if err != nil {
		return updated, err
	}
	stores.Donations.Apply(updated)

	// The payment itself succeeded; the notice goes out even if the
	// re-fetches below fail.
	publisher.Notify(notify.Notice{
		Type:     "payment.completed",
		Title:    "Payment processed",
		Message:  fmt.Sprintf("Donation %s processed (%s)", updated.ID, formatCents(updated.AmountCents)),
		Category: notify.CategoryPayments,
		TargetRoles: []string{
			string(rolegate.RoleAdmin),
			string(rolegate.RoleManagement),
			string(rolegate.RoleDonor),
		},
	})

	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error { return stores.Campaigns.Fetch(egCtx) })
	eg.Go(func() error { return stores.Donations.Fetch(egCtx) })
	eg.Go(func() error { return stores.Receipts.Fetch(egCtx) })
	eg.Go(func() error { return stores.Donors.Fetch(egCtx) })
	if err := eg.Wait(); err != nil {
		return updated, fmt.Errorf("payment processed, refresh failed: %w", err)
	}
	return updated, nil
}
