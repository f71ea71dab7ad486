package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mwangaza/board/internal/gateway"
	"github.com/mwangaza/board/internal/notify"
)

// The payment action succeeding is what the notice reports; re-fetch failures
// afterwards must not swallow it.
func TestProcessPaymentPublishesBeforeRefresh(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost && strings.HasSuffix(r.URL.Path, "/process/") {
			w.Write([]byte(`{"id":"d1","status":"COMPLETED","amount_cents":5000,"gateway_tx_ref":"sim-test"}`))
			return
		}
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte(`{"message":"gateway down"}`))
	}))
	defer srv.Close()

	logger = zap.NewNop()
	gw = gateway.New(srv.URL, time.Second, logger)
	stores = newStores(gw)
	bus = notify.NewBus(logger)
	var saved []notify.Notice
	publisher = notify.NewPublisher(bus, func(n notify.Notice) error {
		saved = append(saved, n)
		return nil
	}, logger)

	ch, cancel := bus.Subscribe(notify.CategoryPayments, 4)
	defer cancel()

	updated, err := processPayment(context.Background(), "d1", "MPESA")
	require.Error(t, err, "failed re-fetches must still be reported")
	assert.Equal(t, "COMPLETED", updated.Status)

	cached, ok := stores.Donations.Get("d1")
	require.True(t, ok, "action result must be applied to the cache")
	assert.Equal(t, "COMPLETED", cached.Status)

	select {
	case n := <-ch:
		assert.Equal(t, "payment.completed", n.Type)
		assert.Contains(t, n.TargetRoles, "DONOR")
	default:
		t.Fatal("no payment notice on the bus")
	}
	require.Len(t, saved, 1, "the notice must also be persisted")
}
