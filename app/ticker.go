package main

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/maxence-charriere/go-app/v10/pkg/app"
)

type tickerEntry struct {
	ID     string `json:"id"`
	Amount string `json:"amount"`
	Status string `json:"status"`
	When   string `json:"when"`
}

type tickerPayload struct {
	Total   string        `json:"total"`
	Entries []tickerEntry `json:"entries"`
}

// TickerView is the public live board: total raised plus the latest
// completed donations, refreshed from the JSON API.
type TickerView struct {
	app.Compo

	total   string
	entries []tickerEntry
	loaded  bool
}

func (t *TickerView) OnMount(ctx app.Context) {
	t.loadData(ctx)
	ctx.Async(func() {
		ticker := time.NewTicker(30 * time.Second)
		defer ticker.Stop()
		for range ticker.C {
			t.loadData(ctx)
		}
	})
}

func (t *TickerView) loadData(ctx app.Context) {
	ctx.Async(func() {
		resp, err := http.Get("/api/ticker")
		if err != nil {
			app.Log("error loading ticker:", err)
			return
		}
		defer resp.Body.Close()

		var payload tickerPayload
		if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
			app.Log("error decoding ticker:", err)
			return
		}

		ctx.Dispatch(func(app.Context) {
			t.total = payload.Total
			t.entries = payload.Entries
			t.loaded = true
		})
	})
}

func (t *TickerView) Render() app.UI {
	return app.Div().Class("ticker").Body(
		app.H1().Text("Mwangaza Live"),
		app.If(!t.loaded, func() app.UI {
			return app.P().Text("Loading...")
		}).Else(func() app.UI {
			return app.Div().Body(
				app.P().Class("ticker-total").Text("Total raised: "+t.total),
				app.Ul().Body(
					app.Range(t.entries).Slice(func(i int) app.UI {
						e := t.entries[i]
						return app.Li().Body(
							app.Span().Class("ticker-amount").Text(e.Amount),
							app.Span().Text(" · "+e.Status+" · "+e.When),
						)
					}),
				),
			)
		}),
	)
}
