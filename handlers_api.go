package main

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/mwangaza/board/internal/db"
	"github.com/mwangaza/board/internal/report"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// tickerEntry is what the wasm live ticker renders.
type tickerEntry struct {
	ID     string `json:"id"`
	Amount string `json:"amount"`
	Status string `json:"status"`
	When   string `json:"when"`
}

// handleAPITicker returns the most recent counted donations for the live
// ticker widget.
func handleAPITicker(w http.ResponseWriter, r *http.Request) {
	stores.Donations.EnsureLoaded(r.Context())
	snap := stores.Donations.Snapshot()

	entries := []tickerEntry{}
	for _, d := range snap.Records {
		if d.Status != "COMPLETED" && d.Status != "VERIFIED" {
			continue
		}
		entries = append(entries, tickerEntry{
			ID:     d.ID,
			Amount: formatCents(d.AmountCents),
			Status: d.Status,
			When:   shortTime(d.CreatedAt),
		})
		if len(entries) == 20 {
			break
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"total":   formatCents(report.TotalRaised(snap.Records)),
		"entries": entries,
	})
}

// handleNoticeStream pushes published notices to the browser as server-sent
// events. Open tabs react to a notice immediately instead of waiting for the
// next badge poll.
func handleNoticeStream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}
	ch, cancel := bus.Subscribe("", 16)
	defer cancel()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case n, open := <-ch:
			if !open {
				return
			}
			payload, err := json.Marshal(map[string]string{
				"id":       n.ID,
				"type":     n.Type,
				"title":    n.Title,
				"category": n.Category,
			})
			if err != nil {
				continue
			}
			fmt.Fprintf(w, "event: notice\ndata: %s\n\n", payload)
			flusher.Flush()
		}
	}
}

func handleAPIUnread(w http.ResponseWriter, r *http.Request) {
	u := currentUser(r)
	if u == nil {
		writeError(w, http.StatusUnauthorized, "not signed in")
		return
	}
	count, err := db.UnreadCountForRole(u.Role)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"unread": count})
}
