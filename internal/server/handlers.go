package server

import (
	"encoding/json"
	"net/http"
	"time"

	"RegimeBoard/internal/dashboard"
	"RegimeBoard/internal/dataset"
	"RegimeBoard/internal/model"
)

func (s *Server) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.log.Error().Err(err).Msg("failed to encode JSON response")
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, map[string]string{"error": msg})
}

// snapshot returns the current snapshot or answers 503 when none has loaded yet.
func (s *Server) snapshot(w http.ResponseWriter) *dataset.Snapshot {
	snap := s.holder.Current()
	if snap == nil {
		s.writeError(w, http.StatusServiceUnavailable, "datasets not loaded")
	}
	return snap
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	snap := s.holder.Current()
	if snap == nil {
		s.writeJSON(w, http.StatusServiceUnavailable, map[string]interface{}{"status": "loading"})
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "ok",
		"prices":    len(snap.Prices),
		"loaded_at": snap.LoadedAt.UTC().Format(time.RFC3339),
	})
}

func (s *Server) handlePriceData(w http.ResponseWriter, r *http.Request) {
	snap := s.snapshot(w)
	if snap == nil {
		return
	}
	prices := snap.Prices
	if prices == nil {
		prices = model.RawSeries{}
	}
	s.writeJSON(w, http.StatusOK, prices)
}

func (s *Server) handleChangePoints(p model.Provider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snap := s.snapshot(w)
		if snap == nil {
			return
		}
		indices := snap.ChangePoints[p]
		if indices == nil {
			indices = []int{}
		}
		s.writeJSON(w, http.StatusOK, model.ChangePointIndexList{Provider: p, Indices: indices})
	}
}

func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	snap := s.snapshot(w)
	if snap == nil {
		return
	}
	events := snap.Events
	if events == nil {
		events = []model.KeyEvent{}
	}
	s.writeJSON(w, http.StatusOK, events)
}

// handleDashboard computes the view server-side for ?start=&end=.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	snap := s.snapshot(w)
	if snap == nil {
		return
	}

	var rng model.DateRange
	for _, b := range []struct {
		param string
		dst   *string
	}{{"start", &rng.Start}, {"end", &rng.End}} {
		v := r.URL.Query().Get(b.param)
		if v == "" {
			continue
		}
		date, err := dataset.NormalizeDate(v)
		if err != nil {
			s.writeError(w, http.StatusBadRequest, "invalid "+b.param+" date")
			return
		}
		*b.dst = date
	}

	view := dashboard.Build(snap.Datasets(), rng, s.opts)
	s.writeJSON(w, http.StatusOK, view)
}
