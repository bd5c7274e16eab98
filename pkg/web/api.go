package web

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/radioforge/hrd-link/pkg/database"
	"github.com/radioforge/hrd-link/pkg/logger"
	"github.com/radioforge/hrd-link/pkg/protocol"
)

// StateSource provides the most recent decoded radio state.
type StateSource interface {
	LastState() (protocol.RadioState, bool)
}

// API handles REST API endpoints
type API struct {
	logger    *logger.Logger
	source    StateSource
	snapshots *database.SnapshotRepository
	events    *database.StatusEventRepository
}

// NewAPI creates a new API instance. The source and repositories may be nil
// when the corresponding subsystem is disabled.
func NewAPI(src StateSource, snapshots *database.SnapshotRepository, events *database.StatusEventRepository, log *logger.Logger) *API {
	return &API{
		logger:    log,
		source:    src,
		snapshots: snapshots,
		events:    events,
	}
}

// HandleStatus handles the /api/status endpoint
func (a *API) HandleStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	version, buildTime := GetVersionInfo()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	response := map[string]interface{}{
		"status":     "running",
		"service":    "hrd-link",
		"version":    version,
		"build_time": buildTime,
	}

	json.NewEncoder(w).Encode(response)
}

// HandleState handles the /api/state endpoint, returning the last decoded
// radio snapshot.
func (a *API) HandleState(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if a.source == nil {
		http.Error(w, "State unavailable", http.StatusServiceUnavailable)
		return
	}
	state, ok := a.source.LastState()
	if !ok {
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]interface{}{"available": false})
		return
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"available":       true,
		"band":            state.BandName,
		"band_code":       state.BandCode,
		"frequency":       state.FrequencyValue,
		"frequency_hex":   state.FrequencyHex,
		"unit_is_mhz":     state.UnitIsMHz,
		"signal_strength": state.SignalStrength,
		"signal_label":    state.SignalLabel,
		"signal_bars":     state.SignalBars,
		"raw_hex":         state.RawHex,
	})
}

// HandleHistory handles the /api/history endpoint, returning stored
// snapshots newest first.
func (a *API) HandleHistory(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if a.snapshots == nil {
		http.Error(w, "History unavailable", http.StatusServiceUnavailable)
		return
	}

	page := queryInt(r, "page", 1)
	perPage := queryInt(r, "per_page", 50)
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 500 {
		perPage = 50
	}

	snapshots, total, err := a.snapshots.GetRecentPaginated(page, perPage)
	if err != nil {
		a.logger.Error("Failed to query snapshots", logger.Error(err))
		http.Error(w, "Query failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"total":     total,
		"page":      page,
		"per_page":  perPage,
		"snapshots": snapshots,
	})
}

// HandleEvents handles the /api/events endpoint, returning recent status
// events.
func (a *API) HandleEvents(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if a.events == nil {
		http.Error(w, "Events unavailable", http.StatusServiceUnavailable)
		return
	}

	limit := queryInt(r, "limit", 50)
	if limit < 1 || limit > 500 {
		limit = 50
	}

	var (
		events []database.StatusEvent
		err    error
	)
	if label := r.URL.Query().Get("label"); label != "" {
		events, err = a.events.GetByLabel(label, limit)
	} else {
		events, err = a.events.GetRecent(limit)
	}
	if err != nil {
		a.logger.Error("Failed to query status events", logger.Error(err))
		http.Error(w, "Query failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"events": events,
	})
}

func queryInt(r *http.Request, key string, def int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return n
}
