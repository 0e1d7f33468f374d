package ptnetwork

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/theoremus-urban-solutions/pt-network-browser/highlight"
	"github.com/theoremus-urban-solutions/pt-network-browser/osm"
	"github.com/theoremus-urban-solutions/pt-network-browser/suggest"
)

type errorPayload struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func decodeResponse(w http.ResponseWriter, r *http.Request) (osm.QueryResponse, bool) {
	var res osm.QueryResponse
	if err := json.NewDecoder(r.Body).Decode(&res); err != nil {
		writeJSON(w, http.StatusBadRequest, errorPayload{Error: "invalid query response payload: " + err.Error()})
		return osm.QueryResponse{}, false
	}
	return res, true
}

func (a *App) handleIngest(w http.ResponseWriter, r *http.Request) {
	res, ok := decodeResponse(w, r)
	if !ok {
		return
	}
	a.mu.Lock()
	sum := a.Store.Ingest(res.Elements)
	a.mu.Unlock()
	observeIngest(sum)
	writeJSON(w, http.StatusOK, sum)
}

func (a *App) handleIngestNodes(w http.ResponseWriter, r *http.Request) {
	res, ok := decodeResponse(w, r)
	if !ok {
		return
	}
	a.mu.Lock()
	sum := a.Store.IngestNodeDetails(res.Elements)
	a.mu.Unlock()
	observeIngest(sum)
	writeJSON(w, http.StatusOK, sum)
}

func (a *App) handleIngestMasters(w http.ResponseWriter, r *http.Request) {
	res, ok := decodeResponse(w, r)
	if !ok {
		return
	}
	a.mu.Lock()
	sum := a.Store.IngestMasters(res.Elements)
	a.mu.Unlock()
	observeIngest(sum)
	writeJSON(w, http.StatusOK, sum)
}

type selectRequest struct {
	EntityType string `json:"entityType"`
	EntityID   int64  `json:"entityId"`
}

type selectResponse struct {
	State   string            `json:"state"`
	Active  bool              `json:"active"`
	Overlay highlight.Overlay `json:"overlay"`
}

func (a *App) handleSelect(w http.ResponseWriter, r *http.Request) {
	var req selectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorPayload{Error: err.Error()})
		return
	}

	a.mu.Lock()
	err := a.Highlight.Select(osm.ElementType(req.EntityType), req.EntityID)
	state := a.Highlight.State()
	active := a.Highlight.IsActive()
	overlay, _ := a.Renderer.Overlay()
	a.mu.Unlock()

	var degenerate *highlight.DegenerateRouteError
	switch {
	case errors.Is(err, highlight.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorPayload{Error: err.Error()})
		return
	case errors.As(err, &degenerate):
		writeJSON(w, http.StatusUnprocessableEntity, errorPayload{Error: err.Error()})
		return
	case err != nil:
		writeJSON(w, http.StatusInternalServerError, errorPayload{Error: err.Error()})
		return
	}
	metricSelections.WithLabelValues(state.String()).Inc()
	writeJSON(w, http.StatusOK, selectResponse{State: state.String(), Active: active, Overlay: overlay})
}

func (a *App) handleClearSelection(w http.ResponseWriter, r *http.Request) {
	a.mu.Lock()
	a.Highlight.Clear()
	a.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]string{"state": highlight.Idle.String()})
}

type filterRequest struct {
	Filter string `json:"filter"`
}

func (a *App) handleSetFilter(w http.ResponseWriter, r *http.Request) {
	var req filterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorPayload{Error: err.Error()})
		return
	}
	f := highlight.Filter(req.Filter)
	if f != highlight.FilterStops && f != highlight.FilterPlatforms {
		writeJSON(w, http.StatusBadRequest, errorPayload{Error: "unknown filter " + req.Filter})
		return
	}
	a.mu.Lock()
	a.Highlight.SetFilter(f)
	a.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]string{"filter": string(f)})
}

type overlayResponse struct {
	Active    bool                 `json:"active"`
	Overlay   highlight.Overlay    `json:"overlay"`
	Refreshes []highlight.ViewKind `json:"refreshes,omitempty"`
}

func (a *App) handleOverlay(w http.ResponseWriter, r *http.Request) {
	a.mu.Lock()
	overlay, active := a.Renderer.Overlay()
	refreshes := a.Renderer.DrainRefreshes()
	a.mu.Unlock()
	writeJSON(w, http.StatusOK, overlayResponse{Active: active, Overlay: overlay, Refreshes: refreshes})
}

type boundsRequest struct {
	South float64 `json:"south"`
	West  float64 `json:"west"`
	North float64 `json:"north"`
	East  float64 `json:"east"`
}

func (a *App) handleSetBounds(w http.ResponseWriter, r *http.Request) {
	var req boundsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorPayload{Error: err.Error()})
		return
	}
	a.SetBounds(req.South, req.West, req.North, req.East)
	w.WriteHeader(http.StatusNoContent)
}

func (a *App) handleWorkspaceStopQuery(w http.ResponseWriter, r *http.Request) {
	res, ok := decodeResponse(w, r)
	if !ok {
		return
	}
	a.mu.Lock()
	sum := a.Workspace.RecordStopResponse(res.Elements)
	a.lastStopResponse = res.Elements
	a.mu.Unlock()
	writeJSON(w, http.StatusOK, sum)
}

func (a *App) handleWorkspaceNodeDetails(w http.ResponseWriter, r *http.Request) {
	res, ok := decodeResponse(w, r)
	if !ok {
		return
	}
	a.mu.Lock()
	sum := a.Workspace.RecordNodeDetailResponse(res.Elements)
	a.mu.Unlock()
	writeJSON(w, http.StatusOK, sum)
}

func (a *App) handleWorkspaceMasters(w http.ResponseWriter, r *http.Request) {
	res, ok := decodeResponse(w, r)
	if !ok {
		return
	}
	a.mu.Lock()
	sum := a.Workspace.RecordMasterResponse(res.Elements)
	a.mu.Unlock()
	writeJSON(w, http.StatusOK, sum)
}

type suggestionsResponse struct {
	Status string          `json:"status"`
	Groups []suggest.Group `json:"groups,omitempty"`
}

func (a *App) handleSuggestions(w http.ResponseWriter, r *http.Request) {
	a.mu.Lock()
	groups, err := a.Engine.Run(a.lastStopResponse, a.Workspace.Store(), a.bounds)
	a.mu.Unlock()

	if errors.Is(err, suggest.ErrNoSuggestions) {
		metricSuggestionRuns.WithLabelValues("empty").Inc()
		writeJSON(w, http.StatusOK, suggestionsResponse{Status: "no_suggestions"})
		return
	}
	metricSuggestionRuns.WithLabelValues("ok").Inc()
	writeJSON(w, http.StatusOK, suggestionsResponse{Status: "ok", Groups: groups})
}

func (a *App) handleWorkspaceClose(w http.ResponseWriter, r *http.Request) {
	a.mu.Lock()
	a.Workspace.Close(a.Store)
	a.lastStopResponse = nil
	stats := a.storeStats()
	a.mu.Unlock()
	writeJSON(w, http.StatusOK, stats)
}

type storeStats struct {
	Entities    int `json:"entities"`
	Stops       int `json:"stops"`
	Routes      int `json:"routes"`
	RouteGroups int `json:"routeGroups"`
	Areas       int `json:"areas"`
	Workspace   int `json:"workspaceEntities"`
}

func (a *App) storeStats() storeStats {
	return storeStats{
		Entities:    a.Store.Len(),
		Stops:       len(a.Store.Stops()),
		Routes:      len(a.Store.Routes()),
		RouteGroups: len(a.Store.RouteGroups()),
		Areas:       len(a.Store.Areas()),
		Workspace:   a.Workspace.Store().Len(),
	}
}

func (a *App) handleStats(w http.ResponseWriter, r *http.Request) {
	a.mu.Lock()
	stats := a.storeStats()
	a.mu.Unlock()
	writeJSON(w, http.StatusOK, stats)
}
