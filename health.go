package ptnetwork

import (
	"encoding/json"
	"net/http"
)

type healthResponse struct {
	Status   string `json:"status"`
	Entities int    `json:"entities"`
}

func (a *App) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	a.mu.Lock()
	n := a.Store.Len()
	a.mu.Unlock()
	resp := healthResponse{
		Status:   "ok",
		Entities: n,
	}
	_ = json.NewEncoder(w).Encode(resp)
}
