package handler

import (
	"net/http"

	"relaychat/internal/pkg/resp"
)

// HealthStatus is the data section of the /health response.
type HealthStatus struct {
	Status      string `json:"status"`
	Service     string `json:"service"`
	Connections int    `json:"connections"`
	Sessions    int    `json:"sessions"`
	Users       int    `json:"users"`
	Rooms       int    `json:"rooms"`
}

// HandleHealth reports liveness together with in-memory counters.
func HandleHealth(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp.RespondSuccess(w, HealthStatus{
			Status:      "ok",
			Service:     "relaychat",
			Connections: deps.Hub.ConnectionCount(),
			Sessions:    deps.Manager.Connections(),
			Users:       deps.Registry.Len(),
			Rooms:       deps.Store.RoomCount(),
		})
	}
}
