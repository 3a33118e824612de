package handler

import (
	"net/http"

	"github.com/gorilla/websocket"

	"relaychat/internal/app/ws"
	"relaychat/internal/pkg/errs"
	"relaychat/internal/pkg/logx"
	"relaychat/internal/pkg/randx"
	"relaychat/internal/pkg/resp"
)

// HandleWebSocket upgrades the request, assigns a fresh connection id and runs the
// client's pumps until the socket closes.
func HandleWebSocket(upgrader websocket.Upgrader, deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !websocket.IsWebSocketUpgrade(r) {
			resp.RespondError(w, errs.NewError(errs.ErrUpgradeRequired))
			return
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logx.Warn("Failed to upgrade connection to WebSocket", "error", err.Error())
			return
		}

		connID := randx.ConnectionID()
		client := ws.NewClient(deps.Hub, conn, connID)

		go client.WritePump()

		if !deps.Hub.Register(client) {
			logx.Warn("WebSocket connection dropped: hub is shutting down.", "conn_id", connID)
			_ = conn.Close()
			return
		}

		client.ReadPump()
	}
}
