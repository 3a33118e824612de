package handler

import (
	"relaychat/internal/app/chat"
	"relaychat/internal/app/ws"
	"relaychat/internal/configs"
)

// AppDeps carries the long-lived components the HTTP handlers need.
type AppDeps struct {
	Config   *configs.AppConfig
	Hub      *ws.Hub
	Manager  *chat.Manager
	Registry *chat.Registry
	Store    *chat.RoomStore
}
