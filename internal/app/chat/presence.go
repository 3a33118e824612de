package chat

import (
	"github.com/rs/zerolog"

	"relaychat/internal/pkg/logx"
)

// Presence announces the current user list to every connection.
type Presence struct {
	registry  *Registry
	transport Transport
	logger    zerolog.Logger
}

// NewPresence returns a Presence reading from registry and emitting through transport.
func NewPresence(registry *Registry, transport Transport) *Presence {
	return &Presence{
		registry:  registry,
		transport: transport,
		logger:    logx.Component("presence"),
	}
}

// Broadcast emits EventUsers with a fresh snapshot of the registry.
func (p *Presence) Broadcast() {
	users := p.registry.ListPublic()
	p.transport.Broadcast(EventUsers, users)

	p.logger.Debug().Int("online_users", len(users)).Msg("Presence broadcast.")
}
