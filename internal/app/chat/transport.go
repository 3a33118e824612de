package chat

// Transport is what the relay core needs from the real-time connection layer.
// Implementations must treat delivery to an unknown or closed connection as a no-op.
type Transport interface {
	// Broadcast delivers an event to every live connection, joined or not.
	Broadcast(event string, payload any)

	// EmitToRoom delivers an event to every connection subscribed to room.
	EmitToRoom(room, event string, payload any)

	// EmitTo delivers an event to a single connection.
	EmitTo(connID, event string, payload any)

	// JoinRoom subscribes a connection to room for later EmitToRoom calls.
	JoinRoom(connID, room string)
}
