/*
Package user defines the identity a connection registers with the relay and the public
snapshot of it that is embedded in presence lists and messages.
*/
package user

// DefaultName is used when a connection joins without a display name.
const DefaultName = "Anonymous"

// User is the profile registered by one live connection.
type User struct {
	// ConnectionID is the transport-assigned id of the owning connection.
	ConnectionID string

	// Name is the display name shown to other users.
	Name string

	// Avatar is an opaque image reference (usually a data URL); nil when absent.
	Avatar *string
}

// Profile is the public snapshot of a User.
type Profile struct {
	Name         string  `json:"name"`
	Avatar       *string `json:"avatar"`
	ConnectionID string  `json:"connectionId"`
}

// New builds a User, applying the default name and treating an empty avatar as absent.
func New(connectionID, name string, avatar *string) User {
	if name == "" {
		name = DefaultName
	}
	if avatar != nil && *avatar == "" {
		avatar = nil
	}
	if avatar != nil {
		copied := *avatar
		avatar = &copied
	}

	return User{
		ConnectionID: connectionID,
		Name:         name,
		Avatar:       avatar,
	}
}

// Profile returns the public snapshot of u.
func (u User) Profile() Profile {
	return Profile{
		Name:         u.Name,
		Avatar:       u.Avatar,
		ConnectionID: u.ConnectionID,
	}
}
