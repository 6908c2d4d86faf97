package entity

type occupantKind uint8

const (
	vacant occupantKind = iota
	connection
	bot
)

const BotName = "Bot"

// Occupant holds a role: a client connection, the bot, or nobody (zero value).
// The bot can only be created with BotOccupant, so no client-supplied identity
// ever compares equal to it.
type Occupant struct {
	kind occupantKind
	id   string
}

func ConnectionOccupant(connID string) Occupant {
	return Occupant{kind: connection, id: connID}
}

func BotOccupant() Occupant {
	return Occupant{kind: bot}
}

func (that Occupant) IsAssigned() bool {
	return that.kind != vacant
}

func (that Occupant) IsBot() bool {
	return that.kind == bot
}

// IsConnection reports whether the occupant is the given client connection.
func (that Occupant) IsConnection(connID string) bool {
	return that.kind == connection && that.id == connID
}

// ConnectionID returns the connection identity, empty for the bot or nobody.
func (that Occupant) ConnectionID() string {
	if that.kind != connection {
		return ""
	}
	return that.id
}
