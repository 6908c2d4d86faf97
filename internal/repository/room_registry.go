package repository

import (
	"sort"
	"sync"

	"github.com/rocketscienceinc/caro-backend/internal/apperror"
	"github.com/rocketscienceinc/caro-backend/internal/entity"
)

// roomSlot serializes every mutation of one room.
type roomSlot struct {
	mu      sync.Mutex
	room    *entity.Room
	deleted bool
}

// RoomRegistry owns the live rooms keyed by code and the room each connection is in.
// The registry mutex is never held while waiting for a room.
type RoomRegistry struct {
	mu          sync.Mutex
	rooms       map[string]*roomSlot
	memberships map[string]string

	chatCapacity int
}

func NewRoomRegistry(chatCapacity int) *RoomRegistry {
	return &RoomRegistry{
		rooms:        make(map[string]*roomSlot),
		memberships:  make(map[string]string),
		chatCapacity: chatCapacity,
	}
}

// Resolve runs fn on the room, creating an empty one if the code is unknown.
func (that *RoomRegistry) Resolve(code string, fn func(room *entity.Room) error) error {
	return that.with(code, true, fn)
}

// WithRoom runs fn on an existing room, ErrRoomNotFound otherwise.
func (that *RoomRegistry) WithRoom(code string, fn func(room *entity.Room) error) error {
	return that.with(code, false, fn)
}

// with holds the room lock for the whole of fn and drops the room if it ends up empty.
func (that *RoomRegistry) with(code string, create bool, fn func(room *entity.Room) error) error {
	for {
		slot, ok := that.slot(code, create)
		if !ok {
			return apperror.ErrRoomNotFound
		}

		slot.mu.Lock()
		if slot.deleted {
			slot.mu.Unlock()
			if create {
				continue
			}
			return apperror.ErrRoomNotFound
		}

		err := fn(slot.room)

		if slot.room.IsEmpty() {
			that.drop(code, slot)
		}
		slot.mu.Unlock()

		return err
	}
}

// Peek gives read access to an existing room without creating or dropping it.
func (that *RoomRegistry) Peek(code string, fn func(room *entity.Room)) error {
	slot, ok := that.slot(code, false)
	if !ok {
		return apperror.ErrRoomNotFound
	}

	slot.mu.Lock()
	defer slot.mu.Unlock()

	if slot.deleted {
		return apperror.ErrRoomNotFound
	}

	fn(slot.room)

	return nil
}

func (that *RoomRegistry) slot(code string, create bool) (*roomSlot, bool) {
	that.mu.Lock()
	defer that.mu.Unlock()

	slot, ok := that.rooms[code]
	if ok {
		return slot, true
	}

	if !create {
		return nil, false
	}

	slot = &roomSlot{room: entity.NewRoom(code, that.chatCapacity)}
	that.rooms[code] = slot

	return slot, true
}

// drop must be called with the slot locked.
func (that *RoomRegistry) drop(code string, slot *roomSlot) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if that.rooms[code] == slot {
		delete(that.rooms, code)
	}
	slot.deleted = true
}

// Exists reports whether a live room has the code.
func (that *RoomRegistry) Exists(code string) bool {
	that.mu.Lock()
	defer that.mu.Unlock()

	_, ok := that.rooms[code]
	return ok
}

// Codes lists the live room codes in order.
func (that *RoomRegistry) Codes() []string {
	that.mu.Lock()
	defer that.mu.Unlock()

	codes := make([]string, 0, len(that.rooms))
	for code := range that.rooms {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	return codes
}

// Bind records that the connection is now in the room.
func (that *RoomRegistry) Bind(connID, code string) {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.memberships[connID] = code
}

// Unbind forgets the membership if it still points at code.
func (that *RoomRegistry) Unbind(connID, code string) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if that.memberships[connID] == code {
		delete(that.memberships, connID)
	}
}

// RoomOf returns the room the connection is in.
func (that *RoomRegistry) RoomOf(connID string) (string, bool) {
	that.mu.Lock()
	defer that.mu.Unlock()

	code, ok := that.memberships[connID]
	return code, ok
}
