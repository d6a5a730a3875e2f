package domain

// Room is the membership of a named room. Members are kept in fixed slots,
// freed slots hold NoSession and are reused by later joins.
// Room is not safe for concurrent use.
type Room struct {
	Name    string
	members []SessionID
	count   int
}

func NewRoom(name string, capacity int) *Room {
	members := make([]SessionID, capacity)
	for i := range members {
		members[i] = NoSession
	}
	return &Room{Name: name, members: members}
}

// Add puts id in the first free slot. It returns false when the room is full.
func (r *Room) Add(id SessionID) bool {
	for i, m := range r.members {
		if m == NoSession {
			r.members[i] = id
			r.count++
			return true
		}
	}
	return false
}

func (r *Room) Remove(id SessionID) bool {
	for i, m := range r.members {
		if m == id {
			r.members[i] = NoSession
			r.count--
			return true
		}
	}
	return false
}

// Members returns the members in slot order.
func (r *Room) Members() []SessionID {
	members := make([]SessionID, 0, r.count)
	for _, m := range r.members {
		if m != NoSession {
			members = append(members, m)
		}
	}
	return members
}

func (r *Room) Count() int {
	return r.count
}

func (r *Room) Capacity() int {
	return len(r.members)
}

func (r *Room) Full() bool {
	return r.count >= len(r.members)
}

// Reset empties the room and gives it a new name.
func (r *Room) Reset(name string) {
	r.Name = name
	r.count = 0
	for i := range r.members {
		r.members[i] = NoSession
	}
}
