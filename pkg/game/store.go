package game

// Store holds every Room record, keyed by room id.
// The store itself is not safe for concurrent use: the session engine owns it
// and serializes all access (see Engine).
type Store struct {
	rooms map[string]*Room
}

// NewStore returns an empty room store
func NewStore() *Store {
	return &Store{
		rooms: make(map[string]*Room),
	}
}

// Get returns the room, or nil if it does not exist
func (s *Store) Get(roomID string) *Room {
	return s.rooms[roomID]
}

// GetOrCreate returns the room, creating an idle one if needed
func (s *Store) GetOrCreate(roomID string) *Room {
	room, ok := s.rooms[roomID]
	if !ok {
		room = newRoom(roomID)
		s.rooms[roomID] = room
	}

	return room
}

// Delete removes the room record entirely
func (s *Store) Delete(roomID string) {
	delete(s.rooms, roomID)
}

// Len returns the number of active rooms
func (s *Store) Len() int {
	return len(s.rooms)
}
