package clientstate

import (
	"encoding/json"
	"strconv"
)

// favoritesKey is the fixed storage namespace for the favorites list.
const favoritesKey = "favorites"

// DelegateSnapshot is the denormalized copy of a delegate taken at the
// moment of favoriting or selection. It is deliberately not kept in sync
// with later delegate edits.
type DelegateSnapshot struct {
	ID       uint    `json:"id"`
	LegacyID string  `json:"_id,omitempty"`
	Name     string  `json:"name"`
	Phone    string  `json:"phone"`
	Fee      float64 `json:"fee"`
	Place    string  `json:"place"`
	Avatar   string  `json:"avatar,omitempty"`
}

// Key identifies a snapshot across store versions: the numeric id when
// present, otherwise the legacy string id older entries carry.
func (s DelegateSnapshot) Key() string {
	if s.ID != 0 {
		return strconv.FormatUint(uint64(s.ID), 10)
	}
	return s.LegacyID
}

// Favorites is the favorite-delegates list. It hydrates from storage on
// construction and writes the whole list back after every mutation.
type Favorites struct {
	storage Storage
	list    []DelegateSnapshot
}

func NewFavorites(storage Storage) *Favorites {
	f := &Favorites{storage: storage}
	if raw, ok := storage.Get(favoritesKey); ok {
		// A corrupt entry hydrates as empty rather than failing startup.
		_ = json.Unmarshal([]byte(raw), &f.list)
	}
	return f
}

// Add appends the snapshot unless an entry with the same key exists.
// Returns whether the list changed.
func (f *Favorites) Add(s DelegateSnapshot) bool {
	key := s.Key()
	for _, existing := range f.list {
		if existing.Key() == key {
			return false
		}
	}
	f.list = append(f.list, s)
	f.persist()
	return true
}

// Remove drops the entry with the given key. Returns whether it existed.
func (f *Favorites) Remove(key string) bool {
	kept := f.list[:0]
	removed := false
	for _, s := range f.list {
		if s.Key() == key {
			removed = true
			continue
		}
		kept = append(kept, s)
	}
	if removed {
		f.list = kept
		f.persist()
	}
	return removed
}

// Clear empties the list.
func (f *Favorites) Clear() {
	f.list = nil
	f.persist()
}

// List returns a copy of the current favorites in insertion order.
func (f *Favorites) List() []DelegateSnapshot {
	out := make([]DelegateSnapshot, len(f.list))
	copy(out, f.list)
	return out
}

func (f *Favorites) persist() {
	list := f.list
	if list == nil {
		list = []DelegateSnapshot{}
	}
	raw, err := json.Marshal(list)
	if err != nil {
		return
	}
	f.storage.Set(favoritesKey, string(raw))
}
