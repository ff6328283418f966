package clientstate

// Geolocation is the detected client position attached to a checkout.
type Geolocation struct {
	Latitude  float64 `json:"lat"`
	Longitude float64 `json:"lng"`
}

// Selection holds the single in-progress checkout target: at most one
// delegate snapshot plus an optional detected location. It is session
// state only and is never persisted; a reload starts empty.
type Selection struct {
	delegate *DelegateSnapshot
	location *Geolocation
}

func NewSelection() *Selection {
	return &Selection{}
}

// Set makes the given delegate the checkout target, replacing any
// previous choice.
func (s *Selection) Set(d DelegateSnapshot) {
	s.delegate = &d
}

// SetLocation attaches the detected position to the in-progress checkout.
func (s *Selection) SetLocation(g Geolocation) {
	s.location = &g
}

// Delegate returns the current target, if any.
func (s *Selection) Delegate() (DelegateSnapshot, bool) {
	if s.delegate == nil {
		return DelegateSnapshot{}, false
	}
	return *s.delegate, true
}

// Location returns the detected position, if any.
func (s *Selection) Location() (Geolocation, bool) {
	if s.location == nil {
		return Geolocation{}, false
	}
	return *s.location, true
}

// Clear resets the slot, as on order confirmation.
func (s *Selection) Clear() {
	s.delegate = nil
	s.location = nil
}
