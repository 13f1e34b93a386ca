package model

// ResolveAction closes out the current challenge.
type ResolveAction string

const (
	ActionDone ResolveAction = "done"
	ActionSkip ResolveAction = "skip"
)

func (a ResolveAction) Valid() bool {
	return a == ActionDone || a == ActionSkip
}

// HourState is the per-bucket dispense record. It is the single source
// of truth for quota and dedup within one hour window and round-trips
// through the state store as JSON.
type HourState struct {
	Served    int      `json:"served"`
	UsedIDs   []string `json:"used_ids"`
	CurrentID string   `json:"current_id,omitempty"`
}

// NewHourState returns the default empty record for a freshly
// observed bucket.
func NewHourState() *HourState {
	return &HourState{}
}

// HasUsed reports whether id was already shown in this bucket.
func (s *HourState) HasUsed(id string) bool {
	for _, used := range s.UsedIDs {
		if used == id {
			return true
		}
	}
	return false
}

// MarkUsed adds id to the used set, keeping it duplicate-free.
func (s *HourState) MarkUsed(id string) {
	if id == "" || s.HasUsed(id) {
		return
	}
	s.UsedIDs = append(s.UsedIDs, id)
}

// UsedSet returns the used ids as a set for pool selection.
func (s *HourState) UsedSet() map[string]struct{} {
	set := make(map[string]struct{}, len(s.UsedIDs))
	for _, id := range s.UsedIDs {
		set[id] = struct{}{}
	}
	return set
}

// Clone returns a deep copy. Transitions mutate a clone and swap it in
// only after the persistence write succeeds.
func (s *HourState) Clone() *HourState {
	cp := &HourState{
		Served:    s.Served,
		CurrentID: s.CurrentID,
	}
	if len(s.UsedIDs) > 0 {
		cp.UsedIDs = append([]string(nil), s.UsedIDs...)
	}
	return cp
}
