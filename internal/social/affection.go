package social

import "time"

// AffectionEvent is one recorded change to a user's affection. Immutable
// once created.
type AffectionEvent struct {
	Timestamp   int64     `json:"timestamp"`
	Change      int       `json:"change_amount"`
	Type        EventType `json:"event_type"`
	Description string    `json:"description"`
	Context     string    `json:"context,omitempty"`
}

// BondStatus tracks unlock state for one bond. Unlocks are monotonic: once
// set, Unlocked never reverts.
type BondStatus struct {
	BondID     BondID `json:"bond_id"`
	Unlocked   bool   `json:"unlocked"`
	UnlockTime int64  `json:"unlock_time"`
}

// UserAffection is the per-user relationship ledger.
type UserAffection struct {
	UserID              string                 `json:"user_id"`
	Value               int                    `json:"affection_value"`
	TotalPositive       int                    `json:"total_positive"`
	TotalNegative       int                    `json:"total_negative"`
	FirstMetTime        int64                  `json:"first_met_time"`
	LastInteractionTime int64                  `json:"last_interaction_time"`
	Events              []AffectionEvent       `json:"events"`
	Bonds               map[BondID]*BondStatus `json:"bonds"`
}

// NewUserAffection creates a fresh ledger seeded with the configured initial
// affection, clamped into bounds.
func NewUserAffection(userID string, initial int, now time.Time) *UserAffection {
	ts := now.Unix()
	return &UserAffection{
		UserID:              userID,
		Value:               clampInt(initial, MinAffection, MaxAffection),
		FirstMetTime:        ts,
		LastInteractionTime: ts,
		Bonds:               make(map[BondID]*BondStatus),
	}
}

// RecordEvent clamps change into [-20,20], appends an event, trims history
// to the most recent maxEvents, updates the running totals, and applies the
// clamped change to the affection value. It returns the tier before and
// after so callers can detect a transition.
func (a *UserAffection) RecordEvent(change int, typ EventType, description, context string, maxEvents int, now time.Time) (before, after Tier) {
	before = a.Tier()

	change = clampInt(change, MinChange, MaxChange)
	ev := AffectionEvent{
		Timestamp:   now.Unix(),
		Change:      change,
		Type:        typ,
		Description: description,
		Context:     context,
	}

	a.Events = append(a.Events, ev)
	if maxEvents > 0 && len(a.Events) > maxEvents {
		a.Events = a.Events[len(a.Events)-maxEvents:]
	}
	a.LastInteractionTime = ev.Timestamp

	if change > 0 {
		a.TotalPositive += change
	} else if change < 0 {
		a.TotalNegative += -change
	}

	a.Value = clampInt(a.Value+change, MinAffection, MaxAffection)
	return before, a.Tier()
}

// Tier returns the relationship tier for the current affection value.
func (a *UserAffection) Tier() Tier {
	return TierFor(a.Value)
}

// RecentEvents returns the most recent limit events, oldest first.
// limit <= 0 returns all events.
func (a *UserAffection) RecentEvents(limit int) []AffectionEvent {
	if limit <= 0 || limit >= len(a.Events) {
		return a.Events
	}
	return a.Events[len(a.Events)-limit:]
}

// UnlockedBonds returns the ids of unlocked bonds in catalog order.
func (a *UserAffection) UnlockedBonds() []BondID {
	var out []BondID
	for _, def := range bondCatalog {
		if st, ok := a.Bonds[def.ID]; ok && st.Unlocked {
			out = append(out, def.ID)
		}
	}
	return out
}

// crisisPositiveCount counts retained events that were crises with a
// positive change. Used by the storm_together predicate.
func (a *UserAffection) crisisPositiveCount() int {
	n := 0
	for _, ev := range a.Events {
		if ev.Type == EventCrisis && ev.Change > 0 {
			n++
		}
	}
	return n
}
