// Package social implements the core social-memory domain: the per-user
// affection ledger with its bond catalog, the typed memory records with
// lazy expiry, and the deterministic context renderer. The package is pure —
// no I/O, no clocks of its own; callers pass time.Time explicitly.
package social

// Value bounds for the affection ledger.
const (
	MinAffection = -100
	MaxAffection = 100
	MinChange    = -20
	MaxChange    = 20

	MinImportance = 0
	MaxImportance = 10
)

// EventType categorizes an affection event.
type EventType string

const (
	EventPositive EventType = "positive"
	EventNegative EventType = "negative"
	EventNeutral  EventType = "neutral"
	EventCrisis   EventType = "crisis"
)

// Valid reports whether t is one of the known event types.
func (t EventType) Valid() bool {
	switch t {
	case EventPositive, EventNegative, EventNeutral, EventCrisis:
		return true
	}
	return false
}

// Tier is the discrete relationship category derived from the affection value.
type Tier string

const (
	TierEnemy        Tier = "enemy"
	TierStranger     Tier = "stranger"
	TierAcquaintance Tier = "acquaintance"
	TierFriend       Tier = "friend"
	TierCloseFriend  Tier = "close_friend"
	TierSoulmate     Tier = "soulmate"
)

var tierLabels = map[Tier]string{
	TierEnemy:        "Enemy",
	TierStranger:     "Stranger",
	TierAcquaintance: "Acquaintance",
	TierFriend:       "Friend",
	TierCloseFriend:  "Close Friend",
	TierSoulmate:     "Soulmate",
}

// Label returns the display name for the tier.
func (t Tier) Label() string {
	if l, ok := tierLabels[t]; ok {
		return l
	}
	return string(t)
}

// TierFor maps an affection value to its tier. Bands use inclusive lower
// bounds; the highest matching band wins.
func TierFor(value int) Tier {
	switch {
	case value >= 81:
		return TierSoulmate
	case value >= 51:
		return TierCloseFriend
	case value >= 11:
		return TierFriend
	case value >= -19:
		return TierAcquaintance
	case value >= -59:
		return TierStranger
	default:
		return TierEnemy
	}
}

// MemoryType categorizes a memory record.
type MemoryType string

const (
	MemoryPreference   MemoryType = "preference"
	MemoryPersonalInfo MemoryType = "personal_info"
	MemoryCommitment   MemoryType = "commitment"
	MemoryInterest     MemoryType = "interest"
	MemoryHabit        MemoryType = "habit"
	MemoryCustom       MemoryType = "custom"
)

// MemoryTypes lists all known memory types in a fixed order.
func MemoryTypes() []MemoryType {
	return []MemoryType{
		MemoryPreference,
		MemoryPersonalInfo,
		MemoryCommitment,
		MemoryInterest,
		MemoryHabit,
		MemoryCustom,
	}
}

// Valid reports whether t is one of the known memory types.
func (t MemoryType) Valid() bool {
	switch t {
	case MemoryPreference, MemoryPersonalInfo, MemoryCommitment,
		MemoryInterest, MemoryHabit, MemoryCustom:
		return true
	}
	return false
}

var memoryTypeLabels = map[MemoryType]string{
	MemoryPreference:   "Preference",
	MemoryPersonalInfo: "Personal Info",
	MemoryCommitment:   "Commitment",
	MemoryInterest:     "Interest",
	MemoryHabit:        "Habit",
	MemoryCustom:       "Custom",
}

// Label returns the display name for the memory type.
func (t MemoryType) Label() string {
	if l, ok := memoryTypeLabels[t]; ok {
		return l
	}
	return string(t)
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
