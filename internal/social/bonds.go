package social

import "time"

// BondID identifies a bond in the fixed catalog.
type BondID string

const (
	BondFirstMeet        BondID = "first_meet"
	BondSharedLaugh      BondID = "shared_laugh"
	BondDeepConversation BondID = "deep_conversation"
	BondTrustedConfidant BondID = "trusted_confidant"
	BondStormTogether    BondID = "storm_together"
	BondHeartToHeart     BondID = "heart_to_heart"
)

// predicateKind enumerates the closed set of bond unlock conditions.
// Predicates are evaluated by direct dispatch; there is no free-form
// condition language.
type predicateKind int

const (
	predAlways predicateKind = iota
	predTotalPositive
	predCrisisPositive
	predAffection
)

// BondDef is one entry in the static bond catalog. Definitions are not
// persisted; only per-user unlock status is.
type BondDef struct {
	ID        BondID
	Name      string
	kind      predicateKind
	threshold int
}

// bondCatalog is the fixed catalog, in display order.
var bondCatalog = []BondDef{
	{ID: BondFirstMeet, Name: "First Meeting", kind: predAlways},
	{ID: BondSharedLaugh, Name: "Shared Laughter", kind: predTotalPositive, threshold: 5},
	{ID: BondDeepConversation, Name: "Deep Conversation", kind: predTotalPositive, threshold: 10},
	{ID: BondTrustedConfidant, Name: "Trusted Confidant", kind: predTotalPositive, threshold: 20},
	{ID: BondStormTogether, Name: "Weathered the Storm", kind: predCrisisPositive, threshold: 3},
	{ID: BondHeartToHeart, Name: "Heart to Heart", kind: predAffection, threshold: 80},
}

// BondCatalog returns the bond definitions in catalog order.
func BondCatalog() []BondDef {
	out := make([]BondDef, len(bondCatalog))
	copy(out, bondCatalog)
	return out
}

// BondName returns the display name for a bond id, or the id itself if
// unknown.
func BondName(id BondID) string {
	for _, def := range bondCatalog {
		if def.ID == id {
			return def.Name
		}
	}
	return string(id)
}

// counter returns the predicate's underlying counter value for the ledger.
func (d BondDef) counter(a *UserAffection) int {
	switch d.kind {
	case predAlways:
		return 1
	case predTotalPositive:
		return a.TotalPositive
	case predCrisisPositive:
		return a.crisisPositiveCount()
	case predAffection:
		return a.Value
	}
	return 0
}

// Met reports whether the bond's predicate holds for the ledger.
func (d BondDef) Met(a *UserAffection) bool {
	if d.kind == predAlways {
		return true
	}
	return d.counter(a) >= d.threshold
}

// Progress returns how close the ledger is to unlocking the bond, as a
// fraction in [0,1]. Always-true predicates report 1.0.
func (d BondDef) Progress(a *UserAffection) float64 {
	if d.kind == predAlways || d.threshold == 0 {
		return 1.0
	}
	p := float64(d.counter(a)) / float64(d.threshold)
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}

// EvaluateBonds runs one unlock pass over the catalog: statuses are created
// lazily, already-unlocked bonds are skipped, and every bond whose predicate
// now holds is unlocked at now. Returns newly unlocked ids in catalog order.
// Callers gate this on the bond-system feature flag; when disabled the bonds
// map must stay untouched.
func EvaluateBonds(a *UserAffection, now time.Time) []BondID {
	if a.Bonds == nil {
		a.Bonds = make(map[BondID]*BondStatus)
	}

	var unlocked []BondID
	for _, def := range bondCatalog {
		st, ok := a.Bonds[def.ID]
		if !ok {
			st = &BondStatus{BondID: def.ID}
			a.Bonds[def.ID] = st
		}
		if st.Unlocked {
			continue
		}
		if def.Met(a) {
			st.Unlocked = true
			st.UnlockTime = now.Unix()
			unlocked = append(unlocked, def.ID)
		}
	}
	return unlocked
}
