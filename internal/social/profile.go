package social

import (
	"encoding/json"
	"fmt"
	"time"
)

// Profile is the complete persisted state for one user: the affection
// ledger plus the memory records. It is the unit of load/save — every
// operation loads a whole profile, mutates it in memory, and saves it back
// as one blob.
type Profile struct {
	Affection *UserAffection           `json:"affection"`
	Memories  map[string]*MemoryRecord `json:"memories"`
}

// NewProfile creates the profile for a first-seen user.
func NewProfile(userID string, defaultAffection int, now time.Time) *Profile {
	return &Profile{
		Affection: NewUserAffection(userID, defaultAffection, now),
		Memories:  make(map[string]*MemoryRecord),
	}
}

// EncodeProfile serializes a profile to its persisted JSON form.
func EncodeProfile(p *Profile) ([]byte, error) {
	data, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("encode profile: %w", err)
	}
	return data, nil
}

// DecodeProfile parses a persisted profile blob. Nil maps are normalized so
// callers can mutate the result directly.
func DecodeProfile(blob []byte) (*Profile, error) {
	var p Profile
	if err := json.Unmarshal(blob, &p); err != nil {
		return nil, fmt.Errorf("decode profile: %w", err)
	}
	if p.Affection == nil {
		return nil, fmt.Errorf("decode profile: missing affection ledger")
	}
	if p.Affection.Bonds == nil {
		p.Affection.Bonds = make(map[BondID]*BondStatus)
	}
	if p.Memories == nil {
		p.Memories = make(map[string]*MemoryRecord)
	}
	return &p, nil
}
