package engine

import (
	"context"

	"github.com/yukiacerium/socialmem/internal/social"
)

// AffectionState is the snapshot returned by the affection-state query.
type AffectionState struct {
	UserID        string   `json:"user_id"`
	Value         int      `json:"affection_value"`
	Tier          string   `json:"tier"`
	TierLabel     string   `json:"tier_label"`
	TotalPositive int      `json:"total_positive"`
	TotalNegative int      `json:"total_negative"`
	UnlockedBonds []string `json:"unlocked_bonds"`
}

// EventInput describes one affection event to record.
type EventInput struct {
	Change      int
	Type        social.EventType
	Description string
	Context     string
}

// EventResult reports the outcome of recording an affection event.
type EventResult struct {
	NewValue      int      `json:"new_affection"`
	TierChanged   bool     `json:"tier_changed"`
	NewTier       string   `json:"new_tier"`
	NewTierLabel  string   `json:"new_tier_label"`
	UnlockedBonds []string `json:"unlocked_bonds"`
}

// EventView is one history entry as returned to callers.
type EventView struct {
	Timestamp   int64  `json:"timestamp"`
	Change      int    `json:"change_amount"`
	Type        string `json:"event_type"`
	Description string `json:"description"`
	Context     string `json:"context,omitempty"`
}

// BondView is one catalog entry with per-user unlock state and progress.
type BondView struct {
	BondID   string  `json:"bond_id"`
	Name     string  `json:"name"`
	Unlocked bool    `json:"unlocked"`
	Progress float64 `json:"progress"` // percent, one decimal
}

// BondInfo summarizes bond state for one user.
type BondInfo struct {
	TotalBonds    int        `json:"total_bonds"`
	UnlockedCount int        `json:"unlocked_count"`
	Bonds         []BondView `json:"bonds"`
}

func bondIDStrings(ids []social.BondID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = string(id)
	}
	return out
}

// AffectionState returns the user's current affection snapshot. Read-only;
// first-seen users get the configured default without a save.
func (e *Engine) AffectionState(ctx context.Context, userID string) (*AffectionState, error) {
	p, err := e.loadOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}

	aff := p.Affection
	tier := aff.Tier()
	return &AffectionState{
		UserID:        userID,
		Value:         aff.Value,
		Tier:          string(tier),
		TierLabel:     tier.Label(),
		TotalPositive: aff.TotalPositive,
		TotalNegative: aff.TotalNegative,
		UnlockedBonds: bondIDStrings(aff.UnlockedBonds()),
	}, nil
}

// RecordAffectionEvent applies one affection event: clamp, append, retotal,
// then a single bond-unlock pass when the bond system is enabled. The whole
// profile is saved once at the end. Unknown event types are normalized to
// neutral, matching the permissive-input policy.
func (e *Engine) RecordAffectionEvent(ctx context.Context, userID string, in EventInput) (*EventResult, error) {
	p, err := e.loadOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}

	typ := in.Type
	if !typ.Valid() {
		typ = social.EventNeutral
	}

	now := e.now()
	before, after := p.Affection.RecordEvent(in.Change, typ, in.Description, in.Context, e.cfg.MaxHistoryEvents, now)

	var unlocked []social.BondID
	if e.cfg.EnableBondSystem {
		unlocked = social.EvaluateBonds(p.Affection, now)
	}

	if err := e.save(ctx, userID, p); err != nil {
		return nil, err
	}

	e.log.Info("affection event recorded",
		"user", userID,
		"change", in.Change,
		"type", string(typ),
		"value", p.Affection.Value,
		"tier_changed", before != after,
	)

	return &EventResult{
		NewValue:      p.Affection.Value,
		TierChanged:   before != after,
		NewTier:       string(after),
		NewTierLabel:  after.Label(),
		UnlockedBonds: bondIDStrings(unlocked),
	}, nil
}

// InteractionHistory returns the most recent limit events, oldest first.
func (e *Engine) InteractionHistory(ctx context.Context, userID string, limit int) ([]EventView, error) {
	p, err := e.loadOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}

	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	events := p.Affection.RecentEvents(limit)

	out := make([]EventView, len(events))
	for i, ev := range events {
		out[i] = EventView{
			Timestamp:   ev.Timestamp,
			Change:      ev.Change,
			Type:        string(ev.Type),
			Description: ev.Description,
			Context:     ev.Context,
		}
	}
	return out, nil
}

// BondInfo returns per-bond unlock state and progress. Strictly read-only:
// no statuses are created, nothing is saved.
func (e *Engine) BondInfo(ctx context.Context, userID string) (*BondInfo, error) {
	p, err := e.loadOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}

	catalog := social.BondCatalog()
	info := &BondInfo{
		TotalBonds: len(catalog),
		Bonds:      make([]BondView, 0, len(catalog)),
	}

	for _, def := range catalog {
		unlocked := false
		if st, ok := p.Affection.Bonds[def.ID]; ok {
			unlocked = st.Unlocked
		}
		if unlocked {
			info.UnlockedCount++
		}
		info.Bonds = append(info.Bonds, BondView{
			BondID:   string(def.ID),
			Name:     def.Name,
			Unlocked: unlocked,
			Progress: roundPercent(def.Progress(p.Affection)),
		})
	}
	return info, nil
}

// roundPercent converts a 0..1 fraction to a percentage with one decimal.
func roundPercent(frac float64) float64 {
	return float64(int(frac*1000+0.5)) / 10
}
