package engine

import (
	"context"

	"github.com/yukiacerium/socialmem/internal/social"
)

// MemoryInput describes one memory to record.
type MemoryInput struct {
	Type          social.MemoryType
	Content       string
	Importance    int
	SourceContext string
	Tags          []string
}

// MemoryResult reports the outcome of recording a memory.
type MemoryResult struct {
	MemoryID string `json:"memory_id"`
	Outcome  string `json:"outcome"` // "created" or "merged"
}

// MemoryView is one memory record as returned to callers.
type MemoryView struct {
	MemoryID   string   `json:"memory_id"`
	Type       string   `json:"memory_type"`
	Content    string   `json:"content"`
	Importance int      `json:"importance"`
	CreatedAt  int64    `json:"created_at"`
	Tags       []string `json:"tags,omitempty"`
}

// MemoryQuery filters a memory query.
type MemoryQuery struct {
	Types         []social.MemoryType
	MinImportance int
	Limit         int
}

// UserSummary aggregates per-type memory counts with an affection snapshot.
type UserSummary struct {
	TotalMemories int            `json:"total_memories"`
	ByType        map[string]int `json:"by_type"`
	Affection     int            `json:"affection"`
	Tier          string         `json:"tier"`
	TotalEvents   int            `json:"total_events"`
	UnlockedBonds []string       `json:"unlocked_bonds"`
}

func memoryViews(records []*social.MemoryRecord) []MemoryView {
	out := make([]MemoryView, len(records))
	for i, rec := range records {
		out[i] = MemoryView{
			MemoryID:   rec.ID,
			Type:       string(rec.Type),
			Content:    rec.Content,
			Importance: rec.Importance,
			CreatedAt:  rec.CreatedAt,
			Tags:       rec.Tags,
		}
	}
	return out
}

// RecordMemory stores or merges one memory for the user. Importance is
// clamped, duplicates by exact content merge into the existing record, and
// unknown memory types fall back to custom.
func (e *Engine) RecordMemory(ctx context.Context, userID string, in MemoryInput) (*MemoryResult, error) {
	p, err := e.loadOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}

	typ := in.Type
	if !typ.Valid() {
		typ = social.MemoryCustom
	}

	id, outcome := social.UpsertMemory(p, typ, in.Content, in.Importance, in.SourceContext, in.Tags, e.cfg.RetentionDays, e.now())

	if err := e.save(ctx, userID, p); err != nil {
		return nil, err
	}

	e.log.Info("memory recorded",
		"user", userID,
		"memory", id,
		"type", string(typ),
		"outcome", string(outcome),
	)

	return &MemoryResult{MemoryID: id, Outcome: string(outcome)}, nil
}

// QueryMemories returns live memories matching q, ranked by importance then
// recency. Read-only.
func (e *Engine) QueryMemories(ctx context.Context, userID string, q MemoryQuery) ([]MemoryView, error) {
	p, err := e.loadOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}

	limit := q.Limit
	if limit <= 0 {
		limit = defaultQueryLimit
	}
	return memoryViews(social.QueryMemories(p, q.Types, q.MinImportance, limit, e.now())), nil
}

// SearchMemories returns live memories whose content contains keyword.
// Read-only.
func (e *Engine) SearchMemories(ctx context.Context, userID, keyword string, types []social.MemoryType, limit int) ([]MemoryView, error) {
	p, err := e.loadOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}

	if limit <= 0 {
		limit = defaultSearchLimit
	}
	return memoryViews(social.SearchMemories(p, keyword, types, limit, e.now())), nil
}

// UserSummary returns per-type live memory counts plus the affection
// snapshot. Read-only.
func (e *Engine) UserSummary(ctx context.Context, userID string) (*UserSummary, error) {
	p, err := e.loadOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := e.now()
	sum := social.SummarizeMemories(p, now)

	byType := make(map[string]int, len(sum.ByType))
	for t, n := range sum.ByType {
		byType[string(t)] = n
	}

	aff := p.Affection
	return &UserSummary{
		TotalMemories: sum.Total,
		ByType:        byType,
		Affection:     aff.Value,
		Tier:          string(aff.Tier()),
		TotalEvents:   len(aff.Events),
		UnlockedBonds: bondIDStrings(aff.UnlockedBonds()),
	}, nil
}
