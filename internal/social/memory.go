package social

import (
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// MemoryRecord is one stored fact about a user. Content is opaque text;
// the core never parses it.
type MemoryRecord struct {
	ID            string     `json:"memory_id"`
	Type          MemoryType `json:"memory_type"`
	Content       string     `json:"content"`
	Importance    int        `json:"importance"`
	SourceContext string     `json:"source_context_id,omitempty"`
	CreatedAt     int64      `json:"created_at"`
	ExpiresAt     int64      `json:"expires_at"`
	Tags          []string   `json:"tags,omitempty"`
}

// Expired reports whether the record's retention window has passed.
// Expiry is lazy: expired records stay stored but are excluded from reads.
func (r *MemoryRecord) Expired(now time.Time) bool {
	return now.Unix() > r.ExpiresAt
}

// UpsertOutcome reports whether an upsert stored a new record or merged
// into an existing one.
type UpsertOutcome string

const (
	OutcomeCreated UpsertOutcome = "created"
	OutcomeMerged  UpsertOutcome = "merged"
)

// UpsertMemory stores a memory for the profile's user, deduplicating by
// exact content among live records. On a match the existing record's
// importance is raised only if the new importance is strictly greater and
// the existing id is returned with OutcomeMerged. Otherwise a fresh record
// is created with importance clamped to [0,10] and expiry computed from
// retentionDays.
func UpsertMemory(p *Profile, typ MemoryType, content string, importance int, sourceContext string, tags []string, retentionDays int, now time.Time) (string, UpsertOutcome) {
	importance = clampInt(importance, MinImportance, MaxImportance)

	for _, rec := range p.Memories {
		if rec.Content == content && !rec.Expired(now) {
			if importance > rec.Importance {
				rec.Importance = importance
			}
			return rec.ID, OutcomeMerged
		}
	}

	ts := now.Unix()
	rec := &MemoryRecord{
		ID:            "mem_" + uuid.NewString(),
		Type:          typ,
		Content:       content,
		Importance:    importance,
		SourceContext: sourceContext,
		CreatedAt:     ts,
		ExpiresAt:     ts + int64(retentionDays)*24*60*60,
		Tags:          tags,
	}
	if p.Memories == nil {
		p.Memories = make(map[string]*MemoryRecord)
	}
	p.Memories[rec.ID] = rec
	return rec.ID, OutcomeCreated
}

// liveMemories returns non-expired records in creation order (oldest first,
// id as tiebreak). Map iteration is randomized in Go, so this pins the
// store's iteration order.
func liveMemories(p *Profile, now time.Time) []*MemoryRecord {
	out := make([]*MemoryRecord, 0, len(p.Memories))
	for _, rec := range p.Memories {
		if !rec.Expired(now) {
			out = append(out, rec)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt != out[j].CreatedAt {
			return out[i].CreatedAt < out[j].CreatedAt
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func matchesType(rec *MemoryRecord, types []MemoryType) bool {
	if len(types) == 0 {
		return true
	}
	for _, t := range types {
		if rec.Type == t {
			return true
		}
	}
	return false
}

// QueryMemories returns live records matching the optional type filter and
// the minImportance floor, sorted by importance descending then recency
// descending, truncated to limit. limit <= 0 means no cap.
func QueryMemories(p *Profile, types []MemoryType, minImportance, limit int, now time.Time) []*MemoryRecord {
	var out []*MemoryRecord
	for _, rec := range liveMemories(p, now) {
		if !matchesType(rec, types) {
			continue
		}
		if rec.Importance < minImportance {
			continue
		}
		out = append(out, rec)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Importance != out[j].Importance {
			return out[i].Importance > out[j].Importance
		}
		return out[i].CreatedAt > out[j].CreatedAt
	})

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// SearchMemories returns live, type-filtered records whose content contains
// keyword (case-insensitive), in store iteration order, truncated to limit.
// There is no relevance ranking beyond presence.
func SearchMemories(p *Profile, keyword string, types []MemoryType, limit int, now time.Time) []*MemoryRecord {
	needle := strings.ToLower(keyword)

	var out []*MemoryRecord
	for _, rec := range liveMemories(p, now) {
		if !matchesType(rec, types) {
			continue
		}
		if !strings.Contains(strings.ToLower(rec.Content), needle) {
			continue
		}
		out = append(out, rec)
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out
}

// MemorySummary holds per-type live-record counts.
type MemorySummary struct {
	Total  int
	ByType map[MemoryType]int
}

// SummarizeMemories counts live records per type. Every known type appears
// in the map, zero or not.
func SummarizeMemories(p *Profile, now time.Time) MemorySummary {
	s := MemorySummary{ByType: make(map[MemoryType]int, 6)}
	for _, t := range MemoryTypes() {
		s.ByType[t] = 0
	}
	for _, rec := range p.Memories {
		if rec.Expired(now) {
			continue
		}
		s.ByType[rec.Type]++
		s.Total++
	}
	return s
}
