package social

import (
	"fmt"
	"strings"
	"time"
)

// RenderConfig carries the configuration slice the renderer depends on.
type RenderConfig struct {
	EventLimit    int  // recent events shown (AFFECTION_PROMPT_LIMIT)
	MaxMemories   int  // memory entries cap (MAX_INJECTED_MEMORIES)
	MinImportance int  // memory importance floor (MIN_IMPORTANCE_SCORE)
	BondsEnabled  bool // gates the bonds section
}

const timestampLayout = "01-02 15:04"

func eventGlyph(change int) string {
	switch {
	case change > 0:
		return "+"
	case change < 0:
		return "-"
	default:
		return "·"
	}
}

func importanceBar(importance int) string {
	importance = clampInt(importance, MinImportance, MaxImportance)
	return strings.Repeat("★", importance) + strings.Repeat("☆", MaxImportance-importance)
}

// RenderContext compresses a profile into the text block injected into a
// downstream consumer's context window. Deterministic given the profile,
// the config, and now. Sections without qualifying content are omitted.
func RenderContext(p *Profile, cfg RenderConfig, now time.Time) string {
	var b strings.Builder
	aff := p.Affection

	b.WriteString("## Social Memory\n")
	b.WriteString(fmt.Sprintf("- Relationship: [%s] Affection: %d/100\n", aff.Tier().Label(), aff.Value))

	if recent := aff.RecentEvents(cfg.EventLimit); len(recent) > 0 {
		b.WriteString("\n### Recent Interactions:\n")
		for _, ev := range recent {
			ts := time.Unix(ev.Timestamp, 0).UTC().Format(timestampLayout)
			b.WriteString(fmt.Sprintf("- %s [%s] %s\n", eventGlyph(ev.Change), ts, ev.Description))
		}
	}

	// MaxMemories is a hard cap: zero means no memory section at all.
	if cfg.MaxMemories > 0 {
		if memories := QueryMemories(p, nil, cfg.MinImportance, cfg.MaxMemories, now); len(memories) > 0 {
			b.WriteString("\n### User Memories:\n")
			for _, rec := range memories {
				b.WriteString(fmt.Sprintf("- [%s] %s %s\n", rec.Type.Label(), rec.Content, importanceBar(rec.Importance)))
			}
		}
	}

	if cfg.BondsEnabled {
		if unlocked := aff.UnlockedBonds(); len(unlocked) > 0 {
			b.WriteString("\n### Unlocked Bonds:\n")
			for _, id := range unlocked {
				b.WriteString(fmt.Sprintf("- %s\n", BondName(id)))
			}
		}
	}

	return strings.TrimRight(b.String(), "\n")
}

// profileMemoryLimit caps the memory list in the human-readable profile.
const profileMemoryLimit = 10

// RenderProfileText composes the human-readable profile for one user:
// relationship status with totals, the top live memories, and any unlocked
// bonds.
func RenderProfileText(p *Profile, bondsEnabled bool, now time.Time) string {
	var b strings.Builder
	aff := p.Affection

	b.WriteString(fmt.Sprintf("## User %s Profile\n\n", aff.UserID))
	b.WriteString("### Relationship\n")
	b.WriteString(fmt.Sprintf("- Current tier: %s\n", aff.Tier().Label()))
	b.WriteString(fmt.Sprintf("- Affection: %d/100\n", aff.Value))
	b.WriteString(fmt.Sprintf("- Total positive: %d, negative: %d\n", aff.TotalPositive, aff.TotalNegative))

	if memories := QueryMemories(p, nil, 0, profileMemoryLimit, now); len(memories) > 0 {
		b.WriteString("\n### User Memories\n")
		for _, rec := range memories {
			b.WriteString(fmt.Sprintf("- [%s] %s %s\n", rec.Type.Label(), rec.Content, importanceBar(rec.Importance)))
		}
	}

	if bondsEnabled {
		if unlocked := aff.UnlockedBonds(); len(unlocked) > 0 {
			b.WriteString("\n### Unlocked Bonds\n")
			for _, id := range unlocked {
				b.WriteString(fmt.Sprintf("- %s\n", BondName(id)))
			}
		}
	}

	return strings.TrimRight(b.String(), "\n")
}
