package social

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultRenderConfig() RenderConfig {
	return RenderConfig{EventLimit: 3, MaxMemories: 5, MinImportance: 5, BondsEnabled: true}
}

func TestRenderContextFreshProfile(t *testing.T) {
	p := newTestProfile()

	got := RenderContext(p, defaultRenderConfig(), testNow)

	assert.Equal(t, "## Social Memory\n- Relationship: [Acquaintance] Affection: 0/100", got)
	assert.False(t, strings.HasSuffix(got, "\n"), "trailing newlines are trimmed")
}

func TestRenderContextFullProfile(t *testing.T) {
	p := newTestProfile()
	ts := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

	p.Affection.RecordEvent(10, EventPositive, "helped debug", "", 20, ts)
	p.Affection.RecordEvent(-3, EventNegative, "forgot meeting", "", 20, ts)
	p.Affection.RecordEvent(0, EventNeutral, "small talk", "", 20, ts)
	EvaluateBonds(p.Affection, ts)

	UpsertMemory(p, MemoryPreference, "likes green tea", 8, "", nil, 30, ts)
	UpsertMemory(p, MemoryHabit, "low importance habit", 2, "", nil, 30, ts)

	got := RenderContext(p, defaultRenderConfig(), ts)

	assert.Contains(t, got, "## Social Memory\n")
	assert.Contains(t, got, "- Relationship: [Acquaintance] Affection: 7/100")

	assert.Contains(t, got, "### Recent Interactions:\n")
	assert.Contains(t, got, "- + [03-14 09:30] helped debug")
	assert.Contains(t, got, "- - [03-14 09:30] forgot meeting")
	assert.Contains(t, got, "- · [03-14 09:30] small talk")

	assert.Contains(t, got, "### User Memories:\n")
	assert.Contains(t, got, "- [Preference] likes green tea ★★★★★★★★☆☆")
	assert.NotContains(t, got, "low importance habit", "below the importance floor")

	assert.Contains(t, got, "### Unlocked Bonds:\n- First Meeting")
}

func TestRenderContextEventLimit(t *testing.T) {
	p := newTestProfile()
	for i := 0; i < 6; i++ {
		p.Affection.RecordEvent(1, EventPositive, "event", "", 20, testNow)
	}

	got := RenderContext(p, defaultRenderConfig(), testNow)
	assert.Equal(t, 3, strings.Count(got, "- + ["), "only the newest EventLimit events render")
}

func TestRenderContextBondsGate(t *testing.T) {
	p := newTestProfile()
	EvaluateBonds(p.Affection, testNow)

	cfg := defaultRenderConfig()
	cfg.BondsEnabled = false

	got := RenderContext(p, cfg, testNow)
	assert.NotContains(t, got, "Unlocked Bonds")
}

func TestRenderContextOmitsExpiredMemories(t *testing.T) {
	p := newTestProfile()
	UpsertMemory(p, MemoryPreference, "stale fact", 9, "", nil, 1, testNow)

	got := RenderContext(p, defaultRenderConfig(), testNow.Add(48*time.Hour))
	assert.NotContains(t, got, "stale fact")
	assert.NotContains(t, got, "User Memories", "empty sections are omitted entirely")
}

func TestRenderContextMemoryCap(t *testing.T) {
	p := newTestProfile()
	for i := 0; i < 4; i++ {
		UpsertMemory(p, MemoryPreference, fmt.Sprintf("fact %d", i), 9, "", nil, 30, testNow)
	}

	cfg := defaultRenderConfig()
	cfg.MaxMemories = 2
	got := RenderContext(p, cfg, testNow)
	assert.Equal(t, 2, strings.Count(got, "- [Preference]"), "memory section never exceeds the cap")

	// A zero cap means no memory section, not an uncapped one.
	cfg.MaxMemories = 0
	got = RenderContext(p, cfg, testNow)
	assert.NotContains(t, got, "User Memories")
	assert.NotContains(t, got, "fact 0")
}

func TestImportanceBar(t *testing.T) {
	assert.Equal(t, "★★★★★★★★★★", importanceBar(10))
	assert.Equal(t, "☆☆☆☆☆☆☆☆☆☆", importanceBar(0))
	assert.Equal(t, "★★★☆☆☆☆☆☆☆", importanceBar(3))
	assert.Equal(t, "★★★★★★★★★★", importanceBar(25), "out-of-range clamps")
}

func TestRenderProfileText(t *testing.T) {
	p := newTestProfile()
	p.Affection.RecordEvent(15, EventPositive, "great session", "", 20, testNow)
	EvaluateBonds(p.Affection, testNow)
	UpsertMemory(p, MemoryPersonalInfo, "works nights", 9, "", nil, 30, testNow)

	got := RenderProfileText(p, true, testNow)

	require.True(t, strings.HasPrefix(got, "## User u1 Profile\n"))
	assert.Contains(t, got, "### Relationship\n")
	assert.Contains(t, got, "- Current tier: Friend")
	assert.Contains(t, got, "- Affection: 15/100")
	assert.Contains(t, got, "- Total positive: 15, negative: 0")
	assert.Contains(t, got, "- [Personal Info] works nights")
	assert.Contains(t, got, "### Unlocked Bonds\n- First Meeting")

	withoutBonds := RenderProfileText(p, false, testNow)
	assert.NotContains(t, withoutBonds, "Unlocked Bonds")
}
