package social

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func findDef(t *testing.T, id BondID) BondDef {
	t.Helper()
	for _, def := range BondCatalog() {
		if def.ID == id {
			return def
		}
	}
	t.Fatalf("bond %s not in catalog", id)
	return BondDef{}
}

func TestEvaluateBondsFirstMeet(t *testing.T) {
	a := NewUserAffection("u1", 0, testNow)

	unlocked := EvaluateBonds(a, testNow)
	require.Equal(t, []BondID{BondFirstMeet}, unlocked)
	assert.True(t, a.Bonds[BondFirstMeet].Unlocked)
	assert.Equal(t, testNow.Unix(), a.Bonds[BondFirstMeet].UnlockTime)

	// Idempotent: a second pass unlocks nothing new.
	assert.Empty(t, EvaluateBonds(a, testNow))
}

func TestSharedLaughUnlocksAtThreshold(t *testing.T) {
	a := NewUserAffection("u1", 0, testNow)

	a.RecordEvent(4, EventPositive, "joke", "", 20, testNow)
	EvaluateBonds(a, testNow)
	assert.False(t, a.Bonds[BondSharedLaugh].Unlocked, "total_positive=4 is below threshold")

	a.RecordEvent(1, EventPositive, "another joke", "", 20, testNow)
	unlocked := EvaluateBonds(a, testNow)
	assert.Contains(t, unlocked, BondSharedLaugh, "unlocks exactly when total_positive reaches 5")

	// Monotonic: negative events never revert an unlock.
	a.RecordEvent(-20, EventNegative, "fight", "", 20, testNow)
	a.RecordEvent(-20, EventNegative, "worse fight", "", 20, testNow)
	EvaluateBonds(a, testNow)
	assert.True(t, a.Bonds[BondSharedLaugh].Unlocked)
}

func TestPositiveTotalBondLadder(t *testing.T) {
	a := NewUserAffection("u1", 0, testNow)

	// Five +10 events: total_positive=50, value=50.
	for i := 0; i < 5; i++ {
		a.RecordEvent(10, EventPositive, "praise", "", 20, testNow)
	}
	EvaluateBonds(a, testNow)

	assert.True(t, a.Bonds[BondSharedLaugh].Unlocked)
	assert.True(t, a.Bonds[BondDeepConversation].Unlocked)
	assert.True(t, a.Bonds[BondTrustedConfidant].Unlocked)
	assert.False(t, a.Bonds[BondHeartToHeart].Unlocked, "affection 50 is below 80")
	assert.Equal(t, TierFriend, a.Tier())
}

func TestStormTogetherRequiresPositiveCrises(t *testing.T) {
	a := NewUserAffection("u1", 0, testNow)

	// Negative crisis events do not count.
	for i := 0; i < 3; i++ {
		a.RecordEvent(-15, EventCrisis, "disaster", "", 20, testNow)
	}
	EvaluateBonds(a, testNow)
	assert.False(t, a.Bonds[BondStormTogether].Unlocked)

	// Three crises weathered together (positive change) unlock it.
	for i := 0; i < 3; i++ {
		a.RecordEvent(5, EventCrisis, "got through it", "", 20, testNow)
	}
	unlocked := EvaluateBonds(a, testNow)
	assert.Contains(t, unlocked, BondStormTogether)
}

func TestHeartToHeartUnlocksAtEighty(t *testing.T) {
	a := NewUserAffection("u1", 79, testNow)
	EvaluateBonds(a, testNow)
	assert.False(t, a.Bonds[BondHeartToHeart].Unlocked)

	a.RecordEvent(1, EventPositive, "moment", "", 20, testNow)
	unlocked := EvaluateBonds(a, testNow)
	assert.Contains(t, unlocked, BondHeartToHeart)
}

func TestBondProgress(t *testing.T) {
	a := NewUserAffection("u1", 40, testNow)
	a.RecordEvent(3, EventPositive, "chat", "", 20, testNow)

	assert.Equal(t, 1.0, findDef(t, BondFirstMeet).Progress(a))
	assert.InDelta(t, 3.0/5.0, findDef(t, BondSharedLaugh).Progress(a), 1e-9)
	assert.InDelta(t, 3.0/20.0, findDef(t, BondTrustedConfidant).Progress(a), 1e-9)
	assert.InDelta(t, 43.0/80.0, findDef(t, BondHeartToHeart).Progress(a), 1e-9)
	assert.Equal(t, 0.0, findDef(t, BondStormTogether).Progress(a))
}

func TestBondProgressClamped(t *testing.T) {
	a := NewUserAffection("u1", -100, testNow)
	assert.Equal(t, 0.0, findDef(t, BondHeartToHeart).Progress(a), "negative counters clamp to zero")

	for i := 0; i < 10; i++ {
		a.RecordEvent(20, EventPositive, "praise", "", 20, testNow)
	}
	assert.Equal(t, 1.0, findDef(t, BondSharedLaugh).Progress(a), "progress caps at 1.0")
}

func TestUnlockedBondsCatalogOrder(t *testing.T) {
	a := NewUserAffection("u1", 90, testNow)
	for i := 0; i < 3; i++ {
		a.RecordEvent(10, EventPositive, "praise", "", 20, testNow)
	}
	EvaluateBonds(a, testNow)

	got := a.UnlockedBonds()
	want := []BondID{BondFirstMeet, BondSharedLaugh, BondDeepConversation, BondTrustedConfidant, BondHeartToHeart}
	assert.Equal(t, want, got)
}
