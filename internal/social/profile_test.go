package social

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfileRoundTrip(t *testing.T) {
	p := newTestProfile()
	p.Affection.RecordEvent(12, EventPositive, "good chat", "evening", 20, testNow)
	EvaluateBonds(p.Affection, testNow)
	UpsertMemory(p, MemoryCommitment, "promised a review", 7, "sess-9", []string{"work"}, 30, testNow)

	blob, err := EncodeProfile(p)
	require.NoError(t, err)

	got, err := DecodeProfile(blob)
	require.NoError(t, err)
	assert.Equal(t, p, got)
}

func TestDecodeProfileNormalizesMaps(t *testing.T) {
	blob := []byte(`{"affection":{"user_id":"u1","affection_value":5}}`)

	p, err := DecodeProfile(blob)
	require.NoError(t, err)
	assert.NotNil(t, p.Memories)
	assert.NotNil(t, p.Affection.Bonds)
	assert.Equal(t, 5, p.Affection.Value)
}

func TestDecodeProfileRejectsMissingAffection(t *testing.T) {
	_, err := DecodeProfile([]byte(`{"memories":{}}`))
	assert.Error(t, err)

	_, err = DecodeProfile([]byte(`not json`))
	assert.Error(t, err)
}
