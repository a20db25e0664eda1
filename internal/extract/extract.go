// Package extract implements the inbound-message pattern matcher that
// decides when a message is worth remembering. It is a heuristic front end
// to the memory store: the first matching pattern picks the memory type and
// a default importance, and the store's content dedup absorbs repeats.
package extract

import (
	"regexp"

	"github.com/yukiacerium/socialmem/internal/social"
)

// typePattern pairs a memory type with its trigger patterns. Order matters:
// the first type whose pattern matches wins.
type typePattern struct {
	typ      social.MemoryType
	patterns []*regexp.Regexp
}

var extractPatterns = []typePattern{
	{social.MemoryPreference, compileAll(
		`(?i)I (?:prefer|like|enjoy|love|hate|dislike)`,
		`我喜欢`, `我习惯`, `我讨厌`,
	)},
	{social.MemoryPersonalInfo, compileAll(
		`(?i)my (?:email|phone|name|birthday) is`,
		`我的邮箱`, `我的电话`, `我的名字`,
	)},
	{social.MemoryCommitment, compileAll(
		`(?i)\bI will\b`, `(?i)\bremember to\b`, `(?i)\bdon't forget\b`,
		`我会`, `记得`, `别忘了`,
	)},
	{social.MemoryInterest, compileAll(
		`(?i)intereste?d in`, `(?i)passionate about`,
		`对.*感兴趣`, `热衷`,
	)},
	{social.MemoryHabit, compileAll(
		`(?i)\busually\b`, `(?i)\boften\b`, `(?i)\bevery (?:day|morning|night)\b`,
		`通常`, `一般`, `经常`,
	)},
}

// defaultImportance is the baseline importance per memory type before the
// auto-extraction discount.
var defaultImportance = map[social.MemoryType]int{
	social.MemoryPersonalInfo: 10,
	social.MemoryCommitment:   7,
	social.MemoryPreference:   6,
	social.MemoryInterest:     5,
	social.MemoryHabit:        4,
}

// autoDiscount lowers auto-extracted importance below what an explicit
// recordMemory call would use.
const autoDiscount = 2

// maxContentRunes caps the stored excerpt of a matched message.
const maxContentRunes = 200

func compileAll(exprs ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(exprs))
	for i, e := range exprs {
		out[i] = regexp.MustCompile(e)
	}
	return out
}

// Candidate is a memory the matcher wants recorded.
type Candidate struct {
	Type       social.MemoryType
	Content    string
	Importance int
}

// Match scans a message and returns the memory candidate it implies, if
// any. At most one candidate is produced per message.
func Match(message string) (Candidate, bool) {
	if message == "" {
		return Candidate{}, false
	}

	for _, tp := range extractPatterns {
		for _, re := range tp.patterns {
			if !re.MatchString(message) {
				continue
			}
			imp, ok := defaultImportance[tp.typ]
			if !ok {
				imp = 5
			}
			return Candidate{
				Type:       tp.typ,
				Content:    truncateRunes(message, maxContentRunes),
				Importance: imp - autoDiscount,
			}, true
		}
	}
	return Candidate{}, false
}

func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
