// Package engine implements the public operation surface of socialmem.
// Every operation is a single load -> compute -> (conditionally) save
// transaction against one user's profile; the engine holds no cross-call
// state of its own. Concurrent operations against the same user can race
// between load and save (last save wins); serializing per user, if needed,
// belongs to the store adapter.
package engine

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/yukiacerium/socialmem/internal/config"
	"github.com/yukiacerium/socialmem/internal/social"
	"github.com/yukiacerium/socialmem/internal/store"
)

// Default limits for read operations when the caller passes none.
const (
	defaultHistoryLimit = 10
	defaultQueryLimit   = 20
	defaultSearchLimit  = 10
)

// Engine executes social-memory operations against a profile store.
type Engine struct {
	store store.ProfileStore
	cfg   config.SocialConfig
	log   *slog.Logger
	now   func() time.Time
}

// New creates an Engine. cfg is captured at construction; the engine never
// reads ambient configuration.
func New(st store.ProfileStore, cfg config.SocialConfig, log *slog.Logger) *Engine {
	if log == nil {
		log = slog.Default()
	}
	return &Engine{
		store: st,
		cfg:   cfg,
		log:   log,
		now:   time.Now,
	}
}

// loadOrCreate fetches the user's profile, transparently creating a fresh
// one with the default affection for first-seen users. Absence is not an
// error at this boundary.
func (e *Engine) loadOrCreate(ctx context.Context, userID string) (*social.Profile, error) {
	blob, err := e.store.Load(ctx, userID)
	if err != nil {
		if store.IsNotFound(err) {
			return social.NewProfile(userID, e.cfg.DefaultAffection, e.now()), nil
		}
		return nil, fmt.Errorf("load profile: %w", err)
	}
	return social.DecodeProfile(blob)
}

// save writes the whole profile back as one blob. A failed save leaves the
// stored profile untouched; no partial state is ever persisted.
func (e *Engine) save(ctx context.Context, userID string, p *social.Profile) error {
	blob, err := social.EncodeProfile(p)
	if err != nil {
		return err
	}
	if err := e.store.Save(ctx, userID, blob); err != nil {
		return fmt.Errorf("save profile: %w", err)
	}
	return nil
}

func (e *Engine) renderConfig() social.RenderConfig {
	return social.RenderConfig{
		EventLimit:    e.cfg.AffectionPromptLimit,
		MaxMemories:   e.cfg.MaxInjectedMemories,
		MinImportance: e.cfg.MinImportanceScore,
		BondsEnabled:  e.cfg.EnableBondSystem,
	}
}

// RenderContext produces the context text block for injection into a
// downstream consumer. Read-only.
func (e *Engine) RenderContext(ctx context.Context, userID string) (string, error) {
	p, err := e.loadOrCreate(ctx, userID)
	if err != nil {
		return "", err
	}
	return social.RenderContext(p, e.renderConfig(), e.now()), nil
}

// UserProfileText composes the human-readable profile for a user.
// Read-only.
func (e *Engine) UserProfileText(ctx context.Context, userID string) (string, error) {
	p, err := e.loadOrCreate(ctx, userID)
	if err != nil {
		return "", err
	}
	return social.RenderProfileText(p, e.cfg.EnableBondSystem, e.now()), nil
}
