package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/careerguide/portal/internal/core/domain"
	"github.com/careerguide/portal/internal/core/ports"
)

const defaultIdleTTL = 30 * time.Minute

// RegistryConfig wires the per-device session managers.
type RegistryConfig struct {
	Mode       domain.BackendMode
	KV         ports.KVStore
	Hasher     ports.PasswordHasher
	Identity   ports.IdentityBackend
	Profiles   ports.ProfileStore
	Production bool
	IdleTTL    time.Duration
}

type registryEntry struct {
	mgr      *SessionManager
	lastUsed time.Time
}

// SessionRegistry keeps one SessionManager per device. Managers are rebuilt
// from persisted state after eviction.
type SessionRegistry struct {
	cfg RegistryConfig
	log zerolog.Logger
	now func() time.Time

	mu      sync.Mutex
	entries map[string]*registryEntry
}

// NewSessionRegistry fails fast when the selected backend is not configured.
func NewSessionRegistry(cfg RegistryConfig, log zerolog.Logger) (*SessionRegistry, error) {
	switch cfg.Mode {
	case domain.BackendRemote:
		if cfg.Identity == nil {
			return nil, domain.ErrRemoteUnavailable
		}
	case domain.BackendLocal:
		if cfg.KV == nil || cfg.Hasher == nil {
			return nil, errors.New("session registry: local mode requires a key-value store and hasher")
		}
	default:
		return nil, fmt.Errorf("session registry: %w: mode %q", domain.ErrInvalidInput, cfg.Mode)
	}
	if cfg.IdleTTL <= 0 {
		cfg.IdleTTL = defaultIdleTTL
	}
	return &SessionRegistry{
		cfg:     cfg,
		log:     log,
		now:     time.Now,
		entries: make(map[string]*registryEntry),
	}, nil
}

// Open returns the manager for deviceID, restoring it on first use.
func (r *SessionRegistry) Open(ctx context.Context, deviceID string) (ports.SessionService, error) {
	if deviceID == "" {
		return nil, fmt.Errorf("open session: %w: empty device id", domain.ErrInvalidInput)
	}

	r.mu.Lock()
	if e, ok := r.entries[deviceID]; ok {
		e.lastUsed = r.now()
		r.mu.Unlock()
		return e.mgr, nil
	}
	r.mu.Unlock()

	mgr, err := r.build(ctx, deviceID)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if e, ok := r.entries[deviceID]; ok {
		mgr.Close()
		e.lastUsed = r.now()
		return e.mgr, nil
	}
	r.entries[deviceID] = &registryEntry{mgr: mgr, lastUsed: r.now()}
	return mgr, nil
}

func (r *SessionRegistry) build(ctx context.Context, deviceID string) (*SessionManager, error) {
	log := r.log.With().Str("device_id", deviceID).Logger()
	deps := SessionDeps{
		Mode:       r.cfg.Mode,
		Profiles:   r.cfg.Profiles,
		Production: r.cfg.Production,
		Log:        log,
	}
	if r.cfg.Mode == domain.BackendLocal {
		deps.Local = NewCredentialStore(r.cfg.KV, r.cfg.Hasher, deviceID, log)
	} else {
		deps.Remote = r.cfg.Identity.ForDevice(deviceID)
	}

	mgr, err := NewSessionManager(deps)
	if err != nil {
		return nil, err
	}
	if err := mgr.Init(ctx); err != nil {
		return nil, fmt.Errorf("open session: %w", err)
	}
	return mgr, nil
}

// Sweep evicts managers idle for longer than the configured TTL.
func (r *SessionRegistry) Sweep() int {
	cutoff := r.now().Add(-r.cfg.IdleTTL)

	r.mu.Lock()
	var stale []*SessionManager
	for id, e := range r.entries {
		if e.lastUsed.Before(cutoff) {
			stale = append(stale, e.mgr)
			delete(r.entries, id)
		}
	}
	r.mu.Unlock()

	for _, m := range stale {
		m.Close()
	}
	return len(stale)
}

// Run sweeps periodically until ctx is cancelled.
func (r *SessionRegistry) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = r.cfg.IdleTTL / 2
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := r.Sweep(); n > 0 {
				r.log.Debug().Int("evicted", n).Msg("idle sessions evicted")
			}
		}
	}
}

// Len reports how many managers are resident.
func (r *SessionRegistry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}
