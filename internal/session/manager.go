package session

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/blackwell-systems/dexctl/internal/kv"
	"github.com/blackwell-systems/dexctl/internal/logging"
	"github.com/blackwell-systems/dexctl/internal/notify"
)

// Defaults for the shared local credential.
const (
	DefaultAdminUser = "admin"
	DefaultPassword  = "password"
)

// Options configures a Manager. Zero values fall back to the defaults.
type Options struct {
	AdminUser    string
	Password     string
	PasswordHash string // bcrypt hash; takes precedence over Password
	HashCost     int
	Logger       *slog.Logger
	Now          func() time.Time
}

// Manager holds at most one session and mirrors it into the store.
type Manager struct {
	store     kv.Store
	adminUser string
	hash      []byte
	log       *slog.Logger
	now       func() time.Time

	mu      sync.Mutex
	current *Session
	changes notify.Broadcaster[*Session]
}

// NewManager builds a Manager. The configured password is hashed once
// here; a malformed PasswordHash is rejected.
func NewManager(store kv.Store, opts Options) (*Manager, error) {
	m := &Manager{
		store:     store,
		adminUser: opts.AdminUser,
		log:       opts.Logger,
		now:       opts.Now,
	}
	if m.adminUser == "" {
		m.adminUser = DefaultAdminUser
	}
	if m.log == nil {
		m.log = logging.Discard()
	}
	if m.now == nil {
		m.now = time.Now
	}

	if opts.PasswordHash != "" {
		if _, err := bcrypt.Cost([]byte(opts.PasswordHash)); err != nil {
			return nil, fmt.Errorf("auth.password_hash: %w", err)
		}
		m.hash = []byte(opts.PasswordHash)
		return m, nil
	}

	password := opts.Password
	if password == "" {
		password = DefaultPassword
	}
	cost := opts.HashCost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}
	m.hash = hash
	return m, nil
}

// Restore installs the persisted session, if any. Missing, malformed or
// unreadable records leave the manager signed out; failures are logged.
func (m *Manager) Restore(ctx context.Context) {
	raw, ok, err := m.store.Get(ctx, kv.KeySession)
	if err != nil {
		m.log.Warn("restoring session", "key", kv.KeySession, "err", err)
		return
	}
	if !ok {
		return
	}

	var s Session
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		m.log.Warn("ignoring malformed session record", "key", kv.KeySession, "err", err)
		return
	}
	if s.Username == "" || !s.Role.Valid() {
		m.log.Warn("ignoring incomplete session record", "key", kv.KeySession)
		return
	}
	s.ID = uuid.NewString()

	m.mu.Lock()
	m.current = &s
	m.mu.Unlock()

	m.log.Debug("session restored", "session", s.ID, "user", s.Username, "role", s.Role)
	m.changes.Publish(&s)
}

// Login signs username in when password matches the shared credential.
// The admin user gets the elevated role, everyone else standard. On
// failure the previous session, if any, is kept.
func (m *Manager) Login(ctx context.Context, username, password string) error {
	if strings.TrimSpace(username) == "" {
		return ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(m.hash, []byte(password)); err != nil {
		m.log.Info("login rejected", "user", username)
		return ErrInvalidCredentials
	}

	role := RoleStandard
	if username == m.adminUser {
		role = RoleElevated
	}
	s := Session{
		ID:         uuid.NewString(),
		Username:   username,
		Role:       role,
		LoggedInAt: m.now().UTC(),
	}

	m.mu.Lock()
	m.current = &s
	m.persist(ctx, &s)
	m.mu.Unlock()

	m.log.Info("logged in", "session", s.ID, "user", s.Username, "role", s.Role)
	m.changes.Publish(&s)
	return nil
}

// Logout ends the session and removes the persisted copy. Calling it
// while signed out is harmless.
func (m *Manager) Logout(ctx context.Context) {
	m.mu.Lock()
	prev := m.current
	m.current = nil
	if err := m.store.Remove(ctx, kv.KeySession); err != nil {
		m.log.Warn("removing session record", "key", kv.KeySession, "err", err)
	}
	m.mu.Unlock()

	if prev != nil {
		m.log.Info("logged out", "session", prev.ID, "user", prev.Username)
	}
	m.changes.Publish(nil)
}

// persist writes s; m.mu must be held.
func (m *Manager) persist(ctx context.Context, s *Session) {
	data, err := json.Marshal(s)
	if err != nil {
		m.log.Error("encoding session", "err", err)
		return
	}
	if err := m.store.Set(ctx, kv.KeySession, string(data)); err != nil {
		m.log.Warn("persisting session", "key", kv.KeySession, "err", err)
	}
}

// Current returns a copy of the active session.
func (m *Manager) Current() (Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.current == nil {
		return Session{}, false
	}
	return *m.current, true
}

// IsElevated reports whether the active session has the elevated role.
func (m *Manager) IsElevated() bool {
	s, ok := m.Current()
	return ok && s.Elevated()
}

// Subscribe registers fn for session changes. fn receives nil after
// logout.
func (m *Manager) Subscribe(fn func(*Session)) (cancel func()) {
	return m.changes.Subscribe(fn)
}
