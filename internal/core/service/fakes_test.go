package service

import (
	"context"
	"sync"
	"testing"

	"github.com/rs/zerolog"

	"github.com/careerguide/portal/internal/core/domain"
	"github.com/careerguide/portal/internal/core/ports"
	"github.com/careerguide/portal/internal/infrastructure/memory"
)

// cheap parameters keep the suite fast
var testHasher = Argon2Hasher{Time: 1, MemoryKiB: 64, Threads: 1}

func newLocalStore(deviceID string) (*CredentialStore, *memory.KVStore) {
	kv := memory.NewKVStore()
	return NewCredentialStore(kv, testHasher, deviceID, zerolog.Nop()), kv
}

// ---------------------------------------------------------------------------
// Remote identity fake
// ---------------------------------------------------------------------------

type fakeAccount struct {
	user     domain.RemoteUser
	password string
}

type fakeIdentity struct {
	mu        sync.Mutex
	accounts  map[string]*fakeAccount
	current   *domain.RemoteUser
	listeners map[int]func(*domain.RemoteUser)
	nextID    int
	resets    []string

	signInErr  error
	createErr  error
	popupErr   error
	signOutErr error
	resetErr   error
	updateErr  error

	// when set, SignInWithEmailAndPassword signals entered and waits on release
	entered chan struct{}
	release chan struct{}
}

func newFakeIdentity() *fakeIdentity {
	return &fakeIdentity{
		accounts:  make(map[string]*fakeAccount),
		listeners: make(map[int]func(*domain.RemoteUser)),
	}
}

func (f *fakeIdentity) addAccount(uid, email, password, name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.accounts[domain.NormalizeEmail(email)] = &fakeAccount{
		user:     domain.RemoteUser{UID: uid, Email: email, DisplayName: name, Provider: domain.ProviderPassword},
		password: password,
	}
}

func (f *fakeIdentity) SignInWithEmailAndPassword(_ context.Context, email, password string) (*domain.RemoteUser, error) {
	if f.entered != nil {
		f.entered <- struct{}{}
		<-f.release
	}
	if f.signInErr != nil {
		return nil, f.signInErr
	}
	f.mu.Lock()
	acc, ok := f.accounts[domain.NormalizeEmail(email)]
	f.mu.Unlock()
	if !ok {
		return nil, domain.NewRemoteAuthError(domain.ReasonNotFound, nil)
	}
	if acc.password != password {
		return nil, domain.NewRemoteAuthError(domain.ReasonWrongSecret, nil)
	}
	u := acc.user
	f.setCurrent(&u)
	return &u, nil
}

func (f *fakeIdentity) CreateUserWithEmailAndPassword(_ context.Context, email, password string) (*domain.RemoteUser, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.mu.Lock()
	if _, ok := f.accounts[domain.NormalizeEmail(email)]; ok {
		f.mu.Unlock()
		return nil, domain.NewRemoteAuthError(domain.ReasonAccountExists, nil)
	}
	u := domain.RemoteUser{UID: "uid-" + domain.NormalizeEmail(email), Email: email, Provider: domain.ProviderPassword}
	f.accounts[domain.NormalizeEmail(email)] = &fakeAccount{user: u, password: password}
	f.mu.Unlock()
	f.setCurrent(&u)
	return &u, nil
}

func (f *fakeIdentity) SignInWithPopup(_ context.Context, a domain.FederatedAssertion) (*domain.RemoteUser, error) {
	if f.popupErr != nil {
		return nil, f.popupErr
	}
	u := domain.RemoteUser{
		UID:         "google-" + a.Subject,
		Email:       a.Email,
		DisplayName: a.DisplayName,
		PhotoURL:    a.PhotoURL,
		Provider:    domain.ProviderGoogle,
	}
	f.setCurrent(&u)
	return &u, nil
}

func (f *fakeIdentity) SignOut(context.Context) error {
	if f.signOutErr != nil {
		return f.signOutErr
	}
	f.setCurrent(nil)
	return nil
}

func (f *fakeIdentity) SendPasswordResetEmail(_ context.Context, email string) error {
	if f.resetErr != nil {
		return f.resetErr
	}
	f.mu.Lock()
	f.resets = append(f.resets, email)
	f.mu.Unlock()
	return nil
}

func (f *fakeIdentity) UpdateProfile(_ context.Context, uid, name string) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, acc := range f.accounts {
		if acc.user.UID == uid {
			acc.user.DisplayName = name
		}
	}
	return nil
}

func (f *fakeIdentity) OnAuthStateChanged(_ context.Context, fn func(*domain.RemoteUser)) (func(), error) {
	f.mu.Lock()
	id := f.nextID
	f.nextID++
	f.listeners[id] = fn
	cur := f.current
	f.mu.Unlock()

	fn(cur)
	return func() {
		f.mu.Lock()
		delete(f.listeners, id)
		f.mu.Unlock()
	}, nil
}

func (f *fakeIdentity) setCurrent(u *domain.RemoteUser) {
	f.mu.Lock()
	f.current = u
	fns := make([]func(*domain.RemoteUser), 0, len(f.listeners))
	for _, fn := range f.listeners {
		fns = append(fns, fn)
	}
	f.mu.Unlock()
	for _, fn := range fns {
		fn(u)
	}
}

func (f *fakeIdentity) listenerCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.listeners)
}

// fakeBackend hands the same provider to every device.
type fakeBackend struct {
	provider *fakeIdentity
	devices  []string
}

func (b *fakeBackend) ForDevice(id string) ports.IdentityProvider {
	b.devices = append(b.devices, id)
	return b.provider
}

// ---------------------------------------------------------------------------
// Profile store fake
// ---------------------------------------------------------------------------

type fakeProfiles struct {
	mu      sync.Mutex
	docs    map[string]*domain.ProfileDocument
	touched []string
	patches []ports.ProfilePatch

	setErr    error
	getErr    error
	updateErr error
	touchErr  error
}

func newFakeProfiles() *fakeProfiles {
	return &fakeProfiles{docs: make(map[string]*domain.ProfileDocument)}
}

func (p *fakeProfiles) Set(_ context.Context, doc *domain.ProfileDocument) error {
	if p.setErr != nil {
		return p.setErr
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	clone := *doc
	p.docs[doc.UID] = &clone
	return nil
}

func (p *fakeProfiles) Get(_ context.Context, uid string) (*domain.ProfileDocument, error) {
	if p.getErr != nil {
		return nil, p.getErr
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	doc, ok := p.docs[uid]
	if !ok {
		return nil, domain.ErrNotFound
	}
	clone := *doc
	return &clone, nil
}

func (p *fakeProfiles) Update(_ context.Context, _ string, patch ports.ProfilePatch) error {
	if p.updateErr != nil {
		return p.updateErr
	}
	p.mu.Lock()
	p.patches = append(p.patches, patch)
	p.mu.Unlock()
	return nil
}

func (p *fakeProfiles) TouchLastLogin(_ context.Context, uid string) error {
	if p.touchErr != nil {
		return p.touchErr
	}
	p.mu.Lock()
	p.touched = append(p.touched, uid)
	p.mu.Unlock()
	return nil
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func newLocalManager(t *testing.T, store *CredentialStore, production bool) *SessionManager {
	m, err := NewSessionManager(SessionDeps{
		Mode:       domain.BackendLocal,
		Local:      store,
		Production: production,
		Log:        zerolog.Nop(),
	})
	if err != nil {
		t.Fatalf("NewSessionManager: %v", err)
	}
	if err := m.Init(context.Background()); err != nil {
		t.Fatalf("Init: %v", err)
	}
	return m
}

func newRemoteManager(t *testing.T, id *fakeIdentity, profiles ports.ProfileStore) *SessionManager {
	m, err := NewSessionManager(SessionDeps{
		Mode:     domain.BackendRemote,
		Remote:   id,
		Profiles: profiles,
		Log:      zerolog.Nop(),
	})
	if err != nil {
		t.Fatalf("NewSessionManager: %v", err)
	}
	if err := m.Init(context.Background()); err != nil {
		t.Fatalf("Init: %v", err)
	}
	return m
}

func recordingCtx() (context.Context, *FeedbackRecorder) {
	rec := &FeedbackRecorder{}
	return WithFeedback(context.Background(), rec), rec
}

func strPtr(s string) *string { return &s }
