package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/careerguide/portal/internal/core/domain"
	"github.com/careerguide/portal/internal/core/ports"
)

const (
	keyUsers       = "career_guidance_users"
	keyCurrentUser = "career_guidance_current_user"
	keyLoggedIn    = "career_guidance_logged_in"

	loggedInValue = "true"
)

type seedUser struct {
	user     domain.User
	password string
}

var seedUsers = []seedUser{
	{
		user: domain.User{
			ID:       "user_1",
			Email:    "student@example.com",
			Name:     "Demo Student",
			UserType: domain.UserTypeStudent,
			Profile: domain.Profile{
				Phone:     "+1234567890",
				Grade:     "12",
				Interests: []string{"Engineering", "Technology"},
				Location:  "Demo City",
			},
		},
		password: "password123",
	},
	{
		user: domain.User{
			ID:       "user_2",
			Email:    "john.doe@email.com",
			Name:     "John Doe",
			UserType: domain.UserTypeStudent,
			Profile: domain.Profile{
				Phone:     "+1987654321",
				Grade:     "12",
				Interests: []string{"Medicine", "Science"},
				Location:  "New York",
			},
		},
		password: "student123",
	},
}

// CredentialStore keeps user records and the session flag for one device in
// a key-value store. It is the fallback identity backend.
type CredentialStore struct {
	kv        ports.KVStore
	hasher    ports.PasswordHasher
	namespace string
	log       zerolog.Logger
	now       func() time.Time

	mu     sync.Mutex
	seeded bool
}

// NewCredentialStore scopes all keys under the device namespace.
func NewCredentialStore(kv ports.KVStore, hasher ports.PasswordHasher, deviceID string, log zerolog.Logger) *CredentialStore {
	return &CredentialStore{
		kv:        kv,
		hasher:    hasher,
		namespace: "device:" + deviceID + ":",
		log:       log,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

func (s *CredentialStore) key(name string) string {
	return s.namespace + name
}

// SignUp validates and stores a new account. It does not sign the user in.
func (s *CredentialStore) SignUp(ctx context.Context, in ports.SignUpInput) (*domain.User, error) {
	email := strings.TrimSpace(in.Email)
	name := strings.TrimSpace(in.Name)
	if email == "" || in.Password == "" || name == "" {
		return nil, fmt.Errorf("sign up: %w", domain.ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.loadUsers(ctx)
	if err != nil {
		return nil, err
	}
	if findUser(users, email) >= 0 {
		return nil, domain.ErrDuplicateAccount
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("sign up: hash: %w", err)
	}

	userType := in.UserType
	if userType == "" {
		userType = domain.UserTypeStudent
	}
	interests := in.Interests
	if interests == nil {
		interests = []string{}
	}

	user := domain.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: hash,
		Name:         name,
		UserType:     userType,
		Profile: domain.Profile{
			Phone:     in.Phone,
			Grade:     in.Grade,
			Interests: interests,
			Location:  in.Location,
		},
		CreatedAt: s.now(),
	}

	if err := s.saveUsers(ctx, append(users, user)); err != nil {
		return nil, err
	}

	s.log.Info().Str("user_id", user.ID).Str("email", user.Email).Msg("local account created")
	return &user, nil
}

// SignIn verifies the secret and persists the session flag.
// A failed attempt leaves the store untouched.
func (s *CredentialStore) SignIn(ctx context.Context, email, password string, remember bool) (*domain.Session, error) {
	if strings.TrimSpace(email) == "" || password == "" {
		return nil, fmt.Errorf("sign in: %w", domain.ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.loadUsers(ctx)
	if err != nil {
		return nil, err
	}
	idx := findUser(users, email)
	if idx < 0 {
		return nil, domain.ErrNotFound
	}
	user := users[idx]

	ok, err := s.hasher.Verify(password, user.PasswordHash)
	if err != nil {
		s.log.Warn().Err(err).Str("user_id", user.ID).Msg("stored hash unreadable")
		return nil, domain.ErrInvalidCredential
	}
	if !ok {
		return nil, domain.ErrInvalidCredential
	}

	session := sessionFromUser(&user, remember, s.now())
	if err := s.persistSession(ctx, session); err != nil {
		return nil, err
	}

	s.log.Info().Str("user_id", user.ID).Msg("local sign in")
	return session, nil
}

// SignOut clears the persisted session. It is idempotent.
func (s *CredentialStore) SignOut(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.kv.RemoveItem(ctx, s.key(keyCurrentUser)); err != nil {
		return fmt.Errorf("sign out: %w", err)
	}
	if err := s.kv.RemoveItem(ctx, s.key(keyLoggedIn)); err != nil {
		return fmt.Errorf("sign out: %w", err)
	}
	return nil
}

// IsAuthenticated reports whether the persisted flag is set.
func (s *CredentialStore) IsAuthenticated(ctx context.Context) (bool, error) {
	v, ok, err := s.kv.GetItem(ctx, s.key(keyLoggedIn))
	if err != nil {
		return false, fmt.Errorf("read session flag: %w", err)
	}
	return ok && v == loggedInValue, nil
}

// CurrentUser returns the persisted session, or nil when signed out.
// An unreadable record is treated as absent.
func (s *CredentialStore) CurrentUser(ctx context.Context) (*domain.Session, error) {
	authed, err := s.IsAuthenticated(ctx)
	if err != nil || !authed {
		return nil, err
	}

	raw, ok, err := s.kv.GetItem(ctx, s.key(keyCurrentUser))
	if err != nil {
		return nil, fmt.Errorf("read current user: %w", err)
	}
	if !ok {
		return nil, nil
	}

	var session domain.Session
	if err := json.Unmarshal([]byte(raw), &session); err != nil {
		s.log.Warn().Err(err).Msg("discarding malformed session record")
		return nil, nil
	}
	return &session, nil
}

// ResetPassword reports whether an account exists for email.
func (s *CredentialStore) ResetPassword(ctx context.Context, email string) error {
	if strings.TrimSpace(email) == "" {
		return fmt.Errorf("reset password: %w", domain.ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.loadUsers(ctx)
	if err != nil {
		return err
	}
	if findUser(users, email) < 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateProfile merges patch into the signed-in user's record and session.
func (s *CredentialStore) UpdateProfile(ctx context.Context, patch ports.ProfilePatch) (*domain.Session, error) {
	current, err := s.CurrentUser(ctx)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, domain.ErrUnauthenticated
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.loadUsers(ctx)
	if err != nil {
		return nil, err
	}
	idx := -1
	for i := range users {
		if users[i].ID == current.UserID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, domain.ErrNotFound
	}

	applyPatch(&users[idx], patch)
	if err := s.saveUsers(ctx, users); err != nil {
		return nil, err
	}

	updated := sessionFromUser(&users[idx], current.RememberMe, current.IssuedAt)
	if err := s.persistSession(ctx, updated); err != nil {
		return nil, err
	}
	return updated, nil
}

// ListUsers returns sanitized records. It requires a signed-in session.
func (s *CredentialStore) ListUsers(ctx context.Context) ([]domain.UserSummary, error) {
	authed, err := s.IsAuthenticated(ctx)
	if err != nil {
		return nil, err
	}
	if !authed {
		return nil, domain.ErrUnauthenticated
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.loadUsers(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.UserSummary, 0, len(users))
	for i := range users {
		out = append(out, users[i].Summary())
	}
	return out, nil
}

// loadUsers reads the user list, seeding demo accounts on first use.
// Callers must hold s.mu.
func (s *CredentialStore) loadUsers(ctx context.Context) ([]domain.User, error) {
	raw, ok, err := s.kv.GetItem(ctx, s.key(keyUsers))
	if err != nil {
		return nil, fmt.Errorf("read users: %w", err)
	}

	var users []domain.User
	if ok && raw != "" {
		if err := json.Unmarshal([]byte(raw), &users); err != nil {
			s.log.Error().Err(err).Msg("user list unreadable, starting empty")
			users = nil
		}
	}

	if len(users) == 0 && !s.seeded {
		users, err = s.seed()
		if err != nil {
			return nil, err
		}
		if err := s.saveUsers(ctx, users); err != nil {
			return nil, err
		}
		s.seeded = true
		s.log.Info().Int("count", len(users)).Msg("seeded demo accounts")
	}
	return users, nil
}

func (s *CredentialStore) seed() ([]domain.User, error) {
	now := s.now()
	users := make([]domain.User, 0, len(seedUsers))
	for _, su := range seedUsers {
		hash, err := s.hasher.Hash(su.password)
		if err != nil {
			return nil, fmt.Errorf("seed users: %w", err)
		}
		u := su.user
		u.PasswordHash = hash
		u.Profile.Interests = append([]string(nil), su.user.Profile.Interests...)
		u.CreatedAt = now
		users = append(users, u)
	}
	return users, nil
}

func (s *CredentialStore) saveUsers(ctx context.Context, users []domain.User) error {
	raw, err := json.Marshal(users)
	if err != nil {
		return fmt.Errorf("encode users: %w", err)
	}
	if err := s.kv.SetItem(ctx, s.key(keyUsers), string(raw)); err != nil {
		return fmt.Errorf("write users: %w", err)
	}
	return nil
}

func (s *CredentialStore) persistSession(ctx context.Context, session *domain.Session) error {
	raw, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := s.kv.SetItem(ctx, s.key(keyCurrentUser), string(raw)); err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	if err := s.kv.SetItem(ctx, s.key(keyLoggedIn), loggedInValue); err != nil {
		return fmt.Errorf("write session flag: %w", err)
	}
	return nil
}

func findUser(users []domain.User, email string) int {
	for i := range users {
		if domain.SameEmail(users[i].Email, email) {
			return i
		}
	}
	return -1
}

func sessionFromUser(u *domain.User, remember bool, issuedAt time.Time) *domain.Session {
	profile := u.Profile
	profile.Interests = append([]string(nil), u.Profile.Interests...)
	return &domain.Session{
		UserID:     u.ID,
		Email:      u.Email,
		Name:       u.Name,
		UserType:   u.UserType,
		Profile:    &profile,
		Provider:   domain.ProviderLocal,
		IssuedAt:   issuedAt,
		RememberMe: remember,
	}
}

func applyPatch(u *domain.User, p ports.ProfilePatch) {
	if p.Name != nil && strings.TrimSpace(*p.Name) != "" {
		u.Name = strings.TrimSpace(*p.Name)
	}
	if p.Phone != nil {
		u.Profile.Phone = *p.Phone
	}
	if p.Grade != nil {
		u.Profile.Grade = *p.Grade
	}
	if p.Interests != nil {
		u.Profile.Interests = append([]string(nil), p.Interests...)
	}
	if p.Location != nil {
		u.Profile.Location = *p.Location
	}
}
