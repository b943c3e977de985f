package mongo

import (
	"context"
	"errors"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/crypto/bcrypt"

	"github.com/careerguide/portal/internal/core/domain"
	"github.com/careerguide/portal/internal/core/ports"
)

const (
	collectionAuthUsers      = "auth_users"
	collectionAuthSessions   = "auth_sessions"
	collectionPasswordResets = "password_resets"

	minSecretLen  = 6
	resetTokenTTL = time.Hour
)

type authUser struct {
	ID           string    `bson:"_id"`
	Email        string    `bson:"email"`
	DisplayName  string    `bson:"display_name,omitempty"`
	PhotoURL     string    `bson:"photo_url,omitempty"`
	PasswordHash string    `bson:"password_hash,omitempty"`
	Providers    []string  `bson:"providers"`
	CreatedAt    time.Time `bson:"created_at"`

	// Subjects maps a federated provider to the subject it vouched for.
	Subjects map[string]string `bson:"subjects,omitempty"`
}

type authSession struct {
	DeviceID   string    `bson:"_id"`
	UID        string    `bson:"uid"`
	Provider   string    `bson:"provider"`
	SignedInAt time.Time `bson:"signed_in_at"`
}

type passwordReset struct {
	Token     string    `bson:"_id"`
	UID       string    `bson:"uid"`
	Email     string    `bson:"email"`
	ExpiresAt time.Time `bson:"expires_at"`
}

// IdentityService is the remote identity backend. Accounts live in
// auth_users; the signed-in account of each device lives in auth_sessions.
type IdentityService struct {
	users    *mongo.Collection
	sessions *mongo.Collection
	resets   *mongo.Collection
	limiter  ports.AttemptLimiter
	verifier ports.FederatedTokenVerifier
	validate *validator.Validate
	log      zerolog.Logger
	now      func() time.Time

	mu        sync.Mutex
	listeners map[string]map[int]func(*domain.RemoteUser)
	nextID    int
}

// NewIdentityService accepts a nil limiter, which disables attempt limiting,
// and a nil verifier, which disables federated sign-in.
func NewIdentityService(db *mongo.Database, limiter ports.AttemptLimiter, verifier ports.FederatedTokenVerifier, log zerolog.Logger) *IdentityService {
	return &IdentityService{
		users:     db.Collection(collectionAuthUsers),
		sessions:  db.Collection(collectionAuthSessions),
		resets:    db.Collection(collectionPasswordResets),
		limiter:   limiter,
		verifier:  verifier,
		validate:  validator.New(),
		log:       log,
		now:       func() time.Time { return time.Now().UTC() },
		listeners: make(map[string]map[int]func(*domain.RemoteUser)),
	}
}

// EnsureIndexes creates the unique email index and the reset expiry index.
func (s *IdentityService) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if _, err := s.users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	}); err != nil {
		return err
	}
	_, err := s.resets.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "expires_at", Value: 1}},
		Options: options.Index().SetExpireAfterSeconds(0),
	})
	return err
}

// ForDevice returns the provider view scoped to deviceID.
func (s *IdentityService) ForDevice(deviceID string) ports.IdentityProvider {
	return &deviceIdentity{svc: s, deviceID: deviceID}
}

type deviceIdentity struct {
	svc      *IdentityService
	deviceID string
}

func (d *deviceIdentity) SignInWithEmailAndPassword(ctx context.Context, email, password string) (*domain.RemoteUser, error) {
	s := d.svc
	email = domain.NormalizeEmail(email)
	if err := s.validate.Var(email, "required,email"); err != nil {
		return nil, domain.NewRemoteAuthError(domain.ReasonMalformedEmail, err)
	}

	if s.limiter != nil {
		blocked, err := s.limiter.Blocked(ctx, email)
		if err != nil {
			s.log.Warn().Err(err).Msg("attempt limiter unavailable")
		} else if blocked {
			return nil, domain.NewRemoteAuthError(domain.ReasonRateLimited, nil)
		}
	}

	u, err := s.findByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if u.PasswordHash == "" || bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		if s.limiter != nil {
			if lerr := s.limiter.RecordFailure(ctx, email); lerr != nil {
				s.log.Warn().Err(lerr).Msg("failed to record sign-in failure")
			}
		}
		return nil, domain.NewRemoteAuthError(domain.ReasonWrongSecret, nil)
	}
	if s.limiter != nil {
		if lerr := s.limiter.Reset(ctx, email); lerr != nil {
			s.log.Warn().Err(lerr).Msg("failed to reset sign-in attempts")
		}
	}

	ru := u.remote(domain.ProviderPassword)
	if err := d.bind(ctx, ru); err != nil {
		return nil, err
	}
	return ru, nil
}

func (d *deviceIdentity) CreateUserWithEmailAndPassword(ctx context.Context, email, password string) (*domain.RemoteUser, error) {
	s := d.svc
	email = domain.NormalizeEmail(email)
	if err := s.validate.Var(email, "required,email"); err != nil {
		return nil, domain.NewRemoteAuthError(domain.ReasonMalformedEmail, err)
	}
	if len(password) < minSecretLen {
		return nil, domain.NewRemoteAuthError(domain.ReasonWeakSecret, nil)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, domain.NewRemoteAuthError(domain.ReasonUnknown, err)
	}

	u := authUser{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: string(hash),
		Providers:    []string{domain.ProviderPassword},
		CreatedAt:    s.now(),
	}

	opCtx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()
	if _, err := s.users.InsertOne(opCtx, u); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.NewRemoteAuthError(domain.ReasonAccountExists, err)
		}
		return nil, remoteError(err)
	}

	ru := u.remote(domain.ProviderPassword)
	if err := d.bind(ctx, ru); err != nil {
		return nil, err
	}
	return ru, nil
}

// SignInWithPopup verifies the provider-signed ID token and signs in the
// account bound to its subject. An account that only has an email in common
// is linked when it has no password and no other subject for the provider.
func (d *deviceIdentity) SignInWithPopup(ctx context.Context, a domain.FederatedAssertion) (*domain.RemoteUser, error) {
	s := d.svc
	if strings.TrimSpace(a.IDToken) == "" {
		return nil, domain.NewRemoteAuthError(domain.ReasonPopupDismissed, nil)
	}
	if s.verifier == nil {
		return nil, domain.ErrUnsupportedOperation
	}
	provider := a.Provider
	if provider == "" {
		provider = domain.ProviderGoogle
	}
	claims, err := s.verifier.Verify(ctx, provider, a.IDToken)
	if err != nil {
		return nil, err
	}
	email := domain.NormalizeEmail(claims.Email)
	if err := s.validate.Var(email, "required,email"); err != nil {
		return nil, domain.NewRemoteAuthError(domain.ReasonMalformedEmail, err)
	}

	opCtx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	existing, err := s.findByEmail(opCtx, email)
	var rae *domain.RemoteAuthError
	switch {
	case errors.As(err, &rae) && rae.Reason == domain.ReasonNotFound:
		existing = nil
	case err != nil:
		return nil, err
	}

	var u *authUser
	if existing == nil {
		u, err = s.insertFederated(opCtx, email, provider, claims)
	} else {
		u, err = s.linkFederated(opCtx, existing, provider, claims)
	}
	if err != nil {
		return nil, err
	}

	ru := u.remote(provider)
	if err := d.bind(ctx, ru); err != nil {
		return nil, err
	}
	return ru, nil
}

func (s *IdentityService) insertFederated(ctx context.Context, email, provider string, a *domain.FederatedAssertion) (*authUser, error) {
	u := &authUser{
		ID:          uuid.NewString(),
		Email:       email,
		DisplayName: a.DisplayName,
		PhotoURL:    a.PhotoURL,
		Providers:   []string{provider},
		Subjects:    map[string]string{provider: a.Subject},
		CreatedAt:   s.now(),
	}
	if _, err := s.users.InsertOne(ctx, u); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.NewRemoteAuthError(domain.ReasonAccountExists, err)
		}
		return nil, remoteError(err)
	}
	return u, nil
}

func (s *IdentityService) linkFederated(ctx context.Context, u *authUser, provider string, a *domain.FederatedAssertion) (*authUser, error) {
	linked, err := linkDecision(u, provider, a.Subject)
	if err != nil {
		return nil, err
	}

	subjectKey := "subjects." + provider
	filter := bson.M{"_id": u.ID}
	set := bson.M{}
	if a.PhotoURL != "" {
		set["photo_url"] = a.PhotoURL
		u.PhotoURL = a.PhotoURL
	}
	if !linked {
		// guard against a password or another subject landing concurrently
		filter["password_hash"] = bson.M{"$exists": false}
		filter[subjectKey] = bson.M{"$exists": false}
		set[subjectKey] = a.Subject
	}
	if len(set) == 0 {
		return u, nil
	}
	update := bson.M{"$set": set}
	if !linked {
		update["$addToSet"] = bson.M{"providers": provider}
	}

	res, err := s.users.UpdateOne(ctx, filter, update)
	if err != nil {
		return nil, remoteError(err)
	}
	if res.MatchedCount == 0 {
		return nil, domain.NewRemoteAuthError(domain.ReasonAccountExists, nil)
	}
	return u, nil
}

// linkDecision reports whether u is already bound to subject for provider.
// It fails with account-exists when the subject may not be attached.
func linkDecision(u *authUser, provider, subject string) (bool, error) {
	if bound, ok := u.Subjects[provider]; ok {
		if bound == subject {
			return true, nil
		}
		return false, domain.NewRemoteAuthError(domain.ReasonAccountExists, nil)
	}
	if u.PasswordHash != "" || slices.Contains(u.Providers, domain.ProviderPassword) {
		return false, domain.NewRemoteAuthError(domain.ReasonAccountExists, nil)
	}
	return false, nil
}

func (d *deviceIdentity) SignOut(ctx context.Context) error {
	s := d.svc
	opCtx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := s.sessions.DeleteOne(opCtx, bson.M{"_id": d.deviceID}); err != nil {
		return remoteError(err)
	}
	s.broadcast(d.deviceID, nil)
	return nil
}

// SendPasswordResetEmail records a single-use reset token. Delivery is
// handled outside this service.
func (d *deviceIdentity) SendPasswordResetEmail(ctx context.Context, email string) error {
	s := d.svc
	email = domain.NormalizeEmail(email)
	if err := s.validate.Var(email, "required,email"); err != nil {
		return domain.NewRemoteAuthError(domain.ReasonMalformedEmail, err)
	}

	u, err := s.findByEmail(ctx, email)
	if err != nil {
		return err
	}

	opCtx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()
	reset := passwordReset{
		Token:     uuid.NewString(),
		UID:       u.ID,
		Email:     u.Email,
		ExpiresAt: s.now().Add(resetTokenTTL),
	}
	if _, err := s.resets.InsertOne(opCtx, reset); err != nil {
		return remoteError(err)
	}
	s.log.Info().Str("uid", u.ID).Msg("password reset issued")
	return nil
}

func (d *deviceIdentity) UpdateProfile(ctx context.Context, uid, displayName string) error {
	s := d.svc
	opCtx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := s.users.UpdateOne(opCtx, bson.M{"_id": uid}, bson.M{"$set": bson.M{"display_name": displayName}})
	if err != nil {
		return remoteError(err)
	}
	if res.MatchedCount == 0 {
		return domain.NewRemoteAuthError(domain.ReasonNotFound, nil)
	}
	return nil
}

// OnAuthStateChanged reports the device's persisted session immediately.
func (d *deviceIdentity) OnAuthStateChanged(ctx context.Context, fn func(*domain.RemoteUser)) (func(), error) {
	s := d.svc
	current, err := d.restore(ctx)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	id := s.nextID
	s.nextID++
	if s.listeners[d.deviceID] == nil {
		s.listeners[d.deviceID] = make(map[int]func(*domain.RemoteUser))
	}
	s.listeners[d.deviceID][id] = fn
	s.mu.Unlock()

	fn(current)

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.listeners[d.deviceID], id)
		if len(s.listeners[d.deviceID]) == 0 {
			delete(s.listeners, d.deviceID)
		}
	}, nil
}

func (d *deviceIdentity) restore(ctx context.Context) (*domain.RemoteUser, error) {
	s := d.svc
	opCtx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var sess authSession
	if err := s.sessions.FindOne(opCtx, bson.M{"_id": d.deviceID}).Decode(&sess); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, remoteError(err)
	}

	var u authUser
	if err := s.users.FindOne(opCtx, bson.M{"_id": sess.UID}).Decode(&u); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			// account removed since the device signed in
			return nil, nil
		}
		return nil, remoteError(err)
	}
	return u.remote(sess.Provider), nil
}

func (d *deviceIdentity) bind(ctx context.Context, u *domain.RemoteUser) error {
	s := d.svc
	opCtx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	sess := authSession{DeviceID: d.deviceID, UID: u.UID, Provider: u.Provider, SignedInAt: s.now()}
	opts := options.Replace().SetUpsert(true)
	if _, err := s.sessions.ReplaceOne(opCtx, bson.M{"_id": d.deviceID}, sess, opts); err != nil {
		return remoteError(err)
	}
	s.broadcast(d.deviceID, u)
	return nil
}

func (s *IdentityService) broadcast(deviceID string, u *domain.RemoteUser) {
	s.mu.Lock()
	fns := make([]func(*domain.RemoteUser), 0, len(s.listeners[deviceID]))
	for _, fn := range s.listeners[deviceID] {
		fns = append(fns, fn)
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn(u)
	}
}

func (s *IdentityService) findByEmail(ctx context.Context, email string) (*authUser, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var u authUser
	if err := s.users.FindOne(ctx, bson.M{"email": email}).Decode(&u); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.NewRemoteAuthError(domain.ReasonNotFound, nil)
		}
		return nil, remoteError(err)
	}
	return &u, nil
}

func (u *authUser) remote(provider string) *domain.RemoteUser {
	return &domain.RemoteUser{
		UID:         u.ID,
		Email:       u.Email,
		DisplayName: u.DisplayName,
		PhotoURL:    u.PhotoURL,
		Provider:    provider,
	}
}

// remoteError classifies driver errors into remote auth reasons.
func remoteError(err error) error {
	if mongo.IsNetworkError(err) || mongo.IsTimeout(err) || errors.Is(err, context.DeadlineExceeded) {
		return domain.NewRemoteAuthError(domain.ReasonNetworkFailure, err)
	}
	return domain.NewRemoteAuthError(domain.ReasonUnknown, err)
}
