package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/careerguide/portal/internal/core/domain"
	"github.com/careerguide/portal/internal/core/ports"
)

const (
	opSetDisplayName = "set-display-name"
	opWriteProfile   = "write-profile"
	opTouchLastLogin = "touch-last-login"
	opCreateProfile  = "create-profile"
	opReadProfile    = "read-profile"
)

// SessionDeps wires a SessionManager to its backends.
type SessionDeps struct {
	Mode       domain.BackendMode
	Local      *CredentialStore
	Remote     ports.IdentityProvider
	Profiles   ports.ProfileStore
	Feedback   ports.Feedback
	Production bool
	Log        zerolog.Logger
}

// SessionManager owns the current session of one device and routes every
// call to the backend selected at startup.
type SessionManager struct {
	mode       domain.BackendMode
	local      *CredentialStore
	remote     ports.IdentityProvider
	profiles   ports.ProfileStore
	feedback   ports.Feedback
	production bool
	log        zerolog.Logger
	now        func() time.Time

	mu        sync.Mutex
	current   *domain.Session
	pending   bool
	listeners map[int]func(*domain.Session)
	nextID    int
	stopAuth  func()
}

// NewSessionManager validates deps for the chosen mode.
func NewSessionManager(d SessionDeps) (*SessionManager, error) {
	switch d.Mode {
	case domain.BackendRemote:
		if d.Remote == nil {
			return nil, domain.ErrRemoteUnavailable
		}
	case domain.BackendLocal:
		if d.Local == nil {
			return nil, errors.New("session manager: local mode requires a credential store")
		}
	default:
		return nil, fmt.Errorf("session manager: %w: mode %q", domain.ErrInvalidInput, d.Mode)
	}

	fb := d.Feedback
	if fb == nil {
		fb = NewLogFeedback(d.Log)
	}

	return &SessionManager{
		mode:       d.Mode,
		local:      d.Local,
		remote:     d.Remote,
		profiles:   d.Profiles,
		feedback:   fb,
		production: d.Production,
		log:        d.Log,
		now:        func() time.Time { return time.Now().UTC() },
		listeners:  make(map[int]func(*domain.Session)),
	}, nil
}

func (m *SessionManager) Mode() domain.BackendMode { return m.mode }

// Init restores a prior session. With none the manager stays signed out.
func (m *SessionManager) Init(ctx context.Context) error {
	if m.mode == domain.BackendLocal {
		session, err := m.local.CurrentUser(ctx)
		if err != nil {
			return fmt.Errorf("init: %w", err)
		}
		m.setSession(session)
		return nil
	}

	stop, err := m.remote.OnAuthStateChanged(ctx, m.applyRemoteState)
	if err != nil {
		return fmt.Errorf("init: %w", err)
	}
	m.mu.Lock()
	m.stopAuth = stop
	m.mu.Unlock()
	return nil
}

// Close stops the remote auth-state listener.
func (m *SessionManager) Close() {
	m.mu.Lock()
	stop := m.stopAuth
	m.stopAuth = nil
	m.mu.Unlock()
	if stop != nil {
		stop()
	}
}

func (m *SessionManager) applyRemoteState(u *domain.RemoteUser) {
	if u == nil {
		m.setSession(nil)
		return
	}
	m.mu.Lock()
	cur, pending := m.current, m.pending
	m.mu.Unlock()
	// an in-flight sign in sets the session itself, with the caller's remember flag
	if pending || (cur != nil && cur.UserID == u.UID) {
		return
	}
	m.setSession(m.sessionFromRemote(u, false))
}

// SignUp creates an account and signs it in.
func (m *SessionManager) SignUp(ctx context.Context, in ports.SignUpInput) (*ports.AuthResult, error) {
	if strings.TrimSpace(in.Email) == "" || in.Password == "" || strings.TrimSpace(in.Name) == "" {
		return nil, fmt.Errorf("sign up: %w", domain.ErrInvalidInput)
	}
	done, err := m.begin(ctx)
	if err != nil {
		return nil, err
	}
	defer done()

	var res *ports.AuthResult
	if m.mode == domain.BackendLocal {
		res, err = m.localSignUp(ctx, in)
	} else {
		res, err = m.remoteSignUp(ctx, in)
	}
	return m.finish(ctx, "sign_up", res, err)
}

func (m *SessionManager) localSignUp(ctx context.Context, in ports.SignUpInput) (*ports.AuthResult, error) {
	if _, err := m.local.SignUp(ctx, in); err != nil {
		return nil, err
	}
	session, err := m.local.SignIn(ctx, in.Email, in.Password, false)
	if err != nil {
		return nil, fmt.Errorf("sign up: sign in new account: %w", err)
	}
	m.setSession(session)
	return &ports.AuthResult{Session: session, Message: "Account created successfully!"}, nil
}

func (m *SessionManager) remoteSignUp(ctx context.Context, in ports.SignUpInput) (*ports.AuthResult, error) {
	user, err := m.remote.CreateUserWithEmailAndPassword(ctx, strings.TrimSpace(in.Email), in.Password)
	if err != nil {
		return nil, err
	}

	res := &ports.AuthResult{Message: "Account created successfully!"}
	name := strings.TrimSpace(in.Name)

	if err := m.remote.UpdateProfile(ctx, user.UID, name); err != nil {
		res.Warnings = append(res.Warnings, m.warn(opSetDisplayName, user.UID, err))
	} else {
		user.DisplayName = name
	}

	if m.profiles != nil {
		now := m.now()
		userType := in.UserType
		if userType == "" {
			userType = domain.UserTypeStudent
		}
		doc := &domain.ProfileDocument{
			UID:         user.UID,
			Email:       user.Email,
			Name:        name,
			UserType:    userType,
			Phone:       in.Phone,
			Grade:       in.Grade,
			Interests:   in.Interests,
			Location:    in.Location,
			Provider:    domain.ProviderPassword,
			CreatedAt:   now,
			LastLoginAt: now,
		}
		if err := m.profiles.Set(ctx, doc); err != nil {
			res.Warnings = append(res.Warnings, m.warn(opWriteProfile, user.UID, err))
		}
	}

	session := m.sessionFromRemote(user, false)
	session.Name = name
	session.UserType = in.UserType
	if session.UserType == "" {
		session.UserType = domain.UserTypeStudent
	}
	m.setSession(session)
	res.Session = session
	return res, nil
}

// SignIn authenticates with email and secret.
func (m *SessionManager) SignIn(ctx context.Context, email, password string, remember bool) (*ports.AuthResult, error) {
	if strings.TrimSpace(email) == "" || password == "" {
		return nil, fmt.Errorf("sign in: %w", domain.ErrInvalidInput)
	}
	done, err := m.begin(ctx)
	if err != nil {
		return nil, err
	}
	defer done()

	var res *ports.AuthResult
	if m.mode == domain.BackendLocal {
		var session *domain.Session
		session, err = m.local.SignIn(ctx, email, password, remember)
		if err == nil {
			m.setSession(session)
			res = &ports.AuthResult{Session: session, Message: "Signed in successfully!"}
		}
	} else {
		res, err = m.remoteSignIn(ctx, email, password, remember)
	}
	return m.finish(ctx, "sign_in", res, err)
}

func (m *SessionManager) remoteSignIn(ctx context.Context, email, password string, remember bool) (*ports.AuthResult, error) {
	user, err := m.remote.SignInWithEmailAndPassword(ctx, strings.TrimSpace(email), password)
	if err != nil {
		return nil, err
	}

	res := &ports.AuthResult{Message: "Signed in successfully!"}
	if m.profiles != nil {
		if err := m.profiles.TouchLastLogin(ctx, user.UID); err != nil {
			res.Warnings = append(res.Warnings, m.warn(opTouchLastLogin, user.UID, err))
		}
	}

	session := m.sessionFromRemote(user, remember)
	m.setSession(session)
	res.Session = session
	return res, nil
}

// SignInWithFederatedProvider completes a federated sign-in. The fallback
// backend does not support it.
func (m *SessionManager) SignInWithFederatedProvider(ctx context.Context, assertion domain.FederatedAssertion) (*ports.AuthResult, error) {
	if m.mode == domain.BackendLocal {
		m.notify(ctx, domain.UserMessage(domain.ErrUnsupportedOperation), ports.SeverityWarning)
		return nil, domain.ErrUnsupportedOperation
	}
	done, err := m.begin(ctx)
	if err != nil {
		return nil, err
	}
	defer done()

	res, err := m.remoteFederated(ctx, assertion)
	return m.finish(ctx, "federated_sign_in", res, err)
}

func (m *SessionManager) remoteFederated(ctx context.Context, assertion domain.FederatedAssertion) (*ports.AuthResult, error) {
	user, err := m.remote.SignInWithPopup(ctx, assertion)
	if err != nil {
		return nil, err
	}

	res := &ports.AuthResult{Message: "Signed in successfully!"}
	if m.profiles != nil {
		_, getErr := m.profiles.Get(ctx, user.UID)
		switch {
		case errors.Is(getErr, domain.ErrNotFound):
			now := m.now()
			doc := &domain.ProfileDocument{
				UID:         user.UID,
				Email:       user.Email,
				Name:        user.DisplayName,
				UserType:    domain.UserTypeStudent,
				PhotoURL:    user.PhotoURL,
				Provider:    domain.ProviderGoogle,
				CreatedAt:   now,
				LastLoginAt: now,
			}
			if err := m.profiles.Set(ctx, doc); err != nil {
				res.Warnings = append(res.Warnings, m.warn(opCreateProfile, user.UID, err))
			}
		case getErr != nil:
			res.Warnings = append(res.Warnings, m.warn(opReadProfile, user.UID, getErr))
		default:
			if err := m.profiles.TouchLastLogin(ctx, user.UID); err != nil {
				res.Warnings = append(res.Warnings, m.warn(opTouchLastLogin, user.UID, err))
			}
		}
	}

	session := m.sessionFromRemote(user, false)
	m.setSession(session)
	res.Session = session
	return res, nil
}

// SignOut clears the session. Signing out while signed out is a no-op.
func (m *SessionManager) SignOut(ctx context.Context) error {
	var err error
	if m.mode == domain.BackendLocal {
		err = m.local.SignOut(ctx)
	} else {
		err = m.remote.SignOut(ctx)
	}
	if err != nil {
		m.notify(ctx, domain.UserMessage(err), ports.SeverityError)
		return fmt.Errorf("sign out: %w", err)
	}
	m.setSession(nil)
	m.notify(ctx, "Signed out successfully", ports.SeverityInfo)
	return nil
}

// ResetPassword starts a reset. The fallback backend only acknowledges.
func (m *SessionManager) ResetPassword(ctx context.Context, email string) (*ports.ResetAck, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, fmt.Errorf("reset password: %w", domain.ErrInvalidInput)
	}

	if m.mode == domain.BackendRemote {
		if err := m.remote.SendPasswordResetEmail(ctx, email); err != nil {
			m.notify(ctx, domain.UserMessage(err), ports.SeverityError)
			return nil, err
		}
		ack := &ports.ResetAck{Message: "Password reset email sent! Check your inbox."}
		m.notify(ctx, ack.Message, ports.SeveritySuccess)
		return ack, nil
	}

	if err := m.local.ResetPassword(ctx, email); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			m.notify(ctx, "No account found with this email address", ports.SeverityError)
		}
		return nil, err
	}

	ack := &ports.ResetAck{
		Message: "Password reset is not available offline. Please contact support to recover your account.",
	}
	if !m.production {
		ack.Diagnostic = "local backend: account exists; stored secrets are hashed and cannot be recovered"
	}
	m.log.Warn().Str("email", email).Msg("password reset requested on local backend")
	m.notify(ctx, ack.Message, ports.SeverityInfo)
	return ack, nil
}

// UpdateProfile applies patch to the signed-in user.
func (m *SessionManager) UpdateProfile(ctx context.Context, patch ports.ProfilePatch) (*ports.AuthResult, error) {
	current := m.CurrentSession()
	if current == nil {
		return nil, domain.ErrUnauthenticated
	}

	if m.mode == domain.BackendLocal {
		session, err := m.local.UpdateProfile(ctx, patch)
		if err != nil {
			return nil, err
		}
		m.setSession(session)
		return &ports.AuthResult{Session: session, Message: "Profile updated successfully!"}, nil
	}

	if m.profiles != nil {
		if err := m.profiles.Update(ctx, current.UserID, patch); err != nil {
			return nil, fmt.Errorf("update profile: %w", err)
		}
	}

	res := &ports.AuthResult{Message: "Profile updated successfully!"}
	updated := *current
	if current.Profile != nil {
		p := *current.Profile
		updated.Profile = &p
	} else {
		updated.Profile = &domain.Profile{}
	}
	if patch.Name != nil && strings.TrimSpace(*patch.Name) != "" {
		name := strings.TrimSpace(*patch.Name)
		if err := m.remote.UpdateProfile(ctx, current.UserID, name); err != nil {
			res.Warnings = append(res.Warnings, m.warn(opSetDisplayName, current.UserID, err))
		}
		updated.Name = name
	}
	if patch.Phone != nil {
		updated.Profile.Phone = *patch.Phone
	}
	if patch.Grade != nil {
		updated.Profile.Grade = *patch.Grade
	}
	if patch.Interests != nil {
		updated.Profile.Interests = append([]string(nil), patch.Interests...)
	}
	if patch.Location != nil {
		updated.Profile.Location = *patch.Location
	}

	m.setSession(&updated)
	res.Session = &updated
	return res, nil
}

// CurrentSession returns a copy of the in-memory session, or nil.
func (m *SessionManager) CurrentSession() *domain.Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.current == nil {
		return nil
	}
	s := *m.current
	return &s
}

func (m *SessionManager) IsAuthenticated() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current != nil
}

// RequireSession returns false when the caller must be sent to the login page.
func (m *SessionManager) RequireSession() (*domain.Session, bool) {
	s := m.CurrentSession()
	return s, s != nil
}

// CurrentUserData merges the session with the stored profile document. A
// failed read falls back to the session fields.
func (m *SessionManager) CurrentUserData(ctx context.Context) (*ports.UserData, error) {
	session := m.CurrentSession()
	if session == nil {
		return nil, domain.ErrUnauthenticated
	}

	if m.mode == domain.BackendRemote && m.profiles != nil {
		doc, err := m.profiles.Get(ctx, session.UserID)
		if err == nil {
			return &ports.UserData{Session: session, Profile: doc}, nil
		}
		m.log.Warn().Err(err).Str("user_id", session.UserID).Msg("profile read failed, using session data")
	}
	return &ports.UserData{Session: session, Profile: profileFromSession(session)}, nil
}

// ListUsers is only available on the fallback backend.
func (m *SessionManager) ListUsers(ctx context.Context) ([]domain.UserSummary, error) {
	if m.mode != domain.BackendLocal {
		return nil, domain.ErrUnsupportedOperation
	}
	return m.local.ListUsers(ctx)
}

// OnChange registers fn to run after every session transition.
func (m *SessionManager) OnChange(fn func(*domain.Session)) func() {
	m.mu.Lock()
	id := m.nextID
	m.nextID++
	m.listeners[id] = fn
	m.mu.Unlock()

	return func() {
		m.mu.Lock()
		delete(m.listeners, id)
		m.mu.Unlock()
	}
}

// begin marks an auth call in flight. A second call on the same manager
// fails fast until the first returns.
func (m *SessionManager) begin(ctx context.Context) (func(), error) {
	m.mu.Lock()
	if m.pending {
		m.mu.Unlock()
		return nil, domain.ErrAuthInProgress
	}
	m.pending = true
	m.mu.Unlock()

	fb := m.feedbackFor(ctx)
	fb.ShowLoading(true)
	return func() {
		fb.ShowLoading(false)
		m.mu.Lock()
		m.pending = false
		m.mu.Unlock()
	}, nil
}

func (m *SessionManager) finish(ctx context.Context, op string, res *ports.AuthResult, err error) (*ports.AuthResult, error) {
	if err != nil {
		m.log.Info().Err(err).Str("op", op).Str("mode", string(m.mode)).Msg("auth operation failed")
		m.notify(ctx, domain.UserMessage(err), ports.SeverityError)
		return nil, err
	}
	if len(res.Warnings) > 0 {
		m.notify(ctx, res.Message, ports.SeverityWarning)
	} else {
		m.notify(ctx, res.Message, ports.SeveritySuccess)
	}
	return res, nil
}

func (m *SessionManager) warn(op, uid string, err error) domain.NonCriticalWriteFailure {
	m.log.Warn().Err(err).Str("op", op).Str("user_id", uid).Msg("non-critical write failed")
	return domain.NonCriticalWriteFailure{Op: op, Err: err}
}

func (m *SessionManager) notify(ctx context.Context, msg string, sev ports.Severity) {
	m.feedbackFor(ctx).ShowNotification(msg, sev)
}

func (m *SessionManager) feedbackFor(ctx context.Context) ports.Feedback {
	if fb := FeedbackFromContext(ctx); fb != nil {
		return fb
	}
	return m.feedback
}

func (m *SessionManager) setSession(s *domain.Session) {
	m.mu.Lock()
	prev := m.current
	m.current = s
	fns := make([]func(*domain.Session), 0, len(m.listeners))
	for _, fn := range m.listeners {
		fns = append(fns, fn)
	}
	m.mu.Unlock()

	if prev == nil && s == nil {
		return
	}
	for _, fn := range fns {
		if s == nil {
			fn(nil)
			continue
		}
		cp := *s
		fn(&cp)
	}
}

func (m *SessionManager) sessionFromRemote(u *domain.RemoteUser, remember bool) *domain.Session {
	name := u.DisplayName
	if name == "" {
		name = u.Email
	}
	provider := u.Provider
	if provider == "" {
		provider = domain.ProviderPassword
	}
	return &domain.Session{
		UserID:     u.UID,
		Email:      u.Email,
		Name:       name,
		PhotoURL:   u.PhotoURL,
		Provider:   provider,
		IssuedAt:   m.now(),
		RememberMe: remember,
	}
}

func profileFromSession(s *domain.Session) *domain.ProfileDocument {
	doc := &domain.ProfileDocument{
		UID:      s.UserID,
		Email:    s.Email,
		Name:     s.Name,
		UserType: s.UserType,
		PhotoURL: s.PhotoURL,
		Provider: s.Provider,
	}
	if s.Profile != nil {
		doc.Phone = s.Profile.Phone
		doc.Grade = s.Profile.Grade
		doc.Interests = s.Profile.Interests
		doc.Location = s.Profile.Location
	}
	return doc
}
