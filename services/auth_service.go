package services

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"time"

	"casa_portal_go/apiclient"
	"casa_portal_go/models"
	"casa_portal_go/session"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

// MsgNoOrganization is shown when the profile has no organization; it is not retried
const MsgNoOrganization = "No organization assigned to this user. Please contact your administrator."

var (
	// ErrNoOrganization marks a profile without an organization
	ErrNoOrganization = errors.New("no organization assigned to user")
	// ErrNotAuthenticated is returned when no session is present
	ErrNotAuthenticated = errors.New("not authenticated")
)

// AuthState is the session lifecycle stage
type AuthState string

const (
	AuthStateAnonymous      AuthState = "anonymous"
	AuthStateAuthenticating AuthState = "authenticating"
	AuthStateAuthenticated  AuthState = "authenticated"
	AuthStateRefreshing     AuthState = "refreshing"
	AuthStateInvalid        AuthState = "invalid"
)

// JWT endpoints in the generic namespace
const (
	tokenPath         = "/jwt-auth/v1/token"
	tokenRefreshPath  = "/jwt-auth/v1/token/refresh"
	tokenValidatePath = "/jwt-auth/v1/token/validate"
)

// AuthService signs users in against the JWT endpoint and keeps the session in the store
type AuthService struct {
	BaseService
	store session.Store

	mu    sync.Mutex
	state AuthState
}

// NewAuthService creates an auth service over the client's session store
func NewAuthService(api *apiclient.Client, logger *zap.Logger) *AuthService {
	s := &AuthService{BaseService: NewBaseService(api, logger), store: api.Session()}
	if s.store == nil {
		s.store = session.NewMemoryStore(nil)
	}
	if s.store.Get(session.KeyAuthToken) != "" {
		s.state = AuthStateAuthenticated
	} else {
		s.state = AuthStateAnonymous
	}
	return s
}

// State returns the current lifecycle stage
func (s *AuthService) State() AuthState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *AuthService) setState(state AuthState) {
	s.mu.Lock()
	s.state = state
	s.mu.Unlock()
}

type tokenResponse struct {
	Token           string `json:"token"`
	RefreshToken    string `json:"refresh_token"`
	UserEmail       string `json:"user_email"`
	UserNicename    string `json:"user_nicename"`
	UserDisplayName string `json:"user_display_name"`
}

// LoginUsernames returns the usernames tried in order: the email, its local part,
// then the organization slug. Duplicates and blanks are skipped.
func LoginUsernames(creds models.Credentials) []string {
	var names []string
	add := func(name string) {
		name = strings.TrimSpace(name)
		if name == "" {
			return
		}
		for _, existing := range names {
			if existing == name {
				return
			}
		}
		names = append(names, name)
	}

	add(creds.Email)
	if at := strings.Index(creds.Email, "@"); at > 0 {
		add(creds.Email[:at])
	}
	add(creds.OrganizationSlug)
	return names
}

// Login issues a token, resolves profile and organization, and persists the session.
// When every username attempt fails the error of the first attempt is returned.
func (s *AuthService) Login(ctx context.Context, creds models.Credentials) (res apiclient.Result[models.Session]) {
	const fallback = "Login failed"
	defer guard(s.logger, "auth.login", &res, fallback)

	s.setState(AuthStateAuthenticating)

	token, firstErr := s.requestToken(ctx, creds)
	if token == nil {
		s.setState(AuthStateAnonymous)
		if firstErr == "" {
			firstErr = fallback
		}
		return apiclient.Fail[models.Session](firstErr)
	}

	// the profile and organization calls need the bearer token
	s.store.Set(session.KeyAuthToken, token.Token)

	user, org, err := s.resolveIdentity(ctx, token, creds)
	if err != nil {
		s.store.Clear(session.AllKeys...)
		s.setState(AuthStateAnonymous)
		if errors.Is(err, ErrNoOrganization) {
			return apiclient.Fail[models.Session](MsgNoOrganization)
		}
		return apiclient.Fail[models.Session](err.Error())
	}

	sess := models.Session{Token: token.Token, RefreshToken: token.RefreshToken, User: user, Organization: org}
	s.persist(sess)
	s.setState(AuthStateAuthenticated)
	s.logger.Info("user signed in", zap.String("user_id", user.ID), zap.String("organization_id", org.ID))
	return apiclient.OK(sess)
}

func (s *AuthService) requestToken(ctx context.Context, creds models.Credentials) (*tokenResponse, string) {
	var firstErr string
	for i, username := range LoginUsernames(creds) {
		body := map[string]string{"username": username, "password": creds.Password}
		resp := s.api.WP().Post(ctx, tokenPath, body, apiclient.WithoutUnauthorizedRedirect())

		var token tokenResponse
		if resp.Success {
			if err := json.Unmarshal(resp.Data, &token); err != nil || token.Token == "" {
				token = tokenResponse{}
				_ = json.Unmarshal(UnwrapObject(resp.Data), &token)
			}
			if token.Token != "" {
				return &token, ""
			}
			resp.Error = "Invalid response from authentication server"
		}

		if i == 0 {
			firstErr = resp.ErrorOr("Invalid credentials")
		}
		s.logger.Debug("login attempt failed", zap.Int("attempt", i+1), zap.String("error", resp.Error))
	}
	return nil, firstErr
}

// resolveIdentity loads the profile then the organizations list. If both calls fail
// without reaching the backend, a minimal identity is built from the token claims.
func (s *AuthService) resolveIdentity(ctx context.Context, token *tokenResponse, creds models.Credentials) (*models.User, *models.Organization, error) {
	profileResp := s.api.Casa().Get(ctx, "/users/me")
	profileUnreachable := !profileResp.Success && profileResp.Status == 0
	if !profileResp.Success && !profileUnreachable {
		return nil, nil, errors.New(profileResp.ErrorOr("Failed to load user profile"))
	}

	var user *models.User
	if profileResp.Success {
		u, err := decodeNested[models.User](profileResp.Data, "user")
		if err != nil {
			return nil, nil, errors.New("Failed to load user profile")
		}
		if !u.HasOrganization() {
			return nil, nil, ErrNoOrganization
		}
		user = &u
	}

	orgsResp := s.api.Casa().Get(ctx, "/organizations")
	orgsUnreachable := !orgsResp.Success && orgsResp.Status == 0

	if profileUnreachable && orgsUnreachable {
		s.logger.Warn("profile and organization unavailable, using token claims")
		u, o := identityFromClaims(token, creds)
		return u, o, nil
	}
	if user == nil {
		user, _ = identityFromClaims(token, creds)
	}

	org := pickOrganization(orgsResp, user.OrganizationID)
	if org == nil {
		org = &models.Organization{ID: user.OrganizationID, Slug: creds.OrganizationSlug, Name: creds.OrganizationSlug}
	}
	if user.OrganizationID == "" {
		user.OrganizationID = org.ID
	}
	return user, org, nil
}

func pickOrganization(resp apiclient.Response, organizationID string) *models.Organization {
	if !resp.Success {
		return nil
	}
	orgs := UnwrapCollection[models.Organization](resp.Data, "organizations")
	if len(orgs) == 0 {
		if single, err := decodeNested[models.Organization](resp.Data, "organization"); err == nil && single.ID != "" {
			orgs = append(orgs, single)
		}
	}
	for i := range orgs {
		if orgs[i].ID == organizationID {
			return &orgs[i]
		}
	}
	if len(orgs) > 0 {
		return &orgs[0]
	}
	return nil
}

// decodeNested unwraps the envelope and, when present, descends into key
func decodeNested[T any](raw json.RawMessage, key string) (T, error) {
	inner := UnwrapObject(raw)
	if obj, ok := asObject(inner); ok {
		if nested, found := obj[key]; found && !isNull(nested) {
			inner = nested
		}
	}
	var v T
	err := json.Unmarshal(inner, &v)
	return v, err
}

// identityFromClaims reads the token without verifying it; the backend verifies on every call
func identityFromClaims(token *tokenResponse, creds models.Credentials) (*models.User, *models.Organization) {
	claims := jwt.MapClaims{}
	_, _, _ = jwt.NewParser().ParseUnverified(token.Token, claims)

	lookup := func(keys ...string) string {
		for _, k := range keys {
			if v := claimString(claims, k); v != "" {
				return v
			}
		}
		return ""
	}

	user := &models.User{
		ID:             lookup("data.user.id", "user_id", "sub"),
		Email:          firstNonBlank(token.UserEmail, creds.Email),
		FirstName:      token.UserDisplayName,
		Roles:          claimStrings(claims, "roles"),
		OrganizationID: lookup("data.user.organization_id", "organization_id", "tenant_id"),
		IsActive:       true,
	}
	if user.FirstName == "" {
		user.FirstName = token.UserNicename
	}
	if user.Roles == nil {
		user.Roles = []string{}
	}

	org := &models.Organization{
		ID:     user.OrganizationID,
		Slug:   creds.OrganizationSlug,
		Name:   creds.OrganizationSlug,
		Status: models.OrganizationStatusActive,
	}
	return user, org
}

// claimString resolves dotted paths such as data.user.id
func claimString(claims jwt.MapClaims, path string) string {
	var current interface{} = map[string]interface{}(claims)
	for _, part := range strings.Split(path, ".") {
		m, ok := current.(map[string]interface{})
		if !ok {
			return ""
		}
		current = m[part]
	}
	switch v := current.(type) {
	case nil:
		return ""
	case map[string]interface{}, []interface{}:
		return ""
	default:
		return scalarString(v)
	}
}

func claimStrings(claims jwt.MapClaims, key string) []string {
	raw, ok := claims[key].([]interface{})
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, r := range raw {
		if s, ok := r.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func (s *AuthService) persist(sess models.Session) {
	s.store.Set(session.KeyAuthToken, sess.Token)
	if sess.RefreshToken != "" {
		s.store.Set(session.KeyRefreshToken, sess.RefreshToken)
	}
	if data, err := json.Marshal(sess.User); err == nil {
		s.store.Set(session.KeyUserData, string(data))
	}
	if data, err := json.Marshal(sess.Organization); err == nil {
		s.store.Set(session.KeyOrganizationData, string(data))
	}
	tenantID := sess.Organization.ID
	if tenantID == "" {
		tenantID = sess.User.OrganizationID
	}
	if tenantID != "" {
		s.store.Set(session.KeyTenantID, tenantID)
	}
}

// Logout clears every session key
func (s *AuthService) Logout() {
	s.store.Clear(session.AllKeys...)
	s.setState(AuthStateAnonymous)
}

// RefreshToken exchanges the refresh token for a new access token.
// On failure the session is invalidated.
func (s *AuthService) RefreshToken(ctx context.Context) (res apiclient.Result[string]) {
	const fallback = "Failed to refresh token"
	defer guard(s.logger, "auth.refresh", &res, fallback)

	refresh := s.store.Get(session.KeyRefreshToken)
	if refresh == "" {
		return apiclient.Fail[string]("No refresh token available")
	}

	s.setState(AuthStateRefreshing)
	resp := s.api.WP().Post(ctx, tokenRefreshPath, map[string]string{"refresh_token": refresh}, apiclient.WithoutUnauthorizedRedirect())

	var token tokenResponse
	if resp.Success {
		_ = json.Unmarshal(resp.Data, &token)
		if token.Token == "" {
			_ = json.Unmarshal(UnwrapObject(resp.Data), &token)
		}
	}
	if token.Token == "" {
		s.store.Clear(session.UnauthorizedKeys...)
		s.setState(AuthStateInvalid)
		return apiclient.Fail[string](resp.ErrorOr(fallback))
	}

	s.store.Set(session.KeyAuthToken, token.Token)
	if token.RefreshToken != "" {
		s.store.Set(session.KeyRefreshToken, token.RefreshToken)
	}
	s.setState(AuthStateAuthenticated)
	return apiclient.OK(token.Token)
}

// ValidateToken checks the token locally for expiry, then asks the backend
func (s *AuthService) ValidateToken(ctx context.Context) (res apiclient.Result[bool]) {
	const fallback = "Failed to validate token"
	defer guard(s.logger, "auth.validate", &res, fallback)

	token := s.store.Get(session.KeyAuthToken)
	if token == "" {
		return apiclient.OK(false)
	}
	if TokenExpired(token, time.Now()) {
		return apiclient.OK(false)
	}

	resp := s.api.WP().Post(ctx, tokenValidatePath, nil)
	if !resp.Success {
		if resp.Status == 0 {
			return apiclient.Fail[bool](resp.ErrorOr(fallback))
		}
		return apiclient.OK(false)
	}
	return apiclient.OK(true)
}

// TokenExpired reports whether the token carries an exp claim in the past.
// Tokens that cannot be parsed are left to the backend to judge.
func TokenExpired(token string, now time.Time) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return now.After(exp.Time)
}

// CurrentUser decodes the user stored in the session
func (s *AuthService) CurrentUser() *models.User {
	raw := s.store.Get(session.KeyUserData)
	if raw == "" {
		return nil
	}
	var u models.User
	if err := json.Unmarshal([]byte(raw), &u); err != nil {
		return nil
	}
	return &u
}

// CurrentOrganization decodes the organization stored in the session
func (s *AuthService) CurrentOrganization() *models.Organization {
	raw := s.store.Get(session.KeyOrganizationData)
	if raw == "" {
		return nil
	}
	var o models.Organization
	if err := json.Unmarshal([]byte(raw), &o); err != nil {
		return nil
	}
	return &o
}

// CurrentSession assembles the stored session, or returns ErrNotAuthenticated
func (s *AuthService) CurrentSession() (*models.Session, error) {
	sess := &models.Session{
		Token:        s.store.Get(session.KeyAuthToken),
		RefreshToken: s.store.Get(session.KeyRefreshToken),
		User:         s.CurrentUser(),
		Organization: s.CurrentOrganization(),
	}
	if !sess.IsValid() {
		return nil, ErrNotAuthenticated
	}
	return sess, nil
}

// IsAuthenticated reports a stored, unexpired token with a user
func (s *AuthService) IsAuthenticated() bool {
	token := s.store.Get(session.KeyAuthToken)
	if token == "" || TokenExpired(token, time.Now()) {
		return false
	}
	return s.CurrentUser() != nil
}

// HasPermission checks the current user against the role table
func (s *AuthService) HasPermission(permission Permission) bool {
	return HasPermission(s.CurrentUser(), permission)
}

// CanAccessOrganization checks the current user's access to an organization
func (s *AuthService) CanAccessOrganization(organizationID string) bool {
	return CanAccessOrganization(s.CurrentUser(), organizationID)
}
