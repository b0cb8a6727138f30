package auth

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rjimenez-dev/runclub/config"
	"github.com/rjimenez-dev/runclub/internal/user"
	"github.com/rjimenez-dev/runclub/pkg/token"
	"github.com/rjimenez-dev/runclub/utils"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// ---------------------------------------------------------------------------
// Stub repository
// ---------------------------------------------------------------------------

type stubAuthRepo struct {
	users         map[string]*user.User // keyed by email
	refreshTokens map[string]*user.RefreshToken
	nextID        uint
}

func newStubAuthRepo() *stubAuthRepo {
	return &stubAuthRepo{
		users:         make(map[string]*user.User),
		refreshTokens: make(map[string]*user.RefreshToken),
		nextID:        1,
	}
}

func (r *stubAuthRepo) CreateUser(u *user.User) error {
	if _, exists := r.users[u.Email]; exists {
		return gorm.ErrDuplicatedKey
	}
	u.ID = r.nextID
	r.nextID++
	clone := *u
	r.users[u.Email] = &clone
	return nil
}

func (r *stubAuthRepo) GetUserByEmail(email string) (*user.User, error) {
	u, ok := r.users[email]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *stubAuthRepo) GetUserByID(id uint) (*user.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			clone := *u
			return &clone, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubAuthRepo) UpdateUser(u *user.User) error {
	r.users[u.Email] = u
	return nil
}

func (r *stubAuthRepo) SaveRefreshToken(rt *user.RefreshToken) error {
	clone := *rt
	r.refreshTokens[rt.Token] = &clone
	return nil
}

func (r *stubAuthRepo) GetRefreshToken(tokenString string) (*user.RefreshToken, error) {
	rt, ok := r.refreshTokens[tokenString]
	if !ok || rt.Revoked {
		return nil, gorm.ErrRecordNotFound
	}
	clone := *rt
	return &clone, nil
}

func (r *stubAuthRepo) InvalidateRefreshToken(tokenString string) error {
	if rt, ok := r.refreshTokens[tokenString]; ok {
		rt.Revoked = true
	}
	return nil
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.JWT.AccessTokenSecret = "test-access-secret"
	cfg.JWT.AccessTokenExpiryMinutes = 15
	cfg.JWT.RefreshTokenSecret = "test-refresh-secret"
	cfg.JWT.RefreshTokenExpiryDays = 7
	return cfg
}

func authContext(t *testing.T, body interface{}) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	var buf bytes.Buffer
	require.NoError(t, json.NewEncoder(&buf).Encode(body))
	c.Request = httptest.NewRequest(http.MethodPost, "/api/auth", &buf)
	c.Request.Header.Set("Content-Type", "application/json")
	return c, w
}

func registerUser(t *testing.T, ac *AuthController, email, password string) AuthResponse {
	t.Helper()
	c, w := authContext(t, RegisterRequest{Email: email, Password: password, FullName: "Maria Quispe"})
	ac.Register(c)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp AuthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

// ---------------------------------------------------------------------------
// Register
// ---------------------------------------------------------------------------

func TestRegister_CreatesUserWithHashedPassword(t *testing.T) {
	repo := newStubAuthRepo()
	ac := NewAuthController(repo, testConfig())

	resp := registerUser(t, ac, "Maria@Example.COM", "secret123")

	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, "maria@example.com", resp.User.Email, "email is normalized to lowercase")

	stored, err := repo.GetUserByEmail("maria@example.com")
	require.NoError(t, err)
	assert.NotEqual(t, "secret123", stored.Password, "password must never be stored in the clear")
	assert.True(t, utils.CheckPassword(stored.Password, "secret123"))
}

func TestRegister_DuplicateEmail(t *testing.T) {
	repo := newStubAuthRepo()
	ac := NewAuthController(repo, testConfig())
	registerUser(t, ac, "maria@example.com", "secret123")

	c, w := authContext(t, RegisterRequest{Email: "maria@example.com", Password: "different1", FullName: "Impostor"})
	ac.Register(c)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Len(t, repo.users, 1)
}

func TestRegister_BlankNameGetsDefault(t *testing.T) {
	repo := newStubAuthRepo()
	ac := NewAuthController(repo, testConfig())

	c, w := authContext(t, RegisterRequest{Email: "jose@example.com", Password: "secret123", FullName: "   "})
	ac.Register(c)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	stored, err := repo.GetUserByEmail("jose@example.com")
	require.NoError(t, err)
	assert.Equal(t, DefaultFullName, stored.FullName)
}

func TestRegister_RejectsShortPassword(t *testing.T) {
	repo := newStubAuthRepo()
	ac := NewAuthController(repo, testConfig())

	c, w := authContext(t, RegisterRequest{Email: "jose@example.com", Password: "abc", FullName: "Jose"})
	ac.Register(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, repo.users)
}

// ---------------------------------------------------------------------------
// Login
// ---------------------------------------------------------------------------

func TestLogin_Succeeds(t *testing.T) {
	repo := newStubAuthRepo()
	cfg := testConfig()
	ac := NewAuthController(repo, cfg)
	registerUser(t, ac, "maria@example.com", "secret123")

	c, w := authContext(t, LoginRequest{Email: "maria@example.com", Password: "secret123"})
	ac.Login(c)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp AuthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	claims, err := token.ValidateJWT(resp.AccessToken, cfg.JWT.AccessTokenSecret)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, claims.UserID)
}

// Unknown emails and bad passwords answer identically so the login form
// cannot be used to probe which addresses have accounts.
func TestLogin_UniformRejection(t *testing.T) {
	repo := newStubAuthRepo()
	ac := NewAuthController(repo, testConfig())
	registerUser(t, ac, "maria@example.com", "secret123")

	cases := []LoginRequest{
		{Email: "maria@example.com", Password: "wrong-password"},
		{Email: "nobody@example.com", Password: "secret123"},
	}
	var bodies []string
	for _, req := range cases {
		c, w := authContext(t, req)
		ac.Login(c)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		bodies = append(bodies, w.Body.String())
	}
	assert.Equal(t, bodies[0], bodies[1], "both failures must look the same")
}

// ---------------------------------------------------------------------------
// Refresh token rotation
// ---------------------------------------------------------------------------

func TestRefreshToken_RotatesAndRevokesOld(t *testing.T) {
	repo := newStubAuthRepo()
	cfg := testConfig()
	ac := NewAuthController(repo, cfg)
	registered := registerUser(t, ac, "maria@example.com", "secret123")

	// Mint the token to rotate with an earlier issue time. Token strings are
	// deterministic per (claims, second), so one minted "now" could collide
	// with the freshly rotated one and mask the revocation.
	oldToken := mintRefreshToken(t, registered.User.ID, cfg.JWT.RefreshTokenSecret, time.Now().Add(-time.Minute))
	require.NoError(t, repo.SaveRefreshToken(&user.RefreshToken{
		UserID:    registered.User.ID,
		Token:     oldToken,
		ExpiresAt: time.Now().AddDate(0, 0, 7),
	}))

	c, w := authContext(t, RefreshTokenRequest{RefreshToken: oldToken})
	ac.RefreshToken(c)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp AuthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEqual(t, oldToken, resp.RefreshToken)

	// The used token is revoked; replaying it is rejected.
	c, w = authContext(t, RefreshTokenRequest{RefreshToken: oldToken})
	ac.RefreshToken(c)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func mintRefreshToken(t *testing.T, userID uint, secret string, issuedAt time.Time) string {
	t.Helper()
	claims := &token.Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(issuedAt.AddDate(0, 0, 7)),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			Issuer:    "runclub",
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func TestRefreshToken_RejectsExpiredRecord(t *testing.T) {
	repo := newStubAuthRepo()
	ac := NewAuthController(repo, testConfig())
	registered := registerUser(t, ac, "maria@example.com", "secret123")

	repo.refreshTokens[registered.RefreshToken].ExpiresAt = time.Now().Add(-time.Hour)

	c, w := authContext(t, RefreshTokenRequest{RefreshToken: registered.RefreshToken})
	ac.RefreshToken(c)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRefreshToken_RejectsGarbage(t *testing.T) {
	repo := newStubAuthRepo()
	ac := NewAuthController(repo, testConfig())

	c, w := authContext(t, RefreshTokenRequest{RefreshToken: "not-a-jwt"})
	ac.RefreshToken(c)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
