package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appAuth "github.com/yigit/honorsociety/internal/app/auth"
	"github.com/yigit/honorsociety/internal/app/models"
	"github.com/yigit/honorsociety/internal/app/models/dto"
	"github.com/yigit/honorsociety/internal/app/repositories/inmem"
	"github.com/yigit/honorsociety/internal/pkg/auth"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// bindBody runs gin's JSON binding over body into a bindTarget
func bindBody(t *testing.T, body string) error {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	var target bindTarget
	return binding.JSON.Bind(req, &target)
}

type gateFixture struct {
	jwt     *auth.JWTService
	user    *models.User
	officer *models.Officer
	router  func(enforce bool) *gin.Engine
	setFlag func(active, verified bool)
}

func newGateFixture(t *testing.T) *gateFixture {
	t.Helper()
	ctx := context.Background()
	repos := inmem.NewRepositories()

	campus := &models.Campus{Name: "Main Campus", Code: "MAIN"}
	require.NoError(t, repos.CampusRepository.Create(ctx, campus))
	user := &models.User{Username: "officer1"}
	require.NoError(t, repos.UserRepository.Create(ctx, user))
	officer := &models.Officer{UserID: user.ID, Position: "President", CampusID: campus.ID, IsActive: true, IsVerified: true}
	require.NoError(t, repos.OfficerRepository.Create(ctx, officer))

	jwtService := auth.NewJWTService(auth.JWTConfig{SecretKey: "k", AccessTokenExp: time.Minute, RefreshTokenExp: time.Hour})
	gate := appAuth.NewOfficerGate(repos.OfficerRepository)

	return &gateFixture{
		jwt:     jwtService,
		user:    user,
		officer: officer,
		router: func(enforce bool) *gin.Engine {
			m := NewAuthMiddleware(jwtService, gate, enforce)
			r := gin.New()
			r.GET("/protected", m.JWTAuth(), m.OfficerRequired(), func(c *gin.Context) {
				id, err := GetUserID(c)
				require.NoError(t, err)
				c.JSON(http.StatusOK, gin.H{"user_id": id})
			})
			return r
		},
		setFlag: func(active, verified bool) {
			require.NoError(t, repos.OfficerRepository.SetStatus(ctx, officer.ID, active, verified))
		},
	}
}

func serve(r *gin.Engine, header string) (int, dto.ErrorResponse) {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	var body dto.ErrorResponse
	_ = json.Unmarshal(rec.Body.Bytes(), &body)
	return rec.Code, body
}

func TestAuthMiddleware(t *testing.T) {
	f := newGateFixture(t)
	access, refresh, err := f.jwt.GenerateTokenPair(f.user)
	require.NoError(t, err)
	r := f.router(true)

	status, body := serve(r, "")
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, dto.ErrorCode("NOT_AUTHENTICATED"), body.Code)

	status, body = serve(r, "Bearer "+refresh)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, dto.ErrorCode("TOKEN_NOT_VALID"), body.Code)

	status, _ = serve(r, "Bearer "+access)
	assert.Equal(t, http.StatusOK, status)

	f.setFlag(true, false)
	status, body = serve(r, "Bearer "+access)
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, dto.ErrorCode("UNVERIFIED_OFFICER"), body.Code)

	// login-only enforcement lets the existing token through
	status, _ = serve(f.router(false), "Bearer "+access)
	assert.Equal(t, http.StatusOK, status)
}
