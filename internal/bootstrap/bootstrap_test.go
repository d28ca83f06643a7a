package bootstrap

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/honorsociety/internal/app/models"
	"github.com/yigit/honorsociety/internal/config"
)

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Server.Mode = "test"
	cfg.Server.MetricsEnabled = true
	cfg.Database.Driver = config.DriverMemory
	cfg.Database.SeedOnStart = true
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.AccessTokenExpiration = "15m"
	cfg.JWT.RefreshTokenExpiration = "24h"
	cfg.JWT.Issuer = "test"
	cfg.Auth.EnforceOfficerPerRequest = true
	cfg.Auth.BcryptCost = 4
	return cfg
}

type testApp struct {
	t      *testing.T
	deps   *Dependencies
	router *gin.Engine
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)
	cfg := testConfig()
	lgr := zerolog.Nop()

	repos, closeDB, err := SetupRepositories(context.Background(), cfg, lgr)
	require.NoError(t, err)
	t.Cleanup(closeDB)
	SeedDefaults(context.Background(), cfg, repos, lgr)

	deps := BuildDependencies(cfg, repos, lgr)
	return &testApp{t: t, deps: deps, router: SetupRouter(cfg, deps, lgr)}
}

// do sends a JSON request and decodes the JSON response into out when given
func (a *testApp) do(method, path, token string, body interface{}, out interface{}) int {
	a.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(a.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)
	if out != nil && rec.Body.Len() > 0 {
		require.NoError(a.t, json.Unmarshal(rec.Body.Bytes(), out), rec.Body.String())
	}
	return rec.Code
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}

type idBody struct {
	ID int64 `json:"id"`
}

type errorBody struct {
	Error string `json:"error"`
	Code  string `json:"code"`
	Field string `json:"field"`
}

type pageBody struct {
	Count   int64    `json:"count"`
	Results []idBody `json:"results"`
}

type tokensBody struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// registerOfficer registers officer1 on the seeded Main Campus and approves it
func (a *testApp) registerOfficer() (campusID int64, officerID int64) {
	a.t.Helper()
	campuses, _, err := a.deps.Repos.CampusRepository.List(context.Background(), models.CampusFilter{}, models.ListOptions{Page: 1, PageSize: 10})
	require.NoError(a.t, err)
	for _, c := range campuses {
		if c.Code == "MAIN" {
			campusID = c.ID
		}
	}
	require.NotZero(a.t, campusID)

	var reg struct {
		Message string `json:"message"`
		Officer struct {
			ID         int64 `json:"id"`
			IsActive   bool  `json:"is_active"`
			IsVerified bool  `json:"is_verified"`
		} `json:"officer"`
	}
	status := a.do(http.MethodPost, "/api/v1/auth/register", "", map[string]interface{}{
		"username":  "officer1",
		"password":  "Password123",
		"position":  "Secretary",
		"campus_id": campusID,
	}, &reg)
	require.Equal(a.t, http.StatusCreated, status)
	assert.True(a.t, reg.Officer.IsActive)
	assert.False(a.t, reg.Officer.IsVerified)
	return campusID, reg.Officer.ID
}

func (a *testApp) login() tokensBody {
	a.t.Helper()
	var tokens tokensBody
	status := a.do(http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"username": "officer1",
		"password": "Password123",
	}, &tokens)
	require.Equal(a.t, http.StatusOK, status)
	return tokens
}

func TestRouter_RegistrationNeedsVerification(t *testing.T) {
	app := newTestApp(t)
	_, officerID := app.registerOfficer()

	var errResp errorBody
	status := app.do(http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"username": "officer1",
		"password": "Password123",
	}, &errResp)
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "UNVERIFIED_OFFICER", errResp.Code)

	status = app.do(http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"username": "officer1",
		"password": "nope-nope",
	}, &errResp)
	assert.Equal(t, http.StatusUnauthorized, status)

	require.NoError(t, app.deps.Repos.OfficerRepository.SetStatus(context.Background(), officerID, true, true))
	tokens := app.login()
	assert.NotEmpty(t, tokens.Access)

	var profile struct {
		User struct {
			Username string `json:"username"`
		} `json:"user"`
	}
	assert.Equal(t, http.StatusOK, app.do(http.MethodGet, "/api/v1/auth/profile", tokens.Access, nil, &profile))
	assert.Equal(t, "officer1", profile.User.Username)

	// the gate also runs per request
	require.NoError(t, app.deps.Repos.OfficerRepository.SetStatus(context.Background(), officerID, false, true))
	status = app.do(http.MethodGet, "/api/v1/campuses", tokens.Access, nil, &errResp)
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "INACTIVE_OFFICER", errResp.Code)
}

func TestRouter_Authentication(t *testing.T) {
	app := newTestApp(t)
	_, officerID := app.registerOfficer()
	require.NoError(t, app.deps.Repos.OfficerRepository.SetStatus(context.Background(), officerID, true, true))
	tokens := app.login()

	assert.Equal(t, http.StatusUnauthorized, app.do(http.MethodGet, "/api/v1/campuses", "", nil, nil))
	assert.Equal(t, http.StatusUnauthorized, app.do(http.MethodGet, "/api/v1/campuses", "garbage", nil, nil))
	assert.Equal(t, http.StatusUnauthorized, app.do(http.MethodGet, "/api/v1/campuses", tokens.Refresh, nil, nil))

	var refreshed tokensBody
	assert.Equal(t, http.StatusOK, app.do(http.MethodPost, "/api/v1/auth/refresh", "", map[string]string{"refresh": tokens.Refresh}, &refreshed))
	assert.NotEmpty(t, refreshed.Access)
	assert.Empty(t, refreshed.Refresh)

	var msg struct {
		Message string `json:"message"`
	}
	assert.Equal(t, http.StatusOK, app.do(http.MethodPost, "/api/v1/auth/logout", tokens.Access, map[string]string{"refresh": tokens.Refresh}, &msg))
	assert.Equal(t, "Successfully logged out.", msg.Message)

	assert.Equal(t, http.StatusUnauthorized, app.do(http.MethodPost, "/api/v1/auth/refresh", "", map[string]string{"refresh": tokens.Refresh}, nil))
	assert.Equal(t, http.StatusBadRequest, app.do(http.MethodPost, "/api/v1/auth/logout", tokens.Access, map[string]string{"refresh": tokens.Refresh}, nil))
	assert.Equal(t, http.StatusBadRequest, app.do(http.MethodPost, "/api/v1/auth/refresh", "", nil, nil))
}

func TestRouter_GWARecordFlow(t *testing.T) {
	app := newTestApp(t)
	campusID, officerID := app.registerOfficer()
	require.NoError(t, app.deps.Repos.OfficerRepository.SetStatus(context.Background(), officerID, true, true))
	token := app.login().Access

	var depts pageBody
	require.Equal(t, http.StatusOK, app.do(http.MethodGet, "/api/v1/departments?search=Computer", token, nil, &depts))
	require.Len(t, depts.Results, 1)
	deptID := depts.Results[0].ID

	var student idBody
	require.Equal(t, http.StatusCreated, app.do(http.MethodPost, "/api/v1/students", token, map[string]interface{}{
		"student_number": "2024-001",
		"first_name":     "John",
		"last_name":      "Doe",
		"campus_id":      campusID,
		"department_id":  deptID,
		"year_level":     1,
	}, &student))

	var record struct {
		ID        int64   `json:"id"`
		GWA       float64 `json:"gwa"`
		EncodedBy string  `json:"encoded_by"`
	}
	body := map[string]interface{}{
		"student_id":    student.ID,
		"semester":      "1st Semester",
		"academic_year": "2024-2025",
		"gwa":           1.5,
	}
	require.Equal(t, http.StatusCreated, app.do(http.MethodPost, "/api/v1/gwa-records", token, body, &record))
	assert.Equal(t, 1.5, record.GWA)
	assert.Equal(t, "officer1", record.EncodedBy)

	var errResp errorBody
	assert.Equal(t, http.StatusBadRequest, app.do(http.MethodPost, "/api/v1/gwa-records", token, body, &errResp))
	assert.Equal(t, "DUPLICATE_RECORD", errResp.Code)

	assert.Equal(t, http.StatusBadRequest, app.do(http.MethodPost, "/api/v1/gwa-records", token, map[string]interface{}{
		"semester": "2nd Semester",
	}, &errResp))

	var stats struct {
		TotalRecords  int64    `json:"total_records"`
		AverageGWA    *float64 `json:"average_gwa"`
		HighestGWA    *float64 `json:"highest_gwa"`
		LowestGWA     *float64 `json:"lowest_gwa"`
		HonorEligible int64    `json:"honor_eligible"`
	}
	require.Equal(t, http.StatusOK, app.do(http.MethodGet, "/api/v1/gwa-records/statistics", token, nil, &stats))
	assert.Equal(t, int64(1), stats.TotalRecords)
	require.NotNil(t, stats.AverageGWA)
	assert.Equal(t, 1.5, *stats.AverageGWA)
	assert.Equal(t, int64(1), stats.HonorEligible)

	var eligible []idBody
	require.Equal(t, http.StatusOK, app.do(http.MethodGet, "/api/v1/gwa-records/honor_eligible", token, nil, &eligible))
	require.Len(t, eligible, 1)
	assert.Equal(t, record.ID, eligible[0].ID)

	require.Equal(t, http.StatusOK, app.do(http.MethodGet, "/api/v1/gwa-records/honor_eligible?min_gwa=1.25", token, nil, &eligible))
	assert.Empty(t, eligible)

	assert.Equal(t, http.StatusNotFound, app.do(http.MethodGet, "/api/v1/gwa-records/abc", token, nil, nil))
	assert.Equal(t, http.StatusNotFound, app.do(http.MethodGet, "/api/v1/gwa-records/999", token, nil, nil))

	var patched struct {
		GWA float64 `json:"gwa"`
	}
	require.Equal(t, http.StatusOK, app.do(http.MethodPatch, "/api/v1/gwa-records/"+itoa(record.ID), token, map[string]interface{}{"gwa": 2.25}, &patched))
	assert.Equal(t, 2.25, patched.GWA)

	require.Equal(t, http.StatusOK, app.do(http.MethodGet, "/api/v1/gwa-records/statistics", token, nil, &stats))
	assert.Zero(t, stats.HonorEligible)

	assert.Equal(t, http.StatusNoContent, app.do(http.MethodDelete, "/api/v1/students/"+itoa(student.ID), token, nil, nil))
	assert.Equal(t, http.StatusNotFound, app.do(http.MethodGet, "/api/v1/gwa-records/"+itoa(record.ID), token, nil, nil))
}

func TestRouter_Operational(t *testing.T) {
	app := newTestApp(t)

	var health struct {
		Status   string `json:"status"`
		Database string `json:"database"`
	}
	assert.Equal(t, http.StatusOK, app.do(http.MethodGet, "/health", "", nil, &health))
	assert.Equal(t, "ok", health.Status)
	assert.Equal(t, config.DriverMemory, health.Database)

	rec := httptest.NewRecorder()
	app.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "honorsociety_http_requests_total")

	var errResp errorBody
	assert.Equal(t, http.StatusNotFound, app.do(http.MethodGet, "/api/v1/nowhere", "", nil, &errResp))
	assert.Equal(t, "Not found.", errResp.Error)
}

func TestRouter_ListQueries(t *testing.T) {
	app := newTestApp(t)
	mainID, officerID := app.registerOfficer()
	require.NoError(t, app.deps.Repos.OfficerRepository.SetStatus(context.Background(), officerID, true, true))
	token := app.login().Access

	var campuses pageBody
	require.Equal(t, http.StatusOK, app.do(http.MethodGet, "/api/v1/campuses?search=North", token, nil, &campuses))
	require.Len(t, campuses.Results, 1)
	northID := campuses.Results[0].ID

	var depts pageBody
	require.Equal(t, http.StatusOK, app.do(http.MethodGet, "/api/v1/departments?campus="+itoa(northID), token, nil, &depts))
	require.Len(t, depts.Results, 1)
	businessID := depts.Results[0].ID
	require.Equal(t, http.StatusOK, app.do(http.MethodGet, "/api/v1/departments?search=Computer", token, nil, &depts))
	require.Len(t, depts.Results, 1)
	csID := depts.Results[0].ID

	newStudent := func(number string, campusID, deptID int64) int64 {
		var st idBody
		require.Equal(t, http.StatusCreated, app.do(http.MethodPost, "/api/v1/students", token, map[string]interface{}{
			"student_number": number,
			"first_name":     "Student",
			"last_name":      number,
			"campus_id":      campusID,
			"department_id":  deptID,
			"year_level":     2,
		}, &st))
		return st.ID
	}
	mainStudent := newStudent("2024-001", mainID, csID)
	northStudent := newStudent("2024-002", northID, businessID)

	t.Run("student search by campus and department name", func(t *testing.T) {
		var page pageBody
		require.Equal(t, http.StatusOK, app.do(http.MethodGet, "/api/v1/students?search=north", token, nil, &page))
		require.Len(t, page.Results, 1)
		assert.Equal(t, northStudent, page.Results[0].ID)

		require.Equal(t, http.StatusOK, app.do(http.MethodGet, "/api/v1/students?search=computer", token, nil, &page))
		require.Len(t, page.Results, 1)
		assert.Equal(t, mainStudent, page.Results[0].ID)

		require.Equal(t, http.StatusOK, app.do(http.MethodGet, "/api/v1/students?search=_", token, nil, &page))
		assert.Empty(t, page.Results)
	})

	t.Run("ordering", func(t *testing.T) {
		var page pageBody
		require.Equal(t, http.StatusOK, app.do(http.MethodGet, "/api/v1/students?ordering=-student_number", token, nil, &page))
		require.Len(t, page.Results, 2)
		assert.Equal(t, []int64{northStudent, mainStudent}, []int64{page.Results[0].ID, page.Results[1].ID})

		require.Equal(t, http.StatusOK, app.do(http.MethodGet, "/api/v1/students?ordering=bogus,student_number", token, nil, &page))
		require.Len(t, page.Results, 2)
		assert.Equal(t, []int64{mainStudent, northStudent}, []int64{page.Results[0].ID, page.Results[1].ID})
	})

	t.Run("officer is_active filter", func(t *testing.T) {
		var reg struct {
			Officer idBody `json:"officer"`
		}
		require.Equal(t, http.StatusCreated, app.do(http.MethodPost, "/api/v1/auth/register", "", map[string]interface{}{
			"username":  "officer2",
			"password":  "Password123",
			"position":  "Treasurer",
			"campus_id": northID,
		}, &reg))
		require.NoError(t, app.deps.Repos.OfficerRepository.SetStatus(context.Background(), reg.Officer.ID, false, false))

		var page pageBody
		require.Equal(t, http.StatusOK, app.do(http.MethodGet, "/api/v1/officers?is_active=false", token, nil, &page))
		require.Len(t, page.Results, 1)
		assert.Equal(t, reg.Officer.ID, page.Results[0].ID)

		require.Equal(t, http.StatusOK, app.do(http.MethodGet, "/api/v1/officers?is_active=true", token, nil, &page))
		require.Len(t, page.Results, 1)
		assert.Equal(t, officerID, page.Results[0].ID)

		var errResp errorBody
		assert.Equal(t, http.StatusBadRequest, app.do(http.MethodGet, "/api/v1/officers?is_active=maybe", token, nil, &errResp))
		assert.Equal(t, "is_active", errResp.Field)
	})

	t.Run("page past the end", func(t *testing.T) {
		var page pageBody
		require.Equal(t, http.StatusOK, app.do(http.MethodGet, "/api/v1/campuses?page=9223372036854775807", token, nil, &page))
		assert.Equal(t, int64(2), page.Count)
		assert.Empty(t, page.Results)

		require.Equal(t, http.StatusOK, app.do(http.MethodGet, "/api/v1/students?page=4611686018427387904&page_size=100", token, nil, &page))
		assert.Empty(t, page.Results)
	})
}
