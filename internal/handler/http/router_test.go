package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/insighthr/insighthr-backend-go/internal/domain/access"
	"github.com/insighthr/insighthr-backend-go/internal/domain/attendance"
	"github.com/insighthr/insighthr-backend-go/internal/domain/employee"
	"github.com/insighthr/insighthr-backend-go/internal/domain/kpi"
	"github.com/insighthr/insighthr-backend-go/internal/domain/performance"
	"github.com/insighthr/insighthr-backend-go/internal/domain/user"
	"github.com/insighthr/insighthr-backend-go/internal/handler/http/response"
	"github.com/insighthr/insighthr-backend-go/internal/pkg/jwt"
	"github.com/insighthr/insighthr-backend-go/internal/pkg/ratelimit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

// Stubs embed the service interface; unimplemented methods panic and surface as 500.

type stubAttendance struct {
	attendance.AttendanceService
	lastFilter attendance.AttendanceFilter
	lastUpdate attendance.UpdateAttendanceRequest
}

func (s *stubAttendance) CheckIn(ctx context.Context, req attendance.CheckInRequest) (attendance.AttendanceResponse, error) {
	if req.EmployeeID == "DEV-002" {
		return attendance.AttendanceResponse{}, attendance.ErrAlreadyCheckedIn
	}
	return attendance.AttendanceResponse{EmployeeID: req.EmployeeID, Status: "work"}, nil
}

func (s *stubAttendance) KioskStatus(ctx context.Context, employeeID string) (attendance.KioskStatusResponse, error) {
	return attendance.KioskStatusResponse{EmployeeID: employeeID, CanCheckIn: true}, nil
}

func (s *stubAttendance) ListAttendance(ctx context.Context, filter attendance.AttendanceFilter) (attendance.ListAttendanceResponse, error) {
	if _, err := access.CallerFromContext(ctx); err != nil {
		return attendance.ListAttendanceResponse{}, err
	}
	s.lastFilter = filter
	return attendance.ListAttendanceResponse{Page: 1}, nil
}

func (s *stubAttendance) UpdateAttendance(ctx context.Context, req attendance.UpdateAttendanceRequest) (attendance.AttendanceResponse, error) {
	s.lastUpdate = req
	return attendance.AttendanceResponse{EmployeeID: req.EmployeeID, Date: req.Date}, nil
}

type stubEmployees struct{ employee.EmployeeService }

func (stubEmployees) GetEmployee(ctx context.Context, employeeID string) (employee.EmployeeResponse, error) {
	if employeeID != "DEV-001" {
		return employee.EmployeeResponse{}, employee.ErrEmployeeNotFound
	}
	return employee.EmployeeResponse{EmployeeID: employeeID}, nil
}

type stubScores struct{ performance.ScoreService }

type stubKPIs struct {
	kpi.KPIService
	lastFilter kpi.KPIFilter
}

func (s *stubKPIs) ListKPIs(ctx context.Context, filter kpi.KPIFilter) (kpi.ListKPIResponse, error) {
	s.lastFilter = filter
	return kpi.ListKPIResponse{Page: 1}, nil
}

func (s *stubKPIs) CreateKPI(ctx context.Context, req kpi.CreateKPIRequest) (kpi.KPIResponse, error) {
	c, err := access.CallerFromContext(ctx)
	if err != nil {
		return kpi.KPIResponse{}, err
	}
	if !c.IsAdmin() {
		return kpi.KPIResponse{}, access.ErrAdminRequired
	}
	return kpi.KPIResponse{Name: req.Name, IsActive: true, CreatedBy: c.UserID}, nil
}

func (s *stubKPIs) DisableKPI(ctx context.Context, kpiID string) (kpi.KPIResponse, error) {
	if kpiID != "k-1" {
		return kpi.KPIResponse{}, kpi.ErrKPINotFound
	}
	return kpi.KPIResponse{KPIID: kpiID}, nil
}

type stubUsers struct{ user.UserService }

func (stubUsers) ListUsers(ctx context.Context, filter user.UserFilter) (user.ListUserResponse, error) {
	return user.ListUserResponse{Page: 1}, nil
}

func (stubUsers) GetMe(ctx context.Context) (user.MeResponse, error) {
	c, err := access.CallerFromContext(ctx)
	if err != nil {
		return user.MeResponse{}, err
	}
	return user.MeResponse{User: user.UserResponse{UserID: c.UserID, Role: string(c.Role)}}, nil
}

type stubResolver struct{}

func (stubResolver) ResolveCaller(ctx context.Context, id user.Identity) (access.Caller, error) {
	switch id.Email {
	case "admin@example.com":
		return access.Caller{UserID: "u-admin", Email: id.Email, Role: access.RoleAdmin}, nil
	case "emp@example.com":
		return access.Caller{UserID: "u-emp", Email: id.Email, Role: access.RoleEmployee, EmployeeID: "DEV-002", Department: "DEV"}, nil
	}
	return access.Caller{}, user.ErrUserDisabled
}

type routerFixture struct {
	handler    http.Handler
	attendance *stubAttendance
	kpis       *stubKPIs
	jwt        jwt.Service
}

func newRouterFixture(t *testing.T, burst int) routerFixture {
	t.Helper()

	jwtService := jwt.NewJWTService("secret", "", time.Second)
	att := &stubAttendance{}
	kpis := &stubKPIs{}
	h := NewRouter(
		RouterConfig{AllowedOrigins: []string{"http://kiosk.local"}},
		jwtService,
		stubResolver{},
		ratelimit.NewKeyedLimiter(rate.Limit(0.001), burst, time.Minute),
		Handlers{
			Attendance:  NewAttendanceHandler(att),
			Employee:    NewEmployeeHandler(stubEmployees{}),
			KPI:         NewKPIHandler(kpis),
			Performance: NewPerformanceHandler(stubScores{}),
			User:        NewUserHandler(stubUsers{}),
		},
	)

	return routerFixture{handler: h, attendance: att, kpis: kpis, jwt: jwtService}
}

func (f routerFixture) token(t *testing.T, email string) string {
	t.Helper()
	tok, err := f.jwt.IssueToken(user.Identity{Subject: email, Email: email}, time.Minute)
	require.NoError(t, err)
	return tok
}

func (f routerFixture) do(method, path, body, token string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) response.Response {
	t.Helper()
	var body response.Response
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return body
}

func TestRouter_Health(t *testing.T) {
	f := newRouterFixture(t, 10)
	assert.Equal(t, http.StatusOK, f.do(http.MethodGet, "/health", "", "").Code)
}

func TestRouter_KioskIsPublic(t *testing.T) {
	f := newRouterFixture(t, 10)

	rec := f.do(http.MethodPost, "/api/v1/attendance/check-in", `{"employee_id":"DEV-001"}`, "")
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.True(t, decode(t, rec).Success)

	rec = f.do(http.MethodPost, "/api/v1/attendance/check-in", `{"employee_id":"DEV-002"}`, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, attendance.ErrAlreadyCheckedIn.Error(), decode(t, rec).Error.Message)

	rec = f.do(http.MethodPost, "/api/v1/attendance/check-in", `{not json`, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = f.do(http.MethodGet, "/api/v1/attendance/DEV-001/status", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouter_KioskRateLimited(t *testing.T) {
	f := newRouterFixture(t, 2)

	for range 2 {
		assert.Equal(t, http.StatusOK, f.do(http.MethodGet, "/api/v1/attendance/DEV-001/status", "", "").Code)
	}
	assert.Equal(t, http.StatusTooManyRequests, f.do(http.MethodGet, "/api/v1/attendance/DEV-001/status", "", "").Code)
}

func TestRouter_ManagementRequiresToken(t *testing.T) {
	f := newRouterFixture(t, 10)

	assert.Equal(t, http.StatusUnauthorized, f.do(http.MethodGet, "/api/v1/attendance", "", "").Code)
	assert.Equal(t, http.StatusUnauthorized, f.do(http.MethodGet, "/api/v1/employees/DEV-001", "", "").Code)
	assert.Equal(t, http.StatusForbidden, f.do(http.MethodGet, "/api/v1/users/me", "", f.token(t, "unknown@example.com")).Code)

	rec := f.do(http.MethodGet, "/api/v1/attendance?status=late&start_date=2025-03-01&page=2&limit=5", "", f.token(t, "emp@example.com"))
	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, f.attendance.lastFilter.Status)
	assert.Equal(t, "late", *f.attendance.lastFilter.Status)
	assert.Equal(t, 2, f.attendance.lastFilter.Page)
	assert.Equal(t, 5, f.attendance.lastFilter.Limit)
	assert.Nil(t, f.attendance.lastFilter.EndDate)
}

func TestRouter_PathParams(t *testing.T) {
	f := newRouterFixture(t, 10)
	admin := f.token(t, "admin@example.com")

	rec := f.do(http.MethodPut, "/api/v1/attendance/DEV-002/2025-03-10", `{"status":"off"}`, admin)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "DEV-002", f.attendance.lastUpdate.EmployeeID)
	assert.Equal(t, "2025-03-10", f.attendance.lastUpdate.Date)

	assert.Equal(t, http.StatusOK, f.do(http.MethodGet, "/api/v1/employees/DEV-001", "", admin).Code)
	assert.Equal(t, http.StatusNotFound, f.do(http.MethodGet, "/api/v1/employees/XYZ-999", "", admin).Code)
	assert.Equal(t, http.StatusNotFound, f.do(http.MethodGet, "/api/v1/nothing-here", "", admin).Code)
}

func TestRouter_UserAdministrationIsAdminOnly(t *testing.T) {
	f := newRouterFixture(t, 10)

	rec := f.do(http.MethodGet, "/api/v1/users/me", "", f.token(t, "emp@example.com"))
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, http.StatusForbidden, f.do(http.MethodGet, "/api/v1/users", "", f.token(t, "emp@example.com")).Code)
	assert.Equal(t, http.StatusOK, f.do(http.MethodGet, "/api/v1/users", "", f.token(t, "admin@example.com")).Code)
}

func TestRouter_KPIs(t *testing.T) {
	f := newRouterFixture(t, 10)
	admin := f.token(t, "admin@example.com")
	emp := f.token(t, "emp@example.com")

	assert.Equal(t, http.StatusUnauthorized, f.do(http.MethodGet, "/api/v1/kpis", "", "").Code)

	rec := f.do(http.MethodGet, "/api/v1/kpis?category=attendance&is_active=false", "", emp)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, f.kpis.lastFilter.IsActive)
	assert.False(t, *f.kpis.lastFilter.IsActive)
	assert.Equal(t, "attendance", *f.kpis.lastFilter.Category)
	assert.Nil(t, f.kpis.lastFilter.DataType)

	body := `{"name":"On-time rate","description":"d","data_type":"percentage"}`
	assert.Equal(t, http.StatusForbidden, f.do(http.MethodPost, "/api/v1/kpis", body, emp).Code)

	rec = f.do(http.MethodPost, "/api/v1/kpis", body, admin)
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.True(t, decode(t, rec).Success)

	rec = f.do(http.MethodDelete, "/api/v1/kpis/k-1", "", admin)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "KPI disabled successfully", decode(t, rec).Message)
	assert.Equal(t, http.StatusNotFound, f.do(http.MethodDelete, "/api/v1/kpis/k-2", "", admin).Code)
}
