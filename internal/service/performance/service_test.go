package performance

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/insighthr/insighthr-backend-go/internal/domain/access"
	"github.com/insighthr/insighthr-backend-go/internal/domain/employee"
	"github.com/insighthr/insighthr-backend-go/internal/domain/performance"
	"github.com/insighthr/insighthr-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTransactor struct{}

func (fakeTransactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeScoreRepo struct {
	mu     sync.Mutex
	scores map[[2]string]performance.Score
}

func newFakeScoreRepo() *fakeScoreRepo {
	return &fakeScoreRepo{scores: map[[2]string]performance.Score{}}
}

func (f *fakeScoreRepo) Create(ctx context.Context, sc performance.Score) (performance.Score, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	k := [2]string{sc.EmployeeID, sc.Period}
	if _, ok := f.scores[k]; ok {
		return performance.Score{}, performance.ErrScoreExists
	}
	f.scores[k] = sc
	return sc, nil
}

func (f *fakeScoreRepo) GetByKey(ctx context.Context, employeeID, period string) (performance.Score, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	sc, ok := f.scores[[2]string{employeeID, period}]
	if !ok {
		return performance.Score{}, performance.ErrScoreNotFound
	}
	return sc, nil
}

func (f *fakeScoreRepo) GetByKeyForUpdate(ctx context.Context, employeeID, period string) (performance.Score, error) {
	return f.GetByKey(ctx, employeeID, period)
}

func (f *fakeScoreRepo) Update(ctx context.Context, sc performance.Score) (performance.Score, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.scores[[2]string{sc.EmployeeID, sc.Period}] = sc
	return sc, nil
}

func (f *fakeScoreRepo) Delete(ctx context.Context, employeeID, period string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	k := [2]string{employeeID, period}
	if _, ok := f.scores[k]; !ok {
		return performance.ErrScoreNotFound
	}
	delete(f.scores, k)
	return nil
}

func (f *fakeScoreRepo) List(ctx context.Context, scope access.Scope, filter performance.ScoreFilter) ([]performance.Score, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []performance.Score
	for _, sc := range f.scores {
		if !scope.Matches(access.Target{EmployeeID: sc.EmployeeID, Department: sc.Department}) {
			continue
		}
		if filter.Period != nil && sc.Period != *filter.Period {
			continue
		}
		out = append(out, sc)
	}
	return out, int64(len(out)), nil
}

type fakeEmployeeRepo struct {
	byID map[string]employee.Employee
}

func (f *fakeEmployeeRepo) GetByID(ctx context.Context, employeeID string) (employee.Employee, error) {
	e, ok := f.byID[employeeID]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return e, nil
}

func (f *fakeEmployeeRepo) Create(ctx context.Context, e employee.Employee) (employee.Employee, error) {
	return e, nil
}

func (f *fakeEmployeeRepo) Update(ctx context.Context, req employee.UpdateEmployeeRequest) (employee.Employee, error) {
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (f *fakeEmployeeRepo) Delete(ctx context.Context, employeeID string) error {
	return employee.ErrEmployeeNotFound
}

func (f *fakeEmployeeRepo) List(ctx context.Context, scope access.Scope, filter employee.EmployeeFilter) ([]employee.Employee, int64, error) {
	return nil, 0, nil
}

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func ptr[T any](v T) *T { return &v }

var (
	admin    = access.Caller{UserID: "admin-1", Role: access.RoleAdmin}
	manager  = access.Caller{UserID: "m-1", Role: access.RoleManager, EmployeeID: "DEV-001", Department: "DEV"}
	employed = access.Caller{UserID: "e-1", Role: access.RoleEmployee, EmployeeID: "DEV-002"}
	unlinked = access.Caller{UserID: "e-2", Role: access.RoleEmployee}
)

func withCaller(c access.Caller) context.Context {
	return access.WithCaller(context.Background(), c)
}

func newService() (performance.ScoreService, *fakeScoreRepo) {
	scores := newFakeScoreRepo()
	employees := &fakeEmployeeRepo{byID: map[string]employee.Employee{
		"DEV-001": {EmployeeID: "DEV-001", Name: "Dana", Department: "DEV", Position: employee.PositionManager},
		"DEV-002": {EmployeeID: "DEV-002", Name: "Devi", Department: "DEV", Position: employee.PositionJunior},
		"QA-001":  {EmployeeID: "QA-001", Name: "Quinn", Department: "QA", Position: employee.PositionSenior},
	}}
	svc := NewScoreService(fakeTransactor{}, scores, employees, access.NewResolver([]string{"DEV", "QA"}))
	svc.(*ScoreServiceImpl).now = func() time.Time { return time.Date(2025, 7, 1, 9, 0, 0, 0, time.UTC) }
	return svc, scores
}

func TestCreateScore(t *testing.T) {
	svc, _ := newService()

	created, err := svc.CreateScore(withCaller(manager), performance.CreateScoreRequest{
		EmployeeID:    "DEV-002",
		Period:        "2025-Q2",
		KPI:           d("80"),
		CompletedTask: d("85"),
		Feedback360:   d("90.5"),
	})
	require.NoError(t, err)
	assert.True(t, d("85.17").Equal(created.OverallScore), "got %s", created.OverallScore)
	assert.Equal(t, "Devi", created.EmployeeName)
	assert.Equal(t, "DEV", created.Department)
	assert.NotEmpty(t, created.ScoreID)
	assert.Equal(t, "2025-07-01T09:00:00Z", created.CalculatedAt)

	withFinal, err := svc.CreateScore(withCaller(admin), performance.CreateScoreRequest{
		EmployeeID:    "QA-001",
		Period:        "2025-1",
		KPI:           d("10"),
		CompletedTask: d("10"),
		Feedback360:   d("10"),
		FinalScore:    ptr(d("72.456")),
	})
	require.NoError(t, err)
	assert.True(t, d("72.46").Equal(withFinal.OverallScore))

	_, err = svc.CreateScore(withCaller(manager), performance.CreateScoreRequest{EmployeeID: "DEV-002", Period: "2025-Q2"})
	assert.ErrorIs(t, err, performance.ErrScoreExists)

	_, err = svc.CreateScore(withCaller(manager), performance.CreateScoreRequest{EmployeeID: "QA-001", Period: "2025-Q3"})
	assert.ErrorIs(t, err, access.ErrOtherDepartment)

	_, err = svc.CreateScore(withCaller(employed), performance.CreateScoreRequest{EmployeeID: "DEV-002", Period: "2025-Q3"})
	assert.ErrorIs(t, err, access.ErrPrivilegeRequired)

	_, err = svc.CreateScore(withCaller(admin), performance.CreateScoreRequest{EmployeeID: "DEV-002", Period: "2025-13", KPI: d("101")})
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs.ToMap(), "period")
	assert.Contains(t, verrs.ToMap(), "kpi")
}

func TestListScores_EmployeeSeesOwnOnly(t *testing.T) {
	svc, _ := newService()
	for _, id := range []string{"DEV-001", "DEV-002", "QA-001"} {
		_, err := svc.CreateScore(withCaller(admin), performance.CreateScoreRequest{EmployeeID: id, Period: "2025-Q1", KPI: d("50"), CompletedTask: d("50"), Feedback360: d("50")})
		require.NoError(t, err)
	}

	list, err := svc.ListScores(withCaller(employed), performance.ScoreFilter{})
	require.NoError(t, err)
	require.Len(t, list.Scores, 1)
	assert.Equal(t, "DEV-002", list.Scores[0].EmployeeID)

	list, err = svc.ListScores(withCaller(manager), performance.ScoreFilter{Department: ptr("QA")})
	require.NoError(t, err)
	assert.Equal(t, int64(2), list.TotalCount)

	list, err = svc.ListScores(withCaller(admin), performance.ScoreFilter{Period: ptr("2025-Q1")})
	require.NoError(t, err)
	assert.Equal(t, int64(3), list.TotalCount)

	_, err = svc.ListScores(withCaller(unlinked), performance.ScoreFilter{})
	assert.ErrorIs(t, err, access.ErrNoEmployeeLink)

	_, err = svc.GetScore(withCaller(employed), "DEV-001", "2025-Q1")
	assert.ErrorIs(t, err, access.ErrNotOwnRecord)

	own, err := svc.GetScore(withCaller(employed), "DEV-002", "2025-Q1")
	require.NoError(t, err)
	assert.True(t, d("50").Equal(own.OverallScore))

	_, err = svc.GetScore(withCaller(employed), "DEV-002", "2024-Q1")
	assert.ErrorIs(t, err, performance.ErrScoreNotFound)
}

func TestUpdateScore(t *testing.T) {
	svc, _ := newService()
	_, err := svc.CreateScore(withCaller(admin), performance.CreateScoreRequest{EmployeeID: "DEV-002", Period: "2025-Q1", KPI: d("60"), CompletedTask: d("60"), Feedback360: d("60")})
	require.NoError(t, err)

	updated, err := svc.UpdateScore(withCaller(manager), performance.UpdateScoreRequest{EmployeeID: "DEV-002", Period: "2025-Q1", KPI: ptr(d("90"))})
	require.NoError(t, err)
	assert.True(t, d("90").Equal(updated.KPI))
	assert.True(t, d("70").Equal(updated.OverallScore))

	updated, err = svc.UpdateScore(withCaller(admin), performance.UpdateScoreRequest{EmployeeID: "DEV-002", Period: "2025-Q1", FinalScore: ptr(d("99"))})
	require.NoError(t, err)
	assert.True(t, d("99").Equal(updated.OverallScore))

	_, err = svc.UpdateScore(withCaller(admin), performance.UpdateScoreRequest{EmployeeID: "DEV-002", Period: "2025-Q1"})
	var verrs validator.ValidationErrors
	assert.ErrorAs(t, err, &verrs)

	_, err = svc.UpdateScore(withCaller(employed), performance.UpdateScoreRequest{EmployeeID: "DEV-002", Period: "2025-Q1", KPI: ptr(d("100"))})
	assert.ErrorIs(t, err, access.ErrPrivilegeRequired)

	assert.ErrorIs(t, svc.DeleteScore(withCaller(manager), "DEV-002", "2025-Q1"), access.ErrAdminRequired)
	require.NoError(t, svc.DeleteScore(withCaller(admin), "DEV-002", "2025-Q1"))
	assert.ErrorIs(t, svc.DeleteScore(withCaller(admin), "DEV-002", "2025-Q1"), performance.ErrScoreNotFound)
}

func TestBulkCreateScores(t *testing.T) {
	svc, scores := newService()

	resp, err := svc.BulkCreate(withCaller(manager), performance.BulkCreateRequest{Scores: []performance.CreateScoreRequest{
		{EmployeeID: "DEV-001", Period: "2025-Q1", KPI: d("70"), CompletedTask: d("80"), Feedback360: d("90")},
		{EmployeeID: "QA-001", Period: "2025-Q1", KPI: d("70"), CompletedTask: d("80"), Feedback360: d("90")},
		{EmployeeID: "DEV-002", Period: "Q1"},
	}})
	require.NoError(t, err)

	assert.Equal(t, 3, resp.Total)
	assert.Equal(t, 1, resp.Succeeded)
	assert.Equal(t, 2, resp.Failed)
	require.NotNil(t, resp.Results[0].Score)
	assert.True(t, d("80").Equal(resp.Results[0].Score.OverallScore))
	assert.Contains(t, resp.Results[1].Error, "another department")
	assert.Contains(t, resp.Results[2].Error, "period")
	assert.Len(t, scores.scores, 1)

	_, err = svc.BulkCreate(withCaller(employed), performance.BulkCreateRequest{Scores: []performance.CreateScoreRequest{{EmployeeID: "DEV-002", Period: "2025-Q1"}}})
	assert.ErrorIs(t, err, access.ErrPrivilegeRequired)
}
