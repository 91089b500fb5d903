package access

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testDepartments = []string{"AI", "DAT", "DEV", "QA", "SEC"}

func TestListScope(t *testing.T) {
	r := NewResolver(testDepartments)

	cases := []struct {
		name   string
		caller Caller
		res    Resource
		want   Scope
	}{
		{"admin employees", Caller{Role: RoleAdmin}, ResourceEmployee, AllScope()},
		{"admin performance", Caller{Role: RoleAdmin}, ResourcePerformance, AllScope()},
		{"manager employees", Caller{Role: RoleManager, Department: "DEV"}, ResourceEmployee, DepartmentScope("DEV")},
		{"manager attendance", Caller{Role: RoleManager, Department: "QA"}, ResourceAttendance, DepartmentScope("QA")},
		{"manager performance", Caller{Role: RoleManager, Department: "AI"}, ResourcePerformance, DepartmentScope("AI")},
		{"employee performance", Caller{Role: RoleEmployee, EmployeeID: "DEV-001"}, ResourcePerformance, SelfScope("DEV-001")},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := r.ListScope(c.caller, c.res)
			assert.Equal(t, c.want, got)
			assert.NoError(t, got.Err())
		})
	}
}

func TestListScope_Denied(t *testing.T) {
	r := NewResolver(testDepartments)

	cases := []struct {
		name   string
		caller Caller
		res    Resource
		reason error
	}{
		{"employee lists employees", Caller{Role: RoleEmployee, EmployeeID: "DEV-001"}, ResourceEmployee, ErrPrivilegeRequired},
		{"employee lists attendance", Caller{Role: RoleEmployee, EmployeeID: "DEV-001"}, ResourceAttendance, ErrPrivilegeRequired},
		{"unlinked employee lists performance", Caller{Role: RoleEmployee}, ResourcePerformance, ErrNoEmployeeLink},
		{"manager without department", Caller{Role: RoleManager, Department: ""}, ResourceEmployee, ErrNoDepartment},
		{"unknown role", Caller{Role: Role("Guest")}, ResourceEmployee, ErrUnknownRole},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := r.ListScope(c.caller, c.res)
			assert.True(t, got.Denied())
			assert.ErrorIs(t, got.Err(), c.reason)
			assert.ErrorIs(t, got.Err(), ErrForbidden)
		})
	}
}

func TestScope_Matches(t *testing.T) {
	records := []Target{
		{EmployeeID: "DEV-001", Department: "DEV"},
		{EmployeeID: "DEV-002", Department: "DEV"},
		{EmployeeID: "QA-001", Department: "QA"},
	}

	filter := func(s Scope) []string {
		var ids []string
		for _, rec := range records {
			if s.Matches(rec) {
				ids = append(ids, rec.EmployeeID)
			}
		}
		return ids
	}

	assert.Equal(t, []string{"DEV-001", "DEV-002", "QA-001"}, filter(AllScope()))
	assert.Equal(t, []string{"DEV-001", "DEV-002"}, filter(DepartmentScope("DEV")))
	assert.Equal(t, []string{"QA-001"}, filter(SelfScope("QA-001")))
	assert.Empty(t, filter(DeniedScope(nil)))
	assert.Empty(t, filter(DepartmentScope("")))
	assert.Empty(t, filter(SelfScope("")))
}

func TestVisible(t *testing.T) {
	rows := []Target{
		{EmployeeID: "QA-001", Department: "QA"},
		{EmployeeID: "DEV-002", Department: "DEV"},
		{EmployeeID: "DEV-001", Department: "DEV"},
	}
	self := func(t Target) Target { return t }

	kept, dropped := Visible(DepartmentScope("DEV"), rows, self)
	assert.Equal(t, 1, dropped)
	assert.Equal(t, []Target{rows[1], rows[2]}, kept, "order is preserved")
	assert.Len(t, rows, 3, "input is left alone")
	assert.Equal(t, "QA-001", rows[0].EmployeeID)

	kept, dropped = Visible(AllScope(), rows, self)
	assert.Zero(t, dropped)
	assert.Len(t, kept, 3)

	kept, dropped = Visible(DeniedScope(nil), rows, self)
	assert.Equal(t, 3, dropped)
	assert.Empty(t, kept)

	kept, dropped = Visible(SelfScope("DEV-002"), []Target(nil), self)
	assert.Zero(t, dropped)
	assert.Empty(t, kept)
}

func TestCanRead(t *testing.T) {
	r := NewResolver(testDepartments)
	devRecord := Target{EmployeeID: "DEV-002", Department: "DEV"}

	assert.NoError(t, r.CanRead(Caller{Role: RoleAdmin}, ResourceEmployee, devRecord))
	assert.NoError(t, r.CanRead(Caller{Role: RoleManager, Department: "DEV"}, ResourceAttendance, devRecord))
	assert.ErrorIs(t, r.CanRead(Caller{Role: RoleManager, Department: "QA"}, ResourceAttendance, devRecord), ErrOtherDepartment)
	assert.ErrorIs(t, r.CanRead(Caller{Role: RoleManager}, ResourceAttendance, devRecord), ErrNoDepartment)
	assert.NoError(t, r.CanRead(Caller{Role: RoleEmployee, EmployeeID: "DEV-002"}, ResourcePerformance, devRecord))
	assert.ErrorIs(t, r.CanRead(Caller{Role: RoleEmployee, EmployeeID: "DEV-001"}, ResourcePerformance, devRecord), ErrNotOwnRecord)
	assert.ErrorIs(t, r.CanRead(Caller{Role: RoleEmployee}, ResourceEmployee, devRecord), ErrNoEmployeeLink)
}

func TestCanWrite(t *testing.T) {
	r := NewResolver(testDepartments)
	devRecord := Target{EmployeeID: "DEV-002", Department: "DEV"}
	manager := Caller{Role: RoleManager, Department: "DEV", EmployeeID: "DEV-100"}

	for _, res := range []Resource{ResourceAttendance, ResourcePerformance} {
		assert.NoError(t, r.CanWrite(Caller{Role: RoleAdmin}, res, devRecord))
		assert.NoError(t, r.CanWrite(manager, res, devRecord))
		assert.ErrorIs(t, r.CanWrite(manager, res, Target{Department: "SEC"}), ErrOtherDepartment)
		assert.ErrorIs(t, r.CanWrite(Caller{Role: RoleManager}, res, devRecord), ErrNoDepartment)
		assert.ErrorIs(t, r.CanWrite(Caller{Role: RoleEmployee, EmployeeID: "DEV-002"}, res, devRecord), ErrPrivilegeRequired)
	}

	for _, res := range []Resource{ResourceEmployee, ResourceKPI} {
		assert.NoError(t, r.CanWrite(Caller{Role: RoleAdmin}, res, devRecord))
		assert.ErrorIs(t, r.CanWrite(manager, res, devRecord), ErrAdminRequired)
		assert.ErrorIs(t, r.CanWrite(Caller{Role: RoleEmployee, EmployeeID: "DEV-002"}, res, Target{}), ErrAdminRequired)
	}
}

func TestCanDeleteAndBulkImport(t *testing.T) {
	r := NewResolver(testDepartments)
	admin := Caller{Role: RoleAdmin}
	manager := Caller{Role: RoleManager, Department: "DEV"}
	employee := Caller{Role: RoleEmployee, EmployeeID: "DEV-002"}

	for _, res := range []Resource{ResourceEmployee, ResourceAttendance, ResourcePerformance, ResourceKPI} {
		assert.NoError(t, r.CanDelete(admin, res))
		assert.ErrorIs(t, r.CanDelete(manager, res), ErrAdminRequired)
		assert.ErrorIs(t, r.CanDelete(employee, res), ErrAdminRequired)
	}

	assert.NoError(t, r.CanBulkImport(manager, ResourceAttendance))
	assert.NoError(t, r.CanBulkImport(admin, ResourcePerformance))
	assert.ErrorIs(t, r.CanBulkImport(Caller{Role: RoleManager}, ResourceAttendance), ErrNoDepartment)
	assert.ErrorIs(t, r.CanBulkImport(employee, ResourcePerformance), ErrPrivilegeRequired)
	assert.ErrorIs(t, r.CanBulkImport(manager, ResourceEmployee), ErrAdminRequired)
}

func TestForbiddenIsDistinguishable(t *testing.T) {
	r := NewResolver(testDepartments)
	err := r.CanRead(Caller{Role: RoleManager, Department: "QA"}, ResourceEmployee, Target{Department: "DEV"})
	require.Error(t, err)

	notFound := errors.New("employee not found")
	assert.True(t, errors.Is(err, ErrForbidden))
	assert.False(t, errors.Is(err, notFound))
}

func TestResolver_Departments(t *testing.T) {
	custom := []string{"OPS", "HR"}
	r := NewResolver(custom)

	assert.True(t, r.ValidDepartment("OPS"))
	assert.False(t, r.ValidDepartment("DEV"))

	got := r.Departments()
	got[0] = "MUTATED"
	assert.Equal(t, []string{"OPS", "HR"}, r.Departments())
}
