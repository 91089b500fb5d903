package postgresql

import (
	"testing"

	"github.com/insighthr/insighthr-backend-go/internal/domain/access"
	"github.com/stretchr/testify/assert"
)

func TestScopeClause(t *testing.T) {
	cases := []struct {
		name     string
		scope    access.Scope
		wantSQL  string
		wantArgs []any
		wantNext int
	}{
		{"all", access.AllScope(), "TRUE", nil, 3},
		{"department", access.DepartmentScope("DEV"), "a.department = $3", []any{"DEV"}, 4},
		{"self", access.SelfScope("DEV-002"), "a.employee_id = $3", []any{"DEV-002"}, 4},
		{"empty department", access.DepartmentScope(""), "FALSE", nil, 3},
		{"denied", access.DeniedScope(access.ErrNoDepartment), "FALSE", nil, 3},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			sql, args, next := scopeClause(c.scope, "a", 3)
			assert.Equal(t, c.wantSQL, sql)
			assert.Equal(t, c.wantArgs, args)
			assert.Equal(t, c.wantNext, next)
		})
	}
}
