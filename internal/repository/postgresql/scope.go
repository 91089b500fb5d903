package postgresql

import (
	"fmt"

	"github.com/insighthr/insighthr-backend-go/internal/domain/access"
)

// scopeClause translates a visibility scope into a WHERE condition on the
// given table alias. It returns the condition, its arguments and the next
// free placeholder index.
func scopeClause(scope access.Scope, alias string, argIdx int) (string, []any, int) {
	switch scope.Kind {
	case access.ScopeAll:
		return "TRUE", nil, argIdx
	case access.ScopeDepartment:
		if scope.Department == "" {
			return "FALSE", nil, argIdx
		}
		return fmt.Sprintf("%s.department = $%d", alias, argIdx), []any{scope.Department}, argIdx + 1
	case access.ScopeSelf:
		if scope.EmployeeID == "" {
			return "FALSE", nil, argIdx
		}
		return fmt.Sprintf("%s.employee_id = $%d", alias, argIdx), []any{scope.EmployeeID}, argIdx + 1
	default:
		return "FALSE", nil, argIdx
	}
}
