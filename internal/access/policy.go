package access

import (
	"fmt"
	"slices"

	"github.com/me/civicflow/pkg/model"
)

// Policy is the fixed set of paths a role may open.
type Policy struct {
	Allowed []string
	Default string
	// OwnDepartmentOnly restricts detail routes under /departments/ to the
	// principal's own department.
	OwnDepartmentOnly bool
}

// PolicyFor returns the policy for role. Roles without console access,
// including ones the console does not recognize, get an empty policy whose
// default is the login path.
func PolicyFor(role model.Role) Policy {
	switch role {
	case model.RoleOperator:
		return Policy{
			Allowed: []string{
				PathReportsAssigned,
				PathReportsPending,
				PathReportsInProgress,
				PathReportsResolved,
				PathSettings,
				PathNotifications,
			},
			Default: PathReportsAssigned,
		}
	case model.RoleDepartmentHead:
		return Policy{
			Allowed: []string{
				PathDashboard,
				PathReportsPending,
				PathReportsInProgress,
				PathReportsResolved,
				PathDepartments,
				PathOperators,
				PathSettings,
				PathNotifications,
			},
			Default:           PathDashboard,
			OwnDepartmentOnly: true,
		}
	case model.RoleAdmin:
		return Policy{
			Allowed: []string{
				PathDashboard,
				PathReportsPending,
				PathReportsInProgress,
				PathReportsResolved,
				PathDepartments,
				PathOperators,
				PathSettings,
				PathNotifications,
			},
			Default: PathDashboard,
		}
	case model.RoleCitizen:
		return Policy{Default: PathLogin}
	default:
		return Policy{Default: PathLogin}
	}
}

// Allows reports whether path is one of the allowed entries.
func (p Policy) Allows(path string) bool {
	return slices.Contains(p.Allowed, path)
}

// Navigation returns the sidebar entries for role, in display order.
func Navigation(role model.Role) []NavItem {
	switch role {
	case model.RoleOperator:
		items := []NavItem{{Name: "Assigned Reports", Path: PathReportsAssigned}}
		items = append(items, reportLists...)
		return append(items, NavItem{Name: "Settings", Path: PathSettings})
	case model.RoleDepartmentHead:
		items := []NavItem{{Name: "Dashboard", Path: PathDashboard}}
		items = append(items, reportLists...)
		return append(items,
			NavItem{Name: "Operators", Path: PathOperators},
			NavItem{Name: "Settings", Path: PathSettings},
		)
	case model.RoleAdmin:
		items := []NavItem{{Name: "Dashboard", Path: PathDashboard}}
		items = append(items, reportLists...)
		return append(items,
			NavItem{Name: "Departments", Path: PathDepartments},
			NavItem{Name: "Settings", Path: PathSettings},
		)
	case model.RoleCitizen:
		return nil
	default:
		return nil
	}
}

// ReportsEndpoint returns the report-list endpoint serving role.
func ReportsEndpoint(role model.Role) (string, error) {
	switch role {
	case model.RoleAdmin:
		return "/reports/admin", nil
	case model.RoleDepartmentHead:
		return "/reports/department", nil
	case model.RoleOperator:
		return "/reports/operator", nil
	case model.RoleCitizen:
		return "", fmt.Errorf("role %s has no report list", role)
	default:
		return "", fmt.Errorf("unknown role %q", role)
	}
}
