package access

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/me/civicflow/pkg/model"
)

var (
	admin    = Principal{Authenticated: true, Role: model.RoleAdmin}
	operator = Principal{Authenticated: true, Role: model.RoleOperator}
	head     = Principal{Authenticated: true, Role: model.RoleDepartmentHead, DepartmentID: "42"}
	citizen  = Principal{Authenticated: true, Role: model.RoleCitizen}
	stranger = Principal{Authenticated: true, Role: model.Role("auditor")}
)

func TestDecide(t *testing.T) {
	tests := []struct {
		name string
		p    Principal
		path string
		want Decision
	}{
		{"anonymous login", Principal{}, PathLogin, permit()},
		{"anonymous dashboard", Principal{}, PathDashboard, redirect(PathLogin)},
		{"anonymous root", Principal{}, PathRoot, redirect(PathLogin)},

		{"admin on login", admin, PathLogin, redirect(PathDashboard)},
		{"operator on login", operator, PathLogin, redirect(PathReportsAssigned)},

		{"operator root", operator, PathRoot, redirect(PathReportsAssigned)},
		{"operator dashboard", operator, PathDashboard, redirect(PathReportsAssigned)},
		{"operator assigned", operator, PathReportsAssigned, permit()},
		{"operator pending", operator, PathReportsPending, permit()},
		{"operator settings", operator, PathSettings, permit()},
		{"operator departments", operator, PathDepartments, redirect(PathReportsAssigned)},
		{"operator operators detail", operator, "/operators/3", redirect(PathReportsAssigned)},

		{"admin root", admin, PathRoot, redirect(PathDashboard)},
		{"admin dashboard", admin, PathDashboard, permit()},
		{"admin department detail", admin, "/departments/42", permit()},
		{"admin department reports", admin, "/departments/42/reports", permit()},
		{"admin no slash boundary", admin, "/departments42", redirect(PathDashboard)},
		{"admin operator detail", admin, "/operators/9", permit()},
		{"admin assigned", admin, PathReportsAssigned, redirect(PathDashboard)},
		{"admin notifications", admin, PathNotifications, permit()},
		{"admin unknown path", admin, "/billing", redirect(PathDashboard)},
		{"admin analytics", admin, PathAnalytics, permit()},
		{"operator analytics", operator, PathAnalytics, redirect(PathReportsAssigned)},

		{"head dashboard", head, PathDashboard, permit()},
		{"head department list", head, PathDepartments, permit()},
		{"head own department", head, "/departments/42", permit()},
		{"head own department operators", head, "/departments/42/operators", permit()},
		{"head other department", head, "/departments/7", redirect(PathDashboard)},
		{"head operators detail", head, "/operators/5", permit()},
		{"head assigned", head, PathReportsAssigned, redirect(PathDashboard)},

		{"citizen dashboard", citizen, PathDashboard, redirect(PathLogin)},
		{"citizen login", citizen, PathLogin, permit()},
		{"unknown role settings", stranger, PathSettings, redirect(PathLogin)},
		{"unknown role login", stranger, PathLogin, permit()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, Decide(tt.p, tt.path))
		})
	}
}

func TestDecide_Idempotent(t *testing.T) {
	for _, p := range []Principal{{}, admin, operator, head, stranger} {
		for _, path := range []string{PathRoot, PathDashboard, "/departments/42", PathSettings, PathLogin} {
			first := Decide(p, path)
			for range 5 {
				require.Equal(t, first, Decide(p, path), "role=%s path=%s", p.Role, path)
			}
		}
	}
}

func TestDecide_HeadWithoutDepartment(t *testing.T) {
	p := Principal{Authenticated: true, Role: model.RoleDepartmentHead}
	require.Equal(t, redirect(PathDashboard), Decide(p, "/departments/42"))
	require.Equal(t, permit(), Decide(p, PathDepartments))
}

func TestPrincipalFor(t *testing.T) {
	require.Equal(t, Principal{}, PrincipalFor(nil))
	got := PrincipalFor(&model.Profile{ID: "1", Role: model.RoleDepartmentHead, DepartmentID: "42"})
	require.Equal(t, head, got)
}

func TestPolicyFor(t *testing.T) {
	require.Equal(t, PathReportsAssigned, PolicyFor(model.RoleOperator).Default)
	require.Equal(t, PathDashboard, PolicyFor(model.RoleAdmin).Default)
	require.Equal(t, PathDashboard, PolicyFor(model.RoleDepartmentHead).Default)
	require.True(t, PolicyFor(model.RoleDepartmentHead).OwnDepartmentOnly)
	require.Empty(t, PolicyFor(model.RoleCitizen).Allowed)
	require.Equal(t, PathLogin, PolicyFor("").Default)
}

func TestNavigation(t *testing.T) {
	paths := func(items []NavItem) []string {
		out := make([]string, len(items))
		for i, it := range items {
			out[i] = it.Path
		}
		return out
	}
	require.Equal(t, []string{
		PathReportsAssigned, PathReportsPending, PathReportsInProgress, PathReportsResolved, PathSettings,
	}, paths(Navigation(model.RoleOperator)))
	require.Equal(t, []string{
		PathDashboard, PathReportsPending, PathReportsInProgress, PathReportsResolved, PathOperators, PathSettings,
	}, paths(Navigation(model.RoleDepartmentHead)))
	require.Equal(t, []string{
		PathDashboard, PathReportsPending, PathReportsInProgress, PathReportsResolved, PathDepartments, PathSettings,
	}, paths(Navigation(model.RoleAdmin)))
	require.Empty(t, Navigation(model.RoleCitizen))

	// Every navigation entry is reachable by its role.
	for _, p := range []Principal{admin, operator, head} {
		for _, item := range Navigation(p.Role) {
			require.True(t, Decide(p, item.Path).Permit, "role=%s path=%s", p.Role, item.Path)
		}
	}
}

func TestReportsEndpoint(t *testing.T) {
	for role, want := range map[model.Role]string{
		model.RoleAdmin:          "/reports/admin",
		model.RoleDepartmentHead: "/reports/department",
		model.RoleOperator:       "/reports/operator",
	} {
		got, err := ReportsEndpoint(role)
		require.NoError(t, err)
		require.Equal(t, want, got)
	}
	_, err := ReportsEndpoint(model.RoleCitizen)
	require.Error(t, err)
	_, err = ReportsEndpoint("auditor")
	require.Error(t, err)
}
