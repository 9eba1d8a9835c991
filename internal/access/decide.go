package access

import (
	"strings"

	"github.com/me/civicflow/pkg/model"
)

// Principal is who is navigating. The zero value is unauthenticated.
type Principal struct {
	Authenticated bool
	Role          model.Role
	DepartmentID  string
}

// PrincipalFor builds a Principal from the current user; nil means nobody
// is signed in.
func PrincipalFor(user *model.Profile) Principal {
	if user == nil {
		return Principal{}
	}
	return Principal{
		Authenticated: true,
		Role:          user.Role,
		DepartmentID:  user.DepartmentID,
	}
}

// Decision is the outcome of a navigation attempt: either the view is
// permitted, or the console must replace the location with Redirect.
type Decision struct {
	Permit   bool   `json:"permit"`
	Redirect string `json:"redirect,omitempty"`
}

func permit() Decision {
	return Decision{Permit: true}
}

func redirect(path string) Decision {
	return Decision{Redirect: path}
}

// Decide resolves a navigation attempt in a single pass. It holds no state,
// so repeated calls with the same arguments agree.
func Decide(p Principal, path string) Decision {
	if !p.Authenticated {
		if path == PathLogin {
			return permit()
		}
		return redirect(PathLogin)
	}

	policy := PolicyFor(p.Role)
	if path == PathLogin {
		// A role without console access stays on the login page.
		if policy.Default == PathLogin {
			return permit()
		}
		return redirect(policy.Default)
	}
	if (path == PathRoot || path == PathDashboard) && p.Role == model.RoleOperator {
		return redirect(PathReportsAssigned)
	}
	if policy.Allows(path) {
		return permit()
	}
	for _, allowed := range policy.Allowed {
		if !strings.HasPrefix(path, allowed+"/") {
			continue
		}
		if allowed == PathDepartments && policy.OwnDepartmentOnly && !ownDepartment(p, path) {
			break
		}
		return permit()
	}
	return redirect(policy.Default)
}

// ownDepartment reports whether a /departments/<id>[/...] path names the
// principal's department.
func ownDepartment(p Principal, path string) bool {
	if p.DepartmentID == "" {
		return false
	}
	rest := strings.TrimPrefix(path, PathDepartments+"/")
	id, _, _ := strings.Cut(rest, "/")
	return id == p.DepartmentID
}
