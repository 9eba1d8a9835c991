package model

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Role is the access-control classification of an authenticated principal.
type Role string

const (
	// RoleAdmin administers every department and operator.
	RoleAdmin Role = "admin"
	// RoleDepartmentHead manages a single department and its operators.
	RoleDepartmentHead Role = "departmentHead"
	// RoleOperator works the reports assigned to them.
	RoleOperator Role = "operator"
	// RoleCitizen is recognized by the backend but has no console surface.
	RoleCitizen Role = "citizen"
)

// String returns the canonical role name.
func (r Role) String() string {
	return string(r)
}

// Known reports whether r is one of the four canonical roles.
func (r Role) Known() bool {
	switch r {
	case RoleAdmin, RoleDepartmentHead, RoleOperator, RoleCitizen:
		return true
	}
	return false
}

// RoleFromBackend maps a backend role string to its canonical Role.
// Matching is exact on the backend spellings; anything unmapped passes
// through lower-cased rather than being rejected.
func RoleFromBackend(s string) Role {
	switch s {
	case "admin", "SUPER_ADMIN":
		return RoleAdmin
	case "department_head", "DEPARTMENT_HEAD":
		return RoleDepartmentHead
	case "operator", "OPERATOR":
		return RoleOperator
	case "citizen", "CITIZEN":
		return RoleCitizen
	}
	return Role(strings.ToLower(s))
}

// Profile is the cached user profile persisted next to the bearer token.
type Profile struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Role         Role   `json:"role"`
	Department   string `json:"department"`
	DepartmentID string `json:"departmentId"`
}

// BackendUser is the raw user object returned by the login endpoint.
type BackendUser struct {
	ID           json.RawMessage `json:"id"`
	FullName     string          `json:"fullName"`
	Email        string          `json:"email"`
	Role         string          `json:"role"`
	Department   string          `json:"department"`
	DepartmentID json.RawMessage `json:"departmentId"`
}

// ProfileFromBackend converts the login payload's user into a Profile.
func ProfileFromBackend(u BackendUser) Profile {
	return Profile{
		ID:           rawID(u.ID),
		Name:         u.FullName,
		Email:        u.Email,
		Role:         RoleFromBackend(u.Role),
		Department:   u.Department,
		DepartmentID: rawID(u.DepartmentID),
	}
}

// rawID renders a JSON id that may be a number or a string.
func rawID(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return ""
	}
	return stringID(v)
}

// stringID renders a decoded JSON value as an identifier string.
func stringID(v any) string {
	switch id := v.(type) {
	case string:
		return id
	case float64:
		return strconv.FormatFloat(id, 'f', -1, 64)
	case json.Number:
		return id.String()
	case int:
		return strconv.Itoa(id)
	case int64:
		return strconv.FormatInt(id, 10)
	}
	return ""
}
