package model

import "time"

// Department is a municipal department that receives reports.
type Department struct {
	ID                 string `json:"id"`
	Name               string `json:"name"`
	Manager            string `json:"manager,omitempty"`
	Email              string `json:"email,omitempty"`
	Phone              string `json:"phone,omitempty"`
	Address            string `json:"address,omitempty"`
	Description        string `json:"description,omitempty"`
	OpenReports        int    `json:"openReports"`
	ActiveReports      int    `json:"activeReports"`
	ResolvedLast30Days int    `json:"resolvedLast30Days"`
	AvgResolutionTime  string `json:"avgResolutionTime"`
}

// NormalizeDepartment converts a raw department payload.
func NormalizeDepartment(raw map[string]any) Department {
	return Department{
		ID:                 stringID(raw["id"]),
		Name:               str(raw["name"]),
		Manager:            firstString(raw["manager"], raw["departmentHead"]),
		Email:              str(raw["email"]),
		Phone:              str(raw["phone"]),
		Address:            str(raw["address"]),
		Description:        str(raw["description"]),
		OpenReports:        count(raw["openReports"]),
		ActiveReports:      count(raw["activeReports"]),
		ResolvedLast30Days: count(raw["resolvedLast30Days"]),
		AvgResolutionTime:  orNA(raw["avgResolutionTime"]),
	}
}

// NewDepartment is the create-department request body.
type NewDepartment struct {
	Name           string `json:"name"`
	Description    string `json:"description,omitempty"`
	Address        string `json:"address,omitempty"`
	DepartmentHead string `json:"departmentHead,omitempty"`
	Email          string `json:"email,omitempty"`
	Phone          string `json:"phone,omitempty"`
	Password       string `json:"password,omitempty"`
}

// Operator is a field worker belonging to a department.
type Operator struct {
	ID                string     `json:"id"`
	Name              string     `json:"name"`
	Status            string     `json:"status"`
	Workload          int        `json:"workload"`
	Email             string     `json:"email,omitempty"`
	Phone             string     `json:"phone,omitempty"`
	Department        string     `json:"department,omitempty"`
	JoinDate          *time.Time `json:"joinDate,omitempty"`
	CompletedReports  int        `json:"completedReports"`
	AvgResolutionTime string     `json:"avgResolutionTime"`
	Description       string     `json:"description,omitempty"`
}

// NormalizeOperator converts a raw operator payload.
func NormalizeOperator(raw map[string]any) Operator {
	status := str(raw["status"])
	if status == "" {
		status = "available"
	}
	return Operator{
		ID:                stringID(raw["id"]),
		Name:              firstString(raw["name"], raw["operatorName"]),
		Status:            status,
		Workload:          count(raw["workload"]),
		Email:             str(raw["email"]),
		Phone:             firstString(raw["phone"], raw["phoneNumber"]),
		Department:        firstString(raw["department"], raw["specialization"]),
		JoinDate:          parseTime(raw["joinDate"]),
		CompletedReports:  count(raw["completedReports"]),
		AvgResolutionTime: orNA(raw["avgResolutionTime"]),
		Description:       firstString(raw["description"], raw["specialization"]),
	}
}

// NewOperator is the create-operator request body.
type NewOperator struct {
	OperatorName   string `json:"operatorName"`
	PhoneNumber    string `json:"phoneNumber"`
	Password       string `json:"password,omitempty"`
	Email          string `json:"email,omitempty"`
	Specialization string `json:"specialization,omitempty"`
}

func count(v any) int {
	f, _ := v.(float64)
	return int(f)
}

func orNA(v any) string {
	switch tv := v.(type) {
	case string:
		if tv != "" {
			return tv
		}
	case float64:
		if tv != 0 {
			return stringID(tv)
		}
	}
	return "N/A"
}
