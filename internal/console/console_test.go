package console

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/me/civicflow/internal/access"
	"github.com/me/civicflow/internal/api"
	"github.com/me/civicflow/internal/config"
	"github.com/me/civicflow/internal/store"
	"github.com/me/civicflow/pkg/model"
)

type recorder struct {
	mu    sync.Mutex
	paths []string
}

func (r *recorder) Replace(path string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.paths = append(r.paths, path)
}

func (r *recorder) calls() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.paths...)
}

type fixture struct {
	console *Console
	nav     *recorder
	eph     *store.MemoryStorage
	dur     *store.MemoryStorage
}

func newFixture(t *testing.T, h http.Handler) *fixture {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	cfg := config.Default()
	cfg.APIURL = srv.URL
	cfg.HTTPRetries = 0

	f := &fixture{nav: &recorder{}, eph: store.NewMemoryStorage(), dur: store.NewMemoryStorage()}
	f.console = New(Deps{Config: cfg, Ephemeral: f.eph, Durable: f.dur, Navigator: f.nav})
	t.Cleanup(f.console.Close)
	return f
}

func (f *fixture) signIn(t *testing.T, user model.Profile) {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte("k"))
	require.NoError(t, err)
	require.NoError(t, f.console.Tokens.SetToken(tok, user, model.TierEphemeral))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

var (
	adminUser = model.Profile{ID: "1", Name: "Ada", Role: model.RoleAdmin}
	headUser  = model.Profile{ID: "2", Name: "Dana", Role: model.RoleDepartmentHead, DepartmentID: "3"}
	opUser    = model.Profile{ID: "9", Name: "Omar", Role: model.RoleOperator}
)

func adminBackend(activity http.HandlerFunc) *http.ServeMux {
	if activity == nil {
		activity = func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, 200, []map[string]any{{"action": "created"}})
		}
	}
	mux := http.NewServeMux()
	mux.HandleFunc("GET /admin/dashboard/stats", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, 200, map[string]any{"totalReports": 40})
	})
	mux.HandleFunc("GET /admin/dashboard/chart-data", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, 200, map[string]any{"pieData": []map[string]any{{"name": "in-progress", "value": 2}}})
	})
	mux.HandleFunc("GET /admin/dashboard/recent-activity", activity)
	mux.HandleFunc("GET /admin/departments/data", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, 200, map[string]any{"departmentWorkload": []map[string]any{{"department": "Roads", "active": 3}}})
	})
	return mux
}

func TestNew_StartsReady(t *testing.T) {
	f := newFixture(t, http.NotFoundHandler())
	snap := f.console.Session.Snapshot()
	require.Equal(t, "ready", snap.State.String())
	require.False(t, snap.Authenticated)
}

func TestNavigate(t *testing.T) {
	f := newFixture(t, http.NotFoundHandler())
	require.Equal(t, access.Decision{Redirect: access.PathLogin}, f.console.Navigate(access.PathDashboard))

	f.signIn(t, opUser)
	require.Equal(t, access.Decision{Redirect: access.PathReportsAssigned}, f.console.Navigate(access.PathRoot))
	require.True(t, f.console.Navigate(access.PathReportsAssigned).Permit)
	require.Equal(t, access.PathReportsAssigned, f.console.Navigation()[0].Path)
}

func TestDashboard_Admin(t *testing.T) {
	f := newFixture(t, adminBackend(nil))
	f.signIn(t, adminUser)

	dash, err := f.console.Dashboard(context.Background())
	require.NoError(t, err)
	require.Equal(t, 40.0, dash.Stats["totalReports"])
	require.Equal(t, "In Progress", dash.Charts.PieData[0]["name"])
	require.Len(t, dash.Activity, 1)
	require.Equal(t, "Roads", dash.Workload.Workload[0].Department)
	require.Nil(t, dash.Department)
}

func TestDashboard_DepartmentHead(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /admin/departments/3", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, 200, map[string]any{"id": 3, "name": "Roads"})
	})
	mux.HandleFunc("GET /admin/reports/department/3", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, 200, []map[string]any{{"id": 11}, {"id": 12}})
	})
	f := newFixture(t, mux)
	f.signIn(t, headUser)

	dash, err := f.console.Dashboard(context.Background())
	require.NoError(t, err)
	require.Equal(t, "Roads", dash.Department.Name)
	require.Len(t, dash.Reports, 2)
	require.Nil(t, dash.Stats)
}

func TestDashboard_FailsTogether(t *testing.T) {
	f := newFixture(t, adminBackend(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, 500, map[string]any{"message": "activity unavailable"})
	}))
	f.signIn(t, adminUser)

	dash, err := f.console.Dashboard(context.Background())
	require.Nil(t, dash)
	var fe *api.FetchError
	require.ErrorAs(t, err, &fe)
	require.Equal(t, "activity unavailable", fe.Message)
}

func TestDashboard_NotSignedIn(t *testing.T) {
	f := newFixture(t, adminBackend(nil))
	_, err := f.console.Dashboard(context.Background())
	require.ErrorIs(t, err, api.ErrNotAuthenticated)
}

func TestAuthExpired_NavigatesOnce(t *testing.T) {
	f := newFixture(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, 401, map[string]any{"message": "expired"})
	}))
	f.signIn(t, adminUser)
	require.True(t, f.console.Navigate(access.PathDashboard).Permit)

	_, err := f.console.Dashboard(context.Background())
	require.ErrorIs(t, err, api.ErrAuthExpired)
	require.Equal(t, []string{access.PathLogin}, f.nav.calls())
	require.Zero(t, f.eph.Len())
	require.Zero(t, f.dur.Len())
	require.False(t, f.console.Session.Snapshot().Authenticated)

	// A new session re-arms the redirect.
	f.signIn(t, adminUser)
	require.True(t, f.console.Navigate(access.PathDashboard).Permit)
	_, err = f.console.API.DashboardStats(context.Background())
	require.ErrorIs(t, err, api.ErrAuthExpired)
	require.Equal(t, []string{access.PathLogin, access.PathLogin}, f.nav.calls())
}

func TestReportDetails_Reconciles(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /reports/operator", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, 200, []map[string]any{
			{"id": 42, "title": "Pothole", "priority": "HIGH", "status": "PENDING", "department": "Roads"},
		})
	})
	mux.HandleFunc("GET /api/complaints/42", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, 200, map[string]any{
			"id": 42, "priority": nil, "status": "", "department": nil,
			"description": "Deep pothole near school",
			"coordinates": map[string]any{"lat": 1.0, "lng": 2.0},
			"attachments": []any{},
		})
	})
	f := newFixture(t, mux)
	f.signIn(t, opUser)
	ctx := context.Background()

	summary, err := f.console.FindReport(ctx, ViewPending, "R42")
	require.NoError(t, err)

	full, err := f.console.ReportDetails(ctx, summary)
	require.NoError(t, err)
	require.Equal(t, model.PriorityHigh, full.Priority)
	require.Equal(t, model.ReportStatusPending, full.Status)
	require.Equal(t, "Roads", full.Department)
	require.Equal(t, "Pothole", full.Title)
	require.Equal(t, "Deep pothole near school", full.Description)
	require.Equal(t, &model.Coordinates{Lat: 1, Lng: 2}, full.Coordinates)

	_, err = f.console.FindReport(ctx, ViewPending, "99")
	require.Error(t, err)
	_, err = f.console.Reports(ctx, "archived")
	require.Error(t, err)
}

func TestDepartmentAndOperatorViews(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /admin/departments/3", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, 200, map[string]any{"id": 3, "name": "Roads"})
	})
	mux.HandleFunc("GET /admin/departments/3/operators", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, 200, []map[string]any{{"id": 9, "name": "Omar"}})
	})
	mux.HandleFunc("GET /admin/reports/department/3", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, 200, []map[string]any{{"id": 11}})
	})
	mux.HandleFunc("GET /admin/departments/operators/9", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, 200, map[string]any{"id": 9, "name": "Omar", "status": "busy"})
	})
	mux.HandleFunc("GET /admin/departments/operators/9/reports", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, 200, []map[string]any{{"id": 11}, {"id": 12}})
	})
	f := newFixture(t, mux)
	f.signIn(t, adminUser)
	ctx := context.Background()

	dv, err := f.console.Department(ctx, "3")
	require.NoError(t, err)
	require.Equal(t, "Roads", dv.Department.Name)
	require.Len(t, dv.Operators, 1)
	require.Len(t, dv.Reports, 1)

	ov, err := f.console.Operator(ctx, "9")
	require.NoError(t, err)
	require.Equal(t, "busy", ov.Operator.Status)
	require.Len(t, ov.Reports, 2)
}

func TestPageReports_Reconcile(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /admin/reports/department/3", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, 200, []map[string]any{{"id": 11, "title": "Broken light", "priority": "LOW", "assignedToDepartment": "Roads"}})
	})
	mux.HandleFunc("GET /admin/departments/operators/9/reports", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, 200, []map[string]any{{"id": 11, "title": "Broken light", "status": "IN_PROGRESS"}})
	})
	mux.HandleFunc("GET /api/complaints/11", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, 200, map[string]any{"id": 11, "priority": nil, "status": "", "description": "Flickering since Monday"})
	})
	mux.HandleFunc("GET /api/complaints/12", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, 200, map[string]any{"title": "Graffiti"})
	})
	f := newFixture(t, mux)
	f.signIn(t, adminUser)
	ctx := context.Background()

	fromDept, err := f.console.DepartmentReport(ctx, "3", "R11")
	require.NoError(t, err)
	require.Equal(t, "Broken light", fromDept.Title)
	require.Equal(t, model.PriorityLow, fromDept.Priority)
	require.Equal(t, "Roads", fromDept.Department)
	require.Equal(t, "Flickering since Monday", fromDept.Description)

	fromOp, err := f.console.OperatorReport(ctx, "9", "11")
	require.NoError(t, err)
	require.Equal(t, model.ReportStatusInProgress, fromOp.Status)
	require.Equal(t, "Flickering since Monday", fromOp.Description)

	// Not on the page: details alone.
	missing, err := f.console.DepartmentReport(ctx, "3", "12")
	require.NoError(t, err)
	require.Equal(t, "12", missing.ID)
	require.Equal(t, "Graffiti", missing.Title)

	_, err = f.console.OperatorReport(ctx, "9", "R")
	var ve *model.ValidationError
	require.ErrorAs(t, err, &ve)
}

func TestFind(t *testing.T) {
	reports := []model.Report{{ID: "R1"}, {ID: "2"}}
	require.Equal(t, "R1", Find(reports, "1").ID)
	require.Equal(t, "2", Find(reports, "R2").ID)
	require.Nil(t, Find(reports, "3"))
}
