package web

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/me/civicflow/internal/access"
	"github.com/me/civicflow/internal/api"
	"github.com/me/civicflow/internal/console"
	"github.com/me/civicflow/pkg/model"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	snap := s.console.Session.Snapshot()
	respondOK(w, r, map[string]any{
		"status":        "healthy",
		"session":       snap.State.String(),
		"authenticated": snap.Authenticated,
		"api":           s.console.API.BaseURL(),
	})
}

// handleNotFound is a navigation to a path with no view: the access rules
// still choose where it lands.
func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	s.accessMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, r, http.StatusNotFound, "no view at "+r.URL.Path)
	})).ServeHTTP(w, r)
}

// decode reads a JSON body or, for form posts, the parsed form into dst.
func decode(r *http.Request, dst any) error {
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
			return fmt.Errorf("decode body: %w", err)
		}
		return nil
	}
	if err := r.ParseForm(); err != nil {
		return fmt.Errorf("parse form: %w", err)
	}
	return decodeForm(r.PostForm, dst)
}

func (s *Server) handleLoginView(w http.ResponseWriter, r *http.Request) {
	respondOK(w, r, s.console.Session.Snapshot())
}

type loginForm struct {
	PhoneNumber string `json:"phoneNumber"`
	Password    string `json:"password"`
	Remember    bool   `json:"remember"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var f loginForm
	if err := decode(r, &f); err != nil {
		respondError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	sess, err := s.console.Login(r.Context(), f.PhoneNumber, f.Password, f.Remember)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	http.Redirect(w, r, access.PolicyFor(sess.User.Role).Default, http.StatusSeeOther)
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	s.console.Logout(r.Context())
	http.Redirect(w, r, access.PathLogin, http.StatusSeeOther)
}

func (s *Server) handleNav(w http.ResponseWriter, r *http.Request) {
	items := s.console.Navigation()
	if len(items) == 0 {
		http.Redirect(w, r, access.PathLogin, http.StatusSeeOther)
		return
	}
	respondOK(w, r, items)
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	dash, err := s.console.Dashboard(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	respondOK(w, r, dash)
}

func (s *Server) handleAnalytics(w http.ResponseWriter, r *http.Request) {
	a, err := s.console.Analytics(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	respondOK(w, r, a)
}

func reportView(r *http.Request) (string, bool) {
	view := chi.URLParam(r, "view")
	switch view {
	case console.ViewAssigned, console.ViewPending, console.ViewInProgress, console.ViewResolved:
		return view, true
	}
	return view, false
}

func (s *Server) handleReports(w http.ResponseWriter, r *http.Request) {
	view, ok := reportView(r)
	if !ok {
		respondError(w, r, http.StatusNotFound, "unknown report view "+view)
		return
	}
	reports, err := s.console.Reports(r.Context(), view)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	respondOK(w, r, reports)
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	view, ok := reportView(r)
	if !ok {
		respondError(w, r, http.StatusNotFound, "unknown report view "+view)
		return
	}
	id := chi.URLParam(r, "id")
	reports, err := s.console.Reports(r.Context(), view)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	summary := console.Find(reports, id)
	if summary == nil {
		summary = &model.Report{ID: id}
	}
	report, err := s.console.ReportDetails(r.Context(), summary)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	respondOK(w, r, report)
}

func (s *Server) handleReportStatus(w http.ResponseWriter, r *http.Request) {
	res, err := s.console.API.UpdateReportStatus(r.Context(), chi.URLParam(r, "id"), r.URL.Query().Get("status"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	respondOK(w, r, res)
}

func (s *Server) handleReportAssign(w http.ResponseWriter, r *http.Request) {
	var a api.Assignment
	if err := decode(r, &a); err != nil {
		respondError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	a.ReportID = chi.URLParam(r, "id")
	res, err := s.console.API.AssignReport(r.Context(), a)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	respondOK(w, r, res)
}

// handleReportExport streams the exported file. Headers are written before
// the download starts, so a failure mid-stream truncates the body.
func (s *Server) handleReportExport(w http.ResponseWriter, r *http.Request) {
	id := model.StripReportID(chi.URLParam(r, "id"))
	format := strings.ToLower(r.URL.Query().Get("format"))
	if format == "" {
		format = "pdf"
	}
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "report-"+id+"."+format))
	bw := &bufferedStart{w: w}
	if _, err := s.console.API.ExportReport(r.Context(), id, format, bw); err != nil {
		if !bw.started {
			w.Header().Del("Content-Disposition")
			s.fail(w, r, err)
			return
		}
		s.logger.Warn("export download interrupted", "report", id, "error", err)
	}
}

// bufferedStart writes the 200 header on the first body write.
type bufferedStart struct {
	w       http.ResponseWriter
	started bool
}

func (b *bufferedStart) Write(p []byte) (int, error) {
	if !b.started {
		b.started = true
		b.w.Header().Set("Content-Type", "application/octet-stream")
		b.w.WriteHeader(http.StatusOK)
	}
	return b.w.Write(p)
}

func (s *Server) handleDepartments(w http.ResponseWriter, r *http.Request) {
	deps, err := s.console.API.Departments(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	respondOK(w, r, deps)
}

func (s *Server) handleDepartment(w http.ResponseWriter, r *http.Request) {
	v, err := s.console.Department(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	respondOK(w, r, v)
}

func (s *Server) handleDepartmentReport(w http.ResponseWriter, r *http.Request) {
	report, err := s.console.DepartmentReport(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "reportID"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	respondOK(w, r, report)
}

func (s *Server) handleCreateDepartment(w http.ResponseWriter, r *http.Request) {
	var d model.NewDepartment
	if err := decode(r, &d); err != nil {
		respondError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	created, err := s.console.API.CreateDepartment(r.Context(), d)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	respondOK(w, r, created)
}

func (s *Server) handleOperators(w http.ResponseWriter, r *http.Request) {
	dept := r.URL.Query().Get("department")
	if dept == "" {
		if u := s.console.Session.CurrentUser(); u != nil {
			dept = u.DepartmentID
		}
	}
	ops, err := s.console.API.DepartmentOperators(r.Context(), dept)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	respondOK(w, r, ops)
}

func (s *Server) handleOperator(w http.ResponseWriter, r *http.Request) {
	v, err := s.console.Operator(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	respondOK(w, r, v)
}

func (s *Server) handleOperatorReport(w http.ResponseWriter, r *http.Request) {
	report, err := s.console.OperatorReport(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "reportID"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	respondOK(w, r, report)
}

func (s *Server) handleCreateOperator(w http.ResponseWriter, r *http.Request) {
	var o model.NewOperator
	if err := decode(r, &o); err != nil {
		respondError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	created, err := s.console.API.CreateOperator(r.Context(), o)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	respondOK(w, r, created)
}

func (s *Server) handleSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := s.console.API.Settings(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	respondOK(w, r, settings)
}

func (s *Server) handleUpdateSettings(w http.ResponseWriter, r *http.Request) {
	var update model.Settings
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		respondError(w, r, http.StatusBadRequest, "decode body: "+err.Error())
		return
	}
	settings, err := s.console.API.UpdateSettings(r.Context(), update)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	respondOK(w, r, settings)
}

func (s *Server) handleNotifications(w http.ResponseWriter, r *http.Request) {
	items, err := s.console.API.Notifications(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	respondOK(w, r, items)
}
