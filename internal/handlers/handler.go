package handlers

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/a-h/templ"
	"github.com/go-chi/chi/v5"
	"github.com/go-faster/errors"
	"go.uber.org/zap"

	"github.com/brunotome93/white-flywire-exercise/internal/adapters/employeeapi"
	"github.com/brunotome93/white-flywire-exercise/internal/domain"
	"github.com/brunotome93/white-flywire-exercise/internal/forms"
	"github.com/brunotome93/white-flywire-exercise/internal/middleware"
	"github.com/brunotome93/white-flywire-exercise/internal/ports"
)

// Messages shown by the list and detail pages.
const (
	MsgLoadFailed       = "Failed to load employees. Please try again."
	MsgFilterFailed     = "Failed to filter employees. Please try again."
	MsgDeactivateFailed = "Failed to deactivate employee."
	MsgDetailFailed     = "Failed to load employee details."
	MsgNotFound         = "Employee not found"
)

// Options tune the handler. Zero values fall back to defaults.
type Options struct {
	// RedirectDelay is the pause between a successful add and the list.
	RedirectDelay time.Duration
	// RateLimitPerMinute caps POSTs per client IP. Zero disables it.
	RateLimitPerMinute int
	// Now returns the current time; hire dates after its calendar date are
	// rejected.
	Now func() time.Time
}

type Handler struct {
	svc       ports.EmployeeService
	exporters map[string]ports.RosterExporter
	log       *zap.SugaredLogger
	opts      Options
}

func New(svc ports.EmployeeService, exporters []ports.RosterExporter, log *zap.SugaredLogger, opts Options) *Handler {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.RedirectDelay < 0 {
		opts.RedirectDelay = 0
	}
	byExt := make(map[string]ports.RosterExporter, len(exporters))
	for _, e := range exporters {
		byExt[e.Extension()] = e
	}
	return &Handler{svc: svc, exporters: byExt, log: log, opts: opts}
}

func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()
	r.Get("/", h.index)
	r.Get("/employee/{id}", h.viewEmployee)
	r.Get("/employee/{id}/deactivate", h.confirmDeactivate)
	r.Get("/add-employee", h.addEmployeeForm)
	r.Get("/export.pdf", h.exportRoster("pdf"))
	r.Get("/export.xlsx", h.exportRoster("xlsx"))
	r.Get("/healthz", h.healthz)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RateLimit(h.opts.RateLimitPerMinute))
		r.Post("/employee/{id}/deactivate", h.deactivate)
		r.Post("/add-employee", h.addEmployee)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		render(w, r, http.StatusNotFound, notFoundPage())
	})
	return r
}

// ---------------------------------------------------------------------------
// List
// ---------------------------------------------------------------------------

// listState is the list view's sort and filter, carried in the page URL.
type listState struct {
	Sort  domain.SortConfig
	Range forms.DateRange
}

func parseListState(values url.Values) listState {
	rng, _ := forms.DecodeDateRange(values)
	return listState{
		Sort:  domain.ParseSortConfig(values.Get("sort"), values.Get("dir")),
		Range: rng,
	}
}

func (s listState) values() url.Values {
	q := url.Values{}
	if !s.Sort.IsZero() {
		q.Set("sort", string(s.Sort.Field))
		q.Set("dir", string(s.Sort.Direction))
	}
	s.Range.Query(q)
	return q
}

func (s listState) href(path string) string {
	if q := s.values().Encode(); q != "" {
		return path + "?" + q
	}
	return path
}

// listing is one load of the list view.
type listing struct {
	Employees   []domain.Employee
	FilterError string
	LoadError   string
	Err         error
}

// load fetches the set the list view shows for s, sorted.
func (h *Handler) load(ctx context.Context, s listState) listing {
	var out listing
	fetch := func(ctx context.Context) {
		out.Employees, out.Err = h.svc.ListActive(ctx)
		if out.Err != nil {
			out.LoadError = MsgLoadFailed
		}
	}

	if s.Range.IsEmpty() {
		fetch(ctx)
	} else {
		err := s.Range.Apply(func(start, end string) {
			out.Employees, out.Err = h.svc.ListByHireDateRange(ctx, start, end)
			if out.Err != nil {
				out.LoadError = MsgFilterFailed
			}
		})
		if err != nil {
			out.FilterError = forms.Message(err)
			fetch(ctx)
		}
	}

	if out.Err != nil {
		out.Employees = nil
		return out
	}
	out.Employees = domain.SortEmployees(out.Employees, s.Sort)
	return out
}

func (h *Handler) index(w http.ResponseWriter, r *http.Request) {
	s := parseListState(r.URL.Query())
	l := h.load(r.Context(), s)
	status := http.StatusOK
	if l.Err != nil {
		h.log.Warnw("list employees", "error", l.Err)
		status = http.StatusBadGateway
	}
	render(w, r, status, listPage(s, l, ""))
}

// ---------------------------------------------------------------------------
// Deactivation
// ---------------------------------------------------------------------------

func (h *Handler) confirmDeactivate(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		render(w, r, http.StatusNotFound, detailPage(detailView{State: stateNotFound, Message: MsgNotFound}))
		return
	}
	render(w, r, http.StatusOK, confirmPage(id, parseListState(r.URL.Query())))
}

func (h *Handler) deactivate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	s := parseListState(r.PostForm)
	id, ok := pathID(r, "id")
	if !ok || r.PostForm.Get("confirm") != "yes" {
		http.Redirect(w, r, s.href("/"), http.StatusSeeOther)
		return
	}

	if err := h.svc.Deactivate(r.Context(), id); err != nil {
		h.log.Warnw("deactivate employee", "id", id, "error", err)
		l := h.load(r.Context(), s)
		render(w, r, http.StatusBadGateway, listPage(s, l, MsgDeactivateFailed))
		return
	}
	h.log.Infow("employee deactivated", "id", id)
	http.Redirect(w, r, s.href("/"), http.StatusSeeOther)
}

// ---------------------------------------------------------------------------
// Detail
// ---------------------------------------------------------------------------

func (h *Handler) viewEmployee(w http.ResponseWriter, r *http.Request) {
	back := parseListState(r.URL.Query()).href("/")
	id, ok := pathID(r, "id")
	if !ok {
		render(w, r, http.StatusNotFound, detailPage(detailView{BackHref: back, State: stateNotFound, Message: MsgNotFound}))
		return
	}
	d, err := h.svc.Get(r.Context(), id)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		render(w, r, http.StatusNotFound, detailPage(detailView{BackHref: back, State: stateNotFound, Message: MsgNotFound}))
	case err != nil:
		h.log.Warnw("get employee", "id", id, "error", err)
		render(w, r, http.StatusBadGateway, detailPage(detailView{BackHref: back, State: stateError, Message: MsgDetailFailed}))
	default:
		render(w, r, http.StatusOK, detailPage(detailView{BackHref: back, State: stateLoaded, Employee: d.Employee, Reports: d.DirectReports}))
	}
}

// ---------------------------------------------------------------------------
// Add employee
// ---------------------------------------------------------------------------

func (h *Handler) addEmployeeForm(w http.ResponseWriter, r *http.Request) {
	render(w, r, http.StatusOK, addPage(h.addView(forms.NewEmployeeDraft(), forms.StatusIdle, "")))
}

func (h *Handler) addEmployee(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	draft, err := forms.DecodeEmployeeDraft(r.PostForm)
	if err != nil {
		h.log.Warnw("decode employee form", "error", err)
		render(w, r, http.StatusBadRequest, addPage(h.addView(draft, forms.StatusError, forms.MsgCreateFailed)))
		return
	}

	e, ignored, err := draft.ToEmployee(h.opts.Now())
	if err != nil {
		render(w, r, http.StatusUnprocessableEntity, addPage(h.addView(draft, forms.StatusError, forms.Message(err))))
		return
	}

	if _, err := h.svc.Create(r.Context(), e); err != nil {
		h.log.Warnw("create employee", "id", e.ID, "error", err)
		status := http.StatusBadGateway
		var apiErr *employeeapi.APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode < 500 {
			status = http.StatusUnprocessableEntity
		}
		render(w, r, status, addPage(h.addView(draft, forms.StatusError, employeeapi.UserMessage(err, forms.MsgCreateFailed))))
		return
	}

	h.log.Infow("employee created", "id", e.ID)
	v := h.addView(draft, forms.StatusSuccess, forms.MsgCreated)
	v.Ignored = ignored
	render(w, r, http.StatusCreated, addPage(v))
}

func (h *Handler) addView(d forms.EmployeeDraft, status forms.Status, msg string) addView {
	return addView{
		Draft:      d,
		Status:     status,
		Message:    msg,
		MaxDate:    domain.DateOf(h.opts.Now()).ISO(),
		RedirectMS: h.opts.RedirectDelay.Milliseconds(),
	}
}

// ---------------------------------------------------------------------------
// Export
// ---------------------------------------------------------------------------

// exportRoster streams the current list view in the format registered for ext.
func (h *Handler) exportRoster(ext string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		exp, ok := h.exporters[ext]
		if !ok {
			render(w, r, http.StatusNotFound, notFoundPage())
			return
		}
		h.export(w, r, exp)
	}
}

func (h *Handler) export(w http.ResponseWriter, r *http.Request, exp ports.RosterExporter) {
	s := parseListState(r.URL.Query())
	l := h.load(r.Context(), s)
	if l.FilterError != "" {
		http.Error(w, l.FilterError, http.StatusBadRequest)
		return
	}
	if l.Err != nil {
		h.log.Warnw("export roster", "error", l.Err)
		http.Error(w, l.LoadError, http.StatusBadGateway)
		return
	}

	var buf bytes.Buffer
	if err := exp.Export(r.Context(), rosterTitle(s), l.Employees, &buf); err != nil {
		h.log.Errorw("render roster", "format", exp.Extension(), "error", err)
		http.Error(w, "failed to build roster", http.StatusInternalServerError)
		return
	}
	filename := fmt.Sprintf("employees_%s.%s", h.opts.Now().Format("20060102"), exp.Extension())
	w.Header().Set("Content-Type", exp.ContentType())
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	_, _ = w.Write(buf.Bytes())
}

func rosterTitle(s listState) string {
	if s.Range.IsEmpty() {
		return "Active Employees"
	}
	return fmt.Sprintf("Employees hired %s to %s", s.Range.Start, s.Range.End)
}

func (h *Handler) healthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok"))
}

// render writes a templ component to the response. Nothing is written once
// the request context is done: the browser has gone away.
func render(w http.ResponseWriter, r *http.Request, status int, c templ.Component) {
	if r.Context().Err() != nil {
		return
	}
	var buf bytes.Buffer
	if err := c.Render(r.Context(), &buf); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}

// pathID reads a positive integer route parameter.
func pathID(r *http.Request, key string) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, key))
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
