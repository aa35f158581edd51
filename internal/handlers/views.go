package handlers

import (
	"context"
	"html/template"
	"io"
	"strconv"

	"github.com/a-h/templ"

	"github.com/brunotome93/white-flywire-exercise/internal/domain"
	"github.com/brunotome93/white-flywire-exercise/internal/forms"
)

// Pages are html/template sets sharing one layout. Each is exposed as a
// templ.Component so handlers render everything through render().

var baseTmpl = template.Must(template.New("base").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>{{.Title}} · Employee Records</title>
<script src="https://unpkg.com/htmx.org@1.9.12"></script>
<link rel="preconnect" href="https://fonts.googleapis.com">
<link rel="preconnect" href="https://fonts.gstatic.com" crossorigin>
<link href="https://fonts.googleapis.com/css2?family=IBM+Plex+Mono:wght@400;500;600&family=IBM+Plex+Sans:wght@300;400;500;600&display=swap" rel="stylesheet">
<script>
  // Error pages carry their own message; swap them like any other page.
  document.addEventListener("htmx:beforeSwap", function (evt) {
    if (evt.detail.xhr.status >= 400) {
      evt.detail.shouldSwap = true;
      evt.detail.isError = false;
    }
  });
</script>
<style>
  :root {
    --ink: #0d1117;
    --paper: #f5f0e8;
    --ledger: #e8e0cc;
    --accent: #c0392b;
    --accent2: #2c6e49;
    --muted: #6b5e4e;
    --rule: #b8a898;
  }
  * { box-sizing: border-box; }
  body {
    background: var(--paper);
    color: var(--ink);
    font-family: 'IBM Plex Sans', sans-serif;
    min-height: 100vh;
    margin: 0;
  }
  a { color: var(--ink); }
  .mono { font-family: 'IBM Plex Mono', monospace; }
  .card {
    background: rgba(255,255,255,0.7);
    border: 1px solid var(--ledger);
    border-left: 4px solid var(--ink);
    padding: 24px;
  }
  .field-label {
    font-family: 'IBM Plex Mono', monospace;
    font-size: 0.6rem;
    font-weight: 600;
    letter-spacing: 0.1em;
    text-transform: uppercase;
    color: var(--muted);
    display: block;
    margin-bottom: 2px;
  }
  input {
    background: white;
    border: 1px solid var(--rule);
    border-bottom: 2px solid var(--ink);
    padding: 6px 8px;
    font-family: 'IBM Plex Mono', monospace;
    font-size: 0.85rem;
    width: 100%;
    outline: none;
  }
  input[type=checkbox] { width: auto; }
  input:focus { border-bottom-color: var(--accent); }
  .btn {
    display: inline-block;
    font-family: 'IBM Plex Mono', monospace;
    font-weight: 600;
    font-size: 0.8rem;
    letter-spacing: 0.08em;
    padding: 8px 18px;
    border: 2px solid var(--ink);
    cursor: pointer;
    text-transform: uppercase;
    text-decoration: none;
    background: white;
    color: var(--ink);
  }
  .btn[disabled] { opacity: 0.5; cursor: wait; }
  .btn-primary { background: var(--ink); color: white; }
  .btn-primary:hover { background: var(--accent); border-color: var(--accent); }
  .btn-danger { color: var(--accent); border-color: var(--accent); }
  .btn-danger:hover { background: var(--accent); color: white; }
  .btn-sm { padding: 3px 10px; font-size: 0.7rem; }
  .section-header {
    font-family: 'IBM Plex Mono', monospace;
    font-size: 0.7rem;
    font-weight: 600;
    letter-spacing: 0.18em;
    text-transform: uppercase;
    color: var(--muted);
    border-bottom: 1px solid var(--rule);
    padding-bottom: 4px;
    margin-bottom: 16px;
  }
  .alert { padding: 10px 14px; margin-bottom: 16px; border-left: 4px solid; font-size: 0.85rem; }
  .alert-error { border-color: var(--accent); background: #fbeceb; color: var(--accent); }
  .alert-success { border-color: var(--accent2); background: #e9f4ee; color: var(--accent2); }
  .alert-note { border-color: var(--muted); background: var(--ledger); color: var(--muted); }
  table { width: 100%; border-collapse: collapse; font-size: 0.85rem; }
  th { text-align: left; font-family: 'IBM Plex Mono', monospace; font-size: 0.7rem; letter-spacing: 0.1em; text-transform: uppercase; border-bottom: 2px solid var(--ink); padding: 6px 8px; }
  th a { text-decoration: none; }
  td { padding: 6px 8px; border-bottom: 1px solid var(--ledger); }
  nav a { font-family: 'IBM Plex Mono', monospace; font-size: 0.8rem; margin-left: 18px; text-decoration: none; }
  nav a.active { border-bottom: 2px solid var(--accent); }
  .htmx-indicator { opacity: 0; transition: opacity 0.2s; }
  .htmx-request .htmx-indicator, .htmx-request.htmx-indicator { opacity: 1; }
</style>
</head>
<body hx-boost="true" hx-indicator="#loading">
<div style="max-width:1100px;margin:0 auto;padding:32px 24px;">

<div style="display:flex;align-items:flex-end;justify-content:space-between;margin-bottom:32px;">
  <div>
    <div style="font-family:'IBM Plex Mono',monospace;font-size:0.65rem;letter-spacing:0.2em;color:var(--muted);margin-bottom:4px;">
      HUMAN RESOURCES
    </div>
    <h1 style="font-family:'IBM Plex Mono',monospace;font-size:1.6rem;font-weight:600;letter-spacing:-0.02em;margin:0;">
      Employee Records
    </h1>
  </div>
  <nav>
    <a href="/" {{if eq .Nav "home"}}class="active"{{end}}>Home</a>
    <a href="/add-employee" {{if eq .Nav "add"}}class="active"{{end}}>Add Employee</a>
  </nav>
</div>

<div id="loading" class="htmx-indicator alert alert-note">Loading...</div>

{{template "content" .}}

</div>
</body>
</html>`))

func page(content string) *template.Template {
	return template.Must(template.Must(baseTmpl.Clone()).Parse(content))
}

// component adapts an html/template page to templ.
func component(t *template.Template, data any) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return t.ExecuteTemplate(w, "base", data)
	})
}

// layout is embedded by every page view.
type layout struct {
	Title string
	Nav   string
}

// ---------------------------------------------------------------------------
// List
// ---------------------------------------------------------------------------

var listTmpl = page(`{{define "content"}}
<div class="card" style="margin-bottom:24px;">
  <div class="section-header">Filter by hire date</div>
  {{with .FilterError}}<div class="alert alert-error" role="alert">{{.}}</div>{{end}}
  <form method="get" action="/" style="display:flex;gap:12px;align-items:flex-end;">
    {{with .SortField}}<input type="hidden" name="sort" value="{{.}}">{{end}}
    {{with .SortDir}}<input type="hidden" name="dir" value="{{.}}">{{end}}
    <div>
      <label class="field-label" for="start">Start date</label>
      <input type="date" id="start" name="start" value="{{.Range.Start}}" onchange="document.getElementById('end').min = this.value">
    </div>
    <div>
      <label class="field-label" for="end">End date</label>
      <input type="date" id="end" name="end" value="{{.Range.End}}" {{with .Range.Start}}min="{{.}}"{{end}}>
    </div>
    <button type="submit" class="btn btn-primary" hx-disabled-elt="this">Filter</button>
    <a href="{{.ClearHref}}" class="btn">Clear</a>
  </form>
</div>

<div class="card">
  <div style="display:flex;justify-content:space-between;align-items:center;" class="section-header">
    <span>Employees</span>
    <span>
      <a href="{{.PDFHref}}" hx-boost="false" class="btn btn-sm">PDF</a>
      <a href="{{.XLSXHref}}" hx-boost="false" class="btn btn-sm">XLSX</a>
      <a href="/add-employee" class="btn btn-sm btn-primary">Add Employee</a>
    </span>
  </div>
  {{with .Error}}<div class="alert alert-error" role="alert">{{.}}</div>{{end}}
  <table>
    <thead>
      <tr>
        <th>ID</th>
        {{range .Headers}}<th><a href="{{.Href}}">{{.Label}}{{.Arrow}}</a></th>{{end}}
        <th>Status</th>
        <th>Actions</th>
      </tr>
    </thead>
    <tbody>
      {{range .Rows}}
      <tr>
        <td class="mono">{{.ID}}</td>
        <td>{{.Name}}</td>
        <td>{{.Position}}</td>
        <td class="mono">{{.HireDate}}</td>
        <td>{{.Status}}</td>
        <td>
          <a href="{{.DetailHref}}" class="btn btn-sm">View</a>
          <a href="{{.DeactivateHref}}" class="btn btn-sm btn-danger">Deactivate</a>
        </td>
      </tr>
      {{else}}
      <tr><td colspan="6" style="color:var(--muted);">No employees to show.</td></tr>
      {{end}}
    </tbody>
  </table>
</div>
{{end}}`)

type header struct {
	Label string
	Href  string
	Arrow string
}

type row struct {
	domain.Employee
	DetailHref     string
	DeactivateHref string
}

type listView struct {
	layout
	Headers     []header
	Rows        []row
	Range       forms.DateRange
	SortField   string
	SortDir     string
	Error       string
	FilterError string
	ClearHref   string
	PDFHref     string
	XLSXHref    string
}

var sortColumns = []struct {
	Field domain.SortField
	Label string
}{
	{domain.SortByName, "Name"},
	{domain.SortByPosition, "Position"},
	{domain.SortByHireDate, "Hire Date"},
}

// listPage renders the list for s. actionErr, when set, replaces the load
// error as the page's message.
func listPage(s listState, l listing, actionErr string) templ.Component {
	v := listView{
		layout:      layout{Title: "Employees", Nav: "home"},
		Range:       s.Range,
		SortField:   string(s.Sort.Field),
		SortDir:     string(s.Sort.Direction),
		Error:       l.LoadError,
		FilterError: l.FilterError,
		ClearHref:   listState{Sort: s.Sort}.href("/"),
		PDFHref:     s.href("/export.pdf"),
		XLSXHref:    s.href("/export.xlsx"),
	}
	if actionErr != "" {
		v.Error = actionErr
	}
	for _, c := range sortColumns {
		next := listState{Sort: s.Sort.Toggle(c.Field), Range: s.Range}
		v.Headers = append(v.Headers, header{Label: c.Label, Href: next.href("/"), Arrow: s.Sort.Arrow(c.Field)})
	}
	for _, e := range l.Employees {
		id := strconv.Itoa(e.ID)
		v.Rows = append(v.Rows, row{
			Employee:       e,
			DetailHref:     s.href("/employee/" + id),
			DeactivateHref: s.href("/employee/" + id + "/deactivate"),
		})
	}
	return component(listTmpl, v)
}

// ---------------------------------------------------------------------------
// Deactivation
// ---------------------------------------------------------------------------

var confirmTmpl = page(`{{define "content"}}
<div class="card" style="max-width:560px;">
  <div class="section-header">Deactivate employee #{{.ID}}</div>
  <p>Are you sure you want to deactivate this employee?</p>
  <form method="post" action="{{.Action}}" style="display:flex;gap:12px;">
    {{range $k, $v := .Hidden}}<input type="hidden" name="{{$k}}" value="{{$v}}">{{end}}
    <button type="submit" name="confirm" value="yes" class="btn btn-danger" hx-disabled-elt="this">Confirm</button>
    <a href="{{.CancelHref}}" class="btn">Cancel</a>
  </form>
</div>
{{end}}`)

type confirmView struct {
	layout
	ID         int
	Action     string
	Hidden     map[string]string
	CancelHref string
}

func confirmPage(id int, s listState) templ.Component {
	hidden := map[string]string{}
	for k, vs := range s.values() {
		hidden[k] = vs[0]
	}
	return component(confirmTmpl, confirmView{
		layout:     layout{Title: "Deactivate employee", Nav: "home"},
		ID:         id,
		Action:     "/employee/" + strconv.Itoa(id) + "/deactivate",
		Hidden:     hidden,
		CancelHref: s.href("/"),
	})
}

// ---------------------------------------------------------------------------
// Detail
// ---------------------------------------------------------------------------

const (
	stateError    = "error"
	stateNotFound = "not-found"
	stateLoaded   = "loaded"
)

var detailTmpl = page(`{{define "content"}}
<div class="card" style="max-width:720px;">
  {{if eq .State "loaded"}}
  {{with .Employee}}
  <div class="section-header">Employee #{{.ID}}</div>
  <h2 style="margin:0 0 16px;">{{.Name}}</h2>
  <div style="display:grid;grid-template-columns:160px 1fr;gap:8px;margin-bottom:24px;">
    <span class="field-label">Position</span><span>{{.Position}}</span>
    <span class="field-label">Hire Date</span><span class="mono">{{.HireDate}}</span>
    <span class="field-label">Status</span><span>{{.Status}}</span>
  </div>
  {{end}}
  <div class="section-header">Direct Reports</div>
  {{if .Reports}}
  <ul>{{range .Reports}}<li>{{.}}</li>{{end}}</ul>
  {{else}}
  <p style="color:var(--muted);">No direct reports</p>
  {{end}}
  {{else}}
  <div class="alert alert-error" role="alert">{{.Message}}</div>
  {{end}}
  <a href="{{.BackHref}}" class="btn">Back to list</a>
</div>
{{end}}`)

type detailView struct {
	layout
	BackHref string
	State    string
	Message  string
	Employee *domain.Employee
	Reports  []domain.DirectReport
}

func detailPage(v detailView) templ.Component {
	v.layout = layout{Title: "Employee", Nav: "home"}
	if v.BackHref == "" {
		v.BackHref = "/"
	}
	if v.Employee != nil {
		v.Title = v.Employee.Name
	}
	return component(detailTmpl, v)
}

// ---------------------------------------------------------------------------
// Add employee
// ---------------------------------------------------------------------------

var addTmpl = page(`{{define "content"}}
<div class="card" style="max-width:640px;">
  <div class="section-header">Add Employee</div>
  {{if eq .Status "error"}}<div class="alert alert-error" role="alert">{{.Message}}</div>{{end}}
  {{if eq .Status "success"}}
  <div class="alert alert-success" role="status">{{.Message}}</div>
  {{with .Ignored}}<div class="alert alert-note">Ignored direct reports: {{range $i, $t := .}}{{if $i}}, {{end}}{{$t}}{{end}}</div>{{end}}
  <script>setTimeout(function () { window.location.href = "/"; }, {{.RedirectMS}});</script>
  {{end}}
  <form method="post" action="/add-employee" style="display:grid;grid-template-columns:1fr 1fr;gap:12px;">
    <fieldset style="display:contents;" {{if eq .Status "success"}}disabled{{end}}>
    <div>
      <label class="field-label" for="id">ID *</label>
      <input type="number" id="id" name="id" min="1" value="{{.Draft.ID}}" required>
    </div>
    <div>
      <label class="field-label" for="hireDate">Hire Date *</label>
      <input type="date" id="hireDate" name="hireDate" max="{{.MaxDate}}" value="{{.Draft.HireDate}}" required>
    </div>
    <div style="grid-column:1/-1;">
      <label class="field-label" for="name">Name *</label>
      <input type="text" id="name" name="name" value="{{.Draft.Name}}" required>
    </div>
    <div style="grid-column:1/-1;">
      <label class="field-label" for="position">Position *</label>
      <input type="text" id="position" name="position" value="{{.Draft.Position}}" required>
    </div>
    <div style="grid-column:1/-1;">
      <label class="field-label" for="directReports">Direct Reports (comma-separated IDs)</label>
      <input type="text" id="directReports" name="directReports" placeholder="2, 3, 4" value="{{.Draft.DirectReports}}">
    </div>
    <div style="grid-column:1/-1;display:flex;gap:8px;align-items:center;">
      <input type="checkbox" id="active" name="active" value="true" {{if .Draft.Active}}checked{{end}}>
      <label for="active">Active</label>
    </div>
    <div style="grid-column:1/-1;display:flex;gap:12px;">
      <button type="submit" class="btn btn-primary" hx-disabled-elt="this">Add Employee</button>
      <a href="/" class="btn">Cancel</a>
    </div>
    </fieldset>
  </form>
</div>
{{end}}`)

type addView struct {
	layout
	Draft      forms.EmployeeDraft
	Status     forms.Status
	Message    string
	Ignored    []string
	MaxDate    string
	RedirectMS int64
}

func addPage(v addView) templ.Component {
	v.layout = layout{Title: "Add Employee", Nav: "add"}
	return component(addTmpl, v)
}

// ---------------------------------------------------------------------------
// Not found
// ---------------------------------------------------------------------------

var notFoundTmpl = page(`{{define "content"}}
<div class="card" style="max-width:560px;">
  <div class="alert alert-error" role="alert">Page not found</div>
  <a href="/" class="btn">Back to list</a>
</div>
{{end}}`)

func notFoundPage() templ.Component {
	return component(notFoundTmpl, layout{Title: "Not found", Nav: ""})
}
