package forms

import (
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/brunotome93/white-flywire-exercise/internal/domain"
)

// Messages shown by the add-employee form.
const (
	MsgRequired     = "All fields are required"
	MsgInvalidID    = "ID must be a positive number"
	MsgInvalidDate  = "Hire date is not a valid date"
	MsgFutureDate   = "Hire date cannot be in the future"
	MsgCreateFailed = "Failed to add employee. Please try again."
	MsgCreated      = "Employee added successfully! Redirecting..."
)

// EmployeeDraft is the add-employee form as the user typed it.
type EmployeeDraft struct {
	ID            string `form:"id" validate:"required"`
	Name          string `form:"name" validate:"required"`
	Position      string `form:"position" validate:"required"`
	HireDate      string `form:"hireDate" validate:"required"`
	Active        bool   `form:"active"`
	DirectReports string `form:"directReports"`
}

// NewEmployeeDraft is the blank form: everything empty, active checked.
func NewEmployeeDraft() EmployeeDraft {
	return EmployeeDraft{Active: true}
}

// DecodeEmployeeDraft reads a posted form. An unchecked active box is absent
// from the post and decodes as false.
func DecodeEmployeeDraft(values url.Values) (EmployeeDraft, error) {
	var d EmployeeDraft
	if err := decode(&d, values); err != nil {
		return d, err
	}
	d.normalize()
	return d, nil
}

func (d *EmployeeDraft) normalize() {
	d.ID = strings.TrimSpace(d.ID)
	d.Name = strings.TrimSpace(d.Name)
	d.Position = strings.TrimSpace(d.Position)
	d.HireDate = strings.TrimSpace(d.HireDate)
}

// Validate applies the form rules in order and reports the first failure as
// a *ValidationError. now supplies today's date.
func (d EmployeeDraft) Validate(now time.Time) error {
	_, _, err := d.check(now)
	return err
}

func (d EmployeeDraft) check(now time.Time) (int, domain.HireDate, error) {
	d.normalize()
	if err := validate.Struct(d); err != nil {
		return 0, domain.HireDate{}, invalid(MsgRequired)
	}
	id, err := strconv.Atoi(d.ID)
	if err != nil || id <= 0 {
		return 0, domain.HireDate{}, invalid(MsgInvalidID)
	}
	hired, err := domain.ParseISODate(d.HireDate)
	if err != nil {
		return 0, domain.HireDate{}, invalid(MsgInvalidDate)
	}
	if hired.After(domain.DateOf(now)) {
		return 0, domain.HireDate{}, invalid(MsgFutureDate)
	}
	return id, hired, nil
}

// ToEmployee validates the draft and builds the create payload. ignored
// lists direct-report tokens that were dropped.
func (d EmployeeDraft) ToEmployee(now time.Time) (e *domain.Employee, ignored []string, err error) {
	id, hired, err := d.check(now)
	if err != nil {
		return nil, nil, err
	}
	reports, ignored := SplitDirectReports(d.DirectReports)
	return &domain.Employee{
		ID:            id,
		Name:          strings.TrimSpace(d.Name),
		Position:      strings.TrimSpace(d.Position),
		HireDate:      hired,
		Active:        d.Active,
		DirectReports: reports,
	}, ignored, nil
}

// ParseDirectReports reads a comma-separated list of employee ids. Tokens
// without a leading integer, and integers below 1, are dropped.
func ParseDirectReports(s string) []int {
	ids, _ := SplitDirectReports(s)
	return ids
}

// SplitDirectReports is ParseDirectReports that also returns the non-empty
// tokens it dropped. ids is never nil.
func SplitDirectReports(s string) (ids []int, ignored []string) {
	ids = []int{}
	for _, tok := range strings.Split(s, ",") {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		n, ok := leadingInt(tok)
		if !ok || n <= 0 {
			ignored = append(ignored, tok)
			continue
		}
		ids = append(ids, n)
	}
	return ids, ignored
}

// leadingInt parses an optional sign followed by the longest run of digits,
// ignoring whatever follows: "12abc" is 12.
func leadingInt(s string) (int, bool) {
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	start := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == start {
		return 0, false
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}
	return n, true
}
