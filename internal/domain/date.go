package domain

import (
	"bytes"
	"encoding/json"
	"strconv"
	"time"

	"github.com/go-faster/errors"
)

const (
	// ServiceDateLayout is the MM/DD/YYYY form the employee service speaks.
	ServiceDateLayout = "01/02/2006"
	// ISODateLayout is the form produced by <input type="date">.
	ISODateLayout = time.DateOnly
)

// HireDate is a calendar date without a time of day.
type HireDate struct {
	t time.Time
}

// NewHireDate builds a HireDate from its calendar parts.
func NewHireDate(year int, month time.Month, day int) HireDate {
	return HireDate{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf drops the time of day of t, keeping the calendar date in t's location.
func DateOf(t time.Time) HireDate {
	y, m, d := t.Date()
	return NewHireDate(y, m, d)
}

// ParseServiceDate parses an MM/DD/YYYY value.
func ParseServiceDate(s string) (HireDate, error) {
	t, err := time.Parse(ServiceDateLayout, s)
	if err != nil {
		return HireDate{}, errors.Wrapf(err, "parse service date %q", s)
	}
	return DateOf(t), nil
}

// ParseISODate parses a YYYY-MM-DD value.
func ParseISODate(s string) (HireDate, error) {
	t, err := time.Parse(ISODateLayout, s)
	if err != nil {
		return HireDate{}, errors.Wrapf(err, "parse date %q", s)
	}
	return DateOf(t), nil
}

// FormatServiceDate converts an ISO calendar date to MM/DD/YYYY.
func FormatServiceDate(iso string) (string, error) {
	d, err := ParseISODate(iso)
	if err != nil {
		return "", err
	}
	return d.ServiceString(), nil
}

func (d HireDate) IsZero() bool { return d.t.IsZero() }

// Time returns midnight UTC of the date.
func (d HireDate) Time() time.Time { return d.t }

// Compare returns -1, 0 or +1 ordering d against o by calendar date.
func (d HireDate) Compare(o HireDate) int { return d.t.Compare(o.t) }

func (d HireDate) After(o HireDate) bool { return d.Compare(o) > 0 }

// ServiceString formats the date as MM/DD/YYYY, or "" for the zero date.
func (d HireDate) ServiceString() string {
	if d.IsZero() {
		return ""
	}
	return d.t.Format(ServiceDateLayout)
}

// ISO formats the date as YYYY-MM-DD, or "" for the zero date.
func (d HireDate) ISO() string {
	if d.IsZero() {
		return ""
	}
	return d.t.Format(ISODateLayout)
}

func (d HireDate) String() string { return d.ServiceString() }

func (d HireDate) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.ServiceString())
}

// UnmarshalJSON accepts MM/DD/YYYY, YYYY-MM-DD, RFC 3339 timestamps and
// epoch milliseconds.
func (d *HireDate) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*d = HireDate{}
		return nil
	}
	if len(data) > 0 && data[0] != '"' {
		ms, err := strconv.ParseInt(string(data), 10, 64)
		if err != nil {
			return errors.Wrap(err, "hire date")
		}
		*d = DateOf(time.UnixMilli(ms).UTC())
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return errors.Wrap(err, "hire date")
	}
	if s == "" {
		*d = HireDate{}
		return nil
	}
	for _, layout := range []string{ServiceDateLayout, ISODateLayout, time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			*d = DateOf(t)
			return nil
		}
	}
	return errors.Errorf("hire date: unrecognised value %q", s)
}

// DirectReport is one entry of a detail response. The service contract
// lists identifiers, some deployments resolve them to names; both are kept
// as display text.
type DirectReport string

func (r *DirectReport) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return errors.Wrap(err, "direct report")
		}
		*r = DirectReport(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return errors.Wrap(err, "direct report")
	}
	*r = DirectReport(n.String())
	return nil
}
