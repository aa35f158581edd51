package forms

import (
	"net/url"
	"strings"

	"github.com/brunotome93/white-flywire-exercise/internal/domain"
)

const (
	MsgBothDates = "Please select both dates"
	MsgEndBefore = "End date must be after start date"
)

// DateRange holds the two ISO values of the hire-date filter inputs.
type DateRange struct {
	Start string `form:"start"`
	End   string `form:"end"`
}

// DecodeDateRange reads the filter from query values.
func DecodeDateRange(values url.Values) (DateRange, error) {
	var r DateRange
	if err := decode(&r, values); err != nil {
		return r, err
	}
	r.Start = strings.TrimSpace(r.Start)
	r.End = strings.TrimSpace(r.End)
	return r, nil
}

// IsEmpty reports that neither bound is set, i.e. no filter.
func (r DateRange) IsEmpty() bool { return r.Start == "" && r.End == "" }

// Apply validates the range and hands both bounds to onFilter as MM/DD/YYYY.
// On a validation failure onFilter is not called. Equal bounds are allowed.
func (r DateRange) Apply(onFilter func(start, end string)) error {
	if r.Start == "" || r.End == "" {
		return invalid(MsgBothDates)
	}
	start, err := domain.ParseISODate(r.Start)
	if err != nil {
		return invalid(MsgBothDates)
	}
	end, err := domain.ParseISODate(r.End)
	if err != nil {
		return invalid(MsgBothDates)
	}
	if start.After(end) {
		return invalid(MsgEndBefore)
	}
	onFilter(start.ServiceString(), end.ServiceString())
	return nil
}

// Clear empties both inputs and tells onFilter there is no filter.
func (r *DateRange) Clear(onFilter func(start, end string)) {
	r.Start, r.End = "", ""
	onFilter("", "")
}

// Query encodes the range for a URL, omitting empty bounds.
func (r DateRange) Query(q url.Values) {
	if r.Start != "" {
		q.Set("start", r.Start)
	}
	if r.End != "" {
		q.Set("end", r.End)
	}
}
