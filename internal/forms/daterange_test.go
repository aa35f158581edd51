package forms_test

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brunotome93/white-flywire-exercise/internal/forms"
)

type filterCall struct{ start, end string }

func recorder() (*[]filterCall, func(start, end string)) {
	var calls []filterCall
	return &calls, func(start, end string) { calls = append(calls, filterCall{start, end}) }
}

func TestDateRange_Apply(t *testing.T) {
	tests := []struct {
		name    string
		r       forms.DateRange
		wantMsg string
		want    *filterCall
	}{
		{"valid", forms.DateRange{Start: "2020-01-01", End: "2020-12-31"}, "", &filterCall{"01/01/2020", "12/31/2020"}},
		{"same day", forms.DateRange{Start: "2021-06-15", End: "2021-06-15"}, "", &filterCall{"06/15/2021", "06/15/2021"}},
		{"missing end", forms.DateRange{Start: "2020-01-01"}, forms.MsgBothDates, nil},
		{"missing start", forms.DateRange{End: "2020-01-01"}, forms.MsgBothDates, nil},
		{"unparsable", forms.DateRange{Start: "yesterday", End: "2020-01-01"}, forms.MsgBothDates, nil},
		{"end before start", forms.DateRange{Start: "2021-01-01", End: "2020-01-01"}, forms.MsgEndBefore, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls, onFilter := recorder()
			err := tt.r.Apply(onFilter)
			if tt.wantMsg != "" {
				require.Error(t, err)
				assert.Equal(t, tt.wantMsg, forms.Message(err))
				assert.Empty(t, *calls)
				return
			}
			require.NoError(t, err)
			require.Len(t, *calls, 1)
			assert.Equal(t, *tt.want, (*calls)[0])
		})
	}
}

func TestDateRange_Clear(t *testing.T) {
	calls, onFilter := recorder()
	r := forms.DateRange{Start: "2020-01-01", End: "2020-12-31"}
	r.Clear(onFilter)

	assert.True(t, r.IsEmpty())
	assert.Equal(t, []filterCall{{"", ""}}, *calls)
}

func TestDecodeDateRange(t *testing.T) {
	r, err := forms.DecodeDateRange(url.Values{"start": {" 2020-01-01 "}, "sort": {"name"}})
	require.NoError(t, err)
	assert.Equal(t, forms.DateRange{Start: "2020-01-01"}, r)
	assert.False(t, r.IsEmpty())

	q := url.Values{}
	r.Query(q)
	assert.Equal(t, "start=2020-01-01", q.Encode())
}
