package domain_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brunotome93/white-flywire-exercise/internal/domain"
)

func TestFormatServiceDate(t *testing.T) {
	got, err := domain.FormatServiceDate("2023-05-01")
	require.NoError(t, err)
	assert.Equal(t, "05/01/2023", got)

	_, err = domain.FormatServiceDate("05/01/2023")
	assert.Error(t, err)
}

func TestHireDate_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want domain.HireDate
	}{
		{"service form", `"06/15/2020"`, domain.NewHireDate(2020, time.June, 15)},
		{"iso form", `"2020-06-15"`, domain.NewHireDate(2020, time.June, 15)},
		{"timestamp keeps its calendar date", `"2020-06-15T23:30:00-05:00"`, domain.NewHireDate(2020, time.June, 15)},
		{"epoch millis", `1592179200000`, domain.NewHireDate(2020, time.June, 15)},
		{"null", `null`, domain.HireDate{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got domain.HireDate
			require.NoError(t, json.Unmarshal([]byte(tt.in), &got))
			assert.Equal(t, tt.want, got)
		})
	}

	var bad domain.HireDate
	assert.Error(t, json.Unmarshal([]byte(`"yesterday"`), &bad))
}

func TestEmployee_JSONUsesServiceDate(t *testing.T) {
	e := domain.Employee{
		ID:            101,
		Name:          "A. Lee",
		Position:      "Engineer",
		HireDate:      domain.NewHireDate(2023, time.May, 1),
		Active:        true,
		DirectReports: []int{5, 9},
	}
	b, err := json.Marshal(e)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":101,"name":"A. Lee","position":"Engineer","hireDate":"05/01/2023","active":true,"directReports":[5,9]}`, string(b))
}

func TestEmployeeDetail_DirectReportsAcceptIDsAndNames(t *testing.T) {
	var d domain.EmployeeDetail
	body := `{"employee":{"id":1,"name":"Kim Lo","position":"CTO","hireDate":"01/02/2019","active":true,"directReports":[2,3]},"directReports":[2,"Ann Roe"]}`
	require.NoError(t, json.Unmarshal([]byte(body), &d))
	require.NotNil(t, d.Employee)
	assert.Equal(t, "Kim Lo", d.Employee.Name)
	assert.Equal(t, []domain.DirectReport{"2", "Ann Roe"}, d.DirectReports)
}

func TestHireDate_Compare(t *testing.T) {
	a := domain.NewHireDate(2022, time.June, 1)
	b := domain.NewHireDate(2023, time.January, 10)
	assert.True(t, b.After(a))
	assert.False(t, a.After(a))
	assert.Equal(t, -1, a.Compare(b))
	assert.Equal(t, "2022-06-01", a.ISO())
	assert.Equal(t, "06/01/2022", a.String())
}
