package employeeapi_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-faster/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/brunotome93/white-flywire-exercise/internal/adapters/employeeapi"
	"github.com/brunotome93/white-flywire-exercise/internal/domain"
)

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

type recorded struct {
	method string
	path   string
	query  string
	body   string
}

// fakeService starts a test server that records every request and answers
// with handler.
func fakeService(t *testing.T, handler http.HandlerFunc) (*employeeapi.Client, *[]recorded) {
	t.Helper()
	var calls []recorded
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		calls = append(calls, recorded{method: r.Method, path: r.URL.Path, query: r.URL.RawQuery, body: string(b)})
		handler(w, r)
	}))
	t.Cleanup(srv.Close)
	return employeeapi.New(srv.URL+"/api/", srv.Client(), zaptest.NewLogger(t).Sugar()), &calls
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// ---------------------------------------------------------------------------
// Operations
// ---------------------------------------------------------------------------

func TestClient_ListActive(t *testing.T) {
	client, calls := fakeService(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `[{"id":1,"name":"John Doe","position":"CEO","hireDate":"01/15/2020","active":true,"directReports":[2]}]`)
	})

	got, err := client.ListActive(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "John Doe", got[0].Name)
	assert.Equal(t, domain.NewHireDate(2020, time.January, 15), got[0].HireDate)
	assert.Equal(t, []int{2}, got[0].DirectReports)

	require.Len(t, *calls, 1)
	assert.Equal(t, http.MethodGet, (*calls)[0].method)
	assert.Equal(t, "/api/employees/active", (*calls)[0].path)
}

func TestClient_Get(t *testing.T) {
	client, calls := fakeService(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"employee":{"id":7,"name":"Ann Roe","position":"Lead","hireDate":"03/04/2021","active":false,"directReports":[8,9]},"directReports":[8,9]}`)
	})

	got, err := client.Get(context.Background(), 7)
	require.NoError(t, err)
	require.NotNil(t, got.Employee)
	assert.Equal(t, "Ann Roe", got.Employee.Name)
	assert.False(t, got.Employee.Active)
	assert.Equal(t, []domain.DirectReport{"8", "9"}, got.DirectReports)
	assert.Equal(t, "/api/employees/7", (*calls)[0].path)
}

func TestClient_Get_NotFound(t *testing.T) {
	t.Run("404", func(t *testing.T) {
		client, _ := fakeService(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		})
		_, err := client.Get(context.Background(), 99)
		assert.True(t, errors.Is(err, domain.ErrNotFound))
	})

	t.Run("null employee", func(t *testing.T) {
		client, _ := fakeService(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = io.WriteString(w, `{"employee":null,"directReports":[]}`)
		})
		_, err := client.Get(context.Background(), 99)
		assert.True(t, errors.Is(err, domain.ErrNotFound))
	})
}

func TestClient_ListByHireDateRange(t *testing.T) {
	client, calls := fakeService(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `[]`)
	})

	got, err := client.ListByHireDateRange(context.Background(), "01/01/2020", "12/31/2020")
	require.NoError(t, err)
	assert.Empty(t, got)

	c := (*calls)[0]
	assert.Equal(t, "/api/employees/hired-between", c.path)
	assert.Equal(t, "end=12%2F31%2F2020&start=01%2F01%2F2020", c.query)
}

func TestClient_Create(t *testing.T) {
	client, calls := fakeService(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"id":101,"name":"A. Lee","position":"Engineer","hireDate":"05/01/2023","active":true,"directReports":[5,9]}`)
	})

	in := &domain.Employee{
		ID:            101,
		Name:          "A. Lee",
		Position:      "Engineer",
		HireDate:      domain.NewHireDate(2023, time.May, 1),
		Active:        true,
		DirectReports: []int{5, 9},
	}
	got, err := client.Create(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, 101, got.ID)

	c := (*calls)[0]
	assert.Equal(t, http.MethodPost, c.method)
	assert.Equal(t, "/api/employees", c.path)
	assert.JSONEq(t, `{"id":101,"name":"A. Lee","position":"Engineer","hireDate":"05/01/2023","active":true,"directReports":[5,9]}`, c.body)
}

func TestClient_Create_EmptyBodyKeepsOurRecord(t *testing.T) {
	client, _ := fakeService(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	got, err := client.Create(context.Background(), &domain.Employee{ID: 3, Name: "X"})
	require.NoError(t, err)
	assert.Equal(t, 3, got.ID)
}

func TestClient_Deactivate(t *testing.T) {
	client, calls := fakeService(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"id":4,"active":false}`)
	})
	require.NoError(t, client.Deactivate(context.Background(), 4))
	assert.Equal(t, http.MethodPut, (*calls)[0].method)
	assert.Equal(t, "/api/employees/4/deactivate", (*calls)[0].path)
}

// ---------------------------------------------------------------------------
// Failures
// ---------------------------------------------------------------------------

func TestClient_ErrorMessages(t *testing.T) {
	const fallback = "Failed to add employee. Please try again."
	tests := []struct {
		name    string
		status  int
		body    string
		message string
	}{
		{"structured message wins", http.StatusBadRequest, `{"message":"ID taken","error":"Bad Request"}`, "ID taken"},
		{"raw text body", http.StatusBadRequest, "Employee ID already exists", "Employee ID already exists"},
		{"json string body", http.StatusBadRequest, `"Employee ID already exists"`, "Employee ID already exists"},
		{"empty body falls back", http.StatusInternalServerError, "", fallback},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, _ := fakeService(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = io.WriteString(w, tt.body)
			})
			_, err := client.Create(context.Background(), &domain.Employee{ID: 1})
			require.Error(t, err)

			var apiErr *employeeapi.APIError
			require.True(t, errors.As(err, &apiErr))
			assert.Equal(t, tt.status, apiErr.StatusCode)
			assert.Equal(t, tt.message, employeeapi.UserMessage(err, fallback))
		})
	}
}

func TestUserMessage_TransportFailureFallsBack(t *testing.T) {
	client := employeeapi.New("http://127.0.0.1:1/api", &http.Client{Timeout: time.Second}, nil)
	_, err := client.Create(context.Background(), &domain.Employee{ID: 1})
	require.Error(t, err)
	assert.Equal(t, "fallback", employeeapi.UserMessage(err, "fallback"))
}

func TestClient_CancelledContextAbandonsCall(t *testing.T) {
	client, _ := fakeService(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, []domain.Employee{})
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.ListActive(ctx)
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestClient_UndecodableBody(t *testing.T) {
	client, _ := fakeService(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{not json`)
	})
	_, err := client.ListActive(context.Background())
	assert.Error(t, err)
}
