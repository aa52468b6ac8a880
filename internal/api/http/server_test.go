package http

import (
	"encoding/json"
	"io"
	nethttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/helpdesk-demo/ticketing-service/internal/api/dto"
	"github.com/helpdesk-demo/ticketing-service/internal/observability"
	"github.com/helpdesk-demo/ticketing-service/internal/persistence"
	"github.com/helpdesk-demo/ticketing-service/internal/repository"
	"github.com/helpdesk-demo/ticketing-service/internal/service"
)

func newTestApp(t *testing.T) (*fiber.App, *observability.Metrics) {
	t.Helper()
	metrics := observability.NewMetrics()
	tickets := service.NewTicketService(service.TicketDependencies{
		TicketRepo: repository.NewTicketRepository(),
	})
	app := NewServer(ServerDependencies{
		Name:           "Ticketing System Service",
		Version:        "test",
		Logger:         zap.NewNop(),
		Metrics:        metrics,
		Tickets:        tickets,
		Redis:          &persistence.Redis{},
		RequestTimeout: 5 * time.Second,
	})
	return app, metrics
}

func doRequest(t *testing.T, app *fiber.App, method, path, body string) (int, []byte) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, raw
}

func createTicket(t *testing.T, app *fiber.App, body string) dto.TicketResponse {
	t.Helper()
	status, raw := doRequest(t, app, nethttp.MethodPost, "/create_ticket", body)
	require.Equal(t, nethttp.StatusOK, status, string(raw))
	var ticket dto.TicketResponse
	require.NoError(t, json.Unmarshal(raw, &ticket))
	return ticket
}

func parseTimestamp(t *testing.T, value string) time.Time {
	t.Helper()
	ts, err := time.Parse(dto.TimestampLayout, value)
	require.NoError(t, err)
	return ts
}

func TestCreateTicketHighPriority(t *testing.T) {
	app, _ := newTestApp(t)

	ticket := createTicket(t, app, `{"customer_id":"CUST456","issue_summary":"internet down","priority":"High"}`)
	assert.NotEmpty(t, ticket.TicketID)
	assert.Equal(t, "CUST456", ticket.CustomerID)
	assert.Equal(t, "internet down", ticket.IssueSummary)
	assert.Equal(t, "Open", ticket.Status)
	assert.Equal(t, "High", ticket.Priority)

	createdAt := parseTimestamp(t, ticket.CreatedAt)
	resolution := parseTimestamp(t, ticket.EstimatedResolution)
	assert.Equal(t, 4*time.Hour, resolution.Sub(createdAt))
}

func TestCreateTicketDefaultPriority(t *testing.T) {
	app, _ := newTestApp(t)

	ticket := createTicket(t, app, `{"customer_id":"CUST789","issue_summary":"slow wifi"}`)
	assert.Equal(t, "Medium", ticket.Priority)
	assert.Equal(t, 24*time.Hour, parseTimestamp(t, ticket.EstimatedResolution).Sub(parseTimestamp(t, ticket.CreatedAt)))
}

func TestCreateTicketUnknownPriorityUsesLowWindow(t *testing.T) {
	app, _ := newTestApp(t)

	ticket := createTicket(t, app, `{"customer_id":"CUST1","issue_summary":"flicker","priority":"whenever"}`)
	assert.Equal(t, "whenever", ticket.Priority)
	assert.Equal(t, 72*time.Hour, parseTimestamp(t, ticket.EstimatedResolution).Sub(parseTimestamp(t, ticket.CreatedAt)))
}

func TestTicketStatusRoundTrip(t *testing.T) {
	app, _ := newTestApp(t)
	created := createTicket(t, app, `{"customer_id":"CUST456","issue_summary":"internet down","priority":"high"}`)

	status, raw := doRequest(t, app, nethttp.MethodGet, "/ticket_status/"+created.TicketID, "")
	require.Equal(t, nethttp.StatusOK, status)
	var got dto.TicketResponse
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.Equal(t, created, got)
}

func TestTicketStatusNotFound(t *testing.T) {
	app, metrics := newTestApp(t)

	status, raw := doRequest(t, app, nethttp.MethodGet, "/ticket_status/doesnotexist", "")
	assert.Equal(t, nethttp.StatusNotFound, status)
	assert.JSONEq(t, `{"detail":"Ticket not found."}`, string(raw))
	assert.Equal(t, int64(1), metrics.Snapshot().Errors["/ticket_status/doesnotexist|GET|NOT_FOUND"])
}

func TestBackToBackTicketsHaveDistinctIDs(t *testing.T) {
	app, _ := newTestApp(t)
	body := `{"customer_id":"CUST1","issue_summary":"same issue","priority":"Low"}`

	first := createTicket(t, app, body)
	second := createTicket(t, app, body)
	assert.NotEqual(t, first.TicketID, second.TicketID)
}

func TestCreateTicketValidation(t *testing.T) {
	app, _ := newTestApp(t)

	cases := []struct {
		name   string
		body   string
		fields []string
	}{
		{"missing customer", `{"issue_summary":"x"}`, []string{"customer_id"}},
		{"missing both", `{}`, []string{"customer_id", "issue_summary"}},
		{"wrong type", `{"customer_id":12,"issue_summary":"x"}`, []string{"body"}},
		{"not json", `customer_id=1`, []string{"body"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, raw := doRequest(t, app, nethttp.MethodPost, "/create_ticket", tc.body)
			assert.Equal(t, nethttp.StatusUnprocessableEntity, status)
			var resp struct {
				Detail string         `json:"detail"`
				Errors map[string]any `json:"errors"`
			}
			require.NoError(t, json.Unmarshal(raw, &resp))
			assert.Equal(t, "invalid payload", resp.Detail)
			for _, field := range tc.fields {
				assert.Contains(t, resp.Errors, field)
			}
		})
	}
}

// Empty strings are accepted as-is; only missing fields are rejected.
func TestCreateTicketAcceptsEmptyStrings(t *testing.T) {
	app, _ := newTestApp(t)

	ticket := createTicket(t, app, `{"customer_id":"","issue_summary":""}`)
	assert.Empty(t, ticket.CustomerID)
	assert.Equal(t, "Open", ticket.Status)
}

func TestUnknownRoute(t *testing.T) {
	app, _ := newTestApp(t)

	status, raw := doRequest(t, app, nethttp.MethodGet, "/nope", "")
	assert.Equal(t, nethttp.StatusNotFound, status)
	assert.Contains(t, string(raw), "detail")
}

func TestHealthAndMetrics(t *testing.T) {
	app, _ := newTestApp(t)
	createTicket(t, app, `{"customer_id":"C","issue_summary":"S"}`)

	status, raw := doRequest(t, app, nethttp.MethodGet, "/health/live", "")
	assert.Equal(t, nethttp.StatusOK, status)
	assert.Contains(t, string(raw), `"alive"`)

	status, raw = doRequest(t, app, nethttp.MethodGet, "/health/ready", "")
	assert.Equal(t, nethttp.StatusOK, status)
	var ready map[string]any
	require.NoError(t, json.Unmarshal(raw, &ready))
	assert.Equal(t, "ready", ready["status"])
	assert.EqualValues(t, 1, ready["tickets"])

	status, raw = doRequest(t, app, nethttp.MethodGet, "/metrics", "")
	assert.Equal(t, nethttp.StatusOK, status)
	var snap observability.MetricsSnapshot
	require.NoError(t, json.Unmarshal(raw, &snap))
	assert.Equal(t, int64(1), snap.Requests["/create_ticket|POST|200"])
}

func TestPanicIsRenderedAsInternalError(t *testing.T) {
	app, _ := newTestApp(t)
	app.Get("/boom", func(*fiber.Ctx) error { panic("kaboom") })

	status, raw := doRequest(t, app, nethttp.MethodGet, "/boom", "")
	assert.Equal(t, nethttp.StatusInternalServerError, status)
	assert.JSONEq(t, `{"detail":"internal server error"}`, string(raw))
}

func TestCreateTicketEmptyPriorityIsKept(t *testing.T) {
	app, _ := newTestApp(t)

	ticket := createTicket(t, app, `{"customer_id":"C","issue_summary":"S","priority":""}`)
	assert.Equal(t, "", ticket.Priority)
	assert.Equal(t, 72*time.Hour, parseTimestamp(t, ticket.EstimatedResolution).Sub(parseTimestamp(t, ticket.CreatedAt)))
}

func TestCreateTicketRejectsNonStringPriority(t *testing.T) {
	app, _ := newTestApp(t)

	for _, body := range []string{
		`{"customer_id":"C","issue_summary":"S","priority":null}`,
		`{"customer_id":"C","issue_summary":"S","priority":3}`,
	} {
		status, raw := doRequest(t, app, nethttp.MethodPost, "/create_ticket", body)
		assert.Equal(t, nethttp.StatusUnprocessableEntity, status, body)
		assert.JSONEq(t, `{"detail":"invalid payload","errors":{"priority":"must be a string"}}`, string(raw))
	}
}
