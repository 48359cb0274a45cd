package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"connectrpc.com/connect"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/tripledger/internal/auth"
	"github.com/mmynk/tripledger/internal/metrics"
	"github.com/mmynk/tripledger/internal/middleware"
	"github.com/mmynk/tripledger/internal/storage/sqlite"
	"github.com/mmynk/tripledger/pkg/api"
)

const testSecret = "0123456789abcdef0123456789abcdef"

type testEnv struct {
	t          *testing.T
	url        string
	jwtManager *auth.JWTManager
	registry   *prometheus.Registry
}

// clients talk to the test server as one trip member.
type clients struct {
	trips    api.TripServiceClient
	expenses api.ExpenseServiceClient
	ledger   api.LedgerServiceClient
}

// setupTestServer starts all three services over a temp SQLite database,
// behind the same interceptors the server installs.
func setupTestServer(t *testing.T) *testEnv {
	t.Helper()

	store, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	registry := prometheus.NewRegistry()
	m := metrics.New(registry)
	jwtManager := auth.NewJWTManager(testSecret, time.Hour)
	interceptors := connect.WithInterceptors(
		middleware.MetricsInterceptor(m),
		middleware.RequireAuth(jwtManager),
		middleware.LoggingInterceptor(),
	)

	mux := http.NewServeMux()
	mux.Handle(api.NewTripServiceHandler(NewTripService(store, m), interceptors))
	mux.Handle(api.NewExpenseServiceHandler(NewExpenseService(store, m), interceptors))
	mux.Handle(api.NewLedgerServiceHandler(NewLedgerService(store, m), interceptors))

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	return &testEnv{t: t, url: server.URL, jwtManager: jwtManager, registry: registry}
}

// as returns clients that authenticate as memberID.
func (env *testEnv) as(memberID string) clients {
	env.t.Helper()
	token, err := env.jwtManager.Generate(memberID)
	require.NoError(env.t, err)

	bearer := connect.WithInterceptors(connect.UnaryInterceptorFunc(
		func(next connect.UnaryFunc) connect.UnaryFunc {
			return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
				req.Header().Set("Authorization", "Bearer "+token)
				return next(ctx, req)
			}
		},
	))

	return clients{
		trips:    api.NewTripServiceClient(http.DefaultClient, env.url, bearer),
		expenses: api.NewExpenseServiceClient(http.DefaultClient, env.url, bearer),
		ledger:   api.NewLedgerServiceClient(http.DefaultClient, env.url, bearer),
	}
}

func members(ids ...string) []api.Member {
	out := make([]api.Member, len(ids))
	for i, id := range ids {
		out[i] = api.Member{ID: id}
	}
	return out
}

func createTrip(t *testing.T, c clients, name string, ids ...string) *api.Trip {
	t.Helper()
	resp, err := c.trips.CreateTrip(context.Background(), connect.NewRequest(&api.CreateTripRequest{
		Name:    name,
		Members: members(ids...),
	}))
	require.NoError(t, err)
	return resp.Msg.Trip
}

func createExpense(t *testing.T, c clients, tripID string, expense api.Expense) *api.Expense {
	t.Helper()
	resp, err := c.expenses.CreateExpense(context.Background(), connect.NewRequest(&api.CreateExpenseRequest{
		TripID:  tripID,
		Expense: expense,
	}))
	require.NoError(t, err)
	return resp.Msg.Expense
}

// requireInvalid asserts err is invalid_argument naming field.
func requireInvalid(t *testing.T, err error, field string) {
	t.Helper()
	require.Error(t, err)
	assert.Equal(t, connect.CodeInvalidArgument, connect.CodeOf(err))

	var connectErr *connect.Error
	require.ErrorAs(t, err, &connectErr)
	assert.Equal(t, field, connectErr.Meta().Get(ValidationFieldHeader))
}

func TestUnauthenticated(t *testing.T) {
	env := setupTestServer(t)
	client := api.NewTripServiceClient(http.DefaultClient, env.url)

	_, err := client.ListTrips(context.Background(), connect.NewRequest(&api.ListTripsRequest{}))
	require.Error(t, err)
	assert.Equal(t, connect.CodeUnauthenticated, connect.CodeOf(err))
}

func TestJSONPath(t *testing.T) {
	tests := map[string]string{
		"CreateTripRequest.Name":                          "name",
		"CreateTripRequest.Members[1].ID":                 "members[1].id",
		"CreateExpenseRequest.TripID":                     "tripId",
		"CreateExpenseRequest.Expense.PayerID":            "expense.payerId",
		"CreateExpenseRequest.Expense.Splits[0].MemberID": "expense.splits[0].memberId",
	}
	for in, want := range tests {
		assert.Equal(t, want, jsonPath(in), in)
	}
}
