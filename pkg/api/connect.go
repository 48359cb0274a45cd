package api

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"
)

const (
	TripServiceName    = "tripledger.v1.TripService"
	ExpenseServiceName = "tripledger.v1.ExpenseService"
	LedgerServiceName  = "tripledger.v1.LedgerService"
)

const (
	TripServiceCreateTripProcedure = "/" + TripServiceName + "/CreateTrip"
	TripServiceGetTripProcedure    = "/" + TripServiceName + "/GetTrip"
	TripServiceListTripsProcedure  = "/" + TripServiceName + "/ListTrips"
	TripServiceAddMembersProcedure = "/" + TripServiceName + "/AddMembers"

	ExpenseServiceCreateExpenseProcedure      = "/" + ExpenseServiceName + "/CreateExpense"
	ExpenseServiceGetExpenseProcedure         = "/" + ExpenseServiceName + "/GetExpense"
	ExpenseServiceUpdateExpenseProcedure      = "/" + ExpenseServiceName + "/UpdateExpense"
	ExpenseServiceDeleteExpenseProcedure      = "/" + ExpenseServiceName + "/DeleteExpense"
	ExpenseServiceListExpensesByTripProcedure = "/" + ExpenseServiceName + "/ListExpensesByTrip"

	LedgerServiceSettleProcedure         = "/" + LedgerServiceName + "/Settle"
	LedgerServiceGetTripSummaryProcedure = "/" + LedgerServiceName + "/GetTripSummary"
)

// serviceMux routes procedure paths of one service to their unary handlers.
type serviceMux map[string]http.Handler

func (m serviceMux) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h, ok := m[r.URL.Path]; ok {
		h.ServeHTTP(w, r)
		return
	}
	http.NotFound(w, r)
}

func handlerOptions(opts []connect.HandlerOption) []connect.HandlerOption {
	return append([]connect.HandlerOption{WithJSON()}, opts...)
}

func clientOptions(opts []connect.ClientOption) []connect.ClientOption {
	return append([]connect.ClientOption{WithJSON()}, opts...)
}

// TripService

type TripServiceHandler interface {
	CreateTrip(context.Context, *connect.Request[CreateTripRequest]) (*connect.Response[CreateTripResponse], error)
	GetTrip(context.Context, *connect.Request[GetTripRequest]) (*connect.Response[GetTripResponse], error)
	ListTrips(context.Context, *connect.Request[ListTripsRequest]) (*connect.Response[ListTripsResponse], error)
	AddMembers(context.Context, *connect.Request[AddMembersRequest]) (*connect.Response[AddMembersResponse], error)
}

// NewTripServiceHandler returns the mount path and handler for svc.
func NewTripServiceHandler(svc TripServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	return "/" + TripServiceName + "/", serviceMux{
		TripServiceCreateTripProcedure: connect.NewUnaryHandler(TripServiceCreateTripProcedure, svc.CreateTrip, opts...),
		TripServiceGetTripProcedure:    connect.NewUnaryHandler(TripServiceGetTripProcedure, svc.GetTrip, opts...),
		TripServiceListTripsProcedure:  connect.NewUnaryHandler(TripServiceListTripsProcedure, svc.ListTrips, opts...),
		TripServiceAddMembersProcedure: connect.NewUnaryHandler(TripServiceAddMembersProcedure, svc.AddMembers, opts...),
	}
}

type TripServiceClient interface {
	CreateTrip(context.Context, *connect.Request[CreateTripRequest]) (*connect.Response[CreateTripResponse], error)
	GetTrip(context.Context, *connect.Request[GetTripRequest]) (*connect.Response[GetTripResponse], error)
	ListTrips(context.Context, *connect.Request[ListTripsRequest]) (*connect.Response[ListTripsResponse], error)
	AddMembers(context.Context, *connect.Request[AddMembersRequest]) (*connect.Response[AddMembersResponse], error)
}

func NewTripServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) TripServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = clientOptions(opts)
	return &tripServiceClient{
		createTrip: connect.NewClient[CreateTripRequest, CreateTripResponse](httpClient, baseURL+TripServiceCreateTripProcedure, opts...),
		getTrip:    connect.NewClient[GetTripRequest, GetTripResponse](httpClient, baseURL+TripServiceGetTripProcedure, opts...),
		listTrips:  connect.NewClient[ListTripsRequest, ListTripsResponse](httpClient, baseURL+TripServiceListTripsProcedure, opts...),
		addMembers: connect.NewClient[AddMembersRequest, AddMembersResponse](httpClient, baseURL+TripServiceAddMembersProcedure, opts...),
	}
}

type tripServiceClient struct {
	createTrip *connect.Client[CreateTripRequest, CreateTripResponse]
	getTrip    *connect.Client[GetTripRequest, GetTripResponse]
	listTrips  *connect.Client[ListTripsRequest, ListTripsResponse]
	addMembers *connect.Client[AddMembersRequest, AddMembersResponse]
}

func (c *tripServiceClient) CreateTrip(ctx context.Context, req *connect.Request[CreateTripRequest]) (*connect.Response[CreateTripResponse], error) {
	return c.createTrip.CallUnary(ctx, req)
}

func (c *tripServiceClient) GetTrip(ctx context.Context, req *connect.Request[GetTripRequest]) (*connect.Response[GetTripResponse], error) {
	return c.getTrip.CallUnary(ctx, req)
}

func (c *tripServiceClient) ListTrips(ctx context.Context, req *connect.Request[ListTripsRequest]) (*connect.Response[ListTripsResponse], error) {
	return c.listTrips.CallUnary(ctx, req)
}

func (c *tripServiceClient) AddMembers(ctx context.Context, req *connect.Request[AddMembersRequest]) (*connect.Response[AddMembersResponse], error) {
	return c.addMembers.CallUnary(ctx, req)
}

// ExpenseService

type ExpenseServiceHandler interface {
	CreateExpense(context.Context, *connect.Request[CreateExpenseRequest]) (*connect.Response[CreateExpenseResponse], error)
	GetExpense(context.Context, *connect.Request[GetExpenseRequest]) (*connect.Response[GetExpenseResponse], error)
	UpdateExpense(context.Context, *connect.Request[UpdateExpenseRequest]) (*connect.Response[UpdateExpenseResponse], error)
	DeleteExpense(context.Context, *connect.Request[DeleteExpenseRequest]) (*connect.Response[DeleteExpenseResponse], error)
	ListExpensesByTrip(context.Context, *connect.Request[ListExpensesByTripRequest]) (*connect.Response[ListExpensesByTripResponse], error)
}

// NewExpenseServiceHandler returns the mount path and handler for svc.
func NewExpenseServiceHandler(svc ExpenseServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	return "/" + ExpenseServiceName + "/", serviceMux{
		ExpenseServiceCreateExpenseProcedure:      connect.NewUnaryHandler(ExpenseServiceCreateExpenseProcedure, svc.CreateExpense, opts...),
		ExpenseServiceGetExpenseProcedure:         connect.NewUnaryHandler(ExpenseServiceGetExpenseProcedure, svc.GetExpense, opts...),
		ExpenseServiceUpdateExpenseProcedure:      connect.NewUnaryHandler(ExpenseServiceUpdateExpenseProcedure, svc.UpdateExpense, opts...),
		ExpenseServiceDeleteExpenseProcedure:      connect.NewUnaryHandler(ExpenseServiceDeleteExpenseProcedure, svc.DeleteExpense, opts...),
		ExpenseServiceListExpensesByTripProcedure: connect.NewUnaryHandler(ExpenseServiceListExpensesByTripProcedure, svc.ListExpensesByTrip, opts...),
	}
}

type ExpenseServiceClient interface {
	CreateExpense(context.Context, *connect.Request[CreateExpenseRequest]) (*connect.Response[CreateExpenseResponse], error)
	GetExpense(context.Context, *connect.Request[GetExpenseRequest]) (*connect.Response[GetExpenseResponse], error)
	UpdateExpense(context.Context, *connect.Request[UpdateExpenseRequest]) (*connect.Response[UpdateExpenseResponse], error)
	DeleteExpense(context.Context, *connect.Request[DeleteExpenseRequest]) (*connect.Response[DeleteExpenseResponse], error)
	ListExpensesByTrip(context.Context, *connect.Request[ListExpensesByTripRequest]) (*connect.Response[ListExpensesByTripResponse], error)
}

func NewExpenseServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) ExpenseServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = clientOptions(opts)
	return &expenseServiceClient{
		createExpense:      connect.NewClient[CreateExpenseRequest, CreateExpenseResponse](httpClient, baseURL+ExpenseServiceCreateExpenseProcedure, opts...),
		getExpense:         connect.NewClient[GetExpenseRequest, GetExpenseResponse](httpClient, baseURL+ExpenseServiceGetExpenseProcedure, opts...),
		updateExpense:      connect.NewClient[UpdateExpenseRequest, UpdateExpenseResponse](httpClient, baseURL+ExpenseServiceUpdateExpenseProcedure, opts...),
		deleteExpense:      connect.NewClient[DeleteExpenseRequest, DeleteExpenseResponse](httpClient, baseURL+ExpenseServiceDeleteExpenseProcedure, opts...),
		listExpensesByTrip: connect.NewClient[ListExpensesByTripRequest, ListExpensesByTripResponse](httpClient, baseURL+ExpenseServiceListExpensesByTripProcedure, opts...),
	}
}

type expenseServiceClient struct {
	createExpense      *connect.Client[CreateExpenseRequest, CreateExpenseResponse]
	getExpense         *connect.Client[GetExpenseRequest, GetExpenseResponse]
	updateExpense      *connect.Client[UpdateExpenseRequest, UpdateExpenseResponse]
	deleteExpense      *connect.Client[DeleteExpenseRequest, DeleteExpenseResponse]
	listExpensesByTrip *connect.Client[ListExpensesByTripRequest, ListExpensesByTripResponse]
}

func (c *expenseServiceClient) CreateExpense(ctx context.Context, req *connect.Request[CreateExpenseRequest]) (*connect.Response[CreateExpenseResponse], error) {
	return c.createExpense.CallUnary(ctx, req)
}

func (c *expenseServiceClient) GetExpense(ctx context.Context, req *connect.Request[GetExpenseRequest]) (*connect.Response[GetExpenseResponse], error) {
	return c.getExpense.CallUnary(ctx, req)
}

func (c *expenseServiceClient) UpdateExpense(ctx context.Context, req *connect.Request[UpdateExpenseRequest]) (*connect.Response[UpdateExpenseResponse], error) {
	return c.updateExpense.CallUnary(ctx, req)
}

func (c *expenseServiceClient) DeleteExpense(ctx context.Context, req *connect.Request[DeleteExpenseRequest]) (*connect.Response[DeleteExpenseResponse], error) {
	return c.deleteExpense.CallUnary(ctx, req)
}

func (c *expenseServiceClient) ListExpensesByTrip(ctx context.Context, req *connect.Request[ListExpensesByTripRequest]) (*connect.Response[ListExpensesByTripResponse], error) {
	return c.listExpensesByTrip.CallUnary(ctx, req)
}

// LedgerService

type LedgerServiceHandler interface {
	Settle(context.Context, *connect.Request[SettleRequest]) (*connect.Response[SettleResponse], error)
	GetTripSummary(context.Context, *connect.Request[GetTripSummaryRequest]) (*connect.Response[GetTripSummaryResponse], error)
}

// NewLedgerServiceHandler returns the mount path and handler for svc.
func NewLedgerServiceHandler(svc LedgerServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	return "/" + LedgerServiceName + "/", serviceMux{
		LedgerServiceSettleProcedure:         connect.NewUnaryHandler(LedgerServiceSettleProcedure, svc.Settle, opts...),
		LedgerServiceGetTripSummaryProcedure: connect.NewUnaryHandler(LedgerServiceGetTripSummaryProcedure, svc.GetTripSummary, opts...),
	}
}

type LedgerServiceClient interface {
	Settle(context.Context, *connect.Request[SettleRequest]) (*connect.Response[SettleResponse], error)
	GetTripSummary(context.Context, *connect.Request[GetTripSummaryRequest]) (*connect.Response[GetTripSummaryResponse], error)
}

func NewLedgerServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) LedgerServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = clientOptions(opts)
	return &ledgerServiceClient{
		settle:         connect.NewClient[SettleRequest, SettleResponse](httpClient, baseURL+LedgerServiceSettleProcedure, opts...),
		getTripSummary: connect.NewClient[GetTripSummaryRequest, GetTripSummaryResponse](httpClient, baseURL+LedgerServiceGetTripSummaryProcedure, opts...),
	}
}

type ledgerServiceClient struct {
	settle         *connect.Client[SettleRequest, SettleResponse]
	getTripSummary *connect.Client[GetTripSummaryRequest, GetTripSummaryResponse]
}

func (c *ledgerServiceClient) Settle(ctx context.Context, req *connect.Request[SettleRequest]) (*connect.Response[SettleResponse], error) {
	return c.settle.CallUnary(ctx, req)
}

func (c *ledgerServiceClient) GetTripSummary(ctx context.Context, req *connect.Request[GetTripSummaryRequest]) (*connect.Response[GetTripSummaryResponse], error) {
	return c.getTripSummary.CallUnary(ctx, req)
}
