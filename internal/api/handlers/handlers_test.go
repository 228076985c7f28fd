package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fieldsales-route-service/internal/api/dto"
	"fieldsales-route-service/internal/domain"
	"fieldsales-route-service/internal/ports"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type fakeCRM struct {
	accounts     []domain.Account
	appointments []domain.Appointment
	err          error
	lastFilter   ports.AppointmentFilter
}

func (f *fakeCRM) ListAccounts(ctx context.Context, userID string) ([]domain.Account, error) {
	return f.accounts, f.err
}

func (f *fakeCRM) ListAppointments(ctx context.Context, userID string, filter ports.AppointmentFilter) ([]domain.Appointment, error) {
	f.lastFilter = filter
	return f.appointments, f.err
}

type fakeLocator struct {
	p   domain.GeoPoint
	err error
}

func (l fakeLocator) CurrentLocation(ctx context.Context, userID string) (domain.GeoPoint, error) {
	return l.p, l.err
}

type fakeRecorder struct {
	userID string
	p      domain.GeoPoint
}

func (r *fakeRecorder) Record(ctx context.Context, userID string, p domain.GeoPoint) error {
	r.userID = userID
	r.p = p
	return nil
}

func fptr(v float64) *float64 { return &v }

func testCRM() *fakeCRM {
	at := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	return &fakeCRM{
		accounts: []domain.Account{
			{ID: 1, BusinessName: "Far", Latitude: fptr(0), Longitude: fptr(5), City: "Phoenix"},
			{ID: 2, BusinessName: "Near", Latitude: fptr(0), Longitude: fptr(1)},
			{ID: 3, BusinessName: "Unplaced", StreetAddress: "1 Main St"},
		},
		appointments: []domain.Appointment{
			{ID: 10, AccountID: 1, ScheduledAt: at, Status: domain.StatusScheduled},
			{ID: 11, AccountID: 2, ScheduledAt: at.Add(time.Hour), Status: domain.StatusScheduled},
			{ID: 12, AccountID: 3, ScheduledAt: at.Add(2 * time.Hour), Status: domain.StatusScheduled},
			{ID: 13, AccountID: 99, ScheduledAt: at.Add(3 * time.Hour), Status: domain.StatusScheduled},
		},
	}
}

func postJSON(t *testing.T, h http.HandlerFunc, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	rec := httptest.NewRecorder()
	Health(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"status":"ok"}`, rec.Body.String())

	rec = httptest.NewRecorder()
	Health(rec, httptest.NewRequest(http.MethodPost, "/health", nil))
	require.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	require.Equal(t, http.MethodGet, rec.Header().Get("Allow"))
}

func TestAccountsList(t *testing.T) {
	h := &AccountHandler{Repo: testCRM()}

	rec := httptest.NewRecorder()
	h.List(rec, httptest.NewRequest(http.MethodGet, "/accounts?user_id=rep", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var res dto.ListAccountsResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&res))
	require.Len(t, res.Accounts, 3)
	require.True(t, res.Accounts[0].Routable)
	require.Equal(t, "Phoenix", res.Accounts[0].Address)
	require.False(t, res.Accounts[2].Routable)
	require.Nil(t, res.Accounts[2].LastContactDate)

	rec = httptest.NewRecorder()
	h.List(rec, httptest.NewRequest(http.MethodGet, "/accounts", nil))
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAccountsListRepoError(t *testing.T) {
	h := &AccountHandler{Repo: &fakeCRM{err: errors.New("db down")}}

	rec := httptest.NewRecorder()
	h.List(rec, httptest.NewRequest(http.MethodGet, "/accounts?user_id=rep", nil))
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.NotContains(t, rec.Body.String(), "db down")
}

func TestAppointmentsListDateFilter(t *testing.T) {
	crm := testCRM()
	h := &AppointmentHandler{Repo: crm}

	rec := httptest.NewRecorder()
	h.List(rec, httptest.NewRequest(http.MethodGet, "/appointments?user_id=rep&date=2026-03-02&status=scheduled", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	from := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	require.True(t, crm.lastFilter.From.Equal(from))
	require.True(t, crm.lastFilter.To.Equal(from.AddDate(0, 0, 1)))
	require.Equal(t, domain.StatusScheduled, crm.lastFilter.Status)

	var res dto.ListAppointmentsResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&res))
	require.Len(t, res.Appointments, 4)

	rec = httptest.NewRecorder()
	h.List(rec, httptest.NewRequest(http.MethodGet, "/appointments?user_id=rep&date=03/02/2026", nil))
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRoutesPlanOrdersByProximityAndReportsExclusions(t *testing.T) {
	crm := testCRM()
	h := &RouteHandler{Accounts: crm, Appointments: crm, Locator: fakeLocator{err: domain.ErrLocationUnavailable}}

	rec := postJSON(t, h.Plan, `{"user_id":"rep","date":"2026-03-02","latitude":0,"longitude":0}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var res dto.RouteResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&res))

	require.Len(t, res.Stops, 2)
	require.Equal(t, int64(11), res.Stops[0].AppointmentID)
	require.Equal(t, int64(10), res.Stops[1].AppointmentID)
	require.Equal(t, 0, res.Stops[0].Index)
	require.Equal(t, 1, res.Stops[1].Index)
	require.InDelta(t, 111.19, res.Stops[0].DistanceKm, 0.01)
	require.InDelta(t, 444.78, res.Stops[1].DistanceKm, 0.01)
	require.InDelta(t, 555.97, res.TotalDistanceKm, 0.01)
	require.Zero(t, res.ReturnLegKm)

	require.Len(t, res.Excluded, 2)
	require.Equal(t, "missing_location", res.Excluded[0].Reason)
	require.Equal(t, int64(12), res.Excluded[0].AppointmentID)
	require.Equal(t, "account_not_found", res.Excluded[1].Reason)
	require.NotEmpty(t, res.Excluded[1].Message)
}

func TestRoutesPlanUsesLocatorAndReturnLeg(t *testing.T) {
	crm := testCRM()
	h := &RouteHandler{
		Accounts:     crm,
		Appointments: crm,
		Locator:      fakeLocator{p: domain.GeoPoint{}},
		Now:          func() time.Time { return time.Date(2026, 3, 2, 7, 0, 0, 0, time.UTC) },
	}

	rec := postJSON(t, h.Plan, `{"user_id":"rep","return_to_start":true}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var res dto.RouteResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&res))
	require.Equal(t, dto.PointResponse{}, res.Start)
	require.InDelta(t, 555.97, res.ReturnLegKm, 0.01)
	require.InDelta(t, 1111.95, res.TotalDistanceKm, 0.02)

	require.True(t, crm.lastFilter.From.Equal(time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)))
}

func TestRoutesPlanDefaultDayIsUTC(t *testing.T) {
	crm := testCRM()
	// 18:24 UTC on Oct 17 is already Oct 18 at UTC+14.
	kiritimati := time.FixedZone("LINT", 14*3600)
	now := time.Date(2026, 10, 17, 18, 24, 0, 0, time.UTC).In(kiritimati)

	h := &RouteHandler{
		Accounts:     crm,
		Appointments: crm,
		Locator:      fakeLocator{},
		Now:          func() time.Time { return now },
	}

	rec := postJSON(t, h.Plan, `{"user_id":"rep"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	wantFrom := time.Date(2026, 10, 17, 0, 0, 0, 0, time.UTC)
	require.True(t, crm.lastFilter.From.Equal(wantFrom), "from = %v, want %v", crm.lastFilter.From, wantFrom)
	require.Equal(t, time.UTC, crm.lastFilter.From.Location())

	h.Location = kiritimati
	rec = postJSON(t, h.Plan, `{"user_id":"rep"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.True(t, crm.lastFilter.From.Equal(time.Date(2026, 10, 18, 0, 0, 0, 0, kiritimati)))
}

func TestRoutesPlanErrors(t *testing.T) {
	crm := testCRM()
	unavailable := &RouteHandler{Accounts: crm, Appointments: crm, Locator: fakeLocator{err: domain.ErrLocationUnavailable}}

	cases := []struct {
		name string
		body string
		want int
	}{
		{"invalid json", `{`, http.StatusBadRequest},
		{"unknown field", `{"user_id":"rep","hub":"x"}`, http.StatusBadRequest},
		{"missing user", `{"date":"2026-03-02"}`, http.StatusBadRequest},
		{"blank user", `{"user_id":"  "}`, http.StatusBadRequest},
		{"bad date", `{"user_id":"rep","date":"March 2"}`, http.StatusBadRequest},
		{"latitude out of range", `{"user_id":"rep","latitude":91,"longitude":0}`, http.StatusBadRequest},
		{"half a coordinate", `{"user_id":"rep","latitude":10}`, http.StatusBadRequest},
		{"no location", `{"user_id":"rep","date":"2026-03-02"}`, http.StatusUnprocessableEntity},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := postJSON(t, unavailable.Plan, tc.body)
			require.Equal(t, tc.want, rec.Code, rec.Body.String())
		})
	}

	rec := httptest.NewRecorder()
	unavailable.Plan(rec, httptest.NewRequest(http.MethodGet, "/routes", nil))
	require.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestRoutesPlanValidationMessageUsesJSONName(t *testing.T) {
	crm := testCRM()
	h := &RouteHandler{Accounts: crm, Appointments: crm}

	rec := postJSON(t, h.Plan, `{"user_id":"rep","longitude":181,"latitude":0}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.JSONEq(t, `{"error":"longitude is out of range"}`, rec.Body.String())
}

func TestLocationsRecord(t *testing.T) {
	rec := &fakeRecorder{}
	h := &LocationHandler{Recorder: rec}

	res := postJSON(t, h.Record, `{"user_id":"rep","latitude":0,"longitude":-112.07}`)
	require.Equal(t, http.StatusNoContent, res.Code)
	require.Equal(t, "rep", rec.userID)
	require.Equal(t, domain.GeoPoint{Latitude: 0, Longitude: -112.07}, rec.p)

	res = postJSON(t, h.Record, `{"user_id":"rep","latitude":12}`)
	require.Equal(t, http.StatusBadRequest, res.Code)

	res = postJSON(t, (&LocationHandler{}).Record, `{"user_id":"rep","latitude":1,"longitude":1}`)
	require.Equal(t, http.StatusServiceUnavailable, res.Code)
}

func TestCallListList(t *testing.T) {
	now := time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC)
	crm := &fakeCRM{accounts: []domain.Account{
		{ID: 1, BusinessName: "Recent", AccountType: domain.AccountActive, LastContactDate: now.AddDate(0, 0, -3)},
		{ID: 2, BusinessName: "Stale", AccountType: domain.AccountActive, LastContactDate: now.AddDate(0, 0, -40)},
		{ID: 3, BusinessName: "Never", AccountType: domain.AccountProspect},
	}}
	h := &CallListHandler{Repo: crm, Now: func() time.Time { return now }}

	rec := httptest.NewRecorder()
	h.List(rec, httptest.NewRequest(http.MethodGet, "/call-list?user_id=rep", nil))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var res dto.CallListResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&res))
	require.Equal(t, 10, res.ThresholdDays)
	require.Len(t, res.Entries, 2)

	require.Equal(t, int64(2), res.Entries[0].AccountID)
	require.Equal(t, 5, res.Entries[0].Priority)
	require.NotNil(t, res.Entries[0].DaysSinceContact)
	require.Equal(t, 40, *res.Entries[0].DaysSinceContact)

	require.Equal(t, int64(3), res.Entries[1].AccountID)
	require.Equal(t, 4, res.Entries[1].Priority)
	require.Nil(t, res.Entries[1].DaysSinceContact)
	require.Nil(t, res.Entries[1].LastContactDate)

	rec = httptest.NewRecorder()
	h.List(rec, httptest.NewRequest(http.MethodGet, "/call-list?user_id=rep&days=0", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&res))
	require.Len(t, res.Entries, 3)
}

func TestCallListListBadInput(t *testing.T) {
	h := &CallListHandler{Repo: &fakeCRM{}}

	for _, target := range []string{
		"/call-list",
		"/call-list?user_id=rep&days=-1",
		"/call-list?user_id=rep&days=ten",
		"/call-list?user_id=rep&days=99999",
	} {
		rec := httptest.NewRecorder()
		h.List(rec, httptest.NewRequest(http.MethodGet, target, nil))
		require.Equal(t, http.StatusBadRequest, rec.Code, target)
	}

	rec := httptest.NewRecorder()
	(&CallListHandler{Repo: &fakeCRM{err: errors.New("db down")}}).List(rec, httptest.NewRequest(http.MethodGet, "/call-list?user_id=rep", nil))
	require.Equal(t, http.StatusInternalServerError, rec.Code)
}
