package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Young-000/alert-system-sub000/pkg/commuteroutes"
	"github.com/Young-000/alert-system-sub000/pkg/ctdf"
	"github.com/Young-000/alert-system-sub000/pkg/drafts"
	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticSearcher struct {
	stops []*ctdf.Stop
}

func (s *staticSearcher) Search(_ context.Context, query string, mode ctdf.TransportMode) ([]*ctdf.Stop, error) {
	matches := []*ctdf.Stop{}
	for _, stop := range s.stops {
		if mode != "" && stop.TransportMode != mode {
			continue
		}
		if strings.HasPrefix(strings.ToLower(stop.PrimaryName), strings.ToLower(query)) {
			matches = append(matches, stop)
		}
	}

	return matches, nil
}

// headerAuth trusts the X-Test-User header in place of a bearer token
func headerAuth(c *fiber.Ctx) error {
	userID := c.Get("X-Test-User")
	if userID == "" {
		return c.SendStatus(fiber.StatusUnauthorized)
	}

	c.Locals("account_userid", userID)
	return c.Next()
}

type testServer struct {
	t      *testing.T
	app    *fiber.App
	routes *commuteroutes.MemoryStore
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	redisServer := miniredis.RunT(t)
	redisClient := redis.NewClient(&redis.Options{Addr: redisServer.Addr()})
	routeStore := commuteroutes.NewMemoryStore()

	searcher := &staticSearcher{stops: []*ctdf.Stop{
		{PrimaryIdentifier: "222", PrimaryName: "Gangnam", TransportMode: ctdf.TransportModeSubway, Line: "Line2", Active: true},
		{PrimaryIdentifier: "D07", PrimaryName: "Gangnam", TransportMode: ctdf.TransportModeSubway, Line: "Shinbundang", Active: true},
		{PrimaryIdentifier: "23001", PrimaryName: "Gangnam Station", TransportMode: ctdf.TransportModeBus, StopNumber: "23-001", Active: true},
	}}

	app := NewApp(Dependencies{
		Searcher: searcher,
		Routes:   routeStore,
		Drafts: &drafts.Manager{
			Sessions: drafts.NewStore(redisClient, time.Hour),
			Routes:   routeStore,
		},
	}, headerAuth)

	return &testServer{t: t, app: app, routes: routeStore}
}

func (s *testServer) do(method string, path string, user string, body interface{}) (int, []byte) {
	s.t.Helper()

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(s.t, err)
		reader = bytes.NewReader(encoded)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	if user != "" {
		req.Header.Set("X-Test-User", user)
	}

	resp, err := s.app.Test(req, -1)
	require.NoError(s.t, err)
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	require.NoError(s.t, err)

	return resp.StatusCode, respBody
}

type draftResponse struct {
	ID    string
	Stops []struct {
		UniqueKey     string
		Name          string
		TransportMode ctdf.TransportMode
		Line          string
	}
	Transfers []struct {
		Label string
	}
	Advisory   string
	SearchText string
	Validation struct {
		IsValid bool
		Errors  []string
	}
}

func decode[T any](t *testing.T, body []byte) T {
	t.Helper()

	var decoded T
	require.NoError(t, json.Unmarshal(body, &decoded), string(body))
	return decoded
}

func (s *testServer) newDraft(user string) draftResponse {
	status, body := s.do(http.MethodPost, "/core/account/drafts", user, fiber.Map{"Name": "Morning", "Direction": "toWork"})
	require.Equal(s.t, fiber.StatusCreated, status, string(body))
	return decode[draftResponse](s.t, body)
}

func subwayChoice(name string, line string, id string) fiber.Map {
	return fiber.Map{"Name": name, "TransportMode": "subway", "Line": line, "ExternalID": id}
}

func TestVersion(t *testing.T) {
	server := newTestServer(t)

	status, body := server.do(http.MethodGet, "/core/version", "", nil)
	assert.Equal(t, fiber.StatusOK, status)
	assert.JSONEq(t, `{"service":"commute","version":"v0.1"}`, string(body))
}

func TestStopSearch(t *testing.T) {
	server := newTestServer(t)

	tests := []struct {
		name           string
		path           string
		wantStatus     int
		wantCandidates int
	}{
		{name: "all modes", path: "/core/stops/search?query=gang", wantStatus: fiber.StatusOK, wantCandidates: 2},
		{name: "subway only", path: "/core/stops/search?query=gang&mode=subway", wantStatus: fiber.StatusOK, wantCandidates: 1},
		{name: "blank query", path: "/core/stops/search?query=%20%20", wantStatus: fiber.StatusOK, wantCandidates: 0},
		{name: "unknown mode", path: "/core/stops/search?query=gang&mode=tram", wantStatus: fiber.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := server.do(http.MethodGet, tt.path, "", nil)
			require.Equal(t, tt.wantStatus, status, string(body))

			if tt.wantStatus != fiber.StatusOK {
				return
			}

			response := decode[struct {
				Candidates []struct {
					Name  string
					Lines []struct{ Label string }
				}
			}](t, body)
			assert.Len(t, response.Candidates, tt.wantCandidates)
		})
	}
}

func TestAccountRoutesRequireAuth(t *testing.T) {
	server := newTestServer(t)

	status, _ := server.do(http.MethodGet, "/core/account/commute_routes", "", nil)
	assert.Equal(t, fiber.StatusUnauthorized, status)
}

func TestCreateDraftRejectsDirection(t *testing.T) {
	server := newTestServer(t)

	status, body := server.do(http.MethodPost, "/core/account/drafts", "rider", fiber.Map{"Name": "Morning", "Direction": "sideways"})
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Contains(t, string(body), "Direction must be toWork or toHome")
}

func TestDraftPickNeedsLineChoice(t *testing.T) {
	server := newTestServer(t)
	draft := server.newDraft("rider")

	candidate := fiber.Map{
		"Name":          "Gangnam",
		"TransportMode": "subway",
		"Lines": []fiber.Map{
			{"Label": "Line2", "ExternalID": "222"},
			{"Label": "Shinbundang", "ExternalID": "D07"},
		},
	}

	status, body := server.do(http.MethodPost, "/core/account/drafts/"+draft.ID+"/pick", "rider", candidate)
	require.Equal(t, fiber.StatusOK, status, string(body))

	response := decode[struct {
		Draft          draftResponse
		Disambiguation struct {
			Options []struct{ Label string }
		}
	}](t, body)
	assert.Empty(t, response.Draft.Stops)
	assert.Len(t, response.Disambiguation.Options, 2)
}

func TestDraftRejectsMalformedStops(t *testing.T) {
	server := newTestServer(t)
	draft := server.newDraft("rider")
	draftPath := "/core/account/drafts/" + draft.ID

	tests := []struct {
		name string
		path string
		body fiber.Map
	}{
		{
			name: "pick with unknown mode",
			path: draftPath + "/pick",
			body: fiber.Map{
				"Name":          "Gangnam",
				"TransportMode": "tram",
				"Lines":         []fiber.Map{{"Label": "Line2", "ExternalID": "222"}},
			},
		},
		{
			name: "pick subway option with stop number",
			path: draftPath + "/pick",
			body: fiber.Map{
				"Name":          "Gangnam",
				"TransportMode": "subway",
				"Lines":         []fiber.Map{{"Label": "Line2", "ExternalID": "222", "StopNumber": "23-001"}},
			},
		},
		{
			name: "append subway with stop number",
			path: draftPath + "/stops",
			body: fiber.Map{"Name": "Gangnam", "TransportMode": "subway", "Line": "Line2", "ExternalID": "222", "StopNumber": "23-001"},
		},
		{
			name: "append bus with line",
			path: draftPath + "/stops",
			body: fiber.Map{"Name": "Gangnam Station", "TransportMode": "bus", "Line": "Line2", "ExternalID": "23001"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := server.do(http.MethodPost, tt.path, "rider", tt.body)
			assert.Equal(t, fiber.StatusBadRequest, status, string(body))
		})
	}

	status, body := server.do(http.MethodGet, draftPath, "rider", nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.Empty(t, decode[draftResponse](t, body).Stops)
}

func TestDraftLifecycle(t *testing.T) {
	server := newTestServer(t)
	draft := server.newDraft("rider")
	draftPath := "/core/account/drafts/" + draft.ID

	status, body := server.do(http.MethodPut, draftPath+"/search", "rider", fiber.Map{"Text": "gang"})
	require.Equal(t, fiber.StatusOK, status, string(body))
	assert.Equal(t, "gang", decode[draftResponse](t, body).SearchText)

	status, body = server.do(http.MethodPost, draftPath+"/stops", "rider", subwayChoice("Gangnam", "Line2", "222"))
	require.Equal(t, fiber.StatusOK, status, string(body))
	assert.Empty(t, decode[draftResponse](t, body).SearchText)

	status, body = server.do(http.MethodPost, draftPath+"/stops", "rider", subwayChoice("Gangnam", "Line2", "222"))
	require.Equal(t, fiber.StatusBadRequest, status)
	rejection := decode[struct {
		Error      string
		Validation struct{ IsValid bool }
	}](t, body)
	assert.NotEmpty(t, rejection.Error)
	assert.False(t, rejection.Validation.IsValid)

	status, body = server.do(http.MethodPost, draftPath+"/stops", "rider", subwayChoice("Yeoksam", "Line2", "221"))
	require.Equal(t, fiber.StatusOK, status, string(body))

	status, body = server.do(http.MethodPost, draftPath+"/stops", "rider", fiber.Map{
		"Name": "Yeoksam Station", "TransportMode": "bus", "ExternalID": "23002", "StopNumber": "23-002",
	})
	require.Equal(t, fiber.StatusOK, status, string(body))
	current := decode[draftResponse](t, body)
	require.Len(t, current.Stops, 3)
	assert.True(t, current.Validation.IsValid)
	require.Len(t, current.Transfers, 1)

	status, body = server.do(http.MethodPut, draftPath+"/stops/"+current.Stops[2].UniqueKey+"/position", "rider", fiber.Map{"Index": 0})
	require.Equal(t, fiber.StatusOK, status, string(body))
	assert.Equal(t, "Yeoksam Station", decode[draftResponse](t, body).Stops[0].Name)

	status, _ = server.do(http.MethodPut, draftPath+"/stops/missing/position", "rider", fiber.Map{"Index": 0})
	assert.Equal(t, fiber.StatusBadRequest, status)

	status, body = server.do(http.MethodDelete, draftPath+"/stops/0", "rider", nil)
	require.Equal(t, fiber.StatusOK, status, string(body))
	assert.Len(t, decode[draftResponse](t, body).Stops, 2)

	status, _ = server.do(http.MethodDelete, draftPath+"/stops/9", "rider", nil)
	assert.Equal(t, fiber.StatusBadRequest, status)

	status, body = server.do(http.MethodGet, draftPath+"/validation", "rider", nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.True(t, decode[struct{ IsValid bool }](t, body).IsValid)

	status, body = server.do(http.MethodPost, draftPath+"/save", "rider", nil)
	require.Equal(t, fiber.StatusCreated, status, string(body))
	saved := decode[struct {
		PrimaryIdentifier string
		Name              string
		UserID            string
		Checkpoints       []struct {
			SequenceOrder int
			Type          ctdf.CheckpointType
		}
	}](t, body)
	assert.True(t, strings.HasPrefix(saved.PrimaryIdentifier, "COMMUTE:ROUTE:"))
	assert.Empty(t, saved.UserID)
	require.Len(t, saved.Checkpoints, 4)
	assert.Equal(t, ctdf.CheckpointTypeHome, saved.Checkpoints[0].Type)
	assert.Equal(t, ctdf.CheckpointTypeWork, saved.Checkpoints[3].Type)

	status, _ = server.do(http.MethodGet, draftPath, "rider", nil)
	assert.Equal(t, fiber.StatusNotFound, status)
}

func TestCommuteRoutes(t *testing.T) {
	server := newTestServer(t)
	draft := server.newDraft("rider")
	draftPath := "/core/account/drafts/" + draft.ID

	status, body := server.do(http.MethodPost, draftPath+"/stops", "rider", subwayChoice("Gangnam", "Line2", "222"))
	require.Equal(t, fiber.StatusOK, status, string(body))

	status, body = server.do(http.MethodPost, draftPath+"/save", "rider", nil)
	require.Equal(t, fiber.StatusCreated, status, string(body))
	routeID := decode[struct{ PrimaryIdentifier string }](t, body).PrimaryIdentifier
	routePath := "/core/account/commute_routes/" + routeID

	status, body = server.do(http.MethodGet, "/core/account/commute_routes", "rider", nil)
	require.Equal(t, fiber.StatusOK, status)
	summaries := decode[[]ctdf.CommuteRouteSummary](t, body)
	require.Len(t, summaries, 1)
	assert.Equal(t, 1, summaries[0].NumberOfStops)

	status, body = server.do(http.MethodGet, "/core/account/commute_routes", "someone-else", nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.JSONEq(t, `[]`, string(body))

	status, _ = server.do(http.MethodGet, routePath, "someone-else", nil)
	assert.Equal(t, fiber.StatusNotFound, status)

	status, body = server.do(http.MethodGet, routePath+"/checkpoints.csv", "rider", nil)
	require.Equal(t, fiber.StatusOK, status)
	lines := strings.Split(strings.TrimSpace(string(body)), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "sequence_order,name,type,line,linked_station_id,linked_bus_stop_id,transfer", lines[0])

	status, body = server.do(http.MethodPost, "/core/account/drafts/edit/"+routeID, "rider", nil)
	require.Equal(t, fiber.StatusCreated, status, string(body))
	edit := decode[draftResponse](t, body)
	require.Len(t, edit.Stops, 1)
	assert.Equal(t, "Line2", edit.Stops[0].Line)

	status, _ = server.do(http.MethodDelete, "/core/account/drafts/"+edit.ID, "rider", nil)
	assert.Equal(t, fiber.StatusNoContent, status)

	status, _ = server.do(http.MethodDelete, routePath, "rider", nil)
	assert.Equal(t, fiber.StatusNoContent, status)

	_, err := server.routes.Get(context.Background(), routeID)
	assert.ErrorIs(t, err, commuteroutes.ErrRouteNotFound)
}

func TestRequestIDHeader(t *testing.T) {
	server := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/core/version", nil)
	resp, err := server.app.Test(req, -1)
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Header.Get(requestIDHeader))

	req = httptest.NewRequest(http.MethodGet, "/core/version", nil)
	req.Header.Set(requestIDHeader, "abc-123")
	resp, err = server.app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, "abc-123", resp.Header.Get(requestIDHeader))
}
