package api

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/weedbox/pokerdirector"
	"github.com/weedbox/pokerdirector/blind"
	"github.com/weedbox/pokerdirector/payout"
	"github.com/weedbox/pokerdirector/shortener"
	"github.com/weedbox/pokerdirector/store"
)

func newTestServer(t *testing.T) *Server {
	logger := log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel})
	manager := pokerdirector.NewManager(nil,
		pokerdirector.WithManagerClock(quartz.NewMock(t)),
		pokerdirector.WithManagerStore(store.NewMemoryStore()),
	)
	t.Cleanup(manager.Reset)

	return NewServer(manager, shortener.NewMemoryShortener(), logger,
		WithPublicURL("https://director.example/"),
	)
}

func doRequest(t *testing.T, s *Server, method, path, owner, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if owner != "" {
		req.Header.Set(ownerHeader, owner)
	}
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	return rec
}

func decodeView(t *testing.T, rec *httptest.ResponseRecorder) tournamentView {
	var view tournamentView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	return view
}

func createTournament(t *testing.T, s *Server) string {
	rec := doRequest(t, s, http.MethodPost, "/tournaments", "owner", `{"name":"Friday Night"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	view := decodeView(t, rec)
	return view.Tournament.ID
}

func TestCreateAndGetTournament(t *testing.T) {
	s := newTestServer(t)
	id := createTournament(t, s)

	rec := doRequest(t, s, http.MethodGet, "/tournaments/"+id, "owner", "")
	require.Equal(t, http.StatusOK, rec.Code)
	view := decodeView(t, rec)
	assert.Equal(t, "Friday Night", view.Tournament.Settings.Name)
	assert.NotEmpty(t, view.Tournament.Settings.Levels)
	assert.Len(t, view.LevelEndAt, len(view.Tournament.Settings.Levels))

	rec = doRequest(t, s, http.MethodGet, "/tournaments/"+id, "intruder", "")
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = doRequest(t, s, http.MethodGet, "/tournaments/missing", "owner", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDispatchAction(t *testing.T) {
	s := newTestServer(t)
	id := createTournament(t, s)
	path := "/tournaments/" + id + "/actions"

	for _, p := range []string{"A", "B", "C"} {
		rec := doRequest(t, s, http.MethodPost, path, "owner", `{"type":"ADD_PLAYER","param":{"id":"`+p+`","name":"`+p+`"}}`)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	}

	rec := doRequest(t, s, http.MethodPost, path, "owner", `{"type":"MARK_ELIMINATED","param":{"player_id":"B"}}`)
	require.Equal(t, http.StatusOK, rec.Code)
	view := decodeView(t, rec)
	assert.Equal(t, 1, view.Tournament.EliminationCounter)
	require.Len(t, view.Standings, 3)
	assert.Equal(t, "B", view.Standings[2].PlayerID)

	// rejected by the reducer
	rec = doRequest(t, s, http.MethodPost, path, "owner", `{"type":"ADD_REBUY","param":{"player_id":"Z"}}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = doRequest(t, s, http.MethodPost, path, "owner", `{"type":"ADD_REBUY"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doRequest(t, s, http.MethodPost, path, "owner", `{"type":"TICK"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doRequest(t, s, http.MethodPost, path, "intruder", `{"type":"START"}`)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestSaveLoadTournament(t *testing.T) {
	s := newTestServer(t)
	id := createTournament(t, s)

	rec := doRequest(t, s, http.MethodPost, "/tournaments/"+id+"/save", "owner", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = doRequest(t, s, http.MethodPost, "/tournaments/"+id+"/load", "owner", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, id, decodeView(t, rec).Tournament.ID)

	rec = doRequest(t, s, http.MethodPost, "/tournaments/missing/load", "owner", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestShareTournament(t *testing.T) {
	s := newTestServer(t)
	id := createTournament(t, s)

	rec := doRequest(t, s, http.MethodPost, "/tournaments/"+id+"/share", "owner", "")
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp["token"], shortener.TokenLength)
	assert.Equal(t, "https://director.example/s/"+resp["token"], resp["short_url"])

	rec = doRequest(t, s, http.MethodGet, "/s/"+resp["token"], "", "")
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "https://director.example/tournaments/"+id, rec.Header().Get("Location"))

	rec = doRequest(t, s, http.MethodGet, "/s/unknown", "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateTournament_GeneratedScheduleLimits(t *testing.T) {
	s := newTestServer(t)

	rec := doRequest(t, s, http.MethodPost, "/tournaments", "owner", `{"name":"Short","player_count":20,"duration_mins":120}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	view := decodeView(t, rec)
	assert.LessOrEqual(t, blind.TotalDurationMins(view.Tournament.Settings.Levels), 120)

	rec = doRequest(t, s, http.MethodPost, "/tournaments", "owner", `{"duration_mins":100000000}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doRequest(t, s, http.MethodPost, "/tournaments", "owner", `{"player_count":-3}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTools(t *testing.T) {
	s := newTestServer(t)

	rec := doRequest(t, s, http.MethodPost, "/tools/stack", "", `{"denominations":[25,100,500,1000,5000],"format":"deepstack"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var stack blind.StackSizingResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stack))
	assert.Equal(t, stack.SmallBlind*2, stack.BigBlind)
	assert.Greater(t, stack.StartingStack, int64(0))

	rec = doRequest(t, s, http.MethodPost, "/tools/blinds", "", `{"player_count":20,"duration_mins":180}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var blinds struct {
		Schedule      blind.Schedule `json:"schedule"`
		TotalDuration int            `json:"total_duration"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &blinds))
	assert.NotEmpty(t, blinds.Schedule.Levels)
	assert.LessOrEqual(t, blinds.TotalDuration, 180)

	rec = doRequest(t, s, http.MethodPost, "/tools/blinds", "", `{"player_count":0,"duration_mins":180}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doRequest(t, s, http.MethodPost, "/tools/blinds", "", `{"player_count":9,"duration_mins":100000000}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), blind.ErrDurationTooLong.Error())

	rec = doRequest(t, s, http.MethodPost, "/tools/blinds", "", `{"player_count":100000000,"duration_mins":180}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), blind.ErrTooManyPlayers.Error())

	rec = doRequest(t, s, http.MethodPost, "/tools/payouts", "",
		`{"total_buy_ins":10,"buy_in_amount":100,"house_fee_type":"percentage","house_fee_value":10,"payout_places":[{"position":1,"percentage":60},{"position":2,"percentage":40}]}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var result payout.Result
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, 900.0, result.NetPrizePool)
	assert.Equal(t, 540.0, result.PayoutDetails[0].Amount)

	rec = doRequest(t, s, http.MethodGet, "/tools/payouts/suggest?participants=1", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var suggest struct {
		Places []payout.Place `json:"places"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &suggest))
	assert.Equal(t, []payout.Place{{Position: 1, Percentage: 100}}, suggest.Places)

	rec = doRequest(t, s, http.MethodGet, "/tools/payouts/suggest?participants=lots", "", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestBadJSON(t *testing.T) {
	s := newTestServer(t)

	rec := doRequest(t, s, http.MethodPost, "/tools/payouts", "", `{"unknown":1}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doRequest(t, s, http.MethodPost, "/tools/stack", "", `{`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCORS(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodOptions, "/tournaments", nil)
	req.Header.Set("Origin", "https://club.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)

	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}
