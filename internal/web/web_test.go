package web

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"monthcal/internal/calendar"
	"monthcal/internal/config"
	"monthcal/internal/model"
)

var testEvents = []model.Event{
	{Title: "Team Meeting", Date: "2026-10-05", Time: "10:00", Duration: "1h"},
	{Title: "Client Call", Date: "2026-10-05", Time: "10:30", Duration: "30m"},
	{Title: "Lunch", Date: "2026-10-05", Time: "12:30", Duration: "1h"},
	{Title: "Design Review", Date: "2026-10-19", Time: "2:00 PM", Duration: "1h"},
	{Title: "Broken", Date: "2026-10-19", Time: "whenever", Duration: "1h"},
	{Title: "Board Meeting", Date: "2026-11-02", Time: "09:00", Duration: "2h"},
}

func newTestServer(t *testing.T, mutate ...func(*config.Config)) *Server {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Snapshot.OutputPath = filepath.Join(t.TempDir(), "preview.png")
	for _, m := range mutate {
		m(cfg)
	}
	cfg.Normalize()
	clock := model.FixedClock{FixedNow: time.Date(2026, 10, 19, 13, 0, 0, 0, time.Local)}
	return NewServer(cfg, testEvents, clock)
}

func get(t *testing.T, s *Server, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rr := httptest.NewRecorder()
	s.Handler().ServeHTTP(rr, req)
	return rr
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &v), rr.Body.String())
	return v
}

func TestHealth(t *testing.T) {
	rr := get(t, newTestServer(t), "/health")

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "OK", rr.Body.String())
}

func TestCurrentMonth(t *testing.T) {
	rr := get(t, newTestServer(t), "/api/months/current")
	require.Equal(t, http.StatusOK, rr.Code)

	resp := decode[monthResponse](t, rr)
	assert.Equal(t, "2026-10", resp.Month)
	assert.Equal(t, "October 2026", resp.Title)
	assert.Equal(t, "2026-09", resp.Prev)
	assert.Equal(t, "2026-11", resp.Next)
	assert.Equal(t, "2026-10-19", resp.Today)
	assert.Equal(t, []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}, resp.Weekdays)
	require.Len(t, resp.Cells, 35)
	assert.Equal(t, "2026-09-27", resp.Cells[0].Date)
	assert.False(t, resp.Cells[0].IsCurrentMonth)

	var oct5, oct19 cellDTO
	for _, c := range resp.Cells {
		switch c.Date {
		case "2026-10-05":
			oct5 = c
		case "2026-10-19":
			oct19 = c
		}
	}

	require.Len(t, oct5.Events, 3)
	assert.True(t, oct5.Events[0].Conflict)
	assert.True(t, oct5.Events[1].Conflict)
	assert.False(t, oct5.Events[2].Conflict)
	assert.Equal(t, calendar.ConflictColor, oct5.Events[0].Color)
	assert.Equal(t, calendar.ColorGreen, oct5.Events[2].Color)
	assert.Equal(t, "📞", oct5.Events[1].Icon)

	assert.True(t, oct19.IsToday)
	require.Len(t, oct19.Events, 2)
	assert.False(t, oct19.Events[1].Conflict)
}

func TestMonth(t *testing.T) {
	s := newTestServer(t)

	rr := get(t, s, "/api/months/2026/11")
	require.Equal(t, http.StatusOK, rr.Code)
	resp := decode[monthResponse](t, rr)
	assert.Equal(t, "2026-11", resp.Month)
	assert.Zero(t, len(resp.Cells)%7)

	for _, c := range resp.Cells {
		assert.False(t, c.IsToday, "today is in October")
	}

	assert.Equal(t, http.StatusBadRequest, get(t, s, "/api/months/2026/13").Code)
	assert.Equal(t, http.StatusNotFound, get(t, s, "/api/months/26/1").Code)
}

func TestDay(t *testing.T) {
	s := newTestServer(t)

	rr := get(t, s, "/api/days/2026-10-05")
	require.Equal(t, http.StatusOK, rr.Code)
	resp := decode[dayResponse](t, rr)
	require.Len(t, resp.Events, 3)
	assert.Equal(t, "Team Meeting (10:00, 1h)", resp.Events[0].Tooltip)

	empty := decode[dayResponse](t, get(t, s, "/api/days/2026-10-06"))
	assert.NotNil(t, empty.Events)
	assert.Empty(t, empty.Events)

	assert.Equal(t, http.StatusBadRequest, get(t, s, "/api/days/yesterday").Code)
}

func TestEventDetail(t *testing.T) {
	s := newTestServer(t)

	list := decode[[]eventDTO](t, get(t, s, "/api/events"))
	require.Len(t, list, len(testEvents))
	assert.Equal(t, "Client Call", list[1].Title)
	assert.True(t, list[1].Conflict)
	assert.Equal(t, 1, list[1].Index)

	rr := get(t, s, "/api/events/"+list[1].ID)
	require.Equal(t, http.StatusOK, rr.Code)
	detail := decode[eventDetailDTO](t, rr)
	assert.Equal(t, "Client Call", detail.Title)
	assert.Equal(t, conflictMessage, detail.ConflictMessage)

	calm := decode[eventDetailDTO](t, get(t, s, "/api/events/"+list[5].ID))
	assert.False(t, calm.Conflict)
	assert.Empty(t, calm.ConflictMessage)

	assert.Equal(t, http.StatusBadRequest, get(t, s, "/api/events/not-a-uuid").Code)
	assert.Equal(t, http.StatusNotFound, get(t, s, "/api/events/00000000-0000-0000-0000-000000000000").Code)
}

func TestEventIDsAreStable(t *testing.T) {
	a := newEventIndex(testEvents)
	b := newEventIndex(testEvents)

	assert.Equal(t, a.ids, b.ids)

	dup := newEventIndex([]model.Event{testEvents[0], testEvents[0]})
	assert.NotEqual(t, dup.ids[0], dup.ids[1])
}

func TestUnknownAPIPath(t *testing.T) {
	rr := get(t, newTestServer(t), "/api/nope")

	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Contains(t, rr.Header().Get("Content-Type"), "application/json")
}

func TestStaticPage(t *testing.T) {
	rr := get(t, newTestServer(t), "/")

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `data-ready`)
}

func TestStaticPage_BadMonthHashFallsBack(t *testing.T) {
	s := newTestServer(t)
	page := get(t, s, "/").Body.String()

	// Only YYYY-MM hashes become month requests; a failed one retries the
	// current month before drawing.
	assert.Contains(t, page, `/^(\d{4})-(\d{2})$/`)
	assert.Contains(t, page, `if (!res.ok) res = await fetch(monthURL(null));`)

	// "#2026-13" passes the pattern and is refused, "#foo" never reaches the API.
	assert.Equal(t, http.StatusBadRequest, get(t, s, "/api/months/2026/13").Code)
	assert.Equal(t, http.StatusOK, get(t, s, "/api/months/current").Code)
}

func TestPreview(t *testing.T) {
	s := newTestServer(t)
	assert.Equal(t, http.StatusNotFound, get(t, s, "/preview.png").Code)

	require.NoError(t, os.WriteFile(s.cfg.Snapshot.OutputPath, []byte("\x89PNG\r\n\x1a\n"), 0o600))
	assert.Equal(t, http.StatusOK, get(t, s, "/preview.png").Code)
}

func TestBasicAuth(t *testing.T) {
	s := newTestServer(t, func(c *config.Config) {
		c.BasicAuth = &config.BasicAuthConfig{Username: "admin", Password: "secret"}
	})

	assert.Equal(t, http.StatusOK, get(t, s, "/health").Code)
	assert.Equal(t, http.StatusUnauthorized, get(t, s, "/api/months/current").Code)

	req := httptest.NewRequest(http.MethodGet, "/api/months/current", nil)
	req.SetBasicAuth("admin", "secret")
	rr := httptest.NewRecorder()
	s.Handler().ServeHTTP(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestListen_AddressInUse(t *testing.T) {
	busy, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer busy.Close()

	s := newTestServer(t, func(c *config.Config) { c.Listen = busy.Addr().String() })

	_, err = s.Listen()
	assert.ErrorContains(t, err, "listen on "+busy.Addr().String())
	assert.Error(t, s.Serve(context.Background()))
}

func TestServeListener_StopsOnCancel(t *testing.T) {
	s := newTestServer(t, func(c *config.Config) { c.Listen = "127.0.0.1:0" })
	ln, err := s.Listen()
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.ServeListener(ctx, ln) }()

	resp, err := http.Get("http://" + ln.Addr().String() + "/health")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}
