package web

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/google/uuid"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peterkuimelis/hldx/internal/broadcast"
	"github.com/peterkuimelis/hldx/internal/game"
	"github.com/peterkuimelis/hldx/internal/log"
	"github.com/peterkuimelis/hldx/internal/view"
)

func newTestServer(t *testing.T) (*httptest.Server, *Hub) {
	t.Helper()
	catalog, err := game.DefaultCatalog()
	require.NoError(t, err)
	diag, _ := logtest.NewNullLogger()
	hub := NewHub("local", diag)
	ts := httptest.NewServer(NewServer(catalog, hub, diag).Handler())
	t.Cleanup(ts.Close)
	return ts, hub
}

func TestCardsAPI(t *testing.T) {
	ts, _ := newTestServer(t)

	resp, err := http.Get(ts.URL + "/api/cards")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	var cards []CardInfo
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&cards))
	require.NotEmpty(t, cards)

	byTitle := make(map[string]CardInfo)
	for _, c := range cards {
		byTitle[c.Title] = c
	}
	assert.Equal(t, "pet_rock", byTitle["Pet Rock"].Effect)
	assert.Equal(t, "Instant", byTitle["Disaster Insurance"].Kind)
	assert.Zero(t, byTitle["Disaster Insurance"].Points)
}

func TestIndexPage(t *testing.T) {
	ts, _ := newTestServer(t)

	resp, err := http.Get(ts.URL + "/")
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "/ws")

	resp, err = http.Get(ts.URL + "/nope")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func readMessage(t *testing.T, ctx context.Context, conn *websocket.Conn) Message {
	t.Helper()
	_, data, err := conn.Read(ctx)
	require.NoError(t, err)
	var m Message
	require.NoError(t, json.Unmarshal(data, &m))
	return m
}

func TestSpectatorStream(t *testing.T) {
	ts, hub := newTestServer(t)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	hub.Log(log.NewRoundEvent(1)) // before anyone connects

	conn, _, err := websocket.Dial(ctx, "ws"+strings.TrimPrefix(ts.URL, "http")+"/ws", nil)
	require.NoError(t, err)
	defer conn.CloseNow()

	first := readMessage(t, ctx, conn)
	assert.Equal(t, "NewRound", first.Event.Type, "late joiners get the backlog")
	assert.Equal(t, "local", first.GameID)

	require.Eventually(t, func() bool { return hub.Clients() == 1 }, time.Second, 10*time.Millisecond)

	hub.Log(log.NewRoundWinEvent(1, "Reward Points", "Ann", 5))
	live := readMessage(t, ctx, conn)
	assert.Equal(t, "RoundWin", live.Event.Type)
	assert.Equal(t, 2, live.Event.Seq)

	gameID := uuid.New()
	hub.Relay(broadcast.Envelope{GameID: gameID, Event: view.EventView{Type: "GameOver", Details: "Ann wins"}})
	relayed := readMessage(t, ctx, conn)
	assert.Equal(t, gameID.String(), relayed.GameID)
	assert.Equal(t, "Ann wins", relayed.Event.Details)

	conn.Close(websocket.StatusNormalClosure, "")
	require.Eventually(t, func() bool { return hub.Clients() == 0 }, time.Second, 10*time.Millisecond)
}

func TestHubDropsSlowClient(t *testing.T) {
	diag, hook := logtest.NewNullLogger()
	hub := NewHub("", diag)
	c, _ := hub.register()

	for i := 0; i <= sendBuffer; i++ {
		hub.Log(log.NewRoundEvent(i + 1))
	}

	assert.Zero(t, hub.Clients())
	assert.NotEmpty(t, hook.AllEntries())
	n := 0
	for range c.send {
		n++
	}
	assert.Equal(t, sendBuffer, n, "buffered messages are still delivered before close")
	hub.unregister(c) // already gone; must not panic
}

func TestHubBacklogIsBounded(t *testing.T) {
	hub := NewHub("", nil)
	for i := 0; i < backlogSize+10; i++ {
		hub.Log(log.NewRoundEvent(i + 1))
	}
	_, backlog := hub.register()
	require.Len(t, backlog, backlogSize)

	var m Message
	require.NoError(t, json.Unmarshal(backlog[0], &m))
	assert.Equal(t, 11, m.Event.Round)
}
