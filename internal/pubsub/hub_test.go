package pubsub

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Guizzs26/ballot_register/internal/model"
)

func readStandings(t *testing.T, ctx context.Context, conn *websocket.Conn) model.Standings {
	t.Helper()
	_, msg, err := conn.Read(ctx)
	require.NoError(t, err)
	var s model.Standings
	require.NoError(t, json.Unmarshal(msg, &s))
	return s
}

func Test_Hub_Broadcast(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	hub := NewHub()
	go hub.Run(ctx)

	srv := httptest.NewServer(http.HandlerFunc(hub.ServeWS))
	defer srv.Close()

	// published before anyone listens, replayed on connect
	require.NoError(t, hub.PublishStandings(ctx, model.Standings{
		Tallies: []model.Tally{{Candidate: "A"}},
		Leader:  "A",
	}))

	conn, _, err := websocket.Dial(ctx, "ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	require.NoError(t, err)
	defer conn.Close(websocket.StatusNormalClosure, "")

	first := readStandings(t, ctx, conn)
	assert.Equal(t, "A", first.Leader)
	assert.Zero(t, first.TotalVotes)

	require.NoError(t, hub.PublishStandings(ctx, model.Standings{
		Tallies:    []model.Tally{{Candidate: "A"}, {Candidate: "B", Votes: 1}},
		Leader:     "B",
		TotalVotes: 1,
	}))

	second := readStandings(t, ctx, conn)
	assert.Equal(t, "B", second.Leader)
	assert.Equal(t, uint64(1), second.TotalVotes)
	assert.Len(t, second.Tallies, 2)
}

func Test_Hub_Closed(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	hub := NewHub()
	stopped := make(chan struct{})
	go func() {
		hub.Run(ctx)
		close(stopped)
	}()
	cancel()
	<-stopped

	err := hub.PublishStandings(context.Background(), model.Standings{})
	assert.ErrorIs(t, err, ErrHubClosed)
}
