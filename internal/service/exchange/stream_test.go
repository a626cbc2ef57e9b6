package exchange

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	applogger "CoinPulse/pkg/logger"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{}

func wsServer(t *testing.T, handler func(*websocket.Conn)) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("upgrade: %v", err)
			return
		}
		defer conn.Close()
		handler(conn)
	}))
	return srv
}

func wsURL(srv *httptest.Server) string {
	return "ws" + strings.TrimPrefix(srv.URL, "http")
}

func TestConnectAndSubscribe(t *testing.T) {
	subs := make(chan string, 4)
	srv := wsServer(t, func(conn *websocket.Conn) {
		for {
			var msg map[string]string
			if err := conn.ReadJSON(&msg); err != nil {
				return
			}
			if msg["type"] == "subscribe" {
				subs <- msg["symbol"]
			}
		}
	})
	defer srv.Close()

	c := New(wsURL(srv), []string{"BTC", "ETH"}, time.Second, time.Minute, applogger.NewDefault())
	ctx := context.Background()

	if c.IsConnected() {
		t.Fatalf("should not be connected before Connect")
	}
	if err := c.Connect(ctx); err != nil {
		t.Fatalf("connect: %v", err)
	}
	defer c.Close()

	if !c.IsConnected() {
		t.Fatalf("should be connected")
	}
	if err := c.Subscribe(ctx); err != nil {
		t.Fatalf("subscribe: %v", err)
	}

	for _, want := range []string{"BTC", "ETH"} {
		select {
		case got := <-subs:
			if got != want {
				t.Fatalf("subscribed %q, want %q", got, want)
			}
		case <-time.After(2 * time.Second):
			t.Fatalf("timed out waiting for subscription %q", want)
		}
	}
}

func TestReadParsesTradeFrames(t *testing.T) {
	srv := wsServer(t, func(conn *websocket.Conn) {
		// non-trade frame is ignored
		_ = conn.WriteJSON(map[string]string{"type": "ping"})
		_ = conn.WriteJSON(map[string]interface{}{
			"type": "trade",
			"data": []map[string]interface{}{
				{"s": "BTC", "x": "binance", "p": 97500.5, "v": 0.25, "t": int64(1724900000000)},
			},
		})
		time.Sleep(500 * time.Millisecond)
	})
	defer srv.Close()

	c := New(wsURL(srv), []string{"BTC"}, time.Second, time.Minute, applogger.NewDefault())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := c.Connect(ctx); err != nil {
		t.Fatalf("connect: %v", err)
	}
	defer c.Close()

	ticks, _ := c.Read(ctx)
	select {
	case tick := <-ticks:
		if tick.Symbol != "BTC" || tick.Exchange != "binance" {
			t.Fatalf("unexpected tick: %+v", tick)
		}
		if tick.Price != 97500.5 {
			t.Fatalf("price = %v, want 97500.5", tick.Price)
		}
		if tick.Timestamp != 1724900000 {
			t.Fatalf("timestamp = %d, want seconds", tick.Timestamp)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for tick")
	}
}
