package usecase

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"CoinPulse/internal/domain/models"
)

// scriptedStream hands out fresh channel pairs on every Read so tests can
// drop a connection and verify the collector picks up the replacement.
type scriptedStream struct {
	mu         sync.Mutex
	connected  bool
	reads      int
	reconnects int
	ticksCh    chan *models.Tick
	errsCh     chan error
}

func (s *scriptedStream) Connect(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.connected = true
	return nil
}

func (s *scriptedStream) Subscribe(ctx context.Context) error { return nil }

func (s *scriptedStream) Read(ctx context.Context) (<-chan *models.Tick, <-chan error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reads++
	s.ticksCh = make(chan *models.Tick, 8)
	s.errsCh = make(chan error, 1)
	return s.ticksCh, s.errsCh
}

func (s *scriptedStream) Reconnect(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reconnects++
	s.connected = true
	return nil
}

func (s *scriptedStream) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.connected = false
	return nil
}

func (s *scriptedStream) IsConnected() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.connected
}

func (s *scriptedStream) sendTick(t *models.Tick) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ticksCh <- t
}

func (s *scriptedStream) dropConnection() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.errsCh <- fmt.Errorf("connection reset")
	close(s.errsCh)
	close(s.ticksCh)
}

func (s *scriptedStream) counts() (reads, reconnects int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reads, s.reconnects
}

func eventually(t *testing.T, cond func() bool, msg string) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("timed out waiting: %s", msg)
}

func TestCollectorResumesAfterStreamError(t *testing.T) {
	stream := &scriptedStream{}
	store := &fakeTickStore{}
	proc := NewTickProcessor(&fakePublisher{}, store, nopMetrics{}, "clickhouse", 100, time.Second)
	col := NewTickCollector(stream, proc, nopMetrics{}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := col.Start(ctx); err != nil {
		t.Fatalf("start: %v", err)
	}

	stream.sendTick(&models.Tick{Symbol: "BTC", Exchange: "binance", Price: 97000, Volume: 1, Timestamp: time.Now().Unix()})
	eventually(t, func() bool { return store.storedCount() == 1 }, "first tick processed")

	stream.dropConnection()
	eventually(t, func() bool {
		reads, reconnects := stream.counts()
		return reconnects >= 1 && reads >= 2
	}, "collector reconnected and re-read the stream")

	stream.sendTick(&models.Tick{Symbol: "BTC", Exchange: "kraken", Price: 97010, Volume: 1, Timestamp: time.Now().Unix()})
	eventually(t, func() bool { return store.storedCount() == 2 }, "tick after reconnect processed")
}

func TestCollectorStopsOnCancelDuringReconnect(t *testing.T) {
	stream := &scriptedStream{}
	store := &fakeTickStore{}
	proc := NewTickProcessor(&fakePublisher{}, store, nopMetrics{}, "clickhouse", 100, time.Second)
	col := NewTickCollector(stream, proc, nopMetrics{}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	if err := col.Start(ctx); err != nil {
		t.Fatalf("start: %v", err)
	}

	stream.dropConnection()
	eventually(t, func() bool {
		_, reconnects := stream.counts()
		return reconnects >= 1
	}, "reconnect attempted")

	cancel()
	// goroutine must exit without spinning on closed channels
	time.Sleep(50 * time.Millisecond)
	before, _ := stream.counts()
	time.Sleep(50 * time.Millisecond)
	after, _ := stream.counts()
	if after != before {
		t.Fatalf("collector still reading after cancel: reads %d -> %d", before, after)
	}
}
