package usecase

import (
	"context"

	"CoinPulse/internal/domain/models"
	drepo "CoinPulse/internal/domain/repository"
	mid "CoinPulse/internal/middleware"
)

// TickCollector collects ticks from the market stream and processes them.
type TickCollector struct {
	stream  drepo.MarketStream
	proc    *TickProcessor
	metrics drepo.Metrics
	pipe    *mid.RealtimePipeline
}

// NewTickCollector creates a new TickCollector instance.
func NewTickCollector(stream drepo.MarketStream, proc *TickProcessor, metrics drepo.Metrics, pipe *mid.RealtimePipeline) *TickCollector {
	return &TickCollector{stream: stream, proc: proc, metrics: metrics, pipe: pipe}
}

// IsConnected returns true if the market stream is connected.
func (c *TickCollector) IsConnected() bool {
	return c.stream.IsConnected()
}

func (c *TickCollector) Start(ctx context.Context) error {
	if err := c.stream.Connect(ctx); err != nil {
		return err
	}
	if err := c.stream.Subscribe(ctx); err != nil {
		return err
	}
	if c.pipe != nil {
		c.pipe.Start(ctx)
	}
	tkCh, errCh := c.stream.Read(ctx)
	go c.consume(ctx, tkCh, errCh)
	return nil
}

// consume drains the stream channels. Both close when the connection drops;
// after a reconnect the loop continues on fresh channels from Read.
func (c *TickCollector) consume(ctx context.Context, tkCh <-chan *models.Tick, errCh <-chan error) {
	for {
		select {
		case <-ctx.Done():
			return
		case err, ok := <-errCh:
			if ok && err == nil {
				continue
			}
			if ok {
				c.metrics.RecordError("stream")
			}
			tkCh, errCh = c.reopen(ctx)
			if tkCh == nil {
				return
			}
		case t, ok := <-tkCh:
			if !ok {
				tkCh, errCh = c.reopen(ctx)
				if tkCh == nil {
					return
				}
				continue
			}
			if t == nil {
				continue
			}
			if c.pipe != nil {
				_ = c.pipe.Process(ctx, t)
			} else {
				_ = c.proc.Process(ctx, t)
			}
			c.metrics.RecordLastPrice(t.Symbol, t.Price)
		}
	}
}

// reopen reconnects the stream and returns fresh channels. Reconnect itself
// waits the configured delay between attempts. Returns nil channels only on
// context cancellation.
func (c *TickCollector) reopen(ctx context.Context) (<-chan *models.Tick, <-chan error) {
	for {
		select {
		case <-ctx.Done():
			return nil, nil
		default:
		}
		if err := c.stream.Reconnect(ctx); err != nil {
			c.metrics.RecordError("reconnect")
			continue
		}
		tkCh, errCh := c.stream.Read(ctx)
		return tkCh, errCh
	}
}

func (c *TickCollector) Stop() error { return c.stream.Close() }

// Processor returns the underlying TickProcessor for lifecycle management.
func (c *TickCollector) Processor() *TickProcessor { return c.proc }

// Shutdown stops the pipeline and closes the stream.
func (c *TickCollector) Shutdown(ctx context.Context) error {
	if c.pipe != nil {
		c.pipe.Stop()
	}
	return c.stream.Close()
}
