package weather

import (
	"context"
	"fmt"
)

// Fetcher produces one current-temperature reading for a city. The two
// implementations differ only in how they wait on the network call; the
// consumer of the reading never sees which one was used.
type Fetcher interface {
	FetchCurrent(ctx context.Context, city string) (float64, error)
}

// SyncFetcher performs a plain blocking fetch on the caller's goroutine.
type SyncFetcher struct {
	Client *Client
}

func (f *SyncFetcher) FetchCurrent(ctx context.Context, city string) (float64, error) {
	return f.Client.CurrentTemperature(ctx, city)
}

// AsyncFetcher dispatches the fetch on its own goroutine and waits on a
// channel, so the caller can be released by context cancellation even
// while the request is in flight.
type AsyncFetcher struct {
	Client *Client
}

type fetchResult struct {
	temp float64
	err  error
}

func (f *AsyncFetcher) FetchCurrent(ctx context.Context, city string) (float64, error) {
	ch := make(chan fetchResult, 1)

	go func() {
		temp, err := f.Client.CurrentTemperature(ctx, city)
		ch <- fetchResult{temp: temp, err: err}
	}()

	select {
	case <-ctx.Done():
		return 0, ctx.Err()
	case res := <-ch:
		return res.temp, res.err
	}
}

// NewFetcher returns the fetch strategy for the given mode ("sync" or
// "async").
func NewFetcher(mode string, client *Client) (Fetcher, error) {
	switch mode {
	case "", "sync":
		return &SyncFetcher{Client: client}, nil
	case "async":
		return &AsyncFetcher{Client: client}, nil
	default:
		return nil, fmt.Errorf("unknown fetch mode %q", mode)
	}
}
