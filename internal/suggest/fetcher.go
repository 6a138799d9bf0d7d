package suggest

import (
	"context"
	"errors"
	"sync"
	"time"
	"unicode/utf8"
)

// Result is one delivered round of suggestions. Seq grows with every request
// the fetcher starts; results never arrive out of Seq order.
type Result struct {
	Seq        uint64
	Title      string
	Categories []string
	Err        error
}

type FetcherOptions struct {
	Debounce time.Duration
	Timeout  time.Duration
	Buffer   int
}

// Fetcher debounces title changes and runs at most one meaningful request at
// a time: starting a request cancels the previous one, and a result older than
// one already delivered is dropped.
type Fetcher struct {
	suggester Suggester
	debouncer *Debouncer
	timeout   time.Duration
	out       chan Result
	done      chan struct{}

	mu        sync.Mutex
	seq       uint64
	cancel    context.CancelFunc
	closed    bool
	sendMu    sync.Mutex
	delivered uint64
	wg        sync.WaitGroup
}

func NewFetcher(s Suggester, opts FetcherOptions) *Fetcher {
	if opts.Buffer <= 0 {
		opts.Buffer = 4
	}
	f := &Fetcher{
		suggester: s,
		timeout:   opts.Timeout,
		out:       make(chan Result, opts.Buffer),
		done:      make(chan struct{}),
	}
	f.debouncer = NewDebouncer(opts.Debounce, f.fire)
	return f
}

func (f *Fetcher) Results() <-chan Result {
	return f.out
}

// Done is closed once the fetcher has been closed.
func (f *Fetcher) Done() <-chan struct{} {
	return f.done
}

// Trigger records a new title; the request goes out after the debounce delay.
func (f *Fetcher) Trigger(title string) {
	f.debouncer.Trigger(title)
}

func (f *Fetcher) Close() {
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return
	}
	f.closed = true
	if f.cancel != nil {
		f.cancel()
	}
	f.mu.Unlock()
	f.debouncer.Stop()
	close(f.done)
	f.wg.Wait()
}

func (f *Fetcher) fire(title string) {
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return
	}
	f.seq++
	seq := f.seq
	if f.cancel != nil {
		f.cancel()
		f.cancel = nil
	}
	if utf8.RuneCountInString(title) < MinTitleLength {
		f.mu.Unlock()
		f.deliver(Result{Seq: seq, Title: title, Categories: []string{}})
		return
	}
	var ctx context.Context
	var cancel context.CancelFunc
	if f.timeout > 0 {
		ctx, cancel = context.WithTimeout(context.Background(), f.timeout)
	} else {
		ctx, cancel = context.WithCancel(context.Background())
	}
	f.cancel = cancel
	f.wg.Add(1)
	f.mu.Unlock()

	go func() {
		defer f.wg.Done()
		defer cancel()
		categories, err := f.suggester.SuggestCategories(ctx, title)
		if err != nil && errors.Is(ctx.Err(), context.Canceled) {
			return
		}
		f.deliver(Result{Seq: seq, Title: title, Categories: categories, Err: err})
	}()
}

func (f *Fetcher) deliver(res Result) {
	f.sendMu.Lock()
	defer f.sendMu.Unlock()
	if res.Seq <= f.delivered {
		return
	}
	f.delivered = res.Seq
	select {
	case f.out <- res:
	case <-f.done:
	}
}
