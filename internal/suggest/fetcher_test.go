package suggest

import (
	"context"
	"sync"
	"testing"
	"time"
)

type recordingSuggester struct {
	mu     sync.Mutex
	titles []string
	delay  time.Duration
}

func (r *recordingSuggester) SuggestCategories(ctx context.Context, title string) ([]string, error) {
	r.mu.Lock()
	r.titles = append(r.titles, title)
	delay := r.delay
	r.mu.Unlock()
	if delay > 0 {
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return []string{"cat:" + title}, nil
}

func (r *recordingSuggester) calls() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.titles...)
}

func waitResult(t *testing.T, f *Fetcher) Result {
	t.Helper()
	select {
	case res := <-f.Results():
		return res
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for result")
	}
	return Result{}
}

func TestDebouncerTrailingEdge(t *testing.T) {
	got := make(chan string, 4)
	d := NewDebouncer(50*time.Millisecond, func(v string) { got <- v })
	defer d.Stop()
	d.Trigger("a")
	d.Trigger("ab")
	d.Trigger("abc")
	select {
	case v := <-got:
		if v != "abc" {
			t.Fatalf("expected last value, got %q", v)
		}
	case <-time.After(time.Second):
		t.Fatal("debounced call never fired")
	}
	select {
	case v := <-got:
		t.Fatalf("unexpected extra call with %q", v)
	case <-time.After(150 * time.Millisecond):
	}
}

func TestDebouncerStopDropsPending(t *testing.T) {
	got := make(chan string, 1)
	d := NewDebouncer(30*time.Millisecond, func(v string) { got <- v })
	d.Trigger("pending")
	d.Stop()
	d.Trigger("after stop")
	select {
	case v := <-got:
		t.Fatalf("stopped debouncer fired with %q", v)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestFetcherBurstIssuesOneCall(t *testing.T) {
	rec := &recordingSuggester{}
	f := NewFetcher(rec, FetcherOptions{Debounce: 100 * time.Millisecond})
	defer f.Close()

	for _, title := range []string{"Rea", "Read", "Read a", "Read a b", "Read a book"} {
		f.Trigger(title)
		time.Sleep(10 * time.Millisecond)
	}
	res := waitResult(t, f)
	if res.Title != "Read a book" || res.Err != nil || len(res.Categories) != 1 || res.Categories[0] != "cat:Read a book" {
		t.Fatalf("unexpected result: %+v", res)
	}
	time.Sleep(200 * time.Millisecond)
	if calls := rec.calls(); len(calls) != 1 || calls[0] != "Read a book" {
		t.Fatalf("expected exactly one remote call with the last title, got %v", calls)
	}
}

func TestFetcherShortTitleSkipsRemote(t *testing.T) {
	rec := &recordingSuggester{}
	f := NewFetcher(rec, FetcherOptions{Debounce: 20 * time.Millisecond})
	defer f.Close()

	f.Trigger("ab")
	res := waitResult(t, f)
	if res.Title != "ab" || res.Categories == nil || len(res.Categories) != 0 || res.Err != nil {
		t.Fatalf("expected empty suggestions, got %+v", res)
	}
	if calls := rec.calls(); len(calls) != 0 {
		t.Fatalf("expected no remote call, got %v", calls)
	}
}

func TestFetcherSupersededRequestIsDropped(t *testing.T) {
	rec := &recordingSuggester{delay: 150 * time.Millisecond}
	f := NewFetcher(rec, FetcherOptions{Debounce: 20 * time.Millisecond})
	defer f.Close()

	f.Trigger("first title")
	time.Sleep(60 * time.Millisecond)
	f.Trigger("second title")

	res := waitResult(t, f)
	if res.Title != "second title" {
		t.Fatalf("expected only the latest result, got %+v", res)
	}
	if res.Seq != 2 {
		t.Fatalf("expected seq 2, got %d", res.Seq)
	}
	select {
	case extra := <-f.Results():
		t.Fatalf("unexpected stale result: %+v", extra)
	case <-time.After(200 * time.Millisecond):
	}
}

func TestFetcherCloseIsIdempotent(t *testing.T) {
	f := NewFetcher(&recordingSuggester{}, FetcherOptions{Debounce: 10 * time.Millisecond})
	f.Trigger("something")
	f.Close()
	f.Close()
}
