package suggest

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
	"time"
)

func TestClientSuggestCategories(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req Request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		switch req.TaskTitle {
		case "bad":
			w.WriteHeader(http.StatusBadRequest)
			_ = json.NewEncoder(w).Encode(Response{Error: MessageInvalidInput})
		case "down":
			w.WriteHeader(http.StatusBadGateway)
			_ = json.NewEncoder(w).Encode(Response{Error: MessageUnavailable})
		default:
			_ = json.NewEncoder(w).Encode(Response{Categories: []string{"Work"}})
		}
	}))
	defer srv.Close()

	c := NewClient(srv.URL+"/", time.Second)
	got, err := c.SuggestCategories(context.Background(), "Quarterly report")
	if err != nil || !reflect.DeepEqual(got, []string{"Work"}) {
		t.Fatalf("unexpected result %v err=%v", got, err)
	}
	if _, err := c.SuggestCategories(context.Background(), "bad"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if _, err := c.SuggestCategories(context.Background(), "down"); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
}

func TestClientUnreachableServer(t *testing.T) {
	c := NewClient("http://127.0.0.1:1", 200*time.Millisecond)
	if _, err := c.SuggestCategories(context.Background(), "anything"); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
}
