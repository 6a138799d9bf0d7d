// Package suggest turns a task title into candidate category names. The
// remote model is opaque; this package validates input, maps failures to soft
// errors, caches, and debounces the calls made while a title is being typed.
package suggest

import (
	"context"
	"errors"
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"
)

var (
	ErrInvalidInput = errors.New("suggest: invalid input")
	ErrUnavailable  = errors.New("suggest: suggestions unavailable")
)

const (
	MessageInvalidInput = "Invalid input"
	MessageUnavailable  = "Failed to get suggestions. Please try again."

	MinTitleLength = 3
)

type Suggester interface {
	SuggestCategories(ctx context.Context, title string) ([]string, error)
}

type SuggesterFunc func(ctx context.Context, title string) ([]string, error)

func (f SuggesterFunc) SuggestCategories(ctx context.Context, title string) ([]string, error) {
	return f(ctx, title)
}

// Service is the validated entry point in front of an upstream suggester.
// Every failure it returns wraps ErrInvalidInput or ErrUnavailable.
type Service struct {
	upstream Suggester
	logger   *log.Logger
}

func NewService(upstream Suggester, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.StandardLogger()
	}
	return &Service{upstream: upstream, logger: logger}
}

func (s *Service) SuggestCategories(ctx context.Context, title string) ([]string, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrInvalidInput
	}
	if s.upstream == nil {
		return nil, fmt.Errorf("%w: no upstream configured", ErrUnavailable)
	}
	out, err := s.upstream.SuggestCategories(ctx, title)
	if err != nil {
		if errors.Is(err, ErrInvalidInput) {
			return nil, err
		}
		s.logger.WithError(err).WithField("title", title).Error("error fetching category suggestions")
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return Clean(out), nil
}

// Clean trims suggestions, drops empties and removes case-insensitive
// duplicates while keeping first-seen order. The result is never nil.
func Clean(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]bool, len(in))
	for _, s := range in {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		k := strings.ToLower(s)
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, s)
	}
	return out
}

// Message maps a suggestion error onto the text shown to the browser client.
func Message(err error) string {
	if errors.Is(err, ErrInvalidInput) {
		return MessageInvalidInput
	}
	return MessageUnavailable
}
