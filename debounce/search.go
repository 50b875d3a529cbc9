package debounce

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// DefaultMinLength is the shortest query worth sending to the backend.
const DefaultMinLength = 2

// SearchDispatcher debounces keystroke-driven searches. Queries shorter than
// MinLength never reach Search; OnEmpty is called straight away instead.
type SearchDispatcher struct {
	Search    func(ctx context.Context, query string)
	OnEmpty   func()
	MinLength int

	debouncer *Debouncer
}

func NewSearchDispatcher(wait time.Duration, minLength int, search func(ctx context.Context, query string), onEmpty func()) *SearchDispatcher {
	if minLength <= 0 {
		minLength = DefaultMinLength
	}
	return &SearchDispatcher{
		Search:    search,
		OnEmpty:   onEmpty,
		MinLength: minLength,
		debouncer: NewDebouncer(wait),
	}
}

// Dispatch handles one keystroke's worth of input.
func (s *SearchDispatcher) Dispatch(ctx context.Context, query string) {
	query = strings.TrimSpace(query)
	if len([]rune(query)) < s.MinLength {
		// A pending search for a longer query is stale now.
		s.debouncer.Cancel()
		log.Debug().Str("query", query).Msg("Search query too short, skipping")
		if s.OnEmpty != nil {
			s.OnEmpty()
		}
		return
	}
	s.debouncer.Debounce(func() {
		if ctx.Err() != nil {
			return
		}
		s.Search(ctx, query)
	})
}

// Stop drops any pending search.
func (s *SearchDispatcher) Stop() {
	s.debouncer.Cancel()
}
