// Package thread reassembles a self-reply chain into a single authored
// thread by walking parent references backward from the seed status.
package thread

import (
	"context"
	"iter"
	"slices"
	"strings"
	"time"

	"go.uber.org/zap"

	"xmd/content"
)

// Fetcher is the capability used to retrieve a parent status by id.
type Fetcher interface {
	TweetByID(ctx context.Context, id string) (*content.Tweet, error)
}

// FetcherFunc adapts a plain function to the Fetcher interface.
type FetcherFunc func(ctx context.Context, id string) (*content.Tweet, error)

func (f FetcherFunc) TweetByID(ctx context.Context, id string) (*content.Tweet, error) {
	return f(ctx, id)
}

const (
	DefaultMaxDepth = 20
	DefaultDelay    = 500 * time.Millisecond
)

type Option func(*Reconstructor)

// WithMaxDepth bounds how many parents are fetched.
func WithMaxDepth(n int) Option {
	return func(r *Reconstructor) {
		if n > 0 {
			r.maxDepth = n
		}
	}
}

// WithDelay sets the pause between consecutive parent fetches. Upstream rate
// limiting policy, not a correctness requirement.
func WithDelay(d time.Duration) Option {
	return func(r *Reconstructor) {
		r.delay = d
	}
}

// Reconstructor walks reply chains. Traversal state (visited set, depth) is
// local to each call, the value itself is reusable.
type Reconstructor struct {
	fetch    Fetcher
	maxDepth int
	delay    time.Duration
	log      *zap.Logger
}

func New(fetch Fetcher, log *zap.Logger, opts ...Option) *Reconstructor {
	r := &Reconstructor{
		fetch:    fetch,
		maxDepth: DefaultMaxDepth,
		delay:    DefaultDelay,
		log:      log,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Ancestors returns a finite iterator over same-author ancestors of the seed,
// newest first. Iteration ends quietly on depth limit, missing parent
// reference, cycle, fetch failure or author change - none of these is an
// error, the thread is simply whatever was reachable.
func (r *Reconstructor) Ancestors(ctx context.Context, seed *content.Tweet) iter.Seq[*content.Tweet] {
	return func(yield func(*content.Tweet) bool) {
		if seed == nil || seed.ReplyingTo == "" {
			return
		}

		author := seed.Author.ScreenName
		visited := map[string]bool{seed.ID.String(): true}
		current := seed

		for depth := 0; depth < r.maxDepth; depth++ {
			parentID := current.ReplyingToStatus.String()
			if parentID == "" {
				return
			}
			if visited[parentID] {
				r.log.Debug("Reply chain loops back on itself, stopping", zap.String("id", parentID))
				return
			}

			if depth > 0 && !r.pause(ctx) {
				return
			}

			parent, err := r.fetch.TweetByID(ctx, parentID)
			if err != nil {
				// soft termination - keep what we have
				r.log.Debug("Unable to fetch parent status, stopping", zap.String("id", parentID), zap.Error(err))
				return
			}

			if !strings.EqualFold(parent.Author.ScreenName, author) {
				r.log.Debug("Parent has different author, stopping",
					zap.String("id", parentID), zap.String("author", parent.Author.ScreenName))
				return
			}

			visited[parentID] = true
			if !yield(parent) {
				return
			}
			current = parent
		}
	}
}

// Reconstruct collects the seed and its same-author ancestors into a single
// thread, oldest first.
func (r *Reconstructor) Reconstruct(ctx context.Context, seed *content.Tweet) []*content.Tweet {
	thread := []*content.Tweet{seed}
	for parent := range r.Ancestors(ctx, seed) {
		thread = slices.Insert(thread, 0, parent)
	}
	if len(thread) > 1 {
		r.log.Info("Reconstructed thread", zap.Int("statuses", len(thread)))
	}
	return thread
}

// pause waits the configured delay between fetches, honoring cancellation.
func (r *Reconstructor) pause(ctx context.Context) bool {
	if r.delay <= 0 {
		return ctx.Err() == nil
	}
	t := time.NewTimer(r.delay)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
