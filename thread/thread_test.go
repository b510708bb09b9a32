package thread

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"xmd/content"
)

// chain builds a fake backend keyed by status id.
type fakeBackend struct {
	tweets map[string]*content.Tweet
	calls  int
}

func (f *fakeBackend) TweetByID(_ context.Context, id string) (*content.Tweet, error) {
	f.calls++
	t, ok := f.tweets[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return t, nil
}

func tweet(id, author, parentID string) *content.Tweet {
	t := &content.Tweet{
		ID:     content.FlexID(id),
		Author: content.Author{ScreenName: author},
	}
	if parentID != "" {
		t.ReplyingTo = author
		t.ReplyingToStatus = content.FlexID(parentID)
	}
	return t
}

func ids(thread []*content.Tweet) []string {
	out := make([]string, 0, len(thread))
	for _, t := range thread {
		out = append(out, t.ID.String())
	}
	return out
}

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func newTestReconstructor(f Fetcher) *Reconstructor {
	return New(f, zap.NewNop(), WithDelay(0))
}

func TestReconstruct_ThreeItemChain(t *testing.T) {
	backend := &fakeBackend{tweets: map[string]*content.Tweet{
		"a": tweet("a", "someone", ""),
		"b": tweet("b", "someone", "a"),
	}}
	seed := tweet("c", "someone", "b")

	got := newTestReconstructor(backend).Reconstruct(context.Background(), seed)
	if !equal(ids(got), []string{"a", "b", "c"}) {
		t.Errorf("thread = %v, want [a b c]", ids(got))
	}
}

func TestReconstruct_NoParent(t *testing.T) {
	backend := &fakeBackend{}
	seed := tweet("c", "someone", "")

	got := newTestReconstructor(backend).Reconstruct(context.Background(), seed)
	if !equal(ids(got), []string{"c"}) {
		t.Errorf("thread = %v, want [c]", ids(got))
	}
	if backend.calls != 0 {
		t.Errorf("fetched %d times for a standalone status", backend.calls)
	}
}

func TestReconstruct_AuthorMismatchAtRoot(t *testing.T) {
	backend := &fakeBackend{tweets: map[string]*content.Tweet{
		"a": tweet("a", "other", ""),
		"b": tweet("b", "someone", "a"),
	}}
	seed := tweet("c", "someone", "b")

	got := newTestReconstructor(backend).Reconstruct(context.Background(), seed)
	if !equal(ids(got), []string{"b", "c"}) {
		t.Errorf("thread = %v, want [b c]", ids(got))
	}
}

func TestReconstruct_AuthorMismatchImmediate(t *testing.T) {
	backend := &fakeBackend{tweets: map[string]*content.Tweet{
		"b": tweet("b", "other", ""),
	}}
	seed := tweet("c", "someone", "b")

	got := newTestReconstructor(backend).Reconstruct(context.Background(), seed)
	if !equal(ids(got), []string{"c"}) {
		t.Errorf("thread = %v, want [c]", ids(got))
	}
}

func TestReconstruct_AuthorCompareIsCaseInsensitive(t *testing.T) {
	backend := &fakeBackend{tweets: map[string]*content.Tweet{
		"b": tweet("b", "SomeOne", ""),
	}}
	seed := tweet("c", "someone", "b")

	got := newTestReconstructor(backend).Reconstruct(context.Background(), seed)
	if !equal(ids(got), []string{"b", "c"}) {
		t.Errorf("thread = %v, want [b c]", ids(got))
	}
}

func TestReconstruct_FetchFailureIsSoft(t *testing.T) {
	backend := &fakeBackend{tweets: map[string]*content.Tweet{
		"b": tweet("b", "someone", "a"), // "a" is missing from backend
	}}
	seed := tweet("c", "someone", "b")

	got := newTestReconstructor(backend).Reconstruct(context.Background(), seed)
	if !equal(ids(got), []string{"b", "c"}) {
		t.Errorf("thread = %v, want [b c]", ids(got))
	}
}

func TestReconstruct_CycleGuard(t *testing.T) {
	// b replies to c which replies to b
	backend := &fakeBackend{tweets: map[string]*content.Tweet{
		"b": tweet("b", "someone", "c"),
		"c": tweet("c", "someone", "b"),
	}}
	seed := tweet("c", "someone", "b")

	got := newTestReconstructor(backend).Reconstruct(context.Background(), seed)
	if !equal(ids(got), []string{"b", "c"}) {
		t.Errorf("thread = %v, want [b c]", ids(got))
	}
	if backend.calls != 1 {
		t.Errorf("fetched %d times, cycle should stop after 1", backend.calls)
	}
}

func TestReconstruct_DepthLimit(t *testing.T) {
	backend := &fakeBackend{tweets: map[string]*content.Tweet{}}
	// chain of 10 parents under the seed
	for i := 0; i < 10; i++ {
		id := string(rune('a' + i))
		parent := ""
		if i > 0 {
			parent = string(rune('a' + i - 1))
		}
		backend.tweets[id] = tweet(id, "someone", parent)
	}
	seed := tweet("z", "someone", "j")

	got := New(backend, zap.NewNop(), WithDelay(0), WithMaxDepth(3)).Reconstruct(context.Background(), seed)
	if len(got) != 4 {
		t.Errorf("thread length = %d, want seed + 3 parents", len(got))
	}
	if backend.calls != 3 {
		t.Errorf("fetched %d times, want 3", backend.calls)
	}
}

func TestAncestors_StopsOnCancel(t *testing.T) {
	backend := &fakeBackend{tweets: map[string]*content.Tweet{
		"a": tweet("a", "someone", ""),
		"b": tweet("b", "someone", "a"),
	}}
	seed := tweet("c", "someone", "b")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	var seen int
	for range New(backend, zap.NewNop(), WithDelay(0)).Ancestors(ctx, seed) {
		seen++
		cancel()
	}
	if seen != 1 {
		t.Errorf("yielded %d ancestors after cancel, want 1", seen)
	}
}
