package queue

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/urbaneye/civic-issue-system/internal/core/ports"
)

type recordingActivityService struct {
	mu      sync.Mutex
	entries []ports.IssueActivityInput
	done    chan struct{}
	expect  int
}

func newRecordingActivityService(expect int) *recordingActivityService {
	return &recordingActivityService{done: make(chan struct{}), expect: expect}
}

func (s *recordingActivityService) Process(ctx context.Context, in ports.IssueActivityInput) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, in)
	if len(s.entries) == s.expect {
		close(s.done)
	}
	return nil
}

func (s *recordingActivityService) wait(t *testing.T) []ports.IssueActivityInput {
	t.Helper()
	select {
	case <-s.done:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for activity entries")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]ports.IssueActivityInput, len(s.entries))
	copy(out, s.entries)
	return out
}

func TestDispatcher_ProcessesEnqueuedEntries(t *testing.T) {
	svc := newRecordingActivityService(3)
	d := NewDispatcher(2, svc, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	d.Enqueue(ports.IssueActivityInput{IssueID: "issue-a", Kind: "created"})
	d.Enqueue(ports.IssueActivityInput{IssueID: "issue-b", Kind: "vote"})
	d.Enqueue(ports.IssueActivityInput{IssueID: "issue-c", Kind: "comment"})

	entries := svc.wait(t)
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
}

func TestDispatcher_OrderPreservedPerIssue(t *testing.T) {
	const perIssue = 20
	svc := newRecordingActivityService(perIssue * 2)
	d := NewDispatcher(4, svc, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	for i := 0; i < perIssue; i++ {
		d.Enqueue(ports.IssueActivityInput{IssueID: "issue-a", Kind: "vote", Detail: fmt.Sprintf("%d", i)})
		d.Enqueue(ports.IssueActivityInput{IssueID: "issue-b", Kind: "vote", Detail: fmt.Sprintf("%d", i)})
	}

	entries := svc.wait(t)

	seen := map[string]int{}
	for _, e := range entries {
		var seq int
		if _, err := fmt.Sscanf(e.Detail, "%d", &seq); err != nil {
			t.Fatalf("bad detail %q: %v", e.Detail, err)
		}
		if seq != seen[e.IssueID] {
			t.Fatalf("issue %s: expected entry %d next, got %d", e.IssueID, seen[e.IssueID], seq)
		}
		seen[e.IssueID]++
	}
	if seen["issue-a"] != perIssue || seen["issue-b"] != perIssue {
		t.Fatalf("unexpected counts: %v", seen)
	}
}

func TestDispatcher_SameIssueAlwaysSameShard(t *testing.T) {
	d := NewDispatcher(8, newRecordingActivityService(0), zerolog.Nop())
	first := d.shardIndex("issue-42")
	for i := 0; i < 100; i++ {
		if got := d.shardIndex("issue-42"); got != first {
			t.Fatalf("shard index not stable: %d vs %d", got, first)
		}
	}
}
