package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/rs/zerolog"

	"github.com/urbaneye/civic-issue-system/internal/core/domain"
	"github.com/urbaneye/civic-issue-system/internal/core/ports"
)

type stubIssueRepo struct {
	byID    map[string]*domain.Issue
	nextID  int
	adjusts map[string]int
}

func newStubIssueRepo() *stubIssueRepo {
	return &stubIssueRepo{byID: make(map[string]*domain.Issue), nextID: 1, adjusts: make(map[string]int)}
}

func (r *stubIssueRepo) Insert(_ context.Context, issue *domain.Issue) (*domain.Issue, error) {
	clone := *issue
	clone.ID = fmt.Sprintf("i%d", r.nextID)
	r.nextID++
	r.byID[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubIssueRepo) FindByID(_ context.Context, id string) (*domain.Issue, error) {
	if issue, ok := r.byID[id]; ok {
		clone := *issue
		return &clone, nil
	}
	return nil, domain.ErrIssueNotFound
}

func (r *stubIssueRepo) List(_ context.Context, _ ports.IssueFilter) ([]domain.Issue, error) {
	out := make([]domain.Issue, 0, len(r.byID))
	for _, issue := range r.byID {
		out = append(out, *issue)
	}
	return out, nil
}

func (r *stubIssueRepo) ListByReporter(_ context.Context, userID string) ([]domain.Issue, error) {
	var out []domain.Issue
	for _, issue := range r.byID {
		if issue.ReporterID == userID {
			out = append(out, *issue)
		}
	}
	return out, nil
}

func (r *stubIssueRepo) Update(_ context.Context, id string, patch ports.IssuePatch) (*domain.Issue, error) {
	issue, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrIssueNotFound
	}
	if patch.Status != nil {
		issue.Status = *patch.Status
	}
	if patch.Priority != nil {
		issue.Priority = *patch.Priority
	}
	if patch.ResolutionNotes != nil {
		issue.ResolutionNotes = *patch.ResolutionNotes
	}
	if patch.AssignedTo != nil {
		issue.AssignedTo = *patch.AssignedTo
	}
	clone := *issue
	return &clone, nil
}

func (r *stubIssueRepo) AdjustVoteCount(_ context.Context, id string, delta int) error {
	r.adjusts[id] += delta
	return nil
}

type stubCommentRepo struct{ comments []domain.Comment }

func (r *stubCommentRepo) Insert(_ context.Context, c *domain.Comment) (*domain.Comment, error) {
	clone := *c
	clone.ID = fmt.Sprintf("c%d", len(r.comments)+1)
	r.comments = append(r.comments, clone)
	return &clone, nil
}

func (r *stubCommentRepo) ListByIssue(_ context.Context, issueID string) ([]domain.Comment, error) {
	var out []domain.Comment
	for _, c := range r.comments {
		if c.IssueID == issueID {
			out = append(out, c)
		}
	}
	return out, nil
}

type stubVoteRepo struct{ votes []domain.Vote }

func (r *stubVoteRepo) Insert(_ context.Context, v *domain.Vote) error {
	for _, existing := range r.votes {
		if existing.IssueID == v.IssueID && existing.UserID == v.UserID {
			return domain.ErrDuplicateVote
		}
	}
	r.votes = append(r.votes, *v)
	return nil
}

func (r *stubVoteRepo) ListByUser(_ context.Context, userID string) ([]domain.Vote, error) {
	var out []domain.Vote
	for _, v := range r.votes {
		if v.UserID == userID {
			out = append(out, v)
		}
	}
	return out, nil
}

type stubDedup struct {
	seen   map[string]bool
	failed bool
}

func newStubDedup() *stubDedup { return &stubDedup{seen: make(map[string]bool)} }

func (d *stubDedup) HasVoted(_ context.Context, issueID, userID string) (bool, error) {
	if d.failed {
		return false, errors.New("redis down")
	}
	return d.seen[issueID+":"+userID], nil
}

func (d *stubDedup) MarkVoted(_ context.Context, issueID, userID string) error {
	if d.failed {
		return errors.New("redis down")
	}
	d.seen[issueID+":"+userID] = true
	return nil
}

type recordingDispatcher struct{ inputs []ports.IssueActivityInput }

func (r *recordingDispatcher) Enqueue(in ports.IssueActivityInput) {
	r.inputs = append(r.inputs, in)
}

type issueServiceFixture struct {
	svc        ports.IssueService
	issues     *stubIssueRepo
	votes      *stubVoteRepo
	comments   *stubCommentRepo
	users      *stubUserRepo
	dedup      *stubDedup
	dispatcher *recordingDispatcher
}

func newIssueServiceFixture() *issueServiceFixture {
	f := &issueServiceFixture{
		issues:     newStubIssueRepo(),
		votes:      &stubVoteRepo{},
		comments:   &stubCommentRepo{},
		users:      newStubUserRepo(),
		dedup:      newStubDedup(),
		dispatcher: &recordingDispatcher{},
	}
	f.svc = NewIssueService(f.issues, f.comments, f.votes, f.users, f.dedup, f.dispatcher, zerolog.Nop())
	return f
}

func (f *issueServiceFixture) seedReporter(t *testing.T) string {
	t.Helper()
	u, err := f.users.Insert(context.Background(), &domain.User{
		FullName:    "Asha",
		PhoneNumber: "+911234567890",
		Role:        domain.RoleCitizen,
		Status:      domain.AccountActive,
	})
	if err != nil {
		t.Fatalf("seed reporter: %v", err)
	}
	return u.ID
}

func createInput() ports.CreateIssueInput {
	return ports.CreateIssueInput{
		Title:       "Broken streetlight",
		Description: "The streetlight at the corner has been dark for a week.",
		Category:    domain.CategoryStreetlights,
		Location:    domain.Location{Lat: 19.07, Lng: 72.87, Address: "MG Road"},
	}
}

func TestIssueService_Create(t *testing.T) {
	f := newIssueServiceFixture()
	reporterID := f.seedReporter(t)

	issue, err := f.svc.Create(context.Background(), reporterID, createInput())
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if issue.Status != domain.IssueNew {
		t.Fatalf("expected new status, got %q", issue.Status)
	}
	if issue.Priority != domain.PriorityMedium {
		t.Fatalf("expected medium default priority, got %q", issue.Priority)
	}
	if issue.ReporterName != "Asha" {
		t.Fatalf("reporter info not denormalised: %+v", issue)
	}
	if len(f.dispatcher.inputs) != 1 || f.dispatcher.inputs[0].Kind != domain.ActivityCreated {
		t.Fatalf("expected one created activity, got %+v", f.dispatcher.inputs)
	}
}

func TestIssueService_Vote_Duplicate(t *testing.T) {
	f := newIssueServiceFixture()
	reporterID := f.seedReporter(t)
	issue, _ := f.svc.Create(context.Background(), reporterID, createInput())

	if err := f.svc.Vote(context.Background(), issue.ID, reporterID, domain.VoteUp); err != nil {
		t.Fatalf("first vote failed: %v", err)
	}
	if err := f.svc.Vote(context.Background(), issue.ID, reporterID, domain.VoteUp); !errors.Is(err, domain.ErrDuplicateVote) {
		t.Fatalf("expected ErrDuplicateVote, got %v", err)
	}
	if f.issues.adjusts[issue.ID] != 1 {
		t.Fatalf("expected vote count delta of 1, got %d", f.issues.adjusts[issue.ID])
	}
}

func TestIssueService_Vote_DedupOutageFallsBackToStore(t *testing.T) {
	f := newIssueServiceFixture()
	reporterID := f.seedReporter(t)
	issue, _ := f.svc.Create(context.Background(), reporterID, createInput())

	if err := f.svc.Vote(context.Background(), issue.ID, reporterID, domain.VoteUp); err != nil {
		t.Fatalf("first vote failed: %v", err)
	}

	// Redis outage: the unique index in the vote store still catches repeats.
	f.dedup.failed = true
	if err := f.svc.Vote(context.Background(), issue.ID, reporterID, domain.VoteDown); !errors.Is(err, domain.ErrDuplicateVote) {
		t.Fatalf("expected ErrDuplicateVote from store, got %v", err)
	}
}

func TestIssueService_Vote_UnknownIssue(t *testing.T) {
	f := newIssueServiceFixture()
	if err := f.svc.Vote(context.Background(), "missing", "u1", domain.VoteUp); !errors.Is(err, domain.ErrIssueNotFound) {
		t.Fatalf("expected ErrIssueNotFound, got %v", err)
	}
}

func TestIssueService_Update_StatusChangeRecordsActivity(t *testing.T) {
	f := newIssueServiceFixture()
	reporterID := f.seedReporter(t)
	issue, _ := f.svc.Create(context.Background(), reporterID, createInput())
	f.dispatcher.inputs = nil

	status := domain.IssueInProgress
	updated, err := f.svc.Update(context.Background(), issue.ID, "e1", ports.IssuePatch{Status: &status})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if updated.Status != domain.IssueInProgress {
		t.Fatalf("status not applied: %q", updated.Status)
	}
	if len(f.dispatcher.inputs) != 1 || f.dispatcher.inputs[0].Kind != domain.ActivityStatusChange {
		t.Fatalf("expected one status_change activity, got %+v", f.dispatcher.inputs)
	}
	if f.dispatcher.inputs[0].Detail != "new -> in_progress" {
		t.Fatalf("unexpected activity detail: %q", f.dispatcher.inputs[0].Detail)
	}
}

func TestIssueService_Update_UnknownStatus(t *testing.T) {
	f := newIssueServiceFixture()
	status := domain.IssueStatus("vanished")
	if _, err := f.svc.Update(context.Background(), "i1", "e1", ports.IssuePatch{Status: &status}); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestIssueService_List_AnnotatesViewerVotes(t *testing.T) {
	f := newIssueServiceFixture()
	reporterID := f.seedReporter(t)
	issue, _ := f.svc.Create(context.Background(), reporterID, createInput())
	if err := f.svc.Vote(context.Background(), issue.ID, reporterID, domain.VoteUp); err != nil {
		t.Fatalf("vote failed: %v", err)
	}

	views, err := f.svc.List(context.Background(), ports.IssueFilter{}, reporterID)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(views) != 1 || views[0].ViewerVote != domain.VoteUp {
		t.Fatalf("expected viewer vote annotation, got %+v", views)
	}

	anonymous, err := f.svc.List(context.Background(), ports.IssueFilter{}, "")
	if err != nil {
		t.Fatalf("anonymous List returned error: %v", err)
	}
	if anonymous[0].ViewerVote != "" {
		t.Fatalf("anonymous viewer should get no vote annotation")
	}
}

func TestIssueService_AddComment(t *testing.T) {
	f := newIssueServiceFixture()
	reporterID := f.seedReporter(t)
	issue, _ := f.svc.Create(context.Background(), reporterID, createInput())

	comment, err := f.svc.AddComment(context.Background(), issue.ID, reporterID, "Any update on this?")
	if err != nil {
		t.Fatalf("AddComment returned error: %v", err)
	}
	if comment.CommenterName != "Asha" {
		t.Fatalf("commenter name not filled: %+v", comment)
	}

	comments, err := f.svc.ListComments(context.Background(), issue.ID)
	if err != nil || len(comments) != 1 {
		t.Fatalf("expected one comment, got %v (%v)", comments, err)
	}
}
