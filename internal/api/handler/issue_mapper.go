package handler

import (
	"github.com/urbaneye/civic-issue-system/internal/core/domain"
	"github.com/urbaneye/civic-issue-system/internal/core/ports"
)

func toCreateIssueInput(req createIssueRequest) ports.CreateIssueInput {
	return ports.CreateIssueInput{
		Title:       req.Title,
		Description: req.Description,
		Category:    domain.IssueCategory(req.Category),
		Priority:    domain.IssuePriority(req.Priority),
		Location: domain.Location{
			Lat:     req.Location.Lat,
			Lng:     req.Location.Lng,
			Address: req.Location.Address,
		},
		ImageURLs: req.ImageURLs,
	}
}

func toIssuePatch(req updateIssueRequest) ports.IssuePatch {
	patch := ports.IssuePatch{
		ResolutionNotes: req.ResolutionNotes,
		AssignedTo:      req.AssignedTo,
	}
	if req.Status != nil {
		status := domain.IssueStatus(*req.Status)
		patch.Status = &status
	}
	if req.Priority != nil {
		priority := domain.IssuePriority(*req.Priority)
		patch.Priority = &priority
	}
	return patch
}

func toIssueResponse(issue domain.Issue, myVote string) issueResponse {
	images := issue.ImageURLs
	if images == nil {
		images = []string{}
	}
	return issueResponse{
		ID:          issue.ID,
		UserID:      issue.ReporterID,
		Title:       issue.Title,
		Description: issue.Description,
		Category:    string(issue.Category),
		Priority:    string(issue.Priority),
		Status:      string(issue.Status),
		Location: locationResponse{
			Lat:     issue.Location.Lat,
			Lng:     issue.Location.Lng,
			Address: issue.Location.Address,
		},
		ImageURLs:       images,
		ResolutionNotes: issue.ResolutionNotes,
		AssignedTo:      issue.AssignedTo,
		VoteCount:       issue.VoteCount,
		MyVote:          myVote,
		ReporterName:    issue.ReporterName,
		ReporterPhone:   issue.ReporterPhone,
		CreatedAt:       issue.CreatedAt,
		UpdatedAt:       issue.UpdatedAt,
	}
}

func toCommentResponse(c domain.Comment) commentResponse {
	return commentResponse{
		ID:            c.ID,
		IssueID:       c.IssueID,
		UserID:        c.UserID,
		Content:       c.Content,
		CommenterName: c.CommenterName,
		CreatedAt:     c.CreatedAt,
	}
}
