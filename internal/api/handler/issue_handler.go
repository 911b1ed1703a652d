package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/urbaneye/civic-issue-system/internal/api/metrics"
	"github.com/urbaneye/civic-issue-system/internal/api/middleware"
	"github.com/urbaneye/civic-issue-system/internal/core/ports"
)

type IssueHandler struct {
	issueService ports.IssueService
}

func NewIssueHandler(issueService ports.IssueService) *IssueHandler {
	return &IssueHandler{issueService: issueService}
}

// Create reports a new issue on behalf of the authenticated citizen.
//
// @Summary      Report a new issue
// @Tags         issues
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createIssueRequest  true  "Issue details"
// @Success      201   {object}  issueResponse
// @Failure      401   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /issues [post]
func (h *IssueHandler) Create(c echo.Context) error {
	p, err := requirePrincipal(c)
	if err != nil {
		return err
	}

	var req createIssueRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	issue, err := h.issueService.Create(c.Request().Context(), p.UserID, toCreateIssueInput(req))
	if err != nil {
		return err
	}

	metrics.IssuesCreatedTotal.WithLabelValues(string(issue.Category)).Inc()
	return c.JSON(http.StatusCreated, toIssueResponse(*issue, ""))
}

// List returns issues matching the optional category/status/priority filters.
// The endpoint is public; authenticated callers additionally see their own
// vote on each issue.
//
// @Summary      List issues
// @Tags         issues
// @Produce      json
// @Param        category  query  string  false  "Filter by category"
// @Param        status    query  string  false  "Filter by status"
// @Param        priority  query  string  false  "Filter by priority"
// @Success      200  {array}  issueResponse
// @Router       /issues [get]
func (h *IssueHandler) List(c echo.Context) error {
	filter := ports.IssueFilter{
		Category: c.QueryParam("category"),
		Status:   c.QueryParam("status"),
		Priority: c.QueryParam("priority"),
	}

	viewerID := ""
	if p, ok := middleware.GetPrincipal(c); ok {
		viewerID = p.UserID
	}

	views, err := h.issueService.List(c.Request().Context(), filter, viewerID)
	if err != nil {
		return err
	}

	out := make([]issueResponse, 0, len(views))
	for _, v := range views {
		out = append(out, toIssueResponse(v.Issue, v.ViewerVote))
	}
	return c.JSON(http.StatusOK, out)
}

// Mine returns the authenticated caller's own issues.
//
// @Summary      List my issues
// @Tags         issues
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  issueResponse
// @Failure      401  {object}  map[string]string
// @Router       /issues/my [get]
func (h *IssueHandler) Mine(c echo.Context) error {
	p, err := requirePrincipal(c)
	if err != nil {
		return err
	}

	issues, err := h.issueService.ListMine(c.Request().Context(), p.UserID)
	if err != nil {
		return err
	}

	out := make([]issueResponse, 0, len(issues))
	for _, issue := range issues {
		out = append(out, toIssueResponse(issue, ""))
	}
	return c.JSON(http.StatusOK, out)
}

// Get returns a single issue by id.
//
// @Summary      Get an issue
// @Tags         issues
// @Produce      json
// @Param        id  path  string  true  "Issue id"
// @Success      200  {object}  issueResponse
// @Failure      404  {object}  map[string]string
// @Router       /issues/{id} [get]
func (h *IssueHandler) Get(c echo.Context) error {
	issue, err := h.issueService.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toIssueResponse(*issue, ""))
}

// Update applies a triage patch. Routing restricts this to employees.
//
// @Summary      Update an issue (triage)
// @Tags         issues
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string              true  "Issue id"
// @Param        body  body  updateIssueRequest  true  "Fields to update"
// @Success      200  {object}  issueResponse
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /issues/{id} [put]
func (h *IssueHandler) Update(c echo.Context) error {
	p, err := requirePrincipal(c)
	if err != nil {
		return err
	}

	var req updateIssueRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	issue, err := h.issueService.Update(c.Request().Context(), c.Param("id"), p.UserID, toIssuePatch(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toIssueResponse(*issue, ""))
}

// Vote casts the caller's single vote on an issue.
//
// @Summary      Vote on an issue
// @Tags         issues
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string       true  "Issue id"
// @Param        body  body  voteRequest  true  "Vote direction"
// @Success      200  {object}  acceptedResponse
// @Failure      404  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Router       /issues/{id}/vote [post]
func (h *IssueHandler) Vote(c echo.Context) error {
	p, err := requirePrincipal(c)
	if err != nil {
		return err
	}

	var req voteRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	if err := h.issueService.Vote(c.Request().Context(), c.Param("id"), p.UserID, req.VoteType); err != nil {
		return err
	}

	metrics.VotesCastTotal.WithLabelValues(req.VoteType).Inc()
	return c.JSON(http.StatusOK, acceptedResponse{Message: "vote recorded"})
}

// AddComment attaches a comment to an issue.
//
// @Summary      Comment on an issue
// @Tags         issues
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string          true  "Issue id"
// @Param        body  body  commentRequest  true  "Comment"
// @Success      201  {object}  commentResponse
// @Failure      404  {object}  map[string]string
// @Router       /issues/{id}/comments [post]
func (h *IssueHandler) AddComment(c echo.Context) error {
	p, err := requirePrincipal(c)
	if err != nil {
		return err
	}

	var req commentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	comment, err := h.issueService.AddComment(c.Request().Context(), c.Param("id"), p.UserID, req.Content)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toCommentResponse(*comment))
}

// ListComments returns an issue's comments, oldest first.
//
// @Summary      List comments on an issue
// @Tags         issues
// @Produce      json
// @Param        id  path  string  true  "Issue id"
// @Success      200  {array}  commentResponse
// @Router       /issues/{id}/comments [get]
func (h *IssueHandler) ListComments(c echo.Context) error {
	comments, err := h.issueService.ListComments(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}

	out := make([]commentResponse, 0, len(comments))
	for _, comment := range comments {
		out = append(out, toCommentResponse(comment))
	}
	return c.JSON(http.StatusOK, out)
}
