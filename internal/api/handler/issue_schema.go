package handler

import "time"

type locationRequest struct {
	Lat     float64 `json:"lat" validate:"gte=-90,lte=90"`
	Lng     float64 `json:"lng" validate:"gte=-180,lte=180"`
	Address string  `json:"address,omitempty" validate:"omitempty,max=500"`
}

type createIssueRequest struct {
	Title       string          `json:"title" validate:"required,min=5,max=200"`
	Description string          `json:"description" validate:"required,min=10,max=2000"`
	Category    string          `json:"category" validate:"required,oneof=roads streetlights water_supply waste_management public_transport parks drainage electricity other"`
	Priority    string          `json:"priority" validate:"omitempty,oneof=low medium high critical"`
	Location    locationRequest `json:"location" validate:"required"`
	ImageURLs   []string        `json:"image_urls,omitempty" validate:"omitempty,dive,url"`
}

type updateIssueRequest struct {
	Status          *string `json:"status,omitempty" validate:"omitempty,oneof=new acknowledged in_progress resolved rejected"`
	Priority        *string `json:"priority,omitempty" validate:"omitempty,oneof=low medium high critical"`
	ResolutionNotes *string `json:"resolution_notes,omitempty" validate:"omitempty,max=2000"`
	AssignedTo      *string `json:"assigned_to,omitempty" validate:"omitempty,max=100"`
}

type voteRequest struct {
	VoteType string `json:"vote_type" validate:"required,oneof=upvote downvote"`
}

type commentRequest struct {
	Content string `json:"content" validate:"required,min=1,max=1000"`
}

type locationResponse struct {
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
	Address string  `json:"address,omitempty"`
}

type issueResponse struct {
	ID              string           `json:"id"`
	UserID          string           `json:"user_id"`
	Title           string           `json:"title"`
	Description     string           `json:"description"`
	Category        string           `json:"category"`
	Priority        string           `json:"priority"`
	Status          string           `json:"status"`
	Location        locationResponse `json:"location"`
	ImageURLs       []string         `json:"image_urls"`
	ResolutionNotes string           `json:"resolution_notes,omitempty"`
	AssignedTo      string           `json:"assigned_to,omitempty"`
	VoteCount       int              `json:"vote_count"`
	MyVote          string           `json:"my_vote,omitempty"`
	ReporterName    string           `json:"reporter_name,omitempty"`
	ReporterPhone   string           `json:"reporter_phone,omitempty"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
}

type commentResponse struct {
	ID            string    `json:"id"`
	IssueID       string    `json:"issue_id"`
	UserID        string    `json:"user_id"`
	Content       string    `json:"content"`
	CommenterName string    `json:"commenter_name,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

type acceptedResponse struct {
	Message string `json:"message"`
}
