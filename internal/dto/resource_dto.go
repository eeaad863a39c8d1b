package dto

import (
	"time"

	"prepdeck/internal/domain"
)

// ResourceResponse represents a study resource in the API response.
type ResourceResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	URL         string    `json:"url"`
	Type        string    `json:"type"`
	Category    string    `json:"category"`
	Difficulty  string    `json:"difficulty"`
	CreatedAt   time.Time `json:"created_at"`
}

// ResourceListResponse wraps the resource catalog.
type ResourceListResponse struct {
	Resources []ResourceResponse `json:"resources"`
}

// NewResourceResponse maps a domain resource to its API representation.
func NewResourceResponse(r *domain.StudyResource) ResourceResponse {
	return ResourceResponse{
		ID:          r.ID,
		Title:       r.Title,
		Description: r.Description,
		URL:         r.URL,
		Type:        string(r.Type),
		Category:    r.Category,
		Difficulty:  string(r.Difficulty),
		CreatedAt:   r.CreatedAt,
	}
}
