package domain

import "time"

// ResourceType classifies a study resource.
type ResourceType string

const (
	ResourceDocumentation ResourceType = "documentation"
	ResourceTutorial      ResourceType = "tutorial"
	ResourceVideo         ResourceType = "video"
	ResourceArticle       ResourceType = "article"
	ResourceCourse        ResourceType = "course"
)

// StudyResource is a read-only catalog entry.
type StudyResource struct {
	ID          string
	Title       string
	Description string
	Category    string
	Type        ResourceType
	URL         string
	Difficulty  Difficulty
	Tags        []string
	IsActive    bool
	CreatedAt   time.Time
}

// ResourceFilter narrows a resource listing. Empty or "all" fields match
// everything.
type ResourceFilter struct {
	Category   string
	Type       string
	Difficulty string
}
