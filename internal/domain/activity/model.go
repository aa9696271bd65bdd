package activity

import "time"

// ActivityType represents the type of analytics event
type ActivityType string

const (
	TypeTestimonialsLoaded ActivityType = "testimonials_loaded"
	TypeSlideChanged       ActivityType = "testimonial_slide_changed"
	TypeProjectsLoaded     ActivityType = "projects_loaded"
	TypeProjectViewed      ActivityType = "project_viewed"
	TypeQueryChanged       ActivityType = "gallery_query_changed"
	TypeEnrichmentApplied  ActivityType = "enrichment_applied"
	TypeEnrichmentFailed   ActivityType = "enrichment_failed"
)

// ActivityEntry represents an event in the activity log
type ActivityEntry struct {
	ID           int64        `json:"id"`
	ActivityType ActivityType `json:"type"`
	Subject      *string      `json:"subject,omitempty"` // slide or item the event is about
	Summary      string       `json:"summary"`
	Details      string       `json:"details,omitempty"` // JSON string
	CreatedAt    time.Time    `json:"created_at"`
}
