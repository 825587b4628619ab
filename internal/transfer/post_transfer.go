package transfer

import "time"

// PostDraft is the payload accepted by the create-post endpoint. Unknown
// fields are rejected at the handler boundary; optional fields are validated
// only when present.
type PostDraft struct {
	Title               string   `json:"title"`
	Content             string   `json:"content"`
	Platform            string   `json:"platform"`
	PostType            string   `json:"post_type"`
	Status              string   `json:"status"`
	BusinessName        string   `json:"business_name"`
	BusinessDescription string   `json:"business_description"`
	Tone                string   `json:"tone"`
	Length              string   `json:"length"`
	Hashtags            []string `json:"hashtags"`
	ImageURL            string   `json:"image_url"`
	ScheduledAt         string   `json:"scheduled_at"`
	GenerateImage       bool     `json:"generate_image"`
	GenerateText        bool     `json:"generate_text"`
}

// PostUpdate is the payload accepted by the update-post endpoint. Generation
// is never re-run on update.
type PostUpdate struct {
	Title       string `json:"title"`
	Content     string `json:"content"`
	Platform    string `json:"platform"`
	Status      string `json:"status"`
	ScheduledAt string `json:"scheduled_at"`
}

// PostListItem is the list-view projection of a post, with display labels
// and zeroed engagement when none was recorded.
type PostListItem struct {
	ID                int64          `json:"id"`
	Title             string         `json:"title"`
	Content           string         `json:"content"`
	Platform          string         `json:"platform"`
	Status            string         `json:"status"`
	PublishedAt       *time.Time     `json:"published_at"`
	ImageURL          string         `json:"image_url,omitempty"`
	Engagement        EngagementView `json:"engagement"`
	FormattedStatus   string         `json:"formatted_status"`
	FormattedPlatform string         `json:"formatted_platform"`
}

type EngagementView struct {
	Likes    int `json:"likes"`
	Comments int `json:"comments"`
	Shares   int `json:"shares"`
}
