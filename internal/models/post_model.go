package models

import "time"

type Post struct {
	ID                  int64               `db:"id" json:"id"`
	UserID              int64               `db:"user_id" json:"user_id"`
	Title               string              `db:"title" json:"title"`
	Content             string              `db:"content" json:"content"`
	Platform            string              `db:"platform" json:"platform"`
	Status              string              `db:"status" json:"status"` // draft, scheduled, published
	PostType            string              `db:"post_type" json:"post_type"`
	BusinessName        string              `db:"business_name" json:"business_name,omitempty"`
	BusinessDescription string              `db:"business_description" json:"business_description,omitempty"`
	Tone                string              `db:"tone" json:"tone,omitempty"`
	Length              string              `db:"length" json:"length,omitempty"`
	Hashtags            []string            `db:"hashtags" json:"hashtags"`
	ImageURL            string              `db:"image_url" json:"image_url,omitempty"`
	ScheduledAt         *time.Time          `db:"scheduled_at" json:"scheduled_at"`
	PublishedAt         *time.Time          `db:"published_at" json:"published_at"`
	EngagementMetrics   *EngagementMetrics  `db:"engagement_metrics" json:"engagement_metrics"`
	AIGeneratedContent  *AIGeneratedContent `db:"ai_generated_content" json:"ai_generated_content"`
	CreatedAt           time.Time           `db:"created_at" json:"created_at"`
	UpdatedAt           time.Time           `db:"updated_at" json:"updated_at"`
}

// EngagementMetrics holds the synthetic like/comment/share counts assigned
// once when a post is created. They are never recomputed afterwards.
type EngagementMetrics struct {
	Likes    int `json:"likes"`
	Comments int `json:"comments"`
	Shares   int `json:"shares"`
}

// AIGeneratedContent is a snapshot of what the last generation pass
// produced, independent of the authoritative content field.
type AIGeneratedContent struct {
	Caption     string   `json:"caption"`
	Hashtags    []string `json:"hashtags"`
	BestTime    string   `json:"best_time"`
	Suggestions []string `json:"suggestions"`
}

type MediaAsset struct {
	ID        int64     `db:"id" json:"id"`
	UserID    int64     `db:"user_id" json:"user_id"`
	FileName  string    `db:"file_name" json:"file_name"`
	FileType  string    `db:"file_type" json:"file_type"`
	FileSize  int64     `db:"file_size" json:"file_size"`
	FileURL   string    `db:"file_url" json:"file_url"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

const (
	PostStatusDraft     = "draft"
	PostStatusScheduled = "scheduled"
	PostStatusPublished = "published"

	PlatformInstagram = "instagram"
	PlatformTwitter   = "twitter"
	PlatformFacebook  = "facebook"

	PostTypePromotional   = "promotional"
	PostTypeEducational   = "educational"
	PostTypeEntertainment = "entertainment"
	PostTypeNews          = "news"

	ToneProfessional = "professional"
	ToneCasual       = "casual"
	ToneFriendly     = "friendly"
	ToneHumorous     = "humorous"

	LengthShort  = "short"
	LengthMedium = "medium"
	LengthLong   = "long"
)

func ValidPlatform(s string) bool {
	switch s {
	case PlatformInstagram, PlatformTwitter, PlatformFacebook:
		return true
	}
	return false
}

func ValidStatus(s string) bool {
	switch s {
	case PostStatusDraft, PostStatusScheduled, PostStatusPublished:
		return true
	}
	return false
}

func ValidPostType(s string) bool {
	switch s {
	case PostTypePromotional, PostTypeEducational, PostTypeEntertainment, PostTypeNews:
		return true
	}
	return false
}

func ValidTone(s string) bool {
	switch s {
	case ToneProfessional, ToneCasual, ToneFriendly, ToneHumorous:
		return true
	}
	return false
}

func ValidLength(s string) bool {
	switch s {
	case LengthShort, LengthMedium, LengthLong:
		return true
	}
	return false
}

// FormattedStatus returns the user-facing label for the post status.
func (p *Post) FormattedStatus() string {
	switch p.Status {
	case PostStatusPublished:
		return "Publicado"
	case PostStatusScheduled:
		return "Agendado"
	case PostStatusDraft:
		return "Rascunho"
	default:
		return p.Status
	}
}

// FormattedPlatform returns the user-facing label for the target platform.
func (p *Post) FormattedPlatform() string {
	switch p.Platform {
	case PlatformInstagram:
		return "Instagram"
	case PlatformTwitter:
		return "Twitter"
	case PlatformFacebook:
		return "Facebook"
	default:
		return p.Platform
	}
}
