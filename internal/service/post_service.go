package service

import (
	"context"
	"errors"
	"log/slog"
	"math/rand"
	"net/url"
	"regexp"
	"time"

	"github.com/postforge/postforge/internal/models"
	"github.com/postforge/postforge/internal/repository"
	"github.com/postforge/postforge/internal/transfer"
)

var hashtagPattern = regexp.MustCompile(`#\w+`)

var defaultHashtags = []string{"#marketing", "#socialmedia", "#digital"}

var defaultSuggestions = []string{
	"Adicione uma imagem relacionada ao tema",
	"Mencione uma estatística relevante",
	"Faça uma pergunta para engajar o público",
}

const defaultBestTime = "19:30"

type PostService interface {
	Create(ctx context.Context, userID int64, draft *transfer.PostDraft) (*models.Post, error)
	List(ctx context.Context, userID int64) ([]*transfer.PostListItem, error)
	PostInfo(ctx context.Context, postID, userID int64) (*models.Post, error)
	Update(ctx context.Context, postID, userID int64, update *transfer.PostUpdate) (*models.Post, error)
	Duplicate(ctx context.Context, postID, userID int64) (*models.Post, error)
	Remove(ctx context.Context, postID, userID int64) error
}

type postService struct {
	pr repository.PostRepository
	ai AIService
}

func NewPostService(pr repository.PostRepository, ai AIService) PostService {
	return &postService{
		pr: pr,
		ai: ai,
	}
}

// Create runs the post creation pipeline: validate the draft, snapshot the
// submitted content, resolve the image and text (calling the AI gateway when
// the corresponding flag is set), assign synthetic engagement numbers and
// persist. Every generation step degrades independently: a failed gateway
// call leaves the field at its previous value and the post is still saved.
func (s *postService) Create(ctx context.Context, userID int64, draft *transfer.PostDraft) (*models.Post, error) {
	if draft == nil {
		err := errors.New("post draft is nil")
		slog.Error(err.Error())
		return nil, err
	}

	scheduledAt, err := s.validateDraft(draft)
	if err != nil {
		return nil, err
	}

	status := draft.Status
	if status == "" {
		status = models.PostStatusDraft
	}

	hashtags := draft.Hashtags
	if len(hashtags) == 0 {
		hashtags = defaultHashtags
	}

	snapshot := &models.AIGeneratedContent{
		Caption:     draft.Content,
		Hashtags:    hashtags,
		BestTime:    defaultBestTime,
		Suggestions: defaultSuggestions,
	}

	content := draft.Content
	imageURL := draft.ImageURL

	if draft.GenerateImage {
		prompt := BuildImagePrompt(draft.PostType, draft.BusinessDescription, draft.Tone)
		if generated, ok := s.ai.GenerateImage(ctx, prompt); ok {
			imageURL = generated
			slog.Info("using AI generated image", "image_url", generated)
		}
	}

	if draft.GenerateText {
		prompt := BuildTextPrompt(draft.PostType, draft.BusinessDescription, draft.Tone, draft.Length, draft.Platform)
		if generated, ok := s.ai.GenerateText(ctx, prompt); ok {
			content = generated
			snapshot.Caption = generated

			if matches := hashtagPattern.FindAllString(generated, -1); len(matches) > 0 {
				hashtags = matches
				snapshot.Hashtags = matches
			}
		}
	}

	post := &models.Post{
		UserID:              userID,
		Title:               draft.Title,
		Content:             content,
		Platform:            draft.Platform,
		Status:              status,
		PostType:            draft.PostType,
		BusinessName:        draft.BusinessName,
		BusinessDescription: draft.BusinessDescription,
		Tone:                draft.Tone,
		Length:              draft.Length,
		Hashtags:            hashtags,
		ImageURL:            imageURL,
		ScheduledAt:         scheduledAt,
		AIGeneratedContent:  snapshot,
		EngagementMetrics: &models.EngagementMetrics{
			Likes:    randBetween(50, 500),
			Comments: randBetween(5, 50),
			Shares:   randBetween(2, 25),
		},
	}

	if _, err := s.pr.Create(ctx, nil, post); err != nil {
		return nil, err
	}

	return post, nil
}

func (s *postService) List(ctx context.Context, userID int64) ([]*transfer.PostListItem, error) {
	posts, err := s.pr.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	items := make([]*transfer.PostListItem, 0, len(posts))
	for _, post := range posts {
		engagement := transfer.EngagementView{}
		if post.EngagementMetrics != nil {
			engagement.Likes = post.EngagementMetrics.Likes
			engagement.Comments = post.EngagementMetrics.Comments
			engagement.Shares = post.EngagementMetrics.Shares
		}

		items = append(items, &transfer.PostListItem{
			ID:                post.ID,
			Title:             post.Title,
			Content:           post.Content,
			Platform:          post.Platform,
			Status:            post.Status,
			PublishedAt:       post.PublishedAt,
			ImageURL:          post.ImageURL,
			Engagement:        engagement,
			FormattedStatus:   post.FormattedStatus(),
			FormattedPlatform: post.FormattedPlatform(),
		})
	}

	return items, nil
}

func (s *postService) PostInfo(ctx context.Context, postID, userID int64) (*models.Post, error) {
	return s.ownedPost(ctx, postID, userID)
}

// Update rewrites the editable subset of a post. Generation is never re-run
// and engagement metrics are left untouched.
func (s *postService) Update(ctx context.Context, postID, userID int64, update *transfer.PostUpdate) (*models.Post, error) {
	if update == nil {
		err := errors.New("post update is nil")
		slog.Error(err.Error())
		return nil, err
	}

	scheduledAt, err := s.validateUpdate(update)
	if err != nil {
		return nil, err
	}

	post, err := s.ownedPost(ctx, postID, userID)
	if err != nil {
		return nil, err
	}

	post.Title = update.Title
	post.Content = update.Content
	post.Platform = update.Platform
	post.Status = update.Status
	post.ScheduledAt = scheduledAt

	if err := s.pr.Update(ctx, post); err != nil {
		return nil, err
	}

	return post, nil
}

// Duplicate copies a post as a fresh draft: the copy suffix is appended to
// the title and status, published_at, scheduled_at and engagement_metrics
// are reset.
func (s *postService) Duplicate(ctx context.Context, postID, userID int64) (*models.Post, error) {
	source, err := s.ownedPost(ctx, postID, userID)
	if err != nil {
		return nil, err
	}

	clone := *source
	clone.ID = 0
	clone.Title = source.Title + " (Cópia)"
	clone.Status = models.PostStatusDraft
	clone.PublishedAt = nil
	clone.ScheduledAt = nil
	clone.EngagementMetrics = nil

	if _, err := s.pr.Create(ctx, nil, &clone); err != nil {
		return nil, err
	}

	return &clone, nil
}

func (s *postService) Remove(ctx context.Context, postID, userID int64) error {
	if _, err := s.ownedPost(ctx, postID, userID); err != nil {
		return err
	}
	return s.pr.Remove(ctx, postID)
}

// ownedPost loads a post and enforces that it belongs to the requesting
// user. Posts of other users are indistinguishable from missing ones.
func (s *postService) ownedPost(ctx context.Context, postID, userID int64) (*models.Post, error) {
	if postID == 0 || userID == 0 {
		return nil, ErrPostNotFound
	}

	post, err := s.pr.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post == nil || post.UserID != userID {
		return nil, ErrPostNotFound
	}

	return post, nil
}

func (s *postService) validateDraft(draft *transfer.PostDraft) (*time.Time, error) {
	verr := &ValidationError{}

	if draft.Title == "" {
		verr.add("title", "title is required")
	} else if len(draft.Title) > 255 {
		verr.add("title", "title may not be longer than 255 characters")
	}
	if draft.Content == "" {
		verr.add("content", "content is required")
	}
	if draft.Platform == "" {
		verr.add("platform", "platform is required")
	} else if !models.ValidPlatform(draft.Platform) {
		verr.add("platform", "platform must be instagram, twitter or facebook")
	}
	if draft.PostType == "" {
		verr.add("post_type", "post_type is required")
	} else if !models.ValidPostType(draft.PostType) {
		verr.add("post_type", "post_type must be promotional, educational, entertainment or news")
	}
	if draft.Status != "" && !models.ValidStatus(draft.Status) {
		verr.add("status", "status must be draft, scheduled or published")
	}
	if draft.Tone != "" && !models.ValidTone(draft.Tone) {
		verr.add("tone", "tone must be professional, casual, friendly or humorous")
	}
	if draft.Length != "" && !models.ValidLength(draft.Length) {
		verr.add("length", "length must be short, medium or long")
	}
	if len(draft.BusinessName) > 255 {
		verr.add("business_name", "business_name may not be longer than 255 characters")
	}
	if draft.ImageURL != "" && !validURL(draft.ImageURL) {
		verr.add("image_url", "image_url must be a valid URL")
	}

	scheduledAt, ok := parseTimestamp(draft.ScheduledAt)
	if !ok {
		verr.add("scheduled_at", "scheduled_at must be a valid timestamp")
	}

	if err := verr.orNil(); err != nil {
		return nil, err
	}
	return scheduledAt, nil
}

func (s *postService) validateUpdate(update *transfer.PostUpdate) (*time.Time, error) {
	verr := &ValidationError{}

	if update.Title == "" {
		verr.add("title", "title is required")
	} else if len(update.Title) > 255 {
		verr.add("title", "title may not be longer than 255 characters")
	}
	if update.Content == "" {
		verr.add("content", "content is required")
	}
	if update.Platform == "" {
		verr.add("platform", "platform is required")
	} else if !models.ValidPlatform(update.Platform) {
		verr.add("platform", "platform must be instagram, twitter or facebook")
	}
	if update.Status == "" {
		verr.add("status", "status is required")
	} else if !models.ValidStatus(update.Status) {
		verr.add("status", "status must be draft, scheduled or published")
	}

	scheduledAt, ok := parseTimestamp(update.ScheduledAt)
	if !ok {
		verr.add("scheduled_at", "scheduled_at must be a valid timestamp")
	}

	if err := verr.orNil(); err != nil {
		return nil, err
	}
	return scheduledAt, nil
}

func parseTimestamp(value string) (*time.Time, bool) {
	if value == "" {
		return nil, true
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04", "2006-01-02 15:04:05"} {
		if t, err := time.Parse(layout, value); err == nil {
			return &t, true
		}
	}
	return nil, false
}

func validURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// randBetween draws uniformly from [min, max], both bounds inclusive.
func randBetween(min, max int) int {
	return min + rand.Intn(max-min+1)
}
