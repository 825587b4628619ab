package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"
	"time"

	"github.com/postforge/postforge/internal/models"
	"github.com/postforge/postforge/internal/transfer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePostRepo struct {
	posts  map[int64]*models.Post
	nextID int64
}

func newFakePostRepo() *fakePostRepo {
	return &fakePostRepo{posts: make(map[int64]*models.Post), nextID: 1}
}

func (r *fakePostRepo) Create(ctx context.Context, tx *sql.Tx, post *models.Post) (int64, error) {
	post.ID = r.nextID
	post.CreatedAt = time.Now()
	post.UpdatedAt = post.CreatedAt
	r.nextID++

	stored := *post
	r.posts[post.ID] = &stored
	return post.ID, nil
}

func (r *fakePostRepo) GetByID(ctx context.Context, id int64) (*models.Post, error) {
	post, ok := r.posts[id]
	if !ok {
		return nil, nil
	}
	found := *post
	return &found, nil
}

func (r *fakePostRepo) GetByUserID(ctx context.Context, userID int64) ([]*models.Post, error) {
	var posts []*models.Post
	// newest-created first
	for id := r.nextID - 1; id >= 1; id-- {
		if post, ok := r.posts[id]; ok && post.UserID == userID {
			found := *post
			posts = append(posts, &found)
		}
	}
	return posts, nil
}

func (r *fakePostRepo) Update(ctx context.Context, post *models.Post) error {
	stored, ok := r.posts[post.ID]
	if !ok {
		return sql.ErrNoRows
	}
	stored.Title = post.Title
	stored.Content = post.Content
	stored.Platform = post.Platform
	stored.Status = post.Status
	stored.ScheduledAt = post.ScheduledAt
	stored.UpdatedAt = time.Now()
	return nil
}

func (r *fakePostRepo) CheckByUserID(ctx context.Context, postID, userID int64) (bool, error) {
	post, ok := r.posts[postID]
	return ok && post.UserID == userID, nil
}

func (r *fakePostRepo) Remove(ctx context.Context, id int64) error {
	delete(r.posts, id)
	return nil
}

type fakeAI struct {
	text       string
	textOK     bool
	image      string
	imageOK    bool
	textCalls  int
	imageCalls int
}

func (f *fakeAI) GenerateText(ctx context.Context, prompt string) (string, bool) {
	f.textCalls++
	return f.text, f.textOK
}

func (f *fakeAI) GenerateImage(ctx context.Context, prompt string) (string, bool) {
	f.imageCalls++
	return f.image, f.imageOK
}

func (f *fakeAI) ListTextModels(ctx context.Context) []json.RawMessage  { return nil }
func (f *fakeAI) ListImageModels(ctx context.Context) []json.RawMessage { return nil }

func validDraft() *transfer.PostDraft {
	return &transfer.PostDraft{
		Title:    "T",
		Content:  "C",
		Platform: models.PlatformTwitter,
		PostType: models.PostTypeNews,
	}
}

func TestCreate_WithoutGenerationFlags(t *testing.T) {
	repo := newFakePostRepo()
	ai := &fakeAI{}
	svc := NewPostService(repo, ai)

	post, err := svc.Create(context.Background(), 7, validDraft())
	require.NoError(t, err)

	assert.Equal(t, "C", post.Content)
	assert.Equal(t, []string{"#marketing", "#socialmedia", "#digital"}, post.Hashtags)
	assert.Equal(t, models.PostStatusDraft, post.Status)
	assert.Equal(t, int64(7), post.UserID)
	assert.Zero(t, ai.textCalls, "no text generation should be attempted")
	assert.Zero(t, ai.imageCalls, "no image generation should be attempted")

	require.NotNil(t, post.EngagementMetrics)
	assert.GreaterOrEqual(t, post.EngagementMetrics.Likes, 50)
	assert.LessOrEqual(t, post.EngagementMetrics.Likes, 500)
}

func TestCreate_SubmittedHashtagsKept(t *testing.T) {
	svc := NewPostService(newFakePostRepo(), &fakeAI{})

	draft := validDraft()
	draft.Hashtags = []string{"#custom"}

	post, err := svc.Create(context.Background(), 1, draft)
	require.NoError(t, err)
	assert.Equal(t, []string{"#custom"}, post.Hashtags)
	assert.Equal(t, []string{"#custom"}, post.AIGeneratedContent.Hashtags)
}

func TestCreate_SnapshotInitialized(t *testing.T) {
	svc := NewPostService(newFakePostRepo(), &fakeAI{})

	post, err := svc.Create(context.Background(), 1, validDraft())
	require.NoError(t, err)

	snapshot := post.AIGeneratedContent
	require.NotNil(t, snapshot)
	assert.Equal(t, "C", snapshot.Caption)
	assert.Equal(t, "19:30", snapshot.BestTime)
	assert.Len(t, snapshot.Suggestions, 3)
}

func TestCreate_GeneratedTextOverwritesContentAndHashtags(t *testing.T) {
	ai := &fakeAI{text: "Novo post! #go #go #dev", textOK: true}
	svc := NewPostService(newFakePostRepo(), ai)

	draft := validDraft()
	draft.GenerateText = true

	post, err := svc.Create(context.Background(), 1, draft)
	require.NoError(t, err)

	assert.Equal(t, "Novo post! #go #go #dev", post.Content)
	// ordered by first occurrence, duplicates retained
	assert.Equal(t, []string{"#go", "#go", "#dev"}, post.Hashtags)
	assert.Equal(t, "Novo post! #go #go #dev", post.AIGeneratedContent.Caption)
	assert.Equal(t, []string{"#go", "#go", "#dev"}, post.AIGeneratedContent.Hashtags)
	assert.Equal(t, 1, ai.textCalls)
}

func TestCreate_GeneratedTextWithoutHashtagsKeepsPrior(t *testing.T) {
	ai := &fakeAI{text: "no tags here", textOK: true}
	svc := NewPostService(newFakePostRepo(), ai)

	draft := validDraft()
	draft.GenerateText = true

	post, err := svc.Create(context.Background(), 1, draft)
	require.NoError(t, err)

	assert.Equal(t, "no tags here", post.Content)
	assert.Equal(t, []string{"#marketing", "#socialmedia", "#digital"}, post.Hashtags)

	draft = validDraft()
	draft.GenerateText = true
	draft.Hashtags = []string{"#mine"}

	post, err = svc.Create(context.Background(), 1, draft)
	require.NoError(t, err)
	assert.Equal(t, []string{"#mine"}, post.Hashtags)
}

func TestCreate_GeneratedImageOverridesExplicitURL(t *testing.T) {
	ai := &fakeAI{image: "https://img.example/generated", imageOK: true}
	svc := NewPostService(newFakePostRepo(), ai)

	draft := validDraft()
	draft.ImageURL = "https://example.com/explicit.png"
	draft.GenerateImage = true

	post, err := svc.Create(context.Background(), 1, draft)
	require.NoError(t, err)
	assert.Equal(t, "https://img.example/generated", post.ImageURL)
}

func TestCreate_FailedGenerationDegradesSilently(t *testing.T) {
	ai := &fakeAI{textOK: false, imageOK: false}
	svc := NewPostService(newFakePostRepo(), ai)

	draft := validDraft()
	draft.ImageURL = "https://example.com/explicit.png"
	draft.GenerateImage = true
	draft.GenerateText = true

	post, err := svc.Create(context.Background(), 1, draft)
	require.NoError(t, err)

	assert.Equal(t, "C", post.Content)
	assert.Equal(t, "https://example.com/explicit.png", post.ImageURL)
	assert.Equal(t, []string{"#marketing", "#socialmedia", "#digital"}, post.Hashtags)
	assert.Equal(t, 1, ai.textCalls)
	assert.Equal(t, 1, ai.imageCalls)
}

func TestCreate_EngagementMetricsWithinBounds(t *testing.T) {
	svc := NewPostService(newFakePostRepo(), &fakeAI{})

	for i := 0; i < 1000; i++ {
		post, err := svc.Create(context.Background(), 1, validDraft())
		require.NoError(t, err)

		m := post.EngagementMetrics
		require.NotNil(t, m)
		assert.GreaterOrEqual(t, m.Likes, 50)
		assert.LessOrEqual(t, m.Likes, 500)
		assert.GreaterOrEqual(t, m.Comments, 5)
		assert.LessOrEqual(t, m.Comments, 50)
		assert.GreaterOrEqual(t, m.Shares, 2)
		assert.LessOrEqual(t, m.Shares, 25)
	}
}

func TestCreate_ValidationErrors(t *testing.T) {
	svc := NewPostService(newFakePostRepo(), &fakeAI{})

	_, err := svc.Create(context.Background(), 1, &transfer.PostDraft{})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "title")
	assert.Contains(t, verr.Fields, "content")
	assert.Contains(t, verr.Fields, "platform")
	assert.Contains(t, verr.Fields, "post_type")
}

func TestCreate_PresentButInvalidEnumsRejected(t *testing.T) {
	svc := NewPostService(newFakePostRepo(), &fakeAI{})

	draft := validDraft()
	draft.Platform = "myspace"
	draft.Tone = "loud"
	draft.Length = "tiny"
	draft.Status = "archived"

	_, err := svc.Create(context.Background(), 1, draft)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "platform")
	assert.Contains(t, verr.Fields, "tone")
	assert.Contains(t, verr.Fields, "length")
	assert.Contains(t, verr.Fields, "status")
}

func TestUpdate_ChangesSubsetAndKeepsEngagement(t *testing.T) {
	repo := newFakePostRepo()
	svc := NewPostService(repo, &fakeAI{})

	created, err := svc.Create(context.Background(), 1, validDraft())
	require.NoError(t, err)
	originalMetrics := *created.EngagementMetrics

	updated, err := svc.Update(context.Background(), created.ID, 1, &transfer.PostUpdate{
		Title:    "T",
		Content:  "C",
		Platform: models.PlatformTwitter,
		Status:   models.PostStatusPublished,
	})
	require.NoError(t, err)
	assert.Equal(t, models.PostStatusPublished, updated.Status)

	stored, err := repo.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, models.PostStatusPublished, stored.Status)
	require.NotNil(t, stored.EngagementMetrics)
	assert.Equal(t, originalMetrics, *stored.EngagementMetrics)
}

func TestUpdate_OtherUsersPostIsNotFound(t *testing.T) {
	svc := NewPostService(newFakePostRepo(), &fakeAI{})

	created, err := svc.Create(context.Background(), 1, validDraft())
	require.NoError(t, err)

	_, err = svc.Update(context.Background(), created.ID, 2, &transfer.PostUpdate{
		Title:    "T",
		Content:  "C",
		Platform: models.PlatformTwitter,
		Status:   models.PostStatusDraft,
	})
	assert.ErrorIs(t, err, ErrPostNotFound)
}

func TestDuplicate_ResetsLifecycleFields(t *testing.T) {
	repo := newFakePostRepo()
	svc := NewPostService(repo, &fakeAI{})

	draft := validDraft()
	draft.Status = models.PostStatusScheduled
	draft.ScheduledAt = "2026-09-01T10:00:00Z"
	draft.BusinessName = "Padaria"
	draft.Tone = models.ToneCasual

	source, err := svc.Create(context.Background(), 1, draft)
	require.NoError(t, err)

	dup, err := svc.Duplicate(context.Background(), source.ID, 1)
	require.NoError(t, err)

	assert.Equal(t, "T (Cópia)", dup.Title)
	assert.Equal(t, models.PostStatusDraft, dup.Status)
	assert.Nil(t, dup.PublishedAt)
	assert.Nil(t, dup.ScheduledAt)
	assert.Nil(t, dup.EngagementMetrics)
	assert.NotEqual(t, source.ID, dup.ID)

	assert.Equal(t, source.Content, dup.Content)
	assert.Equal(t, source.Platform, dup.Platform)
	assert.Equal(t, source.PostType, dup.PostType)
	assert.Equal(t, source.BusinessName, dup.BusinessName)
	assert.Equal(t, source.Tone, dup.Tone)
	assert.Equal(t, source.Hashtags, dup.Hashtags)
}

func TestDuplicate_UnknownPost(t *testing.T) {
	svc := NewPostService(newFakePostRepo(), &fakeAI{})

	_, err := svc.Duplicate(context.Background(), 99, 1)
	assert.ErrorIs(t, err, ErrPostNotFound)
}

func TestRemove_EnforcesOwnership(t *testing.T) {
	repo := newFakePostRepo()
	svc := NewPostService(repo, &fakeAI{})

	created, err := svc.Create(context.Background(), 1, validDraft())
	require.NoError(t, err)

	err = svc.Remove(context.Background(), created.ID, 2)
	assert.ErrorIs(t, err, ErrPostNotFound)

	err = svc.Remove(context.Background(), created.ID, 1)
	require.NoError(t, err)

	_, err = svc.PostInfo(context.Background(), created.ID, 1)
	assert.ErrorIs(t, err, ErrPostNotFound)
}

func TestList_FormatsLabelsAndDefaultsEngagement(t *testing.T) {
	repo := newFakePostRepo()
	svc := NewPostService(repo, &fakeAI{})

	created, err := svc.Create(context.Background(), 1, validDraft())
	require.NoError(t, err)

	dup, err := svc.Duplicate(context.Background(), created.ID, 1)
	require.NoError(t, err)

	items, err := svc.List(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, items, 2)

	// newest first
	assert.Equal(t, dup.ID, items[0].ID)
	assert.Equal(t, "Rascunho", items[0].FormattedStatus)
	assert.Equal(t, "Twitter", items[0].FormattedPlatform)

	// duplicated post has no engagement yet, defaults to zero
	assert.Equal(t, transfer.EngagementView{}, items[0].Engagement)
	assert.NotZero(t, items[1].Engagement.Likes)
}
