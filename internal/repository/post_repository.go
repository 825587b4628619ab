package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/postforge/postforge/internal/models"
)

type PostRepository interface {
	GetByID(ctx context.Context, id int64) (*models.Post, error)
	Create(ctx context.Context, tx *sql.Tx, post *models.Post) (int64, error)
	GetByUserID(ctx context.Context, userID int64) ([]*models.Post, error)
	Update(ctx context.Context, post *models.Post) error
	CheckByUserID(ctx context.Context, postID, userID int64) (bool, error)
	Remove(ctx context.Context, id int64) error
}

type postRepository struct {
	db *sql.DB
}

func NewPostRepository(db *sql.DB) PostRepository {
	return &postRepository{db: db}
}

const postColumns = `id, user_id, title, content, platform, status, post_type,
	business_name, business_description, tone, length, hashtags, image_url,
	scheduled_at, published_at, engagement_metrics, ai_generated_content,
	created_at, updated_at`

func (r *postRepository) Create(ctx context.Context, tx *sql.Tx, post *models.Post) (int64, error) {
	query := `
		INSERT INTO posts (user_id, title, content, platform, status, post_type,
			business_name, business_description, tone, length, hashtags, image_url,
			scheduled_at, published_at, engagement_metrics, ai_generated_content)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		RETURNING id, created_at, updated_at
	`

	hashtags, err := marshalNullable(post.Hashtags, len(post.Hashtags) > 0)
	if err != nil {
		return 0, err
	}
	engagement, err := marshalNullable(post.EngagementMetrics, post.EngagementMetrics != nil)
	if err != nil {
		return 0, err
	}
	aiContent, err := marshalNullable(post.AIGeneratedContent, post.AIGeneratedContent != nil)
	if err != nil {
		return 0, err
	}

	args := []any{
		post.UserID, post.Title, post.Content, post.Platform, post.Status, post.PostType,
		nullString(post.BusinessName), nullString(post.BusinessDescription),
		nullString(post.Tone), nullString(post.Length), hashtags,
		nullString(post.ImageURL), post.ScheduledAt, post.PublishedAt,
		engagement, aiContent,
	}

	var row *sql.Row
	if tx != nil {
		row = tx.QueryRowContext(ctx, query, args...)
	} else {
		row = r.db.QueryRowContext(ctx, query, args...)
	}

	if err := row.Scan(&post.ID, &post.CreatedAt, &post.UpdatedAt); err != nil {
		slog.Info(err.Error())
		return 0, err
	}

	return post.ID, nil
}

func (r *postRepository) GetByID(ctx context.Context, id int64) (*models.Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts WHERE id = $1`
	row := r.db.QueryRowContext(ctx, query, id)

	post, err := scanPost(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		slog.Info(err.Error())
		return nil, err
	}

	return post, nil
}

func (r *postRepository) GetByUserID(ctx context.Context, userID int64) ([]*models.Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts WHERE user_id = $1 ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	var posts []*models.Post
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		posts = append(posts, post)
	}
	return posts, rows.Err()
}

func (r *postRepository) Update(ctx context.Context, post *models.Post) error {
	query := `
		UPDATE posts
		SET title = $1,
			content = $2,
			platform = $3,
			status = $4,
			scheduled_at = $5,
			updated_at = $6
		WHERE id = $7
	`
	_, err := r.db.ExecContext(ctx, query, post.Title, post.Content, post.Platform,
		post.Status, post.ScheduledAt, time.Now(), post.ID)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

func (r *postRepository) CheckByUserID(ctx context.Context, postID, userID int64) (bool, error) {
	query := "SELECT 1 FROM posts WHERE id = $1 AND user_id = $2"

	var result int
	err := r.db.QueryRowContext(ctx, query, postID, userID).Scan(&result)
	if err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		slog.Info(err.Error())
		return false, err
	}

	return result == 1, nil
}

func (r *postRepository) Remove(ctx context.Context, id int64) error {
	query := `DELETE FROM posts WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id)

	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPost(row rowScanner) (*models.Post, error) {
	var (
		post                models.Post
		businessName        sql.NullString
		businessDescription sql.NullString
		tone                sql.NullString
		length              sql.NullString
		imageURL            sql.NullString
		hashtags            []byte
		engagement          []byte
		aiContent           []byte
	)

	err := row.Scan(&post.ID, &post.UserID, &post.Title, &post.Content,
		&post.Platform, &post.Status, &post.PostType,
		&businessName, &businessDescription, &tone, &length,
		&hashtags, &imageURL, &post.ScheduledAt, &post.PublishedAt,
		&engagement, &aiContent, &post.CreatedAt, &post.UpdatedAt)
	if err != nil {
		return nil, err
	}

	post.BusinessName = businessName.String
	post.BusinessDescription = businessDescription.String
	post.Tone = tone.String
	post.Length = length.String
	post.ImageURL = imageURL.String

	if hashtags != nil {
		if err := json.Unmarshal(hashtags, &post.Hashtags); err != nil {
			return nil, err
		}
	}
	if engagement != nil {
		post.EngagementMetrics = &models.EngagementMetrics{}
		if err := json.Unmarshal(engagement, post.EngagementMetrics); err != nil {
			return nil, err
		}
	}
	if aiContent != nil {
		post.AIGeneratedContent = &models.AIGeneratedContent{}
		if err := json.Unmarshal(aiContent, post.AIGeneratedContent); err != nil {
			return nil, err
		}
	}

	return &post, nil
}

func marshalNullable(v any, present bool) (any, error) {
	if !present {
		return nil, nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	return b, nil
}

func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
