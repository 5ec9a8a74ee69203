package feed

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"bachaboard/internal/common"
	"bachaboard/internal/config"
	"bachaboard/internal/dbmysql"
	"bachaboard/internal/user"
)

// ReactionCount is one emoji bucket in a post's reaction summary
type ReactionCount struct {
	Emoji string `json:"emoji"`
	Count int64  `json:"count"`
}

// EnrichedPost is a post joined with the derived display data the feed
// needs: author name/avatar, comment count, reaction summary and the
// viewer's own reaction.
type EnrichedPost struct {
	ID            uint64          `json:"id"`
	AuthorID      uint64          `json:"author_id"`
	AuthorName    string          `json:"author_name"`
	AuthorAvatar  *string         `json:"author_avatar"`
	PostType      string          `json:"post_type"`
	Content       *string         `json:"content"`
	MediaURL      *string         `json:"media_url"`
	CreatedAt     time.Time       `json:"created_at"`
	CommentsCount int64           `json:"comments_count"`
	Reactions     []ReactionCount `json:"reactions"`
	UserReaction  *string         `json:"user_reaction"`
}

// CommentView is a comment joined with its author's display data
type CommentView struct {
	ID           uint64    `json:"id"`
	AuthorName   string    `json:"author_name"`
	AuthorAvatar *string   `json:"author_avatar"`
	Content      string    `json:"content"`
	CreatedAt    time.Time `json:"created_at"`
}

type FeedUsecase interface {
	CreatePost(ctx context.Context, authorID uint64, postType string, content, mediaURL, drawingData *string) (uint64, error)
	DeletePost(ctx context.Context, postID, requesterID uint64) error
	ComposeFeed(ctx context.Context, viewerID uint64, skip, limit int) ([]EnrichedPost, error)
	ComposeSinglePost(ctx context.Context, postID, viewerID uint64) (*EnrichedPost, error)
	ReactToPost(ctx context.Context, postID, userID uint64, emoji string) (string, error)
	AddComment(ctx context.Context, postID, authorID uint64, content string) (uint64, error)
	ListComments(ctx context.Context, postID uint64) ([]CommentView, error)
}

type FeedService struct {
	posts       PostStore
	engagement  Engagement
	follows     user.FollowRepository
	users       user.UserRepository
	maxPageSize int
}

func NewFeedService(posts PostStore, engagement Engagement, follows user.FollowRepository, users user.UserRepository, cfg *config.Config) *FeedService {
	maxPage := cfg.Feed.MaxPageSize
	if maxPage <= 0 {
		maxPage = 20
	}
	return &FeedService{
		posts:       posts,
		engagement:  engagement,
		follows:     follows,
		users:       users,
		maxPageSize: maxPage,
	}
}

// CreatePost validates that the payload matches the post type: text posts
// carry content, photo and drawing posts carry a media URL, and drawing
// posts may additionally carry the opaque canvas state for re-editing.
func (s *FeedService) CreatePost(ctx context.Context, authorID uint64, postType string, content, mediaURL, drawingData *string) (uint64, error) {
	pt := common.PostType(postType)
	if !pt.IsValid() {
		return 0, fmt.Errorf("%w: unknown post type %q", common.ErrInvalidArgument, postType)
	}

	switch pt {
	case common.PostTypeText:
		if content == nil || strings.TrimSpace(*content) == "" {
			return 0, fmt.Errorf("%w: text posts require content", common.ErrInvalidArgument)
		}
	case common.PostTypePhoto, common.PostTypeDrawing:
		if mediaURL == nil || *mediaURL == "" {
			return 0, fmt.Errorf("%w: %s posts require a media url", common.ErrInvalidArgument, pt)
		}
	}

	post := &dbmysql.Post{
		AuthorID:    authorID,
		Type:        pt.String(),
		Content:     content,
		MediaURL:    mediaURL,
		DrawingData: drawingData,
	}

	if err := s.posts.CreatePost(ctx, post); err != nil {
		return 0, err
	}
	return post.PostID, nil
}

// DeletePost removes the requester's own post along with every comment
// and reaction attached to it.
func (s *FeedService) DeletePost(ctx context.Context, postID, requesterID uint64) error {
	post, err := s.posts.GetPostByID(ctx, postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: post not found", common.ErrNotFound)
		}
		return err
	}

	if post.AuthorID != requesterID {
		// posts by others are invisible to the delete operation
		return fmt.Errorf("%w: post not found", common.ErrNotFound)
	}

	return s.posts.DeletePost(ctx, postID)
}

// ComposeFeed assembles the viewer's reverse-chronological feed: posts by
// everyone they follow plus their own, enriched with engagement summaries.
func (s *FeedService) ComposeFeed(ctx context.Context, viewerID uint64, skip, limit int) ([]EnrichedPost, error) {
	if skip < 0 {
		skip = 0
	}
	if limit <= 0 || limit > s.maxPageSize {
		limit = s.maxPageSize
	}

	followingIDs, err := s.follows.FollowingIDs(ctx, viewerID)
	if err != nil {
		return nil, err
	}
	// a user always sees their own posts
	authorIDs := append(followingIDs, viewerID)

	posts, err := s.posts.ListByAuthors(ctx, authorIDs, skip, limit)
	if err != nil {
		return nil, err
	}

	return s.enrichPosts(ctx, posts, viewerID)
}

// ComposeSinglePost enriches one post for direct viewing. Any
// authenticated viewer may fetch any post by id; only the feed itself is
// scoped to the follow graph.
func (s *FeedService) ComposeSinglePost(ctx context.Context, postID, viewerID uint64) (*EnrichedPost, error) {
	post, err := s.posts.GetPostByID(ctx, postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: post not found", common.ErrNotFound)
		}
		return nil, err
	}

	enriched, err := s.enrichPosts(ctx, []dbmysql.Post{*post}, viewerID)
	if err != nil {
		return nil, err
	}
	return &enriched[0], nil
}

func (s *FeedService) enrichPosts(ctx context.Context, posts []dbmysql.Post, viewerID uint64) ([]EnrichedPost, error) {
	enriched := make([]EnrichedPost, 0, len(posts))
	if len(posts) == 0 {
		return enriched, nil
	}

	postIDs := make([]uint64, 0, len(posts))
	authorIDSet := make(map[uint64]struct{}, len(posts))
	for _, p := range posts {
		postIDs = append(postIDs, p.PostID)
		authorIDSet[p.AuthorID] = struct{}{}
	}
	authorIDs := make([]uint64, 0, len(authorIDSet))
	for id := range authorIDSet {
		authorIDs = append(authorIDs, id)
	}

	authors, err := s.users.UsersByIDs(ctx, authorIDs)
	if err != nil {
		return nil, err
	}
	authorByID := make(map[uint64]dbmysql.User, len(authors))
	for _, a := range authors {
		authorByID[a.UserID] = a
	}

	commentCounts, err := s.engagement.CountCommentsForPosts(ctx, postIDs)
	if err != nil {
		return nil, err
	}

	reactions, err := s.engagement.ListReactionsForPosts(ctx, postIDs)
	if err != nil {
		return nil, err
	}

	// counts per post per emoji, plus the viewer's own reaction per post
	type summary struct {
		counts map[string]int64
		order  []string
		own    *string
	}
	summaries := make(map[uint64]*summary, len(postIDs))
	for _, reaction := range reactions {
		sum := summaries[reaction.PostID]
		if sum == nil {
			sum = &summary{counts: map[string]int64{}}
			summaries[reaction.PostID] = sum
		}
		if _, seen := sum.counts[reaction.Emoji]; !seen {
			sum.order = append(sum.order, reaction.Emoji)
		}
		sum.counts[reaction.Emoji]++
		if reaction.UserID == viewerID {
			emoji := reaction.Emoji
			sum.own = &emoji
		}
	}

	for _, p := range posts {
		author := authorByID[p.AuthorID]

		item := EnrichedPost{
			ID:            p.PostID,
			AuthorID:      p.AuthorID,
			AuthorName:    author.DisplayName,
			AuthorAvatar:  author.AvatarURL,
			PostType:      p.Type,
			Content:       p.Content,
			MediaURL:      p.MediaURL,
			CreatedAt:     p.CreatedAt,
			CommentsCount: commentCounts[p.PostID],
			Reactions:     []ReactionCount{},
		}

		if sum := summaries[p.PostID]; sum != nil {
			for _, emoji := range sum.order {
				item.Reactions = append(item.Reactions, ReactionCount{Emoji: emoji, Count: sum.counts[emoji]})
			}
			item.UserReaction = sum.own
		}

		enriched = append(enriched, item)
	}

	return enriched, nil
}

// ReactToPost toggles the user's reaction on the post and returns the
// confirmation message for whichever transition happened.
func (s *FeedService) ReactToPost(ctx context.Context, postID, userID uint64, emoji string) (string, error) {
	if strings.TrimSpace(emoji) == "" {
		return "", fmt.Errorf("%w: emoji is required", common.ErrInvalidArgument)
	}

	if _, err := s.posts.GetPostByID(ctx, postID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", fmt.Errorf("%w: post not found", common.ErrNotFound)
		}
		return "", err
	}

	outcome, err := s.engagement.ToggleReaction(ctx, postID, userID, emoji)
	if err != nil {
		return "", err
	}
	return outcome.Message(), nil
}

func (s *FeedService) AddComment(ctx context.Context, postID, authorID uint64, content string) (uint64, error) {
	if strings.TrimSpace(content) == "" {
		return 0, fmt.Errorf("%w: comment content is required", common.ErrInvalidArgument)
	}

	if _, err := s.posts.GetPostByID(ctx, postID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, fmt.Errorf("%w: post not found", common.ErrNotFound)
		}
		return 0, err
	}

	comment := &dbmysql.Comment{
		PostID:   postID,
		AuthorID: authorID,
		Content:  content,
	}
	if err := s.engagement.CreateComment(ctx, comment); err != nil {
		return 0, err
	}
	return comment.CommentID, nil
}

func (s *FeedService) ListComments(ctx context.Context, postID uint64) ([]CommentView, error) {
	comments, err := s.engagement.ListComments(ctx, postID)
	if err != nil {
		return nil, err
	}

	authorIDSet := make(map[uint64]struct{}, len(comments))
	for _, c := range comments {
		authorIDSet[c.AuthorID] = struct{}{}
	}
	authorIDs := make([]uint64, 0, len(authorIDSet))
	for id := range authorIDSet {
		authorIDs = append(authorIDs, id)
	}

	authors, err := s.users.UsersByIDs(ctx, authorIDs)
	if err != nil {
		return nil, err
	}
	authorByID := make(map[uint64]dbmysql.User, len(authors))
	for _, a := range authors {
		authorByID[a.UserID] = a
	}

	views := make([]CommentView, 0, len(comments))
	for _, c := range comments {
		author := authorByID[c.AuthorID]
		views = append(views, CommentView{
			ID:           c.CommentID,
			AuthorName:   author.DisplayName,
			AuthorAvatar: author.AvatarURL,
			Content:      c.Content,
			CreatedAt:    c.CreatedAt,
		})
	}
	return views, nil
}
