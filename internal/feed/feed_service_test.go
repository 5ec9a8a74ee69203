package feed

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"bachaboard/internal/common"
	"bachaboard/internal/config"
	"bachaboard/internal/dbmysql"
)

// ---- In-memory fakes for the storage interfaces ----

type fakePostStore struct {
	store map[uint64]dbmysql.Post
	next  uint64
	now   time.Time

	DeleteCalls int
}

func newFakePostStore() *fakePostStore {
	return &fakePostStore{store: map[uint64]dbmysql.Post{}, next: 1, now: time.Now()}
}

func (r *fakePostStore) CreatePost(ctx context.Context, p *dbmysql.Post) error {
	p.PostID = r.next
	r.next++
	// later posts get later timestamps
	p.CreatedAt = r.now.Add(time.Duration(p.PostID) * time.Second)
	r.store[p.PostID] = *p
	return nil
}

func (r *fakePostStore) GetPostByID(ctx context.Context, id uint64) (*dbmysql.Post, error) {
	p, ok := r.store[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	pp := p
	return &pp, nil
}

func (r *fakePostStore) ListByAuthors(ctx context.Context, authorIDs []uint64, offset, limit int) ([]dbmysql.Post, error) {
	allowed := map[uint64]struct{}{}
	for _, id := range authorIDs {
		allowed[id] = struct{}{}
	}
	var out []dbmysql.Post
	// newest first, ids are monotone with creation time here
	for id := r.next; id > 0; id-- {
		p, ok := r.store[id]
		if !ok {
			continue
		}
		if _, ok := allowed[p.AuthorID]; ok {
			out = append(out, p)
		}
	}
	if offset > len(out) {
		offset = len(out)
	}
	out = out[offset:]
	if limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakePostStore) DeletePost(ctx context.Context, id uint64) error {
	r.DeleteCalls++
	delete(r.store, id)
	return nil
}

type fakeEngagement struct {
	reactions map[uint64]map[uint64]string // postID -> userID -> emoji
	comments  map[uint64][]dbmysql.Comment
	nextID    uint64
}

func newFakeEngagement() *fakeEngagement {
	return &fakeEngagement{
		reactions: map[uint64]map[uint64]string{},
		comments:  map[uint64][]dbmysql.Comment{},
		nextID:    1,
	}
}

func (r *fakeEngagement) ToggleReaction(ctx context.Context, postID, userID uint64, emoji string) (ReactionOutcome, error) {
	byUser := r.reactions[postID]
	if byUser == nil {
		byUser = map[uint64]string{}
		r.reactions[postID] = byUser
	}
	current, ok := byUser[userID]
	switch {
	case !ok:
		byUser[userID] = emoji
		return ReactionAdded, nil
	case current == emoji:
		delete(byUser, userID)
		return ReactionRemoved, nil
	default:
		byUser[userID] = emoji
		return ReactionUpdated, nil
	}
}

func (r *fakeEngagement) ListReactionsForPosts(ctx context.Context, postIDs []uint64) ([]dbmysql.Reaction, error) {
	var out []dbmysql.Reaction
	for _, postID := range postIDs {
		for userID, emoji := range r.reactions[postID] {
			out = append(out, dbmysql.Reaction{PostID: postID, UserID: userID, Emoji: emoji})
		}
	}
	return out, nil
}

func (r *fakeEngagement) CreateComment(ctx context.Context, c *dbmysql.Comment) error {
	c.CommentID = r.nextID
	r.nextID++
	c.CreatedAt = time.Now()
	r.comments[c.PostID] = append(r.comments[c.PostID], *c)
	return nil
}

func (r *fakeEngagement) ListComments(ctx context.Context, postID uint64) ([]dbmysql.Comment, error) {
	list := r.comments[postID]
	// newest first
	out := make([]dbmysql.Comment, 0, len(list))
	for i := len(list) - 1; i >= 0; i-- {
		out = append(out, list[i])
	}
	return out, nil
}

func (r *fakeEngagement) CountCommentsForPosts(ctx context.Context, postIDs []uint64) (map[uint64]int64, error) {
	counts := map[uint64]int64{}
	for _, postID := range postIDs {
		if n := len(r.comments[postID]); n > 0 {
			counts[postID] = int64(n)
		}
	}
	return counts, nil
}

type fakeFollowRepo struct {
	edges map[uint64]map[uint64]struct{} // follower -> followed set
}

func newFakeFollowRepo() *fakeFollowRepo {
	return &fakeFollowRepo{edges: map[uint64]map[uint64]struct{}{}}
}

func (r *fakeFollowRepo) follow(follower, followed uint64) {
	if r.edges[follower] == nil {
		r.edges[follower] = map[uint64]struct{}{}
	}
	r.edges[follower][followed] = struct{}{}
}

func (r *fakeFollowRepo) CreateFollow(ctx context.Context, f *dbmysql.Follow) error {
	r.follow(f.FollowerID, f.FollowedID)
	return nil
}

func (r *fakeFollowRepo) DeleteFollow(ctx context.Context, followerID, followedID uint64) error {
	delete(r.edges[followerID], followedID)
	return nil
}

func (r *fakeFollowRepo) IsFollowing(ctx context.Context, followerID, followedID uint64) (bool, error) {
	_, ok := r.edges[followerID][followedID]
	return ok, nil
}

func (r *fakeFollowRepo) FollowingIDs(ctx context.Context, userID uint64) ([]uint64, error) {
	out := []uint64{}
	for id := range r.edges[userID] {
		out = append(out, id)
	}
	return out, nil
}

func (r *fakeFollowRepo) FollowerCount(ctx context.Context, userID uint64) (int64, error) {
	var n int64
	for _, followed := range r.edges {
		if _, ok := followed[userID]; ok {
			n++
		}
	}
	return n, nil
}

func (r *fakeFollowRepo) FollowingCount(ctx context.Context, userID uint64) (int64, error) {
	return int64(len(r.edges[userID])), nil
}

type fakeUserRepo struct {
	users map[uint64]dbmysql.User
}

func newFakeUserRepo(users ...dbmysql.User) *fakeUserRepo {
	r := &fakeUserRepo{users: map[uint64]dbmysql.User{}}
	for _, u := range users {
		r.users[u.UserID] = u
	}
	return r
}

func (r *fakeUserRepo) CreateUser(ctx context.Context, u *dbmysql.User) error {
	r.users[u.UserID] = *u
	return nil
}

func (r *fakeUserRepo) GetUserByID(ctx context.Context, id uint64) (*dbmysql.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	uu := u
	return &uu, nil
}

func (r *fakeUserRepo) GetUserByUsername(ctx context.Context, username string) (*dbmysql.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			uu := u
			return &uu, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) UpdateUser(ctx context.Context, u *dbmysql.User) error {
	r.users[u.UserID] = *u
	return nil
}

func (r *fakeUserRepo) ListUsers(ctx context.Context) ([]dbmysql.User, error) {
	out := make([]dbmysql.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, u)
	}
	return out, nil
}

func (r *fakeUserRepo) UsersByIDs(ctx context.Context, ids []uint64) ([]dbmysql.User, error) {
	out := make([]dbmysql.User, 0, len(ids))
	for _, id := range ids {
		if u, ok := r.users[id]; ok {
			out = append(out, u)
		}
	}
	return out, nil
}

func (r *fakeUserRepo) CheckUserExists(ctx context.Context, username string) (bool, error) {
	_, err := r.GetUserByUsername(ctx, username)
	if err != nil {
		return false, nil
	}
	return true, nil
}

// ---- Test harness ----

type feedFixture struct {
	svc        *FeedService
	posts      *fakePostStore
	engagement *fakeEngagement
	follows    *fakeFollowRepo
	users      *fakeUserRepo
}

func newFeedFixture(users ...dbmysql.User) *feedFixture {
	f := &feedFixture{
		posts:      newFakePostStore(),
		engagement: newFakeEngagement(),
		follows:    newFakeFollowRepo(),
		users:      newFakeUserRepo(users...),
	}
	cfg := &config.Config{Feed: config.FeedConfig{MaxPageSize: 20}}
	f.svc = NewFeedService(f.posts, f.engagement, f.follows, f.users, cfg)
	return f
}

func str(s string) *string { return &s }

func TestFeedService_CreatePost(t *testing.T) {
	ctx := context.Background()
	f := newFeedFixture(dbmysql.User{UserID: 1, Username: "alice", DisplayName: "Alice"})

	tests := []struct {
		name     string
		postType string
		content  *string
		mediaURL *string
		wantErr  error
	}{
		{name: "text post", postType: "text", content: str("hello world")},
		{name: "photo post", postType: "photo", mediaURL: str("http://localhost:8000/media/abc")},
		{name: "drawing post", postType: "drawing", mediaURL: str("http://localhost:8000/media/def")},
		{name: "text without content", postType: "text", wantErr: common.ErrInvalidArgument},
		{name: "text with blank content", postType: "text", content: str("   "), wantErr: common.ErrInvalidArgument},
		{name: "photo without media", postType: "photo", wantErr: common.ErrInvalidArgument},
		{name: "drawing without media", postType: "drawing", content: str("x"), wantErr: common.ErrInvalidArgument},
		{name: "unknown type", postType: "video", content: str("x"), wantErr: common.ErrInvalidArgument},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			id, err := f.svc.CreatePost(ctx, 1, tc.postType, tc.content, tc.mediaURL, nil)
			if tc.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.NotZero(t, id)
		})
	}
}

func TestFeedService_ComposeFeed(t *testing.T) {
	ctx := context.Background()
	f := newFeedFixture(
		dbmysql.User{UserID: 1, Username: "alice", DisplayName: "Alice"},
		dbmysql.User{UserID: 2, Username: "bob", DisplayName: "Bob"},
		dbmysql.User{UserID: 3, Username: "carol", DisplayName: "Carol"},
	)

	// alice follows bob but not carol
	f.follows.follow(1, 2)

	bobPost, err := f.svc.CreatePost(ctx, 2, "text", str("hello from bob"), nil, nil)
	require.NoError(t, err)
	_, err = f.svc.CreatePost(ctx, 3, "text", str("carol talking to herself"), nil, nil)
	require.NoError(t, err)
	alicePost, err := f.svc.CreatePost(ctx, 1, "text", str("hi, it's alice"), nil, nil)
	require.NoError(t, err)

	feed, err := f.svc.ComposeFeed(ctx, 1, 0, 20)
	require.NoError(t, err)

	// own post plus followed author's post, newest first; carol filtered out
	require.Len(t, feed, 2)
	assert.Equal(t, alicePost, feed[0].ID)
	assert.Equal(t, "Alice", feed[0].AuthorName)
	assert.Equal(t, bobPost, feed[1].ID)
	assert.Equal(t, "Bob", feed[1].AuthorName)
	assert.Equal(t, "hello from bob", *feed[1].Content)

	t.Run("reaction and comment summaries", func(t *testing.T) {
		_, err := f.svc.ReactToPost(ctx, bobPost, 1, "🎉")
		require.NoError(t, err)
		_, err = f.svc.ReactToPost(ctx, bobPost, 3, "🎉")
		require.NoError(t, err)
		_, err = f.svc.AddComment(ctx, bobPost, 1, "nice one")
		require.NoError(t, err)

		feed, err := f.svc.ComposeFeed(ctx, 1, 0, 20)
		require.NoError(t, err)
		require.Len(t, feed, 2)

		enriched := feed[1]
		require.Len(t, enriched.Reactions, 1)
		assert.Equal(t, "🎉", enriched.Reactions[0].Emoji)
		assert.Equal(t, int64(2), enriched.Reactions[0].Count)
		require.NotNil(t, enriched.UserReaction)
		assert.Equal(t, "🎉", *enriched.UserReaction)
		assert.Equal(t, int64(1), enriched.CommentsCount)

		// posts without engagement keep empty, non-nil summaries
		assert.NotNil(t, feed[0].Reactions)
		assert.Len(t, feed[0].Reactions, 0)
		assert.Nil(t, feed[0].UserReaction)
	})

	t.Run("pagination caps the limit", func(t *testing.T) {
		feed, err := f.svc.ComposeFeed(ctx, 1, 0, 500)
		require.NoError(t, err)
		assert.LessOrEqual(t, len(feed), 20)

		feed, err = f.svc.ComposeFeed(ctx, 1, 1, 1)
		require.NoError(t, err)
		require.Len(t, feed, 1)
		assert.Equal(t, bobPost, feed[0].ID)
	})

	t.Run("negative skip treated as zero", func(t *testing.T) {
		feed, err := f.svc.ComposeFeed(ctx, 1, -5, 20)
		require.NoError(t, err)
		assert.Len(t, feed, 2)
	})

	t.Run("viewer following nobody still sees own posts", func(t *testing.T) {
		feed, err := f.svc.ComposeFeed(ctx, 3, 0, 20)
		require.NoError(t, err)
		require.Len(t, feed, 1)
		assert.Equal(t, "Carol", feed[0].AuthorName)
	})
}

func TestFeedService_ReactToPost(t *testing.T) {
	ctx := context.Background()
	f := newFeedFixture(dbmysql.User{UserID: 1, Username: "alice", DisplayName: "Alice"})

	postID, err := f.svc.CreatePost(ctx, 1, "text", str("react to me"), nil, nil)
	require.NoError(t, err)

	t.Run("toggle round trip", func(t *testing.T) {
		msg, err := f.svc.ReactToPost(ctx, postID, 1, "❤️")
		require.NoError(t, err)
		assert.Equal(t, "Reaction added", msg)

		msg, err = f.svc.ReactToPost(ctx, postID, 1, "🔥")
		require.NoError(t, err)
		assert.Equal(t, "Reaction updated", msg)

		msg, err = f.svc.ReactToPost(ctx, postID, 1, "🔥")
		require.NoError(t, err)
		assert.Equal(t, "Reaction removed", msg)

		// back to absent, the next identical call adds again
		msg, err = f.svc.ReactToPost(ctx, postID, 1, "🔥")
		require.NoError(t, err)
		assert.Equal(t, "Reaction added", msg)
	})

	t.Run("empty emoji", func(t *testing.T) {
		_, err := f.svc.ReactToPost(ctx, postID, 1, "  ")
		require.Error(t, err)
		assert.ErrorIs(t, err, common.ErrInvalidArgument)
	})

	t.Run("missing post", func(t *testing.T) {
		_, err := f.svc.ReactToPost(ctx, 999, 1, "🎉")
		require.Error(t, err)
		assert.ErrorIs(t, err, common.ErrNotFound)
	})
}

func TestFeedService_Comments(t *testing.T) {
	ctx := context.Background()
	f := newFeedFixture(
		dbmysql.User{UserID: 1, Username: "alice", DisplayName: "Alice"},
		dbmysql.User{UserID: 2, Username: "bob", DisplayName: "Bob"},
	)

	postID, err := f.svc.CreatePost(ctx, 1, "text", str("discuss"), nil, nil)
	require.NoError(t, err)

	_, err = f.svc.AddComment(ctx, postID, 2, "first")
	require.NoError(t, err)
	_, err = f.svc.AddComment(ctx, postID, 1, "second")
	require.NoError(t, err)

	t.Run("listed newest first with author names", func(t *testing.T) {
		comments, err := f.svc.ListComments(ctx, postID)
		require.NoError(t, err)
		require.Len(t, comments, 2)
		assert.Equal(t, "second", comments[0].Content)
		assert.Equal(t, "Alice", comments[0].AuthorName)
		assert.Equal(t, "first", comments[1].Content)
		assert.Equal(t, "Bob", comments[1].AuthorName)
	})

	t.Run("blank content rejected", func(t *testing.T) {
		_, err := f.svc.AddComment(ctx, postID, 2, "   ")
		require.Error(t, err)
		assert.ErrorIs(t, err, common.ErrInvalidArgument)
	})

	t.Run("missing post", func(t *testing.T) {
		_, err := f.svc.AddComment(ctx, 999, 2, "hello?")
		require.Error(t, err)
		assert.ErrorIs(t, err, common.ErrNotFound)
	})
}

func TestFeedService_ComposeSinglePost(t *testing.T) {
	ctx := context.Background()
	f := newFeedFixture(
		dbmysql.User{UserID: 1, Username: "alice", DisplayName: "Alice"},
		dbmysql.User{UserID: 3, Username: "carol", DisplayName: "Carol"},
	)

	// carol's post; alice does not follow carol
	postID, err := f.svc.CreatePost(ctx, 3, "text", str("public enough"), nil, nil)
	require.NoError(t, err)

	t.Run("visible by id to any authenticated viewer", func(t *testing.T) {
		p, err := f.svc.ComposeSinglePost(ctx, postID, 1)
		require.NoError(t, err)
		assert.Equal(t, "Carol", p.AuthorName)
		assert.Equal(t, "public enough", *p.Content)
	})

	t.Run("missing post", func(t *testing.T) {
		_, err := f.svc.ComposeSinglePost(ctx, 999, 1)
		require.Error(t, err)
		assert.ErrorIs(t, err, common.ErrNotFound)
	})
}

func TestFeedService_DeletePost(t *testing.T) {
	ctx := context.Background()
	f := newFeedFixture(
		dbmysql.User{UserID: 1, Username: "alice", DisplayName: "Alice"},
		dbmysql.User{UserID: 2, Username: "bob", DisplayName: "Bob"},
	)

	postID, err := f.svc.CreatePost(ctx, 1, "text", str("short lived"), nil, nil)
	require.NoError(t, err)

	t.Run("others cannot delete", func(t *testing.T) {
		err := f.svc.DeletePost(ctx, postID, 2)
		require.Error(t, err)
		assert.ErrorIs(t, err, common.ErrNotFound)
		assert.Zero(t, f.posts.DeleteCalls)
	})

	t.Run("author deletes own post", func(t *testing.T) {
		err := f.svc.DeletePost(ctx, postID, 1)
		require.NoError(t, err)
		assert.Equal(t, 1, f.posts.DeleteCalls)

		_, err = f.svc.ComposeSinglePost(ctx, postID, 1)
		assert.ErrorIs(t, err, common.ErrNotFound)
	})
}
