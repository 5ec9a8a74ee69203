package dbmysql

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// The schema must stay portable: the test suite runs it on sqlite while
// production runs MySQL, so the model tags cannot use dialect-specific
// column types.
func TestMigrate_Sqlite(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, Migrate(db))

	for _, model := range []interface{}{
		&User{}, &Post{}, &Comment{}, &Reaction{}, &Follow{}, &Feedback{},
	} {
		assert.True(t, db.Migrator().HasTable(model), "missing table for %T", model)
	}
}

func TestMigrate_EnumValuesRoundTrip(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, Migrate(db))

	user := &User{Username: "alice", PasswordHash: "x", DisplayName: "Alice", Theme: "hello_kitty"}
	require.NoError(t, db.Create(user).Error)

	content := "hi"
	post := &Post{AuthorID: user.UserID, Type: "drawing", Content: &content}
	require.NoError(t, db.Create(post).Error)

	var gotUser User
	require.NoError(t, db.First(&gotUser, "user_id = ?", user.UserID).Error)
	assert.Equal(t, "hello_kitty", gotUser.Theme)

	var gotPost Post
	require.NoError(t, db.First(&gotPost, "post_id = ?", post.PostID).Error)
	assert.Equal(t, "drawing", gotPost.Type)
}
