package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/WhiteArt666/RedditEng-Clone-sub000/config"
	"github.com/WhiteArt666/RedditEng-Clone-sub000/internal/model"
	"github.com/WhiteArt666/RedditEng-Clone-sub000/internal/model/dto"
	"github.com/WhiteArt666/RedditEng-Clone-sub000/internal/pkg/queue"
	"github.com/WhiteArt666/RedditEng-Clone-sub000/internal/repository"
	"github.com/WhiteArt666/RedditEng-Clone-sub000/internal/testutil"
)

func newCommentService(db *gorm.DB, notifyQueue *queue.Queue) *CommentService {
	return NewCommentService(
		repository.NewCommentRepository(db),
		repository.NewPostRepository(db),
		repository.NewVoteRepository(db),
		repository.NewUserRepository(db),
		notifyQueue,
		&config.Config{},
	)
}

func TestCommentService_Create_Success(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	service := newCommentService(db, nil)

	user := testutil.TestUser(t, db, testutil.WithUsername("commenter"))
	post := testutil.TestPost(t, db, user.ID)

	req := &dto.CreateCommentRequest{
		PostID:  post.ID,
		Content: "Great explanation, thanks!",
	}

	item, err := service.Create(user.ID, req)
	require.NoError(t, err)
	assert.NotZero(t, item.ID)
	assert.Equal(t, "Great explanation, thanks!", item.Content)
	assert.Equal(t, 0, item.Depth)
	assert.Nil(t, item.ParentID)
	assert.NotNil(t, item.User)
	assert.Equal(t, "commenter", item.User.Username)

	// Post comment count should be incremented
	var updated model.Post
	require.NoError(t, db.First(&updated, post.ID).Error)
	assert.Equal(t, 1, updated.CommentCount)
}

func TestCommentService_Create_Reply(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	service := newCommentService(db, nil)

	user := testutil.TestUser(t, db)
	post := testutil.TestPost(t, db, user.ID)
	parent := testutil.TestComment(t, db, user.ID, post.ID, "Parent comment")

	req := &dto.CreateCommentRequest{
		PostID:   post.ID,
		ParentID: &parent.ID,
		Content:  "This is a reply",
	}

	item, err := service.Create(user.ID, req)
	require.NoError(t, err)
	assert.NotZero(t, item.ID)
	assert.Equal(t, 1, item.Depth)
	require.NotNil(t, item.ParentID)
	assert.Equal(t, parent.ID, *item.ParentID)
}

func TestCommentService_Create_PostNotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	service := newCommentService(db, nil)
	user := testutil.TestUser(t, db)

	req := &dto.CreateCommentRequest{
		PostID:  99999,
		Content: "orphan comment",
	}

	_, err := service.Create(user.ID, req)
	assert.ErrorIs(t, err, ErrPostNotFound)
}

func TestCommentService_Create_ParentNotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	service := newCommentService(db, nil)
	user := testutil.TestUser(t, db)
	post := testutil.TestPost(t, db, user.ID)

	missing := int64(99999)
	req := &dto.CreateCommentRequest{
		PostID:   post.ID,
		ParentID: &missing,
		Content:  "reply to nothing",
	}

	_, err := service.Create(user.ID, req)
	assert.ErrorIs(t, err, ErrParentNotFound)
}

func TestCommentService_Create_ParentInOtherPost(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	service := newCommentService(db, nil)
	user := testutil.TestUser(t, db)
	post := testutil.TestPost(t, db, user.ID)
	otherPost := testutil.TestPost(t, db, user.ID)
	parent := testutil.TestComment(t, db, user.ID, otherPost.ID, "comment on another post")

	req := &dto.CreateCommentRequest{
		PostID:   post.ID,
		ParentID: &parent.ID,
		Content:  "cross-post reply",
	}

	_, err := service.Create(user.ID, req)
	assert.ErrorIs(t, err, ErrParentNotInPost)
}

func TestCommentService_Create_DepthLimit(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	service := newCommentService(db, nil)
	user := testutil.TestUser(t, db)
	post := testutil.TestPost(t, db, user.ID)

	// Build a chain down to the maximum depth of 5
	parent := testutil.TestComment(t, db, user.ID, post.ID, "depth 0")
	for depth := 1; depth <= 5; depth++ {
		req := &dto.CreateCommentRequest{
			PostID:   post.ID,
			ParentID: &parent.ID,
			Content:  fmt.Sprintf("depth %d", depth),
		}
		item, err := service.Create(user.ID, req)
		require.NoError(t, err)
		assert.Equal(t, depth, item.Depth)

		var created model.Comment
		require.NoError(t, db.First(&created, item.ID).Error)
		parent = &created
	}

	// One level deeper must be rejected
	req := &dto.CreateCommentRequest{
		PostID:   post.ID,
		ParentID: &parent.ID,
		Content:  "depth 6",
	}
	_, err := service.Create(user.ID, req)
	assert.ErrorIs(t, err, ErrDepthExceeded)
}

func TestCommentService_Create_EnqueuesReplyNotification(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	notifyQueue := queue.NewQueue(client, "test:notifications")
	service := newCommentService(db, notifyQueue)

	author := testutil.TestUser(t, db, testutil.WithUsername("author"))
	replier := testutil.TestUser(t, db, testutil.WithUsername("replier"))
	post := testutil.TestPost(t, db, author.ID)
	parent := testutil.TestComment(t, db, author.ID, post.ID, "original comment")

	req := &dto.CreateCommentRequest{
		PostID:   post.ID,
		ParentID: &parent.ID,
		Content:  "a reply worth notifying about",
	}

	item, err := service.Create(replier.ID, req)
	require.NoError(t, err)

	msg, err := notifyQueue.Pop(context.Background(), time.Second)
	require.NoError(t, err)
	require.NotNil(t, msg)
	assert.Equal(t, author.ID, msg.UserID)
	assert.Equal(t, replier.ID, msg.ActorID)
	assert.Equal(t, model.NotificationTypeReply, msg.Type)
	assert.Equal(t, post.ID, msg.PostID)
	require.NotNil(t, msg.CommentID)
	assert.Equal(t, item.ID, *msg.CommentID)
}

func TestCommentService_Create_NoSelfNotification(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	notifyQueue := queue.NewQueue(client, "test:notifications")
	service := newCommentService(db, notifyQueue)

	user := testutil.TestUser(t, db)
	post := testutil.TestPost(t, db, user.ID)
	parent := testutil.TestComment(t, db, user.ID, post.ID, "my own comment")

	req := &dto.CreateCommentRequest{
		PostID:   post.ID,
		ParentID: &parent.ID,
		Content:  "replying to myself",
	}

	_, err = service.Create(user.ID, req)
	require.NoError(t, err)

	length, err := notifyQueue.Length(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(0), length)
}

func TestCommentService_Update_Success(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	service := newCommentService(db, nil)
	user := testutil.TestUser(t, db)
	post := testutil.TestPost(t, db, user.ID)
	comment := testutil.TestComment(t, db, user.ID, post.ID, "original content")

	item, err := service.Update(user.ID, comment.ID, "edited content")
	require.NoError(t, err)
	assert.Equal(t, "edited content", item.Content)

	var updated model.Comment
	require.NoError(t, db.First(&updated, comment.ID).Error)
	assert.Equal(t, "edited content", updated.Content)
}

func TestCommentService_Update_NotOwner(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	service := newCommentService(db, nil)
	owner := testutil.TestUser(t, db)
	other := testutil.TestUser(t, db)
	post := testutil.TestPost(t, db, owner.ID)
	comment := testutil.TestComment(t, db, owner.ID, post.ID, "owner's comment")

	_, err := service.Update(other.ID, comment.ID, "hijacked")
	assert.ErrorIs(t, err, ErrCommentPermission)
}

func TestCommentService_Update_NotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	service := newCommentService(db, nil)
	user := testutil.TestUser(t, db)

	_, err := service.Update(user.ID, 99999, "ghost edit")
	assert.ErrorIs(t, err, ErrCommentNotFound)
}

func TestCommentService_Delete_Cascade(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	service := newCommentService(db, nil)
	user := testutil.TestUser(t, db)
	post := testutil.TestPost(t, db, user.ID)

	// root -> child -> grandchild, plus an unrelated sibling
	root := testutil.TestComment(t, db, user.ID, post.ID, "root")
	child := testutil.TestReply(t, db, user.ID, post.ID, root, "child")
	grandchild := testutil.TestReply(t, db, user.ID, post.ID, child, "grandchild")
	sibling := testutil.TestComment(t, db, user.ID, post.ID, "sibling")

	// Votes on the subtree should disappear with it
	testutil.TestVote(t, db, user.ID, model.VoteTargetComment, grandchild.ID, model.VoteValueUp)

	// Comment count reflects all four comments
	require.NoError(t, db.Model(post).Update("comment_count", 4).Error)

	err := service.Delete(user.ID, root.ID)
	require.NoError(t, err)

	var count int64
	db.Model(&model.Comment{}).Where("post_id = ?", post.ID).Count(&count)
	assert.Equal(t, int64(1), count)

	var remaining model.Comment
	require.NoError(t, db.First(&remaining, sibling.ID).Error)

	var voteCount int64
	db.Model(&model.Vote{}).Where("target_type = ? AND target_id = ?", model.VoteTargetComment, grandchild.ID).Count(&voteCount)
	assert.Equal(t, int64(0), voteCount)

	// Count decreases by the whole subtree (root + child + grandchild)
	var updated model.Post
	require.NoError(t, db.First(&updated, post.ID).Error)
	assert.Equal(t, 1, updated.CommentCount)
}

func TestCommentService_Delete_NotOwner(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	service := newCommentService(db, nil)
	owner := testutil.TestUser(t, db)
	other := testutil.TestUser(t, db)
	post := testutil.TestPost(t, db, owner.ID)
	comment := testutil.TestComment(t, db, owner.ID, post.ID, "owner's comment")

	err := service.Delete(other.ID, comment.ID)
	assert.ErrorIs(t, err, ErrCommentPermission)

	var still model.Comment
	require.NoError(t, db.First(&still, comment.ID).Error)
}

func TestCommentService_ListByPostID_NestedReplies(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	service := newCommentService(db, nil)
	user := testutil.TestUser(t, db)
	post := testutil.TestPost(t, db, user.ID)

	// depth 0..3; the depth-3 reply sits past the default fetch depth
	root := testutil.TestComment(t, db, user.ID, post.ID, "depth 0")
	d1 := testutil.TestReply(t, db, user.ID, post.ID, root, "depth 1")
	d2 := testutil.TestReply(t, db, user.ID, post.ID, d1, "depth 2")
	d3 := testutil.TestReply(t, db, user.ID, post.ID, d2, "depth 3")
	_ = testutil.TestReply(t, db, user.ID, post.ID, d3, "depth 4")

	req := &dto.CommentListRequest{Page: 1, Limit: 20, SortBy: "new"}
	items, total, err := service.ListByPostID(post.ID, req, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, items, 1)

	// Three levels of replies are included, depth 4 is left for lazy loading
	require.Len(t, items[0].Replies, 1)
	require.Len(t, items[0].Replies[0].Replies, 1)
	require.Len(t, items[0].Replies[0].Replies[0].Replies, 1)
	deepest := items[0].Replies[0].Replies[0].Replies[0]
	assert.Equal(t, "depth 3", deepest.Content)
	assert.Empty(t, deepest.Replies)
}

func TestCommentService_ListByPostID_SortTop(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	service := newCommentService(db, nil)
	user := testutil.TestUser(t, db)
	post := testutil.TestPost(t, db, user.ID)

	low := testutil.TestComment(t, db, user.ID, post.ID, "low score")
	high := testutil.TestComment(t, db, user.ID, post.ID, "high score")
	require.NoError(t, db.Model(low).Update("score", 1).Error)
	require.NoError(t, db.Model(high).Update("score", 10).Error)

	req := &dto.CommentListRequest{Page: 1, Limit: 20, SortBy: "top"}
	items, _, err := service.ListByPostID(post.ID, req, nil)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, high.ID, items[0].ID)
	assert.Equal(t, low.ID, items[1].ID)
}

func TestCommentService_ListByPostID_ViewerVotes(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	service := newCommentService(db, nil)
	author := testutil.TestUser(t, db)
	viewer := testutil.TestUser(t, db)
	post := testutil.TestPost(t, db, author.ID)

	voted := testutil.TestComment(t, db, author.ID, post.ID, "voted comment")
	plain := testutil.TestComment(t, db, author.ID, post.ID, "plain comment")
	testutil.TestVote(t, db, viewer.ID, model.VoteTargetComment, voted.ID, model.VoteValueUp)

	req := &dto.CommentListRequest{Page: 1, Limit: 20, SortBy: "old"}
	items, _, err := service.ListByPostID(post.ID, req, &viewer.ID)
	require.NoError(t, err)
	require.Len(t, items, 2)

	byID := map[int64]*dto.CommentItem{items[0].ID: items[0], items[1].ID: items[1]}
	require.NotNil(t, byID[voted.ID].UserVote)
	assert.Equal(t, "up", *byID[voted.ID].UserVote)
	assert.Nil(t, byID[plain.ID].UserVote)
}

func TestCommentService_ListByPostID_ViewerVoteOnRepliedComment(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	service := newCommentService(db, nil)
	author := testutil.TestUser(t, db)
	viewer := testutil.TestUser(t, db)
	post := testutil.TestPost(t, db, author.ID)

	// Vote on a top-level comment that also has a reply, so the reply
	// fetch runs before the viewer's votes are looked up
	voted := testutil.TestComment(t, db, author.ID, post.ID, "voted with reply")
	reply := testutil.TestReply(t, db, author.ID, post.ID, voted, "a reply")
	testutil.TestVote(t, db, viewer.ID, model.VoteTargetComment, voted.ID, model.VoteValueUp)
	testutil.TestVote(t, db, viewer.ID, model.VoteTargetComment, reply.ID, model.VoteValueDown)

	req := &dto.CommentListRequest{Page: 1, Limit: 20, SortBy: "old"}
	items, _, err := service.ListByPostID(post.ID, req, &viewer.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)

	require.NotNil(t, items[0].UserVote)
	assert.Equal(t, "up", *items[0].UserVote)
	require.Len(t, items[0].Replies, 1)
	require.NotNil(t, items[0].Replies[0].UserVote)
	assert.Equal(t, "down", *items[0].Replies[0].UserVote)
}

func TestCommentService_ListByPostID_PostNotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	service := newCommentService(db, nil)

	req := &dto.CommentListRequest{Page: 1, Limit: 20, SortBy: "top"}
	_, _, err := service.ListByPostID(99999, req, nil)
	assert.ErrorIs(t, err, ErrPostNotFound)
}
