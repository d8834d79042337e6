package handlers

import (
	"net/http"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flocknet/flock/internal/models"
)

// =============================================================================
// POST CREATION TESTS
// =============================================================================

func (suite *HandlersTestSuite) TestCreatePost() {
	t := suite.T()

	body := map[string]interface{}{"text_content": "hello world"}
	w := suite.request("POST", "/api/v1/posts", body, suite.testUser.ID)

	assert.Equal(t, http.StatusCreated, w.Code)
	post := suite.decode(w)["post"].(map[string]interface{})
	assert.Equal(t, "hello world", post["text_content"])
	assert.NotEmpty(t, post["id"])
	assert.Equal(t, float64(0), post["like_count"])

	author := post["user"].(map[string]interface{})
	assert.Equal(t, suite.testUser.Username, author["username"])
}

func (suite *HandlersTestSuite) TestCreatePostEmptyText() {
	t := suite.T()

	body := map[string]interface{}{"text_content": ""}
	w := suite.request("POST", "/api/v1/posts", body, suite.testUser.ID)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func (suite *HandlersTestSuite) TestCreateReply() {
	t := suite.T()

	parent := suite.createPost(suite.testUser.ID, "parent")

	body := map[string]interface{}{
		"text_content": "a reply",
		"parent_id":    parent.ID,
	}
	w := suite.request("POST", "/api/v1/posts", body, suite.testUser.ID)

	assert.Equal(t, http.StatusCreated, w.Code)
	post := suite.decode(w)["post"].(map[string]interface{})
	assert.Equal(t, parent.ID, post["parent_id"])

	var dbParent models.Post
	require.NoError(t, suite.db.First(&dbParent, "id = ?", parent.ID).Error)
	assert.Equal(t, 1, dbParent.ReplyCount)
}

func (suite *HandlersTestSuite) TestCreateReplyMissingParent() {
	t := suite.T()

	body := map[string]interface{}{
		"text_content": "a reply",
		"parent_id":    "00000000-0000-0000-0000-000000000000",
	}
	w := suite.request("POST", "/api/v1/posts", body, suite.testUser.ID)

	assert.Equal(t, http.StatusNotFound, w.Code)
	response := suite.decode(w)
	assert.Equal(t, "Parent post not found", response["message"])
}

// =============================================================================
// POST READ TESTS
// =============================================================================

func (suite *HandlersTestSuite) TestGetPost() {
	t := suite.T()

	alice := suite.createUser("alice")
	post := suite.createPost(alice.ID, "alice's post")

	w := suite.request("GET", "/api/v1/posts/"+post.ID, nil, suite.testUser.ID)

	assert.Equal(t, http.StatusOK, w.Code)
	resp := suite.decode(w)["post"].(map[string]interface{})
	assert.Equal(t, post.ID, resp["id"])
	assert.Equal(t, "alice's post", resp["text_content"])
	assert.Equal(t, false, resp["liked"])
	assert.Equal(t, false, resp["shared"])
}

func (suite *HandlersTestSuite) TestGetPostLikedFlag() {
	t := suite.T()

	alice := suite.createUser("alice")
	post := suite.createPost(alice.ID, "alice's post")

	w := suite.request("POST", "/api/v1/posts/"+post.ID+"/like", nil, suite.testUser.ID)
	require.Equal(t, http.StatusCreated, w.Code)

	w = suite.request("GET", "/api/v1/posts/"+post.ID, nil, suite.testUser.ID)

	assert.Equal(t, http.StatusOK, w.Code)
	resp := suite.decode(w)["post"].(map[string]interface{})
	assert.Equal(t, true, resp["liked"])
	assert.Equal(t, false, resp["shared"])
	assert.Equal(t, float64(1), resp["like_count"])
}

func (suite *HandlersTestSuite) TestGetPostNotFound() {
	t := suite.T()

	w := suite.request("GET", "/api/v1/posts/00000000-0000-0000-0000-000000000000", nil, suite.testUser.ID)

	assert.Equal(t, http.StatusNotFound, w.Code)
	response := suite.decode(w)
	assert.Equal(t, "Post not found", response["message"])
}

func (suite *HandlersTestSuite) TestGetUserPostsNewestFirst() {
	t := suite.T()

	alice := suite.createUser("alice")
	older := suite.createPost(alice.ID, "older")
	require.NoError(t, suite.db.Model(older).UpdateColumn("created_at", time.Now().Add(-time.Hour)).Error)
	newer := suite.createPost(alice.ID, "newer")

	w := suite.request("GET", "/api/v1/users/alice/posts", nil, suite.testUser.ID)

	assert.Equal(t, http.StatusOK, w.Code)
	posts := suite.decode(w)["posts"].([]interface{})
	require.Len(t, posts, 2)
	assert.Equal(t, newer.ID, posts[0].(map[string]interface{})["id"])
	assert.Equal(t, older.ID, posts[1].(map[string]interface{})["id"])
}

func (suite *HandlersTestSuite) TestGetReplies() {
	t := suite.T()

	parent := suite.createPost(suite.testUser.ID, "parent")

	first := &models.Post{UserID: suite.testUser.ID, TextContent: "first reply", ParentID: &parent.ID}
	require.NoError(t, suite.db.Create(first).Error)
	require.NoError(t, suite.db.Model(first).UpdateColumn("created_at", time.Now().Add(-time.Minute)).Error)
	second := &models.Post{UserID: suite.testUser.ID, TextContent: "second reply", ParentID: &parent.ID}
	require.NoError(t, suite.db.Create(second).Error)

	w := suite.request("GET", "/api/v1/posts/"+parent.ID+"/replies", nil, suite.testUser.ID)

	assert.Equal(t, http.StatusOK, w.Code)
	replies := suite.decode(w)["replies"].([]interface{})
	require.Len(t, replies, 2)

	// Replies read oldest first, like a thread
	assert.Equal(t, "first reply", replies[0].(map[string]interface{})["text_content"])
	assert.Equal(t, "second reply", replies[1].(map[string]interface{})["text_content"])
}

func (suite *HandlersTestSuite) TestGetRepliesUnknownPost() {
	t := suite.T()

	w := suite.request("GET", "/api/v1/posts/00000000-0000-0000-0000-000000000000/replies", nil, suite.testUser.ID)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

// =============================================================================
// POST DELETION TESTS
// =============================================================================

func (suite *HandlersTestSuite) TestDeletePost() {
	t := suite.T()

	post := suite.createPost(suite.testUser.ID, "short-lived")

	w := suite.request("DELETE", "/api/v1/posts/"+post.ID, nil, suite.testUser.ID)

	assert.Equal(t, http.StatusOK, w.Code)
	response := suite.decode(w)
	assert.Equal(t, "Post deleted", response["message"])

	w = suite.request("GET", "/api/v1/posts/"+post.ID, nil, suite.testUser.ID)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func (suite *HandlersTestSuite) TestDeletePostNotOwner() {
	t := suite.T()

	alice := suite.createUser("alice")
	post := suite.createPost(alice.ID, "alice's post")

	w := suite.request("DELETE", "/api/v1/posts/"+post.ID, nil, suite.testUser.ID)

	assert.Equal(t, http.StatusForbidden, w.Code)
	response := suite.decode(w)
	assert.Equal(t, "You can only delete your own posts", response["message"])

	// The post survives
	var count int64
	suite.db.Model(&models.Post{}).Where("id = ?", post.ID).Count(&count)
	assert.Equal(t, int64(1), count)
}

func (suite *HandlersTestSuite) TestDeletePostCascadesToReplies() {
	t := suite.T()

	alice := suite.createUser("alice")
	parent := suite.createPost(suite.testUser.ID, "parent")

	reply := &models.Post{UserID: alice.ID, TextContent: "a reply", ParentID: &parent.ID}
	require.NoError(t, suite.db.Create(reply).Error)

	w := suite.request("POST", "/api/v1/posts/"+parent.ID+"/like", nil, alice.ID)
	require.Equal(t, http.StatusCreated, w.Code)

	w = suite.request("DELETE", "/api/v1/posts/"+parent.ID, nil, suite.testUser.ID)
	assert.Equal(t, http.StatusOK, w.Code)

	var postCount, likeCount int64
	suite.db.Model(&models.Post{}).Count(&postCount)
	suite.db.Model(&models.PostLike{}).Count(&likeCount)
	assert.Zero(t, postCount)
	assert.Zero(t, likeCount)
}

// =============================================================================
// LIKE AND SHARE TESTS
// =============================================================================

func (suite *HandlersTestSuite) TestLikeLifecycle() {
	t := suite.T()

	alice := suite.createUser("alice")
	post := suite.createPost(alice.ID, "likeable")

	w := suite.request("POST", "/api/v1/posts/"+post.ID+"/like", nil, suite.testUser.ID)
	assert.Equal(t, http.StatusCreated, w.Code)

	w = suite.request("POST", "/api/v1/posts/"+post.ID+"/like", nil, suite.testUser.ID)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "You already liked this post", suite.decode(w)["message"])

	w = suite.request("DELETE", "/api/v1/posts/"+post.ID+"/like", nil, suite.testUser.ID)
	assert.Equal(t, http.StatusOK, w.Code)

	w = suite.request("DELETE", "/api/v1/posts/"+post.ID+"/like", nil, suite.testUser.ID)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Like not found", suite.decode(w)["message"])

	var dbPost models.Post
	require.NoError(t, suite.db.First(&dbPost, "id = ?", post.ID).Error)
	assert.Equal(t, 0, dbPost.LikeCount)
}

func (suite *HandlersTestSuite) TestShareLifecycle() {
	t := suite.T()

	alice := suite.createUser("alice")
	post := suite.createPost(alice.ID, "shareable")

	w := suite.request("POST", "/api/v1/posts/"+post.ID+"/share", nil, suite.testUser.ID)
	assert.Equal(t, http.StatusCreated, w.Code)

	w = suite.request("POST", "/api/v1/posts/"+post.ID+"/share", nil, suite.testUser.ID)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "You already shared this post", suite.decode(w)["message"])

	w = suite.request("DELETE", "/api/v1/posts/"+post.ID+"/share", nil, suite.testUser.ID)
	assert.Equal(t, http.StatusOK, w.Code)

	w = suite.request("DELETE", "/api/v1/posts/"+post.ID+"/share", nil, suite.testUser.ID)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Share not found", suite.decode(w)["message"])
}

func (suite *HandlersTestSuite) TestLikeUnknownPost() {
	t := suite.T()

	w := suite.request("POST", "/api/v1/posts/00000000-0000-0000-0000-000000000000/like", nil, suite.testUser.ID)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Post not found", suite.decode(w)["message"])
}

func (suite *HandlersTestSuite) TestLikeOwnPost() {
	t := suite.T()

	post := suite.createPost(suite.testUser.ID, "my own post")

	w := suite.request("POST", "/api/v1/posts/"+post.ID+"/like", nil, suite.testUser.ID)

	assert.Equal(t, http.StatusCreated, w.Code)
}
