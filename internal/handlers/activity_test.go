package handlers

import (
	"net/http"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flocknet/flock/internal/cache"
	"github.com/flocknet/flock/internal/dto"
	"github.com/flocknet/flock/internal/models"
)

// =============================================================================
// USER ACTIVITY TESTS
// =============================================================================

func (suite *HandlersTestSuite) TestGetUserActivity() {
	t := suite.T()

	alice := suite.createUser("alice")
	bob := suite.createUser("bob")

	post := suite.createPost(bob.ID, "bob's post")
	require.NoError(t, suite.db.Model(post).UpdateColumn("created_at", time.Now().Add(-time.Hour)).Error)
	suite.createPost(alice.ID, "alice's post")

	w := suite.request("POST", "/api/v1/posts/"+post.ID+"/like", nil, alice.ID)
	require.Equal(t, http.StatusCreated, w.Code)

	w = suite.request("GET", "/api/v1/users/alice/activity", nil, suite.testUser.ID)

	assert.Equal(t, http.StatusOK, w.Code)
	entries := suite.decode(w)["activity"].([]interface{})
	require.Len(t, entries, 2)

	// Newest first: the like landed after the post
	first := entries[0].(map[string]interface{})
	assert.Equal(t, dto.ActivityLiked, first["kind"])
	assert.Equal(t, alice.ID, first["actor_id"])
	likedPost := first["post"].(map[string]interface{})
	assert.Equal(t, post.ID, likedPost["id"])

	second := entries[1].(map[string]interface{})
	assert.Equal(t, dto.ActivityPosted, second["kind"])
}

func (suite *HandlersTestSuite) TestGetUserActivityUnknownUser() {
	t := suite.T()

	w := suite.request("GET", "/api/v1/users/ghost/activity", nil, suite.testUser.ID)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

// =============================================================================
// FEED TESTS
// =============================================================================

func (suite *HandlersTestSuite) TestGetFeed() {
	t := suite.T()

	alice := suite.createUser("alice")
	bob := suite.createUser("bob")
	carol := suite.createUser("carol")

	require.NoError(t, suite.db.Create(&models.Follow{FollowerID: suite.testUser.ID, FollowedID: alice.ID}).Error)
	require.NoError(t, suite.db.Create(&models.Follow{FollowerID: suite.testUser.ID, FollowedID: bob.ID}).Error)

	suite.createPost(alice.ID, "from alice")
	suite.createPost(bob.ID, "from bob")
	suite.createPost(carol.ID, "from carol, not followed")

	w := suite.request("GET", "/api/v1/feed", nil, suite.testUser.ID)

	assert.Equal(t, http.StatusOK, w.Code)
	feed := suite.decode(w)["feed"].([]interface{})
	require.Len(t, feed, 2)

	for _, entry := range feed {
		e := entry.(map[string]interface{})
		assert.Equal(t, dto.ActivityPosted, e["kind"])
		actor := e["actor"].(map[string]interface{})
		assert.Contains(t, []string{"alice", "bob"}, actor["username"])
	}
}

func (suite *HandlersTestSuite) TestGetFeedEmptyWhenFollowingNobody() {
	t := suite.T()

	alice := suite.createUser("alice")
	suite.createPost(alice.ID, "invisible to the caller")

	w := suite.request("GET", "/api/v1/feed", nil, suite.testUser.ID)

	assert.Equal(t, http.StatusOK, w.Code)
	feed := suite.decode(w)["feed"].([]interface{})
	assert.Empty(t, feed)
}

func (suite *HandlersTestSuite) TestGetFeedExcludesOwnActivityWithoutSelfFollow() {
	t := suite.T()

	suite.createPost(suite.testUser.ID, "my own post")

	w := suite.request("GET", "/api/v1/feed", nil, suite.testUser.ID)

	assert.Equal(t, http.StatusOK, w.Code)
	feed := suite.decode(w)["feed"].([]interface{})
	assert.Empty(t, feed)
}

func (suite *HandlersTestSuite) TestGetFeedIncludesOwnActivityAfterSelfFollow() {
	t := suite.T()

	suite.createPost(suite.testUser.ID, "my own post")
	require.NoError(t, suite.db.Create(&models.Follow{
		FollowerID: suite.testUser.ID,
		FollowedID: suite.testUser.ID,
	}).Error)

	w := suite.request("GET", "/api/v1/feed", nil, suite.testUser.ID)

	assert.Equal(t, http.StatusOK, w.Code)
	feed := suite.decode(w)["feed"].([]interface{})
	require.Len(t, feed, 1)
}

func (suite *HandlersTestSuite) TestGetFeedServedFromCache() {
	t := suite.T()

	mr := miniredis.RunT(t)
	cache.NewRedisClientFromRedis(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	defer cache.ResetRedisClient()

	alice := suite.createUser("alice")
	require.NoError(t, suite.db.Create(&models.Follow{FollowerID: suite.testUser.ID, FollowedID: alice.ID}).Error)
	suite.createPost(alice.ID, "cached soon")

	w := suite.request("GET", "/api/v1/feed", nil, suite.testUser.ID)
	require.Equal(t, http.StatusOK, w.Code)
	firstBody := w.Body.String()

	// The generated response is now cached under the caller's key
	cached, err := mr.Get("feed:" + suite.testUser.ID)
	require.NoError(t, err)
	assert.JSONEq(t, firstBody, cached)

	// New activity is invisible until the entry expires
	suite.createPost(alice.ID, "after caching")

	w = suite.request("GET", "/api/v1/feed", nil, suite.testUser.ID)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, firstBody, w.Body.String())

	// After expiry the feed regenerates with the new post
	mr.FastForward(2 * time.Minute)

	w = suite.request("GET", "/api/v1/feed", nil, suite.testUser.ID)
	assert.Equal(t, http.StatusOK, w.Code)
	feed := suite.decode(w)["feed"].([]interface{})
	assert.Len(t, feed, 2)
}

// =============================================================================
// NOTIFICATION TESTS
// =============================================================================

func (suite *HandlersTestSuite) TestGetNotifications() {
	t := suite.T()

	alice := suite.createUser("alice")
	post := suite.createPost(suite.testUser.ID, "notify me")
	require.NoError(t, suite.db.Model(post).UpdateColumn("created_at", time.Now().Add(-time.Hour)).Error)

	w := suite.request("POST", "/api/v1/posts/"+post.ID+"/like", nil, alice.ID)
	require.Equal(t, http.StatusCreated, w.Code)

	body := map[string]interface{}{
		"text_content": "a reply from alice",
		"parent_id":    post.ID,
	}
	w = suite.request("POST", "/api/v1/posts", body, alice.ID)
	require.Equal(t, http.StatusCreated, w.Code)

	w = suite.request("GET", "/api/v1/notifications", nil, suite.testUser.ID)

	assert.Equal(t, http.StatusOK, w.Code)
	entries := suite.decode(w)["notifications"].([]interface{})
	require.Len(t, entries, 2)

	first := entries[0].(map[string]interface{})
	assert.Equal(t, dto.NotificationReply, first["kind"])
	assert.Equal(t, "a reply from alice", first["content"])
	assert.Equal(t, post.ID, first["post_id"])

	second := entries[1].(map[string]interface{})
	assert.Equal(t, dto.NotificationLike, second["kind"])
	_, hasContent := second["content"]
	assert.False(t, hasContent)
}

func (suite *HandlersTestSuite) TestGetNotificationsExcludesOwnInteractions() {
	t := suite.T()

	post := suite.createPost(suite.testUser.ID, "self-interaction")

	w := suite.request("POST", "/api/v1/posts/"+post.ID+"/like", nil, suite.testUser.ID)
	require.Equal(t, http.StatusCreated, w.Code)

	w = suite.request("GET", "/api/v1/notifications", nil, suite.testUser.ID)

	assert.Equal(t, http.StatusOK, w.Code)
	entries := suite.decode(w)["notifications"].([]interface{})
	assert.Empty(t, entries)
}

func (suite *HandlersTestSuite) TestGetNotificationsEmpty() {
	t := suite.T()

	w := suite.request("GET", "/api/v1/notifications", nil, suite.testUser.ID)

	assert.Equal(t, http.StatusOK, w.Code)
	entries := suite.decode(w)["notifications"].([]interface{})
	assert.NotNil(t, entries)
	assert.Empty(t, entries)
}
