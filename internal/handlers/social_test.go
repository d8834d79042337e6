package handlers

import (
	"net/http"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flocknet/flock/internal/models"
)

// =============================================================================
// FOLLOW TESTS
// =============================================================================

func (suite *HandlersTestSuite) TestFollow() {
	t := suite.T()

	suite.createUser("alice")

	w := suite.request("POST", "/api/v1/users/alice/follow", nil, suite.testUser.ID)

	assert.Equal(t, http.StatusCreated, w.Code)
	response := suite.decode(w)
	assert.Equal(t, "Now following alice", response["message"])

	var count int64
	suite.db.Model(&models.Follow{}).Where("follower_id = ?", suite.testUser.ID).Count(&count)
	assert.Equal(t, int64(1), count)
}

func (suite *HandlersTestSuite) TestFollowTwice() {
	t := suite.T()

	suite.createUser("alice")

	w := suite.request("POST", "/api/v1/users/alice/follow", nil, suite.testUser.ID)
	require.Equal(t, http.StatusCreated, w.Code)

	w = suite.request("POST", "/api/v1/users/alice/follow", nil, suite.testUser.ID)

	assert.Equal(t, http.StatusConflict, w.Code)
	response := suite.decode(w)
	assert.Equal(t, "Already following this user", response["message"])
}

func (suite *HandlersTestSuite) TestFollowUnknownUser() {
	t := suite.T()

	w := suite.request("POST", "/api/v1/users/ghost/follow", nil, suite.testUser.ID)

	assert.Equal(t, http.StatusNotFound, w.Code)
	response := suite.decode(w)
	assert.Equal(t, "User 'ghost' not found", response["message"])
}

func (suite *HandlersTestSuite) TestSelfFollow() {
	t := suite.T()

	w := suite.request("POST", "/api/v1/users/"+suite.testUser.Username+"/follow", nil, suite.testUser.ID)

	assert.Equal(t, http.StatusCreated, w.Code)

	// A self-follow puts the user's own posts in their feed.
	var count int64
	suite.db.Model(&models.Follow{}).
		Where("follower_id = ? AND followed_id = ?", suite.testUser.ID, suite.testUser.ID).
		Count(&count)
	assert.Equal(t, int64(1), count)
}

// =============================================================================
// UNFOLLOW TESTS
// =============================================================================

func (suite *HandlersTestSuite) TestUnfollow() {
	t := suite.T()

	suite.createUser("alice")
	w := suite.request("POST", "/api/v1/users/alice/follow", nil, suite.testUser.ID)
	require.Equal(t, http.StatusCreated, w.Code)

	w = suite.request("DELETE", "/api/v1/users/alice/follow", nil, suite.testUser.ID)

	assert.Equal(t, http.StatusOK, w.Code)
	response := suite.decode(w)
	assert.Equal(t, "Unfollowed alice", response["message"])

	var count int64
	suite.db.Model(&models.Follow{}).Where("follower_id = ?", suite.testUser.ID).Count(&count)
	assert.Zero(t, count)
}

func (suite *HandlersTestSuite) TestUnfollowNotFollowing() {
	t := suite.T()

	suite.createUser("alice")

	w := suite.request("DELETE", "/api/v1/users/alice/follow", nil, suite.testUser.ID)

	assert.Equal(t, http.StatusNotFound, w.Code)
	response := suite.decode(w)
	assert.Equal(t, "You are not following this user", response["message"])
}

func (suite *HandlersTestSuite) TestUnfollowUnknownUser() {
	t := suite.T()

	w := suite.request("DELETE", "/api/v1/users/ghost/follow", nil, suite.testUser.ID)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

// =============================================================================
// FOLLOW LIST TESTS
// =============================================================================

func (suite *HandlersTestSuite) TestGetFollows() {
	t := suite.T()

	alice := suite.createUser("alice")
	bob := suite.createUser("bob")
	carol := suite.createUser("carol")

	// bob and carol follow alice; alice follows carol
	require.NoError(t, suite.db.Create(&models.Follow{FollowerID: bob.ID, FollowedID: alice.ID}).Error)
	require.NoError(t, suite.db.Create(&models.Follow{FollowerID: carol.ID, FollowedID: alice.ID}).Error)
	require.NoError(t, suite.db.Create(&models.Follow{FollowerID: alice.ID, FollowedID: carol.ID}).Error)

	w := suite.request("GET", "/api/v1/users/alice/follow", nil, suite.testUser.ID)

	assert.Equal(t, http.StatusOK, w.Code)
	response := suite.decode(w)

	followers := response["followers"].([]interface{})
	require.Len(t, followers, 2)
	followerNames := []string{
		followers[0].(map[string]interface{})["username"].(string),
		followers[1].(map[string]interface{})["username"].(string),
	}
	assert.ElementsMatch(t, []string{"bob", "carol"}, followerNames)

	following := response["following"].([]interface{})
	require.Len(t, following, 1)
	assert.Equal(t, "carol", following[0].(map[string]interface{})["username"])
}

func (suite *HandlersTestSuite) TestGetFollowsEmpty() {
	t := suite.T()

	suite.createUser("alice")

	w := suite.request("GET", "/api/v1/users/alice/follow", nil, suite.testUser.ID)

	assert.Equal(t, http.StatusOK, w.Code)
	response := suite.decode(w)
	assert.Empty(t, response["followers"])
	assert.Empty(t, response["following"])
}
