package handlers

import (
	"net/http"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/flocknet/flock/internal/models"
)

// =============================================================================
// USER LISTING AND PROFILE TESTS
// =============================================================================

func (suite *HandlersTestSuite) TestListUsersExcludesCaller() {
	t := suite.T()

	suite.createUser("alice")
	suite.createUser("bob")

	w := suite.request("GET", "/api/v1/users", nil, suite.testUser.ID)

	assert.Equal(t, http.StatusOK, w.Code)
	response := suite.decode(w)

	users := response["users"].([]interface{})
	assert.Len(t, users, 2)
	for _, u := range users {
		assert.NotEqual(t, suite.testUser.Username, u.(map[string]interface{})["username"])
	}
}

func (suite *HandlersTestSuite) TestGetUserProfile() {
	t := suite.T()

	alice := suite.createUser("alice")
	bob := suite.createUser("bob")
	suite.createPost(alice.ID, "first")
	suite.createPost(alice.ID, "second")
	require.NoError(t, suite.db.Create(&models.Follow{FollowerID: bob.ID, FollowedID: alice.ID}).Error)
	require.NoError(t, suite.db.Create(&models.Follow{FollowerID: alice.ID, FollowedID: bob.ID}).Error)

	w := suite.request("GET", "/api/v1/users/alice", nil, suite.testUser.ID)

	assert.Equal(t, http.StatusOK, w.Code)
	response := suite.decode(w)

	assert.Equal(t, float64(2), response["post_count"])

	user := response["user"].(map[string]interface{})
	assert.Equal(t, "alice", user["username"])
	assert.Equal(t, float64(1), user["follower_count"])
	assert.Equal(t, float64(1), user["following_count"])

	// Viewing someone else: is_following is present
	assert.Equal(t, false, user["is_following"])

	// Email is not exposed on other people's profiles
	_, hasEmail := user["email"]
	assert.False(t, hasEmail)
}

func (suite *HandlersTestSuite) TestGetUserProfileIsFollowingTrue() {
	t := suite.T()

	alice := suite.createUser("alice")
	require.NoError(t, suite.db.Create(&models.Follow{FollowerID: suite.testUser.ID, FollowedID: alice.ID}).Error)

	w := suite.request("GET", "/api/v1/users/alice", nil, suite.testUser.ID)

	assert.Equal(t, http.StatusOK, w.Code)
	user := suite.decode(w)["user"].(map[string]interface{})
	assert.Equal(t, true, user["is_following"])
}

func (suite *HandlersTestSuite) TestGetOwnProfileOmitsIsFollowing() {
	t := suite.T()

	w := suite.request("GET", "/api/v1/users/"+suite.testUser.Username, nil, suite.testUser.ID)

	assert.Equal(t, http.StatusOK, w.Code)
	user := suite.decode(w)["user"].(map[string]interface{})

	_, hasIsFollowing := user["is_following"]
	assert.False(t, hasIsFollowing)
}

func (suite *HandlersTestSuite) TestGetUserNotFound() {
	t := suite.T()

	w := suite.request("GET", "/api/v1/users/ghost", nil, suite.testUser.ID)

	assert.Equal(t, http.StatusNotFound, w.Code)
	response := suite.decode(w)
	assert.Equal(t, "User 'ghost' not found", response["message"])
}

// =============================================================================
// PROFILE UPDATE TESTS
// =============================================================================

func (suite *HandlersTestSuite) TestUpdateUserProfileFields() {
	t := suite.T()

	body := map[string]interface{}{
		"nickname": "New Nick",
		"bio":      "I write tests",
	}
	w := suite.request("PUT", "/api/v1/users", body, suite.testUser.ID)

	assert.Equal(t, http.StatusOK, w.Code)
	user := suite.decode(w)["user"].(map[string]interface{})
	assert.Equal(t, "New Nick", user["nickname"])
	assert.Equal(t, "I write tests", user["bio"])

	var dbUser models.User
	require.NoError(t, suite.db.First(&dbUser, "id = ?", suite.testUser.ID).Error)
	assert.Equal(t, "New Nick", dbUser.Nickname)
	assert.Equal(t, "I write tests", dbUser.Bio)
}

func (suite *HandlersTestSuite) TestUpdateUserPartialLeavesOtherFieldsAlone() {
	t := suite.T()

	body := map[string]interface{}{"bio": "only the bio"}
	w := suite.request("PUT", "/api/v1/users", body, suite.testUser.ID)

	assert.Equal(t, http.StatusOK, w.Code)

	var dbUser models.User
	require.NoError(t, suite.db.First(&dbUser, "id = ?", suite.testUser.ID).Error)
	assert.Equal(t, "only the bio", dbUser.Bio)
	assert.Equal(t, suite.testUser.Nickname, dbUser.Nickname)
	assert.Equal(t, suite.testUser.Email, dbUser.Email)
}

func (suite *HandlersTestSuite) TestUpdateUserEmailConflict() {
	t := suite.T()

	alice := suite.createUser("alice")

	body := map[string]interface{}{"email": alice.Email}
	w := suite.request("PUT", "/api/v1/users", body, suite.testUser.ID)

	assert.Equal(t, http.StatusConflict, w.Code)
	response := suite.decode(w)
	assert.Equal(t, "Email already in use", response["message"])
}

func (suite *HandlersTestSuite) TestUpdatePassword() {
	t := suite.T()

	body := map[string]interface{}{
		"password":         "brandnewpass",
		"current_password": "password123",
	}
	w := suite.request("PUT", "/api/v1/users", body, suite.testUser.ID)

	assert.Equal(t, http.StatusOK, w.Code)

	var dbUser models.User
	require.NoError(t, suite.db.First(&dbUser, "id = ?", suite.testUser.ID).Error)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(dbUser.PasswordHash), []byte("brandnewpass")))
}

func (suite *HandlersTestSuite) TestUpdatePasswordMissingCurrent() {
	t := suite.T()

	body := map[string]interface{}{"password": "brandnewpass"}
	w := suite.request("PUT", "/api/v1/users", body, suite.testUser.ID)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	response := suite.decode(w)
	assert.Equal(t, "current_password", response["field"])
}

func (suite *HandlersTestSuite) TestUpdatePasswordWrongCurrent() {
	t := suite.T()

	body := map[string]interface{}{
		"password":         "brandnewpass",
		"current_password": "notmypassword",
	}
	w := suite.request("PUT", "/api/v1/users", body, suite.testUser.ID)

	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Password stays unchanged
	var dbUser models.User
	require.NoError(t, suite.db.First(&dbUser, "id = ?", suite.testUser.ID).Error)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(dbUser.PasswordHash), []byte("password123")))
}

// =============================================================================
// ACCOUNT DELETION TESTS
// =============================================================================

func (suite *HandlersTestSuite) TestDeleteUser() {
	t := suite.T()

	alice := suite.createUser("alice")
	post := suite.createPost(alice.ID, "soon gone")
	require.NoError(t, suite.db.Create(&models.Follow{FollowerID: alice.ID, FollowedID: suite.testUser.ID}).Error)

	w := suite.request("DELETE", "/api/v1/users", nil, alice.ID)

	assert.Equal(t, http.StatusOK, w.Code)
	response := suite.decode(w)
	assert.Equal(t, "Account deleted", response["message"])

	var userCount, postCount, followCount int64
	suite.db.Model(&models.User{}).Where("id = ?", alice.ID).Count(&userCount)
	suite.db.Model(&models.Post{}).Where("id = ?", post.ID).Count(&postCount)
	suite.db.Model(&models.Follow{}).Where("follower_id = ?", alice.ID).Count(&followCount)
	assert.Zero(t, userCount)
	assert.Zero(t, postCount)
	assert.Zero(t, followCount)
}

func (suite *HandlersTestSuite) TestDeletedUserProfileIsGone() {
	t := suite.T()

	alice := suite.createUser("alice")
	w := suite.request("DELETE", "/api/v1/users", nil, alice.ID)
	require.Equal(t, http.StatusOK, w.Code)

	w = suite.request("GET", "/api/v1/users/alice", nil, suite.testUser.ID)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
