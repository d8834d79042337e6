package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Inspect and update profiles",
}

var getProfileCmd = &cobra.Command{
	Use:   "get <username>",
	Short: "Show a user's profile",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		body, err := apiRequest("GET", "/api/v1/users/"+args[0], nil)
		if err != nil {
			return err
		}

		if output == "json" {
			fmt.Println(string(body))
			return nil
		}

		var result struct {
			User struct {
				Username       string `json:"username"`
				Nickname       string `json:"nickname"`
				Bio            string `json:"bio"`
				FollowerCount  int64  `json:"follower_count"`
				FollowingCount int64  `json:"following_count"`
			} `json:"user"`
			PostCount int64 `json:"post_count"`
		}
		if err := json.Unmarshal(body, &result); err != nil {
			return fmt.Errorf("failed to parse response: %w", err)
		}

		fmt.Printf("%s (@%s)\n", result.User.Nickname, result.User.Username)
		if result.User.Bio != "" {
			fmt.Println(result.User.Bio)
		}
		fmt.Printf("followers: %d  following: %d  posts: %d\n",
			result.User.FollowerCount, result.User.FollowingCount, result.PostCount)
		return nil
	},
}

var (
	updateNickname string
	updateBio      string
)

var updateProfileCmd = &cobra.Command{
	Use:   "update",
	Short: "Update your own profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		payload := map[string]interface{}{}
		if cmd.Flags().Changed("nickname") {
			payload["nickname"] = updateNickname
		}
		if cmd.Flags().Changed("bio") {
			payload["bio"] = updateBio
		}
		if len(payload) == 0 {
			return fmt.Errorf("nothing to update, pass --nickname or --bio")
		}

		body, err := apiRequest("PUT", "/api/v1/users", payload)
		if err != nil {
			return err
		}

		if output == "json" {
			fmt.Println(string(body))
		} else {
			fmt.Println("profile updated")
		}
		return nil
	},
}

func init() {
	updateProfileCmd.Flags().StringVar(&updateNickname, "nickname", "", "New nickname")
	updateProfileCmd.Flags().StringVar(&updateBio, "bio", "", "New bio")

	profileCmd.AddCommand(getProfileCmd)
	profileCmd.AddCommand(updateProfileCmd)
}
