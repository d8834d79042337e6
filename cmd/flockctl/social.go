package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var followCmd = &cobra.Command{
	Use:   "follow <username>",
	Short: "Follow a user",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := apiRequest("POST", "/api/v1/users/"+args[0]+"/follow", nil); err != nil {
			return err
		}
		fmt.Printf("now following %s\n", args[0])
		return nil
	},
}

var unfollowCmd = &cobra.Command{
	Use:   "unfollow <username>",
	Short: "Unfollow a user",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := apiRequest("DELETE", "/api/v1/users/"+args[0]+"/follow", nil); err != nil {
			return err
		}
		fmt.Printf("unfollowed %s\n", args[0])
		return nil
	},
}

var feedCmd = &cobra.Command{
	Use:   "feed",
	Short: "Show your feed",
	RunE: func(cmd *cobra.Command, args []string) error {
		body, err := apiRequest("GET", "/api/v1/feed", nil)
		if err != nil {
			return err
		}

		if output == "json" {
			fmt.Println(string(body))
			return nil
		}

		var result struct {
			Feed []struct {
				Kind  string `json:"kind"`
				Actor struct {
					Username string `json:"username"`
				} `json:"actor"`
				Post struct {
					TextContent string `json:"text_content"`
				} `json:"post"`
				Timestamp string `json:"timestamp"`
			} `json:"feed"`
		}
		if err := json.Unmarshal(body, &result); err != nil {
			return fmt.Errorf("failed to parse response: %w", err)
		}

		for _, entry := range result.Feed {
			fmt.Printf("[%s] @%s %s: %s\n", entry.Timestamp, entry.Actor.Username, entry.Kind, entry.Post.TextContent)
		}
		return nil
	},
}

var notificationsCmd = &cobra.Command{
	Use:   "notifications",
	Short: "Show your notifications",
	RunE: func(cmd *cobra.Command, args []string) error {
		body, err := apiRequest("GET", "/api/v1/notifications", nil)
		if err != nil {
			return err
		}

		if output == "json" {
			fmt.Println(string(body))
			return nil
		}

		var result struct {
			Notifications []struct {
				Kind  string `json:"kind"`
				Actor struct {
					Username string `json:"username"`
				} `json:"actor"`
				Content   string `json:"content"`
				Timestamp string `json:"timestamp"`
			} `json:"notifications"`
		}
		if err := json.Unmarshal(body, &result); err != nil {
			return fmt.Errorf("failed to parse response: %w", err)
		}

		for _, n := range result.Notifications {
			line := fmt.Sprintf("[%s] @%s %s", n.Timestamp, n.Actor.Username, n.Kind)
			if n.Content != "" {
				line += ": " + n.Content
			}
			fmt.Println(line)
		}
		return nil
	},
}
