package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"instakit/pkg/instagram"
)

var queryCount int

var userCmd = &cobra.Command{
	Use:   "user [id]",
	Short: "Show a user profile (your own when no ID is given)",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		client, _, err := newClient()
		if err != nil {
			fail(err)
		}
		ctx := context.Background()
		if len(args) == 0 {
			user, err := client.Me(ctx)
			if err != nil {
				fail(err)
			}
			_ = printJSON(user)
			return
		}
		user, err := client.User(ctx, args[0])
		if err != nil {
			fail(err)
		}
		_ = printJSON(user)
	},
}

var mediaCmd = &cobra.Command{
	Use:   "media <id>",
	Short: "Show a media item",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		client, _, err := newClient()
		if err != nil {
			fail(err)
		}
		media, err := client.Media(context.Background(), args[0])
		if err != nil {
			fail(err)
		}
		_ = printJSON(media)
	},
}

var recentCmd = &cobra.Command{
	Use:   "recent [user-id]",
	Short: "List recent media (your own when no user ID is given)",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		client, _, err := newClient()
		if err != nil {
			fail(err)
		}
		ctx := context.Background()
		opts := &instagram.RequestOptions{Count: queryCount}
		var items interface{}
		if len(args) == 0 {
			items, err = client.MyRecentMedia(ctx, opts)
		} else {
			items, err = client.UserRecentMedia(ctx, args[0], opts)
		}
		if err != nil {
			fail(err)
		}
		_ = printJSON(items)
	},
}

var commentsCmd = &cobra.Command{
	Use:   "comments <media-id>",
	Short: "List the comments on a media item",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		client, _, err := newClient()
		if err != nil {
			fail(err)
		}
		comments, err := client.Comments(context.Background(), args[0])
		if err != nil {
			fail(err)
		}
		_ = printJSON(comments)
	},
}

var searchCmd = &cobra.Command{
	Use:   "search <users|tags> <query>",
	Short: "Search users or hashtags",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		client, _, err := newClient()
		if err != nil {
			fail(err)
		}
		ctx := context.Background()
		opts := &instagram.RequestOptions{Count: queryCount}
		switch args[0] {
		case "users":
			users, err := client.SearchUsers(ctx, args[1], opts)
			if err != nil {
				fail(err)
			}
			_ = printJSON(users)
		case "tags":
			tags, err := client.SearchTags(ctx, args[1], opts)
			if err != nil {
				fail(err)
			}
			_ = printJSON(tags)
		default:
			fail(fmt.Errorf("unknown search kind %q, want users or tags", args[0]))
		}
	},
}

var nearCmd = &cobra.Command{
	Use:   "near <lat> <lng> [distance-meters]",
	Short: "List media taken near a coordinate",
	Args:  cobra.RangeArgs(2, 3),
	Run: func(cmd *cobra.Command, args []string) {
		client, _, err := newClient()
		if err != nil {
			fail(err)
		}
		lat, err := strconv.ParseFloat(args[0], 64)
		if err != nil {
			fail(fmt.Errorf("bad latitude: %w", err))
		}
		lng, err := strconv.ParseFloat(args[1], 64)
		if err != nil {
			fail(fmt.Errorf("bad longitude: %w", err))
		}
		var distance float64
		if len(args) == 3 {
			distance, err = strconv.ParseFloat(args[2], 64)
			if err != nil {
				fail(fmt.Errorf("bad distance: %w", err))
			}
		}
		media, err := client.SearchMedia(context.Background(), lat, lng, distance)
		if err != nil {
			fail(err)
		}
		_ = printJSON(media)
	},
}

var embedCmd = &cobra.Command{
	Use:   "embed <media-url>",
	Short: "Show oEmbed markup for a media page URL",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		client, _, err := newClient()
		if err != nil {
			fail(err)
		}
		embed, err := client.OEmbed(context.Background(), args[0])
		if err != nil {
			fail(err)
		}
		_ = printJSON(embed)
	},
}

func init() {
	recentCmd.Flags().IntVar(&queryCount, "count", 0, "maximum number of items to return")
	searchCmd.Flags().IntVar(&queryCount, "count", 0, "maximum number of items to return")

	rootCmd.AddCommand(userCmd)
	rootCmd.AddCommand(mediaCmd)
	rootCmd.AddCommand(recentCmd)
	rootCmd.AddCommand(commentsCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(nearCmd)
	rootCmd.AddCommand(embedCmd)
}
