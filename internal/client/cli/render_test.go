package cli

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/gaulatti/cirrus/internal/client/feed"
	"github.com/gaulatti/cirrus/internal/client/models"
)

func samplePost() *models.Post {
	return &models.Post{
		URI:    "at://did:plc:abc/app.bsky.feed.post/3xyz",
		CID:    "bafyreia",
		Author: models.Actor{DID: "did:plc:abc", Handle: "alice.bsky.social", DisplayName: "Alice"},
		Record: models.PostRecord{
			Type:      "app.bsky.feed.post",
			CreatedAt: time.Date(2025, 2, 22, 10, 15, 30, 0, time.UTC),
			Text:      "hello from the terminal",
		},
	}
}

func TestRenderItem_Post(t *testing.T) {
	out := RenderItem(feed.Item{ID: "bafyreia", FeedItem: models.FeedItem{Post: samplePost()}})

	assert.Contains(t, out, "Alice")
	assert.Contains(t, out, "@alice.bsky.social")
	assert.Contains(t, out, "hello from the terminal")
	assert.Contains(t, out, "https://bsky.app/profile/did:plc:abc/post/3xyz")
}

func TestRenderItem_Repost(t *testing.T) {
	item := feed.Item{
		ID: "bafyreia",
		FeedItem: models.FeedItem{
			Post:   samplePost(),
			Reason: &models.Reason{By: models.Actor{Handle: "bob.bsky.social"}},
		},
	}

	out := RenderItem(item)
	assert.Contains(t, out, "reposted by bob.bsky.social")
	assert.Contains(t, out, "hello from the terminal")
}

func TestRenderItem_ReplyContext(t *testing.T) {
	item := feed.Item{
		ID: "bafyreia",
		FeedItem: models.FeedItem{
			Post:  samplePost(),
			Reply: &models.Reply{GrandparentAuthor: &models.Actor{DisplayName: "Carol"}},
		},
	}

	out := RenderItem(item)
	assert.Contains(t, out, "in reply to Carol")
}

func TestRenderItem_ContextOnly(t *testing.T) {
	out := RenderItem(feed.Item{ID: "gen-1", FeedItem: models.FeedItem{FeedContext: "discover"}})
	assert.Contains(t, out, "discover")
}

func TestRenderTimeline_Empty(t *testing.T) {
	out := RenderTimeline(nil)
	assert.Contains(t, out, "timeline is empty")
}

func TestRenderTimeline_MultipleItems(t *testing.T) {
	items := []feed.Item{
		{ID: "a", FeedItem: models.FeedItem{Post: samplePost()}},
		{ID: "b", FeedItem: models.FeedItem{FeedContext: "discover"}},
	}

	out := RenderTimeline(items)
	assert.Contains(t, out, "hello from the terminal")
	assert.Contains(t, out, "discover")
}
