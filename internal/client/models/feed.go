// Package models defines the wire shapes of the Bluesky timeline API,
// limited to the fields the client depends on.
package models

import "time"

// Actor is the author of a post or of a repost.
type Actor struct {
	DID         string     `json:"did"`
	Handle      string     `json:"handle"`
	DisplayName string     `json:"displayName,omitempty"`
	Avatar      string     `json:"avatar,omitempty"`
	CreatedAt   *time.Time `json:"createdAt,omitempty"`
}

// Name returns the actor's display name, falling back to the handle.
func (a Actor) Name() string {
	if a.DisplayName != "" {
		return a.DisplayName
	}
	return a.Handle
}

// PostRecord is the authored content of a post.
type PostRecord struct {
	Type      string    `json:"$type"`
	CreatedAt time.Time `json:"createdAt"`
	Text      string    `json:"text,omitempty"`
}

// Post is a single post as returned inside a feed item.
type Post struct {
	URI         string     `json:"uri"`
	CID         string     `json:"cid"`
	Author      Actor      `json:"author"`
	Record      PostRecord `json:"record"`
	ReplyCount  int        `json:"replyCount,omitempty"`
	RepostCount int        `json:"repostCount,omitempty"`
	LikeCount   int        `json:"likeCount,omitempty"`
	QuoteCount  int        `json:"quoteCount,omitempty"`
	IndexedAt   *time.Time `json:"indexedAt,omitempty"`
}

// Reason explains why an item appears in the feed, e.g. a repost.
type Reason struct {
	By        Actor      `json:"by"`
	CreatedAt *time.Time `json:"createdAt,omitempty"`
}

// Reply carries reply context for an item that is a reply.
type Reply struct {
	GrandparentAuthor *Actor `json:"grandparentAuthor,omitempty"`
}

// FeedItem is one entry of the timeline. Any of its references may be
// absent; an item can be a bare post, a repost, a reply, or carry only
// a feed context string.
type FeedItem struct {
	Post        *Post   `json:"post,omitempty"`
	Reply       *Reply  `json:"reply,omitempty"`
	Reason      *Reason `json:"reason,omitempty"`
	FeedContext string  `json:"feedContext,omitempty"`
}

// Key derives the item's deduplication identity: the post's content
// identifier when a post is present, otherwise the reposting actor's DID.
// ok is false when neither is available and the caller must assign a
// generated identity instead.
func (i FeedItem) Key() (string, bool) {
	if i.Post != nil && i.Post.CID != "" {
		return i.Post.CID, true
	}
	if i.Reason != nil && i.Reason.By.DID != "" {
		return i.Reason.By.DID, true
	}
	return "", false
}
