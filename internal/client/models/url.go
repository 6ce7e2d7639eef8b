package models

import "strings"

// PostWebURL converts a post's at:// URI into its public web permalink,
// e.g. at://did:plc:abc/app.bsky.feed.post/3xyz ->
// https://bsky.app/profile/did:plc:abc/post/3xyz.
// Returns "" when the URI is not a post URI.
func PostWebURL(uri string) string {
	rest, ok := strings.CutPrefix(uri, "at://")
	if !ok {
		return ""
	}
	parts := strings.Split(rest, "/")
	if len(parts) != 3 || parts[1] != "app.bsky.feed.post" {
		return ""
	}
	did, rkey := parts[0], parts[2]
	if did == "" || rkey == "" {
		return ""
	}
	return "https://bsky.app/profile/" + did + "/post/" + rkey
}
