package cli

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/gaulatti/cirrus/internal/client/feed"
	"github.com/gaulatti/cirrus/internal/client/models"
)

var (
	authorStyle  = lipgloss.NewStyle().Bold(true)
	handleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	contextStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("35"))
	linkStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("33"))
	statusStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

// RenderItem formats one timeline entry as a small multi-line block.
func RenderItem(item feed.Item) string {
	var b strings.Builder

	if item.Reason != nil {
		b.WriteString(contextStyle.Render("↻ reposted by "+item.Reason.By.Name()) + "\n")
	}
	if item.Reply != nil && item.Reply.GrandparentAuthor != nil {
		b.WriteString(contextStyle.Render("↩ in reply to "+item.Reply.GrandparentAuthor.Name()) + "\n")
	}

	if item.Post != nil {
		b.WriteString(renderPost(*item.Post))
	} else if item.FeedContext != "" {
		b.WriteString(contextStyle.Render(item.FeedContext) + "\n")
	}

	return b.String()
}

func renderPost(post models.Post) string {
	var b strings.Builder

	header := authorStyle.Render(post.Author.Name())
	if post.Author.Handle != "" {
		header += " " + handleStyle.Render("@"+post.Author.Handle)
	}
	if !post.Record.CreatedAt.IsZero() {
		header += " " + handleStyle.Render("· "+post.Record.CreatedAt.Local().Format(time.Stamp))
	}
	b.WriteString(header + "\n")

	if post.Record.Text != "" {
		b.WriteString(post.Record.Text + "\n")
	}

	if url := models.PostWebURL(post.URI); url != "" {
		b.WriteString(linkStyle.Render(url) + "\n")
	}

	return b.String()
}

// RenderTimeline formats the full timeline, newest first, with blank
// lines between entries.
func RenderTimeline(items []feed.Item) string {
	if len(items) == 0 {
		return statusStyle.Render("timeline is empty") + "\n"
	}

	blocks := make([]string, 0, len(items))
	for _, item := range items {
		blocks = append(blocks, RenderItem(item))
	}
	return strings.Join(blocks, "\n")
}

// RenderStatus formats a transient status line.
func RenderStatus(msg string) string {
	return statusStyle.Render(msg)
}

// RenderError formats a non-fatal error line.
func RenderError(msg string) string {
	return errorStyle.Render(msg)
}
