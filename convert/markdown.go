package convert

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"xmd/content"
)

// statusTimeLayout is the classic twitter date format the API returns for
// plain statuses, e.g. "Wed Oct 10 20:19:24 +0000 2018".
const statusTimeLayout = "Mon Jan 2 15:04:05 -0700 2006"

// formatNumber renders counters the way the site shows them: 1234 -> 1.2K.
func formatNumber(n int64) string {
	switch {
	case n >= 1_000_000:
		return fmt.Sprintf("%.1fM", float64(n)/1_000_000)
	case n >= 1_000:
		return fmt.Sprintf("%.1fK", float64(n)/1_000)
	default:
		return strconv.FormatInt(n, 10)
	}
}

func formatViews(n *int64) string {
	if n == nil {
		return "0"
	}
	return formatNumber(*n)
}

func formatStatusDate(s string) string {
	if s == "" {
		return "unknown date"
	}
	t, err := time.Parse(statusTimeLayout, s)
	if err != nil {
		return s
	}
	return t.Format("2006-01-02 15:04:05")
}

// formatArticleDate handles the ISO timestamps attached to long-form
// articles. Unparseable values pass through unchanged.
func formatArticleDate(s string) string {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return s
	}
	return t.Format("2006-01-02 15:04:05")
}

func engagementLine(t *content.Tweet, date string) string {
	return fmt.Sprintf("> 📅 %s | ❤️ %s | 🔁 %s | 💬 %s | 👁️ %s",
		date,
		formatNumber(t.Likes),
		formatNumber(t.Retweets),
		formatNumber(t.Replies),
		formatViews(t.Views))
}

func authorNames(t *content.Tweet) (screen, name string) {
	screen, name = t.Author.ScreenName, t.Author.Name
	if screen == "" {
		screen = "unknown"
	}
	if name == "" {
		name = "Unknown"
	}
	return screen, name
}

func sourceURL(t *content.Tweet, originalURL string) string {
	if t.URL != "" {
		return t.URL
	}
	return originalURL
}

// SavedImage is a materialized status attachment referenced from markdown.
type SavedImage struct {
	RelPath string
	Alt     string
}

// TweetMarkdown renders a single plain status. Images are expected to be
// already materialized by the caller.
func TweetMarkdown(t *content.Tweet, images []SavedImage, originalURL string) string {
	screen, name := authorNames(t)

	lines := []string{
		fmt.Sprintf("# Tweet by @%s (%s)\n", screen, name),
		engagementLine(t, formatStatusDate(t.CreatedAt)) + "\n",
		"---\n",
	}

	if t.Text != "" {
		lines = append(lines, t.Text+"\n")
	}

	if len(images) > 0 {
		lines = append(lines, "")
		for _, img := range images {
			lines = append(lines, fmt.Sprintf("![%s](%s)\n", img.Alt, img.RelPath))
		}
	}

	if t.Media.HasVideo() {
		lines = append(lines, "\n> 🎬 This tweet contains video, see the original post\n")
	}

	if t.Quote != nil {
		quoteScreen := t.Quote.Author.ScreenName
		if quoteScreen == "" {
			quoteScreen = "unknown"
		}
		lines = append(lines,
			"\n---\n",
			"### Quoted tweet\n",
			fmt.Sprintf("> **@%s**: %s\n", quoteScreen, t.Quote.Text))
	}

	src := sourceURL(t, originalURL)
	lines = append(lines,
		"\n---\n",
		fmt.Sprintf("*Source: [%s](%s)*\n", src, src))

	return strings.Join(lines, "\n")
}
