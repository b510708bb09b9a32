package convert

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"xmd/content"
)

// ArticleMarkdown renders a long-form article into a complete markdown
// document: title, author and engagement header, cover image, body blocks and
// a source footer. Returns the document and the number of images stored.
func ArticleMarkdown(ctx context.Context, t *content.Tweet, originalURL string, saver *Saver, log *zap.Logger) (string, int) {
	article := t.Article
	if article == nil || article.Content == nil {
		return "", 0
	}

	screen, name := authorNames(t)

	var lines []string
	if article.Title != "" {
		lines = append(lines, "# "+article.Title)
	} else {
		lines = append(lines, "# Article by @"+screen)
	}
	lines = append(lines, "",
		fmt.Sprintf("> ✍️ @%s (%s)", screen, name),
		engagementLine(t, formatArticleDate(article.CreatedAt)),
		"")

	coverImages := 0
	if article.CoverMedia != nil {
		if coverURL := article.CoverMedia.MediaInfo.OriginalImgURL; coverURL != "" {
			log.Info("Downloading cover image")
			fileName := "cover" + ImageExt(coverURL)
			if relPath, ok := saver.Materialize(ctx, coverURL, fileName); ok {
				lines = append(lines, fmt.Sprintf("![cover](%s)", relPath), "")
				coverImages = 1
			}
		}
	}

	lines = append(lines, "---", "")

	mediaMap := content.BuildMediaMap(article.MediaEntities)
	if len(mediaMap) > 0 {
		log.Info("Article has embedded media", zap.Int("count", len(mediaMap)))
	}

	r := NewRenderer(article.Content.EntityMap, mediaMap, saver, log)
	body, bodyImages := r.RenderBlocks(ctx, article.Content.Blocks)
	lines = append(lines, body)

	src := sourceURL(t, originalURL)
	lines = append(lines, "", "---", "",
		fmt.Sprintf("*Source: [%s](%s)*", src, src),
		"")

	return strings.Join(lines, "\n"), coverImages + bodyImages
}
