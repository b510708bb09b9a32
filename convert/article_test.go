package convert

import (
	"context"
	"strings"
	"testing"

	"go.uber.org/zap"

	"xmd/content"
)

func TestArticleMarkdown(t *testing.T) {
	payload := pngBytes(t, 2, 2)
	get := &fakeGetter{data: map[string][]byte{
		"https://host/cover.png":    payload,
		"https://host/embedded.png": payload,
	}}
	saver, _ := testSaver(t, get, 0)

	tweet := &content.Tweet{
		URL:    "https://x.com/someone/status/1",
		Author: content.Author{Name: "Some One", ScreenName: "someone"},
		Likes:  10,
		Article: &content.Article{
			Title:     "A Long Read",
			CreatedAt: "2024-03-05T10:20:30Z",
			CoverMedia: &content.CoverMedia{
				MediaInfo: content.MediaInfo{OriginalImgURL: "https://host/cover.png"},
			},
			MediaEntities: []content.MediaEntity{
				{MediaID: "42", MediaInfo: content.MediaInfo{OriginalImgURL: "https://host/embedded.png"}},
			},
			Content: &content.ArticleContent{
				Blocks: []content.Block{
					{Type: content.BlockTypeHeaderTwo, Text: "Section"},
					{Type: content.BlockTypeUnstyled, Text: "Body text."},
					{Type: content.BlockTypeAtomic, EntityRanges: []content.EntityRange{{Key: "0"}}},
				},
				EntityMap: content.EntityTable{
					"0": {Type: content.EntityTypeMEDIA, Data: content.EntityData{
						MediaItems: []content.MediaItem{{MediaID: "42"}},
					}},
				},
			},
		},
	}

	md, images := ArticleMarkdown(context.Background(), tweet, "https://x.com/original", saver, zap.NewNop())

	if images != 2 {
		t.Errorf("images = %d, want cover + embedded", images)
	}
	for _, want := range []string{
		"# A Long Read",
		"> ✍️ @someone (Some One)",
		"2024-03-05 10:20:30",
		"![cover](doc_images/cover.png)",
		"## Section",
		"Body text.",
		"doc_images/article_1.png",
		"*Source: [https://x.com/someone/status/1](https://x.com/someone/status/1)*",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("missing %q in:\n%s", want, md)
		}
	}
}

func TestArticleMarkdown_Minimal(t *testing.T) {
	saver, _ := testSaver(t, &fakeGetter{}, 0)

	tweet := &content.Tweet{
		Author: content.Author{ScreenName: "someone"},
		Article: &content.Article{
			Content: &content.ArticleContent{},
		},
	}

	md, images := ArticleMarkdown(context.Background(), tweet, "https://x.com/1", saver, zap.NewNop())
	if images != 0 {
		t.Errorf("images = %d, want 0", images)
	}
	if !strings.Contains(md, "# Article by @someone") {
		t.Errorf("placeholder title missing:\n%s", md)
	}
}

func TestArticleMarkdown_NoContent(t *testing.T) {
	saver, _ := testSaver(t, &fakeGetter{}, 0)
	tweet := &content.Tweet{Article: &content.Article{}}

	md, images := ArticleMarkdown(context.Background(), tweet, "", saver, zap.NewNop())
	if md != "" || images != 0 {
		t.Errorf("rendered (%q, %d) without article content", md, images)
	}
}
