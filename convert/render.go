// Package convert renders fetched statuses and long-form articles into
// Markdown documents with locally materialized images.
package convert

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strings"

	"go.uber.org/zap"

	"xmd/content"
)

// ImageMaterializer persists a remote image under the given file name and
// returns the relative path to reference from markdown. Failure is reported as
// ok == false, details are logged by the implementation.
type ImageMaterializer interface {
	Materialize(ctx context.Context, url, fileName string) (relPath string, ok bool)
}

// Renderer converts a rich-text block sequence into markdown. It owns the
// per-document lookup state (entity table, media map) and the running image
// counter. Not safe for concurrent use, rendering is strictly sequential.
type Renderer struct {
	entities content.EntityTable
	media    content.MediaMap
	images   ImageMaterializer
	log      *zap.Logger

	imgCount int
}

func NewRenderer(entities content.EntityTable, media content.MediaMap, images ImageMaterializer, log *zap.Logger) *Renderer {
	return &Renderer{
		entities: entities,
		media:    media,
		images:   images,
		log:      log,
	}
}

// RenderBlocks drives the whole block list and returns markdown text along
// with the number of images materialized by atomic blocks. Empty input renders
// to an empty string.
func (r *Renderer) RenderBlocks(ctx context.Context, blocks []content.Block) (string, int) {
	r.imgCount = 0

	var (
		lines       []string
		listCounter int
		prevType    content.BlockType
	)

	for _, block := range blocks {
		styled := r.applyInlineStyles(block.Text, block.InlineStyleRanges)
		styled = r.applyEntities(styled, block.Text, block.EntityRanges)

		if block.Type != content.BlockTypeOrderedListItem {
			listCounter = 0
		}
		// leaving a list run needs a blank line, otherwise markdown glues
		// the next paragraph to the last item
		if prevType.IsListItem() && !block.Type.IsListItem() {
			lines = append(lines, "")
		}

		switch block.Type {
		case content.BlockTypeHeaderOne:
			lines = append(lines, "# "+styled, "")
		case content.BlockTypeHeaderTwo:
			lines = append(lines, "## "+styled, "")
		case content.BlockTypeHeaderThree:
			lines = append(lines, "### "+styled, "")
		case content.BlockTypeOrderedListItem:
			listCounter++
			lines = append(lines, fmt.Sprintf("%d. %s", listCounter, styled))
		case content.BlockTypeUnorderedListItem:
			lines = append(lines, "- "+styled)
		case content.BlockTypeBlockquote:
			lines = append(lines, "> "+styled, "")
		case content.BlockTypeAtomic:
			if fragment, added, ok := r.renderAtomic(ctx, block.EntityRanges); ok {
				lines = append(lines, fragment, "")
				r.imgCount += added
			}
		case content.BlockTypeUnstyled:
			if strings.TrimSpace(styled) != "" {
				lines = append(lines, styled, "")
			} else {
				lines = append(lines, "")
			}
		default:
			// unknown block kinds degrade to plain paragraphs
			if strings.TrimSpace(styled) != "" {
				lines = append(lines, styled, "")
			}
		}
		prevType = block.Type
	}
	return strings.Join(lines, "\n"), r.imgCount
}

// applyInlineStyles wraps addressed substrings with markdown emphasis markers.
// Ranges address Unicode code points and are applied in descending offset
// order so that inserted markers never shift ranges not yet processed.
func (r *Renderer) applyInlineStyles(text string, styles []content.StyleRange) string {
	if len(styles) == 0 || text == "" {
		return text
	}

	sorted := slices.Clone(styles)
	slices.SortStableFunc(sorted, func(a, b content.StyleRange) int {
		return cmp.Compare(b.Offset, a.Offset)
	})

	chars := []rune(text)
	for _, sr := range sorted {
		if sr.Offset < 0 || sr.Length < 0 || sr.Offset+sr.Length > len(chars) {
			r.log.Debug("Skipping style range extending past text end",
				zap.Int("offset", sr.Offset), zap.Int("length", sr.Length), zap.Int("text", len(chars)))
			continue
		}

		segment := string(chars[sr.Offset : sr.Offset+sr.Length])

		var replacement string
		switch sr.Style {
		case content.StyleNameBold:
			replacement = "**" + segment + "**"
		case content.StyleNameItalic:
			replacement = "*" + segment + "*"
		default:
			continue
		}
		chars = slices.Concat(chars[:sr.Offset], []rune(replacement), chars[sr.Offset+sr.Length:])
	}
	return string(chars)
}

// applyEntities substitutes LINK entities with markdown links. The range
// addresses the original text, replacement happens on the first occurrence of
// that substring in the already styled text. When the substring cannot be
// found anymore (mutated by an emphasis marker) original content is kept.
// Entities other than LINK are handled by atomic blocks only.
func (r *Renderer) applyEntities(styledText, originalText string, ranges []content.EntityRange) string {
	if len(ranges) == 0 {
		return styledText
	}

	sorted := slices.Clone(ranges)
	slices.SortStableFunc(sorted, func(a, b content.EntityRange) int {
		return cmp.Compare(b.Offset, a.Offset)
	})

	orig := []rune(originalText)
	for _, er := range sorted {
		entity, ok := r.entities.Resolve(er.Key)
		if !ok || entity.Type != content.EntityTypeLINK {
			continue
		}
		url := entity.Data.URL
		if url == "" || er.Offset < 0 || er.Offset >= len(orig) {
			continue
		}
		end := min(er.Offset+er.Length, len(orig))
		linkText := string(orig[er.Offset:end])
		if linkText == "" {
			continue
		}
		styledText = strings.Replace(styledText, linkText, "["+linkText+"]("+url+")", 1)
	}
	return styledText
}

// renderAtomic produces a markdown fragment for an atomic block. Only the
// first entity range matters, atomic blocks carry exactly one meaningful
// entity. Returns ok == false when the block contributes nothing.
func (r *Renderer) renderAtomic(ctx context.Context, ranges []content.EntityRange) (string, int, bool) {
	if len(ranges) == 0 {
		return "", 0, false
	}

	entity, ok := r.entities.Resolve(ranges[0].Key)
	if !ok {
		return "", 0, false
	}

	switch entity.Type {
	case content.EntityTypeMARKDOWN:
		return strings.TrimSpace(entity.Data.Markdown), 0, true

	case content.EntityTypeIMAGE:
		url := entity.Data.Src
		if url == "" {
			url = entity.Data.URL
		}
		if url == "" {
			return "", 0, false
		}
		return r.materialize(ctx, url, entity.Data.Alt)

	case content.EntityTypeMEDIA:
		var url string
		if items := entity.Data.MediaItems; len(items) > 0 {
			url = r.media[items[0].MediaID.String()]
		}
		if url == "" {
			url = entity.Data.MediaInfo.OriginalImgURL
		}
		if url == "" {
			return "", 0, false
		}
		return r.materialize(ctx, url, strings.TrimSpace(entity.Data.Caption))
	}
	return "", 0, false
}

func (r *Renderer) materialize(ctx context.Context, url, alt string) (string, int, bool) {
	n := r.imgCount + 1
	fileName := fmt.Sprintf("article_%d%s", n, ImageExt(url))
	relPath, ok := r.images.Materialize(ctx, url, fileName)
	if !ok {
		return "", 0, false
	}
	if alt == "" {
		alt = fmt.Sprintf("image %d", n)
	}
	return fmt.Sprintf("![%s](%s)", alt, relPath), 1, true
}
