package content

// Kind of a single rich-text block. Set is open - anything we do not know
// renders as unstyled.
// ENUM(unstyled, header-one, header-two, header-three, ordered-list-item, unordered-list-item, blockquote, atomic)
type BlockType string

func (t BlockType) IsListItem() bool {
	return t == BlockTypeOrderedListItem || t == BlockTypeUnorderedListItem
}

// Kind of an out-of-line entity annotation.
// ENUM(LINK, MARKDOWN, IMAGE, MEDIA, TWEMOJI)
type EntityType string

// Inline character style. X articles use capitalized names, not the draft.js
// upper case convention.
// ENUM(Bold, Italic)
type StyleName string
