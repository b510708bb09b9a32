package content

import (
	"bytes"
	"encoding/json"
)

// FlexID is an identifier which upstream JSON carries either as a string or as
// a bare number. We always keep it as a string.
type FlexID string

func (f *FlexID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = FlexID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = FlexID(n.String())
	return nil
}

func (f FlexID) String() string {
	return string(f)
}

// Block is one paragraph-like unit of an article body, draft.js content-state
// convention. Blocks are immutable inputs to the renderer.
type Block struct {
	Type              BlockType     `json:"type"`
	Text              string        `json:"text"`
	EntityRanges      []EntityRange `json:"entityRanges"`
	InlineStyleRanges []StyleRange  `json:"inlineStyleRanges"`
}

// EntityRange addresses a span of block text carrying an out-of-line entity.
// Offsets and lengths are in Unicode code points.
type EntityRange struct {
	Key    FlexID `json:"key"`
	Offset int    `json:"offset"`
	Length int    `json:"length"`
}

// StyleRange addresses a span of block text carrying an inline style.
type StyleRange struct {
	Style  StyleName `json:"style"`
	Offset int       `json:"offset"`
	Length int       `json:"length"`
}

// MediaItem references article media by id, resolved through MediaMap.
type MediaItem struct {
	MediaID FlexID `json:"mediaId"`
}

// MediaInfo carries a directly usable image URL when present.
type MediaInfo struct {
	OriginalImgURL string `json:"original_img_url"`
}

// EntityData is the union of payloads for all entity kinds we render. Absent
// fields stay empty, renderer decides what applies based on entity type.
type EntityData struct {
	URL        string      `json:"url"`
	Src        string      `json:"src"`
	Alt        string      `json:"alt"`
	Markdown   string      `json:"markdown"`
	Caption    string      `json:"caption"`
	MediaItems []MediaItem `json:"mediaItems"`
	MediaInfo  MediaInfo   `json:"media_info"`
}

type Entity struct {
	Type EntityType `json:"type"`
	Data EntityData `json:"data"`
}

// EntityTable resolves entity keys referenced from block entity ranges.
// Upstream serializes it either as a direct key to value mapping or as a list
// of {key, value} pairs - both decode into the same table so nothing past this
// point ever branches on the wire shape.
type EntityTable map[string]Entity

func (t *EntityTable) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*t = nil
		return nil
	}
	if data[0] == '{' {
		var m map[string]Entity
		if err := json.Unmarshal(data, &m); err != nil {
			return err
		}
		*t = m
		return nil
	}
	var pairs []struct {
		Key   FlexID `json:"key"`
		Value Entity `json:"value"`
	}
	if err := json.Unmarshal(data, &pairs); err != nil {
		return err
	}
	m := make(EntityTable, len(pairs))
	for _, p := range pairs {
		m[p.Key.String()] = p.Value
	}
	*t = m
	return nil
}

// Resolve returns entity for the key. Missing keys are a normal condition,
// renderer degrades to keeping original text.
func (t EntityTable) Resolve(key FlexID) (Entity, bool) {
	e, ok := t[key.String()]
	return e, ok
}

// MediaMap resolves article media ids to origin image URLs. Built once per
// document from the article media_entities list.
type MediaMap map[string]string

// BuildMediaMap indexes media entities which actually carry an image URL.
func BuildMediaMap(entities []MediaEntity) MediaMap {
	m := make(MediaMap, len(entities))
	for _, me := range entities {
		if me.MediaID != "" && me.MediaInfo.OriginalImgURL != "" {
			m[me.MediaID.String()] = me.MediaInfo.OriginalImgURL
		}
	}
	return m
}
