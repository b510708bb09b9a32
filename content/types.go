// Package content defines the semi-structured document model the FxTwitter
// API returns for a status: plain tweets with attached media and long-form X
// articles carrying a draft.js style block list. The shape is an external
// contract we do not own - every field is optional and decoding never fails on
// absent data.
package content

import (
	"bytes"
	"encoding/json"
)

type Author struct {
	Name       string `json:"name"`
	ScreenName string `json:"screen_name"`
	AvatarURL  string `json:"avatar_url"`
}

// MediaEntry is one attached photo or video.
type MediaEntry struct {
	Type    string `json:"type"`
	URL     string `json:"url"`
	AltText string `json:"altText"`
}

// MediaSet holds tweet attachments. Upstream is inconsistent: sometimes an
// object with photos/videos/all lists, sometimes a bare list of entries.
type MediaSet struct {
	All    []MediaEntry `json:"all"`
	Photos []MediaEntry `json:"photos"`
	Videos []MediaEntry `json:"videos"`
}

func (m *MediaSet) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*m = MediaSet{}
		return nil
	}
	if data[0] == '[' {
		var all []MediaEntry
		if err := json.Unmarshal(data, &all); err != nil {
			return err
		}
		*m = MediaSet{All: all}
		return nil
	}
	type mediaSet MediaSet // drop methods to avoid recursion
	var ms mediaSet
	if err := json.Unmarshal(data, &ms); err != nil {
		return err
	}
	*m = MediaSet(ms)
	return nil
}

// PhotoList returns attached photos, falling back to filtering the combined
// list when the dedicated one is absent.
func (m *MediaSet) PhotoList() []MediaEntry {
	if m == nil {
		return nil
	}
	if len(m.Photos) > 0 {
		return m.Photos
	}
	var photos []MediaEntry
	for _, e := range m.All {
		if e.Type == "photo" {
			photos = append(photos, e)
		}
	}
	return photos
}

func (m *MediaSet) HasVideo() bool {
	if m == nil {
		return false
	}
	if len(m.Videos) > 0 {
		return true
	}
	for _, e := range m.All {
		if e.Type == "video" || e.Type == "gif" {
			return true
		}
	}
	return false
}

// MediaEntity is one article-level media declaration, source of the MediaMap.
type MediaEntity struct {
	MediaID   FlexID    `json:"media_id"`
	MediaInfo MediaInfo `json:"media_info"`
}

type CoverMedia struct {
	MediaInfo MediaInfo `json:"media_info"`
}

// ArticleContent is the draft.js content state of a long-form article.
type ArticleContent struct {
	Blocks    []Block     `json:"blocks"`
	EntityMap EntityTable `json:"entityMap"`
}

// Article is the long-form body attached to a tweet when the status is an X
// article.
type Article struct {
	Title         string          `json:"title"`
	CreatedAt     string          `json:"created_at"`
	CoverMedia    *CoverMedia     `json:"cover_media"`
	MediaEntities []MediaEntity   `json:"media_entities"`
	Content       *ArticleContent `json:"content"`
}

// Tweet is a single authored status as returned by the FxTwitter API.
type Tweet struct {
	ID        FlexID `json:"id"`
	URL       string `json:"url"`
	Text      string `json:"text"`
	CreatedAt string `json:"created_at"`
	Author    Author `json:"author"`

	Likes    int64  `json:"likes"`
	Retweets int64  `json:"retweets"`
	Replies  int64  `json:"replies"`
	Views    *int64 `json:"views"`

	// "replying to" reference: screen name and status id of the parent
	ReplyingTo       string `json:"replying_to"`
	ReplyingToStatus FlexID `json:"replying_to_status"`

	Quote   *Tweet    `json:"quote"`
	Media   *MediaSet `json:"media"`
	Article *Article  `json:"article"`
}

// IsArticle reports whether the status carries a renderable long-form body.
func (t *Tweet) IsArticle() bool {
	return t != nil && t.Article != nil && t.Article.Content != nil
}
