package content

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestEntityTable_TwoShapes(t *testing.T) {
	asList := []byte(`[
		{"key": 0, "value": {"type": "LINK", "data": {"url": "https://example.com"}}},
		{"key": "1", "value": {"type": "MARKDOWN", "data": {"markdown": "code"}}}
	]`)
	asMap := []byte(`{
		"0": {"type": "LINK", "data": {"url": "https://example.com"}},
		"1": {"type": "MARKDOWN", "data": {"markdown": "code"}}
	}`)

	var fromList, fromMap EntityTable
	if err := json.Unmarshal(asList, &fromList); err != nil {
		t.Fatalf("list shape: %v", err)
	}
	if err := json.Unmarshal(asMap, &fromMap); err != nil {
		t.Fatalf("map shape: %v", err)
	}

	if !reflect.DeepEqual(fromList, fromMap) {
		t.Errorf("shapes decode differently:\nlist: %#v\nmap:  %#v", fromList, fromMap)
	}

	e, ok := fromList.Resolve(FlexID("0"))
	if !ok {
		t.Fatal("key 0 did not resolve")
	}
	if e.Type != EntityTypeLINK || e.Data.URL != "https://example.com" {
		t.Errorf("unexpected entity: %#v", e)
	}

	if _, ok := fromList.Resolve(FlexID("42")); ok {
		t.Error("unknown key resolved")
	}
}

func TestEntityTable_NullAndEmpty(t *testing.T) {
	var tab EntityTable
	if err := json.Unmarshal([]byte(`null`), &tab); err != nil {
		t.Fatalf("null: %v", err)
	}
	if tab != nil {
		t.Errorf("null decoded to %#v", tab)
	}
	if _, ok := tab.Resolve(FlexID("0")); ok {
		t.Error("nil table resolved a key")
	}
}

func TestFlexID(t *testing.T) {
	tests := []struct {
		in   string
		want FlexID
	}{
		{`"abc"`, "abc"},
		{`123456789012345678`, "123456789012345678"},
		{`0`, "0"},
		{`null`, ""},
	}
	for _, tc := range tests {
		var id FlexID
		if err := json.Unmarshal([]byte(tc.in), &id); err != nil {
			t.Errorf("%s: %v", tc.in, err)
			continue
		}
		if id != tc.want {
			t.Errorf("%s: got %q, want %q", tc.in, id, tc.want)
		}
	}
}

func TestMediaSet_TwoShapes(t *testing.T) {
	asObject := []byte(`{"photos": [{"type": "photo", "url": "https://pbs.twimg.com/media/a.jpg"}]}`)
	asList := []byte(`[{"type": "photo", "url": "https://pbs.twimg.com/media/a.jpg"}, {"type": "video", "url": "v"}]`)

	var fromObject, fromList MediaSet
	if err := json.Unmarshal(asObject, &fromObject); err != nil {
		t.Fatalf("object shape: %v", err)
	}
	if err := json.Unmarshal(asList, &fromList); err != nil {
		t.Fatalf("list shape: %v", err)
	}

	if got := fromObject.PhotoList(); len(got) != 1 || got[0].URL != "https://pbs.twimg.com/media/a.jpg" {
		t.Errorf("object shape photos: %#v", got)
	}
	if got := fromList.PhotoList(); len(got) != 1 || got[0].URL != "https://pbs.twimg.com/media/a.jpg" {
		t.Errorf("list shape photos: %#v", got)
	}
	if fromObject.HasVideo() {
		t.Error("object shape reported video")
	}
	if !fromList.HasVideo() {
		t.Error("list shape missed video")
	}
}

func TestMediaSet_AllFallback(t *testing.T) {
	var ms MediaSet
	payload := []byte(`{"all": [{"type": "photo", "url": "p"}, {"type": "video", "url": "v"}]}`)
	if err := json.Unmarshal(payload, &ms); err != nil {
		t.Fatal(err)
	}
	photos := ms.PhotoList()
	if len(photos) != 1 || photos[0].URL != "p" {
		t.Errorf("all fallback photos: %#v", photos)
	}
	if !ms.HasVideo() {
		t.Error("all fallback missed video")
	}
}

func TestBuildMediaMap(t *testing.T) {
	entities := []MediaEntity{
		{MediaID: "100", MediaInfo: MediaInfo{OriginalImgURL: "https://pbs.twimg.com/media/one.png"}},
		{MediaID: "200"}, // no URL - skipped
		{MediaInfo: MediaInfo{OriginalImgURL: "ignored"}}, // no id - skipped
	}
	m := BuildMediaMap(entities)
	if len(m) != 1 {
		t.Fatalf("map size = %d, want 1", len(m))
	}
	if m["100"] != "https://pbs.twimg.com/media/one.png" {
		t.Errorf("unexpected mapping: %#v", m)
	}
}

func TestTweetDecode_Tolerant(t *testing.T) {
	payload := []byte(`{
		"id": 123,
		"text": "hello",
		"author": {"screen_name": "someone"},
		"views": null,
		"replying_to_status": 122,
		"article": {"title": "T", "content": {"blocks": [], "entityMap": []}}
	}`)
	var tw Tweet
	if err := json.Unmarshal(payload, &tw); err != nil {
		t.Fatal(err)
	}
	if tw.ID != "123" || tw.ReplyingToStatus != "122" {
		t.Errorf("ids: %q %q", tw.ID, tw.ReplyingToStatus)
	}
	if tw.Views != nil {
		t.Error("null views decoded to value")
	}
	if !tw.IsArticle() {
		t.Error("article with empty block list must still be an article")
	}
}
