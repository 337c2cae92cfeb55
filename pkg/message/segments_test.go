package message

import "testing"

func TestConstructors(t *testing.T) {
	tests := []struct {
		name string
		seg  Segment
		typ  string
		want map[string]string
	}{
		{"text", Text("hi"), "text", map[string]string{"text": "hi"}},
		{"face", Face(14), "face", map[string]string{"id": "14"}},
		{"image", Image("a.png"), "image", map[string]string{"file": "a.png"}},
		{"at", At(10001), "at", map[string]string{"qq": "10001"}},
		{"at all", AtAll(), "at", map[string]string{"qq": "all"}},
		{"record plain", Record("a.amr", false), "record", map[string]string{"file": "a.amr"}},
		{"record magic", Record("a.amr", true), "record", map[string]string{"file": "a.amr", "magic": "true"}},
		{"video", Video("a.mp4"), "video", map[string]string{"file": "a.mp4"}},
		{"dice", Dice(), "dice", map[string]string{}},
		{"shake", Shake(), "shake", map[string]string{}},
		{"anonymous", Anonymous(false), "anonymous", map[string]string{}},
		{"anonymous ignore failure", Anonymous(true), "anonymous", map[string]string{"ignore": "true"}},
		{
			"share without optionals",
			Share("https://example.com", "Example", "", ""),
			"share",
			map[string]string{"url": "https://example.com", "title": "Example"},
		},
		{
			"share with optionals",
			Share("https://example.com", "Example", "desc", "https://example.com/i.png"),
			"share",
			map[string]string{
				"url":     "https://example.com",
				"title":   "Example",
				"content": "desc",
				"image":   "https://example.com/i.png",
			},
		},
		{
			"location",
			Location(48.8566, 2.3522, "Paris", ""),
			"location",
			map[string]string{"lat": "48.8566", "lon": "2.3522", "title": "Paris"},
		},
		{"music", Music("qq", 42), "music", map[string]string{"type": "qq", "id": "42"}},
		{
			"music custom",
			MusicCustom("https://e.com", "https://e.com/a.mp3", "Song", "", ""),
			"music",
			map[string]string{"type": "custom", "url": "https://e.com", "audio": "https://e.com/a.mp3", "title": "Song"},
		},
		{"reply", Reply("815"), "reply", map[string]string{"id": "815"}},
		{"forward", Forward("f1"), "forward", map[string]string{"id": "f1"}},
		{"node", Node("100"), "node", map[string]string{"id": "100"}},
		{"xml payload", XML("<msg/>"), "xml", map[string]string{"data": "<msg/>"}},
		{"json payload", JSON(`{"k":1}`), "json", map[string]string{"data": `{"k":1}`}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			want := Segment{Type: tt.typ, Params: tt.want}
			if !tt.seg.Equal(want) {
				t.Errorf("segment = %v, want %v", tt.seg, want)
			}
		})
	}
}
