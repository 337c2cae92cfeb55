package message

import "strconv"

// Constructors for the conventional segment vocabulary. Each returns a
// ready-to-append Segment; optional parameters are omitted when unset.

// Text creates a plain text segment.
func Text(text string) Segment {
	return Segment{Type: TypeText, Params: map[string]string{"text": text}}
}

// Face creates an emoji face segment by numeric face id.
func Face(id int) Segment {
	return Segment{Type: "face", Params: map[string]string{"id": strconv.Itoa(id)}}
}

// Image creates an image segment referencing a file name or URL.
func Image(file string) Segment {
	return Segment{Type: "image", Params: map[string]string{"file": file}}
}

// Record creates a voice record segment. Set magic for voice-changed audio.
func Record(file string, magic bool) Segment {
	params := map[string]string{"file": file}
	if magic {
		params["magic"] = strconv.FormatBool(magic)
	}
	return Segment{Type: "record", Params: params}
}

// Video creates a video segment referencing a file name or URL.
func Video(file string) Segment {
	return Segment{Type: "video", Params: map[string]string{"file": file}}
}

// At creates a mention segment targeting one user.
func At(userID int64) Segment {
	return Segment{Type: "at", Params: map[string]string{"qq": strconv.FormatInt(userID, 10)}}
}

// AtAll creates a mention segment targeting everyone in the chat.
func AtAll() Segment {
	return Segment{Type: "at", Params: map[string]string{"qq": "all"}}
}

// RPS creates a rock-paper-scissors magic expression segment.
func RPS() Segment {
	return Segment{Type: "rps", Params: map[string]string{}}
}

// Dice creates a dice roll magic expression segment.
func Dice() Segment {
	return Segment{Type: "dice", Params: map[string]string{}}
}

// Shake creates a window-shake (poke) segment.
func Shake() Segment {
	return Segment{Type: "shake", Params: map[string]string{}}
}

// Anonymous creates an anonymous-send marker segment. Set ignoreFailure to
// deliver the message normally when anonymity is unavailable.
func Anonymous(ignoreFailure bool) Segment {
	params := map[string]string{}
	if ignoreFailure {
		params["ignore"] = strconv.FormatBool(ignoreFailure)
	}
	return Segment{Type: "anonymous", Params: params}
}

// Share creates a link share segment. Content and image are optional.
func Share(url, title, content, image string) Segment {
	params := map[string]string{"url": url, "title": title}
	if content != "" {
		params["content"] = content
	}
	if image != "" {
		params["image"] = image
	}
	return Segment{Type: "share", Params: params}
}

// Location creates a geographic location segment. Title and content are
// optional.
func Location(lat, lon float64, title, content string) Segment {
	params := map[string]string{
		"lat": strconv.FormatFloat(lat, 'f', -1, 64),
		"lon": strconv.FormatFloat(lon, 'f', -1, 64),
	}
	if title != "" {
		params["title"] = title
	}
	if content != "" {
		params["content"] = content
	}
	return Segment{Type: "location", Params: params}
}

// Music creates a platform music share segment, e.g. Music("qq", 123).
func Music(kind string, id int64) Segment {
	return Segment{Type: "music", Params: map[string]string{
		"type": kind,
		"id":   strconv.FormatInt(id, 10),
	}}
}

// MusicCustom creates a custom music share segment with explicit audio and
// landing URLs. Content and image are optional.
func MusicCustom(url, audio, title, content, image string) Segment {
	params := map[string]string{
		"type":  "custom",
		"url":   url,
		"audio": audio,
		"title": title,
	}
	if content != "" {
		params["content"] = content
	}
	if image != "" {
		params["image"] = image
	}
	return Segment{Type: "music", Params: params}
}

// Reply creates a reply marker segment referencing a message id.
func Reply(id string) Segment {
	return Segment{Type: "reply", Params: map[string]string{"id": id}}
}

// Forward creates a forwarded-messages segment referencing a forward id.
func Forward(id string) Segment {
	return Segment{Type: "forward", Params: map[string]string{"id": id}}
}

// Node creates a forward node segment referencing a message id.
func Node(id string) Segment {
	return Segment{Type: "node", Params: map[string]string{"id": id}}
}

// XML creates a segment carrying an XML payload.
func XML(data string) Segment {
	return Segment{Type: "xml", Params: map[string]string{"data": data}}
}

// JSON creates a segment carrying a JSON payload.
func JSON(data string) Segment {
	return Segment{Type: "json", Params: map[string]string{"data": data}}
}
