package lesson

import "strings"

// VideoKind identifies how a lesson video URL should be rendered.
type VideoKind string

const (
	VideoLoomShare VideoKind = "loom-share"
	VideoLoomCDN   VideoKind = "loom-cdn-or-mp4"
	VideoYouTube   VideoKind = "youtube"
	VideoVimeo     VideoKind = "vimeo"
	VideoOther     VideoKind = "other"
)

// VideoEmbed describes the playable form of a lesson video URL.
type VideoEmbed struct {
	Kind VideoKind `json:"kind"`
	URL  string    `json:"url"`
}

// ClassifyVideoURL inspects a raw video URL and produces the embeddable
// form a client should render. Loom share links are checked before the
// CDN/mp4 rule because a share link carries neither marker.
func ClassifyVideoURL(rawURL string) VideoEmbed {
	url := strings.TrimSpace(rawURL)
	if url == "" {
		return VideoEmbed{Kind: VideoOther, URL: rawURL}
	}

	switch {
	case strings.Contains(url, "loom.com/share/"):
		return VideoEmbed{
			Kind: VideoLoomShare,
			URL:  strings.Replace(url, "/share/", "/embed/", 1),
		}

	case strings.Contains(url, "cdn.loom.com") || strings.Contains(url, ".mp4"):
		return VideoEmbed{Kind: VideoLoomCDN, URL: url}

	case strings.Contains(url, "youtube.com") || strings.Contains(url, "youtu.be"):
		if id := youtubeVideoID(url); id != "" {
			return VideoEmbed{Kind: VideoYouTube, URL: "https://www.youtube.com/embed/" + id}
		}
		return VideoEmbed{Kind: VideoOther, URL: url}

	case strings.Contains(url, "vimeo.com"):
		if id := finalPathSegment(url); id != "" {
			return VideoEmbed{Kind: VideoVimeo, URL: "https://player.vimeo.com/video/" + id}
		}
		return VideoEmbed{Kind: VideoOther, URL: url}
	}

	return VideoEmbed{Kind: VideoOther, URL: url}
}

// youtubeVideoID extracts the video id from watch?v= or youtu.be/ style
// links, dropping any trailing query parameters.
func youtubeVideoID(url string) string {
	if idx := strings.Index(url, "watch?v="); idx != -1 {
		id := url[idx+len("watch?v="):]
		return stripAfterAny(id, "&", "#")
	}

	if idx := strings.Index(url, "youtu.be/"); idx != -1 {
		id := url[idx+len("youtu.be/"):]
		return stripAfterAny(id, "?", "&", "#", "/")
	}

	return ""
}

func finalPathSegment(url string) string {
	trimmed := stripAfterAny(url, "?", "#")
	trimmed = strings.TrimRight(trimmed, "/")
	if idx := strings.LastIndex(trimmed, "/"); idx != -1 {
		return trimmed[idx+1:]
	}
	return ""
}

func stripAfterAny(s string, seps ...string) string {
	for _, sep := range seps {
		if idx := strings.Index(s, sep); idx != -1 {
			s = s[:idx]
		}
	}
	return s
}
