package lesson

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyVideoURL(t *testing.T) {
	tests := []struct {
		name     string
		url      string
		wantKind VideoKind
		wantURL  string
	}{
		{
			name:     "loom share link rewrites to embed",
			url:      "https://www.loom.com/share/abc123",
			wantKind: VideoLoomShare,
			wantURL:  "https://www.loom.com/embed/abc123",
		},
		{
			name:     "loom cdn link plays directly",
			url:      "https://cdn.loom.com/sessions/raw/abc123",
			wantKind: VideoLoomCDN,
			wantURL:  "https://cdn.loom.com/sessions/raw/abc123",
		},
		{
			name:     "mp4 file plays directly",
			url:      "https://media.example.com/lessons/intro.mp4",
			wantKind: VideoLoomCDN,
			wantURL:  "https://media.example.com/lessons/intro.mp4",
		},
		{
			name:     "youtube short link strips query",
			url:      "https://youtu.be/XYZ?t=5",
			wantKind: VideoYouTube,
			wantURL:  "https://www.youtube.com/embed/XYZ",
		},
		{
			name:     "youtube watch link strips extra params",
			url:      "https://www.youtube.com/watch?v=XYZ&list=foo",
			wantKind: VideoYouTube,
			wantURL:  "https://www.youtube.com/embed/XYZ",
		},
		{
			name:     "vimeo link uses final path segment",
			url:      "https://vimeo.com/12345",
			wantKind: VideoVimeo,
			wantURL:  "https://player.vimeo.com/video/12345",
		},
		{
			name:     "unknown host falls through",
			url:      "https://example.com/videos/1",
			wantKind: VideoOther,
			wantURL:  "https://example.com/videos/1",
		},
		{
			name:     "empty url falls through",
			url:      "",
			wantKind: VideoOther,
			wantURL:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			embed := ClassifyVideoURL(tt.url)
			assert.Equal(t, tt.wantKind, embed.Kind)
			assert.Equal(t, tt.wantURL, embed.URL)
		})
	}
}

func TestClassifyVideoURLLoomShareBeforeCDN(t *testing.T) {
	// A share link that also mentions the CDN host must still be
	// rewritten as a share link.
	embed := ClassifyVideoURL("https://www.loom.com/share/abc?src=cdn.loom.com")
	assert.Equal(t, VideoLoomShare, embed.Kind)
	assert.Equal(t, "https://www.loom.com/embed/abc?src=cdn.loom.com", embed.URL)
}
