package probe

import (
	"encoding/json"
	"testing"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		video, audio, ext string
		want              bool
	}{
		{"h264", "aac", "mp4", true},
		{"hevc", "aac", "mp4", false},
		{"h264", "ac3", "mp4", false},
		{"h264", "aac", "mkv", false},
		{"", "", "", false},
	}
	for _, tt := range tests {
		if got := Classify(tt.video, tt.audio, tt.ext); got != tt.want {
			t.Errorf("Classify(%q, %q, %q) = %v, want %v", tt.video, tt.audio, tt.ext, got, tt.want)
		}
	}
}

func TestNormResolution(t *testing.T) {
	tests := []struct {
		width, height int
		want          string
	}{
		{3840, 2160, "4K"},
		{2560, 2000, "4K"},
		{1920, 1080, "1080p"},
		{1920, 800, "1080p"}, // cinematic 2.39:1
		{1280, 720, "720p"},
		{854, 480, "480p"},
		{640, 360, "360p"},
		{426, 240, "240p"},
		{256, 100, "100p"}, // below the ladder: literal height
		{0, 0, ""},
	}
	for _, tt := range tests {
		if got := NormResolution(tt.width, tt.height); got != tt.want {
			t.Errorf("NormResolution(%d, %d) = %q, want %q", tt.width, tt.height, got, tt.want)
		}
	}
}

func TestFrameRateToFloat(t *testing.T) {
	tests := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"25/1", 25, true},
		{"24000/1001", 24000.0 / 1001.0, true},
		{"29.97", 29.97, true}, // already scalar
		{"0/0", 0, false},
		{"", 0, false},
		{"abc", 0, false},
	}
	for _, tt := range tests {
		got, ok := frameRateToFloat(tt.in)
		if ok != tt.ok || (ok && got != tt.want) {
			t.Errorf("frameRateToFloat(%q) = (%v, %v), want (%v, %v)", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestBitrateToKbps(t *testing.T) {
	if got := bitrateToKbps("1500000"); got != 1500 {
		t.Errorf("bitrateToKbps(1500000) = %v, want 1500", got)
	}
	if got := bitrateToKbps("garbage"); got != 0 {
		t.Errorf("bitrateToKbps(garbage) = %v, want 0", got)
	}
}

func TestNormalize(t *testing.T) {
	payload := `{
		"format": {"duration": "7260.48", "bit_rate": "1500000"},
		"streams": [
			{"codec_type": "video", "codec_name": "h264", "width": 1920, "height": 1080, "avg_frame_rate": "24000/1001"},
			{"codec_type": "audio", "codec_name": "aac"}
		]
	}`
	var raw probeOutput
	if err := json.Unmarshal([]byte(payload), &raw); err != nil {
		t.Fatalf("unmarshal fixture: %v", err)
	}

	md := normalize(&raw, "/media/movies/Example/example.mp4")

	if md.VideoCodec != "h264" || md.AudioCodec != "aac" || md.Extension != "mp4" {
		t.Errorf("codecs = %q/%q/%q", md.VideoCodec, md.AudioCodec, md.Extension)
	}
	if md.Duration != 7260 {
		t.Errorf("Duration = %d, want 7260", md.Duration)
	}
	if md.Bitrate != "1500.00 kbps" {
		t.Errorf("Bitrate = %q, want \"1500.00 kbps\"", md.Bitrate)
	}
	if md.Resolution != "1080p" {
		t.Errorf("Resolution = %q, want 1080p", md.Resolution)
	}
	if md.FrameRate != "23.976" {
		t.Errorf("FrameRate = %q, want 23.976", md.FrameRate)
	}
	if md.AspectRatio != 1.78 {
		t.Errorf("AspectRatio = %v, want 1.78", md.AspectRatio)
	}
	if !Classify(md.VideoCodec, md.AudioCodec, md.Extension) {
		t.Error("fixture should classify compatible")
	}
}

func TestNormalize_MissingStreams(t *testing.T) {
	var raw probeOutput
	md := normalize(&raw, "/x/video.mkv")
	if md.Resolution != "" || md.VideoCodec != "" || md.AudioCodec != "" {
		t.Errorf("empty probe should normalize to zero values, got %+v", md)
	}
	if Classify(md.VideoCodec, md.AudioCodec, md.Extension) {
		t.Error("empty metadata must classify incompatible")
	}
}
