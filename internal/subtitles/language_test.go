package subtitles

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanLabel(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "French", "french"},
		{"brackets and digits", "English [SDH] 2", "english"},
		{"parenthesized region", "Español (Latinoamérica)", "español"},
		{"dots to spaces", "pt.BR", "pt br"},
		{"fullwidth folds via nfkc", "Ｅｎｇｌｉｓｈ", "english"},
		{"empty", "", UnknownLanguage},
		{"digits only", "12345", UnknownLanguage},
		{"movie title forced to english", "some long movie title here", "en"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanLabel(tt.in))
		})
	}
}

func TestResolveLanguage(t *testing.T) {
	tests := []struct {
		in          string
		wantCode    string
		wantDisplay string
	}{
		{"en", "en", "English"},
		{"french", "fr", "French"},
		{"français", "fr", "French"},
		{"ger", "de", "German"},
		{"spanish latin america", "es", "Spanish"},
		{"xx", UnknownLanguage, UnknownLanguage},
		{UnknownLanguage, UnknownLanguage, UnknownLanguage},
	}
	for _, tt := range tests {
		code, display := ResolveLanguage(tt.in)
		assert.Equal(t, tt.wantCode, code, "code for %q", tt.in)
		assert.Equal(t, tt.wantDisplay, display, "display for %q", tt.in)
	}
}

func TestLabelFromFilename(t *testing.T) {
	assert.Equal(t, "French", labelFromFilename("Some.Movie_French.vtt"))
	assert.Equal(t, "xx", labelFromFilename("Some.Movie_xx.vtt"))
	assert.Equal(t, "0_eng", labelFromFilename("0_eng.vtt"))
	assert.Equal(t, "NoUnderscore", labelFromFilename("NoUnderscore.vtt"))
	assert.Equal(t, UnknownLanguage, labelFromFilename("not-a-subtitle.txt"))
}
