package i18n

import (
	"testing"

	"golang.org/x/text/language"
)

func TestParseTag(t *testing.T) {
	t.Parallel()

	tests := []struct {
		value  string
		want   language.Tag
		wantOK bool
	}{
		{value: "en-US", want: englishUS, wantOK: true},
		{value: "pt-BR", want: portugueseBR, wantOK: true},
		{value: "pt", want: portugueseBR, wantOK: true},
		{value: "", wantOK: false},
		{value: "not a tag!", wantOK: false},
	}
	for _, tc := range tests {
		got, ok := ParseTag(tc.value)
		if ok != tc.wantOK {
			t.Fatalf("ParseTag(%q) ok = %v, want %v", tc.value, ok, tc.wantOK)
		}
		if ok && got != tc.want {
			t.Fatalf("ParseTag(%q) = %s, want %s", tc.value, got, tc.want)
		}
	}
}

func TestMatchTags(t *testing.T) {
	t.Parallel()

	if got := MatchTags(nil); got != DefaultTag() {
		t.Fatalf("MatchTags(nil) = %s, want %s", got, DefaultTag())
	}
	if got := MatchTags([]language.Tag{language.Portuguese, language.English}); got != portugueseBR {
		t.Fatalf("MatchTags(pt) = %s, want %s", got, portugueseBR)
	}
	if got := MatchTags([]language.Tag{language.Japanese}); got != englishUS {
		t.Fatalf("MatchTags(ja) = %s, want %s", got, englishUS)
	}
}

func TestSupportedTagsReturnsCopy(t *testing.T) {
	t.Parallel()

	tags := SupportedTags()
	tags[0] = language.Japanese
	if SupportedTags()[0] != englishUS {
		t.Fatal("SupportedTags exposed internal slice")
	}
}
