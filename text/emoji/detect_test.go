package emoji

import "testing"

func TestIsEmojiPresentation(t *testing.T) {
	cases := []struct {
		r    rune
		want bool
	}{
		{'\U0001F600', true}, // grinning face
		{'\U0001F680', true}, // rocket
		{'❤', true},     // heavy black heart
		{'a', false},
		{'é', false}, // é
		{' ', false},
	}
	for _, tc := range cases {
		if got := IsEmojiPresentation(tc.r); got != tc.want {
			t.Errorf("IsEmojiPresentation(%U) = %v, want %v", tc.r, got, tc.want)
		}
	}
}

func TestSegment(t *testing.T) {
	cases := []struct {
		name string
		text string
		want []Run
	}{
		{
			name: "empty",
			text: "",
			want: nil,
		},
		{
			name: "plain text",
			text: "hello",
			want: []Run{{Start: 0, End: 5, IsEmoji: false}},
		},
		{
			name: "single emoji",
			text: "\U0001F600",
			want: []Run{{Start: 0, End: 4, IsEmoji: true}},
		},
		{
			name: "text then emoji",
			text: "hi\U0001F600",
			want: []Run{
				{Start: 0, End: 2, IsEmoji: false},
				{Start: 2, End: 6, IsEmoji: true},
			},
		},
		{
			name: "adjacent emoji merge",
			text: "\U0001F600\U0001F680",
			want: []Run{{Start: 0, End: 8, IsEmoji: true}},
		},
		{
			name: "flag pair",
			text: "\U0001F1FA\U0001F1F8",
			want: []Run{{Start: 0, End: 8, IsEmoji: true}},
		},
		{
			name: "skin tone modifier stays attached",
			text: "\U0001F44D\U0001F3FD!",
			want: []Run{
				{Start: 0, End: 8, IsEmoji: true},
				{Start: 8, End: 9, IsEmoji: false},
			},
		},
		{
			name: "variation selector promotes text rune",
			text: "♂️",
			want: []Run{{Start: 0, End: 6, IsEmoji: true}},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Segment(tc.text)
			if len(got) != len(tc.want) {
				t.Fatalf("got %d runs %+v, want %d runs %+v", len(got), got, len(tc.want), tc.want)
			}
			for i := range got {
				if got[i] != tc.want[i] {
					t.Errorf("run %d = %+v, want %+v", i, got[i], tc.want[i])
				}
			}
		})
	}
}

func TestSegmentZWJSequence(t *testing.T) {
	// Woman health worker: woman + ZWJ + medical symbol + FE0F.
	text := "\U0001F469‍⚕️"
	runs := Segment(text)
	if len(runs) != 1 {
		t.Fatalf("ZWJ sequence split into %d runs: %+v", len(runs), runs)
	}
	if !runs[0].IsEmoji || runs[0].Start != 0 || runs[0].End != len(text) {
		t.Errorf("run = %+v, want one emoji run spanning the sequence", runs[0])
	}
}
