package docproc

import (
	"testing"
)

func TestRemoveCodeBlocks(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{
			name: "fenced block",
			text: "before\n```go\nfmt.Println(1)\n```\nafter",
			want: "before\n\nafter",
		},
		{
			name: "inline code",
			text: "call `Load()` twice",
			want: "call  twice",
		},
		{
			name: "no code",
			text: "plain text",
			want: "plain text",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RemoveCodeBlocks(tt.text); got != tt.want {
				t.Errorf("RemoveCodeBlocks() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRemoveLinksAndImages(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{
			name: "link",
			text: "see [the docs](https://example.com) here",
			want: "see  here",
		},
		{
			name: "image",
			text: "logo: ![alt text](/img/logo.png) end",
			want: "logo:  end",
		},
		{
			name: "bare brackets survive",
			text: "[note] alone",
			want: "[note] alone",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RemoveLinksAndImages(tt.text); got != tt.want {
				t.Errorf("RemoveLinksAndImages() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCleanText(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{
			name: "collapses whitespace runs",
			text: "hello   world\n\ttab",
			want: "hello world tab",
		},
		{
			name: "replaces special characters with spaces",
			text: "100% sure",
			want: "100  sure",
		},
		{
			name: "keeps allowed punctuation",
			text: "Wait, really?! Yes; fine: (ok) - done.",
			want: "Wait, really?! Yes; fine: (ok) - done.",
		},
		{
			name: "trims edges",
			text: "  padded  ",
			want: "padded",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CleanText(tt.text); got != tt.want {
				t.Errorf("CleanText() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPreprocess(t *testing.T) {
	text := "# Title\n\nSee [guide](./guide.md).\n\n```js\nconsole.log('hi');\n```\n\nDone!"
	want := "Title See . Done!"

	if got := Preprocess(text); got != want {
		t.Errorf("Preprocess() = %q, want %q", got, want)
	}
}

func TestPreprocessDeterministic(t *testing.T) {
	text := "Some **markdown** with `code` and [links](x)."
	if Preprocess(text) != Preprocess(text) {
		t.Error("Preprocess is not deterministic")
	}
}
