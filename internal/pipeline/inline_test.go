package pipeline

import "testing"

func TestSanitizeInline(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "no markup", input: "just words", want: "just words"},
		{name: "empty", input: "", want: ""},
		{name: "image with alt", input: "![cat](http://x/c.png)", want: "[图片] cat（http://x/c.png）"},
		{name: "image without alt", input: "![](http://x/c.png)", want: "[图片]（http://x/c.png）"},
		{name: "link", input: "see [docs](https://go.dev) now", want: "see docs（https://go.dev） now"},
		{name: "empty link label is not a link", input: "[](u)", want: "[](u)"},
		{name: "adjacent links", input: "[a](u) [b](v)", want: "a（u） b（v）"},
		{name: "image before link", input: "![i](p) [l](q)", want: "[图片] i（p） l（q）"},
		{name: "emphasis in link label", input: "[**go**](u)", want: "go（u）"},
		{name: "strikethrough", input: "~~gone~~", want: "gone"},
		{name: "bold", input: "**bold**", want: "bold"},
		{name: "bold underscore", input: "__bold__", want: "bold"},
		{name: "italic", input: "*it*", want: "it"},
		{name: "italic underscore", input: "_it_", want: "it"},
		{name: "bold italic", input: "***both***", want: "both"},
		{name: "adjacent italics", input: "*a* *b*", want: "a b"},
		{name: "inline code", input: "use `fmt.Println`", want: "use fmt.Println"},
		{name: "raw tags removed", input: "a <b>bold</b> c<br/>", want: "a bold c"},
		{name: "tag with attributes", input: `<span class="x">t</span>`, want: "t"},
		{name: "unterminated bold", input: "**not closed", want: "**not closed"},
		{name: "single star", input: "a * b", want: "a * b"},
		{name: "unterminated code", input: "`open", want: "`open"},
		{name: "underscores inside a word pair up", input: "snake_case_name", want: "snakecasename"},
		{name: "full-width text untouched", input: "你好，世界", want: "你好，世界"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := SanitizeInline(tt.input); got != tt.want {
				t.Errorf("SanitizeInline(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestInlineRules_Order(t *testing.T) {
	t.Parallel()

	want := []string{
		"image", "link", "strikethrough", "bold", "bold-underscore",
		"italic", "italic-underscore", "code", "tag",
	}
	if len(inlineRules) != len(want) {
		t.Fatalf("len(inlineRules) = %d, want %d", len(inlineRules), len(want))
	}
	for i, rule := range inlineRules {
		if rule.name != want[i] {
			t.Errorf("inlineRules[%d] = %q, want %q", i, rule.name, want[i])
		}
	}
}

func TestReplaceAllSubmatchFunc_NoMatchReturnsInput(t *testing.T) {
	t.Parallel()

	in := "nothing here"
	got := replaceAllSubmatchFunc(inlineRules[0].re, in, func([]string) string {
		t.Fatal("replacement called without a match")
		return ""
	})
	if got != in {
		t.Errorf("replaceAllSubmatchFunc() = %q, want %q", got, in)
	}
}
