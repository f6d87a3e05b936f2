package htmltext

import "testing"

func TestNormalize_stripsTagsAndDecodesEntities(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "tags and entity", input: "<b>A</b> &amp; B", want: "A & B"},
		{name: "empty", input: "", want: ""},
		{name: "whitespace runs", input: "  a \n\t b  ", want: "a b"},
		{name: "all five entities", input: "&amp;&quot;&#39;&lt;&gt;", want: `&"'<>`},
		{name: "nested tags", input: "<div><p>hello <span>world</span></p></div>", want: "hello world"},
		{name: "unclosed tag removed", input: "before <img src='x'> after", want: "before after"},
		{name: "only tags", input: "<br/><hr>", want: ""},
		{name: "entities inside attribute-like text", input: "a &lt;b&gt; c", want: "a <b> c"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := Normalize(tt.input); got != tt.want {
				t.Fatalf("Normalize(%q) got %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestDecode_onlyKnownEntities(t *testing.T) {
	t.Parallel()

	// 数値参照などの汎用エンティティはデコード対象外
	if got := Decode("&#x27;&nbsp;&amp;"); got != "&#x27;&nbsp;&" {
		t.Fatalf("Decode got %q", got)
	}
}
