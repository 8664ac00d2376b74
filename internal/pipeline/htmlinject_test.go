package pipeline

import (
	"context"
	"strings"
	"testing"
)

func TestCSSInjection_InjectCSS(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		html string
		css  string
		want string
	}{
		{
			name: "before head close",
			html: "<html><head><title>x</title></head><body></body></html>",
			css:  "body{}",
			want: "<html><head><title>x</title><style>body{}</style>\n</head><body></body></html>",
		},
		{
			name: "uppercase head",
			html: "<HTML><HEAD></HEAD></HTML>",
			css:  "p{}",
			want: "<HTML><HEAD><style>p{}</style>\n</HEAD></HTML>",
		},
		{
			name: "after body open when no head",
			html: `<body class="x"><p>a</p></body>`,
			css:  "p{}",
			want: `<body class="x"><style>p{}</style>` + "\n<p>a</p></body>",
		},
		{
			name: "prepend for fragments",
			html: "<p>a</p>",
			css:  "p{}",
			want: "<style>p{}</style>\n<p>a</p>",
		},
		{
			name: "empty css is a no-op",
			html: "<p>a</p>",
			css:  "  ",
			want: "<p>a</p>",
		},
		{
			name: "style close sequence escaped",
			html: "<p>a</p>",
			css:  "p{}</style><script>",
			want: `<style>p{}<\/style><script></style>` + "\n<p>a</p>",
		},
	}

	inj := &CSSInjection{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := inj.InjectCSS(context.Background(), tt.html, tt.css); got != tt.want {
				t.Errorf("InjectCSS() =\n%q\nwant\n%q", got, tt.want)
			}
		})
	}
}

func TestCSSInjection_LaterBlocksFollowEarlier(t *testing.T) {
	t.Parallel()

	inj := &CSSInjection{}
	html := "<html><head></head></html>"
	html = inj.InjectCSS(context.Background(), html, "/*theme*/")
	html = inj.InjectCSS(context.Background(), html, "/*user*/")

	if strings.Index(html, "/*theme*/") > strings.Index(html, "/*user*/") {
		t.Errorf("user CSS must come after theme CSS: %s", html)
	}
}
