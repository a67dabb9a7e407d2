package cafeapi

import (
	"bytes"
	"strings"

	"golang.org/x/net/html"
)

// htmlTitle returns the text of the first <title> element, if any.
func htmlTitle(page []byte) string {
	z := html.NewTokenizer(bytes.NewReader(page))
	inTitle := false
	for {
		switch z.Next() {
		case html.ErrorToken:
			return ""
		case html.StartTagToken:
			name, _ := z.TagName()
			inTitle = string(name) == "title"
		case html.TextToken:
			if inTitle {
				return strings.TrimSpace(string(z.Text()))
			}
		case html.EndTagToken:
			inTitle = false
		}
	}
}
