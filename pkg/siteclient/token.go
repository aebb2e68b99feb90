package siteclient

import (
	"io"

	"golang.org/x/net/html"
)

// TokenFromHTML returns the value of the first
// <input name="csrfmiddlewaretoken"> in the document.
func TokenFromHTML(r io.Reader) (string, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return "", err
	}
	if tok, ok := findToken(doc); ok {
		return tok, nil
	}
	return "", ErrNoToken
}

func findToken(n *html.Node) (string, bool) {
	if n.Type == html.ElementNode && n.Data == "input" && attr(n, "name") == CSRFField {
		if v := attr(n, "value"); v != "" {
			return v, true
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if tok, ok := findToken(c); ok {
			return tok, true
		}
	}
	return "", false
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}
