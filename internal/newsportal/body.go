package newsportal

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var nullBody = []byte("null")

// BodyText renders an article body to plain text for searching. The body is
// either a JSON string with HTML or a rich-text document: a tree of typed
// nodes with "text" leaves and "content" children.
func BodyText(body json.RawMessage) (string, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || bytes.Equal(trimmed, nullBody) {
		return "", &ValidationError{Field: "body", Message: "is required"}
	}

	var value interface{}
	if err := json.Unmarshal(trimmed, &value); err != nil {
		return "", &ValidationError{Field: "body", Message: "must be valid JSON"}
	}

	var b strings.Builder
	switch v := value.(type) {
	case string:
		if err := writeHTMLText(&b, v); err != nil {
			return "", &ValidationError{Field: "body", Message: "must be valid HTML"}
		}
	case map[string]interface{}, []interface{}:
		writeNodeText(&b, v)
	default:
		return "", &ValidationError{Field: "body", Message: "must be an HTML string or a rich-text document"}
	}

	return strings.Join(strings.Fields(b.String()), " "), nil
}

var blockElements = map[string]struct{}{
	"address": {}, "article": {}, "aside": {}, "blockquote": {}, "br": {}, "dd": {}, "div": {},
	"dl": {}, "dt": {}, "figcaption": {}, "figure": {}, "footer": {}, "h1": {}, "h2": {},
	"h3": {}, "h4": {}, "h5": {}, "h6": {}, "header": {}, "hr": {}, "li": {}, "main": {},
	"ol": {}, "p": {}, "pre": {}, "section": {}, "table": {}, "td": {}, "th": {}, "tr": {}, "ul": {},
}

func writeHTMLText(b *strings.Builder, html string) error {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return err
	}

	var walk func(s *goquery.Selection)
	walk = func(s *goquery.Selection) {
		s.Contents().Each(func(_ int, c *goquery.Selection) {
			name := goquery.NodeName(c)
			switch name {
			case "#text":
				b.WriteString(c.Text())
			case "script", "style", "#comment":
			default:
				_, block := blockElements[name]
				if block {
					b.WriteByte(' ')
				}
				walk(c)
				if block {
					b.WriteByte(' ')
				}
			}
		})
	}
	walk(doc.Selection)

	return nil
}

// writeNodeText concatenates "text" leaves; any other node type is a
// boundary between words.
func writeNodeText(b *strings.Builder, node interface{}) {
	switch n := node.(type) {
	case []interface{}:
		for _, child := range n {
			writeNodeText(b, child)
		}
	case map[string]interface{}:
		if n["type"] == "text" {
			if text, ok := n["text"].(string); ok {
				b.WriteString(text)
			}
			return
		}

		b.WriteByte(' ')
		if content, ok := n["content"]; ok {
			writeNodeText(b, content)
		}
		b.WriteByte(' ')
	}
}
