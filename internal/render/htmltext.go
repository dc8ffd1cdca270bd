package render

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const blockSelector = "p, div, ul, ol, h1, h2, h3, h4, h5, h6, blockquote, pre, table, tr"

// HTMLToText converts the HTML fragments the catalog stores for descriptions
// and goals into plain text. List items become "- " bullets and block
// elements are separated by blank lines. Input without markup is returned
// with surrounding whitespace trimmed.
func HTMLToText(fragment string) string {
	if strings.TrimSpace(fragment) == "" {
		return ""
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return strings.TrimSpace(fragment)
	}

	doc.Find("script, style").Remove()
	doc.Find("br").ReplaceWithHtml("\n")
	doc.Find("li").PrependHtml("\n- ")
	doc.Find(blockSelector).PrependHtml("\n\n").AppendHtml("\n\n")

	return normalizeLines(doc.Find("body").Text())
}

// normalizeLines trims every line and collapses runs of blank lines.
func normalizeLines(text string) string {
	var out []string
	blank := false
	for _, line := range strings.Split(text, "\n") {
		line = strings.Join(strings.Fields(line), " ")
		if line == "" {
			blank = len(out) > 0
			continue
		}
		if blank {
			out = append(out, "")
			blank = false
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}
