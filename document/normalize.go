package document

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

type styleProp struct {
	name  string
	value string
}

// classStyles maps utility classes that carry print-relevant color or border
// information onto inline styles, since the print window has no stylesheet
// for them beyond the embedded conversions
var classStyles = map[string][]styleProp{
	"bg-yellow-100": {
		{"background-color", "#fef3c7"},
	},
	"border-yellow-400": {
		{"border-color", "#f59e0b"},
		{"border-width", "2px"},
		{"border-style", "solid"},
	},
	"text-red-600": {
		{"color", "#dc2626"},
	},
}

var imgStyles = []styleProp{
	{"max-width", "100%"},
	{"height", "auto"},
	{"page-break-inside", "avoid"},
}

var inputStyles = []styleProp{
	{"background-color", "transparent"},
	{"border", "none"},
	{"padding", "0"},
	{"margin", "0"},
	{"outline", "none"},
	{"box-shadow", "none"},
}

// NormalizeMarkup rewrites preview markup for print rendering: highlight and
// importance classes become inline styles, images are constrained to the
// page, form controls are flattened to plain text, and every element gets
// the print font. Normalizing twice yields the same markup.
func NormalizeMarkup(markup string) (string, error) {
	ctx := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(strings.NewReader(markup), ctx)
	if err != nil {
		return "", fmt.Errorf("failed to parse document markup: %w", err)
	}

	var buf strings.Builder
	for _, n := range nodes {
		normalizeNode(n)
		if err := html.Render(&buf, n); err != nil {
			return "", fmt.Errorf("failed to render document markup: %w", err)
		}
	}
	return buf.String(), nil
}

func normalizeNode(n *html.Node) {
	if n.Type == html.ElementNode {
		for _, class := range elementClasses(n) {
			if props, ok := classStyles[class]; ok {
				mergeStyles(n, props)
			}
		}

		switch n.DataAtom {
		case atom.Img:
			mergeStyles(n, imgStyles)
		case atom.Input, atom.Textarea:
			mergeStyles(n, inputStyles)
		}

		mergeStyles(n, []styleProp{{"font-family", "Arial, sans-serif"}})
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		normalizeNode(c)
	}
}

func elementClasses(n *html.Node) []string {
	for _, attr := range n.Attr {
		if attr.Key == "class" {
			return strings.Fields(attr.Val)
		}
	}
	return nil
}

// mergeStyles folds the given properties into the element's style attribute,
// overwriting same-named properties so repeated normalization is stable
func mergeStyles(n *html.Node, props []styleProp) {
	existing := parseStyle(styleAttr(n))

	for _, p := range props {
		replaced := false
		for i := range existing {
			if existing[i].name == p.name {
				existing[i].value = p.value
				replaced = true
				break
			}
		}
		if !replaced {
			existing = append(existing, p)
		}
	}

	setStyleAttr(n, renderStyle(existing))
}

func styleAttr(n *html.Node) string {
	for _, attr := range n.Attr {
		if attr.Key == "style" {
			return attr.Val
		}
	}
	return ""
}

func setStyleAttr(n *html.Node, style string) {
	for i := range n.Attr {
		if n.Attr[i].Key == "style" {
			n.Attr[i].Val = style
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: "style", Val: style})
}

func parseStyle(style string) []styleProp {
	props := make([]styleProp, 0)
	for _, decl := range strings.Split(style, ";") {
		name, value, ok := strings.Cut(decl, ":")
		if !ok {
			continue
		}
		name = strings.TrimSpace(name)
		value = strings.TrimSpace(value)
		if name == "" || value == "" {
			continue
		}
		props = append(props, styleProp{name: name, value: value})
	}
	return props
}

func renderStyle(props []styleProp) string {
	parts := make([]string, 0, len(props))
	for _, p := range props {
		parts = append(parts, p.name+": "+p.value)
	}
	return strings.Join(parts, "; ")
}
