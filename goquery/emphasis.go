package goquery

import (
	"github.com/termsift/termsift"
	"golang.org/x/net/html"
)

// emphasisByTag maps element names to the emphasis type they confer on
// descendant text. Element names from x/net/html are already lowercase.
var emphasisByTag = map[string]termsift.EmphasisType{
	"b":          termsift.EmphasisBold,
	"strong":     termsift.EmphasisStrong,
	"i":          termsift.EmphasisItalic,
	"em":         termsift.EmphasisEm,
	"u":          termsift.EmphasisUnderline,
	"code":       termsift.EmphasisCode,
	"h1":         termsift.EmphasisHeader,
	"h2":         termsift.EmphasisHeader,
	"h3":         termsift.EmphasisHeader,
	"h4":         termsift.EmphasisHeader,
	"h5":         termsift.EmphasisHeader,
	"h6":         termsift.EmphasisHeader,
	"a":          termsift.EmphasisLinkText,
	"blockquote": termsift.EmphasisBlockquote,
}

// resolveEmphasis accumulates emphasis types from start up to the root.
// For text nodes start is the parent element; for anchors it is the anchor
// element itself, which is how link text picks up the link-text type.
// Nested same-type elements collapse into one set member.
func resolveEmphasis(start *html.Node) termsift.EmphasisSet {
	var set termsift.EmphasisSet
	for n := start; n != nil; n = n.Parent {
		if n.Type != html.ElementNode {
			continue
		}
		if typ, ok := emphasisByTag[n.Data]; ok {
			set.Add(typ)
		} else if n.Data == "title" {
			// The document title reads as a page-level heading.
			set.Add(termsift.EmphasisHeader)
		}
	}
	return set
}

// parentTags collects the element ancestors of n, nearest first. Non-element
// ancestors (the document node) are skipped.
func parentTags(n *html.Node) []string {
	var tags []string
	for p := n.Parent; p != nil; p = p.Parent {
		if p.Type == html.ElementNode {
			tags = append(tags, p.Data)
		}
	}
	return tags
}
