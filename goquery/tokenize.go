package goquery

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/termsift/termsift"
	"golang.org/x/net/html"
)

// sentenceBoundary splits text into sentences. A run of terminators acts as
// one boundary, so "Wait... what?" yields two sentences, and "3.14" splits
// into "3" and "14". Abbreviations are split too; term scoring tolerates
// the occasional short sentence better than a heavier sentence model would
// earn its keep here.
var sentenceBoundary = regexp.MustCompile(`[.!?]+`)

// extractTokens walks the filtered tree in document order, turning each
// text node into tokens, and returns them with the whitespace-collapsed
// plain text of the page. Group IDs advance once per non-whitespace text
// node, even when cleaning leaves no tokens, so gaps in the sequence are
// expected.
func extractTokens(doc *goquery.Document) ([]termsift.TextToken, string) {
	var (
		tokens     []termsift.TextToken
		plainParts []string
		position   int
		groupID    int
	)

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			text := strings.TrimSpace(n.Data)
			if text == "" {
				return
			}
			plainParts = append(plainParts, text)

			// Emphasis resolution starts at the enclosing element; the set
			// is a value, so every token below gets its own copy.
			emphasis := resolveEmphasis(n.Parent)
			tags := parentTags(n)

			for si, sentence := range splitSentences(text) {
				for wi, word := range splitWords(sentence) {
					cleaned := cleanWord(word)
					tokens = append(tokens, termsift.TextToken{
						Text:              word,
						CleanedText:       cleaned,
						Emphasis:          emphasis,
						Position:          position,
						ParagraphPosition: wi,
						SentencePosition:  wi,
						IsCapitalized:     isCapitalized(cleaned),
						IsSentenceStart:   si == 0 && wi == 0,
						ParentTags:        tags,
						TextGroupID:       groupID,
					})
					position++
				}
			}
			groupID++
			return
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	for _, root := range doc.Nodes {
		walk(root)
	}

	return tokens, strings.Join(strings.Fields(strings.Join(plainParts, " ")), " ")
}

// splitSentences splits text on terminator runs and drops segments that are
// empty after trimming, e.g. the tail of "Done." or a node of bare "!!!".
func splitSentences(text string) []string {
	var sentences []string
	for _, segment := range sentenceBoundary.Split(text, -1) {
		segment = strings.TrimSpace(segment)
		if segment == "" {
			continue
		}
		sentences = append(sentences, segment)
	}
	return sentences
}

// splitWords splits a sentence on whitespace and edge-cleans each word.
// Words that clean down to nothing (bare punctuation, dashes) are dropped.
func splitWords(sentence string) []string {
	var words []string
	for _, field := range strings.Fields(sentence) {
		word := cleanWord(field)
		if word == "" {
			continue
		}
		words = append(words, word)
	}
	return words
}

// cleanWord strips non-word runes from both ends, leaving interior
// punctuation alone: "(hello)," becomes "hello" while "NCC-1701" and
// "don't" pass through intact. Cleaning an already-clean word is a no-op,
// which is why Text and CleanedText always agree.
func cleanWord(word string) string {
	return strings.TrimFunc(word, func(r rune) bool {
		return !isWordRune(r)
	})
}

// isWordRune reports whether r is a letter, digit, or underscore. Unicode
// categories are used, so accented and non-Latin word characters survive
// cleaning.
func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// isCapitalized reports whether the first rune of word is uppercase.
func isCapitalized(word string) bool {
	r, _ := utf8.DecodeRuneInString(word)
	return unicode.IsUpper(r)
}
