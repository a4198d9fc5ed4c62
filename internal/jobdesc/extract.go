package jobdesc

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var (
	scriptBlockRe   = regexp.MustCompile(`(?is)<script\b[^>]*>.*?</script>`)
	styleBlockRe    = regexp.MustCompile(`(?is)<style\b[^>]*>.*?</style>`)
	closingTagRe    = regexp.MustCompile(`</[^>]*>`)
	tagRe           = regexp.MustCompile(`<[^>]*>`)
	numericEntityRe = regexp.MustCompile(`&#(\d+);`)
	whitespaceRe    = regexp.MustCompile(`\s+`)
)

// entityReplacer decodes a fixed set of named entities in a single pass, so
// already-decoded text is never decoded again. Anything outside this set is
// left as-is.
var entityReplacer = strings.NewReplacer(
	"&amp;", "&",
	"&lt;", "<",
	"&gt;", ">",
	"&quot;", `"`,
	"&#39;", "'",
	"&apos;", "'",
	"&nbsp;", " ",
	"&ndash;", "–",
	"&mdash;", "—",
)

// ExtractText reduces an HTML document to its visible text. Script and style
// blocks are dropped with their contents, remaining tags are stripped,
// common entities are decoded, and whitespace is collapsed to single spaces.
//
// This is a deliberately lossy reduction for feeding text to a model, not an
// HTML parser: malformed markup degrades to extra stripped fragments rather
// than errors.
func ExtractText(html string) string {
	text := scriptBlockRe.ReplaceAllString(html, " ")
	text = styleBlockRe.ReplaceAllString(text, " ")
	text = closingTagRe.ReplaceAllString(text, "")
	text = tagRe.ReplaceAllString(text, " ")
	text = entityReplacer.Replace(text)
	text = numericEntityRe.ReplaceAllStringFunc(text, decodeNumericEntity)
	text = whitespaceRe.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

// decodeNumericEntity converts a decimal character reference like &#8211; to
// its rune. Hex references and out-of-range values are left untouched.
func decodeNumericEntity(entity string) string {
	n, err := strconv.Atoi(entity[2 : len(entity)-1])
	if err != nil || n < 0 || n > 0x10FFFF {
		return entity
	}
	return string(rune(n))
}

// PageTitle returns the text of the document's <title> element with
// whitespace collapsed, or "" when there is none. Used for logging and
// analytics, never for the extracted content itself.
func PageTitle(html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return ""
	}
	title := doc.Find("title").First().Text()
	return strings.Join(strings.Fields(title), " ")
}
