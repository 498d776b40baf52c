package sentiment

import (
	"bytes"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/jonreiter/govader"
	"github.com/russross/blackfriday/v2"
)

var (
	angleEscaper = strings.NewReplacer("<", "&lt;", ">", "&gt;")

	linkPattern = regexp.MustCompile(`\[(.*?)\]\((https?:\/\/[^\s\)]+)\)`)
	urlPattern  = regexp.MustCompile(`https?://\S+|www\.\S+`)
)

func RemoveLinks(input string) string {
	input = linkPattern.ReplaceAllString(input, "$1") // Keep only the text
	return urlPattern.ReplaceAllString(input, "")
}

// ConvertMarkdownToText renders any markdown in a review and keeps only the
// visible text, whitespace collapsed and links dropped. Angle brackets are
// kept as text, never parsed as inline HTML.
func ConvertMarkdownToText(input string) string {
	escaped := angleEscaper.Replace(RemoveLinks(input))
	output := blackfriday.Run([]byte(escaped), blackfriday.WithNoExtensions())

	text := string(output)
	if doc, err := goquery.NewDocumentFromReader(bytes.NewReader(output)); err == nil {
		text = doc.Text()
	}

	return strings.Join(strings.Fields(text), " ")
}

// Polarity scores a single piece of text in [-1, 1].
type Polarity interface {
	Polarity(text string) float64
}

type VaderPolarity struct {
	analyzer *govader.SentimentIntensityAnalyzer
}

func NewVaderPolarity() *VaderPolarity {
	return &VaderPolarity{analyzer: govader.NewSentimentIntensityAnalyzer()}
}

// Polarity returns VADER's compound score for the normalized text.
func (v *VaderPolarity) Polarity(text string) float64 {
	return v.analyzer.PolarityScores(ConvertMarkdownToText(text)).Compound
}
