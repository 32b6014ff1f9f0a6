// Package page is the HTML-parsing collaborator: it turns a fetched
// document into the structured input the analysis engine consumes (main
// body text, headings, URL and meta tokens, alt texts).
package page

import (
	"bytes"
	"io"
	"net/url"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html/charset"

	"github.com/afajohn/page-keyword-analyzer-sub000/pkg/semantic"
)

// Page is the parsed document.
type Page struct {
	URL             string             `json:"url"`
	Title           string             `json:"title"`
	MetaDescription string             `json:"meta_description"`
	MetaKeywords    []string           `json:"meta_keywords"`
	Headings        []semantic.Heading `json:"headings"`
	AltTexts        []string           `json:"alt_texts"`
	Content         string             `json:"content"`
	Language        string             `json:"language"`
}

var whitespaceRe = regexp.MustCompile(`\s+`)

// Parse extracts the engine input from an HTML document. The reader may be
// in any encoding the content type or document declares; bytes are decoded
// to UTF-8 first.
func Parse(r io.Reader, contentType, pageURL string) (Page, error) {
	buf := new(bytes.Buffer)
	if _, err := io.Copy(buf, r); err != nil {
		return Page{}, err
	}
	data := buf.Bytes()

	enc, _, _ := charset.DetermineEncoding(data, contentType)
	utf8data, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		if !utf8.Valid(data) {
			return Page{}, err
		}
		utf8data = data
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(utf8data))
	if err != nil {
		return Page{}, err
	}

	doc.Find("script,noscript,style").Each(func(i int, s *goquery.Selection) {
		s.Remove()
	})

	p := Page{
		URL:             pageURL,
		Title:           strings.TrimSpace(doc.Find("title").First().Text()),
		MetaDescription: strings.TrimSpace(doc.Find(`meta[name="description"]`).AttrOr("content", "")),
		Language:        strings.TrimSpace(doc.Find("html").AttrOr("lang", "")),
	}
	if p.MetaDescription == "" {
		p.MetaDescription = strings.TrimSpace(doc.Find(`meta[property="og:description"]`).AttrOr("content", ""))
	}

	if kw := doc.Find(`meta[name="keywords"]`).AttrOr("content", ""); kw != "" {
		for _, k := range strings.Split(kw, ",") {
			if trim := strings.ToLower(strings.TrimSpace(k)); trim != "" {
				p.MetaKeywords = append(p.MetaKeywords, trim)
			}
		}
	}

	doc.Find("h1,h2,h3,h4,h5,h6").Each(func(i int, s *goquery.Selection) {
		text := strings.TrimSpace(s.Text())
		if text == "" {
			return
		}
		p.Headings = append(p.Headings, semantic.Heading{
			Tag:      goquery.NodeName(s),
			Text:     text,
			Keywords: headingKeywords(text),
		})
	})

	doc.Find("img[alt]").Each(func(i int, s *goquery.Selection) {
		if alt := strings.TrimSpace(s.AttrOr("alt", "")); alt != "" {
			p.AltTexts = append(p.AltTexts, alt)
		}
	})

	var parts []string
	doc.Find("p,li").Each(func(i int, s *goquery.Selection) {
		if t := strings.TrimSpace(s.Text()); t != "" {
			parts = append(parts, t)
		}
	})
	p.Content = strings.TrimSpace(whitespaceRe.ReplaceAllString(strings.Join(parts, " "), " "))

	return p, nil
}

// EngineInput converts the parsed page into the analysis engine contract.
func (p Page) EngineInput() semantic.Input {
	return semantic.Input{
		Content:         p.Content,
		Headings:        p.Headings,
		URLKeywords:     SlugKeywords(p.URL),
		MetaKeywords:    p.MetaKeywords,
		Title:           p.Title,
		MetaDescription: p.MetaDescription,
		AltTexts:        p.AltTexts,
	}
}

var slugSplitRe = regexp.MustCompile(`[/\-_.+]+`)

// SlugKeywords tokenizes the URL path into lowercase keywords, dropping
// extensions, numbers, and fragments too short to carry meaning.
func SlugKeywords(rawURL string) []string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil
	}
	path := strings.ToLower(u.Path)
	for _, ext := range []string{".html", ".htm", ".php", ".asp", ".aspx"} {
		path = strings.TrimSuffix(path, ext)
	}

	var out []string
	for _, part := range slugSplitRe.Split(path, -1) {
		if len(part) < 3 || isNumeric(part) {
			continue
		}
		out = append(out, part)
	}
	return out
}

func isNumeric(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}

// headingKeywords lowercases and splits a heading into word tokens.
func headingKeywords(text string) []string {
	var out []string
	for _, w := range strings.Fields(strings.ToLower(text)) {
		w = strings.Trim(w, ".,;:()\"'!?")
		if len(w) >= 3 {
			out = append(out, w)
		}
	}
	return out
}
