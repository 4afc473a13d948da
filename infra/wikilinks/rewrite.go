// Package wikilinks rewrites wiki-internal anchors in rendered HTML so they
// point at the local cablecat jump CGI.
package wikilinks

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Options controls the generated jump URLs. Socket, SelectorPane and MainPane
// are only appended when Socket is set.
type Options struct {
	Port         int
	Socket       string
	SelectorPane string
	MainPane     string
}

var externalPrefixes = []string{"http:", "https:", "ftp:", "mailto:"}

// Rewrite reads an HTML document from r, rewrites the href of every
// <a title="wikilink"> that is not an external link, and writes the result
// to w. It returns the number of rewritten anchors.
func Rewrite(r io.Reader, w io.Writer, opts Options) (int, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return 0, fmt.Errorf("read html: %w", err)
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(raw))
	if err != nil {
		return 0, fmt.Errorf("parse html: %w", err)
	}

	n := 0
	doc.Find(`a[title="wikilink"]`).Each(func(_ int, a *goquery.Selection) {
		href, ok := a.Attr("href")
		if !ok || href == "" || isExternal(href) {
			return
		}
		a.SetAttr("href", JumpURL(href, opts))
		n++
	})

	out, err := render(doc, hasDocumentRoot(string(raw)))
	if err != nil {
		return 0, fmt.Errorf("render html: %w", err)
	}
	if _, err := io.WriteString(w, out); err != nil {
		return 0, fmt.Errorf("write html: %w", err)
	}
	return n, nil
}

// JumpURL builds the CGI URL for a wiki target.
func JumpURL(target string, opts Options) string {
	u := fmt.Sprintf("http://localhost:%d/cgi-bin/cablecat_jump.cgi?target=%s", opts.Port, quote(target))
	if opts.Socket != "" {
		u += "&socket=" + quote(opts.Socket)
		u += "&selector_pane=" + quote(opts.SelectorPane)
		u += "&main_pane=" + quote(opts.MainPane)
	}
	return u
}

func isExternal(href string) bool {
	for _, p := range externalPrefixes {
		if strings.HasPrefix(href, p) {
			return true
		}
	}
	return false
}

// quote percent-encodes every byte outside [A-Za-z0-9_.~/-], uppercase hex.
// Slashes stay literal so wiki paths remain readable.
func quote(s string) string {
	const hex = "0123456789ABCDEF"
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if isUnreserved(c) || c == '/' {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(hex[c>>4])
		b.WriteByte(hex[c&0x0f])
	}
	return b.String()
}

func isUnreserved(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	}
	return c == '_' || c == '.' || c == '-' || c == '~'
}

// hasDocumentRoot reports whether the source was a full document rather
// than a fragment. The HTML parser always synthesizes html/head/body, so
// fragments are rendered back without them.
func hasDocumentRoot(src string) bool {
	lower := strings.ToLower(src)
	return strings.Contains(lower, "<html") || strings.Contains(lower, "<!doctype")
}

func render(doc *goquery.Document, full bool) (string, error) {
	if full {
		return goquery.OuterHtml(doc.Selection)
	}
	head, err := doc.Find("head").Html()
	if err != nil {
		return "", err
	}
	body, err := doc.Find("body").Html()
	if err != nil {
		return "", err
	}
	return head + body, nil
}
