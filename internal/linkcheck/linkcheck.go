// Package linkcheck verifies that the links emitted by the summary
// renderers resolve to files that actually exist in the output directory.
// Broken links are findings, not failures; callers decide how loudly to
// report them.
package linkcheck

import (
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/yuin/goldmark"
	gmast "github.com/yuin/goldmark/ast"
	gmtext "github.com/yuin/goldmark/text"
	"golang.org/x/net/html"

	apperrors "git.home.luguber.info/inful/helpdocs/internal/errors"
)

// Broken is one unresolvable link.
type Broken struct {
	Source string // file the link was found in
	URL    string // link destination as written
}

// VerifyHTML parses the HTML file at path and checks every relative href
// against outDir. External schemes and fragments are skipped.
func VerifyHTML(path, outDir string) ([]Broken, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CategoryFileSystem, "open HTML file")
	}
	defer func() { _ = f.Close() }()

	doc, err := html.Parse(f)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CategoryRender, "parse HTML")
	}

	var broken []Broken
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "a" {
			if href := getAttr(n, "href"); href != "" && isRelative(href) {
				if !exists(filepath.Join(outDir, filepath.FromSlash(href))) {
					broken = append(broken, Broken{Source: path, URL: href})
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return broken, nil
}

// VerifyMarkdown parses the Markdown file at path and checks every link
// rooted at baseURL against outDir. Links outside baseURL are skipped.
func VerifyMarkdown(path, outDir, baseURL string) ([]Broken, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CategoryFileSystem, "read Markdown file")
	}

	base := strings.TrimRight(baseURL, "/")
	md := goldmark.New()
	root := md.Parser().Parse(gmtext.NewReader(data))

	var broken []Broken
	_ = gmast.Walk(root, func(n gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering {
			return gmast.WalkContinue, nil
		}
		var dest string
		switch node := n.(type) {
		case *gmast.Link:
			dest = string(node.Destination)
		case *gmast.AutoLink:
			dest = string(node.URL(data))
		default:
			return gmast.WalkContinue, nil
		}
		if base == "" || !strings.HasPrefix(dest, base+"/") {
			return gmast.WalkContinue, nil
		}
		rel := strings.TrimPrefix(dest, base+"/")
		if !exists(filepath.Join(outDir, filepath.FromSlash(rel))) {
			broken = append(broken, Broken{Source: path, URL: dest})
		}
		return gmast.WalkContinue, nil
	})

	return broken, nil
}

func getAttr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func isRelative(href string) bool {
	if strings.HasPrefix(href, "#") {
		return false
	}
	u, err := url.Parse(href)
	if err != nil {
		return false
	}
	return u.Scheme == "" && u.Host == ""
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
