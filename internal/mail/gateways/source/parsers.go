package source

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	logpkg "github.com/haukened/dispofilter/internal/mail/common/log"
	"github.com/haukened/dispofilter/internal/mail/domain"
)

// Supported values for the source format setting.
const (
	FormatMarkup = "markup"
	FormatPlain  = "plain"
)

// ErrNoDomains is returned when a document parses but yields no domains.
// An empty result most likely means the remote layout changed.
var ErrNoDomains = errors.New("no domains found in document")

// Parser extracts an ordered, de-duplicated list of domains from a document.
type Parser func(r io.Reader) ([]string, error)

// NewParser returns the parser for format. class is only used by the markup format.
func NewParser(format, class string, logger logpkg.Logger) (Parser, error) {
	switch format {
	case FormatMarkup:
		if strings.TrimSpace(class) == "" {
			return nil, fmt.Errorf("markup parser requires a class name")
		}
		return func(r io.Reader) ([]string, error) {
			return ParseMarkup(r, class, logger)
		}, nil
	case FormatPlain:
		return func(r io.Reader) ([]string, error) {
			return ParsePlainList(r, logger)
		}, nil
	default:
		return nil, fmt.Errorf("unsupported source format: %q", format)
	}
}

// ParseMarkup parses an HTML document and collects the text of every <td>
// element whose class attribute contains class as one of its tokens.
//
// Behavior:
// - Cell text is the concatenation of all descendant text nodes
// - Surrounding whitespace is trimmed; empty cells are skipped
// - Entries that are not valid domain names are skipped
// - De-duplicates while preserving first-seen order
func ParseMarkup(r io.Reader, class string, logger logpkg.Logger) ([]string, error) {
	logger.Debug(map[string]any{"class": class}, "parse_markup_start")

	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse markup: %w", err)
	}

	c := newCollector(logger)
	cell := 0
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.DataAtom == atom.Td && hasClass(n, class) {
			cell++
			c.add(cell, nodeText(n))
			return
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(doc)

	logger.Debug(map[string]any{"cells": cell, "count": len(c.out)}, "parse_markup_done")
	return c.result()
}

// ParsePlainList parses a newline-delimited list of domains.
//
// Behavior:
// - Supports comments starting with '#' (inline or whole-line)
// - Strips a leading byte order mark
// - Trims surrounding whitespace and skips empty lines
// - Entries that are not valid domain names are skipped
// - De-duplicates while preserving first-seen order
func ParsePlainList(r io.Reader, logger logpkg.Logger) ([]string, error) {
	logger.Debug(nil, "parse_plain_list_start")

	scanner := bufio.NewScanner(r)
	c := newCollector(logger)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Text()
		if lineNum == 1 {
			line = strings.TrimPrefix(line, "\uFEFF")
		}
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		c.add(lineNum, line)
	}
	if err := scanner.Err(); err != nil {
		logger.Debug(map[string]any{"error": err.Error()}, "parse_plain_list_scan_error")
		return nil, fmt.Errorf("scan plain list: %w", err)
	}

	logger.Debug(map[string]any{"lines": lineNum, "count": len(c.out)}, "parse_plain_list_done")
	return c.result()
}

// collector applies the shared trim, validate, de-duplicate policy.
type collector struct {
	logger logpkg.Logger
	seen   map[string]struct{}
	out    []string
}

func newCollector(logger logpkg.Logger) *collector {
	return &collector{
		logger: logger,
		seen:   make(map[string]struct{}),
		out:    make([]string, 0, 4096),
	}
}

func (c *collector) add(pos int, raw string) {
	name := strings.TrimSpace(raw)
	if name == "" {
		c.logger.Debug(map[string]any{"pos": pos}, "skip_empty")
		return
	}
	if !domain.IsValidDomain(name) {
		c.logger.Debug(map[string]any{"pos": pos, "raw": name}, "skip_invalid_domain")
		return
	}
	if _, ok := c.seen[name]; ok {
		c.logger.Debug(map[string]any{"pos": pos, "name": name}, "skip_duplicate")
		return
	}
	c.seen[name] = struct{}{}
	c.out = append(c.out, name)
}

func (c *collector) result() ([]string, error) {
	if len(c.out) == 0 {
		return nil, ErrNoDomains
	}
	return c.out, nil
}

// hasClass reports whether n's class attribute contains class as a token.
func hasClass(n *html.Node, class string) bool {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == "class" {
			return slices.Contains(strings.Fields(a.Val), class)
		}
	}
	return false
}

// nodeText concatenates the text nodes below n.
func nodeText(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(n)
	return b.String()
}
