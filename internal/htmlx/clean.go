// Package htmlx cleans and minifies page HTML before it is handed to a
// model or a human: script/style/meta/comment removal and inter-tag
// whitespace collapsing.
package htmlx

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Options select which node kinds are dropped from the document.
// Removals are independent; Minify collapses whitespace between
// adjacent tags only.
type Options struct {
	RemoveScripts  bool
	RemoveStyles   bool
	RemoveMeta     bool
	RemoveComments bool
	Minify         bool
}

// AllRemovals returns options with all four removals enabled. Minify
// stays opt-in.
func AllRemovals() Options {
	return Options{
		RemoveScripts:  true,
		RemoveStyles:   true,
		RemoveMeta:     true,
		RemoveComments: true,
	}
}

var (
	interTagSpace = regexp.MustCompile(`>\s+<`)
	htmlRootTag   = regexp.MustCompile(`(?i)<html[\s>]`)
)

// Clean strips the selected node kinds and re-renders the input. A full
// document keeps its document shape; element fragments, such as the
// outer HTML of a single node, are parsed in a body context so the
// output is not rewrapped in an implied <html><body> envelope.
func Clean(raw string, opts Options) (string, error) {
	if !htmlRootTag.MatchString(raw) {
		return cleanFragment(raw, opts)
	}

	doc, err := html.Parse(strings.NewReader(raw))
	if err != nil {
		return "", fmt.Errorf("parse html: %w", err)
	}

	strip(doc, opts)

	var buf bytes.Buffer

	if err := html.Render(&buf, doc); err != nil {
		return "", fmt.Errorf("render html: %w", err)
	}

	return finish(buf.String(), opts), nil
}

func cleanFragment(raw string, opts Options) (string, error) {
	body := &html.Node{
		Type:     html.ElementNode,
		Data:     "body",
		DataAtom: atom.Body,
	}

	nodes, err := html.ParseFragment(strings.NewReader(raw), body)
	if err != nil {
		return "", fmt.Errorf("parse html fragment: %w", err)
	}

	var buf bytes.Buffer

	for _, node := range nodes {
		if removable(node, opts) {
			continue
		}

		strip(node, opts)

		if err := html.Render(&buf, node); err != nil {
			return "", fmt.Errorf("render html: %w", err)
		}
	}

	return finish(buf.String(), opts), nil
}

func finish(out string, opts Options) string {
	if opts.Minify {
		out = Minify(out)
	}

	return out
}

// Minify collapses whitespace between adjacent tags. Text inside a
// single element is left untouched.
func Minify(s string) string {
	return interTagSpace.ReplaceAllString(s, "><")
}

func strip(n *html.Node, opts Options) {
	var next *html.Node

	for c := n.FirstChild; c != nil; c = next {
		next = c.NextSibling

		if removable(c, opts) {
			n.RemoveChild(c)
			continue
		}

		strip(c, opts)
	}
}

func removable(n *html.Node, opts Options) bool {
	if n.Type == html.CommentNode {
		return opts.RemoveComments
	}

	if n.Type != html.ElementNode {
		return false
	}

	switch strings.ToLower(n.Data) {
	case "script":
		return opts.RemoveScripts
	case "style":
		return opts.RemoveStyles
	case "meta":
		return opts.RemoveMeta
	default:
		return false
	}
}
