// Package pages serves local markdown pages that host authored blocks.
// A page body is rendered with goldmark, sanitized, and its block tables are
// expanded into the div structure the block decorator consumes.
package pages

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"gopkg.in/yaml.v3"
)

// ErrNotFound is returned when no page exists for a slug.
var ErrNotFound = errors.New("pages: not found")

const defaultContentDir = "content"

// Page is one rendered content page.
type Page struct {
	Slug        string
	Title       string
	Description string
	// Body is sanitized HTML with block tables already expanded.
	Body string
}

type frontMatter struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
}

var markdown = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
)

var bodyPolicy = newBodyPolicy()

func newBodyPolicy() *bluemonday.Policy {
	policy := bluemonday.UGCPolicy()
	policy.AllowAttrs("class").OnElements("div", "p", "span")
	policy.AllowAttrs("loading").OnElements("img")
	policy.RequireNoFollowOnLinks(true)
	return policy
}

// Load reads and renders the markdown page for slug from dir.
func Load(dir, slug string) (Page, error) {
	if strings.TrimSpace(dir) == "" {
		dir = defaultContentDir
	}
	slug = sanitizeSlug(slug)
	if slug == "" {
		return Page{}, ErrNotFound
	}

	data, err := os.ReadFile(filepath.Join(dir, slug+".md"))
	if errors.Is(err, fs.ErrNotExist) {
		return Page{}, ErrNotFound
	}
	if err != nil {
		return Page{}, err
	}

	fm, body := splitFrontMatter(string(data))
	front := frontMatter{}
	if strings.TrimSpace(fm) != "" {
		if err := yaml.Unmarshal([]byte(fm), &front); err != nil {
			return Page{}, fmt.Errorf("pages: parse front matter %s: %w", slug, err)
		}
	}

	var buf bytes.Buffer
	if err := markdown.Convert([]byte(body), &buf); err != nil {
		return Page{}, fmt.Errorf("pages: render %s: %w", slug, err)
	}

	rendered, err := expandBlockTables(bodyPolicy.Sanitize(buf.String()))
	if err != nil {
		return Page{}, fmt.Errorf("pages: expand blocks %s: %w", slug, err)
	}

	title := strings.TrimSpace(front.Title)
	if title == "" {
		title = prettifySlug(slug)
	}
	return Page{
		Slug:        slug,
		Title:       title,
		Description: strings.TrimSpace(front.Description),
		Body:        rendered,
	}, nil
}

func splitFrontMatter(input string) (string, string) {
	input = strings.TrimLeft(input, "\uFEFF")
	lines := strings.Split(input, "\n")
	if len(lines) == 0 {
		return "", ""
	}
	if strings.TrimSpace(lines[0]) != "---" {
		return "", input
	}
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == "---" {
			fm := strings.Join(lines[1:i], "\n")
			body := strings.Join(lines[i+1:], "\n")
			return fm, strings.TrimLeft(body, "\n\r")
		}
	}
	return "", input
}

func sanitizeSlug(slug string) string {
	slug = strings.TrimSpace(strings.ToLower(slug))
	slug = strings.Trim(slug, "/")
	if slug == "" {
		return ""
	}
	if strings.Contains(slug, "..") {
		return ""
	}
	if strings.ContainsRune(slug, os.PathSeparator) {
		return ""
	}
	return slug
}

func prettifySlug(slug string) string {
	parts := strings.Split(slug, "-")
	for i, part := range parts {
		if part == "" {
			continue
		}
		runes := []rune(part)
		runes[0] = asciiUpper(runes[0])
		parts[i] = string(runes)
	}
	return strings.Join(parts, " ")
}

func asciiUpper(r rune) rune {
	if r >= 'a' && r <= 'z' {
		return r - ('a' - 'A')
	}
	return r
}
