// Package bookmarks extracts Safari bookmarks into a markdown link list.
// Plist decoding is delegated to plutil, which converts the (binary) plist
// to JSON on stdout.
package bookmarks

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/hibare/GoCommon/v2/pkg/os/exec"
)

// Bookmark is a single extracted bookmark with its folder path.
type Bookmark struct {
	Folder string
	Title  string
	URL    string
}

// node mirrors the structure plutil emits for Safari's Bookmarks.plist.
type node struct {
	Title           string `json:"Title"`
	WebBookmarkType string `json:"WebBookmarkType"`
	URLString       string `json:"URLString"`
	URIDictionary   struct {
		Title string `json:"title"`
	} `json:"URIDictionary"`
	Children []node `json:"Children"`
}

// ExtractorIface defines the interface for bookmark extraction.
// revive:disable-next-line exported
type ExtractorIface interface {
	Extract(ctx context.Context, plistPath string) ([]Bookmark, error)
}

// Extractor reads bookmarks out of a Safari plist file.
type Extractor struct {
	exec exec.ExecIface
}

func walk(n node, folder string, out *[]Bookmark) {
	if n.WebBookmarkType == "WebBookmarkTypeLeaf" && n.URLString != "" {
		title := n.URIDictionary.Title
		if title == "" {
			title = n.URLString
		}
		*out = append(*out, Bookmark{Folder: folder, Title: title, URL: n.URLString})
		return
	}

	childFolder := folder
	if n.Title != "" {
		if childFolder == "" {
			childFolder = n.Title
		} else {
			childFolder = childFolder + "/" + n.Title
		}
	}
	for _, child := range n.Children {
		walk(child, childFolder, out)
	}
}

// Extract converts the plist via plutil and walks the bookmark tree.
func (e *Extractor) Extract(ctx context.Context, plistPath string) ([]Bookmark, error) {
	if _, err := os.Stat(plistPath); err != nil {
		return nil, fmt.Errorf("bookmarks file %s: %w", plistPath, err)
	}
	if _, err := e.exec.LookPath("plutil"); err != nil {
		return nil, fmt.Errorf("plutil not found in PATH: %w", err)
	}

	slog.InfoContext(ctx, "Extracting bookmarks", "file", plistPath)
	output, err := e.exec.Command(ctx, "plutil", "-convert", "json", "-o", "-", plistPath).
		WithStderr(os.Stderr).
		Output()
	if err != nil {
		return nil, fmt.Errorf("converting plist: %w", err)
	}

	var root node
	if err := json.Unmarshal(output, &root); err != nil {
		return nil, fmt.Errorf("parsing plutil output: %w", err)
	}

	var bookmarks []Bookmark
	walk(root, "", &bookmarks)

	slog.InfoContext(ctx, "Extracted bookmarks", "count", len(bookmarks))
	return bookmarks, nil
}

// RenderMarkdown renders bookmarks as markdown links with one heading per
// folder. The walk interleaves a folder's leaves with its subfolders, so
// entries are grouped up front; folders keep their first-appearance order.
func RenderMarkdown(bookmarks []Bookmark) string {
	var folders []string
	grouped := map[string][]Bookmark{}
	for _, bm := range bookmarks {
		if _, ok := grouped[bm.Folder]; !ok {
			folders = append(folders, bm.Folder)
		}
		grouped[bm.Folder] = append(grouped[bm.Folder], bm)
	}

	var b strings.Builder
	for i, folder := range folders {
		if i > 0 {
			b.WriteString("\n")
		}
		heading := folder
		if heading == "" {
			heading = "Unsorted"
		}
		fmt.Fprintf(&b, "## %s\n\n", heading)
		for _, bm := range grouped[folder] {
			fmt.Fprintf(&b, "- [%s](%s)\n", bm.Title, bm.URL)
		}
	}

	return b.String()
}

// NewExtractor creates a new bookmark Extractor.
func NewExtractor(exec exec.ExecIface) *Extractor {
	return &Extractor{exec: exec}
}
