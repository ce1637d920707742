// Package books converts a Book Track CSV export into one markdown note per
// book, with YAML frontmatter for the Obsidian Bookshelf plugin.
package books

import (
	"context"
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"gopkg.in/yaml.v3"
)

// DefaultDelimiter is the field separator Book Track exports use.
const DefaultDelimiter = ';'

// ParseDelimiter returns the first rune of s, or DefaultDelimiter when s is
// empty. Decoding a rune keeps multi-byte delimiters intact.
func ParseDelimiter(s string) rune {
	if s == "" {
		return DefaultDelimiter
	}
	r, _ := utf8.DecodeRuneInString(s)
	return r
}

type frontmatter struct {
	Cover     string   `yaml:"cover,omitempty"`
	Author    []string `yaml:"author,omitempty"`
	Published string   `yaml:"published,omitempty"`
	Publisher string   `yaml:"publisher,omitempty"`
	Rating    string   `yaml:"rating,omitempty"`
	Pages     string   `yaml:"pages,omitempty"`
	Language  string   `yaml:"language,omitempty"`
	Subtitle  string   `yaml:"subtitle,omitempty"`
	Types     []string `yaml:"types,omitempty"`
	ISBN10    string   `yaml:"isbn10,omitempty"`
	ISBN13    string   `yaml:"isbn13,omitempty"`
	Source    string   `yaml:"source,omitempty"`
}

var (
	invalidFilenameRe = regexp.MustCompile(`[<>:"/\\|?*]`)
	repeatUnderscores = regexp.MustCompile(`_+`)
)

// sanitizeFilename makes a book title safe to use as a file name.
func sanitizeFilename(title string) string {
	s := invalidFilenameRe.ReplaceAllString(title, "_")
	s = repeatUnderscores.ReplaceAllString(s, "_")
	return strings.TrimSpace(strings.Trim(s, "_"))
}

// formatDate normalizes an ISO timestamp to YYYY-MM-DD, passing through
// anything it cannot parse.
func formatDate(s string) string {
	if s == "" {
		return ""
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("2006-01-02")
		}
	}
	return s
}

func parseList(s string) []string {
	if s == "" {
		return nil
	}
	var items []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}

// parseAuthors turns Book Track's "Last,First" author pairs into
// "First Last". A part containing a space is taken as an already-formatted
// single name.
func parseAuthors(s string) []string {
	if s == "" {
		return nil
	}

	parts := strings.Split(s, ",")
	var authors []string

	for i := 0; i < len(parts); i++ {
		part := strings.TrimSpace(parts[i])
		if part == "" {
			continue
		}
		if !strings.Contains(part, " ") && i+1 < len(parts) {
			first := strings.TrimSpace(parts[i+1])
			authors = append(authors, first+" "+part)
			i++
			continue
		}
		authors = append(authors, part)
	}

	return authors
}

// sourceFromTags extracts the source from the tags field: everything before
// the first '|'.
func sourceFromTags(tags string) string {
	if idx := strings.IndexByte(tags, '|'); idx >= 0 {
		return strings.TrimSpace(tags[:idx])
	}
	return strings.TrimSpace(tags)
}

func renderNote(row map[string]string) (string, error) {
	fm := frontmatter{
		Cover:     row["remoteImageUrl"],
		Author:    parseAuthors(row["authors"]),
		Published: formatDate(row["releaseDate"]),
		Publisher: row["publishers"],
		Rating:    row["userRating"],
		Pages:     row["pages"],
		Language:  row["languages"],
		Subtitle:  row["subtitle"],
		ISBN10:    row["isbn10"],
		ISBN13:    row["isbn13"],
		Source:    sourceFromTags(row["tags"]),
	}
	for _, item := range parseList(row["types"]) {
		fm.Types = append(fm.Types, strings.ToLower(item))
	}

	fmBytes, err := yaml.Marshal(fm)
	if err != nil {
		return "", fmt.Errorf("rendering frontmatter: %w", err)
	}

	var b strings.Builder
	b.WriteString("---\n")
	b.Write(fmBytes)
	b.WriteString("---\n")
	fmt.Fprintf(&b, "# %s\n\n", row["title"])
	b.WriteString("## Reading Journey\n\n")

	if started := formatDate(row["startReading"]); started != "" {
		fmt.Fprintf(&b, "- %s: Started\n", started)
	}
	if finished := formatDate(row["endReading"]); finished != "" {
		fmt.Fprintf(&b, "- %s: Finished\n", finished)
	}

	return b.String(), nil
}

// Convert reads the CSV export and writes one markdown note per book into
// outputDir, returning the number of notes created. Rows without a title are
// skipped with a warning.
func Convert(ctx context.Context, csvPath, outputDir string, delimiter rune) (int, error) {
	f, err := os.Open(csvPath) // #nosec G304 -- user-supplied input file
	if err != nil {
		return 0, fmt.Errorf("opening CSV: %w", err)
	}
	defer f.Close() //nolint:errcheck

	if err := os.MkdirAll(outputDir, 0750); err != nil {
		return 0, fmt.Errorf("creating output directory: %w", err)
	}

	reader := csv.NewReader(f)
	reader.Comma = delimiter
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return 0, fmt.Errorf("parsing CSV: %w", err)
	}
	if len(records) == 0 {
		return 0, fmt.Errorf("CSV %s is empty", csvPath)
	}

	header := records[0]
	created := 0

	for rowNum, record := range records[1:] {
		row := map[string]string{}
		for i, field := range record {
			if i < len(header) {
				row[strings.TrimSpace(header[i])] = strings.TrimSpace(field)
			}
		}

		title := row["title"]
		if title == "" {
			slog.WarnContext(ctx, "Skipping row without title", "row", rowNum+2)
			continue
		}

		content, rErr := renderNote(row)
		if rErr != nil {
			return created, rErr
		}

		notePath := filepath.Join(outputDir, sanitizeFilename(title)+".md")
		if wErr := os.WriteFile(notePath, []byte(content), 0600); wErr != nil {
			return created, fmt.Errorf("writing %s: %w", notePath, wErr)
		}

		slog.InfoContext(ctx, "Created note", "file", filepath.Base(notePath))
		created++
	}

	return created, nil
}
