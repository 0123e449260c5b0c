package docusaurus

import (
	"crypto/sha256"
	"encoding/hex"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// LoadedDoc is one markdown file discovered in a Docusaurus docs tree.
type LoadedDoc struct {
	Title      string
	SourcePath string // relative to the docs root
	Content    string
	Checksum   string
}

// Load walks docsDir for .md/.mdx files and returns them ready for
// ingestion. Checksums are sha256 over the raw content so identical files
// dedup reliably across runs.
func Load(docsDir string) ([]LoadedDoc, error) {
	var docs []LoadedDoc

	err := filepath.WalkDir(docsDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		ext := strings.ToLower(filepath.Ext(path))
		if ext != ".md" && ext != ".mdx" {
			return nil
		}

		raw, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		content := string(raw)

		relPath, err := filepath.Rel(docsDir, path)
		if err != nil {
			relPath = path
		}

		title := ExtractTitle(content)
		if title == "" {
			title = strings.TrimSuffix(d.Name(), filepath.Ext(d.Name()))
		}

		docs = append(docs, LoadedDoc{
			Title:      title,
			SourcePath: relPath,
			Content:    content,
			Checksum:   Checksum(content),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return docs, nil
}

// ExtractTitle reads the document title from Docusaurus frontmatter
// ("title:" within the first lines) or falls back to the first H1 heading.
func ExtractTitle(content string) string {
	lines := strings.Split(content, "\n")

	limit := len(lines)
	if limit > 10 {
		limit = 10
	}
	for _, line := range lines[:limit] {
		if strings.HasPrefix(line, "title:") {
			title := strings.TrimSpace(strings.TrimPrefix(line, "title:"))
			return strings.Trim(title, `"'`)
		}
	}

	for _, line := range lines {
		if strings.HasPrefix(line, "# ") {
			return strings.TrimSpace(strings.TrimPrefix(line, "# "))
		}
	}

	return ""
}

// Checksum returns the hex sha256 digest of the content, the dedup key for
// ingestion.
func Checksum(content string) string {
	sum := sha256.Sum256([]byte(content))
	return hex.EncodeToString(sum[:])
}
