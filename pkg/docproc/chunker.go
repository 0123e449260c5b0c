package docproc

import (
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
)

const (
	DefaultChunkSize    = 600
	DefaultChunkOverlap = 50
)

// Chunk is one bounded slice of a document's text together with the metadata
// echoed into the vector store payload.
type Chunk struct {
	DocumentId uuid.UUID
	Order      int
	Content    string
	SourcePath string
	Title      string
}

// Metadata returns the payload stored alongside the chunk's vector.
func (c Chunk) Metadata() map[string]interface{} {
	return map[string]interface{}{
		"source":      c.SourcePath,
		"title":       c.Title,
		"chunk_order": c.Order,
	}
}

// ChunkText preprocesses text and splits it into chunks of at most chunkSize
// characters. Sentences (split on ". ") are accumulated greedily; a sentence
// longer than chunkSize is force-split into fixed windows with overlap
// characters carried into the next window. Empty chunks are never emitted.
func ChunkText(text string, chunkSize, overlap int) []string {
	processed := Preprocess(text)
	sentences := strings.Split(processed, ". ")

	var chunks []string
	current := ""

	for _, sentence := range sentences {
		if runeLen(current)+runeLen(sentence) > chunkSize {
			if strings.TrimSpace(current) != "" {
				chunks = append(chunks, strings.TrimSpace(current))
			}

			if runeLen(sentence) > chunkSize {
				rs := []rune(sentence)
				for len(rs) > chunkSize {
					chunks = append(chunks, string(rs[:chunkSize]))
					rs = rs[chunkSize-overlap:]
				}
				current = string(rs)
			} else {
				current = sentence
			}
		} else {
			if current == "" {
				current = sentence
			} else {
				current = current + ". " + sentence
			}
		}
	}

	if strings.TrimSpace(current) != "" {
		chunks = append(chunks, strings.TrimSpace(current))
	}

	return chunks
}

// ChunkDocument chunks a document's content and pairs each chunk with its
// zero-based order and source metadata.
func ChunkDocument(documentId uuid.UUID, title, sourcePath, content string, chunkSize, overlap int) []Chunk {
	texts := ChunkText(content, chunkSize, overlap)

	chunks := make([]Chunk, len(texts))
	for i, text := range texts {
		chunks[i] = Chunk{
			DocumentId: documentId,
			Order:      i,
			Content:    text,
			SourcePath: sourcePath,
			Title:      title,
		}
	}
	return chunks
}

func runeLen(s string) int {
	return utf8.RuneCountInString(s)
}
