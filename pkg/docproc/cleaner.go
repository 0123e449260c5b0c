package docproc

import (
	"regexp"
	"strings"
)

var (
	fencedCodeRe  = regexp.MustCompile("(?s)```.*?```")
	inlineCodeRe  = regexp.MustCompile("`[^`]*`")
	imageRe       = regexp.MustCompile(`!\[.*?\]\(.*?\)`)
	linkRe        = regexp.MustCompile(`\[.*?\]\(.*?\)`)
	whitespaceRe  = regexp.MustCompile(`\s+`)
	specialCharRe = regexp.MustCompile(`[^\w\s\-\.\,\!\?\;\:\(\)]`)
)

// RemoveCodeBlocks strips fenced code blocks and inline code spans from
// markdown text.
func RemoveCodeBlocks(text string) string {
	text = fencedCodeRe.ReplaceAllString(text, "")
	return inlineCodeRe.ReplaceAllString(text, "")
}

// RemoveLinksAndImages strips markdown image and link syntax, keeping neither
// the label nor the URL. Images must go first so the leading "!" is consumed.
func RemoveLinksAndImages(text string) string {
	text = imageRe.ReplaceAllString(text, "")
	return linkRe.ReplaceAllString(text, "")
}

// CleanText collapses whitespace runs, replaces characters outside the
// allowed set with spaces and trims the result.
func CleanText(text string) string {
	text = whitespaceRe.ReplaceAllString(text, " ")
	text = specialCharRe.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

// Preprocess runs the full cleaning pipeline for a markdown/mdx document.
// Pure and deterministic.
func Preprocess(text string) string {
	text = RemoveCodeBlocks(text)
	text = RemoveLinksAndImages(text)
	return CleanText(text)
}
