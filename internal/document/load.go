package document

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/gabriel-vasile/mimetype"
	"github.com/saintfish/chardet"
	"golang.org/x/net/html/charset"
)

const (
	// MaxHTMLSize limits HTML input to 10MB to prevent memory exhaustion
	MaxHTMLSize = 10 * 1024 * 1024

	// minCharsetConfidence is the chardet score below which utf-8 is assumed
	minCharsetConfidence = 50
)

var (
	ErrEmptyHTML    = errors.New("html content required")
	ErrHTMLTooLarge = errors.New("html exceeds maximum size")
)

// ValidateHTML checks HTML size and returns error if empty or too large
func ValidateHTML(markup string, maxBytes int) error {
	if strings.TrimSpace(markup) == "" {
		return ErrEmptyHTML
	}
	if maxBytes <= 0 {
		maxBytes = MaxHTMLSize
	}
	if len(markup) > maxBytes {
		return fmt.Errorf("%w: %d bytes (limit %d)", ErrHTMLTooLarge, len(markup), maxBytes)
	}
	return nil
}

// DetectCharset detects and returns charset from HTML bytes
func DetectCharset(data []byte) string {
	detector := chardet.NewTextDetector()
	result, err := detector.DetectBest(data)
	if err != nil || result == nil || result.Confidence < minCharsetConfidence {
		return "utf-8"
	}
	return strings.ToLower(result.Charset)
}

// DetectMIME sniffs the content type of the markup.
// Fragments without a recognizable root tag are reported as text/plain.
func DetectMIME(data []byte) string {
	return mimetype.Detect(data).String()
}

// Load parses markup into a Document with automatic charset detection
func Load(markup string, maxBytes int) (*Document, error) {
	if err := ValidateHTML(markup, maxBytes); err != nil {
		return nil, err
	}

	data := []byte(markup)
	detected := DetectCharset(data)

	utf8Reader, err := charset.NewReader(bytes.NewReader(data), "text/html; charset="+detected)
	if err != nil {
		// Fallback to direct parsing
		doc, perr := goquery.NewDocumentFromReader(strings.NewReader(markup))
		if perr != nil {
			return nil, fmt.Errorf("parse html: %w", perr)
		}
		return newDocument(doc, detected, DetectMIME(data)), nil
	}

	doc, err := goquery.NewDocumentFromReader(utf8Reader)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	return newDocument(doc, detected, DetectMIME(data)), nil
}

// MustLoad is Load for fixtures; it panics on error.
func MustLoad(markup string) *Document {
	doc, err := Load(markup, MaxHTMLSize)
	if err != nil {
		panic(err)
	}
	return doc
}

// NormalizeWhitespace collapses multiple spaces into one
func NormalizeWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
