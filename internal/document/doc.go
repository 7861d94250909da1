// Package document turns raw markup into a read-only, queryable element tree.
//
// It is the HTML-parsing collaborator of the selector analyzer: callers
// hand it the markup posted with a failed selector and get back a Document
// that answers CSS queries, id lookups and per-element accessors.
//
// Built on specialized libraries:
//   - goquery / cascadia: CSS selector parsing and matching
//   - htmlquery: XPath lookup for get-element-by-id
//   - chardet + x/net/html/charset: encoding detection and UTF-8 conversion
//   - mimetype: content sniffing for diagnostics
//
// A Document is never mutated after Load, so it is safe to share between
// goroutines for reading.
//
// Example Usage:
//
//	doc, err := document.Load(markup, document.MaxHTMLSize)
//	if err != nil {
//		return err
//	}
//	buttons := doc.Query("button.primary")
package document
