package parser

import (
	"github.com/fieldline/fieldline-go/pkg/fieldline/xmltree"
)

// Directory maps internal datasource tokens to their human-facing captions.
// It is built once per document, before any token resolution runs.
type Directory map[string]string

// BuildDirectory scans every datasource declaration exposing both a token and
// a caption. Two different captions for one token fail the build with an
// AmbiguityError; no partial directory is returned.
func BuildDirectory(doc *xmltree.Document) (Directory, error) {
	dir := make(Directory)
	nodes := doc.Select(xmltree.All(
		xmltree.ByTag(tagDatasource),
		xmltree.HasAttr(attrName),
		xmltree.HasAttr(attrCaption),
	))
	for _, n := range nodes {
		token := n.AttrValue(attrName)
		caption := n.AttrValue(attrCaption)
		if existing, ok := dir[token]; ok {
			if existing != caption {
				return nil, &AmbiguityError{Token: token, Captions: [2]string{existing, caption}}
			}
			continue
		}
		dir[token] = caption
	}
	return dir, nil
}

// Lookup resolves a token to its caption.
func (d Directory) Lookup(token string) (string, bool) {
	caption, ok := d[token]
	return caption, ok
}
