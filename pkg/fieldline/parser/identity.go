// Package parser implements the lineage engine: field identity resolution,
// the datasource name directory, the field inventory and worksheet usage
// scans, the lineage join, and dashboard composition.
package parser

import (
	"strings"

	"github.com/fieldline/fieldline-go/pkg/fieldline/xmltree"
)

// Attribute and tag names of the workbook document format.
const (
	tagDatasource   = "datasource"
	tagColumn       = "column"
	tagCalculation  = "calculation"
	tagWorksheet    = "worksheet"
	tagDependencies = "datasource-dependencies"
	tagWindow       = "window"
	tagViewpoints   = "viewpoints"
	tagViewpoint    = "viewpoint"
	tagDashboard    = "dashboard"
	tagZone         = "zone"

	attrName       = "name"
	attrCaption    = "caption"
	attrHidden     = "hidden"
	attrFormula    = "formula"
	attrClass      = "class"
	attrDatasource = "datasource"
)

// IdentityKind distinguishes which identity attributes a field node carries.
type IdentityKind int

const (
	// IdentityNamed means only the raw internal name is present.
	IdentityNamed IdentityKind = iota
	// IdentityCaptioned means only the user-facing caption is present.
	IdentityCaptioned
	// IdentityBoth means both name and caption are present.
	IdentityBoth
)

// FieldIdentity is the resolved identity of a field node.
type FieldIdentity struct {
	Kind    IdentityKind
	Name    string
	Caption string
}

// ResolveIdentity canonicalizes a field node's (name, caption) pair. A node
// with neither attribute returns ErrMissingIdentity; callers skip it.
func ResolveIdentity(n *xmltree.Node) (FieldIdentity, error) {
	name, hasName := n.Attr(attrName)
	caption, hasCaption := n.Attr(attrCaption)
	if caption == "" {
		hasCaption = false
	}
	if name == "" {
		hasName = false
	}

	switch {
	case hasName && hasCaption:
		return FieldIdentity{Kind: IdentityBoth, Name: name, Caption: caption}, nil
	case hasCaption:
		return FieldIdentity{Kind: IdentityCaptioned, Caption: caption}, nil
	case hasName:
		return FieldIdentity{Kind: IdentityNamed, Name: name}, nil
	default:
		return FieldIdentity{}, ErrMissingIdentity
	}
}

// CanonicalName returns the single human-meaningful name: the caption when
// present, otherwise the raw name with one pair of enclosing brackets
// stripped. The rule is idempotent.
func (id FieldIdentity) CanonicalName() string {
	switch id.Kind {
	case IdentityCaptioned, IdentityBoth:
		return id.Caption
	default:
		return StripBrackets(id.Name)
	}
}

// StripBrackets removes exactly one leading "[" and one trailing "]" when
// both are present at the ends of the string. No other normalization.
func StripBrackets(s string) string {
	if len(s) >= 2 && strings.HasPrefix(s, "[") && strings.HasSuffix(s, "]") {
		return s[1 : len(s)-1]
	}
	return s
}
