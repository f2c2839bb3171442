// Package fieldline analyzes workbook documents and reports which fields
// exist, under what canonical name, and whether they are used anywhere.
package fieldline

// DefaultReservedDatasources lists pseudo-datasource tokens excluded from the
// active-field scan.
var DefaultReservedDatasources = []string{"Parameters"}

// Options configures analysis behavior.
type Options struct {
	// ReservedDatasources are pseudo-datasource tokens excluded from the
	// active-field scan. If nil, DefaultReservedDatasources applies.
	ReservedDatasources []string
	// IncludeUsage specifies whether per-worksheet usage rows are kept on
	// the result. If nil, defaults to true.
	IncludeUsage *bool
	// IncludeDashboards specifies whether dashboard composition is built.
	// If nil, defaults to true.
	IncludeDashboards *bool
}

// DefaultOptions returns default analysis options.
func DefaultOptions() Options {
	return Options{}
}

// Reserved returns the effective reserved pseudo-datasource list.
func (o Options) Reserved() []string {
	if o.ReservedDatasources != nil {
		return o.ReservedDatasources
	}
	return DefaultReservedDatasources
}

// ShouldIncludeUsage returns whether usage rows are kept on the result.
func (o Options) ShouldIncludeUsage() bool {
	if o.IncludeUsage != nil {
		return *o.IncludeUsage
	}
	return true
}

// ShouldIncludeDashboards returns whether dashboard composition is built.
func (o Options) ShouldIncludeDashboards() bool {
	if o.IncludeDashboards != nil {
		return *o.IncludeDashboards
	}
	return true
}
