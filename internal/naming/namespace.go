package naming

import (
	"strings"

	"github.com/conduit-lang/edmoas/internal/config"
	"github.com/conduit-lang/edmoas/internal/edm"
)

// StripOrAliasNamespacePrefix renders a schema element as it appears in a
// path segment. The namespace is replaced by its alias when aliasing is
// enabled for type casts, or for operations and element is an operation.
// Operations in the namespace configured for stripping are rendered by bare
// name, whether or not an alias applied.
func StripOrAliasNamespacePrefix(model *edm.Model, element edm.SchemaElement, settings *config.Settings) string {
	if settings == nil {
		settings = config.Default()
	}
	name := element.QName()
	rendered := name.String()

	_, isOperation := element.(edm.Operation)
	if settings.EnableAliasForTypeCastSegments || (isOperation && settings.EnableAliasForOperationSegments) {
		if alias, ok := model.NamespaceAlias(name.Namespace); ok {
			rendered = strings.TrimSuffix(alias, ".") + "." + name.Name
		}
	}

	strip := settings.NamespacePrefixToStripForInMethodPaths
	if isOperation && strip != "" && strings.EqualFold(name.Namespace, strip) {
		rendered = name.Name
	}
	return rendered
}
