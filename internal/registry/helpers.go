package registry

import (
	"go/ast"
	"strings"
)

func fullTypeName(parts ...string) string {
	return strings.Join(parts, ".")
}

// receiverTypeName returns the base type name of a method receiver, dropping
// pointers and type parameters.
func receiverTypeName(expr ast.Expr) string {
	switch t := expr.(type) {
	case *ast.StarExpr:
		return receiverTypeName(t.X)
	case *ast.Ident:
		return t.Name
	case *ast.IndexExpr:
		return receiverTypeName(t.X)
	case *ast.IndexListExpr:
		return receiverTypeName(t.X)
	}
	return ""
}

// constComment returns the text of a const comment, minus an @name override.
func constComment(cg *ast.CommentGroup) string {
	if cg == nil {
		return ""
	}
	text := strings.TrimSpace(cg.Text())
	if strings.HasPrefix(text, "@name") {
		parts := strings.SplitN(text, " ", 3)
		if len(parts) > 2 {
			return strings.TrimSpace(parts[2])
		}
		return ""
	}
	return text
}
