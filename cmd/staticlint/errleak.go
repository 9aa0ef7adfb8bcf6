package main

import (
	"go/ast"
	"go/types"

	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/passes/inspect"
	"golang.org/x/tools/go/ast/inspector"
)

// responseMethods перечисляет методы, чьи аргументы попадают в тело HTTP-ответа.
var responseMethods = map[string]bool{
	"JSON":                true,
	"IndentedJSON":        true,
	"AbortWithStatusJSON": true,
	"String":              true,
}

// ErrLeakAnalyzer сообщает о вызовах err.Error() в аргументах методов,
// формирующих тело ответа.
var ErrLeakAnalyzer = &analysis.Analyzer{
	Name:     "errleak",
	Doc:      "reports error text written into HTTP response bodies",
	Requires: []*analysis.Analyzer{inspect.Analyzer},
	Run:      runErrLeak,
}

var errorType = types.Universe.Lookup("error").Type().Underlying().(*types.Interface)

func runErrLeak(pass *analysis.Pass) (interface{}, error) {
	insp := pass.ResultOf[inspect.Analyzer].(*inspector.Inspector)
	insp.Preorder([]ast.Node{(*ast.CallExpr)(nil)}, func(n ast.Node) {
		call := n.(*ast.CallExpr)
		sel, ok := call.Fun.(*ast.SelectorExpr)
		if !ok || !responseMethods[sel.Sel.Name] {
			return
		}
		for _, arg := range call.Args {
			ast.Inspect(arg, func(node ast.Node) bool {
				inner, ok := node.(*ast.CallExpr)
				if !ok || len(inner.Args) != 0 {
					return true
				}
				errSel, ok := inner.Fun.(*ast.SelectorExpr)
				if !ok || errSel.Sel.Name != "Error" {
					return true
				}
				if t := pass.TypesInfo.TypeOf(errSel.X); t != nil && types.Implements(t, errorType) {
					pass.Reportf(inner.Pos(), "error text must not be written to the response, log it instead")
				}
				return true
			})
		}
	})
	return nil, nil
}
