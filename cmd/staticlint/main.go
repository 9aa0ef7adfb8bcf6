// Package main реализует команду «staticlint», основанную на multichecker,
// для статического анализа кода сервиса. Инструмент агрегирует анализаторы
// golang.org/x/tools, honnef.co/go/tools и собственные проверки проекта.
//
// Использование:
//
//	go install ./cmd/staticlint
//	staticlint ./...
//
// Собственные анализаторы:
//   - exitmain: запрещает прямой os.Exit в функции main пакета main,
//     чтобы отложенное закрытие хранилища и логгера не пропускалось;
//   - errleak: запрещает передавать текст ошибки (err.Error()) в HTTP-ответ,
//     клиент должен получать только общие сообщения.
package main

import (
	"strings"

	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/multichecker"
	"golang.org/x/tools/go/analysis/passes/nilness"
	"golang.org/x/tools/go/analysis/passes/printf"
	"golang.org/x/tools/go/analysis/passes/shadow"
	"golang.org/x/tools/go/analysis/passes/structtag"
	"golang.org/x/tools/go/analysis/passes/unusedresult"
	"honnef.co/go/tools/simple"
	"honnef.co/go/tools/staticcheck"
)

func analyzers() []*analysis.Analyzer {
	list := []*analysis.Analyzer{
		printf.Analyzer,
		shadow.Analyzer,
		structtag.Analyzer,
		nilness.Analyzer,
		unusedresult.Analyzer,
		ExitMainAnalyzer,
		ErrLeakAnalyzer,
	}

	for _, la := range staticcheck.Analyzers {
		if strings.HasPrefix(la.Analyzer.Name, "SA") {
			list = append(list, la.Analyzer)
		}
	}
	for _, la := range simple.Analyzers {
		list = append(list, la.Analyzer)
	}
	return list
}

func main() {
	multichecker.Main(analyzers()...)
}
