package extract

import (
	"sort"

	"github.com/standardbeagle/anno/internal/types"
)

// Extractor is the capability contract shared by all language strategies.
// Every method is best-effort over the node's textual span: a strategy
// returns its fallback rather than failing, and never panics outward.
type Extractor interface {
	// Language returns the primary language identifier of the strategy.
	Language() string

	// ExtractSignature returns the declaration signature for the node.
	ExtractSignature(node *types.SyntaxNode, source string) string

	// ExtractParameters recovers the parameter list from the node span.
	ExtractParameters(node *types.SyntaxNode, source string) []types.Parameter

	// ExtractReturnType returns the declared return type, or "" when the
	// language/form carries no explicit annotation or the type is the
	// language's void/unit keyword.
	ExtractReturnType(node *types.SyntaxNode, source string) string

	// ExtractModifiers returns the de-duplicated access/storage modifiers
	// present in the span.
	ExtractModifiers(node *types.SyntaxNode, source string) []string
}

// Registry maps language identifiers to strategy instances. Multiple
// identifiers may share one strategy (c and cpp do).
type Registry struct {
	extractors map[string]Extractor
}

// NewRegistry creates a registry populated with every built-in strategy.
func NewRegistry() *Registry {
	r := &Registry{extractors: make(map[string]Extractor)}

	ts := NewTypeScriptExtractor()
	r.Register("typescript", ts)
	r.Register("javascript", NewJavaScriptExtractor(ts))
	r.Register("python", NewPythonExtractor())
	r.Register("java", NewJavaExtractor())
	r.Register("csharp", NewCSharpExtractor())
	r.Register("go", NewGoExtractor())
	r.Register("rust", NewRustExtractor())

	cf := NewCFamilyExtractor()
	r.Register("c", cf)
	r.Register("cpp", cf)

	r.Register("php", NewPHPExtractor())
	r.Register("ruby", NewRubyExtractor())
	r.Register("kotlin", NewKotlinExtractor())
	r.Register("swift", NewSwiftExtractor())
	r.Register("dart", NewDartExtractor())
	r.Register("scala", NewScalaExtractor())
	r.Register("lua", NewLuaExtractor())
	r.Register("bash", NewBashExtractor())

	return r
}

// Register binds a language identifier to a strategy, replacing any
// previous binding.
func (r *Registry) Register(language string, e Extractor) {
	r.extractors[language] = e
}

// Lookup returns the strategy for a language identifier.
func (r *Registry) Lookup(language string) (Extractor, bool) {
	e, ok := r.extractors[language]
	return e, ok
}

// Languages returns the sorted set of registered identifiers.
func (r *Registry) Languages() []string {
	langs := make([]string, 0, len(r.extractors))
	for lang := range r.extractors {
		langs = append(langs, lang)
	}
	sort.Strings(langs)
	return langs
}

// FallbackSignature synthesizes the language-agnostic floor signature for
// a node with no registered strategy: "name()" when the kind names a
// callable form, otherwise just the name.
func FallbackSignature(node *types.SyntaxNode) string {
	name := FallbackName(node)
	if node != nil && IsFunctionKind(node.Type) {
		return name + "()"
	}
	return name
}
