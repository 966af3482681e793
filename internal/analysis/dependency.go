package analysis

import (
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/standardbeagle/anno/internal/config"
	"github.com/standardbeagle/anno/internal/debug"
	"github.com/standardbeagle/anno/internal/extract"
	"github.com/standardbeagle/anno/internal/types"
)

// ModuleResolver maps an import source to the imports of the module it
// names. Implementations back this with whatever project index is
// available; the analyzer only needs the next hop of the import chain.
type ModuleResolver interface {
	// ResolveImports returns the import sources of the module identified
	// by source, relative to the importing file. A nil slice means the
	// module could not be resolved.
	ResolveImports(fromFile, source string) []string
}

// DependencyAnalyzer extracts import and call relationships from node
// source text. Detection is text based, so it works uniformly across
// languages without a parser for each.
type DependencyAnalyzer struct {
	maxDepth         int
	internalPatterns []string
	resolver         ModuleResolver
	resolution       *lru.Cache[string, []string]
}

func NewDependencyAnalyzer(cfg config.Dependency, resolver ModuleResolver) *DependencyAnalyzer {
	depth := cfg.MaxDepth
	if depth <= 0 {
		depth = config.DefaultMaxTraversalDepth
	}
	// lru.New only fails on a non-positive size.
	cache, _ := lru.New[string, []string](config.DefaultResolutionCacheSize)
	return &DependencyAnalyzer{
		maxDepth:         depth,
		internalPatterns: cfg.InternalPatterns,
		resolver:         resolver,
		resolution:       cache,
	}
}

// Clear empties the resolution cache so later walks see the resolver's
// current import graph.
func (a *DependencyAnalyzer) Clear() {
	a.resolution.Purge()
}

// Analyze returns the dependency facts and call names for a node. It never
// fails; unparseable input yields empty results.
func (a *DependencyAnalyzer) Analyze(node *types.SyntaxNode, source string, filePath string) ([]types.DependencyFact, []string) {
	body := extract.NodeLines(node, source)
	if len(body) == 0 {
		return nil, nil
	}
	if filePath == "" {
		filePath = node.FilePath()
	}

	imports := a.extractImports(body)
	calls := a.extractCalls(body)

	facts := make([]types.DependencyFact, 0, len(imports))
	for _, source := range imports {
		fact := types.DependencyFact{
			Source:     source,
			Kind:       types.DependencyImport,
			IsExternal: a.isExternal(source),
		}
		if !fact.IsExternal {
			fact.IsCircular = a.isCircular(filePath, source)
		}
		facts = append(facts, fact)
	}
	return facts, calls
}

// extractImports scans for import statements across the supported
// languages and returns deduplicated sources in first-seen order.
func (a *DependencyAnalyzer) extractImports(body []string) []string {
	seen := map[string]bool{}
	var imports []string
	add := func(source string) {
		if source != "" && !seen[source] {
			seen[source] = true
			imports = append(imports, source)
		}
	}

	for _, line := range body {
		trimmed := strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(trimmed, "import ") && strings.Contains(trimmed, " from "):
			add(quotedSource(trimmed[strings.LastIndex(trimmed, " from ")+6:]))
		case strings.Contains(trimmed, "require("):
			add(quotedSource(trimmed[strings.Index(trimmed, "require(")+8:]))
		case strings.HasPrefix(trimmed, "from ") && strings.Contains(trimmed, " import "):
			add(fieldAfter(trimmed, "from"))
		case strings.HasPrefix(trimmed, "import "):
			add(plainImportSource(trimmed))
		case strings.HasPrefix(trimmed, "use "):
			add(rustUseSource(trimmed))
		case strings.HasPrefix(trimmed, "#include"):
			add(strings.Trim(strings.TrimSpace(trimmed[8:]), `<>"`))
		case strings.HasPrefix(trimmed, "require ") || strings.HasPrefix(trimmed, "require_relative "):
			add(quotedSource(trimmed))
		}
	}
	return imports
}

// plainImportSource handles both "import module" (Python, Go grouped form
// excepted) and "import java.util.List;" style lines.
func plainImportSource(trimmed string) string {
	rest := strings.TrimSpace(strings.TrimPrefix(trimmed, "import "))
	rest = strings.TrimSuffix(rest, ";")
	if q := quotedSource(rest); q != "" {
		return q
	}
	fields := strings.Fields(rest)
	if len(fields) == 0 {
		return ""
	}
	name := fields[0]
	if strings.Contains(name, ".") {
		// Java style keeps the package, drops the class name.
		if dot := strings.LastIndex(name, "."); dot > 0 {
			return name[:dot]
		}
	}
	return name
}

func rustUseSource(trimmed string) string {
	rest := strings.TrimSpace(strings.TrimPrefix(trimmed, "use "))
	rest = strings.TrimSuffix(rest, ";")
	if idx := strings.Index(rest, "::"); idx >= 0 {
		rest = rest[:idx]
	}
	if idx := strings.Index(rest, "{"); idx >= 0 {
		rest = rest[:idx]
	}
	return strings.TrimSpace(rest)
}

// quotedSource returns the first single- or double-quoted string in s.
func quotedSource(s string) string {
	start := strings.IndexAny(s, `'"`)
	if start < 0 {
		return ""
	}
	quote := s[start]
	end := strings.IndexByte(s[start+1:], quote)
	if end < 0 {
		return ""
	}
	return s[start+1 : start+1+end]
}

func fieldAfter(s, word string) string {
	fields := strings.Fields(s)
	for i, f := range fields {
		if f == word && i+1 < len(fields) {
			return fields[i+1]
		}
	}
	return ""
}

// extractCalls collects call-site names. A call site is an identifier
// directly followed by an opening parenthesis; member chains keep only the
// final segment.
func (a *DependencyAnalyzer) extractCalls(body []string) []string {
	seen := map[string]bool{}
	var calls []string

	for _, line := range body {
		for i := 0; i < len(line); i++ {
			if line[i] != '(' {
				continue
			}
			name := identifierBefore(line, i)
			if name == "" || isControlKeyword(name) || seen[name] {
				continue
			}
			seen[name] = true
			calls = append(calls, name)
		}
	}
	return calls
}

func identifierBefore(line string, pos int) string {
	end := pos
	for end > 0 && line[end-1] == ' ' {
		end--
	}
	start := end
	for start > 0 && isWordChar(line[start-1]) {
		start--
	}
	if start == end {
		return ""
	}
	return line[start:end]
}

func isControlKeyword(name string) bool {
	switch strings.ToLower(name) {
	case "if", "for", "while", "switch", "catch", "return", "function",
		"def", "fn", "func", "elif", "elsif", "unless", "until", "when",
		"match", "guard", "select", "defer", "go", "new", "not", "in", "do":
		return true
	}
	return false
}

// isExternal classifies an import source. Relative paths and anything
// matching an internal glob pattern belong to the project; everything else
// is an external dependency.
func (a *DependencyAnalyzer) isExternal(source string) bool {
	if source == "" {
		return false
	}
	if strings.HasPrefix(source, ".") || strings.HasPrefix(source, "/") {
		return false
	}
	if strings.HasPrefix(source, "crate") || strings.HasPrefix(source, "super") || strings.HasPrefix(source, "self") {
		return false
	}
	for _, pattern := range a.internalPatterns {
		if ok, err := doublestar.Match(pattern, source); err == nil && ok {
			return false
		}
	}
	return true
}

// isCircular walks the import chain from source looking for a path back to
// the importing file. The walk is bounded by maxDepth and keeps a visited
// set so cyclic graphs terminate.
func (a *DependencyAnalyzer) isCircular(fromFile, source string) bool {
	if a.resolver == nil || fromFile == "" {
		return false
	}
	visited := map[string]bool{fromFile: true}
	return a.walk(fromFile, fromFile, source, visited, a.maxDepth)
}

func (a *DependencyAnalyzer) walk(origin, fromFile, source string, visited map[string]bool, depth int) bool {
	if depth <= 0 {
		return false
	}

	next := a.resolveImports(fromFile, source)
	for _, imp := range next {
		resolved := normalizeImport(fromFile, imp)
		if resolved == origin || imp == origin {
			debug.Log("dependency", "circular import %s -> %s", origin, source)
			return true
		}
		if visited[resolved] {
			continue
		}
		visited[resolved] = true
		if a.walk(origin, resolved, imp, visited, depth-1) {
			return true
		}
	}
	return false
}

func (a *DependencyAnalyzer) resolveImports(fromFile, source string) []string {
	key := fromFile + ":" + source
	if cached, ok := a.resolution.Get(key); ok {
		return cached
	}
	imports := a.resolver.ResolveImports(fromFile, source)
	a.resolution.Add(key, imports)
	return imports
}

// normalizeImport collapses a relative import against the importing file's
// directory so visited-set entries compare consistently.
func normalizeImport(fromFile, source string) string {
	if !strings.HasPrefix(source, ".") {
		return source
	}
	dir := fromFile
	if idx := strings.LastIndexByte(dir, '/'); idx >= 0 {
		dir = dir[:idx]
	} else {
		dir = ""
	}
	parts := strings.Split(source, "/")
	for _, part := range parts {
		switch part {
		case ".", "":
		case "..":
			if idx := strings.LastIndexByte(dir, '/'); idx >= 0 {
				dir = dir[:idx]
			} else {
				dir = ""
			}
		default:
			if dir == "" {
				dir = part
			} else {
				dir = dir + "/" + part
			}
		}
	}
	return dir
}
