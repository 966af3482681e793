package engine

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/standardbeagle/anno/internal/analysis"
	"github.com/standardbeagle/anno/internal/config"
	"github.com/standardbeagle/anno/internal/debug"
	"github.com/standardbeagle/anno/internal/extract"
	"github.com/standardbeagle/anno/internal/summary"
	"github.com/standardbeagle/anno/internal/types"
)

// Engine orchestrates the annotation pipeline: signature extraction,
// complexity and dependency analysis, and summary generation, with
// caching and failure isolation around all of it. Generate never returns
// an error; every failure degrades to a fallback annotation.
type Engine struct {
	cfg        *config.Config
	registry   *extract.Registry
	complexity *analysis.ComplexityAnalyzer
	dependency *analysis.DependencyAnalyzer
	summaries  *summary.Generator

	cacheMu sync.RWMutex
	cache   map[string]*types.Annotation

	errors  *errorLog
	metrics *perfMetrics
}

// New builds an engine from cfg. A nil resolver disables circular-import
// detection but nothing else.
func New(cfg *config.Config, resolver analysis.ModuleResolver) *Engine {
	if cfg == nil {
		cfg = config.Default()
	}
	return &Engine{
		cfg:        cfg,
		registry:   extract.NewRegistry(),
		complexity: analysis.NewComplexityAnalyzer(cfg.Complexity),
		dependency: analysis.NewDependencyAnalyzer(cfg.Dependency, resolver),
		summaries:  summary.NewGenerator(cfg.Summary, cfg.Cache),
		cache:      make(map[string]*types.Annotation),
		errors:     newErrorLog(),
		metrics:    newPerfMetrics(),
	}
}

// Generate produces the annotation for one node. It never fails outward:
// any internal error is logged and converted into a deterministic
// fallback built from the node alone.
func (e *Engine) Generate(ctx context.Context, node *types.SyntaxNode, sourceText, filePath string) (result *types.Annotation) {
	defer func() {
		if r := recover(); r != nil {
			e.errors.append(generationContext(node), fmt.Sprintf("panic: %v", r))
			if node == nil {
				node = &types.SyntaxNode{}
			}
			result = e.fallback(node)
		}
	}()

	if node == nil {
		return e.fallback(&types.SyntaxNode{})
	}

	key := cacheKey(node, filePath)
	if cached := e.lookup(key); cached != nil {
		e.metrics.increment("cache-hit")
		debug.LogEngine("cache hit for %s", key)
		return cached
	}

	annotation, err := e.generate(ctx, node, sourceText, filePath)
	if err != nil {
		e.errors.append(generationContext(node), err.Error())
		annotation = e.fallback(node)
	}

	if e.cfg.Engine.EnableDeduplication {
		e.store(key, annotation)
	}
	return annotation
}

func (e *Engine) generate(ctx context.Context, node *types.SyntaxNode, sourceText, filePath string) (*types.Annotation, error) {
	start := time.Now()
	language := resolveLanguage(node, filePath)

	extractor, registered := e.registry.Lookup(language)

	var (
		signature  string
		parameters []types.Parameter
		returnType string
		modifiers  []string
		score      int
		facts      []types.DependencyFact
		calls      []string
	)

	// First wave: everything derivable from the node and source alone.
	// Languages without a registered strategy skip extraction entirely and
	// take the name-derived fallback signature with no parameters.
	g, _ := errgroup.WithContext(ctx)
	if registered {
		g.Go(e.isolated(node, "signature", func() {
			signature = extractor.ExtractSignature(node, sourceText)
		}))
		g.Go(e.isolated(node, "parameters", func() {
			parameters = extractor.ExtractParameters(node, sourceText)
		}))
		g.Go(e.isolated(node, "return-type", func() {
			returnType = extractor.ExtractReturnType(node, sourceText)
		}))
		g.Go(e.isolated(node, "modifiers", func() {
			modifiers = extractor.ExtractModifiers(node, sourceText)
		}))
	}
	g.Go(e.isolated(node, "complexity", func() {
		score = e.complexity.Analyze(node, sourceText, language)
	}))
	g.Go(e.isolated(node, "dependencies", func() {
		facts, calls = e.dependency.Analyze(node, sourceText, filePath)
	}))
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if signature == "" {
		signature = extract.FallbackSignature(node)
	}
	if score < 1 {
		score = 1
	}

	in := &summary.Input{
		Node:       node,
		Signature:  signature,
		Modifiers:  modifiers,
		Complexity: score,
		Facts:      facts,
	}

	var (
		summaryText string
		tags        []string
		purpose     types.PurposeCategory
	)

	// Second wave: text rendering, which needs the first wave's results.
	g, _ = errgroup.WithContext(ctx)
	g.Go(e.isolated(node, "summary", func() {
		summaryText = e.summaries.Summarize(in)
	}))
	g.Go(e.isolated(node, "tags", func() {
		tags = e.summaries.Tags(in)
	}))
	g.Go(e.isolated(node, "purpose", func() {
		purpose = e.summaries.Purpose(in)
	}))
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if summaryText == "" {
		summaryText = fallbackSummary(node)
	}
	if purpose == "" {
		purpose = types.PurposeUtility
	}

	snippet, charCount := e.snippet(node, sourceText)
	dependencies := make([]string, 0, len(facts))
	for _, fact := range facts {
		dependencies = append(dependencies, fact.Source)
	}

	annotation := &types.Annotation{
		NodeID:       node.ID,
		FilePath:     filePath,
		Signature:    signature,
		Summary:      summaryText,
		Parameters:   parameters,
		ReturnType:   returnType,
		Modifiers:    modifiers,
		Complexity:   score,
		LineCount:    node.LineCount(),
		CharCount:    charCount,
		Dependencies: dependencies,
		Calls:        calls,
		Snippet:      snippet,
		Purpose:      purpose,
		SemanticTags: tags,
		Language:     language,
		GeneratedAt:  time.Now(),
		Version:      types.AnnotationVersion,
	}
	annotation.Completeness = completeness(node, annotation)
	annotation.Confidence = confidence(node, annotation)

	e.metrics.record("generate-ms", float64(time.Since(start).Milliseconds()))
	return annotation, nil
}

// isolated wraps an analysis step so a panic inside it degrades to the
// step's zero-value result instead of failing the node.
func (e *Engine) isolated(node *types.SyntaxNode, step string, fn func()) func() error {
	return func() error {
		defer func() {
			if r := recover(); r != nil {
				e.errors.append(generationContext(node), fmt.Sprintf("%s: panic: %v", step, r))
			}
		}()
		fn()
		return nil
	}
}

// completeness is the satisfied fraction of six checked aspects.
func completeness(node *types.SyntaxNode, a *types.Annotation) float64 {
	satisfied := 0
	if node.HasName() {
		satisfied++
	}
	if node.HasType() {
		satisfied++
	}
	if a.Signature != "" {
		satisfied++
	}
	if len(a.Parameters) > 0 {
		satisfied++
	}
	if len(a.Summary) > 10 {
		satisfied++
	}
	if node.HasPositions() {
		satisfied++
	}
	score := float64(satisfied) / 6.0
	if score > 1 {
		score = 1
	}
	return score
}

// confidence starts at 0.5 and earns 0.1 per quality signal.
func confidence(node *types.SyntaxNode, a *types.Annotation) float64 {
	score := 0.5
	if node.HasName() {
		score += 0.1
	}
	if node.HasType() {
		score += 0.1
	}
	if a.Signature != "" {
		score += 0.1
	}
	if len(a.Summary) > 10 {
		score += 0.1
	}
	if node.HasPositions() {
		score += 0.1
	}
	if node.Language != "" || node.MetadataLanguage() != "" {
		score += 0.1
	}
	if score > 1 {
		score = 1
	}
	return score
}

// fallback is the terminal annotation on whole-node failure. It depends
// only on the node, so repeated failures produce identical records apart
// from the timestamp.
func (e *Engine) fallback(node *types.SyntaxNode) *types.Annotation {
	return &types.Annotation{
		NodeID:       node.ID,
		Signature:    extract.FallbackSignature(node),
		Summary:      fallbackSummary(node),
		Complexity:   1,
		Purpose:      types.PurposeUtility,
		Completeness: 0.2,
		Confidence:   0.1,
		Language:     resolveLanguage(node, ""),
		GeneratedAt:  time.Now(),
		Version:      types.AnnotationVersion,
	}
}

func fallbackSummary(node *types.SyntaxNode) string {
	kind := node.Type
	if kind == "" {
		kind = "node"
	}
	return fmt.Sprintf("%s '%s'", kind, extract.FallbackName(node))
}

// snippet renders the node's source slice bounded by the configured line
// limit, with context lines around it when available.
func (e *Engine) snippet(node *types.SyntaxNode, sourceText string) (string, int) {
	if sourceText == "" || !node.HasPositions() {
		return "", 0
	}
	lines := strings.Split(sourceText, "\n")
	start := node.Start.Line - 1 - e.cfg.Engine.ContextLinesBefore
	if start < 0 {
		start = 0
	}
	end := node.End.Line + e.cfg.Engine.ContextLinesAfter
	if end > len(lines) {
		end = len(lines)
	}
	if end-start > e.cfg.Engine.MaxSnippetLines {
		end = start + e.cfg.Engine.MaxSnippetLines
	}
	if start >= end {
		return "", 0
	}
	snippet := strings.Join(lines[start:end], "\n")

	charCount := 0
	body := extract.NodeLines(node, sourceText)
	for _, line := range body {
		charCount += len(line) + 1
	}
	return snippet, charCount
}

// cacheKey identifies a node for deduplication. Two parses of the same
// file position with the same type and name share an annotation.
func cacheKey(node *types.SyntaxNode, filePath string) string {
	if filePath == "" {
		filePath = "nofile"
	}
	return strings.Join([]string{
		filePath,
		node.Type,
		node.Name,
		strconv.Itoa(node.Start.Line),
		strconv.Itoa(node.Start.Column),
	}, ":")
}

func generationContext(node *types.SyntaxNode) string {
	if node == nil {
		return "generateAnnotation for <nil>"
	}
	return fmt.Sprintf("generateAnnotation for %s:%s", node.Type, node.Name)
}

func (e *Engine) lookup(key string) *types.Annotation {
	e.cacheMu.RLock()
	defer e.cacheMu.RUnlock()
	return e.cache[key]
}

func (e *Engine) store(key string, a *types.Annotation) {
	e.cacheMu.Lock()
	e.cache[key] = a
	e.cacheMu.Unlock()
}
