package summary

import (
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/surgebase/porter2"

	"github.com/standardbeagle/anno/internal/config"
	"github.com/standardbeagle/anno/internal/types"
)

// Input carries everything the generator needs about one node. The
// dependency facts and complexity score come from the sibling analyzers;
// passing them in keeps the generator free of analysis logic.
type Input struct {
	Node       *types.SyntaxNode
	Signature  string
	Modifiers  []string
	Complexity int
	Facts      []types.DependencyFact
}

// Generator renders summaries, semantic tags, and purpose categories. It
// keeps its own bounded caches, separate from the engine's annotation
// cache, so repeated nodes across files reuse rendered text.
type Generator struct {
	maxLength    int
	summaryCache *lru.Cache[uint64, string]
	tagCache     *lru.Cache[uint64, []string]
}

func NewGenerator(cfg config.Summary, cache config.Cache) *Generator {
	maxLength := cfg.MaxLength
	if maxLength <= 0 {
		maxLength = config.DefaultMaxSummaryLength
	}
	summarySize := cache.SummaryEntries
	if summarySize <= 0 {
		summarySize = config.DefaultSummaryCacheSize
	}
	tagSize := cache.TagEntries
	if tagSize <= 0 {
		tagSize = config.DefaultTagCacheSize
	}
	summaryCache, _ := lru.New[uint64, string](summarySize)
	tagCache, _ := lru.New[uint64, []string](tagSize)
	return &Generator{
		maxLength:    maxLength,
		summaryCache: summaryCache,
		tagCache:     tagCache,
	}
}

// Summarize produces the node's summary text. Pattern matchers run first;
// when none accept, the per-kind template renders a generic description.
// The result is always non-empty.
func (g *Generator) Summarize(in *Input) string {
	key := g.cacheKey(in, "summary")
	if cached, ok := g.summaryCache.Get(key); ok {
		return cached
	}

	var text string
	if p := matchPattern(in); p != nil {
		text = renderTemplate(p.template, in)
	} else {
		text = renderTemplate(templateForKind(in.Node.Type), in)
	}
	text = g.enhance(text, in)

	if text == "" {
		text = renderTemplate("{type} '{name}'", in)
	}
	g.summaryCache.Add(key, text)
	return text
}

// Tags returns the semantic tag set for a node: pattern tags, the node
// kind tag, complexity tier tags, and dependency tags, deduplicated in
// that order.
func (g *Generator) Tags(in *Input) []string {
	key := g.cacheKey(in, "tags")
	if cached, ok := g.tagCache.Get(key); ok {
		return cached
	}

	seen := map[string]bool{}
	var tags []string
	add := func(tag string) {
		if tag != "" && !seen[tag] {
			seen[tag] = true
			tags = append(tags, tag)
		}
	}

	if p := matchPattern(in); p != nil {
		for _, t := range p.tags {
			add(t)
		}
	}
	add(kindTag(in.Node.Type))

	if in.Complexity > 10 {
		add("high-complexity")
	} else if in.Complexity > 5 {
		add("medium-complexity")
	}

	for _, fact := range in.Facts {
		if fact.IsExternal {
			add("external-dependency")
		}
		if fact.IsCircular {
			add("circular-dependency")
		}
	}

	g.tagCache.Add(key, tags)
	return tags
}

// Purpose classifies the node's intent. Pattern categories win; otherwise
// the leading name word decides, and nodes with no recognizable signal
// default to utility.
func (g *Generator) Purpose(in *Input) types.PurposeCategory {
	if p := matchPattern(in); p != nil {
		return p.purpose
	}
	return purposeFromName(in.Node.Name)
}

// Sizes reports current entry counts of the summary and tag caches.
func (g *Generator) Sizes() (summaries, tags int) {
	return g.summaryCache.Len(), g.tagCache.Len()
}

// Clear empties both caches.
func (g *Generator) Clear() {
	g.summaryCache.Purge()
	g.tagCache.Purge()
}

// enhance appends complexity and dependency notes, then enforces the
// length limit. Truncation never splits a brace pair, so an unexpanded
// placeholder survives intact or not at all.
func (g *Generator) enhance(text string, in *Input) string {
	if in.Complexity > 5 {
		text += " (complexity: " + strconv.Itoa(in.Complexity) + ")"
	}
	importCount := 0
	for _, fact := range in.Facts {
		if fact.Kind == types.DependencyImport {
			importCount++
		}
	}
	if importCount > 0 {
		text += " with " + strconv.Itoa(importCount) + " dependencies"
	}
	return truncate(text, g.maxLength)
}

func truncate(text string, maxLength int) string {
	if len(text) <= maxLength {
		return text
	}
	cut := maxLength - 3
	if cut < 0 {
		cut = 0
	}
	// Back off out of an open brace pair rather than cutting inside it.
	if open := strings.LastIndexByte(text[:cut], '{'); open >= 0 {
		if end := strings.IndexByte(text[open:], '}'); end >= 0 && open+end >= cut {
			cut = open
		}
	}
	return text[:cut] + "..."
}

func kindTag(nodeType string) string {
	kind := strings.ToLower(nodeType)
	for _, key := range []string{"interface", "class", "method", "variable", "function"} {
		if strings.Contains(kind, key) {
			return key
		}
	}
	return "function"
}

// purposeStems maps a stemmed leading name word to a purpose category.
var purposeStems = map[string]types.PurposeCategory{
	"handl":     types.PurposeEventHandling,
	"creat":     types.PurposeObjectCreation,
	"make":      types.PurposeObjectCreation,
	"build":     types.PurposeObjectCreation,
	"valid":     types.PurposeValidation,
	"check":     types.PurposeValidation,
	"transform": types.PurposeTransformation,
	"convert":   types.PurposeTransformation,
	"pars":      types.PurposeTransformation,
	"save":      types.PurposeDataAccess,
	"load":      types.PurposeDataAccess,
	"fetch":     types.PurposeDataAccess,
	"queri":     types.PurposeDataAccess,
	"render":    types.PurposeUIComponent,
	"test":      types.PurposeTest,
	"process":   types.PurposeBusinessLogic,
	"comput":    types.PurposeBusinessLogic,
	"calcul":    types.PurposeBusinessLogic,
}

func purposeFromName(name string) types.PurposeCategory {
	word := leadingWord(name)
	if word == "" {
		return types.PurposeUtility
	}
	stem := porter2.Stem(strings.ToLower(word))
	if category, ok := purposeStems[stem]; ok {
		return category
	}
	return types.PurposeUtility
}

// cacheKey hashes the identity of a node plus the aspect being cached.
func (g *Generator) cacheKey(in *Input, aspect string) uint64 {
	h := xxhash.New()
	_, _ = h.WriteString(aspect)
	_, _ = h.WriteString("\x00")
	_, _ = h.WriteString(in.Node.FilePath())
	_, _ = h.WriteString("\x00")
	_, _ = h.WriteString(in.Node.Type)
	_, _ = h.WriteString("\x00")
	_, _ = h.WriteString(in.Node.Name)
	_, _ = h.WriteString("\x00")
	_, _ = h.WriteString(in.Signature)
	_, _ = h.WriteString("\x00")
	_, _ = h.WriteString(strconv.Itoa(in.Complexity))
	_, _ = h.WriteString("\x00")
	_, _ = h.WriteString(strconv.Itoa(len(in.Facts)))
	return h.Sum64()
}
