package engine

import (
	"sort"

	"github.com/standardbeagle/anno/internal/analysis"
	"github.com/standardbeagle/anno/internal/types"
)

// SummarizeFile aggregates a file's annotations into one rollup record:
// node-kind counts, the complexity tier distribution, and the union of
// external dependencies and semantic tags.
func SummarizeFile(filePath string, annotations []*types.Annotation) *types.FileSummary {
	fileSummary := &types.FileSummary{
		FilePath:               filePath,
		TotalAnnotations:       len(annotations),
		NodeTypeCounts:         make(map[string]int),
		ComplexityDistribution: make(map[string]int),
	}

	externals := map[string]bool{}
	tags := map[string]bool{}

	for _, a := range annotations {
		if a == nil {
			continue
		}
		if fileSummary.Language == "" {
			fileSummary.Language = a.Language
		}
		fileSummary.ComplexityDistribution[analysis.Classify(a.Complexity)]++

		for _, tag := range a.SemanticTags {
			switch tag {
			case "function", "class", "interface", "method", "variable":
				fileSummary.NodeTypeCounts[tag]++
			case "external-dependency":
				for _, dep := range a.Dependencies {
					externals[dep] = true
				}
			}
			tags[tag] = true
		}
	}

	fileSummary.ExternalDependencies = sortedKeys(externals)
	fileSummary.SemanticTags = sortedKeys(tags)
	return fileSummary
}

func sortedKeys(set map[string]bool) []string {
	if len(set) == 0 {
		return nil
	}
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
