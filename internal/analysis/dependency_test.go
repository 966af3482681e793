package analysis

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/standardbeagle/anno/internal/config"
)

// chainResolver answers import resolution from a fixed map keyed by
// import source.
type chainResolver map[string][]string

func (r chainResolver) ResolveImports(fromFile, source string) []string {
	return r[source]
}

func TestDependency_ImportsAndCalls(t *testing.T) {
	a := NewDependencyAnalyzer(config.Default().Dependency, nil)
	lines := []string{
		"import { util } from './util'",
		"import fs from 'fs'",
		"const _ = require('lodash')",
		"function run(x) {",
		"  helper()",
		"  obj.method()",
		"  if (x) {",
		"  }",
		"}",
	}
	node := analyzerNode("function_declaration", "run", 1, len(lines), "javascript")

	facts, calls := a.Analyze(node, strings.Join(lines, "\n"), "src/app.ts")

	require.Len(t, facts, 3)
	assert.Equal(t, "./util", facts[0].Source)
	assert.False(t, facts[0].IsExternal, "relative imports are internal")
	assert.False(t, facts[0].IsCircular, "no resolver, no cycle detection")
	assert.Equal(t, "fs", facts[1].Source)
	assert.True(t, facts[1].IsExternal)
	assert.Equal(t, "lodash", facts[2].Source)
	assert.True(t, facts[2].IsExternal)

	assert.Contains(t, calls, "helper")
	assert.Contains(t, calls, "method", "member chains keep the final segment")
	assert.NotContains(t, calls, "if", "control keywords are not calls")
}

func TestDependency_ImportForms(t *testing.T) {
	a := NewDependencyAnalyzer(config.Default().Dependency, nil)

	tests := []struct {
		line     string
		expected string
	}{
		{"from collections import OrderedDict", "collections"},
		{"import os.path", "os"},
		{"import java.util.List;", "java.util"},
		{"use std::collections::HashMap;", "std"},
		{`#include <stdio.h>`, "stdio.h"},
		{`require 'json'`, "json"},
		{`require_relative './helper'`, "./helper"},
	}
	for _, tc := range tests {
		t.Run(tc.line, func(t *testing.T) {
			node := analyzerNode("function_declaration", "f", 1, 1, "")
			facts, _ := a.Analyze(node, tc.line, "src/a")
			require.Len(t, facts, 1)
			assert.Equal(t, tc.expected, facts[0].Source)
		})
	}
}

func TestDependency_ImportsDeduplicated(t *testing.T) {
	a := NewDependencyAnalyzer(config.Default().Dependency, nil)
	source := "import fs from 'fs'\nimport fs from 'fs'"
	node := analyzerNode("function_declaration", "f", 1, 2, "javascript")

	facts, _ := a.Analyze(node, source, "src/a.js")
	assert.Len(t, facts, 1)
}

func TestDependency_IsExternal(t *testing.T) {
	a := NewDependencyAnalyzer(config.Default().Dependency, nil)

	tests := []struct {
		source   string
		external bool
	}{
		{"./sibling", false},
		{"../parent/mod", false},
		{"/abs/path", false},
		{"src/helpers", false},
		{"internal/db", false},
		{"crate", false},
		{"super", false},
		{"lodash", true},
		{"java.util", true},
		{"", false},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.external, a.isExternal(tc.source), tc.source)
	}
}

func TestDependency_CircularImport(t *testing.T) {
	resolver := chainResolver{"./b": {"./a"}}
	a := NewDependencyAnalyzer(config.Default().Dependency, resolver)

	source := "import { b } from './b'"
	node := analyzerNode("function_declaration", "f", 1, 1, "javascript")

	facts, _ := a.Analyze(node, source, "src/a")
	require.Len(t, facts, 1)
	assert.True(t, facts[0].IsCircular)
}

func TestDependency_NonCircularChain(t *testing.T) {
	resolver := chainResolver{"./b": {"./c"}, "./c": nil}
	a := NewDependencyAnalyzer(config.Default().Dependency, resolver)

	node := analyzerNode("function_declaration", "f", 1, 1, "javascript")
	facts, _ := a.Analyze(node, "import { b } from './b'", "src/a")

	require.Len(t, facts, 1)
	assert.False(t, facts[0].IsCircular)
}

func TestDependency_CycleNotThroughOriginTerminates(t *testing.T) {
	// b and c import each other but never the origin; the visited set
	// must stop the walk.
	resolver := chainResolver{"./b": {"./c"}, "./c": {"./b"}}
	a := NewDependencyAnalyzer(config.Default().Dependency, resolver)

	node := analyzerNode("function_declaration", "f", 1, 1, "javascript")
	facts, _ := a.Analyze(node, "import { b } from './b'", "src/a")

	require.Len(t, facts, 1)
	assert.False(t, facts[0].IsCircular)
}

func TestDependency_DepthBound(t *testing.T) {
	// A cycle that closes only after more hops than the traversal depth
	// allows is reported as non-circular.
	resolver := chainResolver{
		"./m1": {"./m2"},
		"./m2": {"./m3"},
		"./m3": {"./m4"},
		"./m4": {"./m5"},
		"./m5": {"./m6"},
		"./m6": {"./m7"},
		"./m7": {"./a"},
	}
	node := analyzerNode("function_declaration", "f", 1, 1, "javascript")

	bounded := NewDependencyAnalyzer(config.Dependency{MaxDepth: 5}, resolver)
	facts, _ := bounded.Analyze(node, "import { m } from './m1'", "src/a")
	require.Len(t, facts, 1)
	assert.False(t, facts[0].IsCircular)

	deep := NewDependencyAnalyzer(config.Dependency{MaxDepth: 20}, resolver)
	facts, _ = deep.Analyze(node, "import { m } from './m1'", "src/a")
	require.Len(t, facts, 1)
	assert.True(t, facts[0].IsCircular)
}

func TestDependency_ClearDropsResolutionCache(t *testing.T) {
	resolver := chainResolver{}
	a := NewDependencyAnalyzer(config.Default().Dependency, resolver)

	source := "import { b } from './b'"
	node := analyzerNode("function_declaration", "f", 1, 1, "javascript")

	facts, _ := a.Analyze(node, source, "src/a")
	require.Len(t, facts, 1)
	require.False(t, facts[0].IsCircular)

	// The import graph gains a cycle, but the cached resolution from the
	// first walk still answers until the cache is cleared.
	resolver["./b"] = []string{"./a"}

	facts, _ = a.Analyze(node, source, "src/a")
	require.Len(t, facts, 1)
	assert.False(t, facts[0].IsCircular, "stale resolution served from cache")

	a.Clear()
	facts, _ = a.Analyze(node, source, "src/a")
	require.Len(t, facts, 1)
	assert.True(t, facts[0].IsCircular)
}

func TestDependency_EmptySource(t *testing.T) {
	a := NewDependencyAnalyzer(config.Default().Dependency, nil)
	node := analyzerNode("function_declaration", "f", 1, 1, "javascript")

	facts, calls := a.Analyze(node, "", "src/a")
	assert.Nil(t, facts)
	assert.Nil(t, calls)
}

func TestNormalizeImport(t *testing.T) {
	tests := []struct {
		fromFile string
		source   string
		expected string
	}{
		{"src/a", "./b", "src/b"},
		{"src/sub/a", "../b", "src/b"},
		{"src/a", "../../b", "b"},
		{"src/a", "lodash", "lodash"},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.expected, normalizeImport(tc.fromFile, tc.source), "%s + %s", tc.fromFile, tc.source)
	}
}
