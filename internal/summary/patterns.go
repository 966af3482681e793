package summary

import (
	"strings"

	"github.com/standardbeagle/anno/internal/types"
)

// pattern is one structural matcher. Matchers run in declaration order and
// the first accepting pattern wins, so the order below is a contract:
// reordering changes which summary a node with overlapping signals gets.
type pattern struct {
	name     string
	match    func(in *Input) bool
	template string
	tags     []string
	purpose  types.PurposeCategory
}

var patterns = []pattern{
	{
		name: "event-handler",
		match: func(in *Input) bool {
			name := strings.ToLower(in.Node.Name)
			return hasCamelPrefix(in.Node.Name, "on") ||
				strings.Contains(name, "handler") ||
				strings.Contains(name, "listener") ||
				strings.Contains(name, "callback")
		},
		template: "Event handler '{name}' that responds to events",
		tags:     []string{"event-handler", "callback"},
		purpose:  types.PurposeEventHandling,
	},
	{
		name: "factory",
		match: func(in *Input) bool {
			name := strings.ToLower(in.Node.Name)
			return strings.Contains(name, "factory") ||
				hasCamelPrefix(in.Node.Name, "create") ||
				hasCamelPrefix(in.Node.Name, "make") ||
				hasCamelPrefix(in.Node.Name, "build")
		},
		template: "Factory '{name}' that constructs new instances",
		tags:     []string{"factory", "creational"},
		purpose:  types.PurposeObjectCreation,
	},
	{
		name: "validator",
		match: func(in *Input) bool {
			name := strings.ToLower(in.Node.Name)
			return hasCamelPrefix(in.Node.Name, "is") ||
				hasCamelPrefix(in.Node.Name, "has") ||
				hasCamelPrefix(in.Node.Name, "can") ||
				strings.Contains(name, "valid") ||
				strings.Contains(name, "verify")
		},
		template: "Validator '{name}' that checks input conditions",
		tags:     []string{"validator", "predicate"},
		purpose:  types.PurposeValidation,
	},
	{
		name: "transformer",
		match: func(in *Input) bool {
			name := strings.ToLower(in.Node.Name)
			return strings.Contains(name, "transform") ||
				strings.Contains(name, "convert") ||
				strings.Contains(name, "serialize") ||
				strings.Contains(name, "deserialize") ||
				hasCamelPrefix(in.Node.Name, "map") ||
				hasCamelPrefix(in.Node.Name, "parse")
		},
		template: "Transformer '{name}' that converts data between representations",
		tags:     []string{"transformer"},
		purpose:  types.PurposeTransformation,
	},
	{
		name: "api-endpoint",
		match: func(in *Input) bool {
			name := strings.ToLower(in.Node.Name)
			if strings.Contains(name, "route") || strings.Contains(name, "endpoint") ||
				strings.Contains(name, "controller") {
				return true
			}
			sig := strings.ToLower(in.Signature)
			for _, verb := range []string{"@get", "@post", "@put", "@delete", "@patch", "@requestmapping", "[httpget", "[httppost", "[httpput", "[httpdelete"} {
				if strings.Contains(sig, verb) {
					return true
				}
			}
			return false
		},
		template: "API endpoint '{name}' that serves HTTP requests",
		tags:     []string{"api-endpoint", "http"},
		purpose:  types.PurposeAPIEndpoint,
	},
	{
		name: "persistence",
		match: func(in *Input) bool {
			name := strings.ToLower(in.Node.Name)
			for _, kw := range []string{"save", "load", "fetch", "query", "insert", "upsert", "repository", "dao", "persist"} {
				if strings.Contains(name, kw) {
					return true
				}
			}
			return hasCamelPrefix(in.Node.Name, "find") ||
				hasCamelPrefix(in.Node.Name, "store") ||
				hasCamelPrefix(in.Node.Name, "delete") ||
				hasCamelPrefix(in.Node.Name, "update")
		},
		template: "Persistence operation '{name}' that reads or writes stored data",
		tags:     []string{"persistence", "database"},
		purpose:  types.PurposeDataAccess,
	},
	{
		name: "middleware",
		match: func(in *Input) bool {
			name := strings.ToLower(in.Node.Name)
			return strings.Contains(name, "middleware") ||
				strings.Contains(name, "interceptor") ||
				strings.Contains(name, "filter")
		},
		template: "Middleware '{name}' that intercepts request processing",
		tags:     []string{"middleware"},
		purpose:  types.PurposeMiddleware,
	},
	{
		name: "ui-component",
		match: func(in *Input) bool {
			name := strings.ToLower(in.Node.Name)
			kind := strings.ToLower(in.Node.Type)
			return strings.Contains(name, "component") ||
				strings.Contains(name, "widget") ||
				strings.Contains(kind, "jsx") ||
				hasCamelPrefix(in.Node.Name, "render")
		},
		template: "UI component '{name}' that renders part of the interface",
		tags:     []string{"ui-component", "view"},
		purpose:  types.PurposeUIComponent,
	},
	{
		name: "test",
		match: func(in *Input) bool {
			name := strings.ToLower(in.Node.Name)
			return hasCamelPrefix(in.Node.Name, "test") ||
				strings.HasPrefix(name, "spec") ||
				strings.HasSuffix(name, "_test") ||
				strings.Contains(name, "should")
		},
		template: "Test '{name}' that verifies expected behavior",
		tags:     []string{"test"},
		purpose:  types.PurposeTest,
	},
}

// matchPattern returns the first accepting matcher, or nil.
func matchPattern(in *Input) *pattern {
	if in.Node == nil || in.Node.Name == "" {
		return nil
	}
	for i := range patterns {
		if patterns[i].match(in) {
			return &patterns[i]
		}
	}
	return nil
}

// hasCamelPrefix reports whether name starts with the given lowercase
// prefix as a whole word under camelCase or snake_case conventions, so
// "only" does not match prefix "on" but "onClick" and "on_click" do.
func hasCamelPrefix(name, prefix string) bool {
	if !strings.HasPrefix(strings.ToLower(name), prefix) {
		return false
	}
	if len(name) == len(prefix) {
		return true
	}
	next := name[len(prefix)]
	return next == '_' || next == '-' || (next >= 'A' && next <= 'Z')
}
