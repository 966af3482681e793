package summary

import (
	"strings"

	"github.com/hbollon/go-edlib"
	"github.com/surgebase/porter2"
)

// kindTemplates are the fallback summaries used when no pattern matched.
// Unrecognized kinds use the function template.
var kindTemplates = map[string]string{
	"function":  "{visibility}{async}function '{name}' {purpose}",
	"method":    "{visibility}{async}method '{name}' {purpose}",
	"class":     "{visibility}class '{name}' that encapsulates related state and behavior",
	"interface": "Interface '{name}' that defines a contract for implementations",
	"variable":  "{visibility}variable '{name}' holding a value",
}

// purposePhrases maps a stemmed leading name word to the clause rendered
// into the {purpose} placeholder.
var purposePhrases = map[string]string{
	"handl":    "that handles events",
	"get":      "that retrieves a value",
	"set":      "that updates a value",
	"creat":    "that creates a new instance",
	"pars":     "that parses input",
	"valid":    "that validates input",
	"process":  "that processes data",
	"render":   "that renders output",
	"init":     "that initializes state",
	"load":     "that loads data",
	"save":     "that persists data",
	"send":     "that sends data",
	"updat":    "that applies changes",
	"delet":    "that removes data",
	"comput":   "that computes a result",
	"calcul":   "that computes a result",
	"format":   "that formats output",
	"register": "that registers a handler",
	"close":    "that releases resources",
}

const defaultPurposePhrase = "that performs its operation"

// fuzzyPhraseThreshold is the minimum normalized similarity for a stem to
// borrow a phrase from a near-miss table key.
const fuzzyPhraseThreshold = 0.8

// renderTemplate substitutes the known placeholders into tpl.
func renderTemplate(tpl string, in *Input) string {
	name := in.Node.Name
	if name == "" {
		name = in.Node.Type
	}
	if name == "" {
		name = "unknown"
	}

	replacer := strings.NewReplacer(
		"{name}", name,
		"{type}", in.Node.Type,
		"{signature}", in.Signature,
		"{visibility}", visibilityPrefix(in.Modifiers),
		"{async}", asyncPrefix(in.Modifiers),
		"{purpose}", purposePhrase(in.Node.Name),
	)
	return strings.TrimSpace(replacer.Replace(tpl))
}

func templateForKind(nodeType string) string {
	kind := strings.ToLower(nodeType)
	for _, key := range []string{"interface", "class", "method", "variable", "function"} {
		if strings.Contains(kind, key) {
			return kindTemplates[key]
		}
	}
	return kindTemplates["function"]
}

func visibilityPrefix(modifiers []string) string {
	for _, m := range modifiers {
		switch m {
		case "private", "protected", "public", "internal", "exported", "unexported":
			return m + " "
		}
	}
	return ""
}

func asyncPrefix(modifiers []string) string {
	for _, m := range modifiers {
		if m == "async" || m == "suspend" {
			return "async "
		}
	}
	return ""
}

// purposePhrase infers the {purpose} clause from the leading word of the
// node name. The word is stemmed before lookup so "handles", "handler",
// and "handling" all land on the same table entry; an edit-distance pass
// picks up near misses the stemmer cannot normalize.
func purposePhrase(name string) string {
	word := leadingWord(name)
	if word == "" {
		return defaultPurposePhrase
	}
	stem := porter2.Stem(strings.ToLower(word))
	if phrase, ok := purposePhrases[stem]; ok {
		return phrase
	}

	best := ""
	bestScore := float32(0)
	for key, phrase := range purposePhrases {
		score, err := edlib.StringsSimilarity(stem, key, edlib.Levenshtein)
		if err != nil {
			continue
		}
		if score > bestScore {
			bestScore = score
			best = phrase
		}
	}
	if bestScore >= fuzzyPhraseThreshold {
		return best
	}
	return defaultPurposePhrase
}

// leadingWord splits a camelCase or snake_case identifier and returns its
// first word.
func leadingWord(name string) string {
	if name == "" {
		return ""
	}
	end := len(name)
	for i := 1; i < len(name); i++ {
		c := name[i]
		if c == '_' || c == '-' || (c >= 'A' && c <= 'Z') {
			end = i
			break
		}
	}
	return strings.Trim(name[:end], "_-")
}
