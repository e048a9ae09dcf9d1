package makefile

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/bash"

	"github.com/viant/makegraph/inspector/graph"
)

// recipeScanner extracts recursive make invocations from recipe lines.
// Recipe lines are shell, so they are parsed with the bash grammar; command
// lists (&&, ;, |) and nested substitutions come out of the AST rather than
// a regular-expression pass.
type recipeScanner struct {
	parser *sitter.Parser
}

// newRecipeScanner creates a scanner. A scanner owns a tree-sitter parser
// and is not safe for concurrent use.
func newRecipeScanner() *recipeScanner {
	parser := sitter.NewParser()
	parser.SetLanguage(bash.GetLanguage())
	return &recipeScanner{parser: parser}
}

// Scan returns the invocation candidates referenced by one recipe line.
func (s *recipeScanner) Scan(line string, lineNo int) []*graph.Invocation {
	raw := strings.TrimSpace(line)
	normalized := normalizeRecipe(line)
	if normalized == "" || !strings.Contains(normalized, "make") {
		return nil
	}
	src := []byte(normalized)
	tree := s.parser.Parse(nil, src)
	if tree == nil {
		return s.scanWords(normalized, raw, lineNo)
	}
	defer tree.Close()

	var invocations []*graph.Invocation
	var walk func(node *sitter.Node)
	walk = func(node *sitter.Node) {
		if node == nil {
			return
		}
		if node.Type() == "command" {
			invocations = append(invocations, commandInvocations(node, src, raw, lineNo)...)
		}
		for i := 0; i < int(node.NamedChildCount()); i++ {
			walk(node.NamedChild(i))
		}
	}
	walk(tree.RootNode())
	return invocations
}

// commandInvocations inspects one shell command node and, when the command is
// make, turns its arguments into invocation candidates.
func commandInvocations(node *sitter.Node, src []byte, raw string, lineNo int) []*graph.Invocation {
	nameNode := node.ChildByFieldName("name")
	if nameNode == nil {
		return nil
	}
	command := string(src[nameNode.StartByte():nameNode.EndByte()])
	if !isMakeCommand(command) {
		return nil
	}

	var args []string
	for i := 0; i < int(node.NamedChildCount()); i++ {
		child := node.NamedChild(i)
		if child.StartByte() <= nameNode.StartByte() {
			continue
		}
		if !isArgumentNode(child.Type()) {
			continue
		}
		args = append(args, string(src[child.StartByte():child.EndByte()]))
	}
	return argInvocations(args, raw, lineNo)
}

// isArgumentNode filters command children down to argument words, keeping
// unexpanded substitutions so macro-built names survive as literals.
func isArgumentNode(nodeType string) bool {
	switch nodeType {
	case "word", "number", "string", "raw_string", "concatenation",
		"command_substitution", "expansion", "simple_expansion":
		return true
	}
	return false
}

// argInvocations interprets make's argument conventions: -C <dir> and
// -f <file> carry cross-file hints, VAR=value overrides and other flags are
// skipped, remaining bare words name targets. A sub-make with a hint but no
// target word invokes the hinted file's default goal.
func argInvocations(args []string, raw string, lineNo int) []*graph.Invocation {
	var dir, file string
	var names []string
	for i := 0; i < len(args); i++ {
		arg := unquote(args[i])
		switch {
		case arg == "-C" || arg == "--directory":
			if i+1 < len(args) {
				i++
				dir = unquote(args[i])
			}
		case strings.HasPrefix(arg, "-C") && len(arg) > 2:
			dir = arg[2:]
		case arg == "-f" || arg == "--file" || arg == "--makefile":
			if i+1 < len(args) {
				i++
				file = unquote(args[i])
			}
		case strings.HasPrefix(arg, "-f") && len(arg) > 2:
			file = arg[2:]
		case strings.HasPrefix(arg, "-"):
			// unrelated make flag
		case strings.Contains(arg, "=") && !IsMacro(arg):
			// variable override
		default:
			names = append(names, arg)
		}
	}
	if len(names) == 0 {
		if dir == "" && file == "" {
			return nil
		}
		// default goal of the referenced makefile
		names = []string{""}
	}
	invocations := make([]*graph.Invocation, 0, len(names))
	for _, name := range names {
		invocations = append(invocations, &graph.Invocation{
			Kind: graph.InvocationRecursiveMake,
			Name: name,
			File: file,
			Dir:  dir,
			Raw:  raw,
			Line: lineNo,
		})
	}
	return invocations
}

// scanWords is the degraded path when the shell parse fails: a plain token
// scan over the normalized line.
func (s *recipeScanner) scanWords(normalized, raw string, lineNo int) []*graph.Invocation {
	fields := strings.Fields(normalized)
	for i, field := range fields {
		if isMakeCommand(field) {
			return argInvocations(fields[i+1:], raw, lineNo)
		}
	}
	return nil
}

// normalizeRecipe strips recipe prefix characters and rewrites $(MAKE) to the
// plain command so the shell grammar sees an ordinary invocation.
func normalizeRecipe(line string) string {
	trimmed := strings.TrimSpace(line)
	trimmed = strings.TrimLeft(trimmed, "@-+ \t")
	trimmed = strings.ReplaceAll(trimmed, "$(MAKE)", "make")
	trimmed = strings.ReplaceAll(trimmed, "${MAKE}", "make")
	return trimmed
}

func isMakeCommand(command string) bool {
	return command == "make" || strings.HasSuffix(command, "/make")
}

func unquote(s string) string {
	if len(s) >= 2 {
		if (s[0] == '"' && s[len(s)-1] == '"') || (s[0] == '\'' && s[len(s)-1] == '\'') {
			return s[1 : len(s)-1]
		}
	}
	return s
}
