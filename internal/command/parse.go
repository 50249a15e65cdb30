package command

import (
	"strings"

	"github.com/dekarrin/llgram/internal/grammar"
	"github.com/dekarrin/llgram/internal/llerrors"
)

var (
	// VerbAliases maps shorthand verbs to their canonical forms. They are all
	// upper case.
	VerbAliases = map[string]string{
		"BYE":       "QUIT",
		"EXIT":      "QUIT",
		"Q":         "QUIT",
		"?":         "HELP",
		"H":         "HELP",
		"LIST":      "SHOW",
		"PRINT":     "SHOW",
		"RULE":      "ADD",
		"ANALYSE":   "ANALYZE",
		"RUN":       "ANALYZE",
		"PARSE":     "CHECK",
		"ACCEPT":    "CHECK",
		"RESET":     "CLEAR",
		"EPS":       "EPSILON",
		"END":       "EOF",
		"NORMALISE": "NORMALIZE",
	}
)

// Parse parses a command from a line of input. A line that contains the BNF
// definition separator and does not start with a verb is taken to be an ADD
// of that line.
//
// If line is empty or only whitespace, a zero Command and a nil error are
// returned.
func Parse(line string) (Command, error) {
	var cmd Command

	line = strings.TrimSpace(line)
	if line == "" {
		return cmd, nil
	}

	verbEnd := strings.IndexFunc(line, func(r rune) bool {
		return r == ' ' || r == '\t'
	})
	typedVerb := line
	if verbEnd >= 0 {
		typedVerb = line[:verbEnd]
		cmd.Text = strings.TrimSpace(line[verbEnd:])
	}

	cmd.Verb = strings.ToUpper(typedVerb)
	if canon, ok := VerbAliases[cmd.Verb]; ok {
		cmd.Verb = canon
	}
	if cmd.Text != "" {
		cmd.Args = strings.Fields(cmd.Text)
	}

	switch cmd.Verb {
	case "ADD":
		if !strings.Contains(cmd.Text, grammar.DefinitionSeparator) {
			return Command{}, llerrors.Commandf("%s needs a rule, such as \"%s S -> a S | b\"", typedVerb, typedVerb)
		}
	case "FIRST", "FOLLOW", "EPSILON", "EOF":
		if len(cmd.Args) != 1 {
			return Command{}, llerrors.Commandf("%s takes exactly one symbol", typedVerb)
		}
	case "NORMALIZE":
		if len(cmd.Args) != 1 {
			return Command{}, llerrors.Commandf("type %s ON or %s OFF", typedVerb, typedVerb)
		}
		switch strings.ToUpper(cmd.Args[0]) {
		case "ON", "YES", "TRUE":
			cmd.Args = []string{"ON"}
		case "OFF", "NO", "FALSE":
			cmd.Args = []string{"OFF"}
		default:
			return Command{}, llerrors.Commandf("type %s ON or %s OFF", typedVerb, typedVerb)
		}
	case "CHECK":
		// no tokens at all is a check of the empty string
	case "SHOW", "ANALYZE", "TABLE", "CLEAR", "QUIT":
		if len(cmd.Args) > 0 {
			return Command{}, llerrors.Commandf("%s does not take anything after it; type %s by itself", typedVerb, typedVerb)
		}
	case "HELP":
		// anything after HELP is ignored
	default:
		if strings.Contains(line, grammar.DefinitionSeparator) {
			return Command{Verb: "ADD", Args: strings.Fields(line), Text: line}, nil
		}
		return Command{}, llerrors.Commandf("I don't know what you mean by %q", typedVerb)
	}

	return cmd, nil
}
