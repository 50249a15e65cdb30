// Package command defines the commands of the LLGram REPL and parses them
// from lines of input.
package command

// Command is a valid command read from the REPL.
type Command struct {
	// Verb is the canonical name of the command, such as "ADD", "TABLE", or
	// "QUIT". Aliases are expanded, so typing "BYE" gives a Verb of "QUIT".
	// It is always upper case.
	Verb string

	// Args is the whitespace-separated arguments after the verb, with their
	// case kept as typed since grammar symbols are case-sensitive.
	Args []string

	// Text is everything after the verb exactly as typed, with only the
	// surrounding whitespace removed. For ADD, this is the line of BNF.
	Text string
}

// Help is a description of every command, in the order they are listed by
// HELP.
var Help = [][2]string{
	{"ADD RULE", "add a line of BNF such as \"S -> a S | ε\" to the grammar; a line containing \"->\" by itself is also added"},
	{"SHOW", "show the grammar entered so far"},
	{"ANALYZE", "show every stage of normalizing the grammar along with FIRST, FOLLOW, and the parsing table"},
	{"TABLE", "show the LL(1) parsing table and whether it is ambiguous"},
	{"FIRST SYMBOL", "show FIRST of a symbol of the analyzed grammar"},
	{"FOLLOW SYMBOL", "show FOLLOW of a nonterminal of the analyzed grammar"},
	{"CHECK TOKENS", "run a predictive parse of space-separated tokens"},
	{"NORMALIZE ON/OFF", "turn removal of left recursion and left factoring on or off"},
	{"EPSILON SYMBOL", "set the symbol written for the empty string"},
	{"EOF SYMBOL", "set the symbol used for end of input"},
	{"CLEAR", "remove every rule from the grammar"},
	{"HELP", "show this help"},
	{"QUIT/BYE", "leave LLGram"},
}
