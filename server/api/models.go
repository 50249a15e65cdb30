package api

import (
	"time"

	"github.com/dekarrin/llgram/internal/analysis"
	"github.com/dekarrin/llgram/server/dao"
	"github.com/dekarrin/llgram/server/llgs"
)

// InfoModel is the response to GET /info.
type InfoModel struct {
	Version struct {
		Server string `json:"server"`
		LLGram string `json:"llgram"`
	} `json:"version"`
}

// LoginRequest is the body of POST /tokens.
type LoginRequest struct {
	Password string `json:"password"`
}

// LoginResponse is the response to POST /tokens.
type LoginResponse struct {
	Token string `json:"token"`
}

// AnalysisRequest is the body of POST /analyses. If Normalize is omitted it is
// taken to be true.
type AnalysisRequest struct {
	Grammar   string `json:"grammar"`
	Epsilon   string `json:"epsilon,omitempty"`
	EOF       string `json:"eof,omitempty"`
	Normalize *bool  `json:"normalize,omitempty"`
}

// CheckRequest is the body of POST /analyses/{id}/checks. Input is split on
// whitespace into tokens.
type CheckRequest struct {
	Input string `json:"input"`
}

// CheckResponse is the response to POST /analyses/{id}/checks. A rejected
// input still gives an HTTP-200; Accepted tells whether it was in the language.
type CheckResponse struct {
	Accepted bool `json:"accepted"`

	// Ambiguous is set when the table had conflicts, in which case a
	// rejection does not prove the input is not in the language.
	Ambiguous bool `json:"ambiguous"`

	Error    string   `json:"error,omitempty"`
	Position *int     `json:"position,omitempty"`
	Token    string   `json:"token,omitempty"`
	Expected []string `json:"expected,omitempty"`
}

// AnalysisSummaryModel is one entry of the response to GET /analyses.
type AnalysisSummaryModel struct {
	ID        string `json:"id"`
	Created   string `json:"created"`
	Grammar   string `json:"grammar"`
	Normalize bool   `json:"normalize"`
	Ambiguous bool   `json:"ambiguous"`
}

// GrammarsModel holds a grammar at each stage of normalization, in the BNF
// that POST /analyses accepts.
type GrammarsModel struct {
	Original        string `json:"original"`
	NoLeftRecursion string `json:"no_left_recursion,omitempty"`
	NoLeftFactoring string `json:"no_left_factoring,omitempty"`
}

// TableModel is an LL(1) parsing table. Each row has one cell per column, and
// empty cells are "".
type TableModel struct {
	Columns []string   `json:"columns"`
	Rows    []RowModel `json:"rows"`
}

// RowModel is the row of a TableModel for one nonterminal.
type RowModel struct {
	NonTerminal string   `json:"nonterminal"`
	Cells       []string `json:"cells"`
}

// AnalysisModel is the full analysis of a grammar. It is the response to POST
// /analyses and GET /analyses/{id}.
type AnalysisModel struct {
	AnalysisSummaryModel

	Epsilon           string              `json:"epsilon"`
	EOF               string              `json:"eof"`
	Grammars          GrammarsModel       `json:"grammars"`
	First             map[string][]string `json:"first"`
	Follow            map[string][]string `json:"follow"`
	Table             TableModel          `json:"table"`
	Conflicts         []string            `json:"conflicts,omitempty"`
	ResidualRecursion []string            `json:"residual_recursion,omitempty"`
	Vanished          []string            `json:"vanished,omitempty"`
}

func summaryModel(a dao.Analysis) AnalysisSummaryModel {
	return AnalysisSummaryModel{
		ID:        a.ID.String(),
		Created:   a.Created.Format(time.RFC3339),
		Grammar:   a.Grammar.String(),
		Normalize: a.Normalize,
		Ambiguous: a.Ambiguous,
	}
}

func analysisModel(an llgs.Analyzed) AnalysisModel {
	rep := an.Report

	m := AnalysisModel{
		AnalysisSummaryModel: summaryModel(an.Analysis),
		Epsilon:              rep.Original.Epsilon(),
		EOF:                  rep.Original.EOF(),
		Grammars: GrammarsModel{
			Original: rep.Original.String(),
		},
		First:             rep.First,
		Follow:            rep.Follow,
		Table:             tableModel(rep),
		ResidualRecursion: rep.ResidualRecursion,
		Vanished:          rep.Vanished,
	}
	// the table may have been built differently than when it was stored
	m.Ambiguous = rep.Ambiguous

	if rep.Normalized {
		m.Grammars.NoLeftRecursion = rep.NoLeftRecursion.String()
		m.Grammars.NoLeftFactoring = rep.NoLeftFactoring.String()
	}

	for _, c := range rep.Table.Conflicts() {
		m.Conflicts = append(m.Conflicts, c.String())
	}

	return m
}

func tableModel(rep analysis.Report) TableModel {
	rows := rep.Table.Rows()

	tm := TableModel{
		Columns: rep.Table.Terminals(),
		Rows:    make([]RowModel, 0, len(rows)-1),
	}
	for _, row := range rows[1:] {
		tm.Rows = append(tm.Rows, RowModel{
			NonTerminal: row[0],
			Cells:       row[1:],
		})
	}

	return tm
}
