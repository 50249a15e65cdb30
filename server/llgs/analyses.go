package llgs

import (
	"context"
	"errors"
	"strings"

	"github.com/dekarrin/llgram/internal/analysis"
	"github.com/dekarrin/llgram/internal/grammar"
	"github.com/dekarrin/llgram/internal/llerrors"
	"github.com/dekarrin/llgram/server/dao"
	"github.com/dekarrin/llgram/server/serr"
	"github.com/google/uuid"
)

// Analyzed is a stored analysis along with the full report for its grammar.
type Analyzed struct {
	dao.Analysis
	Report analysis.Report
}

// CheckResult is the outcome of checking input against a stored analysis.
type CheckResult struct {
	Analyzed

	// Accepted is whether the table's predictive parse accepted the input.
	Accepted bool

	// Rejection is why the input was rejected. It is nil if Accepted is true.
	Rejection *llerrors.ParseError
}

// CreateAnalysis reads a grammar from BNF text, analyzes it, and stores it.
// epsilon and eof may be empty to use the defaults.
//
// The returned error, if non-nil, will match serr.ErrInvalidGrammar if the text
// is not a valid grammar; llerrors.Human gives the message for the user. If
// the error occured due to an unexpected problem with the DB, it will match
// serr.ErrDB.
func (svc Service) CreateAnalysis(ctx context.Context, text, epsilon, eof string, normalize bool) (Analyzed, error) {
	if effectiveSymbol(epsilon, grammar.DefaultEpsilon) == effectiveSymbol(eof, grammar.DefaultEOF) {
		return Analyzed{}, serr.New("epsilon and end-of-input symbols must differ", serr.ErrBadArgument)
	}

	rep, err := analysis.Run(text, svc.options(epsilon, eof, normalize))
	if err != nil {
		return Analyzed{}, serr.New("", err, serr.ErrInvalidGrammar)
	}

	stored, err := svc.DB.Analyses().Create(ctx, dao.Analysis{
		Grammar:   rep.Original,
		Normalize: normalize,
		Ambiguous: rep.Ambiguous,
	})
	if err != nil {
		return Analyzed{}, serr.WrapDB("could not create analysis", err)
	}

	return Analyzed{Analysis: stored, Report: rep}, nil
}

// GetAnalysis retrieves the analysis with the given ID and analyzes its
// grammar again.
//
// The returned error, if non-nil, will match serr.ErrBadArgument if id is not a
// valid ID, serr.ErrNotFound if there is no analysis with that ID, and serr.ErrDB
// for unexpected problems with the DB.
func (svc Service) GetAnalysis(ctx context.Context, id string) (Analyzed, error) {
	stored, err := svc.getStored(ctx, id)
	if err != nil {
		return Analyzed{}, err
	}

	rep := analysis.RunGrammar(stored.Grammar, svc.options("", "", stored.Normalize))
	return Analyzed{Analysis: stored, Report: rep}, nil
}

// GetAllAnalyses returns every stored analysis, oldest first. The reports are
// not computed; use the stored Ambiguous flag for a summary.
func (svc Service) GetAllAnalyses(ctx context.Context) ([]dao.Analysis, error) {
	all, err := svc.DB.Analyses().GetAll(ctx)
	if err != nil {
		return nil, serr.WrapDB("could not get analyses", err)
	}
	return all, nil
}

// DeleteAnalysis removes the analysis with the given ID and returns it.
//
// The returned error, if non-nil, will match serr.ErrBadArgument if id is not a
// valid ID, serr.ErrNotFound if there is no analysis with that ID, and serr.ErrDB
// for unexpected problems with the DB.
func (svc Service) DeleteAnalysis(ctx context.Context, id string) (dao.Analysis, error) {
	uuidID, err := uuid.Parse(id)
	if err != nil {
		return dao.Analysis{}, serr.New("ID is not valid", serr.ErrBadArgument)
	}

	deleted, err := svc.DB.Analyses().Delete(ctx, uuidID)
	if err != nil {
		if errors.Is(err, dao.ErrNotFound) {
			return dao.Analysis{}, serr.ErrNotFound
		}
		return dao.Analysis{}, serr.WrapDB("could not delete analysis", err)
	}

	return deleted, nil
}

// CheckInput runs a predictive parse of input, split on whitespace, with the
// table of the analysis with the given ID. A rejection is not an error; it is
// given in the returned CheckResult.
//
// The returned error, if non-nil, will match the same errors as GetAnalysis.
func (svc Service) CheckInput(ctx context.Context, id string, input string) (CheckResult, error) {
	an, err := svc.GetAnalysis(ctx, id)
	if err != nil {
		return CheckResult{}, err
	}

	res := CheckResult{Analyzed: an}

	err = an.Report.Check(strings.Fields(input))
	if err != nil {
		var pErr *llerrors.ParseError
		if !errors.As(err, &pErr) {
			return CheckResult{}, serr.New("could not run parse", err)
		}
		res.Rejection = pErr
	} else {
		res.Accepted = true
	}

	return res, nil
}

func (svc Service) getStored(ctx context.Context, id string) (dao.Analysis, error) {
	uuidID, err := uuid.Parse(id)
	if err != nil {
		return dao.Analysis{}, serr.New("ID is not valid", serr.ErrBadArgument)
	}

	stored, err := svc.DB.Analyses().GetByID(ctx, uuidID)
	if err != nil {
		if errors.Is(err, dao.ErrNotFound) {
			return dao.Analysis{}, serr.ErrNotFound
		}
		return dao.Analysis{}, serr.WrapDB("could not get analysis", err)
	}

	return stored, nil
}

func (svc Service) options(epsilon, eof string, normalize bool) analysis.Options {
	return analysis.Options{
		Epsilon: epsilon,
		EOF:     eof,
		AsIs:    !normalize,
		Logger:  svc.Logger,
	}
}

func effectiveSymbol(sym, def string) string {
	if sym == "" {
		return def
	}
	return sym
}
