package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dekarrin/llgram/server/dao"
	"github.com/google/uuid"
)

// NewAnalysesDBConn opens the database in file and returns an AnalysesDB
// that uses it.
func NewAnalysesDBConn(file string) (*AnalysesDB, error) {
	repo := &AnalysesDB{}

	var err error
	repo.db, err = sql.Open("sqlite", file)
	if err != nil {
		return nil, wrapDBError(err)
	}

	return repo, repo.init()
}

type AnalysesDB struct {
	db *sql.DB
}

func (repo *AnalysesDB) init() error {
	_, err := repo.db.Exec(`CREATE TABLE IF NOT EXISTS analyses (
		id TEXT NOT NULL PRIMARY KEY,
		grammar TEXT NOT NULL,
		normalize INTEGER NOT NULL,
		ambiguous INTEGER NOT NULL,
		created INTEGER NOT NULL
	);`)
	if err != nil {
		return wrapDBError(err)
	}

	return nil
}

func (repo *AnalysesDB) Create(ctx context.Context, a dao.Analysis) (dao.Analysis, error) {
	newUUID, err := uuid.NewRandom()
	if err != nil {
		return dao.Analysis{}, fmt.Errorf("could not generate ID: %w", err)
	}

	gramStr, err := convertToDB_Grammar(a.Grammar)
	if err != nil {
		return dao.Analysis{}, fmt.Errorf("could not encode grammar: %w", err)
	}

	stmt, err := repo.db.Prepare(`INSERT INTO analyses (id, grammar, normalize, ambiguous, created) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return dao.Analysis{}, wrapDBError(err)
	}
	defer stmt.Close()

	_, err = stmt.ExecContext(
		ctx,
		convertToDB_UUID(newUUID),
		gramStr,
		convertToDB_Bool(a.Normalize),
		convertToDB_Bool(a.Ambiguous),
		convertToDB_Time(time.Now()),
	)
	if err != nil {
		return dao.Analysis{}, wrapDBError(err)
	}

	return repo.GetByID(ctx, newUUID)
}

func (repo *AnalysesDB) GetAll(ctx context.Context) ([]dao.Analysis, error) {
	rows, err := repo.db.QueryContext(ctx, `SELECT id, grammar, normalize, ambiguous, created FROM analyses ORDER BY created, id;`)
	if err != nil {
		return nil, wrapDBError(err)
	}
	defer rows.Close()

	var all []dao.Analysis

	for rows.Next() {
		a, err := scanAnalysis(rows)
		if err != nil {
			return all, err
		}
		all = append(all, a)
	}

	if err := rows.Err(); err != nil {
		return all, wrapDBError(err)
	}

	return all, nil
}

func (repo *AnalysesDB) GetByID(ctx context.Context, id uuid.UUID) (dao.Analysis, error) {
	row := repo.db.QueryRowContext(ctx, `SELECT id, grammar, normalize, ambiguous, created FROM analyses WHERE id = ?;`,
		convertToDB_UUID(id),
	)

	return scanAnalysis(row)
}

func (repo *AnalysesDB) Delete(ctx context.Context, id uuid.UUID) (dao.Analysis, error) {
	curVal, err := repo.GetByID(ctx, id)
	if err != nil {
		return curVal, err
	}

	res, err := repo.db.ExecContext(ctx, `DELETE FROM analyses WHERE id = ?`, convertToDB_UUID(id))
	if err != nil {
		return curVal, wrapDBError(err)
	}
	rowsAff, err := res.RowsAffected()
	if err != nil {
		return curVal, wrapDBError(err)
	}
	if rowsAff < 1 {
		return curVal, dao.ErrNotFound
	}

	return curVal, nil
}

func (repo *AnalysesDB) Close() error {
	return repo.db.Close()
}

// scanner is a *sql.Row or *sql.Rows.
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanAnalysis(s scanner) (dao.Analysis, error) {
	var a dao.Analysis
	var id string
	var gramStr string
	var normalize int
	var ambiguous int
	var created int64

	err := s.Scan(&id, &gramStr, &normalize, &ambiguous, &created)
	if err != nil {
		return dao.Analysis{}, wrapDBError(err)
	}

	if err := convertFromDB_UUID(id, &a.ID); err != nil {
		return dao.Analysis{}, fmt.Errorf("stored UUID %q is invalid: %w", id, err)
	}
	if err := convertFromDB_Grammar(gramStr, &a.Grammar); err != nil {
		return dao.Analysis{}, fmt.Errorf("stored grammar is invalid: %w", err)
	}
	if err := convertFromDB_Bool(normalize, &a.Normalize); err != nil {
		return dao.Analysis{}, fmt.Errorf("stored normalize %d is invalid: %w", normalize, err)
	}
	if err := convertFromDB_Bool(ambiguous, &a.Ambiguous); err != nil {
		return dao.Analysis{}, fmt.Errorf("stored ambiguous %d is invalid: %w", ambiguous, err)
	}
	if err := convertFromDB_Time(created, &a.Created); err != nil {
		return dao.Analysis{}, fmt.Errorf("stored created time %d is invalid: %w", created, err)
	}

	return a, nil
}
