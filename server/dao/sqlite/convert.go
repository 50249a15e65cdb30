package sqlite

import (
	"encoding/base64"
	"fmt"
	"time"

	"github.com/dekarrin/llgram/internal/grammar"
	"github.com/dekarrin/llgram/server/dao"
	"github.com/google/uuid"
)

func convertToDB_UUID(u uuid.UUID) string {
	return u.String()
}

func convertFromDB_UUID(s string, target *uuid.UUID) error {
	u, err := uuid.Parse(s)
	if err != nil {
		return fmt.Errorf("%w: %s", dao.ErrDecodingFailure, err.Error())
	}
	*target = u
	return nil
}

func convertToDB_Time(t time.Time) int64 {
	return t.Unix()
}

func convertFromDB_Time(i int64, target *time.Time) error {
	*target = time.Unix(i, 0)
	return nil
}

func convertToDB_Bool(b bool) int {
	if b {
		return 1
	}
	return 0
}

func convertFromDB_Bool(i int, target *bool) error {
	if i != 0 && i != 1 {
		return fmt.Errorf("%w: not 0 or 1: %d", dao.ErrDecodingFailure, i)
	}
	*target = i == 1
	return nil
}

// grammars are stored as the base64 of their binary encoding.
func convertToDB_Grammar(g grammar.Grammar) (string, error) {
	data, err := g.MarshalBinary()
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(data), nil
}

func convertFromDB_Grammar(s string, target *grammar.Grammar) error {
	data, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return fmt.Errorf("%w: %s", dao.ErrDecodingFailure, err.Error())
	}

	var g grammar.Grammar
	if err := g.UnmarshalBinary(data); err != nil {
		return fmt.Errorf("%w: %s", dao.ErrDecodingFailure, err.Error())
	}
	*target = g
	return nil
}
