package grammar

import (
	"fmt"

	"github.com/dekarrin/rezi"
)

// MarshalBinary converts g into a slice of bytes that can be decoded with
// UnmarshalBinary. Rule order is preserved.
func (g Grammar) MarshalBinary() ([]byte, error) {
	var data []byte

	data = append(data, rezi.EncString(g.Start)...)
	data = append(data, rezi.EncString(g.epsilon)...)
	data = append(data, rezi.EncString(g.eof)...)

	rules := g.AllRules()
	data = append(data, rezi.EncInt(len(rules))...)
	for _, r := range rules {
		data = append(data, rezi.EncString(r.Head)...)
		data = append(data, rezi.EncInt(len(r.Body))...)
		for _, sym := range r.Body {
			data = append(data, rezi.EncString(sym)...)
		}
	}

	return data, nil
}

// UnmarshalBinary decodes a slice of bytes created by MarshalBinary into g.
// All existing rules of g are replaced. If there is an error, g is left
// unchanged.
func (g *Grammar) UnmarshalBinary(data []byte) error {
	var n int
	var err error

	var start, epsilon, eof string
	if start, n, err = rezi.DecString(data); err != nil {
		return fmt.Errorf("start symbol: %w", err)
	}
	data = data[n:]
	if epsilon, n, err = rezi.DecString(data); err != nil {
		return fmt.Errorf("epsilon symbol: %w", err)
	}
	data = data[n:]
	if eof, n, err = rezi.DecString(data); err != nil {
		return fmt.Errorf("end-of-input symbol: %w", err)
	}
	data = data[n:]

	var ruleCount int
	if ruleCount, n, err = rezi.DecInt(data); err != nil {
		return fmt.Errorf("rule count: %w", err)
	}
	data = data[n:]
	if ruleCount < 0 {
		return fmt.Errorf("rule count: negative value %d", ruleCount)
	}

	decoded := New(start, epsilon, eof)
	for i := 0; i < ruleCount; i++ {
		var head string
		if head, n, err = rezi.DecString(data); err != nil {
			return fmt.Errorf("rule %d: head: %w", i, err)
		}
		data = data[n:]

		var bodyLen int
		if bodyLen, n, err = rezi.DecInt(data); err != nil {
			return fmt.Errorf("rule %d: body length: %w", i, err)
		}
		data = data[n:]
		if bodyLen < 1 {
			return fmt.Errorf("rule %d: body length: non-positive value %d", i, bodyLen)
		}

		body := make([]string, bodyLen)
		for j := range body {
			if body[j], n, err = rezi.DecString(data); err != nil {
				return fmt.Errorf("rule %d: symbol %d: %w", i, j, err)
			}
			data = data[n:]
		}

		if err := decoded.Add(head, body...); err != nil {
			return fmt.Errorf("rule %d: %w", i, err)
		}
	}

	*g = decoded
	return nil
}
