package problem

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/TudorHulban/taskscheduler/internal/calendar"
)

const openKeyword = "open"

// Bound is an interval end that may be written as the word "open".
type Bound int64

func parseBound(raw string) (Bound, error) {
	raw = strings.TrimSpace(raw)

	if strings.EqualFold(raw, openKeyword) {
		return Bound(calendar.OpenEnded), nil
	}

	value, errParse := strconv.ParseInt(raw, 10, 64)
	if errParse != nil {
		return 0,
			fmt.Errorf("bound %q: want an integer or %q", raw, openKeyword)
	}

	return Bound(value),
		nil
}

func (b *Bound) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: bound must be a scalar", node.Line)
	}

	value, errParse := parseBound(node.Value)
	if errParse != nil {
		return fmt.Errorf("line %d: %w", node.Line, errParse)
	}

	*b = value

	return nil
}

func (b *Bound) UnmarshalJSON(data []byte) error {
	var text string
	if json.Unmarshal(data, &text) == nil {
		value, errParse := parseBound(text)
		if errParse != nil {
			return errParse
		}

		*b = value

		return nil
	}

	value, errParse := parseBound(string(data))
	if errParse != nil {
		return errParse
	}

	*b = value

	return nil
}

func (b Bound) MarshalYAML() (any, error) {
	if int64(b) == calendar.OpenEnded {
		return openKeyword, nil
	}

	return int64(b), nil
}

func (b Bound) MarshalJSON() ([]byte, error) {
	if int64(b) == calendar.OpenEnded {
		return json.Marshal(openKeyword)
	}

	return json.Marshal(int64(b))
}
