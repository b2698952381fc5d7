package domain

import (
	"fmt"
	"strings"
)

// Demand asks for Quantity units of one resource for the whole task duration.
// Any of ResourceID or Alternatives can serve it.
type Demand struct {
	ResourceID   string
	Alternatives []string

	Quantity uint16
}

// Candidates lists the resources able to serve the demand, preferred first.
func (d Demand) Candidates() []string {
	result := make([]string, 0, 1+len(d.Alternatives))
	seen := make(map[string]bool, 1+len(d.Alternatives))

	for _, id := range append([]string{d.ResourceID}, d.Alternatives...) {
		if len(id) == 0 || seen[id] {
			continue
		}

		seen[id] = true
		result = append(result, id)
	}

	return result
}

func (d Demand) String() string {
	if len(d.Alternatives) == 0 {
		return fmt.Sprintf("%s x%d", d.ResourceID, max(d.Quantity, 1))
	}

	return fmt.Sprintf(
		"%s x%d",

		strings.Join(d.Candidates(), "|"),
		max(d.Quantity, 1),
	)
}
