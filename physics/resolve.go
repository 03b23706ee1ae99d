package physics

import (
	"fmt"
	"strings"
)

// Resolution selects how a probe is tested against the terrain colliders.
type Resolution int

const (
	// ResolveLastHit tests every collider without exiting early; the last
	// overlapping collider in slice order is recorded as the contact.
	ResolveLastHit Resolution = iota
	// ResolveFirstHit stops at the first overlapping collider.
	ResolveFirstHit
)

func (r Resolution) String() string {
	switch r {
	case ResolveLastHit:
		return "last_hit"
	case ResolveFirstHit:
		return "first_hit"
	default:
		return fmt.Sprintf("Resolution(%d)", int(r))
	}
}

// ParseResolution accepts "last_hit" and "first_hit". The empty string
// selects ResolveLastHit.
func ParseResolution(s string) (Resolution, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "last_hit", "last":
		return ResolveLastHit, nil
	case "first_hit", "first", "any":
		return ResolveFirstHit, nil
	default:
		return 0, fmt.Errorf("physics: unknown resolution %q", s)
	}
}

// sweep returns the index of the collider that decides the contact for
// probe, or -1 when nothing overlaps.
func sweep(probe Collider, terrain []Collider, r Resolution) int {
	hit := -1
	for i := range terrain {
		if !Overlaps(probe, terrain[i]) {
			continue
		}
		hit = i
		if r == ResolveFirstHit {
			break
		}
	}
	return hit
}
