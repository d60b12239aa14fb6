package game

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/pixil98/go-mudengine/internal/ecs"
)

var (
	selfPattern = regexp.MustCompile(`^(me|myself|self)$`)
	herePattern = regexp.MustCompile(`^(here)$`)

	// "goblin 2" or "2.goblin"
	suffixOrdinal = regexp.MustCompile(`^(.+?)\s+(\d+)$`)
	prefixOrdinal = regexp.MustCompile(`^(\d+)\.(.+)$`)
)

// splitOrdinal separates a selector like "goblin 2" into ("goblin", 2).
// The ordinal is zero when none was given.
func splitOrdinal(name string) (string, int) {
	if m := prefixOrdinal.FindStringSubmatch(name); m != nil {
		n, _ := strconv.Atoi(m[1])
		return strings.TrimSpace(m[2]), n
	}
	if m := suffixOrdinal.FindStringSubmatch(name); m != nil {
		n, _ := strconv.Atoi(m[2])
		return strings.TrimSpace(m[1]), n
	}
	return name, 0
}

// FindTarget resolves name against what performer perceives. "me" is the
// performer and "here" is its room.
func FindTarget(w *ecs.World, performer ecs.Entity, verb, name string) (ecs.Entity, error) {
	clean := strings.ToLower(strings.TrimSpace(name))
	if selfPattern.MatchString(clean) {
		return performer, nil
	}
	if herePattern.MatchString(clean) {
		if room, ok := RoomOf(w, performer); ok {
			return room, nil
		}
	}

	var scope []ecs.Entity
	for _, e := range PerceivedEntities(w, performer) {
		if e != performer {
			scope = append(scope, e)
		}
	}
	return FindTargetIn(w, verb, name, scope)
}

// FindTargetIn resolves name against candidates. Several matches without an
// ordinal is AmbiguousEntity; no match is EntityNotFound.
func FindTargetIn(w *ecs.World, verb, name string, candidates []ecs.Entity) (ecs.Entity, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	name = strings.TrimPrefix(name, "the ")
	if name == "" {
		return 0, ErrInvalidArgument(verb, fmt.Sprintf("%s what?", Capitalize(verb)))
	}

	// A full name like "locker 2" wins over reading the number as an ordinal.
	base, ordinal := name, 0
	matches := matchingName(w, name, candidates)
	if len(matches) == 0 {
		base, ordinal = splitOrdinal(name)
		if ordinal > 0 {
			matches = matchingName(w, base, candidates)
		}
	}

	switch {
	case ordinal > 0 && ordinal <= len(matches):
		return matches[ordinal-1], nil
	case ordinal > 0 || len(matches) == 0:
		return 0, &ParseError{Kind: EntityNotFound, Verb: verb, Target: name}
	case len(matches) == 1:
		return matches[0], nil
	}

	labels := make([]string, len(matches))
	for i, e := range matches {
		labels[i] = fmt.Sprintf("%s (%s %d)", Name(w, e), base, i+1)
	}
	return 0, &ParseError{Kind: AmbiguousEntity, Verb: verb, Target: base, Candidates: matches, Labels: labels}
}

func matchingName(w *ecs.World, name string, candidates []ecs.Entity) []ecs.Entity {
	var matches []ecs.Entity
	for _, e := range candidates {
		if d, ok := ecs.Get[Description](w, e); ok && d.Matches(name) {
			matches = append(matches, e)
		}
	}
	return matches
}
