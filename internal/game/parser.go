package game

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/pixil98/go-mudengine/internal/ecs"
)

// ParseErrorKind classifies why a parser declined input.
type ParseErrorKind int

const (
	// WrongVerb means the input is not for this parser at all.
	WrongVerb ParseErrorKind = iota
	// WrongEntity means the input is for this parser but about a different entity.
	WrongEntity
	// NotMyTurn means the command exists but cannot be used right now.
	NotMyTurn
	// EntityNotFound means the named target is not perceivable.
	EntityNotFound
	// AmbiguousEntity means more than one perceivable entity matches.
	AmbiguousEntity
	// InvalidArgument means the arguments were malformed.
	InvalidArgument
	// CommandSpecific carries a message particular to the command.
	CommandSpecific
	// UnknownCommand is returned when no parser recognized the verb.
	UnknownCommand
)

func (k ParseErrorKind) String() string {
	switch k {
	case WrongVerb:
		return "wrong_verb"
	case WrongEntity:
		return "wrong_entity"
	case NotMyTurn:
		return "not_my_turn"
	case EntityNotFound:
		return "entity_not_found"
	case AmbiguousEntity:
		return "ambiguous_entity"
	case InvalidArgument:
		return "invalid_argument"
	case CommandSpecific:
		return "command_specific"
	default:
		return "unknown_command"
	}
}

// rank orders errors when choosing which one to show. Higher is more specific.
func (k ParseErrorKind) rank() int {
	switch k {
	case WrongVerb, UnknownCommand:
		return 0
	case WrongEntity:
		return 1
	case NotMyTurn:
		return 2
	case EntityNotFound, AmbiguousEntity, InvalidArgument:
		return 3
	default:
		return 4
	}
}

// ParseError is returned by parsers that decline input.
type ParseError struct {
	Kind       ParseErrorKind
	Verb       string
	Target     string
	Reason     string
	Candidates []ecs.Entity
	// Labels are display names for Candidates, in the same order.
	Labels []string
}

func (e *ParseError) Error() string {
	switch e.Kind {
	case WrongVerb, UnknownCommand:
		return "I don't know how to do that."
	case EntityNotFound:
		return fmt.Sprintf("There is no %s here.", e.Target)
	case AmbiguousEntity:
		return fmt.Sprintf("Which %s do you mean: %s?", e.Target, FormatChoices(e.Labels))
	default:
		return e.Reason
	}
}

func ErrWrongVerb() error {
	return &ParseError{Kind: WrongVerb}
}

func ErrInvalidArgument(verb, reason string) error {
	return &ParseError{Kind: InvalidArgument, Verb: verb, Reason: reason}
}

func ErrCommandSpecific(verb, reason string) error {
	return &ParseError{Kind: CommandSpecific, Verb: verb, Reason: reason}
}

// InputParser turns free-form input into an action. Parse must only read the world.
type InputParser interface {
	Parse(input string, performer ecs.Entity, w *ecs.World) (Action, error)
	// InputFormats lists help strings for the parser.
	InputFormats() []string
	// InputFormatsFor lists help strings usable by performer right now, or nil.
	InputFormatsFor(performer ecs.Entity, w *ecs.World) []string
}

// Captures holds the named groups of a pattern match.
type Captures map[string]string

// PatternParser matches input against a regular expression and builds an action
// from the named groups.
type PatternParser struct {
	Verb       string
	Pattern    *regexp.Regexp
	Formats    []string
	Build      func(c Captures, performer ecs.Entity, w *ecs.World) (Action, error)
	FormatsFor func(performer ecs.Entity, w *ecs.World) []string
}

func (p *PatternParser) Parse(input string, performer ecs.Entity, w *ecs.World) (Action, error) {
	m := p.Pattern.FindStringSubmatch(strings.TrimSpace(input))
	if m == nil {
		return nil, ErrWrongVerb()
	}
	c := Captures{}
	for i, name := range p.Pattern.SubexpNames() {
		if name != "" {
			c[name] = strings.TrimSpace(m[i])
		}
	}
	return p.Build(c, performer, w)
}

func (p *PatternParser) InputFormats() []string {
	return p.Formats
}

func (p *PatternParser) InputFormatsFor(performer ecs.Entity, w *ecs.World) []string {
	if p.FormatsFor == nil {
		return nil
	}
	return p.FormatsFor(performer, w)
}

// Parsers is the registry of global parsers, invoked in registration order.
type Parsers struct {
	global []InputParser
}

func NewParsers() Parsers {
	return Parsers{}
}

func (p *Parsers) Register(parsers ...InputParser) {
	p.global = append(p.global, parsers...)
}

func (p *Parsers) Global() []InputParser {
	return p.global
}

// ParsersFor returns the world's parser registry, creating it if needed.
func ParsersFor(w *ecs.World) *Parsers {
	if p, ok := ecs.Resource[Parsers](w); ok {
		return p
	}
	ecs.InsertResource(w, NewParsers())
	return ecs.MustResource[Parsers](w)
}

// FindParsersRelevantFor returns the global parsers followed by the custom
// parsers of every entity performer perceives.
func FindParsersRelevantFor(w *ecs.World, performer ecs.Entity) []InputParser {
	parsers := append([]InputParser{}, ParsersFor(w).global...)
	for _, e := range PerceivedEntities(w, performer) {
		if cp, ok := ecs.Get[CustomInputParser](w, e); ok {
			parsers = append(parsers, cp.Parsers...)
		}
	}
	return parsers
}

// Parse finds the action input describes. The first parser to succeed wins;
// otherwise the most specific error is returned, with UnknownCommand when every
// parser declined the verb.
func Parse(w *ecs.World, performer ecs.Entity, input string) (Action, error) {
	input = strings.TrimSpace(input)
	var best *ParseError
	for _, p := range FindParsersRelevantFor(w, performer) {
		action, err := p.Parse(input, performer, w)
		if err == nil {
			return action, nil
		}
		pe, ok := err.(*ParseError)
		if !ok {
			pe = &ParseError{Kind: CommandSpecific, Reason: err.Error()}
		}
		if best == nil || pe.Kind.rank() > best.Kind.rank() {
			best = pe
		}
	}
	if best == nil || best.Kind == WrongVerb {
		return nil, &ParseError{Kind: UnknownCommand}
	}
	return nil, best
}
