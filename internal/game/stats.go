package game

import (
	"maps"
	"slices"

	"github.com/pixil98/go-mudengine/internal/ecs"
)

type Attribute string

const (
	Strength     Attribute = "strength"
	Intelligence Attribute = "intelligence"
	Perception   Attribute = "perception"
	Endurance    Attribute = "endurance"
)

type Skill string

const (
	Construction Skill = "construction"
	Crafting     Skill = "crafting"
	Scavenging   Skill = "scavenging"
	Stealth      Skill = "stealth"
	Firearms     Skill = "firearms"
	Melee        Skill = "melee"
	Medicine     Skill = "medicine"
	Cooking      Skill = "cooking"
	Dodging      Skill = "dodging"
)

// Stats are the trained capabilities of an entity.
type Stats struct {
	Attributes map[Attribute]int
	Skills     map[Skill]int
}

func NewStats() Stats {
	return Stats{Attributes: map[Attribute]int{}, Skills: map[Skill]int{}}
}

// SkillValue is the skill's own level plus half of its base attribute.
func (s *Stats) SkillValue(cat *Catalog, skill Skill) float64 {
	base := s.Attributes[cat.Skill(skill).BaseAttribute]
	return float64(s.Skills[skill]) + float64(base)/2
}

// StatsFor renders the stats of e, or nil if it has none.
func StatsFor(w *ecs.World, e ecs.Entity) *StatsDescription {
	stats, ok := ecs.Get[Stats](w, e)
	if !ok {
		return nil
	}
	cat := CatalogOf(w)
	desc := &StatsDescription{}
	for _, a := range slices.Sorted(maps.Keys(cat.Attributes)) {
		desc.Attributes = append(desc.Attributes, NamedValue{Name: cat.AttributeName(a), Value: float64(stats.Attributes[a])})
	}
	for _, sk := range slices.Sorted(maps.Keys(cat.Skills)) {
		desc.Skills = append(desc.Skills, NamedValue{Name: cat.Skill(sk).Name, Value: stats.SkillValue(cat, sk)})
	}
	return desc
}
