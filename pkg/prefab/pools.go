package prefab

import (
	"math/rand"
	"strings"
)

// Pools holds the interchangeable templates for each category. Moving and
// Checkpoint are single templates rather than pools.
type Pools struct {
	Obstacles     []*Template `yaml:"obstacles" json:"obstacles"`
	Pickups       []*Template `yaml:"pickups" json:"pickups"`
	Decor         []*Template `yaml:"decor" json:"decor"`
	MountainLeft  []*Template `yaml:"mountain_left" json:"mountain_left"`
	MountainRight []*Template `yaml:"mountain_right" json:"mountain_right"`
	Gates         []*Template `yaml:"gates" json:"gates"`
	Moving        *Template   `yaml:"moving" json:"moving,omitempty"`
	Checkpoint    *Template   `yaml:"checkpoint" json:"checkpoint,omitempty"`
}

// For returns the pool backing cat.
func (p *Pools) For(cat Category) []*Template {
	switch cat {
	case Obstacle:
		return p.Obstacles
	case Pickup:
		return p.Pickups
	case Decor:
		return p.Decor
	case MountainLeft:
		return p.MountainLeft
	case MountainRight:
		return p.MountainRight
	case Gate:
		return p.Gates
	case MovingObstacle:
		if p.Moving != nil {
			return []*Template{p.Moving}
		}
	case Checkpoint:
		if p.Checkpoint != nil {
			return []*Template{p.Checkpoint}
		}
	}
	return nil
}

// Pick draws a uniformly random template from the pool for cat.
// It returns nil when the pool is empty.
func (p *Pools) Pick(rng *rand.Rand, cat Category) *Template {
	pool := p.For(cat)
	if len(pool) == 0 {
		return nil
	}
	return pool[rng.Intn(len(pool))]
}

// Empty reports whether no template of any kind is configured.
func (p *Pools) Empty() bool {
	return len(p.Obstacles) == 0 && len(p.Pickups) == 0 && len(p.Decor) == 0 &&
		len(p.MountainLeft) == 0 && len(p.MountainRight) == 0 && len(p.Gates) == 0 &&
		p.Moving == nil && p.Checkpoint == nil
}

// HasMountains reports whether either mountain pool has templates.
func (p *Pools) HasMountains() bool {
	return len(p.MountainLeft) > 0 || len(p.MountainRight) > 0
}

// Count returns the number of templates across every pool.
func (p *Pools) Count() int {
	n := len(p.Obstacles) + len(p.Pickups) + len(p.Decor) +
		len(p.MountainLeft) + len(p.MountainRight) + len(p.Gates)
	if p.Moving != nil {
		n++
	}
	if p.Checkpoint != nil {
		n++
	}
	return n
}

// classifier rules are checked in order; the first matching rule wins.
var classifier = []struct {
	keywords []string
	cats     []Category
}{
	{[]string{"coin", "pickup", "treasure"}, []Category{Pickup}},
	{[]string{"enemy", "bat", "mob"}, []Category{Obstacle, MovingObstacle}},
	{[]string{"cliff", "ridge", "mountain"}, []Category{MountainLeft, MountainRight}},
	{[]string{"rock", "ledge"}, []Category{Obstacle}},
	{[]string{"checkpoint"}, []Category{Checkpoint}},
	{[]string{"gate"}, []Category{Gate}},
}

// Classify buckets a template name by case-insensitive substring match.
// Unmatched names are decor.
func Classify(name string) []Category {
	lower := strings.ToLower(name)
	for _, rule := range classifier {
		for _, kw := range rule.keywords {
			if strings.Contains(lower, kw) {
				return rule.cats
			}
		}
	}
	return []Category{Decor}
}

// Fill distributes templates into the pools by name. It does nothing when any
// pool is already configured, and reports whether it filled anything.
// The first moving-obstacle match becomes the default moving template.
func (p *Pools) Fill(templates []*Template) bool {
	if !p.Empty() || len(templates) == 0 {
		return false
	}
	for _, t := range templates {
		if t == nil {
			continue
		}
		for _, cat := range Classify(t.Name) {
			switch cat {
			case Obstacle:
				p.Obstacles = append(p.Obstacles, t)
			case Pickup:
				p.Pickups = append(p.Pickups, t)
			case MountainLeft:
				p.MountainLeft = append(p.MountainLeft, t)
			case MountainRight:
				p.MountainRight = append(p.MountainRight, t)
			case Gate:
				p.Gates = append(p.Gates, t)
			case MovingObstacle:
				if p.Moving == nil {
					p.Moving = t
				}
			case Checkpoint:
				if p.Checkpoint == nil {
					p.Checkpoint = t
				}
			default:
				p.Decor = append(p.Decor, t)
			}
		}
	}
	return true
}
