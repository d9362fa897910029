package lecture

import "math/rand/v2"

var gradeTopics = map[string][]string{
	"1": {"Animals", "Weather", "The Five Senses", "Plants", "My Body", "Family"},
	"2": {"Habitats", "Life Cycles", "Matter", "Earth & Space", "Community Helpers", "Money"},
	"3": {"The Water Cycle", "Animal Habitats", "Weather Patterns", "Simple Machines", "Nutrition", "Maps"},
	"4": {"Ecosystems", "Electricity", "Solar System", "Earth's Layers", "Fractions", "U.S. Regions"},
	"5": {"Human Body Systems", "Forces & Motion", "Weather & Climate", "Matter & Energy", "Native Americans", "The Constitution"},
}

// Topics returns the full suggestion list for a grade (grade 3's for unknown grades).
func Topics(grade string) []string {
	t, ok := gradeTopics[grade]
	if !ok {
		t = gradeTopics[DefaultGrade]
	}
	return append([]string(nil), t...)
}

// SuggestTopics picks up to n distinct topics for grade in random order.
// A nil rnd uses the global source.
func SuggestTopics(grade string, n int, rnd *rand.Rand) []string {
	t := Topics(grade)
	shuffle := rand.Shuffle
	if rnd != nil {
		shuffle = rnd.Shuffle
	}
	shuffle(len(t), func(i, j int) { t[i], t[j] = t[j], t[i] })
	if n < 0 {
		n = 0
	}
	if n < len(t) {
		t = t[:n]
	}
	return t
}
