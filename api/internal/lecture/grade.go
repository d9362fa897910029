package lecture

import (
	"strconv"
	"strings"
)

const (
	MinGrade     = 1
	MaxGrade     = 5
	DefaultGrade = "3"
)

var gradeComplexity = map[string]string{
	"1": "very simple with short sentences and basic vocabulary suitable for 6-7 year old children",
	"2": "simple with basic vocabulary and slightly longer sentences suitable for 7-8 year old children",
	"3": "moderately simple with age-appropriate vocabulary for 8-9 year old children",
	"4": "moderately complex with some specialized vocabulary suitable for 9-10 year old children",
	"5": "slightly more complex with appropriate vocabulary and concepts for 10-11 year old children",
}

// Complexity returns the language descriptor for a grade, grade 3's for anything unknown.
func Complexity(grade string) string {
	if c, ok := gradeComplexity[grade]; ok {
		return c
	}
	return gradeComplexity[DefaultGrade]
}

// Ordinal renders "1st", "2nd", "3rd", and "<grade>th" for everything else.
func Ordinal(grade string) string {
	switch grade {
	case "1":
		return "1st"
	case "2":
		return "2nd"
	case "3":
		return "3rd"
	}
	return grade + "th"
}

// ParseGrade accepts a decimal grade in [MinGrade, MaxGrade] and returns its canonical form.
func ParseGrade(s string) (string, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < MinGrade || n > MaxGrade {
		return "", false
	}
	return strconv.Itoa(n), true
}

// Grades lists the recognised grades in order.
func Grades() []string {
	out := make([]string, 0, MaxGrade-MinGrade+1)
	for g := MinGrade; g <= MaxGrade; g++ {
		out = append(out, strconv.Itoa(g))
	}
	return out
}
