// Package lecture builds grade-appropriate lectures from a generative model.
package lecture

// Lecture is the payload returned for one successful generation.
type Lecture struct {
	Title      string `json:"title"`
	Subtitle   string `json:"subtitle"`
	Content    string `json:"content"`
	GradeLevel string `json:"gradeLevel"`
	Topic      string `json:"topic"`
}

// Request is what a caller submits. Grade stays a string on the wire.
type Request struct {
	Topic string `json:"topic"`
	Grade string `json:"grade"`
}
