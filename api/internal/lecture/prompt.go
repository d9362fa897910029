package lecture

import (
	"bytes"
	"text/template"
)

const (
	FunFactBoxClass  = "bg-blue-50 border-l-4 border-blue-500 p-4 my-6 rounded-r-lg"
	ActivityBoxClass = "bg-green-50 border border-green-200 rounded-lg p-5 my-6"
	QuizBoxClass     = "bg-gray-50 p-4 rounded-lg border border-gray-200"
)

var promptTmpl = template.Must(template.New("lecture").Parse(`
You are an experienced elementary school teacher creating a lecture for {{.GradeText}} grade students about "{{.Topic}}".

Create an educational, engaging, and informative lecture that is {{.Complexity}}.

Include the following in your response as a structured HTML:

1. A title for the lecture (formatted as an H1)
2. A brief subtitle that makes the subject interesting
3. The main content with:
   - Clear headings (H2) and subheadings (H3) to organize content
   - Simple explanations with age-appropriate examples
   - Bullet points or numbered lists where appropriate
   - 2-3 fun facts or interesting information in highlighted boxes
   - A simple activity or experiment kids can try related to the topic
   - 3-4 simple quiz questions with answers

Format your response as valid HTML that can be inserted directly into a webpage.
Do not include <!DOCTYPE>, <html>, <head>, or <body> tags.
Use <div> with appropriate classes for highlighted boxes and activities.
For fun fact boxes, use: <div class="{{.FunFactClass}}">
For activity boxes, use: <div class="{{.ActivityClass}}">
For quiz questions, use: <div class="{{.QuizClass}}">

Keep the content engaging, educational, and appropriate for {{.GradeText}} grade students.
`))

type promptData struct {
	Topic         string
	GradeText     string
	Complexity    string
	FunFactClass  string
	ActivityClass string
	QuizClass     string
}

// BuildPrompt composes the single instruction sent to the model.
func BuildPrompt(topic, grade string) string {
	var buf bytes.Buffer
	// the template is static and its data are plain strings; Execute cannot fail here
	_ = promptTmpl.Execute(&buf, promptData{
		Topic:         topic,
		GradeText:     Ordinal(grade),
		Complexity:    Complexity(grade),
		FunFactClass:  FunFactBoxClass,
		ActivityClass: ActivityBoxClass,
		QuizClass:     QuizBoxClass,
	})
	return buf.String()
}
