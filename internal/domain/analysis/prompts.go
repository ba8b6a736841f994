package analysis

import (
	"bytes"
	"fmt"
	"text/template"

	"github.com/yanqian/stylecast/internal/domain/language"
)

const weatherSection = `{{define "weather"}}{{with .Weather}}
Today's weather{{if .Location}} in {{.Location}}{{end}}: {{.Description}}, {{printf "%.1f" .Temperature}}°C (feels like {{printf "%.1f" .FeelsLike}}°C), humidity {{printf "%.0f" .Humidity}}%, wind {{printf "%.1f" .WindSpeed}} m/s.
Every recommendation must be practical for this weather and say why.
{{end}}{{end}}`

const facePrompt = `You are a professional personal color and hair/makeup stylist.
Analyse the face in the attached photo: skin undertone, contrast, eye and hair color.
{{template "weather" .}}
Return a single JSON object with exactly these fields:
{
  "personalColor": {"season": string, "tone": string, "description": string},
  "styleAnalysis": {"colorEvaluation": string, "silhouette": string},
  "bestColors": [string],
  "worstColors": [string],
  "recommendations": [{"item": string, "reason": string}]
}
Give 3 to 5 recommendations. Do not include any text outside the JSON object.`

const fullBodyPrompt = `You are a professional fashion stylist.
Analyse the full-body photo: proportions, height impression, body shape and the colors currently worn.
{{template "weather" .}}
Return a single JSON object with exactly these fields:
{
  "bodyAnalysis": {"height": "tall" | "medium" | "short", "bodyType": "hourglass" | "rectangle" | "pear" | "apple" | "inverted_triangle"},
  "styleAnalysis": {"colorEvaluation": string, "silhouette": string},
  "recommendations": [{"item": string, "reason": string}]
}
Give 3 to 5 recommendations. Do not include any text outside the JSON object.`

const fullBodyDescriptivePrompt = `You are a warm, encouraging fashion stylist writing for a style magazine.
Describe the person in the full-body photo in flowing prose: overall impression, proportions, and how the current outfit's colors and lines work.
{{template "weather" .}}
Return a single JSON object with exactly these fields:
{
  "bodyAnalysis": {"height": "tall" | "medium" | "short", "bodyType": "hourglass" | "rectangle" | "pear" | "apple" | "inverted_triangle", "description": string},
  "styleAnalysis": {"colorEvaluation": string, "silhouette": string},
  "overallImpression": string,
  "recommendations": [{"item": string, "reason": string}]
}
Each text field should be two to four full sentences. Do not include any text outside the JSON object.`

const (
	faceSystemPrompt     = "You are a personal color consultant. Always answer with one JSON object."
	fullBodySystemPrompt = "You are a fashion stylist. Always answer with one JSON object."
)

var prompts = map[string]*template.Template{
	promptName(KindFace, false):     mustPrompt("face", facePrompt),
	promptName(KindFullBody, false): mustPrompt("fullbody", fullBodyPrompt),
	promptName(KindFullBody, true):  mustPrompt("fullbody_descriptive", fullBodyDescriptivePrompt),
}

func mustPrompt(name, body string) *template.Template {
	return template.Must(template.Must(template.New(name).Parse(weatherSection)).Parse(body))
}

// promptName is shared with fixture lookup. Descriptive mode only applies to
// full-body analysis.
func promptName(kind Kind, descriptive bool) string {
	if kind == KindFullBody && descriptive {
		return "fullbody_descriptive"
	}
	return string(kind)
}

func systemPrompt(kind Kind) string {
	if kind == KindFullBody {
		return fullBodySystemPrompt
	}
	return faceSystemPrompt
}

// BuildPrompt renders the user prompt followed by the language instruction.
func BuildPrompt(kind Kind, descriptive bool, weather *WeatherContext, lang string) (string, error) {
	tmpl, ok := prompts[promptName(kind, descriptive)]
	if !ok {
		return "", fmt.Errorf("no prompt for kind %q", kind)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, struct{ Weather *WeatherContext }{Weather: weather}); err != nil {
		return "", fmt.Errorf("render prompt: %w", err)
	}
	return buf.String() + "\n\n" + language.Instruction(lang), nil
}
