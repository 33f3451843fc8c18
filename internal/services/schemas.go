package services

import (
	"github.com/xeipuuv/gojsonschema"
)

// Model output schemas. They only reject documents whose declared fields
// have the wrong type; missing fields are filled in by Normalize.
const (
	scoreReportSchema = `{
  "type": "object",
  "properties": {
    "score": {"type": ["number", "null"]},
    "matching_skills": {"type": ["array", "null"], "items": {"type": "string"}},
    "missing_skills": {"type": ["array", "null"], "items": {"type": "string"}},
    "strengths": {"type": ["array", "null"], "items": {"type": "string"}},
    "weaknesses": {"type": ["array", "null"], "items": {"type": "string"}},
    "recommendation": {"type": ["string", "null"]},
    "reason": {"type": ["string", "null"]}
  }
}`

	summarySchema = `{
  "type": "object",
  "properties": {
    "summary_bullets": {"type": ["array", "null"], "items": {"type": "string"}}
  }
}`

	questionsSchema = `{
  "type": "object",
  "properties": {
    "technical": {"type": ["array", "null"], "items": {"type": "string"}},
    "behavioral": {"type": ["array", "null"], "items": {"type": "string"}},
    "scenario": {"type": ["array", "null"], "items": {"type": "string"}}
  }
}`

	emailSchema = `{
  "type": "object",
  "properties": {
    "subject": {"type": ["string", "null"]},
    "body": {"type": ["string", "null"]}
  }
}`

	skillGapSchema = `{
  "type": "object",
  "properties": {
    "missing_skills": {"type": ["array", "null"], "items": {"type": "string"}},
    "recommended_learning": {"type": ["array", "null"], "items": {"type": "string"}},
    "estimated_weeks_to_learn": {"type": ["number", "null"]}
  }
}`
)

// Schemas are compiled once at startup.
type Schemas struct {
	Score     *gojsonschema.Schema
	Summary   *gojsonschema.Schema
	Questions *gojsonschema.Schema
	Email     *gojsonschema.Schema
	SkillGap  *gojsonschema.Schema
}

func LoadSchemas() (*Schemas, error) {
	s := &Schemas{}
	sources := []struct {
		dst **gojsonschema.Schema
		src string
	}{
		{&s.Score, scoreReportSchema},
		{&s.Summary, summarySchema},
		{&s.Questions, questionsSchema},
		{&s.Email, emailSchema},
		{&s.SkillGap, skillGapSchema},
	}

	for _, source := range sources {
		compiled, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(source.src))
		if err != nil {
			return nil, err
		}
		*source.dst = compiled
	}
	return s, nil
}

// MustLoadSchemas panics if an embedded schema does not compile.
func MustLoadSchemas() *Schemas {
	s, err := LoadSchemas()
	if err != nil {
		panic(err)
	}
	return s
}
