package services

import "google.golang.org/genai"

// Response schemas declared to Gemini. The Required lists double as the
// presence check applied to every reply.

func tailorSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"suggestions": {
				Type:        genai.TypeArray,
				Items:       &genai.Schema{Type: genai.TypeString},
				Description: "List of actionable suggestions for the resume.",
			},
			"keywords": {
				Type:        genai.TypeArray,
				Items:       &genai.Schema{Type: genai.TypeString},
				Description: "List of missing keywords found in the job description.",
			},
			"rephrasedBullets": {
				Type: genai.TypeArray,
				Items: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"original": {Type: genai.TypeString},
						"improved": {Type: genai.TypeString},
					},
					Required: []string{"original", "improved"},
				},
				Description: "Suggested rephrasing for existing bullet points.",
			},
			"matchScore": scoreSchema("A score from 0-100 indicating how well the current resume matches the job."),
		},
		Required:         []string{"suggestions", "keywords", "rephrasedBullets", "matchScore"},
		PropertyOrdering: []string{"matchScore", "suggestions", "keywords", "rephrasedBullets"},
	}
}

func atsCheckSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"atsScore": scoreSchema("A score from 0-100 estimating how well the resume survives ATS parsing."),
			"readabilityRating": {
				Type:        genai.TypeString,
				Description: "Short qualitative label such as Excellent, Good, Fair or Poor.",
			},
			"criticalIssues": stringList("Problems likely to make an ATS reject or mangle the resume."),
			"formattingTips": stringList("Concrete formatting changes that improve parsing."),
			"strongPoints":   stringList("Things the resume already does well."),
		},
		Required:         []string{"atsScore", "readabilityRating", "criticalIssues", "formattingTips", "strongPoints"},
		PropertyOrdering: []string{"atsScore", "readabilityRating", "criticalIssues", "formattingTips", "strongPoints"},
	}
}

func jobExtractionSchema() *genai.Schema {
	field := func(desc string) *genai.Schema {
		return &genai.Schema{Type: genai.TypeString, Description: desc}
	}
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"company":     field("Hiring company name, or empty string if not stated."),
			"role":        field("Job title, or empty string if not stated."),
			"location":    field("Job location or Remote, or empty string if not stated."),
			"salaryRange": field("Salary range exactly as written, or empty string if not stated."),
			"description": field("Plain-text summary of responsibilities and requirements."),
		},
		Required:         []string{"company", "role", "location", "salaryRange", "description"},
		PropertyOrdering: []string{"company", "role", "location", "salaryRange", "description"},
	}
}

func scoreSchema(desc string) *genai.Schema {
	minScore, maxScore := 0.0, 100.0
	return &genai.Schema{
		Type:        genai.TypeInteger,
		Minimum:     &minScore,
		Maximum:     &maxScore,
		Description: desc,
	}
}

func stringList(desc string) *genai.Schema {
	return &genai.Schema{
		Type:        genai.TypeArray,
		Items:       &genai.Schema{Type: genai.TypeString},
		Description: desc,
	}
}
