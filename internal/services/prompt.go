package services

import (
	"fmt"
	"strings"
)

type PromptBuilder struct{}

func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

// BuildTailorPrompt creates the prompt for resume tailoring
func (pb *PromptBuilder) BuildTailorPrompt(resumeText, jobDescription string) string {
	return fmt.Sprintf(`You are an expert career coach and resume writer.
Analyze the following resume and job description.
Suggest specific keywords to add, bullet points to rephrase, and structural changes to improve the match percentage.

Keywords must be terms that appear in the job description but are missing from the resume.
Only rephrase bullets that exist in the resume; quote the original text exactly.
matchScore is an integer from 0 to 100.

Resume:
%s

Job Description:
%s`, strings.TrimSpace(resumeText), strings.TrimSpace(jobDescription))
}

// BuildATSCheckPrompt creates the prompt for an ATS friendliness check
func (pb *PromptBuilder) BuildATSCheckPrompt(resumeText string) string {
	return fmt.Sprintf(`You are an Applicant Tracking System (ATS) specialist.
Evaluate how well the following resume would survive automated parsing and keyword screening.

Report:
- atsScore: integer from 0 to 100
- readabilityRating: one short label (for example Excellent, Good, Fair, Poor)
- criticalIssues: problems that would make an ATS reject or mangle the resume
- formattingTips: concrete formatting fixes
- strongPoints: what already works well

Use empty lists rather than omitting a field.

Resume:
%s`, strings.TrimSpace(resumeText))
}

// BuildJobExtractionPrompt creates the prompt for extracting a posting from a URL
func (pb *PromptBuilder) BuildJobExtractionPrompt(url string) string {
	return fmt.Sprintf(`You are a job data extraction assistant.
Use search to open the job posting at the URL below and extract its details.

Ignore navigation menus, footers, "similar jobs" lists and advertisements.
If a piece of information is not on the page, return an empty string for it. Do not guess.
The description should be a clean plain-text summary of responsibilities and requirements.

URL: %s`, strings.TrimSpace(url))
}
