package models

// TailorResult is the structured reply of a resume tailoring call.
type TailorResult struct {
	MatchScore       int               `json:"matchScore" validate:"min=0,max=100"`
	Suggestions      []string          `json:"suggestions" validate:"required"`
	Keywords         []string          `json:"keywords" validate:"required"`
	RephrasedBullets []RephrasedBullet `json:"rephrasedBullets" validate:"required,dive"`
}

type RephrasedBullet struct {
	Original string `json:"original" validate:"required"`
	Improved string `json:"improved" validate:"required"`
}

// ATSCheckResult is the structured reply of an ATS friendliness check.
type ATSCheckResult struct {
	ATSScore          int      `json:"atsScore" validate:"min=0,max=100"`
	ReadabilityRating string   `json:"readabilityRating" validate:"required"`
	CriticalIssues    []string `json:"criticalIssues" validate:"required"`
	FormattingTips    []string `json:"formattingTips" validate:"required"`
	StrongPoints      []string `json:"strongPoints" validate:"required"`
}

// JobExtractionResult holds job posting fields. Missing information is "".
type JobExtractionResult struct {
	Company     string `json:"company"`
	Role        string `json:"role"`
	Location    string `json:"location"`
	SalaryRange string `json:"salaryRange"`
	Description string `json:"description"`
}
