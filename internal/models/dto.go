package models

type CreateApplicationRequest struct {
	Company     string `json:"company" validate:"required"`
	Role        string `json:"role" validate:"required"`
	Location    string `json:"location"`
	SalaryRange string `json:"salaryRange"`
	Description string `json:"description"`
	DateApplied string `json:"dateApplied" validate:"omitempty,datetime=2006-01-02"`
	LogoURL     string `json:"logoUrl" validate:"omitempty,url"`
}

type MoveStageRequest struct {
	Stage Stage `json:"stage" validate:"required"`
}

type UpdateNotesRequest struct {
	Notes string `json:"notes"`
}

type ResumeVersionRequest struct {
	ResumeVersion string `json:"resumeVersion" validate:"required"`
}

type CreateResumeRequest struct {
	Name    string `json:"name" validate:"required"`
	Content string `json:"content" validate:"required"`
	Version string `json:"version"`
}

type TailorRequest struct {
	ResumeText         string `json:"resumeText" validate:"required"`
	JobDescriptionText string `json:"jobDescriptionText" validate:"required"`
}

type TailorApplicationRequest struct {
	ResumeID string `json:"resumeId" validate:"required,uuid"`
}

type ATSCheckRequest struct {
	ResumeText string `json:"resumeText" validate:"required"`
}

type ExtractRequest struct {
	URL string `json:"url" validate:"required,url"`
}

type RecommendRequest struct {
	JobDescription string `json:"jobDescription" validate:"required"`
	Limit          int    `json:"limit" validate:"omitempty,min=1,max=20"`
}

// AnalysisResponse is returned when an asynchronous AI call is accepted.
type AnalysisResponse struct {
	ID     string `json:"id"`
	Panel  string `json:"panel"`
	Status string `json:"status"`
}

// AnalysisStateResponse reports the state of an asynchronous AI call.
type AnalysisStateResponse struct {
	ID        string      `json:"id"`
	Panel     string      `json:"panel"`
	Status    string      `json:"status"`
	Result    interface{} `json:"result,omitempty"`
	Error     string      `json:"error,omitempty"`
	ErrorKind string      `json:"errorKind,omitempty"`
	Retryable bool        `json:"retryable,omitempty"`
}

type ResumeRecommendation struct {
	ResumeID string  `json:"resumeId"`
	Name     string  `json:"name"`
	Version  string  `json:"version"`
	Score    float32 `json:"score"`
}
