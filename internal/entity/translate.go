package entity

type DetectLanguageRequest struct {
	Q string `json:"q"`
}

type Detection struct {
	Language   string  `json:"language"`
	Confidence float64 `json:"confidence"`
	IsReliable bool    `json:"isReliable"`
}

type DetectLanguageResponse struct {
	Data struct {
		Detections [][]Detection `json:"detections"`
	} `json:"data"`
}

type TranslateRequest struct {
	Q      string `json:"q"`
	Source string `json:"source,omitempty"`
	Target string `json:"target"`
	Format string `json:"format"`
}

type Translation struct {
	TranslatedText         string `json:"translatedText"`
	DetectedSourceLanguage string `json:"detectedSourceLanguage,omitempty"`
}

type TranslateResponse struct {
	Data struct {
		Translations []Translation `json:"translations"`
	} `json:"data"`
}
