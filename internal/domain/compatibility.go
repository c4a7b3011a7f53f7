package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// MaxKutaScore максимальный балл совместимости (ашта-кута)
const MaxKutaScore = 36

// Prediction один аспект отчёта о совместимости
type Prediction struct {
	Info   string `json:"Info"`
	Name   string `json:"Name"`
	Nature string `json:"Nature"`
}

// MatchReport отчёт о совместимости двух пользователей
type MatchReport struct {
	KutaScore      float64      `json:"KutaScore"`
	PredictionList []Prediction `json:"PredictionList"`
}

// matchReportEnvelope обёртка, в которой бэкенд присылает отчёт
type matchReportEnvelope struct {
	Payload *struct {
		MatchReport *MatchReport `json:"MatchReport"`
	} `json:"Payload"`
}

// ParseMatchReport разбирает строку match_report: это JSON вида
// {"Payload":{"MatchReport":{"KutaScore":..,"PredictionList":[..]}}}
func ParseMatchReport(raw string) (*MatchReport, error) {
	var env matchReportEnvelope
	if err := json.Unmarshal([]byte(raw), &env); err != nil {
		return nil, fmt.Errorf("failed to unmarshal match report: %w", err)
	}

	if env.Payload == nil || env.Payload.MatchReport == nil {
		return nil, errors.New("match report payload is missing")
	}

	return env.Payload.MatchReport, nil
}

// Aspects возвращает аспекты с непустым Info в исходном порядке
func (r *MatchReport) Aspects() []Prediction {
	filtered := make([]Prediction, 0, len(r.PredictionList))
	for _, p := range r.PredictionList {
		if strings.TrimSpace(p.Info) == "" {
			continue
		}
		filtered = append(filtered, p)
	}
	return filtered
}

// Summary форматирует отчёт в одну строку для отображения
func (r *MatchReport) Summary() string {
	var builder strings.Builder

	builder.WriteString("Compatibility Report\n\n")
	builder.WriteString("Kuta Score: ")
	builder.WriteString(strconv.FormatFloat(r.KutaScore, 'f', -1, 64))
	builder.WriteString("/")
	builder.WriteString(strconv.Itoa(MaxKutaScore))
	builder.WriteString("\n\n")
	builder.WriteString("Aspects Breakdown:\n")

	for i, p := range r.Aspects() {
		if i > 0 {
			builder.WriteString("\n\n")
		}
		builder.WriteString(p.Name)
		builder.WriteString(" (")
		builder.WriteString(p.Nature)
		builder.WriteString(")\nInfo: ")
		builder.WriteString(p.Info)
	}

	return builder.String()
}
