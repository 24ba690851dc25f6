package service

import (
	"github.com/8kvgxvbj2w-byte/Photo-Prep-App/internal/model"
)

// Default admission thresholds
const (
	DefaultMinConfidence      = 0.15
	DefaultPriorityConfidence = 0.12
)

// ConfidenceFilter drops low-confidence detections before recommendation.
// Priority classes and room-specific classes are held to a lower bar.
type ConfidenceFilter struct {
	rules              *RuleSet
	minConfidence      float64
	priorityConfidence float64
}

// NewConfidenceFilter creates a filter. The priority threshold is clamped
// so it never exceeds the base threshold.
func NewConfidenceFilter(rules *RuleSet, minConfidence, priorityConfidence float64) *ConfidenceFilter {
	if rules == nil {
		rules = DefaultRuleSet()
	}
	if priorityConfidence > minConfidence {
		priorityConfidence = minConfidence
	}
	return &ConfidenceFilter{
		rules:              rules,
		minConfidence:      minConfidence,
		priorityConfidence: priorityConfidence,
	}
}

// WithMinConfidence returns a copy using a different base threshold
func (f *ConfidenceFilter) WithMinConfidence(minConfidence float64) *ConfidenceFilter {
	return NewConfidenceFilter(f.rules, minConfidence, f.priorityConfidence)
}

// Threshold returns the minimum confidence for a label in the given room
func (f *ConfidenceFilter) Threshold(label string, room model.RoomType) float64 {
	if _, ok := f.rules.PriorityClasses.ContainsAny(label); ok {
		return f.priorityConfidence
	}
	if set, ok := f.rules.RoomAdmission[room]; ok {
		if _, ok := set.ContainsAny(label); ok {
			return f.priorityConfidence
		}
	}
	return f.minConfidence
}

// Admit returns the detections at or above their threshold, in input order
func (f *ConfidenceFilter) Admit(objects []model.DetectedObject, room model.RoomType) []model.DetectedObject {
	admitted := make([]model.DetectedObject, 0, len(objects))
	for _, obj := range objects {
		if obj.Confidence >= f.Threshold(obj.Label, room) {
			admitted = append(admitted, obj)
		}
	}
	return admitted
}
