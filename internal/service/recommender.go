package service

import (
	"math"
	"strconv"
	"strings"

	"github.com/8kvgxvbj2w-byte/Photo-Prep-App/internal/model"
	"github.com/8kvgxvbj2w-byte/Photo-Prep-App/internal/utils"
)

// RecommendationEngine turns admitted detections into removal and staging advice.
// It holds no mutable state and is safe for concurrent use.
type RecommendationEngine struct {
	rules  *RuleSet
	filter *ConfidenceFilter
}

// NewRecommendationEngine creates an engine over the given rule tables
func NewRecommendationEngine(rules *RuleSet, filter *ConfidenceFilter) *RecommendationEngine {
	if rules == nil {
		rules = DefaultRuleSet()
	}
	if filter == nil {
		filter = NewConfidenceFilter(rules, DefaultMinConfidence, DefaultPriorityConfidence)
	}
	return &RecommendationEngine{
		rules:  rules,
		filter: filter,
	}
}

// Evaluation is the full output of one recommendation pass
type Evaluation struct {
	Recommendations []model.Recommendation
	Admitted        int
	Movable         []TrackedFurniture
}

// TrackedFurniture is a movable piece seen in the photo. It feeds the
// styling tips instead of the clutter list.
type TrackedFurniture struct {
	Name string
	Box  model.BoundingBox
}

// Recommend returns deduplicated clutter items followed by styling tips.
// An empty input yields an empty, non-nil list.
func (e *RecommendationEngine) Recommend(objects []model.DetectedObject, room model.RoomType) ([]model.Recommendation, error) {
	eval, err := e.Evaluate(objects, room, nil)
	if err != nil {
		return nil, err
	}
	return eval.Recommendations, nil
}

// Evaluate runs the full pipeline. minConfidence overrides the base admission
// threshold for this call when set.
func (e *RecommendationEngine) Evaluate(objects []model.DetectedObject, room model.RoomType, minConfidence *float64) (*Evaluation, error) {
	if err := model.ValidateDetections(objects); err != nil {
		return nil, err
	}

	filter := e.filter
	if minConfidence != nil {
		filter = filter.WithMinConfidence(*minConfidence)
	}
	admitted := filter.Admit(objects, room)

	items := make([]model.Recommendation, 0, len(admitted))
	var movable []TrackedFurniture
	for _, obj := range admitted {
		rec, furniture := e.categorize(obj, room)
		if furniture != nil {
			movable = append(movable, *furniture)
		}
		if rec != nil {
			items = append(items, *rec)
		}
	}

	result := dedupe(items)
	result = append(result, e.stylingTips(room, objects, len(result) > 0, movable)...)

	return &Evaluation{
		Recommendations: result,
		Admitted:        len(admitted),
		Movable:         movable,
	}, nil
}

// categorize decides what happens to one admitted detection: fixed furniture
// is dropped, movable furniture is tracked, everything else becomes an item.
func (e *RecommendationEngine) categorize(obj model.DetectedObject, room model.RoomType) (*model.Recommendation, *TrackedFurniture) {
	name := strings.TrimSpace(obj.Label)

	if _, ok := e.rules.FurnitureKeep.MatchAny(name); ok {
		return nil, nil
	}

	if _, ok := e.rules.MovableFurniture.MatchAny(name); ok {
		return nil, &TrackedFurniture{Name: name, Box: obj.BoundingBox}
	}

	location := formatLocation(obj.BoundingBox)

	if _, ok := e.rules.ClutterItems.MatchAny(name); ok {
		rule := e.clutterRule(name)
		return &model.Recommendation{
			Type:         model.RecommendSpecific,
			Name:         name,
			Confidence:   model.SpecificConfidence,
			Location:     location,
			Reason:       rule.Reason,
			ItemCategory: rule.Category,
		}, nil
	}

	bucket, ok := e.rules.Buckets[room]
	if !ok {
		bucket = e.rules.DefaultBucket
	}
	return &model.Recommendation{
		Type:       model.RecommendCategorized,
		Name:       bucket.Name,
		Confidence: model.CategorizedConfidence,
		Location:   location,
		Category:   bucket.Hint,
	}, nil
}

// clutterRule returns the first rule matching the label, or the default
func (e *RecommendationEngine) clutterRule(label string) ClutterRule {
	for _, rule := range e.rules.ClutterRules {
		if rule.Matches(label) {
			return rule
		}
	}
	return e.rules.DefaultClutter
}

// dedupe merges items sharing a case-insensitive name, keeping the first
// occurrence and counting the rest.
func dedupe(items []model.Recommendation) []model.Recommendation {
	out := make([]model.Recommendation, 0, len(items))
	index := make(map[string]int, len(items))

	for _, item := range items {
		key := strings.ToLower(item.Name)
		if i, ok := index[key]; ok {
			out[i].Count++
			continue
		}
		item.Count = 1
		index[key] = len(out)
		out = append(out, item)
	}
	return out
}

// formatLocation renders the rounded top-left corner as "x, y"
func formatLocation(box model.BoundingBox) string {
	return formatCoord(box.X) + ", " + formatCoord(box.Y)
}

func formatCoord(v float64) string {
	r := math.Round(v)
	if r == 0 {
		r = 0 // drop negative zero
	}
	return strconv.FormatFloat(r, 'f', 0, 64)
}

// trackedNames lower-cases the names of tracked furniture
func trackedNames(movable []TrackedFurniture) []string {
	names := make([]string, len(movable))
	for i, f := range movable {
		names[i] = utils.NormalizeLabel(f.Name)
	}
	return names
}
