package service

import (
	"sort"

	"github.com/8kvgxvbj2w-byte/Photo-Prep-App/internal/model"
	"github.com/8kvgxvbj2w-byte/Photo-Prep-App/internal/utils"
)

// Default decision thresholds of the classifier
const (
	DefaultRoomScoreFloor  = 5.0
	DefaultRoomMarginRatio = 1.5
)

// RoomClassifier infers the room type from weighted indicator keywords
type RoomClassifier struct {
	rules       *RuleSet
	scoreFloor  float64
	marginRatio float64
}

// NewRoomClassifier creates a classifier over the given rule tables.
// A room wins when its score reaches scoreFloor and exceeds marginRatio
// times the runner-up.
func NewRoomClassifier(rules *RuleSet, scoreFloor, marginRatio float64) *RoomClassifier {
	if rules == nil {
		rules = DefaultRuleSet()
	}
	return &RoomClassifier{
		rules:       rules,
		scoreFloor:  scoreFloor,
		marginRatio: marginRatio,
	}
}

type roomScore struct {
	room  model.RoomType
	score float64
}

// Classify scores every room against the detections and picks a winner.
// Detections are not filtered by confidence here.
func (c *RoomClassifier) Classify(objects []model.DetectedObject) model.RoomClassification {
	scores := make(map[model.RoomType]float64, len(c.rules.Rooms))
	ranked := make([]roomScore, 0, len(c.rules.Rooms))

	for _, tiers := range c.rules.Rooms {
		total := 0.0
		for _, obj := range objects {
			total += c.tierWeight(tiers, obj.Label)
		}
		scores[tiers.Room] = total
		ranked = append(ranked, roomScore{room: tiers.Room, score: total})
	}

	// Stable sort keeps the rule order for ties
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].score > ranked[j].score
	})

	result := model.RoomClassification{
		Type:       model.RoomGeneral,
		Confidence: 0,
		Scores:     scores,
	}
	if len(ranked) == 0 {
		return result
	}

	top := ranked[0]
	second := 0.0
	if len(ranked) > 1 {
		second = ranked[1].score
	}

	if top.score >= c.scoreFloor && top.score > c.marginRatio*second {
		result.Type = top.room
		result.Confidence = top.score
	}

	return result
}

// tierWeight returns the weight of the highest tier containing the label
func (c *RoomClassifier) tierWeight(tiers RoomTiers, label string) float64 {
	label = utils.NormalizeLabel(label)
	switch {
	case tiers.Strong.Contains(label):
		return c.rules.Weights.Strong
	case tiers.Medium.Contains(label):
		return c.rules.Weights.Medium
	case tiers.Weak.Contains(label):
		return c.rules.Weights.Weak
	}
	return 0
}

// HasStrongIndicator reports whether any detection is a strong indicator of room
func (rs *RuleSet) HasStrongIndicator(room model.RoomType, objects []model.DetectedObject) bool {
	tiers, ok := rs.TiersFor(room)
	if !ok {
		return false
	}
	for _, obj := range objects {
		if tiers.Strong.Contains(obj.Label) {
			return true
		}
	}
	return false
}
