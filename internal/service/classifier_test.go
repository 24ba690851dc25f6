package service

import (
	"testing"

	"github.com/8kvgxvbj2w-byte/Photo-Prep-App/internal/model"
	"github.com/stretchr/testify/assert"
)

// obj builds a confident detection at the origin
func obj(label string) model.DetectedObject {
	return model.DetectedObject{
		Label:       label,
		Confidence:  0.9,
		BoundingBox: model.BoundingBox{X: 0, Y: 0, Width: 1, Height: 1},
	}
}

func objs(labels ...string) []model.DetectedObject {
	out := make([]model.DetectedObject, len(labels))
	for i, l := range labels {
		out[i] = obj(l)
	}
	return out
}

func newTestClassifier() *RoomClassifier {
	return NewRoomClassifier(DefaultRuleSet(), DefaultRoomScoreFloor, DefaultRoomMarginRatio)
}

func TestRoomClassifier_Classify(t *testing.T) {
	classifier := newTestClassifier()

	tests := []struct {
		name           string
		labels         []string
		wantType       model.RoomType
		wantConfidence float64
	}{
		{
			name:           "Oven and bottle",
			labels:         []string{"oven", "bottle"},
			wantType:       model.RoomKitchen,
			wantConfidence: 7,
		},
		{
			name:           "Toilet alone",
			labels:         []string{"toilet"},
			wantType:       model.RoomBathroom,
			wantConfidence: 5,
		},
		{
			name:           "Bed and pillow",
			labels:         []string{"bed", "pillow"},
			wantType:       model.RoomBedroom,
			wantConfidence: 10,
		},
		{
			name:           "Couch and tv",
			labels:         []string{"couch", "tv", "rug"},
			wantType:       model.RoomLivingRoom,
			wantConfidence: 12,
		},
		{
			name:           "Dining table and plate",
			labels:         []string{"dining table", "plate"},
			wantType:       model.RoomDiningRoom,
			wantConfidence: 7,
		},
		{
			name:           "Labels are normalized",
			labels:         []string{"  OVEN "},
			wantType:       model.RoomKitchen,
			wantConfidence: 5,
		},
		{
			name:     "Empty input",
			labels:   nil,
			wantType: model.RoomGeneral,
		},
		{
			name:     "Below score floor",
			labels:   []string{"cup"},
			wantType: model.RoomGeneral,
		},
		{
			name:     "Shared strong indicator has no margin",
			labels:   []string{"sink"},
			wantType: model.RoomGeneral,
		},
		{
			name:     "Chairs pull towards dining room without margin",
			labels:   []string{"chair", "chair", "chair", "couch", "tv"},
			wantType: model.RoomGeneral,
		},
		{
			name:     "Membership is exact",
			labels:   []string{"microwave oven"},
			wantType: model.RoomGeneral,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classifier.Classify(objs(tt.labels...))
			assert.Equal(t, tt.wantType, got.Type)
			assert.Equal(t, tt.wantConfidence, got.Confidence)
			assert.Len(t, got.Scores, len(model.ScoredRooms))
		})
	}
}

func TestRoomClassifier_Scoreboard(t *testing.T) {
	got := newTestClassifier().Classify(objs("chair", "chair", "chair", "couch", "tv"))

	assert.Equal(t, 1.5, got.Scores[model.RoomKitchen])
	assert.Equal(t, 0.0, got.Scores[model.RoomBathroom])
	assert.Equal(t, 6.0, got.Scores[model.RoomBedroom])
	assert.Equal(t, 11.5, got.Scores[model.RoomLivingRoom])
	assert.Equal(t, 15.0, got.Scores[model.RoomDiningRoom])
}

func TestRoomClassifier_HighestTierOnly(t *testing.T) {
	// "sink" and "mirror" are strong bathroom indicators; each detection
	// counts once per room even if several tiers could match.
	got := newTestClassifier().Classify(objs("sink", "mirror", "towel"))
	assert.Equal(t, 12.0, got.Scores[model.RoomBathroom])
	assert.Equal(t, model.RoomBathroom, got.Type)
}

func TestRoomClassifier_OrderIndependent(t *testing.T) {
	classifier := newTestClassifier()
	labels := []string{"oven", "bottle", "chair", "sink", "plate", "couch", "lamp"}

	want := classifier.Classify(objs(labels...))

	permutations := [][]string{
		{"lamp", "couch", "plate", "sink", "chair", "bottle", "oven"},
		{"chair", "oven", "lamp", "bottle", "couch", "sink", "plate"},
		{"plate", "sink", "oven", "lamp", "chair", "couch", "bottle"},
	}
	for _, p := range permutations {
		assert.Equal(t, want, classifier.Classify(objs(p...)))
	}
}

func TestRoomClassifier_IgnoresConfidence(t *testing.T) {
	weak := obj("toilet")
	weak.Confidence = 0.01

	got := newTestClassifier().Classify([]model.DetectedObject{weak})
	assert.Equal(t, model.RoomBathroom, got.Type)
}

func TestRuleSet_HasStrongIndicator(t *testing.T) {
	rules := DefaultRuleSet()

	assert.True(t, rules.HasStrongIndicator(model.RoomKitchen, objs("cup", "Oven")))
	assert.False(t, rules.HasStrongIndicator(model.RoomKitchen, objs("cup", "plate")))
	assert.False(t, rules.HasStrongIndicator(model.RoomGeneral, objs("oven")))
	assert.False(t, rules.HasStrongIndicator(model.RoomBathroom, nil))
}

func TestDefaultRuleSet_Independent(t *testing.T) {
	a := DefaultRuleSet()
	b := DefaultRuleSet()

	a.Styling[model.RoomKitchen].Tips[0] = "changed"
	a.Buckets[model.RoomKitchen] = Bucket{Name: "changed"}
	a.ClutterRules = a.ClutterRules[:1]

	assert.Equal(t, "Clear ALL countertops - show maximum space", b.Styling[model.RoomKitchen].Tips[0])
	assert.Equal(t, "Kitchen clutter", b.Buckets[model.RoomKitchen].Name)
	assert.Len(t, b.ClutterRules, 13)
	assert.Equal(t, RuleSetVersion, b.Version)
}
