package service

import (
	"errors"
	"testing"

	"github.com/8kvgxvbj2w-byte/Photo-Prep-App/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEngine() *RecommendationEngine {
	rules := DefaultRuleSet()
	return NewRecommendationEngine(rules, NewConfidenceFilter(rules, DefaultMinConfidence, DefaultPriorityConfidence))
}

func at(label string, confidence, x, y float64) model.DetectedObject {
	return model.DetectedObject{
		Label:       label,
		Confidence:  confidence,
		BoundingBox: model.BoundingBox{X: x, Y: y, Width: 5, Height: 5},
	}
}

func items(recs []model.Recommendation) []model.Recommendation {
	var out []model.Recommendation
	for _, r := range recs {
		if r.IsItem() {
			out = append(out, r)
		}
	}
	return out
}

func styling(recs []model.Recommendation) []model.Recommendation {
	var out []model.Recommendation
	for _, r := range recs {
		if r.Type == model.RecommendStyling {
			out = append(out, r)
		}
	}
	return out
}

func TestRecommend_OvenAndBottle(t *testing.T) {
	detections := []model.DetectedObject{
		{Label: "oven", Confidence: 0.9, BoundingBox: model.BoundingBox{X: 0, Y: 0, Width: 1, Height: 1}},
		{Label: "bottle", Confidence: 0.9, BoundingBox: model.BoundingBox{X: 10, Y: 20, Width: 5, Height: 5}},
	}

	room := newTestClassifier().Classify(detections)
	require.Equal(t, model.RoomKitchen, room.Type)

	recs, err := newTestEngine().Recommend(detections, room.Type)
	require.NoError(t, err)
	require.Len(t, recs, 2)

	assert.Equal(t, model.Recommendation{
		Type:         model.RecommendSpecific,
		Name:         "bottle",
		Confidence:   model.SpecificConfidence,
		Location:     "10, 20",
		Reason:       "Clear surfaces make kitchens look spacious and clean",
		ItemCategory: model.CategoryMess,
		Count:        1,
	}, recs[0])

	assert.Equal(t, model.RecommendStyling, recs[1].Type)
	assert.Equal(t, "Kitchen Staging Tips", recs[1].Name)
	assert.Equal(t, "Kitchen", recs[1].Location)
	assert.Len(t, recs[1].Tips, 7)
}

func TestRecommend_ToiletOnly(t *testing.T) {
	detections := objs("toilet")
	room := newTestClassifier().Classify(detections)
	require.Equal(t, model.RoomBathroom, room.Type)

	recs, err := newTestEngine().Recommend(detections, room.Type)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, model.RecommendStyling, recs[0].Type)
	assert.Equal(t, "Bathroom Staging Tips", recs[0].Name)
	assert.Len(t, recs[0].Tips, 8)
}

func TestRecommend_EmptyInput(t *testing.T) {
	detections := []model.DetectedObject{}
	room := newTestClassifier().Classify(detections)
	assert.Equal(t, model.RoomGeneral, room.Type)
	assert.Equal(t, 0.0, room.Confidence)

	recs, err := newTestEngine().Recommend(detections, room.Type)
	require.NoError(t, err)
	assert.NotNil(t, recs)
	assert.Empty(t, recs)
}

func TestRecommend_LivingRoomChairs(t *testing.T) {
	tests := []struct {
		name    string
		labels  []string
		wantTip string
	}{
		{
			name:    "Three chairs",
			labels:  []string{"chair", "chair", "chair", "couch", "tv"},
			wantTip: "Consider removing 1 extra chair(s) to make room feel more spacious",
		},
		{
			name:    "Chairs and stools",
			labels:  []string{"chair", "bar stool", "office chair", "stool", "sofa"},
			wantTip: "Consider removing 2 extra chair(s) to make room feel more spacious",
		},
		{
			name:    "One chair",
			labels:  []string{"chair", "couch"},
			wantTip: "Evaluate if extra chairs obstruct walking space - remove if needed",
		},
		{
			name:    "Ottoman is not a chair",
			labels:  []string{"ottoman", "couch"},
			wantTip: "Show flow and walking space",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recs, err := newTestEngine().Recommend(objs(tt.labels...), model.RoomLivingRoom)
			require.NoError(t, err)
			assert.Empty(t, items(recs))

			tips := styling(recs)
			require.Len(t, tips, 1)
			assert.Equal(t, "Living Room Staging Tips", tips[0].Name)
			assert.Equal(t, tt.wantTip, tips[0].Tips[len(tips[0].Tips)-1])
		})
	}
}

func TestRecommend_TipsNeedStrongIndicator(t *testing.T) {
	recs, err := newTestEngine().Recommend(objs("chair", "chair", "chair"), model.RoomLivingRoom)
	require.NoError(t, err)
	assert.Empty(t, recs)
}

func TestRecommend_TipsUseUnfilteredDetections(t *testing.T) {
	detections := []model.DetectedObject{
		at("oven", 0.05, 0, 0),
		at("bottle", 0.9, 1, 1),
	}

	recs, err := newTestEngine().Recommend(detections, model.RoomKitchen)
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, "bottle", recs[0].Name)
	assert.Equal(t, "Kitchen Staging Tips", recs[1].Name)
}

func TestRecommend_GeneralRoom(t *testing.T) {
	t.Run("Movable furniture is named", func(t *testing.T) {
		recs, err := newTestEngine().Recommend(objs("Chair", "bench"), model.RoomGeneral)
		require.NoError(t, err)
		require.Len(t, recs, 1)
		assert.Equal(t, "General Staging Tips", recs[0].Name)
		assert.Equal(t, "Any room", recs[0].Location)
		assert.Equal(t,
			"Consider removing movable furniture (chair, bench) if it makes the space feel crowded",
			recs[0].Tips[len(recs[0].Tips)-1],
		)
	})

	t.Run("Items only", func(t *testing.T) {
		recs, err := newTestEngine().Recommend(objs("cup"), model.RoomGeneral)
		require.NoError(t, err)
		require.Len(t, recs, 2)
		assert.Len(t, recs[1].Tips, 6)
	})

	t.Run("Nothing found", func(t *testing.T) {
		recs, err := newTestEngine().Recommend(objs("wall", "floor"), model.RoomGeneral)
		require.NoError(t, err)
		assert.Empty(t, recs)
	})
}

func TestRecommend_DiningRoomUsesGeneralTemplate(t *testing.T) {
	recs, err := newTestEngine().Recommend(objs("dining table", "cup", "chair"), model.RoomDiningRoom)
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, "cup", recs[0].Name)
	assert.Equal(t, "General Staging Tips", recs[1].Name)
	assert.Contains(t, recs[1].Tips, "Consider removing movable furniture (chair) if it makes the space feel crowded")
}

func TestRecommend_ClutterReasons(t *testing.T) {
	tests := []struct {
		label    string
		category model.ItemCategory
		reason   string
	}{
		{"person", model.CategoryOccupant, "Buyers focus on the space, not current occupants"},
		{"dog", model.CategoryOccupant, "Buyers focus on the space, not current occupants"},
		{"wine glass", model.CategoryMess, "Clear surfaces make kitchens look spacious and clean"},
		{"toothbrush", model.CategoryMess, "Bathrooms should look spa-like and depersonalized"},
		{"blanket", model.CategoryMess, "Bedrooms need minimal styling - less is more"},
		{"cell phone", model.CategoryClutter, "Electronics create visual clutter and distraction"},
		{"laptop", model.CategoryClutter, "Electronics create visual clutter and distraction"},
		{"magazine", model.CategoryMess, "Paper clutter and trash makes spaces look busy and unkempt"},
		{"extension cord", model.CategoryMess, "Visible cables and wires look messy and unprofessional"},
		{"broom", model.CategoryMess, "Cleaning supplies and tools should be hidden away"},
		{"teddy bear", model.CategoryClutter, "Toys distract from the home's features"},
		{"picture", model.CategoryPersonal, "Personal photos should be removed for neutral appeal"},
		{"potted plant", model.CategoryDecorCheck, "Decor is good, but keep minimal - 1-2 accent pieces per surface"},
		{"sculpture", model.CategoryClutter, "Creates visual clutter - clear for photos"},
		{"poster", model.CategoryDecorCheck, "Evaluate if decor is tasteful and minimal - remove if excessive"},
		{"vase", model.CategoryClutter, "Creates visual clutter - clear for photos"},
		{"handbag", model.CategoryClutter, "Creates visual clutter - clear for photos"},
	}

	engine := newTestEngine()
	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			recs, err := engine.Recommend(objs(tt.label), model.RoomGeneral)
			require.NoError(t, err)

			got := items(recs)
			require.Len(t, got, 1)
			assert.Equal(t, model.RecommendSpecific, got[0].Type)
			assert.Equal(t, tt.label, got[0].Name)
			assert.Equal(t, tt.category, got[0].ItemCategory)
			assert.Equal(t, tt.reason, got[0].Reason)
		})
	}
}

func TestClutterRule_BookNeedsExactLabel(t *testing.T) {
	rules := DefaultRuleSet()
	var book ClutterRule
	for _, r := range rules.ClutterRules {
		if r.Exact {
			book = r
		}
	}

	assert.Equal(t, model.CategoryDecorExcessive, book.Category)
	assert.True(t, book.Matches("Book"))
	assert.False(t, book.Matches("notebook"))
	assert.False(t, book.Matches("books"))
}

func TestRecommend_FallbackBuckets(t *testing.T) {
	tests := []struct {
		room     model.RoomType
		wantName string
		wantHint string
	}{
		{model.RoomKitchen, "Kitchen clutter", "Dishes, bottles, or items on surfaces"},
		{model.RoomBathroom, "Bathroom items", "Toiletries, bottles, or personal items"},
		{model.RoomBedroom, "Bedroom clutter", "Clothes, items on surfaces, or personal belongings"},
		{model.RoomLivingRoom, "Visible clutter", "Remove this object"},
		{model.RoomGeneral, "Visible clutter", "Remove this object"},
	}

	for _, tt := range tests {
		t.Run(string(tt.room), func(t *testing.T) {
			detections := []model.DetectedObject{
				at("zebra", 0.9, 3.4, 7.6),
				at("giraffe", 0.9, 50, 60),
				at("zebra", 0.9, 1, 1),
			}
			recs, err := newTestEngine().Recommend(detections, tt.room)
			require.NoError(t, err)

			got := items(recs)
			require.Len(t, got, 1)
			assert.Equal(t, model.Recommendation{
				Type:       model.RecommendCategorized,
				Name:       tt.wantName,
				Confidence: model.CategorizedConfidence,
				Location:   "3, 8",
				Category:   tt.wantHint,
				Count:      3,
			}, got[0])
		})
	}
}

func TestRecommend_KeepSetNeverEmitted(t *testing.T) {
	keep := DefaultRuleSet().FurnitureKeep.Keywords()
	keep = append(keep, "book", "King Bed", "kitchen sink")

	rooms := append([]model.RoomType{model.RoomGeneral}, model.ScoredRooms...)
	engine := newTestEngine()

	for _, room := range rooms {
		recs, err := engine.Recommend(objs(keep...), room)
		require.NoError(t, err)
		assert.Empty(t, items(recs), "room %s", room)
	}
}

func TestRecommend_DedupDoubling(t *testing.T) {
	detections := []model.DetectedObject{
		at("bottle", 0.9, 1, 2),
		at("Cup", 0.9, 3, 4),
		at("person", 0.9, 5, 6),
		at("zebra", 0.9, 7, 8),
		at("oven", 0.9, 0, 0),
	}
	doubled := append(append([]model.DetectedObject{}, detections...), detections...)

	engine := newTestEngine()
	single, err := engine.Recommend(detections, model.RoomKitchen)
	require.NoError(t, err)
	double, err := engine.Recommend(doubled, model.RoomKitchen)
	require.NoError(t, err)

	require.Len(t, double, len(single))
	for i := range single {
		if single[i].IsItem() {
			assert.Equal(t, single[i].Name, double[i].Name)
			assert.Equal(t, single[i].Location, double[i].Location)
			assert.Equal(t, 2*single[i].Count, double[i].Count)
		} else {
			assert.Equal(t, single[i], double[i])
		}
	}
}

func TestRecommend_DedupIsCaseInsensitive(t *testing.T) {
	recs, err := newTestEngine().Recommend([]model.DetectedObject{
		at("Cup", 0.9, 1, 1),
		at("cup", 0.9, 9, 9),
		at("CUP", 0.9, 5, 5),
	}, model.RoomGeneral)
	require.NoError(t, err)

	got := items(recs)
	require.Len(t, got, 1)
	assert.Equal(t, "Cup", got[0].Name)
	assert.Equal(t, "1, 1", got[0].Location)
	assert.Equal(t, 3, got[0].Count)
}

func TestRecommend_Admission(t *testing.T) {
	tests := []struct {
		name      string
		detection model.DetectedObject
		room      model.RoomType
		admitted  bool
	}{
		{name: "Priority class at lower bar", detection: at("bottle", 0.12, 0, 0), room: model.RoomGeneral, admitted: true},
		{name: "Priority substring", detection: at("cell phone", 0.13, 0, 0), room: model.RoomGeneral, admitted: true},
		{name: "Regular class below base", detection: at("vase", 0.14, 0, 0), room: model.RoomGeneral, admitted: false},
		{name: "Regular class at base", detection: at("vase", 0.15, 0, 0), room: model.RoomGeneral, admitted: true},
		{name: "Room class in its room", detection: at("towel", 0.13, 0, 0), room: model.RoomBathroom, admitted: true},
		{name: "Room class elsewhere", detection: at("towel", 0.13, 0, 0), room: model.RoomKitchen, admitted: false},
		{name: "Below every bar", detection: at("person", 0.11, 0, 0), room: model.RoomGeneral, admitted: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			eval, err := newTestEngine().Evaluate([]model.DetectedObject{tt.detection}, tt.room, nil)
			require.NoError(t, err)
			if tt.admitted {
				assert.Equal(t, 1, eval.Admitted)
				assert.Len(t, items(eval.Recommendations), 1)
			} else {
				assert.Equal(t, 0, eval.Admitted)
				assert.Empty(t, items(eval.Recommendations))
			}
		})
	}
}

func TestRecommend_MinConfidenceOverride(t *testing.T) {
	detections := []model.DetectedObject{at("vase", 0.3, 0, 0), at("cup", 0.3, 0, 0)}
	engine := newTestEngine()

	eval, err := engine.Evaluate(detections, model.RoomGeneral, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, eval.Admitted)

	// Priority classes keep the lower bar
	strict := 0.9
	eval, err = engine.Evaluate(detections, model.RoomGeneral, &strict)
	require.NoError(t, err)
	assert.Equal(t, 1, eval.Admitted)
	assert.Equal(t, "cup", items(eval.Recommendations)[0].Name)
}

func TestRecommend_InvalidDetection(t *testing.T) {
	tests := []struct {
		name      string
		detection model.DetectedObject
	}{
		{name: "Confidence above one", detection: at("cup", 1.5, 0, 0)},
		{name: "Negative width", detection: model.DetectedObject{Label: "cup", Confidence: 0.5, BoundingBox: model.BoundingBox{Width: -1, Height: 1}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newTestEngine().Recommend([]model.DetectedObject{tt.detection}, model.RoomGeneral)
			require.Error(t, err)
			assert.True(t, errors.Is(err, model.ErrInvalidDetection))
		})
	}
}

func TestFormatLocation(t *testing.T) {
	tests := []struct {
		box  model.BoundingBox
		want string
	}{
		{model.BoundingBox{X: 10, Y: 20}, "10, 20"},
		{model.BoundingBox{X: 10.6, Y: 20.4}, "11, 20"},
		{model.BoundingBox{X: -0.4, Y: 3.5}, "0, 4"},
		{model.BoundingBox{X: -12.7, Y: 1e9}, "-13, 1000000000"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, formatLocation(tt.box))
		})
	}
}

func TestConfidenceFilter_PriorityNeverAboveBase(t *testing.T) {
	f := NewConfidenceFilter(DefaultRuleSet(), 0.1, 0.3)
	assert.Equal(t, 0.1, f.Threshold("person", model.RoomGeneral))
	assert.Equal(t, 0.1, f.Threshold("vase", model.RoomGeneral))
}
