package model

// RecommendationType discriminates the Recommendation variants
type RecommendationType string

const (
	// RecommendSpecific is a recognized clutter object, possibly aggregated
	RecommendSpecific RecommendationType = "specific"
	// RecommendCategorized is an unrecognized object bucketed by room context
	RecommendCategorized RecommendationType = "categorized"
	// RecommendStyling is room-wide staging advice
	RecommendStyling RecommendationType = "styling"
)

// ItemCategory classifies why a specific item should go
type ItemCategory string

const (
	CategoryOccupant       ItemCategory = "occupant"
	CategoryMess           ItemCategory = "mess"
	CategoryClutter        ItemCategory = "clutter"
	CategoryPersonal       ItemCategory = "personal"
	CategoryDecorExcessive ItemCategory = "decor-excessive"
	CategoryDecorCheck     ItemCategory = "decor-check"
)

// Display confidences for rule-matched and bucketed items. The detector's
// own score is not carried through.
const (
	SpecificConfidence    = 100
	CategorizedConfidence = 85
)

// Recommendation is one entry of the list shown to the user.
// Which fields are set depends on Type:
//   - specific: Name, Confidence, Location, Reason, ItemCategory, Count
//   - categorized: Name (bucket label), Confidence, Location, Category, Count
//   - styling: Name (title), Location, Tips
type Recommendation struct {
	Type         RecommendationType `json:"type" yaml:"type"`
	Name         string             `json:"name" yaml:"name"`
	Confidence   int                `json:"confidence,omitempty" yaml:"confidence,omitempty"`
	Location     string             `json:"location" yaml:"location"`
	Reason       string             `json:"reason,omitempty" yaml:"reason,omitempty"`
	ItemCategory ItemCategory       `json:"item_category,omitempty" yaml:"item_category,omitempty"`
	Category     string             `json:"category,omitempty" yaml:"category,omitempty"`
	Count        int                `json:"count,omitempty" yaml:"count,omitempty"`
	Tips         []string           `json:"tips,omitempty" yaml:"tips,omitempty"`
}

// IsItem reports whether the recommendation refers to detected objects
// rather than room-wide advice.
func (r Recommendation) IsItem() bool {
	return r.Type == RecommendSpecific || r.Type == RecommendCategorized
}
