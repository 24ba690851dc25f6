package model

import (
	"strings"

	"github.com/pkg/errors"
)

// RoomType is the inferred category of the photographed space
type RoomType string

// Room types. RoomGeneral is the fallback and is never scored.
const (
	RoomKitchen    RoomType = "kitchen"
	RoomBathroom   RoomType = "bathroom"
	RoomBedroom    RoomType = "bedroom"
	RoomLivingRoom RoomType = "living room"
	RoomDiningRoom RoomType = "dining room"
	RoomGeneral    RoomType = "general"
)

// ScoredRooms lists the rooms that take part in scoring, in tie-break order.
// The order also fixes the layout of score vectors.
var ScoredRooms = []RoomType{
	RoomKitchen,
	RoomBathroom,
	RoomBedroom,
	RoomLivingRoom,
	RoomDiningRoom,
}

// ErrUnknownRoomType is returned by ParseRoomType for unrecognized names.
var ErrUnknownRoomType = errors.New("unknown room type")

// ParseRoomType accepts the canonical names plus camel-case, snake-case and
// kebab-case spellings ("livingRoom", "living_room", "living-room").
func ParseRoomType(s string) (RoomType, error) {
	norm := strings.ToLower(strings.TrimSpace(s))
	norm = strings.NewReplacer("_", " ", "-", " ").Replace(norm)
	switch norm {
	case "kitchen":
		return RoomKitchen, nil
	case "bathroom":
		return RoomBathroom, nil
	case "bedroom":
		return RoomBedroom, nil
	case "living room", "livingroom":
		return RoomLivingRoom, nil
	case "dining room", "diningroom":
		return RoomDiningRoom, nil
	case "general", "":
		return RoomGeneral, nil
	}
	return RoomGeneral, errors.Wrapf(ErrUnknownRoomType, "%q", s)
}

// RoomClassification is the result of scoring one photo's detections.
type RoomClassification struct {
	Type       RoomType             `json:"type" yaml:"type"`
	Confidence float64              `json:"confidence" yaml:"confidence"`
	Scores     map[RoomType]float64 `json:"scores" yaml:"scores"`
}

// ScoreVector returns the scoreboard laid out in ScoredRooms order.
func (c RoomClassification) ScoreVector() []float32 {
	vec := make([]float32, len(ScoredRooms))
	for i, room := range ScoredRooms {
		vec[i] = float32(c.Scores[room])
	}
	return vec
}
