package service

import (
	"fmt"
	"strings"

	"github.com/8kvgxvbj2w-byte/Photo-Prep-App/internal/model"
)

// Chair sentence threshold for living rooms
const maxChairsBeforeRemoval = 2

func defaultStyling() map[model.RoomType]StylingTemplate {
	return map[model.RoomType]StylingTemplate{
		model.RoomKitchen: {
			Title:    "Kitchen Staging Tips",
			Location: "Kitchen",
			Tips: []string{
				"Clear ALL countertops - show maximum space",
				"Remove magnets and papers from fridge",
				"Hide dish soap, sponges, cleaning supplies",
				"Put away small appliances",
				"Stage with ONE bowl of fruit or flowers",
				"Close all cabinet doors",
				"Turn on under-cabinet lighting",
			},
		},
		model.RoomBathroom: {
			Title:    "Bathroom Staging Tips",
			Location: "Bathroom",
			Tips: []string{
				"Remove ALL toiletries from surfaces",
				"Hide toothbrushes, soap, bottles",
				"Stage with 2-3 white fluffy towels only",
				"Close toilet lid",
				"Close shower curtain neatly",
				"Add ONE small plant or candle",
				"Polish mirrors until spotless",
				"Turn on all lights for spa feel",
			},
		},
		model.RoomBedroom: {
			Title:    "Bedroom Staging Tips",
			Location: "Bedroom",
			Tips: []string{
				"Make bed with crisp, neutral linens",
				"Clear nightstands completely",
				"Limit to 4-6 decorative pillows max",
				"Hide ALL clothes and shoes",
				"Close closet doors",
				"Add matching bedside lamps",
				"Keep floor completely clear",
			},
		},
		model.RoomLivingRoom: {
			Title:    "Living Room Staging Tips",
			Location: "Living room",
			Tips: []string{
				"Hide remotes, cables, electronics",
				"Limit throw pillows to 3-4",
				"Clear coffee table except 1-2 items",
				"Remove personal photos",
				"Add fresh flowers or greenery",
				"Use multiple light sources",
				"Show flow and walking space",
			},
		},
		model.RoomGeneral: {
			Title:    "General Staging Tips",
			Location: "Any room",
			Tips: []string{
				"Remove ALL personal items and clutter",
				"Clear surfaces - less is more",
				"Maximize natural and artificial light",
				"Add minimal, neutral decor",
				"Create sense of space and flow",
				"Shoot from corners to show room size",
			},
		},
	}
}

// stylingTips builds the room-wide advice block.
//
// A scored room gets its block only when one of its strong indicators is
// among the unfiltered detections. The general block is emitted once the
// photo produced at least one item or tracked piece of furniture. Rooms
// without their own template (dining room) use the general one.
func (e *RecommendationEngine) stylingTips(room model.RoomType, objects []model.DetectedObject, hasItems bool, movable []TrackedFurniture) []model.Recommendation {
	if room == model.RoomGeneral {
		if !hasItems && len(movable) == 0 {
			return nil
		}
	} else if !e.rules.HasStrongIndicator(room, objects) {
		return nil
	}

	tmpl, ok := e.rules.Styling[room]
	if !ok {
		room = model.RoomGeneral
		tmpl = e.rules.Styling[model.RoomGeneral]
	}

	tips := make([]string, len(tmpl.Tips), len(tmpl.Tips)+1)
	copy(tips, tmpl.Tips)

	switch room {
	case model.RoomLivingRoom:
		if tip := e.chairTip(movable); tip != "" {
			tips = append(tips, tip)
		}
	case model.RoomGeneral:
		if len(movable) > 0 {
			tips = append(tips, fmt.Sprintf(
				"Consider removing movable furniture (%s) if it makes the space feel crowded",
				strings.Join(trackedNames(movable), ", "),
			))
		}
	}

	return []model.Recommendation{{
		Type:     model.RecommendStyling,
		Name:     tmpl.Title,
		Location: tmpl.Location,
		Tips:     tips,
	}}
}

// chairTip advises on seating when chairs or stools were tracked
func (e *RecommendationEngine) chairTip(movable []TrackedFurniture) string {
	chairs := 0
	for _, f := range movable {
		if _, ok := e.rules.ChairKeywords.ContainsAny(f.Name); ok {
			chairs++
		}
	}

	switch {
	case chairs > maxChairsBeforeRemoval:
		return fmt.Sprintf("Consider removing %d extra chair(s) to make room feel more spacious", chairs-maxChairsBeforeRemoval)
	case chairs > 0:
		return "Evaluate if extra chairs obstruct walking space - remove if needed"
	}
	return ""
}
