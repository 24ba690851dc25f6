package model

import (
	"encoding/json"
	"math"

	"github.com/pkg/errors"
)

// ErrInvalidDetection is the cause of every detection validation failure.
// Callers match it with errors.Is.
var ErrInvalidDetection = errors.New("invalid detection")

// BoundingBox is a detector box in pixel units, anchored at its top-left corner.
// On the wire it is the detector's own [x, y, width, height] array.
type BoundingBox struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// MarshalJSON encodes the box as [x, y, width, height]
func (b BoundingBox) MarshalJSON() ([]byte, error) {
	return json.Marshal([4]float64{b.X, b.Y, b.Width, b.Height})
}

// UnmarshalJSON decodes a [x, y, width, height] array.
// Anything else (wrong arity, strings, nulls) is rejected rather than coerced.
func (b *BoundingBox) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return errors.Wrapf(ErrInvalidDetection, "bbox must be an array of 4 numbers: %v", err)
	}
	if len(raw) != 4 {
		return errors.Wrapf(ErrInvalidDetection, "bbox must have 4 elements, got %d", len(raw))
	}

	var vals [4]float64
	for i, r := range raw {
		var v *float64
		if err := json.Unmarshal(r, &v); err != nil || v == nil {
			return errors.Wrapf(ErrInvalidDetection, "bbox element %d is not a number: %s", i, string(r))
		}
		vals[i] = *v
	}

	*b = BoundingBox{X: vals[0], Y: vals[1], Width: vals[2], Height: vals[3]}
	return nil
}

// Validate checks that the box has finite coordinates and a non-negative size.
func (b BoundingBox) Validate() error {
	for _, v := range []float64{b.X, b.Y, b.Width, b.Height} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return errors.Wrapf(ErrInvalidDetection, "bbox has non-finite value in %v", b.Slice())
		}
	}
	if b.Width < 0 || b.Height < 0 {
		return errors.Wrapf(ErrInvalidDetection, "bbox has negative size %gx%g", b.Width, b.Height)
	}
	return nil
}

// Slice returns the box as [x, y, width, height].
func (b BoundingBox) Slice() []float64 {
	return []float64{b.X, b.Y, b.Width, b.Height}
}

// BoxFromSlice builds a box from a detector's [x, y, width, height] slice.
func BoxFromSlice(v []float64) (BoundingBox, error) {
	if len(v) != 4 {
		return BoundingBox{}, errors.Wrapf(ErrInvalidDetection, "bbox must have 4 elements, got %d", len(v))
	}
	b := BoundingBox{X: v[0], Y: v[1], Width: v[2], Height: v[3]}
	return b, b.Validate()
}

// DetectedObject is one object instance reported by the external detector.
type DetectedObject struct {
	Label       string      `json:"label"`
	Confidence  float64     `json:"confidence"`
	BoundingBox BoundingBox `json:"bbox"`
}

// UnmarshalJSON accepts both the canonical label/confidence field names and
// the coco-ssd class/score names. Label, confidence and bbox are required.
func (d *DetectedObject) UnmarshalJSON(data []byte) error {
	var raw struct {
		Label       *string      `json:"label"`
		Class       *string      `json:"class"`
		Confidence  *float64     `json:"confidence"`
		Score       *float64     `json:"score"`
		BoundingBox *BoundingBox `json:"bbox"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	label := raw.Label
	if label == nil {
		label = raw.Class
	}
	if label == nil {
		return errors.Wrap(ErrInvalidDetection, "detection has no label")
	}

	confidence := raw.Confidence
	if confidence == nil {
		confidence = raw.Score
	}
	if confidence == nil {
		return errors.Wrapf(ErrInvalidDetection, "detection %q has no confidence", *label)
	}

	if raw.BoundingBox == nil {
		return errors.Wrapf(ErrInvalidDetection, "detection %q has no bbox", *label)
	}

	*d = DetectedObject{
		Label:       *label,
		Confidence:  *confidence,
		BoundingBox: *raw.BoundingBox,
	}
	return nil
}

// Validate checks the detection's confidence range and geometry.
func (d DetectedObject) Validate() error {
	if math.IsNaN(d.Confidence) || d.Confidence < 0 || d.Confidence > 1 {
		return errors.Wrapf(ErrInvalidDetection, "detection %q has confidence %v outside [0,1]", d.Label, d.Confidence)
	}
	if err := d.BoundingBox.Validate(); err != nil {
		return errors.WithMessagef(err, "detection %q", d.Label)
	}
	return nil
}

// ValidateDetections validates every detection and reports the first failure with its index.
func ValidateDetections(objects []DetectedObject) error {
	for i, obj := range objects {
		if err := obj.Validate(); err != nil {
			return errors.WithMessagef(err, "detections[%d]", i)
		}
	}
	return nil
}
