package kernel

import (
	"errors"
	"fmt"

	"logistics/internal/pkg/errs"
)

// Dimensions is the bounding box of a shipment. All sides are strictly
// positive; the unit is whatever the vehicle volume limits are expressed in.
type Dimensions struct {
	height float64
	width  float64
	length float64
}

// NewDimensions validates every side and returns the joined errors for all
// offending sides at once.
func NewDimensions(height, width, length float64) (Dimensions, error) {
	var problems []error
	for _, side := range []struct {
		name  string
		value float64
	}{
		{"height", height},
		{"width", width},
		{"length", length},
	} {
		if side.value <= 0 {
			problems = append(problems, errs.NewValueIsInvalidErrorWithCause(
				side.name, fmt.Errorf("%v is not greater than 0", side.value)))
		}
	}
	if len(problems) > 0 {
		return Dimensions{}, errors.Join(problems...)
	}

	return Dimensions{height: height, width: width, length: length}, nil
}

func (d Dimensions) Height() float64 { return d.height }
func (d Dimensions) Width() float64  { return d.width }
func (d Dimensions) Length() float64 { return d.length }

// Volume is height × width × length.
func (d Dimensions) Volume() float64 {
	return d.height * d.width * d.length
}

func (d Dimensions) Validate() error {
	if d.height <= 0 || d.width <= 0 || d.length <= 0 {
		return errs.NewValueIsRequiredError("dimensions")
	}
	return nil
}
