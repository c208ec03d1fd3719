package stability

import (
	"github.com/marinetools/loadicator/pkg/errors"
	"github.com/marinetools/loadicator/pkg/hydro"
)

// kgSanityFactor bounds KG relative to the maximum draft. For cargo ships KG
// typically falls between 0.4 and 1.5 times the draft; anything beyond twice
// the maximum draft indicates a bad input rather than an unusual ship.
const kgSanityFactor = 2.0

// ValidateInput runs the pre-flight sanity checks on a draft and estimated
// KG before any computation proceeds. The checks are independent; the first
// failure's message is returned as a VALIDATION_INPUT error.
func ValidateInput(model *hydro.TableModel, draftM, kg float64) error {
	minDraft, maxDraft := model.DraftRange()

	if draftM < minDraft {
		return errors.New(errors.ErrCodeValidation,
			"draft must be at least %g meters", minDraft)
	}
	if draftM > maxDraft {
		return errors.New(errors.ErrCodeValidation,
			"draft cannot exceed %g meters", maxDraft)
	}
	if kg <= 0 {
		return errors.New(errors.ErrCodeValidation,
			"KG (vertical center of gravity) must be a positive value")
	}
	if kg > kgSanityFactor*maxDraft {
		return errors.New(errors.ErrCodeValidation,
			"KG value seems unreasonably high (should typically be less than %g meters)",
			kgSanityFactor*maxDraft)
	}
	return nil
}
