// Package preorder holds the pure rules for the preorder conversion window.
// State flips are persisted by the service layer with a compare-and-set
// update; this package only decides whether a conversion attempt may proceed.
package preorder

import (
	"time"

	"fitflow-box/internal/model"
)

// EffectiveStatus evaluates a preorder's conversion status lazily against
// now: a pending preorder whose token window has lapsed reads as expired
// even if the background sweep has not flipped the row yet.
func EffectiveStatus(p *model.Preorder, now time.Time) model.ConversionStatus {
	if p.ConversionStatus == model.ConversionPending && !now.Before(p.TokenExpiresAt) {
		return model.ConversionExpired
	}
	return p.ConversionStatus
}

// CheckConvertible reports whether the preorder may be converted right now.
// It returns nil when conversion may proceed, or a named error the UI can
// turn into a specific message: already converted, link expired. Retrying an
// expired or converted preorder yields the same error every time.
func CheckConvertible(p *model.Preorder, now time.Time) error {
	switch p.ConversionStatus {
	case model.ConversionConverted:
		return model.ErrPreorderAlreadyConverted
	case model.ConversionExpired:
		return model.ErrPreorderLinkExpired
	case model.ConversionPending:
		if !now.Before(p.TokenExpiresAt) {
			return model.ErrPreorderLinkExpired
		}
		return nil
	default:
		return model.ErrPreorderNotFound
	}
}
