package services

import (
	"github.com/williamgparker144-crypto/DispatchLink-sub000/src/models"
)

// VerificationTier classifies a dispatcher profile. The tier is derived
// state: always recomputed from the profile, never stored.
type VerificationTier string

const (
	TierCarrierScoutVerified VerificationTier = "carrierscout_verified"
	TierExperienceVerified   VerificationTier = "experience_verified"
	TierBeginner             VerificationTier = "beginner"
	TierUnverified           VerificationTier = "unverified"
)

// ClassifyDispatcher maps a profile snapshot to exactly one tier. The guards
// run in order and the first match wins; reordering them changes outcomes
// (e.g. 2+ years with zero carrier references is unverified, not beginner),
// so this must stay a sequence, not independent checks.
func ClassifyDispatcher(user models.User) VerificationTier {
	if user.CarrierScoutSubscribed && hasVerifiedCarrier(user.CarriersWorkedWith) {
		return TierCarrierScoutVerified
	}

	if user.YearsExperience >= 2 && len(user.CarriersWorkedWith) > 0 {
		return TierExperienceVerified
	}

	if user.YearsExperience <= 1 {
		return TierBeginner
	}

	return TierUnverified
}

func hasVerifiedCarrier(refs []models.CarrierReference) bool {
	for _, ref := range refs {
		if ref.Verified {
			return true
		}
	}
	return false
}

// TierBadge is the display contract for a tier: label plus color tokens
// consumed as-is by the frontend.
type TierBadge struct {
	Label      string `json:"label"`
	Color      string `json:"color"`
	Background string `json:"background"`
}

var TierBadges = map[VerificationTier]TierBadge{
	TierCarrierScoutVerified: {Label: "CarrierScout Verified", Color: "#FFFFFF", Background: "#1D4ED8"},
	TierExperienceVerified:   {Label: "Experience Verified", Color: "#FFFFFF", Background: "#047857"},
	TierBeginner:             {Label: "New Dispatcher", Color: "#1F2937", Background: "#FDE68A"},
	TierUnverified:           {Label: "Unverified", Color: "#374151", Background: "#E5E7EB"},
}

// Badge returns the display contract for a tier
func (t VerificationTier) Badge() TierBadge {
	return TierBadges[t]
}
