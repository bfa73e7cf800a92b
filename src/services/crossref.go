package services

import (
	"strings"

	"github.com/williamgparker144-crypto/DispatchLink-sub000/src/models"
)

// CarrierIDSet holds known-good carrier identifiers (MC/DOT numbers of
// registered carrier accounts), keyed case-insensitively.
type CarrierIDSet map[string]struct{}

// NewCarrierIDSet builds a lookup set from raw identifiers. Empty strings
// are skipped so unset carrier profiles never verify anything.
func NewCarrierIDSet(ids []string) CarrierIDSet {
	set := make(CarrierIDSet, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		set[strings.ToUpper(id)] = struct{}{}
	}
	return set
}

// Contains reports whether the identifier is in the set, ignoring case
func (s CarrierIDSet) Contains(id string) bool {
	_, ok := s[strings.ToUpper(id)]
	return ok
}

// CrossReferenceCarriers recomputes the verified flag of each claimed
// reference as "identifier present in the known set". The match is a
// case-insensitive comparison of the raw identifier string; the digit
// normalization used for duplicate detection does not apply here. Returns a
// new slice and leaves the input untouched.
func CrossReferenceCarriers(refs []models.CarrierReference, known CarrierIDSet) []models.CarrierReference {
	if len(refs) == 0 {
		return []models.CarrierReference{}
	}

	out := make([]models.CarrierReference, len(refs))
	for i, ref := range refs {
		ref.Verified = known.Contains(ref.CarrierID)
		out[i] = ref
	}
	return out
}
