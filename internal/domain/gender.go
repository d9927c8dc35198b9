package domain

// Gender classifies an attendee for demographic breakdowns.
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

// ParseGender maps a free-form value to a known Gender, defaulting to
// GenderOther for anything unrecognised (bulk imports rarely carry it).
func ParseGender(s string) Gender {
	switch Gender(s) {
	case GenderMale, GenderFemale, GenderOther:
		return Gender(s)
	default:
		return GenderOther
	}
}
