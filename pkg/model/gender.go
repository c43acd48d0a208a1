package model

//go:generate go run github.com/dmarkham/enumer -type Gender -trimprefix Gender -transform first -json -yaml -sql -output gender.gen.go

// Gender is serialized by its first letter ("M", "F"). The zero value
// renders as "U".
type Gender int

const (
	GenderUnknown Gender = iota
	GenderMale
	GenderFemale
)

// Label is the human readable name shown in forms and tables.
func (g Gender) Label() string {
	switch g {
	case GenderMale:
		return "Male"
	case GenderFemale:
		return "Female"
	default:
		return ""
	}
}

// SelectableGenders lists the genders offered by the edit form.
func SelectableGenders() []Gender {
	return []Gender{GenderMale, GenderFemale}
}
