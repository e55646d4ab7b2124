package option

// Source is the read-side contract an option source satisfies. A config
// file store implements it, and so can command-line or environment
// backed sources, letting resolution code treat them interchangeably.
//
// Scalar accessors return a nil pointer when the scope or option is
// absent, never an error. A present value with the wrong shape returns
// a typed error naming the option, the expected shape, and the actual
// value in its native textual form.
//
// GetStringList returns a nil slice for absent options and never a
// non-nil empty slice.
type Source interface {
	// Display renders the option identity for diagnostics.
	Display(id Id) string

	GetString(id Id) (*string, error)
	GetBool(id Id) (*bool, error)
	GetInt(id Id) (*int64, error)
	GetFloat(id Id) (*float64, error)
	GetStringList(id Id) ([]ListEdit, error)
	GetStringDict(id Id) (*StringDict, error)
}
