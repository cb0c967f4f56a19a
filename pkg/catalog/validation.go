package catalog

// Fact is a confirmed piece of information about a catalog.
type Fact struct {
	Key   string
	Value string
}

// ValidationResult collects outcomes of catalog validation.
// Warnings are mismatches that do not invalidate a catalog,
// errors do.
type ValidationResult struct {
	Facts    []Fact
	Warnings []string
	Errors   []string
}

// Valid is true if no errors were found.
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

// AddFact records confirmed information.
func (r *ValidationResult) AddFact(key, value string) {
	r.Facts = append(r.Facts, Fact{Key: key, Value: value})
}

// Fact returns the value of a fact and true if it exists.
func (r *ValidationResult) Fact(key string) (string, bool) {
	for _, v := range r.Facts {
		if v.Key == key {
			return v.Value, true
		}
	}
	return "", false
}

// AddWarning records a non-fatal mismatch.
func (r *ValidationResult) AddWarning(msg string) {
	r.Warnings = append(r.Warnings, msg)
}

// AddError records a fatal mismatch.
func (r *ValidationResult) AddError(msg string) {
	r.Errors = append(r.Errors, msg)
}
