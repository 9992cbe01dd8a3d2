package shared

//Errors collects errors raised across independent resolution attempts.
type Errors struct {
	errors []error
}

//NewErrors creates an errors collector
func NewErrors() *Errors {
	return &Errors{}
}

//Append appends an error, nil errors are discarded.
func (r *Errors) Append(err error) {
	if err == nil {
		return
	}
	r.errors = append(r.errors, err)
}

//Size returns collected errors count
func (r *Errors) Size() int {
	return len(r.errors)
}

//Error returns first encountered error if any
func (r *Errors) Error() error {
	for i := range r.errors {
		if r.errors[i] != nil {
			return r.errors[i]
		}
	}

	return nil
}
