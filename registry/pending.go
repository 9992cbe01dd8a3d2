package registry

type (
	//Pending represents a captured resolution attempt postponed by a forward reference.
	//It carries enough state to retry without re-parsing the source document.
	Pending struct {
		Kind    string
		Source  string
		Element string
		retry   func() error
		lastErr error
	}
)

//NewPending creates a pending resolution with its retry callback
func NewPending(kind, source, element string, retry func() error) *Pending {
	return &Pending{Kind: kind, Source: source, Element: element, retry: retry}
}

//Resolve retries the captured resolution attempt
func (p *Pending) Resolve() error {
	err := p.retry()
	p.lastErr = err
	return err
}

//Err returns the most recent retry failure
func (p *Pending) Err() error {
	return p.lastErr
}

//drain retries every entry, keeping those still blocked on a forward reference.
//Any non deferrable error aborts immediately.
func drain(pending []*Pending) ([]*Pending, int, error) {
	var remaining []*Pending
	discharged := 0
	for _, item := range pending {
		err := item.Resolve()
		if err == nil {
			discharged++
			continue
		}
		if !IsIncomplete(err) {
			return nil, 0, &BuildError{Source: item.Source, Element: item.Element, Origin: err}
		}
		remaining = append(remaining, item)
	}
	return remaining, discharged, nil
}
