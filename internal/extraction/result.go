package extraction

// Result is the outcome of one extraction. Exactly one of Skills or Err is
// meaningful: Err == nil means success (Skills may be empty when the model
// found nothing).
type Result struct {
	Skills []string
	Err    error
}

func success(skills []string) Result {
	if skills == nil {
		skills = []string{}
	}
	return Result{Skills: skills}
}

func failure(err error) Result {
	return Result{Err: err}
}

// OK reports whether the extraction succeeded.
func (r Result) OK() bool {
	return r.Err == nil
}

// SkillsOrEmpty collapses the result to the public contract: the skills on
// success, an empty non-nil list on any failure.
func (r Result) SkillsOrEmpty() []string {
	if r.Err != nil || r.Skills == nil {
		return []string{}
	}
	return r.Skills
}
