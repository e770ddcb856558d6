package filter

// Keywords holds the lowercase keyword lists used for suitability and level
// decisions. Matching is plain substring search, so short entries such as
// "go" or "vp" deliberately catch compound words.
type Keywords struct {
	Remote  []string
	ITRoles []string
	Junior  []string
	Middle  []string
	Exclude []string
}

// DefaultKeywords returns the built-in English and Russian keyword lists.
func DefaultKeywords() Keywords {
	return Keywords{
		Remote: []string{"remote", "удаленно", "удалённо", "work from home", "дистанционно", "wfh"},
		ITRoles: []string{
			"developer", "engineer", "programmer", "designer", "qa", "tester",
			"analyst", "frontend", "backend", "full-stack", "fullstack",
			"devops", "product manager", "data scientist", "data analyst",
			"mobile", "ios", "android", "react", "vue", "angular",
			"python", "javascript", "java", "php", "ruby", "go", "rust",
			"node", "web developer", "software", "support engineer",
			"разработчик", "программист", "инженер", "тестировщик",
		},
		Junior: []string{
			"junior", "jr", "jr.", "entry level", "entry-level", "entry",
			"trainee", "graduate", "начинающий", "начальный",
			"0-1 year", "0-2 years", "1 year", "1+ year", "1-2 years",
			"no experience", "без опыта", "beginner",
		},
		Middle: []string{
			"middle", "mid-level", "mid level", "intermediate",
			"2-3 years", "2-4 years", "3-5 years", "2+ years", "3+ years",
		},
		Exclude: []string{
			"senior", "sr.", "sr ", "lead", "principal", "staff engineer",
			"architect", "head of", "director", "manager", "vp",
			"vice president", "cto", "cfo", "chief", "c-level",
			"старший", "ведущий", "руководитель", "главный",
		},
	}
}

// Merge replaces each default list with its override when the override is non-empty.
func (k Keywords) Merge(o Keywords) Keywords {
	pick := func(def, override []string) []string {
		if len(override) > 0 {
			return override
		}
		return def
	}
	return Keywords{
		Remote:  pick(k.Remote, o.Remote),
		ITRoles: pick(k.ITRoles, o.ITRoles),
		Junior:  pick(k.Junior, o.Junior),
		Middle:  pick(k.Middle, o.Middle),
		Exclude: pick(k.Exclude, o.Exclude),
	}
}
