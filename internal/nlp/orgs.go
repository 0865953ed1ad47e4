package nlp

import "regexp"

// orgPattern matches capitalized spans ending in an organization suffix, such
// as "Stanford University", "Acme Corp" or "University of Michigan". Spans
// never cross a line break.
var orgPattern = regexp.MustCompile(
	`\b(?:[A-Z][A-Za-z&'.-]*[ \t]+)*` +
		`(?:University|College|Institute|School|Academy|Polytechnic|Inc|LLC|Ltd|Corp|Corporation|Company|Technologies|Labs|Partners|Bank)\b\.?` +
		`(?:[ \t]+(?:of|for)(?:[ \t]+[A-Z][A-Za-z&'.-]*)+)?`,
)

// ruleOrganizations finds organization spans by suffix rules
func ruleOrganizations(text string) []Entity {
	matches := orgPattern.FindAllStringIndex(text, -1)
	entities := make([]Entity, 0, len(matches))
	for _, m := range matches {
		entities = append(entities, Entity{
			Text:  text[m[0]:m[1]],
			Label: LabelOrganization,
			Start: m[0],
			End:   m[1],
		})
	}
	return entities
}

// mergeEntities combines model entities with rule-based organizations. A rule
// organization wins over any model entity it overlaps.
func mergeEntities(model, rules []Entity) []Entity {
	merged := make([]Entity, 0, len(model)+len(rules))
	for _, e := range model {
		overlapped := false
		for _, r := range rules {
			if e.Overlaps(r.Start, r.End) {
				overlapped = true
				break
			}
		}
		if !overlapped {
			merged = append(merged, e)
		}
	}
	merged = append(merged, rules...)
	sortEntities(merged)
	return merged
}
