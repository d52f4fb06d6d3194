package domain

import "strings"

// ParagraphClass tags a paragraph for styling when a document is rendered.
type ParagraphClass int

// Paragraph classes.
const (
	// ClassBody is plain body text.
	ClassBody ParagraphClass = iota

	// ClassHeading is a section heading such as "EXPERIENCE".
	ClassHeading

	// ClassSkillCategory is a skill-category label such as "Soft Skills:".
	ClassSkillCategory

	// ClassSpecialTitle is a known role or project title.
	ClassSpecialTitle
)

// String returns the config name of the class.
func (c ParagraphClass) String() string {
	switch c {
	case ClassHeading:
		return "heading"
	case ClassSkillCategory:
		return "skill_category"
	case ClassSpecialTitle:
		return "special_title"
	default:
		return "body"
	}
}

// ParseParagraphClass converts a config name back into a class.
func ParseParagraphClass(s string) (ParagraphClass, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "heading":
		return ClassHeading, true
	case "skill_category", "category":
		return ClassSkillCategory, true
	case "special_title", "title":
		return ClassSpecialTitle, true
	case "body":
		return ClassBody, true
	default:
		return ClassBody, false
	}
}

// ClassificationRule tags any paragraph containing Pattern with Class.
// Matching is a case-sensitive substring test.
type ClassificationRule struct {
	Pattern string
	Class   ParagraphClass
}

// RuleSet is an ordered list of classification rules. The first rule whose
// pattern occurs in a paragraph decides its class; no match means ClassBody.
// The zero value classifies everything as body text.
type RuleSet struct {
	rules []ClassificationRule
}

// NewRuleSet builds a rule set, dropping rules with empty patterns.
func NewRuleSet(rules ...ClassificationRule) RuleSet {
	kept := make([]ClassificationRule, 0, len(rules))
	for _, r := range rules {
		if r.Pattern == "" {
			continue
		}
		kept = append(kept, r)
	}
	return RuleSet{rules: kept}
}

// RuleSetFromLexicons builds the conventional ordering: every heading pattern,
// then every category label, then every title, so headings take precedence.
func RuleSetFromLexicons(headings, categories, titles []string) RuleSet {
	rules := make([]ClassificationRule, 0, len(headings)+len(categories)+len(titles))
	for _, p := range headings {
		rules = append(rules, ClassificationRule{Pattern: p, Class: ClassHeading})
	}
	for _, p := range categories {
		rules = append(rules, ClassificationRule{Pattern: p, Class: ClassSkillCategory})
	}
	for _, p := range titles {
		rules = append(rules, ClassificationRule{Pattern: p, Class: ClassSpecialTitle})
	}
	return NewRuleSet(rules...)
}

// Default lexicons used when no rules are configured.
var (
	DefaultHeadings = []string{
		"EXPERIENCE",
		"EDUCATION",
		"PROJECTS",
		"SKILLS",
		"CERTIFICATIONS & WORKSHOPS",
		"EXTRACURRICULARS",
		"SUMMARY",
		"ACHIEVEMENTS",
	}

	DefaultCategories = []string{
		"Programming Languages:",
		"Tools & Technologies:",
		"Frameworks & Libraries:",
		"Databases:",
		"Soft Skills:",
		"Languages:",
	}
)

// DefaultRuleSet returns the built-in headings and category labels.
// Role and project titles are resume-specific, so none are included.
func DefaultRuleSet() RuleSet {
	return RuleSetFromLexicons(DefaultHeadings, DefaultCategories, nil)
}

// Rules returns a copy of the rules in evaluation order.
func (r RuleSet) Rules() []ClassificationRule {
	out := make([]ClassificationRule, len(r.rules))
	copy(out, r.rules)
	return out
}

// Len returns the number of rules.
func (r RuleSet) Len() int {
	return len(r.rules)
}

// Classify returns the class of a single paragraph.
func (r RuleSet) Classify(paragraph string) ParagraphClass {
	for _, rule := range r.rules {
		if strings.Contains(paragraph, rule.Pattern) {
			return rule.Class
		}
	}
	return ClassBody
}
