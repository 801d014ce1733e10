package catalog

import (
	"strings"

	"github.com/deptsearch/deptsearch-api/model"
)

// Coarse academic field tags.
const (
	FieldEngineering = "공학"
	FieldHumanities  = "인문"
	FieldSocial      = "사회"
	FieldNatural     = "자연"
	FieldMedGeneric  = "의약" // medical-and-allied college bucket
	FieldArtsSports  = "예체능"
	FieldEducation   = "교육"
	FieldAllied      = "보건"
	FieldOther       = "기타"

	// Regulated-profession tags. These are separately licensed programs
	// and must never collapse into the generic 의약 bucket.
	FieldMedicine    = "의학"
	FieldDentistry   = "치의학"
	FieldTraditional = "한의학"
	FieldVeterinary  = "수의학"
	FieldPharmacy    = "약학"
	FieldNursing     = "간호학"
)

type fieldRule struct {
	keywords []string
	field    string
}

// College/category-name rules, evaluated only while still uncategorized.
var collegeRules = []fieldRule{
	{[]string{"공과", "소프트웨어", "IT"}, FieldEngineering},
	{[]string{"인문"}, FieldHumanities},
	{[]string{"사회", "경영", "경제"}, FieldSocial},
	{[]string{"자연", "과학"}, FieldNatural},
	{[]string{"의과", "간호", "약학"}, FieldMedGeneric},
	{[]string{"예술", "체육", "미술"}, FieldArtsSports},
}

// Regulated-profession overrides by department name, applied
// unconditionally. Order is priority: 한의 before 의예 so that 한의예과 never
// lands in 의학, likewise 수의/치의.
var professionRules = []fieldRule{
	{[]string{"한의"}, FieldTraditional},
	{[]string{"수의"}, FieldVeterinary},
	{[]string{"치의"}, FieldDentistry},
	{[]string{"약학"}, FieldPharmacy},
	{[]string{"간호"}, FieldNursing},
	{[]string{"의예", "의학"}, FieldMedicine},
}

// Department-name fallback rules for names still uncategorized after the
// college and profession passes.
var departmentRules = []fieldRule{
	{[]string{"물리치료", "임상병리", "방사선", "치위생", "응급구조"}, FieldAllied},
	{[]string{"컴퓨터", "소프트웨어", "전기", "전자", "기계", "건축", "토목"}, FieldEngineering},
	{[]string{"경영", "경제", "행정"}, FieldSocial},
	{[]string{"디자인", "체육", "음악", "미술"}, FieldArtsSports},
}

func matchRules(rules []fieldRule, name string) (string, bool) {
	for _, rule := range rules {
		for _, kw := range rule.keywords {
			if strings.Contains(name, kw) {
				return rule.field, true
			}
		}
	}
	return "", false
}

// ClassifyField assigns the coarse academic field for a department. Pure
// and total: always returns a tag, FieldOther when nothing applies.
//
// Layering, first match wins per stage:
//  1. a fine category string from the source data is used verbatim, a
//     blank or generic "기타" counts as uncategorized;
//  2. otherwise college-name keywords;
//  3. otherwise the Edu tier forces 교육;
//  4. regulated-profession department names always override;
//  5. remaining department-name keywords.
func ClassifyField(deptName, collegeName string, tier model.Tier, fineCategory string) string {
	field := FieldOther

	if fineCategory != "" && fineCategory != FieldOther {
		field = fineCategory
	} else {
		if f, ok := matchRules(collegeRules, collegeName); ok {
			field = f
		}
		if tier == model.TierEdu {
			field = FieldEducation
		}
	}

	if f, ok := matchRules(professionRules, deptName); ok {
		return f
	}

	if field == FieldOther {
		if f, ok := matchRules(departmentRules, deptName); ok {
			field = f
		}
	}

	return field
}
