package catalog

import (
	"strings"

	"github.com/deptsearch/deptsearch-api/model"
)

// Tier assignment is an ordered override table evaluated top to bottom;
// the first matching rule wins, the default is Regional. Kept as data so
// the table can be reviewed and extended without touching control flow.

type tierRule struct {
	name   string
	match  func(u *model.University) bool
	tier   model.Tier
	metric int
}

var topComprehensive = map[string]bool{
	"서울대학교": true,
	"연세대학교": true,
	"고려대학교": true,
}

var sciTechInstitutes = map[string]bool{
	"한국과학기술원":    true,
	"울산과학기술원":    true,
	"광주과학기술원":    true,
	"대구경북과학기술원":  true,
	"포항공과대학교":    true,
	"한국에너지공과대학교": true,
}

var elitePrivate = map[string]bool{
	"서강대학교":    true,
	"성균관대학교":   true,
	"한양대학교":    true,
	"이화여자대학교":  true,
	"중앙대학교":    true,
	"경희대학교":    true,
	"한국외국어대학교": true,
	"서울시립대학교":  true,
	"건국대학교":    true,
	"동국대학교":    true,
	"홍익대학교":    true,
}

var nationalTypes = map[string]bool{
	"국립":    true,
	"국립대법인": true,
	"특별법국립": true,
	"특별법법인": true,
}

var tierRules = []tierRule{
	{
		name:   "top-comprehensive",
		match:  func(u *model.University) bool { return topComprehensive[u.Name] },
		tier:   model.TierSKY,
		metric: 1,
	},
	{
		// Science institutes sit a notch above the top-3 on the metric.
		name:   "sci-tech-institute",
		match:  func(u *model.University) bool { return sciTechInstitutes[u.Name] },
		tier:   model.TierSKY,
		metric: 0,
	},
	{
		name:   "elite-private",
		match:  func(u *model.University) bool { return elitePrivate[u.Name] },
		tier:   model.TierTop15,
		metric: 10,
	},
	{
		name:   "arts-conservatory",
		match:  func(u *model.University) bool { return u.Name == "한국예술종합학교" },
		tier:   model.TierTop15,
		metric: 5,
	},
	{
		name: "education-university",
		match: func(u *model.University) bool {
			return u.SchoolType == "교육대학" ||
				strings.Contains(u.Name, "교육대학교") ||
				u.Name == "한국교원대학교"
		},
		tier:   model.TierEdu,
		metric: 15,
	},
	{
		name:   "in-seoul",
		match:  func(u *model.University) bool { return u.Location == "서울" },
		tier:   model.TierInSeoul,
		metric: 20,
	},
	{
		name: "metro",
		match: func(u *model.University) bool {
			return u.Location == "경기" || u.Location == "인천"
		},
		tier:   model.TierMetro,
		metric: 30,
	},
	{
		name:   "national-flagship",
		match:  func(u *model.University) bool { return nationalTypes[u.Type] },
		tier:   model.TierNational,
		metric: 40,
	},
}

// assignTier is a pure function of name/location/type.
func assignTier(u *model.University) {
	for _, rule := range tierRules {
		if rule.match(u) {
			u.Tier = rule.tier
			u.EstMetric = rule.metric
			return
		}
	}
	u.Tier = model.TierRegional
	u.EstMetric = 99
}
