package domain

type Category string

const (
	CategoryLargeCap Category = "Large Cap"
	CategoryMidCap   Category = "Mid Cap"
	CategorySmallCap Category = "Small Cap"
	CategoryFlexi    Category = "Flexi"
	CategoryHybrid   Category = "Hybrid"
	CategoryDebt     Category = "Debt"
	CategoryGold     Category = "Gold"
	CategorySectoral Category = "Sectoral"
	CategoryOther    Category = "Other"
)

var AllCategories = []Category{
	CategoryLargeCap,
	CategoryMidCap,
	CategorySmallCap,
	CategoryFlexi,
	CategoryHybrid,
	CategoryDebt,
	CategoryGold,
	CategorySectoral,
	CategoryOther,
}

func (c Category) Valid() bool {
	for _, x := range AllCategories {
		if c == x {
			return true
		}
	}
	return false
}

func (c Category) String() string {
	return string(c)
}

func CategoryPtr(c Category) *Category {
	return &c
}
