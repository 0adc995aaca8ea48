package domain

type Industry string

const (
	IndustryConstruction         Industry = "Construction"
	IndustryEducation            Industry = "Education"
	IndustryECommerce            Industry = "E-commerce"
	IndustryFinance              Industry = "Finance"
	IndustryHealthcare           Industry = "Healthcare"
	IndustryManufacturing        Industry = "Manufacturing"
	IndustryProfessionalServices Industry = "Professional Services"
	IndustryRealEstate           Industry = "Real Estate"
	IndustryRetail               Industry = "Retail"
	IndustrySaaS                 Industry = "SaaS"
	IndustryTechnology           Industry = "Technology"
)

// Industries lists every industry in display order.
var Industries = []Industry{
	IndustryConstruction,
	IndustryECommerce,
	IndustryEducation,
	IndustryFinance,
	IndustryHealthcare,
	IndustryManufacturing,
	IndustryProfessionalServices,
	IndustryRealEstate,
	IndustryRetail,
	IndustrySaaS,
	IndustryTechnology,
}

func (i Industry) Valid() bool {
	for _, v := range Industries {
		if v == i {
			return true
		}
	}
	return false
}

type BusinessSize string

const (
	SizeStartup    BusinessSize = "Startup (1-10 employees)"
	SizeSmall      BusinessSize = "Small (11-50 employees)"
	SizeMedium     BusinessSize = "Medium (51-200 employees)"
	SizeLarge      BusinessSize = "Large (201-500 employees)"
	SizeEnterprise BusinessSize = "Enterprise (500+ employees)"
)

var BusinessSizes = []BusinessSize{
	SizeStartup,
	SizeSmall,
	SizeMedium,
	SizeLarge,
	SizeEnterprise,
}

func (s BusinessSize) Valid() bool {
	for _, v := range BusinessSizes {
		if v == s {
			return true
		}
	}
	return false
}

type Goal string

const (
	GoalAutomateCustomerService       Goal = "Automate Customer Service"
	GoalEnhanceDataAnalytics          Goal = "Enhance Data Analytics"
	GoalImproveDecisionMaking         Goal = "Improve Decision Making"
	GoalIncreaseOperationalEfficiency Goal = "Increase Operational Efficiency"
	GoalOptimizeMarketingCampaigns    Goal = "Optimize Marketing Campaigns"
	GoalReduceOperationalCosts        Goal = "Reduce Operational Costs"
	GoalScaleBusinessProcesses        Goal = "Scale Business Processes"
)

var Goals = []Goal{
	GoalAutomateCustomerService,
	GoalEnhanceDataAnalytics,
	GoalImproveDecisionMaking,
	GoalIncreaseOperationalEfficiency,
	GoalOptimizeMarketingCampaigns,
	GoalReduceOperationalCosts,
	GoalScaleBusinessProcesses,
}

func (g Goal) Valid() bool {
	for _, v := range Goals {
		if v == g {
			return true
		}
	}
	return false
}

// CalendarKind selects the target calendar application for an export.
type CalendarKind string

const (
	CalendarApple   CalendarKind = "Apple Calendar"
	CalendarGoogle  CalendarKind = "Google Calendar"
	CalendarOutlook CalendarKind = "Microsoft Outlook"
)

var CalendarKinds = []CalendarKind{
	CalendarApple,
	CalendarGoogle,
	CalendarOutlook,
}

func (k CalendarKind) Valid() bool {
	for _, v := range CalendarKinds {
		if v == k {
			return true
		}
	}
	return false
}
