package roadmap

import "github.com/briangibbs/overwhelmed-tools/internal/domain"

// templateSize is the number of tasks every goal template carries.
const templateSize = 5

// IndustryProfile holds the notes interpolated into the assessment phase.
type IndustryProfile struct {
	Compliance string `json:"compliance"`
	Focus      string `json:"focus"`
}

var taskTemplates = map[domain.Goal][templateSize]string{
	domain.GoalAutomateCustomerService: {
		"Map current customer service workflows",
		"Identify automation opportunities in support processes",
		"Select AI chatbot platform",
		"Design conversation flows and responses",
		"Train AI on company-specific knowledge base",
	},
	domain.GoalEnhanceDataAnalytics: {
		"Audit existing data sources and quality",
		"Define key metrics and reporting needs",
		"Select AI analytics tools",
		"Set up data pipelines and integrations",
		"Create automated reporting dashboards",
	},
	domain.GoalImproveDecisionMaking: {
		"Identify critical decision points in operations",
		"Map data requirements for decision support",
		"Implement predictive analytics models",
		"Design decision support dashboards",
		"Train team on AI-assisted decision making",
	},
	domain.GoalIncreaseOperationalEfficiency: {
		"Document current operational bottlenecks",
		"Identify processes for AI automation",
		"Select process automation tools",
		"Design new AI-enhanced workflows",
		"Monitor and optimize automated processes",
	},
	domain.GoalOptimizeMarketingCampaigns: {
		"Analyze current marketing performance",
		"Select AI marketing tools",
		"Set up audience segmentation",
		"Implement AI-driven content creation",
		"Configure automated campaign optimization",
	},
	domain.GoalReduceOperationalCosts: {
		"Conduct cost analysis of current operations",
		"Identify high-cost processes for AI optimization",
		"Implement cost-tracking analytics",
		"Deploy resource optimization models",
		"Monitor and report cost savings",
	},
	domain.GoalScaleBusinessProcesses: {
		"Document scalability bottlenecks",
		"Design AI-enhanced scaling strategy",
		"Implement automated scaling triggers",
		"Set up performance monitoring",
		"Create scaling playbooks",
	},
}

var industryProfiles = map[domain.Industry]IndustryProfile{
	domain.IndustryConstruction: {
		Compliance: "Safety regulations and building codes",
		Focus:      "Project management and resource optimization",
	},
	domain.IndustryEducation: {
		Compliance: "Student data privacy and educational standards",
		Focus:      "Learning outcomes and student engagement",
	},
	domain.IndustryECommerce: {
		Compliance: "Payment security and consumer protection",
		Focus:      "Customer experience and inventory management",
	},
	domain.IndustryFinance: {
		Compliance: "Financial regulations and data security",
		Focus:      "Risk management and fraud detection",
	},
	domain.IndustryHealthcare: {
		Compliance: "HIPAA and patient data protection",
		Focus:      "Patient care and medical records",
	},
	domain.IndustryManufacturing: {
		Compliance: "Quality standards and safety regulations",
		Focus:      "Production efficiency and quality control",
	},
	domain.IndustryProfessionalServices: {
		Compliance: "Client confidentiality and industry standards",
		Focus:      "Service delivery and client management",
	},
	domain.IndustryRealEstate: {
		Compliance: "Property laws and regulations",
		Focus:      "Property management and client service",
	},
	domain.IndustryRetail: {
		Compliance: "Consumer protection and payment security",
		Focus:      "Customer experience and inventory",
	},
	domain.IndustrySaaS: {
		Compliance: "Data protection and service availability",
		Focus:      "User experience and service scaling",
	},
	domain.IndustryTechnology: {
		Compliance: "Data security and privacy regulations",
		Focus:      "Innovation and scalability",
	},
}

// Template returns the five template tasks of a goal.
func Template(g domain.Goal) ([templateSize]string, bool) {
	t, ok := taskTemplates[g]
	return t, ok
}

// ProfileFor returns the compliance and focus notes of an industry.
func ProfileFor(i domain.Industry) (IndustryProfile, bool) {
	p, ok := industryProfiles[i]
	return p, ok
}

// Profiles returns a copy of every industry profile.
func Profiles() map[domain.Industry]IndustryProfile {
	out := make(map[domain.Industry]IndustryProfile, len(industryProfiles))
	for k, v := range industryProfiles {
		out[k] = v
	}
	return out
}
