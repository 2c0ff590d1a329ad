package readiness

func defaultCategories() []Category {
	return []Category{
		{
			Key:         "leadership",
			Name:        "Leadership & Strategy",
			Weight:      0.25,
			Description: "Strategic commitment and leadership alignment with AI initiatives",
		},
		{
			Key:         "culture",
			Name:        "Organizational Culture",
			Weight:      0.20,
			Description: "Learning culture, experimentation mindset, and change readiness",
		},
		{
			Key:         "data",
			Name:        "Data Infrastructure",
			Weight:      0.20,
			Description: "Data quality, accessibility, and management capabilities",
		},
		{
			Key:         "processes",
			Name:        "Process Readiness",
			Weight:      0.15,
			Description: "Workflow documentation and integration capabilities",
		},
		{
			Key:         "technology",
			Name:        "Technical Capabilities",
			Weight:      0.10,
			Description: "Existing technology stack and AI integration readiness",
		},
		{
			Key:         "skills",
			Name:        "Skills & Talent",
			Weight:      0.10,
			Description: "AI literacy and technical expertise in the organization",
		},
	}
}

// scale numbers labels 1..5 in order.
func scale(labels ...string) []Option {
	out := make([]Option, len(labels))
	for i, label := range labels {
		out[i] = Option{Value: i + 1, Label: label}
	}
	return out
}

func defaultQuestions() []Question {
	return []Question{
		{
			ID:          "l1",
			CategoryKey: "leadership",
			Prompt:      "How committed is senior leadership to AI adoption?",
			Options: scale(
				"No clear commitment or understanding",
				"Some interest but no concrete plans",
				"Moderate commitment with basic AI strategy",
				"Strong commitment with well-defined AI roadmap",
				"AI is central to organizational strategy with full C-suite buy-in",
			),
		},
		{
			ID:          "l2",
			CategoryKey: "leadership",
			Prompt:      "How does your organization view AI pilot failures?",
			Options: scale(
				"As major setbacks that discourage further investment",
				"As concerning issues requiring blame assignment",
				"As normal but disappointing outcomes",
				"As valuable learning experiences",
				"As essential stepping stones in our AI journey",
			),
		},
		{
			ID:          "l3",
			CategoryKey: "leadership",
			Prompt:      "How integrated is AI into your strategic decision-making?",
			Options: scale(
				"AI is not considered in strategic decisions",
				"AI is occasionally mentioned but not prioritized",
				"AI is considered for some strategic initiatives",
				"AI potential is regularly evaluated for major decisions",
				"AI transformation is core to all strategic planning",
			),
		},
		{
			ID:          "c1",
			CategoryKey: "culture",
			Prompt:      "How does your organization approach learning from AI experiments?",
			Options: scale(
				"We avoid experiments due to risk of failure",
				"Limited experimentation with focus on avoiding mistakes",
				"Some experimentation but lessons are not systematically captured",
				"Regular experimentation with structured learning processes",
				"Culture of rapid experimentation and contextual learning",
			),
		},
		{
			ID:          "c2",
			CategoryKey: "culture",
			Prompt:      "How engaged are your teams with AI initiatives?",
			Options: scale(
				"Teams are resistant or disengaged",
				"Limited engagement, mostly from IT department",
				"Moderate interest across some business units",
				"Good engagement with active participation",
				"High enthusiasm and cross-functional collaboration",
			),
		},
		{
			ID:          "c3",
			CategoryKey: "culture",
			Prompt:      "How does your organization manage risk in AI adoption?",
			Options: scale(
				"Very conservative - avoids any AI-related risks",
				"Risk-averse with extensive approval processes",
				"Balanced approach with standard risk management",
				"Calculated risk-taking with proper governance",
				"Intelligent risk-taking with rapid iteration cycles",
			),
		},
		{
			ID:          "d1",
			CategoryKey: "data",
			Prompt:      "How accessible is your organizational data?",
			Options: scale(
				"Data is heavily siloed and difficult to access",
				"Some data silos with limited integration",
				"Moderate data accessibility with some integration",
				"Good data accessibility across most systems",
				"Unified data architecture with easy access",
			),
		},
		{
			ID:          "d2",
			CategoryKey: "data",
			Prompt:      "What is the quality of your data for AI applications?",
			Options: scale(
				"Poor quality - unstructured and inconsistent",
				"Below average - requires significant cleanup",
				"Average quality - some cleaning needed",
				"Good quality - mostly ready for AI use",
				"High quality - AI-ready with proper governance",
			),
		},
		{
			ID:          "d3",
			CategoryKey: "data",
			Prompt:      "How well is your data governance established?",
			Options: scale(
				"No formal data governance processes",
				"Basic data policies with limited enforcement",
				"Standard data governance practices",
				"Robust governance with clear data ownership",
				"Comprehensive governance enabling AI innovation",
			),
		},
		{
			ID:          "p1",
			CategoryKey: "processes",
			Prompt:      "How well documented are your business workflows?",
			Options: scale(
				"Poorly documented - mostly tribal knowledge",
				"Basic documentation with many gaps",
				"Adequate documentation for key processes",
				"Well documented with regular updates",
				"Comprehensive process documentation optimized for AI integration",
			),
		},
		{
			ID:          "p2",
			CategoryKey: "processes",
			Prompt:      "How adaptable are your current workflows to AI integration?",
			Options: scale(
				"Rigid processes that resist change",
				"Some flexibility but significant barriers",
				"Moderately adaptable with some redesign needed",
				"Flexible processes ready for AI enhancement",
				"Workflows designed with AI integration in mind",
			),
		},
		{
			ID:          "t1",
			CategoryKey: "technology",
			Prompt:      "How modern is your technology infrastructure?",
			Options: scale(
				"Legacy systems with limited integration capabilities",
				"Mostly legacy with some modern components",
				"Mixed environment with integration challenges",
				"Modern infrastructure with good API capabilities",
				"Cloud-native, AI-ready architecture",
			),
		},
		{
			ID:          "t2",
			CategoryKey: "technology",
			Prompt:      "What is your organization's experience with AI/ML tools?",
			Options: scale(
				"No experience with AI/ML tools",
				"Limited experimentation with basic tools",
				"Some experience with standard AI platforms",
				"Good experience across multiple AI tools",
				"Advanced AI/ML capabilities with custom solutions",
			),
		},
		{
			ID:          "s1",
			CategoryKey: "skills",
			Prompt:      "What is the level of AI literacy in your organization?",
			Options: scale(
				"Very low - limited understanding of AI concepts",
				"Basic awareness but little practical knowledge",
				"Moderate understanding in key roles",
				"Good AI literacy across business functions",
				"High AI fluency with internal expertise",
			),
		},
		{
			ID:          "s2",
			CategoryKey: "skills",
			Prompt:      "How strong is your technical talent for AI initiatives?",
			Options: scale(
				"No dedicated AI technical talent",
				"Limited technical skills, mostly outsourced",
				"Some internal technical capabilities",
				"Strong technical team with AI experience",
				"World-class AI technical expertise",
			),
		},
	}
}
