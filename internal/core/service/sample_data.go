package service

import "github.com/careerguide/portal/internal/core/domain"

// Built-in records served when the remote store is empty or unreachable.

func sampleColleges() []domain.College {
	return []domain.College{
		{
			ID:              "mit",
			Name:            "Massachusetts Institute of Technology",
			Location:        domain.Location{Country: "USA", State: "Massachusetts", City: "Cambridge"},
			Type:            "Private",
			EstablishedYear: 1861,
			Fees:            domain.Fees{Tuition: 57590, Total: 75790, Currency: "USD"},
			Programs:        []string{"Engineering", "Computer Science", "Business"},
			Ranking:         domain.Ranking{Global: 1, National: 1},
			AcceptanceRate:  6.7,
			Image:           "https://via.placeholder.com/300x200?text=MIT",
			Description:     "Leading research university known for science and technology.",
		},
		{
			ID:              "stanford",
			Name:            "Stanford University",
			Location:        domain.Location{Country: "USA", State: "California", City: "Stanford"},
			Type:            "Private",
			EstablishedYear: 1885,
			Fees:            domain.Fees{Tuition: 56169, Total: 74570, Currency: "USD"},
			Programs:        []string{"Engineering", "Computer Science", "Business", "Medicine"},
			Ranking:         domain.Ranking{Global: 2, National: 2},
			AcceptanceRate:  4.3,
			Image:           "https://via.placeholder.com/300x200?text=Stanford",
			Description:     "Premier research university in Silicon Valley.",
		},
		{
			ID:              "iit-bombay",
			Name:            "Indian Institute of Technology Bombay",
			Location:        domain.Location{Country: "India", State: "Maharashtra", City: "Mumbai"},
			Type:            "Government",
			EstablishedYear: 1958,
			Fees:            domain.Fees{Tuition: 200000, Total: 245000, Currency: "INR"},
			Programs:        []string{"Engineering", "Computer Science", "Management"},
			Ranking:         domain.Ranking{Global: 177, National: 1},
			AcceptanceRate:  1.2,
			Image:           "https://via.placeholder.com/300x200?text=IIT+Bombay",
			Description:     "Premier engineering institute in India.",
		},
		{
			ID:              "harvard",
			Name:            "Harvard University",
			Location:        domain.Location{Country: "USA", State: "Massachusetts", City: "Cambridge"},
			Type:            "Private",
			EstablishedYear: 1636,
			Fees:            domain.Fees{Tuition: 54002, Total: 73800, Currency: "USD"},
			Programs:        []string{"Business", "Medicine", "Law", "Arts"},
			Ranking:         domain.Ranking{Global: 3, National: 3},
			AcceptanceRate:  3.4,
			Image:           "https://via.placeholder.com/300x200?text=Harvard",
			Description:     "Oldest higher education institution in the United States.",
		},
		{
			ID:              "oxford",
			Name:            "University of Oxford",
			Location:        domain.Location{Country: "UK", State: "Oxfordshire", City: "Oxford"},
			Type:            "Public",
			EstablishedYear: 1096,
			Fees:            domain.Fees{Tuition: 11220, Total: 25000, Currency: "GBP"},
			Programs:        []string{"Arts", "Sciences", "Medicine", "Engineering"},
			Ranking:         domain.Ranking{Global: 4, National: 1},
			AcceptanceRate:  17.5,
			Image:           "https://via.placeholder.com/300x200?text=Oxford",
			Description:     "One of the oldest universities in the English-speaking world.",
		},
	}
}

func sampleQuestions() []domain.Question {
	return []domain.Question{
		{
			ID:            "verbal_001",
			Category:      "verbal",
			Difficulty:    "medium",
			Prompt:        "Choose the word that best completes the sentence: The scientist was known for his ___ approach to research.",
			Options:       []string{"methodical", "haphazard", "creative", "theoretical"},
			CorrectAnswer: 0,
			Explanation:   "Methodical means systematic and organized, which is typically valued in scientific research.",
			TimeLimit:     60,
			Points:        2,
		},
		{
			ID:            "quantitative_001",
			Category:      "quantitative",
			Difficulty:    "easy",
			Prompt:        "If a car travels 120 km in 2 hours, what is its average speed?",
			Options:       []string{"50 km/h", "60 km/h", "70 km/h", "80 km/h"},
			CorrectAnswer: 1,
			Explanation:   "Speed = Distance / Time = 120 km / 2 hours = 60 km/h",
			TimeLimit:     90,
			Points:        1,
		},
		{
			ID:            "logical_001",
			Category:      "logical",
			Difficulty:    "hard",
			Prompt:        "In a sequence: 2, 6, 12, 20, 30, ?, what is the next number?",
			Options:       []string{"40", "42", "44", "46"},
			CorrectAnswer: 1,
			Explanation:   "The pattern is n(n+1): 1×2=2, 2×3=6, 3×4=12, 4×5=20, 5×6=30, 6×7=42",
			TimeLimit:     120,
			Points:        3,
		},
		{
			ID:            "verbal_002",
			Category:      "verbal",
			Difficulty:    "easy",
			Prompt:        `What is the synonym of "abundant"?`,
			Options:       []string{"scarce", "plentiful", "limited", "rare"},
			CorrectAnswer: 1,
			Explanation:   "Abundant means existing in large quantities; plentiful.",
			TimeLimit:     45,
			Points:        1,
		},
		{
			ID:            "quantitative_002",
			Category:      "quantitative",
			Difficulty:    "medium",
			Prompt:        "What is 25% of 80?",
			Options:       []string{"15", "20", "25", "30"},
			CorrectAnswer: 1,
			Explanation:   "25% of 80 = (25/100) × 80 = 20",
			TimeLimit:     60,
			Points:        2,
		},
	}
}

func sampleCareerFields() []domain.CareerField {
	return []domain.CareerField{
		{
			ID:          "engineering",
			Name:        "Engineering & Technology",
			Description: "Design, build, and maintain technological solutions",
			Icon:        "fas fa-cogs",
			Subfields:   []string{"Mechanical", "Electrical", "Computer", "Civil", "Chemical"},
			AvgSalary:   75000,
			JobGrowth:   8,
			Skills:      []string{"Problem-solving", "Mathematics", "Technical skills", "Innovation"},
		},
		{
			ID:          "medicine",
			Name:        "Medicine & Healthcare",
			Description: "Diagnose, treat, and prevent diseases and injuries",
			Icon:        "fas fa-heartbeat",
			Subfields:   []string{"Doctor", "Nurse", "Pharmacist", "Therapist", "Surgeon"},
			AvgSalary:   95000,
			JobGrowth:   15,
			Skills:      []string{"Empathy", "Critical thinking", "Communication", "Attention to detail"},
		},
		{
			ID:          "business",
			Name:        "Business & Management",
			Description: "Lead organizations and manage business operations",
			Icon:        "fas fa-briefcase",
			Subfields:   []string{"Marketing", "Finance", "Operations", "HR", "Strategy"},
			AvgSalary:   65000,
			JobGrowth:   10,
			Skills:      []string{"Leadership", "Communication", "Analytics", "Strategic thinking"},
		},
		{
			ID:          "arts",
			Name:        "Arts & Humanities",
			Description: "Express creativity and explore human culture",
			Icon:        "fas fa-palette",
			Subfields:   []string{"Literature", "History", "Philosophy", "Fine Arts", "Languages"},
			AvgSalary:   45000,
			JobGrowth:   5,
			Skills:      []string{"Creativity", "Critical thinking", "Communication", "Cultural awareness"},
		},
		{
			ID:          "science",
			Name:        "Science & Research",
			Description: "Discover and understand the natural world",
			Icon:        "fas fa-flask",
			Subfields:   []string{"Physics", "Chemistry", "Biology", "Environmental Science", "Research"},
			AvgSalary:   70000,
			JobGrowth:   12,
			Skills:      []string{"Analytical thinking", "Research", "Mathematics", "Observation"},
		},
		{
			ID:          "computer-science",
			Name:        "Computer Science & IT",
			Description: "Develop software and manage information systems",
			Icon:        "fas fa-laptop-code",
			Subfields:   []string{"Software Development", "Data Science", "Cybersecurity", "AI/ML", "Web Development"},
			AvgSalary:   85000,
			JobGrowth:   22,
			Skills:      []string{"Programming", "Problem-solving", "Logic", "Continuous learning"},
		},
	}
}
