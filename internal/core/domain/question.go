package domain

// Question is one aptitude-test item.
type Question struct {
	ID            string   `json:"id" bson:"_id"`
	Category      string   `json:"category" bson:"category"`
	Difficulty    string   `json:"difficulty" bson:"difficulty"`
	Prompt        string   `json:"question" bson:"question"`
	Options       []string `json:"options" bson:"options"`
	CorrectAnswer int      `json:"correct_answer" bson:"correctAnswer"`
	Explanation   string   `json:"explanation" bson:"explanation"`
	TimeLimit     int      `json:"time_limit" bson:"timeLimit"`
	Points        int      `json:"points" bson:"points"`
}

// CareerField describes one broad career area.
type CareerField struct {
	ID          string   `json:"id" bson:"_id"`
	Name        string   `json:"name" bson:"name"`
	Description string   `json:"description" bson:"description"`
	Icon        string   `json:"icon,omitempty" bson:"icon,omitempty"`
	Subfields   []string `json:"subfields" bson:"subfields"`
	AvgSalary   int      `json:"avg_salary" bson:"avgSalary"`
	JobGrowth   int      `json:"job_growth" bson:"jobGrowth"`
	Skills      []string `json:"skills" bson:"skills"`
}
