package models

// Category groups questions by what they measure. Categories 1, 2 and 5 are
// objectively gradable; 3 and 4 are profiling-only.
type Category struct {
	ID            string `bson:"_id,omitempty" json:"id"`
	Name          string `bson:"name" json:"name"`
	Description   string `bson:"description" json:"description"`
	CreatedBy     string `bson:"created_by" json:"createdBy"`
	QuestionCount int    `bson:"question_count" json:"questionCount"`
}

const (
	CategoryAptitude             = "1"
	CategoryLogicalReasoning     = "2"
	CategoryPersonality          = "3"
	CategorySubjectInterest      = "4"
	CategorySituationalJudgement = "5"
)

// DefaultCategoryIDs is the fixed draw order for the standard quiz,
// ascending by category id.
var DefaultCategoryIDs = []string{
	CategoryAptitude,
	CategoryLogicalReasoning,
	CategoryPersonality,
	CategorySubjectInterest,
	CategorySituationalJudgement,
}

var CategoryNames = map[string]string{
	CategoryAptitude:             "Aptitude",
	CategoryLogicalReasoning:     "Logical Reasoning",
	CategoryPersonality:          "Personality",
	CategorySubjectInterest:      "Subject Interest",
	CategorySituationalJudgement: "Situational Judgement",
}
