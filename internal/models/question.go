package models

// NoCorrectOption marks questions in profiling-only categories, which have
// no objectively correct answer.
const NoCorrectOption = -1

type Question struct {
	ID            string   `bson:"_id,omitempty" json:"id"`
	CategoryID    string   `bson:"category_id" json:"categoryId"`
	Text          string   `bson:"text" json:"text"`
	Options       []string `bson:"options" json:"options"`
	CorrectOption int      `bson:"correct_option" json:"correctOption"`
	Difficulty    string   `bson:"difficulty" json:"difficulty"`
	Explanation   string   `bson:"explanation,omitempty" json:"explanation,omitempty"`
}

const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

// HasCorrectOption reports whether the question can be graded.
func (q *Question) HasCorrectOption() bool {
	return q.CorrectOption != NoCorrectOption
}
