package models

// StudentProfile is the self-reported data supplied before a session starts.
// The feedback synthesizer treats it as prior evidence.
type StudentProfile struct {
	Age          int      `bson:"age" json:"age"`
	Interests    []string `bson:"interests" json:"interests"`
	Strengths    []string `bson:"strengths" json:"strengths"`
	WeakSubjects []string `bson:"weak_subjects" json:"weakSubjects"`
}

type Student struct {
	ID      string         `bson:"_id,omitempty" json:"id"`
	Email   string         `bson:"email" json:"email"`
	Name    string         `bson:"name" json:"name"`
	Profile StudentProfile `bson:"profile" json:"profile"`
}

// ProfileUpdate is a partial profile update; nil fields are left unchanged.
type ProfileUpdate struct {
	Age          *int      `json:"age,omitempty"`
	Interests    *[]string `json:"interests,omitempty"`
	Strengths    *[]string `json:"strengths,omitempty"`
	WeakSubjects *[]string `json:"weakSubjects,omitempty"`
}
