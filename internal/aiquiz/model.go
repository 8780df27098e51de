package aiquiz

// GenerateRequest asks the model for draft questions on a topic.
type GenerateRequest struct {
	Topic      string `json:"topic"`
	Difficulty string `json:"difficulty"`
	Count      int    `json:"count"`
	Context    string `json:"context"`
}

// DraftQuestion has the shape accepted by the question write endpoints, plus
// an explanation for the author.
type DraftQuestion struct {
	Text          string   `json:"text"`
	Options       []string `json:"options"`
	CorrectOption int      `json:"correct_option"`
	Explanation   string   `json:"explanation,omitempty"`
}

type GenerateResponse struct {
	Topic      string          `json:"topic"`
	Difficulty string          `json:"difficulty"`
	Questions  []DraftQuestion `json:"questions"`
}
