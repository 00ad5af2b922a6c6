package gemini

// promptData is the data passed to the prompt template.
type promptData struct {
	Topic string
	Count int
}

// responseSchema is the expected structure of the model's JSON reply.
type responseSchema struct {
	Cards []cardSchema `json:"cards"`
}

// cardSchema is a single flashcard in the model's reply.
type cardSchema struct {
	Front string   `json:"front"`
	Back  string   `json:"back"`
	Tags  []string `json:"tags,omitempty"`
}
