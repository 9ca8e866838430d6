package entities

// ChatQueryInput represents a natural-language question for the chatbot
type ChatQueryInput struct {
	Query string `json:"query" binding:"required"`
	TopK  int    `json:"topK"`
}

// ChatSource identifies a document chunk the answer was grounded on
type ChatSource struct {
	File     string `json:"file"`
	PolicyID string `json:"policyId,omitempty"`
}

// ChatAnswer is the retrieval service's response relayed to the client
type ChatAnswer struct {
	Answer  string       `json:"answer"`
	Sources []ChatSource `json:"sources"`
}
