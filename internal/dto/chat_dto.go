package dto

type ChatRequest struct {
	Query    string `json:"query"`
	Language string `json:"language" validate:"omitempty,max=16"`
}

type ChatResponse struct {
	Answer      string `json:"answer"`
	UsedPassage bool   `json:"used_passage"`
}
