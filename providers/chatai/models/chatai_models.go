package models

// Part is one text part of a message.
type Part struct {
	Text string `json:"text"`
}

type Content struct {
	Role  string `json:"role"`
	Parts []Part `json:"parts"`
}

// ChatAIRequest is the generateContent style request body.
type ChatAIRequest struct {
	Contents []Content `json:"contents"`
}

// ChatAIResponse keeps only the fields the client reads.
type ChatAIResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text *string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}
