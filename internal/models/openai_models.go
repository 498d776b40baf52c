package models

type OpenAISentimentResponse struct {
	Results []OpenAISentimentItem `json:"results"`
}

type OpenAISentimentItem struct {
	Index      int     `json:"index"`
	Label      string  `json:"label"`
	Confidence float64 `json:"confidence"`
}
