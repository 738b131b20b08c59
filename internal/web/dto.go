package web

import "github.com/iksnae/thread-digest/internal"

type StateResponse struct {
	Status   string                  `json:"status"`
	Options  internal.RequestOptions `json:"options"`
	Result   *internal.SummaryResult `json:"result"`
	Error    string                  `json:"error,omitempty"`
	Keywords []internal.KeywordCount `json:"keywords"`
	History  []string                `json:"history"`
	Dark     bool                    `json:"dark"`
	Trending []string                `json:"trending"`
	InFlight []internal.Source       `json:"in_flight"`
}

type PickRequest struct {
	Topic string `json:"topic"`
}

type HistoryResponse struct {
	Topics []string `json:"topics"`
	Dark   bool     `json:"dark"`
}

func toStateResponse(s internal.State) StateResponse {
	res := StateResponse{
		Status:   s.Status.String(),
		Options:  s.Options,
		Result:   s.Result,
		Error:    s.ErrorMessage,
		Keywords: s.Frequencies.Top(0),
		History:  s.History.Topics,
		Dark:     s.History.Dark,
		Trending: s.Trending,
		InFlight: []internal.Source{},
	}
	if res.History == nil {
		res.History = []string{}
	}
	if res.Trending == nil {
		res.Trending = []string{}
	}
	for _, src := range internal.Sources {
		if s.InFlight[src] {
			res.InFlight = append(res.InFlight, src)
		}
	}
	return res
}
