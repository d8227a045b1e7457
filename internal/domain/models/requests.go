package models

// Requests for the API endpoints. Defined in domain for consistency and reuse.

type ForecastRequest struct {
	Series   string `query:"series" json:"series" default:"sunspots" validate:"required"`
	Horizon  int    `query:"horizon" json:"horizon" default:"36" validate:"gte=1,lte=600"`
	Lookback int    `query:"lookback" json:"lookback" default:"120" validate:"gte=2,lte=1200"`
	Model    string `query:"model" json:"model" default:"rnn" validate:"oneof=rnn seq2seq baseline"`
}

type SeriesRequest struct {
	Series string `query:"series" json:"series" default:"sunspots" validate:"required"`
	N      int    `query:"n" json:"n" default:"1200" validate:"gte=1,lte=10000"`
	Cad    string `query:"cadence" json:"cadence" default:"monthly" validate:"oneof=daily monthly"`
}

type SentimentRequest struct {
	Tokens []int `json:"tokens" validate:"required,min=1,max=5000"`
}

type OverviewRequest struct {
	Series  string `query:"series" json:"series" default:"sunspots" validate:"required"`
	Horizon int    `query:"horizon" json:"horizon" default:"36" validate:"gte=1,lte=600"`
	Model   string `query:"model" json:"model" default:"rnn" validate:"oneof=rnn seq2seq"`
}
