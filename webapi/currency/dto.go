package currency

// LatestRatesQuery carries the parameters of GET /latest.
type LatestRatesQuery struct {
	BaseCurrency string `query:"baseCurrency" validate:"required,alpha,len=3"`
	Provider     string `query:"provider"`
}

// ConvertQuery carries the parameters of GET /convert. Amount stays a
// string here so the exact decimal the client sent reaches the service.
type ConvertQuery struct {
	From     string `query:"from" validate:"required,alpha,len=3"`
	To       string `query:"to" validate:"required,alpha,len=3"`
	Amount   string `query:"amount" validate:"required"`
	Provider string `query:"provider"`
}

// HistoricalQuery carries the parameters of GET /historical.
type HistoricalQuery struct {
	BaseCurrency string `query:"baseCurrency" validate:"required,alpha,len=3"`
	StartDate    string `query:"startDate" validate:"required,datetime=2006-01-02"`
	EndDate      string `query:"endDate" validate:"required,datetime=2006-01-02"`
	Page         int    `query:"page" validate:"omitempty,gt=0"`
	PageSize     int    `query:"pageSize" validate:"omitempty,gt=0"`
	Provider     string `query:"provider"`
}
