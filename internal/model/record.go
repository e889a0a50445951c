package model

// Record is one barcode delivery entry. A single source row can expand
// into several records when its order cell lists multiple values.
type Record struct {
	ID           int    `json:"id"`
	OrderValue   string `json:"order_value"`
	DroppedOffBy string `json:"dropped_off_by"`
	DateTime     string `json:"date_time"`
	AddedTime    string `json:"added_time"`
}

type RecordsSummary struct {
	TotalRecords int `json:"total_records"`
	UniqueOrders int `json:"unique_orders"`
}

type RecordsView struct {
	Records []Record       `json:"records"`
	Summary RecordsSummary `json:"summary"`
	Meta    Meta           `json:"meta"`
}
