package model

// Order type classification values.
const (
	OrderTypeComplete = "complete"
	OrderTypePartial  = "partial"
	OrderTypeNone     = "none"

	PartialPaperworkOnly = "paperwork_only"
	PartialProductOnly   = "product_only"
)

// OrderGroup accumulates every row seen for one order key during an
// aggregation pass.
type OrderGroup struct {
	Key             string
	Prefix          string
	RefNumber       string
	UsersSeen       map[string]struct{}
	StagesSeen      map[string]struct{}
	LatestAddedTime string
	RowCount        int

	PaperworkReceived bool
	ProductReceived   bool
}

// Order is the per-group record served to the dashboard.
type Order struct {
	OrderKey          string `json:"order_key"`
	Prefix            string `json:"prefix"`
	RefNumber         string `json:"ref_number"`
	PaperworkReceived bool   `json:"paperwork_received"`
	ProductReceived   bool   `json:"product_received"`
	UsersSeen         string `json:"users_seen"`
	StagesSeen        string `json:"stages_seen"`
	LatestAddedTime   string `json:"latest_added_time"`
	RowsForOrder      int    `json:"rows_for_order"`
	OrderType         string `json:"order_type"`
	PartialType       string `json:"partial_type"`
}

type OrdersSummary struct {
	TotalOrdersInView int `json:"total_orders_in_view"`
	CompleteBoth      int `json:"complete_both"`
	PartialOne        int `json:"partial_one"`
	PaperworkOnly     int `json:"paperwork_only"`
	ProductOnly       int `json:"product_only"`
	NoneReceived      int `json:"none_received"`
}

type Meta struct {
	LastLiveEventAt string `json:"last_live_event_at,omitempty"`
	BootstrapCSV    string `json:"bootstrap_csv,omitempty"`
}

type OrdersView struct {
	Orders  []Order       `json:"orders"`
	Summary OrdersSummary `json:"summary"`
	Meta    Meta          `json:"meta"`
}
