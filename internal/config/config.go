package config

import (
	"flag"
	"os"
	"strings"

	"orderdash/internal/field"
	"orderdash/internal/pipeline"
)

type Config struct {
	RunAddress    string
	WebhookSecret string
	DatabaseURI   string
	StaticDir     string

	OrdersBootstrapCSV string
	OrdersEventsFile   string

	BarcodeBootstrapCSV string
	BarcodeEventsFile   string

	PrefixKeys []string
	RefKeys    []string
	StageKeys  []string
	UserKeys   []string
	TimeKeys   []string

	OrderKeys     []string
	DroppedByKeys []string
	DateTimeKeys  []string
	AddedTimeKeys []string

	PaperworkStages []string
	ProductStages   []string
}

func New() *Config {
	cfg := &Config{}

	flag.StringVar(&cfg.RunAddress, "a", "localhost:8000", "server address and port")
	flag.StringVar(&cfg.DatabaseURI, "d", "", "database URI for the event log (empty: JSONL files)")
	flag.StringVar(&cfg.StaticDir, "static", "", "directory of dashboard static files (empty: not served)")
	flag.StringVar(&cfg.WebhookSecret, "s", "", "shared webhook secret (empty: no check)")
	flag.StringVar(&cfg.OrdersBootstrapCSV, "orders-csv", "orders_report.csv", "orders bootstrap CSV path")
	flag.StringVar(&cfg.OrdersEventsFile, "orders-events", "data/orders_live_events.jsonl", "orders event log path")
	flag.StringVar(&cfg.BarcodeBootstrapCSV, "barcode-csv", "barcode_report.csv", "barcode bootstrap CSV path")
	flag.StringVar(&cfg.BarcodeEventsFile, "barcode-events", "data/barcode_live_events.jsonl", "barcode event log path")
	flag.Parse()

	cfg.RunAddress = getEnv("RUN_ADDRESS", cfg.RunAddress)
	cfg.DatabaseURI = getEnv("DATABASE_URI", cfg.DatabaseURI)
	cfg.StaticDir = getEnv("STATIC_DIR", cfg.StaticDir)
	cfg.WebhookSecret = strings.TrimSpace(getEnv("WEBHOOK_SECRET", cfg.WebhookSecret))
	cfg.OrdersBootstrapCSV = getEnv("ORDERS_BOOTSTRAP_CSV", cfg.OrdersBootstrapCSV)
	cfg.OrdersEventsFile = getEnv("ORDERS_EVENTS_FILE", cfg.OrdersEventsFile)
	cfg.BarcodeBootstrapCSV = getEnv("BARCODE_BOOTSTRAP_CSV", cfg.BarcodeBootstrapCSV)
	cfg.BarcodeEventsFile = getEnv("BARCODE_EVENTS_FILE", cfg.BarcodeEventsFile)

	cfg.PrefixKeys = getList("ORDERS_PREFIX_KEYS", "Prefix,prefix")
	cfg.RefKeys = getList("ORDERS_REF_KEYS", "Ref Number,Reference Number,Ref_Number,ref_number")
	cfg.StageKeys = getList("ORDERS_STAGE_KEYS", "Stage,stage,Status,status")
	cfg.UserKeys = getList("ORDERS_USER_KEYS", "USER,User,user")
	cfg.TimeKeys = getList("ORDERS_TIME_KEYS", "Added Time,added_time,Submitted Time,Submission Time")

	cfg.OrderKeys = getList("BARCODE_ORDER_KEYS",
		"ORDER, PICK OR PO. NUMBER|Order|Pick|PO Number|INFORMATION|Information")
	cfg.DroppedByKeys = getList("BARCODE_DROPPED_BY_KEYS", "Dropped off by:,Dropped off by,Dropped By")
	cfg.DateTimeKeys = getList("BARCODE_DATETIME_KEYS", "Date-Time*,Date-Time,Date Time")
	cfg.AddedTimeKeys = getList("BARCODE_ADDED_TIME_KEYS", "Added Time,added_time,Submitted Time")

	cfg.PaperworkStages = getList("ORDERS_PAPERWORK_STAGES", "Paperwork Received")
	cfg.ProductStages = getList("ORDERS_PRODUCT_STAGES", "Product Received")

	return cfg
}

// OrdersSchema builds the field schema for the orders dashboard. Only user
// and stage are subject to blank-row inheritance.
func (c *Config) OrdersSchema() field.Schema {
	return field.Schema{
		Fields: []field.Field{
			{Name: field.Prefix, Aliases: c.PrefixKeys},
			{Name: field.RefNumber, Aliases: c.RefKeys},
			{Name: field.Stage, Aliases: c.StageKeys, Inherit: true},
			{Name: field.User, Aliases: c.UserKeys, Inherit: true},
			{Name: field.AddedTime, Aliases: c.TimeKeys},
		},
		KeyFields: []string{field.Prefix, field.RefNumber},
	}
}

// BarcodeSchema builds the field schema for the barcode dashboard. All
// tracked fields inherit.
func (c *Config) BarcodeSchema() field.Schema {
	return field.Schema{
		Fields: []field.Field{
			{Name: field.OrderValue, Aliases: c.OrderKeys, Inherit: true},
			{Name: field.DroppedOffBy, Aliases: c.DroppedByKeys, Inherit: true},
			{Name: field.DateTime, Aliases: c.DateTimeKeys, Inherit: true},
			{Name: field.AddedTime, Aliases: c.AddedTimeKeys, Inherit: true},
		},
		KeyFields: []string{field.OrderValue},
	}
}

func (c *Config) OrderRules() pipeline.OrderRules {
	return pipeline.OrderRules{
		PaperworkStages: c.PaperworkStages,
		ProductStages:   c.ProductStages,
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

// getList splits an alias list on "|" when present, otherwise on ",".
// Pipes let aliases that themselves contain commas survive.
func getList(key, fallback string) []string {
	raw := getEnv(key, fallback)
	sep := ","
	if strings.Contains(raw, "|") {
		sep = "|"
	}
	var out []string
	for _, part := range strings.Split(raw, sep) {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
