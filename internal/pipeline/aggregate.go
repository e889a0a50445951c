package pipeline

import (
	"sort"
	"strings"
	"time"

	"orderdash/internal/field"
	"orderdash/internal/model"
)

// OrderRules names the stage values that flip each received flag.
// Matching is case-insensitive.
type OrderRules struct {
	PaperworkStages []string
	ProductStages   []string
}

// Aggregate groups normalized rows by order key and accumulates per-group
// state. Rows whose prefix and ref number are both blank form no group.
// Received flags are derived from stage-set membership after the pass, so
// they do not depend on row order; the latest timestamp does.
func Aggregate(rows []model.Row, rules OrderRules) map[string]*model.OrderGroup {
	groups := make(map[string]*model.OrderGroup)

	for _, row := range rows {
		prefix := strings.TrimSpace(row.Get(field.Prefix))
		ref := strings.TrimSpace(row.Get(field.RefNumber))
		key := OrderKey(prefix, ref)
		if key == "" {
			continue
		}

		g, ok := groups[key]
		if !ok {
			g = &model.OrderGroup{
				Key:        key,
				Prefix:     prefix,
				RefNumber:  ref,
				UsersSeen:  make(map[string]struct{}),
				StagesSeen: make(map[string]struct{}),
			}
			groups[key] = g
		}

		if user := row.Get(field.User); user != "" {
			g.UsersSeen[user] = struct{}{}
		}
		if stage := row.Get(field.Stage); stage != "" {
			g.StagesSeen[stage] = struct{}{}
		}
		if at := row.Get(field.AddedTime); at != "" && laterTime(at, g.LatestAddedTime) {
			g.LatestAddedTime = at
		}
		g.RowCount++
	}

	for _, g := range groups {
		g.PaperworkReceived = stageSeen(g.StagesSeen, rules.PaperworkStages)
		g.ProductReceived = stageSeen(g.StagesSeen, rules.ProductStages)
	}

	return groups
}

// OrderKey builds the composite group key: "prefix-ref", or the ref alone
// when the prefix is blank.
func OrderKey(prefix, ref string) string {
	if ref == "" {
		return ""
	}
	if prefix == "" {
		return ref
	}
	return prefix + "-" + ref
}

// Classify buckets a group by its received flags.
func Classify(g *model.OrderGroup) (orderType, partialType string) {
	switch {
	case g.PaperworkReceived && g.ProductReceived:
		return model.OrderTypeComplete, ""
	case g.PaperworkReceived:
		return model.OrderTypePartial, model.PartialPaperworkOnly
	case g.ProductReceived:
		return model.OrderTypePartial, model.PartialProductOnly
	default:
		return model.OrderTypeNone, ""
	}
}

// BuildOrders flattens groups into dashboard records sorted by prefix then
// ref number.
func BuildOrders(groups map[string]*model.OrderGroup) []model.Order {
	orders := make([]model.Order, 0, len(groups))
	for _, g := range groups {
		orderType, partialType := Classify(g)
		orders = append(orders, model.Order{
			OrderKey:          g.Key,
			Prefix:            g.Prefix,
			RefNumber:         g.RefNumber,
			PaperworkReceived: g.PaperworkReceived,
			ProductReceived:   g.ProductReceived,
			UsersSeen:         joinSet(g.UsersSeen),
			StagesSeen:        joinSet(g.StagesSeen),
			LatestAddedTime:   g.LatestAddedTime,
			RowsForOrder:      g.RowCount,
			OrderType:         orderType,
			PartialType:       partialType,
		})
	}

	sort.Slice(orders, func(i, j int) bool {
		if orders[i].Prefix != orders[j].Prefix {
			return orders[i].Prefix < orders[j].Prefix
		}
		return orders[i].RefNumber < orders[j].RefNumber
	})

	return orders
}

func stageSeen(stages map[string]struct{}, wanted []string) bool {
	for stage := range stages {
		for _, w := range wanted {
			if strings.EqualFold(strings.TrimSpace(stage), strings.TrimSpace(w)) {
				return true
			}
		}
	}
	return false
}

func joinSet(set map[string]struct{}) string {
	values := make([]string, 0, len(set))
	for v := range set {
		values = append(values, v)
	}
	sort.Strings(values)
	return strings.Join(values, "; ")
}

// Zoho exports use "02-Jan-2006 15:04:05"; webhook payloads occasionally
// carry RFC 3339.
var timeLayouts = []string{
	"02-Jan-2006 15:04:05",
	"02-Jan-2006 15:04",
	time.RFC3339,
	"2006-01-02 15:04:05",
}

// laterTime reports whether a is later than b. Both sides are parsed
// against the known layouts and compared chronologically; if either fails
// to parse, comparison falls back to plain string order.
func laterTime(a, b string) bool {
	if b == "" {
		return true
	}
	ta, okA := parseTime(a)
	tb, okB := parseTime(b)
	if okA && okB {
		return ta.After(tb)
	}
	return a > b
}

func parseTime(s string) (time.Time, bool) {
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
