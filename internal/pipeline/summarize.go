package pipeline

import "orderdash/internal/model"

// Summarize tallies groups per classification bucket. The total always
// equals the number of distinct keys: groups with neither flag land in the
// none bucket instead of vanishing.
func Summarize(groups map[string]*model.OrderGroup) model.OrdersSummary {
	var s model.OrdersSummary
	s.TotalOrdersInView = len(groups)
	for _, g := range groups {
		orderType, partialType := Classify(g)
		switch orderType {
		case model.OrderTypeComplete:
			s.CompleteBoth++
		case model.OrderTypePartial:
			s.PartialOne++
			if partialType == model.PartialPaperworkOnly {
				s.PaperworkOnly++
			} else {
				s.ProductOnly++
			}
		default:
			s.NoneReceived++
		}
	}
	return s
}
