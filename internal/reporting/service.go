package reporting

import (
	"context"
	"errors"
	"regexp"
	"strconv"
	"strings"
	"time"

	"restaurant-ops/internal/calllog"
)

// Overview is the dashboard's daily snapshot, computed over call logs since
// local midnight. Orders are call logs that carry an order summary.
type Overview struct {
	TotalCallsToday  int     `json:"totalCallsToday"`
	TotalOrdersToday int     `json:"totalOrdersToday"`
	Revenue          float64 `json:"revenue"`
	MostOrderedItem  string  `json:"mostOrderedItem"`
}

type Service struct {
	repo  calllog.Repository
	clock func() time.Time
}

func NewService(repo calllog.Repository) *Service {
	return &Service{repo: repo, clock: time.Now}
}

var moneyPattern = regexp.MustCompile(`\$?([0-9]+(?:\.[0-9]{1,2})?)`)

func (s *Service) DailyOverview(ctx context.Context) (Overview, error) {
	if s.repo == nil {
		return Overview{}, errors.New("reporting: repository not configured")
	}

	now := s.clock()
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	logs, err := s.repo.List(ctx, calllog.ListFilter{Since: todayStart})
	if err != nil {
		return Overview{}, err
	}

	out := Overview{MostOrderedItem: "N/A"}
	frequency := map[string]int{}

	for _, l := range logs {
		out.TotalCallsToday++
		if l.OrderSummary == "" {
			continue
		}
		out.TotalOrdersToday++
		out.Revenue += extractRevenue(l.OrderSummary)

		for _, part := range strings.Split(l.OrderSummary, ",") {
			part = strings.TrimSpace(part)
			if part == "" || strings.HasPrefix(part, "$") {
				continue
			}
			frequency[part]++
		}
	}

	top := 0
	for item, count := range frequency {
		if count > top || (count == top && top > 0 && item < out.MostOrderedItem) {
			top = count
			out.MostOrderedItem = item
		}
	}

	return out, nil
}

// extractRevenue pulls the last dollar amount out of an order summary.
// Summaries conventionally end with the order total ("2x naan, $18.50").
func extractRevenue(summary string) float64 {
	matches := moneyPattern.FindAllString(summary, -1)
	if len(matches) == 0 {
		return 0
	}
	last := strings.TrimPrefix(matches[len(matches)-1], "$")
	v, err := strconv.ParseFloat(last, 64)
	if err != nil {
		return 0
	}
	return v
}
