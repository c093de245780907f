package pos

import (
	"sort"
	"time"

	"resto-pos/internal/models"
	"resto-pos/internal/store"
)

// FinancialReport is the back-office P&L view over a date range.
type FinancialReport struct {
	TotalSales       float64 `json:"total_sales"`
	TotalCostOfGoods float64 `json:"total_cost_of_goods"`
	TotalExpenses    float64 `json:"total_expenses"`
	NetBalance       float64 `json:"net_balance"`

	TopSelling []TopSellingItem    `json:"top_selling"`
	Sales      []models.SaleRecord `json:"sales"`
	Expenses   []models.Expense    `json:"expenses"`
}

type TopSellingItem struct {
	ItemSold string  `json:"item_sold"`
	Sold     int     `json:"sold"`
	Revenue  float64 `json:"revenue"`
}

// Reporter aggregates sales and expenses into financial summaries.
// Read-only; it never writes.
type Reporter struct {
	repo store.Repository
}

func NewReporter(repo store.Repository) *Reporter {
	return &Reporter{repo: repo}
}

// Generate builds the report for the inclusive date-only range [start, end].
// Either side may be the zero time to leave the range open; both zero returns
// the full ledgers. Totals are summed from the same rows the report lists,
// so the numbers and the lines can never disagree.
func (r *Reporter) Generate(start, end time.Time) (*FinancialReport, error) {
	if !start.IsZero() && !end.IsZero() && end.Before(start) {
		return nil, validationf("end date is before start date")
	}

	sales, err := r.repo.SalesBetween(start, end)
	if err != nil {
		return nil, err
	}
	expenses, err := r.repo.ExpensesBetween(start, end)
	if err != nil {
		return nil, err
	}

	report := &FinancialReport{
		Sales:    sales,
		Expenses: expenses,
	}

	byItem := map[string]*TopSellingItem{}
	for _, s := range sales {
		report.TotalSales += s.Amount
		report.TotalCostOfGoods += s.CostOfGoods
		top := byItem[s.ItemSold]
		if top == nil {
			top = &TopSellingItem{ItemSold: s.ItemSold}
			byItem[s.ItemSold] = top
		}
		top.Sold += s.Quantity
		top.Revenue += s.Amount
	}
	for _, e := range expenses {
		report.TotalExpenses += e.Amount
	}
	report.NetBalance = report.TotalSales - report.TotalCostOfGoods - report.TotalExpenses

	for _, top := range byItem {
		report.TopSelling = append(report.TopSelling, *top)
	}
	sort.Slice(report.TopSelling, func(i, j int) bool {
		return report.TopSelling[i].Sold > report.TopSelling[j].Sold
	})
	if len(report.TopSelling) > 5 {
		report.TopSelling = report.TopSelling[:5]
	}

	return report, nil
}
