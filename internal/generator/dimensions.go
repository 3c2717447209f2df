package generator

import (
	"fmt"

	"github.com/theirongolddev/finmock/internal/model"
)

// Departments and Regions are the values cost centers are drawn from.
var (
	Departments = []string{"Sales", "R&D", "G&A", "Operations", "Marketing"}
	Regions     = []string{"North", "South", "East", "West", "Central"}
)

// BuildCostCenters returns n cost centers CC100, CC101, ... with randomly
// assigned department and region. Departments are drawn for every center
// before any region is drawn.
func BuildCostCenters(r *Rand, n int) []model.CostCenter {
	ccs := make([]model.CostCenter, n)
	for i := range ccs {
		ccs[i] = model.CostCenter{
			ID:      fmt.Sprintf("CC%03d", 100+i),
			Name:    fmt.Sprintf("CostCenter %02d", i+1),
			Manager: fmt.Sprintf("Manager_%02d", i%10),
		}
	}
	for i := range ccs {
		ccs[i].Department = pick(r, Departments)
	}
	for i := range ccs {
		ccs[i].Region = pick(r, Regions)
	}
	return ccs
}

type accountGroup struct {
	prefix   string
	category model.PLCategory
	group    string
	names    []string
}

var chartOfAccounts = []accountGroup{
	{
		prefix: "41", category: model.Revenue, group: "Revenue Streams",
		names: []string{"Product revenue", "Service revenue", "Subscription revenue"},
	},
	{
		prefix: "51", category: model.COGS, group: "Direct Costs",
		names: []string{"Materials", "Freight", "Manufacturing overhead"},
	},
	{
		prefix: "61", category: model.OPEX, group: "Operating Expenses",
		names: []string{
			"Salaries", "Rent", "IT & Cloud", "Travel",
			"Professional services", "Office & supplies", "Training",
		},
	},
}

// BuildAccounts returns the fixed mini P&L chart of accounts.
// Ids are A<prefix><nn>00, e.g. A410100 for the first revenue account.
func BuildAccounts() []model.Account {
	var accounts []model.Account
	for _, g := range chartOfAccounts {
		for i, name := range g.names {
			accounts = append(accounts, model.Account{
				ID:       fmt.Sprintf("A%s%02d00", g.prefix, i+1),
				Name:     name,
				PLLevel1: g.category,
				PLLevel2: g.group,
				PLLevel3: name,
			})
		}
	}
	return accounts
}

// AccountsByCategory groups account ids by their top-level category,
// preserving chart order.
func AccountsByCategory(accounts []model.Account) map[model.PLCategory][]string {
	by := make(map[model.PLCategory][]string, len(model.Categories))
	for _, a := range accounts {
		by[a.PLLevel1] = append(by[a.PLLevel1], a.ID)
	}
	return by
}
