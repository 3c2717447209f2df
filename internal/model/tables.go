package model

// Output file names.
const (
	FileGL         = "fact_gl.csv"
	FileBudget     = "fact_budget_monthly.csv"
	FileAccount    = "dim_account.csv"
	FileCostCenter = "dim_costcenter.csv"
)

// Table names in the SQLite sink, one per output file.
const (
	TableGL         = "fact_gl"
	TableBudget     = "fact_budget_monthly"
	TableAccount    = "dim_account"
	TableCostCenter = "dim_costcenter"
)

// Files lists the output files in write order.
var Files = []string{FileGL, FileBudget, FileAccount, FileCostCenter}

// Column headers, in output order.
var (
	HeaderGL = []string{
		"txn_id", "txn_date", "amount", "currency", "account_id",
		"cost_center_id", "country", "vendor_customer", "description",
	}
	HeaderBudget = []string{
		"month_start", "account_id", "cost_center_id", "budget_amount",
	}
	HeaderAccount = []string{
		"account_id", "account_name", "pl_level_1", "pl_level_2", "pl_level_3", "sort_pl1",
	}
	HeaderCostCenter = []string{
		"cost_center_id", "cost_center_name", "department", "region", "manager",
	}
)
