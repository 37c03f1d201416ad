package domain

// Category is a fixed catalogue entry used to classify transactions.
type Category struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Emoji string `json:"emoji"`
	Color string `json:"color"`
	Type  string `json:"type"`
}

// BillsCategory and CreditCardPaymentTitle mark the synthetic transactions the
// billing service records; analytics excludes them from spending to avoid
// double-counting the original card expenses.
const (
	BillsCategory          = "Bills"
	CreditCardPaymentTitle = "Credit Card Payment"
	SalaryCategory         = "Salary"
)

// DefaultCategories is the built-in catalogue; it is not user-editable.
var DefaultCategories = []Category{
	{ID: "1", Name: "Food & Dining", Emoji: "🍽️", Color: "#ff6b6b", Type: TypeExpense},
	{ID: "2", Name: "Transportation", Emoji: "🚗", Color: "#4ecdc4", Type: TypeExpense},
	{ID: "3", Name: "Shopping", Emoji: "🛒", Color: "#45b7d1", Type: TypeExpense},
	{ID: "4", Name: "Entertainment", Emoji: "🎬", Color: "#96ceb4", Type: TypeExpense},
	{ID: "5", Name: "Utilities", Emoji: "⚡", Color: "#ffeaa7", Type: TypeExpense},
	{ID: "6", Name: "Health & Medical", Emoji: "🏥", Color: "#dda0dd", Type: TypeExpense},
	{ID: "7", Name: "Education", Emoji: "📚", Color: "#fab1a0", Type: TypeExpense},
	{ID: "8", Name: "Travel", Emoji: "✈️", Color: "#74b9ff", Type: TypeExpense},
	{ID: "9", Name: "Groceries", Emoji: "🛍️", Color: "#fd79a8", Type: TypeExpense},
	{ID: "10", Name: "Subscriptions", Emoji: "📱", Color: "#fdcb6e", Type: TypeExpense},
	{ID: "11", Name: BillsCategory, Emoji: "🧾", Color: "#636e72", Type: TypeExpense},
	{ID: "12", Name: SalaryCategory, Emoji: "💼", Color: "#00b894", Type: TypeIncome},
	{ID: "13", Name: "Freelance", Emoji: "💻", Color: "#0984e3", Type: TypeIncome},
	{ID: "14", Name: "Investment", Emoji: "📈", Color: "#6c5ce7", Type: TypeIncome},
	{ID: "15", Name: "Gift", Emoji: "🎁", Color: "#fd79a8", Type: TypeIncome},
	{ID: "16", Name: "Bonus", Emoji: "🏆", Color: "#fdcb6e", Type: TypeIncome},
	{ID: "17", Name: "Other Income", Emoji: "💰", Color: "#00cec9", Type: TypeIncome},
	{ID: "18", Name: "Transfer", Emoji: "🔄", Color: "#74b9ff", Type: TypeIncome},
}

func IsValidCategory(name string) bool {
	for _, c := range DefaultCategories {
		if c.Name == name {
			return true
		}
	}
	return false
}
