package core

import (
	"errors"
	"strings"
	"time"
)

const (
	Income  TransactionType = "income"
	Expense TransactionType = "expense"
)

const (
	CategoryFood          Category = "Food"
	CategoryTransport     Category = "Transport"
	CategoryShopping      Category = "Shopping"
	CategoryBills         Category = "Bills"
	CategoryEntertainment Category = "Entertainment"
	CategoryHealth        Category = "Health"
	CategoryEducation     Category = "Education"
	CategorySalary        Category = "Salary"
	CategoryFreelance     Category = "Freelance"
	CategoryInvestment    Category = "Investment"
	CategoryGift          Category = "Gift"
	CategoryOther         Category = "Other"
)

type (
	TransactionType string

	Category string

	Task struct {
		ID          int64      `json:"id"`
		Text        string     `json:"text"`
		Completed   bool       `json:"completed"`
		CreatedAt   time.Time  `json:"createdAt"`
		CompletedAt *time.Time `json:"completedAt"`
	}

	Transaction struct {
		ID       int64           `json:"id"`
		Amount   Money           `json:"amount"`
		Category Category        `json:"category"`
		Type     TransactionType `json:"type"`
		// Date and Time are display strings captured when the entry was made.
		Date      string    `json:"date"`
		Time      string    `json:"time"`
		CreatedAt time.Time `json:"createdAt"`
	}

	StreakState struct {
		Streak        int
		LastHabitDate *time.Time
	}

	// Bundle is the whole persisted dashboard state.
	Bundle struct {
		Tasks         []Task        `json:"tasks"`
		Transactions  []Transaction `json:"transactions"`
		Balance       Money         `json:"balance"`
		Streak        int           `json:"streak"`
		LastHabitDate *time.Time    `json:"lastHabitDate,omitempty"`
	}
)

var (
	ErrInvalidAmount = errors.New("invalid amount")
	ErrInvalidType   = errors.New("invalid transaction type")
	ErrEmptyTask     = errors.New("empty task")
	ErrFutureDate    = errors.New("cannot mark a future date")
	ErrAlreadyMarked = errors.New("date already marked")
	ErrNotFound      = errors.New("not found")
	ErrNotConfirmed  = errors.New("operation not confirmed")
	ErrClockSkew     = errors.New("last habit date is in the future")
)

// Categories lists the known transaction categories in display order.
func Categories() []Category {
	return []Category{
		CategoryFood, CategoryTransport, CategoryShopping, CategoryBills,
		CategoryEntertainment, CategoryHealth, CategoryEducation,
		CategorySalary, CategoryFreelance, CategoryInvestment,
		CategoryGift, CategoryOther,
	}
}

// NormalizeCategory trims the category and falls back to Other when empty.
func NormalizeCategory(c string) Category {
	c = strings.TrimSpace(c)
	if c == "" {
		return CategoryOther
	}
	return Category(c)
}

func (t TransactionType) Validate() error {
	switch t {
	case Income, Expense:
		return nil
	default:
		return ErrInvalidType
	}
}

// Signed returns the amount as it affects the balance.
func (tx Transaction) Signed() Money {
	if tx.Type == Income {
		return tx.Amount
	}
	return Money{Cents: -tx.Amount.Cents}
}

func (t Task) Validate() error {
	if strings.TrimSpace(t.Text) == "" {
		return ErrEmptyTask
	}
	if t.Completed != (t.CompletedAt != nil) {
		return errors.New("completedAt must be set exactly when the task is completed")
	}
	return nil
}

// Normalize makes CompletedAt agree with Completed. A completed task with no
// completion time is taken as completed when it was created.
func (t Task) Normalize() Task {
	switch {
	case t.Completed && t.CompletedAt == nil:
		at := t.CreatedAt
		t.CompletedAt = &at
	case !t.Completed && t.CompletedAt != nil:
		t.CompletedAt = nil
	}
	return t
}

func (tx Transaction) Validate() error {
	if err := tx.Amount.Validate(); err != nil {
		return err
	}
	return tx.Type.Validate()
}

// State returns the streak part of the bundle.
func (b Bundle) State() StreakState {
	return StreakState{Streak: b.Streak, LastHabitDate: b.LastHabitDate}
}

// Clone returns a deep copy so callers cannot alias session state.
func (b Bundle) Clone() Bundle {
	out := Bundle{
		Balance: b.Balance,
		Streak:  b.Streak,
	}
	if b.Tasks != nil {
		out.Tasks = make([]Task, len(b.Tasks))
		for i, t := range b.Tasks {
			out.Tasks[i] = t.clone()
		}
	}
	if b.Transactions != nil {
		out.Transactions = append([]Transaction(nil), b.Transactions...)
	}
	if b.LastHabitDate != nil {
		d := *b.LastHabitDate
		out.LastHabitDate = &d
	}
	return out
}

func (t Task) clone() Task {
	if t.CompletedAt != nil {
		c := *t.CompletedAt
		t.CompletedAt = &c
	}
	return t
}
