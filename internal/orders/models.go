package orders

import "time"

// Person is the resolved display identity of a customer or employee.
type Person struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Product is the inventory row read during line validation. Stock and price
// read here are advisory; the commit re-checks stock inside the transaction.
type Product struct {
	ID         int64
	Name       string
	Stock      int
	PriceCents int64
	CategoryID int64
}

type Order struct {
	ID         int64
	CustomerID int64
	EmployeeID int64
	OrderDate  time.Time
	TotalCents int64
	Status     Status
	Notes      string
}

// DraftLine is one validated, priced line awaiting commit.
type DraftLine struct {
	ProductID      int64
	ProductName    string
	Quantity       int
	UnitPriceCents int64
	LineTotalCents int64
	PriceMismatch  bool
}

// Draft is a fully validated order ready for the transactional commit.
// Building one performs no writes.
type Draft struct {
	CustomerID int64
	EmployeeID int64
	Notes      string
	Lines      []DraftLine
	TotalCents int64
}

// Committed reports what the store assigned during the commit.
type Committed struct {
	OrderID   int64
	OrderDate time.Time
}
