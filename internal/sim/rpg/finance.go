package rpg

// Finance holds a user's deposit and debt in whole dollars.
type Finance struct {
	Deposit int
	Debt    int

	interestRate float64
}

func NewFinance(deposit, debt int, interestRate float64) *Finance {
	return &Finance{Deposit: deposit, Debt: debt, interestRate: interestRate}
}

func (f *Finance) Total() int {
	return f.Deposit - f.Debt
}

func (f *Finance) InterestRate() float64 {
	return f.interestRate
}
