package ledger

import "sort"

// NetBalance is a member's overall position: positive means the member is
// owed money (creditor), negative means the member owes money (debtor).
type NetBalance struct {
	MemberID string  `json:"member_id"`
	Amount   float64 `json:"amount"`
}

// Transfer is one suggested payment in a simplified settlement plan.
type Transfer struct {
	FromID string  `json:"from_id"`
	ToID   string  `json:"to_id"`
	Amount float64 `json:"amount"`
}

// NetBalances derives net positions (getsBack minus total owed) from a
// balance mapping, in the order given by memberOrder. The caller supplies
// the order because map iteration is not deterministic and Simplify's
// output depends on it.
func NetBalances(memberOrder []string, balances map[string]*MemberBalance) []NetBalance {
	nets := make([]NetBalance, 0, len(memberOrder))
	for _, id := range memberOrder {
		b, ok := balances[id]
		if !ok {
			continue
		}
		net := b.GetsBack
		for _, o := range b.Owes {
			net -= o.Amount
		}
		nets = append(nets, NetBalance{MemberID: id, Amount: net})
	}
	return nets
}

// Simplify reduces a set of net balances to a short list of transfers that
// zero out every position, using greedy largest-magnitude matching. The
// heuristic is not provably minimal in all cases but is simple and, given
// the fixed input order, deterministic: both sides are sorted descending by
// magnitude with a stable sort, so ties keep their input order.
//
// Returns an empty list iff every net balance is within 0.01 of zero.
// Terminates in at most len(debtors)+len(creditors)-1 steps.
func Simplify(nets []NetBalance) []Transfer {
	var debtors, creditors []NetBalance
	for _, n := range nets {
		switch {
		case n.Amount <= -tolerance:
			debtors = append(debtors, NetBalance{MemberID: n.MemberID, Amount: -n.Amount})
		case n.Amount >= tolerance:
			creditors = append(creditors, n)
		}
	}

	sort.SliceStable(debtors, func(i, j int) bool { return debtors[i].Amount > debtors[j].Amount })
	sort.SliceStable(creditors, func(i, j int) bool { return creditors[i].Amount > creditors[j].Amount })

	transfers := []Transfer{}
	i, j := 0, 0
	for i < len(debtors) && j < len(creditors) {
		amount := debtors[i].Amount
		if creditors[j].Amount < amount {
			amount = creditors[j].Amount
		}

		transfers = append(transfers, Transfer{
			FromID: debtors[i].MemberID,
			ToID:   creditors[j].MemberID,
			Amount: amount,
		})

		debtors[i].Amount -= amount
		creditors[j].Amount -= amount
		if debtors[i].Amount < tolerance {
			i++
		}
		if creditors[j].Amount < tolerance {
			j++
		}
	}

	return transfers
}
