package repository

import (
	"fmt"
	"strconv"
	"strings"

	"event-bookings/internal/usecase/shared"
)

const bookingColumns = `id, invoice_id, user_id, customer_name,
	event_id, event_name, category_id, category_name, ticket_category_id, ticket_category_name,
	booking_date, price_cents, quantity, e_voucher, status, created_at, updated_at`

const (
	insertBookingSQL = `INSERT INTO bookings (` + bookingColumns + `)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`

	selectBookingByIDSQL = `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`

	updateBookingSQL = `UPDATE bookings
SET status = $2, quantity = $3, e_voucher = $4, updated_at = $5
WHERE id = $1`

	deleteBookingSQL = `DELETE FROM bookings WHERE id = $1`
)

var sortColumns = map[shared.SortField]string{
	shared.SortByBookingDate: "booking_date",
	shared.SortByPrice:       "price_cents",
	shared.SortByCreatedAt:   "created_at",
	shared.SortByID:          `id COLLATE "C"`,
}

// argList collects positional parameters for one statement.
type argList struct {
	args []any
}

func (a *argList) add(v any) string {
	a.args = append(a.args, v)
	return "$" + strconv.Itoa(len(a.args))
}

func renderPredicate(p shared.Predicate, args *argList) (string, error) {
	switch p := p.(type) {
	case shared.OwnedBy:
		return "user_id = " + args.add(p.UserID), nil
	case shared.StatusIn:
		names := make([]string, len(p.Statuses))
		for i, s := range p.Statuses {
			names[i] = s.String()
		}
		return "status = ANY(" + args.add(names) + ")", nil
	case shared.BookedOnOrAfter:
		return "booking_date >= " + args.add(p.From), nil
	case shared.BookedOnOrBefore:
		return "booking_date <= " + args.add(p.To), nil
	case shared.TextContains:
		n := args.add(p.Term)
		return fmt.Sprintf("(strpos(customer_name, %[1]s) > 0 OR strpos(event_name, %[1]s) > 0 OR strpos(invoice_id, %[1]s) > 0)", n), nil
	default:
		return "", fmt.Errorf("unsupported predicate %T", p)
	}
}

func renderWhere(preds []shared.Predicate, args *argList) (string, error) {
	if len(preds) == 0 {
		return "", nil
	}
	clauses := make([]string, 0, len(preds))
	for _, p := range preds {
		c, err := renderPredicate(p, args)
		if err != nil {
			return "", err
		}
		clauses = append(clauses, c)
	}
	return " WHERE " + strings.Join(clauses, " AND "), nil
}

func renderOrder(order []shared.OrderKey) (string, error) {
	if len(order) == 0 {
		return "", nil
	}
	parts := make([]string, 0, len(order))
	for _, k := range order {
		col, ok := sortColumns[k.Field]
		if !ok {
			return "", fmt.Errorf("unsupported sort field %q", k.Field)
		}
		dir := "ASC"
		if k.Desc {
			dir = "DESC"
		}
		parts = append(parts, col+" "+dir)
	}
	return " ORDER BY " + strings.Join(parts, ", "), nil
}

// buildSelect renders a query into SQL with positional args.
func buildSelect(q shared.Query) (string, []any, error) {
	var args argList
	where, err := renderWhere(q.Predicates, &args)
	if err != nil {
		return "", nil, err
	}
	order, err := renderOrder(q.Order)
	if err != nil {
		return "", nil, err
	}

	var sb strings.Builder
	sb.WriteString("SELECT " + bookingColumns + " FROM bookings")
	sb.WriteString(where)
	sb.WriteString(order)
	if q.Window.Limit > 0 {
		sb.WriteString(" LIMIT " + args.add(q.Window.Limit))
	}
	if q.Window.Offset > 0 {
		sb.WriteString(" OFFSET " + args.add(q.Window.Offset))
	}
	return sb.String(), args.args, nil
}

func buildAggregate(preds []shared.Predicate) (string, []any, error) {
	var args argList
	where, err := renderWhere(preds, &args)
	if err != nil {
		return "", nil, err
	}
	sql := `SELECT status,
	count(*) AS count,
	coalesce(sum(quantity), 0)::bigint AS quantity,
	coalesce(sum(price_cents * quantity), 0)::bigint AS revenue_cents
FROM bookings` + where + `
GROUP BY status`
	return sql, args.args, nil
}
