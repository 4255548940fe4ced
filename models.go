// models.go
package main

import "strconv"

// --- Structs / Models ---

type Employee struct {
	EmpCode string `json:"emp_code"`
	Name    string `json:"name"`
	DOJ     string `json:"doj"` // date of joining, YYYY-MM-DD
}

type Product struct {
	ProductName     string  `json:"product_name"`
	ImageAddress    string  `json:"image_address"`
	ProductCategory string  `json:"product_category"`
	ProductPrice    float64 `json:"product_price"`
	ProductQuantity int     `json:"product_quantity"`
}

// Sale is the save_sales request body. Name is accepted from the POS
// client but never stored; only (date, emp_code, bill_no, total_cost)
// make it into the sales table.
type Sale struct {
	Name    string  `json:"name"`
	Amount  float64 `json:"amount"`
	EmpCode string  `json:"emp_code"`
	Date    string  `json:"date"`
	BillNo  int     `json:"bill_no"`
}

func employeeFromRow(row []string) Employee {
	return Employee{EmpCode: row[0], Name: row[1], DOJ: row[2]}
}

func (e Employee) row() []string {
	return []string{e.EmpCode, e.Name, e.DOJ}
}

func productFromRow(row []string) Product {
	return Product{
		ProductName:     row[0],
		ImageAddress:    row[1],
		ProductCategory: row[2],
		ProductPrice:    atofOr(row[3], 0),
		ProductQuantity: atoiOr(row[4], 0),
	}
}

func (p Product) row() []string {
	return []string{
		p.ProductName,
		p.ImageAddress,
		p.ProductCategory,
		strconv.FormatFloat(p.ProductPrice, 'f', -1, 64),
		strconv.Itoa(p.ProductQuantity),
	}
}

func (s Sale) row() []string {
	return []string{
		s.Date,
		s.EmpCode,
		strconv.Itoa(s.BillNo),
		strconv.FormatFloat(s.Amount, 'f', -1, 64),
	}
}

// atoiOr and atofOr fall back to a default instead of failing: a cell
// that does not parse counts as zero, the same way the aggregate
// endpoints treat unreadable data.
func atoiOr(s string, fallback int) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return fallback
	}
	return n
}

func atofOr(s string, fallback float64) float64 {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fallback
	}
	return f
}
