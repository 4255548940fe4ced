// sales.go
package main

import (
	"log"

	"github.com/gofiber/fiber/v2"
)

// GET /api/sales
func getSalesHandler(c *fiber.Ctx) error {
	rows, err := salesTable.Load()
	if err != nil {
		log.Printf("ERROR: Failed to load sales: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve sales"})
	}
	dates := make([]string, 0, len(rows))
	empCodes := make([]string, 0, len(rows))
	billNos := make([]int, 0, len(rows))
	totals := make([]float64, 0, len(rows))
	for _, row := range rows {
		dates = append(dates, row[0])
		empCodes = append(empCodes, row[1])
		billNos = append(billNos, atoiOr(row[2], 0))
		totals = append(totals, atofOr(row[3], 0))
	}
	return c.JSON(fiber.Map{
		"date":       dates,
		"emp_code":   empCodes,
		"bill_no":    billNos,
		"total_cost": totals,
	})
}

// POST /api/save_sales
// Append-only. The emp_code is not checked against the employees
// table and bill numbers may repeat; the acknowledgment echoes the
// bill number back to the POS client.
func saveSalesHandler(c *fiber.Ctx) error {
	s := new(Sale)
	if err := c.BodyParser(s); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := salesTable.Append(s.row()); err != nil {
		log.Printf("ERROR: Failed to save sale (bill %d): %v", s.BillNo, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to save sale"})
	}
	log.Printf("INFO: Saved sale: bill %d, emp '%s', amount %.2f", s.BillNo, s.EmpCode, s.Amount)
	return c.JSON(fiber.Map{"message": "Sale saved successfully", "bill_no": s.BillNo})
}
