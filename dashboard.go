// dashboard.go
package main

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
)

// GET /api/today
// Today's totals for the dashboard cards. A table that is missing,
// empty or unreadable counts as zero rather than failing the request;
// a corrupt file is still worth a WARN in the logs.
func todayHandler(c *fiber.Ctx) error {
	today := time.Now().Format(dateLayout)

	var totalSales float64
	if rows, err := salesTable.Load(); err != nil {
		log.Printf("WARN: Sales total for %s defaulting to zero: %v", today, err)
	} else {
		for _, row := range rows {
			if row[0] == today {
				totalSales += atofOr(row[3], 0)
			}
		}
	}

	totalAttendance := 0
	if rows, err := attendanceTable.Load(); err != nil {
		log.Printf("WARN: Attendance count for %s defaulting to zero: %v", today, err)
	} else {
		for _, row := range rows {
			if row[1] == today {
				totalAttendance++
			}
		}
	}

	return c.JSON(fiber.Map{
		"date":             today,
		"total_sales":      int(totalSales),
		"total_attendance": totalAttendance,
	})
}
