// attendance.go
package main

import (
	"fmt"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
)

// GET /api/attendance
func getAttendanceHandler(c *fiber.Ctx) error {
	rows, err := attendanceTable.Load()
	if err != nil {
		log.Printf("ERROR: Failed to load attendance: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve attendance"})
	}
	empCodes := make([]string, 0, len(rows))
	dates := make([]string, 0, len(rows))
	for _, row := range rows {
		empCodes = append(empCodes, row[0])
		dates = append(dates, row[1])
	}
	return c.JSON(fiber.Map{"emp_code": empCodes, "date": dates})
}

// POST /mark_attendance
// One record per employee per day. A second mark for the same
// (emp_code, today) never mutates the table and reports fail with a
// 200, not an error status. The emp_code is not checked against the
// employees table.
func markAttendanceHandler(c *fiber.Ctx) error {
	empCode := c.FormValue("emp_code")
	if empCode == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "fail", "message": "emp_code is required"})
	}
	today := time.Now().Format(dateLayout)

	rows, err := attendanceTable.Load()
	if err != nil {
		log.Printf("ERROR: Failed to load attendance: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to mark attendance"})
	}
	for _, row := range rows {
		if row[0] == empCode && row[1] == today {
			return c.JSON(fiber.Map{
				"status":  "fail",
				"message": fmt.Sprintf("Attendance already marked for %s on %s.", empCode, today),
			})
		}
	}
	if err := attendanceTable.Save(append(rows, []string{empCode, today})); err != nil {
		log.Printf("ERROR: Failed to save attendance for '%s': %v", empCode, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to mark attendance"})
	}
	log.Printf("INFO: Marked attendance for '%s' on %s", empCode, today)
	return c.JSON(fiber.Map{
		"status":  "success",
		"message": fmt.Sprintf("Attendance marked successfully for %s on %s.", empCode, today),
	})
}
