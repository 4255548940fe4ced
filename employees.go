// employees.go
package main

import (
	"log"
	"net/url"

	"github.com/gofiber/fiber/v2"
)

// GET /api/employees
func getEmployeesHandler(c *fiber.Ctx) error {
	rows, err := employeesTable.Load()
	if err != nil {
		log.Printf("ERROR: Failed to load employees: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve employees"})
	}
	employees := make([]Employee, 0, len(rows))
	for _, row := range rows {
		employees = append(employees, employeeFromRow(row))
	}
	return c.JSON(employees)
}

// POST /api/employees
// Creating an employee also seeds a login for them: username is the
// emp_code, password "<emp_code>@123", unless that username already
// exists. Deleting the employee later does NOT remove the login.
func addEmployeeHandler(c *fiber.Ctx) error {
	empCode := c.FormValue("emp_code")
	name := c.FormValue("name")
	doj := c.FormValue("doj")
	if empCode == "" || name == "" || doj == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "emp_code, name and doj are required"})
	}

	employees, err := employeesTable.Load()
	if err != nil {
		log.Printf("ERROR: Failed to load employees: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create employee"})
	}
	for _, row := range employees {
		if row[0] == empCode {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Employee Code already exists"})
		}
	}
	if err := employeesTable.Save(append(employees, Employee{EmpCode: empCode, Name: name, DOJ: doj}.row())); err != nil {
		log.Printf("ERROR: Failed to save employees: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create employee"})
	}

	users, err := usersTable.Load()
	if err != nil {
		log.Printf("ERROR: Failed to load users while creating employee '%s': %v", empCode, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create employee login"})
	}
	userExists := false
	for _, row := range users {
		if row[0] == empCode {
			userExists = true
			break
		}
	}
	if !userExists {
		// 🚨🚨 INSECURE: default password stored as plain text 🚨🚨
		if err := usersTable.Save(append(users, []string{empCode, empCode + "@123"})); err != nil {
			log.Printf("ERROR: Failed to save login for employee '%s': %v", empCode, err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create employee login"})
		}
	}

	log.Printf("INFO: Added employee '%s' (%s)", empCode, name)
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Employee added successfully"})
}

// DELETE /api/employees/:emp_code
// Idempotent: deleting a code that does not exist still rewrites the
// table unchanged and reports success.
func deleteEmployeeHandler(c *fiber.Ctx) error {
	empCode := c.Params("emp_code")
	if unescaped, err := url.PathUnescape(empCode); err == nil {
		empCode = unescaped
	}
	removed, err := employeesTable.DeleteWhere(func(row []string) bool { return row[0] == empCode })
	if err != nil {
		log.Printf("ERROR: Failed to delete employee '%s': %v", empCode, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete employee"})
	}
	log.Printf("INFO: Deleted employee '%s' (%d row(s) removed)", empCode, removed)
	return c.JSON(fiber.Map{"message": "Employee deleted successfully"})
}
