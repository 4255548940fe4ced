// auth.go
package main

import (
	"bytes"
	"fmt"
	"html/template"
	"log"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// renderLoginPage executes the login template with an optional error
// message and sends it as HTML.
func renderLoginPage(c *fiber.Ctx, errMsg string) error {
	t, err := template.ParseFiles(filepath.Join(templatesDir, "index.html"))
	if err != nil {
		return fmt.Errorf("parse login template: %w", err)
	}
	var buf bytes.Buffer
	if err := t.Execute(&buf, struct{ Error string }{Error: errMsg}); err != nil {
		return fmt.Errorf("execute login template: %w", err)
	}
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.Send(buf.Bytes())
}

// GET|HEAD /
func loginPageHandler(c *fiber.Ctx) error {
	return renderLoginPage(c, "")
}

// GET|HEAD /ping
func pingHandler(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "alive"})
}

// pageHandler serves one of the static page shells from templates/.
func pageHandler(name string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.SendFile(filepath.Join(templatesDir, name))
	}
}

// POST /login
// Exact case-sensitive match on both fields against the users table.
// 🚨🚨 INSECURE: passwords are stored and compared as plain text 🚨🚨
func loginHandler(c *fiber.Ctx) error {
	username := c.FormValue("username")
	password := c.FormValue("password")

	rows, err := usersTable.Load()
	if err != nil {
		return fmt.Errorf("load users: %w", err)
	}
	for _, row := range rows {
		if row[0] == username && row[1] == password {
			target := "/empdashboard"
			if strings.ToLower(username) == "admin" {
				target = "/admindashboard"
			}
			log.Printf("INFO: Login successful for user '%s'", username)
			return c.Redirect(target, fiber.StatusSeeOther)
		}
	}
	log.Printf("INFO: Login failed for user '%s'", username)
	return renderLoginPage(c, "Invalid username or password!")
}
