package commands

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"userdir/internal/models"
	"userdir/internal/services"
)

// UserCommand adapts the directory service to the command line: it checks
// argument counts, parses the age argument, and prints results in a fixed
// field-per-line format. All business rules live in the service.
type UserCommand struct {
	service *services.UserService
	out     io.Writer
}

// NewUserCommand creates a new UserCommand writing its output to out.
func NewUserCommand(service *services.UserService, out io.Writer) *UserCommand {
	return &UserCommand{
		service: service,
		out:     out,
	}
}

// Create handles `create <email> <username> <phone> <age>`.
func (c *UserCommand) Create(args []string) error {
	if len(args) != 4 {
		return errors.New("usage: create <email> <username> <phone> <age>")
	}

	age, err := parseAge(args[3])
	if err != nil {
		return err
	}

	user, err := c.service.CreateUser(args[0], args[1], args[2], age)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	fmt.Fprintln(c.out, "User created successfully:")
	c.printUser(user)
	return nil
}

// Update handles `update <email> <username> <phone> <age>`.
func (c *UserCommand) Update(args []string) error {
	if len(args) != 4 {
		return errors.New("usage: update <email> <username> <phone> <age>")
	}

	age, err := parseAge(args[3])
	if err != nil {
		return err
	}

	user, err := c.service.UpdateUser(args[0], args[1], args[2], age)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}

	fmt.Fprintln(c.out, "User updated successfully:")
	c.printUser(user)
	return nil
}

// List handles `list`, printing a two-column table of all records.
func (c *UserCommand) List() error {
	users, err := c.service.ListUsers()
	if err != nil {
		return fmt.Errorf("failed to list users: %w", err)
	}

	fmt.Fprintln(c.out, "User list:")
	fmt.Fprintln(c.out, "Email\t\tUsername")
	fmt.Fprintln(c.out, "------------------------")
	for _, user := range users {
		fmt.Fprintf(c.out, "%s\t%s\n", user.Email, user.Username)
	}
	return nil
}

// Get handles `get <email>`.
func (c *UserCommand) Get(args []string) error {
	if len(args) != 1 {
		return errors.New("usage: get <email>")
	}

	user, err := c.service.GetUser(args[0])
	if err != nil {
		return fmt.Errorf("failed to get user: %w", err)
	}

	c.printUser(user)
	return nil
}

// Delete handles `delete <email>`.
func (c *UserCommand) Delete(args []string) error {
	if len(args) != 1 {
		return errors.New("usage: delete <email>")
	}

	if err := c.service.DeleteUser(args[0]); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	fmt.Fprintln(c.out, "User deleted successfully")
	return nil
}

func (c *UserCommand) printUser(user *models.User) {
	fmt.Fprintf(c.out, "Email: %s\n", user.Email)
	fmt.Fprintf(c.out, "Username: %s\n", user.Username)
	fmt.Fprintf(c.out, "Phone: %s\n", user.Phone)
	fmt.Fprintf(c.out, "Age: %d\n", user.Age)
}

// parseAge rejects non-numeric input before the service's range validation
// ever sees it.
func parseAge(raw string) (uint32, error) {
	age, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, errors.New("invalid age format")
	}
	return uint32(age), nil
}
