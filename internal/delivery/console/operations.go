package console

import (
	"errors"
	"fmt"
	"strings"

	"employee-directory/internal/domain"
)

func (c *Console) addEmployee() error {
	if err := c.Employees.Authorize(c.session, domain.OpAdd); err != nil {
		return c.report(err)
	}
	c.println("\n=== Add New Employee ===")

	name, err := c.readLine("Enter employee name: ")
	if err != nil {
		return err
	}
	var id int
	for {
		id, err = c.readInt("Enter unique User ID: ")
		if err != nil {
			return err
		}
		exists, err := c.Employees.Exists(id)
		if err != nil {
			return err
		}
		if !exists {
			break
		}
		c.println("User ID already exists. Please choose a different ID.")
	}
	department, err := c.readLine("Enter department: ")
	if err != nil {
		return err
	}
	position, err := c.readLine("Enter position: ")
	if err != nil {
		return err
	}
	salary, err := c.readAmount("Enter salary: $")
	if err != nil {
		return err
	}

	c.println("\nSelect employee type:")
	for i, r := range domain.Roles {
		c.printf("%d. %s Employee\n", i+1, r)
	}
	choice, err := c.readInt(fmt.Sprintf("Enter choice (1-%d): ", len(domain.Roles)))
	if err != nil {
		return err
	}
	role, ok := domain.RoleByIndex(choice)
	if !ok {
		c.println("Invalid choice. Creating as General Employee.")
	}

	err = c.Employees.Add(c.session, domain.Employee{
		ID:         id,
		Name:       name,
		Department: department,
		Position:   position,
		Salary:     salary,
		Role:       role,
	})
	if err != nil {
		return c.report(err)
	}
	c.println("\nEmployee added successfully!")
	return nil
}

func (c *Console) viewEmployees() error {
	employees, err := c.Employees.View(c.session)
	if err != nil {
		return c.report(err)
	}
	if !c.session.Role().Can(domain.OpViewAll) {
		c.println("\n=== Your Employee Information ===")
		for _, e := range employees {
			c.printEmployee(e)
		}
		return nil
	}

	c.println("\n=== All Employees ===")
	if len(employees) == 0 {
		c.println("No employees found.")
		return nil
	}
	for i, e := range employees {
		c.printf("\n--- Employee %d ---\n", i+1)
		c.printEmployee(e)
		c.println(strings.Repeat("-", 40))
	}
	return nil
}

func (c *Console) searchEmployees() error {
	if err := c.Employees.Authorize(c.session, domain.OpSearch); err != nil {
		return c.report(err)
	}
	c.println("\n=== Search Employees ===")
	c.println("1. Search by User ID")
	c.println("2. Search by Name")
	c.println("3. Search by Department")

	choice, err := c.readInt("Enter search option (1-3): ")
	if err != nil {
		return err
	}
	switch choice {
	case 1:
		id, err := c.readInt("Enter User ID to search: ")
		if err != nil {
			return err
		}
		e, err := c.Employees.FindByID(c.session, id)
		if errors.Is(err, domain.ErrNotFound) {
			c.printf("No employee found with User ID: %d\n", id)
			return nil
		}
		if err != nil {
			return c.report(err)
		}
		c.printResults([]domain.Employee{e})
	case 2:
		text, err := c.readLine("Enter name to search: ")
		if err != nil {
			return err
		}
		found, err := c.Employees.FindByName(c.session, text)
		if err != nil {
			return c.report(err)
		}
		if len(found) == 0 {
			c.printf("No employee found with name containing: %s\n", text)
			return nil
		}
		c.printResults(found)
	case 3:
		text, err := c.readLine("Enter department to search: ")
		if err != nil {
			return err
		}
		found, err := c.Employees.FindByDepartment(c.session, text)
		if err != nil {
			return c.report(err)
		}
		if len(found) == 0 {
			c.printf("No employee found in department: %s\n", text)
			return nil
		}
		c.printResults(found)
	default:
		c.println("Invalid search option.")
	}
	return nil
}

func (c *Console) printResults(found []domain.Employee) {
	for _, e := range found {
		c.println("\n--- Search Result ---")
		c.printEmployee(e)
	}
}

func (c *Console) modifyEmployee() error {
	if err := c.Employees.Authorize(c.session, domain.OpModify); err != nil {
		return c.report(err)
	}
	c.println("\n=== Modify Employee ===")
	id, err := c.readInt("Enter User ID of employee to modify: ")
	if err != nil {
		return err
	}
	e, err := c.Employees.Get(c.session, domain.OpModify, id)
	if errors.Is(err, domain.ErrNotFound) {
		c.printf("Employee not found with User ID: %d\n", id)
		return nil
	}
	if err != nil {
		return c.report(err)
	}

	c.println("\nCurrent employee information:")
	c.printEmployee(e)

	fields := []domain.Field{domain.FieldName, domain.FieldDepartment, domain.FieldPosition, domain.FieldSalary}
	c.println("\nWhat would you like to modify?")
	for i, f := range fields {
		c.printf("%d. %s\n", i+1, f)
	}
	choice, err := c.readInt(fmt.Sprintf("Enter choice (1-%d): ", len(fields)))
	if err != nil {
		return err
	}
	if choice < 1 || choice > len(fields) {
		c.println("Invalid choice.")
		return nil
	}

	change := domain.Change{Field: fields[choice-1]}
	prompt := fmt.Sprintf("Enter new %s: ", strings.ToLower(change.Field.String()))
	if change.Field == domain.FieldSalary {
		change.Salary, err = c.readAmount(prompt + "$")
	} else {
		change.Text, err = c.readLine(prompt)
	}
	if err != nil {
		return err
	}

	updated, err := c.Employees.Modify(c.session, id, change)
	if err != nil {
		return c.report(err)
	}
	if updated.ID == c.session.User.ID {
		c.session = c.session.WithUser(updated)
	}
	c.printf("%s updated successfully!\n", change.Field)
	return nil
}

func (c *Console) deleteEmployee() error {
	if err := c.Employees.Authorize(c.session, domain.OpDelete); err != nil {
		return c.report(err)
	}
	c.println("\n=== Delete Employee ===")
	id, err := c.readInt("Enter User ID of employee to delete: ")
	if err != nil {
		return err
	}
	if id == c.session.User.ID {
		return c.report(domain.ErrSelfDelete)
	}

	e, err := c.Employees.Get(c.session, domain.OpDelete, id)
	if errors.Is(err, domain.ErrNotFound) {
		c.printf("Employee not found with User ID: %d\n", id)
		return nil
	}
	if err != nil {
		return c.report(err)
	}
	c.println("\nEmployee to be deleted:")
	c.printEmployee(e)

	ok, err := c.confirm("\nAre you sure you want to delete this employee? (y/n): ")
	if err != nil {
		return err
	}
	if !ok {
		c.println("Deletion cancelled.")
		return nil
	}
	if err := c.Employees.Delete(c.session, id); err != nil {
		return c.report(err)
	}
	c.println("Employee deleted successfully!")
	return nil
}
