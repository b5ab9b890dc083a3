package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/iudanet/tabata/internal/app"
	"github.com/iudanet/tabata/internal/models"
)

func (c *Cli) runRegister(ctx context.Context) error {
	c.io.Println("=== Registration ===")
	c.io.Println()

	username, err := c.io.ReadInput("Username: ")
	if err != nil {
		return fmt.Errorf("failed to read username: %w", err)
	}

	email, err := c.io.ReadInput("Email: ")
	if err != nil {
		return fmt.Errorf("failed to read email: %w", err)
	}

	password, err := c.io.ReadPassword("Password (min 8 chars): ")
	if err != nil {
		return fmt.Errorf("failed to read password: %w", err)
	}
	c.io.Printf("Password strength: %s\n", describeStrength(password))

	confirm, err := c.io.ReadPassword("Confirm password: ")
	if err != nil {
		return fmt.Errorf("failed to read confirmation: %w", err)
	}

	cur, err := c.app.Register(ctx, username, email, password, confirm)
	if err != nil {
		return fmt.Errorf("registration failed: %w", err)
	}

	c.io.Println()
	c.io.Println("✓ Registration successful!")
	c.io.Printf("Logged in as %s\n", cur.User.Username)

	return nil
}

func (c *Cli) runLogin(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("login", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	remember := fs.Bool("remember", false, "keep the session for 30 days")
	if err := fs.Parse(args); err != nil {
		return err
	}

	c.io.Println("=== Login ===")
	c.io.Println()

	email, err := c.io.ReadInput("Email: ")
	if err != nil {
		return fmt.Errorf("failed to read email: %w", err)
	}

	password, err := c.io.ReadPassword("Password: ")
	if err != nil {
		return fmt.Errorf("failed to read password: %w", err)
	}

	cur, err := c.app.Login(ctx, email, password, *remember)
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}

	c.io.Println()
	c.io.Println("✓ Login successful!")
	c.io.Printf("Welcome, %s\n", cur.User.Username)

	return nil
}

func (c *Cli) runLogout(ctx context.Context) error {
	c.io.Println("=== Logout ===")

	cur, err := c.app.Restore(ctx)
	if err != nil && !errors.Is(err, app.ErrNotAuthenticated) {
		return err
	}

	if err := c.app.Logout(ctx, cur); err != nil {
		return fmt.Errorf("logout failed: %w", err)
	}

	c.io.Println("✓ Logout successful!")
	return nil
}

func (c *Cli) runStatus(ctx context.Context) error {
	c.io.Println("=== Authentication Status ===")
	c.io.Println()

	cur, err := c.app.Restore(ctx)
	if err != nil {
		if errors.Is(err, app.ErrNotAuthenticated) {
			c.io.Println("Status: Not authenticated")
			c.io.Println()
			c.io.Println("Run 'tabata login' to authenticate.")
			return nil
		}
		return err
	}

	c.io.Println("Status: Authenticated")
	c.io.Printf("Username: %s\n", cur.User.Username)
	c.io.Printf("Email:    %s\n", cur.User.Email)
	if cur.User.LastLogin != nil {
		c.io.Printf("Last login: %s\n", cur.User.LastLogin.Local().Format("2006-01-02 15:04"))
	}

	return nil
}

func (c *Cli) runChangePassword(ctx context.Context, cur *app.Current) error {
	c.io.Println("=== Change Password ===")

	current, err := c.io.ReadPassword("Current password: ")
	if err != nil {
		return fmt.Errorf("failed to read password: %w", err)
	}
	newPassword, err := c.io.ReadPassword("New password: ")
	if err != nil {
		return fmt.Errorf("failed to read password: %w", err)
	}
	c.io.Printf("Password strength: %s\n", describeStrength(newPassword))
	confirm, err := c.io.ReadPassword("Confirm new password: ")
	if err != nil {
		return fmt.Errorf("failed to read confirmation: %w", err)
	}

	if err := c.app.ChangePassword(ctx, cur, current, newPassword, confirm); err != nil {
		return fmt.Errorf("password change failed: %w", err)
	}

	c.io.Println("✓ Password changed. All sessions were closed, please log in again.")
	return nil
}

func (c *Cli) runProfile(ctx context.Context, cur *app.Current, args []string) error {
	fs := flag.NewFlagSet("profile", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	username := fs.String("username", "", "new username")
	email := fs.String("email", "", "new email")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var update models.ProfileUpdate
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "username":
			update.Username = username
		case "email":
			update.Email = email
		}
	})

	if update.IsEmpty() {
		c.io.Printf("Username: %s\nEmail:    %s\n", cur.User.Username, cur.User.Email)
		return nil
	}

	user, err := c.app.UpdateProfile(ctx, cur, update)
	if err != nil {
		return fmt.Errorf("profile update failed: %w", err)
	}

	c.io.Println("✓ Profile updated")
	c.io.Printf("Username: %s\nEmail:    %s\n", user.Username, user.Email)
	return nil
}
