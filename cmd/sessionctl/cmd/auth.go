package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ridecircle/sessionkit/authapi"
)

var (
	authEmail    string
	authPassword string
	authName     string
	authPhone    string
	otpCode      string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Authenticate and persist the session credentials",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		ctrl, cleanup, err := newController(cfg)
		if err != nil {
			return err
		}
		defer cleanup()

		ctrl.SetSegment("login")
		ctrl.Start(cmd.Context())

		user, err := ctrl.Login(cmd.Context(), authEmail, authPassword)
		if err != nil {
			return fmt.Errorf("login failed: %w", err)
		}
		fmt.Printf("logged in as %s (verified=%v)\n", user.Email, user.IsVerified)
		return nil
	},
}

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create an account; the session routes to OTP verification",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		ctrl, cleanup, err := newController(cfg)
		if err != nil {
			return err
		}
		defer cleanup()

		ctrl.SetSegment("register")
		ctrl.Start(cmd.Context())

		user, err := ctrl.Register(cmd.Context(), authapi.RegisterRequest{
			Name:     authName,
			Email:    authEmail,
			Phone:    authPhone,
			Password: authPassword,
		})
		if err != nil {
			return fmt.Errorf("registration failed: %w", err)
		}
		fmt.Printf("registered %s; check your inbox for the verification code\n", user.Email)
		return nil
	},
}

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Confirm the email verification code",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		ctrl, cleanup, err := newController(cfg)
		if err != nil {
			return err
		}
		defer cleanup()

		ctrl.SetSegment("verify-otp")
		ctrl.Start(cmd.Context())

		user, err := ctrl.VerifyOTP(cmd.Context(), authEmail, otpCode)
		if err != nil {
			return fmt.Errorf("verification failed: %w", err)
		}
		fmt.Printf("%s verified\n", user.Email)
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Clear the persisted session credentials",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		ctrl, cleanup, err := newController(cfg)
		if err != nil {
			return err
		}
		defer cleanup()

		ctrl.SetSegment("(tabs)")
		ctrl.Start(cmd.Context())

		if err := ctrl.Logout(cmd.Context()); err != nil {
			return err
		}
		fmt.Println("logged out")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(loginCmd, registerCmd, verifyCmd, logoutCmd)

	for _, c := range []*cobra.Command{loginCmd, registerCmd, verifyCmd} {
		c.Flags().StringVar(&authEmail, "email", "", "Account email")
		c.MarkFlagRequired("email")
	}
	loginCmd.Flags().StringVar(&authPassword, "password", "", "Account password")
	loginCmd.MarkFlagRequired("password")
	registerCmd.Flags().StringVar(&authPassword, "password", "", "Account password")
	registerCmd.MarkFlagRequired("password")
	registerCmd.Flags().StringVar(&authName, "name", "", "Display name")
	registerCmd.Flags().StringVar(&authPhone, "phone", "", "Phone number")
	verifyCmd.Flags().StringVar(&otpCode, "code", "", "Verification code")
	verifyCmd.MarkFlagRequired("code")
}
